package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Labels is the ordered list shown in default-values mode. Config files may
// mix numbers and strings; numbers are kept in their shortest form.
type Labels []string

// UnmarshalJSON accepts a JSON array of strings and numbers.
func (l *Labels) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	out := make(Labels, 0, len(raw))
	for i, v := range raw {
		switch val := v.(type) {
		case string:
			out = append(out, val)
		case float64:
			out = append(out, strconv.FormatFloat(val, 'f', -1, 64))
		default:
			return fmt.Errorf("labels: element %d has type %T, want string or number", i, v)
		}
	}
	*l = out
	return nil
}

// UnmarshalYAML accepts a YAML sequence of scalars.
func (l *Labels) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("labels: line %d: want a sequence", value.Line)
	}
	out := make(Labels, 0, len(value.Content))
	for _, item := range value.Content {
		if item.Kind != yaml.ScalarNode {
			return fmt.Errorf("labels: line %d: want a scalar", item.Line)
		}
		out = append(out, item.Value)
	}
	*l = out
	return nil
}

// Clone returns a copy that does not share the backing array.
func (l Labels) Clone() Labels {
	if l == nil {
		return nil
	}
	out := make(Labels, len(l))
	copy(out, l)
	return out
}

// Settings is a plain snapshot of every option value.
type Settings struct {
	IsRange             bool    `json:"isRange" yaml:"isRange"`
	HasDefaultValues    bool    `json:"hasDefaultValues" yaml:"hasDefaultValues"`
	IsVertical          bool    `json:"isVertical" yaml:"isVertical"`
	ValueLabelDisplayed bool    `json:"valueLabelDisplayed" yaml:"valueLabelDisplayed"`
	LimitsDisplayed     bool    `json:"limitsDisplayed" yaml:"limitsDisplayed"`
	MinValue            float64 `json:"minValue" yaml:"minValue"`
	MaxValue            float64 `json:"maxValue" yaml:"maxValue"`
	Step                float64 `json:"step" yaml:"step"`
	LeftHandleValue     float64 `json:"leftHandleValue" yaml:"leftHandleValue"`
	RightHandleValue    float64 `json:"rightHandleValue" yaml:"rightHandleValue"`
	DefaultValues       Labels  `json:"defaultValues" yaml:"defaultValues"`
	PointsNumber        int     `json:"pointsNumber" yaml:"pointsNumber"`
}

// Defaults returns the documented default settings. Each call returns a
// fresh value.
func Defaults() Settings {
	return Settings{
		IsRange:             false,
		HasDefaultValues:    false,
		IsVertical:          false,
		ValueLabelDisplayed: true,
		LimitsDisplayed:     true,
		MinValue:            0,
		MaxValue:            100,
		Step:                1,
		LeftHandleValue:     20,
		RightHandleValue:    80,
		DefaultValues:       Labels{"first", "second", "third"},
		PointsNumber:        5,
	}
}

// Position converts a handle value to a normalized track position in [0, 1].
func (s Settings) Position(value float64) float64 {
	var pos float64
	if s.HasDefaultValues {
		last := len(s.DefaultValues) - 1
		if last <= 0 {
			return 0
		}
		pos = value / float64(last)
	} else {
		span := s.MaxValue - s.MinValue
		if span <= 0 {
			return 0
		}
		pos = (value - s.MinValue) / span
	}
	return clamp(pos, 0, 1)
}

// ValueAt converts a normalized track position to a handle value. The
// result is not step-aligned; the handle validators take care of that.
func (s Settings) ValueAt(position float64) float64 {
	position = clamp(position, 0, 1)
	if s.HasDefaultValues {
		return math.Round(position * float64(len(s.DefaultValues)-1))
	}
	return s.MinValue + position*(s.MaxValue-s.MinValue)
}

// Format returns the text shown for a handle value.
func (s Settings) Format(value float64) string {
	if s.HasDefaultValues {
		i := int(math.Round(value))
		if i >= 0 && i < len(s.DefaultValues) {
			return s.DefaultValues[i]
		}
		return ""
	}
	return FormatNumber(value)
}

// FormatNumber renders a number without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Overrides is a sparse set of settings. Nil fields keep the base value.
type Overrides struct {
	IsRange             *bool    `json:"isRange,omitempty" yaml:"isRange,omitempty"`
	HasDefaultValues    *bool    `json:"hasDefaultValues,omitempty" yaml:"hasDefaultValues,omitempty"`
	IsVertical          *bool    `json:"isVertical,omitempty" yaml:"isVertical,omitempty"`
	ValueLabelDisplayed *bool    `json:"valueLabelDisplayed,omitempty" yaml:"valueLabelDisplayed,omitempty"`
	LimitsDisplayed     *bool    `json:"limitsDisplayed,omitempty" yaml:"limitsDisplayed,omitempty"`
	MinValue            *float64 `json:"minValue,omitempty" yaml:"minValue,omitempty"`
	MaxValue            *float64 `json:"maxValue,omitempty" yaml:"maxValue,omitempty"`
	Step                *float64 `json:"step,omitempty" yaml:"step,omitempty"`
	LeftHandleValue     *float64 `json:"leftHandleValue,omitempty" yaml:"leftHandleValue,omitempty"`
	RightHandleValue    *float64 `json:"rightHandleValue,omitempty" yaml:"rightHandleValue,omitempty"`
	DefaultValues       Labels   `json:"defaultValues,omitempty" yaml:"defaultValues,omitempty"`
	PointsNumber        *int     `json:"pointsNumber,omitempty" yaml:"pointsNumber,omitempty"`
}

// Apply returns base with every non-nil override applied.
func (o Overrides) Apply(base Settings) Settings {
	s := base
	s.DefaultValues = base.DefaultValues.Clone()
	if o.IsRange != nil {
		s.IsRange = *o.IsRange
	}
	if o.HasDefaultValues != nil {
		s.HasDefaultValues = *o.HasDefaultValues
	}
	if o.IsVertical != nil {
		s.IsVertical = *o.IsVertical
	}
	if o.ValueLabelDisplayed != nil {
		s.ValueLabelDisplayed = *o.ValueLabelDisplayed
	}
	if o.LimitsDisplayed != nil {
		s.LimitsDisplayed = *o.LimitsDisplayed
	}
	if o.MinValue != nil {
		s.MinValue = *o.MinValue
	}
	if o.MaxValue != nil {
		s.MaxValue = *o.MaxValue
	}
	if o.Step != nil {
		s.Step = *o.Step
	}
	if o.LeftHandleValue != nil {
		s.LeftHandleValue = *o.LeftHandleValue
	}
	if o.RightHandleValue != nil {
		s.RightHandleValue = *o.RightHandleValue
	}
	if o.DefaultValues != nil {
		s.DefaultValues = o.DefaultValues.Clone()
	}
	if o.PointsNumber != nil {
		s.PointsNumber = *o.PointsNumber
	}
	return s
}

// IsZero reports whether no field is set.
func (o Overrides) IsZero() bool {
	return o.IsRange == nil && o.HasDefaultValues == nil && o.IsVertical == nil &&
		o.ValueLabelDisplayed == nil && o.LimitsDisplayed == nil &&
		o.MinValue == nil && o.MaxValue == nil && o.Step == nil &&
		o.LeftHandleValue == nil && o.RightHandleValue == nil &&
		o.DefaultValues == nil && o.PointsNumber == nil
}

// Bool returns a pointer to v, for building Overrides literals.
func Bool(v bool) *bool { return &v }

// Number returns a pointer to v, for building Overrides literals.
func Number(v float64) *float64 { return &v }

// Int returns a pointer to v, for building Overrides literals.
func Int(v int) *int { return &v }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
