package model

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/shopspring/decimal"
	"github.com/vango-dev/rangeslider/pkg/cell"
)

// Config is the set of cells describing one slider.
type Config struct {
	IsRange             *cell.Cell[bool]
	HasDefaultValues    *cell.Cell[bool]
	IsVertical          *cell.Cell[bool]
	ValueLabelDisplayed *cell.Cell[bool]
	LimitsDisplayed     *cell.Cell[bool]
	MinValue            *cell.Cell[float64]
	MaxValue            *cell.Cell[float64]
	Step                *cell.Cell[float64]
	LeftHandleValue     *cell.Cell[float64]
	RightHandleValue    *cell.Cell[float64]
	DefaultValues       *cell.Cell[Labels]
	PointsNumber        *cell.Cell[int]
}

// ConfigOption configures New.
type ConfigOption func(*configOptions)

type configOptions struct {
	logger   *slog.Logger
	onReject func(name string, err error)
}

// WithLogger sets the logger used by every cell.
func WithLogger(logger *slog.Logger) ConfigOption {
	return func(o *configOptions) { o.logger = logger }
}

// WithRejectHook is called whenever any cell rejects a write.
func WithRejectHook(fn func(name string, err error)) ConfigOption {
	return func(o *configOptions) { o.onReject = fn }
}

// New builds a Config from Defaults with overrides applied.
//
// Initial values are validated in this order: isRange, hasDefaultValues,
// isVertical, valueLabelDisplayed, limitsDisplayed, minValue, maxValue,
// step, defaultValues, leftHandleValue, rightHandleValue, pointsNumber.
// The left handle is checked against the bounds only, because the right
// handle does not exist yet; the right handle is then clamped up to it.
// Values that cannot be repaired (NaN, an empty label list) fall back to
// the default.
func New(overrides Overrides, opts ...ConfigOption) *Config {
	o := configOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	s := sanitize(overrides.Apply(Defaults()))

	c := &Config{}
	cellOpts := func(name string) []cell.Option {
		return []cell.Option{
			cell.WithName(name),
			cell.WithLogger(o.logger.With("component", "slider-config")),
			cell.WithRejectHook(o.onReject),
		}
	}

	c.IsRange = cell.New(s.IsRange, nil, cellOpts(OptIsRange.String())...)
	c.HasDefaultValues = cell.New(s.HasDefaultValues, c.checkHasDefaultValues, cellOpts(OptHasDefaultValues.String())...)
	c.IsVertical = cell.New(s.IsVertical, nil, cellOpts(OptIsVertical.String())...)
	c.ValueLabelDisplayed = cell.New(s.ValueLabelDisplayed, nil, cellOpts(OptValueLabelDisplayed.String())...)

	limits := s.LimitsDisplayed && !s.HasDefaultValues
	c.LimitsDisplayed = cell.New(limits, c.checkLimitsDisplayed, cellOpts(OptLimitsDisplayed.String())...)

	c.MinValue = cell.New(s.MinValue, c.checkMinValue, cellOpts(OptMinValue.String())...)
	maxValue := s.MaxValue
	if maxValue < s.MinValue {
		maxValue = s.MinValue
	}
	c.MaxValue = cell.New(maxValue, c.checkMaxValue, cellOpts(OptMaxValue.String())...)
	step, _ := checkStep(s.Step)
	c.Step = cell.New(step, checkStep, cellOpts(OptStep.String())...)
	c.DefaultValues = cell.New(s.DefaultValues, checkDefaultValues, cellOpts(OptDefaultValues.String())...)

	c.LeftHandleValue = cell.New(c.checkHandleValue(s.LeftHandleValue), c.checkLeftHandleValue, cellOpts(OptLeftHandleValue.String())...)
	right, _ := c.checkRightHandleValue(s.RightHandleValue)
	c.RightHandleValue = cell.New(right, c.checkRightHandleValue, cellOpts(OptRightHandleValue.String())...)

	points, _ := checkPointsNumber(s.PointsNumber)
	c.PointsNumber = cell.New(points, checkPointsNumber, cellOpts(OptPointsNumber.String())...)

	update := func() { c.updateHandles() }
	c.IsRange.Subscribe(func(bool) { update() })
	c.HasDefaultValues.Subscribe(func(bool) { update() })
	c.MinValue.Subscribe(func(float64) { update() })
	c.MaxValue.Subscribe(func(float64) { update() })
	c.Step.Subscribe(func(float64) { update() })
	c.DefaultValues.Subscribe(func(Labels) { update() })

	return c
}

// Snapshot returns the current value of every cell.
func (c *Config) Snapshot() Settings {
	return Settings{
		IsRange:             c.IsRange.Get(),
		HasDefaultValues:    c.HasDefaultValues.Get(),
		IsVertical:          c.IsVertical.Get(),
		ValueLabelDisplayed: c.ValueLabelDisplayed.Get(),
		LimitsDisplayed:     c.LimitsDisplayed.Get(),
		MinValue:            c.MinValue.Get(),
		MaxValue:            c.MaxValue.Get(),
		Step:                c.Step.Get(),
		LeftHandleValue:     c.LeftHandleValue.Get(),
		RightHandleValue:    c.RightHandleValue.Get(),
		DefaultValues:       c.DefaultValues.Get().Clone(),
		PointsNumber:        c.PointsNumber.Get(),
	}
}

// updateHandles re-validates both handles after a bound changed. The second
// left pass picks up a right handle that moved below the old left value.
func (c *Config) updateHandles() {
	c.LeftHandleValue.Update()
	c.RightHandleValue.Update()
	c.LeftHandleValue.Update()
}

// checkHasDefaultValues turns the limit labels off when default values are
// switched on. One hop: checkLimitsDisplayed only writes back on true. If
// the other flag cannot be cleared the write is rejected so both never read
// true.
func (c *Config) checkHasDefaultValues(v bool) (bool, error) {
	if v && c.LimitsDisplayed.Get() {
		if err := c.LimitsDisplayed.Set(false); err != nil {
			return v, fmt.Errorf("clear %s: %w", OptLimitsDisplayed, err)
		}
	}
	return v, nil
}

func (c *Config) checkLimitsDisplayed(v bool) (bool, error) {
	if v && c.HasDefaultValues.Get() {
		if err := c.HasDefaultValues.Set(false); err != nil {
			return v, fmt.Errorf("clear %s: %w", OptHasDefaultValues, err)
		}
	}
	return v, nil
}

func (c *Config) checkMinValue(v float64) (float64, error) {
	if !finite(v) {
		return 0, ErrNotFinite
	}
	if maxValue := c.MaxValue.Get(); v > maxValue {
		return maxValue, nil
	}
	return v, nil
}

func (c *Config) checkMaxValue(v float64) (float64, error) {
	if !finite(v) {
		return 0, ErrNotFinite
	}
	if minValue := c.MinValue.Get(); v < minValue {
		return minValue, nil
	}
	return v, nil
}

func checkStep(v float64) (float64, error) {
	if !finite(v) {
		return 0, ErrNotFinite
	}
	if v >= 1 {
		return v, nil
	}
	return 1, nil
}

func checkPointsNumber(v int) (int, error) {
	if v > 0 {
		return v, nil
	}
	return 1, nil
}

func checkDefaultValues(v Labels) (Labels, error) {
	if len(v) == 0 {
		return nil, ErrNoLabels
	}
	return v.Clone(), nil
}

func (c *Config) checkLeftHandleValue(v float64) (float64, error) {
	if !finite(v) {
		return 0, ErrNotFinite
	}
	value := c.checkHandleValue(v)
	if c.IsRange.Get() {
		if right := c.RightHandleValue.Get(); value > right {
			value = right
		}
	}
	return value, nil
}

// checkRightHandleValue pins the right handle to the upper bound in
// single-handle mode.
func (c *Config) checkRightHandleValue(v float64) (float64, error) {
	if !finite(v) {
		return 0, ErrNotFinite
	}
	if !c.IsRange.Get() {
		if c.HasDefaultValues.Get() {
			return float64(len(c.DefaultValues.Get()) - 1), nil
		}
		return c.MaxValue.Get(), nil
	}
	value := c.checkHandleValue(v)
	if left := c.LeftHandleValue.Get(); value < left {
		value = left
	}
	return value, nil
}

// checkHandleValue clamps a label index in default-values mode and snaps to
// the step grid otherwise.
func (c *Config) checkHandleValue(v float64) float64 {
	if c.HasDefaultValues.Get() {
		return clampIndex(v, len(c.DefaultValues.Get()))
	}
	return SnapToStep(v, c.MinValue.Get(), c.MaxValue.Get(), c.Step.Get())
}

// SnapToStep moves v to the nearest step boundary counted from minValue and
// clamps it into [minValue, maxValue]. A remainder of exactly half a step
// rounds down, and rounding up never passes maxValue.
func SnapToStep(v, minValue, maxValue, step float64) float64 {
	dv := decimal.NewFromFloat(v)
	dmin := decimal.NewFromFloat(minValue)
	dmax := decimal.NewFromFloat(maxValue)
	dstep := decimal.NewFromFloat(step)

	normalized := dv.Sub(dmin)
	remainder := normalized.Mod(dstep)
	base := normalized.Sub(remainder).Add(dmin)

	result := base
	if remainder.GreaterThan(dstep.Div(decimal.NewFromInt(2))) && base.Add(dstep).LessThanOrEqual(dmax) {
		result = base.Add(dstep)
	}

	return clamp(result.InexactFloat64(), minValue, maxValue)
}

func clampIndex(v float64, length int) float64 {
	i := math.Round(v)
	if i > float64(length-1) {
		i = float64(length - 1)
	}
	if i < 0 {
		i = 0
	}
	return i
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sanitize replaces initial values no validator can repair.
func sanitize(s Settings) Settings {
	d := Defaults()
	if !finite(s.MinValue) {
		s.MinValue = d.MinValue
	}
	if !finite(s.MaxValue) {
		s.MaxValue = d.MaxValue
	}
	if !finite(s.Step) {
		s.Step = d.Step
	}
	if !finite(s.LeftHandleValue) {
		s.LeftHandleValue = d.LeftHandleValue
	}
	if !finite(s.RightHandleValue) {
		s.RightHandleValue = d.RightHandleValue
	}
	if len(s.DefaultValues) == 0 {
		s.DefaultValues = d.DefaultValues
	}
	return s
}
