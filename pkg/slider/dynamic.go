package slider

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vango-dev/rangeslider/pkg/cell"
	"github.com/vango-dev/rangeslider/pkg/model"
)

// ErrTypeMismatch is returned by SetValue when a value cannot be converted
// to the option's type.
var ErrTypeMismatch = errors.New("slider: type mismatch")

// Value returns the current value of opt, or nil for an unknown option.
// Numbers are float64, pointsNumber is int and defaultValues is a copy of
// the label list.
func (s *Slider) Value(opt model.Option) any {
	a := s.untyped(opt)
	if a == nil {
		return nil
	}
	return a.get()
}

// SetValue converts v to the type of opt and writes it. Strings are
// parsed, JSON numbers are accepted for numeric options and label lists
// may be given as a comma-separated string.
func (s *Slider) SetValue(opt model.Option, v any) error {
	switch opt.Kind() {
	case model.KindBool:
		b, err := toBool(v)
		if err != nil {
			return mismatch(opt, v, err)
		}
		return cellOf(s, Key[bool]{opt}).Set(b)
	case model.KindNumber:
		f, err := toNumber(v)
		if err != nil {
			return mismatch(opt, v, err)
		}
		return cellOf(s, Key[float64]{opt}).Set(f)
	case model.KindInt:
		n, err := toInt(v)
		if err != nil {
			return mismatch(opt, v, err)
		}
		return cellOf(s, Key[int]{opt}).Set(n)
	case model.KindLabels:
		l, err := toLabels(v)
		if err != nil {
			return mismatch(opt, v, err)
		}
		return cellOf(s, Key[model.Labels]{opt}).Set(l)
	}
	return fmt.Errorf("%w: %s", model.ErrUnknownOption, opt)
}

// SubscribeAny calls fn with every value accepted for opt, in the form
// Value returns.
func (s *Slider) SubscribeAny(opt model.Option, fn func(any)) (cell.Subscription, error) {
	a := s.untyped(opt)
	if a == nil {
		return 0, fmt.Errorf("%w: %s", model.ErrUnknownOption, opt)
	}
	return a.subscribe(fn), nil
}

// UnsubscribeAny removes a subscription made with SubscribeAny.
func (s *Slider) UnsubscribeAny(opt model.Option, sub cell.Subscription) {
	if a := s.untyped(opt); a != nil {
		a.unsubscribe(sub)
	}
}

// Apply writes every set field of o. Flags go first, then the labels, the
// bounds, the scale and finally the handles. The bounds and the handles
// are written as min, max, min (left, right, left) so that a new pair is
// accepted whatever the current pair is. All rejections are returned
// joined.
func (s *Slider) Apply(o model.Overrides) error {
	var errs []error
	set := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	c := s.config

	if o.IsRange != nil {
		set(c.IsRange.Set(*o.IsRange))
	}
	if o.HasDefaultValues != nil {
		set(c.HasDefaultValues.Set(*o.HasDefaultValues))
	}
	if o.IsVertical != nil {
		set(c.IsVertical.Set(*o.IsVertical))
	}
	if o.ValueLabelDisplayed != nil {
		set(c.ValueLabelDisplayed.Set(*o.ValueLabelDisplayed))
	}
	if o.LimitsDisplayed != nil {
		set(c.LimitsDisplayed.Set(*o.LimitsDisplayed))
	}
	if o.DefaultValues != nil {
		set(c.DefaultValues.Set(o.DefaultValues))
	}
	if o.MinValue != nil {
		set(c.MinValue.Set(*o.MinValue))
	}
	if o.MaxValue != nil {
		set(c.MaxValue.Set(*o.MaxValue))
		if o.MinValue != nil {
			set(c.MinValue.Set(*o.MinValue))
		}
	}
	if o.Step != nil {
		set(c.Step.Set(*o.Step))
	}
	if o.PointsNumber != nil {
		set(c.PointsNumber.Set(*o.PointsNumber))
	}
	if o.LeftHandleValue != nil {
		set(c.LeftHandleValue.Set(*o.LeftHandleValue))
	}
	if o.RightHandleValue != nil {
		set(c.RightHandleValue.Set(*o.RightHandleValue))
		if o.LeftHandleValue != nil {
			set(c.LeftHandleValue.Set(*o.LeftHandleValue))
		}
	}
	return errors.Join(errs...)
}

type untypedCell interface {
	get() any
	subscribe(fn func(any)) cell.Subscription
	unsubscribe(sub cell.Subscription)
}

type adapter[T any] struct {
	c     *cell.Cell[T]
	clone func(T) any
}

func (a adapter[T]) get() any { return a.clone(a.c.Get()) }

func (a adapter[T]) subscribe(fn func(any)) cell.Subscription {
	if fn == nil {
		return 0
	}
	return a.c.Subscribe(func(v T) { fn(a.clone(v)) })
}

func (a adapter[T]) unsubscribe(sub cell.Subscription) { a.c.Unsubscribe(sub) }

func (s *Slider) untyped(opt model.Option) untypedCell {
	switch c := s.cell(opt).(type) {
	case *cell.Cell[bool]:
		return adapter[bool]{c, func(v bool) any { return v }}
	case *cell.Cell[float64]:
		return adapter[float64]{c, func(v float64) any { return v }}
	case *cell.Cell[int]:
		return adapter[int]{c, func(v int) any { return v }}
	case *cell.Cell[model.Labels]:
		return adapter[model.Labels]{c, func(v model.Labels) any { return v.Clone() }}
	}
	return nil
}

func mismatch(opt model.Option, v any, err error) error {
	return fmt.Errorf("%w: %s wants %s, got %T: %v", ErrTypeMismatch, opt, opt.Kind(), v, err)
}

var errUnsupported = errors.New("unsupported type")

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(b))
	}
	return false, errUnsupported
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	return 0, errUnsupported
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	}
	f, err := toNumber(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a whole number", f)
	}
	if f < math.MinInt || f >= math.MaxInt+1 {
		return 0, fmt.Errorf("%v overflows int", f)
	}
	return int(f), nil
}

func toLabels(v any) (model.Labels, error) {
	switch l := v.(type) {
	case model.Labels:
		return l.Clone(), nil
	case []string:
		return model.Labels(l).Clone(), nil
	case string:
		return ParseLabels(l), nil
	case []any:
		out := make(model.Labels, 0, len(l))
		for i, item := range l {
			switch x := item.(type) {
			case string:
				out = append(out, x)
			case float64:
				out = append(out, model.FormatNumber(x))
			case json.Number:
				out = append(out, x.String())
			default:
				return nil, fmt.Errorf("element %d has type %T", i, item)
			}
		}
		return out, nil
	}
	return nil, errUnsupported
}

// ParseLabels splits a comma-separated list, trimming spaces and dropping
// empty entries.
func ParseLabels(s string) model.Labels {
	var out model.Labels
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
