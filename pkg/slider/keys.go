package slider

import (
	"fmt"

	"github.com/vango-dev/rangeslider/pkg/cell"
	"github.com/vango-dev/rangeslider/pkg/model"
)

// Key names an option together with its value type.
type Key[T any] struct {
	opt model.Option
}

// Option returns the untyped option behind k.
func (k Key[T]) Option() model.Option { return k.opt }

// String returns the option's wire name.
func (k Key[T]) String() string { return k.opt.String() }

var (
	IsRange             = Key[bool]{model.OptIsRange}
	HasDefaultValues    = Key[bool]{model.OptHasDefaultValues}
	IsVertical          = Key[bool]{model.OptIsVertical}
	ValueLabelDisplayed = Key[bool]{model.OptValueLabelDisplayed}
	LimitsDisplayed     = Key[bool]{model.OptLimitsDisplayed}
	MinValue            = Key[float64]{model.OptMinValue}
	MaxValue            = Key[float64]{model.OptMaxValue}
	Step                = Key[float64]{model.OptStep}
	LeftHandleValue     = Key[float64]{model.OptLeftHandleValue}
	RightHandleValue    = Key[float64]{model.OptRightHandleValue}
	DefaultValues       = Key[model.Labels]{model.OptDefaultValues}
	PointsNumber        = Key[int]{model.OptPointsNumber}
)

// Get returns the current value of key.
func Get[T any](s *Slider, key Key[T]) T {
	return cellOf(s, key).Get()
}

// Set writes v through the option's validator. A rejected write returns a
// *cell.RejectedError and leaves the slider unchanged.
func Set[T any](s *Slider, key Key[T], v T) error {
	return cellOf(s, key).Set(v)
}

// Subscribe calls fn with every value accepted for key.
func Subscribe[T any](s *Slider, key Key[T], fn func(T)) cell.Subscription {
	return cellOf(s, key).Subscribe(fn)
}

// Unsubscribe removes a subscription made with Subscribe.
func Unsubscribe[T any](s *Slider, key Key[T], sub cell.Subscription) {
	cellOf(s, key).Unsubscribe(sub)
}

// cellOf panics on the zero Key, which is the only way to get a key
// outside the declared set.
func cellOf[T any](s *Slider, key Key[T]) *cell.Cell[T] {
	c, ok := s.cell(key.opt).(*cell.Cell[T])
	if !ok {
		panic(fmt.Sprintf("slider: no %T cell for %s", c, key.opt))
	}
	return c
}

// cell returns the config cell of opt as an untyped value, or nil.
func (s *Slider) cell(opt model.Option) any {
	c := s.config
	switch opt {
	case model.OptIsRange:
		return c.IsRange
	case model.OptHasDefaultValues:
		return c.HasDefaultValues
	case model.OptIsVertical:
		return c.IsVertical
	case model.OptValueLabelDisplayed:
		return c.ValueLabelDisplayed
	case model.OptLimitsDisplayed:
		return c.LimitsDisplayed
	case model.OptMinValue:
		return c.MinValue
	case model.OptMaxValue:
		return c.MaxValue
	case model.OptStep:
		return c.Step
	case model.OptLeftHandleValue:
		return c.LeftHandleValue
	case model.OptRightHandleValue:
		return c.RightHandleValue
	case model.OptDefaultValues:
		return c.DefaultValues
	case model.OptPointsNumber:
		return c.PointsNumber
	}
	return nil
}
