package model

import "fmt"

// Option names one configuration cell.
type Option uint8

const (
	OptIsRange Option = iota + 1
	OptHasDefaultValues
	OptIsVertical
	OptValueLabelDisplayed
	OptLimitsDisplayed
	OptMinValue
	OptMaxValue
	OptStep
	OptLeftHandleValue
	OptRightHandleValue
	OptDefaultValues
	OptPointsNumber
)

// Options returns every option in declaration order.
func Options() []Option {
	return []Option{
		OptIsRange,
		OptHasDefaultValues,
		OptIsVertical,
		OptValueLabelDisplayed,
		OptLimitsDisplayed,
		OptMinValue,
		OptMaxValue,
		OptStep,
		OptLeftHandleValue,
		OptRightHandleValue,
		OptDefaultValues,
		OptPointsNumber,
	}
}

// String returns the wire name of the option.
func (o Option) String() string {
	switch o {
	case OptIsRange:
		return "isRange"
	case OptHasDefaultValues:
		return "hasDefaultValues"
	case OptIsVertical:
		return "isVertical"
	case OptValueLabelDisplayed:
		return "valueLabelDisplayed"
	case OptLimitsDisplayed:
		return "limitsDisplayed"
	case OptMinValue:
		return "minValue"
	case OptMaxValue:
		return "maxValue"
	case OptStep:
		return "step"
	case OptLeftHandleValue:
		return "leftHandleValue"
	case OptRightHandleValue:
		return "rightHandleValue"
	case OptDefaultValues:
		return "defaultValues"
	case OptPointsNumber:
		return "pointsNumber"
	default:
		return fmt.Sprintf("Option(%d)", uint8(o))
	}
}

// Kind reports which Go type backs the option.
func (o Option) Kind() Kind {
	switch o {
	case OptIsRange, OptHasDefaultValues, OptIsVertical, OptValueLabelDisplayed, OptLimitsDisplayed:
		return KindBool
	case OptMinValue, OptMaxValue, OptStep, OptLeftHandleValue, OptRightHandleValue:
		return KindNumber
	case OptPointsNumber:
		return KindInt
	case OptDefaultValues:
		return KindLabels
	default:
		return KindInvalid
	}
}

// ParseOption maps a wire name back to its Option.
func ParseOption(name string) (Option, error) {
	for _, o := range Options() {
		if o.String() == name {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOption, name)
}

// Kind is the value type of an option.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindNumber
	KindInt
	KindLabels
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindInt:
		return "int"
	case KindLabels:
		return "labels"
	default:
		return "invalid"
	}
}
