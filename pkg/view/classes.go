package view

// Structural class names. These are the styling contract of the widget;
// each has a vertical variant formed by Vertical.
const (
	ClassRoot              = "slider"
	ClassHandle            = "slider__handle"
	ClassHandleLeft        = "slider__handle_left"
	ClassHandleRight       = "slider__handle_right"
	ClassHandleLabel       = "slider__handle-label"
	ClassRangeLine         = "slider__range-line"
	ClassScaleValue        = "slider__scale-value"
	ClassDefaultValue      = "slider__default-value"
	ClassDefaultValueLabel = "slider__default-value-label"
	ClassMinValue          = "slider__min-value"
	ClassMaxValue          = "slider__max-value"

	// ClassDragging marks the root and the grabbed handle during a drag.
	ClassDragging = "slider_dragging"
)

const verticalSuffix = "-vertical"

// Vertical returns the vertical modifier of a structural class.
func Vertical(class string) string {
	return class + verticalSuffix
}
