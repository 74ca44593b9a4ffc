package slider

import (
	"errors"
	"math"
	"testing"

	"github.com/vango-dev/rangeslider/pkg/cell"
	"github.com/vango-dev/rangeslider/pkg/model"
	"github.com/vango-dev/rangeslider/pkg/vdom"
	"github.com/vango-dev/rangeslider/pkg/view"
	"github.com/vango-dev/rangeslider/pkg/vtest"
)

func newTestSlider(o model.Overrides, opts ...Option) (*vdom.VNode, *Slider) {
	container := vdom.Div()
	logger := vtest.Logger()
	opts = append([]Option{WithLogger(logger)}, opts...)
	return container, New(container, o, opts...)
}

// drag moves a handle to pos on a 100px wide track.
func drag(s *Slider, side view.Side, pos float64) {
	rect := vdom.Rect{Width: 100, Height: 10}
	s.View().PressHandle(side)
	s.View().Move(&vdom.Event{ClientX: pos * 100, Rect: rect})
	s.View().Release()
}

func TestNew(t *testing.T) {
	container, s := newTestSlider(model.Overrides{})
	if len(container.Children) != 1 || container.Children[0] != s.Root() {
		t.Fatal("root not appended to container")
	}
	if got := Get(s, LeftHandleValue); got != 20 {
		t.Errorf("leftHandleValue = %v, want 20", got)
	}
	if got := s.State().LeftHandlePosition.Get(); got != 0.2 {
		t.Errorf("left position = %v, want 0.2", got)
	}
	if got := len(vdom.FindAllByClass(container, view.ClassScaleValue)); got != 5 {
		t.Errorf("ticks = %d, want 5", got)
	}
}

func TestConstructionScenarios(t *testing.T) {
	tests := []struct {
		name      string
		overrides model.Overrides
		left      float64
		right     float64
	}{
		{
			name: "snap down",
			overrides: model.Overrides{
				MinValue: model.Number(0), MaxValue: model.Number(100),
				Step: model.Number(10), LeftHandleValue: model.Number(23),
			},
			left: 20, right: 100,
		},
		{
			name: "snap up",
			overrides: model.Overrides{
				MinValue: model.Number(0), MaxValue: model.Number(100),
				Step: model.Number(10), LeftHandleValue: model.Number(27),
			},
			left: 30, right: 100,
		},
		{
			name: "right clamped up to left",
			overrides: model.Overrides{
				IsRange: model.Bool(true), LeftHandleValue: model.Number(80),
				RightHandleValue: model.Number(20),
			},
			left: 80, right: 80,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, s := newTestSlider(tt.overrides)
			if got := Get(s, LeftHandleValue); got != tt.left {
				t.Errorf("left = %v, want %v", got, tt.left)
			}
			if got := Get(s, RightHandleValue); got != tt.right {
				t.Errorf("right = %v, want %v", got, tt.right)
			}
		})
	}
}

func TestDragSnapsAndSyncs(t *testing.T) {
	container, s := newTestSlider(model.Overrides{IsRange: model.Bool(true)})

	drag(s, view.Left, 0.424)
	if got := Get(s, LeftHandleValue); got != 42 {
		t.Fatalf("left = %v, want 42", got)
	}
	if got := s.State().LeftHandlePosition.Get(); got != 0.42 {
		t.Errorf("left position = %v, want 0.42", got)
	}
	left := vdom.FindByClass(container, view.ClassHandleLeft)
	if got := vdom.Style(left, "left"); got != "42%" {
		t.Errorf("left handle at %q, want 42%%", got)
	}
	if got := vdom.TextContent(left); got != "42" {
		t.Errorf("left label = %q, want 42", got)
	}

	drag(s, view.Right, 0.9)
	if got := Get(s, RightHandleValue); got != 90 {
		t.Errorf("right = %v, want 90", got)
	}
}

func TestDragCannotCross(t *testing.T) {
	_, s := newTestSlider(model.Overrides{IsRange: model.Bool(true)})

	drag(s, view.Left, 0.95)
	if got := Get(s, LeftHandleValue); got != 80 {
		t.Errorf("left = %v, want 80", got)
	}
	if got := s.State().LeftHandlePosition.Get(); got != 0.8 {
		t.Errorf("left position = %v, want 0.8", got)
	}

	drag(s, view.Right, 0.1)
	if got := Get(s, RightHandleValue); got != 80 {
		t.Errorf("right = %v, want 80", got)
	}
}

func TestGestureNotifiesOnce(t *testing.T) {
	_, s := newTestSlider(model.Overrides{})
	var calls []float64
	Subscribe(s, LeftHandleValue, func(v float64) { calls = append(calls, v) })

	drag(s, view.Left, 0.5)
	if len(calls) != 1 || calls[0] != 50 {
		t.Errorf("calls = %v, want [50]", calls)
	}
}

func TestClickToJump(t *testing.T) {
	container, s := newTestSlider(model.Overrides{})
	vdom.AssignAllHIDs(container, vdom.NewHIDGenerator())

	s.Root().Handler("click")(&vdom.Event{
		Target:  s.Root().HID,
		ClientX: 130,
		Rect:    vdom.Rect{Left: 100, Width: 200},
	})
	if got := Get(s, LeftHandleValue); got != 15 {
		t.Errorf("left = %v, want 15", got)
	}

	vdom.FindByClass(container, view.ClassMaxValue).Handler("click")(&vdom.Event{})
	if got := Get(s, LeftHandleValue); got != 100 {
		t.Errorf("left = %v, want 100", got)
	}
}

func TestSetUpdatesView(t *testing.T) {
	container, s := newTestSlider(model.Overrides{})

	if err := Set(s, LeftHandleValue, 55); err != nil {
		t.Fatalf("Set: %v", err)
	}
	left := vdom.FindByClass(container, view.ClassHandleLeft)
	if got := vdom.Style(left, "left"); got != "55%" {
		t.Errorf("left handle at %q, want 55%%", got)
	}
	if got := s.State().LeftHandlePosition.Get(); got != 0.55 {
		t.Errorf("left position = %v, want 0.55", got)
	}

	if err := Set(s, IsVertical, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !vdom.HasClass(s.Root(), view.Vertical(view.ClassRoot)) {
		t.Error("root not vertical")
	}
	if got := vdom.Style(left, "bottom"); got != "55%" {
		t.Errorf("vertical handle at %q, want 55%%", got)
	}

	if err := Set(s, ValueLabelDisplayed, false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if vdom.FindByClass(container, view.ClassHandleLabel) != nil {
		t.Error("label still shown")
	}
}

func TestToggleRange(t *testing.T) {
	container, s := newTestSlider(model.Overrides{})

	Set(s, IsRange, true)
	Set(s, RightHandleValue, 60)
	if vdom.FindByClass(container, view.ClassHandleRight) == nil {
		t.Fatal("right handle missing in range mode")
	}
	if got := s.State().RightHandlePosition.Get(); got != 0.6 {
		t.Errorf("right position = %v, want 0.6", got)
	}

	Set(s, IsRange, false)
	if got := Get(s, RightHandleValue); got != Get(s, MaxValue) {
		t.Errorf("right = %v, want maxValue", got)
	}
	if vdom.FindByClass(container, view.ClassHandleRight) != nil {
		t.Error("right handle shown in single mode")
	}

	Set(s, RightHandleValue, 10)
	if got := Get(s, RightHandleValue); got != 100 {
		t.Errorf("right = %v after direct write, want 100", got)
	}
}

func TestScaleFollowsBounds(t *testing.T) {
	container, s := newTestSlider(model.Overrides{})

	Set(s, MaxValue, 50)
	if got := vdom.TextContent(vdom.FindByClass(container, view.ClassMaxValue)); got != "50" {
		t.Errorf("max label = %q, want 50", got)
	}
	ticks := vdom.FindAllByClass(container, view.ClassScaleValue)
	if got := vdom.TextContent(ticks[len(ticks)-1]); got != "50" {
		t.Errorf("last tick = %q, want 50", got)
	}
	if got := s.State().LeftHandlePosition.Get(); got != 0.4 {
		t.Errorf("left position = %v, want 0.4", got)
	}

	Set(s, PointsNumber, 2)
	if got := len(vdom.FindAllByClass(container, view.ClassScaleValue)); got != 2 {
		t.Errorf("ticks = %d, want 2", got)
	}
}

func TestDefaultValuesMode(t *testing.T) {
	container, s := newTestSlider(model.Overrides{})

	Set(s, HasDefaultValues, true)
	if Get(s, LimitsDisplayed) {
		t.Error("limits still displayed in default-values mode")
	}
	if vdom.FindByClass(container, view.ClassMinValue) != nil {
		t.Error("limit label shown")
	}
	if got := len(vdom.FindAllByClass(container, view.ClassDefaultValue)); got != 3 {
		t.Fatalf("default labels = %d, want 3", got)
	}
	if got := vdom.TextContent(vdom.FindByClass(container, view.ClassHandleLabel)); got != "third" {
		t.Errorf("handle label = %q, want third", got)
	}

	drag(s, view.Left, 0.3)
	if got := Get(s, LeftHandleValue); got != 1 {
		t.Errorf("left = %v, want 1", got)
	}
	if got := vdom.TextContent(vdom.FindByClass(container, view.ClassHandleLabel)); got != "second" {
		t.Errorf("handle label = %q, want second", got)
	}

	Set(s, DefaultValues, model.Labels{"a", "b", "c", "d", "e"})
	if got := len(vdom.FindAllByClass(container, view.ClassDefaultValue)); got != 5 {
		t.Errorf("default labels = %d, want 5", got)
	}
	if got := s.State().LeftHandlePosition.Get(); got != 0.25 {
		t.Errorf("left position = %v, want 0.25", got)
	}

	Set(s, LimitsDisplayed, true)
	if Get(s, HasDefaultValues) {
		t.Error("default values still on after limits were enabled")
	}
	if vdom.FindByClass(container, view.ClassDefaultValue) != nil {
		t.Error("default labels still shown")
	}
	if vdom.FindByClass(container, view.ClassMinValue) == nil {
		t.Error("limits not shown")
	}
}

func TestSubscribe(t *testing.T) {
	_, s := newTestSlider(model.Overrides{})
	var got []bool
	sub := Subscribe(s, IsRange, func(v bool) { got = append(got, v) })

	Set(s, IsRange, true)
	Unsubscribe(s, IsRange, sub)
	Set(s, IsRange, false)

	if len(got) != 1 || !got[0] {
		t.Errorf("notifications = %v, want [true]", got)
	}
}

func TestRejectedWrite(t *testing.T) {
	var hooked []string
	_, s := newTestSlider(model.Overrides{}, WithRejectHook(func(name string, err error) {
		hooked = append(hooked, name)
	}))

	err := Set(s, MinValue, math.NaN())
	if !errors.Is(err, cell.ErrRejected) || !errors.Is(err, model.ErrNotFinite) {
		t.Fatalf("err = %v", err)
	}
	if Get(s, MinValue) != 0 {
		t.Error("rejected write changed the value")
	}
	if len(hooked) != 1 || hooked[0] != "minValue" {
		t.Errorf("hook calls = %v", hooked)
	}
}

func TestKeyString(t *testing.T) {
	if LeftHandleValue.String() != "leftHandleValue" || DefaultValues.Option() != model.OptDefaultValues {
		t.Error("key names do not match options")
	}
}

func TestZeroKeyPanics(t *testing.T) {
	_, s := newTestSlider(model.Overrides{})
	defer func() {
		if recover() == nil {
			t.Error("zero key did not panic")
		}
	}()
	Get(s, Key[bool]{})
}
