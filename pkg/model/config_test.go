package model

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/vango-dev/rangeslider/pkg/cell"
)

func newQuiet(o Overrides) *Config {
	return New(o, WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
}

func TestNewDefaults(t *testing.T) {
	c := newQuiet(Overrides{})
	got := c.Snapshot()
	want := Defaults()

	if got.IsRange != want.IsRange || got.HasDefaultValues != want.HasDefaultValues ||
		got.IsVertical != want.IsVertical || got.ValueLabelDisplayed != want.ValueLabelDisplayed ||
		got.LimitsDisplayed != want.LimitsDisplayed {
		t.Errorf("flags = %+v, want %+v", got, want)
	}
	if got.MinValue != 0 || got.MaxValue != 100 || got.Step != 1 {
		t.Errorf("bounds = %v..%v step %v", got.MinValue, got.MaxValue, got.Step)
	}
	if got.LeftHandleValue != 20 || got.RightHandleValue != 100 {
		t.Errorf("handles = %v, %v; want 20, 100", got.LeftHandleValue, got.RightHandleValue)
	}
	if len(got.DefaultValues) != 3 || got.PointsNumber != 5 {
		t.Errorf("defaultValues = %v pointsNumber = %d", got.DefaultValues, got.PointsNumber)
	}
}

func TestDefaultsAreNotShared(t *testing.T) {
	a := Defaults()
	a.DefaultValues[0] = "changed"
	if Defaults().DefaultValues[0] != "first" {
		t.Error("Defaults() returned shared label slice")
	}
}

func TestConstructionScenarios(t *testing.T) {
	tests := []struct {
		name      string
		overrides Overrides
		left      float64
		right     float64
	}{
		{
			name:      "snap down",
			overrides: Overrides{MinValue: Number(0), MaxValue: Number(100), Step: Number(10), LeftHandleValue: Number(23)},
			left:      20,
			right:     100,
		},
		{
			name:      "snap up",
			overrides: Overrides{MinValue: Number(0), MaxValue: Number(100), Step: Number(10), LeftHandleValue: Number(27)},
			left:      30,
			right:     100,
		},
		{
			name:      "half step rounds down",
			overrides: Overrides{Step: Number(10), LeftHandleValue: Number(25)},
			left:      20,
			right:     100,
		},
		{
			name:      "right clamps up to left",
			overrides: Overrides{IsRange: Bool(true), LeftHandleValue: Number(80), RightHandleValue: Number(20)},
			left:      80,
			right:     80,
		},
		{
			name:      "range keeps both",
			overrides: Overrides{IsRange: Bool(true), LeftHandleValue: Number(10), RightHandleValue: Number(90)},
			left:      10,
			right:     90,
		},
		{
			name:      "left below min",
			overrides: Overrides{MinValue: Number(10), LeftHandleValue: Number(-5)},
			left:      10,
			right:     100,
		},
		{
			name:      "max below min",
			overrides: Overrides{MinValue: Number(50), MaxValue: Number(10), LeftHandleValue: Number(0)},
			left:      50,
			right:     50,
		},
		{
			name:      "default values index",
			overrides: Overrides{HasDefaultValues: Bool(true), IsRange: Bool(true), LeftHandleValue: Number(7), RightHandleValue: Number(1)},
			left:      2,
			right:     2,
		},
		{
			name:      "default values single handle",
			overrides: Overrides{HasDefaultValues: Bool(true), LeftHandleValue: Number(1)},
			left:      1,
			right:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newQuiet(tt.overrides)
			if got := c.LeftHandleValue.Get(); got != tt.left {
				t.Errorf("left = %v, want %v", got, tt.left)
			}
			if got := c.RightHandleValue.Get(); got != tt.right {
				t.Errorf("right = %v, want %v", got, tt.right)
			}
		})
	}
}

func TestConstructionForcesLimitsOff(t *testing.T) {
	c := newQuiet(Overrides{HasDefaultValues: Bool(true), LimitsDisplayed: Bool(true)})
	if c.LimitsDisplayed.Get() {
		t.Error("limitsDisplayed = true with hasDefaultValues")
	}
}

func TestConstructionRepairsInvalidInput(t *testing.T) {
	c := newQuiet(Overrides{
		Step:          Number(0),
		PointsNumber:  Int(-3),
		MinValue:      Number(math.NaN()),
		DefaultValues: Labels{},
	})
	if c.Step.Get() != 1 {
		t.Errorf("step = %v, want 1", c.Step.Get())
	}
	if c.PointsNumber.Get() != 1 {
		t.Errorf("pointsNumber = %v, want 1", c.PointsNumber.Get())
	}
	if c.MinValue.Get() != 0 {
		t.Errorf("minValue = %v, want default 0", c.MinValue.Get())
	}
	if len(c.DefaultValues.Get()) != 3 {
		t.Errorf("defaultValues = %v, want defaults", c.DefaultValues.Get())
	}
}

func TestMinMaxOrdering(t *testing.T) {
	c := newQuiet(Overrides{})
	for _, candidate := range []float64{-50, 0, 99, 100, 101, 1e6} {
		c.MinValue.Set(candidate)
		if c.MinValue.Get() > c.MaxValue.Get() {
			t.Fatalf("after MinValue.Set(%v): min %v > max %v", candidate, c.MinValue.Get(), c.MaxValue.Get())
		}
	}
	if c.MinValue.Get() != 100 {
		t.Errorf("min = %v, want clamped to max 100", c.MinValue.Get())
	}

	c.MaxValue.Set(50)
	if c.MaxValue.Get() != 100 {
		t.Errorf("max = %v, want clamped to min 100", c.MaxValue.Get())
	}
}

func TestStepValidator(t *testing.T) {
	c := newQuiet(Overrides{})
	tests := []struct {
		in   float64
		want float64
	}{
		{5, 5},
		{1, 1},
		{0.5, 1},
		{-3, 1},
	}
	for _, tt := range tests {
		c.Step.Set(tt.in)
		if got := c.Step.Get(); got != tt.want {
			t.Errorf("Step.Set(%v) -> %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPointsNumberValidator(t *testing.T) {
	c := newQuiet(Overrides{})
	c.PointsNumber.Set(0)
	if c.PointsNumber.Get() != 1 {
		t.Errorf("pointsNumber = %d, want 1", c.PointsNumber.Get())
	}
	c.PointsNumber.Set(12)
	if c.PointsNumber.Get() != 12 {
		t.Errorf("pointsNumber = %d, want 12", c.PointsNumber.Get())
	}
}

func TestDefaultValuesAndLimitsExclusive(t *testing.T) {
	c := newQuiet(Overrides{})

	steps := []struct {
		set   func()
		name  string
		hasDV bool
		lim   bool
	}{
		{func() { c.HasDefaultValues.Set(true) }, "hasDefaultValues on", true, false},
		{func() { c.LimitsDisplayed.Set(true) }, "limits on", false, true},
		{func() { c.LimitsDisplayed.Set(false) }, "limits off", false, false},
		{func() { c.HasDefaultValues.Set(true) }, "hasDefaultValues on again", true, false},
		{func() { c.HasDefaultValues.Set(false) }, "hasDefaultValues off", false, false},
		{func() { c.LimitsDisplayed.Set(true) }, "limits on again", false, true},
	}
	for _, s := range steps {
		s.set()
		if c.HasDefaultValues.Get() && c.LimitsDisplayed.Get() {
			t.Fatalf("%s: both flags true", s.name)
		}
		if c.HasDefaultValues.Get() != s.hasDV || c.LimitsDisplayed.Get() != s.lim {
			t.Errorf("%s: hasDefaultValues=%v limits=%v, want %v %v",
				s.name, c.HasDefaultValues.Get(), c.LimitsDisplayed.Get(), s.hasDV, s.lim)
		}
	}
}

func TestExclusiveFlagsWhenClearFails(t *testing.T) {
	c := newQuiet(Overrides{})

	// Exhaust the limits cell's nesting limit, then switch default values
	// on from the innermost level so clearing the limits flag fails.
	var hasDVErr error
	c.LimitsDisplayed.Subscribe(func(v bool) {
		if !v {
			return
		}
		if err := c.LimitsDisplayed.Set(true); err != nil && hasDVErr == nil {
			hasDVErr = c.HasDefaultValues.Set(true)
		}
	})
	if err := c.LimitsDisplayed.Set(true); err != nil {
		t.Fatalf("LimitsDisplayed.Set(true) = %v", err)
	}

	if !errors.Is(hasDVErr, cell.ErrReentrancy) {
		t.Errorf("HasDefaultValues.Set(true) error = %v, want ErrReentrancy", hasDVErr)
	}
	if c.HasDefaultValues.Get() || !c.LimitsDisplayed.Get() {
		t.Errorf("hasDefaultValues=%v limits=%v, want false true",
			c.HasDefaultValues.Get(), c.LimitsDisplayed.Get())
	}
}

func TestSingleHandlePinsRight(t *testing.T) {
	c := newQuiet(Overrides{})

	c.RightHandleValue.Set(30)
	if c.RightHandleValue.Get() != 100 {
		t.Errorf("right = %v, want 100", c.RightHandleValue.Get())
	}

	c.MaxValue.Set(250)
	if c.RightHandleValue.Get() != 250 {
		t.Errorf("right after max change = %v, want 250", c.RightHandleValue.Get())
	}

	c.HasDefaultValues.Set(true)
	if c.RightHandleValue.Get() != 2 {
		t.Errorf("right in default-values mode = %v, want 2", c.RightHandleValue.Get())
	}

	c.DefaultValues.Set(Labels{"a", "b", "c", "d", "e"})
	if c.RightHandleValue.Get() != 4 {
		t.Errorf("right after labels change = %v, want 4", c.RightHandleValue.Get())
	}
}

func TestToggleRangeOffPinsRight(t *testing.T) {
	c := newQuiet(Overrides{IsRange: Bool(true), LeftHandleValue: Number(10), RightHandleValue: Number(40)})
	if c.RightHandleValue.Get() != 40 {
		t.Fatalf("right = %v, want 40", c.RightHandleValue.Get())
	}

	c.IsRange.Set(false)
	if c.RightHandleValue.Get() != c.MaxValue.Get() {
		t.Errorf("right = %v, want max %v", c.RightHandleValue.Get(), c.MaxValue.Get())
	}
	if c.LeftHandleValue.Get() != 10 {
		t.Errorf("left = %v, want 10", c.LeftHandleValue.Get())
	}
}

func TestRangeHandlesOrdered(t *testing.T) {
	c := newQuiet(Overrides{IsRange: Bool(true), LeftHandleValue: Number(30), RightHandleValue: Number(60)})

	c.LeftHandleValue.Set(90)
	if c.LeftHandleValue.Get() != 60 {
		t.Errorf("left = %v, want clamped to right 60", c.LeftHandleValue.Get())
	}

	c.RightHandleValue.Set(10)
	if c.RightHandleValue.Get() != 60 {
		t.Errorf("right = %v, want clamped to left 60", c.RightHandleValue.Get())
	}
}

func TestBoundChangeRevalidatesHandles(t *testing.T) {
	c := newQuiet(Overrides{IsRange: Bool(true), LeftHandleValue: Number(20), RightHandleValue: Number(80)})

	c.MaxValue.Set(50)
	if c.LeftHandleValue.Get() != 20 || c.RightHandleValue.Get() != 50 {
		t.Errorf("after max=50: %v..%v, want 20..50", c.LeftHandleValue.Get(), c.RightHandleValue.Get())
	}

	c.MinValue.Set(45)
	if c.LeftHandleValue.Get() != 45 || c.RightHandleValue.Get() != 50 {
		t.Errorf("after min=45: %v..%v, want 45..50", c.LeftHandleValue.Get(), c.RightHandleValue.Get())
	}

	c.MinValue.Set(0)
	c.MaxValue.Set(100)
	c.Step.Set(30)
	if c.LeftHandleValue.Get() != 30 || c.RightHandleValue.Get() != 60 {
		t.Errorf("after step=30: %v..%v, want 30..60", c.LeftHandleValue.Get(), c.RightHandleValue.Get())
	}
}

func TestHandlesStayInBoundsAndAligned(t *testing.T) {
	c := newQuiet(Overrides{IsRange: Bool(true), LeftHandleValue: Number(13), RightHandleValue: Number(77)})

	writes := []func(){
		func() { c.Step.Set(7) },
		func() { c.MinValue.Set(5) },
		func() { c.MaxValue.Set(60) },
		func() { c.Step.Set(3) },
		func() { c.MinValue.Set(-20) },
		func() { c.LeftHandleValue.Set(-19) },
		func() { c.RightHandleValue.Set(59) },
		func() { c.Step.Set(11) },
		func() { c.MaxValue.Set(200) },
		func() { c.MinValue.Set(150) },
	}

	for i, w := range writes {
		w()
		s := c.Snapshot()
		for _, v := range []float64{s.LeftHandleValue, s.RightHandleValue} {
			if v < s.MinValue || v > s.MaxValue {
				t.Fatalf("write %d: handle %v outside [%v, %v]", i, v, s.MinValue, s.MaxValue)
			}
			off := math.Mod(v-s.MinValue, s.Step)
			if off != 0 && v != s.MaxValue {
				t.Errorf("write %d: handle %v not aligned to step %v from %v", i, v, s.Step, s.MinValue)
			}
		}
		if s.LeftHandleValue > s.RightHandleValue {
			t.Errorf("write %d: left %v > right %v", i, s.LeftHandleValue, s.RightHandleValue)
		}
	}
}

func TestSetIsIdempotent(t *testing.T) {
	c := newQuiet(Overrides{IsRange: Bool(true), Step: Number(5)})
	for _, v := range []float64{-3, 12, 13, 47.5, 99, 140} {
		c.LeftHandleValue.Set(v)
		got := c.LeftHandleValue.Get()
		c.LeftHandleValue.Set(got)
		if c.LeftHandleValue.Get() != got {
			t.Errorf("LeftHandleValue.Set(%v) not a fixed point: %v -> %v", v, got, c.LeftHandleValue.Get())
		}

		c.MinValue.Set(v)
		m := c.MinValue.Get()
		c.MinValue.Set(m)
		if c.MinValue.Get() != m {
			t.Errorf("MinValue not a fixed point at %v", m)
		}
		c.MinValue.Set(0)
	}
}

func TestSnapUnalignedMax(t *testing.T) {
	c := newQuiet(Overrides{MinValue: Number(9.5), MaxValue: Number(100), Step: Number(5.5357)})

	steps := []struct {
		set  float64
		want float64
	}{
		{155, 100},
		{100, 98.0712},
		{98.0712, 98.0712},
		{99.9, 98.0712},
	}
	for _, s := range steps {
		c.LeftHandleValue.Set(s.set)
		if got := c.LeftHandleValue.Get(); got != s.want {
			t.Errorf("LeftHandleValue.Set(%v) = %v, want %v", s.set, got, s.want)
		}
	}
}

func TestRejections(t *testing.T) {
	var rejected []string
	c := New(Overrides{},
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithRejectHook(func(name string, err error) { rejected = append(rejected, name) }),
	)

	if err := c.MinValue.Set(math.NaN()); !errors.Is(err, ErrNotFinite) {
		t.Errorf("MinValue.Set(NaN) error = %v, want ErrNotFinite", err)
	}
	if err := c.LeftHandleValue.Set(math.Inf(1)); !errors.Is(err, ErrNotFinite) {
		t.Errorf("LeftHandleValue.Set(+Inf) error = %v", err)
	}
	if err := c.DefaultValues.Set(Labels{}); !errors.Is(err, ErrNoLabels) {
		t.Errorf("DefaultValues.Set(empty) error = %v, want ErrNoLabels", err)
	}
	if !errors.Is(c.DefaultValues.Set(nil), cell.ErrRejected) {
		t.Error("DefaultValues.Set(nil) not rejected")
	}

	if c.MinValue.Get() != 0 || c.LeftHandleValue.Get() != 20 || len(c.DefaultValues.Get()) != 3 {
		t.Errorf("state changed by rejected writes: %+v", c.Snapshot())
	}
	if len(rejected) != 4 {
		t.Errorf("reject hook calls = %v, want 4", rejected)
	}
}

func TestDefaultValuesIndices(t *testing.T) {
	c := newQuiet(Overrides{HasDefaultValues: Bool(true), IsRange: Bool(true),
		DefaultValues: Labels{"xs", "s", "m", "l", "xl"}, LeftHandleValue: Number(1), RightHandleValue: Number(3)})

	c.LeftHandleValue.Set(1.6)
	if c.LeftHandleValue.Get() != 2 {
		t.Errorf("left = %v, want rounded index 2", c.LeftHandleValue.Get())
	}
	c.RightHandleValue.Set(40)
	if c.RightHandleValue.Get() != 4 {
		t.Errorf("right = %v, want last index 4", c.RightHandleValue.Get())
	}

	c.DefaultValues.Set(Labels{"a", "b"})
	if c.LeftHandleValue.Get() != 1 || c.RightHandleValue.Get() != 1 {
		t.Errorf("after shrinking labels: %v..%v, want 1..1", c.LeftHandleValue.Get(), c.RightHandleValue.Get())
	}

	c.HasDefaultValues.Set(false)
	if c.LeftHandleValue.Get() != 1 || c.RightHandleValue.Get() != 1 {
		t.Errorf("after leaving default-values mode: %v..%v", c.LeftHandleValue.Get(), c.RightHandleValue.Get())
	}
}

func TestSnapToStep(t *testing.T) {
	tests := []struct {
		v, min, max, step float64
		want              float64
	}{
		{23, 0, 100, 10, 20},
		{27, 0, 100, 10, 30},
		{25, 0, 100, 10, 20},
		{98, 0, 100, 10, 100},
		{96, 0, 95, 10, 90},
		{3.3, 0.1, 10, 1, 3.1},
		{3.7, 0.1, 10, 1, 4.1},
		{-7, -10, 10, 5, -5},
		{120, 0, 100, 10, 100},
		{-1, 0, 100, 10, 0},
	}
	for _, tt := range tests {
		if got := SnapToStep(tt.v, tt.min, tt.max, tt.step); got != tt.want {
			t.Errorf("SnapToStep(%v, %v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, tt.step, got, tt.want)
		}
	}
}
