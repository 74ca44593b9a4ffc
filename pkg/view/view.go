package view

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/vango-dev/rangeslider/pkg/model"
	"github.com/vango-dev/rangeslider/pkg/vdom"
)

const (
	// OverlapDistance is the position gap under which range handles are
	// pushed apart visually.
	OverlapDistance = 0.02

	// OverlapOffsetPx is how far each handle is shifted when overlapping.
	OverlapOffsetPx = 4
)

// Gestures receives the positions produced by user input. Nil callbacks
// are ignored.
type Gestures struct {
	OnLeft  func(position float64)
	OnRight func(position float64)
}

// Option configures a View.
type Option func(*View)

// WithTickPolicy selects how many scale ticks are drawn.
func WithTickPolicy(p TickPolicy) Option {
	return func(v *View) { v.policy = p }
}

// WithLogger sets the logger for gesture diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) { v.logger = logger }
}

// View owns the slider's nodes.
type View struct {
	root      *vdom.VNode
	rangeLine *vdom.VNode
	left      *handle
	right     *handle
	ticks     []*vdom.VNode
	defaults  []*vdom.VNode
	minLimit  *vdom.VNode
	maxLimit  *vdom.VNode

	settings model.Settings
	gestures Gestures
	policy   TickPolicy
	logger   *slog.Logger

	dragging bool
	dragSide Side
}

// New builds the slider nodes for snap and appends the root to container.
func New(container *vdom.VNode, snap model.Settings, gestures Gestures, opts ...Option) *View {
	v := &View{
		settings: snap,
		gestures: gestures,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With("component", "slider-view")

	v.root = vdom.Div(
		vdom.Class(ClassRoot),
		vdom.Key("slider"),
		vdom.OnClick(v.onRootClick),
		vdom.OnMouseMove(func(ev *vdom.Event) { v.Move(ev) }),
		vdom.OnMouseUp(func(*vdom.Event) { v.Release() }),
	)
	v.rangeLine = vdom.Div(vdom.Class(ClassRangeLine), vdom.Key("range-line"))
	v.left = newHandle(Left, func(*vdom.Event) { v.PressHandle(Left) })
	v.right = newHandle(Right, func(*vdom.Event) { v.PressHandle(Right) })
	v.minLimit = vdom.Div(vdom.Class(ClassMinValue), vdom.Key("limit-min"),
		vdom.OnClick(func(*vdom.Event) { v.jump(0) }))
	v.maxLimit = vdom.Div(vdom.Class(ClassMaxValue), vdom.Key("limit-max"),
		vdom.OnClick(func(*vdom.Event) { v.jump(1) }))

	v.rebuildTicks()
	v.rebuildDefaults()
	v.renderLimits()
	v.applyVertical()
	v.layout()
	v.renderValues()

	vdom.AppendChild(container, v.root)
	return v
}

// Root returns the slider's root node.
func (v *View) Root() *vdom.VNode { return v.root }

// Settings returns the snapshot the view last rendered.
func (v *View) Settings() model.Settings { return v.settings }

// UpdateIsRange attaches or detaches the right handle.
func (v *View) UpdateIsRange(s model.Settings) {
	v.settings = s
	if !s.IsRange && v.dragging && v.dragSide == Right {
		v.Release()
	}
	v.layout()
	v.renderValues()
}

// UpdateIsVertical switches every node between the horizontal and
// vertical layout.
func (v *View) UpdateIsVertical(s model.Settings) {
	v.settings = s
	v.applyVertical()
	v.placeTicks()
	v.placeDefaults()
	v.placeLimits()
	v.renderValues()
}

// UpdateValueLabelDisplayed shows or hides the handle labels.
func (v *View) UpdateValueLabelDisplayed(s model.Settings) {
	v.settings = s
	v.layout()
}

// UpdateLimitsDisplayed shows or hides the min and max labels.
func (v *View) UpdateLimitsDisplayed(s model.Settings) {
	v.settings = s
	v.renderLimits()
	v.layout()
}

// UpdateDefaultValues redraws the label scale. It covers both the
// hasDefaultValues flag and the label list.
func (v *View) UpdateDefaultValues(s model.Settings) {
	v.settings = s
	v.rebuildDefaults()
	v.layout()
	v.renderValues()
}

// UpdateScale redraws the ticks and limits after min, max, step or
// pointsNumber changed.
func (v *View) UpdateScale(s model.Settings) {
	v.settings = s
	v.rebuildTicks()
	v.renderLimits()
	v.layout()
	v.renderValues()
}

// UpdateValues moves the handles, their labels and the range line.
func (v *View) UpdateValues(s model.Settings) {
	v.settings = s
	v.renderValues()
}

// layout puts the attached nodes in their canonical order.
func (v *View) layout() {
	s := v.settings
	children := []*vdom.VNode{v.rangeLine, v.left.node}
	if s.IsRange {
		children = append(children, v.right.node)
	}
	if s.HasDefaultValues {
		children = append(children, v.defaults...)
	} else {
		children = append(children, v.ticks...)
	}
	if s.LimitsDisplayed && !s.HasDefaultValues {
		children = append(children, v.minLimit, v.maxLimit)
	}
	v.root.Children = children

	v.left.showLabel(s.ValueLabelDisplayed)
	v.right.showLabel(s.ValueLabelDisplayed)
}

// applyVertical toggles the vertical modifier on every structural node.
func (v *View) applyVertical() {
	on := v.settings.IsVertical
	toggle := func(n *vdom.VNode, class string) {
		vdom.ToggleClass(n, Vertical(class), on)
	}
	toggle(v.root, ClassRoot)
	toggle(v.rangeLine, ClassRangeLine)
	for _, h := range []*handle{v.left, v.right} {
		toggle(h.node, ClassHandle)
		toggle(h.label, ClassHandleLabel)
	}
	for _, t := range v.ticks {
		toggle(t, ClassScaleValue)
	}
	for _, d := range v.defaults {
		toggle(d, ClassDefaultValue)
		for _, l := range d.Children {
			toggle(l, ClassDefaultValueLabel)
		}
	}
	toggle(v.minLimit, ClassMinValue)
	toggle(v.maxLimit, ClassMaxValue)
}

func (v *View) renderValues() {
	s := v.settings
	lp := s.Position(s.LeftHandleValue)
	rp := s.Position(s.RightHandleValue)

	v.place(v.left.node, lp)
	v.place(v.right.node, rp)
	vdom.SetText(v.left.label, s.Format(s.LeftHandleValue))
	vdom.SetText(v.right.label, s.Format(s.RightHandleValue))

	from, to := 0.0, lp
	if s.IsRange {
		from, to = lp, rp
	}
	v.stretch(v.rangeLine, from, to)

	offset := 0
	if s.IsRange && math.Abs(rp-lp) <= OverlapDistance {
		offset = OverlapOffsetPx
	}
	v.left.shift(-offset, s.IsVertical)
	v.right.shift(offset, s.IsVertical)
}

func (v *View) rebuildTicks() {
	ticks := Ticks(v.settings, v.policy)
	v.ticks = make([]*vdom.VNode, len(ticks))
	for i, t := range ticks {
		pos := t.Position
		v.ticks[i] = vdom.Div(
			vdom.Class(ClassScaleValue),
			vdom.Key(fmt.Sprintf("tick-%d", i)),
			vdom.OnClick(func(*vdom.Event) { v.jump(pos) }),
			vdom.Text(model.FormatNumber(t.Value)),
		)
		if v.settings.IsVertical {
			vdom.AddClass(v.ticks[i], Vertical(ClassScaleValue))
		}
	}
	v.placeTicks()
}

func (v *View) placeTicks() {
	ticks := Ticks(v.settings, v.policy)
	for i, n := range v.ticks {
		if i < len(ticks) {
			v.place(n, ticks[i].Position)
		}
	}
}

func (v *View) rebuildDefaults() {
	labels := v.settings.DefaultValues
	v.defaults = make([]*vdom.VNode, len(labels))
	for i, text := range labels {
		pos := labelPosition(i, len(labels))
		label := vdom.Div(vdom.Class(ClassDefaultValueLabel), vdom.Text(text))
		v.defaults[i] = vdom.Div(
			vdom.Class(ClassDefaultValue),
			vdom.Key(fmt.Sprintf("default-%d", i)),
			vdom.OnClick(func(*vdom.Event) { v.jump(pos) }),
			label,
		)
		if v.settings.IsVertical {
			vdom.AddClass(v.defaults[i], Vertical(ClassDefaultValue))
			vdom.AddClass(label, Vertical(ClassDefaultValueLabel))
		}
	}
	v.placeDefaults()
}

func (v *View) placeDefaults() {
	for i, n := range v.defaults {
		v.place(n, labelPosition(i, len(v.defaults)))
	}
}

func labelPosition(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func (v *View) renderLimits() {
	vdom.SetText(v.minLimit, model.FormatNumber(v.settings.MinValue))
	vdom.SetText(v.maxLimit, model.FormatNumber(v.settings.MaxValue))
	v.placeLimits()
}

func (v *View) placeLimits() {
	v.place(v.minLimit, 0)
	v.place(v.maxLimit, 1)
}

// place positions n along the track.
func (v *View) place(n *vdom.VNode, pos float64) {
	if v.settings.IsVertical {
		vdom.RemoveStyle(n, "left")
		vdom.SetStyle(n, "bottom", percent(pos))
		return
	}
	vdom.RemoveStyle(n, "bottom")
	vdom.SetStyle(n, "left", percent(pos))
}

// stretch makes n span the track between two positions.
func (v *View) stretch(n *vdom.VNode, from, to float64) {
	if to < from {
		from, to = to, from
	}
	if v.settings.IsVertical {
		vdom.RemoveStyle(n, "left")
		vdom.RemoveStyle(n, "width")
		vdom.SetStyle(n, "bottom", percent(from))
		vdom.SetStyle(n, "height", percent(to-from))
		return
	}
	vdom.RemoveStyle(n, "bottom")
	vdom.RemoveStyle(n, "height")
	vdom.SetStyle(n, "left", percent(from))
	vdom.SetStyle(n, "width", percent(to-from))
}

func percent(pos float64) string {
	return strconv.FormatFloat(math.Round(pos*1e6)/1e4, 'f', -1, 64) + "%"
}

func translate(axis string, px int) string {
	return "translate" + axis + "(" + strconv.Itoa(px) + "px)"
}
