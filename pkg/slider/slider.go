package slider

import (
	"log/slog"

	"github.com/vango-dev/rangeslider/pkg/cell"
	"github.com/vango-dev/rangeslider/pkg/model"
	"github.com/vango-dev/rangeslider/pkg/state"
	"github.com/vango-dev/rangeslider/pkg/vdom"
	"github.com/vango-dev/rangeslider/pkg/view"
)

// Option configures New.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	policy   view.TickPolicy
	onReject func(name string, err error)
}

// WithLogger sets the logger shared by the config, state and view.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTickPolicy selects how the scale picks its tick count.
func WithTickPolicy(p view.TickPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithRejectHook is called for every rejected config write.
func WithRejectHook(fn func(name string, err error)) Option {
	return func(o *options) { o.onReject = fn }
}

// Slider is one widget instance. It is not safe for concurrent use.
type Slider struct {
	config *model.Config
	state  *state.State
	view   *view.View
	logger *slog.Logger

	// syncing is set while config values are copied into the state.
	syncing bool
}

// New builds a slider from the defaults with overrides applied and
// appends its root node to container.
func New(container *vdom.VNode, overrides model.Overrides, opts ...Option) *Slider {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Slider{logger: o.logger.With("component", "slider")}
	s.config = model.New(overrides,
		model.WithLogger(o.logger),
		model.WithRejectHook(o.onReject),
	)

	snap := s.config.Snapshot()
	s.state = state.New(
		snap.Position(snap.LeftHandleValue),
		snap.Position(snap.RightHandleValue),
		cell.WithLogger(o.logger.With("component", "slider-state")),
	)
	s.view = view.New(container, snap, view.Gestures{
		OnLeft:  func(pos float64) { s.state.LeftHandlePosition.Set(pos) },
		OnRight: func(pos float64) { s.state.RightHandlePosition.Set(pos) },
	}, view.WithTickPolicy(o.policy), view.WithLogger(o.logger))

	s.bindState()
	s.bindConfig()
	return s
}

// bindState forwards gesture positions to the config handles.
func (s *Slider) bindState() {
	s.state.LeftHandlePosition.Subscribe(func(pos float64) {
		if s.syncing {
			return
		}
		s.config.LeftHandleValue.Set(s.config.Snapshot().ValueAt(pos))
	})
	s.state.RightHandlePosition.Subscribe(func(pos float64) {
		if s.syncing {
			return
		}
		s.config.RightHandleValue.Set(s.config.Snapshot().ValueAt(pos))
	})
}

// bindConfig keeps the view and the state in step with the config.
func (s *Slider) bindConfig() {
	c := s.config
	onBool := func(update func(model.Settings)) func(bool) {
		return func(bool) { update(c.Snapshot()) }
	}
	onNumber := func(update func(model.Settings)) func(float64) {
		return func(float64) { update(c.Snapshot()) }
	}

	c.IsRange.Subscribe(onBool(func(snap model.Settings) {
		s.view.UpdateIsRange(snap)
		s.syncPositions(snap)
	}))
	c.HasDefaultValues.Subscribe(onBool(func(snap model.Settings) {
		s.view.UpdateDefaultValues(snap)
		s.syncPositions(snap)
	}))
	c.IsVertical.Subscribe(onBool(s.view.UpdateIsVertical))
	c.ValueLabelDisplayed.Subscribe(onBool(s.view.UpdateValueLabelDisplayed))
	c.LimitsDisplayed.Subscribe(onBool(s.view.UpdateLimitsDisplayed))

	scale := func(snap model.Settings) {
		s.view.UpdateScale(snap)
		s.syncPositions(snap)
	}
	c.MinValue.Subscribe(onNumber(scale))
	c.MaxValue.Subscribe(onNumber(scale))
	c.Step.Subscribe(onNumber(scale))
	c.PointsNumber.Subscribe(func(int) { scale(c.Snapshot()) })
	c.DefaultValues.Subscribe(func(model.Labels) {
		snap := c.Snapshot()
		s.view.UpdateDefaultValues(snap)
		s.syncPositions(snap)
	})

	values := func(snap model.Settings) {
		s.view.UpdateValues(snap)
		s.syncPositions(snap)
	}
	c.LeftHandleValue.Subscribe(onNumber(values))
	c.RightHandleValue.Subscribe(onNumber(values))
}

// syncPositions copies the handle values into the state without
// triggering the state subscribers.
func (s *Slider) syncPositions(snap model.Settings) {
	if s.syncing {
		return
	}
	s.syncing = true
	defer func() { s.syncing = false }()
	s.state.LeftHandlePosition.Set(snap.Position(snap.LeftHandleValue))
	s.state.RightHandlePosition.Set(snap.Position(snap.RightHandleValue))
}

// Root returns the slider's root node.
func (s *Slider) Root() *vdom.VNode { return s.view.Root() }

// Config returns the option cells.
func (s *Slider) Config() *model.Config { return s.config }

// State returns the normalized handle positions.
func (s *Slider) State() *state.State { return s.state }

// View returns the view.
func (s *Slider) View() *view.View { return s.view }

// Settings returns a snapshot of every option.
func (s *Slider) Settings() model.Settings { return s.config.Snapshot() }
