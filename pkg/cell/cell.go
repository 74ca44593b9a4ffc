package cell

import (
	"errors"
	"fmt"
	"log/slog"
)

// MaxReentrancy is the deepest a single cell may be nested inside its own Set.
const MaxReentrancy = 16

var (
	// ErrRejected is wrapped by every RejectedError.
	ErrRejected = errors.New("cell: value rejected")

	// ErrReentrancy is returned when a cell is set recursively too deep.
	ErrReentrancy = errors.New("cell: re-entrant set exceeds limit")
)

// Validator maps a candidate to the value that is actually stored.
// Returning an error rejects the write.
type Validator[T any] func(candidate T) (T, error)

// Subscription identifies a subscriber for Unsubscribe.
type Subscription uint64

// RejectedError describes a write discarded by a validator.
type RejectedError struct {
	Cell      string
	Candidate any
	Err       error
}

// Error implements the error interface.
func (e *RejectedError) Error() string {
	name := e.Cell
	if name == "" {
		name = "cell"
	}
	return fmt.Sprintf("%s: rejected %v: %v", name, e.Candidate, e.Err)
}

// Unwrap returns both the sentinel and the validator's error.
func (e *RejectedError) Unwrap() []error {
	return []error{ErrRejected, e.Err}
}

type subscriber[T any] struct {
	id Subscription
	fn func(T)
}

// Cell is a single validated, observable value.
type Cell[T any] struct {
	value    T
	validate Validator[T]
	subs     []subscriber[T]
	nextSub  Subscription
	depth    int

	name     string
	logger   *slog.Logger
	onReject func(name string, err error)
}

// Option configures a Cell.
type Option func(*options)

type options struct {
	name     string
	logger   *slog.Logger
	onReject func(name string, err error)
}

// WithName sets the name used in logs and errors.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger that receives rejection warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRejectHook registers a function called after every rejected write.
func WithRejectHook(fn func(name string, err error)) Option {
	return func(o *options) { o.onReject = fn }
}

// New creates a cell holding initial. The initial value is stored as given;
// validate it first if it comes from an untrusted source.
// A nil validator accepts every candidate.
func New[T any](initial T, validate Validator[T], opts ...Option) *Cell[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if validate == nil {
		validate = func(v T) (T, error) { return v, nil }
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Cell[T]{
		value:    initial,
		validate: validate,
		name:     o.name,
		logger:   o.logger,
		onReject: o.onReject,
	}
}

// Name returns the cell's name.
func (c *Cell[T]) Name() string {
	return c.name
}

// Get returns the last accepted value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set validates candidate, stores the result and notifies subscribers.
// On rejection the value is unchanged, nobody is notified and a
// *RejectedError is returned.
func (c *Cell[T]) Set(candidate T) error {
	if c.depth >= MaxReentrancy {
		return c.reject(candidate, ErrReentrancy)
	}
	c.depth++
	defer func() { c.depth-- }()

	value, err := c.validate(candidate)
	if err != nil {
		return c.reject(candidate, err)
	}
	c.value = value

	// Subscribers may unsubscribe while being notified.
	subs := make([]subscriber[T], len(c.subs))
	copy(subs, c.subs)
	for _, s := range subs {
		s.fn(value)
	}
	return nil
}

// Update re-runs the validator on the current value. Used to re-clamp a
// cell after a sibling changed.
func (c *Cell[T]) Update() error {
	return c.Set(c.value)
}

// Subscribe adds fn to the end of the notification order.
func (c *Cell[T]) Subscribe(fn func(T)) Subscription {
	if fn == nil {
		return 0
	}
	c.nextSub++
	c.subs = append(c.subs, subscriber[T]{id: c.nextSub, fn: fn})
	return c.nextSub
}

// Unsubscribe removes a subscriber. Unknown subscriptions are ignored.
func (c *Cell[T]) Unsubscribe(sub Subscription) {
	for i, s := range c.subs {
		if s.id == sub {
			// Keep the order of the remaining subscribers.
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of active subscribers.
func (c *Cell[T]) Subscribers() int {
	return len(c.subs)
}

func (c *Cell[T]) reject(candidate T, err error) error {
	rej := &RejectedError{Cell: c.name, Candidate: candidate, Err: err}
	c.logger.Warn("cell write rejected", "cell", c.name, "candidate", candidate, "error", err)
	if c.onReject != nil {
		c.onReject(c.name, rej)
	}
	return rej
}
