// Package state holds the normalized handle positions of a slider.
//
// Positions live in [0, 1] and know nothing about the domain values in
// model.Config; the presenter translates between the two.
package state

import (
	"errors"
	"log/slog"
	"math"

	"github.com/vango-dev/rangeslider/pkg/cell"
)

// ErrNotAPosition rejects NaN candidates.
var ErrNotAPosition = errors.New("state: position is NaN")

// State is the pair of handle positions.
type State struct {
	LeftHandlePosition  *cell.Cell[float64]
	RightHandlePosition *cell.Cell[float64]
}

// New creates a State. Initial positions are clamped into [0, 1]; NaN
// becomes 0.
func New(left, right float64, opts ...cell.Option) *State {
	logger := slog.Default().With("component", "slider-state")
	base := append([]cell.Option{cell.WithLogger(logger)}, opts...)

	leftOpts := append(append([]cell.Option{}, base...), cell.WithName("leftHandlePosition"))
	rightOpts := append(append([]cell.Option{}, base...), cell.WithName("rightHandlePosition"))

	return &State{
		LeftHandlePosition:  cell.New(initial(left), checkPosition, leftOpts...),
		RightHandlePosition: cell.New(initial(right), checkPosition, rightOpts...),
	}
}

func checkPosition(p float64) (float64, error) {
	if math.IsNaN(p) {
		return 0, ErrNotAPosition
	}
	if p < 0 {
		return 0, nil
	}
	if p > 1 {
		return 1, nil
	}
	return p, nil
}

func initial(p float64) float64 {
	v, err := checkPosition(p)
	if err != nil {
		return 0
	}
	return v
}
