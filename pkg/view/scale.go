package view

import (
	"github.com/shopspring/decimal"

	"github.com/vango-dev/rangeslider/pkg/model"
)

// TickPolicy decides how many scale ticks are drawn.
type TickPolicy uint8

const (
	// TicksRequested draws pointsNumber ticks, or one per step if there
	// are fewer steps.
	TicksRequested TickPolicy = iota

	// TicksDensityCapped starts from the same count and halves it until
	// it is at most MaxDensityTicks, never going below two.
	TicksDensityCapped
)

// MaxDensityTicks is the cap used by TicksDensityCapped.
const MaxDensityTicks = 10

// String returns the policy name used in config files.
func (p TickPolicy) String() string {
	if p == TicksDensityCapped {
		return "density-capped"
	}
	return "requested"
}

// Tick is one labelled point of the scale.
type Tick struct {
	Value    float64
	Position float64
}

// Ticks computes the scale for s. Ticks are evenly spaced on whole steps
// from minValue. When the step count is not a multiple of the tick count a
// trailing tick is added at maxValue, even if the last spaced tick already
// sits there.
func Ticks(s model.Settings, policy TickPolicy) []Tick {
	dmin := decimal.NewFromFloat(s.MinValue)
	dmax := decimal.NewFromFloat(s.MaxValue)
	dstep := decimal.NewFromFloat(s.Step)
	if !dstep.IsPositive() || dmax.LessThan(dmin) {
		return nil
	}

	steps := dmax.Sub(dmin).Div(dstep).Floor().IntPart()
	points := int64(s.PointsNumber)
	if points > steps+1 {
		points = steps + 1
	}
	if policy == TicksDensityCapped {
		for points > MaxDensityTicks {
			points /= 2
		}
		if points < 2 && steps >= 1 {
			points = 2
		}
	}
	if points < 1 {
		points = 1
	}

	var interval int64
	if points > 1 {
		interval = steps / (points - 1)
	}

	numeric := s
	numeric.HasDefaultValues = false

	ticks := make([]Tick, 0, points+1)
	for i := int64(0); i < points; i++ {
		v := dmin.Add(dstep.Mul(decimal.NewFromInt(i * interval))).InexactFloat64()
		ticks = append(ticks, Tick{Value: v, Position: numeric.Position(v)})
	}
	if steps%points != 0 {
		ticks = append(ticks, Tick{Value: s.MaxValue, Position: 1})
	}
	return ticks
}
