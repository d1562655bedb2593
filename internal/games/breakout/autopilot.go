package breakout

import (
	"math"

	"github.com/vovakirdan/multiball/internal/core"
)

// Autopilot steers the paddle under the ball that will reach it first.
type Autopilot struct{}

// Target returns the paddle x that meets the most urgent ball. It aims a
// little off center so the ball keeps its horizontal direction.
func (Autopilot) Target(s *Simulation) (float64, bool) {
	paddle := s.Paddle()
	top := paddle.Box().Min().Y
	width := s.Config().Field.Width

	var (
		best     BallView
		bestTime = math.Inf(1)
		found    bool
	)
	for _, b := range s.Balls() {
		if b.Vel.Y <= 0 || b.Pos.Y > top {
			continue
		}
		t := (top - b.Radius - b.Pos.Y) / b.Vel.Y
		if t < bestTime {
			best, bestTime, found = b, t, true
		}
	}
	if !found {
		return 0, false
	}

	x := foldX(best.Pos.X+best.Vel.X*bestTime, best.Radius, width-best.Radius)
	offset := paddle.Width * 0.15
	if best.Vel.X < 0 {
		offset = -offset
	}
	return core.ClampF(x-offset, paddle.Width/2, width-paddle.Width/2), true
}

// foldX reflects an unbounded x back into [lo, hi] the way wall bounces do.
func foldX(x, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	m := math.Mod(x-lo, 2*span)
	if m < 0 {
		m += 2 * span
	}
	if m > span {
		m = 2*span - m
	}
	return lo + m
}
