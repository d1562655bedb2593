package config

import "math"

// Progression types accepted in difficulty.progression.type.
const (
	ProgressionScore = "score" // ramps with points scored
	ProgressionTime  = "time"  // ramps with simulated seconds
	ProgressionNone  = "none"
)

// DifficultyManager turns the difficulty section into a level in [0, 1]
// and the generation period that level implies.
type DifficultyManager struct {
	cfg  DifficultyConfig
	base float64 // initial level, clamped
}

// NewDifficultyManager clamps cfg.InitialLevel into [0, 1].
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, base: clamp01(cfg.InitialLevel)}
}

// SetEnabled switches progression on or off. Off pins the level at the
// initial level and the period at its base value.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

func (d *DifficultyManager) ramping() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level interpolates from the initial level to 1 as score or elapsed
// seconds approach progression.max_at.
func (d *DifficultyManager) Level(score int, elapsed float64) float64 {
	if !d.ramping() {
		return d.base
	}

	var reached float64
	switch d.cfg.Progression.Type {
	case ProgressionScore:
		reached = float64(score)
	case ProgressionTime:
		reached = elapsed
	default:
		return d.base
	}

	maxAt := math.Max(float64(d.cfg.Progression.MaxAt), 1)
	return d.base + clamp01(reached/maxAt)*(1-d.base)
}

// Period lengthens base by up to scaling.period_growth at full difficulty,
// so harder runs get fewer extra balls. It never exceeds scaling.max_period;
// an unset or undersized ceiling leaves the growth uncapped.
func (d *DifficultyManager) Period(base float64, score int, elapsed float64) float64 {
	if !d.ramping() {
		return base
	}

	period := base + d.Level(score, elapsed)*d.cfg.Scaling.PeriodGrowth
	if ceiling := d.cfg.Scaling.MaxPeriod; ceiling >= base {
		period = math.Min(period, ceiling)
	}
	return period
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
