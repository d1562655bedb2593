// Package config provides YAML-based game configuration loading and
// difficulty management for multiball.
package config

// BreakoutConfig contains all configuration for the Breakout simulation.
// Distances are in field units (pixels of the logical play field), speeds
// in units per second, durations in seconds.
type BreakoutConfig struct {
	Field      BreakoutField      `yaml:"field"`
	Paddle     BreakoutPaddle     `yaml:"paddle"`
	Ball       BreakoutBall       `yaml:"ball"`
	Bricks     BreakoutBricks     `yaml:"bricks"`
	Generation BreakoutGeneration `yaml:"generation"`
	Difficulty DifficultyConfig   `yaml:"difficulty"`
}

// BreakoutField defines the play-field size.
type BreakoutField struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BreakoutPaddle defines the paddle geometry and response.
type BreakoutPaddle struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Y             float64 `yaml:"y"`              // Center line of the paddle
	Speed         float64 `yaml:"speed"`          // Keyboard movement speed
	DeflectFactor float64 `yaml:"deflect_factor"` // vx = offset from paddle center * factor
}

// BreakoutBall defines the first ball and the bounds for spawned balls.
type BreakoutBall struct {
	Radius  float64 `yaml:"radius"`
	StartX  float64 `yaml:"start_x"`
	StartY  float64 `yaml:"start_y"`
	StartVX float64 `yaml:"start_vx"`
	StartVY float64 `yaml:"start_vy"`

	// RespawnOnLoss serves the last ball again from the start position
	// instead of ending the run when it falls out.
	RespawnOnLoss bool `yaml:"respawn_on_loss"`

	SpawnMinX  float64 `yaml:"spawn_min_x"`
	SpawnMaxX  float64 `yaml:"spawn_max_x"`
	SpawnY     float64 `yaml:"spawn_y"`
	SpawnMinVX float64 `yaml:"spawn_min_vx"`
	SpawnMaxVX float64 `yaml:"spawn_max_vx"`
	SpawnMinVY float64 `yaml:"spawn_min_vy"`
	SpawnMaxVY float64 `yaml:"spawn_max_vy"`
}

// BreakoutBricks defines the brick grid.
type BreakoutBricks struct {
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	OffsetX   float64 `yaml:"offset_x"`  // Center of the first column
	OffsetY   float64 `yaml:"offset_y"`  // Center of the first row
	SpacingX  float64 `yaml:"spacing_x"` // Center-to-center distance
	SpacingY  float64 `yaml:"spacing_y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MinHealth int     `yaml:"min_health"`
	MaxHealth int     `yaml:"max_health"`
	Points    int     `yaml:"points"` // Score for destroying a brick

	// Level names a built-in layout; Layout overrides it with an ASCII
	// map ('#' random health, '1'-'9' fixed health, anything else empty).
	// With neither set the full Rows x Cols grid is used.
	Level  string   `yaml:"level,omitempty"`
	Layout []string `yaml:"layout,omitempty"`
}

// BreakoutGeneration defines the periodic generation points.
type BreakoutGeneration struct {
	Enabled   bool    `yaml:"enabled"`
	Period    float64 `yaml:"period"`
	MarginX   float64 `yaml:"margin_x"` // x in [margin, width-margin]
	MinY      float64 `yaml:"min_y"`
	MaxY      float64 `yaml:"max_y"`
	Radius    float64 `yaml:"radius"`
	MaxPoints int     `yaml:"max_points"` // 0 means unlimited
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // ProgressionScore, ProgressionTime or ProgressionNone
	MaxAt int    `yaml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	PeriodGrowth float64 `yaml:"period_growth"` // Seconds added to the generation period at max difficulty
	MaxPeriod    float64 `yaml:"max_period"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
