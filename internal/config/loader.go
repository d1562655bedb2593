package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBreakout loads Breakout configuration.
// Search order: customPath -> ~/.multiball/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default
//
// Files are decoded over the defaults, so a file may set only the keys it
// wants to change.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBreakoutConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseBreakout(data)
		if err != nil {
			return DefaultBreakoutConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("breakout.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseBreakout(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "breakout.yaml")); err == nil {
		if cfg, err := ParseBreakout(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseBreakout(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseBreakout decodes YAML over the default configuration and validates it.
func ParseBreakout(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MarshalBreakout encodes a configuration as YAML.
func MarshalBreakout(cfg BreakoutConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects configurations the simulation cannot run with.
func (c BreakoutConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field must have positive size", ErrInvalidConfig)
	case c.Paddle.Width <= 0 || c.Paddle.Width > c.Field.Width:
		return fmt.Errorf("%w: paddle width %.0f out of range", ErrInvalidConfig, c.Paddle.Width)
	case c.Paddle.Height <= 0:
		return fmt.Errorf("%w: paddle height must be positive", ErrInvalidConfig)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("%w: ball radius must be positive", ErrInvalidConfig)
	case c.Ball.SpawnMinX > c.Ball.SpawnMaxX ||
		c.Ball.SpawnMinVX > c.Ball.SpawnMaxVX ||
		c.Ball.SpawnMinVY > c.Ball.SpawnMaxVY:
		return fmt.Errorf("%w: ball spawn ranges are inverted", ErrInvalidConfig)
	case len(c.Bricks.Layout) == 0 && c.Bricks.Level == "" && (c.Bricks.Rows <= 0 || c.Bricks.Cols <= 0):
		return fmt.Errorf("%w: brick grid %dx%d has no bricks", ErrInvalidConfig, c.Bricks.Rows, c.Bricks.Cols)
	case c.Bricks.MinHealth < 1 || c.Bricks.MaxHealth < c.Bricks.MinHealth:
		return fmt.Errorf("%w: brick health range [%d, %d]", ErrInvalidConfig, c.Bricks.MinHealth, c.Bricks.MaxHealth)
	case c.Generation.Enabled && c.Generation.Period <= 0:
		return fmt.Errorf("%w: generation period must be positive", ErrInvalidConfig)
	case c.Generation.MaxPoints < 0:
		return fmt.Errorf("%w: max_points must not be negative", ErrInvalidConfig)
	case c.Generation.MinY > c.Generation.MaxY || 2*c.Generation.MarginX > c.Field.Width:
		return fmt.Errorf("%w: generation area is empty", ErrInvalidConfig)
	case c.Difficulty.Scaling.PeriodGrowth < 0:
		return fmt.Errorf("%w: period_growth must not be negative", ErrInvalidConfig)
	}
	switch t := c.Difficulty.Progression.Type; t {
	case ProgressionScore, ProgressionTime, ProgressionNone, "":
	default:
		return fmt.Errorf("%w: unknown difficulty progression %q", ErrInvalidConfig, t)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".multiball", "configs", filename)
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Paddle.Width = 140
		cfg.Bricks.MaxHealth = max(cfg.Bricks.MinHealth, 2)
		cfg.Generation.Period = 4
	case DifficultyHard:
		cfg.Paddle.Width = 80
		cfg.Generation.Period = 7
	}
}
