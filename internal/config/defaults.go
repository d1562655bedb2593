package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default multi-ball configuration:
// an 800x600 field, a 6x10 grid of bricks with 1-3 hits each, and a
// generation point every 5 seconds.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: BreakoutField{
			Width:  800,
			Height: 600,
		},
		Paddle: BreakoutPaddle{
			Width:         100,
			Height:        20,
			Y:             550,
			Speed:         600,
			DeflectFactor: 10,
		},
		Ball: BreakoutBall{
			Radius:     10,
			StartX:     400,
			StartY:     500,
			StartVX:    200,
			StartVY:    -300,
			SpawnMinX:  100,
			SpawnMaxX:  700,
			SpawnY:     300,
			SpawnMinVX: 150,
			SpawnMaxVX: 250,
			SpawnMinVY: -250,
			SpawnMaxVY: -150,
		},
		Bricks: BreakoutBricks{
			Rows:      6,
			Cols:      10,
			OffsetX:   80,
			OffsetY:   50,
			SpacingX:  70,
			SpacingY:  40,
			Width:     60,
			Height:    20,
			MinHealth: 1,
			MaxHealth: 3,
			Points:    10,
		},
		Generation: BreakoutGeneration{
			Enabled:   true,
			Period:    5,
			MarginX:   50,
			MinY:      50,
			MaxY:      400,
			Radius:    5,
			MaxPoints: 8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionScore,
				MaxAt: 600,
			},
			Scaling: ScalingConfig{
				PeriodGrowth: 3,
				MaxPeriod:    10,
			},
		},
	}
}

// DefaultClassicConfig returns the single-ball variant: four rows of
// one-hit bricks and a wider paddle. It has no generation points, and a
// lost ball is served again rather than ending the run.
func DefaultClassicConfig() BreakoutConfig {
	cfg := DefaultBreakoutConfig()
	cfg.Paddle.Width = 120
	cfg.Ball.Radius = 8
	cfg.Ball.StartY = 530
	cfg.Ball.StartVX = 150
	cfg.Ball.StartVY = -150
	cfg.Ball.RespawnOnLoss = true
	cfg.Bricks.Rows = 4
	cfg.Bricks.SpacingY = 30
	cfg.Bricks.MinHealth = 1
	cfg.Bricks.MaxHealth = 1
	cfg.Generation.Enabled = false
	return cfg
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBreakoutYAML
}
