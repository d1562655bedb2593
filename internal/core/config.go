package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the duration of one tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState summarizes a game for the platform layer.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended (lost or won)
	Won      bool // Whether the game ended by clearing the field
	Paused   bool // Whether the game is paused
	Balls    int  // Balls currently in play
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// EntityID identifies a simulation entity (ball, brick, generation point).
// Zero is never assigned.
type EntityID uint32

// RunReport summarizes a finished run for persistence.
type RunReport struct {
	Seed            int64
	Score           int
	Won             bool
	BricksDestroyed int
	BallsSpawned    int
	BallsLost       int
	Duration        float64 // Simulated seconds
	StateHash       uint64
}
