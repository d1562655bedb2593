package breakout

import "github.com/vovakirdan/multiball/internal/core"

// State is the simulation's lifecycle phase.
type State int

const (
	NotStarted State = iota
	Playing
	GameOver
	Won
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Playing:
		return "playing"
	case GameOver:
		return "game_over"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// EntityKind tags entity lifecycle notifications.
type EntityKind int

const (
	KindBall EntityKind = iota
	KindBrick
	KindGenerationPoint
)

func (k EntityKind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindBrick:
		return "brick"
	case KindGenerationPoint:
		return "generation_point"
	default:
		return "unknown"
	}
}

// Sound identifies a sound effect the simulation asks its hooks to play.
type Sound int

const (
	SoundPaddle Sound = iota
	SoundBrickHit
	SoundBrickBreak
	SoundBallSpawn
	SoundBallLost
	SoundGameOver
	SoundLevelClear
)

func (s Sound) String() string {
	switch s {
	case SoundPaddle:
		return "paddle"
	case SoundBrickHit:
		return "brick_hit"
	case SoundBrickBreak:
		return "brick_break"
	case SoundBallSpawn:
		return "ball_spawn"
	case SoundBallLost:
		return "ball_lost"
	case SoundGameOver:
		return "game_over"
	case SoundLevelClear:
		return "level_clear"
	default:
		return "unknown"
	}
}

// Paddle is the player-controlled deflector. Only X changes during play.
type Paddle struct {
	X, Y   float64
	Width  float64
	Height float64
}

// Box returns the paddle's collision box.
func (p Paddle) Box() core.Box {
	return core.Box{Center: core.V(p.X, p.Y), W: p.Width, H: p.Height}
}

// Brick is a destructible obstacle.
type Brick struct {
	ID     core.EntityID
	Center core.Vec2
	W, H   float64
	Health int
	Points int
}

// Box returns the brick's collision box.
func (b Brick) Box() core.Box {
	return core.Box{Center: b.Center, W: b.W, H: b.H}
}

// GenerationPoint spawns a ball when touched.
type GenerationPoint struct {
	ID     core.EntityID
	Pos    core.Vec2
	Radius float64
}

// BallView is a read-only copy of a ball's state.
type BallView struct {
	ID     core.EntityID
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
}

// Stats accumulates per-run counters.
type Stats struct {
	BricksDestroyed int
	BallsSpawned    int
	BallsLost       int
	PointsSpawned   int
	PointsConsumed  int
	PaddleHits      int
	ElapsedSeconds  float64
}
