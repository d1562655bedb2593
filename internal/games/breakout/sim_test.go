package breakout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/multiball/internal/config"
	"github.com/vovakirdan/multiball/internal/core"
)

// recordingHooks captures notifications for assertions.
type recordingHooks struct {
	spawned map[EntityKind]int
	removed map[EntityKind]int
	sounds  []Sound
}

func newRecordingHooks() *recordingHooks {
	return &recordingHooks{spawned: map[EntityKind]int{}, removed: map[EntityKind]int{}}
}

func (h *recordingHooks) EntitySpawned(kind EntityKind, _ core.EntityID, _ core.Vec2) {
	h.spawned[kind]++
}

func (h *recordingHooks) EntityRemoved(kind EntityKind, _ core.EntityID) {
	h.removed[kind]++
}

func (h *recordingHooks) PlaySound(s Sound) {
	h.sounds = append(h.sounds, s)
}

func oneHitConfig() config.BreakoutConfig {
	cfg := config.DefaultBreakoutConfig()
	cfg.Bricks.MinHealth = 1
	cfg.Bricks.MaxHealth = 1
	return cfg
}

func startedSim(t *testing.T, cfg config.BreakoutConfig, opts ...Option) *Simulation {
	t.Helper()
	s := NewSimulation(cfg, append([]Option{WithSeed(42)}, opts...)...)
	s.Start()
	require.Equal(t, Playing, s.State())
	return s
}

func firstBall(t *testing.T, s *Simulation) BallView {
	t.Helper()
	balls := s.Balls()
	require.NotEmpty(t, balls)
	return balls[0]
}

func TestNewSimulationNotStarted(t *testing.T) {
	s := NewSimulation(config.DefaultBreakoutConfig())
	assert.Equal(t, NotStarted, s.State())
	assert.Zero(t, s.ActiveBallCount())
	assert.Empty(t, s.Bricks())
	assert.False(t, s.GenerationRunning())
}

func TestStartInitialWorld(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())

	assert.Equal(t, 1, s.ActiveBallCount())
	assert.Equal(t, 0, s.Score())

	ball := firstBall(t, s)
	assert.Equal(t, core.V(400, 500), ball.Pos)
	assert.Equal(t, core.V(200, -300), ball.Vel)
	assert.Equal(t, 10.0, ball.Radius)

	p := s.Paddle()
	assert.Equal(t, 400.0, p.X)
	assert.Equal(t, 550.0, p.Y)
	assert.Equal(t, 100.0, p.Width)
	assert.Equal(t, 20.0, p.Height)

	bricks := s.Bricks()
	require.Len(t, bricks, 60)
	assert.Equal(t, core.V(80, 50), bricks[0].Center)
	assert.Equal(t, core.V(80+70*9, 50+40*5), bricks[59].Center)
	for _, b := range bricks {
		assert.GreaterOrEqual(t, b.Health, 1)
		assert.LessOrEqual(t, b.Health, 3)
		assert.Equal(t, 60.0, b.W)
		assert.Equal(t, 20.0, b.H)
	}

	assert.True(t, s.GenerationRunning())
	assert.Empty(t, s.GenerationPoints())
}

func TestStartIsIdempotent(t *testing.T) {
	hooks := newRecordingHooks()
	s := startedSim(t, config.DefaultBreakoutConfig(), WithHooks(hooks))
	s.Tick(5)
	require.Len(t, s.GenerationPoints(), 1)

	s.Start()
	assert.Equal(t, Playing, s.State())
	assert.Equal(t, 1, s.ActiveBallCount())
	assert.Len(t, s.Bricks(), 60)
	assert.Empty(t, s.GenerationPoints())
	assert.InDelta(t, 5.0, s.NextGenerationIn(), 1e-9)
	assert.Equal(t, 2, hooks.spawned[KindBall])
	assert.Equal(t, 1, hooks.removed[KindBall])
	assert.Equal(t, 60, hooks.removed[KindBrick])
}

func TestSetPaddlePositionClamps(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"inside", 300, 300},
		{"left edge", 0, 50},
		{"far left", -1000, 50},
		{"right edge", 800, 750},
		{"far right", 5000, 750},
		{"exact min", 50, 50},
	}

	s := startedSim(t, config.DefaultBreakoutConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetPaddlePosition(tt.x)
			assert.Equal(t, tt.want, s.Paddle().X)
		})
	}
}

func TestSetPaddlePositionIgnoredUnlessPlaying(t *testing.T) {
	s := NewSimulation(config.DefaultBreakoutConfig())
	s.SetPaddlePosition(100)
	assert.Equal(t, 400.0, s.Paddle().X)
}

func TestPaddleCollisionDeflects(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())
	ball := firstBall(t, s)

	s.SetPaddlePosition(380)
	s.OnBallPaddleCollision(ball.ID)

	got, ok := s.Ball(ball.ID)
	require.True(t, ok)
	assert.Equal(t, (400.0-380.0)*10, got.Vel.X)
	assert.Less(t, got.Vel.Y, 0.0)
	assert.Equal(t, 300.0, -got.Vel.Y)
	assert.Equal(t, 1, s.Stats().PaddleHits)
}

func TestPaddleCollisionForcesUpward(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())
	ball := firstBall(t, s)
	body, _ := s.balls.Get(ball.ID)
	body.Vel.Y = 250

	s.OnBallPaddleCollision(ball.ID)
	got, _ := s.Ball(ball.ID)
	assert.Equal(t, -250.0, got.Vel.Y)
	assert.Equal(t, 0.0, got.Vel.X)
}

func TestBrickCollisionDecrementsHealth(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig(), WithLevel(ParseLevel("t", "T", []string{"3"})))
	ball := firstBall(t, s)
	brick := s.Bricks()[0]
	require.Equal(t, 3, brick.Health)

	s.OnBallBrickCollision(ball.ID, brick.ID)
	got, ok := s.Brick(brick.ID)
	require.True(t, ok)
	assert.Equal(t, 2, got.Health)
	assert.Equal(t, 0, s.Score())

	s.OnBallBrickCollision(ball.ID, brick.ID)
	s.OnBallBrickCollision(ball.ID, brick.ID)
	_, ok = s.Brick(brick.ID)
	assert.False(t, ok)
	assert.Equal(t, 10, s.Score())
}

func TestClearingAllBricksScoresAndWins(t *testing.T) {
	hooks := newRecordingHooks()
	s := startedSim(t, oneHitConfig(), WithHooks(hooks))
	ball := firstBall(t, s)

	for _, b := range s.Bricks() {
		s.OnBallBrickCollision(ball.ID, b.ID)
	}

	assert.Equal(t, 600, s.Score())
	assert.Empty(t, s.Bricks())
	assert.Equal(t, Won, s.State())
	assert.False(t, s.GenerationRunning())
	assert.Equal(t, 60, s.Stats().BricksDestroyed)
	assert.Equal(t, 60, hooks.removed[KindBrick])
	assert.Contains(t, hooks.sounds, SoundLevelClear)
}

func TestScoreMonotonic(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())
	ball := firstBall(t, s)

	last := 0
	for range 5 {
		for _, b := range s.Bricks() {
			s.OnBallBrickCollision(ball.ID, b.ID)
			require.GreaterOrEqual(t, s.Score(), last)
			require.Zero(t, s.Score()%10)
			last = s.Score()
		}
	}
	assert.Equal(t, 600, s.Score())
}

func TestCollisionWithUnknownIDsIsNoop(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())
	ball := firstBall(t, s)
	before := s.Snapshot().Hash()

	s.OnBallPaddleCollision(9999)
	s.OnBallBrickCollision(ball.ID, 9999)
	s.OnBallBrickCollision(9999, s.Bricks()[0].ID)
	s.OnBallGenerationPointCollision(ball.ID, 9999)

	assert.Equal(t, before, s.Snapshot().Hash())
}

func TestGenerationPointSpawnsBall(t *testing.T) {
	hooks := newRecordingHooks()
	s := startedSim(t, config.DefaultBreakoutConfig(), WithHooks(hooks))
	ball := firstBall(t, s)

	s.OnGenerationTimerFire()
	points := s.GenerationPoints()
	require.Len(t, points, 1)
	p := points[0]
	assert.GreaterOrEqual(t, p.Pos.X, 50.0)
	assert.LessOrEqual(t, p.Pos.X, 750.0)
	assert.GreaterOrEqual(t, p.Pos.Y, 50.0)
	assert.LessOrEqual(t, p.Pos.Y, 400.0)
	assert.Equal(t, 5.0, p.Radius)

	s.OnBallGenerationPointCollision(ball.ID, p.ID)
	assert.Equal(t, 2, s.ActiveBallCount())
	assert.Empty(t, s.GenerationPoints())

	spawned := s.Balls()[1]
	assert.Equal(t, 300.0, spawned.Pos.Y)
	assert.GreaterOrEqual(t, spawned.Pos.X, 100.0)
	assert.LessOrEqual(t, spawned.Pos.X, 700.0)
	assert.GreaterOrEqual(t, spawned.Vel.X, 150.0)
	assert.LessOrEqual(t, spawned.Vel.X, 250.0)
	assert.GreaterOrEqual(t, spawned.Vel.Y, -250.0)
	assert.LessOrEqual(t, spawned.Vel.Y, -150.0)

	// A point is consumed at most once.
	s.OnBallGenerationPointCollision(ball.ID, p.ID)
	assert.Equal(t, 2, s.ActiveBallCount())
	assert.Contains(t, hooks.sounds, SoundBallSpawn)
}

func TestGenerationPointCapReclaimsOldest(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Generation.MaxPoints = 3
	s := startedSim(t, cfg)

	for range 3 {
		s.OnGenerationTimerFire()
	}
	oldest := s.GenerationPoints()[0].ID

	s.OnGenerationTimerFire()
	points := s.GenerationPoints()
	require.Len(t, points, 3)
	for _, p := range points {
		assert.NotEqual(t, oldest, p.ID)
	}
}

func TestTickFiresTimerPerPeriod(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())

	s.Tick(4.5)
	assert.Empty(t, s.GenerationPoints())
	s.Tick(0.5)
	assert.Len(t, s.GenerationPoints(), 1)
	s.Tick(10)
	assert.Len(t, s.GenerationPoints(), 3)
	assert.Equal(t, 3, s.Stats().PointsSpawned)
}

func TestTickRemovesFallenBallsAndEndsGame(t *testing.T) {
	hooks := newRecordingHooks()
	s := startedSim(t, config.DefaultBreakoutConfig(), WithHooks(hooks))
	ball := firstBall(t, s)

	body, _ := s.balls.Get(ball.ID)
	body.Pos.Y = 600
	s.Tick(0.016)
	assert.Equal(t, Playing, s.State(), "y == bottom is still in play")

	body.Pos.Y = 601
	s.Tick(0.016)
	assert.Equal(t, GameOver, s.State())
	assert.Zero(t, s.ActiveBallCount())
	assert.False(t, s.GenerationRunning())
	assert.Equal(t, 1, s.Stats().BallsLost)
	assert.Contains(t, hooks.sounds, SoundGameOver)

	// The timer stays stopped after GameOver.
	s.Tick(20)
	assert.Empty(t, s.GenerationPoints())
}

func TestTickKeepsPlayingWhileBallsRemain(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())
	ball := firstBall(t, s)
	s.OnGenerationTimerFire()
	s.OnBallGenerationPointCollision(ball.ID, s.GenerationPoints()[0].ID)
	require.Equal(t, 2, s.ActiveBallCount())

	body, _ := s.balls.Get(ball.ID)
	body.Pos.Y = 700
	s.Tick(0.016)

	assert.Equal(t, Playing, s.State())
	assert.Equal(t, 1, s.ActiveBallCount())
	_, ok := s.Ball(ball.ID)
	assert.False(t, ok)
}

func TestOperationsIgnoredAfterGameOver(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())
	ball := firstBall(t, s)
	brick := s.Bricks()[0]
	body, _ := s.balls.Get(ball.ID)
	body.Pos.Y = 1000
	s.Tick(0.016)
	require.Equal(t, GameOver, s.State())

	s.OnGenerationTimerFire()
	s.SetPaddlePosition(100)
	assert.Empty(t, s.GenerationPoints())
	assert.Equal(t, 400.0, s.Paddle().X)
	got, ok := s.Brick(brick.ID)
	require.True(t, ok)
	assert.Equal(t, brick.Health, got.Health)
}

func TestRestartAfterGameOver(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())
	ball := firstBall(t, s)
	s.OnBallBrickCollision(ball.ID, s.Bricks()[0].ID)
	s.OnBallBrickCollision(ball.ID, s.Bricks()[0].ID)
	s.OnBallBrickCollision(ball.ID, s.Bricks()[0].ID)
	require.Positive(t, s.Score())

	body, _ := s.balls.Get(ball.ID)
	body.Pos.Y = 1000
	s.Tick(0.016)
	require.Equal(t, GameOver, s.State())

	s.Start()
	assert.Equal(t, Playing, s.State())
	assert.Equal(t, 1, s.ActiveBallCount())
	assert.Equal(t, 0, s.Score())
	assert.Len(t, s.Bricks(), 60)
	assert.True(t, s.GenerationRunning())
}

func TestReset(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())
	s.Tick(5)
	require.NotEmpty(t, s.GenerationPoints())

	s.Reset()
	assert.Equal(t, NotStarted, s.State())
	assert.Zero(t, s.ActiveBallCount())
	assert.Empty(t, s.Bricks())
	assert.Empty(t, s.GenerationPoints())
	assert.False(t, s.GenerationRunning())
	assert.Zero(t, s.Score())

	s.Tick(10)
	assert.Empty(t, s.GenerationPoints())
}

func TestClassicVariantHasNoGeneration(t *testing.T) {
	s := startedSim(t, config.DefaultClassicConfig())
	assert.Len(t, s.Bricks(), 40)
	assert.False(t, s.GenerationRunning())
	s.Tick(30)
	assert.Empty(t, s.GenerationPoints())
	for _, b := range s.Bricks() {
		assert.Equal(t, 1, b.Health)
	}
}

func TestClassicBallRespawnsOnLoss(t *testing.T) {
	hooks := newRecordingHooks()
	s := startedSim(t, config.DefaultClassicConfig(), WithHooks(hooks))
	ball := firstBall(t, s)
	body, _ := s.balls.Get(ball.ID)
	body.Pos = core.V(250, 601)
	body.Vel = core.V(-80, 200)

	s.Tick(1.0 / 60)

	assert.Equal(t, Playing, s.State())
	require.Equal(t, 1, s.ActiveBallCount())
	got := firstBall(t, s)
	assert.Equal(t, ball.ID, got.ID)
	assert.Equal(t, core.V(400, 530), got.Pos)
	assert.Equal(t, core.V(150, -150), got.Vel)
	assert.Equal(t, 1, s.Stats().BallsLost)
	assert.Contains(t, hooks.sounds, SoundBallLost)
	assert.NotContains(t, hooks.sounds, SoundGameOver)
	assert.Zero(t, hooks.removed[KindBall])
}

func TestRespawnOnlyServesLastBall(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Ball.RespawnOnLoss = true
	s := startedSim(t, cfg)
	s.spawnBall(core.V(300, 300), core.V(0, 100))
	require.Equal(t, 2, s.ActiveBallCount())

	for _, b := range s.Balls() {
		body, _ := s.balls.Get(b.ID)
		body.Pos.Y = 601
	}
	s.Tick(1.0 / 60)

	assert.Equal(t, Playing, s.State())
	require.Equal(t, 1, s.ActiveBallCount())
	assert.Equal(t, core.V(400, 500), firstBall(t, s).Pos)
	assert.Equal(t, 2, s.Stats().BallsLost)
}

func TestUpdateBouncesOffPaddle(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())
	ball := firstBall(t, s)
	body, _ := s.balls.Get(ball.ID)
	body.Pos = core.V(420, 528)
	body.Vel = core.V(0, 300)

	s.Update(1.0 / 60)

	got, _ := s.Ball(ball.ID)
	assert.Less(t, got.Vel.Y, 0.0)
	assert.InDelta(t, 200.0, got.Vel.X, 1e-9)
	assert.Equal(t, 1, s.Stats().PaddleHits)
}

func TestUpdateBallFallsThroughBottom(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())
	ball := firstBall(t, s)
	body, _ := s.balls.Get(ball.ID)
	body.Pos = core.V(50, 590)
	body.Vel = core.V(0, 600)
	s.SetPaddlePosition(750)

	for range 10 {
		s.Update(1.0 / 60)
	}
	assert.Equal(t, GameOver, s.State())
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	run := func(seed int64) uint64 {
		s := NewSimulation(config.DefaultBreakoutConfig(), WithSeed(seed))
		s.Start()
		for i := range 1200 {
			s.SetPaddlePosition(400 + float64(i%200) - 100)
			s.Update(1.0 / 60)
		}
		return s.Snapshot().Hash()
	}

	assert.Equal(t, run(7), run(7))
	assert.NotEqual(t, run(7), run(8))
}

func TestEntityIDsAreUnique(t *testing.T) {
	s := startedSim(t, config.DefaultBreakoutConfig())
	for range 4 {
		s.OnGenerationTimerFire()
	}
	seen := map[core.EntityID]bool{}
	for _, b := range s.Balls() {
		seen[b.ID] = true
	}
	for _, b := range s.Bricks() {
		assert.False(t, seen[b.ID])
		seen[b.ID] = true
	}
	for _, p := range s.GenerationPoints() {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}
	assert.NotContains(t, seen, core.EntityID(0))
	assert.Len(t, seen, 1+60+4)
}

func TestTimerAdvance(t *testing.T) {
	var tm Timer
	assert.Zero(t, tm.Advance(10), "stopped timer never fires")

	tm.Start(2)
	assert.Equal(t, 0, tm.Advance(1.5))
	assert.Equal(t, 1, tm.Advance(0.5))
	assert.Equal(t, 3, tm.Advance(6.25))
	assert.InDelta(t, 1.75, tm.Remaining(), 1e-9)

	tm.Stop()
	assert.False(t, tm.Running())
	assert.Zero(t, tm.Advance(100))
}

func TestRNGBetweenInclusive(t *testing.T) {
	r := NewSimpleRNG(3)
	seen := map[int]bool{}
	for range 1000 {
		v := r.Between(1, 3)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, 5, r.Between(5, 5))

	for range 1000 {
		f := r.Range(150, 250)
		require.GreaterOrEqual(t, f, 150.0)
		require.LessOrEqual(t, f, 250.0)
	}
}
