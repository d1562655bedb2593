package breakout

import (
	"math"
	"slices"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/multiball/internal/config"
	"github.com/vovakirdan/multiball/internal/core"
	"github.com/vovakirdan/multiball/internal/physics"
)

// Simulation owns the state of one Breakout run. It is single-threaded:
// every method must be called from the goroutine that drives the host loop.
//
// Operations never fail. Calls made in the wrong state, or naming entities
// that no longer exist, are ignored.
type Simulation struct {
	cfg        config.BreakoutConfig
	level      *Level
	rng        *SimpleRNG
	hooks      Hooks
	world      physics.World
	difficulty *config.DifficultyManager

	state  State
	score  int
	nextID core.EntityID
	paddle Paddle
	timer  Timer
	stats  Stats

	balls  *intmap.Map[core.EntityID, *physics.Body]
	bricks *intmap.Map[core.EntityID, *Brick]
	points *intmap.Map[core.EntityID, *GenerationPoint]

	// Creation order, for deterministic iteration and oldest-first reclaim.
	ballOrder  []core.EntityID
	brickOrder []core.EntityID
	pointOrder []core.EntityID
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithSeed seeds the random source used for brick health and spawns.
func WithSeed(seed int64) Option {
	return func(s *Simulation) {
		s.rng = NewSimpleRNG(seed)
	}
}

// WithHooks installs presentation hooks.
func WithHooks(h Hooks) Option {
	return func(s *Simulation) {
		if h != nil {
			s.hooks = h
		}
	}
}

// WithLevel replaces the brick layout.
func WithLevel(l *Level) Option {
	return func(s *Simulation) {
		if l != nil {
			s.level = l
		}
	}
}

// NewSimulation creates a simulation in the NotStarted state.
func NewSimulation(cfg config.BreakoutConfig, opts ...Option) *Simulation {
	s := &Simulation{
		cfg:        cfg,
		level:      GridLevel(cfg.Bricks.Rows, cfg.Bricks.Cols),
		rng:        NewSimpleRNG(1),
		hooks:      NopHooks{},
		world:      physics.NewWorld(cfg.Field.Width, cfg.Field.Height),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		balls:      intmap.New[core.EntityID, *physics.Body](8),
		bricks:     intmap.New[core.EntityID, *Brick](max(cfg.Bricks.Rows*cfg.Bricks.Cols, 16)),
		points:     intmap.New[core.EntityID, *GenerationPoint](max(cfg.Generation.MaxPoints, 8)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.paddle = s.defaultPaddle()
	return s
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() config.BreakoutConfig {
	return s.cfg
}

// Start begins a new run. A run already in progress (or finished) is torn
// down first, so entity sets and the generation timer are never duplicated.
func (s *Simulation) Start() {
	if s.state != NotStarted {
		s.teardown()
	}

	s.state = Playing
	s.score = 0
	s.stats = Stats{}
	s.paddle = s.defaultPaddle()

	b := s.cfg.Ball
	s.spawnBall(core.V(b.StartX, b.StartY), core.V(b.StartVX, b.StartVY))
	s.populateBricks()

	if s.cfg.Generation.Enabled {
		s.timer.Start(s.generationPeriod())
	}
}

// Reset clears every entity, stops the timer and returns to NotStarted.
func (s *Simulation) Reset() {
	s.teardown()
	s.state = NotStarted
	s.score = 0
	s.stats = Stats{}
	s.paddle = s.defaultPaddle()
}

// SetPaddlePosition moves the paddle center to x, clamped so the paddle
// stays inside the field.
func (s *Simulation) SetPaddlePosition(x float64) {
	if s.state != Playing {
		return
	}
	half := s.paddle.Width / 2
	s.paddle.X = core.ClampF(x, half, s.cfg.Field.Width-half)
}

// OnBallPaddleCollision steers the ball by where it struck the paddle:
// the horizontal speed is proportional to the offset from the paddle
// center and the ball always leaves upward.
func (s *Simulation) OnBallPaddleCollision(ball core.EntityID) {
	if s.state != Playing {
		return
	}
	body, ok := s.balls.Get(ball)
	if !ok {
		return
	}
	body.Vel.X = (body.Pos.X - s.paddle.X) * s.cfg.Paddle.DeflectFactor
	body.Vel.Y = -math.Abs(body.Vel.Y)
	s.stats.PaddleHits++
	s.hooks.PlaySound(SoundPaddle)
}

// OnBallBrickCollision takes one hit point off the brick. A brick at zero
// health is removed and scores its points. The ball's rebound is left to
// the physics backend.
func (s *Simulation) OnBallBrickCollision(ball, brick core.EntityID) {
	if s.state != Playing {
		return
	}
	if _, ok := s.balls.Get(ball); !ok {
		return
	}
	br, ok := s.bricks.Get(brick)
	if !ok {
		return
	}

	br.Health--
	if br.Health > 0 {
		s.hooks.PlaySound(SoundBrickHit)
		return
	}

	s.bricks.Del(brick)
	s.brickOrder = removeID(s.brickOrder, brick)
	s.score += br.Points
	s.stats.BricksDestroyed++
	s.hooks.EntityRemoved(KindBrick, brick)
	s.hooks.PlaySound(SoundBrickBreak)

	if s.bricks.Len() == 0 {
		s.state = Won
		s.timer.Stop()
		s.hooks.PlaySound(SoundLevelClear)
	}
}

// OnBallGenerationPointCollision consumes the point and releases a new
// ball with a random position and upward velocity.
func (s *Simulation) OnBallGenerationPointCollision(ball, point core.EntityID) {
	if s.state != Playing {
		return
	}
	if _, ok := s.balls.Get(ball); !ok {
		return
	}
	if !s.removePoint(point) {
		return
	}
	s.stats.PointsConsumed++

	b := s.cfg.Ball
	pos := core.V(s.rng.Range(b.SpawnMinX, b.SpawnMaxX), b.SpawnY)
	vel := core.V(s.rng.Range(b.SpawnMinVX, b.SpawnMaxVX), s.rng.Range(b.SpawnMinVY, b.SpawnMaxVY))
	s.spawnBall(pos, vel)
	s.stats.BallsSpawned++
	s.hooks.PlaySound(SoundBallSpawn)
}

// OnGenerationTimerFire places a generation point at a random spot in the
// upper field. When the cap is reached the oldest point is reclaimed.
func (s *Simulation) OnGenerationTimerFire() {
	if s.state != Playing {
		return
	}
	g := s.cfg.Generation
	if g.MaxPoints > 0 && len(s.pointOrder) >= g.MaxPoints {
		s.removePoint(s.pointOrder[0])
	}

	id := s.newID()
	p := &GenerationPoint{
		ID:     id,
		Pos:    core.V(s.rng.Range(g.MarginX, s.cfg.Field.Width-g.MarginX), s.rng.Range(g.MinY, g.MaxY)),
		Radius: g.Radius,
	}
	s.points.Put(id, p)
	s.pointOrder = append(s.pointOrder, id)
	s.stats.PointsSpawned++
	s.hooks.EntitySpawned(KindGenerationPoint, id, p.Pos)
}

// Tick removes balls that left through the bottom edge and ends the run
// when none remain. With ball.respawn_on_loss the last ball is served again
// from the start position instead. Otherwise it advances the generation
// timer by elapsed seconds, firing once per completed period.
func (s *Simulation) Tick(elapsed float64) {
	if s.state != Playing {
		return
	}
	if elapsed > 0 {
		s.stats.ElapsedSeconds += elapsed
	}

	for _, id := range slices.Clone(s.ballOrder) {
		body, _ := s.balls.Get(id)
		if body.Pos.Y <= s.cfg.Field.Height {
			continue
		}
		s.stats.BallsLost++
		s.hooks.PlaySound(SoundBallLost)
		if s.cfg.Ball.RespawnOnLoss && s.balls.Len() == 1 {
			b := s.cfg.Ball
			body.Pos = core.V(b.StartX, b.StartY)
			body.Vel = core.V(b.StartVX, b.StartVY)
			continue
		}
		s.removeBall(id)
	}

	if s.balls.Len() == 0 {
		s.state = GameOver
		s.timer.Stop()
		s.hooks.PlaySound(SoundGameOver)
		return
	}

	if s.timer.Running() {
		s.timer.SetPeriod(s.generationPeriod())
		for range s.timer.Advance(elapsed) {
			s.OnGenerationTimerFire()
		}
	}
}

// Update runs one physics step followed by Tick.
func (s *Simulation) Update(dt float64) {
	if s.state == Playing {
		s.world.Step(s, s, dt)
	}
	s.Tick(dt)
}

// State returns the lifecycle phase.
func (s *Simulation) State() State { return s.state }

// Score returns the points earned this run.
func (s *Simulation) Score() int { return s.score }

// ActiveBallCount returns the number of balls in play.
func (s *Simulation) ActiveBallCount() int { return s.balls.Len() }

// Stats returns the run counters.
func (s *Simulation) Stats() Stats { return s.stats }

// Paddle returns the paddle.
func (s *Simulation) Paddle() Paddle { return s.paddle }

// NextGenerationIn returns seconds until the next generation point, or 0
// when the timer is stopped.
func (s *Simulation) NextGenerationIn() float64 { return s.timer.Remaining() }

// GenerationRunning reports whether the generation timer is armed.
func (s *Simulation) GenerationRunning() bool { return s.timer.Running() }

// Balls returns the balls in creation order.
func (s *Simulation) Balls() []BallView {
	out := make([]BallView, 0, len(s.ballOrder))
	for _, id := range s.ballOrder {
		b, _ := s.balls.Get(id)
		out = append(out, BallView{ID: b.ID, Pos: b.Pos, Vel: b.Vel, Radius: b.Radius})
	}
	return out
}

// Ball looks up one ball.
func (s *Simulation) Ball(id core.EntityID) (BallView, bool) {
	b, ok := s.balls.Get(id)
	if !ok {
		return BallView{}, false
	}
	return BallView{ID: b.ID, Pos: b.Pos, Vel: b.Vel, Radius: b.Radius}, true
}

// Bricks returns the remaining bricks in grid order.
func (s *Simulation) Bricks() []Brick {
	out := make([]Brick, 0, len(s.brickOrder))
	for _, id := range s.brickOrder {
		b, _ := s.bricks.Get(id)
		out = append(out, *b)
	}
	return out
}

// Brick looks up one brick.
func (s *Simulation) Brick(id core.EntityID) (Brick, bool) {
	b, ok := s.bricks.Get(id)
	if !ok {
		return Brick{}, false
	}
	return *b, true
}

// GenerationPoints returns the live points, oldest first.
func (s *Simulation) GenerationPoints() []GenerationPoint {
	out := make([]GenerationPoint, 0, len(s.pointOrder))
	for _, id := range s.pointOrder {
		p, _ := s.points.Get(id)
		out = append(out, *p)
	}
	return out
}

// BallBodies implements physics.Scene.
func (s *Simulation) BallBodies() []*physics.Body {
	out := make([]*physics.Body, 0, len(s.ballOrder))
	for _, id := range s.ballOrder {
		b, _ := s.balls.Get(id)
		out = append(out, b)
	}
	return out
}

// PaddleBox implements physics.Scene.
func (s *Simulation) PaddleBox() core.Box { return s.paddle.Box() }

// BrickBoxes implements physics.Scene.
func (s *Simulation) BrickBoxes() []physics.StaticBox {
	out := make([]physics.StaticBox, 0, len(s.brickOrder))
	for _, id := range s.brickOrder {
		b, _ := s.bricks.Get(id)
		out = append(out, physics.StaticBox{ID: id, Box: b.Box()})
	}
	return out
}

// PointCircles implements physics.Scene.
func (s *Simulation) PointCircles() []physics.StaticCircle {
	out := make([]physics.StaticCircle, 0, len(s.pointOrder))
	for _, id := range s.pointOrder {
		p, _ := s.points.Get(id)
		out = append(out, physics.StaticCircle{ID: id, Center: p.Pos, Radius: p.Radius})
	}
	return out
}

func (s *Simulation) defaultPaddle() Paddle {
	return Paddle{
		X:      s.cfg.Field.Width / 2,
		Y:      s.cfg.Paddle.Y,
		Width:  s.cfg.Paddle.Width,
		Height: s.cfg.Paddle.Height,
	}
}

func (s *Simulation) generationPeriod() float64 {
	return s.difficulty.Period(s.cfg.Generation.Period, s.score, s.stats.ElapsedSeconds)
}

func (s *Simulation) newID() core.EntityID {
	s.nextID++
	return s.nextID
}

func (s *Simulation) spawnBall(pos, vel core.Vec2) {
	id := s.newID()
	s.balls.Put(id, &physics.Body{ID: id, Pos: pos, Vel: vel, Radius: s.cfg.Ball.Radius})
	s.ballOrder = append(s.ballOrder, id)
	s.hooks.EntitySpawned(KindBall, id, pos)
}

func (s *Simulation) removeBall(id core.EntityID) {
	if !s.balls.Del(id) {
		return
	}
	s.ballOrder = removeID(s.ballOrder, id)
	s.hooks.EntityRemoved(KindBall, id)
}

func (s *Simulation) removePoint(id core.EntityID) bool {
	if !s.points.Del(id) {
		return false
	}
	s.pointOrder = removeID(s.pointOrder, id)
	s.hooks.EntityRemoved(KindGenerationPoint, id)
	return true
}

func (s *Simulation) populateBricks() {
	bc := s.cfg.Bricks
	for row, slots := range s.level.Slots {
		for col, slot := range slots {
			if slot == SlotEmpty {
				continue
			}
			health := slot
			if slot == SlotRandom {
				health = s.rng.Between(bc.MinHealth, bc.MaxHealth)
			}
			id := s.newID()
			b := &Brick{
				ID:     id,
				Center: core.V(bc.OffsetX+bc.SpacingX*float64(col), bc.OffsetY+bc.SpacingY*float64(row)),
				W:      bc.Width,
				H:      bc.Height,
				Health: health,
				Points: bc.Points,
			}
			s.bricks.Put(id, b)
			s.brickOrder = append(s.brickOrder, id)
			s.hooks.EntitySpawned(KindBrick, id, b.Center)
		}
	}
}

// teardown removes every entity and stops the timer.
func (s *Simulation) teardown() {
	s.timer.Stop()
	for _, id := range s.ballOrder {
		s.hooks.EntityRemoved(KindBall, id)
	}
	for _, id := range s.brickOrder {
		s.hooks.EntityRemoved(KindBrick, id)
	}
	for _, id := range s.pointOrder {
		s.hooks.EntityRemoved(KindGenerationPoint, id)
	}
	s.balls.Clear()
	s.bricks.Clear()
	s.points.Clear()
	s.ballOrder = s.ballOrder[:0]
	s.brickOrder = s.brickOrder[:0]
	s.pointOrder = s.pointOrder[:0]
}

func removeID(ids []core.EntityID, id core.EntityID) []core.EntityID {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}
