// Package window hosts a breakout simulation in an Ebitengine window (or a
// browser canvas when built for js/wasm). The logical screen is the play
// field itself, so pointer positions map to field units directly.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/multiball/internal/core"
	"github.com/vovakirdan/multiball/internal/games/breakout"
)

// Input is one frame of window input in field units.
type Input struct {
	PointerX     float64
	PointerValid bool
	Start        bool
	Pause        bool
	Left         bool
	Right        bool
	Quit         bool
}

// touch is one finger held on the screen this frame.
type touch struct {
	X   int
	New bool // went down this frame
}

// applyTouches steers toward the last held touch for as long as it stays
// down. Only a touch that went down this frame counts as Start.
func (in *Input) applyTouches(touches []touch) {
	for _, t := range touches {
		if t.New {
			in.Start = true
		}
		in.PointerX, in.PointerValid = float64(t.X), true
	}
}

// Host implements ebiten.Game around a simulation.
type Host struct {
	sim       *breakout.Simulation
	seed      int64
	tps       int
	dt        float64
	paused    bool
	autopilot *breakout.Autopilot
	logger    *log.Logger
	onEnd     func(core.RunReport)
	ended     bool
	lastX     float64
}

// Option configures a Host.
type Option func(*Host)

// WithTPS sets the update rate; the simulation advances 1/tps per update.
func WithTPS(tps int) Option {
	return func(h *Host) {
		if tps > 0 {
			h.tps = tps
		}
	}
}

// WithAutopilot lets the built-in autopilot play.
func WithAutopilot() Option {
	return func(h *Host) { h.autopilot = &breakout.Autopilot{} }
}

// WithLogger sets the logger for run events.
func WithLogger(l *log.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// OnRunEnd registers a callback invoked once when a run is lost or won.
func OnRunEnd(fn func(core.RunReport)) Option {
	return func(h *Host) { h.onEnd = fn }
}

// NewHost wraps sim. seed is only reported, the simulation is already seeded.
func NewHost(sim *breakout.Simulation, seed int64, opts ...Option) *Host {
	h := &Host{
		sim:    sim,
		seed:   seed,
		tps:    60,
		logger: log.Default(),
		lastX:  -1,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.dt = 1 / float64(h.tps)
	return h
}

// Simulation exposes the hosted simulation.
func (h *Host) Simulation() *breakout.Simulation {
	return h.sim
}

// Paused reports whether play is paused.
func (h *Host) Paused() bool {
	return h.paused
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	return h.Step(h.pollInput())
}

// pollInput reads keyboard, mouse and touch state for this frame.
func (h *Host) pollInput() Input {
	in := Input{
		Start: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
			inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
			inpututil.IsKeyJustPressed(ebiten.KeyR),
		Pause: inpututil.IsKeyJustPressed(ebiten.KeyP),
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Quit:  ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ),
	}
	pressed := inpututil.AppendJustPressedTouchIDs(nil)
	var touches []touch
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, _ := ebiten.TouchPosition(id)
		touches = append(touches, touch{X: x, New: slices.Contains(pressed, id)})
	}
	in.applyTouches(touches)

	// Only a moved cursor steers, so the keyboard keeps working
	if x, _ := ebiten.CursorPosition(); float64(x) != h.lastX && !in.PointerValid {
		h.lastX = float64(x)
		in.PointerX, in.PointerValid = float64(x), true
	}
	return in
}

// Step applies one frame of input and advances the simulation.
func (h *Host) Step(in Input) error {
	if in.Quit {
		return ebiten.Termination
	}

	state := h.sim.State()
	if state != breakout.Playing && (in.Start || (h.autopilot != nil && state == breakout.NotStarted)) {
		h.sim.Start()
		h.paused = false
		h.ended = false
		h.logger.Info("run started", "seed", h.seed)
		return nil
	}

	if in.Pause && state == breakout.Playing {
		h.paused = !h.paused
	}
	if h.paused || state != breakout.Playing {
		return nil
	}

	if in.PointerValid {
		h.sim.SetPaddlePosition(in.PointerX)
	}
	speed := h.sim.Config().Paddle.Speed * h.dt
	if in.Left {
		h.sim.SetPaddlePosition(h.sim.Paddle().X - speed)
	}
	if in.Right {
		h.sim.SetPaddlePosition(h.sim.Paddle().X + speed)
	}
	if h.autopilot != nil {
		if x, ok := h.autopilot.Target(h.sim); ok {
			h.sim.SetPaddlePosition(x)
		}
	}

	h.sim.Update(h.dt)
	h.checkEnd()
	return nil
}

func (h *Host) checkEnd() {
	state := h.sim.State()
	if h.ended || (state != breakout.GameOver && state != breakout.Won) {
		return
	}
	h.ended = true

	rep := h.Report()
	h.logger.Info("run ended", "state", state, "score", rep.Score, "bricks", rep.BricksDestroyed)
	if h.onEnd != nil {
		h.onEnd(rep)
	}
}

// Report summarizes the current run.
func (h *Host) Report() core.RunReport {
	stats := h.sim.Stats()
	return core.RunReport{
		Seed:            h.seed,
		Score:           h.sim.Score(),
		Won:             h.sim.State() == breakout.Won,
		BricksDestroyed: stats.BricksDestroyed,
		BallsSpawned:    stats.BallsSpawned,
		BallsLost:       stats.BallsLost,
		Duration:        stats.ElapsedSeconds,
		StateHash:       h.sim.Snapshot().Hash(),
	}
}

// Layout implements ebiten.Game; the logical screen is the field.
func (h *Host) Layout(_, _ int) (int, int) {
	f := h.sim.Config().Field
	return int(f.Width), int(f.Height)
}

var backgroundColor = color.RGBA{16, 16, 28, 255}

// BrickColor shades bricks by remaining health.
func BrickColor(health int) color.RGBA {
	return breakout.BrickColor(health).RGBA()
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for _, b := range h.sim.Bricks() {
		bmin := b.Box().Min()
		vector.DrawFilledRect(screen, float32(bmin.X), float32(bmin.Y), float32(b.W), float32(b.H), BrickColor(b.Health), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", b.Health), int(b.Center.X)-3, int(b.Center.Y)-8)
	}

	for _, p := range h.sim.GenerationPoints() {
		vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius), breakout.PointColor.RGBA(), true)
	}

	paddle := h.sim.Paddle()
	pmin := paddle.Box().Min()
	vector.DrawFilledRect(screen, float32(pmin.X), float32(pmin.Y), float32(paddle.Width), float32(paddle.Height), breakout.PaddleColor.RGBA(), false)

	for _, b := range h.sim.Balls() {
		vector.DrawFilledCircle(screen, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius), breakout.BallColor.RGBA(), true)
	}

	ebitenutil.DebugPrintAt(screen, h.HUD(), 8, 4)
	if msg := h.Overlay(); msg != "" {
		f := h.sim.Config().Field
		ebitenutil.DebugPrintAt(screen, msg, int(f.Width)/2-len(msg)*3, int(f.Height)/2)
	}
}

// HUD is the status line drawn at the top of the window.
func (h *Host) HUD() string {
	return fmt.Sprintf("Score: %d   Balls: %d   Points: %d   Next: %.1fs",
		h.sim.Score(), h.sim.ActiveBallCount(), len(h.sim.GenerationPoints()), h.sim.NextGenerationIn())
}

// Overlay is the centered message for the current state, if any.
func (h *Host) Overlay() string {
	switch h.sim.State() {
	case breakout.NotStarted:
		return "Click or press Space to start"
	case breakout.GameOver:
		return fmt.Sprintf("GAME OVER  score %d  click to restart", h.sim.Score())
	case breakout.Won:
		return fmt.Sprintf("YOU WIN  score %d  click to play again", h.sim.Score())
	}
	if h.paused {
		return "PAUSED"
	}
	return ""
}

// Run opens the window and blocks until it is closed.
func Run(h *Host, title string) error {
	w, hgt := h.Layout(0, 0)
	ebiten.SetWindowSize(w, hgt)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(h.tps)

	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
