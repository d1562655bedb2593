package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/multiball/internal/config"
	"github.com/vovakirdan/multiball/internal/core"
	"github.com/vovakirdan/multiball/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	PointChar  = '✦'
)

// Palette colors shared by the terminal and window hosts
const (
	PaddleColor = core.ColorCyan
	BallColor   = core.ColorWhite
	PointColor  = core.ColorBrightCyan
)

// Brick glyphs by remaining health (1, 2, 3+)
var BrickGlyphs = []rune{'░', '▒', '▓'}

// Variant selects the rule set a Game runs.
type Variant int

const (
	VariantMultiBall Variant = iota // Randomized health, generation points
	VariantClassic                  // One-hit bricks, a single ball
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// hooks receives simulation notifications for every new game
var hooks Hooks = NopHooks{}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetHooks installs the hooks used by games created afterwards.
func SetHooks(h Hooks) {
	if h == nil {
		h = NopHooks{}
	}
	hooks = h
}

// LoadConfig resolves the configuration for a variant, applying the CLI
// config path and difficulty preset.
func LoadConfig(v Variant) (config.BreakoutConfig, error) {
	var (
		cfg config.BreakoutConfig
		err error
	)
	if v == VariantClassic {
		cfg = config.DefaultClassicConfig()
	} else {
		cfg, err = config.LoadBreakout(configPath)
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	}
	return cfg, err
}

// LevelFromConfig picks the brick layout named by the configuration. A
// layout without a single brick is rejected since such a run can never be
// won.
func LevelFromConfig(cfg config.BreakoutConfig) (*Level, error) {
	var (
		level *Level
		err   error
	)
	switch {
	case len(cfg.Bricks.Layout) > 0:
		level = ParseLevel("custom", "Custom", cfg.Bricks.Layout)
	case cfg.Bricks.Level != "":
		level, err = LevelByID(cfg.Bricks.Level)
	default:
		level = GridLevel(cfg.Bricks.Rows, cfg.Bricks.Cols)
	}
	if err != nil {
		return nil, err
	}
	if level.Count() == 0 {
		return nil, fmt.Errorf("%w: level %q has no bricks", config.ErrInvalidConfig, level.ID)
	}
	return level, nil
}

// Game adapts a Simulation to the platform: it maps input frames to
// simulation events, drives physics at the tick rate and draws the field
// scaled onto the terminal grid.
type Game struct {
	variant Variant
	cfg     config.BreakoutConfig
	sim     *Simulation
	runtime core.RuntimeConfig
	dt      float64
	loadErr error

	levelID   string
	paused    bool
	tickCount uint64
	autopilot *Autopilot

	// Play area inside the border, in screen cells
	field          core.Rect
	screenTooSmall bool
	minScreenW     int
	minScreenH     int
}

// New creates a multi-ball Breakout game.
func New() *Game {
	return &Game{variant: VariantMultiBall}
}

// NewClassic creates the single-ball variant.
func NewClassic() *Game {
	return &Game{variant: VariantClassic}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.variant == VariantClassic {
		return "breakout_classic"
	}
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "Breakout (Classic)"
	}
	return "Breakout (Multi-ball)"
}

// Reset rebuilds the simulation for a new session. The run itself begins
// on the first confirm input.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.dt = runtime.TickSeconds()

	cfg, err := LoadConfig(g.variant)
	if g.levelID != "" {
		cfg.Bricks.Level = g.levelID
		cfg.Bricks.Layout = nil
	}
	g.cfg = cfg
	g.loadErr = err

	level, err := LevelFromConfig(cfg)
	if err != nil {
		g.loadErr = err
		def := config.DefaultBreakoutConfig().Bricks
		level = GridLevel(def.Rows, def.Cols)
	}

	g.sim = NewSimulation(cfg, WithSeed(runtime.Seed), WithHooks(hooks), WithLevel(level))
	g.paused = false
	g.tickCount = 0

	g.minScreenW = 30
	g.minScreenH = 15
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// Resize recomputes the field mapping without touching the simulation.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH

	// HUD on row 0, border from row 1 down to the last row
	g.field = core.NewRect(1, 2, max(w-2, 1), max(h-3, 1))
}

// LoadError reports a configuration problem hit by the last Reset. The
// game falls back to defaults in that case.
func (g *Game) LoadError() error {
	return g.loadErr
}

// SetLevel selects a built-in layout for runs after the next Reset.
// An empty id keeps the configured layout.
func (g *Game) SetLevel(id string) {
	g.levelID = id
}

// SetAutopilot lets the built-in autopilot steer and start runs.
func (g *Game) SetAutopilot(on bool) {
	if on {
		g.autopilot = &Autopilot{}
	} else {
		g.autopilot = nil
	}
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall || g.sim == nil {
		return core.StepResult{State: g.State()}
	}

	state := g.sim.State()

	// Tap to begin, or to play again after the run ended
	wantsStart := in.Has(core.ActionConfirm) || in.Has(core.ActionJump) || in.Has(core.ActionRestart)
	if state != Playing && (wantsStart || (g.autopilot != nil && state == NotStarted)) {
		g.sim.Start()
		g.paused = false
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && state == Playing {
		g.paused = !g.paused
	}
	if g.paused || state != Playing {
		return core.StepResult{State: g.State()}
	}

	if in.Pointer.Valid {
		g.sim.SetPaddlePosition(g.cellToFieldX(in.Pointer.X))
	}
	step := g.cfg.Paddle.Speed * g.dt
	if in.Has(core.ActionLeft) {
		g.sim.SetPaddlePosition(g.sim.Paddle().X - step)
	}
	if in.Has(core.ActionRight) {
		g.sim.SetPaddlePosition(g.sim.Paddle().X + step)
	}
	if g.autopilot != nil {
		if x, ok := g.autopilot.Target(g.sim); ok {
			g.sim.SetPaddlePosition(x)
		}
	}

	g.tickCount++
	g.sim.Update(g.dt)

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	s := g.sim.State()
	return core.GameState{
		Score:    g.sim.Score(),
		GameOver: s == GameOver || s == Won,
		Won:      s == Won,
		Paused:   g.paused,
		Balls:    g.sim.ActiveBallCount(),
	}
}

// TickCount returns the number of simulated ticks since Reset.
func (g *Game) TickCount() uint64 {
	return g.tickCount
}

// Report summarizes the current run.
func (g *Game) Report() core.RunReport {
	stats := g.sim.Stats()
	return core.RunReport{
		Seed:            g.runtime.Seed,
		Score:           g.sim.Score(),
		Won:             g.sim.State() == Won,
		BricksDestroyed: stats.BricksDestroyed,
		BallsSpawned:    stats.BallsSpawned,
		BallsLost:       stats.BallsLost,
		Duration:        stats.ElapsedSeconds,
		StateHash:       g.sim.Snapshot().Hash(),
	}
}

// Snapshot returns the simulation snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.sim.Snapshot()
}

// cellToFieldX maps a screen column to the center of that column in field
// units.
func (g *Game) cellToFieldX(col int) float64 {
	rel := (float64(col-g.field.X) + 0.5) / float64(g.field.W)
	return rel * g.cfg.Field.Width
}

func (g *Game) fieldToCellX(x float64) int {
	c := g.field.X + int(math.Floor(x/g.cfg.Field.Width*float64(g.field.W)))
	return core.Clamp(c, g.field.X, g.field.Right()-1)
}

func (g *Game) fieldToCellY(y float64) int {
	r := g.field.Y + int(math.Floor(y/g.cfg.Field.Height*float64(g.field.H)))
	return core.Clamp(r, g.field.Y, g.field.Bottom()-1)
}

// Render draws the current game state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}
	if g.sim == nil {
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(core.NewRect(0, 1, dst.Width(), dst.Height()-1))
	g.renderBricks(dst)
	g.renderPoints(dst)
	g.renderPaddle(dst)
	g.renderBalls(dst)
	g.renderOverlay(dst)
}

// renderHUD draws the score, ball count and generation status.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.sim.Score()), core.ColorBrightYellow)

	ballsText := fmt.Sprintf("Balls: %d", g.sim.ActiveBallCount())
	dst.DrawTextCentered(0, ballsText)

	if !g.cfg.Generation.Enabled {
		return
	}
	genText := fmt.Sprintf("Points: %d", len(g.sim.GenerationPoints()))
	if g.sim.GenerationRunning() {
		genText += fmt.Sprintf("  Next: %.1fs", g.sim.NextGenerationIn())
	}
	dst.DrawTextColored(dst.Width()-len(genText)-1, 0, genText, core.ColorMagenta)
}

// renderBricks draws each brick as a glyph run with its health digit.
func (g *Game) renderBricks(dst *core.Screen) {
	for _, b := range g.sim.Bricks() {
		box := b.Box()
		x0 := g.fieldToCellX(box.Min().X)
		x1 := g.fieldToCellX(box.Max().X) - 1
		if x1 < x0 {
			x1 = x0
		}
		y := g.fieldToCellY(b.Center.Y)

		glyph := BrickGlyphs[core.Clamp(b.Health, 1, len(BrickGlyphs))-1]
		color := BrickColor(b.Health)
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, glyph, color)
		}
		if x1-x0 >= 2 && b.Health > 1 {
			dst.SetColored((x0+x1)/2, y, rune('0'+min(b.Health, 9)), core.ColorWhite)
		}
	}
}

// BrickColor shades a brick by its remaining health.
func BrickColor(health int) core.Color {
	switch health {
	case 1:
		return core.ColorGreen
	case 2:
		return core.ColorYellow
	case 3:
		return core.ColorRed
	default:
		return core.ColorMagenta
	}
}

func (g *Game) renderPoints(dst *core.Screen) {
	for _, p := range g.sim.GenerationPoints() {
		dst.SetColored(g.fieldToCellX(p.Pos.X), g.fieldToCellY(p.Pos.Y), PointChar, PointColor)
	}
}

func (g *Game) renderPaddle(dst *core.Screen) {
	box := g.sim.Paddle().Box()
	x0 := g.fieldToCellX(box.Min().X)
	x1 := g.fieldToCellX(box.Max().X)
	y := g.fieldToCellY(box.Center.Y)
	for x := x0; x <= x1; x++ {
		dst.SetColored(x, y, PaddleChar, PaddleColor)
	}
}

func (g *Game) renderBalls(dst *core.Screen) {
	for _, b := range g.sim.Balls() {
		if b.Pos.Y > g.cfg.Field.Height {
			continue
		}
		dst.SetColored(g.fieldToCellX(b.Pos.X), g.fieldToCellY(b.Pos.Y), BallChar, BallColor)
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.sim.State() {
	case NotStarted:
		dst.DrawTextCentered(dst.Height()-1, " Click or press SPACE to start ")

	case Playing:
		if g.paused {
			g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
		}

	case GameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.sim.Score())
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case Won:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.sim.Score())
		g.drawCenteredBox(dst, "YOU WIN!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
	registry.Register("breakout_classic", func() registry.Game {
		return NewClassic()
	})
}
