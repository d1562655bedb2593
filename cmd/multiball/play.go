package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/multiball/internal/core"
	"github.com/vovakirdan/multiball/internal/games/breakout"
	"github.com/vovakirdan/multiball/internal/platform/tui"
	"github.com/vovakirdan/multiball/internal/registry"
	"github.com/vovakirdan/multiball/internal/storage"
)

var flagLevel string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game, or pick one from the menu when no
game is given. After a game ends in menu mode you return to the menu.

Controls:
  Mouse          - Move the paddle, click to start
  Left/Right/A/D - Move the paddle
  Space/Enter    - Start (or restart after the run ends)
  P              - Pause
  R              - Restart after game over
  B/Esc          - Back to menu (paused or finished)
  Ctrl+S         - Save a screenshot
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Wider paddle, softer bricks, more frequent generation points
  normal - Configured values
  hard   - Narrower paddle, rarer generation points
  fixed  - No progression of the generation period

Examples:
  multiball play
  multiball play breakout
  multiball play breakout --level fortress
  multiball play breakout --difficulty hard --sound
  multiball play breakout --config ./my-breakout.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Built-in layout (see 'multiball list')")
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database; games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close scores database", "error", err)
	}
}

func runPlay(_ *cobra.Command, args []string) {
	if flagLevel != "" {
		if _, err := breakout.LevelByID(flagLevel); err != nil {
			fail("%v", err)
		}
	}

	if _, err := breakout.LoadConfig(breakout.VariantMultiBall); err != nil {
		logger.Warn("using default config", "error", err)
	}

	store := openStore()
	defer closeStore(store)

	cfg := terminalConfig()
	if len(args) == 0 {
		runMenuLoop(store, cfg)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		closeStore(store)
		fail("unknown game %q\nRun 'multiball list' to see available games.", gameID)
	}

	game, err := tui.CreateGame(gameID, flagLevel)
	if err != nil {
		closeStore(store)
		fail("creating game: %v", err)
	}

	if err := tui.Run(game, store, cfg, logger); err != nil {
		closeStore(store)
		fail("running game: %v", err)
	}
}

// runMenuLoop alternates between the menu, the scoreboard and games until
// the player quits.
func runMenuLoop(store *storage.Store, cfg core.RuntimeConfig) {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("menu failed", "error", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return // User quit from scoreboard
		}

		level := menuResult.Level
		if flagLevel != "" && level == "" {
			level = flagLevel
		}
		game, err := tui.CreateGame(menuResult.GameID, level)
		if err != nil {
			logger.Error("could not create game", "game", menuResult.GameID, "error", err)
			continue
		}
	
		model := tui.NewModel(game, store, cfg).WithLogger(logger).WithBackToMenu()
		finalModel, err := runProgram(model)
		if err != nil {
			logger.Error("game failed", "error", err)
			return
		}
		if m, ok := finalModel.(tui.Model); ok && m.IsQuitting() {
			return
		}
	}
}
