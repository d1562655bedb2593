// multiball-window runs multiball in a desktop window, or in a browser
// canvas when built with GOOS=js GOARCH=wasm.
//
// Usage:
//
//	multiball-window [--seed N] [--level diamond] [--difficulty hard] [--sound]
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/multiball/internal/audio"
	"github.com/vovakirdan/multiball/internal/config"
	"github.com/vovakirdan/multiball/internal/games/breakout"
	"github.com/vovakirdan/multiball/internal/platform/window"
)

var (
	flagTPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagLogLevel   string
	flagSound      bool
	flagAutopilot  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "multiball-window",
	Short: "Play multiball in a window",
	Long: `Play multiball in a window. Move the mouse to steer the paddle and
click to start. Arrow keys also move the paddle, P pauses, Esc quits.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().IntVar(&flagTPS, "tps", 60, "Simulation ticks per second")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom breakout config YAML")
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.Flags().StringVar(&flagLevel, "level", "", "Built-in layout: grid, pyramid, checker, diamond, fortress")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&flagSound, "sound", true, "Play sound effects")
	rootCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Let the autopilot play")
}

func run(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "window",
	})

	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(flagDifficulty)

	cfg, err := breakout.LoadConfig(breakout.VariantMultiBall)
	if err != nil {
		logger.Warn("using default config", "error", err)
	}
	if flagLevel != "" {
		cfg.Bricks.Level = flagLevel
		cfg.Bricks.Layout = nil
	}
	lvl, err := breakout.LevelFromConfig(cfg)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	hooks := breakout.MultiHooks{breakout.LogHooks{Logger: logger.WithPrefix("sim")}}
	if flagSound {
		p := audio.NewPlayer(0.6)
		if err := p.Start(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer p.Close()
			hooks = append(hooks, p)
		}
	}

	sim := breakout.NewSimulation(cfg,
		breakout.WithSeed(seed),
		breakout.WithHooks(hooks),
		breakout.WithLevel(lvl),
	)

	opts := []window.Option{
		window.WithTPS(flagTPS),
		window.WithLogger(logger),
	}
	if flagAutopilot {
		opts = append(opts, window.WithAutopilot())
	}
	return window.Run(window.NewHost(sim, seed, opts...), "Multiball")
}
