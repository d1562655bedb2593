// multiball is a multi-ball breakout for the terminal.
//
// Usage:
//
//	multiball list              - List available games
//	multiball play [game]       - Play a game, or pick one from the menu
//	multiball serve             - Start SSH server for remote play
//	multiball scores [game]     - Show high scores and recent runs
//	multiball autoplay          - Let the autopilot play headless runs
//	multiball config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.multiball/scores.db)
//	--config <path>       - Custom breakout YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--sound               - Play sound effects
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/multiball/internal/audio"
	"github.com/vovakirdan/multiball/internal/config"
	"github.com/vovakirdan/multiball/internal/games/breakout"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagSound      bool
	flagVolume     float64
)

var (
	logger  = log.Default()
	player  *audio.Player
	logSink io.Closer
)

func main() {
	err := rootCmd.Execute()
	shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "multiball",
	Short: "Multiball - breakout where touching a marker spawns another ball",
	Long: `Multiball is a breakout game for your terminal. Generation points appear
on the field every few seconds; a ball that touches one spawns another ball.
The run ends when the last ball falls past the paddle or every brick is gone.

Available commands:
  list      - Show all available games
  play      - Play a game (menu when no game is given)
  serve     - Start SSH server for remote play
  scores    - View high scores and recent runs
  autoplay  - Run the autopilot headless
  config    - Print the effective configuration

Examples:
  multiball play
  multiball play breakout --level diamond
  multiball play breakout_classic --difficulty easy
  multiball serve --ssh :2222
  multiball autoplay --runs 5 --seed 42`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.multiball/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom breakout config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", 0.6, "Sound effect volume (0-1)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(configCmd)
}

// setup builds the root logger and installs game-wide settings from the
// global flags.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out, logSink = f, f
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(flagDifficulty)

	var hooks breakout.MultiHooks
	if level <= log.DebugLevel {
		hooks = append(hooks, breakout.LogHooks{Logger: logger.WithPrefix("sim")})
	}
	if flagSound {
		p := audio.NewPlayer(flagVolume)
		if err := p.Start(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			player = p
			hooks = append(hooks, p)
		}
	}
	if len(hooks) > 0 {
		breakout.SetHooks(hooks)
	}
	return nil
}

// shutdown releases resources opened by setup.
func shutdown() {
	if player != nil {
		player.Close()
	}
	if logSink != nil {
		logSink.Close()
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	shutdown()
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
