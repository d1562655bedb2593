package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/multiball/internal/core"
	"github.com/vovakirdan/multiball/internal/games/breakout"
	"github.com/vovakirdan/multiball/internal/platform/tui"
	"github.com/vovakirdan/multiball/internal/storage"
)

var (
	flagAutoRuns    int
	flagAutoMaxTime float64
	flagAutoSave    bool
	flagAutoClassic bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let the autopilot play headless runs",
	Long: `Run the simulation without a terminal UI, with the autopilot steering the
paddle. Each run prints its outcome and a state hash; the same seed always
produces the same hash, which makes autoplay handy for checking determinism
and tuning configs.

Examples:
  multiball autoplay --seed 42
  multiball autoplay --runs 10 --level pyramid --save
  multiball autoplay --difficulty hard --max-seconds 120`,
	Run: runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagAutoRuns, "runs", 1, "Number of runs")
	autoplayCmd.Flags().Float64Var(&flagAutoMaxTime, "max-seconds", 600, "Stop a run after this much simulated time")
	autoplayCmd.Flags().BoolVar(&flagAutoSave, "save", false, "Record runs in the scores database")
	autoplayCmd.Flags().BoolVar(&flagAutoClassic, "classic", false, "Play the classic variant")
	autoplayCmd.Flags().StringVar(&flagLevel, "level", "", "Built-in layout (see 'multiball list')")
}

// autoplayResult is one finished headless run.
type autoplayResult struct {
	Report core.RunReport
	Ticks  uint64
	Capped bool // Hit --max-seconds before the run ended
}

// autoplay runs one seeded game to completion or the time cap.
func autoplay(game *breakout.Game, seed int64, tickRate int, maxSeconds float64) autoplayResult {
	game.SetAutopilot(true)
	game.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: tickRate,
		Seed:     seed,
	})

	maxTicks := uint64(maxSeconds * float64(tickRate))
	in := core.NewInputFrame()
	for {
		state := game.Step(in).State
		if state.GameOver {
			break
		}
		if game.TickCount() >= maxTicks {
			return autoplayResult{Report: game.Report(), Ticks: game.TickCount(), Capped: true}
		}
	}
	return autoplayResult{Report: game.Report(), Ticks: game.TickCount()}
}

func runAutoplay(_ *cobra.Command, _ []string) {
	if flagAutoRuns <= 0 {
		fail("--runs must be positive")
	}
	if flagLevel != "" {
		if _, err := breakout.LevelByID(flagLevel); err != nil {
			fail("%v", err)
		}
	}

	var store *storage.Store
	if flagAutoSave {
		store = openStore()
		defer closeStore(store)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runLog := logger.WithPrefix("autoplay")
	wins := 0
	for i := 0; i < flagAutoRuns; i++ {
		game := breakout.New()
		if flagAutoClassic {
			game = breakout.NewClassic()
		}
		game.SetLevel(flagLevel)

		runSeed := seed + int64(i)
		res := autoplay(game, runSeed, flagFPS, flagAutoMaxTime)
		if err := game.LoadError(); err != nil && i == 0 {
			runLog.Warn("using default config", "error", err)
		}

		rep := res.Report
		outcome := storage.OutcomeLost
		switch {
		case rep.Won:
			outcome = storage.OutcomeWon
			wins++
		case res.Capped:
			outcome = "capped"
		}
		fmt.Printf("run %d  seed %d  %-6s  score %-6d  bricks %-4d  balls %-4d  %7.1fs  hash %016x\n",
			i+1, runSeed, outcome, rep.Score, rep.BricksDestroyed, rep.BallsSpawned+1, rep.Duration, rep.StateHash)

		if store != nil && !res.Capped {
			if _, err := store.SaveRun(tui.RunRecord(game.ID(), rep, false)); err != nil {
				runLog.Warn("could not save run", "error", err)
			}
		}
	}

	if flagAutoRuns > 1 {
		fmt.Printf("\n%d/%d runs cleared the field\n", wins, flagAutoRuns)
	}
}
