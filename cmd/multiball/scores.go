package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/multiball/internal/registry"
	"github.com/vovakirdan/multiball/internal/storage"
)

var (
	flagRuns  int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and recent runs",
	Long: `Display the top 10 high scores for the specified game, followed by the
most recent recorded runs. Without a game, recent runs of every game are
listed.

Examples:
  multiball scores breakout
  multiball scores breakout_classic --runs 20
  multiball scores breakout --clear
  multiball scores`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of recent runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score and run of the game")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fail("unknown game %q\nRun 'multiball list' to see available games.", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer closeStore(store)

	if flagClear {
		if gameID == "" {
			closeStore(store)
			fail("--clear needs a game id")
		}
		n, err := store.ClearScores(gameID)
		if err != nil {
			closeStore(store)
			fail("clearing scores: %v", err)
		}
		logger.Info("cleared scores", "game", gameID, "removed", n)
		return
	}

	if gameID != "" {
		if err := printHighScores(store, gameID); err != nil {
			closeStore(store)
			fail("retrieving scores: %v", err)
		}
	}

	if flagRuns > 0 {
		if err := printRuns(store, gameID, flagRuns); err != nil {
			closeStore(store)
			fail("retrieving runs: %v", err)
		}
	}
}

func printHighScores(store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'multiball play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Games: %d   Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
		if len(stats.Outcomes) > 0 {
			fmt.Printf("Runs cleared: %d   lost: %d   quit: %d\n",
				stats.Outcomes[storage.OutcomeWon], stats.Outcomes[storage.OutcomeLost], stats.Outcomes[storage.OutcomeQuit])
		}
	}
	return nil
}

func printRuns(store *storage.Store, gameID string, limit int) error {
	runs, err := store.RecentRuns(gameID, limit)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Recent runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-7s  %-6s  %-6s  %-5s  %-7s  %s\n", "Game", "Score", "Result", "Bricks", "Balls", "Time", "Seed")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-7d  %-6s  %-6d  %-5d  %-7s  %d\n",
			r.GameID, r.Score, r.Outcome, r.BricksDestroyed, r.BallsSpawned+1,
			fmt.Sprintf("%.1fs", r.Duration), r.Seed)
	}
	return nil
}
