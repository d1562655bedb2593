package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/multiball/internal/games/breakout"
	"github.com/vovakirdan/multiball/internal/registry"
	"github.com/vovakirdan/multiball/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games and layouts",
	Long:  `Shows the registered games and the built-in brick layouts.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	stats := loadAllStats()

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Best", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "----", "-----")
	for _, g := range games {
		best := "-"
		if st, ok := stats[g.ID]; ok {
			best = fmt.Sprintf("%d", st.HighScore)
		}
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, g.ID, best, g.Title)
	}

	fmt.Println()
	fmt.Println("Layouts:")
	fmt.Println()
	for _, l := range breakout.BuiltinLevels() {
		fmt.Printf("  %-10s  %s (%d bricks)\n", l.ID, l.Name, l.Count())
	}

	fmt.Println()
	fmt.Println("Run 'multiball play <id> --level <layout>' to play.")
}

// loadAllStats reads per-game totals for the listing. A missing or broken
// database only costs the Best column.
func loadAllStats() map[string]*storage.GameStats {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Debug("no scores database for list", "error", err)
		return nil
	}
	defer closeStore(store)

	stats, err := store.GetAllGamesStats()
	if err != nil {
		logger.Warn("could not read game stats", "error", err)
		return nil
	}
	return stats
}
