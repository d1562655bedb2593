package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/multiball/internal/storage"
)

func scoreboardSend(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T, want ScoreboardModel", next)
	}
	return model
}

func TestSummarizeRuns(t *testing.T) {
	runs := []storage.RunRecord{
		{Outcome: storage.OutcomeWon, BricksDestroyed: 24},
		{Outcome: storage.OutcomeLost, BricksDestroyed: 7},
		{Outcome: storage.OutcomeLost, BricksDestroyed: 3},
		{Outcome: storage.OutcomeQuit, BricksDestroyed: 0},
	}

	s := summarizeRuns(runs)
	if s.won != 1 || s.lost != 2 || s.quit != 1 {
		t.Errorf("summary = %+v, want 1 won, 2 lost, 1 quit", s)
	}
	if s.bestBricks != 24 {
		t.Errorf("bestBricks = %d, want 24", s.bestBricks)
	}
}

func TestScoreboardLoadsSelectedGame(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, score := range []int{120, 340} {
		if _, err := store.SaveScore("breakout", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	run := storage.RunRecord{GameID: "breakout", Seed: 7, Score: 340, Outcome: storage.OutcomeWon, BricksDestroyed: 18}
	if _, err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if got := m.games[m.gameCursor].ID; got != "breakout" {
		t.Fatalf("first game = %q, want breakout", got)
	}
	if len(m.scores) != 2 || m.scores[0].Score != 340 {
		t.Errorf("scores = %+v, want 340 first of 2", m.scores)
	}
	if m.stats == nil || m.stats.HighScore != 340 {
		t.Errorf("stats = %+v, want high score 340", m.stats)
	}
	if m.summary.won != 1 {
		t.Errorf("won = %d, want 1", m.summary.won)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("default view should show high scores")
	}

	m = scoreboardSend(t, m, runeKey('v'))
	if m.view != viewRecentRuns {
		t.Fatalf("view = %v after v, want recent runs", m.view)
	}
	if len(m.table.Rows()) != 1 {
		t.Errorf("run rows = %d, want 1", len(m.table.Rows()))
	}

	// The classic variant has nothing recorded
	m = scoreboardSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.games[m.gameCursor].ID; got != "breakout_classic" {
		t.Fatalf("game after tab = %q, want breakout_classic", got)
	}
	if len(m.runs) != 0 || len(m.table.Rows()) != 0 {
		t.Errorf("classic should have no runs, got %d", len(m.runs))
	}
	if !strings.Contains(m.View(), "Nothing recorded yet") {
		t.Error("empty game should render the placeholder")
	}
}

func TestScoreboardNarrowLayout(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if m.wide() {
		t.Fatal("60 columns should use the narrow layout")
	}
	if !strings.Contains(m.View(), "best 0") {
		t.Error("narrow view should carry the one-line summary")
	}

	m = scoreboardSend(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !m.wide() {
		t.Error("120 columns should show the stats panel")
	}
	if !strings.Contains(m.View(), "No scores yet") {
		t.Error("stats panel should note missing scores")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := scoreboardSend(t, NewScoreboardModel(nil, 80, 24), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back without quitting")
	}

	m = scoreboardSend(t, NewScoreboardModel(nil, 80, 24), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
