package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/multiball/internal/games/breakout"
)

func menuSend(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want MenuModel", next)
	}
	return model
}

func TestMenuListsBothVariants(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())

	ids := make(map[string]bool)
	for _, item := range m.items {
		ids[item.GameID] = true
	}
	for _, id := range []string{"breakout", "breakout_classic"} {
		if !ids[id] {
			t.Errorf("menu missing %q", id)
		}
	}
}

func TestMenuLayoutCycling(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	if m.Level() != "" {
		t.Fatalf("default layout = %q, want configured", m.Level())
	}

	levels := breakout.BuiltinLevels()
	m = menuSend(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Level() != levels[0].ID {
		t.Errorf("Level() = %q, want %q", m.Level(), levels[0].ID)
	}

	// Left from the first entry wraps to the last layout
	m = menuSend(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = menuSend(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Level() != levels[len(levels)-1].ID {
		t.Errorf("Level() = %q, want %q", m.Level(), levels[len(levels)-1].ID)
	}
}

func TestMenuViewShowsLayout(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	if view := m.View(); !strings.Contains(view, "Configured") {
		t.Errorf("menu should start on the configured layout:\n%s", view)
	}

	first := breakout.BuiltinLevels()[0]
	m = menuSend(t, m, tea.KeyMsg{Type: tea.KeyRight})
	want := fmt.Sprintf("%s, %d bricks", first.Name, first.Count())
	if view := m.View(); !strings.Contains(view, want) {
		t.Errorf("menu view missing %q:\n%s", want, view)
	}
}

func TestMenuResult(t *testing.T) {
	tests := []struct {
		name       string
		keys       []tea.KeyMsg
		wantGame   bool
		scoreboard bool
		quit       bool
	}{
		{"select", []tea.KeyMsg{{Type: tea.KeyEnter}}, true, false, false},
		{"scoreboard", []tea.KeyMsg{{Type: tea.KeyTab}}, false, true, false},
		{"quit", []tea.KeyMsg{runeKey('q')}, false, false, true},
		{"nothing chosen", nil, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel(nil, testRuntime())
			for _, k := range tt.keys {
				m = menuSend(t, m, k)
			}
			res := m.Result()
			if (res.GameID != "") != tt.wantGame {
				t.Errorf("GameID = %q, want set=%v", res.GameID, tt.wantGame)
			}
			if res.WantsScoreboard != tt.scoreboard {
				t.Errorf("WantsScoreboard = %v, want %v", res.WantsScoreboard, tt.scoreboard)
			}
			if res.Quit != tt.quit {
				t.Errorf("Quit = %v, want %v", res.Quit, tt.quit)
			}
		})
	}
}

func TestCreateGameAppliesLevel(t *testing.T) {
	game, err := CreateGame("breakout", "diamond")
	if err != nil {
		t.Fatalf("CreateGame() error: %v", err)
	}
	game.Reset(testRuntime())

	bg, ok := game.(*breakout.Game)
	if !ok {
		t.Fatalf("CreateGame returned %T", game)
	}
	if got := len(bg.Simulation().Bricks()); got != 18 {
		t.Errorf("diamond bricks = %d, want 18", got)
	}

	if _, err := CreateGame("missing", ""); err == nil {
		t.Error("CreateGame should fail for unknown id")
	}
}
