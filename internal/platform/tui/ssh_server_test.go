package tui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func sessionSend(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return model
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel(nil, testRuntime(), "tester")

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame {
		t.Fatalf("view = %v after select, want game", m.view)
	}
	if m.View() == "" {
		t.Fatal("game view should not be empty")
	}

	// Start, pause, then leave
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = sessionSend(t, m, tick())
	m = sessionSend(t, m, runeKey('p'))
	m = sessionSend(t, m, tick())
	m = sessionSend(t, m, runeKey('b'))
	if m.view != viewMenu {
		t.Fatalf("view = %v after back, want menu", m.view)
	}
	if m.quitting {
		t.Error("back should not end the session")
	}

	// A stale tick from the left game is ignored by the menu
	m = sessionSend(t, m, tick())
	if m.view != viewMenu {
		t.Errorf("view = %v after stale tick, want menu", m.view)
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(nil, testRuntime(), "tester")

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewScoreboard {
		t.Fatalf("view = %v after tab, want scoreboard", m.view)
	}
	m = sessionSend(t, m, runeKey('v'))
	if m.View() == "" {
		t.Error("scoreboard view should not be empty")
	}

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Errorf("view = %v after esc, want menu", m.view)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testRuntime(), "tester")

	next, cmd := m.Update(runeKey('q'))
	if !next.(SessionModel).quitting {
		t.Error("q in menu should end the session")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}

	m = sessionSend(t, NewSessionModel(nil, testRuntime(), "tester"), tea.KeyMsg{Type: tea.KeyEnter})
	m = sessionSend(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("q in game should end the session")
	}
}

func TestSSHServerLifecycle(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.Addr() != cfg.Address {
		t.Errorf("Addr() = %q, want %q", srv.Addr(), cfg.Address)
	}
	if srv.ActiveSessions() != 0 {
		t.Errorf("ActiveSessions() = %d before any connection", srv.ActiveSessions())
	}
	if _, err := os.Stat(filepath.Dir(cfg.HostKeyPath)); err != nil {
		t.Errorf("host key directory not created: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() after cancel = %v, want nil", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
