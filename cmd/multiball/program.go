package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/multiball/internal/platform/tui"
)

// runProgram runs a model until it quits or asks to go back to the menu.
func runProgram(model tui.Model) (tea.Model, error) {
	p := tea.NewProgram(backWatcher{model}, tui.ProgramOptions()...)
	final, err := p.Run()
	if bw, ok := final.(backWatcher); ok {
		return bw.Model, err
	}
	return final, err
}

// backWatcher ends the program when the game asks to return to the menu.
type backWatcher struct {
	tui.Model
}

func (b backWatcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := b.Model.Update(msg)
	if m, ok := next.(tui.Model); ok {
		b.Model = m
	}
	if b.BackToMenu() {
		return b, tea.Quit
	}
	return b, cmd
}
