package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/multiball/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages into game and
// menu actions. Bindings are plain tables keyed by tea.KeyMsg.String().
type KeyMapper struct {
	game map[string]core.Action
	menu map[string]MenuAction
}

func bind[A any](into map[string]A, a A, keys ...string) {
	for _, k := range keys {
		into[k] = a
	}
}

// NewKeyMapper returns a mapper with the default bindings: arrows, WASD
// and vim keys for movement, space or enter to start, q to quit.
func NewKeyMapper() *KeyMapper {
	game := make(map[string]core.Action)
	bind(game, core.ActionQuit, "ctrl+c", "q")
	bind(game, core.ActionLeft, "a", "left", "h")
	bind(game, core.ActionRight, "d", "right", "l")
	bind(game, core.ActionJump, " ")
	bind(game, core.ActionConfirm, "enter")
	bind(game, core.ActionBack, "b", "esc")
	bind(game, core.ActionPause, "p")
	bind(game, core.ActionRestart, "r")

	menu := make(map[string]MenuAction)
	bind(menu, MenuActionQuit, "ctrl+c", "q")
	bind(menu, MenuActionUp, "w", "up", "k")
	bind(menu, MenuActionDown, "s", "down", "j")
	bind(menu, MenuActionLeft, "a", "left", "h")
	bind(menu, MenuActionRight, "d", "right", "l")
	bind(menu, MenuActionSelect, "enter", " ")
	bind(menu, MenuActionBack, "b", "esc")
	bind(menu, MenuActionScoreboard, "tab")

	return &KeyMapper{game: game, menu: menu}
}

// MapKey returns the game action bound to msg, ActionNone when unbound,
// and whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action = km.game[msg.String()]
	return action, action == core.ActionQuit
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	frame.Set(action)
	return isQuit
}

// MapMouseToFrame records pointer movement and turns a left click into
// a confirm, so the mouse alone can start and steer a game.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	switch msg.Action {
	case tea.MouseActionMotion:
		frame.MovePointer(msg.X, msg.Y)
	case tea.MouseActionPress:
		frame.MovePointer(msg.X, msg.Y)
		if msg.Button == tea.MouseButtonLeft {
			frame.Set(core.ActionConfirm)
		}
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction returns the menu action bound to msg.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return km.menu[msg.String()]
}
