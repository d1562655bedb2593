package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/multiball/internal/core"
	"github.com/vovakirdan/multiball/internal/games/breakout"
	"github.com/vovakirdan/multiball/internal/registry"
	"github.com/vovakirdan/multiball/internal/storage"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
}

// levelChoice is one entry of the layout selector; an empty ID keeps the
// configured layout.
type levelChoice struct {
	ID     string
	Name   string
	Bricks int // 0 for the configured layout
}

func (c levelChoice) label() string {
	if c.Bricks == 0 {
		return c.Name
	}
	return fmt.Sprintf("%s, %d bricks", c.Name, c.Bricks)
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	levels         []levelChoice
	cursor         int
	levelCursor    int
	highScores     map[string]int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	highScores := make(map[string]int, len(games))

	for _, g := range games {
		items = append(items, MenuItem{
			GameID: g.ID,
			Title:  g.Title,
		})
		if store != nil {
			if hs, err := store.HighScore(g.ID); err == nil {
				highScores[g.ID] = hs
			}
		}
	}

	levels := []levelChoice{{ID: "", Name: "Configured"}}
	for _, l := range breakout.BuiltinLevels() {
		levels = append(levels, levelChoice{ID: l.ID, Name: l.Name, Bricks: l.Count()})
	}

	return MenuModel{
		items:      items,
		levels:     levels,
		highScores: highScores,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.levelCursor = (m.levelCursor + len(m.levels) - 1) % len(m.levels)

	case MenuActionRight:
		m.levelCursor = (m.levelCursor + 1) % len(m.levels)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
)

const menuControls = "Up/Down: Game  |  Left/Right: Layout  |  Enter: Play  |  Tab: Scores  |  Q: Quit"

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	rows := make([]string, 0, len(m.items)+2)
	for i, item := range m.items {
		line := item.Title
		if best := m.highScores[item.GameID]; best > 0 {
			line += menuDimStyle.Render(fmt.Sprintf("  best %d", best))
		}
		if i == m.cursor {
			line = menuSelectedStyle.Render(" "+item.Title+" ") + strings.TrimPrefix(line, item.Title)
		} else {
			line = " " + line
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", fmt.Sprintf("Layout  < %s >", m.levels[m.levelCursor].label()))

	sections := []string{
		"",
		centerText(menuTitleStyle.Render("  M U L T I B A L L  "), m.width),
		"",
		centerText(menuBoxStyle.Render(strings.Join(rows, "\n")), m.width),
		"",
		centerText(menuDimStyle.Render(menuControls), m.width),
		"",
	}
	return strings.Join(sections, "\n")
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Level returns the chosen layout ID; empty means the configured one.
func (m MenuModel) Level() string {
	return m.levels[m.levelCursor].ID
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers each line of text, which may carry ANSI styling,
// within width. Wider text is returned unchanged.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Level           string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}

// Result summarizes the menu's final state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
		result.Level = m.Level()
	}

	return result
}

// levelSetter is implemented by games with selectable layouts.
type levelSetter interface {
	SetLevel(id string)
}

// CreateGame instantiates a registered game and applies the layout choice.
func CreateGame(id, level string) (registry.Game, error) {
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if ls, ok := game.(levelSetter); ok && level != "" {
		ls.SetLevel(level)
	}
	return game, nil
}
