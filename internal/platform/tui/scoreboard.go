package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/multiball/internal/registry"
	"github.com/vovakirdan/multiball/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForPanel = 80  // Below this the stats panel collapses to one line
	panelWidth       = 24  // Width of the stats panel
	maxRows          = 100 // Max scores or runs to load
)

// scoreboardView is the table the scoreboard currently shows.
type scoreboardView int

const (
	viewHighScores scoreboardView = iota
	viewRecentRuns
)

func (v scoreboardView) title() string {
	if v == viewRecentRuns {
		return "RECENT RUNS"
	}
	return "HIGH SCORES"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Game   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Game, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Game: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "switch game"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "scores/runs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// runSummary counts outcomes over the loaded runs.
type runSummary struct {
	won, lost, quit int
	bestBricks      int
}

func summarizeRuns(runs []storage.RunRecord) runSummary {
	var s runSummary
	for _, r := range runs {
		switch r.Outcome {
		case storage.OutcomeWon:
			s.won++
		case storage.OutcomeQuit:
			s.quit++
		default:
			s.lost++
		}
		s.bestBricks = max(s.bestBricks, r.BricksDestroyed)
	}
	return s
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen. It shows
// either the high-score table or the recent-runs table for one game at a
// time, next to that game's totals.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	view       scoreboardView
	scores     []storage.ScoreEntry
	runs       []storage.RunRecord
	stats      *storage.GameStats
	summary    runSummary
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// wide reports whether the stats panel fits beside the table.
func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForPanel
}

// createTable builds an empty table with columns for the current view.
func (m ScoreboardModel) createTable() table.Model {
	tableWidth := m.width - 4 // Margins
	if m.wide() {
		tableWidth -= panelWidth + 4
	}

	var columns []table.Column
	switch m.view {
	case viewRecentRuns:
		columns = []table.Column{
			{Title: "Score", Width: 7},
			{Title: "Result", Width: 6},
			{Title: "Bricks", Width: 6},
			{Title: "Balls", Width: 5},
			{Title: "Time", Width: 7},
			{Title: "Seed", Width: max(tableWidth-41, 8)},
		}
	default:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 12},
			{Title: "Date", Width: min(max(tableWidth-22, 12), 20)},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads scores, runs and totals for the selected game.
func (m *ScoreboardModel) load() {
	m.scores, m.runs, m.stats = nil, nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.gameCursor].ID
		if scores, err := m.store.TopScores(id, maxRows); err == nil {
			m.scores = scores
		}
		if runs, err := m.store.RecentRuns(id, maxRows); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.summary = summarizeRuns(m.runs)
	m.fillTable()
}

// fillTable replaces the table rows from the loaded data.
func (m *ScoreboardModel) fillTable() {
	var rows []table.Row
	switch m.view {
	case viewRecentRuns:
		rows = make([]table.Row, 0, len(m.runs))
		for _, r := range m.runs {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", r.Score),
				r.Outcome,
				fmt.Sprintf("%d", r.BricksDestroyed),
				fmt.Sprintf("%d", r.BallsSpawned+1),
				fmt.Sprintf("%.0fs", r.Duration),
				fmt.Sprintf("%d", r.Seed),
			})
		}
	default:
		rows = make([]table.Row, 0, len(m.scores))
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Game):
			if n := len(m.games); n > 1 {
				step := 1
				if s := msg.String(); s == "left" || s == "h" {
					step = n - 1
				}
				m.gameCursor = (m.gameCursor + step) % n
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.table = m.createTable()
			m.fillTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.fillTable()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := m.view.title()
	if len(m.games) > 0 {
		title = fmt.Sprintf("%s - %s", title, m.games[m.gameCursor].Title)
	}
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableBox := boxStyle.Render(m.renderTableContent())

	if m.wide() {
		panel := boxStyle.Width(panelWidth).Render(m.renderStats())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panel, "  ", tableBox))
	} else {
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		b.WriteString(centerText(dim.Render(m.statsLine()), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(tableBox, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats renders the totals panel for the selected game.
func (m ScoreboardModel) renderStats() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	value := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	line := func(name string, v any) {
		fmt.Fprintf(&b, "%s %s\n", label.Render(fmt.Sprintf("%-9s", name)), value.Render(fmt.Sprint(v)))
	}

	if m.stats != nil {
		line("Best", m.stats.HighScore)
		line("Games", m.stats.GamesCount)
		line("Average", fmt.Sprintf("%.0f", m.stats.AvgScore))
		if !m.stats.LastPlayed.IsZero() {
			line("Last", m.stats.LastPlayed.Format("Jan 02"))
		}
	} else {
		b.WriteString(label.Render("No scores yet"))
		b.WriteString("\n")
	}

	won, lost, quit := m.outcomes()
	b.WriteString("\n")
	line("Cleared", won)
	line("Lost", lost)
	line("Quit", quit)
	line("Top wall", fmt.Sprintf("%d bricks", m.summary.bestBricks))

	return strings.TrimRight(b.String(), "\n")
}

// outcomes prefers the stored totals over the loaded page of runs.
func (m ScoreboardModel) outcomes() (won, lost, quit int) {
	if m.stats != nil && len(m.stats.Outcomes) > 0 {
		o := m.stats.Outcomes
		return o[storage.OutcomeWon], o[storage.OutcomeLost], o[storage.OutcomeQuit]
	}
	return m.summary.won, m.summary.lost, m.summary.quit
}

// statsLine is the one-line summary used when the panel does not fit.
func (m ScoreboardModel) statsLine() string {
	best := 0
	if m.stats != nil {
		best = m.stats.HighScore
	}
	won, lost, _ := m.outcomes()
	return fmt.Sprintf("< best %d | cleared %d | lost %d >", best, won, lost)
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	empty := len(m.scores) == 0
	if m.view == viewRecentRuns {
		empty = len(m.runs) == 0
	}
	if empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("Nothing recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
