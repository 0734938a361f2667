package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/locale"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// Records board layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the run summary sidebar
	sidebarWidth       = 22
	maxSolves          = 50
	gameID             = "sokoban"
)

// RecordsKeyMap defines the key bindings for the records board.
type RecordsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevLevel, k.NextLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevLevel, k.NextLevel},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l", "tab", "]"),
			key.WithHelp("right/l", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab", "["),
			key.WithHelp("left/h", "prev level"),
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

// RecordsModel shows the best solves of each level and a summary of runs.
type RecordsModel struct {
	names       []string
	level       int
	store       *storage.Store
	solves      []storage.SolveEntry
	runs        *storage.GameStats
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRecordsModel creates a records board for a pack, opened on level
// (0-based).
func NewRecordsModel(store *storage.Store, pack levels.Pack, level, width, height int) RecordsModel {
	names := make([]string, len(pack.Levels))
	for i, l := range pack.Levels {
		names[i] = l.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("Level %d", i+1)
		}
	}

	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		names:       names,
		level:       core.Clamp(level, 0, max(len(names)-1, 0)),
		store:       store,
		keys:        DefaultRecordsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if store != nil {
		if stats, err := store.GetGameStats(gameID); err == nil {
			m.runs = stats
		}
	}
	m.loadSolves()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Moves", Width: 6},
		{Title: "Pushes", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 12},
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

// loadSolves loads the best solves of the current level.
func (m *RecordsModel) loadSolves() {
	m.solves = nil
	if m.store != nil && len(m.names) > 0 {
		if solves, err := m.store.BestSolves(m.level, maxSolves); err == nil {
			m.solves = solves
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current solves.
func (m *RecordsModel) updateTableRows() {
	rows := make([]table.Row, len(m.solves))
	for i, s := range m.solves {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			truncate(player, 12),
			fmt.Sprintf("%d", s.Moves),
			fmt.Sprintf("%d", s.Pushes),
			formatElapsed(s.Elapsed.Milliseconds()),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatElapsed renders milliseconds as m:ss.t.
func formatElapsed(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d.%d", secs/60, secs%60, (ms%1000)/100)
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records board.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextLevel):
			if len(m.names) > 0 {
				m.level = (m.level + 1) % len(m.names)
				m.loadSolves()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			if len(m.names) > 0 {
				m.level = (m.level - 1 + len(m.names)) % len(m.names)
				m.loadSolves()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and the rest go to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records board.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := locale.T("MENU_RECORDS")
	if len(m.names) > 0 {
		title = locale.T("RECORDS_TITLE", fmt.Sprintf("%d. %s", m.level+1, m.names[m.level]))
	}
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := boxStyle.Render(m.renderTableContent())

	if m.showSidebar {
		sidebar := boxStyle.Width(sidebarWidth).Render(m.renderRuns())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", tableRendered))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %d/%d >", m.level+1, len(m.names)), m.width))
		b.WriteString("\n\n")
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderRuns renders the run summary sidebar.
func (m RecordsModel) renderRuns() string {
	var sb strings.Builder
	sb.WriteString("Runs\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	if m.runs == nil || m.runs.GamesCount == 0 {
		sb.WriteString("none yet")
		return sb.String()
	}
	fmt.Fprintf(&sb, "played:  %d\n", m.runs.GamesCount)
	fmt.Fprintf(&sb, "best:    %d\n", m.runs.HighScore)
	fmt.Fprintf(&sb, "average: %.1f\n", m.runs.AvgScore)
	fmt.Fprintf(&sb, "total:   %d\n", m.runs.TotalScore)
	sb.WriteString("last:    " + m.runs.LastPlayed.Format("Jan 02"))
	return sb.String()
}

// renderTableContent renders the table or empty message.
func (m RecordsModel) renderTableContent() string {
	if len(m.solves) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render(locale.T("RECORDS_EMPTY"))
	}

	return m.table.View()
}

// Level returns the level shown (0-based).
func (m RecordsModel) Level() int {
	return m.level
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// RunRecordsBoard runs the records screen opened on level (0-based).
// Returns true if user wants to go back to menu, false if quitting.
func RunRecordsBoard(store *storage.Store, pack levels.Pack, level, width, height int) (goBack bool, err error) {
	model := NewRecordsModel(store, pack, level, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RecordsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
