package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/locale"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// levelListChrome is the number of lines around the level list.
const levelListChrome = 7

var solvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

// levelRow is one line of the level selector.
type levelRow struct {
	name  string
	stats levels.Stats
}

// LevelSelectModel lets users pick the level to start from.
type LevelSelectModel struct {
	rows      []levelRow
	solved    mapset.Set[int]
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  int // 1-based, 0 while choosing
	quitting  bool
	back      bool
}

// NewLevelSelectModel creates a level selector over a pack.
func NewLevelSelectModel(pack levels.Pack, solved mapset.Set[int], width, height int) LevelSelectModel {
	rows := make([]levelRow, len(pack.Levels))
	for i, l := range pack.Levels {
		name := l.Name
		if name == "" {
			name = fmt.Sprintf("Level %d", i+1)
		}
		rows[i] = levelRow{name: name, stats: levels.Describe(l)}
	}

	return LevelSelectModel{
		rows:      rows,
		solved:    solved,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := max(len(m.rows)-1, 0)

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, last)
	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, last)
	case MenuActionLeft:
		m.cursor = core.Clamp(m.cursor-m.pageSize(), 0, last)
	case MenuActionRight:
		m.cursor = core.Clamp(m.cursor+m.pageSize(), 0, last)
	case MenuActionSelect:
		if len(m.rows) > 0 {
			m.selected = m.cursor + 1
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// pageSize is how many levels fit on screen.
func (m LevelSelectModel) pageSize() int {
	return max(m.height-levelListChrome, 1)
}

// View renders the level list around the cursor.
func (m LevelSelectModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(locale.T("SELECT_LEVEL"), m.width)))
	b.WriteString("\n\n")

	page := m.pageSize()
	first := (m.cursor / page) * page
	end := min(first+page, len(m.rows))

	for i := first; i < end; i++ {
		row := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		mark := " "
		if m.solved.Has(i) {
			mark = solvedStyle.Render("✓")
		}

		line := fmt.Sprintf("%s%3d. %-16s %2dx%-2d  crates: %-2d %s",
			cursor, i+1, truncate(row.name, 16), row.stats.Width, row.stats.Height, row.stats.Crates, mark)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("%d/%d", m.cursor+1, len(m.rows)), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(locale.T("SELECT_CONTROLS"), m.width))

	return b.String()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// Selected returns the chosen level (1-based), or 0 if none.
func (m LevelSelectModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level selector and returns the chosen level
// (1-based), or 0 when the user backed out.
func RunLevelSelector(store *storage.Store, pack levels.Pack, cfg core.RuntimeConfig) (int, error) {
	model := NewLevelSelectModel(pack, solvedSet(store, cfg.Player), cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return 0, nil
	}

	return m.Selected(), nil
}
