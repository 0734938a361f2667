package sokoban

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/locale"
)

const (
	hudHeight    = 3 // Title, level line, counters
	footerHeight = 1 // Controls hint
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	mid := dst.Height() / 2
	switch {
	case g.loadErr != nil:
		dst.DrawTextCentered(mid, locale.T("LOAD_FAILED"), core.ColorRed)
		dst.DrawTextCentered(mid+1, g.loadErr.Error(), core.ColorGray)
		return
	case g.session == nil || g.session.IsLoading():
		dst.DrawTextCentered(mid, locale.T("LOADING"), core.ColorYellow)
		return
	case g.emptyPack():
		dst.DrawTextCentered(mid, locale.T("NO_LEVELS"), core.ColorRed)
		return
	case g.tooSmall:
		dst.DrawTextCentered(mid, locale.T("TOO_SMALL"), core.ColorDefault)
		dst.DrawTextCentered(mid+1, locale.T("TOO_SMALL_HINT"), core.ColorDefault)
		return
	}

	g.renderHUD(dst)
	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerHeight)
	g.renderBoard(dst, area)
	dst.DrawTextCentered(dst.Height()-1, locale.T("CONTROLS"), core.ColorGray)
	g.renderOverlays(dst, area)
}

// renderHUD draws the title, level and counters.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	dst.DrawTextCentered(0, locale.T("TITLE"), core.ColorBrightYellow)

	level := locale.T("HUD_LEVEL", s.CurrentIndex()+1, s.LevelCount())
	if name := s.CurrentLevel().Name; name != "" {
		level += "  " + name
	}
	dst.DrawTextColored(1, 1, level, core.ColorCyan)

	solved := locale.T("HUD_SOLVED", g.solved.Size())
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(solved)-1, 1, solved, core.ColorGreen)

	counters := fmt.Sprintf("%s   %s   %s",
		locale.T("HUD_MOVES", s.MoveCount()),
		locale.T("HUD_PUSHES", s.PushCount()),
		locale.T("HUD_TIME", formatDuration(s.ElapsedTime())))
	dst.DrawTextCentered(2, counters, core.ColorWhite)
}

// renderBoard draws the grid centred in area.
func (g *Game) renderBoard(dst *core.Screen, area core.Rect) {
	b := g.session.Board()
	cw := g.theme.CellWidth()
	r := area.Centered(b.Width()*cw, b.Height())

	for y := range b.Height() {
		for x := range b.Width() {
			glyph := g.theme.Glyph(b.At(Position{X: x, Y: y}))
			for i := range cw {
				dst.SetColored(r.X+x*cw+i, r.Y+y, glyph.Rune, glyph.Color)
			}
		}
	}
}

// renderOverlays draws level complete, all cleared and pause boxes.
func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	var lines []string
	color := core.ColorBrightGreen

	switch {
	case g.allCleared:
		lines = []string{locale.T("ALL_CLEARED"), locale.T("HUD_SOLVED", g.solved.Size()), locale.T("ALL_CLEARED_HINT")}
	case g.levelDone:
		w := g.lastWin
		lines = []string{
			locale.T("LEVEL_COMPLETE"),
			locale.T("LEVEL_COMPLETE_STATS", w.Moves, w.Pushes, formatDuration(w.Elapsed)),
			locale.T("LEVEL_COMPLETE_HINT"),
		}
	case g.paused:
		color = core.ColorYellow
		lines = []string{locale.T("PAUSED"), locale.T("PAUSED_HINT")}
	default:
		return
	}

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	box := area.Centered(width+4, len(lines)+2)
	dst.DrawBox(box, color)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l, color)
	}
}

// formatDuration renders d as mm:ss, or h:mm:ss past an hour.
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
