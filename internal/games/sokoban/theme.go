package sokoban

import "github.com/vovakirdan/tui-sokoban/internal/core"

// Glyph is how one cell code is drawn.
type Glyph struct {
	Rune  rune
	Color core.Color
}

// Theme maps cell codes to glyphs.
type Theme struct {
	Glyphs [CharacterOnGoal + 1]Glyph
	// Wide draws every cell two columns wide, which keeps squares roughly
	// square in most terminal fonts.
	Wide bool
}

// DefaultTheme returns the built-in glyph set.
func DefaultTheme() Theme {
	var t Theme
	t.Wide = true
	t.Glyphs[Outside] = Glyph{' ', core.ColorDefault}
	t.Glyphs[Floor] = Glyph{' ', core.ColorDefault}
	t.Glyphs[Wall] = Glyph{'█', core.ColorGray}
	t.Glyphs[Goal] = Glyph{'·', core.ColorBrightRed}
	t.Glyphs[Crate] = Glyph{'▓', core.ColorOrange}
	t.Glyphs[Character] = Glyph{'@', core.ColorBrightYellow}
	t.Glyphs[CrateOnGoal] = Glyph{'▓', core.ColorBrightGreen}
	t.Glyphs[CharacterOnGoal] = Glyph{'@', core.ColorBrightCyan}
	return t
}

// Glyph returns the glyph for c.
func (t Theme) Glyph(c Cell) Glyph {
	if int(c) >= len(t.Glyphs) {
		return t.Glyphs[Outside]
	}
	return t.Glyphs[c]
}

// CellWidth is the number of screen columns per board cell.
func (t Theme) CellWidth() int {
	if t.Wide {
		return 2
	}
	return 1
}

// LegendTheme draws cells with the level legend, one column per cell.
func LegendTheme() Theme {
	t := DefaultTheme()
	t.Wide = false
	for c := Outside; c <= CharacterOnGoal; c++ {
		t.Glyphs[c].Rune = c.Rune()
	}
	return t
}
