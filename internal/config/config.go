// Package config provides YAML-based configuration loading for the
// Sokoban game.
package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
)

// SokobanConfig contains all configuration for the Sokoban game.
type SokobanConfig struct {
	Levels   LevelsConfig   `yaml:"levels"`
	Theme    ThemeConfig    `yaml:"theme"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// LevelsConfig selects the level pack.
type LevelsConfig struct {
	Source string `yaml:"source"` // "classic", a file path or an http(s) URL
	Start  int    `yaml:"start"`  // 1-based start level, 0 for the first
}

// ThemeConfig defines how cells are drawn.
type ThemeConfig struct {
	Wide   bool                   `yaml:"wide"`
	Glyphs map[string]GlyphConfig `yaml:"glyphs"` // Keyed by cell name: wall, goal, crate, ...
}

// GlyphConfig is one cell's rune and colour name.
type GlyphConfig struct {
	Rune  string `yaml:"rune"`
	Color string `yaml:"color"`
}

// GameplayConfig holds player-facing options.
type GameplayConfig struct {
	Language     string `yaml:"language"`      // Message catalog, e.g. "en"
	RecordSolves bool   `yaml:"record_solves"` // Save solved levels to the database
}

// Build turns the theme config into a renderer theme. Cells the config
// does not mention keep their default glyph.
func (t ThemeConfig) Build() (sokoban.Theme, error) {
	theme := sokoban.DefaultTheme()
	theme.Wide = t.Wide

	for name, g := range t.Glyphs {
		cell, ok := cellByName(name)
		if !ok {
			return theme, fmt.Errorf("config: unknown cell %q in theme", name)
		}
		glyph := theme.Glyph(cell)
		if g.Rune != "" {
			r, size := utf8.DecodeRuneInString(g.Rune)
			if size != len(g.Rune) {
				return theme, fmt.Errorf("config: glyph for %s must be a single character, got %q", name, g.Rune)
			}
			glyph.Rune = r
		}
		if g.Color != "" {
			c, ok := core.ParseColor(g.Color)
			if !ok {
				return theme, fmt.Errorf("config: unknown color %q for %s", g.Color, name)
			}
			glyph.Color = c
		}
		theme.Glyphs[cell] = glyph
	}
	return theme, nil
}

func cellByName(name string) (sokoban.Cell, bool) {
	for c := sokoban.Outside; c <= sokoban.CharacterOnGoal; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return sokoban.Outside, false
}
