package config

import (
	_ "embed"
)

//go:embed defaults/sokoban.yaml
var defaultSokobanYAML []byte

// DefaultSokobanConfig returns the default Sokoban configuration.
func DefaultSokobanConfig() SokobanConfig {
	return SokobanConfig{
		Levels: LevelsConfig{
			Source: "classic",
			Start:  0,
		},
		Theme: ThemeConfig{
			Wide: true,
		},
		Gameplay: GameplayConfig{
			Language:     "en",
			RecordSolves: true,
		},
	}
}
