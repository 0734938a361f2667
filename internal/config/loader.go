package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSokoban loads Sokoban configuration.
// Search order: customPath -> ~/.arcade/configs/sokoban.yaml -> ./configs/sokoban.yaml -> embedded default
// Fields missing from a file keep their default values.
func LoadSokoban(customPath string) (SokobanConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSokobanConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg := DefaultSokobanConfig()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultSokobanConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sokoban.yaml"); userCfgPath != "" {
		if cfg, ok := readSokoban(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := readSokoban(filepath.Join("configs", "sokoban.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultSokobanConfig()
	if err := yaml.Unmarshal(defaultSokobanYAML, &cfg); err != nil {
		return DefaultSokobanConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readSokoban reads an optional config file; unreadable or invalid files
// are skipped.
func readSokoban(path string) (SokobanConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SokobanConfig{}, false
	}
	cfg := DefaultSokobanConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SokobanConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to a config file in ~/.arcade/configs/.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
