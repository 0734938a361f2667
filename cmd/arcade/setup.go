package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/locale"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// fetchTimeout bounds a synchronous level pack fetch.
const fetchTimeout = 45 * time.Second

// newLogger builds the CLI logger. Interactive commands own the terminal,
// so they log to --log-file or nowhere.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return logger, closer, nil
}

// loadConfig reads sokoban.yaml and applies the flag overrides.
func loadConfig() (config.SokobanConfig, error) {
	cfg, err := config.LoadSokoban(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLevels != "" {
		cfg.Levels.Source = flagLevels
	}
	return cfg, nil
}

// applyConfig installs theme, language, logger and recorder as the
// defaults of new games.
func applyConfig(cfg config.SokobanConfig, store *storage.Store, logger *log.Logger) error {
	theme, err := cfg.Theme.Build()
	if err != nil {
		return err
	}
	sokoban.SetTheme(theme)

	if cfg.Gameplay.Language != "" {
		if err := locale.SetLanguage(cfg.Gameplay.Language); err != nil {
			logger.Warn("unknown language, keeping default", "language", cfg.Gameplay.Language, "err", err)
		}
	}

	sokoban.SetLogger(logger)
	if store != nil && cfg.Gameplay.RecordSolves {
		sokoban.SetSolveRecorder(store)
	}
	return nil
}

// fetchPack loads the configured pack synchronously.
func fetchPack(source string) (levels.Pack, error) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	return levels.Fetch(ctx, source)
}

// openStore opens the database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		// Continue without storage - game still works
		return nil
	}
	return store
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if user := os.Getenv("USER"); user != "" {
		cfg.Player = user
	}
	return cfg
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
