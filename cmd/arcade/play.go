package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var (
	flagLevel  int
	flagSelect bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play Sokoban",
	Long: `Start playing. The level pack comes from --levels, then the config
file, then the embedded classic pack.

Controls:
  Arrows/WASD/hjkl  - Move / push
  ] or PgDn         - Next level
  [ or PgUp         - Previous level
  Enter             - Continue after a solved level
  R                 - Restart the level (the run, once all are cleared)
  P/Esc             - Pause (Esc again leaves)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Examples:
  arcade play
  arcade play --level 12
  arcade play --select
  arcade play --levels ./microban.txt
  arcade play --levels https://example.com/pack.json
  arcade play --config ./my-sokoban.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start from (1-based, overrides config)")
	playCmd.Flags().BoolVar(&flagSelect, "select", false, "Pick the starting level from a list")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "sokoban"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := applyConfig(cfg, store, logger); err != nil {
		fail("%v", err)
	}

	rcfg := runtimeConfig()

	start := cfg.Levels.Start
	if flagLevel > 0 {
		start = flagLevel
	}

	if flagSelect {
		// The selector needs the pack up front; the game reuses it
		pack, fetchErr := fetchPack(cfg.Levels.Source)
		if fetchErr != nil {
			fail("%v", fetchErr)
		}
		sokoban.SetLevelLoader(sokoban.StaticLoader(pack.Levels))

		start, err = tui.RunLevelSelector(store, pack, rcfg)
		if err != nil {
			fail("%v", err)
		}
		// User pressed back or quit
		if start == 0 {
			return
		}
	} else {
		sokoban.SetLevelLoader(levels.Loader(cfg.Levels.Source))
	}
	sokoban.SetStartLevel(start)

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	logger.Info("starting game", "game", gameID, "levels", cfg.Levels.Source, "start", start)
	if err := tui.Run(game, store, rcfg); err != nil {
		fail("running game: %v", err)
	}
}
