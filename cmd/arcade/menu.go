package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Play from the first level, pick a level from the list, or browse the best
solves of every level. After a game ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Records
  Q            - Quit

Examples:
  arcade menu
  arcade menu --levels ./microban.txt
  arcade menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
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

	pack, err := fetchPack(cfg.Levels.Source)
	if err != nil {
		fail("%v", err)
	}
	sokoban.SetLevelLoader(sokoban.StaticLoader(pack.Levels))

	rcfg := runtimeConfig()
	lastLevel := max(cfg.Levels.Start-1, 0)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, pack, rcfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		rcfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		start := cfg.Levels.Start
		switch menuResult.Choice {
		case tui.MenuRecords:
			goBack, rbErr := tui.RunRecordsBoard(store, pack, lastLevel, rcfg.ScreenW, rcfg.ScreenH)
			if rbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return // User quit from records

		case tui.MenuSelectLevel:
			selected, selErr := tui.RunLevelSelector(store, pack, rcfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			// User pressed back or quit
			if selected == 0 {
				continue
			}
			start = selected
		}

		sokoban.SetStartLevel(start)
		lastLevel = max(start-1, 0)

		game, err := registry.Create("sokoban")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if err := tui.Run(game, store, rcfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}
}
