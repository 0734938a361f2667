package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

var (
	flagCheck bool
	flagShow  int
)

var levelsCmd = &cobra.Command{
	Use:   "levels [source]",
	Short: "List and check a level pack",
	Long: `List the levels of a pack with their size, crates and goals, and report
problems: no or several characters, crate and goal counts that differ,
unknown characters, and crates or goals the character cannot reach.

The source is "classic" (embedded), a file (.json, .yaml, .xsb, .sok, .txt)
or an http(s) URL. It defaults to --levels, then the config file.

Examples:
  arcade levels
  arcade levels ./microban.txt
  arcade levels --check ./my-pack.yaml
  arcade levels --show 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagCheck, "check", false, "Exit with status 1 if any level has errors")
	levelsCmd.Flags().IntVar(&flagShow, "show", 0, "Print the board of this level (1-based)")
}

func runLevels(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	source := flagLevels
	if len(args) == 1 {
		source = args[0]
	}
	if source == "" {
		cfg, cfgErr := loadConfig()
		if cfgErr != nil {
			fail("%v", cfgErr)
		}
		source = cfg.Levels.Source
	}

	logger.Debug("fetching pack", "source", source)
	pack, err := fetchPack(source)
	if err != nil {
		fail("%v", err)
	}

	if flagShow > 0 {
		showLevel(pack, flagShow)
		return
	}

	styleTitle.Printf("%s - %d levels\n", pack.Name, len(pack.Levels))
	fmt.Println()
	styleHeader.Printf("  %4s  %-20s  %7s  %6s  %5s  %s\n", "#", "Name", "Size", "Crates", "Goals", "Status")

	errorCount := 0
	for i, l := range pack.Levels {
		st := levels.Describe(l)
		issues := levels.Validate(l)

		status := styleOK.Sprint("ok")
		switch {
		case levels.HasErrors(issues):
			status = styleError.Sprint("error")
			errorCount++
		case len(issues) > 0:
			status = styleWarn.Sprint("warning")
		}

		name := l.Name
		if name == "" {
			name = "-"
		}
		fmt.Printf("  %4d  %-20s  %7s  %6d  %5d  %s\n",
			i+1, name, fmt.Sprintf("%dx%d", st.Width, st.Height), st.Crates, st.Goals, status)

		for _, issue := range issues {
			style := styleWarn
			if issue.Severity == levels.SeverityError {
				style = styleError
			}
			style.Printf("        %s\n", issue)
		}
	}

	fmt.Println()
	if errorCount > 0 {
		styleError.Printf("%d of %d levels have errors\n", errorCount, len(pack.Levels))
		if flagCheck {
			os.Exit(1)
		}
		return
	}
	styleOK.Println("All levels are playable")
}

// showLevel prints one level as the engine sees it after trimming.
func showLevel(pack levels.Pack, n int) {
	if n > len(pack.Levels) {
		fail("level %d out of range (pack has %d)", n, len(pack.Levels))
	}
	l := pack.Levels[n-1]
	board := sokoban.BuildBoard(l.Rows)

	styleTitle.Printf("%d. %s\n", n, l.Name)
	styleSubtle.Printf("%dx%d, %d goals, %d on goal\n", board.Width(), board.Height(), board.Goals(), board.Treasures())
	fmt.Println()
	fmt.Println(board.String())
}
