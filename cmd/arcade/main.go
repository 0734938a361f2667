// arcade is a terminal Sokoban: push every crate onto a goal, level after
// level, locally or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play [sokoban]    - Play, starting at the first or --level level
//	arcade menu              - Start the interactive menu
//	arcade serve             - Start SSH server for remote play
//	arcade scores [sokoban]  - Show runs and best solves
//	arcade levels [source]   - List and check a level pack
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Use a custom sokoban.yaml
//	--levels <source>    - Level pack: classic, a file or an http(s) URL
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs of interactive commands to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLevels   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Sokoban in your terminal",
	Long: `A terminal Sokoban. Walk the warehouse keeper around the board and
push every crate onto a goal square. Crates can only be pushed, one at a
time, never pulled.

Available commands:
  list     - Show all available games
  play     - Play directly
  menu     - Interactive menu with level select and records
  serve    - Start SSH server for remote play
  scores   - View runs and best solves
  levels   - List and validate a level pack

Examples:
  arcade play
  arcade play --level 12
  arcade play --levels ./microban.txt
  arcade menu
  arcade serve --ssh :2222
  arcade levels --check ./my-pack.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom sokoban.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Level pack: classic, a file path or an http(s) URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for play and menu (logs are discarded otherwise)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}
