package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var (
	flagScoresLevel int
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show runs and best solves",
	Long: `Display the best runs (levels solved in one sitting) or, with --level,
the best solves of one level: fewest moves, then fewest pushes, then fastest.

Examples:
  arcade scores
  arcade scores sokoban --level 3
  arcade scores --level 1 --limit 20
  arcade scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLevel, "level", 0, "Show best solves of this level (1-based)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs and solves")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "sokoban"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		clearRecords(store, gameID)
		return
	}
	if flagScoresLevel > 0 {
		printSolves(store, flagScoresLevel)
		return
	}
	printRuns(store, gameID, title)
}

func clearRecords(store *storage.Store, gameID string) {
	if err := store.ClearScores(gameID); err != nil {
		store.Close()
		fail("clearing runs: %v", err)
	}
	if err := store.ClearSolves(); err != nil {
		store.Close()
		fail("clearing solves: %v", err)
	}
	styleOK.Println("Records cleared.")
}

func printRuns(store *storage.Store, gameID, title string) {
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	styleTitle.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first record!\n", gameID)
		return
	}

	styleHeader.Printf("  %-4s  %-8s  %s\n", "Rank", "Solved", "Date")
	styleHeader.Printf("  %-4s  %-8s  %s\n", "----", "------", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		styleSubtle.Printf("Runs: %d  Best: %d  Average: %.1f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	if n, err := store.SolveCount(); err == nil {
		styleSubtle.Printf("Solves recorded: %d (see --level N)\n", n)
	}
}

func printSolves(store *storage.Store, level int) {
	solves, err := store.BestSolves(level-1, flagScoresLimit)
	if err != nil {
		store.Close()
		fail("retrieving solves: %v", err)
	}

	name := ""
	if len(solves) > 0 && solves[0].LevelName != "" {
		name = " (" + solves[0].LevelName + ")"
	}
	styleTitle.Printf("Best Solves - Level %d%s\n", level, name)
	fmt.Println()

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play --level %d' to set the first record!\n", level)
		return
	}

	styleHeader.Printf("  %-4s  %-12s  %6s  %6s  %9s  %s\n", "Rank", "Player", "Moves", "Pushes", "Time", "Date")
	styleHeader.Printf("  %-4s  %-12s  %6s  %6s  %9s  %s\n", "----", "------", "-----", "------", "----", "----")
	for i, s := range solves {
		player := s.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12s  %6d  %6d  %9s  %s\n",
			i+1, player, s.Moves, s.Pushes, s.Elapsed.Round(100*time.Millisecond), s.CreatedAt.Format("2006-01-02 15:04"))
	}
}
