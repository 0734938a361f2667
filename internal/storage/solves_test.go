package storage

import (
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
)

func TestSaveSolveAndBest(t *testing.T) {
	store := openTestStore(t)

	solves := []SolveEntry{
		{SessionID: "a", Player: "ann", LevelIndex: 0, Moves: 30, Pushes: 5, Elapsed: 40 * time.Second},
		{SessionID: "b", Player: "bob", LevelIndex: 0, Moves: 20, Pushes: 8, Elapsed: 90 * time.Second},
		{SessionID: "c", Player: "cid", LevelIndex: 0, Moves: 20, Pushes: 6, Elapsed: 70 * time.Second},
		{SessionID: "d", Player: "dee", LevelIndex: 0, Moves: 20, Pushes: 6, Elapsed: 50 * time.Second},
		{SessionID: "e", Player: "eve", LevelIndex: 1, Moves: 5, Pushes: 1, Elapsed: time.Second},
	}
	for _, s := range solves {
		if _, err := store.SaveSolve(s); err != nil {
			t.Fatalf("SaveSolve() failed: %v", err)
		}
	}

	best, err := store.BestSolves(0, 10)
	if err != nil {
		t.Fatalf("BestSolves() failed: %v", err)
	}
	var players []string
	for _, e := range best {
		players = append(players, e.Player)
	}
	if want := []string{"dee", "cid", "bob", "ann"}; !slices.Equal(players, want) {
		t.Errorf("order = %v, want %v", players, want)
	}
	if best[0].Elapsed != 50*time.Second || best[0].Moves != 20 || best[0].Pushes != 6 {
		t.Errorf("best = %+v", best[0])
	}

	top, err := store.BestSolves(0, 2)
	if err != nil || len(top) != 2 {
		t.Errorf("BestSolves(limit 2) = %d entries, %v", len(top), err)
	}

	if n, err := store.SolveCount(); err != nil || n != 5 {
		t.Errorf("SolveCount() = %d, %v; want 5", n, err)
	}
}

func TestRecordSolve(t *testing.T) {
	store := openTestStore(t)

	var rec sokoban.SolveRecorder = store
	err := rec.RecordSolve(sokoban.Solve{
		SessionID:  "7f0c",
		Player:     "ann",
		LevelIndex: 3,
		LevelName:  "Four",
		Moves:      12,
		Pushes:     4,
		Elapsed:    1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("RecordSolve() failed: %v", err)
	}

	best, err := store.BestSolves(3, 1)
	if err != nil || len(best) != 1 {
		t.Fatalf("BestSolves() = %v, %v", best, err)
	}
	got := best[0]
	if got.SessionID != "7f0c" || got.LevelName != "Four" || got.Elapsed != 1500*time.Millisecond {
		t.Errorf("entry = %+v", got)
	}
}

func TestSolvedLevels(t *testing.T) {
	store := openTestStore(t)

	for _, idx := range []int{4, 0, 4, 2} {
		store.SaveSolve(SolveEntry{SessionID: "s", Player: "ann", LevelIndex: idx, Moves: 1})
	}
	store.SaveSolve(SolveEntry{SessionID: "s", Player: "bob", LevelIndex: 9, Moves: 1})

	levels, err := store.SolvedLevels("ann")
	if err != nil {
		t.Fatalf("SolvedLevels() failed: %v", err)
	}
	if want := []int{0, 2, 4}; !slices.Equal(levels, want) {
		t.Errorf("SolvedLevels() = %v, want %v", levels, want)
	}

	if levels, _ := store.SolvedLevels("nobody"); len(levels) != 0 {
		t.Errorf("unknown player has %v", levels)
	}
}

func TestClearSolves(t *testing.T) {
	store := openTestStore(t)

	store.SaveSolve(SolveEntry{SessionID: "s", LevelIndex: 0, Moves: 1})
	if err := store.ClearSolves(); err != nil {
		t.Fatalf("ClearSolves() failed: %v", err)
	}
	if n, _ := store.SolveCount(); n != 0 {
		t.Errorf("SolveCount() = %d after clear", n)
	}
}
