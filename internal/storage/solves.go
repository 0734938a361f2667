package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
)

// SolveEntry is one completed level.
type SolveEntry struct {
	ID         int64
	SessionID  string
	Player     string
	LevelIndex int
	LevelName  string
	Moves      int
	Pushes     int
	Elapsed    time.Duration
	CreatedAt  time.Time
}

// SaveSolve records a completed level.
// Returns the ID of the inserted record.
func (s *Store) SaveSolve(e SolveEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO solves (session_id, player, level_index, level_name, moves, pushes, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Player, e.LevelIndex, e.LevelName, e.Moves, e.Pushes, e.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solve: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordSolve implements sokoban.SolveRecorder.
func (s *Store) RecordSolve(solve sokoban.Solve) error {
	_, err := s.SaveSolve(SolveEntry{
		SessionID:  solve.SessionID,
		Player:     solve.Player,
		LevelIndex: solve.LevelIndex,
		LevelName:  solve.LevelName,
		Moves:      solve.Moves,
		Pushes:     solve.Pushes,
		Elapsed:    solve.Elapsed,
	})
	return err
}

// Ensure Store implements SolveRecorder
var _ sokoban.SolveRecorder = (*Store)(nil)

// BestSolves returns the best solves of a level: fewest moves, then fewest
// pushes, then fastest.
func (s *Store) BestSolves(levelIndex, limit int) ([]SolveEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, player, level_index, level_name, moves, pushes, elapsed_ms, created_at
		 FROM solves
		 WHERE level_index = ?
		 ORDER BY moves ASC, pushes ASC, elapsed_ms ASC, id ASC
		 LIMIT ?`,
		levelIndex, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var entries []SolveEntry
	for rows.Next() {
		var e SolveEntry
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Player, &e.LevelIndex, &e.LevelName,
			&e.Moves, &e.Pushes, &elapsedMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// SolvedLevels returns the sorted indexes of levels the player has solved.
func (s *Store) SolvedLevels(player string) ([]int, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT level_index FROM solves WHERE player = ? ORDER BY level_index`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solved levels: %w", err)
	}
	defer rows.Close()

	var levels []int
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		levels = append(levels, idx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return levels, nil
}

// SolveCount returns how many solves are stored.
func (s *Store) SolveCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM solves").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count solves: %w", err)
	}
	return n, nil
}

// ClearSolves deletes every stored solve.
func (s *Store) ClearSolves() error {
	if _, err := s.db.Exec("DELETE FROM solves"); err != nil {
		return fmt.Errorf("storage: cannot clear solves: %w", err)
	}
	return nil
}
