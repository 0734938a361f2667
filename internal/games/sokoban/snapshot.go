package sokoban

// GameStateType represents the current game state.
type GameStateType string

const (
	StateLoading       GameStateType = "loading"
	StateLoadFailed    GameStateType = "load_failed"
	StatePlaying       GameStateType = "playing"
	StateLevelComplete GameStateType = "level_complete"
	StateAllCleared    GameStateType = "all_cleared"
	StatePaused        GameStateType = "paused"
	StatePausedSmall   GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Level      int // 1-indexed for display
	LevelCount int
	Name       string
	Board      []string // Legend-encoded rows of the live board
	Character  Position
	Moves      int
	Pushes     int
	Goals      int
	Treasures  int
	Solved     int
	State      GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.loadErr != nil {
		return Snapshot{Tick: g.tick, State: StateLoadFailed}
	}
	if g.session == nil || g.session.IsLoading() {
		return Snapshot{Tick: g.tick, State: StateLoading}
	}

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.allCleared:
		state = StateAllCleared
	case g.levelDone:
		state = StateLevelComplete
	case g.paused:
		state = StatePaused
	}

	s := g.session
	b := s.Board()
	rows := make([]string, 0, b.Height())
	for y := range b.Height() {
		row := make([]rune, b.Width())
		for x := range row {
			row[x] = b.At(Position{X: x, Y: y}).Rune()
		}
		rows = append(rows, string(row))
	}

	return Snapshot{
		Tick:       g.tick,
		Level:      s.CurrentIndex() + 1,
		LevelCount: s.LevelCount(),
		Name:       s.CurrentLevel().Name,
		Board:      rows,
		Character:  s.CharacterPosition(),
		Moves:      s.MoveCount(),
		Pushes:     s.PushCount(),
		Goals:      b.Goals(),
		Treasures:  b.Treasures(),
		Solved:     g.solved.Size(),
		State:      state,
	}
}
