package sokoban

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// MoveResult is the outcome of a move attempt.
type MoveResult int

const (
	MoveRejected MoveResult = iota
	MoveStepped
	MovePushed
)

func (r MoveResult) String() string {
	switch r {
	case MoveStepped:
		return "stepped"
	case MovePushed:
		return "pushed"
	default:
		return "rejected"
	}
}

// Stats is a view of the play counters.
type Stats struct {
	Moves   int
	Pushes  int
	Elapsed time.Duration
	Won     bool
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// playState is everything derived from the current level. It is dropped on
// level selection and rebuilt lazily.
type playState struct {
	board     *Board
	maxColumn int
	character Position
	placed    bool
	moves     int
	pushes    int
	started   time.Time
	wonAt     time.Time
	won       bool
}

// Session owns a level list, the selected level and its live board.
// It is not safe for concurrent use.
type Session struct {
	Notifier

	id      uuid.UUID
	levels  []Level
	current int
	loading bool
	play    *playState

	now    func() time.Time
	logger *log.Logger
}

// NewSession returns a session in the loading state. Call Load once the
// level data is available.
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:      uuid.New(),
		loading: true,
		now:     time.Now,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	return s
}

// ID identifies the play session.
func (s *Session) ID() uuid.UUID { return s.id }

// Load installs the level list and ends the loading state. The list is
// copied and never changes afterwards.
func (s *Session) Load(levels []Level) {
	s.levels = cloneLevels(levels)
	s.loading = false
	s.current = 0
	s.reset()
	s.logger.Debug("levels loaded", "count", len(s.levels))
}

// IsLoading reports whether level data has not arrived yet.
func (s *Session) IsLoading() bool { return s.loading }

func (s *Session) ready() bool {
	return !s.loading && len(s.levels) > 0
}

// LevelCount returns the number of loaded levels.
func (s *Session) LevelCount() int {
	if s.loading {
		return 0
	}
	return len(s.levels)
}

// Levels returns a copy of the loaded levels.
func (s *Session) Levels() []Level {
	return cloneLevels(s.levels)
}

func cloneLevels(levels []Level) []Level {
	out := make([]Level, len(levels))
	for i, l := range levels {
		out[i] = l.clone()
	}
	return out
}

// CurrentIndex returns the selected level index.
func (s *Session) CurrentIndex() int { return s.current }

// SetCurrentIndex selects level i and reports whether it did. Selection
// fails while loading or when i is out of range. Selecting the current
// index restarts the level.
func (s *Session) SetCurrentIndex(i int) bool {
	if !s.ready() || i < 0 || i >= len(s.levels) {
		return false
	}
	s.current = i
	s.reset()
	s.logger.Debug("level changed", "index", i, "name", s.levels[i].Name)
	s.levelChanged.emit(i)
	return true
}

// Restart reselects the current level.
func (s *Session) Restart() bool {
	return s.SetCurrentIndex(s.current)
}

// Next selects the following level. There is no wraparound.
func (s *Session) Next() bool {
	return s.SetCurrentIndex(s.current + 1)
}

// Previous selects the preceding level. There is no wraparound.
func (s *Session) Previous() bool {
	return s.SetCurrentIndex(s.current - 1)
}

// IsFirst reports whether the first level is selected.
func (s *Session) IsFirst() bool { return s.current == 0 }

// IsLast reports whether the last level is selected. While nothing is
// loaded the session behaves as if it held one level.
func (s *Session) IsLast() bool {
	return s.current == s.LastIndex()
}

// LastIndex returns the index of the last level, or 0 while loading.
func (s *Session) LastIndex() int {
	if !s.ready() {
		return 0
	}
	return len(s.levels) - 1
}

// CurrentLevel returns the selected level, or an empty one while loading.
func (s *Session) CurrentLevel() Level {
	if !s.ready() {
		return Level{}
	}
	return s.levels[s.current].clone()
}

// MaxColumn returns the width of the current level.
func (s *Session) MaxColumn() int {
	if s.play.maxColumn < 0 {
		s.play.maxColumn = s.CurrentLevel().Width()
	}
	return s.play.maxColumn
}

// MaxRow returns the height of the current level.
func (s *Session) MaxRow() int {
	return s.CurrentLevel().Height()
}

func (s *Session) reset() {
	s.play = &playState{maxColumn: -1, started: s.now()}
}

// Board returns the live board of the current level, building it on first
// access. The start time is taken at build.
func (s *Session) Board() *Board {
	if s.play.board == nil {
		if !s.ready() {
			return &Board{}
		}
		b := BuildBoard(s.CurrentLevel().Rows)
		s.play.board = b
		s.play.maxColumn = b.Width()
		s.play.character, s.play.placed = b.Start()
		s.play.started = s.now()
	}
	return s.play.board
}

// Cell returns the code at column x, row y of the live board.
func (s *Session) Cell(x, y int) Cell {
	return s.Board().At(Position{X: x, Y: y})
}

// CharacterPosition returns where the character stands.
func (s *Session) CharacterPosition() Position {
	s.Board()
	return s.play.character
}

// MoveCount returns the number of character moves, pushes included.
func (s *Session) MoveCount() int { return s.play.moves }

// PushCount returns the number of crate pushes.
func (s *Session) PushCount() int { return s.play.pushes }

// IsWon reports whether the current level has been solved.
func (s *Session) IsWon() bool { return s.play.won }

// ElapsedTime returns the time since the board was built, frozen at the win.
func (s *Session) ElapsedTime() time.Duration {
	if !s.ready() {
		return 0
	}
	s.Board()
	end := s.now()
	if s.play.won {
		end = s.play.wonAt
	}
	return end.Sub(s.play.started)
}

// Stats returns the current counters.
func (s *Session) Stats() Stats {
	return Stats{
		Moves:   s.MoveCount(),
		Pushes:  s.PushCount(),
		Elapsed: s.ElapsedTime(),
		Won:     s.IsWon(),
	}
}

// MoveCharacter steps the character by (dx, dy), pushing a crate when one
// is in the way and the square behind it is free. Illegal moves change
// nothing. Callers pass unit axis-aligned deltas.
func (s *Session) MoveCharacter(dx, dy int) MoveResult {
	if !s.ready() {
		return MoveRejected
	}
	b := s.Board()
	if !s.play.placed {
		return MoveRejected
	}

	from := s.play.character
	target := from.Add(dx, dy)
	beyond := target.Add(dx, dy)

	result := MoveRejected
	switch {
	case !b.InBounds(target):
	case b.At(target).IsWalkable():
		s.relocate(from, target)
		result = MoveStepped
	case b.At(target).IsCrate() && b.InBounds(beyond) && b.At(beyond).IsWalkable():
		b.moveCrate(target, beyond)
		s.play.pushes++
		s.crateMoved.emit(Move{From: target, To: beyond})
		s.relocate(from, target)
		result = MovePushed
	}

	s.checkWon()
	return result
}

func (s *Session) relocate(from, to Position) {
	s.play.board.moveCharacter(from, to)
	s.play.character = to
	s.play.moves++
	s.characterMoved.emit(Move{From: from, To: to})
}

func (s *Session) checkWon() {
	b := s.play.board
	if s.play.won || b.Treasures() != b.Goals() {
		return
	}
	s.play.won = true
	s.play.wonAt = s.now()
	win := Win{
		Elapsed: s.play.wonAt.Sub(s.play.started),
		Moves:   s.play.moves,
		Pushes:  s.play.pushes,
	}
	s.logger.Info("level solved",
		"index", s.current,
		"name", s.CurrentLevel().Name,
		"moves", win.Moves,
		"pushes", win.Pushes,
		"elapsed", win.Elapsed)
	s.levelWon.emit(win)
}
