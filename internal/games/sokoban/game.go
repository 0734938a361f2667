package sokoban

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

// LevelLoader fetches a level pack. It runs off the game goroutine.
type LevelLoader func(ctx context.Context) ([]Level, error)

// Solve is one completed level, handed to a SolveRecorder.
type Solve struct {
	SessionID  string
	Player     string
	LevelIndex int
	LevelName  string
	Moves      int
	Pushes     int
	Elapsed    time.Duration
}

// SolveRecorder persists solves.
type SolveRecorder interface {
	RecordSolve(Solve) error
}

// ErrNoLoader is reported when a game is started without a level source.
var ErrNoLoader = errors.New("sokoban: no level loader configured")

// Package-level defaults applied by New, set by the CLI before a run.
var (
	defaultLoader   LevelLoader
	defaultRecorder SolveRecorder
	defaultTheme    = DefaultTheme()
	defaultLogger   *log.Logger
	startLevel      int
)

// SetLevelLoader sets the level source used by new games.
func SetLevelLoader(l LevelLoader) { defaultLoader = l }

// SetSolveRecorder sets where new games record solves. nil disables it.
func SetSolveRecorder(r SolveRecorder) { defaultRecorder = r }

// SetTheme sets the glyph theme used by new games.
func SetTheme(t Theme) { defaultTheme = t }

// SetLogger sets the logger handed to new sessions.
func SetLogger(l *log.Logger) { defaultLogger = l }

// SetStartLevel sets the starting level (1-based). 0 means the first level.
// It applies to the next game reset only.
func SetStartLevel(level int) { startLevel = level }

// GetStartLevel returns the pending start level.
func GetStartLevel() int { return startLevel }

// StaticLoader serves an in-memory pack.
func StaticLoader(levels []Level) LevelLoader {
	return func(context.Context) ([]Level, error) {
		return levels, nil
	}
}

type loadResult struct {
	levels []Level
	err    error
}

// GameOption configures a Game.
type GameOption func(*Game)

// WithLoader overrides the level source.
func WithLoader(l LevelLoader) GameOption {
	return func(g *Game) { g.loader = l }
}

// WithRecorder overrides the solve recorder.
func WithRecorder(r SolveRecorder) GameOption {
	return func(g *Game) { g.recorder = r }
}

// WithStartLevel sets the starting level (1-based) of the first run.
// A pending SetStartLevel takes precedence.
func WithStartLevel(level int) GameOption {
	return func(g *Game) { g.startOpt = level }
}

// WithTheme overrides the glyph theme.
func WithTheme(t Theme) GameOption {
	return func(g *Game) { g.theme = t }
}

// WithSessionOptions passes options to every session the game creates.
func WithSessionOptions(opts ...Option) GameOption {
	return func(g *Game) { g.sessionOpts = append(g.sessionOpts, opts...) }
}

// Game adapts a Session to the arcade registry.
type Game struct {
	loader      LevelLoader
	recorder    SolveRecorder
	theme       Theme
	sessionOpts []Option
	logger      *log.Logger

	session  *Session
	unsubs   []Unsubscribe
	pending  chan loadResult
	cancel   context.CancelFunc
	loadErr  error
	start    int
	startOpt int

	cfg     core.RuntimeConfig
	tick    uint64
	solved  mapset.Set[int] // level indices solved this run
	lastWin Win

	levelDone  bool
	allCleared bool
	paused     bool
	tooSmall   bool
}

// New creates a game from the package defaults and opts.
func New(opts ...GameOption) *Game {
	g := &Game{
		loader:   defaultLoader,
		recorder: defaultRecorder,
		theme:    defaultTheme,
		logger:   defaultLogger,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g
}

func init() {
	registry.Register("sokoban", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "sokoban" }

// Title returns the display name.
func (g *Game) Title() string { return "Sokoban" }

// Session exposes the underlying session.
func (g *Game) Session() *Session { return g.session }

// Reset starts a fresh run and begins loading levels in the background.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.cancel != nil {
		g.cancel()
	}
	for _, unsub := range g.unsubs {
		unsub()
	}

	g.cfg = cfg
	g.tick = 0
	g.solved = mapset.New[int]()
	g.lastWin = Win{}
	g.levelDone = false
	g.allCleared = false
	g.paused = false
	g.loadErr = nil

	g.start = 0
	switch {
	case startLevel > 0:
		g.start = startLevel - 1
		startLevel = 0
	case g.startOpt > 0:
		g.start = g.startOpt - 1
		g.startOpt = 0
	}

	opts := append([]Option{WithLogger(g.logger)}, g.sessionOpts...)
	g.session = NewSession(opts...)
	g.unsubs = []Unsubscribe{
		g.session.OnLevelChanged(func(int) {
			g.levelDone = false
			g.checkScreenSize()
		}),
		g.session.OnLevelWon(g.onWin),
	}

	g.beginLoad()
	g.checkScreenSize()
}

func (g *Game) beginLoad() {
	g.pending = nil
	if g.loader == nil {
		g.loadErr = ErrNoLoader
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	ch := make(chan loadResult, 1)
	g.pending = ch
	loader := g.loader
	go func() {
		levels, err := loader(ctx)
		ch <- loadResult{levels: levels, err: err}
	}()
}

// pollLoad installs the level pack once the loader has delivered it.
func (g *Game) pollLoad() {
	if g.pending == nil {
		return
	}
	select {
	case r := <-g.pending:
		g.finishLoad(r)
	default:
	}
}

// waitLoaded blocks until the pending load has finished.
func (g *Game) waitLoaded() {
	if g.pending == nil {
		return
	}
	g.finishLoad(<-g.pending)
}

func (g *Game) finishLoad(r loadResult) {
	g.pending = nil
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	if r.err != nil {
		g.loadErr = r.err
		g.logger.Error("level load failed", "err", r.err)
		return
	}
	g.session.Load(r.levels)
	if g.start > 0 && !g.session.SetCurrentIndex(g.start) {
		g.logger.Warn("start level out of range", "level", g.start+1, "count", g.session.LevelCount())
	}
	g.checkScreenSize()
}

func (g *Game) onWin(w Win) {
	g.levelDone = true
	g.lastWin = w
	g.solved.Put(g.session.CurrentIndex())

	if g.recorder == nil {
		return
	}
	lvl := g.session.CurrentLevel()
	//nolint:errcheck // Best-effort save, game continues regardless
	g.recorder.RecordSolve(Solve{
		SessionID:  g.session.ID().String(),
		Player:     g.cfg.Player,
		LevelIndex: g.session.CurrentIndex(),
		LevelName:  lvl.Name,
		Moves:      w.Moves,
		Pushes:     w.Pushes,
		Elapsed:    w.Elapsed,
	})
}

// Resize adapts the layout to a new terminal size without losing progress.
func (g *Game) Resize(w, h int) {
	g.cfg.ScreenW = w
	g.cfg.ScreenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the board, HUD and footer fit on screen.
func (g *Game) checkScreenSize() {
	minW, minH := 40, hudHeight+footerHeight+3
	if g.session != nil && g.session.ready() {
		minW = max(minW, g.session.MaxColumn()*g.theme.CellWidth())
		minH = max(minH, g.session.MaxRow()+hudHeight+footerHeight)
	}
	g.tooSmall = g.cfg.ScreenW < minW || g.cfg.ScreenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.pollLoad()

	if g.tooSmall || g.loadErr != nil || g.session.IsLoading() || g.allCleared {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionRestart):
		g.session.Restart()
	case in.Has(core.ActionPrevLevel):
		g.session.Previous()
	case in.Has(core.ActionNextLevel), g.levelDone && in.Has(core.ActionConfirm):
		g.advance()
	case !g.levelDone:
		for _, a := range in.Ordered() {
			dx, dy, ok := a.Delta()
			if !ok {
				continue
			}
			g.session.MoveCharacter(dx, dy)
			if g.levelDone {
				break
			}
		}
	}

	return core.StepResult{State: g.State()}
}

// advance moves to the next level, or finishes the run after the last one.
func (g *Game) advance() {
	if g.session.IsLast() {
		if g.levelDone {
			g.allCleared = true
		}
		return
	}
	g.session.Next()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.solved.Size(),
		GameOver: g.allCleared || g.loadErr != nil || g.emptyPack(),
		Paused:   g.paused || g.tooSmall,
	}
}

func (g *Game) emptyPack() bool {
	return g.session != nil && !g.session.IsLoading() && g.session.LevelCount() == 0
}
