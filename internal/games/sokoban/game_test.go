package sokoban

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

type memRecorder struct {
	solves []Solve
}

func (m *memRecorder) RecordSolve(s Solve) error {
	m.solves = append(m.solves, s)
	return nil
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Player = "tester"
	return cfg
}

func newLoadedGame(t *testing.T, opts ...GameOption) *Game {
	t.Helper()
	opts = append([]GameOption{
		WithLoader(StaticLoader([]Level{levelPush, levelWalk, levelPush})),
		WithTheme(LegendTheme()),
	}, opts...)
	g := New(opts...)
	g.Reset(testConfig())
	g.waitLoaded()
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameRegistered(t *testing.T) {
	g := New()
	if g.ID() != "sokoban" || g.Title() != "Sokoban" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestGameLoading(t *testing.T) {
	release := make(chan struct{})
	g := New(WithLoader(func(ctx context.Context) ([]Level, error) {
		<-release
		return []Level{levelPush}, nil
	}))
	g.Reset(testConfig())

	g.Step(frame(core.ActionRight))
	if snap := g.Snapshot(); snap.State != StateLoading {
		t.Fatalf("state = %s, want loading", snap.State)
	}

	close(release)
	g.waitLoaded()
	if snap := g.Snapshot(); snap.State != StatePlaying || snap.Moves != 0 {
		t.Errorf("after load: state %s moves %d", snap.State, snap.Moves)
	}
}

func TestGameLoadFailure(t *testing.T) {
	boom := errors.New("boom")
	g := New(WithLoader(func(context.Context) ([]Level, error) { return nil, boom }))
	g.Reset(testConfig())
	g.waitLoaded()

	if snap := g.Snapshot(); snap.State != StateLoadFailed {
		t.Errorf("state = %s, want load_failed", snap.State)
	}
	if !g.State().GameOver {
		t.Error("failed load not reported as game over")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "boom") {
		t.Error("load error not rendered")
	}
}

func TestGameWithoutLoader(t *testing.T) {
	g := New(WithLoader(nil))
	g.Reset(testConfig())
	if !errors.Is(g.loadErr, ErrNoLoader) {
		t.Errorf("loadErr = %v, want ErrNoLoader", g.loadErr)
	}
}

func TestGameSolveAndAdvance(t *testing.T) {
	rec := &memRecorder{}
	g := newLoadedGame(t, WithRecorder(rec))

	g.Step(frame(core.ActionRight))
	snap := g.Snapshot()
	if snap.State != StateLevelComplete || snap.Solved != 1 {
		t.Fatalf("state %s solved %d, want level_complete 1", snap.State, snap.Solved)
	}
	if g.State().Score != 1 {
		t.Errorf("score = %d, want 1", g.State().Score)
	}

	if len(rec.solves) != 1 {
		t.Fatalf("recorded %d solves, want 1", len(rec.solves))
	}
	s := rec.solves[0]
	if s.Player != "tester" || s.LevelIndex != 0 || s.LevelName != "push" || s.Moves != 1 || s.Pushes != 1 {
		t.Errorf("solve = %+v", s)
	}
	if s.SessionID != g.Session().ID().String() {
		t.Errorf("session id = %q", s.SessionID)
	}

	// Moves are ignored on the complete overlay.
	g.Step(frame(core.ActionLeft))
	if g.Session().MoveCount() != 1 {
		t.Error("move accepted after level complete")
	}

	g.Step(frame(core.ActionConfirm))
	snap = g.Snapshot()
	if snap.Level != 2 || snap.State != StatePlaying || snap.Moves != 0 {
		t.Errorf("after confirm: level %d state %s moves %d", snap.Level, snap.State, snap.Moves)
	}
}

func TestGameAllCleared(t *testing.T) {
	g := newLoadedGame(t, WithLoader(StaticLoader([]Level{levelPush})))

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionConfirm))

	if snap := g.Snapshot(); snap.State != StateAllCleared {
		t.Fatalf("state = %s, want all_cleared", snap.State)
	}
	if st := g.State(); !st.GameOver || st.Score != 1 {
		t.Errorf("state = %+v, want game over with score 1", st)
	}
}

func TestGameNavigation(t *testing.T) {
	g := newLoadedGame(t)

	g.Step(frame(core.ActionNextLevel))
	if g.Snapshot().Level != 2 {
		t.Fatalf("level = %d, want 2", g.Snapshot().Level)
	}
	g.Step(frame(core.ActionPrevLevel))
	g.Step(frame(core.ActionPrevLevel))
	if g.Snapshot().Level != 1 {
		t.Errorf("level = %d, want 1", g.Snapshot().Level)
	}

	// Unsolved last level: next does nothing.
	g.Step(frame(core.ActionNextLevel))
	g.Step(frame(core.ActionNextLevel))
	g.Step(frame(core.ActionNextLevel))
	if snap := g.Snapshot(); snap.Level != 3 || snap.State != StatePlaying {
		t.Errorf("level %d state %s, want 3 playing", snap.Level, snap.State)
	}
}

func TestGameRestartLevel(t *testing.T) {
	g := newLoadedGame(t, WithLoader(StaticLoader([]Level{levelWalk})))

	g.Step(frame(core.ActionRight))
	if g.Session().MoveCount() != 1 {
		t.Fatal("move not applied")
	}
	g.Step(frame(core.ActionRestart))
	snap := g.Snapshot()
	if snap.Moves != 0 || snap.Character != (Position{X: 1, Y: 1}) {
		t.Errorf("after restart: moves %d character %v", snap.Moves, snap.Character)
	}
}

func TestGameScoreCountsLevelsOnce(t *testing.T) {
	g := newLoadedGame(t, WithLoader(StaticLoader([]Level{levelWalk, levelWalk})))
	solve := func() {
		t.Helper()
		g.Step(frame(core.ActionRight))
		g.Step(frame(core.ActionRight))
		if !g.Session().IsWon() {
			t.Fatal("level not solved")
		}
	}

	solve()
	g.Step(frame(core.ActionRestart))
	solve()
	if got := g.State().Score; got != 1 {
		t.Errorf("score after solving a restarted level = %d, want 1", got)
	}

	g.Step(frame(core.ActionConfirm))
	g.Step(frame(core.ActionPrevLevel))
	solve()
	if got := g.State().Score; got != 1 {
		t.Errorf("score after solving a revisited level = %d, want 1", got)
	}

	g.Step(frame(core.ActionConfirm))
	solve()
	if got := g.State().Score; got != 2 {
		t.Errorf("score = %d, want 2", got)
	}
}

func TestGameSeveralMovesPerFrame(t *testing.T) {
	open := Level{Name: "open", Rows: []string{
		"#######",
		"#    .#",
		"# @*  #",
		"#######",
	}}
	g := newLoadedGame(t, WithLoader(StaticLoader([]Level{open})))

	g.Step(frame(core.ActionUp, core.ActionRight, core.ActionRight))
	if pos := g.Snapshot().Character; pos != (Position{X: 4, Y: 1}) {
		t.Errorf("character = %v, want (4,1)", pos)
	}
}

func TestGamePause(t *testing.T) {
	g := newLoadedGame(t, WithLoader(StaticLoader([]Level{levelWalk})))

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionRight))
	if snap := g.Snapshot(); snap.State != StatePaused || snap.Moves != 0 {
		t.Errorf("paused: state %s moves %d", snap.State, snap.Moves)
	}

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionRight))
	if snap := g.Snapshot(); snap.State != StatePlaying || snap.Moves != 1 {
		t.Errorf("resumed: state %s moves %d", snap.State, snap.Moves)
	}
}

func TestGameTooSmall(t *testing.T) {
	g := New(WithLoader(StaticLoader([]Level{levelWalk})))
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 5})
	g.waitLoaded()

	if snap := g.Snapshot(); snap.State != StatePausedSmall {
		t.Fatalf("state = %s, want paused_small_window", snap.State)
	}
	g.Step(frame(core.ActionRight))
	if g.Session().MoveCount() != 0 {
		t.Error("move accepted in a too-small window")
	}

	g.Resize(80, 24)
	if snap := g.Snapshot(); snap.State != StatePlaying {
		t.Errorf("after resize: state %s", snap.State)
	}
}

func TestGameStartLevel(t *testing.T) {
	SetStartLevel(2)
	g := newLoadedGame(t)
	if g.Snapshot().Level != 2 {
		t.Errorf("level = %d, want 2", g.Snapshot().Level)
	}
	if GetStartLevel() != 0 {
		t.Error("start level not consumed")
	}

	g.Reset(testConfig())
	g.waitLoaded()
	if g.Snapshot().Level != 1 {
		t.Errorf("level after second reset = %d, want 1", g.Snapshot().Level)
	}
}

func TestGameWithStartLevel(t *testing.T) {
	g := newLoadedGame(t, WithStartLevel(3))
	if g.Snapshot().Level != 3 {
		t.Errorf("level = %d, want 3", g.Snapshot().Level)
	}

	g.Reset(testConfig())
	g.waitLoaded()
	if g.Snapshot().Level != 1 {
		t.Errorf("level after second reset = %d, want 1", g.Snapshot().Level)
	}
}

func TestGameResetUnsubscribes(t *testing.T) {
	rec := &memRecorder{}
	g := newLoadedGame(t, WithRecorder(rec))
	old := g.Session()

	g.Reset(testConfig())
	g.waitLoaded()
	old.Load([]Level{levelPush})
	old.MoveCharacter(1, 0)

	if len(rec.solves) != 0 || g.State().Score != 0 {
		t.Error("stale session still reports to the game")
	}
}

func TestGameRender(t *testing.T) {
	g := newLoadedGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"SOKOBAN", "Level 1/3  push", "Moves: 0", "Pushes: 0", "#@$.#"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	g.Step(frame(core.ActionRight))
	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "LEVEL COMPLETE") || !strings.Contains(out, "1 moves, 1 pushes") {
		t.Errorf("complete overlay missing:\n%s", out)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{61, "01:01"},
		{3600 + 2*60 + 3, "1:02:03"},
	}
	for _, tt := range tests {
		if got := formatDuration(time.Duration(tt.secs) * time.Second); got != tt.want {
			t.Errorf("formatDuration(%ds) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
