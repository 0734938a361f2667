package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

type stubGame struct {
	resets  int
	resized [2]int
	frames  []core.InputFrame
	state   core.GameState
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Resize(w, h int)          { g.resized = [2]int{w, h} }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func tick(m Model) TickMsg {
	return TickMsg{ID: m.tickID}
}

func TestModelQueuesKeysUntilTick(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, core.DefaultConfig())
	m.Init()

	m, _ = update(t, m, runeKey("d"))
	m, _ = update(t, m, runeKey("d"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := update(t, m, tick(m))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	if len(game.frames) != 1 {
		t.Fatalf("steps = %d, want 1", len(game.frames))
	}
	got := game.frames[0].Ordered()
	want := []core.Action{core.ActionRight, core.ActionRight, core.ActionUp}
	if len(got) != len(want) {
		t.Fatalf("frame = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	m, _ = update(t, m, tick(m))
	if n := len(game.frames[1].Ordered()); n != 0 {
		t.Errorf("second frame has %d actions, want 0", n)
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, core.DefaultConfig())

	m, cmd := update(t, m, TickMsg{ID: m.tickID + 1000})
	if cmd != nil || len(game.frames) != 0 {
		t.Error("tick from another loop was processed")
	}
}

func TestModelResizeKeepsProgress(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, core.DefaultConfig())
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if game.resized != [2]int{120, 40} {
		t.Errorf("resized = %v", game.resized)
	}
	if game.resets != 1 {
		t.Errorf("resets = %d, want 1 (Init only)", game.resets)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackPausesThenLeaves(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, core.DefaultConfig())
	m.inSession = true

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.inputFrame.Has(core.ActionPause) || m.BackToMenu() {
		t.Fatal("esc on a running game should pause")
	}

	game.state.Paused = true
	m, _ = update(t, m, tick(m))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Error("esc on a paused game should go back to the menu")
	}
}

func TestModelBackQuitsStandalone(t *testing.T) {
	game := &stubGame{state: core.GameState{GameOver: true}}
	m := NewModel(game, nil, core.DefaultConfig())
	m, _ = update(t, m, tick(m))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsQuitting() || cmd == nil {
		t.Error("esc on a finished standalone game should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store := openStore(t)
	game := &stubGame{state: core.GameState{Score: 3, GameOver: true}}
	m := NewModel(game, store, core.DefaultConfig())

	m, _ = update(t, m, tick(m))
	m, _ = update(t, m, tick(m))
	m, _ = update(t, m, runeKey("q"))

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 3 {
		t.Errorf("scores = %v, want one run of 3", scores)
	}
}

func TestModelSavesRunOnQuit(t *testing.T) {
	store := openStore(t)
	game := &stubGame{state: core.GameState{Score: 2}}
	m := NewModel(game, store, core.DefaultConfig())

	m, _ = update(t, m, tick(m))
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if high, _ := store.HighScore("stub"); high != 2 {
		t.Errorf("HighScore = %d, want 2", high)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &stubGame{state: core.GameState{GameOver: true}}
	m := NewModel(game, nil, core.DefaultConfig())
	m.Init()
	m, _ = update(t, m, tick(m))

	game.state = core.GameState{}
	m, _ = update(t, m, runeKey("r"))
	m, _ = update(t, m, tick(m))

	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if len(game.frames) != 1 {
		t.Errorf("restart tick should not step the game, steps = %d", len(game.frames))
	}
}

func TestModelRestartDuringPlayGoesToGame(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, core.DefaultConfig())
	m.Init()

	m, _ = update(t, m, runeKey("r"))
	update(t, m, tick(m))

	if game.resets != 1 {
		t.Errorf("resets = %d, want 1", game.resets)
	}
	if len(game.frames) != 1 || !game.frames[0].Has(core.ActionRestart) {
		t.Error("restart during play should reach the game")
	}
}
