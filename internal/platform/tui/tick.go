// Package tui runs games and the surrounding menus on Bubble Tea, locally
// or over SSH. It owns the tick loop, key bindings and screen output.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// TickMsg is sent to trigger a game simulation tick. ID names the tick
// loop so a loop left over from a previous game is dropped.
type TickMsg struct {
	ID   uint64
	Time time.Time
}

var tickLoops atomic.Uint64

// newTickLoop allocates a tick loop ID.
func newTickLoop() uint64 {
	return tickLoops.Add(1)
}

// maxTickRate bounds the tick loop; the board only changes on input.
const maxTickRate = 120

// tickInterval converts a tick rate to the delay between ticks.
func tickInterval(tickRate int) time.Duration {
	tickRate = core.Clamp(tickRate, 1, maxTickRate)
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(id uint64, tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
