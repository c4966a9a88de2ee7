// Package tui runs the game in a terminal with Bubble Tea: the level
// select, the play screen, records, online lobbies and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one simulation step. Loop names the play screen that
// scheduled it; a tick still in flight when that screen closes must not
// reach the next one and double its speed.
type TickMsg struct {
	At   time.Time
	Loop uint64
}

var tickLoops atomic.Uint64

// newTickLoop returns an id for a new play screen's tick loop.
func newTickLoop() uint64 {
	return tickLoops.Add(1)
}

// tickCmd schedules the next tick of loop at tickRate per second.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate < 1 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}
