package game

import (
	"github.com/vovakirdan/magmahydro/internal/multiplayer"
	"github.com/vovakirdan/magmahydro/internal/world"
)

// Snapshot is the complete state of a run, sent to online clients each
// tick. Clients build the same level locally and apply it.
type Snapshot struct {
	LevelID   string
	World     world.State
	Elapsed   int
	Flash     int
	Banner    int
	Completed bool
	GameOver  bool
	Paused    bool
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (Snapshot) IsGameSnapshot() {}

var _ multiplayer.GameSnapshot = Snapshot{}

// Snapshot returns the current run state.
func (g *Game) Snapshot() multiplayer.GameSnapshot {
	return Snapshot{
		LevelID:   g.lvl.ID,
		World:     g.world.State(),
		Elapsed:   g.elapsed,
		Flash:     g.flash,
		Banner:    g.banner,
		Completed: g.completed,
		GameOver:  g.gameOver,
		Paused:    g.paused,
	}
}

// ApplySnapshot overwrites the run with a server snapshot. Snapshots of a
// different level are ignored and reported as false.
func (g *Game) ApplySnapshot(s Snapshot) bool {
	if s.LevelID != g.lvl.ID {
		return false
	}
	g.world.ApplyState(s.World)
	g.elapsed = s.Elapsed
	g.flash = s.Flash
	g.banner = s.Banner
	g.completed = s.Completed
	g.gameOver = s.GameOver
	g.paused = s.Paused
	return true
}
