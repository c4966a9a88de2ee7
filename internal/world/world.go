package world

import (
	"fmt"

	"github.com/vovakirdan/magmahydro/internal/config"
	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
)

// StepReport tells the caller what happened during one frame.
type StepReport struct {
	Died      []PlayerType // characters that died this frame
	Completed bool         // every door is open
}

// World owns every entity of one level.
type World struct {
	Level   *level.Level
	Board   *level.Board
	Players []*Player // one per character, magma first
	Gates   []*Gate
	Doors   []*Door

	Tick   int // frames stepped since the level started
	Deaths int // deaths since the level started

	cfg config.GameConfig
}

// New builds a world for a level with every mechanism closed and both
// characters on their spawns.
func New(lvl *level.Level, cfg config.GameConfig) (*World, error) {
	w := &World{
		Level: lvl,
		Board: lvl.Board,
		cfg:   cfg,
	}

	for _, t := range []PlayerType{PlayerMagma, PlayerWater} {
		spawn, ok := lvl.SpawnFor(t.String())
		if !ok {
			return nil, fmt.Errorf("world: level %q: %w: missing %s spawn", lvl.ID, level.ErrInvalidLevel, t)
		}
		w.Players = append(w.Players, NewPlayer(t, spawn.Tile, cfg.Physics))
	}

	for _, def := range lvl.Gates {
		w.Gates = append(w.Gates, NewGate(def, cfg.Mechanisms.GateFrames, cfg.Mechanisms.GateEasing))
	}
	for _, def := range lvl.Doors {
		d, err := NewDoor(def, cfg.Mechanisms.DoorFrames, cfg.Mechanisms.DoorEasing)
		if err != nil {
			return nil, fmt.Errorf("world: level %q: %w", lvl.ID, err)
		}
		w.Doors = append(w.Doors, d)
	}

	return w, nil
}

// Player returns the character of a type.
func (w *World) Player(t PlayerType) *Player {
	for _, p := range w.Players {
		if p.Type == t {
			return p
		}
	}
	return nil
}

// Mechanisms returns every gate and door.
func (w *World) Mechanisms() []Mechanism {
	ms := make([]Mechanism, 0, len(w.Gates)+len(w.Doors))
	for _, g := range w.Gates {
		ms = append(ms, g)
	}
	for _, d := range w.Doors {
		ms = append(ms, d)
	}
	return ms
}

// Step runs one frame: input, movement, bounds, hazards, plates, doors and
// the completion check, in that order.
func (w *World) Step(in core.MultiInputFrame) StepReport {
	w.Tick++

	for _, p := range w.Players {
		p.SetIntent(in.Player(p.Type.Controller()))
	}

	MovePlayers(w.Board, w.Gates, w.Players)

	var report StepReport
	for _, p := range ClampToBounds(w.Board.Bounds(), w.Players) {
		report.Died = append(report.Died, p.Type)
	}
	for _, p := range CheckForDeath(w.Board, w.Players) {
		report.Died = append(report.Died, p.Type)
	}
	w.Deaths += len(report.Died)

	CheckForGatePress(w.Gates, w.Players)

	for _, d := range w.Doors {
		if p := w.Player(d.Owner); p != nil {
			CheckForDoorOpen(d, p)
		}
	}

	report.Completed = LevelIsDone(w.Doors)
	return report
}

// Reset returns both characters to their spawns and closes every gate and
// door. Tick and death counters are kept.
func (w *World) Reset() {
	for _, p := range w.Players {
		p.ResetCharacter()
	}
	for _, g := range w.Gates {
		g.setFrame(0, GateClosed)
		g.PlateIsPressed = false
	}
	for _, d := range w.Doors {
		d.setFrame(0)
		d.PlayerAtDoor = false
	}
}

// AnyDead reports whether a character is dead.
func (w *World) AnyDead() bool {
	for _, p := range w.Players {
		if !p.Alive {
			return true
		}
	}
	return false
}
