package world

import "github.com/vovakirdan/magmahydro/internal/core"

// PlayerState is the mutable part of a player.
type PlayerState struct {
	Rect     core.Rect
	VX, VY   float64
	Facing   int
	Alive    bool
	AirTimer int
}

// GateSnapshot is the mutable part of a gate.
type GateSnapshot struct {
	Frame   int
	State   GateState
	Pressed bool
}

// DoorSnapshot is the mutable part of a door.
type DoorSnapshot struct {
	Frame  int
	AtDoor bool
}

// State is everything that changes while a level is played. Applying it
// to a world built from the same level reproduces the positions exactly.
type State struct {
	Tick    int
	Deaths  int
	Players []PlayerState
	Gates   []GateSnapshot
	Doors   []DoorSnapshot
}

// State captures the current world state.
func (w *World) State() State {
	s := State{
		Tick:    w.Tick,
		Deaths:  w.Deaths,
		Players: make([]PlayerState, len(w.Players)),
		Gates:   make([]GateSnapshot, len(w.Gates)),
		Doors:   make([]DoorSnapshot, len(w.Doors)),
	}
	for i, p := range w.Players {
		s.Players[i] = PlayerState{
			Rect: p.Rect, VX: p.VX, VY: p.VY,
			Facing: p.Facing(), Alive: p.Alive, AirTimer: p.AirTimer,
		}
	}
	for i, g := range w.Gates {
		s.Gates[i] = GateSnapshot{Frame: g.frame(), State: g.state, Pressed: g.PlateIsPressed}
	}
	for i, d := range w.Doors {
		s.Doors[i] = DoorSnapshot{Frame: d.frameCount(), AtDoor: d.PlayerAtDoor}
	}
	return s
}

// ApplyState overwrites the world with a captured state. Entries beyond
// the world's entity counts are ignored.
func (w *World) ApplyState(s State) {
	w.Tick = s.Tick
	w.Deaths = s.Deaths

	for i, ps := range s.Players {
		if i >= len(w.Players) {
			break
		}
		p := w.Players[i]
		p.Rect, p.VX, p.VY = ps.Rect, ps.VX, ps.VY
		p.Alive, p.AirTimer = ps.Alive, ps.AirTimer
		p.MovingLeft = ps.Facing < 0
		p.MovingRight = ps.Facing > 0
	}
	for i, gs := range s.Gates {
		if i >= len(w.Gates) {
			break
		}
		w.Gates[i].setFrame(gs.Frame, gs.State)
		w.Gates[i].PlateIsPressed = gs.Pressed
	}
	for i, ds := range s.Doors {
		if i >= len(w.Doors) {
			break
		}
		w.Doors[i].setFrame(ds.Frame)
		w.Doors[i].PlayerAtDoor = ds.AtDoor
	}
}
