package world

import (
	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
)

// DoorState is the raise state of a door.
type DoorState int

const (
	DoorClosed DoorState = iota
	DoorRising
	DoorOpen
)

// String returns the state name.
func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "closed"
	case DoorRising:
		return "rising"
	case DoorOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Door is a character's exit. It rises while its owner stands in the frame,
// sinks back if the owner leaves early, and stays open once fully raised.
type Door struct {
	Owner        PlayerType
	PlayerAtDoor bool

	frame core.Rect
	prog  progression
}

// NewDoor builds a closed door from its level definition.
func NewDoor(def level.DoorDef, frames int, easing string) (*Door, error) {
	owner, err := ParsePlayerType(def.Owner)
	if err != nil {
		return nil, err
	}
	return &Door{
		Owner: owner,
		frame: def.Rect(),
		prog:  newProgression(frames, easing),
	}, nil
}

// Advance raises the door one frame while active and lowers it otherwise.
func (d *Door) Advance(active bool) {
	if d.IsOpen() {
		return
	}
	d.prog.step(active)
}

// Progress returns the linear raise fraction.
func (d *Door) Progress() float64 { return d.prog.linear() }

// Raised returns the eased raise fraction used to draw the door panel.
func (d *Door) Raised() float64 { return d.prog.eased(d.prog.frame) }

// IsOpen reports whether the door is fully raised.
func (d *Door) IsOpen() bool { return d.prog.done() }

// State returns the raise state.
func (d *Door) State() DoorState {
	switch {
	case d.prog.done():
		return DoorOpen
	case d.prog.frame > 0:
		return DoorRising
	default:
		return DoorClosed
	}
}

// Rect returns the door frame.
func (d *Door) Rect() core.Rect { return d.frame }

func (d *Door) frameCount() int { return d.prog.frame }

func (d *Door) setFrame(frame int) { d.prog.set(frame) }

// CheckForDoorOpen sets PlayerAtDoor to whether the player overlaps the
// door frame and advances the door.
func CheckForDoorOpen(door *Door, player *Player) {
	door.PlayerAtDoor = player.Rect.Intersects(door.Rect())
	door.Advance(door.PlayerAtDoor)
}

// LevelIsDone reports whether every door is open. With no doors it is true.
func LevelIsDone(doors []*Door) bool {
	for _, d := range doors {
		if !d.IsOpen() {
			return false
		}
	}
	return true
}
