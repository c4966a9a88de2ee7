// Package world holds the entities of one level and the per-frame routines
// that move them: collision against tiles and gates, hazard deaths, plate
// and door triggers, and the level completion check.
//
// Every routine receives the entities it works on. World.Step is the only
// caller that runs them in sequence, so no state is shared between worlds.
package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/magmahydro/internal/config"
	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
)

// ErrUnknownPlayerType is returned when a type tag names no character.
var ErrUnknownPlayerType = errors.New("unknown player type")

// PlayerType tells the two characters apart.
type PlayerType int

const (
	PlayerMagma PlayerType = iota
	PlayerWater
)

// String returns the type tag used in level files.
func (t PlayerType) String() string {
	switch t {
	case PlayerMagma:
		return level.OwnerMagma
	case PlayerWater:
		return level.OwnerWater
	default:
		return "unknown"
	}
}

// DisplayName returns the character name.
func (t PlayerType) DisplayName() string {
	switch t {
	case PlayerMagma:
		return "Magma Boy"
	case PlayerWater:
		return "Hydro Girl"
	default:
		return "Unknown"
	}
}

// ParsePlayerType maps a type tag to its PlayerType.
func ParsePlayerType(tag string) (PlayerType, error) {
	switch tag {
	case level.OwnerMagma:
		return PlayerMagma, nil
	case level.OwnerWater:
		return PlayerWater, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlayerType, tag)
	}
}

// ControlledBy returns the character an input source drives.
// Player1 plays Magma Boy, Player2 plays Hydro Girl.
func ControlledBy(id core.PlayerID) PlayerType {
	if id == core.Player2 {
		return PlayerWater
	}
	return PlayerMagma
}

// Controller returns the input source driving a character.
func (t PlayerType) Controller() core.PlayerID {
	if t == PlayerWater {
		return core.Player2
	}
	return core.Player1
}

// Player is one character. Rect is authoritative; velocities are in world
// units per frame.
type Player struct {
	Type PlayerType
	Rect core.Rect

	VX, VY float64

	MovingLeft  bool
	MovingRight bool
	Jumping     bool

	Alive    bool
	AirTimer int // frames since the player last stood on something

	spawn core.Rect
	phys  config.PhysicsConfig
}

// NewPlayer creates a living player standing at the bottom center of its
// spawn tile.
func NewPlayer(t PlayerType, spawn level.Point, phys config.PhysicsConfig) *Player {
	tile := level.TileRect(spawn.X, spawn.Y)
	r := core.NewRect(tile.X+(level.TileSize-phys.PlayerWidth)/2, 0, phys.PlayerWidth, phys.PlayerHeight)
	r.SetBottom(tile.Bottom())

	p := &Player{Type: t, spawn: r, phys: phys}
	p.ResetCharacter()
	return p
}

// Spawn returns the rect the player returns to on reset.
func (p *Player) Spawn() core.Rect {
	return p.spawn
}

// ResetCharacter puts the player back on its spawn, alive and at rest.
func (p *Player) ResetCharacter() {
	p.Rect = p.spawn
	p.VX, p.VY = 0, 0
	p.MovingLeft, p.MovingRight, p.Jumping = false, false, false
	p.Alive = true
	p.AirTimer = 0
}

// Kill marks the player dead. A dead player no longer moves.
func (p *Player) Kill() {
	p.Alive = false
	p.VX, p.VY = 0, 0
}

// SetIntent copies the movement keys held this frame.
func (p *Player) SetIntent(in core.InputFrame) {
	p.MovingLeft = in.Has(core.ActionLeft)
	p.MovingRight = in.Has(core.ActionRight)
	p.Jumping = in.Has(core.ActionJump)
}

// Facing returns -1 when running left, 1 when running right, 0 otherwise.
func (p *Player) Facing() int {
	switch {
	case p.MovingLeft && !p.MovingRight:
		return -1
	case p.MovingRight && !p.MovingLeft:
		return 1
	default:
		return 0
	}
}

// CalcMovement turns the intent flags into this frame's velocity and
// returns the whole-unit displacement to apply.
//
// Gravity is added every frame, so a player at rest still probes one unit
// down and MovePlayers sees the ground each frame. A jump is accepted while
// the air timer is below the coyote window; holding jump through the window
// jumps higher.
func (p *Player) CalcMovement() (dx, dy int) {
	p.VX = float64(p.Facing()) * p.phys.RunSpeed

	p.VY = math.Min(p.VY+p.phys.Gravity, p.phys.MaxFallSpeed)
	if p.Jumping && p.AirTimer < p.phys.CoyoteFrames {
		p.VY = -p.phys.JumpSpeed
	}

	return roundAway(p.VX), roundAway(p.VY)
}

// roundAway rounds away from zero so any nonzero velocity moves at least
// one unit.
func roundAway(v float64) int {
	if v < 0 {
		return -int(math.Ceil(-v))
	}
	return int(math.Ceil(v))
}
