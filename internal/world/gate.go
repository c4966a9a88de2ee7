package world

import (
	"math"

	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
)

// GateState is the animation state of a gate.
type GateState int

const (
	GateClosed GateState = iota
	GateOpening
	GateOpen
	GateClosing
)

// String returns the state name.
func (s GateState) String() string {
	switch s {
	case GateClosed:
		return "closed"
	case GateOpening:
		return "opening"
	case GateOpen:
		return "open"
	case GateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Gate is a solid barrier that slides toward its open position while any
// of its plates is pressed and slides back when released.
type Gate struct {
	PlateIsPressed bool

	closed core.Rect
	dx, dy int // full travel from closed to open
	plates []core.Rect

	prog  progression
	state GateState
	rect  core.Rect
}

// NewGate builds a closed gate from its level definition.
func NewGate(def level.GateDef, frames int, easing string) *Gate {
	closed := def.ClosedRect()
	open := def.OpenRect()
	return &Gate{
		closed: closed,
		dx:     open.X - closed.X,
		dy:     open.Y - closed.Y,
		plates: def.PlateRects(),
		prog:   newProgression(frames, easing),
		state:  GateClosed,
		rect:   closed,
	}
}

// rectAt returns the gate rect at a progression frame.
func (g *Gate) rectAt(frame int) core.Rect {
	t := g.prog.eased(frame)
	return g.closed.Translate(
		int(math.Round(t*float64(g.dx))),
		int(math.Round(t*float64(g.dy))),
	)
}

// Advance moves the gate one frame toward open or closed.
func (g *Gate) Advance(active bool) {
	if !g.prog.step(active) {
		g.settle()
		return
	}
	g.rect = g.rectAt(g.prog.frame)
	if active {
		g.state = GateOpening
	} else {
		g.state = GateClosing
	}
	g.settle()
}

// settle switches to a resting state at either end.
func (g *Gate) settle() {
	switch g.prog.frame {
	case 0:
		g.state = GateClosed
	case g.prog.frames:
		g.state = GateOpen
	}
}

// Next returns the rect the gate would occupy after Advance(active).
func (g *Gate) Next(active bool) core.Rect {
	return g.rectAt(g.prog.peek(active))
}

// Progress returns the linear open fraction.
func (g *Gate) Progress() float64 { return g.prog.linear() }

// IsOpen reports whether the gate is fully open.
func (g *Gate) IsOpen() bool { return g.prog.done() }

// State returns the animation state.
func (g *Gate) State() GateState { return g.state }

// ClosedRect returns the gate rect in its closed position.
func (g *Gate) ClosedRect() core.Rect { return g.closed }

// Rect returns the current gate rect.
func (g *Gate) Rect() core.Rect { return g.rect }

// SolidBlocks returns the rects players collide with. A gate is solid in
// every state; opening moves it out of the way.
func (g *Gate) SolidBlocks() []core.Rect { return []core.Rect{g.rect} }

// Plates returns the plate rects of the gate.
func (g *Gate) Plates() []core.Rect { return g.plates }

// frame and setFrame expose the progression counter to snapshots.
func (g *Gate) frame() int { return g.prog.frame }

func (g *Gate) setFrame(frame int, state GateState) {
	g.prog.set(frame)
	g.rect = g.rectAt(g.prog.frame)
	g.state = state
}

// CheckForGatePress sets each gate's PlateIsPressed to whether any player
// overlaps any of its plates, then advances the gate. A closing gate whose
// next position would overlap a living player holds still for the frame;
// an opening gate pushes such players along its travel.
func CheckForGatePress(gates []*Gate, players []*Player) {
	for _, g := range gates {
		pressed := false
		for _, p := range players {
			if core.CollidesAny(p.Rect, g.Plates()) {
				pressed = true
				break
			}
		}
		g.PlateIsPressed = pressed

		if !pressed && blocksPlayer(g.Next(false), players) {
			continue
		}
		g.Advance(pressed)
		if pressed {
			g.carry(players)
		}
	}
}

// carry moves living players the gate now overlaps to its leading edge.
func (g *Gate) carry(players []*Player) {
	for _, p := range players {
		if !p.Alive || !p.Rect.Intersects(g.rect) {
			continue
		}
		switch {
		case g.dy < 0:
			p.Rect.SetBottom(g.rect.Y)
			p.VY = 0
		case g.dy > 0:
			p.Rect.Y = g.rect.Bottom()
		case g.dx < 0:
			p.Rect.SetRight(g.rect.X)
		case g.dx > 0:
			p.Rect.X = g.rect.Right()
		}
	}
}

func blocksPlayer(r core.Rect, players []*Player) bool {
	for _, p := range players {
		if p.Alive && p.Rect.Intersects(r) {
			return true
		}
	}
	return false
}
