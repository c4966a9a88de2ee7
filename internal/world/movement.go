package world

import (
	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
)

// Contacts records which sides of a player touched an obstacle this frame.
type Contacts struct {
	Top    bool
	Bottom bool
	Left   bool
	Right  bool
}

// Obstacles returns every rect players collide with: the board's solid
// tiles followed by each gate's current rect.
func Obstacles(board *level.Board, gates []*Gate) []core.Rect {
	solids := board.SolidBlocks()
	obstacles := make([]core.Rect, 0, len(solids)+len(gates))
	obstacles = append(obstacles, solids...)
	for _, g := range gates {
		obstacles = append(obstacles, g.SolidBlocks()...)
	}
	return obstacles
}

// MovePlayers moves each living player one frame and resolves collisions,
// horizontal axis first. It returns the contacts of each player by index;
// dead players keep zero contacts.
//
// The horizontal pass tests the rect moved by dx only, the vertical pass
// tests the horizontally resolved rect moved by dy. A zero displacement on
// an axis never produces a response on that axis.
func MovePlayers(board *level.Board, gates []*Gate, players []*Player) []Contacts {
	obstacles := Obstacles(board, gates)
	contacts := make([]Contacts, len(players))

	for i, p := range players {
		if !p.Alive {
			continue
		}
		dx, dy := p.CalcMovement()
		var c Contacts

		p.Rect.X += dx
		for _, tile := range core.CollisionTest(p.Rect, obstacles) {
			// An earlier, nearer tile may already have pushed the player clear
			if !p.Rect.Intersects(tile) {
				continue
			}
			if dx > 0 {
				p.Rect.SetRight(tile.X)
				c.Right = true
			} else if dx < 0 {
				p.Rect.X = tile.Right()
				c.Left = true
			}
		}

		p.Rect.Y += dy
		for _, tile := range core.CollisionTest(p.Rect, obstacles) {
			if !p.Rect.Intersects(tile) {
				continue
			}
			if dy > 0 {
				p.Rect.SetBottom(tile.Y)
				c.Bottom = true
			} else if dy < 0 {
				p.Rect.Y = tile.Bottom()
				c.Top = true
			}
		}

		if c.Bottom {
			p.VY = 0
			p.AirTimer = 0
		} else {
			p.AirTimer++
		}
		if c.Top {
			p.VY = 0
		}

		contacts[i] = c
	}

	return contacts
}

// ClampToBounds keeps living players inside the board horizontally and
// below its top edge. A player whose top falls past the bottom edge is
// killed and returned.
func ClampToBounds(bounds core.Rect, players []*Player) []*Player {
	var fell []*Player
	for _, p := range players {
		if !p.Alive {
			continue
		}
		p.Rect.X = core.Clamp(p.Rect.X, bounds.X, bounds.Right()-p.Rect.W)
		if p.Rect.Y < bounds.Y {
			p.Rect.Y = bounds.Y
			p.VY = 0
		}
		if p.Rect.Y >= bounds.Bottom() {
			p.Kill()
			fell = append(fell, p)
		}
	}
	return fell
}
