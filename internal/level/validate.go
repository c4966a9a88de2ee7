package level

import "fmt"

// Validate checks a level for structural problems that would break play.
// All failures wrap ErrInvalidLevel.
func Validate(l *Level) error {
	if l.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}
	if l.Board == nil {
		return fmt.Errorf("level %q: %w: missing map", l.ID, ErrInvalidLevel)
	}

	invalid := func(format string, args ...any) error {
		return fmt.Errorf("level %q: %w: %s", l.ID, ErrInvalidLevel, fmt.Sprintf(format, args...))
	}
	inside := func(a Area) bool {
		return a.X >= 0 && a.Y >= 0 && a.W > 0 && a.H > 0 &&
			a.X+a.W <= l.Board.Width() && a.Y+a.H <= l.Board.Height()
	}
	open := func(p Point) bool {
		return inside(Area{X: p.X, Y: p.Y, W: 1, H: 1}) && l.Board.TileAt(p.X, p.Y) != TileSolid
	}

	for _, owner := range []string{OwnerMagma, OwnerWater} {
		s, ok := l.SpawnFor(owner)
		if !ok {
			return invalid("missing %s spawn", owner)
		}
		if !open(s.Tile) {
			return invalid("%s spawn %d,%d is not an open tile", owner, s.Tile.X, s.Tile.Y)
		}
	}

	for i, g := range l.Gates {
		if !inside(g.Area) {
			return invalid("gate %d lies outside the board", i)
		}
		moved := Area{X: g.Area.X + g.Offset.X, Y: g.Area.Y + g.Offset.Y, W: g.Area.W, H: g.Area.H}
		if !inside(moved) {
			return invalid("gate %d opens outside the board", i)
		}
		if len(g.Plates) == 0 {
			return invalid("gate %d has no plates", i)
		}
		for _, p := range g.Plates {
			if !open(p) {
				return invalid("gate %d plate %d,%d is not an open tile", i, p.X, p.Y)
			}
		}
	}

	owners := make(map[string]int)
	for _, d := range l.Doors {
		if d.Owner != OwnerMagma && d.Owner != OwnerWater {
			return invalid("unknown door owner %q", d.Owner)
		}
		if !inside(Area{X: d.Tile.X, Y: d.Tile.Y - 1, W: 1, H: 2}) {
			return invalid("%s door lies outside the board", d.Owner)
		}
		owners[d.Owner]++
	}
	if owners[OwnerMagma] != 1 || owners[OwnerWater] != 1 {
		return invalid("need exactly one magma door and one water door")
	}

	return nil
}
