package level

import (
	"errors"

	"github.com/vovakirdan/magmahydro/internal/core"
)

var (
	// ErrLevelNotFound is returned when no level matches a requested ID.
	ErrLevelNotFound = errors.New("level not found")

	// ErrInvalidLevel is returned for malformed level definitions.
	ErrInvalidLevel = errors.New("invalid level")
)

// Owner tags used in level files for spawns and doors.
const (
	OwnerMagma = "magma"
	OwnerWater = "water"
)

// Point is a grid position in tiles.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Area is a grid rectangle in tiles.
type Area struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Rect converts the area to world units.
func (a Area) Rect() core.Rect {
	return core.NewRect(a.X*TileSize, a.Y*TileSize, a.W*TileSize, a.H*TileSize)
}

// Spawn is where a character starts, standing on the bottom of its tile.
type Spawn struct {
	Owner string
	Tile  Point
}

// PlateHeight is the height of a pressure plate in world units.
const PlateHeight = TileSize / 4

// GateDef describes a gate and the plates that open it.
type GateDef struct {
	Area   Area
	Plates []Point
	// Offset is how far the gate travels when fully open, in tiles.
	Offset Point
}

// ClosedRect returns the gate rect in its closed position.
func (g GateDef) ClosedRect() core.Rect {
	return g.Area.Rect()
}

// OpenRect returns the gate rect in its fully open position.
func (g GateDef) OpenRect() core.Rect {
	return g.Area.Rect().Translate(g.Offset.X*TileSize, g.Offset.Y*TileSize)
}

// PlateRects returns the plate rects. A plate lies flat on the bottom of its tile.
func (g GateDef) PlateRects() []core.Rect {
	rects := make([]core.Rect, len(g.Plates))
	for i, p := range g.Plates {
		t := TileRect(p.X, p.Y)
		rects[i] = core.NewRect(t.X, t.Bottom()-PlateHeight, TileSize, PlateHeight)
	}
	return rects
}

// DoorDef describes a character's exit door. Tile is the lower of the two
// tiles the door frame covers.
type DoorDef struct {
	Owner string
	Tile  Point
}

// Rect returns the door frame: one tile wide, two tiles tall.
func (d DoorDef) Rect() core.Rect {
	return core.NewRect(d.Tile.X*TileSize, (d.Tile.Y-1)*TileSize, TileSize, 2*TileSize)
}

// Level is a parsed, validated level definition.
type Level struct {
	ID       string
	Name     string
	Board    *Board
	Spawns   []Spawn
	Gates    []GateDef
	Doors    []DoorDef
	FilePath string // empty for embedded levels
}

// SpawnFor returns the spawn of an owner.
func (l *Level) SpawnFor(owner string) (Spawn, bool) {
	for _, s := range l.Spawns {
		if s.Owner == owner {
			return s, true
		}
	}
	return Spawn{}, false
}
