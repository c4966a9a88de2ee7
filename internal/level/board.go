// Package level loads level definitions and exposes the static board
// geometry the world collides against. Levels are authored as YAML files
// holding an ASCII tile map plus spawns, gates and doors in tile units.
package level

import (
	"fmt"

	"github.com/vovakirdan/magmahydro/internal/core"
)

// TileSize is the edge length of one tile in world units.
const TileSize = 16

// Tile is the tag stored at one grid position of a board.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileSolid
	TileLava
	TileWater
	TileGoo
)

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileSolid:
		return "solid"
	case TileLava:
		return "lava"
	case TileWater:
		return "water"
	case TileGoo:
		return "goo"
	default:
		return "unknown"
	}
}

// IsPool reports whether the tile holds a liquid.
func (t Tile) IsPool() bool {
	return t == TileLava || t == TileWater || t == TileGoo
}

// ParseTile maps a map character to its tile.
func ParseTile(ch rune) (Tile, bool) {
	switch ch {
	case '.', ' ':
		return TileEmpty, true
	case '#':
		return TileSolid, true
	case 'L':
		return TileLava, true
	case 'W':
		return TileWater, true
	case 'G':
		return TileGoo, true
	}
	return TileEmpty, false
}

// Board is the read-only tile grid of a level. Rect slices are derived once
// at construction and shared by every caller; callers must not modify them.
type Board struct {
	width  int
	height int
	tiles  [][]Tile

	solids []core.Rect
	pools  map[Tile][]core.Rect
}

// NewBoard builds a board from map rows. Every row must have the same
// length and only contain known tile characters.
func NewBoard(rows []string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrInvalidLevel)
	}

	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, fmt.Errorf("%w: empty map row", ErrInvalidLevel)
	}

	b := &Board{
		width:  width,
		height: len(rows),
		tiles:  make([][]Tile, len(rows)),
		pools:  make(map[Tile][]core.Rect),
	}

	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, expected %d", ErrInvalidLevel, y, len(runes), width)
		}
		b.tiles[y] = make([]Tile, width)
		for x, ch := range runes {
			tile, ok := ParseTile(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown tile %q at %d,%d", ErrInvalidLevel, ch, x, y)
			}
			b.tiles[y][x] = tile
		}
	}

	b.derive()
	return b, nil
}

// derive precomputes solid and pool geometry.
// A pool fills the lower half of its tile and is never solid.
func (b *Board) derive() {
	for y, row := range b.tiles {
		for x, tile := range row {
			r := TileRect(x, y)
			switch {
			case tile == TileSolid:
				b.solids = append(b.solids, r)
			case tile.IsPool():
				half := TileSize / 2
				b.pools[tile] = append(b.pools[tile], core.NewRect(r.X, r.Y+half, TileSize, TileSize-half))
			}
		}
	}
}

// TileRect returns the world rect of the tile at grid position (x, y).
func TileRect(x, y int) core.Rect {
	return core.NewRect(x*TileSize, y*TileSize, TileSize, TileSize)
}

// Width returns the board width in tiles.
func (b *Board) Width() int { return b.width }

// Height returns the board height in tiles.
func (b *Board) Height() int { return b.height }

// Bounds returns the board area in world units.
func (b *Board) Bounds() core.Rect {
	return core.NewRect(0, 0, b.width*TileSize, b.height*TileSize)
}

// TileAt returns the tile at grid position (x, y); outside the grid is empty.
func (b *Board) TileAt(x, y int) Tile {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return TileEmpty
	}
	return b.tiles[y][x]
}

// SolidBlocks returns the rects of every solid tile.
func (b *Board) SolidBlocks() []core.Rect {
	return b.solids
}

// Pools returns the liquid rects of one pool kind.
func (b *Board) Pools(kind Tile) []core.Rect {
	return b.pools[kind]
}

// LavaPools returns the lava rects.
func (b *Board) LavaPools() []core.Rect { return b.pools[TileLava] }

// WaterPools returns the water rects.
func (b *Board) WaterPools() []core.Rect { return b.pools[TileWater] }

// GooPools returns the goo rects.
func (b *Board) GooPools() []core.Rect { return b.pools[TileGoo] }
