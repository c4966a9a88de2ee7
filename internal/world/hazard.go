package world

import (
	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
)

// lethalPools maps each character to the pool kind of the other element.
// Goo kills everyone and is not listed here.
var lethalPools = map[PlayerType]level.Tile{
	PlayerMagma: level.TileWater,
	PlayerWater: level.TileLava,
}

// LethalPools returns the pool rects that kill a character.
func LethalPools(board *level.Board, t PlayerType) []core.Rect {
	goo := board.GooPools()
	kind, ok := lethalPools[t]
	if !ok {
		return goo
	}
	own := board.Pools(kind)
	pools := make([]core.Rect, 0, len(own)+len(goo))
	pools = append(pools, own...)
	return append(pools, goo...)
}

// CheckForDeath kills every living player overlapping a pool lethal to its
// type and returns the players killed this call.
func CheckForDeath(board *level.Board, players []*Player) []*Player {
	var killed []*Player
	for _, p := range players {
		if !p.Alive {
			continue
		}
		if core.CollidesAny(p.Rect, LethalPools(board, p.Type)) {
			p.Kill()
			killed = append(killed, p)
		}
	}
	return killed
}
