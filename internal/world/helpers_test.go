package world

import (
	"testing"

	"github.com/vovakirdan/magmahydro/internal/config"
	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
)

func mustBoard(t *testing.T, rows ...string) *level.Board {
	t.Helper()
	b, err := level.NewBoard(rows)
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	return b
}

func testPhysics() config.PhysicsConfig {
	return config.DefaultConfig().Physics
}

// playerAt returns a living player of type t occupying r.
func playerAt(t PlayerType, r core.Rect, phys config.PhysicsConfig) *Player {
	p := NewPlayer(t, level.Point{}, phys)
	p.Rect = r
	return p
}
