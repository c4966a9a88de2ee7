package world

import (
	"testing"

	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
)

// testGate builds a gate covering w x h tiles at (x, y) that opens upward
// by its height over four linear frames, with one plate at (px, py).
func testGate(x, y, w, h, px, py int) *Gate {
	def := level.GateDef{
		Area:   level.Area{X: x, Y: y, W: w, H: h},
		Plates: []level.Point{{X: px, Y: py}},
		Offset: level.Point{X: 0, Y: -h},
	}
	return NewGate(def, 4, "linear")
}

func TestCheckForGatePressIsIdempotent(t *testing.T) {
	phys := testPhysics()
	gate := testGate(4, 0, 1, 2, 0, 1)

	tests := []struct {
		name    string
		rect    core.Rect
		pressed bool
	}{
		{"standing on plate", core.NewRect(2, 16, 12, 16), true},
		{"next to plate", core.NewRect(16, 16, 12, 16), false},
		{"touching plate edge from above", core.NewRect(2, 12, 12, 16), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := playerAt(PlayerMagma, tc.rect, phys)
			for i := range 10 {
				CheckForGatePress([]*Gate{gate}, []*Player{p})
				if gate.PlateIsPressed != tc.pressed {
					t.Fatalf("call %d: PlateIsPressed = %v, expected %v", i, gate.PlateIsPressed, tc.pressed)
				}
			}
		})
	}
}

func TestGateOpensAndCloses(t *testing.T) {
	gate := testGate(4, 0, 1, 2, 0, 1)
	closed := gate.Rect()

	if gate.State() != GateClosed || gate.Progress() != 0 {
		t.Fatalf("new gate should be closed, got %v %v", gate.State(), gate.Progress())
	}

	gate.Advance(true)
	if gate.State() != GateOpening {
		t.Errorf("expected opening, got %v", gate.State())
	}
	for range 3 {
		gate.Advance(true)
	}
	if !gate.IsOpen() || gate.State() != GateOpen {
		t.Fatalf("gate should be open after 4 frames, got %v", gate.State())
	}
	if gate.Rect().Y != closed.Y-2*level.TileSize {
		t.Errorf("open gate should be raised by its height, got %+v", gate.Rect())
	}

	// Staying pressed keeps it open
	gate.Advance(true)
	if gate.State() != GateOpen {
		t.Errorf("expected open, got %v", gate.State())
	}

	gate.Advance(false)
	if gate.State() != GateClosing || gate.IsOpen() {
		t.Errorf("expected closing, got %v", gate.State())
	}
	for range 3 {
		gate.Advance(false)
	}
	if gate.State() != GateClosed || gate.Rect() != closed {
		t.Errorf("gate should be back at %+v, got %+v (%v)", closed, gate.Rect(), gate.State())
	}
}

func TestGateHoldsInsteadOfCrushing(t *testing.T) {
	phys := testPhysics()
	gate := testGate(2, 0, 1, 2, 0, 1) // closed rect (32,0,16,32)

	presser := playerAt(PlayerWater, core.NewRect(2, 16, 12, 16), phys)
	for range 4 {
		CheckForGatePress([]*Gate{gate}, []*Player{presser})
	}
	if !gate.IsOpen() {
		t.Fatal("gate should be open")
	}

	// Presser leaves the plate, another player stands in the doorway
	presser.Rect = core.NewRect(64, 16, 12, 16)
	blocker := playerAt(PlayerMagma, core.NewRect(34, 16, 12, 16), phys)
	players := []*Player{presser, blocker}

	for range 10 {
		CheckForGatePress([]*Gate{gate}, players)
		if gate.Rect().Intersects(blocker.Rect) {
			t.Fatalf("gate %+v moved into the player %+v", gate.Rect(), blocker.Rect)
		}
	}
	if gate.State() != GateClosing {
		t.Errorf("held gate should stay closing, got %v", gate.State())
	}
	if gate.Rect().Bottom() != blocker.Rect.Y {
		t.Errorf("gate should hold against the player's head, bottom=%d head=%d", gate.Rect().Bottom(), blocker.Rect.Y)
	}

	// Once the player steps away the gate finishes closing
	blocker.Rect = core.NewRect(64, 16, 12, 16)
	for range 4 {
		CheckForGatePress([]*Gate{gate}, players)
	}
	if gate.State() != GateClosed {
		t.Errorf("gate should close once clear, got %v", gate.State())
	}
}

func TestOpeningGateLiftsRider(t *testing.T) {
	phys := testPhysics()
	gate := testGate(2, 2, 1, 1, 0, 1) // closed rect (32,32,16,16)

	presser := playerAt(PlayerWater, core.NewRect(2, 16, 12, 16), phys)
	rider := playerAt(PlayerMagma, core.NewRect(34, 16, 12, 16), phys)
	players := []*Player{presser, rider}

	for range 20 {
		CheckForGatePress([]*Gate{gate}, players)
		if gate.Rect().Intersects(rider.Rect) {
			t.Fatalf("gate %+v overlaps the rider %+v", gate.Rect(), rider.Rect)
		}
	}
	if !gate.PlateIsPressed || gate.State() != GateOpen {
		t.Fatalf("pressed gate should open under a rider, got pressed=%v state=%v", gate.PlateIsPressed, gate.State())
	}
	if rider.Rect.Bottom() != gate.Rect().Y {
		t.Errorf("rider should stand on the raised gate, bottom=%d gate top=%d", rider.Rect.Bottom(), gate.Rect().Y)
	}
}

func TestGateEasingKeepsEndpoints(t *testing.T) {
	for _, name := range []string{"linear", "in_quad", "out_quad", "in_out_quad", "in_out_cubic", "out_bounce"} {
		t.Run(name, func(t *testing.T) {
			def := level.GateDef{
				Area:   level.Area{X: 1, Y: 1, W: 1, H: 2},
				Plates: []level.Point{{X: 0, Y: 0}},
				Offset: level.Point{X: 0, Y: -1},
			}
			gate := NewGate(def, 10, name)
			for range 10 {
				gate.Advance(true)
			}
			if gate.Rect() != def.OpenRect() {
				t.Errorf("open rect = %+v, expected %+v", gate.Rect(), def.OpenRect())
			}
		})
	}
}
