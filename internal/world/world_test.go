package world

import (
	"slices"
	"testing"

	"github.com/vovakirdan/magmahydro/internal/config"
	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
)

const poolsLevel = `id: pools
name: Pools
map:
  - "##########"
  - "#........#"
  - "#........#"
  - "#...L....#"
  - "##########"
spawns:
  magma: {x: 1, y: 3}
  water: {x: 2, y: 3}
doors:
  - {owner: magma, x: 7, y: 3}
  - {owner: water, x: 8, y: 3}
`

const doorstepLevel = `id: doorstep
name: Doorstep
map:
  - "##########"
  - "#........#"
  - "#........#"
  - "#........#"
  - "##########"
spawns:
  magma: {x: 2, y: 3}
  water: {x: 6, y: 3}
doors:
  - {owner: magma, x: 2, y: 3}
  - {owner: water, x: 6, y: 3}
`

const gateLevel = `id: gate
name: Gate
map:
  - "##########"
  - "#....#...#"
  - "#........#"
  - "#........#"
  - "##########"
spawns:
  magma: {x: 3, y: 3}
  water: {x: 1, y: 3}
gates:
  - rect: {x: 5, y: 2, w: 1, h: 2}
    plates:
      - {x: 3, y: 3}
doors:
  - {owner: magma, x: 7, y: 3}
  - {owner: water, x: 8, y: 3}
`

func newTestWorld(t *testing.T, src string) *World {
	t.Helper()
	lvl, err := level.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	w, err := New(lvl, config.DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return w
}

func hold(id core.PlayerID, actions ...core.Action) core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	for _, a := range actions {
		in.Press(id, a)
	}
	return in
}

func TestNewWorldSpawnsStandingPlayers(t *testing.T) {
	w := newTestWorld(t, poolsLevel)

	if len(w.Players) != 2 || w.Players[0].Type != PlayerMagma || w.Players[1].Type != PlayerWater {
		t.Fatalf("expected magma then water, got %+v", w.Players)
	}

	before := w.Player(PlayerWater).Rect
	for range 30 {
		w.Step(core.NewMultiInputFrame())
	}
	after := w.Player(PlayerWater).Rect
	if before != after {
		t.Errorf("idle player drifted from %+v to %+v", before, after)
	}
	if w.Player(PlayerWater).AirTimer != 0 {
		t.Error("idle player should stay grounded")
	}
	if w.Tick != 30 {
		t.Errorf("Tick = %d, expected 30", w.Tick)
	}
}

func TestWorldStepReportsDeathAndResets(t *testing.T) {
	w := newTestWorld(t, poolsLevel)
	water := w.Player(PlayerWater)

	var died []PlayerType
	for range 30 {
		report := w.Step(hold(core.Player2, core.ActionRight))
		died = append(died, report.Died...)
	}

	if !slices.Equal(died, []PlayerType{PlayerWater}) {
		t.Fatalf("expected one water death, got %v", died)
	}
	if water.Alive || w.Deaths != 1 || !w.AnyDead() {
		t.Errorf("water should be dead and counted, alive=%v deaths=%d", water.Alive, w.Deaths)
	}
	if !w.Player(PlayerMagma).Alive {
		t.Error("magma player did not move and should be alive")
	}

	w.Reset()
	if !water.Alive || water.Rect != water.Spawn() {
		t.Errorf("reset should respawn the player, got %+v", water.Rect)
	}
	if w.Deaths != 1 {
		t.Error("reset should keep the death counter")
	}
}

func TestWorldMagmaWadesThroughLava(t *testing.T) {
	w := newTestWorld(t, poolsLevel)
	magma := w.Player(PlayerMagma)

	for range 80 {
		if report := w.Step(hold(core.Player1, core.ActionRight)); len(report.Died) > 0 {
			t.Fatalf("unexpected death: %v", report.Died)
		}
	}
	if magma.Rect.Right() != 9*level.TileSize {
		t.Errorf("magma should reach the right wall, right=%d", magma.Rect.Right())
	}
}

func TestWorldCompletesWhenBothDoorsOpen(t *testing.T) {
	w := newTestWorld(t, doorstepLevel)
	frames := config.DefaultConfig().Mechanisms.DoorFrames

	for i := 1; i < frames; i++ {
		if w.Step(core.NewMultiInputFrame()).Completed {
			t.Fatalf("completed after %d frames, doors need %d", i, frames)
		}
	}
	if !w.Step(core.NewMultiInputFrame()).Completed {
		t.Error("level should complete once both doors are open")
	}
}

func TestWorldPlateOpensGateForPartner(t *testing.T) {
	w := newTestWorld(t, gateLevel)
	gate := w.Gates[0]
	water := w.Player(PlayerWater)

	// Magma spawns on the plate
	for range config.DefaultConfig().Mechanisms.GateFrames {
		w.Step(core.NewMultiInputFrame())
	}
	if !gate.PlateIsPressed || !gate.IsOpen() {
		t.Fatalf("gate should be open, pressed=%v state=%v", gate.PlateIsPressed, gate.State())
	}

	for range 50 {
		w.Step(hold(core.Player2, core.ActionRight))
	}
	if water.Rect.X <= gate.ClosedRect().Right() {
		t.Errorf("water should pass the open gate, x=%d", water.Rect.X)
	}

	// Magma steps off the plate; the gate closes behind the partner
	for range 60 {
		w.Step(hold(core.Player1, core.ActionLeft))
	}
	if gate.PlateIsPressed || gate.State() != GateClosed {
		t.Errorf("gate should be closed, pressed=%v state=%v", gate.PlateIsPressed, gate.State())
	}
}

func TestWorldStateApply(t *testing.T) {
	server := newTestWorld(t, gateLevel)
	for range 10 {
		server.Step(hold(core.Player2, core.ActionRight, core.ActionJump))
	}

	client := newTestWorld(t, gateLevel)
	client.ApplyState(server.State())

	got, want := client.State(), server.State()
	if got.Tick != want.Tick || !slices.Equal(got.Players, want.Players) ||
		!slices.Equal(got.Gates, want.Gates) || !slices.Equal(got.Doors, want.Doors) {
		t.Errorf("applied state differs:\n got  %+v\n want %+v", got, want)
	}
	if client.Gates[0].Rect() != server.Gates[0].Rect() {
		t.Error("gate rect should follow the applied frame")
	}
}

func TestControlledBy(t *testing.T) {
	if ControlledBy(core.Player1) != PlayerMagma || ControlledBy(core.Player2) != PlayerWater {
		t.Error("Player1 should drive magma and Player2 water")
	}
	if PlayerWater.Controller() != core.Player2 {
		t.Error("water should be driven by Player2")
	}
}
