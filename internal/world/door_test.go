package world

import (
	"testing"

	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
)

func testDoor(t *testing.T, owner string, frames int) *Door {
	t.Helper()
	d, err := NewDoor(level.DoorDef{Owner: owner, Tile: level.Point{X: 1, Y: 1}}, frames, "linear")
	if err != nil {
		t.Fatalf("NewDoor failed: %v", err)
	}
	return d
}

func TestDoorRisesWhilePlayerStays(t *testing.T) {
	phys := testPhysics()
	door := testDoor(t, level.OwnerMagma, 3) // frame (16,0,16,32)
	at := playerAt(PlayerMagma, core.NewRect(18, 16, 12, 16), phys)

	CheckForDoorOpen(door, at)
	if !door.PlayerAtDoor || door.State() != DoorRising {
		t.Fatalf("door should be rising, got %v at=%v", door.State(), door.PlayerAtDoor)
	}

	CheckForDoorOpen(door, at)
	CheckForDoorOpen(door, at)
	if !door.IsOpen() || door.State() != DoorOpen {
		t.Fatalf("door should be open after 3 frames, got %v", door.State())
	}

	// Open doors stay open
	away := playerAt(PlayerMagma, core.NewRect(60, 16, 12, 16), phys)
	for range 5 {
		CheckForDoorOpen(door, away)
	}
	if !door.IsOpen() || door.PlayerAtDoor {
		t.Errorf("door should stay open with PlayerAtDoor=false, got %v %v", door.State(), door.PlayerAtDoor)
	}
}

func TestDoorLowersWhenLeftEarly(t *testing.T) {
	phys := testPhysics()
	door := testDoor(t, level.OwnerWater, 4)
	at := playerAt(PlayerWater, core.NewRect(18, 16, 12, 16), phys)
	away := playerAt(PlayerWater, core.NewRect(4, 16, 12, 16), phys) // touches the frame edge only

	CheckForDoorOpen(door, at)
	CheckForDoorOpen(door, at)
	if door.Progress() != 0.5 {
		t.Fatalf("progress = %v, expected 0.5", door.Progress())
	}

	CheckForDoorOpen(door, away)
	if door.PlayerAtDoor {
		t.Error("edge contact should not count as being at the door")
	}
	CheckForDoorOpen(door, away)
	if door.State() != DoorClosed {
		t.Errorf("door should sink back to closed, got %v", door.State())
	}
}

func TestNewDoorRejectsUnknownOwner(t *testing.T) {
	_, err := NewDoor(level.DoorDef{Owner: "steam"}, 4, "linear")
	if err == nil {
		t.Fatal("expected an error for an unknown owner")
	}
}

func TestLevelIsDone(t *testing.T) {
	open := func() *Door {
		d := testDoor(t, level.OwnerMagma, 1)
		d.Advance(true)
		return d
	}
	closed := func() *Door { return testDoor(t, level.OwnerWater, 1) }

	tests := []struct {
		name  string
		doors []*Door
		want  bool
	}{
		{"no doors", nil, true},
		{"none open", []*Door{closed(), closed()}, false},
		{"one of three open", []*Door{open(), closed(), closed()}, false},
		{"two of three open", []*Door{open(), open(), closed()}, false},
		{"all open", []*Door{open(), open(), open()}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LevelIsDone(tc.doors); got != tc.want {
				t.Errorf("LevelIsDone() = %v, expected %v", got, tc.want)
			}
		})
	}
}
