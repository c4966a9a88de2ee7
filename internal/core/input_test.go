package core

import "testing"

func TestActionOneShot(t *testing.T) {
	tests := []struct {
		a    Action
		want bool
	}{
		{ActionLeft, false},
		{ActionRight, false},
		{ActionJump, false},
		{ActionPause, true},
		{ActionRestart, true},
		{ActionBack, false},
	}
	for _, tc := range tests {
		t.Run(tc.a.String(), func(t *testing.T) {
			if got := tc.a.OneShot(); got != tc.want {
				t.Errorf("OneShot() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestInputFrameOneShots(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	if f.HasOneShot() {
		t.Error("movement alone is not a one-shot")
	}

	f.Set(ActionPause)
	if !f.HasOneShot() {
		t.Error("pause should count as a one-shot")
	}

	f.DropOneShots()
	if f.Has(ActionPause) || !f.Has(ActionRight) {
		t.Errorf("DropOneShots should keep only movement, got %v", f.Actions)
	}
}

func TestMultiInputFrame(t *testing.T) {
	var m MultiInputFrame
	if m.Player(Player2).Has(ActionJump) {
		t.Error("zero frame should hold nothing")
	}

	m.Press(Player2, ActionJump)
	if !m.Player(Player2).Has(ActionJump) || m.Player(Player1).Has(ActionJump) {
		t.Error("Press should only affect its player")
	}
	if !m.Any(ActionJump) || m.Any(ActionLeft) {
		t.Error("Any should report held actions of either player")
	}

	c := m.Clone()
	m.Clear()
	if m.Any(ActionJump) {
		t.Error("Clear should release everything")
	}
	if !c.Player(Player2).Has(ActionJump) {
		t.Error("clone should not share state with the original")
	}
}
