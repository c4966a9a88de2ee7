package tui

import "github.com/vovakirdan/magmahydro/internal/core"

// Terminals report key presses and auto-repeat but never releases, so a
// movement key stays held for a few ticks after each press. Key repeat
// refreshes the hold while the key is down.

// HeldInput turns key presses into per-tick input frames.
type HeldInput struct {
	holdTicks int
	held      map[core.PlayerID]map[core.Action]int
	pending   core.MultiInputFrame
}

// NewHeldInput creates a tracker that holds movement for holdTicks ticks.
func NewHeldInput(holdTicks int) *HeldInput {
	return &HeldInput{
		holdTicks: max(1, holdTicks),
		held:      make(map[core.PlayerID]map[core.Action]int),
		pending:   core.NewMultiInputFrame(),
	}
}

// Press records a key press. Pause and Restart fire once on the next
// frame; movement is held.
func (h *HeldInput) Press(id core.PlayerID, a core.Action) {
	switch {
	case a == core.ActionNone:
		return
	case a.OneShot():
		h.pending.Press(id, a)
		return
	}

	actions := h.held[id]
	if actions == nil {
		actions = make(map[core.Action]int)
		h.held[id] = actions
	}
	// Reversing drops the old direction at once
	switch a {
	case core.ActionLeft:
		delete(actions, core.ActionRight)
	case core.ActionRight:
		delete(actions, core.ActionLeft)
	}
	actions[a] = h.holdTicks
}

// Frame returns the input for the next tick and ages the held actions.
func (h *HeldInput) Frame() core.MultiInputFrame {
	frame := h.pending.Clone()
	h.pending.Clear()

	for id, actions := range h.held {
		for a, left := range actions {
			frame.Press(id, a)
			if left <= 1 {
				delete(actions, a)
			} else {
				actions[a] = left - 1
			}
		}
	}
	return frame
}

// Reset releases everything.
func (h *HeldInput) Reset() {
	clear(h.held)
	h.pending.Clear()
}
