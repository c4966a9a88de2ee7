// Package multiplayer runs online co-op: lobbies with join codes, a
// coordinator pairing two sessions, and an authoritative match loop that
// steps one level for both players. The host plays Magma Boy, the joiner
// plays Hydro Girl.
package multiplayer

import "github.com/vovakirdan/magmahydro/internal/core"

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 drives Magma Boy and Player2 drives Hydro Girl.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies a match.
type MatchID string

// MatchMode says how both characters are controlled.
type MatchMode int

const (
	// MatchModeLocal has both characters on one keyboard.
	MatchModeLocal MatchMode = iota

	// MatchModeOnline has one character per session.
	MatchModeOnline
)

// String returns the name stored with records.
func (m MatchMode) String() string {
	switch m {
	case MatchModeLocal:
		return "local"
	case MatchModeOnline:
		return "online"
	default:
		return "unknown"
	}
}

// ParseMatchMode is the inverse of MatchMode.String.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch s {
	case "local":
		return MatchModeLocal, true
	case "online":
		return MatchModeOnline, true
	default:
		return MatchModeLocal, false
	}
}

// RunResult is the outcome of a level run shared by both players.
type RunResult struct {
	Completed bool
	Ticks     int
	Deaths    int
}
