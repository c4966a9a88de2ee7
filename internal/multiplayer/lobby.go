package multiplayer

import (
	"crypto/rand"
	"strings"
	"time"
)

// JoinCodeLength is the number of characters in a lobby code.
const JoinCodeLength = 6

// joinCodeAlphabet leaves out 0, 1, I and O, which are easy to misread when
// a code is passed on by voice or chat.
const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Lobby is a hosted level waiting for a second player. The host plays
// Magma Boy and the joiner Hydro Girl.
type Lobby struct {
	Code      string
	LevelID   string
	Host      SessionHandle
	Joiner    SessionHandle // nil while waiting
	CreatedAt time.Time
}

// Full reports whether both seats are taken.
func (l *Lobby) Full() bool {
	return l.Joiner != nil
}

// Has reports whether the session sits in this lobby.
func (l *Lobby) Has(id SessionID) bool {
	return l.Host.ID() == id || (l.Joiner != nil && l.Joiner.ID() == id)
}

// Expired reports whether an unjoined lobby has waited longer than ttl.
func (l *Lobby) Expired(now time.Time, ttl time.Duration) bool {
	return !l.Full() && now.Sub(l.CreatedAt) > ttl
}

// NormalizeJoinCode upper-cases and trims a code typed by a player.
func NormalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// generateJoinCode returns a random code of JoinCodeLength characters.
func generateJoinCode() string {
	b := make([]byte, JoinCodeLength)
	// crypto/rand.Read never fails since Go 1.24
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = joinCodeAlphabet[int(b[i])%len(joinCodeAlphabet)]
	}
	return string(b)
}
