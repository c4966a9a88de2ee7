package multiplayer

import "github.com/vovakirdan/magmahydro/internal/core"

// Coordinator to session

// SessionEvent is delivered to a session by the coordinator or a match.
type SessionEvent interface {
	sessionEvent()
}

// LobbyCreatedEvent tells the host its lobby code.
type LobbyCreatedEvent struct {
	Code    string
	LevelID string
}

// LobbyErrorEvent reports a failed lobby request or an expired lobby.
type LobbyErrorEvent struct {
	Message string
}

// LobbyJoinedEvent goes to both sessions when the second seat is taken.
type LobbyJoinedEvent struct {
	Code    string
	Side    PlayerID // Player1 plays Magma Boy, Player2 Hydro Girl
	Partner SessionID
}

// LobbyPlayerLeftEvent tells the host that the joiner left before the
// match started.
type LobbyPlayerLeftEvent struct {
	Code string
}

// MatchStartedEvent goes to both sessions when the match begins.
type MatchStartedEvent struct {
	MatchID MatchID
	Side    PlayerID
	Code    string
	LevelID string // joiners learn the level here
}

// MatchEndedEvent ends a match, or a lobby the joiner was waiting in.
type MatchEndedEvent struct {
	MatchID MatchID // empty when a lobby closed
	Reason  MatchEndReason
	Run     RunResult
}

// SnapshotEvent carries the state of one tick. Sessions may skip
// snapshots; each one is complete.
type SnapshotEvent struct {
	MatchID  MatchID
	Tick     uint64
	Snapshot GameSnapshot
}

// GameSnapshot is implemented by the game's snapshot type.
type GameSnapshot interface {
	IsGameSnapshot()
}

func (LobbyCreatedEvent) sessionEvent()    {}
func (LobbyErrorEvent) sessionEvent()      {}
func (LobbyJoinedEvent) sessionEvent()     {}
func (LobbyPlayerLeftEvent) sessionEvent() {}
func (MatchStartedEvent) sessionEvent()    {}
func (MatchEndedEvent) sessionEvent()      {}
func (SnapshotEvent) sessionEvent()        {}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted  MatchEndReason = iota // both players reached their doors
	MatchEndReasonDisconnect                       // a player left or lost the connection
	MatchEndReasonHostLeft                         // the host closed the lobby
	MatchEndReasonShutdown                         // the server stopped
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "Level complete"
	case MatchEndReasonDisconnect:
		return "Partner disconnected"
	case MatchEndReasonHostLeft:
		return "Host left"
	case MatchEndReasonShutdown:
		return "Server shutting down"
	default:
		return "Unknown"
	}
}

// Session to coordinator

// CoordinatorMessage is a request from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// CreateLobbyMsg hosts LevelID in a new lobby.
type CreateLobbyMsg struct {
	SessionID SessionID
	LevelID   string
}

// JoinLobbyMsg takes the second seat of a lobby and starts the match.
type JoinLobbyMsg struct {
	SessionID SessionID
	Code      string
}

// CancelLobbyMsg closes a hosted lobby.
type CancelLobbyMsg struct {
	SessionID SessionID
	Code      string
}

// LeaveLobbyMsg gives up a joined seat.
type LeaveLobbyMsg struct {
	SessionID SessionID
	Code      string
}

// LeaveMatchMsg abandons a running match.
type LeaveMatchMsg struct {
	SessionID SessionID
	MatchID   MatchID
}

// PlayerInputMsg replaces the held input of one character. Clients send
// it when their frame changes or carries a one-shot action.
type PlayerInputMsg struct {
	MatchID MatchID
	Player  PlayerID
	Input   core.InputFrame
}

// SessionDisconnectedMsg reports a closed connection.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (CreateLobbyMsg) coordinatorMessage()         {}
func (JoinLobbyMsg) coordinatorMessage()           {}
func (CancelLobbyMsg) coordinatorMessage()         {}
func (LeaveLobbyMsg) coordinatorMessage()          {}
func (LeaveMatchMsg) coordinatorMessage()          {}
func (PlayerInputMsg) coordinatorMessage()         {}
func (SessionDisconnectedMsg) coordinatorMessage() {}
