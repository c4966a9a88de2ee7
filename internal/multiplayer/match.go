package multiplayer

import (
	"sync"
	"time"

	"github.com/vovakirdan/magmahydro/internal/core"
)

// OnlineGame is what a match steps. The match goroutine owns the game for
// the match's lifetime.
type OnlineGame interface {
	Reset(cfg core.RuntimeConfig)

	// StepMulti advances one tick with input from both players.
	StepMulti(input core.MultiInputFrame) core.StepResult

	// Snapshot captures what clients need to draw the current tick.
	Snapshot() GameSnapshot

	// IsGameOver is true once both players stand in their open doors or
	// the run was abandoned.
	IsGameOver() bool

	Result() RunResult

	// Abandon ends the run early, e.g. when a player leaves.
	Abandon()
}

// MatchResult is the outcome of a finished match.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Run     RunResult
	Ticks   uint64
	LeftBy  PlayerID // zero unless a player left
}

// OnlineMatch steps one level for two sessions. Player1's session plays
// Magma Boy and Player2's Hydro Girl.
type OnlineMatch struct {
	id      MatchID
	code    string
	levelID string
	game    OnlineGame
	seats   map[PlayerID]SessionHandle

	// held is the last frame each client sent; clients only send on change
	inputMu sync.Mutex
	held    map[PlayerID]core.InputFrame
	inputCh chan playerInput

	tick          uint64
	tickRate      int
	snapshotEvery int

	leaveCh  chan SessionID
	done     chan struct{}
	doneOnce sync.Once
}

type playerInput struct {
	player PlayerID
	input  core.InputFrame
}

// NewOnlineMatch creates a match between host (Magma Boy) and joiner
// (Hydro Girl). Run starts it.
func NewOnlineMatch(
	id MatchID,
	code string,
	levelID string,
	game OnlineGame,
	host, joiner SessionHandle,
	tickRate int,
) *OnlineMatch {
	return &OnlineMatch{
		id:      id,
		code:    code,
		levelID: levelID,
		game:    game,
		seats:   map[PlayerID]SessionHandle{Player1: host, Player2: joiner},
		held: map[PlayerID]core.InputFrame{
			Player1: core.NewInputFrame(),
			Player2: core.NewInputFrame(),
		},
		inputCh:       make(chan playerInput, 64),
		tickRate:      max(1, tickRate),
		snapshotEvery: 1,
		leaveCh:       make(chan SessionID, 2),
		done:          make(chan struct{}),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code of the lobby the match came from.
func (m *OnlineMatch) Code() string {
	return m.code
}

// LevelID returns the level being played.
func (m *OnlineMatch) LevelID() string {
	return m.levelID
}

// SendInput replaces the held frame of player from the next tick on.
// Frames for unknown players are ignored. Never blocks.
func (m *OnlineMatch) SendInput(player PlayerID, input core.InputFrame) {
	if _, ok := m.seats[player]; !ok {
		return
	}
	select {
	case m.inputCh <- playerInput{player: player, input: input}:
	default:
	}
}

// PlayerDisconnected ends the match because the session left.
func (m *OnlineMatch) PlayerDisconnected(sessionID SessionID) {
	select {
	case m.leaveCh <- sessionID:
	default:
	}
}

// Run steps the match at its tick rate until the level is done or a
// player leaves, then calls onComplete. Stop ends it without a callback.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
	defer ticker.Stop()

	go m.watchSessions()

	finish := func(r MatchResult) {
		if onComplete != nil {
			onComplete(r)
		}
	}

	for {
		select {
		case <-ticker.C:
			if result, over := m.runTick(); over {
				finish(result)
				return
			}
		case id := <-m.leaveCh:
			finish(m.abandon(id))
			return
		case <-m.done:
			return
		}
	}
}

func (m *OnlineMatch) runTick() (MatchResult, bool) {
	in := m.nextInput()
	m.game.StepMulti(in)
	m.tick++

	over := m.game.IsGameOver()
	if over || m.tick%uint64(m.snapshotEvery) == 0 { //nolint:gosec // snapshotEvery is positive
		m.broadcast(SnapshotEvent{MatchID: m.id, Tick: m.tick, Snapshot: m.game.Snapshot()})
	}
	if !over {
		return MatchResult{}, false
	}
	return MatchResult{
		MatchID: m.id,
		Reason:  MatchEndReasonCompleted,
		Run:     m.game.Result(),
		Ticks:   m.tick,
	}, true
}

// nextInput folds queued client frames into the held frames and returns
// the input for this tick. One-shot actions are consumed by the tick.
func (m *OnlineMatch) nextInput() core.MultiInputFrame {
	m.inputMu.Lock()
	defer m.inputMu.Unlock()

	for drained := false; !drained; {
		select {
		case pi := <-m.inputCh:
			// A newer frame must not swallow a one-shot that this tick
			// has not seen yet
			next := pi.input.Clone()
			for a, on := range m.held[pi.player].Actions {
				if on && a.OneShot() {
					next.Set(a)
				}
			}
			m.held[pi.player] = next
		default:
			drained = true
		}
	}

	in := core.NewMultiInputFrame()
	for p, frame := range m.held {
		in.SetPlayer(p, frame.Clone())
		// Held actions repeat until the client sends a new frame
		frame.DropOneShots()
	}
	return in
}

func (m *OnlineMatch) abandon(sessionID SessionID) MatchResult {
	var left PlayerID
	for p, s := range m.seats {
		if s.ID() == sessionID {
			left = p
		}
	}
	m.game.Abandon()

	return MatchResult{
		MatchID: m.id,
		Reason:  MatchEndReasonDisconnect,
		Run:     m.game.Result(),
		Ticks:   m.tick,
		LeftBy:  left,
	}
}

// watchSessions turns a closed session into a leave.
func (m *OnlineMatch) watchSessions() {
	p1, p2 := m.seats[Player1], m.seats[Player2]
	select {
	case <-p1.Done():
		m.PlayerDisconnected(p1.ID())
	case <-p2.Done():
		m.PlayerDisconnected(p2.ID())
	case <-m.done:
	}
}

func (m *OnlineMatch) broadcast(evt SessionEvent) {
	for _, s := range m.seats {
		s.Send(evt)
	}
}

// Stop ends the match loop. Safe to call more than once.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}
