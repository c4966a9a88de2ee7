package multiplayer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/magmahydro/internal/core"
)

type fakeSnapshot struct{ Step int }

func (fakeSnapshot) IsGameSnapshot() {}

// fakeGame completes after a fixed number of steps.
type fakeGame struct {
	mu        sync.Mutex
	steps     int
	endAfter  int
	inputs    []core.MultiInputFrame
	abandoned bool
}

func (g *fakeGame) Reset(core.RuntimeConfig) {}

func (g *fakeGame) StepMulti(in core.MultiInputFrame) core.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.steps++
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{}
}

func (g *fakeGame) Snapshot() GameSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fakeSnapshot{Step: g.steps}
}

func (g *fakeGame) IsGameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.abandoned || (g.endAfter > 0 && g.steps >= g.endAfter)
}

func (g *fakeGame) Result() RunResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return RunResult{Completed: !g.abandoned && g.steps >= g.endAfter, Ticks: g.steps, Deaths: 1}
}

func (g *fakeGame) Abandon() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.abandoned = true
}

type recordingSaver struct {
	results chan MatchResultData
}

func (s *recordingSaver) SaveMatchResult(r MatchResultData) error {
	s.results <- r
	return nil
}

func waitFor[T SessionEvent](t *testing.T, s *ChannelSession) T {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		evt, ok := s.Next(ctx)
		if !ok {
			var zero T
			t.Fatalf("timed out waiting for %T on %s", zero, s.ID())
			return zero
		}
		if e, ok := evt.(T); ok {
			return e
		}
	}
}

type coordinatorFixture struct {
	coord  *Coordinator
	host   *ChannelSession
	joiner *ChannelSession
	game   *fakeGame
	saver  *recordingSaver
	levels chan string
}

func newFixture(t *testing.T, endAfter int) *coordinatorFixture {
	t.Helper()
	f := &coordinatorFixture{
		host:   NewChannelSession("host", 256),
		joiner: NewChannelSession("joiner", 256),
		game:   &fakeGame{endAfter: endAfter},
		saver:  &recordingSaver{results: make(chan MatchResultData, 1)},
		levels: make(chan string, 1),
	}

	reg := NewSessionRegistry()
	reg.Register(f.host)
	reg.Register(f.joiner)

	cfg := DefaultCoordinatorConfig()
	cfg.TickRate = 240
	factory := func(levelID string, _ core.RuntimeConfig) (OnlineGame, error) {
		f.levels <- levelID
		return f.game, nil
	}

	f.coord = NewCoordinator(cfg, factory, reg)
	f.coord.SetResultSaver(f.saver)
	f.coord.Start()
	t.Cleanup(f.coord.Stop)
	return f
}

// start creates a lobby as host, joins it and waits for the match.
func (f *coordinatorFixture) start(t *testing.T) MatchID {
	t.Helper()
	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), LevelID: "02-gatehouse"})
	created := waitFor[LobbyCreatedEvent](t, f.host)
	if len(created.Code) != 6 || created.LevelID != "02-gatehouse" {
		t.Fatalf("unexpected lobby %+v", created)
	}

	f.coord.Send(JoinLobbyMsg{SessionID: f.joiner.ID(), Code: created.Code})
	hostStart := waitFor[MatchStartedEvent](t, f.host)
	joinStart := waitFor[MatchStartedEvent](t, f.joiner)
	if hostStart.Side != Player1 || joinStart.Side != Player2 {
		t.Errorf("host should play Player1 and joiner Player2, got %v and %v", hostStart.Side, joinStart.Side)
	}
	if joinStart.LevelID != "02-gatehouse" {
		t.Errorf("joiner should learn the level, got %q", joinStart.LevelID)
	}
	if got := <-f.levels; got != "02-gatehouse" {
		t.Errorf("factory got level %q", got)
	}
	return hostStart.MatchID
}

func TestCoordinatorRunsMatchToCompletion(t *testing.T) {
	f := newFixture(t, 5)
	f.start(t)

	snap := waitFor[SnapshotEvent](t, f.joiner)
	if _, ok := snap.Snapshot.(fakeSnapshot); !ok {
		t.Errorf("unexpected snapshot type %T", snap.Snapshot)
	}

	ended := waitFor[MatchEndedEvent](t, f.host)
	if ended.Reason != MatchEndReasonCompleted || !ended.Run.Completed || ended.Run.Ticks != 5 {
		t.Errorf("unexpected end %+v", ended)
	}

	select {
	case r := <-f.saver.results:
		if r.LevelID != "02-gatehouse" || !r.Completed || r.HostSession != "host" || r.JoinerSession != "joiner" {
			t.Errorf("unexpected saved result %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("match result was not saved")
	}

	if f.coord.MatchCount() != 0 {
		t.Error("finished match should be removed")
	}
}

func TestCoordinatorDisconnectAbandonsRun(t *testing.T) {
	f := newFixture(t, 0)
	f.start(t)

	f.joiner.Close()
	ended := waitFor[MatchEndedEvent](t, f.host)
	if ended.Reason != MatchEndReasonDisconnect || ended.Run.Completed {
		t.Errorf("unexpected end %+v", ended)
	}
	if !f.game.IsGameOver() {
		t.Error("run should be abandoned")
	}
}

func TestCoordinatorLobbyErrors(t *testing.T) {
	f := newFixture(t, 0)

	f.coord.Send(JoinLobbyMsg{SessionID: f.joiner.ID(), Code: "NOPE42"})
	if e := waitFor[LobbyErrorEvent](t, f.joiner); e.Message != "Lobby not found" {
		t.Errorf("unexpected error %q", e.Message)
	}

	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), LevelID: "01-first-steps"})
	created := waitFor[LobbyCreatedEvent](t, f.host)

	f.coord.Send(JoinLobbyMsg{SessionID: f.host.ID(), Code: created.Code})
	if e := waitFor[LobbyErrorEvent](t, f.host); e.Message != "Already in a lobby" {
		t.Errorf("unexpected error %q", e.Message)
	}

	f.coord.Send(CancelLobbyMsg{SessionID: f.host.ID(), Code: created.Code})
	deadline := time.Now().Add(2 * time.Second)
	for f.coord.LobbyCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if f.coord.LobbyCount() != 0 {
		t.Error("cancelled lobby should be removed")
	}
}

func TestMatchInputHeldUntilReplaced(t *testing.T) {
	game := &fakeGame{}
	host := NewChannelSession("host", 8)
	joiner := NewChannelSession("joiner", 8)
	m := NewOnlineMatch("m", "CODE42", "01-first-steps", game, host, joiner, 60)

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	in.Set(core.ActionPause)
	m.SendInput(Player2, in)

	m.runTick()
	m.runTick()

	stop := core.NewInputFrame()
	m.SendInput(Player2, stop)
	m.runTick()

	if len(game.inputs) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(game.inputs))
	}
	first, second, third := game.inputs[0].Player(Player2), game.inputs[1].Player(Player2), game.inputs[2].Player(Player2)
	if !first.Has(core.ActionRight) || !first.Has(core.ActionPause) {
		t.Errorf("first tick should see Right and Pause, got %v", first.Actions)
	}
	if !second.Has(core.ActionRight) || second.Has(core.ActionPause) {
		t.Errorf("second tick should keep Right and drop Pause, got %v", second.Actions)
	}
	if third.Has(core.ActionRight) {
		t.Error("a new empty frame should release Right")
	}
	if game.inputs[0].Player(Player1).Has(core.ActionRight) {
		t.Error("Player2 input leaked into Player1")
	}
}

func TestCoordinatorStopEndsMatches(t *testing.T) {
	f := newFixture(t, 0)
	f.start(t)

	f.coord.Stop()
	for _, s := range []*ChannelSession{f.host, f.joiner} {
		if ended := waitFor[MatchEndedEvent](t, s); ended.Reason != MatchEndReasonShutdown {
			t.Errorf("%s: reason = %v, want shutdown", s.ID(), ended.Reason)
		}
	}
	if f.coord.MatchCount() != 0 {
		t.Error("stopped coordinator should hold no matches")
	}
}

func TestCoordinatorLevelLoadFailure(t *testing.T) {
	host := NewChannelSession("host", 16)
	joiner := NewChannelSession("joiner", 16)
	reg := NewSessionRegistry()
	reg.Register(host)
	reg.Register(joiner)

	factory := func(levelID string, _ core.RuntimeConfig) (OnlineGame, error) {
		return nil, errors.New("no such level " + levelID)
	}
	coord := NewCoordinator(DefaultCoordinatorConfig(), factory, reg)
	coord.Start()
	t.Cleanup(coord.Stop)

	coord.Send(CreateLobbyMsg{SessionID: host.ID(), LevelID: "99-missing"})
	created := waitFor[LobbyCreatedEvent](t, host)
	coord.Send(JoinLobbyMsg{SessionID: joiner.ID(), Code: strings.ToLower(created.Code)})

	if e := waitFor[LobbyErrorEvent](t, joiner); e.Message != "Failed to load level" {
		t.Errorf("unexpected error %q", e.Message)
	}

	// Both sessions are free to try again
	coord.Send(CreateLobbyMsg{SessionID: joiner.ID(), LevelID: "01-first-steps"})
	if again := waitFor[LobbyCreatedEvent](t, joiner); again.LevelID != "01-first-steps" {
		t.Errorf("unexpected lobby %+v", again)
	}
	if coord.MatchCount() != 0 {
		t.Error("no match should be running")
	}
}

func TestCoordinatorJoinerLeavesLobby(t *testing.T) {
	c := NewCoordinator(DefaultCoordinatorConfig(), nil, NewSessionRegistry())
	host := NewChannelSession("host", 8)
	joiner := NewChannelSession("joiner", 8)
	lobby := &Lobby{Code: "ABC234", LevelID: "01-first-steps", Host: host, Joiner: joiner, CreatedAt: time.Now()}
	c.lobbies[lobby.Code] = lobby
	c.sessionLobby[host.ID()] = lobby.Code
	c.sessionLobby[joiner.ID()] = lobby.Code

	c.handleMessage(LeaveLobbyMsg{SessionID: joiner.ID(), Code: "abc234"})

	if lobby.Full() {
		t.Error("joiner seat should be free")
	}
	if c.LobbyCount() != 1 {
		t.Error("lobby should stay open for another joiner")
	}
	waitFor[LobbyPlayerLeftEvent](t, host)

	c.handleMessage(SessionDisconnectedMsg{SessionID: host.ID()})
	if c.LobbyCount() != 0 || len(c.sessionLobby) != 0 {
		t.Error("host leaving should close the lobby")
	}
}

func TestCoordinatorExpiresWaitingLobbies(t *testing.T) {
	c := NewCoordinator(DefaultCoordinatorConfig(), nil, NewSessionRegistry())
	host := NewChannelSession("host", 8)
	created := time.Now()
	c.lobbies["ABC234"] = &Lobby{Code: "ABC234", Host: host, CreatedAt: created}
	c.sessionLobby[host.ID()] = "ABC234"

	c.expireLobbies(created.Add(time.Minute))
	if c.LobbyCount() != 1 {
		t.Fatal("lobby expired too early")
	}

	c.expireLobbies(created.Add(3 * time.Minute))
	if c.LobbyCount() != 0 {
		t.Fatal("lobby should have expired")
	}
	if e := waitFor[LobbyErrorEvent](t, host); e.Message != "Lobby expired" {
		t.Errorf("unexpected error %q", e.Message)
	}
}

func TestGenerateJoinCode(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		code := generateJoinCode()
		if len(code) != JoinCodeLength {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		if strings.ContainsAny(code, "01IO") {
			t.Errorf("code %q has an ambiguous character", code)
		}
		if NormalizeJoinCode(" "+strings.ToLower(code)+" ") != code {
			t.Errorf("NormalizeJoinCode does not round trip %q", code)
		}
		seen[code] = true
	}
	if len(seen) < 95 {
		t.Errorf("only %d distinct codes out of 100", len(seen))
	}
}
