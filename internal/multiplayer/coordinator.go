package multiplayer

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/magmahydro/internal/core"
)

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // how long a lobby waits for a joiner
	CleanupPeriod time.Duration // how often expired lobbies are dropped
	TickRate      int           // simulation ticks per second

	// SnapshotEvery sends a snapshot every n ticks. The last tick of a
	// match is always sent.
	SnapshotEvery int
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		CleanupPeriod: 30 * time.Second,
		TickRate:      60,
		SnapshotEvery: 1,
	}
}

// GameFactory creates the run of a level for a match.
type GameFactory func(levelID string, cfg core.RuntimeConfig) (OnlineGame, error)

// MatchResultSaver persists finished matches. storage.Store implements it.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData is a finished match as it is stored.
type MatchResultData struct {
	MatchID       string
	LevelID       string
	HostSession   string
	JoinerSession string
	Completed     bool
	Ticks         int
	Deaths        int
	EndReason     string
	DurationSecs  int
}

// Coordinator pairs sessions through lobbies and owns the running matches.
// All requests arrive as messages on one goroutine; lookups by other
// goroutines go through mu.
type Coordinator struct {
	config      CoordinatorConfig
	gameFactory GameFactory
	sessions    *SessionRegistry
	resultSaver MatchResultSaver
	logger      *log.Logger

	mu      sync.RWMutex
	lobbies map[string]*Lobby
	matches map[MatchID]*OnlineMatch

	// A session is in at most one lobby or one match
	sessionLobby map[SessionID]string
	sessionMatch map[SessionID]MatchID

	msgChan  chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
}

// NewCoordinator creates a coordinator. Call Start before sending messages.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory, sessions *SessionRegistry) *Coordinator {
	if cfg.TickRate < 1 {
		cfg.TickRate = 60
	}
	if cfg.SnapshotEvery < 1 {
		cfg.SnapshotEvery = 1
	}
	return &Coordinator{
		config:       cfg,
		gameFactory:  factory,
		sessions:     sessions,
		logger:       log.New(io.Discard),
		lobbies:      make(map[string]*Lobby),
		matches:      make(map[MatchID]*OnlineMatch),
		sessionLobby: make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
		msgChan:      make(chan CoordinatorMessage, 256),
		done:         make(chan struct{}),
	}
}

// SetResultSaver stores every finished match with saver.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.resultSaver = saver
}

// SetLogger sets the logger for lobby and match lifecycle events.
func (c *Coordinator) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Start begins processing messages and expiring lobbies.
func (c *Coordinator) Start() {
	go c.processMessages()
	go c.cleanupLoop()
}

// Stop shuts the coordinator down and ends every running match. Safe to
// call more than once.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)

		c.mu.Lock()
		defer c.mu.Unlock()
		for id, match := range c.matches {
			match.Stop()
			match.broadcast(MatchEndedEvent{MatchID: id, Reason: MatchEndReasonShutdown})
			delete(c.matches, id)
		}
		for code, lobby := range c.lobbies {
			lobby.Host.Send(LobbyErrorEvent{Message: "Server is shutting down"})
			delete(c.lobbies, code)
		}
		clear(c.sessionLobby)
		clear(c.sessionMatch)
	})
}

// Send queues a message. It returns without effect once stopped.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgChan <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.handleCreateLobby(m)
	case JoinLobbyMsg:
		c.handleJoinLobby(m)
	case CancelLobbyMsg:
		c.leaveLobby(m.SessionID, NormalizeJoinCode(m.Code))
	case LeaveLobbyMsg:
		c.leaveLobby(m.SessionID, NormalizeJoinCode(m.Code))
	case LeaveMatchMsg:
		c.leaveMatch(m.SessionID, m.MatchID)
	case PlayerInputMsg:
		c.handlePlayerInput(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	}
}

func (c *Coordinator) handleCreateLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	if c.busy(msg.SessionID) {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	lobby := &Lobby{
		Code:      c.uniqueCode(),
		LevelID:   msg.LevelID,
		Host:      session,
		CreatedAt: time.Now(),
	}
	c.lobbies[lobby.Code] = lobby
	c.sessionLobby[msg.SessionID] = lobby.Code
	c.mu.Unlock()

	c.logger.Info("lobby created", "code", lobby.Code, "level", lobby.LevelID, "host", msg.SessionID)
	session.Send(LobbyCreatedEvent{Code: lobby.Code, LevelID: lobby.LevelID})
}

func (c *Coordinator) handleJoinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy(msg.SessionID) {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := NormalizeJoinCode(msg.Code)
	lobby, exists := c.lobbies[code]
	switch {
	case !exists:
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
		return
	case lobby.Full():
		session.Send(LobbyErrorEvent{Message: "Lobby is full"})
		return
	}

	lobby.Joiner = session
	c.sessionLobby[msg.SessionID] = code

	lobby.Host.Send(LobbyJoinedEvent{Code: code, Side: Player1, Partner: msg.SessionID})
	session.Send(LobbyJoinedEvent{Code: code, Side: Player2, Partner: lobby.Host.ID()})

	c.startMatch(lobby)
}

// busy reports whether a session is already in a lobby or match. Callers
// hold mu.
func (c *Coordinator) busy(id SessionID) bool {
	_, inLobby := c.sessionLobby[id]
	_, inMatch := c.sessionMatch[id]
	return inLobby || inMatch
}

// startMatch turns a full lobby into a running match. Callers hold mu.
func (c *Coordinator) startMatch(lobby *Lobby) {
	hostID, joinerID := lobby.Host.ID(), lobby.Joiner.ID()

	// The lobby is gone whether or not the match starts
	delete(c.lobbies, lobby.Code)
	delete(c.sessionLobby, hostID)
	delete(c.sessionLobby, joinerID)

	cfg := core.DefaultConfig()
	cfg.TickRate = c.config.TickRate

	game, err := c.gameFactory(lobby.LevelID, cfg)
	if err != nil {
		c.logger.Error("match could not start", "code", lobby.Code, "level", lobby.LevelID, "err", err)
		lobby.Host.Send(LobbyErrorEvent{Message: "Failed to load level"})
		lobby.Joiner.Send(LobbyErrorEvent{Message: "Failed to load level"})
		return
	}
	game.Reset(cfg)

	matchID := MatchID(fmt.Sprintf("match-%s-%d", lobby.Code, time.Now().UnixNano()))
	match := NewOnlineMatch(matchID, lobby.Code, lobby.LevelID, game, lobby.Host, lobby.Joiner, c.config.TickRate)
	match.snapshotEvery = c.config.SnapshotEvery

	c.matches[matchID] = match
	c.sessionMatch[hostID] = matchID
	c.sessionMatch[joinerID] = matchID

	for side, s := range match.seats {
		s.Send(MatchStartedEvent{MatchID: matchID, Side: side, Code: lobby.Code, LevelID: lobby.LevelID})
	}
	c.logger.Info("match started", "match", matchID, "level", lobby.LevelID, "magma", hostID, "water", joinerID)

	go match.Run(func(result MatchResult) {
		c.finishMatch(matchID, result)
	})
}

func (c *Coordinator) finishMatch(matchID MatchID, result MatchResult) {
	c.mu.Lock()
	match, exists := c.matches[matchID]
	if !exists {
		c.mu.Unlock()
		return
	}
	delete(c.matches, matchID)
	for _, s := range match.seats {
		delete(c.sessionMatch, s.ID())
	}
	c.mu.Unlock()

	c.logger.Info("match ended", "match", matchID, "reason", result.Reason.String(),
		"completed", result.Run.Completed, "ticks", result.Run.Ticks, "deaths", result.Run.Deaths)
	match.broadcast(MatchEndedEvent{MatchID: matchID, Reason: result.Reason, Run: result.Run})

	if c.resultSaver != nil {
		data := MatchResultData{
			MatchID:       string(matchID),
			LevelID:       match.LevelID(),
			HostSession:   string(match.seats[Player1].ID()),
			JoinerSession: string(match.seats[Player2].ID()),
			Completed:     result.Run.Completed,
			Ticks:         result.Run.Ticks,
			Deaths:        result.Run.Deaths,
			EndReason:     result.Reason.String(),
			DurationSecs:  int(result.Ticks / uint64(c.config.TickRate)), //nolint:gosec // TickRate is clamped positive
		}
		// Off the match goroutine; a slow disk must not hold up the next match
		go func() {
			if err := c.resultSaver.SaveMatchResult(data); err != nil {
				c.logger.Warn("could not save match result", "match", matchID, "err", err)
			}
		}()
	}
}

// leaveLobby removes a session from a lobby. A leaving host closes the
// lobby; a leaving joiner frees the seat for someone else.
func (c *Coordinator) leaveLobby(id SessionID, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, exists := c.lobbies[code]
	if !exists || !lobby.Has(id) {
		return
	}

	if lobby.Host.ID() == id {
		c.closeLobby(lobby, MatchEndReasonHostLeft)
		return
	}
	lobby.Joiner = nil
	delete(c.sessionLobby, id)
	lobby.Host.Send(LobbyPlayerLeftEvent{Code: code})
}

// closeLobby drops a lobby and tells a waiting joiner why. Callers hold mu.
func (c *Coordinator) closeLobby(lobby *Lobby, reason MatchEndReason) {
	if lobby.Joiner != nil {
		lobby.Joiner.Send(MatchEndedEvent{Reason: reason})
		delete(c.sessionLobby, lobby.Joiner.ID())
	}
	delete(c.sessionLobby, lobby.Host.ID())
	delete(c.lobbies, lobby.Code)
	c.logger.Debug("lobby closed", "code", lobby.Code, "reason", reason.String())
}

func (c *Coordinator) leaveMatch(id SessionID, matchID MatchID) {
	c.mu.RLock()
	match, exists := c.matches[matchID]
	c.mu.RUnlock()

	if exists {
		match.PlayerDisconnected(id)
	}
}

func (c *Coordinator) handlePlayerInput(msg PlayerInputMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists {
		match.SendInput(msg.Player, msg.Input)
	}
}

func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.mu.RLock()
	code, inLobby := c.sessionLobby[msg.SessionID]
	matchID, inMatch := c.sessionMatch[msg.SessionID]
	c.mu.RUnlock()

	if inLobby {
		c.leaveLobby(msg.SessionID, code)
	}
	if inMatch {
		c.leaveMatch(msg.SessionID, matchID)
	}
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			c.expireLobbies(now)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) expireLobbies(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, lobby := range c.lobbies {
		if lobby.Expired(now, c.config.LobbyTimeout) {
			lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			c.closeLobby(lobby, MatchEndReasonHostLeft)
		}
	}
}

// uniqueCode returns a join code no open lobby uses. Callers hold mu.
func (c *Coordinator) uniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// LobbyCount returns the number of open lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
