package tui

import (
	"maps"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/game"
	"github.com/vovakirdan/magmahydro/internal/multiplayer"
)

// OnlineGameModel is the client side of a co-op match. The server runs the
// simulation; this model sends the local character's input and draws the
// snapshots it receives onto a local copy of the level.
type OnlineGameModel struct {
	game        *game.Game
	screen      *core.Screen
	logger      *log.Logger
	config      core.RuntimeConfig
	matchID     multiplayer.MatchID
	sessionID   multiplayer.SessionID
	side        core.PlayerID
	coordinator *multiplayer.Coordinator
	keys        *KeyMapper
	input       *HeldInput
	lastSent    core.InputFrame
	loop        uint64

	ended      *multiplayer.MatchEndedEvent
	quitting   bool
	backToMenu bool
}

// NewOnlineGameModel creates the client for a started match. g must be a
// fresh game of the match's level.
func NewOnlineGameModel(
	g *game.Game,
	logger *log.Logger,
	cfg core.RuntimeConfig,
	matchID multiplayer.MatchID,
	sessionID multiplayer.SessionID,
	side core.PlayerID,
	coordinator *multiplayer.Coordinator,
	holdTicks int,
) OnlineGameModel {
	return OnlineGameModel{
		game:        g,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		logger:      logger,
		config:      cfg,
		matchID:     matchID,
		sessionID:   sessionID,
		side:        side,
		coordinator: coordinator,
		keys:        NewKeyMapper(),
		input:       NewHeldInput(holdTicks),
		lastSent:    core.NewInputFrame(),
		loop:        newTickLoop(),
	}
}

// Init starts the input loop.
func (m OnlineGameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages.
func (m OnlineGameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	case multiplayer.SnapshotEvent:
		if msg.MatchID != m.matchID {
			return m, nil
		}
		if snap, ok := msg.Snapshot.(game.Snapshot); ok && !m.game.ApplySnapshot(snap) {
			m.logger.Warn("snapshot for another level", "match", m.matchID, "level", snap.LevelID)
		}
	case multiplayer.MatchEndedEvent:
		if msg.MatchID == m.matchID {
			m.ended = &msg
			m.logger.Info("match ended", "match", m.matchID, "reason", msg.Reason.String(),
				"completed", msg.Run.Completed, "ticks", msg.Run.Ticks, "deaths", msg.Run.Deaths)
		}
	}
	return m, nil
}

func (m OnlineGameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Both key sets drive this session's character
	_, action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.leave()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.leave()
		m.backToMenu = true
		return m, nil
	}

	if m.ended != nil {
		if msg.String() == "enter" {
			m.backToMenu = true
		}
		return m, nil
	}
	m.input.Press(m.side, action)
	return m, nil
}

func (m OnlineGameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.ended != nil || m.backToMenu || m.quitting {
		return m, nil
	}

	frame := m.input.Frame().Player(m.side)
	if frame.HasOneShot() || !maps.Equal(frame.Actions, m.lastSent.Actions) {
		m.coordinator.Send(multiplayer.PlayerInputMsg{
			MatchID: m.matchID,
			Player:  m.side,
			Input:   frame,
		})
		// The server keeps held actions until the next frame arrives
		m.lastSent = frame.Clone()
		m.lastSent.DropOneShots()
	}
	return m, tickCmd(m.config.TickRate, m.loop)
}

// leave ends the match for this session while it is still running.
func (m OnlineGameModel) leave() {
	if m.ended != nil {
		return
	}
	m.coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: m.sessionID, MatchID: m.matchID})
}

// View renders the latest snapshot.
func (m OnlineGameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.ended != nil {
		line := m.ended.Reason.String() + "  |  Enter: levels"
		m.screen.DrawTextCenteredColored(m.screen.Height()-1, line, core.ColorNotice)
	}
	return RenderScreen(m.screen)
}

// Ended returns the end event, or nil while the match runs.
func (m OnlineGameModel) Ended() *multiplayer.MatchEndedEvent {
	return m.ended
}

// IsQuitting returns true if user requested to quit entirely.
func (m OnlineGameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level select.
func (m OnlineGameModel) BackToMenu() bool {
	return m.backToMenu
}
