package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/multiplayer"
	"github.com/vovakirdan/magmahydro/internal/world"
)

// OnlineState represents the current state of the online lobby flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for a partner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInMatch                          // Match started
)

// OnlineLobbyModel hosts or joins a co-op lobby. The host picks the level;
// the joiner learns it when the match starts.
type OnlineLobbyModel struct {
	state       OnlineState
	width       int
	height      int
	levelID     string
	levelName   string
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator

	lobbyCode     string
	joinCodeInput string
	lobbyError    string
	partnerLeft   bool

	matchID      multiplayer.MatchID
	matchLevelID string
	side         core.PlayerID

	backToMenu bool
	quitting   bool
}

// NewOnlineLobbyModel creates a lobby screen for hosting levelID.
func NewOnlineLobbyModel(
	levelID, levelName string,
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	width, height int,
) OnlineLobbyModel {
	return OnlineLobbyModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		levelID:     levelID,
		levelName:   levelName,
		sessionID:   sessionID,
		coordinator: coordinator,
	}
}

// Init initializes the lobby model. Coordinator events are read by the
// session model and forwarded here.
func (m OnlineLobbyModel) Init() tea.Cmd {
	return nil
}

// waitForEvent returns a command that delivers the next coordinator event.
func waitForEvent(s *multiplayer.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		evt, ok := s.Next(context.Background())
		if !ok {
			return nil
		}
		return evt
	}
}

// Update handles messages.
func (m OnlineLobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = msg.Code
		m.state = OnlineStateHostWaiting
		return m, nil
	case multiplayer.LobbyJoinedEvent:
		m.side = msg.Side
		m.partnerLeft = false
		return m, nil
	case multiplayer.LobbyErrorEvent:
		m.lobbyError = msg.Message
		if m.state == OnlineStateJoinWaiting {
			m.state = OnlineStateJoinEnterCode
		}
		return m, nil
	case multiplayer.LobbyPlayerLeftEvent:
		m.partnerLeft = true
		return m, nil
	case multiplayer.MatchStartedEvent:
		m.matchID = msg.MatchID
		m.matchLevelID = msg.LevelID
		m.side = msg.Side
		m.state = OnlineStateInMatch
		return m, nil
	case multiplayer.MatchEndedEvent:
		// The host left before the match started
		m.lobbyError = msg.Reason.String()
		m.state = OnlineStateJoinEnterCode
		return m, nil
	}
	return m, nil
}

func (m OnlineLobbyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting, OnlineStateJoinWaiting:
		return m.handleWaitingKey(msg)
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	}
	return m, nil
}

func (m OnlineLobbyModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.lobbyError = ""
		m.coordinator.Send(multiplayer.CreateLobbyMsg{
			SessionID: m.sessionID,
			LevelID:   m.levelID,
		})
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinCodeInput = ""
		m.lobbyError = ""
	case "esc", "b":
		m.backToMenu = true
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineLobbyModel) handleWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		if m.state == OnlineStateHostWaiting {
			m.backToMenu = true
			return m, nil
		}
		m.state = OnlineStateJoinEnterCode
	case "q":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineLobbyModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		m.backToMenu = true
	case "enter":
		if len(m.joinCodeInput) == multiplayer.JoinCodeLength {
			m.state = OnlineStateJoinWaiting
			m.lobbyError = ""
			m.coordinator.Send(multiplayer.JoinLobbyMsg{
				SessionID: m.sessionID,
				Code:      m.joinCodeInput,
			})
		}
	case "backspace":
		if m.joinCodeInput != "" {
			m.joinCodeInput = m.joinCodeInput[:len(m.joinCodeInput)-1]
		}
	default:
		c := multiplayer.NormalizeJoinCode(key)
		if len(c) == 1 && len(m.joinCodeInput) < multiplayer.JoinCodeLength && isCodeChar(c[0]) {
			m.joinCodeInput += c
		}
	}
	return m, nil
}

func isCodeChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// leave cancels a hosted lobby or leaves a joined one.
func (m OnlineLobbyModel) leave() {
	switch m.state {
	case OnlineStateHostWaiting:
		m.coordinator.Send(multiplayer.CancelLobbyMsg{SessionID: m.sessionID, Code: m.lobbyCode})
	case OnlineStateJoinWaiting:
		m.coordinator.Send(multiplayer.LeaveLobbyMsg{SessionID: m.sessionID, Code: m.joinCodeInput})
	}
}

// View renders the current state.
func (m OnlineLobbyModel) View() string {
	if m.quitting {
		return ""
	}

	var lines []string
	switch m.state {
	case OnlineStateChooseMode:
		lines = []string{
			titleStyle.Render("ONLINE CO-OP"),
			"",
			"Level: " + m.levelName,
			"",
			"[H] Host this level as " + magmaStyle.Render("Magma Boy"),
			"[J] Join a partner as " + waterStyle.Render("Hydro Girl"),
		}
	case OnlineStateHostWaiting:
		lines = []string{
			titleStyle.Render("HOSTING " + strings.ToUpper(m.levelName)),
			"",
			"Share this code with your partner:",
			"",
			codeStyle.Render(m.lobbyCode),
			"",
			"Waiting for Hydro Girl to join...",
		}
		if m.partnerLeft {
			lines = append(lines, hintStyle.Render("Your partner left the lobby."))
		}
	case OnlineStateJoinEnterCode:
		code := m.joinCodeInput
		if n := len(code); n < multiplayer.JoinCodeLength {
			code += "_" + strings.Repeat(" ", multiplayer.JoinCodeLength-n-1)
		}
		lines = []string{
			titleStyle.Render("JOIN A PARTNER"),
			"",
			"Enter the lobby code:",
			"",
			fmt.Sprintf("[ %s ]", code),
		}
	case OnlineStateJoinWaiting:
		lines = []string{
			titleStyle.Render("CONNECTING"),
			"",
			"Joining lobby " + m.joinCodeInput + "...",
		}
	case OnlineStateInMatch:
		lines = []string{titleStyle.Render("MATCH STARTING"), "", "You are " + sideName(m.side)}
	}

	if m.lobbyError != "" {
		lines = append(lines, "", errorStyle.Render("Error: "+m.lobbyError))
	}
	lines = append(lines, "", hintStyle.Render(m.controls()))

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(centerText(l, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m OnlineLobbyModel) controls() string {
	switch m.state {
	case OnlineStateJoinEnterCode:
		return "Enter: Connect  |  Esc: Back"
	case OnlineStateHostWaiting, OnlineStateJoinWaiting:
		return "Esc: Cancel  |  Q: Quit"
	}
	return "Esc: Back  |  Q: Quit"
}

func sideName(id core.PlayerID) string {
	t := world.ControlledBy(id)
	if t == world.PlayerWater {
		return waterStyle.Render(t.DisplayName())
	}
	return magmaStyle.Render(t.DisplayName())
}

// State returns the current online state.
func (m OnlineLobbyModel) State() OnlineState {
	return m.state
}

// BackToMenu returns true if user wants to go back to the level select.
func (m OnlineLobbyModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineLobbyModel) IsQuitting() bool {
	return m.quitting
}

// MatchID returns the match ID if a match was started.
func (m OnlineLobbyModel) MatchID() multiplayer.MatchID {
	return m.matchID
}

// MatchLevelID returns the level the started match plays.
func (m OnlineLobbyModel) MatchLevelID() string {
	return m.matchLevelID
}

// Side returns which character this session plays.
func (m OnlineLobbyModel) Side() core.PlayerID {
	return m.side
}

// LobbyCode returns the lobby code.
func (m OnlineLobbyModel) LobbyCode() string {
	return m.lobbyCode
}
