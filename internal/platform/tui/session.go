package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/magmahydro/internal/config"
	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/game"
	"github.com/vovakirdan/magmahydro/internal/level"
	"github.com/vovakirdan/magmahydro/internal/multiplayer"
	"github.com/vovakirdan/magmahydro/internal/storage"
)

// SessionOptions wires a session to the services it may use. Only Source
// is required.
type SessionOptions struct {
	Source  *level.Source
	Config  config.GameConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store
	Logger  *log.Logger

	// Watcher reloads the level being played when its file changes.
	Watcher *level.Watcher

	// Coordinator and Session enable online co-op.
	Coordinator *multiplayer.Coordinator
	Session     *multiplayer.ChannelSession

	// StartLevel skips the level select for the first run.
	StartLevel string
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenRecords
	screenLobby
	screenOnline
)

// levelChangedMsg reports an edited level file.
type levelChangedMsg struct{ path string }

// watchErrMsg reports a failure of the level watcher.
type watchErrMsg struct{ err error }

// SessionModel manages the whole flow of one player: level select, play,
// records and online co-op. Local play and every SSH connection each run
// one.
type SessionModel struct {
	opts   SessionOptions
	config core.RuntimeConfig
	screen sessionScreen

	menu    MenuModel
	game    GameModel
	records RecordsModel
	lobby   OnlineLobbyModel
	online  OnlineGameModel

	lastLevel string
	startCmd  tea.Cmd
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Runtime.TickRate == 0 {
		opts.Runtime = core.DefaultConfig()
	}
	if opts.Config == (config.GameConfig{}) {
		opts.Config = config.DefaultConfig()
	}

	m := SessionModel{opts: opts, config: opts.Runtime}
	m = m.showMenu()
	if opts.StartLevel != "" {
		var cmd tea.Cmd
		m, cmd = m.startGame(opts.StartLevel)
		m.startCmd = cmd
	}
	return m
}

func (m SessionModel) onlineEnabled() bool {
	return m.opts.Coordinator != nil && m.opts.Session != nil
}

// Init starts the first screen and the background listeners.
func (m SessionModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startCmd}
	if m.opts.Watcher != nil {
		cmds = append(cmds, waitForLevelChange(m.opts.Watcher))
	}
	if m.onlineEnabled() {
		cmds = append(cmds, waitForEvent(m.opts.Session))
	}
	return tea.Batch(cmds...)
}

func waitForLevelChange(w *level.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return levelChangedMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case levelChangedMsg:
		m = m.reloadLevel(msg.path)
		return m, waitForLevelChange(m.opts.Watcher)

	case watchErrMsg:
		m.opts.Logger.Warn("level watcher", "err", msg.err)
		return m, waitForLevelChange(m.opts.Watcher)

	case multiplayer.SessionEvent:
		next := waitForEvent(m.opts.Session)
		var cmd tea.Cmd
		switch m.screen {
		case screenLobby:
			m, cmd = m.updateLobby(msg)
		case screenOnline:
			m, cmd = m.updateOnline(msg)
		}
		return m, tea.Batch(cmd, next)
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenRecords:
		return m.updateRecords(msg)
	case screenLobby:
		return m.updateLobby(msg)
	case screenOnline:
		return m.updateOnline(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (SessionModel, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRecords():
		return m.showRecords()

	case m.menu.WantsOnline():
		item := m.menu.Selected()
		m.lastLevel = item.LevelID
		m.lobby = NewOnlineLobbyModel(item.LevelID, item.Title, m.opts.Session.ID(), m.opts.Coordinator,
			m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLobby
		return m, m.lobby.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().LevelID)
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (SessionModel, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.showMenu(), nil
	}
	return m, cmd
}

func (m SessionModel) updateRecords(msg tea.Msg) (SessionModel, tea.Cmd) {
	newModel, cmd := m.records.Update(msg)
	if recordsModel, ok := newModel.(RecordsModel); ok {
		m.records = recordsModel
	}

	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.records.IsGoingBack() {
		return m.showMenu(), nil
	}
	return m, cmd
}

func (m SessionModel) updateLobby(msg tea.Msg) (SessionModel, tea.Cmd) {
	newModel, cmd := m.lobby.Update(msg)
	if lobbyModel, ok := newModel.(OnlineLobbyModel); ok {
		m.lobby = lobbyModel
	}

	switch {
	case m.lobby.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.lobby.BackToMenu():
		return m.showMenu(), nil
	case m.lobby.State() == OnlineStateInMatch:
		return m.startOnline()
	}
	return m, cmd
}

func (m SessionModel) updateOnline(msg tea.Msg) (SessionModel, tea.Cmd) {
	newModel, cmd := m.online.Update(msg)
	if onlineModel, ok := newModel.(OnlineGameModel); ok {
		m.online = onlineModel
	}

	if m.online.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.online.BackToMenu() {
		return m.showMenu(), nil
	}
	return m, cmd
}

// showMenu returns to the level select with fresh best times.
func (m SessionModel) showMenu() SessionModel {
	m.menu = NewMenuModel(m.opts.Source, m.opts.Store, m.config, m.onlineEnabled())
	m.menu.SetCursor(m.lastLevel)
	m.screen = screenMenu
	return m
}

func (m SessionModel) showRecords() (SessionModel, tea.Cmd) {
	levels, err := m.opts.Source.Levels()
	if err != nil {
		m = m.showMenu()
		m.menu.SetNotice("Could not load levels: " + err.Error())
		return m, nil
	}
	startLevel := m.lastLevel
	if len(m.menu.items) > 0 {
		startLevel = m.menu.items[m.menu.Cursor()].LevelID
	}
	m.records = NewRecordsModel(levels, m.opts.Store, m.config.TickRate, m.config.ScreenW, m.config.ScreenH, startLevel)
	m.screen = screenRecords
	return m, m.records.Init()
}

// newGame loads a level and builds a run of it.
func (m SessionModel) newGame(levelID string) (*game.Game, error) {
	lvl, err := m.opts.Source.ByID(levelID)
	if err != nil {
		return nil, err
	}
	return game.New(lvl, m.opts.Config)
}

func (m SessionModel) startGame(levelID string) (SessionModel, tea.Cmd) {
	m.lastLevel = levelID
	g, err := m.newGame(levelID)
	if err != nil {
		m.opts.Logger.Error("could not start level", "level", levelID, "err", err)
		m = m.showMenu()
		m.menu.SetNotice(err.Error())
		return m, nil
	}

	m.game = NewGameModel(g, m.opts.Store, m.opts.Logger, m.config, m.opts.Config.Play.InputHoldTicks)
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) startOnline() (SessionModel, tea.Cmd) {
	levelID := m.lobby.MatchLevelID()
	g, err := m.newGame(levelID)
	if err != nil {
		// The server found the level but this client cannot build it
		m.opts.Logger.Error("could not join match", "level", levelID, "err", err)
		m.opts.Coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: m.opts.Session.ID(), MatchID: m.lobby.MatchID()})
		m = m.showMenu()
		m.menu.SetNotice(err.Error())
		return m, nil
	}

	m.lastLevel = levelID
	m.online = NewOnlineGameModel(g, m.opts.Logger, m.config, m.lobby.MatchID(), m.opts.Session.ID(),
		m.lobby.Side(), m.opts.Coordinator, m.opts.Config.Play.InputHoldTicks)
	m.screen = screenOnline
	m.opts.Logger.Info("match joined", "match", m.lobby.MatchID(), "level", levelID, "side", m.lobby.Side().String())
	return m, m.online.Init()
}

// reloadLevel applies an edited level file to the current screen.
func (m SessionModel) reloadLevel(path string) SessionModel {
	lvl, err := m.opts.Source.Reload(path)
	if err != nil {
		m.opts.Logger.Warn("level reload failed", "file", path, "err", err)
		if m.screen == screenMenu {
			m.menu.SetNotice(err.Error())
		}
		return m
	}

	switch m.screen {
	case screenGame:
		m.game = m.game.ReplaceLevel(lvl)
	case screenMenu:
		m = m.showMenu()
	}
	return m
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenRecords:
		return m.records.View()
	case screenLobby:
		return m.lobby.View()
	case screenOnline:
		return m.online.View()
	}
	return m.menu.View()
}

// Run plays locally in the current terminal until the user quits.
func Run(opts SessionOptions) error {
	p := tea.NewProgram(NewSessionModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
