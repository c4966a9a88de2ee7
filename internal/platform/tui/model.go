package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/game"
	"github.com/vovakirdan/magmahydro/internal/level"
	"github.com/vovakirdan/magmahydro/internal/multiplayer"
	"github.com/vovakirdan/magmahydro/internal/storage"
)

// GameModel plays one level locally with both characters on one keyboard.
type GameModel struct {
	game   *game.Game
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	config core.RuntimeConfig
	keys   *KeyMapper
	input  *HeldInput
	state  core.GameState
	loop   uint64

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a play screen for g. holdTicks is how long a key
// press keeps a movement action held.
func NewGameModel(g *game.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, holdTicks int) GameModel {
	return GameModel{
		game:   g,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		logger: logger,
		config: cfg,
		keys:   NewKeyMapper(),
		input:  NewHeldInput(holdTicks),
		loop:   newTickLoop(),
	}
}

// Init starts the level and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("level started", "level", m.game.ID())
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	id, action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		return m, nil
	}
	m.input.Press(id, action)
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	in := m.input.Frame()
	if in.Any(core.ActionRestart) {
		m.input.Reset()
	}

	res := m.game.Step(in)
	m.state = res.State

	if res.JustCompleted {
		m.saveClear()
	}
	if m.state.GameOver {
		m.backToMenu = true
		return m, nil
	}
	return m, tickCmd(m.config.TickRate, m.loop)
}

// saveClear records the finished run. Failures are logged only.
func (m GameModel) saveClear() {
	s := m.state
	m.logger.Info("level complete", "level", s.LevelID, "ticks", s.Ticks, "deaths", s.Deaths)
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveClear(s.LevelID, s.Ticks, s.Deaths, multiplayer.MatchModeLocal); err != nil {
		m.logger.Error("could not save clear", "level", s.LevelID, "err", err)
	}
}

// ReplaceLevel swaps in an edited level file and restarts on it.
func (m GameModel) ReplaceLevel(lvl *level.Level) GameModel {
	if lvl.ID != m.game.ID() {
		return m
	}
	if err := m.game.ReplaceLevel(lvl); err != nil {
		m.logger.Warn("reloaded level rejected", "level", lvl.ID, "err", err)
		return m
	}
	m.input.Reset()
	m.state = m.game.State()
	m.logger.Info("level reloaded", "level", lvl.ID, "file", lvl.FilePath)
	return m
}

// saveScreenshot writes the current frame as plain text under
// ~/.magmahydro/screenshots.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".magmahydro", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the run state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the run ended or the user left it.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
