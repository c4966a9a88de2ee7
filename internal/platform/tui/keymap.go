package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/magmahydro/internal/core"
)

// GameKeyMap holds the play screen bindings. Both characters share one
// keyboard locally: WASD moves Magma Boy, the arrows move Hydro Girl.
type GameKeyMap struct {
	MagmaLeft  key.Binding
	MagmaRight key.Binding
	MagmaJump  key.Binding
	WaterLeft  key.Binding
	WaterRight key.Binding
	WaterJump  key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.MagmaLeft, k.MagmaRight, k.MagmaJump},
		{k.WaterLeft, k.WaterRight, k.WaterJump},
		{k.Pause, k.Restart, k.Screenshot},
		{k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		MagmaLeft:  key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "magma left")),
		MagmaRight: key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "magma right")),
		MagmaJump:  key.NewBinding(key.WithKeys("w", "W"), key.WithHelp("w", "magma jump")),
		WaterLeft:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "water left")),
		WaterRight: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "water right")),
		WaterJump:  key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "water jump")),
		Pause:      key.NewBinding(key.WithKeys("p", "P"), key.WithHelp("p", "pause")),
		Restart:    key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "restart")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "levels")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key to the player it belongs to and an action.
// Pause, Restart, Back and Quit are not tied to a character and report
// Player1. Unbound keys return ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.PlayerID, core.Action) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.Player1, core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.Player1, core.ActionBack
	case key.Matches(msg, k.Pause):
		return core.Player1, core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.Player1, core.ActionRestart

	case key.Matches(msg, k.MagmaLeft):
		return core.Player1, core.ActionLeft
	case key.Matches(msg, k.MagmaRight):
		return core.Player1, core.ActionRight
	case key.Matches(msg, k.MagmaJump):
		return core.Player1, core.ActionJump

	case key.Matches(msg, k.WaterLeft):
		return core.Player2, core.ActionLeft
	case key.Matches(msg, k.WaterRight):
		return core.Player2, core.ActionRight
	case key.Matches(msg, k.WaterJump):
		return core.Player2, core.ActionJump
	}
	return core.Player1, core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionRecords
	MenuActionOnline
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionRecords
	case "o":
		return MenuActionOnline
	}
	return MenuActionNone
}
