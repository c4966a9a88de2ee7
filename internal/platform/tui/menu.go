package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/game"
	"github.com/vovakirdan/magmahydro/internal/level"
	"github.com/vovakirdan/magmahydro/internal/storage"
)

// MenuItem is one selectable level.
type MenuItem struct {
	LevelID string
	Title   string
	Best    *storage.LevelStats // nil until the level is cleared
}

// MenuModel is the level select screen.
type MenuModel struct {
	items     []MenuItem
	loadErr   error
	notice    string
	cursor    int
	width     int
	height    int
	tickRate  int
	online    bool
	keyMapper *KeyMapper

	quitting    bool
	selected    *MenuItem
	wantRecords bool
	wantOnline  bool
}

// NewMenuModel lists the levels of src with their best clears from store.
// online enables the Online entry.
func NewMenuModel(src *level.Source, store *storage.Store, cfg core.RuntimeConfig, online bool) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		tickRate:  cfg.TickRate,
		online:    online,
		keyMapper: NewKeyMapper(),
	}

	levels, err := src.Levels()
	if err != nil {
		m.loadErr = err
		return m
	}

	var stats map[string]*storage.LevelStats
	if store != nil {
		// Missing stats only hide best times
		stats, _ = store.AllLevelStats()
	}

	m.items = make([]MenuItem, 0, len(levels))
	for _, l := range levels {
		m.items = append(m.items, MenuItem{LevelID: l.ID, Title: l.Name, Best: stats[l.ID]})
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = wrapIndex(m.cursor-1, len(m.items))

	case MenuActionDown:
		m.cursor = wrapIndex(m.cursor+1, len(m.items))

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionRecords:
		m.wantRecords = true

	case MenuActionOnline:
		if m.online && len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.wantOnline = true
		}
	}
	return m, nil
}

// wrapIndex moves past either end of the list to the other end.
func wrapIndex(i, n int) int {
	switch {
	case n == 0:
		return 0
	case i < 0:
		return n - 1
	case i >= n:
		return 0
	}
	return i
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(title(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(centerText(errorStyle.Render("Could not load levels: "+m.loadErr.Error()), m.width))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(centerText(errorStyle.Render(m.notice), m.width))
		b.WriteString("\n\n")
	}

	nameWidth := 0
	for _, item := range m.items {
		nameWidth = max(nameWidth, len(item.Title))
	}
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		best := "--:--.-"
		if item.Best != nil && item.Best.Clears > 0 {
			best = game.FormatTicks(item.Best.BestTicks, m.tickRate)
		}
		line := fmt.Sprintf("%s%d. %-*s  %s", cursor, i+1, nameWidth, item.Title, best)
		if i == m.cursor {
			line = titleStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Records  |  Q: Quit"
	if m.online {
		controls = "Up/Down: Navigate  |  Enter: Play  |  O: Online  |  Tab: Records  |  Q: Quit"
	}
	b.WriteString(centerText(hintStyle.Render(controls), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(hintStyle.Render("Magma Boy: A/D/W   Hydro Girl: ←/→/↑"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Cursor returns the highlighted index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// SetCursor highlights the level with the given id, if listed.
func (m *MenuModel) SetCursor(levelID string) {
	for i, item := range m.items {
		if item.LevelID == levelID {
			m.cursor = i
			return
		}
	}
}

// SetNotice shows a one-line message above the list.
func (m *MenuModel) SetNotice(notice string) {
	m.notice = notice
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records screen.
func (m MenuModel) WantsRecords() bool {
	return m.wantRecords
}

// WantsOnline returns true if user asked to play the selected level online.
func (m MenuModel) WantsOnline() bool {
	return m.wantOnline
}
