package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/magmahydro/internal/game"
	"github.com/vovakirdan/magmahydro/internal/level"
	"github.com/vovakirdan/magmahydro/internal/storage"
)

// Records layout constants
const (
	minWidthForSidebar = 80
	sidebarWidth       = 24
	maxRecords         = 100
)

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordsModel shows the fastest clears of each level.
type RecordsModel struct {
	levels      []*level.Level
	cursor      int
	store       *storage.Store
	tickRate    int
	clears      []storage.ClearEntry
	stats       *storage.LevelStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRecordsModel creates the records screen, starting at startLevel when
// it is one of levels.
func NewRecordsModel(levels []*level.Level, store *storage.Store, tickRate, width, height int, startLevel string) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		levels:      levels,
		store:       store,
		tickRate:    tickRate,
		keys:        DefaultRecordsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, l := range levels {
		if l.ID == startLevel {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.load()
	return m
}

func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Time", Width: 9},
		{Title: "Deaths", Width: 7},
		{Title: "Mode", Width: 7},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the clears of the selected level.
func (m *RecordsModel) load() {
	m.clears, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.levels) > 0 {
		id := m.levels[m.cursor].ID
		m.clears, m.loadErr = m.store.BestClears(id, maxRecords)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetLevelStats(id)
		}
	}
	m.updateTableRows()
}

func (m *RecordsModel) updateTableRows() {
	rows := make([]table.Row, len(m.clears))
	for i, c := range m.clears {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			game.FormatTicks(c.Ticks, m.tickRate),
			fmt.Sprintf("%d", c.Deaths),
			c.Mode,
			c.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextLevel):
			if len(m.levels) > 0 {
				m.cursor = wrapIndex(m.cursor+1, len(m.levels))
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			if len(m.levels) > 0 {
				m.cursor = wrapIndex(m.cursor-1, len(m.levels))
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	heading := "RECORDS"
	if len(m.levels) > 0 {
		heading = "RECORDS - " + m.levels[m.cursor].Name
	}
	b.WriteString(titleStyle.Render(centerText(heading, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	if summary := m.summary(); summary != "" {
		b.WriteString(hintStyle.Render(summary))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary describes the level's aggregate stats.
func (m RecordsModel) summary() string {
	if m.stats == nil || m.stats.Clears == 0 {
		return ""
	}
	return fmt.Sprintf("%d clears  |  best %s  |  average %s  |  fewest deaths %d  |  last %s",
		m.stats.Clears,
		game.FormatTicks(m.stats.BestTicks, m.tickRate),
		game.FormatTicks(int(m.stats.AvgTicks), m.tickRate),
		m.stats.FewestDeaths,
		m.stats.LastCleared.Format("Jan 02 15:04"),
	)
}

func (m RecordsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, l := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := l.Name
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

func (m RecordsModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.levels) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %d/%d %s >", m.cursor+1, len(m.levels), m.levels[m.cursor].Name), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

func (m RecordsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Records are unavailable:\nthe database could not be opened.")
	case m.loadErr != nil:
		return errorStyle.Padding(2, 4).Render("Could not load records:\n" + m.loadErr.Error())
	case len(m.clears) == 0:
		return emptyStyle.Render("No clears recorded yet.\nGet both characters through their doors!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the level select.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}
