package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/magmahydro/internal/core"
)

// colorStyles maps what a cell shows to a terminal color.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorStone:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorLava:         lipgloss.NewStyle().Foreground(lipgloss.Color("202")),
	core.ColorWater:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	core.ColorGoo:          lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
	core.ColorPlate:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorPlatePressed: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorGate:         lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	core.ColorMagma:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorHydro:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorNotice:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorFaint:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// Text styles shared by the menu, lobby and records screens.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	magmaStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	waterStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	codeStyle  = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 2)
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color share a single escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers a possibly styled line within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// title renders the game banner with each character in its color.
func title() string {
	return magmaStyle.Render("MAGMA BOY") + titleStyle.Render("  &  ") + waterStyle.Render("HYDRO GIRL")
}
