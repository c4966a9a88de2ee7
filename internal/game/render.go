package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
	"github.com/vovakirdan/magmahydro/internal/world"
)

// hudHeight is the number of rows above the board.
const hudHeight = 2

// viewport maps world units to screen cells. A tile is 2*scale columns by
// scale rows so the board keeps roughly square tiles in a terminal.
type viewport struct {
	x, y     int
	scale    int
	tooSmall bool
}

func (v viewport) col(wx int) int { return v.x + wx*2*v.scale/level.TileSize }
func (v viewport) row(wy int) int { return v.y + wy*v.scale/level.TileSize }

// cells returns the screen cells covered by a world rect.
func (v viewport) cells(r core.Rect) core.Rect {
	if r.Empty() {
		return core.Rect{}
	}
	x0, y0 := v.col(r.X), v.row(r.Y)
	x1, y1 := v.col(r.Right()-1)+1, v.row(r.Bottom()-1)+1
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// layout letterboxes the board into the screen below the HUD, scaling by
// whole cells.
func (g *Game) layout() {
	cols := g.world.Board.Width() * 2
	rows := g.world.Board.Height()
	availW := g.rt.ScreenW
	availH := g.rt.ScreenH - hudHeight

	fit := core.Fit(cols, rows, availW, availH)
	scale := fit.W / cols
	if scale < 1 {
		g.view = viewport{tooSmall: true}
		return
	}
	g.view = viewport{
		x:     (availW - cols*scale) / 2,
		y:     hudHeight + (availH-rows*scale)/2,
		scale: scale,
	}
}

// MinSize returns the smallest screen that shows the whole board.
func (g *Game) MinSize() (int, int) {
	return g.world.Board.Width() * 2, g.world.Board.Height() + hudHeight
}

// Render draws the run into the screen. The screen is cleared first.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.view.tooSmall {
		w, h := g.MinSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	g.renderBoard(dst)
	g.renderDoors(dst)
	g.renderGates(dst)
	g.renderPlayers(dst)

	switch {
	case g.gameOver && g.completed:
		g.renderOverlay(dst, "Level complete!", fmt.Sprintf("%s  Deaths: %d", FormatTicks(g.elapsed, g.rt.TickRate), g.world.Deaths))
	case g.gameOver:
		g.renderOverlay(dst, "Run abandoned", "Press R to restart")
	case g.completed:
		g.renderOverlay(dst, "Both doors open!", FormatTicks(g.elapsed, g.rt.TickRate))
	case g.flash > 0:
		g.renderOverlay(dst, "Ouch!", "Back to the start")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  |  Time %s  Deaths %d",
		g.lvl.Name, FormatTicks(g.elapsed, g.rt.TickRate), g.world.Deaths)
	dst.DrawText(0, 0, hud)
	dst.DrawTextRight(0, 0, g.mechanismSummary(), core.ColorDefault)

	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorFaint)
	}
	for _, d := range g.world.Doors {
		if d.IsOpen() {
			continue
		}
		if d.PlayerAtDoor {
			label := fmt.Sprintf("%s door %3.0f%%", d.Owner.DisplayName(), d.Progress()*100)
			dst.DrawTextRight(0, 1, label, playerColor(d.Owner))
			break
		}
	}
}

// mechanismSummary counts the open gates and doors.
func (g *Game) mechanismSummary() string {
	ms := g.world.Mechanisms()
	open := 0
	for _, m := range ms {
		if m.IsOpen() {
			open++
		}
	}
	return fmt.Sprintf("Open %d/%d ", open, len(ms))
}

var tileGlyphs = map[level.Tile]core.Cell{
	level.TileSolid: {Rune: '█', Color: core.ColorStone},
	level.TileLava:  {Rune: '≈', Color: core.ColorLava},
	level.TileWater: {Rune: '≈', Color: core.ColorWater},
	level.TileGoo:   {Rune: '≈', Color: core.ColorGoo},
}

func (g *Game) renderBoard(dst *core.Screen) {
	b := g.world.Board
	for ty := range b.Height() {
		for tx := range b.Width() {
			cell, ok := tileGlyphs[b.TileAt(tx, ty)]
			if !ok {
				continue
			}
			r := level.TileRect(tx, ty)
			if b.TileAt(tx, ty).IsPool() {
				// Pools fill the lower half of their tile
				r = core.NewRect(r.X, r.Y+r.H/2, r.W, r.H/2)
			}
			dst.DrawRectColored(g.view.cells(r), cell.Rune, cell.Color)
		}
	}
}

func (g *Game) renderGates(dst *core.Screen) {
	for _, gt := range g.world.Gates {
		plateColor := core.ColorPlate
		if gt.PlateIsPressed {
			plateColor = core.ColorPlatePressed
		}
		for _, p := range gt.Plates() {
			dst.DrawRectColored(g.view.cells(p), '▔', plateColor)
		}
		dst.DrawRectColored(g.view.cells(gt.Rect()), '▒', core.ColorGate)
	}
}

func (g *Game) renderDoors(dst *core.Screen) {
	for _, d := range g.world.Doors {
		frame := g.view.cells(d.Rect())
		color := playerColor(d.Owner)
		dst.DrawRectColored(frame, ' ', color)
		dst.DrawRectColored(core.NewRect(frame.X, frame.Y, 1, frame.H), '▐', color)
		dst.DrawRectColored(core.NewRect(frame.Right()-1, frame.Y, 1, frame.H), '▌', color)

		// The door panel rises out of the bottom of the frame
		closedRows := int(math.Round((1 - d.Raised()) * float64(frame.H)))
		panel := core.NewRect(frame.X, frame.Bottom()-closedRows, frame.W, closedRows)
		if frame.W > 2 {
			panel.X++
			panel.W -= 2
		}
		dst.DrawRectColored(panel, '▓', color)
	}
}

func (g *Game) renderPlayers(dst *core.Screen) {
	for _, p := range g.world.Players {
		cells := g.view.cells(p.Rect)
		if g.view.scale == 1 {
			// One row per tile: use the row holding the player's center
			_, cy := p.Rect.Center()
			cells = core.NewRect(cells.X, g.view.row(cy), cells.W, 1)
		}
		glyph := '@'
		if !p.Alive {
			glyph = 'x'
		}
		dst.DrawRectColored(cells, glyph, playerColor(p.Type))
	}
}

func playerColor(t world.PlayerType) core.Color {
	if t == world.PlayerMagma {
		return core.ColorMagma
	}
	return core.ColorHydro
}

// renderOverlay draws a centered box with two lines of text.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	h := 5
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawPanel(box, core.ColorNotice)
	dst.DrawTextCenteredColored(box.Y+1, line1, core.ColorNotice)
	dst.DrawTextCentered(box.Y+3, line2)
}

// FormatTicks renders a tick count as mm:ss.t.
func FormatTicks(ticks, tickRate int) string {
	tickRate = max(1, tickRate)
	tenths := ticks * 10 / tickRate
	return fmt.Sprintf("%02d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}
