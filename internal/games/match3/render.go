package match3

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

const (
	cellWidth    = 3
	hudHeight    = 3
	footerHeight = 2
)

type layout struct {
	boardW, boardH int
	minW, minH     int
}

func layoutFor(b *engine.Board) layout {
	w := b.Width()*cellWidth + 2
	h := b.Height() + 2
	return layout{
		boardW: w,
		boardH: h,
		minW:   w,
		minH:   hudHeight + h + footerHeight,
	}
}

// Render draws the current game state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderError(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := layoutFor(g.view)
	boardX := (g.screenW - l.boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, l.boardW)
	g.renderBoard(dst, boardX, boardY, l.boardW, l.boardH)
	g.renderFooter(dst, boardY+l.boardH)
	g.renderOverlays(dst, boardX, boardY, l.boardW, l.boardH)
}

func (g *Game) renderError(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCenteredColored(y-1, "Cannot start "+g.Title(), core.ColorBrightRed)
	dst.DrawTextCentered(y+1, g.err.Error())
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	l := layoutFor(g.view)
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need at least %dx%d", l.minW, l.minH))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and chain info above the board.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCenteredColored(0, g.Title(), core.ColorBrightCyan)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.shownScore))

	stats := g.eng.Stats()
	info := fmt.Sprintf("Swaps: %d  Best x%d", stats.Swaps, max(stats.BestChain, 1))
	infoX := max(boardX+boardW-utf8.RuneCountInString(info), boardX)
	dst.DrawText(infoX, 1, info)

	if g.multiplier > 1 && g.playing() {
		dst.DrawTextCenteredColored(2, fmt.Sprintf("CHAIN x%d", g.multiplier), core.ColorBrightYellow)
		return
	}
	dst.DrawHLine(boardX, 2, boardW, '┈')
}

// renderBoard draws the framed grid. Each tile takes cellWidth columns:
// the glyph in the middle and the cursor or selection markers around it.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	frame := core.ColorGray
	if g.selected != nil {
		frame = core.ColorWhite
	}
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH), frame)

	for y := range g.view.Height() {
		for x := range g.view.Width() {
			p := engine.P(x, y)
			cx := boardX + 1 + x*cellWidth
			cy := boardY + 1 + y

			t, _ := g.view.Get(p)
			style := g.styleOf(t)
			glyph, color := style.glyph, style.color
			if g.flash.Has(p) {
				glyph, color = '*', core.ColorBrightWhite
				if (g.wait/2)%2 == 1 {
					glyph = '+'
				}
			}
			dst.SetColored(cx+1, cy, glyph, color)

			switch {
			case g.selected != nil && *g.selected == p:
				dst.SetColored(cx, cy, '<', core.ColorBrightYellow)
				dst.SetColored(cx+2, cy, '>', core.ColorBrightYellow)
			case p == g.cursor && !g.playing():
				dst.SetColored(cx, cy, '[', core.ColorBrightWhite)
				dst.SetColored(cx+2, cy, ']', core.ColorBrightWhite)
			}
		}
	}
}

func (g *Game) styleOf(t engine.TileType) tileStyle {
	if s, ok := g.tiles[t]; ok {
		return s
	}
	return tileStyle{glyph: '?', color: core.ColorDefault}
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	if g.message != "" {
		dst.DrawTextCenteredColored(y, g.message, core.ColorYellow)
	}
	dst.DrawTextCenteredColored(y+1, g.Controls(), core.ColorGray)
}

// renderOverlays draws the pause and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	area := core.NewRect(boardX, boardY, boardW, boardH)

	if g.paused {
		drawOverlay(dst, area, "PAUSED", "Press P to resume")
		return
	}
	if g.gameOver() {
		drawOverlay(dst, area,
			"NO MOVES LEFT",
			fmt.Sprintf("Score: %d", g.eng.Score()),
			"R: new board  B: menu",
		)
	}
}

// drawOverlay draws a boxed text block centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightRed)

	for i, line := range lines {
		x := box.X + (box.W-utf8.RuneCountInString(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Select | Esc: Cancel | P: Pause"
}
