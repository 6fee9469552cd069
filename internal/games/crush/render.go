package crush

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/crush-arcade/internal/core"
	"github.com/vovakirdan/crush-arcade/internal/games/crush/engine"
)

const (
	boardCellWidth = 3 // Screen columns per tile
	hudHeight      = 3 // Lines above the board frame
)

// tileColors maps engine colors to terminal colors.
var tileColors = [engine.MaxPalette]core.Color{
	engine.Red:    core.ColorRed,
	engine.Blue:   core.ColorBlue,
	engine.Green:  core.ColorGreen,
	engine.Yellow: core.ColorYellow,
	engine.Purple: core.ColorPurple,
	engine.Orange: core.ColorOrange,
	engine.Cyan:   core.ColorCyan,
	engine.Pink:   core.ColorPink,
}

// Glyph returns the rune and color used to draw a cell.
func Glyph(c engine.Cell) (rune, core.Color) {
	switch c.Kind {
	case engine.KindColored:
		return '●', tileColors[c.Color]
	case engine.KindBomb:
		return '✱', core.ColorWhite
	case engine.KindColorClear:
		return '◆', tileColors[c.Color]
	default:
		return '·', core.ColorGray
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	ox, oy := g.boardOrigin()
	n := g.engine.Size()
	boardW := n * boardCellWidth

	g.renderHUD(dst, ox, boardW)
	dst.DrawBox(core.Rect{X: ox - 1, Y: oy - 1, W: boardW + 2, H: n + 2})
	g.renderBoard(dst, ox, oy)
	g.renderStatus(dst, ox, oy+n)
	g.renderOverlays(dst, ox+boardW/2, oy+n/2)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	w, h := g.minScreen()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h))
}

func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "CRUSH MATCH"
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorPink)

	dst.DrawText(boardX-1, 1, fmt.Sprintf("Score: %d", g.shown.score))

	lvl := fmt.Sprintf("Level %d", g.shown.level)
	dst.DrawTextColor(boardX+boardW+1-len(lvl), 1, lvl, core.ColorYellow)

	next := "Max level"
	if at := engine.NextThreshold(g.engine.Options().Thresholds, g.shown.level); at > 0 {
		next = fmt.Sprintf("Next: %d", at)
	}
	dst.DrawTextColor(boardX-1, 2, next, core.ColorGray)

	if g.lastDelta > 0 {
		delta := fmt.Sprintf("+%d", g.lastDelta)
		dst.DrawTextColor(boardX+boardW+1-len(delta), 2, delta, core.ColorGreen)
	}
}

func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	n := g.view.Size()
	for y := range n {
		for x := range n {
			r, c := Glyph(g.view.Get(engine.C(x, y)))
			dst.SetColor(ox+x*boardCellWidth+1, oy+y, r, c)
		}
	}

	// Markers sit either side of the tile glyph
	if len(g.pending) > 0 {
		return
	}
	if g.hintVisible() && (g.tick/15)%2 == 0 {
		g.mark(dst, ox, oy, g.hint.A, '(', ')', core.ColorGreen)
		if !g.hint.IsActivation() {
			g.mark(dst, ox, oy, g.hint.B, '(', ')', core.ColorGreen)
		}
	}
	if sel, ok := g.engine.Selected(); ok {
		g.mark(dst, ox, oy, sel, '<', '>', core.ColorYellow)
	}
	if g.engine.State() != engine.GameOver {
		g.mark(dst, ox, oy, g.cursor, '[', ']', core.ColorWhite)
	}
}

func (g *Game) mark(dst *core.Screen, ox, oy int, at engine.Coord, left, right rune, c core.Color) {
	x := ox + at.X*boardCellWidth
	dst.SetColor(x, oy+at.Y, left, c)
	dst.SetColor(x+2, oy+at.Y, right, c)
}

func (g *Game) renderStatus(dst *core.Screen, x, y int) {
	status := fmt.Sprintf("Moves: %d  Matches: %d", g.engine.Moves(), g.engine.Matches())
	if sel, ok := g.engine.Selected(); ok {
		status += fmt.Sprintf("  Selected %d,%d", sel.X, sel.Y)
	}
	dst.DrawTextColor(x-1, y+1, status, core.ColorGray)
	dst.DrawTextCentered(y+2, g.Controls())
}

func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.State().GameOver {
		g.drawOverlay(dst, centerX, centerY,
			"NO MOVES LEFT",
			fmt.Sprintf("Score: %d", g.engine.Score()),
			fmt.Sprintf("Level: %d", g.engine.Level()),
			"Press R to restart",
		)
		return
	}

	if g.bannerTicks > 0 && g.banner != "" {
		g.drawOverlay(dst, centerX, centerY, g.banner)
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.CenteredRect(centerX, centerY, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// boardOrigin returns the screen position of the top-left tile marker column.
func (g *Game) boardOrigin() (x, y int) {
	boardW := g.engine.Size() * boardCellWidth
	return (g.screenW - boardW) / 2, hudHeight + 1
}

// boardAt maps a screen position to a tile.
func (g *Game) boardAt(sx, sy int) (engine.Coord, bool) {
	ox, oy := g.boardOrigin()
	n := g.engine.Size()
	if !core.NewRect(ox, oy, n*boardCellWidth, n).Contains(sx, sy) {
		return engine.Coord{}, false
	}
	return engine.C((sx-ox)/boardCellWidth, sy-oy), true
}

// minScreen returns the smallest terminal that fits the board, HUD and status.
func (g *Game) minScreen() (w, h int) {
	n := g.cfg.Board.Size
	if n <= 0 {
		n = engine.DefaultOptions().Size
	}
	w = max(n*boardCellWidth+2, 40)
	h = hudHeight + n + 5
	return w, h
}
