package match3

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
)

const (
	cellWidth  = 4 // marker, two glyph columns, marker
	hudHeight  = 3 // title, score line, progress bar
	bossHeight = 3
	minWidth   = 44
)

// Boss frames. The boss takes a hit for every cleared group and bursts when
// the target is reached.
var (
	bossIdle = []string{
		` /\_/\ `,
		`( o.o )`,
		` > ^ < `,
	}
	bossHit = []string{
		` /\_/\ `,
		`( x.x )`,
		` >   < `,
	}
	bossDown = []string{
		`*  .  *`,
		` . * . `,
		`*  .  *`,
	}
)

// layout returns the top-left corner of the board box.
func (g *Game) layout() (x, y int) {
	w, _ := g.boardBox()
	x = (g.screenW - w) / 2
	y = hudHeight
	if g.target > 0 {
		y += bossHeight
	}
	return x, y
}

// boardBox returns the outer size of the board frame.
func (g *Game) boardBox() (w, h int) {
	return g.cfg.Board.Width*cellWidth + 2, g.cfg.Board.Height + 2
}

// minScreen returns the smallest terminal that fits the whole layout.
func (g *Game) minScreen() (w, h int) {
	bw, bh := g.boardBox()
	w = max(bw, minWidth)
	h = hudHeight + bh + 2
	if g.target > 0 {
		h += bossHeight
	}
	return w, h
}

// cellAt maps a screen position to a board cell.
func (g *Game) cellAt(sx, sy int) (board.Coord, bool) {
	bx, by := g.layout()
	x := sx - bx - 1
	y := sy - by - 1
	if x < 0 || y < 0 {
		return board.Coord{}, false
	}
	c := board.C(x/cellWidth, y)
	if c.X >= g.cfg.Board.Width || c.Y >= g.cfg.Board.Height {
		return board.Coord{}, false
	}
	return c, true
}

// Resize updates the screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	bx, by := g.layout()
	bw, bh := g.boardBox()

	g.renderHUD(dst, bx, bw)
	if g.target > 0 {
		g.renderBoss(dst, by-bossHeight)
	}

	dst.DrawBox(core.Rect{X: bx, Y: by, W: bw, H: bh})
	if g.ctrl != nil {
		g.renderBoard(dst, bx+1, by+1)
	}

	if g.bannerLeft > 0 {
		dst.DrawTextCenteredColored(by+bh, "No moves left - shuffling", core.ColorYellow)
	} else if g.lastBonus != 0 && g.bossLeft > 0 {
		dst.DrawTextCenteredColored(by+bh, strings.ToUpper(g.lastBonus.String())+"!", core.ColorBrightCyan)
	}

	g.renderOverlays(dst, bx+bw/2, by+bh/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.minScreen()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h))
}

// renderHUD draws title, score and target progress.
func (g *Game) renderHUD(dst *core.Screen, bx, bw int) {
	dst.DrawTextCentered(0, g.Title())

	score := g.State().Score
	dst.DrawText(bx, 1, fmt.Sprintf("Score: %d", score))

	info := "ENDLESS"
	if g.target > 0 {
		info = fmt.Sprintf("%s  Target: %d", strings.ToUpper(string(g.difficulty)), g.target)
	}
	dst.DrawText(max(bx, bx+bw-runewidth.StringWidth(info)), 1, info)

	if g.target > 0 {
		g.renderProgress(dst, bx, 2, bw, score)
	} else {
		dst.DrawTextCentered(2, fmt.Sprintf("Moves: %d", g.moves))
	}
}

// renderProgress draws a bar filled in proportion to score/target.
func (g *Game) renderProgress(dst *core.Screen, x, y, w, score int) {
	inner := w - 2
	if inner <= 0 {
		return
	}
	filled := min(inner, score*inner/g.target)

	dst.Set(x, y, '[')
	for i := range inner {
		if i < filled {
			dst.SetColored(x+1+i, y, '=', core.ColorGreen)
		} else {
			dst.Set(x+1+i, y, '.')
		}
	}
	dst.Set(x+w-1, y, ']')
}

// renderBoss draws the boss strip.
func (g *Game) renderBoss(dst *core.Screen, y int) {
	frame, color := bossIdle, core.ColorMagenta
	switch {
	case g.won:
		frame, color = bossDown, core.ColorBrightYellow
	case g.bossLeft > 0:
		frame, color = bossHit, core.ColorBrightRed
	}

	// Wiggle on hits.
	shift := 0
	if g.bossLeft > 0 && !g.won {
		shift = g.bossHits%3 - 1
	}
	for i, line := range frame {
		x := (g.screenW-runewidth.StringWidth(line))/2 + shift
		dst.DrawTextColored(x, y+i, line, color)
	}
}

// renderBoard draws the items with cursor, selection, hint and flash markers.
func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	grid := g.ctrl.Grid()
	anchor, selected := g.ctrl.Selected()

	popped := make(map[board.Coord]bool, len(g.popCells))
	for _, c := range g.popCells {
		popped[c] = true
	}

	for y := range grid.Height() {
		for x := range grid.Width() {
			c := board.C(x, y)
			cell, err := grid.Get(c)
			if err != nil {
				continue
			}
			px := ox + x*cellWidth
			py := oy + y

			v := g.theme.VisualFor(cell.Item)
			color := v.Color
			switch {
			case g.rejectLeft > 0 && (c == g.rejected.A || c == g.rejected.B):
				color = core.ColorRed
			case popped[c]:
				color = core.ColorBrightWhite
			}
			dst.DrawTextColored(px+1, py, v.Glyph, color)

			left, right, mark := ' ', ' ', core.ColorDefault
			switch {
			case selected && c == anchor:
				left, right, mark = '<', '>', core.ColorBrightYellow
			case c == g.cursor:
				left, right, mark = '[', ']', core.ColorBrightWhite
			case g.hint != nil && (c == g.hint.A || c == g.hint.B):
				left, right, mark = '(', ')', core.ColorCyan
			}
			dst.SetColored(px, py, left, mark)
			dst.SetColored(px+cellWidth-1, py, right, mark)
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	score := fmt.Sprintf("Score: %d", g.State().Score)

	switch {
	case g.paused:
		lines := append([]string{"PAUSED", ""}, strings.Split(g.Controls(), " | ")...)
		g.drawOverlay(dst, centerX, centerY, append(lines, "", "Press P to resume")...)
	case g.won:
		g.drawOverlay(dst, centerX, centerY, "BOSS DEFEATED!", score, fmt.Sprintf("Moves: %d", g.moves), "Press R to restart")
	case g.exhausted:
		g.drawOverlay(dst, centerX, centerY, "NO MORE MOVES", score, "Press R to restart")
	case g.gameOver:
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", score, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, runewidth.StringWidth(line))
	}

	box := core.Rect{X: centerX, Y: centerY}.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := centerX - runewidth.StringWidth(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space/Enter/Click: Select | H: Hint | P: Pause | R: Restart | Q: Quit"
}
