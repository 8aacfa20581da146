package stackletter

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/stack-the-letter/internal/core"
	"github.com/vovakirdan/stack-the-letter/internal/engine"
)

// Visual characters for rendering
const (
	CellChars  = "██"
	FlashChars = "░░"
	CellWidth  = 2 // screen columns per board column
)

// CellColor maps a board cell to its palette color. Values past the palette
// fall back to gray.
func CellColor(v engine.Cell) core.Color {
	if v == engine.Empty {
		return core.ColorDefault
	}
	if int(v) > core.PaletteSize {
		return core.ColorGray
	}
	return core.Color(v)
}

// boardRect returns the framed board area, centered below the title line.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	cfg := g.setup.Config.Board
	w := cfg.Columns*CellWidth + 2
	h := cfg.Rows + 2
	x := (dst.Width() - w) / 2
	if x < 0 {
		x = 0
	}
	return core.NewRect(x, 1, w, h)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start "+g.title, core.ColorRed)
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error(), core.ColorDim)
		return
	}

	dst.DrawTextCentered(0, fmt.Sprintf(" %s: %s ", strings.ToUpper(g.title), g.setup.Letter.Title), core.ColorAccent)

	r := g.boardRect(dst)
	dst.DrawBox(r, core.ColorFrame)
	g.drawBoard(dst, r)
	g.drawHUD(dst, r.Bottom())

	switch g.rec.Status() {
	case engine.StatusIdle:
		g.drawIdle(dst, r)
	case engine.StatusGameOver:
		drawMessage(dst, r, core.ColorRed, "GAME OVER",
			"The letter stays a cliff hanger.",
			"Enter to try again  |  q to quit")
	case engine.StatusYouWon:
		g.drawVictory(dst, r)
	}
}

// drawBoard paints the visible rows of the board. Headroom rows stay hidden.
func (g *Game) drawBoard(dst *core.Screen, r core.Rect) {
	st := g.rec.Snapshot()
	headroom := g.rec.Headroom()
	for row := headroom; row < st.Board.Height(); row++ {
		y := r.Y + 1 + row - headroom
		for col, v := range st.Board[row] {
			x := r.X + 1 + col*CellWidth
			switch {
			case v != engine.Empty:
				dst.DrawTextColor(x, y, CellChars, CellColor(v))
			case g.flash[engine.C(row, col)] > 0:
				dst.DrawTextColor(x, y, FlashChars, core.ColorFlash)
			}
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen, y int) {
	st := g.rec.Stats()
	idx := g.rec.BlockIndex() + 1
	if g.rec.Status() == engine.StatusYouWon {
		idx = g.rec.BlockCount()
	}
	hud := fmt.Sprintf("Block %d/%d   Score %d   Cleared %d   Time %s",
		idx, g.rec.BlockCount(), st.Score(), st.CellsRemoved, formatElapsed(st.Elapsed.Seconds()))
	dst.DrawTextCentered(y, hud, core.ColorDefault)
	dst.DrawTextCentered(y+1, "←/→ steer   ↓/space drop   esc stop   q quit", core.ColorDim)
}

func (g *Game) drawIdle(dst *core.Screen, r core.Rect) {
	lines := []string{"Stack every block to reveal the letter."}
	if g.setup.Config.RemovalThreshold() > 0 {
		lines = append(lines, fmt.Sprintf("Same-colored regions of %d cells vanish.", g.setup.Config.RemovalThreshold()))
	}
	lines = append(lines, "Press Enter to start")
	drawMessage(dst, r, core.ColorAccent, strings.ToUpper(g.setup.Letter.Title), lines...)
}

func (g *Game) drawVictory(dst *core.Screen, r core.Rect) {
	l := g.setup.Letter
	lines := strings.Split(l.Text(), "\n")
	if l.Author != "" {
		lines = append(lines, "", "from "+l.Author)
	}
	lines = append(lines, "", "Enter to play again  |  q to quit")
	drawMessage(dst, r, core.ColorGreen, "YOU WON", lines...)
}

// drawMessage clears a panel in the middle of r and writes a title and lines
// into it.
func drawMessage(dst *core.Screen, r core.Rect, c core.Color, title string, lines ...string) {
	w := len([]rune(title))
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	panel := core.CenteredRect(r.W, r.H, min(w+4, r.W), min(len(lines)+3, r.H))
	panel.X += r.X
	panel.Y += r.Y
	dst.DrawRect(panel, ' ', core.ColorDefault)
	dst.DrawBox(panel, c)
	dst.DrawTextCentered(panel.Y+1, title, c)
	for i, l := range lines {
		if panel.Y+2+i >= panel.Bottom()-1 {
			break
		}
		dst.DrawTextCentered(panel.Y+2+i, l, core.ColorDefault)
	}
}

func formatElapsed(sec float64) string {
	s := int(sec)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
