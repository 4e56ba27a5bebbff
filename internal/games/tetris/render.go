package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellWidth  = 2 // terminal columns per board cell
	blockGlyph = '█'
	emptyGlyph = '·'
	panelGap   = 2
	panelWidth = 12

	boardW  = Columns*cellWidth + 2 // +2 for borders
	boardH  = Rows + 2
	layoutW = boardW + panelGap + panelWidth
)

// pieceColors is indexed by color id.
var pieceColors = [PieceCount]core.Color{
	PieceI: core.ColorCyan,
	PieceO: core.ColorYellow,
	PieceS: core.ColorGreen,
	PieceZ: core.ColorRed,
	PieceL: core.ColorOrange,
	PieceJ: core.ColorBlue,
	PieceT: core.ColorMagenta,
}

// PieceColor returns the screen color for a color id.
func PieceColor(color int) core.Color {
	if color < 0 || color >= PieceCount {
		return core.ColorDefault
	}
	return pieceColors[color]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(g.Snapshot(), dst)
}

// RenderSnapshot draws a snapshot; it never touches a live Game.
func RenderSnapshot(s Snapshot, dst *core.Screen) {
	dst.Clear()

	if dst.Width() < layoutW || dst.Height() < boardH {
		renderTooSmall(dst)
		return
	}

	boardX := (dst.Width() - layoutW) / 2
	boardY := (dst.Height() - boardH) / 2
	panelX := boardX + boardW + panelGap

	renderBoard(s, dst, boardX, boardY)
	renderPanel(s, dst, panelX, boardY)
	renderOverlays(s, dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", layoutW, boardH))
}

// drawCell paints one board cell (two terminal columns wide).
func drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellWidth {
		dst.SetColored(x+i, y, r, c)
	}
}

func renderBoard(s Snapshot, dst *core.Screen, x, y int) {
	dst.DrawBox(core.NewRect(x, y, boardW, boardH))

	for row := range Rows {
		for col := range Columns {
			px := x + 1 + col*cellWidth
			py := y + 1 + row
			if v := s.Board[row][col]; v != 0 {
				drawCell(dst, px, py, blockGlyph, PieceColor(v-1))
			} else {
				dst.SetColored(px, py, emptyGlyph, core.ColorGray)
			}
		}
	}

	if s.State == StateWaitingToStart || s.State == StateCountingDown {
		return
	}

	for _, c := range s.Active.Cells {
		if c.X < 0 || c.X >= Columns || c.Y < 0 || c.Y >= Rows {
			continue
		}
		drawCell(dst, x+1+c.X*cellWidth, y+1+c.Y, blockGlyph, PieceColor(s.Active.Color))
	}
}

func renderPanel(s Snapshot, dst *core.Screen, x, y int) {
	// Hold box: the held piece in its spawn orientation.
	dst.DrawBox(core.NewRect(x, y, panelWidth, 4))
	dst.DrawText(x+1, y, "HOLD")
	if s.Held != NoPiece {
		for _, c := range shapes[s.Held] {
			drawCell(dst, x+2+c.X*cellWidth, y+1+c.Y, blockGlyph, PieceColor(s.Held))
		}
	}

	stats := []struct {
		label string
		value int
		color core.Color
	}{
		{"SCORE", s.Score, core.ColorWhite},
		{"LEVEL", s.Level, core.ColorBlue},
		{"LINES", s.Lines, core.ColorGreen},
	}
	for i, st := range stats {
		sy := y + 6 + i*3
		dst.DrawText(x, sy, st.label)
		dst.DrawTextColored(x, sy+1, fmt.Sprintf("%06d", st.value), st.color)
	}
}

// renderOverlays draws countdown, pause and game over boxes over the board.
func renderOverlays(s Snapshot, dst *core.Screen, board core.Rect) {
	cx, cy := board.Center()

	switch s.State {
	case StateWaitingToStart, StateCountingDown:
		drawOverlay(dst, cx, cy, "GET READY", fmt.Sprintf("%d", max(s.Countdown, 1)))
	case StatePaused:
		drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
	case StateGameOver:
		drawOverlay(dst, cx, cy, "GAME OVER", fmt.Sprintf("Score %d", s.Score), "Press R to restart")
	}
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
