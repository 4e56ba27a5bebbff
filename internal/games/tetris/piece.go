package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Piece color ids, which double as shape ids.
const (
	PieceI = iota
	PieceO
	PieceS
	PieceZ
	PieceL
	PieceJ
	PieceT

	PieceCount
)

// NoPiece marks an empty hold slot.
const NoPiece = -1

// pieceNames is indexed by color id.
var pieceNames = [PieceCount]string{"I", "O", "S", "Z", "L", "J", "T"}

// shapes holds the seven templates in a 4x2 local frame (x in 0..3, y in 0..1).
// Cell order matters: rotation pivots on Cells[1].
//
//	0 2 4 6
//	1 3 5 7
var shapes = [PieceCount][4]core.Point{
	PieceI: {{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}},
	PieceO: {{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 0}, {X: 3, Y: 1}},
	PieceS: {{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1}},
	PieceZ: {{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0}, {X: 3, Y: 0}},
	PieceL: {{X: 1, Y: 0}, {X: 3, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 1}},
	PieceJ: {{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 0}},
	PieceT: {{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 0}},
}

// spawnOffset places a template near the top center of the board.
var spawnOffset = core.Point{X: 2, Y: 0}

// Piece is a tetromino positioned on the board.
// It is a value type: assigning a Piece copies it.
type Piece struct {
	Cells [4]core.Point
	Color int
}

// Spawn instantiates the template for color at the spawn offset.
func Spawn(color int) Piece {
	p := Piece{Color: color}
	for i, c := range shapes[color] {
		p.Cells[i] = c.Add(spawnOffset.X, spawnOffset.Y)
	}
	return p
}

// PieceName returns the letter for a color id ("I", "O", ...), or "-".
func PieceName(color int) string {
	if color < 0 || color >= PieceCount {
		return "-"
	}
	return pieceNames[color]
}

// Translate moves every cell by (dx, dy) without any validation.
func (p *Piece) Translate(dx, dy int) {
	for i := range p.Cells {
		p.Cells[i] = p.Cells[i].Add(dx, dy)
	}
}

// RotateClockwise turns the piece 90 degrees about Cells[1].
func (p *Piece) RotateClockwise() {
	o := p.Cells[1]
	for i, c := range p.Cells {
		p.Cells[i] = core.Point{
			X: o.X - (c.Y - o.Y),
			Y: o.Y + (c.X - o.X),
		}
	}
}

// RotateCounterClockwise turns the piece -90 degrees about Cells[1].
func (p *Piece) RotateCounterClockwise() {
	o := p.Cells[1]
	for i, c := range p.Cells {
		p.Cells[i] = core.Point{
			X: o.X + (c.Y - o.Y),
			Y: o.Y - (c.X - o.X),
		}
	}
}

// Rotate applies a rotation and, if the result does not fit, one wall kick.
// The kicked position is kept even if it still does not fit; the caller's
// rollback handles that case.
func (p *Piece) Rotate(b *Board, clockwise bool) {
	if clockwise {
		p.RotateClockwise()
	} else {
		p.RotateCounterClockwise()
	}
	if !b.IsPieceValid(*p) {
		p.WallKick(b)
	}
}

// bounds returns the leftmost, rightmost and topmost coordinates of the piece.
func (p *Piece) bounds() (left, right, top int) {
	left, right, top = p.Cells[0].X, p.Cells[0].X, p.Cells[0].Y
	for _, c := range p.Cells[1:] {
		left = min(left, c.X)
		right = max(right, c.X)
		top = min(top, c.Y)
	}
	return left, right, top
}

// WallKick applies a single corrective shift to a piece that overlaps the
// walls, the ceiling or locked cells. It first pushes the piece below the
// ceiling, then shifts it sideways away from the offending side by the
// smallest amount that clears every bad cell. There is no second attempt.
func (p *Piece) WallKick(b *Board) {
	left, right, top := p.bounds()
	if top < 0 {
		p.Translate(0, -top)
	}

	// A bad cell on the left edge means the piece came through the left wall.
	kickRight := false
	for _, c := range p.Cells {
		if c.X == left && !b.IsCellFree(c) {
			kickRight = true
		}
	}

	shift := 0
	for _, c := range p.Cells {
		if b.IsCellFree(c) {
			continue
		}
		if kickRight {
			shift = max(shift, c.X-left+1)
		} else {
			shift = max(shift, right-c.X+1)
		}
	}

	if kickRight {
		p.Translate(shift, 0)
	} else {
		p.Translate(-shift, 0)
	}
}
