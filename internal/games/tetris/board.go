package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Playfield dimensions.
const (
	Rows    = 20
	Columns = 10
)

// Board is the playfield. Row 0 is the top row.
// A zero cell is empty; a cell holding k > 0 belongs to a locked piece of color k-1.
type Board [Rows][Columns]int

// IsCellFree reports whether p lies inside the playfield on an empty cell.
func (b *Board) IsCellFree(p core.Point) bool {
	if p.X < 0 || p.X >= Columns || p.Y < 0 || p.Y >= Rows {
		return false
	}
	return b[p.Y][p.X] == 0
}

// IsPieceValid reports whether every cell of the piece is free.
func (b *Board) IsPieceValid(p Piece) bool {
	for _, c := range p.Cells {
		if !b.IsCellFree(c) {
			return false
		}
	}
	return true
}

// Lock writes the piece into the board. The caller passes the last valid
// position of the piece; out-of-bounds cells are ignored.
func (b *Board) Lock(p Piece) {
	for _, c := range p.Cells {
		if c.X < 0 || c.X >= Columns || c.Y < 0 || c.Y >= Rows {
			continue
		}
		b[c.Y][c.X] = p.Color + 1
	}
}

// IsTopRowOccupied reports whether any cell of row 0 is filled (game over).
func (b *Board) IsTopRowOccupied() bool {
	for _, v := range b[0] {
		if v != 0 {
			return true
		}
	}
	return false
}

// isRowFull reports whether every cell of the row is filled.
func (b *Board) isRowFull(row int) bool {
	for _, v := range b[row] {
		if v == 0 {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, lets the remaining rows fall while
// keeping their order, and returns how many rows were removed.
func (b *Board) ClearFullRows() int {
	var next Board
	write := Rows - 1
	cleared := 0

	// Walk bottom-up so surviving rows land in the same relative order.
	for row := Rows - 1; row >= 0; row-- {
		if b.isRowFull(row) {
			cleared++
			continue
		}
		next[write] = b[row]
		write--
	}

	*b = next
	return cleared
}
