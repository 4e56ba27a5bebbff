// Package core holds the types shared by the game and the terminal platform:
// grid geometry, the cell buffer games draw into, input frames and step
// results. It imports nothing outside the standard library so the game stays
// testable without a terminal.
package core

// Point is a board or screen position in cell units.
type Point struct {
	X, Y int
}

// Add returns p moved by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect is an axis-aligned box on the screen.
type Rect struct {
	X, Y int
	W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the box.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom is the first row past the box.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
