package core

import "testing"

func TestPointAdd(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		dx, dy int
		want   Point
	}{
		{"zero", Point{3, 4}, 0, 0, Point{3, 4}},
		{"right", Point{3, 4}, 1, 0, Point{4, 4}},
		{"left past origin", Point{0, 4}, -1, 0, Point{-1, 4}},
		{"down", Point{3, 4}, 0, 2, Point{3, 6}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.Add(tc.dx, tc.dy); got != tc.want {
				t.Errorf("Add(%d, %d) = %v, want %v", tc.dx, tc.dy, got, tc.want)
			}
		})
	}
}

func TestRectEdgesAndCenter(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("edges = (%d, %d), want (25, 25)", r.Right(), r.Bottom())
	}
	if x, y := r.Center(); x != 15 || y != 17 {
		t.Errorf("Center() = (%d, %d), want (15, 17)", x, y)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{0, -1, 1, 0},
		{-5, -1, 1, -1},
		{5, -1, 1, 1},
		{1, 1, 20, 1},
		{21, 1, 20, 20},
	}

	for _, tc := range tests {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}
