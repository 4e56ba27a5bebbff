package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	want := strings.Repeat("      \n", 2) + "      "
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestScreenSetAndGetCell(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 2, '█', ColorCyan)
	s.Set(0, 0, 'x')

	if got := s.GetCell(1, 2); got != (Cell{Rune: '█', Color: ColorCyan}) {
		t.Errorf("GetCell(1, 2) = %+v", got)
	}
	if got := s.GetCell(0, 0); got != (Cell{Rune: 'x'}) {
		t.Errorf("GetCell(0, 0) = %+v", got)
	}

	// Off-screen writes are dropped and reads return a blank.
	s.Set(-1, 0, 'y')
	s.Set(4, 0, 'y')
	s.Set(0, 4, 'y')
	if got := s.GetCell(-1, 0); got != blank {
		t.Errorf("GetCell(-1, 0) = %+v, want blank", got)
	}
	if strings.ContainsRune(s.String(), 'y') {
		t.Error("out-of-bounds write reached the buffer")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(3, 2)
	s.SetColored(2, 1, '#', ColorRed)
	s.Clear()

	if got := s.GetCell(2, 1); got != blank {
		t.Errorf("after Clear GetCell(2, 1) = %+v", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColored(7, 0, "SCORE", ColorGreen)
	s.DrawTextCentered(1, "GO")

	lines := strings.Split(s.String(), "\n")
	if lines[0] != "       SCO" {
		t.Errorf("clipped text = %q", lines[0])
	}
	if lines[1] != "    GO    " {
		t.Errorf("centered text = %q", lines[1])
	}
	if s.GetCell(8, 0).Color != ColorGreen {
		t.Error("text color not applied")
	}
}

func TestScreenDrawBoxAndRect(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawRect(NewRect(0, 0, 5, 4), '.')
	s.DrawBox(NewRect(0, 0, 5, 4))

	want := "┌───┐\n│...│\n│...│\n└───┘"
	if got := s.String(); got != want {
		t.Errorf("box =\n%s\nwant\n%s", got, want)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, 'a', ColorBlue)
	s.Set(3, 0, 'b')

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 2x3", s.Width(), s.Height())
	}
	if got := s.GetCell(1, 1); got != (Cell{Rune: 'a', Color: ColorBlue}) {
		t.Errorf("kept cell = %+v", got)
	}
	if strings.ContainsRune(s.String(), 'b') {
		t.Error("cell outside the new width survived")
	}

	s.Resize(-1, 5)
	if s.Width() != 0 || s.String() != "\n\n\n\n" {
		t.Errorf("negative width not clamped: %q", s.String())
	}
}
