package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// defaultPalette maps core.Color to ANSI colors.
var defaultPalette = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Renderer turns a Screen buffer into styled terminal output.
type Renderer struct {
	styles map[core.Color]lipgloss.Style
}

// NewRenderer builds styles from the default palette with overrides applied.
// Override keys are color names as accepted by core.ParseColor; unknown
// names are ignored (config validation reports them).
func NewRenderer(overrides map[string]string) *Renderer {
	palette := make(map[core.Color]string, len(defaultPalette))
	for c, v := range defaultPalette {
		palette[c] = v
	}
	for name, v := range overrides {
		if c, ok := core.ParseColor(name); ok && v != "" {
			palette[c] = v
		}
	}

	styles := map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
	}
	for c, v := range palette {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(v))
	}
	return &Renderer{styles: styles}
}

// style returns the style for a color, falling back to the default style.
func (r *Renderer) style(c core.Color) lipgloss.Style {
	if s, ok := r.styles[c]; ok {
		return s
	}
	return r.styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (r *Renderer) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(r.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers every line of text in width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
