package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration. It matches
// defaults/tetris.yaml and is used if the embedded file cannot be parsed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Controls: ControlsConfig{
			Left:        []string{"left", "a"},
			Right:       []string{"right", "d"},
			RotateCW:    []string{"up", "x", "w"},
			RotateCCW:   []string{"z"},
			SoftDrop:    []string{"down", "s"},
			HardDrop:    []string{" "},
			Hold:        []string{"c"},
			Pause:       []string{"p", "esc"},
			Restart:     []string{"r"},
			ToggleSound: []string{"m"},
			Help:        []string{"?"},
			Quit:        []string{"q", "ctrl+c"},
		},
		Display: DisplayConfig{
			Palette: map[string]string{},
		},
		Input: InputConfig{
			SoftDropHoldMS: 150,
			Bell:           true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
