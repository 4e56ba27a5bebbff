// Package config provides YAML-based configuration loading for the
// terminal front end: key bindings, colors and input timing.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// TetrisConfig contains all user-tunable settings. Gameplay rules are fixed
// and deliberately not configurable.
type TetrisConfig struct {
	Controls ControlsConfig `yaml:"controls"`
	Display  DisplayConfig  `yaml:"display"`
	Input    InputConfig    `yaml:"input"`
}

// ControlsConfig lists the keys bound to each action, using Bubble Tea key
// names ("left", "space", "ctrl+c", "x").
type ControlsConfig struct {
	Left        []string `yaml:"left"`
	Right       []string `yaml:"right"`
	RotateCW    []string `yaml:"rotate_cw"`
	RotateCCW   []string `yaml:"rotate_ccw"`
	SoftDrop    []string `yaml:"soft_drop"`
	HardDrop    []string `yaml:"hard_drop"`
	Hold        []string `yaml:"hold"`
	Pause       []string `yaml:"pause"`
	Restart     []string `yaml:"restart"`
	ToggleSound []string `yaml:"toggle_sound"`
	Help        []string `yaml:"help"`
	Quit        []string `yaml:"quit"`
}

// DisplayConfig controls how the board is drawn.
type DisplayConfig struct {
	// Palette overrides the terminal color used for a named screen color,
	// e.g. {"cyan": "#00d7ff", "orange": "214"}. Values are lipgloss colors.
	Palette map[string]string `yaml:"palette"`
}

// InputConfig tunes how key presses become per-tick input.
type InputConfig struct {
	// SoftDropHoldMS is how long one down-key press keeps soft drop on.
	// Terminals do not report key release, so auto-repeat refreshes it.
	SoftDropHoldMS int  `yaml:"soft_drop_hold_ms"`
	Bell           bool `yaml:"bell"` // ring the terminal bell on line clears
}

// Named returns the bindings paired with a stable action name, in the order
// they are shown in help.
func (c ControlsConfig) Named() []NamedKeys {
	return []NamedKeys{
		{"left", c.Left},
		{"right", c.Right},
		{"rotate_cw", c.RotateCW},
		{"rotate_ccw", c.RotateCCW},
		{"soft_drop", c.SoftDrop},
		{"hard_drop", c.HardDrop},
		{"hold", c.Hold},
		{"pause", c.Pause},
		{"restart", c.Restart},
		{"toggle_sound", c.ToggleSound},
		{"help", c.Help},
		{"quit", c.Quit},
	}
}

// NamedKeys is one action's key list.
type NamedKeys struct {
	Name string
	Keys []string
}

// Validate checks the config for unusable values. All problems are reported
// together.
func (c TetrisConfig) Validate() error {
	var errs []error

	owner := make(map[string]string)
	for _, nk := range c.Controls.Named() {
		if len(nk.Keys) == 0 {
			errs = append(errs, fmt.Errorf("controls.%s: no keys bound", nk.Name))
			continue
		}
		for _, k := range nk.Keys {
			if k == "" {
				errs = append(errs, fmt.Errorf("controls.%s: empty key name", nk.Name))
				continue
			}
			if prev, ok := owner[k]; ok {
				errs = append(errs, fmt.Errorf("controls.%s: key %q already bound to %s", nk.Name, k, prev))
				continue
			}
			owner[k] = nk.Name
		}
	}

	for name, value := range c.Display.Palette {
		if _, ok := core.ParseColor(name); !ok {
			errs = append(errs, fmt.Errorf("display.palette: unknown color %q", name))
		}
		if value == "" {
			errs = append(errs, fmt.Errorf("display.palette.%s: empty value", name))
		}
	}

	if c.Input.SoftDropHoldMS < 0 {
		errs = append(errs, fmt.Errorf("input.soft_drop_hold_ms: must not be negative, got %d", c.Input.SoftDropHoldMS))
	}

	return errors.Join(errs...)
}
