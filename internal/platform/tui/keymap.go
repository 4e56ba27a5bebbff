package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// KeyMap holds the in-game key bindings, built from the controls config.
// It implements help.KeyMap.
type KeyMap struct {
	Left        key.Binding
	Right       key.Binding
	RotateCW    key.Binding
	RotateCCW   key.Binding
	SoftDrop    key.Binding
	HardDrop    key.Binding
	Hold        key.Binding
	Pause       key.Binding
	Restart     key.Binding
	ToggleSound key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// NewKeyMap creates bindings from the controls config.
func NewKeyMap(c config.ControlsConfig) KeyMap {
	return KeyMap{
		Left:        binding(c.Left, "move left"),
		Right:       binding(c.Right, "move right"),
		RotateCW:    binding(c.RotateCW, "rotate"),
		RotateCCW:   binding(c.RotateCCW, "rotate back"),
		SoftDrop:    binding(c.SoftDrop, "soft drop"),
		HardDrop:    binding(c.HardDrop, "hard drop"),
		Hold:        binding(c.Hold, "hold"),
		Pause:       binding(c.Pause, "pause"),
		Restart:     binding(c.Restart, "restart"),
		ToggleSound: binding(c.ToggleSound, "sound"),
		Help:        binding(c.Help, "help"),
		Quit:        binding(c.Quit, "quit"),
	}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keyLabel(keys), desc),
	)
}

// keyLabel renders a key list for the help line, e.g. "←/a".
func keyLabel(keys []string) string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		switch k {
		case " ":
			labels[i] = "space"
		case "left":
			labels[i] = "←"
		case "right":
			labels[i] = "→"
		case "up":
			labels[i] = "↑"
		case "down":
			labels[i] = "↓"
		default:
			labels[i] = k
		}
	}
	return strings.Join(labels, "/")
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop, k.HardDrop},
		{k.RotateCW, k.RotateCCW, k.Hold},
		{k.Pause, k.Restart, k.ToggleSound, k.Help, k.Quit},
	}
}

// Action translates a key message to a game action.
// Returns ActionNone for unbound keys and for the help key, which the
// model handles itself.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.RotateCW):
		return core.ActionRotateCW
	case key.Matches(msg, k.RotateCCW):
		return core.ActionRotateCCW
	case key.Matches(msg, k.SoftDrop):
		return core.ActionSoftDrop
	case key.Matches(msg, k.HardDrop):
		return core.ActionHardDrop
	case key.Matches(msg, k.Hold):
		return core.ActionHold
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.ToggleSound):
		return core.ActionToggleSound
	}
	return core.ActionNone
}
