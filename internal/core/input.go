package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionLeft               // Left arrow - shift piece left
	ActionRight              // Right arrow - shift piece right
	ActionRotateCW           // Up, X - rotate clockwise
	ActionRotateCCW          // Z - rotate counter-clockwise
	ActionSoftDrop           // Down - accelerate gravity while held
	ActionHardDrop           // Space - drop to the floor and lock
	ActionHold               // C - swap with the hold slot
	ActionPause              // P, Escape - pause/unpause game
	ActionRestart            // R key - restart game after game over
	ActionQuit               // Q, Ctrl+C - exit game
	ActionToggleSound        // M - toggle feedback bell
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionHold:
		return "Hold"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionToggleSound:
		return "ToggleSound"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Mask packs the frame into a bitmask (bit n set for Action n).
// Used by the replay journal to store frames compactly.
func (f InputFrame) Mask() uint32 {
	var m uint32
	for a, on := range f.Actions {
		if on && a > ActionNone && a < 32 {
			m |= 1 << uint(a)
		}
	}
	return m
}

// FrameFromMask is the inverse of InputFrame.Mask.
func FrameFromMask(m uint32) InputFrame {
	f := NewInputFrame()
	for a := ActionNone + 1; a < 32; a++ {
		if m&(1<<uint(a)) != 0 {
			f.Set(a)
		}
	}
	return f
}
