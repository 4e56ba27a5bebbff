package tetris

import (
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Events is a set of things that happened during one Advance call.
// Renderers and sound layers use it to play feedback; it has no effect on play.
type Events uint16

const (
	EventMoved Events = 1 << iota
	EventRotated
	EventHardDrop
	EventHeld
	EventLocked
	EventLinesCleared
	EventLevelUp
	EventStarted
	EventPaused
	EventResumed
	EventGameOver
)

var eventNames = []struct {
	e    Events
	name string
	cue  core.Cue
}{
	{EventMoved, "moved", core.CueMove},
	{EventRotated, "rotated", core.CueRotate},
	{EventHardDrop, "hard_drop", core.CueHardDrop},
	{EventHeld, "held", core.CueHold},
	{EventLocked, "locked", core.CueLock},
	{EventLinesCleared, "lines_cleared", core.CueLineClear},
	{EventLevelUp, "level_up", core.CueLevelUp},
	{EventStarted, "started", core.CueGameActive},
	{EventPaused, "paused", ""},
	{EventResumed, "resumed", ""},
	{EventGameOver, "game_over", core.CueGameOver},
}

// Has reports whether e contains every event in other.
func (e Events) Has(other Events) bool {
	return e&other == other
}

// String lists the events, e.g. "locked|lines_cleared".
func (e Events) String() string {
	var names []string
	for _, n := range eventNames {
		if e.Has(n.e) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// Cues converts the set into platform feedback cues.
func (e Events) Cues() []core.Cue {
	var cues []core.Cue
	for _, n := range eventNames {
		if n.cue != "" && e.Has(n.e) {
			cues = append(cues, n.cue)
		}
	}
	return cues
}
