// Package tui provides the Bubble Tea front end: the play loop, the replay
// browser and replay playback.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// replayTickMsg advances replay playback by one recorded frame.
// Ticks from an older gen are stale and dropped.
type replayTickMsg struct{ gen int }

// replayTickCmd waits d before the next replay frame.
func replayTickCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return replayTickMsg{gen: gen}
	})
}
