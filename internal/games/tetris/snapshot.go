package tetris

import "time"

// Snapshot is a read-only copy of the game for renderers, tests and replays.
// It shares no memory with the Game.
type Snapshot struct {
	Tick      uint64
	Board     Board
	Active    Piece
	Held      int // color id, or NoPiece
	Score     int
	Level     int
	Lines     int
	Countdown int
	Played    int           // pieces dealt by the bag so far
	Delay     time.Duration // base gravity delay for Level
	State     State
	Events    Events // what happened during the tick that produced this snapshot
}

// GameOver reports whether the snapshot is in the terminal state.
func (s Snapshot) GameOver() bool {
	return s.State == StateGameOver
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	played := 0
	if g.bag != nil {
		played = g.bag.Played()
	}
	return Snapshot{
		Tick:      g.tick,
		Board:     g.board,
		Active:    g.piece,
		Held:      g.held,
		Score:     g.score,
		Level:     g.level,
		Lines:     g.lines,
		Countdown: g.countdown,
		Played:    played,
		Delay:     g.delay,
		State:     g.state,
		Events:    g.events,
	}
}
