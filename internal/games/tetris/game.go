// Package tetris implements the falling-block puzzle: board, pieces, the
// seven-piece bag and the per-tick state machine that ties them together.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// State is the phase the game is in.
type State int

const (
	StateWaitingToStart State = iota
	StateCountingDown
	StateActive
	StatePaused
	StateGameOver
)

// String returns the state name used in snapshots and logs.
func (s State) String() string {
	switch s {
	case StateWaitingToStart:
		return "waiting"
	case StateCountingDown:
		return "counting_down"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// countdownSeconds is the length of the "3, 2, 1" before play starts or resumes.
const countdownSeconds = 3

// Intents is the input for one tick.
type Intents struct {
	MoveDx      int // -1 left, 0 none, +1 right
	RotateCW    bool
	RotateCCW   bool
	SoftDrop    bool // held: faster gravity
	HardDrop    bool
	Hold        bool
	PauseToggle bool
}

// IntentsFromFrame maps platform actions to intents.
// Right wins over left when both are pressed in the same frame.
func IntentsFromFrame(in core.InputFrame) Intents {
	var it Intents
	switch {
	case in.Has(core.ActionRight):
		it.MoveDx = 1
	case in.Has(core.ActionLeft):
		it.MoveDx = -1
	}
	it.RotateCW = in.Has(core.ActionRotateCW)
	it.RotateCCW = in.Has(core.ActionRotateCCW)
	it.SoftDrop = in.Has(core.ActionSoftDrop)
	it.HardDrop = in.Has(core.ActionHardDrop)
	it.Hold = in.Has(core.ActionHold)
	it.PauseToggle = in.Has(core.ActionPause)
	return it
}

// Game owns the complete state of one play session.
// It is not safe for concurrent use; one goroutine drives Advance.
type Game struct {
	tick uint64

	board Board
	piece Piece
	prev  Piece // piece at the start of the tick, restored on an invalid move
	bag   *Bag

	held     int  // color id or NoPiece
	holdUsed bool // a hold already happened since the last lock

	score int
	level int
	lines int
	delay time.Duration // base gravity delay for the current level

	gravityTimer   time.Duration
	countdown      int
	countdownTimer time.Duration

	state  State
	events Events
}

// New creates a Tetris game. Reset must be called before Advance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset clears the board, counters and hold slot, deals a fresh bag seeded
// from cfg.Seed, and puts the game back in StateWaitingToStart.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.board = Board{}
	g.bag = NewBag(rand.New(rand.NewSource(cfg.Seed)))
	g.piece = Spawn(g.bag.Next())
	g.prev = g.piece
	g.held = NoPiece
	g.holdUsed = false
	g.score = 0
	g.level = 1
	g.lines = 0
	g.delay = GravityDelay(g.level)
	g.gravityTimer = 0
	g.countdown = countdownSeconds
	g.countdownTimer = 0
	g.state = StateWaitingToStart
	g.events = 0
}

// Step adapts Advance to the platform's frame-based interface.
func (g *Game) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	snap := g.Advance(dt, IntentsFromFrame(in))
	return core.StepResult{
		State: g.State(),
		Cues:  snap.Events.Cues(),
	}
}

// State returns the platform-level summary of the game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
	}
}

// Advance runs one tick: dt is the wall-clock time since the previous tick.
func (g *Game) Advance(dt time.Duration, in Intents) Snapshot {
	g.tick++
	g.events = 0
	g.prev = g.piece

	if in.PauseToggle && g.togglePause() {
		return g.Snapshot()
	}

	switch g.state {
	case StateWaitingToStart:
		g.state = StateCountingDown
		g.runCountdown(dt)
	case StateCountingDown:
		g.runCountdown(dt)
	case StateActive:
		g.play(dt, in)
	}

	return g.Snapshot()
}

// togglePause flips between paused and running. Resuming always restarts the
// countdown. Returns false when the toggle does not apply (game over).
func (g *Game) togglePause() bool {
	switch g.state {
	case StateGameOver:
		return false
	case StatePaused:
		g.state = StateCountingDown
		g.countdown = countdownSeconds
		g.countdownTimer = 0
		g.gravityTimer = 0
		g.events |= EventResumed
	default:
		g.state = StatePaused
		g.events |= EventPaused
	}
	return true
}

// runCountdown advances the pre-play countdown and starts play at zero.
func (g *Game) runCountdown(dt time.Duration) {
	g.countdownTimer += dt
	for g.countdownTimer >= time.Second && g.countdown > 0 {
		g.countdownTimer -= time.Second
		g.countdown--
	}
	if g.countdown == 0 {
		g.state = StateActive
		g.countdownTimer = 0
		g.gravityTimer = 0
		g.events |= EventStarted
	}
}

// play applies one active tick: shift, rotate, hard drop, hold, gravity, lock.
func (g *Game) play(dt time.Duration, in Intents) {
	if in.MoveDx != 0 {
		g.piece.Translate(core.Clamp(in.MoveDx, -1, 1), 0)
		if g.board.IsPieceValid(g.piece) {
			g.events |= EventMoved
		} else {
			g.piece = g.prev
		}
	}

	switch {
	case in.RotateCW:
		g.piece.Rotate(&g.board, true)
		g.events |= EventRotated
	case in.RotateCCW:
		g.piece.Rotate(&g.board, false)
		g.events |= EventRotated
	}

	if in.HardDrop && g.hardDrop() {
		g.lock()
		return
	}

	if in.Hold && !g.holdUsed {
		g.hold()
	}

	g.gravityTimer += dt
	delay := g.delay
	if in.SoftDrop {
		delay /= softDropDivisor
	}
	if g.gravityTimer > delay {
		g.piece.Translate(0, 1)
		g.gravityTimer = 0
		if in.SoftDrop {
			g.score += softDropPoints
		}
	}

	if !g.board.IsPieceValid(g.piece) {
		g.piece = g.prev
		g.lock()
	}
}

// hardDrop slams the piece to its lowest valid position and scores the
// distance. Returns false if the piece is not in a valid position to start
// from; the regular lock check then handles it.
func (g *Game) hardDrop() bool {
	if !g.board.IsPieceValid(g.piece) {
		return false
	}

	dropped := 0
	for {
		next := g.piece
		next.Translate(0, 1)
		if !g.board.IsPieceValid(next) {
			break
		}
		g.piece = next
		dropped++
	}

	g.prev = g.piece
	g.score += hardDropPoints * dropped
	g.events |= EventHardDrop
	return true
}

// hold stores the current piece. An empty slot takes the piece and the bag
// deals the next one; otherwise the held piece comes back at the spawn offset.
func (g *Game) hold() {
	if g.held == NoPiece {
		g.held = g.piece.Color
		g.piece = Spawn(g.bag.Next())
	} else {
		g.held, g.piece = g.piece.Color, Spawn(g.held)
	}
	g.holdUsed = true
	g.events |= EventHeld
}

// lock writes the current piece into the board, deals the next piece and
// updates lines, score, level and speed.
func (g *Game) lock() {
	g.board.Lock(g.piece)
	g.holdUsed = false
	g.piece = Spawn(g.bag.Next())
	g.events |= EventLocked

	cleared := g.board.ClearFullRows()
	if cleared > 0 {
		g.events |= EventLinesCleared
	}
	g.lines += cleared
	g.score += LineScore(cleared)

	level := LevelForLines(g.lines)
	if level > g.level {
		g.events |= EventLevelUp
	}
	g.level = level
	g.delay = GravityDelay(g.level)

	if g.board.IsTopRowOccupied() {
		g.state = StateGameOver
		g.events |= EventGameOver
	}
}
