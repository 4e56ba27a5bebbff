package tetris

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// startGame resets a game and runs the countdown so it is ready for play.
func startGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed})
	s := g.Advance(countdownSeconds*time.Second, Intents{})
	require.Equal(t, StateActive, s.State)
	return g
}

func lowestRow(p Piece) int {
	bottom := p.Cells[0].Y
	for _, c := range p.Cells[1:] {
		bottom = max(bottom, c.Y)
	}
	return bottom
}

func TestResetState(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1})
	s := g.Snapshot()

	assert.Equal(t, StateWaitingToStart, s.State)
	assert.Equal(t, countdownSeconds, s.Countdown)
	assert.Equal(t, NoPiece, s.Held)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 0, s.Lines)
	assert.Equal(t, 1, s.Played)
	assert.Equal(t, time.Second, s.Delay)
	assert.Equal(t, Board{}, s.Board)
	assert.Equal(t, Spawn(s.Active.Color), s.Active)
}

func TestResetClearsProgress(t *testing.T) {
	g := startGame(t, 3)
	g.Advance(0, Intents{Hold: true})
	g.Advance(0, Intents{HardDrop: true})
	require.NotZero(t, g.Snapshot().Score)

	g.Reset(core.RuntimeConfig{Seed: 4})
	s := g.Snapshot()
	assert.Equal(t, uint64(0), s.Tick)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, NoPiece, s.Held)
	assert.Equal(t, 1, s.Played)
	assert.Equal(t, Board{}, s.Board)
	assert.Equal(t, StateWaitingToStart, s.State)
}

func TestCountdown(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1})

	s := g.Advance(0, Intents{})
	assert.Equal(t, StateCountingDown, s.State)
	assert.Equal(t, 3, s.Countdown)

	s = g.Advance(999*time.Millisecond, Intents{})
	assert.Equal(t, 3, s.Countdown)

	s = g.Advance(time.Millisecond, Intents{})
	assert.Equal(t, 2, s.Countdown)

	// Intents are ignored until play starts.
	before := s.Active
	s = g.Advance(0, Intents{MoveDx: 1, HardDrop: true})
	assert.Equal(t, before, s.Active)

	s = g.Advance(2500*time.Millisecond, Intents{})
	assert.Equal(t, StateActive, s.State)
	assert.Equal(t, 0, s.Countdown)
	assert.True(t, s.Events.Has(EventStarted))
}

func TestHardDropFromSpawn(t *testing.T) {
	g := startGame(t, 5)
	before := g.Snapshot().Active
	distance := Rows - 1 - lowestRow(before)

	s := g.Advance(0, Intents{HardDrop: true})

	assert.Equal(t, 2*distance, s.Score)
	assert.True(t, s.Events.Has(EventHardDrop|EventLocked))
	assert.Equal(t, 2, s.Played)
	for _, c := range before.Cells {
		assert.Equal(t, before.Color+1, s.Board[c.Y+distance][c.X])
	}
}

func TestMoveStopsAtWall(t *testing.T) {
	g := startGame(t, 1)
	g.piece = Spawn(PieceI)

	var s Snapshot
	for range 5 {
		s = g.Advance(0, Intents{MoveDx: -1})
	}

	assert.Equal(t, cells([2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1}, [2]int{3, 1}), s.Active.Cells)
	assert.False(t, s.Events.Has(EventMoved), "blocked move is rolled back")
}

func TestMoveRight(t *testing.T) {
	g := startGame(t, 1)
	g.piece = Spawn(PieceI)

	s := g.Advance(0, Intents{MoveDx: 1})
	assert.Equal(t, cells([2]int{3, 1}, [2]int{4, 1}, [2]int{5, 1}, [2]int{6, 1}), s.Active.Cells)
	assert.True(t, s.Events.Has(EventMoved))
}

func TestRotateClockwiseWins(t *testing.T) {
	g := startGame(t, 1)
	g.piece = Spawn(PieceT)
	g.piece.Translate(0, 8)
	want := g.piece
	want.RotateClockwise()

	s := g.Advance(0, Intents{RotateCW: true, RotateCCW: true})
	assert.Equal(t, want, s.Active)
	assert.True(t, s.Events.Has(EventRotated))
}

func TestRotationStillInvalidAfterKickLocks(t *testing.T) {
	g := startGame(t, 1)
	for col := 3; col < 7; col++ {
		g.board[6][col] = 1
	}
	g.piece = verticalI(t, 0, 5)

	s := g.Advance(0, Intents{RotateCW: true})

	assert.True(t, s.Events.Has(EventLocked))
	for row := 5; row <= 8; row++ {
		assert.Equal(t, PieceI+1, s.Board[row][0], "row %d", row)
	}
}

func TestLineClear(t *testing.T) {
	g := startGame(t, 1)
	for col := 4; col < Columns; col++ {
		g.board[Rows-1][col] = 1
	}
	g.board[Rows-2][Columns-1] = 5
	g.piece = Spawn(PieceI)
	g.piece.Translate(-2, 0)

	s := g.Advance(0, Intents{HardDrop: true})

	assert.Equal(t, 1, s.Lines)
	assert.Equal(t, 2*18+100, s.Score)
	assert.True(t, s.Events.Has(EventLinesCleared))
	assert.Equal(t, 5, s.Board[Rows-1][Columns-1], "row above fell into the cleared row")
	assert.Equal(t, 0, s.Board[Rows-1][0])
	assert.Equal(t, 1, s.Level)
}

func TestLevelUp(t *testing.T) {
	g := startGame(t, 1)
	g.lines = 9
	for col := 4; col < Columns; col++ {
		g.board[Rows-1][col] = 1
	}
	g.piece = Spawn(PieceI)
	g.piece.Translate(-2, 0)

	s := g.Advance(0, Intents{HardDrop: true})

	assert.Equal(t, 10, s.Lines)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, GravityDelay(2), s.Delay)
	assert.True(t, s.Events.Has(EventLevelUp))
}

func TestLevelsFollowLines(t *testing.T) {
	for _, tt := range []struct{ lines, level int }{{10, 2}, {20, 3}, {30, 4}} {
		g := startGame(t, 1)
		g.lines = tt.lines - 1
		for col := 4; col < Columns; col++ {
			g.board[Rows-1][col] = 1
		}
		g.piece = Spawn(PieceI)
		g.piece.Translate(-2, 0)

		s := g.Advance(0, Intents{HardDrop: true})
		assert.Equal(t, tt.level, s.Level, "lines=%d", tt.lines)
	}
}

func TestGravity(t *testing.T) {
	g := startGame(t, 1)
	start := g.Snapshot().Active

	s := g.Advance(time.Second, Intents{})
	assert.Equal(t, start, s.Active, "gravity fires only after the delay has passed")

	s = g.Advance(time.Millisecond, Intents{})
	want := start
	want.Translate(0, 1)
	assert.Equal(t, want, s.Active)
}

func TestSoftDrop(t *testing.T) {
	g := startGame(t, 1)
	start := g.Snapshot().Active

	s := g.Advance(60*time.Millisecond, Intents{SoftDrop: true})
	want := start
	want.Translate(0, 1)
	assert.Equal(t, want, s.Active)
	assert.Equal(t, 1, s.Score)

	s = g.Advance(10*time.Millisecond, Intents{SoftDrop: true})
	assert.Equal(t, want, s.Active)
}

func TestGravityLocksAtFloor(t *testing.T) {
	g := startGame(t, 1)
	g.piece = Spawn(PieceO)
	g.piece.Translate(0, Rows-2)

	s := g.Advance(time.Second+time.Millisecond, Intents{})

	assert.True(t, s.Events.Has(EventLocked))
	assert.Equal(t, PieceO+1, s.Board[Rows-1][4])
	assert.Equal(t, PieceO+1, s.Board[Rows-2][5])
	assert.Equal(t, 2, s.Played)
}

func TestHold(t *testing.T) {
	const seed = 99
	order := NewBag(rand.New(rand.NewSource(seed)))
	first, second := order.Next(), order.Next()

	g := startGame(t, seed)
	require.Equal(t, first, g.Snapshot().Active.Color)

	// Empty slot: the piece goes into hold and the bag deals the next one.
	s := g.Advance(0, Intents{Hold: true})
	assert.Equal(t, first, s.Held)
	assert.Equal(t, Spawn(second), s.Active)
	assert.Equal(t, 2, s.Played)
	assert.True(t, s.Events.Has(EventHeld))

	// Second hold before a lock does nothing.
	s = g.Advance(0, Intents{Hold: true})
	assert.Equal(t, first, s.Held)
	assert.Equal(t, Spawn(second), s.Active)
	assert.False(t, s.Events.Has(EventHeld))

	// A lock re-enables hold; this time the pieces swap.
	s = g.Advance(0, Intents{HardDrop: true})
	third := order.Next()
	require.Equal(t, Spawn(third), s.Active)

	s = g.Advance(0, Intents{Hold: true})
	assert.Equal(t, third, s.Held)
	assert.Equal(t, Spawn(first), s.Active, "swapped piece respawns at the spawn offset")
	assert.Equal(t, 3, s.Played)
}

func TestHoldSwapRespawnsAtTop(t *testing.T) {
	g := startGame(t, 8)
	g.Advance(0, Intents{Hold: true})
	g.Advance(0, Intents{HardDrop: true})

	g.piece.Translate(0, 6)
	held := g.Snapshot().Held

	s := g.Advance(0, Intents{Hold: true})
	assert.Equal(t, Spawn(held), s.Active)
}

func TestPauseFreezesPlay(t *testing.T) {
	g := startGame(t, 1)
	start := g.Snapshot().Active

	s := g.Advance(0, Intents{PauseToggle: true})
	assert.Equal(t, StatePaused, s.State)
	assert.True(t, s.Events.Has(EventPaused))
	assert.True(t, g.State().Paused)

	s = g.Advance(10*time.Second, Intents{MoveDx: 1, HardDrop: true})
	assert.Equal(t, StatePaused, s.State)
	assert.Equal(t, start, s.Active)
	assert.Equal(t, 0, s.Score)

	s = g.Advance(0, Intents{PauseToggle: true})
	assert.Equal(t, StateCountingDown, s.State)
	assert.Equal(t, countdownSeconds, s.Countdown)
	assert.True(t, s.Events.Has(EventResumed))

	s = g.Advance(time.Second, Intents{})
	assert.Equal(t, 2, s.Countdown)

	s = g.Advance(2*time.Second, Intents{})
	assert.Equal(t, StateActive, s.State)
	assert.Equal(t, start, s.Active)
}

func TestPauseToggleConsumesTick(t *testing.T) {
	g := startGame(t, 1)
	start := g.Snapshot().Active

	s := g.Advance(0, Intents{PauseToggle: true, MoveDx: 1})
	assert.Equal(t, start, s.Active)
}

func TestGameOver(t *testing.T) {
	g := startGame(t, 1)
	for col := 0; col < Columns-1; col++ {
		g.board[2][col] = 1
	}
	g.piece = Spawn(PieceO)

	s := g.Advance(0, Intents{HardDrop: true})
	require.True(t, s.GameOver())
	assert.True(t, s.Events.Has(EventGameOver))
	assert.True(t, g.State().GameOver)

	// Terminal: pause and play intents are ignored until Reset.
	s = g.Advance(0, Intents{PauseToggle: true})
	assert.Equal(t, StateGameOver, s.State)

	board, score := s.Board, s.Score
	s = g.Advance(time.Minute, Intents{HardDrop: true, MoveDx: -1})
	assert.Equal(t, board, s.Board)
	assert.Equal(t, score, s.Score)
}

func TestDeterminism(t *testing.T) {
	g1 := New()
	g1.Reset(core.RuntimeConfig{Seed: 12345})
	g2 := New()
	g2.Reset(core.RuntimeConfig{Seed: 12345})

	dt := 16 * time.Millisecond
	for i := range 2000 {
		in := Intents{}
		switch i % 97 {
		case 10:
			in.MoveDx = -1
		case 20:
			in.RotateCW = true
		case 30:
			in.MoveDx = 1
		case 50:
			in.HardDrop = true
		case 60:
			in.Hold = true
		}
		assert.Equal(t, g1.Advance(dt, in), g2.Advance(dt, in), "tick %d", i)
	}
}

func TestStepReportsCues(t *testing.T) {
	g := startGame(t, 1)

	in := core.NewInputFrame()
	in.Set(core.ActionHardDrop)
	res := g.Step(0, in)

	assert.Contains(t, res.Cues, core.CueHardDrop)
	assert.Contains(t, res.Cues, core.CueLock)
	assert.NotZero(t, res.State.Score)
}

func TestIntentsFromFrame(t *testing.T) {
	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	in.Set(core.ActionRight)
	in.Set(core.ActionRotateCCW)
	in.Set(core.ActionSoftDrop)
	in.Set(core.ActionPause)

	it := IntentsFromFrame(in)
	assert.Equal(t, Intents{MoveDx: 1, RotateCCW: true, SoftDrop: true, PauseToggle: true}, it)

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	left.Set(core.ActionHold)
	left.Set(core.ActionHardDrop)
	assert.Equal(t, Intents{MoveDx: -1, Hold: true, HardDrop: true}, IntentsFromFrame(left))

	assert.Equal(t, Intents{}, IntentsFromFrame(core.NewInputFrame()))
}

func TestEvents(t *testing.T) {
	e := EventLocked | EventLinesCleared
	assert.Equal(t, "locked|lines_cleared", e.String())
	assert.Equal(t, []core.Cue{core.CueLock, core.CueLineClear}, e.Cues())
	assert.True(t, e.Has(EventLocked))
	assert.False(t, e.Has(EventLocked|EventGameOver))

	assert.Empty(t, EventPaused.Cues())
	assert.Equal(t, "", Events(0).String())
}
