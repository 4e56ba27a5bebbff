package replay

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Player steps a game through recorded frames.
type Player struct {
	game   registry.Game
	replay storage.Replay
	frames []storage.Frame
	pos    int
	last   core.StepResult
}

// NewPlayer resets game with the replay's seed and prepares playback.
func NewPlayer(game registry.Game, r storage.Replay, frames []storage.Frame) *Player {
	cfg := core.DefaultConfig()
	cfg.Seed = r.Seed
	if r.TickRate > 0 {
		cfg.TickRate = r.TickRate
	}
	game.Reset(cfg)

	return &Player{
		game:   game,
		replay: r,
		frames: frames,
		last:   core.StepResult{State: game.State()},
	}
}

// Game returns the game being driven.
func (p *Player) Game() registry.Game {
	return p.game
}

// Replay returns the replay being played.
func (p *Player) Replay() storage.Replay {
	return p.replay
}

// Done reports whether every frame has been played.
func (p *Player) Done() bool {
	return p.pos >= len(p.frames)
}

// Progress returns the number of frames played and the total.
func (p *Player) Progress() (pos, total int) {
	return p.pos, len(p.frames)
}

// NextDelay returns the recorded time before the next frame, or zero at the end.
func (p *Player) NextDelay() time.Duration {
	if p.Done() {
		return 0
	}
	return p.frames[p.pos].DT
}

// Step plays one frame. It returns false once the replay is exhausted.
func (p *Player) Step() (core.StepResult, bool) {
	if p.Done() {
		return p.last, false
	}
	f := p.frames[p.pos]
	p.pos++
	p.last = p.game.Step(f.DT, core.FrameFromMask(f.Mask))
	return p.last, true
}

// RunToEnd plays every remaining frame and returns the final result.
func (p *Player) RunToEnd() core.StepResult {
	for {
		if _, ok := p.Step(); !ok {
			return p.last
		}
	}
}
