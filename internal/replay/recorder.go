// Package replay records the per-tick input of a session into the replay
// journal and plays recorded sessions back through a fresh game.
package replay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// flushEvery is how many frames are buffered before they are written out
// (about five seconds at 60 ticks per second).
const flushEvery = 300

// Recorder buffers frames for the current session and writes them to the
// store in batches. A Recorder with a nil store records nothing.
type Recorder struct {
	store  *storage.Store
	replay storage.Replay
	tick   int
	buf    []storage.Frame
	active bool
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store *storage.Store) *Recorder {
	return &Recorder{store: store}
}

// Enabled reports whether frames are being persisted.
func (r *Recorder) Enabled() bool {
	return r.store != nil
}

// Start flushes the previous session, if any, and opens a new replay.
func (r *Recorder) Start(gameID string, seed int64, tickRate int) error {
	if r.store == nil {
		return nil
	}
	if err := r.Flush(); err != nil {
		return err
	}

	rep, err := r.store.CreateReplay(gameID, seed, tickRate)
	if err != nil {
		r.active = false
		return fmt.Errorf("replay: cannot start recording: %w", err)
	}
	r.replay = rep
	r.tick = 0
	r.buf = r.buf[:0]
	r.active = true
	return nil
}

// Record appends the input of one tick.
func (r *Recorder) Record(dt time.Duration, in core.InputFrame) error {
	if !r.active {
		return nil
	}
	r.tick++
	r.buf = append(r.buf, storage.Frame{Tick: r.tick, DT: dt, Mask: in.Mask()})
	if len(r.buf) >= flushEvery {
		return r.Flush()
	}
	return nil
}

// Flush writes buffered frames. On failure recording stops for the rest of
// the session so the stored replay never has gaps.
func (r *Recorder) Flush() error {
	if !r.active || len(r.buf) == 0 {
		return nil
	}
	if err := r.store.AppendFrames(r.replay.ID, r.buf); err != nil {
		r.active = false
		return fmt.Errorf("replay: cannot save frames for %s: %w", r.replay.ShortID(), err)
	}
	r.buf = r.buf[:0]
	return nil
}

// Replay returns the replay being recorded. The ID is empty before Start.
func (r *Recorder) Replay() storage.Replay {
	return r.replay
}

// Ticks returns how many frames the current session has recorded.
func (r *Recorder) Ticks() int {
	return r.tick
}
