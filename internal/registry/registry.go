// Package registry maps game ids to constructors. Game packages register
// from init, so the CLI and the replay player can build a game from the id
// stored with a recording.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ErrUnknownGame is returned by Create for an id nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what the platform drives. Implementations hold pure game logic;
// input mapping, timing and terminal output live in the platform.
type Game interface {
	// ID is the stable identifier saved with replays.
	ID() string
	Title() string

	// Reset starts a fresh session. cfg.Seed fixes every random choice, so
	// a seed plus the recorded input reproduces the session exactly.
	Reset(cfg core.RuntimeConfig)

	// Step runs one tick. dt is the wall time since the previous tick.
	Step(dt time.Duration, in core.InputFrame) core.StepResult

	// Render draws into dst. dst is cleared first.
	Render(dst *core.Screen)

	State() core.GameState
}

type GameInfo struct {
	ID    string
	Title string
}

type Factory func() Game

type entry struct {
	title  string
	create Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a game. It panics on a duplicate id, which can only be a
// programming error.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: f().Title(), create: f}
}

// List returns every registered game ordered by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create returns a new, not yet reset, instance of the game.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.create(), nil
}
