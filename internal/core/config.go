package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current game state.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Cues lists feedback the platform may act on this tick
	// (terminal bell, log lines). Empty most ticks.
	Cues []Cue
}

// Cue is a platform-level feedback signal raised by a game step.
type Cue string

const (
	CueMove       Cue = "move"
	CueRotate     Cue = "rotate"
	CueHardDrop   Cue = "hard_drop"
	CueHold       Cue = "hold"
	CueLock       Cue = "lock"
	CueLineClear  Cue = "line_clear"
	CueLevelUp    Cue = "level_up"
	CueGameOver   Cue = "game_over"
	CueGameActive Cue = "game_active"
)
