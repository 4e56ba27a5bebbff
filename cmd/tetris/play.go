package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagGame string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game.

Default controls (change them in the config file):
  ←/→ or A/D     - Move
  ↑, X or W      - Rotate clockwise
  Z              - Rotate counter-clockwise
  ↓ or S         - Soft drop
  Space          - Hard drop
  C              - Hold
  P/Esc          - Pause
  R              - Restart (after game over)
  M              - Sound on/off
  ?              - Help
  Q/Ctrl+C       - Quit

Examples:
  tetris play
  tetris play --seed 42
  tetris play --config ./my-tetris.yaml --no-record`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagGame, "game", "tetris", "Game mode to play")
	rootCmd.Flags().StringVar(&flagGame, "game", "tetris", "Game mode to play")
}

// terminalSize returns the terminal size, or 80x24 when it is unknown.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return err
	}

	game, err := registry.Create(flagGame)
	if err != nil {
		return fmt.Errorf("%w (run 'tetris list' to see available games)", err)
	}

	width, height := terminalSize()
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var store *storage.Store
	if !flagNoRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			// Continue without recording - the game still works
			logger.Warn("could not open replay database", "error", err)
			fmt.Fprintf(os.Stderr, "Warning: replays disabled: %v\n", err)
			store = nil
		}
	}

	runErr := tui.Run(game, tui.Options{
		Config:  cfg,
		Runtime: runtime,
		Store:   store,
		Logger:  logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}
