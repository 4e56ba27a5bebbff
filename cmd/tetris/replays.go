package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagPrint    bool
	flagPrune    int
	flagHeadless bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded games",
	Long: `Open an interactive list of recorded games. Pick one to watch it.

Examples:
  tetris replays
  tetris replays --print
  tetris replays --prune 50`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch a recorded game",
	Long: `Play back a recorded game. The id may be shortened to any unique prefix.

With --headless the replay runs without a UI and the final state is printed,
which is handy for checking that a recording reproduces.

Examples:
  tetris replay 1f0c2a9b
  tetris replay 1f0c --headless`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPrint, "print", false, "Print the list instead of opening the browser")
	replaysCmd.Flags().IntVar(&flagPrune, "prune", -1, "Keep only the N newest replays")
	replayCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without UI and print the final state")
}

func runReplays(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagPrune >= 0 {
		n, err := store.PruneReplays(flagPrune)
		if err != nil {
			return err
		}
		logger.Info("pruned replays", "deleted", n, "kept", flagPrune)
		fmt.Printf("Deleted %d replay(s).\n", n)
		return nil
	}

	if flagPrint {
		return printReplays(store)
	}

	width, height := terminalSize()
	r, ok, err := tui.RunBrowser(store, logger, width, height)
	if err != nil || !ok {
		return err
	}
	return watch(store, r)
}

func printReplays(store *storage.Store) error {
	replays, err := store.ListReplays(50)
	if err != nil {
		return err
	}
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		return nil
	}

	fmt.Printf("%-10s %-18s %-9s %s\n", "ID", "Recorded", "Length", "Seed")
	fmt.Printf("%-10s %-18s %-9s %s\n", "--", "--------", "------", "----")
	for _, r := range replays {
		fmt.Printf("%-10s %-18s %-9s %d\n",
			r.ShortID(),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			tui.ReplayLength(r),
			r.Seed,
		)
	}
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.FindReplay(args[0])
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("no replay matches %q (run 'tetris replays --print')", args[0])
	case errors.Is(err, storage.ErrAmbiguous):
		return fmt.Errorf("%q matches several replays, use a longer prefix", args[0])
	case err != nil:
		return err
	}

	return watch(store, r)
}

// watch loads a replay's frames and plays them, in the terminal or headless.
func watch(store *storage.Store, r storage.Replay) error {
	frames, err := store.Frames(r.ID)
	if err != nil {
		return err
	}
	game, err := registry.Create(r.GameID)
	if err != nil {
		return err
	}

	logger.Info("watching replay", "id", r.ID, "frames", len(frames), "headless", flagHeadless)
	p := replay.NewPlayer(game, r, frames)

	if !flagHeadless {
		cfg, err := config.LoadTetris(flagConfig)
		if err != nil {
			return err
		}
		width, height := terminalSize()
		return tui.RunReplay(p, cfg, width, height)
	}

	res := p.RunToEnd()
	fmt.Printf("Replay %s: %d frames\n", r.ShortID(), len(frames))
	if g, ok := game.(*tetris.Game); ok {
		s := g.Snapshot()
		fmt.Printf("State:  %s\n", s.State)
		fmt.Printf("Score:  %d\n", s.Score)
		fmt.Printf("Lines:  %d\n", s.Lines)
		fmt.Printf("Level:  %d\n", s.Level)
		fmt.Printf("Pieces: %d\n", s.Played)
		return nil
	}
	fmt.Printf("Score:  %d\n", res.State.Score)
	fmt.Printf("Over:   %v\n", res.State.GameOver)
	return nil
}
