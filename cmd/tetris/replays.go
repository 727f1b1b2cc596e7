package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded games",
	Long: `Display the most recent recorded games.

Examples:
  tetris replays
  tetris replays --limit 50
  tetris replays --browse`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded game",
	Long: `Replay a recorded game headlessly from its seed and event log,
print the final board and report whether it matches the recorded result.

Examples:
  tetris replay 3`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to show")
	replaysCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive replay browser")
}

func runReplays(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening replay database: %v", err)
	}
	defer store.Close()

	if flagBrowse {
		rt := runtimeConfig()
		if _, err := tui.RunReplays(store, rt.ScreenW, rt.ScreenH); err != nil {
			fatal("%v", err)
		}
		return
	}

	replays, err := store.RecentReplays(flagLimit)
	if err != nil {
		fatal("retrieving replays: %v", err)
	}

	fmt.Println("Recorded games")
	fmt.Println()

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play --record' to record one!")
		return
	}

	fmt.Printf("  %-5s  %-6s  %-5s  %-9s  %-7s  %-8s  %s\n",
		"ID", "Score", "Level", "Generator", "Events", "Time", "Date")
	fmt.Printf("  %-5s  %-6s  %-5s  %-9s  %-7s  %-8s  %s\n",
		"--", "-----", "-----", "---------", "------", "----", "----")
	for _, r := range replays {
		fmt.Printf("  %-5d  %-6d  %-5d  %-9s  %-7d  %-8s  %s\n",
			r.ID, r.Score, r.Level, r.Generator, r.EventCount,
			r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fatal("invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening replay database: %v", err)
	}
	defer store.Close()

	r, err := store.Replay(id)
	if errors.Is(err, storage.ErrReplayNotFound) {
		fatal("no replay with id %d (run 'tetris replays')", id)
	}
	if err != nil {
		fatal("%v", err)
	}

	snap, ok, err := storage.Verify(*r)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Replay #%d  seed %d  generator %s  %d events\n", r.ID, r.Seed, r.Generator, r.EventCount)
	fmt.Println()
	fmt.Println(snap.Field.String())
	fmt.Println()
	fmt.Printf("State %s, score %d, level %d, lines %d\n", snap.State, snap.Score, snap.Level, snap.Lines)
	if ok {
		fmt.Println("Matches the recorded result.")
		return
	}
	fmt.Printf("Diverged: recorded score %d, level %d, lines %d\n", r.Score, r.Level, r.Lines)
}
