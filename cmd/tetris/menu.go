package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a piece generator, then play",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play with the selected
generator. Tab opens the replay browser. Leaving a game (Esc while
paused or after game over) returns to the menu.

Every game played from the menu is recorded.

Examples:
  tetris menu
  tetris menu --db ./replays.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("tetris", true)
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	rt := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(rt, store != nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		rt = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsReplays {
			goBack, err := tui.RunReplays(store, rt.ScreenW, rt.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !goBack {
				return
			}
			continue
		}

		cfg, err := loadGameConfig(menuResult.GeneratorID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		state, err := tui.Run(tui.Options{
			Config:  cfg,
			Runtime: rt,
			Store:   store,
			Record:  store != nil,
			Logger:  logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		logger.Info("left game", "score", state.Score, "level", state.Level)

		// A fixed seed would replay the same game every round.
		rt.Seed = 0
	}
}
