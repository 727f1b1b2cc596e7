package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagGenerator  string
	flagRecord     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing immediately.

Controls:
  Left/Right, h/l  - Move
  Up, x            - Rotate
  Down, j          - Soft drop (while held)
  Space            - Hard drop
  C                - Hold
  P                - Pause
  Enter            - New game (after game over)
  Esc              - Leave (while paused or after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy    - Longer lock delay, more rearms
  normal  - Config values unchanged
  hard    - Shorter lock delay, fewer rearms

Examples:
  tetris play
  tetris play --generator bag
  tetris play --difficulty hard
  tetris play --seed 42 --record
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagGenerator, "generator", "", "Piece generator (overrides config)")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the game in the replay database")
}

// loadGameConfig loads the config and applies the generator and difficulty flags.
func loadGameConfig(generator string) (config.TetrisConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if generator != "" {
		if !registry.Exists(generator) {
			return cfg, fmt.Errorf("unknown generator %q (run 'tetris generators')", generator)
		}
		cfg.Queue.Generator = generator
	}
	return cfg, cfg.Validate()
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig(flagGenerator)
	if err != nil {
		fatal("%v", err)
	}

	logger, closeLog, err := newLogger("tetris", true)
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
			// Continue without recording - game still works
			store = nil
		}
	}

	state, runErr := tui.Run(tui.Options{
		Config:  cfg,
		Runtime: runtimeConfig(),
		Store:   store,
		Record:  store != nil,
		Logger:  logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatal("running game: %v", runErr)
	}
	fmt.Printf("Score %d, level %d\n", state.Score, state.Level)
}
