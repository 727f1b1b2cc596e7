// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play              - Play a game
//	tetris menu              - Pick a piece generator interactively, then play
//	tetris generators        - List available piece generators
//	tetris serve             - Start SSH server for remote play
//	tetris replays           - List recorded games
//	tetris replay <id>       - Re-simulate a recorded game
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible piece order
//	--db <path>          - Set database path (default: ~/.tetris/replays.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "TUI Tetris - stack falling blocks in your terminal",
	Long: `TUI Tetris is a terminal falling-block puzzle game with
lock-down timing, hold, a next-piece queue and deterministic replays.

Available commands:
  play        - Play a game directly
  menu        - Interactive generator picker
  generators  - Show all piece generators
  serve       - Start SSH server for remote play
  replays     - List recorded games
  replay      - Re-simulate a recorded game

Examples:
  tetris play
  tetris play --generator bag --record
  tetris menu
  tetris serve --ssh :2222
  tetris replay 3`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(generatorsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
