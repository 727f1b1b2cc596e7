package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagNoRecord    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tetris SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a generator picker menu.
Finished games are recorded in the server's replay database unless
--no-record is given.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tetris/host_key

Examples:
  tetris serve                           # Listen on :23235 with auto-generated key
  tetris serve --ssh :2222               # Listen on port 2222
  tetris serve --host-key ./my_host_key  # Use specific host key
  tetris serve --db ./replays.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record games")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runServe(_ *cobra.Command, _ []string) {
	game, err := loadGameConfig("")
	if err != nil {
		fatal("%v", err)
	}

	logger, closeLog, err := newLogger("tetris-ssh", false)
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        game,
	}
	if flagNoRecord {
		cfg.DBPath = ""
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fatal("creating server: %v", err)
	}

	fmt.Printf("Starting tetris SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
