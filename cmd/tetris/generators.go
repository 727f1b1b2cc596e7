package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var generatorsCmd = &cobra.Command{
	Use:   "generators",
	Short: "List all piece generators",
	Long:  `Shows every piece generator that can deal the next-piece queue.`,
	Run:   runGenerators,
}

func runGenerators(_ *cobra.Command, _ []string) {
	gens := registry.List()

	if len(gens) == 0 {
		fmt.Println("No generators available.")
		return
	}

	fmt.Println("Available generators:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range gens {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range gens {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'tetris play --generator <id>' to play with one.")
}
