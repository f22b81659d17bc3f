package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/collide/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenes",
	Long:  `Shows a list of all scenes registered in the simulator.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	scenes := registry.List()

	if len(scenes) == 0 {
		fmt.Println("No scenes available.")
		return
	}

	fmt.Println("Available scenes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range scenes {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print scenes
	for _, s := range scenes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'collide run <id>' to run a scene.")
}
