package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/collide/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `Display the most recent runs recorded with 'collide run --record'.

Examples:
  collide runs
  collide runs --limit 5`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening collision journal: %v\n", err)
		os.Exit(1)
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'collide run <scene> --record' to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-36s  %-10s  %-20s  %-7s  %-10s  %-16s  %s\n",
		"ID", "Scene", "Seed", "Ticks", "Collisions", "Hash", "Date")
	fmt.Printf("  %-36s  %-10s  %-20s  %-7s  %-10s  %-16s  %s\n",
		"--", "-----", "----", "-----", "----------", "----", "----")

	// Print runs
	for _, r := range runs {
		hash := r.Hash
		if !r.Finished() {
			hash = "(unfinished)"
		}
		fmt.Printf("  %-36s  %-10s  %-20d  %-7d  %-10d  %-16s  %s\n",
			r.ID, r.SceneID, r.Seed, r.Ticks, r.Collisions, hash, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
