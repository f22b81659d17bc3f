package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/collide/internal/storage"
)

var (
	flagEventsLimit int
	flagPairs       int
)

var eventsCmd = &cobra.Command{
	Use:   "events <run-id>",
	Short: "Show the collisions of a recorded run",
	Long: `Display the collision events recorded for a run, in detection order,
followed by the entity pairs that collided most often.

Examples:
  collide events 6f1c0a52-...
  collide events 6f1c0a52-... --limit 0 --pairs 20`,
	Args: cobra.ExactArgs(1),
	Run:  runEvents,
}

func init() {
	eventsCmd.Flags().IntVar(&flagEventsLimit, "limit", 50, "Maximum number of events to show (0 = all)")
	eventsCmd.Flags().IntVar(&flagPairs, "pairs", 10, "Number of most frequent pairs to show")
}

func runEvents(cmd *cobra.Command, args []string) {
	runID := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening collision journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	run, err := store.RunByID(runID)
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	if run == nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: unknown run %q\n", runID)
		fmt.Fprintln(os.Stderr, "Run 'collide runs' to see recorded runs.")
		os.Exit(1)
	}

	records, err := store.Collisions(runID, flagEventsLimit)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	fmt.Printf("Run %s - %s, seed %d, %d ticks, %d collisions\n",
		run.ID, run.SceneID, run.Seed, run.Ticks, run.Collisions)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No collisions recorded.")
		return
	}

	// Print header
	fmt.Printf("  %-6s  %-6s  %-30s  %-6s  %s\n", "Tick", "A", "Rect A", "B", "Rect B")
	fmt.Printf("  %-6s  %-6s  %-30s  %-6s  %s\n", "----", "-", "------", "-", "------")

	// Print events
	for _, r := range records {
		fmt.Printf("  %-6d  %-6s  %-30s  %-6s  %s\n", r.Tick, r.EntityA, r.RectA, r.EntityB, r.RectB)
	}
	if flagEventsLimit > 0 && len(records) == flagEventsLimit && run.Collisions > flagEventsLimit {
		fmt.Printf("  ... %d more\n", run.Collisions-flagEventsLimit)
	}

	if flagPairs <= 0 {
		return
	}
	pairs, err := store.PairCounts(runID, flagPairs)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	fmt.Println()
	fmt.Println("Most frequent pairs:")
	for _, p := range pairs {
		fmt.Printf("  %-6s  %-6s  %d\n", p.EntityA, p.EntityB, p.Count)
	}
}
