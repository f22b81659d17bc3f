// collide is a headless 2D AABB collision simulator.
//
// Usage:
//
//	collide list               - List available scenes
//	collide run <scene>        - Run a scene and print a summary
//	collide runs               - List recorded runs
//	collide events <run-id>    - Show the collisions of a recorded run
//
// Global flags:
//
//	--tps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set journal path (default: ~/.collide/journal.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/collide/internal/core"

	// Import scenes to register them
	_ "github.com/vovakirdan/collide/internal/scenes/billiards"
	_ "github.com/vovakirdan/collide/internal/scenes/pong"
)

var (
	// Global flags
	flagTPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "collide",
	Short: "Collide - headless AABB collision simulator",
	Long: `Collide runs axis-aligned bounding box collision scenes at a fixed
tick rate, without rendering, and reports what collided.

Available commands:
  list     - Show all available scenes
  run      - Run a scene
  runs     - List recorded runs
  events   - Show the collisions of a recorded run

Examples:
  collide list
  collide run pong --ticks 3600
  collide run billiards --workers 8 --record
  collide run pong --realtime --log-events
  collide events 6f1c...`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.collide/journal.db", "Path to collision journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(eventsCmd)
}

// newLogger builds the process logger at the level given by --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "collide",
	})

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// runtimeConfig builds the runtime config from the global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.RuntimeConfig{
		TickRate: flagTPS,
		Seed:     flagSeed,
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
