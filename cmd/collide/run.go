package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/collide/internal/config"
	"github.com/vovakirdan/collide/internal/diag"
	"github.com/vovakirdan/collide/internal/registry"
	"github.com/vovakirdan/collide/internal/sim"
	"github.com/vovakirdan/collide/internal/storage"
	"github.com/vovakirdan/collide/internal/world"
)

var (
	flagTicks     int
	flagConfig    string
	flagWorkers   int
	flagRealtime  bool
	flagLogEvents bool
	flagRecord    bool
)

var runCmd = &cobra.Command{
	Use:   "run <scene>",
	Short: "Run a scene",
	Long: `Run the specified scene headless and print a summary.

By default the simulation runs as fast as possible for --ticks ticks.
With --realtime one tick is stepped per 1/tps seconds of wall-clock time,
until --ticks ticks have run or Ctrl+C is pressed (--ticks 0 runs forever).

Examples:
  collide run pong
  collide run pong --ticks 3600 --seed 42
  collide run billiards --workers 8 --record
  collide run billiards --config ./crowded.yaml
  collide run pong --realtime --ticks 0 --log-events`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to simulate")
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	runCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Detector workers (overrides the scene config)")
	runCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks to wall-clock time")
	runCmd.Flags().BoolVar(&flagLogEvents, "log-events", false, "Log every collision event")
	runCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the run in the collision journal")
}

func runRun(cmd *cobra.Command, args []string) {
	sceneID := args[0]

	// Check if scene exists
	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'collide list' to see available scenes.")
		os.Exit(1)
	}
	if !flagRealtime && flagTicks <= 0 {
		fail("--ticks must be positive unless --realtime is set")
	}

	logger := newLogger()
	rt := runtimeConfig()

	cfg, err := config.LoadScene(sceneID, flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if cmd.Flags().Changed("workers") {
		cfg.Detector.Workers = flagWorkers
	}

	scene, err := registry.Create(sceneID)
	if err != nil {
		fail("%v", err)
	}
	w := world.New()
	if err := scene.Setup(w, cfg, rt); err != nil {
		fail("setting up %s: %v", sceneID, err)
	}
	logger.Debug("scene ready", "scene", sceneID, "entities", w.Len(), "seed", rt.Seed)

	var sinks diag.Multi
	if flagLogEvents {
		sinks = append(sinks, diag.NewLogSink(logger, w.Name).WithLevel(log.InfoLevel))
	}

	var (
		store   *storage.Store
		journal *storage.Journal
	)
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fail("opening collision journal: %v", err)
		}
		defer store.Close()

		runID, err := store.CreateRun(sceneID, rt, cfg.Detector.Workers)
		if err != nil {
			store.Close()
			fail("%v", err)
		}
		journal = store.NewJournal(runID)
		sinks = append(sinks, journal)
	}

	opts := sim.Options{
		Workers:        cfg.Detector.Workers,
		SkipSeparating: cfg.Response.SkipSeparating,
		Controller:     scene,
		Logger:         logger,
	}
	if len(sinks) > 0 {
		opts.Sink = sinks
	}

	runner := sim.Runner{
		Pipeline: sim.NewPipeline(w, opts),
		Config:   rt,
	}

	var stats sim.Stats
	if flagRealtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		stats, err = runner.RunPaced(ctx, flagTicks)
		stop()
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("run stopped", "error", err)
		}
	} else {
		stats = runner.Run(flagTicks)
	}

	hash := runner.Pipeline.Snapshot().Hash()

	sum := summary{
		Title:   scene.Title(),
		Runtime: rt,
		Workers: cfg.Detector.Workers,
		Stats:   stats,
		Hash:    hash,
		Names:   w.Name,
	}

	if journal != nil {
		sum.RunID = journal.RunID()
		if err := journal.Flush(); err != nil {
			logger.Error("could not record collisions", "error", err)
		}
		if err := store.FinishRun(journal.RunID(), stats.Ticks, stats.Collisions, hash); err != nil {
			logger.Error("could not finish run", "error", err)
		}
	}

	styles := plainStyles()
	if term.IsTerminal(int(os.Stdout.Fd())) {
		styles = colorStyles()
	}
	fmt.Print(sum.Render(styles))
}
