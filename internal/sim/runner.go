package sim

import (
	"context"
	"time"

	"github.com/vovakirdan/collide/internal/collision"
	"github.com/vovakirdan/collide/internal/core"
)

// Stats summarizes a run.
type Stats struct {
	Ticks      int
	Collisions int
	Busiest    int    // Most collisions seen in one tick
	BusiestAt  uint64 // Tick of Busiest
	ByEntity   map[core.EntityID]int
	Elapsed    time.Duration
}

func (s *Stats) record(b *collision.Batch) {
	s.Ticks++
	s.Collisions += b.Len()
	if b.Len() > s.Busiest {
		s.Busiest = b.Len()
		s.BusiestAt = b.Tick()
	}
	for e := range b.All() {
		s.ByEntity[e.A]++
		s.ByEntity[e.B]++
	}
}

// Runner drives a pipeline with a fixed timestep.
type Runner struct {
	Pipeline *Pipeline
	Config   core.RuntimeConfig

	// OnTick, if set, sees each batch before it is discarded.
	OnTick func(b *collision.Batch)
}

// Run advances ticks steps as fast as possible.
func (r *Runner) Run(ticks int) Stats {
	stats := Stats{ByEntity: make(map[core.EntityID]int)}
	start := time.Now()
	dt := r.Config.StepSeconds()

	for range ticks {
		r.step(dt, &stats)
	}

	stats.Elapsed = time.Since(start)
	return stats
}

// RunPaced advances one step per tick interval of wall-clock time until ticks
// steps have run or ctx is done. ticks <= 0 runs until ctx is done. A step
// in progress always completes; cancellation is observed between steps and
// reported as ctx.Err().
func (r *Runner) RunPaced(ctx context.Context, ticks int) (Stats, error) {
	stats := Stats{ByEntity: make(map[core.EntityID]int)}
	start := time.Now()
	dt := r.Config.StepSeconds()

	ticker := time.NewTicker(r.Config.StepDuration())
	defer ticker.Stop()

	for ticks <= 0 || stats.Ticks < ticks {
		select {
		case <-ctx.Done():
			stats.Elapsed = time.Since(start)
			return stats, ctx.Err()
		case <-ticker.C:
			r.step(dt, &stats)
		}
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

func (r *Runner) step(dt float64, stats *Stats) {
	batch := r.Pipeline.Step(dt)
	stats.record(batch)
	if r.OnTick != nil {
		r.OnTick(batch)
	}
}
