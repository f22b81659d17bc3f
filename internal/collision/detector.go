package collision

import (
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/collide/internal/core"
)

// Body is an entity's collider resolved into world space for one tick.
type Body struct {
	Entity core.EntityID
	Rect   core.Rect
}

// Sink observes every emitted event. It is purely diagnostic; nothing in the
// pipeline depends on what a sink does.
type Sink interface {
	Collision(e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event)

// Collision implements Sink.
func (f SinkFunc) Collision(e Event) {
	f(e)
}

// minChunk keeps tiny scenes on the calling goroutine.
const minChunk = 16

// Detector finds every overlapping pair among a set of bodies.
// The zero value scans sequentially with no sink.
type Detector struct {
	// Workers caps how many goroutines share the scan. Values below 2 scan
	// on the calling goroutine.
	Workers int

	// Sink, if set, receives each event after the batch is complete.
	Sink Sink
}

// Detect tests every unordered pair of bodies exactly once and returns one
// event per overlapping pair. Pairs carrying the same entity are skipped.
// The event order is the order of a sequential i<j scan, whatever Workers is.
func (d *Detector) Detect(tick uint64, bodies []Body) *Batch {
	var events []Event
	if d.Workers < 2 || len(bodies) < 2*minChunk {
		events = scanRange(tick, bodies, 0, len(bodies))
	} else {
		events = d.scanParallel(tick, bodies)
	}

	batch := NewBatch(tick, events)
	if d.Sink != nil {
		for _, e := range events {
			d.Sink.Collision(e)
		}
	}
	return batch
}

// scanParallel splits the outer index into contiguous chunks. Early rows
// hold more pairs than late ones, so chunks are small enough to balance.
func (d *Detector) scanParallel(tick uint64, bodies []Body) []Event {
	chunk := max(minChunk, len(bodies)/(d.Workers*4))
	chunks := (len(bodies) + chunk - 1) / chunk
	results := make([][]Event, chunks)

	var g errgroup.Group
	g.SetLimit(d.Workers)
	for c := range chunks {
		from := c * chunk
		to := min(from+chunk, len(bodies))
		g.Go(func() error {
			results[c] = scanRange(tick, bodies, from, to)
			return nil
		})
	}
	//nolint:errcheck // workers never fail
	g.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	events := make([]Event, 0, total)
	for _, r := range results {
		events = append(events, r...)
	}
	return events
}

// scanRange tests pairs (i, j) with from <= i < to and i < j.
func scanRange(tick uint64, bodies []Body, from, to int) []Event {
	var events []Event
	for i := from; i < to; i++ {
		l := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			r := bodies[j]
			if l.Entity == r.Entity {
				continue
			}
			if !l.Rect.Intersects(r.Rect) {
				continue
			}
			events = append(events, Event{
				Tick:  tick,
				A:     l.Entity,
				RectA: l.Rect,
				B:     r.Entity,
				RectB: r.Rect,
			})
		}
	}
	return events
}
