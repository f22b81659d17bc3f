// Package sim runs the collision pipeline once per fixed tick, in a fixed
// stage order: control, move, clamp, resolve world rects, detect, avoid,
// bounce. Responses therefore always act on geometry measured after this
// tick's movement.
package sim

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/collide/internal/collision"
	"github.com/vovakirdan/collide/internal/response"
	"github.com/vovakirdan/collide/internal/world"
)

// Controller adjusts velocities before movement, e.g. a CPU paddle.
type Controller interface {
	Control(w *world.World, dt float64)
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(w *world.World, dt float64)

// Control implements Controller.
func (f ControllerFunc) Control(w *world.World, dt float64) {
	f(w, dt)
}

// Options configures a Pipeline.
type Options struct {
	Workers        int
	SkipSeparating bool
	Sink           collision.Sink
	Controller     Controller
	Logger         *log.Logger
}

// Pipeline owns the per-tick stage sequence over a world.
type Pipeline struct {
	world      *world.World
	detector   collision.Detector
	avoider    response.Avoider
	bouncer    response.Bouncer
	controller Controller
	logger     *log.Logger
	tick       uint64
}

// NewPipeline creates a pipeline over w.
func NewPipeline(w *world.World, opts Options) *Pipeline {
	return &Pipeline{
		world: w,
		detector: collision.Detector{
			Workers: opts.Workers,
			Sink:    opts.Sink,
		},
		avoider: response.Avoider{Logger: opts.Logger},
		bouncer: response.Bouncer{
			SkipSeparating: opts.SkipSeparating,
			Logger:         opts.Logger,
		},
		controller: opts.Controller,
		logger:     opts.Logger,
	}
}

// World returns the world the pipeline mutates.
func (p *Pipeline) World() *world.World {
	return p.world
}

// Tick returns the number of completed ticks.
func (p *Pipeline) Tick() uint64 {
	return p.tick
}

// Step advances the simulation by one tick of dt seconds and returns the
// tick's collision batch. The batch is not retained by the pipeline.
func (p *Pipeline) Step(dt float64) *collision.Batch {
	p.tick++

	if p.controller != nil {
		p.controller.Control(p.world, dt)
	}
	p.move(dt)
	p.clamp()

	batch := p.detector.Detect(p.tick, p.bodies())

	p.avoider.Avoid(p.world, batch, p.world.Tagged(world.TagAvoid))
	p.bouncer.Bounce(p.world, batch, p.world.Tagged(world.TagBounce))

	if p.logger != nil && batch.Len() > 0 {
		p.logger.Debug("tick", "tick", p.tick, "collisions", batch.Len())
	}
	return batch
}

// move integrates velocity into position.
func (p *Pipeline) move(dt float64) {
	for _, id := range p.world.Moving() {
		v, _ := p.world.Velocity(id)
		if v.Len() == 0 {
			continue
		}
		p.world.Translate(id, v.Mul(dt))
	}
}

// clamp keeps positions within each entity's bounds.
func (p *Pipeline) clamp() {
	for _, id := range p.world.Clamped() {
		c, _ := p.world.Clamp(id)
		pos := p.world.Position(id)
		if clamped := c.Apply(pos); clamped != pos {
			p.world.SetPosition(id, clamped)
		}
	}
}

// bodies resolves every collider into world space, in spawn order.
func (p *Pipeline) bodies() []collision.Body {
	ids := p.world.Colliders()
	bodies := make([]collision.Body, 0, len(ids))
	for _, id := range ids {
		r, _ := p.world.WorldRect(id)
		bodies = append(bodies, collision.Body{Entity: id, Rect: r})
	}
	return bodies
}
