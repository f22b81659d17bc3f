// Package response implements the behaviors that react to a tick's
// collision batch: positional avoidance and velocity reflection. Each
// responder reads the same immutable batch and only mutates the entities it
// was handed.
//
// When an entity takes part in several collisions in one tick, corrections
// are applied one after another in batch order. This is not a simultaneous
// constraint solve and the outcome depends on event order.
package response

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/collide/internal/collision"
	"github.com/vovakirdan/collide/internal/core"
)

// PositionStore is the position state the avoider reads and moves.
type PositionStore interface {
	WorldRect(id core.EntityID) (core.Rect, bool)
	Translate(id core.EntityID, delta core.Vec2)
}

// VelocityStore is the velocity state the bounce responder reads and writes.
type VelocityStore interface {
	Velocity(id core.EntityID) (core.Vec2, bool)
	SetVelocity(id core.EntityID, v core.Vec2)
}

// Reflect mirrors v across the plane with unit normal n: v - 2(v·n)n.
func Reflect(v, n core.Vec2) core.Vec2 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Avoider keeps its entities outside whatever they overlap.
type Avoider struct {
	Logger *log.Logger // optional
}

// Avoid pushes each tagged entity out of every rect it collided with this
// tick. The obstacle is inflated by the entity's own size so the entity can
// be treated as a point at its center.
func (a *Avoider) Avoid(store PositionStore, batch *collision.Batch, tagged []core.EntityID) {
	for _, id := range tagged {
		for e := range batch.Involving(id) {
			self, ok := store.WorldRect(id)
			if !ok {
				break
			}
			noGo := e.OtherRect(id).Inflate(self.Size())
			push := collision.ToOutside(noGo, self.Center())
			if push.Len() == 0 {
				continue
			}
			store.Translate(id, push)
			if a.Logger != nil {
				a.Logger.Debug("avoid", "entity", id, "other", e.Other(id), "push", push)
			}
		}
	}
}

// Bouncer reflects its entities' velocities off whatever they hit.
type Bouncer struct {
	// SkipSeparating leaves a velocity alone when it already points away
	// from the contact normal. The zero value reflects on every contact.
	SkipSeparating bool

	Logger *log.Logger // optional
}

// Bounce reflects each tagged entity's velocity across the contact normal of
// every body it collided with this tick. The normal is taken from the other
// body's rect and this body's center as recorded at detection.
func (b *Bouncer) Bounce(store VelocityStore, batch *collision.Batch, tagged []core.EntityID) {
	for _, id := range tagged {
		for e := range batch.Involving(id) {
			v, ok := store.Velocity(id)
			if !ok {
				break
			}
			other := e.OtherRect(id)
			seg := collision.NormalSegment(other, e.Rect(id).Center())
			n := collision.Normal(seg)
			if n.Len() == 0 {
				if b.Logger != nil {
					b.Logger.Debug("bounce skipped: centers coincide", "entity", id, "other", e.Other(id))
				}
				continue
			}
			if b.SkipSeparating && v.Dot(n) >= 0 {
				continue
			}
			reflected := Reflect(v, n)
			store.SetVelocity(id, reflected)
			if b.Logger != nil {
				b.Logger.Debug("bounce", "entity", id, "other", e.Other(id), "side", seg, "velocity", reflected)
			}
		}
	}
}
