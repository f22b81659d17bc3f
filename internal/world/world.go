// Package world holds the entity registry: a stable identity space plus
// parallel component tables keyed by that identity. Systems read and write
// these tables explicitly instead of querying a framework.
package world

import (
	"math"
	"slices"

	"github.com/vovakirdan/collide/internal/core"
)

// Tag marks an entity for a particular system.
type Tag string

const (
	TagAvoid  Tag = "avoid"  // Pushed out of anything it overlaps
	TagBounce Tag = "bounce" // Reflects its velocity on contact
	TagPaddle Tag = "paddle" // Steered by a scene controller
	TagBall   Tag = "ball"
	TagWall   Tag = "wall"
)

// Clamp limits an entity's position after movement. Unbounded sides hold
// infinities.
type Clamp struct {
	Min core.Vec2
	Max core.Vec2
}

// Unbounded returns a clamp that never changes a position.
func Unbounded() Clamp {
	inf := math.Inf(1)
	return Clamp{Min: core.V(-inf, -inf), Max: core.V(inf, inf)}
}

// VerticalClamp bounds only the y coordinate.
func VerticalClamp(lower, upper float64) Clamp {
	c := Unbounded()
	c.Min[1] = lower
	c.Max[1] = upper
	return c
}

// HorizontalClamp bounds only the x coordinate.
func HorizontalClamp(left, right float64) Clamp {
	c := Unbounded()
	c.Min[0] = left
	c.Max[0] = right
	return c
}

// Apply returns p limited to the clamp.
func (c Clamp) Apply(p core.Vec2) core.Vec2 {
	return core.V(
		core.ClampF(p.X(), c.Min.X(), c.Max.X()),
		core.ClampF(p.Y(), c.Min.Y(), c.Max.Y()),
	)
}

// World is the registry of entities and their components.
// It is not safe for concurrent mutation.
type World struct {
	next  core.EntityID
	order []core.EntityID

	names      map[core.EntityID]string
	colliders  map[core.EntityID]core.Rect
	transforms map[core.EntityID]core.Transform
	velocities map[core.EntityID]core.Vec2
	clamps     map[core.EntityID]Clamp
	tags       map[core.EntityID]map[Tag]struct{}
}

// New creates an empty world.
func New() *World {
	return &World{
		names:      make(map[core.EntityID]string),
		colliders:  make(map[core.EntityID]core.Rect),
		transforms: make(map[core.EntityID]core.Transform),
		velocities: make(map[core.EntityID]core.Vec2),
		clamps:     make(map[core.EntityID]Clamp),
		tags:       make(map[core.EntityID]map[Tag]struct{}),
	}
}

// Spawn allocates a new entity. IDs start at 1 and are never reused.
func (w *World) Spawn(name string) core.EntityID {
	w.next++
	id := w.next
	w.order = append(w.order, id)
	w.names[id] = name
	return id
}

// Despawn removes an entity and all of its components.
func (w *World) Despawn(id core.EntityID) {
	idx := slices.Index(w.order, id)
	if idx < 0 {
		return
	}
	w.order = slices.Delete(w.order, idx, idx+1)
	delete(w.names, id)
	delete(w.colliders, id)
	delete(w.transforms, id)
	delete(w.velocities, id)
	delete(w.clamps, id)
	delete(w.tags, id)
}

// Exists reports whether id is alive.
func (w *World) Exists(id core.EntityID) bool {
	_, ok := w.names[id]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.order)
}

// Entities returns live entity IDs in spawn order.
func (w *World) Entities() []core.EntityID {
	return slices.Clone(w.order)
}

// Name returns the entity's debug name.
func (w *World) Name(id core.EntityID) string {
	return w.names[id]
}

// SetCollider attaches a local-space collider rect.
func (w *World) SetCollider(id core.EntityID, local core.Rect) {
	w.colliders[id] = local
}

// Collider returns the entity's local-space collider.
func (w *World) Collider(id core.EntityID) (core.Rect, bool) {
	r, ok := w.colliders[id]
	return r, ok
}

// Colliders returns, in spawn order, every entity carrying a collider.
func (w *World) Colliders() []core.EntityID {
	ids := make([]core.EntityID, 0, len(w.colliders))
	for _, id := range w.order {
		if _, ok := w.colliders[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// SetTransform attaches or replaces the entity's transform.
func (w *World) SetTransform(id core.EntityID, t core.Transform) {
	w.transforms[id] = t
}

// Transform returns the entity's transform, if any.
func (w *World) Transform(id core.EntityID) (core.Transform, bool) {
	t, ok := w.transforms[id]
	return t, ok
}

// Position returns the transform position, or the origin without a transform.
func (w *World) Position(id core.EntityID) core.Vec2 {
	return w.transforms[id].Position
}

// SetPosition moves the entity, creating an identity transform if needed.
func (w *World) SetPosition(id core.EntityID, p core.Vec2) {
	t, ok := w.transforms[id]
	if !ok {
		t = core.IdentityTransform()
	}
	t.Position = p
	w.transforms[id] = t
}

// Translate moves the entity by delta.
func (w *World) Translate(id core.EntityID, delta core.Vec2) {
	w.SetPosition(id, w.Position(id).Add(delta))
}

// WorldRect resolves the entity's collider into world space using its
// current transform. It is recomputed on every call.
func (w *World) WorldRect(id core.EntityID) (core.Rect, bool) {
	local, ok := w.colliders[id]
	if !ok {
		return core.Rect{}, false
	}
	if t, ok := w.transforms[id]; ok {
		return core.ResolveWorldRect(local, &t), true
	}
	return core.ResolveWorldRect(local, nil), true
}

// SetVelocity attaches or replaces the entity's velocity.
func (w *World) SetVelocity(id core.EntityID, v core.Vec2) {
	w.velocities[id] = v
}

// Velocity returns the entity's velocity, if any.
func (w *World) Velocity(id core.EntityID) (core.Vec2, bool) {
	v, ok := w.velocities[id]
	return v, ok
}

// Moving returns, in spawn order, every entity carrying a velocity.
func (w *World) Moving() []core.EntityID {
	ids := make([]core.EntityID, 0, len(w.velocities))
	for _, id := range w.order {
		if _, ok := w.velocities[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// SetClamp attaches position bounds applied after movement.
func (w *World) SetClamp(id core.EntityID, c Clamp) {
	w.clamps[id] = c
}

// Clamp returns the entity's position bounds, if any.
func (w *World) Clamp(id core.EntityID) (Clamp, bool) {
	c, ok := w.clamps[id]
	return c, ok
}

// Clamped returns, in spawn order, every entity carrying a clamp.
func (w *World) Clamped() []core.EntityID {
	ids := make([]core.EntityID, 0, len(w.clamps))
	for _, id := range w.order {
		if _, ok := w.clamps[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Tag adds tags to an entity.
func (w *World) Tag(id core.EntityID, tags ...Tag) {
	set, ok := w.tags[id]
	if !ok {
		set = make(map[Tag]struct{}, len(tags))
		w.tags[id] = set
	}
	for _, t := range tags {
		set[t] = struct{}{}
	}
}

// HasTag reports whether the entity carries tag.
func (w *World) HasTag(id core.EntityID, tag Tag) bool {
	_, ok := w.tags[id][tag]
	return ok
}

// Tagged returns, in spawn order, every entity carrying tag.
func (w *World) Tagged(tag Tag) []core.EntityID {
	var ids []core.EntityID
	for _, id := range w.order {
		if w.HasTag(id, tag) {
			ids = append(ids, id)
		}
	}
	return ids
}
