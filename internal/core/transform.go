package core

import "fmt"

// EntityID is an opaque identity token for a simulated entity.
// Two entities are the same body only if their IDs are equal; equal bounds
// never imply identity.
type EntityID uint32

// String implements fmt.Stringer.
func (id EntityID) String() string {
	return fmt.Sprintf("#%d", uint32(id))
}

// Transform places a local shape in the world.
type Transform struct {
	Position Vec2
	Scale    Vec2
}

// IdentityTransform returns a transform at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: V(1, 1)}
}

// At returns a unit-scale transform at position.
func At(position Vec2) Transform {
	return Transform{Position: position, Scale: V(1, 1)}
}

// Apply resolves a local rectangle into world space: the center is offset by
// Position and the size is scaled component-wise by Scale.
func (t Transform) Apply(local Rect) Rect {
	center := local.Center().Add(t.Position)
	size := MulComponents(local.Size(), t.Scale)
	return RectFromCenterSize(center, size)
}

// ResolveWorldRect returns the world-space extent of local under t.
// A nil transform is the identity and returns local unchanged.
func ResolveWorldRect(local Rect, t *Transform) Rect {
	if t == nil {
		return local
	}
	return t.Apply(local)
}
