// Package core provides fundamental geometry and identity types for the
// collision pipeline. It has no dependency on the rest of the module so the
// math stays pure and testable.
package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a 2D vector. The y axis points up.
type Vec2 = mgl64.Vec2

// V is shorthand for building a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

// MulComponents multiplies two vectors component-wise.
func MulComponents(a, b Vec2) Vec2 {
	return Vec2{a[0] * b[0], a[1] * b[1]}
}

// Rect represents an axis-aligned bounding box given by its min and max corners.
// Callers are responsible for keeping Min <= Max on both axes.
type Rect struct {
	Min Vec2
	Max Vec2
}

// NewRect creates a rectangle from its corners.
func NewRect(min, max Vec2) Rect {
	return Rect{Min: min, Max: max}
}

// RectFromCenterSize creates a rectangle centered at center with full size size.
func RectFromCenterSize(center, size Vec2) Rect {
	return RectFromCenterHalfSize(center, size.Mul(0.5))
}

// RectFromCenterHalfSize creates a rectangle centered at center extending half on each side.
func RectFromCenterHalfSize(center, half Vec2) Rect {
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

// HalfSize returns half of Size.
func (r Rect) HalfSize() Vec2 {
	return r.Size().Mul(0.5)
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X() - r.Min.X()
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y() - r.Min.Y()
}

// Contains returns true if p lies within the rectangle, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X() >= r.Min.X() && p.X() <= r.Max.X() &&
		p.Y() >= r.Min.Y() && p.Y() <= r.Max.Y()
}

// Intersects returns true if the interiors of the two rectangles overlap.
// Rectangles that only share an edge or a corner do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X() < other.Max.X() && r.Max.X() > other.Min.X() &&
		r.Min.Y() < other.Max.Y() && r.Max.Y() > other.Min.Y()
}

// Inflate grows the rectangle symmetrically so that its size increases by size.
func (r Rect) Inflate(size Vec2) Rect {
	return RectFromCenterSize(r.Center(), r.Size().Add(size))
}

// Translate returns the rectangle moved by delta.
func (r Rect) Translate(delta Vec2) Rect {
	return Rect{Min: r.Min.Add(delta), Max: r.Max.Add(delta)}
}

// ApproxEqual compares corners within mgl64's default epsilon.
func (r Rect) ApproxEqual(other Rect) bool {
	return r.Min.ApproxEqual(other.Min) && r.Max.ApproxEqual(other.Max)
}

// String implements fmt.Stringer.
func (r Rect) String() string {
	return fmt.Sprintf("[(%g, %g) - (%g, %g)]", r.Min.X(), r.Min.Y(), r.Max.X(), r.Max.Y())
}

// BoxIn returns four rectangles of the given thickness enclosing rect from the
// outside, in the order upper, lower, right, left. Adjacent walls only touch
// at their corners, so they never collide with each other.
func BoxIn(rect Rect, thickness float64) [4]Rect {
	center := rect.Center()
	half := thickness / 2
	w, h := rect.Width(), rect.Height()
	return [4]Rect{
		RectFromCenterSize(V(center.X(), rect.Max.Y()+half), V(w, thickness)),
		RectFromCenterSize(V(center.X(), rect.Min.Y()-half), V(w, thickness)),
		RectFromCenterSize(V(rect.Max.X()+half, center.Y()), V(thickness, h)),
		RectFromCenterSize(V(rect.Min.X()-half, center.Y()), V(thickness, h)),
	}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
