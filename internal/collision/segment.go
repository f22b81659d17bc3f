// Package collision implements AABB overlap detection and the contact
// geometry used by collision responses: where a point sits relative to a
// rectangle, which normal that implies, and how far a point must move to
// leave a rectangle.
package collision

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/collide/internal/core"
)

// Segment locates a point relative to a rectangle: inside, beyond one edge,
// or beyond a corner. Only the nine declared values are valid.
type Segment uint8

// Direction flags. Left/Right and Up/Down never combine with each other.
const (
	flagLeft Segment = 1 << iota
	flagRight
	flagUp
	flagDown
)

const (
	Middle    Segment = 0
	Left              = flagLeft
	Right             = flagRight
	Up                = flagUp
	Down              = flagDown
	UpLeft            = flagUp | flagLeft
	UpRight           = flagUp | flagRight
	DownLeft          = flagDown | flagLeft
	DownRight         = flagDown | flagRight
)

const invSqrt2 = 1 / math.Sqrt2

// normals is the lookup table for every valid segment.
var normals = map[Segment]core.Vec2{
	Middle:    {0, 0},
	Left:      {-1, 0},
	Right:     {1, 0},
	Up:        {0, 1},
	Down:      {0, -1},
	UpLeft:    {-invSqrt2, invSqrt2},
	UpRight:   {invSqrt2, invSqrt2},
	DownLeft:  {-invSqrt2, -invSqrt2},
	DownRight: {invSqrt2, -invSqrt2},
}

// combine joins a horizontal part (Middle, Left or Right) with a vertical
// part (Middle, Up or Down).
func combine(horizontal, vertical Segment) Segment {
	return horizontal | vertical
}

// Valid reports whether s is one of the nine reachable segments.
func (s Segment) Valid() bool {
	_, ok := normals[s]
	return ok
}

// Horizontal returns the Left/Right part of s, or Middle.
func (s Segment) Horizontal() Segment {
	return s & (flagLeft | flagRight)
}

// Vertical returns the Up/Down part of s, or Middle.
func (s Segment) Vertical() Segment {
	return s & (flagUp | flagDown)
}

// IsCorner reports whether s names a diagonal region.
func (s Segment) IsCorner() bool {
	return s.Horizontal() != Middle && s.Vertical() != Middle
}

// String returns a human-readable name for the segment.
func (s Segment) String() string {
	switch s {
	case Middle:
		return "Middle"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case UpLeft:
		return "UpLeft"
	case UpRight:
		return "UpRight"
	case DownLeft:
		return "DownLeft"
	case DownRight:
		return "DownRight"
	default:
		return "Invalid"
	}
}

// classify places p against the vertical lines at minX/maxX and the
// horizontal lines at minY/maxY.
func classify(p core.Vec2, minX, maxX, minY, maxY float64) Segment {
	horizontal := Middle
	if p.X() < minX {
		horizontal = Left
	} else if p.X() > maxX {
		horizontal = Right
	}

	vertical := Middle
	if p.Y() < minY {
		vertical = Down
	} else if p.Y() > maxY {
		vertical = Up
	}

	return combine(horizontal, vertical)
}

// OuterSegment classifies p against the edges of r. The result is Middle
// iff p lies within [Min, Max] on both axes.
func OuterSegment(r core.Rect, p core.Vec2) Segment {
	return classify(p, r.Min.X(), r.Max.X(), r.Min.Y(), r.Max.Y())
}

// SegmentFromCenter classifies p against the center lines of r. It is
// Middle only when p is exactly the center.
func SegmentFromCenter(r core.Rect, p core.Vec2) Segment {
	c := r.Center()
	return classify(p, c.X(), c.X(), c.Y(), c.Y())
}

// NormalSegment picks the side of r that p most plausibly approached from.
// Corner results are reduced to a single axis by comparing the offset from
// the center relative to the half extents, so a hit on the short edge of a
// tall rectangle is still an edge hit. Exact ties keep the corner.
func NormalSegment(r core.Rect, p core.Vec2) Segment {
	seg := SegmentFromCenter(r, p)
	if !seg.IsCorner() {
		return seg
	}

	offset := p.Sub(r.Center())
	half := r.HalfSize()

	// |dx|/halfW vs |dy|/halfH without dividing by a zero extent.
	nx := math.Abs(offset.X()) * half.Y()
	ny := math.Abs(offset.Y()) * half.X()

	switch {
	case nx > ny:
		return seg.Horizontal()
	case ny > nx:
		return seg.Vertical()
	default:
		return seg
	}
}

// Normal returns the unit contact normal for s. Middle has no defined
// normal and yields the zero vector. An invalid segment is reported and
// also yields zero.
func Normal(s Segment) core.Vec2 {
	n, ok := normals[s]
	if !ok {
		log.Error("collision: unclassifiable segment, using zero normal", "segment", uint8(s))
		return core.Vec2{}
	}
	return n
}
