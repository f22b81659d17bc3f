package collision

import "github.com/vovakirdan/collide/internal/core"

// exitOrder fixes tie-breaking between equally near sides.
var exitOrder = [4]Segment{Left, Right, Up, Down}

// DistanceToOutside returns the nearest side through which p can leave r and
// the distance to it. A point already outside r on any axis has nothing to
// resolve and yields (Middle, 0).
func DistanceToOutside(r core.Rect, p core.Vec2) (Segment, float64) {
	distances := [4]float64{
		p.X() - r.Min.X(), // Left
		r.Max.X() - p.X(), // Right
		r.Max.Y() - p.Y(), // Up
		p.Y() - r.Min.Y(), // Down
	}

	for _, d := range distances {
		if d < 0 {
			return Middle, 0
		}
	}

	best := 0
	for i := 1; i < len(distances); i++ {
		if distances[i] < distances[best] {
			best = i
		}
	}
	return exitOrder[best], distances[best]
}

// ToOutside returns the smallest vector that, added to p, puts it on the
// nearest boundary of r. It is zero when p is already outside.
func ToOutside(r core.Rect, p core.Vec2) core.Vec2 {
	side, distance := DistanceToOutside(r, p)
	return Normal(side).Mul(distance)
}
