// Package scenes holds the building blocks shared by the registered scenes:
// the walled arena and bouncing balls.
package scenes

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/collide/internal/config"
	"github.com/vovakirdan/collide/internal/core"
	"github.com/vovakirdan/collide/internal/world"
)

// Arena returns the playfield, centered on the origin.
func Arena(cfg config.WorldConfig) core.Rect {
	return core.RectFromCenterSize(core.V(0, 0), core.V(cfg.Width, cfg.Height))
}

// SpawnWalls encloses arena with four static colliders of the given
// thickness, in the order upper, lower, right, left.
func SpawnWalls(w *world.World, arena core.Rect, thickness float64) [4]core.EntityID {
	var ids [4]core.EntityID
	for i, r := range core.BoxIn(arena, thickness) {
		ids[i] = w.Spawn("wall")
		w.SetCollider(ids[i], r)
		w.Tag(ids[i], world.TagWall)
	}
	return ids
}

// SpawnBall spawns a square ball that is pushed out of and bounces off
// anything it touches.
func SpawnBall(w *world.World, pos, vel core.Vec2, size float64) core.EntityID {
	id := w.Spawn("ball")
	w.SetCollider(id, core.RectFromCenterSize(core.V(0, 0), core.V(size, size)))
	w.SetTransform(id, core.At(pos))
	w.SetVelocity(id, vel)
	w.Tag(id, world.TagBall, world.TagAvoid, world.TagBounce)
	return id
}

// Serve returns a mostly horizontal velocity of the given speed, heading
// left or right at random.
func Serve(rng *rand.Rand, speed float64) core.Vec2 {
	dx := 1.0
	if rng.Intn(2) == 0 {
		dx = -1
	}
	angle := (rng.Float64() - 0.5) * 0.6 // -0.3 to 0.3
	return core.V(dx, angle).Normalize().Mul(speed)
}

// RandomVelocity returns a velocity of the given speed in a uniformly random
// direction.
func RandomVelocity(rng *rand.Rand, speed float64) core.Vec2 {
	a := rng.Float64() * 2 * math.Pi
	return core.V(math.Cos(a), math.Sin(a)).Mul(speed)
}
