// Package billiards fills a walled table with balls scattered at random, so
// many pairs collide in the same tick.
package billiards

import (
	"math/rand"

	"github.com/vovakirdan/collide/internal/config"
	"github.com/vovakirdan/collide/internal/core"
	"github.com/vovakirdan/collide/internal/registry"
	"github.com/vovakirdan/collide/internal/scenes"
	"github.com/vovakirdan/collide/internal/world"
)

// ID is the registry key of the scene.
const ID = "billiards"

// placementAttempts bounds the search for a free spot per ball. A ball that
// finds none is placed overlapping and pushed apart on the first tick.
const placementAttempts = 50

// Scene implements registry.Scene.
type Scene struct{}

// New creates a new Billiards scene.
func New() *Scene {
	return &Scene{}
}

func init() {
	registry.Register(ID, func() registry.Scene {
		return New()
	})
}

// ID returns the scene identifier.
func (s *Scene) ID() string {
	return ID
}

// Title returns the display name.
func (s *Scene) Title() string {
	return "Billiards"
}

// Setup spawns the walls and scatters the balls, each heading in a random
// direction at the configured speed.
func (s *Scene) Setup(w *world.World, cfg config.SceneConfig, rt core.RuntimeConfig) error {
	rng := rand.New(rand.NewSource(rt.Seed))
	table := scenes.Arena(cfg.World)
	scenes.SpawnWalls(w, table, cfg.World.WallThickness)

	size := core.V(cfg.Balls.Size, cfg.Balls.Size)
	free := table.Inflate(size.Mul(-1))
	placed := make([]core.Rect, 0, cfg.Balls.Count)

	for i := range cfg.Balls.Count {
		var pos core.Vec2
		for range placementAttempts {
			pos = randomPoint(rng, free)
			if !overlapsAny(core.RectFromCenterSize(pos, size), placed) {
				break
			}
		}
		placed = append(placed, core.RectFromCenterSize(pos, size))

		vel := scenes.RandomVelocity(rng, cfg.Balls.Speed)
		if i == 0 && !cfg.Balls.Velocity.IsZero() {
			vel = core.V(cfg.Balls.Velocity.X, cfg.Balls.Velocity.Y)
		}
		scenes.SpawnBall(w, pos, vel, cfg.Balls.Size)
	}
	return nil
}

// Control does nothing; every ball moves on its own.
func (s *Scene) Control(*world.World, float64) {}

func randomPoint(rng *rand.Rand, r core.Rect) core.Vec2 {
	return core.V(
		r.Min.X()+rng.Float64()*r.Width(),
		r.Min.Y()+rng.Float64()*r.Height(),
	)
}

func overlapsAny(r core.Rect, others []core.Rect) bool {
	for _, o := range others {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}
