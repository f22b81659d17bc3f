// Package pong sets up a walled court with two CPU paddles and a ball.
// Paddles are unit colliders stretched by their transform's scale and kept
// on the court by a vertical clamp.
package pong

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/collide/internal/config"
	"github.com/vovakirdan/collide/internal/core"
	"github.com/vovakirdan/collide/internal/registry"
	"github.com/vovakirdan/collide/internal/scenes"
	"github.com/vovakirdan/collide/internal/world"
)

// ID is the registry key of the scene.
const ID = "pong"

// Scene implements registry.Scene.
type Scene struct {
	speed float64 // Paddle tracking speed, already scaled by skill
}

// New creates a new Pong scene.
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
	return "Pong"
}

// Setup spawns the walls, the paddles (if enabled) and the balls.
func (s *Scene) Setup(w *world.World, cfg config.SceneConfig, rt core.RuntimeConfig) error {
	rng := rand.New(rand.NewSource(rt.Seed))
	arena := scenes.Arena(cfg.World)
	scenes.SpawnWalls(w, arena, cfg.World.WallThickness)

	if cfg.Paddles.Enabled {
		s.speed = cfg.Paddles.Speed * cfg.Paddles.Skill
		offset := (cfg.World.Width - cfg.Paddles.Width) / 2
		spawnPaddle(w, cfg, -offset)
		spawnPaddle(w, cfg, offset)
	}

	// Extra balls line up above and below the first one.
	spacing := cfg.Balls.Size * 2
	limit := (cfg.World.Height - cfg.Balls.Size) / 2
	for i := range cfg.Balls.Count {
		vel := scenes.Serve(rng, cfg.Balls.Speed)
		if i == 0 && !cfg.Balls.Velocity.IsZero() {
			vel = core.V(cfg.Balls.Velocity.X, cfg.Balls.Velocity.Y)
		}
		row := float64((i+1)/2) * spacing
		if i%2 == 1 {
			row = -row
		}
		pos := core.V(0, core.ClampF(row, -limit, limit))
		scenes.SpawnBall(w, pos, vel, cfg.Balls.Size)
	}
	return nil
}

func spawnPaddle(w *world.World, cfg config.SceneConfig, x float64) {
	id := w.Spawn("paddle")
	w.SetCollider(id, core.RectFromCenterSize(core.V(0, 0), core.V(1, 1)))
	w.SetTransform(id, core.Transform{
		Position: core.V(x, 0),
		Scale:    core.V(cfg.Paddles.Width, cfg.Paddles.Height),
	})
	w.SetVelocity(id, core.V(0, 0))

	bound := (cfg.World.Height - cfg.Paddles.Height) / 2
	w.SetClamp(id, world.VerticalClamp(-bound, bound))
	w.Tag(id, world.TagPaddle)
}

// Control steers each paddle toward the nearest ball heading its way.
// A paddle with no ball approaching holds still, and one already within a
// step of its target does not move.
func (s *Scene) Control(w *world.World, dt float64) {
	if dt <= 0 {
		return
	}
	for _, paddle := range w.Tagged(world.TagPaddle) {
		w.SetVelocity(paddle, core.V(0, s.track(w, paddle, dt)))
	}
}

func (s *Scene) track(w *world.World, paddle core.EntityID, dt float64) float64 {
	pos := w.Position(paddle)

	target, found := 0.0, false
	nearest := math.Inf(1)
	for _, ball := range w.Tagged(world.TagBall) {
		bpos := w.Position(ball)
		v, _ := w.Velocity(ball)
		dx := pos.X() - bpos.X()
		// Only track balls coming towards this paddle
		if dx*v.X() <= 0 {
			continue
		}
		if d := math.Abs(dx); d < nearest {
			nearest, target, found = d, bpos.Y(), true
		}
	}
	if !found {
		return 0
	}

	diff := target - pos.Y()
	if math.Abs(diff) <= s.speed*dt {
		return 0
	}
	if diff > 0 {
		return s.speed
	}
	return -s.speed
}
