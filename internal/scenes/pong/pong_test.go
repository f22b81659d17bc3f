package pong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/collide/internal/config"
	"github.com/vovakirdan/collide/internal/core"
	"github.com/vovakirdan/collide/internal/registry"
	"github.com/vovakirdan/collide/internal/sim"
	"github.com/vovakirdan/collide/internal/world"
)

func setup(t *testing.T, cfg config.SceneConfig, seed int64) (*Scene, *world.World) {
	t.Helper()

	s := New()
	w := world.New()
	require.NoError(t, s.Setup(w, cfg, core.RuntimeConfig{TickRate: 60, Seed: seed}))
	return s, w
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))
	s, err := registry.Create(ID)
	require.NoError(t, err)
	assert.Equal(t, "Pong", s.Title())
}

func TestSetupSpawnsCourt(t *testing.T) {
	_, w := setup(t, config.DefaultPongConfig(), 1)

	assert.Equal(t, 7, w.Len())
	assert.Len(t, w.Tagged(world.TagWall), 4)
	assert.Len(t, w.Tagged(world.TagBall), 1)
	paddles := w.Tagged(world.TagPaddle)
	require.Len(t, paddles, 2)

	left, _ := w.WorldRect(paddles[0])
	right, _ := w.WorldRect(paddles[1])
	assert.True(t, left.ApproxEqual(core.NewRect(core.V(-550, -75), core.V(-520, 75))), "left %v", left)
	assert.True(t, right.ApproxEqual(core.NewRect(core.V(520, -75), core.V(550, 75))), "right %v", right)

	// Paddles sit flush against the side walls without overlapping them.
	for _, wall := range w.Tagged(world.TagWall) {
		r, _ := w.WorldRect(wall)
		assert.False(t, r.Intersects(left))
		assert.False(t, r.Intersects(right))
	}

	ball := w.Tagged(world.TagBall)[0]
	v, _ := w.Velocity(ball)
	assert.Equal(t, core.V(150, 150), v)
	assert.Equal(t, core.V(0, 0), w.Position(ball))
}

func TestSetupWithoutPaddles(t *testing.T) {
	cfg := config.DefaultPongConfig()
	cfg.Paddles.Enabled = false
	cfg.Balls.Count = 3

	_, w := setup(t, cfg, 1)
	assert.Empty(t, w.Tagged(world.TagPaddle))

	balls := w.Tagged(world.TagBall)
	require.Len(t, balls, 3)
	assert.Equal(t, core.V(0, 0), w.Position(balls[0]))
	assert.Equal(t, core.V(0, -40), w.Position(balls[1]))
	assert.Equal(t, core.V(0, 40), w.Position(balls[2]))

	for _, id := range balls[1:] {
		v, _ := w.Velocity(id)
		assert.InDelta(t, cfg.Balls.Speed, v.Len(), 1e-9)
	}
}

func TestControlTracksApproachingBall(t *testing.T) {
	tests := []struct {
		name      string
		ballY     float64
		ballVX    float64
		wantLeft  float64
		wantRight float64
	}{
		{"ball above heading right", 100, 150, 0, 255},
		{"ball below heading right", -100, 150, 0, -255},
		{"ball above heading left", 100, -150, 255, 0},
		{"ball within one step", 2, 150, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, w := setup(t, config.DefaultPongConfig(), 1)
			ball := w.Tagged(world.TagBall)[0]
			w.SetPosition(ball, core.V(0, tc.ballY))
			w.SetVelocity(ball, core.V(tc.ballVX, 0))

			s.Control(w, 1.0/60)

			paddles := w.Tagged(world.TagPaddle)
			left, _ := w.Velocity(paddles[0])
			right, _ := w.Velocity(paddles[1])
			assert.InDelta(t, tc.wantLeft, left.Y(), 1e-9)
			assert.InDelta(t, tc.wantRight, right.Y(), 1e-9)
		})
	}
}

func TestRunKeepsEverythingOnCourt(t *testing.T) {
	cfg := config.DefaultPongConfig()
	s, w := setup(t, cfg, 1)

	r := sim.Runner{
		Pipeline: sim.NewPipeline(w, sim.Options{Controller: s, SkipSeparating: true}),
		Config:   core.RuntimeConfig{TickRate: 60},
	}
	stats := r.Run(3000)
	assert.Positive(t, stats.Collisions)

	court := core.RectFromCenterSize(core.V(0, 0), core.V(cfg.World.Width, cfg.World.Height)).
		Inflate(core.V(cfg.Balls.Size*2, cfg.Balls.Size*2))
	ball := w.Tagged(world.TagBall)[0]
	assert.True(t, court.Contains(w.Position(ball)), "ball escaped to %v", w.Position(ball))

	bound := (cfg.World.Height - cfg.Paddles.Height) / 2
	for _, p := range w.Tagged(world.TagPaddle) {
		assert.LessOrEqual(t, w.Position(p).Y(), bound)
		assert.GreaterOrEqual(t, w.Position(p).Y(), -bound)
	}
}

func TestSameSeedSameRun(t *testing.T) {
	cfg := config.DefaultPongConfig()
	cfg.Balls.Count = 3
	cfg.Balls.Velocity = config.Vec2{}

	run := func(seed int64) uint64 {
		s, w := setup(t, cfg, seed)
		p := sim.NewPipeline(w, sim.Options{Controller: s, SkipSeparating: true})
		for range 500 {
			p.Step(1.0 / 60)
		}
		return p.Snapshot().Hash()
	}

	assert.Equal(t, run(7), run(7))
	assert.NotEqual(t, run(7), run(8))
}
