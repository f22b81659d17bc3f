package sim

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/collide/internal/core"
)

// BodyState is the kinematic state of one entity.
type BodyState struct {
	ID       core.EntityID
	Position core.Vec2
	Velocity core.Vec2
}

// Snapshot captures the simulation state after a tick, for determinism
// checks and reporting.
type Snapshot struct {
	Tick   uint64
	Bodies []BodyState
}

// Snapshot returns the current state of every entity in spawn order.
func (p *Pipeline) Snapshot() Snapshot {
	ids := p.world.Entities()
	snap := Snapshot{
		Tick:   p.tick,
		Bodies: make([]BodyState, 0, len(ids)),
	}
	for _, id := range ids {
		v, _ := p.world.Velocity(id)
		snap.Bodies = append(snap.Bodies, BodyState{
			ID:       id,
			Position: p.world.Position(id),
			Velocity: v,
		})
	}
	return snap
}

// Hash returns a digest of the exact bit patterns of the snapshot. Two runs
// hash equal only if every position and velocity is bit-identical.
func (s Snapshot) Hash() uint64 {
	h := xxhash.New()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], s.Tick)
	h.Write(buf[:]) //nolint:errcheck // xxhash never fails

	for _, b := range s.Bodies {
		binary.LittleEndian.PutUint64(buf[:], uint64(b.ID))
		h.Write(buf[:]) //nolint:errcheck // xxhash never fails
		for _, f := range [4]float64{b.Position.X(), b.Position.Y(), b.Velocity.X(), b.Velocity.Y()} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
			h.Write(buf[:]) //nolint:errcheck // xxhash never fails
		}
	}
	return h.Sum64()
}
