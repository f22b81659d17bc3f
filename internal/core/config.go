package core

import "time"

// RuntimeConfig contains configuration passed to scenes at initialization.
// Scenes use this for the fixed step length and for deterministic simulation.
type RuntimeConfig struct {
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
		Seed:     0, // 0 means use current time in the host
	}
}

// StepSeconds returns the fixed timestep length in seconds.
func (c RuntimeConfig) StepSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// StepDuration returns the fixed timestep as a time.Duration.
func (c RuntimeConfig) StepDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}
