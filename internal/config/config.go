// Package config provides YAML-based scene configuration loading for the
// collision simulator.
package config

import "fmt"

// SceneConfig contains all tunable parameters of a scene.
type SceneConfig struct {
	World    WorldConfig    `yaml:"world"`
	Paddles  PaddleConfig   `yaml:"paddles"`
	Balls    BallConfig     `yaml:"balls"`
	Detector DetectorConfig `yaml:"detector"`
	Response ResponseConfig `yaml:"response"`
}

// WorldConfig defines the playfield enclosed by walls.
type WorldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
}

// PaddleConfig defines the CPU-driven paddles.
type PaddleConfig struct {
	Enabled bool    `yaml:"enabled"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"` // Units per second
	Skill   float64 `yaml:"skill"` // 0-1, fraction of Speed used when tracking
}

// BallConfig defines the bouncing balls.
type BallConfig struct {
	Count    int     `yaml:"count"`
	Size     float64 `yaml:"size"`
	Speed    float64 `yaml:"speed"`    // Units per second
	Velocity Vec2    `yaml:"velocity"` // Initial velocity of the first ball; zero = random direction at Speed
}

// Vec2 is a YAML-friendly 2D vector.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// DetectorConfig tunes the collision detector.
type DetectorConfig struct {
	Workers int `yaml:"workers"` // < 2 scans on the simulation goroutine
}

// ResponseConfig tunes the collision responses.
type ResponseConfig struct {
	SkipSeparating bool `yaml:"skip_separating"`
}

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks that the configuration describes a buildable scene.
func (c SceneConfig) Validate() error {
	if c.World.Width <= 0 {
		return ValidationError{Field: "world.width", Message: "must be positive"}
	}
	if c.World.Height <= 0 {
		return ValidationError{Field: "world.height", Message: "must be positive"}
	}
	if c.World.WallThickness <= 0 {
		return ValidationError{Field: "world.wall_thickness", Message: "must be positive"}
	}

	if c.Paddles.Enabled {
		if c.Paddles.Width <= 0 || c.Paddles.Height <= 0 {
			return ValidationError{Field: "paddles", Message: "width and height must be positive"}
		}
		if c.Paddles.Height > c.World.Height {
			return ValidationError{Field: "paddles.height", Message: "taller than the world"}
		}
		if c.Paddles.Skill < 0 || c.Paddles.Skill > 1 {
			return ValidationError{Field: "paddles.skill", Message: "must be within [0, 1]"}
		}
	}

	if c.Balls.Count < 0 {
		return ValidationError{Field: "balls.count", Message: "must not be negative"}
	}
	if c.Balls.Count > 0 && c.Balls.Size <= 0 {
		return ValidationError{Field: "balls.size", Message: "must be positive"}
	}
	if c.Balls.Size >= c.World.Width || c.Balls.Size >= c.World.Height {
		return ValidationError{Field: "balls.size", Message: "does not fit in the world"}
	}

	if c.Detector.Workers < 0 {
		return ValidationError{Field: "detector.workers", Message: "must not be negative"}
	}
	return nil
}
