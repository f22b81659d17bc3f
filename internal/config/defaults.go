package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/billiards.yaml
var defaultBilliardsYAML []byte

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() SceneConfig {
	return SceneConfig{
		World: WorldConfig{
			Width:         1100,
			Height:        600,
			WallThickness: 100,
		},
		Paddles: PaddleConfig{
			Enabled: true,
			Width:   30,
			Height:  150,
			Speed:   300,
			Skill:   0.85,
		},
		Balls: BallConfig{
			Count:    1,
			Size:     20,
			Speed:    212,
			Velocity: Vec2{X: 150, Y: 150},
		},
		Detector: DetectorConfig{
			Workers: 1,
		},
		Response: ResponseConfig{
			SkipSeparating: true,
		},
	}
}

// DefaultBilliardsConfig returns the default Billiards configuration.
func DefaultBilliardsConfig() SceneConfig {
	return SceneConfig{
		World: WorldConfig{
			Width:         800,
			Height:        400,
			WallThickness: 50,
		},
		Balls: BallConfig{
			Count: 24,
			Size:  16,
			Speed: 180,
		},
		Detector: DetectorConfig{
			Workers: 4,
		},
		Response: ResponseConfig{
			SkipSeparating: true,
		},
	}
}

// DefaultSceneConfig returns the hardcoded defaults for a scene, falling
// back to Pong for unknown IDs.
func DefaultSceneConfig(sceneID string) SceneConfig {
	switch sceneID {
	case "billiards":
		return DefaultBilliardsConfig()
	default:
		return DefaultPongConfig()
	}
}

// GetDefaultYAML returns the embedded default YAML for a scene.
func GetDefaultYAML(sceneID string) []byte {
	switch sceneID {
	case "pong":
		return defaultPongYAML
	case "billiards":
		return defaultBilliardsYAML
	default:
		return nil
	}
}
