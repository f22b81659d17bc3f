package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadScene loads the configuration for a scene.
// Search order: customPath -> ~/.collide/configs/<scene>.yaml -> ./configs/<scene>.yaml -> embedded default
//
// Files are decoded over the scene's defaults, so a file only needs the keys
// it changes. A custom path that cannot be read, parsed or validated is an
// error; the implicit locations are skipped when unusable.
func LoadScene(sceneID, customPath string) (SceneConfig, error) {
	filename := sceneID + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SceneConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(sceneID, data)
		if err != nil {
			return SceneConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(sceneID, data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := Parse(sceneID, data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(sceneID); data != nil {
		if cfg, err := Parse(sceneID, data); err == nil {
			return cfg, nil
		}
	}
	return DefaultSceneConfig(sceneID), nil // Fallback to hardcoded if embed fails
}

// Parse decodes YAML over the scene's hardcoded defaults and validates the
// result.
func Parse(sceneID string, data []byte) (SceneConfig, error) {
	cfg := DefaultSceneConfig(sceneID)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SceneConfig{}, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SceneConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".collide", "configs", filename)
}
