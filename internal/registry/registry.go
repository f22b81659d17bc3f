// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the CLI
// to discover and instantiate scenes without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/collide/internal/config"
	"github.com/vovakirdan/collide/internal/core"
	"github.com/vovakirdan/collide/internal/world"
)

// Scene populates a world and steers its scripted entities.
// Scenes contain no collision logic of their own; the pipeline detects
// and responds to contacts.
type Scene interface {
	// ID returns a unique identifier for this scene (e.g., "pong").
	// Used for CLI commands, config file names and the collision journal.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Setup spawns the scene's entities into an empty world.
	// The RuntimeConfig provides the RNG seed.
	Setup(w *world.World, cfg config.SceneConfig, rt core.RuntimeConfig) error

	// Control adjusts velocities before movement, once per tick.
	Control(w *world.World, dt float64)
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a scene.
type Factory func() Scene

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from a scene's init() function.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SceneInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
// Returns an error if the scene ID is not registered.
func Create(id string) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}

	return f(), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
