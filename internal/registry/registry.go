// Package registry provides a global registry for piece generator factories.
// Generators register themselves in init() functions, allowing the platform
// to list and instantiate them by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/tetris/piece"
)

// Generator supplies the stream of upcoming piece kinds.
// Generators are deterministic for a given random source.
type Generator interface {
	// ID returns a unique identifier for this generator (e.g., "random", "bag").
	// Used for CLI flags, config files and the replay journal.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Next returns the next piece kind.
	Next() piece.Kind
}

// GeneratorInfo contains metadata about a registered generator.
type GeneratorInfo struct {
	ID    string
	Title string
}

// Factory creates a generator drawing from rng.
type Factory func(rng *rand.Rand) Generator

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a generator factory to the registry.
// Typically called from an init() function.
// Panics if a generator with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: generator %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f(rand.New(rand.NewPCG(0, 0)))
	titles[id] = g.Title()
}

// List returns information about all registered generators, sorted by ID.
func List() []GeneratorInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GeneratorInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GeneratorInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a generator by its ID.
// Returns an error if the ID is not registered.
func Create(id string, rng *rand.Rand) (Generator, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown generator %q", id)
	}

	return f(rng), nil
}

// Seeded returns the random source a game with the given seed draws from.
// Play and replay must use the same mapping.
func Seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Exists checks if a generator with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
