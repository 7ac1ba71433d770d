// Package registry provides global registries for the playable game modes
// and for benchmark render scenarios. Both sides register themselves in
// init() functions, so the platform and the bench harness discover them
// without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/topple-run/internal/core"
)

// Game is the interface every playable mode implements. Games contain
// pure logic with no external dependencies (especially no Bubble Tea);
// the platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier (e.g. "runner"). Used for CLI
	// commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state. Called once at start
	// and again when restarting after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func() Game

// Scenario is a deterministic render workload the bench harness drives:
// draw frame number `frame` into dst. Scenarios must not keep state
// between frames beyond what frame encodes.
type Scenario func(dst *core.Screen, frame int)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	scenarios = make(map[string]Scenario)
)

// Register adds a game factory. Typically called from a game's init().
// Panics if the ID is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// RegisterScenario adds a bench render scenario. Panics on duplicates,
// same as game registration.
func RegisterScenario(name string, s Scenario) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := scenarios[name]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", name))
	}
	scenarios[name] = s
}

// ScenarioByName returns the named scenario, or nil if unknown.
func ScenarioByName(name string) Scenario {
	mu.RLock()
	defer mu.RUnlock()
	return scenarios[name]
}

// Scenarios returns all scenario names, sorted.
func Scenarios() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
