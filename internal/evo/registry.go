package evo

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrCrossoverExists   = errors.New("crossover already registered")
	ErrCrossoverNotFound = errors.New("crossover not found")
)

var crossoverRegistry = struct {
	mu sync.RWMutex
	m  map[string]Crossover
}{
	m: map[string]Crossover{
		OrderCrossover{}.Name():           OrderCrossover{},
		PartiallyMappedCrossover{}.Name(): PartiallyMappedCrossover{},
	},
}

// RegisterCrossover adds a named crossover operator, for use by
// --crossover at the CLI boundary. The two built-in operators (OX
// and PMX) are registered by default.
func RegisterCrossover(name string, op Crossover) error {
	if name == "" {
		return errors.New("evo: crossover name is required")
	}
	if op == nil {
		return errors.New("evo: crossover operator is required")
	}

	crossoverRegistry.mu.Lock()
	defer crossoverRegistry.mu.Unlock()
	if _, exists := crossoverRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrCrossoverExists, name)
	}
	crossoverRegistry.m[name] = op
	return nil
}

// ResolveCrossover looks up a crossover operator by name.
func ResolveCrossover(name string) (Crossover, error) {
	crossoverRegistry.mu.RLock()
	defer crossoverRegistry.mu.RUnlock()
	op, ok := crossoverRegistry.m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCrossoverNotFound, name)
	}
	return op, nil
}

// ListCrossovers returns every registered crossover name, sorted.
func ListCrossovers() []string {
	crossoverRegistry.mu.RLock()
	defer crossoverRegistry.mu.RUnlock()
	names := make([]string, 0, len(crossoverRegistry.m))
	for name := range crossoverRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resetCrossoverRegistryForTests() {
	crossoverRegistry.mu.Lock()
	defer crossoverRegistry.mu.Unlock()
	crossoverRegistry.m = map[string]Crossover{
		OrderCrossover{}.Name():           OrderCrossover{},
		PartiallyMappedCrossover{}.Name(): PartiallyMappedCrossover{},
	}
}
