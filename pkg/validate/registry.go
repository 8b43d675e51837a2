package validate

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// StrategyRegistry stores validation strategies by name so form types can
// reference an override without holding the implementation directly.
type StrategyRegistry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewStrategyRegistry creates an empty strategy registry.
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		strategies: make(map[string]Strategy),
	}
}

// Register adds a strategy by its Name(). Duplicate names return an error.
func (r *StrategyRegistry) Register(strategy Strategy) error {
	if strategy == nil {
		return fmt.Errorf("validate: strategy is required")
	}
	name := normalizeStrategyName(strategy.Name())
	if name == "" {
		return fmt.Errorf("validate: strategy name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[name]; exists {
		return fmt.Errorf("validate: strategy %q already registered", name)
	}

	r.strategies[name] = strategy
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *StrategyRegistry) MustRegister(strategy Strategy) {
	if err := r.Register(strategy); err != nil {
		panic(err)
	}
}

// Get retrieves a strategy by name.
func (r *StrategyRegistry) Get(name string) (Strategy, error) {
	key := normalizeStrategyName(name)
	if key == "" {
		return nil, fmt.Errorf("validate: strategy name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, ok := r.strategies[key]
	if !ok {
		return nil, fmt.Errorf("validate: strategy %q not found", key)
	}
	return strategy, nil
}

// Has reports whether a strategy is registered.
func (r *StrategyRegistry) Has(name string) bool {
	key := normalizeStrategyName(name)
	if key == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.strategies[key]
	return ok
}

// List returns a sorted list of strategy names.
func (r *StrategyRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeStrategyName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
