package goal

import (
	"fmt"
	"sort"
	"sync"

	rverrors "git.home.luguber.info/inful/restviz/internal/errors"
)

// Registry manages goal registration and lookup.
type Registry struct {
	mu    sync.RWMutex
	goals map[string]Goal
}

// NewRegistry creates a new empty goal registry.
func NewRegistry() *Registry {
	return &Registry{
		goals: make(map[string]Goal),
	}
}

// Register adds a goal to the registry.
// Returns an error if a goal with the same name already exists.
func (r *Registry) Register(g Goal) error {
	if g == nil {
		return fmt.Errorf("cannot register nil goal")
	}

	metadata := g.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid goal metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.goals[metadata.Name]; exists {
		return fmt.Errorf("goal %s already registered", metadata.Name)
	}

	r.goals[metadata.Name] = g
	return nil
}

// MustRegister is Register for static registration tables; it panics on error.
func (r *Registry) MustRegister(goals ...Goal) *Registry {
	for _, g := range goals {
		if err := r.Register(g); err != nil {
			panic(err)
		}
	}
	return r
}

// Get retrieves a goal by name.
func (r *Registry) Get(name string) (Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.goals[name]
	if !ok {
		return nil, rverrors.UnknownGoal(name)
	}
	return g, nil
}

// Has checks if a goal with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.goals[name]
	return ok
}

// List returns all registered goals ordered by phase, then name.
func (r *Registry) List() []Goal {
	r.mu.RLock()
	result := make([]Goal, 0, len(r.goals))
	for _, g := range r.goals {
		result = append(result, g)
	}
	r.mu.RUnlock()

	sortGoals(result)
	return result
}

// ListByPhase returns the goals bound to a phase, ordered by name.
func (r *Registry) ListByPhase(phase Phase) []Goal {
	r.mu.RLock()
	var result []Goal
	for _, g := range r.goals {
		if g.Metadata().Phase == phase {
			result = append(result, g)
		}
	}
	r.mu.RUnlock()

	sortGoals(result)
	return result
}

// Unregister removes a goal from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[name]; !ok {
		return fmt.Errorf("goal %s not found", name)
	}
	delete(r.goals, name)
	return nil
}

// Count returns the number of registered goals.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.goals)
}

func sortGoals(goals []Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		mi, mj := goals[i].Metadata(), goals[j].Metadata()
		if pi, pj := mi.Phase.Index(), mj.Phase.Index(); pi != pj {
			return pi < pj
		}
		return mi.Name < mj.Name
	})
}
