package action

import "sync"

// Registry maps names to actions and remembers insertion order.
//
// Registering a name that already exists replaces the action in place, so the
// listing order reflects the first registration of each name.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	actions map[string]*Action
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: map[string]*Action{}}
}

// Register inserts or replaces the action under its name.
func (r *Registry) Register(a *Action) *Registry {
	if r == nil || a == nil {
		return r
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.actions == nil {
		r.actions = map[string]*Action{}
	}
	if _, exists := r.actions[a.name]; !exists {
		r.order = append(r.order, a.name)
	}
	r.actions[a.name] = a
	return r
}

// Resolve returns the action registered under name.
func (r *Registry) Resolve(name string) (*Action, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[name]
	return a, ok
}

// ResolveLast returns the action at the end of the listing order.
func (r *Registry) ResolveLast() (*Action, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return nil, false
	}
	return r.actions[r.order[len(r.order)-1]], true
}

// ResolveAll returns every action in listing order.
func (r *Registry) ResolveAll() []*Action {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Action, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.actions[name])
	}
	return out
}

// Names returns every registered name in listing order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
