package pool

import "sync"

type runtimeKey struct {
	unit     string
	artifact string
}

// RuntimeRegistry maps (unit, artifact) pairs to locators of artifacts that
// are not part of the unit's source. The first registered locator wins.
type RuntimeRegistry struct {
	mu      sync.RWMutex
	entries map[runtimeKey]string
}

// NewRuntimeRegistry creates an empty RuntimeRegistry.
func NewRuntimeRegistry() *RuntimeRegistry {
	return &RuntimeRegistry{entries: make(map[runtimeKey]string)}
}

// Add registers locator for (unit, artifact) unless an entry already exists.
// It returns the effective locator and whether this call inserted it.
func (r *RuntimeRegistry) Add(unit, artifact, locator string) (string, bool) {
	key := runtimeKey{unit: unit, artifact: artifact}

	r.mu.RLock()
	existing, ok := r.entries[key]
	r.mu.RUnlock()
	if ok {
		return existing, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.entries[key]; ok {
		return existing, false
	}
	r.entries[key] = locator
	return locator, true
}

// Get returns the locator registered for (unit, artifact).
func (r *RuntimeRegistry) Get(unit, artifact string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc, ok := r.entries[runtimeKey{unit: unit, artifact: artifact}]
	return loc, ok
}

// Len returns the number of registered artifacts.
func (r *RuntimeRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
