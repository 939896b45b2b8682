// Package locator maps (pool, unit, artifact) triples to opaque locators and back.
package locator

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"sync"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// Target is a pool that locators can address.
type Target interface {
	Resolve(ctx context.Context, unit, artifact string) ([]byte, error)
	Descriptor(unit string) ([]byte, error)
}

// Registry is the table of pool identifiers.
// Entries are added when a pool is constructed and are never removed.
type Registry struct {
	mu      sync.RWMutex
	targets map[string]Target
}

// Default is the process-wide registry used by pools that do not name one.
var Default = NewRegistry()

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]Target)}
}

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// FallbackID replaces a name with no identifier characters left after sanitizing.
const FallbackID = "pool"

// Register adds t under a sanitized form of name and returns the identifier it got.
// If the identifier is taken, "-0", "-1", ... are tried in order.
func (r *Registry) Register(name string, t Target) string {
	id := unsafeIDChars.ReplaceAllString(name, "")
	if id == "" {
		id = FallbackID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.targets[id]; !taken {
		r.targets[id] = t
		return id
	}
	for n := 0; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if _, taken := r.targets[candidate]; !taken {
			r.targets[candidate] = t
			return candidate
		}
	}
}

// Lookup returns the target registered under id.
func (r *Registry) Lookup(id string) (Target, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.targets[id]
	return t, ok
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.targets)
}

// Open resolves a strata locator. Every failure surfaces as domain.ErrNotFound.
func (r *Registry) Open(ctx context.Context, loc string) ([]byte, error) {
	addr, err := Parse(loc)
	if err != nil {
		return nil, notFound(loc, err)
	}

	t, ok := r.Lookup(addr.Pool)
	if !ok {
		return nil, notFound(loc, errUnknownPool)
	}

	var data []byte
	if addr.Artifact == DescriptorName {
		data, err = t.Descriptor(addr.Unit)
	} else {
		data, err = t.Resolve(ctx, addr.Unit, addr.Artifact)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, zerr.With(zerr.Wrap(err, "open locator"), "locator", loc)
		}
		return nil, notFound(loc, err)
	}
	return data, nil
}

var errUnknownPool = zerr.New("no pool registered under identifier")

func notFound(loc string, cause error) error {
	return zerr.With(domain.Classify(domain.ErrNotFound, cause), "locator", loc)
}
