package pool

import (
	"maps"
	"slices"
	"sync"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// VisibilityGraph holds the namespace mappings a domain gained through
// runtime visibility edges, together with the edges themselves.
// Readers observe edges and mappings under the same lock, so an edge is
// never visible without its mappings.
type VisibilityGraph struct {
	mu     sync.RWMutex
	owners map[string]string
	edges  map[string][]string
}

// NewVisibilityGraph creates an empty VisibilityGraph.
func NewVisibilityGraph() *VisibilityGraph {
	return &VisibilityGraph{
		owners: make(map[string]string),
		edges:  make(map[string][]string),
	}
}

// Owner returns the unit a runtime edge mapped ns to.
func (v *VisibilityGraph) Owner(ns string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	unit, ok := v.owners[ns]
	return unit, ok
}

// Sees reports whether a runtime edge from source to target exists.
func (v *VisibilityGraph) Sees(source, target string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Contains(v.edges[source], target)
}

// OwnerFor returns the runtime owner of ns if source has an edge to it.
func (v *VisibilityGraph) OwnerFor(source, ns string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	unit, ok := v.owners[ns]
	if !ok || !slices.Contains(v.edges[source], unit) {
		return "", false
	}
	return unit, true
}

// Edges returns a copy of the recorded edges, keyed by source unit.
func (v *VisibilityGraph) Edges() map[string][]string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(map[string][]string, len(v.edges))
	for src, targets := range v.edges {
		out[src] = slices.Clone(targets)
	}
	return out
}

// Mappings returns a copy of the runtime namespace mappings.
func (v *VisibilityGraph) Mappings() map[string]string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return maps.Clone(v.owners)
}

// Extend adds the edge source -> target, mapping every namespace of target
// that is new to the domain. static reports the construction-time owner of a namespace.
// Validation, commit and install all happen under one write lock; a conflict or
// a failed commit leaves the graph untouched.
// It returns the namespaces that were newly mapped.
func (v *VisibilityGraph) Extend(
	source, target string,
	namespaces []string,
	static func(ns string) (string, bool),
	commit func() error,
) ([]string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var added []string
	for _, ns := range namespaces {
		if owner, ok := static(ns); ok {
			if owner == target {
				continue
			}
			return nil, conflict(ns, owner, target)
		}
		if owner, ok := v.owners[ns]; ok {
			if owner == target {
				continue
			}
			return nil, conflict(ns, owner, target)
		}
		added = append(added, ns)
	}

	if err := commit(); err != nil {
		return nil, err
	}

	if !slices.Contains(v.edges[source], target) {
		v.edges[source] = append(v.edges[source], target)
	}
	for _, ns := range added {
		v.owners[ns] = target
	}
	return added, nil
}

func conflict(ns, owner, proposed string) error {
	return zerr.With(zerr.With(zerr.With(
		zerr.Wrap(domain.ErrConflict, "namespace already owned"),
		"namespace", ns),
		"owner", owner),
		"proposed", proposed)
}
