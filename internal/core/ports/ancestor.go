package ports

import (
	"context"

	"go.trai.ch/strata/internal/core/domain"
)

//go:generate mockgen -source=ancestor.go -destination=mocks/mock_ancestor.go -package=mocks

// Ancestor is a previously built pool that a pool resolves against but does not manage.
type Ancestor interface {
	// Graph returns the graph the ancestor was built from.
	Graph() *domain.Graph
	// Ancestors returns the ancestor's own ancestors, in declared order.
	Ancestors() []Ancestor
	// Load resolves artifact in unit. Bytes come back as the ancestor produced them.
	Load(ctx context.Context, unit, artifact string) ([]byte, error)
	// Resource resolves a named resource in unit.
	Resource(ctx context.Context, unit, path string) ([]byte, error)
}

// Binder performs the privileged binding of a new domain to an ancestor.
// It is invoked once per (domain, reachable ancestor) at pool construction.
type Binder interface {
	Bind(ctx context.Context, ancestor Ancestor, domainName string) error
}

// EdgeCommitter records a visibility edge on the authoritative graph.
// Mappings are only installed once CommitEdge succeeds.
type EdgeCommitter interface {
	CommitEdge(ctx context.Context, source, target string) error
}
