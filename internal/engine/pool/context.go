package pool

import (
	"context"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

var _ ports.TransformingContext = (*transformingContext)(nil)

// transformingContext is scoped to one member of one domain.
type transformingContext struct {
	domain *Domain
	member *member
}

func (c *transformingContext) Unit() string {
	return c.member.name()
}

func (c *transformingContext) Domain() string {
	return c.domain.name
}

func (c *transformingContext) Lookup(ctx context.Context, artifact string) ([]byte, error) {
	return c.domain.lookup(ctx, c.member, artifact)
}

// CrossInto does not check visibility. Any unit of the pool can be entered.
func (c *transformingContext) CrossInto(unit string) (ports.TransformingContext, error) {
	return c.domain.pool.Context(unit)
}

// OwnerOfNamespace answers from the static ownership map only. Namespaces
// that became visible through runtime edges are not reported.
func (c *transformingContext) OwnerOfNamespace(ns string) (string, bool) {
	owner, ok := c.domain.static[ns]
	return owner, ok
}

func (c *transformingContext) OwnerOfArtifact(artifact string) (string, bool) {
	return c.OwnerOfNamespace(domain.NamespaceOf(artifact))
}
