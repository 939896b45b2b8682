package ports

import (
	"context"

	"go.trai.ch/strata/internal/core/domain"
)

//go:generate mockgen -source=transformer.go -destination=mocks/mock_transformer.go -package=mocks

// Transformer rewrites artifact bytes on their way out of a unit's source.
// Returning no bytes makes the artifact absent.
type Transformer interface {
	Transform(
		ctx context.Context,
		tc TransformingContext,
		unit, artifact string,
		data []byte,
		reason domain.Reason,
	) ([]byte, error)
}

// TransformingContext is the view a transformer has of the unit being transformed.
type TransformingContext interface {
	// Unit returns the name of the unit being transformed.
	Unit() string
	// Domain returns the name of the domain the unit belongs to.
	Domain() string
	// Lookup resolves an artifact among the namespaces visible from the unit,
	// through static reads or runtime edges.
	Lookup(ctx context.Context, artifact string) ([]byte, error)
	// CrossInto returns the context of another unit of the same pool.
	// Visibility is not checked.
	CrossInto(unit string) (TransformingContext, error)
	// OwnerOfNamespace returns the unit owning ns as seen through static reads only.
	// Runtime edges are not reflected.
	OwnerOfNamespace(ns string) (string, bool)
	// OwnerOfArtifact is OwnerOfNamespace applied to the artifact's namespace.
	OwnerOfArtifact(artifact string) (string, bool)
}
