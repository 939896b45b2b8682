package ports

import (
	"context"
	"io"
	"iter"

	"go.trai.ch/strata/internal/core/domain"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// ArtifactSource provides the raw bytes of a single unit.
type ArtifactSource interface {
	io.Closer
	// Entries yields every entry path of the source, slash separated.
	Entries() iter.Seq[string]
	// Open returns the bytes of the entry at path.
	// Returns nil, nil if the entry is absent.
	Open(path string) ([]byte, error)
	// Descriptor returns the unit's descriptor blob if the source carries one.
	Descriptor() ([]byte, bool)
}

// SourceOpener opens the artifact source of a unit.
type SourceOpener interface {
	Open(ctx context.Context, unit *domain.Unit) (ArtifactSource, error)
}
