package source

import (
	"iter"
	"maps"
	"slices"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

var _ ports.ArtifactSource = (*MemorySource)(nil)

// MemorySource serves entries held in memory. The zero value is an empty source.
type MemorySource struct {
	entries map[string][]byte
}

// NewMemorySource creates a MemorySource holding a copy of entries.
func NewMemorySource(entries map[string][]byte) *MemorySource {
	return &MemorySource{entries: maps.Clone(entries)}
}

func (s *MemorySource) Entries() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(s.entries)))
}

func (s *MemorySource) Open(path string) ([]byte, error) {
	return s.entries[path], nil
}

func (s *MemorySource) Descriptor() ([]byte, bool) {
	data, ok := s.entries[domain.DescriptorPath]
	return data, ok
}

func (s *MemorySource) Close() error {
	return nil
}
