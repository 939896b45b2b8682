// Package source opens the artifact sources of units from directories and archives.
package source

import (
	"errors"
	iofs "io/fs"
	"iter"
	"os"
	"slices"

	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactSource = (*DirSource)(nil)

// DirSource serves the files below a directory.
type DirSource struct {
	root    string
	fsys    iofs.FS
	entries []string
}

// OpenDir indexes the files below root.
func OpenDir(root string, walker *fs.Walker) (*DirSource, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat unit directory"), "path", root)
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.New("unit location is not a directory"), "path", root)
	}

	return &DirSource{
		root:    root,
		fsys:    os.DirFS(root),
		entries: slices.Sorted(walker.WalkFiles(root, nil)),
	}, nil
}

// Entries implements ports.ArtifactSource.
func (s *DirSource) Entries() iter.Seq[string] {
	return slices.Values(s.entries)
}

// Open implements ports.ArtifactSource.
func (s *DirSource) Open(path string) ([]byte, error) {
	if !iofs.ValidPath(path) {
		return nil, nil
	}
	data, err := iofs.ReadFile(s.fsys, path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(err, "failed to read entry"), "root", s.root), "entry", path)
	}
	return data, nil
}

// Descriptor implements ports.ArtifactSource.
func (s *DirSource) Descriptor() ([]byte, bool) {
	data, err := s.Open(domain.DescriptorPath)
	if err != nil || data == nil {
		return nil, false
	}
	return data, true
}

// Close implements ports.ArtifactSource.
func (s *DirSource) Close() error {
	return nil
}
