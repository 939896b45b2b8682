package source

import (
	"io"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactSource = (*ZipSource)(nil)

// ZipSource serves the entries of a zip archive.
type ZipSource struct {
	path    string
	archive *zip.ReadCloser
	files   map[string]*zip.File
}

// OpenZip opens the archive at path.
func OpenZip(path string) (*ZipSource, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open archive"), "path", path)
	}

	files := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		if f.FileInfo().IsDir() {
			continue
		}
		files[strings.TrimPrefix(f.Name, "/")] = f
	}
	return &ZipSource{path: path, archive: archive, files: files}, nil
}

// Entries implements ports.ArtifactSource.
func (s *ZipSource) Entries() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(s.files)))
}

// Open implements ports.ArtifactSource.
func (s *ZipSource) Open(path string) ([]byte, error) {
	f, ok := s.files[path]
	if !ok {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(err, "failed to open archive entry"), "archive", s.path), "entry", path)
	}
	defer rc.Close() //nolint:errcheck // Read-only entry

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(err, "failed to read archive entry"), "archive", s.path), "entry", path)
	}
	return data, nil
}

// Descriptor implements ports.ArtifactSource.
func (s *ZipSource) Descriptor() ([]byte, bool) {
	data, err := s.Open(domain.DescriptorPath)
	if err != nil || data == nil {
		return nil, false
	}
	return data, true
}

// Close implements ports.ArtifactSource.
func (s *ZipSource) Close() error {
	if err := s.archive.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close archive"), "path", s.path)
	}
	return nil
}
