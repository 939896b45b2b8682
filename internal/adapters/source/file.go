package source

import (
	"context"
	"errors"
	iofs "io/fs"
	"net/url"
	"os"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

// FileScheme is the locator scheme served by FileLocator.
const FileScheme = "file"

var _ ports.LocatorOpener = (*FileLocator)(nil)

// FileLocator opens file:// locators.
type FileLocator struct{}

// NewFileLocator creates a FileLocator.
func NewFileLocator() *FileLocator {
	return &FileLocator{}
}

// Open implements ports.LocatorOpener.
func (FileLocator) Open(_ context.Context, loc string) ([]byte, error) {
	u, err := url.Parse(loc)
	if err != nil || u.Scheme != FileScheme || u.Path == "" {
		return nil, zerr.With(domain.Classify(domain.ErrNotFound, domain.ErrInvalidLocator), "locator", loc)
	}

	data, err := os.ReadFile(u.Path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "file locator target missing"), "locator", loc)
	}
	if err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrNotFound, err), "locator", loc)
	}
	return data, nil
}

// FileURL returns the file locator of an absolute path.
func FileURL(path string) string {
	u := url.URL{Scheme: FileScheme, Path: path}
	return u.String()
}
