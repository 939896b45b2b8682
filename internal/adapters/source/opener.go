package source

import (
	"context"
	"os"

	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceOpener = (*Opener)(nil)

// Opener opens a unit's source from its location: a directory is served as
// is, a regular file is read as a zip archive, and a unit without a location
// gets an empty source.
type Opener struct {
	walker *fs.Walker
	logger ports.Logger
}

// NewOpener creates an Opener.
func NewOpener(walker *fs.Walker, logger ports.Logger) *Opener {
	return &Opener{walker: walker, logger: logger}
}

// Open implements ports.SourceOpener.
func (o *Opener) Open(_ context.Context, u *domain.Unit) (ports.ArtifactSource, error) {
	if u.Location == "" {
		return &MemorySource{}, nil
	}

	info, err := os.Stat(u.Location)
	if err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(err, "failed to stat unit location"), "unit", u.Name.String()), "path", u.Location)
	}

	var src ports.ArtifactSource
	if info.IsDir() {
		src, err = OpenDir(u.Location, o.walker)
	} else {
		src, err = OpenZip(u.Location)
	}
	if err != nil {
		return nil, zerr.With(err, "unit", u.Name.String())
	}

	o.logger.Debug("opened unit source", "unit", u.Name.String(), "path", u.Location)
	return src, nil
}
