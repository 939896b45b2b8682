package transform

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

// Deny hides artifacts whose name matches one of its patterns.
//
// Patterns are written in artifact form with dots between segments:
// "*" matches one segment and "**" any number of them, so "app.internal.**"
// hides everything below app.internal and "**.Secret" hides every Secret.
type Deny struct {
	patterns []string
}

var _ ports.Transformer = (*Deny)(nil)

// NewDeny compiles patterns. An invalid pattern is an error.
func NewDeny(patterns ...string) (*Deny, error) {
	d := &Deny{patterns: make([]string, 0, len(patterns))}
	for _, p := range patterns {
		if err := ValidatePattern(p); err != nil {
			return nil, err
		}
		d.patterns = append(d.patterns, toPath(p))
	}
	return d, nil
}

// ValidatePattern reports whether p is a valid deny pattern.
func ValidatePattern(p string) error {
	if p == "" || !doublestar.ValidatePattern(toPath(p)) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidDenyPattern, "failed to compile deny pattern"), "pattern", p)
	}
	return nil
}

// Denies reports whether artifact matches a pattern.
func (d *Deny) Denies(artifact string) bool {
	name := toPath(artifact)
	for _, p := range d.patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Transform implements ports.Transformer. Denied artifacts come back empty.
func (d *Deny) Transform(
	_ context.Context,
	_ ports.TransformingContext,
	_, artifact string,
	data []byte,
	_ domain.Reason,
) ([]byte, error) {
	if d.Denies(artifact) {
		return nil, nil
	}
	return data, nil
}

func toPath(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
