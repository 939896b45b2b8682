package transform

import (
	"context"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

// Selector picks the transformer of the pool built from a layout.
type Selector func(*domain.Layout) ports.Transformer

// ForLayout returns a Selector that runs base and then the layout's deny
// patterns. A layout carrying an invalid pattern rejects every artifact.
func ForLayout(base ports.Transformer) Selector {
	if base == nil {
		base = Noop{}
	}
	return func(l *domain.Layout) ports.Transformer {
		if len(l.Deny) == 0 {
			return base
		}
		deny, err := NewDeny(l.Deny...)
		if err != nil {
			return rejectAll{err: zerr.With(err, "manifest", l.Path)}
		}
		return Chain{base, deny}
	}
}

type rejectAll struct {
	err error
}

func (r rejectAll) Transform(
	context.Context,
	ports.TransformingContext,
	string, string,
	[]byte,
	domain.Reason,
) ([]byte, error) {
	return nil, r.err
}
