// Package transform provides Transformer implementations: a no-op default,
// function adapters, chaining and pattern based denial.
package transform

import (
	"context"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

var (
	_ ports.Transformer = Noop{}
	_ ports.Transformer = Func(nil)
	_ ports.Transformer = Chain{}
)

// Noop returns every artifact unchanged.
type Noop struct{}

// Transform implements ports.Transformer.
func (Noop) Transform(
	_ context.Context,
	_ ports.TransformingContext,
	_, _ string,
	data []byte,
	_ domain.Reason,
) ([]byte, error) {
	return data, nil
}

// Func adapts a function to ports.Transformer.
type Func func(
	ctx context.Context,
	tc ports.TransformingContext,
	unit, artifact string,
	data []byte,
	reason domain.Reason,
) ([]byte, error)

// Transform implements ports.Transformer.
func (f Func) Transform(
	ctx context.Context,
	tc ports.TransformingContext,
	unit, artifact string,
	data []byte,
	reason domain.Reason,
) ([]byte, error) {
	return f(ctx, tc, unit, artifact, data, reason)
}

// Chain runs transformers in order, feeding each the previous output.
// It stops as soon as one returns no bytes or an error.
type Chain []ports.Transformer

// Transform implements ports.Transformer.
func (c Chain) Transform(
	ctx context.Context,
	tc ports.TransformingContext,
	unit, artifact string,
	data []byte,
	reason domain.Reason,
) ([]byte, error) {
	for _, t := range c {
		out, err := t.Transform(ctx, tc, unit, artifact, data, reason)
		if err != nil || len(out) == 0 {
			return nil, err
		}
		data = out
	}
	return data, nil
}
