package pool

import (
	"context"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

// passthrough returns artifact bytes unchanged.
type passthrough struct{}

func (passthrough) Transform(
	_ context.Context,
	_ ports.TransformingContext,
	_, _ string,
	data []byte,
	_ domain.Reason,
) ([]byte, error) {
	return data, nil
}

type quietLogger struct{}

func (quietLogger) Debug(string, ...any) {}
func (quietLogger) Info(string, ...any)  {}
func (quietLogger) Warn(string, ...any)  {}
func (quietLogger) Error(error)          {}

type quietTracer struct{}

func (quietTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, quietSpan{}
}

type quietSpan struct{}

func (quietSpan) End()                     {}
func (quietSpan) RecordError(error)        {}
func (quietSpan) SetAttribute(string, any) {}

type quietMetrics struct{}

func (quietMetrics) ObserveResolve(string, ports.Outcome)  {}
func (quietMetrics) ObserveTransform(string, string, bool) {}
func (quietMetrics) ObserveEdge(bool)                      {}
func (quietMetrics) ObserveRuntimeArtifact(bool)           {}

// noLocators rejects every locator.
type noLocators struct{}

func (noLocators) Open(_ context.Context, locator string) ([]byte, error) {
	return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "no locator opener configured"), "locator", locator)
}
