// Package telemetry wraps OpenTelemetry tracing for the benchmark phases.
//
// Without an SDK registered through otel.SetTracerProvider every span is a
// no-op, so instrumentation costs nothing outside the timed regions.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/agbru/triadbench"

// Attribute keys shared by all benchmark spans.
const (
	KeyStrategy = attribute.Key("triad.strategy")
	KeySize     = attribute.Key("triad.size")
	KeyThreads  = attribute.Key("triad.threads")
	KeyIters    = attribute.Key("triad.iters")
)

// Tracer starts spans for the calibrate and trials phases.
type Tracer struct {
	tracer trace.Tracer
}

// New creates a Tracer from tp, falling back to the global provider.
func New(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{tracer: tp.Tracer(instrumentationName)}
}

// Start opens a span named after the phase.
func (t *Tracer) Start(ctx context.Context, phase string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, phase, trace.WithAttributes(attrs...))
}

// RecordProbe adds a calibration probe event to span.
func RecordProbe(span trace.Span, iters int, d time.Duration) {
	span.AddEvent("probe", trace.WithAttributes(
		KeyIters.Int(iters),
		attribute.Float64("duration_seconds", d.Seconds()),
	))
}

// RecordTrial adds a timed trial event to span.
func RecordTrial(span trace.Span, k int, d time.Duration) {
	span.AddEvent("trial", trace.WithAttributes(
		attribute.Int("trial", k),
		attribute.Float64("duration_seconds", d.Seconds()),
	))
}

// End closes span, marking it failed when err is non-nil.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
