package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordedSpan struct {
	noop.Span
	mu     sync.Mutex
	name   string
	attrs  []attribute.KeyValue
	events []string
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordedSpan) AddEvent(name string, _ ...trace.EventOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, name)
}

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
}

func (s *recordedSpan) End(...trace.SpanEndOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, attrs: cfg.Attributes()}
	r.spans = append(r.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer { return p.tracer }

func TestTracer_PhaseSpan(t *testing.T) {
	t.Parallel()
	tp := &recordingProvider{tracer: &recordingTracer{}}
	tr := New(tp)

	_, span := tr.Start(context.Background(), "calibrate", KeyStrategy.String("striad_ws"), KeyThreads.Int(4))
	RecordProbe(span, 5, time.Millisecond)
	RecordProbe(span, 5120, 90*time.Millisecond)
	End(span, nil)

	if len(tp.tracer.spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(tp.tracer.spans))
	}
	s := tp.tracer.spans[0]
	if s.name != "calibrate" {
		t.Errorf("span name = %q, want calibrate", s.name)
	}
	if len(s.attrs) != 2 {
		t.Errorf("expected 2 attributes, got %v", s.attrs)
	}
	if len(s.events) != 2 || s.events[0] != "probe" {
		t.Errorf("expected two probe events, got %v", s.events)
	}
	if !s.ended || s.status != codes.Ok {
		t.Errorf("span should end with Ok status, ended=%v status=%v", s.ended, s.status)
	}
}

func TestEnd_RecordsError(t *testing.T) {
	t.Parallel()
	tp := &recordingProvider{tracer: &recordingTracer{}}
	_, span := New(tp).Start(context.Background(), "trials")
	RecordTrial(span, 0, 300*time.Millisecond)
	End(span, errors.New("striad_tp: unit 1 failed"))

	s := tp.tracer.spans[0]
	if s.status != codes.Error || len(s.errs) != 1 {
		t.Errorf("failed span should carry the error, status=%v errs=%v", s.status, s.errs)
	}
}

func TestNew_GlobalProviderIsNoop(t *testing.T) {
	t.Parallel()
	ctx, span := New(nil).Start(context.Background(), "trials")
	End(span, nil)
	if ctx == nil {
		t.Fatal("Start should return a context")
	}
}
