package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/triadbench/internal/calibration"
	apperrors "github.com/agbru/triadbench/internal/errors"
	"github.com/agbru/triadbench/internal/logging"
	"github.com/agbru/triadbench/internal/memory"
	"github.com/agbru/triadbench/internal/metrics"
	"github.com/agbru/triadbench/internal/report"
	"github.com/agbru/triadbench/internal/stats"
	"github.com/agbru/triadbench/internal/sysmon"
	"github.com/agbru/triadbench/internal/telemetry"
	"github.com/agbru/triadbench/internal/triad"
)

// Params describes one benchmark run.
type Params struct {
	Strategy triad.Strategy
	Size     int
	Threads  int
	// NTimes is the number of timed trials, warm-up included.
	NTimes int
	GCMode memory.GCMode
}

// Outcome is the full record of a run. Result carries the reported figures;
// the other fields feed the verbose summary.
type Outcome struct {
	Result      report.Result
	Calibration calibration.State
	Samples     stats.Samples
	Summary     stats.Summary
	GC          memory.GCStats
	GCActive    bool
	Memory      metrics.PhaseDelta
	Peak        sysmon.Stats
	PeakSamples int
	Elapsed     time.Duration
}

// Runner wires a strategy through calibration, trials and reporting.
type Runner struct {
	logger         logging.Logger
	zl             zerolog.Logger
	metrics        *metrics.Metrics
	tracer         *telemetry.Tracer
	observer       Observer
	calibration    calibration.Config
	now            func() time.Time
	sampleInterval time.Duration
	sampleSystem   bool
	memCollector   *metrics.MemoryCollector
}

// Option configures a Runner during construction.
type Option func(*Runner)

// WithLogger sets the logger. A *logging.ZerologAdapter also feeds the
// calibration engine and GC controller, which log through zerolog directly.
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) {
		r.logger = l
		if za, ok := l.(*logging.ZerologAdapter); ok {
			r.zl = za.Zerolog()
		}
	}
}

// WithMetrics records probes, trials and results into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithTracer sets the tracer used for phase spans.
func WithTracer(t *telemetry.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// WithObserver registers a progress observer.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observer = o }
}

// WithCalibrationConfig overrides the calibration parameters.
func WithCalibrationConfig(cfg calibration.Config) Option {
	return func(r *Runner) { r.calibration = cfg }
}

// WithClock replaces the wall clock used to time probes and trials.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithSystemSampling samples system CPU and memory usage after every
// trial, at most once per interval.
func WithSystemSampling(interval time.Duration) Option {
	return func(r *Runner) {
		r.sampleSystem = true
		r.sampleInterval = interval
	}
}

// NewRunner creates a Runner with no-op instrumentation unless options
// provide some.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:       logging.Nop(),
		zl:           zerolog.Nop(),
		tracer:       telemetry.New(nil),
		observer:     NullObserver{},
		calibration:  calibration.DefaultConfig(),
		now:          time.Now,
		memCollector: metrics.NewMemoryCollector(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the benchmark and returns the reported result.
func (r *Runner) Run(ctx context.Context, p Params) (report.Result, error) {
	out, err := r.RunDetailed(ctx, p)
	return out.Result, err
}

// RunDetailed executes the benchmark and returns every intermediate figure.
func (r *Runner) RunDetailed(ctx context.Context, p Params) (Outcome, error) {
	var out Outcome
	if err := validate(p); err != nil {
		return out, err
	}
	name := p.Strategy.Name()
	start := r.now()

	if r.metrics != nil {
		r.metrics.IncrementActive()
		defer r.metrics.DecrementActive()
	}

	r.observer.OnPhase(PhaseInit)
	trialAlloc := uint64(0)
	if a, ok := p.Strategy.(triad.Allocator); ok {
		trialAlloc = a.TrialAllocBytes(p.Size, p.Threads)
	}
	r.checkFootprint(p, trialAlloc)

	v, err := triad.NewVectors(p.Size, p.Threads)
	if err != nil {
		return out, r.fail("init", err)
	}
	probe := r.timed(p.Strategy, v, p.Threads)

	gc := memory.NewGCController(p.GCMode, trialAlloc)
	gc.SetLogger(r.zl)
	before := r.memCollector.Snapshot()
	gc.Begin()
	gcEnded := false
	endGC := func() {
		if !gcEnded {
			gc.End()
			gcEnded = true
		}
	}
	defer endGC()

	// Calibration.
	r.observer.OnPhase(PhaseCalibrate)
	st, err := r.calibrate(ctx, p, probe)
	out.Calibration = st
	if err != nil {
		return out, r.fail("calibrate", err)
	}
	r.logger.Info("calibration converged",
		logging.String("strategy", name),
		logging.Int("iters", st.Iters),
		logging.Int("probes", st.Probes),
		logging.Duration("last_probe", st.LastDuration),
		logging.String("reason", string(st.Reason)),
	)

	// Trials.
	r.observer.OnPhase(PhaseTrials)
	samples, sampler, err := r.trials(ctx, p, probe, st.Iters)
	out.Samples = samples
	if sampler != nil {
		out.Peak, out.PeakSamples = sampler.Peak()
	}
	endGC()
	out.GC, out.GCActive = gc.Stats(), gc.Active()
	after := r.memCollector.Snapshot()
	out.Memory = after.Since(before)
	if r.metrics != nil {
		r.metrics.ObserveMemory(after)
	}
	if err != nil {
		return out, r.fail("trials", err)
	}

	summary, err := stats.Reduce(samples)
	if err != nil {
		return out, r.fail("reduce", err)
	}
	out.Summary = summary
	out.Result = report.Result{
		Strategy: name,
		Size:     p.Size,
		Threads:  p.Threads,
		Iters:    st.Iters,
		Scale:    p.Strategy.Scale(p.Threads),
		MinTime:  summary.Min,
		MaxTime:  summary.Max,
		AvgTime:  summary.Mean,
		StdDev:   stats.StdDev(samples),
	}
	out.Elapsed = r.now().Sub(start)

	if r.metrics != nil {
		r.metrics.SetMFLOPS(name, out.Result.MFLOPS())
	}
	r.logger.Info("benchmark complete",
		logging.String("strategy", name),
		logging.Float64("min_seconds", summary.Min),
		logging.Float64("max_seconds", summary.Max),
		logging.Float64("avg_seconds", summary.Mean),
		logging.Float64("mflops", out.Result.MFLOPS()),
		logging.Uint64("gc_cycles", uint64(out.Memory.GCCycles)),
	)
	return out, nil
}

// timed wraps the strategy into a prober measuring wall-clock time around
// one Run call, unit creation and teardown included.
func (r *Runner) timed(s triad.Strategy, v *triad.Vectors, threads int) func(ctx context.Context, iters int) (time.Duration, error) {
	return func(ctx context.Context, iters int) (time.Duration, error) {
		t0 := r.now()
		err := s.Run(ctx, v, iters, threads)
		return r.now().Sub(t0), err
	}
}

func (r *Runner) calibrate(ctx context.Context, p Params, probe calibration.Prober) (calibration.State, error) {
	name := p.Strategy.Name()
	units := p.Strategy.Scale(p.Threads)
	ctx, span := r.tracer.Start(ctx, string(PhaseCalibrate), r.attrs(p)...)

	engine := calibration.New(r.calibration,
		calibration.WithLogger(r.zl),
		calibration.WithObserver(func(st calibration.State) {
			last := st.History[len(st.History)-1]
			telemetry.RecordProbe(span, last.Iters, last.Duration)
			if r.metrics != nil {
				r.metrics.ObserveProbe(name, units, last.Iters, last.Duration)
			}
			r.observer.OnProbe(st)
		}),
	)
	st, err := engine.Calibrate(ctx, probe)
	if err == nil {
		span.SetAttributes(telemetry.KeyIters.Int(st.Iters))
		if r.metrics != nil {
			r.metrics.SetCalibratedIters(name, st.Iters)
		}
	}
	telemetry.End(span, err)
	return st, err
}

func (r *Runner) trials(ctx context.Context, p Params, probe calibration.Prober, iters int) (stats.Samples, *sysmon.PeakSampler, error) {
	name := p.Strategy.Name()
	units := p.Strategy.Scale(p.Threads)
	attrs := append(r.attrs(p), telemetry.KeyIters.Int(iters))
	ctx, span := r.tracer.Start(ctx, string(PhaseTrials), attrs...)

	var sampler *sysmon.PeakSampler
	if r.sampleSystem {
		sampler = sysmon.NewPeakSampler(r.sampleInterval)
	}

	samples, err := stats.Collect(ctx, stats.Trial(probe), iters, p.NTimes, func(k int, d time.Duration) {
		telemetry.RecordTrial(span, k, d)
		if r.metrics != nil {
			r.metrics.ObserveTrial(name, units, iters, d)
		}
		r.logger.Debug("trial", logging.Int("k", k), logging.Duration("elapsed", d))
		r.observer.OnTrial(k, p.NTimes, d)
		if sampler != nil {
			sampler.Observe()
		}
	})
	telemetry.End(span, err)
	return samples, sampler, err
}

func (r *Runner) attrs(p Params) []attribute.KeyValue {
	return []attribute.KeyValue{
		telemetry.KeyStrategy.String(p.Strategy.Name()),
		telemetry.KeySize.Int(p.Size),
		telemetry.KeyThreads.Int(p.Threads),
	}
}

// checkFootprint warns when the vectors plus one trial's private outputs
// exceed the memory currently available.
func (r *Runner) checkFootprint(p Params, trialAlloc uint64) {
	required := uint64(triad.VectorCount*triad.BytesPerWord)*uint64(p.Size) + trialAlloc
	if fits, avail := sysmon.FootprintFits(required); !fits {
		r.logger.Warn("footprint exceeds available memory",
			logging.Uint64("required_bytes", required),
			logging.Uint64("available_bytes", avail),
		)
	}
}

func (r *Runner) fail(phase string, err error) error {
	if r.metrics != nil {
		r.metrics.IncrementErrors(phase)
	}
	if !apperrors.IsContextError(err) {
		r.logger.Error("benchmark failed", err, logging.String("phase", phase))
	}
	return apperrors.WrapError(err, "%s", phase)
}

func validate(p Params) error {
	switch {
	case p.Strategy == nil:
		return apperrors.NewConfigError("no strategy selected")
	case p.Size <= 0:
		return apperrors.ValidationError{Field: "size", Message: "must be greater than zero"}
	case p.Size > memory.MaxVectorLen(triad.VectorCount):
		return apperrors.ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("must not exceed %d", memory.MaxVectorLen(triad.VectorCount)),
		}
	case p.Threads < 1:
		return apperrors.NewConfigError("thread count must be at least 1, got %d", p.Threads)
	case p.NTimes < stats.MinTrials:
		return apperrors.ValidationError{Field: "ntimes", Message: "must be at least 2"}
	}
	return nil
}
