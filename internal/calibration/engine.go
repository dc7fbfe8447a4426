package calibration

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/triadbench/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Calibration Configuration
// ─────────────────────────────────────────────────────────────────────────────

const (
	// InitialIterations is the iteration count of the first probe.
	InitialIterations = 5

	// TargetDuration is the probe length the growth factor aims for.
	TargetDuration = 300 * time.Millisecond

	// CeilingDuration stops calibration as soon as a probe exceeds it,
	// accepting the current iteration count.
	CeilingDuration = 100 * time.Millisecond

	// MinGrowthFactor and MaxGrowthFactor bound the multiplier applied
	// between probes. A zero or negative duration delta (equal or shrinking
	// consecutive probes) yields MaxGrowthFactor.
	MinGrowthFactor = 2
	MaxGrowthFactor = 1024

	// MaxIterations caps the iteration count.
	MaxIterations = math.MaxInt >> 10

	// MaxProbes bounds the number of probes before calibration fails.
	MaxProbes = 64
)

// Reason records why a calibration converged.
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonTarget  Reason = "target"
	ReasonCeiling Reason = "ceiling"
)

// Prober runs the strategy under calibration once at the given iteration
// count and returns the elapsed wall-clock time.
type Prober func(ctx context.Context, iters int) (time.Duration, error)

// Probe is one entry of the calibration history.
type Probe struct {
	Iters    int
	Duration time.Duration
	// Factor is the multiplier applied after this probe, 0 for the last one.
	Factor int
}

// State is the calibration state threaded through the probe loop.
type State struct {
	Iters        int
	LastDuration time.Duration
	PrevDuration time.Duration
	Probes       int
	Reason       Reason
	History      []Probe
}

// Converged reports whether the state is terminal.
func (s State) Converged() bool { return s.Reason != ReasonNone }

// Config holds the tunables of the probe loop. The zero value is not
// valid; start from DefaultConfig.
type Config struct {
	InitialIters int
	Target       time.Duration
	Ceiling      time.Duration
	MaxProbes    int
}

// DefaultConfig returns the standard calibration parameters.
func DefaultConfig() Config {
	return Config{
		InitialIters: InitialIterations,
		Target:       TargetDuration,
		Ceiling:      CeilingDuration,
		MaxProbes:    MaxProbes,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Engine
// ─────────────────────────────────────────────────────────────────────────────

// Engine runs the Probing → Converged state machine.
type Engine struct {
	cfg      Config
	logger   zerolog.Logger
	observer func(State)
}

// Option configures an Engine during construction.
type Option func(*Engine)

// WithLogger sets the logger used for per-probe debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithObserver registers a callback invoked with the state after each probe.
func WithObserver(fn func(State)) Option {
	return func(e *Engine) { e.observer = fn }
}

// New creates an Engine.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calibrate probes until the state converges and returns the final state.
// It fails with a CalibrationError when MaxProbes probes did not converge.
func (e *Engine) Calibrate(ctx context.Context, probe Prober) (State, error) {
	st := State{Iters: e.cfg.InitialIters}
	for !st.Converged() {
		if st.Probes >= e.cfg.MaxProbes {
			return st, apperrors.CalibrationError{
				Reason:       "probe limit reached",
				Iters:        st.Iters,
				Probes:       st.Probes,
				LastDuration: st.LastDuration,
			}
		}
		if err := ctx.Err(); err != nil {
			return st, err
		}
		elapsed, err := probe(ctx, st.Iters)
		if err != nil {
			return st, apperrors.WrapError(err, "calibration probe %d (iters=%d)", st.Probes+1, st.Iters)
		}
		st = e.Advance(st, elapsed)

		e.logger.Debug().
			Int("probe", st.Probes).
			Int("iters", st.History[len(st.History)-1].Iters).
			Dur("elapsed", elapsed).
			Int("next_iters", st.Iters).
			Str("reason", string(st.Reason)).
			Msg("calibration probe")
		if e.observer != nil {
			e.observer(st)
		}
	}
	return st, nil
}

// Advance applies one probe result to the state. It is the pure transition
// function of the state machine.
func (e *Engine) Advance(st State, elapsed time.Duration) State {
	st.Probes++
	st.LastDuration = elapsed
	entry := Probe{Iters: st.Iters, Duration: elapsed}

	switch {
	case elapsed >= e.cfg.Target:
		st.Reason = ReasonTarget
	case elapsed > e.cfg.Ceiling:
		st.Reason = ReasonCeiling
	default:
		factor := GrowthFactor(e.cfg.Target, elapsed, st.PrevDuration)
		entry.Factor = factor
		st.Iters = scaleIters(st.Iters, factor)
		st.PrevDuration = elapsed
	}

	st.History = append(st.History[:len(st.History):len(st.History)], entry)
	return st
}

// GrowthFactor returns the truncated multiplier target/(last-prev), clamped
// into [MinGrowthFactor, MaxGrowthFactor].
func GrowthFactor(target, last, prev time.Duration) int {
	delta := last - prev
	if delta <= 0 {
		return MaxGrowthFactor
	}
	f := target.Seconds() / delta.Seconds()
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= MaxGrowthFactor {
		return MaxGrowthFactor
	}
	factor := int(f)
	if factor < MinGrowthFactor {
		return MinGrowthFactor
	}
	return factor
}

func scaleIters(iters, factor int) int {
	if iters > MaxIterations/factor {
		return MaxIterations
	}
	return iters * factor
}
