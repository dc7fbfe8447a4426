package stats

import (
	"context"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	apperrors "github.com/agbru/triadbench/internal/errors"
)

// NTimes is the default number of timed trials, warm-up included.
const NTimes = 10

// MinTrials is the smallest trial count that leaves one sample after the
// warm-up is excluded.
const MinTrials = 2

// Trial runs the benchmarked strategy once at iters and returns the elapsed
// wall-clock time.
type Trial func(ctx context.Context, iters int) (time.Duration, error)

// Samples holds per-trial durations in seconds, indexed by trial number.
type Samples []float64

// Summary is the reduction of a sample set, in seconds.
type Summary struct {
	Min  float64
	Max  float64
	Mean float64
	// Count is the number of samples reduced (warm-up excluded).
	Count int
}

// Collect runs ntimes trials strictly one after the other and records each
// elapsed time at its trial index. The context is checked before every
// trial; a cancelled run returns the samples gathered so far.
func Collect(ctx context.Context, trial Trial, iters, ntimes int, observe func(k int, d time.Duration)) (Samples, error) {
	if ntimes < MinTrials {
		return nil, apperrors.ValidationError{
			Field:   "ntimes",
			Message: fmt.Sprintf("need at least %d trials, got %d", MinTrials, ntimes),
		}
	}

	samples := make(Samples, 0, ntimes)
	for k := 0; k < ntimes; k++ {
		if err := ctx.Err(); err != nil {
			return samples, apperrors.WrapError(err, "trial %d", k)
		}
		d, err := trial(ctx, iters)
		if err != nil {
			return samples, apperrors.WrapError(err, "trial %d (iters=%d)", k, iters)
		}
		samples = append(samples, d.Seconds())
		if observe != nil {
			observe(k, d)
		}
	}
	return samples, nil
}

// Reduce computes min, max and mean over samples[1:].
func Reduce(samples Samples) (Summary, error) {
	if len(samples) < MinTrials {
		return Summary{}, apperrors.ValidationError{
			Field:   "samples",
			Message: fmt.Sprintf("need at least %d samples, got %d", MinTrials, len(samples)),
		}
	}
	timed := samples[1:]
	return Summary{
		Min:   floats.Min(timed),
		Max:   floats.Max(timed),
		Mean:  stat.Mean(timed, nil),
		Count: len(timed),
	}, nil
}

// StdDev returns the sample standard deviation of samples[1:], or 0 when
// fewer than two timed samples exist.
func StdDev(samples Samples) float64 {
	if len(samples) < 3 {
		return 0
	}
	return stat.StdDev(samples[1:], nil)
}
