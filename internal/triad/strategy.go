package triad

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/triadbench/internal/errors"
)

//go:generate mockgen -source=strategy.go -destination=mocks/mock_strategy.go -package=mocks

// Strategy wraps the triad kernel in a parallelism model.
type Strategy interface {
	// Name returns the short identifier printed in logs (e.g. "striad_seq").
	Name() string
	// Scale returns the factor applied to the FLOP count for the given
	// degree of parallelism: the number of full-size kernel streams one
	// call performs.
	Scale(threads int) int
	// Run executes iters kernel passes with the given degree of
	// parallelism and returns after every unit has been joined.
	Run(ctx context.Context, v *Vectors, iters, threads int) error
}

// Allocator is implemented by strategies that allocate memory inside Run.
// The driver uses it to decide whether to suspend the garbage collector
// during the timed phases.
type Allocator interface {
	TrialAllocBytes(size, threads int) uint64
}

// Type selects a strategy on the command line.
type Type int

// Test types accepted as the first positional argument.
const (
	TypeSequential Type = iota
	TypeThroughput
	TypeWorkShared
)

// Descriptions lists the test types in selector order for usage text.
var Descriptions = []string{
	TypeSequential: "sequential",
	TypeThroughput: "throughput",
	TypeWorkShared: "worksharing",
}

// ForType returns the strategy for a test-type selector.
func ForType(t Type) (Strategy, error) {
	switch t {
	case TypeSequential:
		return Sequential{}, nil
	case TypeThroughput:
		return Throughput{}, nil
	case TypeWorkShared:
		return WorkShared{}, nil
	default:
		return nil, apperrors.NewConfigError("Unknown test type: %d", int(t))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Sequential
// ─────────────────────────────────────────────────────────────────────────────

// Sequential runs the kernel once, in the calling goroutine, over the full
// vectors. The degree of parallelism is ignored.
type Sequential struct{}

// Name implements Strategy.
func (Sequential) Name() string { return "striad_seq" }

// Scale implements Strategy.
func (Sequential) Scale(int) int { return 1 }

// Run implements Strategy.
func (s Sequential) Run(ctx context.Context, v *Vectors, iters, _ int) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.WorkerError{Strategy: s.Name(), Unit: 0, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()
	Kernel(v.A, v.B, v.C, v.D, iters)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Throughput-Replicated
// ─────────────────────────────────────────────────────────────────────────────

// Throughput spawns threads independent units. Each allocates its own
// zeroed output vector and runs the full-size kernel over the shared,
// read-only B, C and D. Total work is threads times one stream, hence the
// scale factor.
type Throughput struct{}

// Name implements Strategy.
func (Throughput) Name() string { return "striad_tp" }

// Scale implements Strategy.
func (Throughput) Scale(threads int) int { return units(threads) }

// Run implements Strategy.
func (s Throughput) Run(ctx context.Context, v *Vectors, iters, threads int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	size := v.Size()
	return fanOut(s.Name(), units(threads), func(int) {
		private := make([]float64, size)
		Kernel(private, v.B, v.C, v.D, iters)
	})
}

// TrialAllocBytes implements Allocator: every call allocates one private
// output vector per unit.
func (Throughput) TrialAllocBytes(size, threads int) uint64 {
	return uint64(units(threads)) * uint64(size) * BytesPerWord
}

// ─────────────────────────────────────────────────────────────────────────────
// Work-Shared
// ─────────────────────────────────────────────────────────────────────────────

// WorkShared partitions the index range into threads contiguous chunks and
// runs one unit per non-empty chunk on the matching sub-slices. Total work
// is exactly one full pass regardless of the number of chunks.
type WorkShared struct{}

// Name implements Strategy.
func (WorkShared) Name() string { return "striad_ws" }

// Scale implements Strategy.
func (WorkShared) Scale(int) int { return 1 }

// Run implements Strategy.
func (s WorkShared) Run(ctx context.Context, v *Vectors, iters, threads int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ranges := nonEmpty(Partition(v.Size(), units(threads)))
	return fanOut(s.Name(), len(ranges), func(u int) {
		r := ranges[u]
		Kernel(v.A[r.Lo:r.Hi], v.B[r.Lo:r.Hi], v.C[r.Lo:r.Hi], v.D[r.Lo:r.Hi], iters)
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Fork/join
// ─────────────────────────────────────────────────────────────────────────────

// fanOut runs work for each unit index on its own OS thread and waits for
// all of them. A panicking unit is recovered into a WorkerError; the first
// such error is returned once every unit has been joined.
func fanOut(name string, n int, work func(unit int)) error {
	var g errgroup.Group
	for u := 0; u < n; u++ {
		g.Go(func() (err error) {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			defer func() {
				if r := recover(); r != nil {
					err = apperrors.WorkerError{Strategy: name, Unit: u, Cause: fmt.Errorf("panic: %v", r)}
				}
			}()
			work(u)
			return nil
		})
	}
	return g.Wait()
}

func units(threads int) int {
	if threads < 1 {
		return 1
	}
	return threads
}

func nonEmpty(ranges []Range) []Range {
	out := ranges[:0:0]
	for _, r := range ranges {
		if r.Len() > 0 {
			out = append(out, r)
		}
	}
	return out
}
