// Package report derives the footprint, FLOP rate and bandwidth of a
// benchmark run and renders the single summary line written to stdout.
package report

import (
	"fmt"
	"io"

	"github.com/agbru/triadbench/internal/triad"
)

// FootprintKB returns the memory footprint of the four vectors in
// kilobytes (1000 bytes).
func FootprintKB(size int) float64 {
	return float64(triad.VectorCount*triad.BytesPerWord) * float64(size) / 1000
}

// MFLOPS returns the floating-point rate in millions of operations per
// second achieved by iters kernel passes completed in mintime seconds.
// scale is the number of redundant full-size streams that ran concurrently.
func MFLOPS(size, iters, scale int, mintime float64) float64 {
	return triad.FlopsPerElement * float64(size) * float64(iters) * float64(scale) / mintime / 1e6
}

// BandwidthMBps returns the memory traffic in megabytes per second, counting
// one read of B, C and D and one write of A per element and pass.
func BandwidthMBps(size, iters, scale int, mintime float64) float64 {
	return float64(triad.VectorCount*triad.BytesPerWord) * float64(size) * float64(iters) * float64(scale) / mintime / 1e6
}

// Result is the outcome of one benchmark run.
type Result struct {
	Strategy string
	Size     int
	Threads  int
	Iters    int
	Scale    int
	// MinTime, MaxTime and AvgTime are in seconds.
	MinTime float64
	MaxTime float64
	AvgTime float64
	// StdDev is the sample standard deviation of the timed trials, in seconds.
	StdDev float64
}

// FootprintKB returns the footprint of the run's vectors.
func (r Result) FootprintKB() float64 { return FootprintKB(r.Size) }

// MFLOPS returns the FLOP rate derived from the minimum trial time.
func (r Result) MFLOPS() float64 { return MFLOPS(r.Size, r.Iters, r.Scale, r.MinTime) }

// BandwidthMBps returns the bandwidth derived from the minimum trial time.
func (r Result) BandwidthMBps() float64 {
	return BandwidthMBps(r.Size, r.Iters, r.Scale, r.MinTime)
}

// Line renders the summary line without a trailing newline.
func (r Result) Line() string {
	return fmt.Sprintf("%.2f %.2f", r.FootprintKB(), r.MFLOPS())
}

// Write emits the summary line followed by a newline.
func Write(out io.Writer, r Result) error {
	_, err := fmt.Fprintln(out, r.Line())
	return err
}
