// Package stats runs the timed trials of a benchmark and reduces their
// wall-clock samples to minimum, maximum and mean.
//
// Trial 0 is executed like every other trial but excluded from the
// reduction: it absorbs first-touch page faults and cache warm-up left over
// from calibration.
package stats
