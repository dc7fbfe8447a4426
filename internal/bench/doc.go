// Package bench drives one benchmark run end to end: vector setup,
// calibration of the iteration count, the timed trials, and the reduction
// into a report.Result.
//
// The Runner owns the ambient concerns around those phases (GC control,
// Prometheus metrics, tracing spans and logging) so that the calibration,
// stats and report packages stay pure.
package bench
