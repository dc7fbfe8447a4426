// Package calibration discovers the kernel iteration count used for the
// timed trials. It probes a strategy with a growing iteration count until a
// single probe is long enough to be measured reliably.
package calibration
