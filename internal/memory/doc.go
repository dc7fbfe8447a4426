// Package memory controls how the benchmark's vectors are laid out and how
// the garbage collector behaves around the timed phases.
//
// Arena carves the four triad vectors from one cache-line aligned block.
// GCController suspends collection while trials run so that the private
// output vectors allocated by the throughput strategy do not trigger
// collections inside a measurement window.
package memory
