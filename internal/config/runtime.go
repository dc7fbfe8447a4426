package config

import "runtime"

// EnsureParallelism raises GOMAXPROCS to at least threads so that every
// execution unit can run on its own OS thread at the same time. It returns
// a function restoring the previous value.
func EnsureParallelism(threads int) (restore func()) {
	prev := runtime.GOMAXPROCS(0)
	if threads <= prev {
		return func() {}
	}
	runtime.GOMAXPROCS(threads)
	return func() { runtime.GOMAXPROCS(prev) }
}

// Oversubscribed reports whether threads exceeds the logical CPUs, in which
// case units time-share cores and the figures understate peak bandwidth.
func Oversubscribed(threads int) bool {
	return threads > runtime.NumCPU()
}
