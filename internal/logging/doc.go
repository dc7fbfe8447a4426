// Package logging provides a unified logging interface for the triad benchmark.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components while keeping standard output free for the summary line.
package logging
