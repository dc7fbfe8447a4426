// Package metrics exposes benchmark instrumentation through a Prometheus
// registry: trial durations, calibrated iteration counts, kernel passes and
// heap usage sampled around the timed phases.
package metrics
