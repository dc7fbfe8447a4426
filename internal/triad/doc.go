// Package triad implements the STREAM triad kernel A[i] = B[i] + C[i]*D[i]
// and the three execution strategies that wrap it: Sequential,
// Throughput-Replicated and Work-Shared.
//
// Every strategy is synchronous. Run returns only after all execution units
// it spawned have been joined, so wall-clock timing taken around Run covers
// the complete work including unit creation and teardown.
package triad
