// Package ui provides theme and color support for the benchmark's terminal
// output. It exposes ANSI escape code helpers for the plain writers (probe
// table, usage text) and lipgloss styles for the verbose summary panel.
//
// Colors never reach the machine-readable result line; only stderr-bound
// diagnostics and verbose summaries are styled.
package ui
