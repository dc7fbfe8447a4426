package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// Usage errors exit with 1 so that scripts written against the original
// benchmark keep working.
const (
	ExitSuccess        = 0   // Indicates successful execution.
	ExitErrorUsage     = 1   // Indicates malformed arguments or configuration.
	ExitErrorTimeout   = 2   // Indicates the run exceeded --timeout.
	ExitErrorBenchmark = 3   // Indicates a calibration or worker failure.
	ExitErrorCanceled  = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags,
// positional arguments or environment values. The program prints usage text
// and exits with ExitErrorUsage.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure inside the core
// packages. It identifies which field failed validation and provides a
// human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// TimeoutError represents a run that exceeded its deadline.
type TimeoutError struct {
	// Operation is the name of the phase that timed out.
	Operation string
	// Limit is the configured deadline.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// CalibrationError reports a calibration loop that could not settle on an
// iteration count. It carries the last observed state for diagnostics.
type CalibrationError struct {
	// Reason describes why calibration stopped.
	Reason string
	// Iters is the iteration count of the last probe.
	Iters int
	// Probes is the number of probes executed.
	Probes int
	// LastDuration is the elapsed time of the last probe.
	LastDuration time.Duration
}

// Error returns a formatted message describing the calibration failure.
func (e CalibrationError) Error() string {
	return fmt.Sprintf("calibration failed after %d probes (iters=%d, last=%s): %s",
		e.Probes, e.Iters, e.LastDuration, e.Reason)
}

// WorkerError reports the failure of a single execution unit spawned by a
// parallel strategy. Strategies join every unit before returning it.
type WorkerError struct {
	// Strategy is the name of the strategy that spawned the unit.
	Strategy string
	// Unit is the zero-based index of the failed unit.
	Unit int
	// Cause is the underlying failure (a recovered panic or an error).
	Cause error
}

// Error returns a formatted message identifying the failed unit.
func (e WorkerError) Error() string {
	return fmt.Sprintf("%s: unit %d failed: %v", e.Strategy, e.Unit, e.Cause)
}

// Unwrap returns the underlying cause.
func (e WorkerError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error returned by the benchmark to a process exit code.
func ExitCodeFor(err error) int {
	var configErr ConfigError
	var timeoutErr TimeoutError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &configErr):
		return ExitErrorUsage
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorBenchmark
	}
}
