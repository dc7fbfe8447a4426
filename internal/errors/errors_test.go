// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "N must be greater than zero"},
			expected: "N must be greater than zero",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("unknown test type: %d", 7),
			expected: "unknown test type: 7",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("invalid OMP_NUM_THREADS %q", "x"),
			expected:    `invalid OMP_NUM_THREADS "x"`,
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := error(ValidationError{Field: "size", Message: "must be positive"})
	if got, want := err.Error(), `validation error for "size": must be positive`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	var validationErr ValidationError
	if !errors.As(WrapError(err, "allocating vectors"), &validationErr) {
		t.Fatal("errors.As should find ValidationError through WrapError")
	}
	if validationErr.Field != "size" {
		t.Errorf("expected Field %q, got %q", "size", validationErr.Field)
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := error(TimeoutError{Operation: "trials", Limit: 30 * time.Second})
	if got, want := err.Error(), `operation "trials" timed out after 30s`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCalibrationError(t *testing.T) {
	t.Parallel()
	err := error(CalibrationError{Reason: "probe limit reached", Iters: 5120, Probes: 64, LastDuration: 2 * time.Millisecond})
	want := "calibration failed after 64 probes (iters=5120, last=2ms): probe limit reached"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	var calErr CalibrationError
	if !errors.As(err, &calErr) || calErr.Probes != 64 {
		t.Errorf("errors.As should recover CalibrationError, got %+v", calErr)
	}
}

func TestWorkerError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		cause       error
		expectedMsg string
		checkIs     error
	}{
		{
			name:        "Error names strategy and unit",
			cause:       errors.New("index out of range"),
			expectedMsg: "striad_ws: unit 2 failed: index out of range",
		},
		{
			name:        "errors.Is reaches the cause",
			cause:       context.Canceled,
			expectedMsg: "striad_ws: unit 2 failed: context canceled",
			checkIs:     context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := WorkerError{Strategy: "striad_ws", Unit: 2, Cause: tt.cause}
			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}
			if err.Unwrap() != tt.cause {
				t.Error("Unwrap should return the original cause")
			}
			if tt.checkIs != nil && !errors.Is(err, tt.checkIs) {
				t.Errorf("errors.Is should find %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("unit panicked"),
			format:      "trial %d",
			args:        []any{3},
			expectedMsg: "trial 3: unit panicked",
		},
		{
			name:        "preserves error chain",
			original:    context.DeadlineExceeded,
			format:      "calibration",
			expectedMsg: "calibration: context deadline exceeded",
			checkIs:     context.DeadlineExceeded,
		},
		{
			name:      "returns nil for nil error",
			format:    "some context",
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)
			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}
			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}
			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}
			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "trial 1"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("bad N"), ExitErrorUsage},
		{"wrapped config", WrapError(NewConfigError("bad N"), "parse"), ExitErrorUsage},
		{"timeout type", TimeoutError{Operation: "trials", Limit: time.Second}, ExitErrorTimeout},
		{"deadline", WrapError(context.DeadlineExceeded, "trial 2"), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"worker", WorkerError{Strategy: "striad_tp", Unit: 0, Cause: errors.New("boom")}, ExitErrorBenchmark},
		{"calibration", CalibrationError{Reason: "x"}, ExitErrorBenchmark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":        ExitSuccess,
		"ExitErrorUsage":     ExitErrorUsage,
		"ExitErrorTimeout":   ExitErrorTimeout,
		"ExitErrorBenchmark": ExitErrorBenchmark,
		"ExitErrorCanceled":  ExitErrorCanceled,
	}

	if ExitErrorUsage != 1 {
		t.Errorf("ExitErrorUsage should be 1, got %d", ExitErrorUsage)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
