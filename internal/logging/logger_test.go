package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	t.Parallel()
	testErr := errors.New("worker 3 failed")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("strategy", "striad_ws"), "strategy", "striad_ws"},
		{"Int", Int("threads", 8), "threads", 8},
		{"Uint64", Uint64("bytes", 160000000), "bytes", uint64(160000000)},
		{"Float64", Float64("mflops", 1234.5), "mflops", 1234.5},
		{"Duration", Duration("probe", 30*time.Millisecond), "probe", 30 * time.Millisecond},
		{"Err", Err(testErr), "error", testErr},
		{"Err nil", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

// TestNewLogger checks the component tag and message reach the writer.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "calibration")

	logger.Info("probe complete", Int("iters", 30))
	output := buf.String()

	for _, want := range []string{"calibration", "probe complete", "30"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestNew_Formats verifies format selection and level filtering.
func TestNew_Formats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "json", zerolog.InfoLevel)
		logger.Info("trials done", Float64("min_seconds", 0.28))
		if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
			t.Errorf("json format should emit JSON, got: %s", buf.String())
		}
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "console", zerolog.InfoLevel)
		logger.Info("trials done")
		if !strings.Contains(buf.String(), "trials done") {
			t.Errorf("console output missing message, got: %s", buf.String())
		}
	})

	t.Run("level filters debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "json", zerolog.WarnLevel)
		logger.Debug("probe")
		logger.Info("calibrated")
		if buf.Len() != 0 {
			t.Errorf("debug and info should be filtered at warn level, got: %s", buf.String())
		}
		logger.Warn("footprint exceeds available memory")
		if !strings.Contains(buf.String(), "footprint exceeds available memory") {
			t.Errorf("warn should pass the filter, got: %s", buf.String())
		}
	})
}

// TestZerologAdapter_Error tests the Error method.
func TestZerologAdapter_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fields   []Field
		contains []string
	}{
		{
			name:     "with error",
			err:      errors.New("calibration did not converge"),
			contains: []string{"benchmark failed", "calibration did not converge", "error"},
		},
		{
			name:     "with nil error",
			contains: []string{"benchmark failed", "error"},
		},
		{
			name:     "with error and fields",
			err:      errors.New("unit panicked"),
			fields:   []Field{String("strategy", "striad_tp"), Int("unit", 3)},
			contains: []string{"unit panicked", "striad_tp", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Error("benchmark failed", tt.err, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Debug tests the Debug method.
func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("probe", Int("iters", 5), Duration("elapsed", time.Millisecond))

	output := buf.String()
	if !strings.Contains(output, "probe") || !strings.Contains(output, "debug") {
		t.Errorf("Debug output should contain message and level, got: %s", output)
	}
}

// TestZerologAdapter_PrintfPrintln tests the printf-style helpers.
func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("calibrated to %d iterations", 30)
	logger.Println("trial", 4)

	output := buf.String()
	if !strings.Contains(output, "calibrated to 30 iterations") {
		t.Errorf("Printf should format message, got: %s", output)
	}
	if !strings.Contains(output, "trial 4") {
		t.Errorf("Println should join arguments, got: %s", output)
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "striad_seq"}, "striad_seq"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(1 << 40)}, "1099511627776"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "kb", Value: 32.0}, "32"},
		{"bool field", Field{Key: "pinned", Value: true}, "true"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"interface field", Field{Key: "range", Value: struct{ Lo int }{Lo: 7}}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Info("test", tt.field)

			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

// TestStdLoggerAdapter tests the stdlib-backed adapter at every level.
func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{
			name:     "info",
			log:      func(l Logger) { l.Info("calibrated", Int("iters", 30)) },
			contains: []string{"[INFO]", "calibrated", "iters=30"},
		},
		{
			name:     "debug",
			log:      func(l Logger) { l.Debug("probe", Int("n", 2)) },
			contains: []string{"[DEBUG]", "probe", "n=2"},
		},
		{
			name:     "warn",
			log:      func(l Logger) { l.Warn("gc disabled") },
			contains: []string{"[WARN]", "gc disabled"},
		},
		{
			name:     "error",
			log:      func(l Logger) { l.Error("join failed", errors.New("boom"), String("strategy", "striad_ws")) },
			contains: []string{"[ERROR]", "join failed", "boom", "striad_ws"},
		},
		{
			name:     "printf",
			log:      func(l Logger) { l.Printf("value is %d", 123) },
			contains: []string{"value is 123"},
		},
		{
			name:     "println",
			log:      func(l Logger) { l.Println("a", "b", "c") },
			contains: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))
			tt.log(adapter)

			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}

// TestParseLevel tests level parsing defaults.
func TestParseLevel(t *testing.T) {
	t.Parallel()
	if lvl, err := ParseLevel(""); err != nil || lvl != zerolog.WarnLevel {
		t.Errorf("ParseLevel(\"\") = %v, %v; want warn, nil", lvl, err)
	}
	if lvl, err := ParseLevel("DEBUG"); err != nil || lvl != zerolog.DebugLevel {
		t.Errorf("ParseLevel(DEBUG) = %v, %v; want debug, nil", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
}

// TestLoggerInterface verifies both adapters implement the Logger interface.
func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
	var _ Logger = Nop()
}
