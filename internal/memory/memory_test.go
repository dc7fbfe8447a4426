package memory

import (
	"errors"
	"math"
	"runtime/debug"
	"testing"

	apperrors "github.com/agbru/triadbench/internal/errors"
)

func TestArena_AlignedVectors(t *testing.T) {
	t.Parallel()
	const size = 1001
	a, err := NewArena(4, size)
	if err != nil {
		t.Fatalf("NewArena failed: %v", err)
	}

	vecs := make([][]float64, 4)
	for i := range vecs {
		vecs[i] = a.Alloc(size)
		if len(vecs[i]) != size || cap(vecs[i]) != size {
			t.Fatalf("vector %d: len=%d cap=%d, want %d", i, len(vecs[i]), cap(vecs[i]), size)
		}
		if !Aligned(vecs[i]) {
			t.Errorf("vector %d is not cache-line aligned", i)
		}
	}

	vecs[0][size-1] = 42
	if vecs[1][0] != 0 {
		t.Error("vectors must not overlap")
	}
	if a.UsedWords() > a.CapacityWords() {
		t.Errorf("used %d words of %d", a.UsedWords(), a.CapacityWords())
	}
}

func TestArena_FallsBackToHeap(t *testing.T) {
	t.Parallel()
	a, err := NewArena(1, 16)
	if err != nil {
		t.Fatalf("NewArena failed: %v", err)
	}
	_ = a.Alloc(16)
	extra := a.Alloc(16)
	if len(extra) != 16 {
		t.Fatalf("fallback allocation len = %d, want 16", len(extra))
	}

	empty, err := NewArena(0, 0)
	if err != nil {
		t.Fatalf("NewArena(0, 0) failed: %v", err)
	}
	if s := empty.Alloc(3); len(s) != 3 {
		t.Errorf("empty arena should heap-allocate, got len %d", len(s))
	}
	if s := empty.Alloc(0); s != nil {
		t.Errorf("Alloc(0) = %v, want nil", s)
	}
}

func TestNewArena_RejectsOversizedVectors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		count int
		size  int
	}{
		{"beyond the arena cap", 4, 1_000_000_000_000_000},
		{"one past the limit", 4, MaxVectorLen(4) + 1},
		{"near MaxInt", 4, math.MaxInt - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := NewArena(tt.count, tt.size)
			if a != nil {
				t.Error("no arena should be returned for an oversized request")
			}
			var validationErr apperrors.ValidationError
			if !errors.As(err, &validationErr) || validationErr.Field != "size" {
				t.Fatalf("expected a size ValidationError, got %v", err)
			}
		})
	}
}

func TestMaxVectorLen(t *testing.T) {
	t.Parallel()
	if MaxVectorLen(0) != 0 {
		t.Errorf("MaxVectorLen(0) = %d, want 0", MaxVectorLen(0))
	}
	for _, count := range []int{1, 4} {
		n := MaxVectorLen(count)
		if n <= 0 || n%wordsPerLine != 0 {
			t.Fatalf("MaxVectorLen(%d) = %d, want a positive multiple of %d", count, n, wordsPerLine)
		}
		bytes := (uint64(count)*uint64(n) + wordsPerLine) * 8
		if bytes > MaxArenaBytes {
			t.Errorf("count %d: %d bytes exceeds MaxArenaBytes", count, bytes)
		}
	}
}

func TestPadded(t *testing.T) {
	t.Parallel()
	tests := []struct{ n, want int }{{1, 8}, {8, 8}, {9, 16}, {1000, 1000}, {1001, 1008}}
	for _, tt := range tests {
		if got := padded(tt.n); got != tt.want {
			t.Errorf("padded(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestParseGCMode(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"auto", "aggressive", "disabled"} {
		if m, err := ParseGCMode(s); err != nil || string(m) != s {
			t.Errorf("ParseGCMode(%q) = %q, %v", s, m, err)
		}
	}
	_, err := ParseGCMode("off")
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("ParseGCMode(off) should return ConfigError, got %v", err)
	}
}

func TestNewGCController_Activation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		mode  GCMode
		alloc uint64
		want  bool
	}{
		{GCModeAuto, 0, false},
		{GCModeAuto, GCAutoThreshold, true},
		{GCModeAggressive, 0, true},
		{GCModeDisabled, 1 << 30, false},
	}
	for _, tt := range tests {
		if got := NewGCController(tt.mode, tt.alloc).Active(); got != tt.want {
			t.Errorf("NewGCController(%s, %d).Active() = %v, want %v", tt.mode, tt.alloc, got, tt.want)
		}
	}
}

// Not parallel: mutates the process-wide GC percent.
func TestGCController_BeginEndRestores(t *testing.T) {
	orig := debug.SetGCPercent(100)
	defer debug.SetGCPercent(orig)

	gc := NewGCController(GCModeAggressive, 8<<20)
	gc.Begin()
	if pct := debug.SetGCPercent(-1); pct != -1 {
		t.Errorf("GC percent during window = %d, want -1", pct)
	}
	gc.End()
	if pct := debug.SetGCPercent(100); pct != 100 {
		t.Errorf("GC percent after End = %d, want 100", pct)
	}
	if gc.Stats().NumGC != 0 {
		t.Logf("collections inside window: %d", gc.Stats().NumGC)
	}
}

func TestGCController_InactiveIsNoop(t *testing.T) {
	t.Parallel()
	gc := NewGCController(GCModeDisabled, 0)
	gc.Begin()
	gc.End()
	if gc.Stats() != (GCStats{}) {
		t.Errorf("inactive controller should report zero stats, got %+v", gc.Stats())
	}
}
