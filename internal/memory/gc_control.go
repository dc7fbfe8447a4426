package memory

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/triadbench/internal/errors"
)

// GCMode controls the garbage collector behavior during the timed phases.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCAutoThreshold is the minimum per-trial allocation, in bytes, for auto
// GC control to activate. Strategies that allocate nothing inside the timed
// region never trigger a collection, so suspending the GC buys nothing.
const GCAutoThreshold uint64 = 1 << 20

// ParseGCMode validates a --gc value.
func ParseGCMode(s string) (GCMode, error) {
	switch m := GCMode(s); m {
	case GCModeAuto, GCModeAggressive, GCModeDisabled:
		return m, nil
	default:
		return "", apperrors.NewConfigError("invalid --gc mode %q (want auto, aggressive or disabled)", s)
	}
}

// GCController suspends Go's garbage collector around the timed phases and
// restores it afterward.
type GCController struct {
	mode              GCMode
	trialAlloc        uint64
	originalGCPercent int
	active            bool
	logger            zerolog.Logger
	startStats        runtime.MemStats
	endStats          runtime.MemStats
}

// GCStats holds GC statistics for the controlled window.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController creates a GC controller for the given mode.
// trialAlloc is the number of bytes one trial allocates inside the timed
// region (the private outputs of the throughput strategy).
func NewGCController(mode GCMode, trialAlloc uint64) *GCController {
	gc := &GCController{mode: mode, trialAlloc: trialAlloc, logger: zerolog.Nop()}
	switch mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = trialAlloc >= GCAutoThreshold
	default:
		gc.active = false
	}
	return gc
}

// SetLogger configures the logger for GC control events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Active reports whether Begin will suspend the collector.
func (gc *GCController) Active() bool { return gc.active }

// Begin disables GC if the controller is active. A soft memory limit stays
// in place as an OOM safety net: the runtime still collects when the heap
// would otherwise outgrow it.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	runtime.GC()
	runtime.ReadMemStats(&gc.startStats)
	gc.originalGCPercent = debug.SetGCPercent(-1)
	if limit := gc.memoryLimit(); limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.startStats.HeapAlloc).
		Uint64("trial_alloc_bytes", gc.trialAlloc).
		Msg("gc disabled")
}

// End restores original GC settings and triggers a collection.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.endStats)
	debug.SetGCPercent(gc.originalGCPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.endStats.HeapAlloc).
		Uint64("total_alloc_bytes", gc.endStats.TotalAlloc-gc.startStats.TotalAlloc).
		Uint32("gc_cycles", gc.endStats.NumGC-gc.startStats.NumGC).
		Msg("gc re-enabled")
}

// Stats returns GC statistics delta between Begin and End.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		HeapAlloc:    gc.endStats.HeapAlloc,
		TotalAlloc:   gc.endStats.TotalAlloc - gc.startStats.TotalAlloc,
		NumGC:        gc.endStats.NumGC - gc.startStats.NumGC,
		PauseTotalNs: gc.endStats.PauseTotalNs - gc.startStats.PauseTotalNs,
	}
}

// memoryLimit leaves room for a few trials' worth of garbage on top of the
// live heap, and never less than three times what the process holds.
func (gc *GCController) memoryLimit() int64 {
	sys := gc.startStats.Sys
	limit := max(sys*3, sys+4*gc.trialAlloc)
	if limit > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(limit)
}
