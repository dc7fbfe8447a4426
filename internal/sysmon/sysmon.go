// Package sysmon provides system-wide CPU and memory usage sampling and a
// description of the host the benchmark runs on.
package sysmon

import (
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	xcpu "golang.org/x/sys/cpu"
	"golang.org/x/time/rate"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// ─────────────────────────────────────────────────────────────────────────────
// Host description
// ─────────────────────────────────────────────────────────────────────────────

// Host describes the machine for the verbose summary.
type Host struct {
	Model         string
	LogicalCores  int
	PhysicalCores int
	TotalMemory   uint64
	AvailMemory   uint64
	Features      []string
	GOARCH        string
	GOMAXPROCS    int
}

// DescribeHost gathers CPU and memory information. Fields that cannot be
// read are left zero.
func DescribeHost() Host {
	h := Host{
		GOARCH:     runtime.GOARCH,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Features:   Features(),
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.Model = strings.TrimSpace(infos[0].ModelName)
	}
	if n, err := cpu.Counts(true); err == nil {
		h.LogicalCores = n
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCores = n
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		h.TotalMemory = vm.Total
		h.AvailMemory = vm.Available
	}
	return h
}

// Features lists the SIMD extensions relevant to a streaming kernel.
func Features() []string {
	var f []string
	add := func(ok bool, name string) {
		if ok {
			f = append(f, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(xcpu.X86.HasSSE2, "sse2")
		add(xcpu.X86.HasAVX, "avx")
		add(xcpu.X86.HasAVX2, "avx2")
		add(xcpu.X86.HasFMA, "fma")
		add(xcpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(xcpu.ARM64.HasASIMD, "neon")
		add(xcpu.ARM64.HasSVE, "sve")
		add(xcpu.ARM64.HasSVE2, "sve2")
	}
	return f
}

// FootprintFits reports whether required bytes fit in the memory currently
// available. It returns true when availability cannot be determined.
func FootprintFits(required uint64) (fits bool, available uint64) {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil || vm.Available == 0 {
		return true, 0
	}
	return required <= vm.Available, vm.Available
}

// ─────────────────────────────────────────────────────────────────────────────
// Peak sampler
// ─────────────────────────────────────────────────────────────────────────────

// PeakSampler records the highest CPU and memory usage seen across calls to
// Observe. Samples are taken at most once per interval so that callers may
// invoke Observe after every trial.
type PeakSampler struct {
	mu        sync.Mutex
	sometimes rate.Sometimes
	sample    func() Stats
	peak      Stats
	count     int
}

// NewPeakSampler creates a sampler throttled to one sample per interval.
// A non-positive interval samples on every call.
func NewPeakSampler(interval time.Duration) *PeakSampler {
	p := &PeakSampler{sample: Sample}
	if interval > 0 {
		p.sometimes = rate.Sometimes{First: 1, Interval: interval}
	} else {
		p.sometimes = rate.Sometimes{Every: 1}
	}
	return p
}

// Observe takes a sample if the throttle allows it.
func (p *PeakSampler) Observe() {
	p.sometimes.Do(func() {
		s := p.sample()
		p.mu.Lock()
		defer p.mu.Unlock()
		p.count++
		p.peak.CPUPercent = max(p.peak.CPUPercent, s.CPUPercent)
		p.peak.MemPercent = max(p.peak.MemPercent, s.MemPercent)
	})
}

// Peak returns the highest values observed and the number of samples taken.
func (p *PeakSampler) Peak() (Stats, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.peak, p.count
}
