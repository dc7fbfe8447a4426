package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "triadbench"

// Metrics holds the Prometheus collectors of one benchmark process. Each
// instance owns its registry so that tests can create several.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	trialSeconds     *prometheus.HistogramVec
	probeSeconds     *prometheus.HistogramVec
	calibratedIters  *prometheus.GaugeVec
	kernelPasses     *prometheus.CounterVec
	mflops           *prometheus.GaugeVec
	heapAllocBytes   prometheus.Gauge
	gcCycles         prometheus.Gauge
	benchmarkErrors  *prometheus.CounterVec
	activeBenchmarks prometheus.Gauge
}

// NewMetrics creates a registry with the benchmark collectors plus the
// standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		trialSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trial_duration_seconds",
			Help:      "Wall-clock duration of timed trials.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"strategy"}),
		probeSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calibration_probe_duration_seconds",
			Help:      "Wall-clock duration of calibration probes.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"strategy"}),
		calibratedIters: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "calibrated_iterations",
			Help:      "Iteration count selected by calibration.",
		}, []string{"strategy"}),
		kernelPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kernel_passes_total",
			Help:      "Full-vector triad passes executed, summed over execution units.",
		}, []string{"strategy", "phase"}),
		mflops: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mflops",
			Help:      "Reported floating-point rate of the last run.",
		}, []string{"strategy"}),
		heapAllocBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Heap bytes in use after the last sampled phase.",
		}),
		gcCycles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gc_cycles",
			Help:      "Completed GC cycles at the last sampled phase.",
		}),
		benchmarkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Benchmark runs that failed, by phase.",
		}, []string{"phase"}),
		activeBenchmarks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_benchmarks",
			Help:      "Benchmark runs currently in progress.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.trialSeconds,
		m.probeSeconds,
		m.calibratedIters,
		m.kernelPasses,
		m.mflops,
		m.heapAllocBytes,
		m.gcCycles,
		m.benchmarkErrors,
		m.activeBenchmarks,
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler { return m.handler }

// WritePrometheus serves the metrics in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// ObserveProbe records one calibration probe of iters passes per unit.
func (m *Metrics) ObserveProbe(strategy string, units, iters int, d time.Duration) {
	m.probeSeconds.WithLabelValues(strategy).Observe(d.Seconds())
	m.kernelPasses.WithLabelValues(strategy, "calibration").Add(float64(units) * float64(iters))
}

// ObserveTrial records one timed trial of iters passes per unit.
func (m *Metrics) ObserveTrial(strategy string, units, iters int, d time.Duration) {
	m.trialSeconds.WithLabelValues(strategy).Observe(d.Seconds())
	m.kernelPasses.WithLabelValues(strategy, "trial").Add(float64(units) * float64(iters))
}

// SetCalibratedIters records the outcome of calibration.
func (m *Metrics) SetCalibratedIters(strategy string, iters int) {
	m.calibratedIters.WithLabelValues(strategy).Set(float64(iters))
}

// SetMFLOPS records the reported rate of a finished run.
func (m *Metrics) SetMFLOPS(strategy string, v float64) {
	m.mflops.WithLabelValues(strategy).Set(v)
}

// ObserveMemory publishes a heap snapshot.
func (m *Metrics) ObserveMemory(s MemorySnapshot) {
	m.heapAllocBytes.Set(float64(s.HeapAlloc))
	m.gcCycles.Set(float64(s.NumGC))
}

// IncrementErrors counts a failed run in the given phase.
func (m *Metrics) IncrementErrors(phase string) {
	m.benchmarkErrors.WithLabelValues(phase).Inc()
}

// IncrementActive marks the start of a run.
func (m *Metrics) IncrementActive() { m.activeBenchmarks.Inc() }

// DecrementActive marks the end of a run.
func (m *Metrics) DecrementActive() { m.activeBenchmarks.Dec() }
