package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for region mask generation
type Registry struct {
	// Generation Metrics
	GenerationsTotal *prometheus.CounterVec
	PhaseDuration    *prometheus.HistogramVec
	CellsClassified  *prometheus.GaugeVec

	// Boundary Tracing Metrics
	TraceSteps         prometheus.Histogram
	TraceFailuresTotal prometheus.Counter
	LoopsTracedTotal   prometheus.Counter

	// Mesh Metrics
	MeshCells    prometheus.Gauge
	MeshEdges    prometheus.Gauge
	MeshVertices prometheus.Gauge

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initGenerationMetrics()
	r.initTraceMetrics()
	r.initMeshMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
