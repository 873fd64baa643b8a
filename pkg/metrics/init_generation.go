package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGenerationMetrics() {
	r.GenerationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "regionmask_generations_total",
			Help: "Total number of mask generations by outcome",
		},
		[]string{"status"},
	)

	r.PhaseDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "regionmask_phase_duration_seconds",
			Help:    "Duration of each mask generation phase in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"phase"},
	)

	r.CellsClassified = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "regionmask_cells_classified",
			Help: "Cells per classification in the most recent mask",
		},
		[]string{"class"},
	)
}

func (r *Registry) initTraceMetrics() {
	r.TraceSteps = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "regionmask_trace_steps",
			Help:    "Cells visited while tracing one boundary segment",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	r.TraceFailuresTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "regionmask_trace_failures_total",
			Help: "Boundary segments that could not be traced",
		},
	)

	r.LoopsTracedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "regionmask_loops_traced_total",
			Help: "Boundary loops traced into a cell mask",
		},
	)
}

func (r *Registry) initMeshMetrics() {
	r.MeshCells = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "regionmask_mesh_cells",
			Help: "Number of cells in the current global mesh",
		},
	)

	r.MeshEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "regionmask_mesh_edges",
			Help: "Number of edges in the current global mesh",
		},
	)

	r.MeshVertices = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "regionmask_mesh_vertices",
			Help: "Number of vertices in the current global mesh",
		},
	)
}
