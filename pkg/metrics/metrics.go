package metrics

import (
	"runtime"
	"strconv"
	"time"
)

// Classification label for a mask value: "outside", "inside" or "layer_<n>"
func ClassLabel(value int) string {
	switch {
	case value <= 0:
		return "outside"
	case value == 1:
		return "inside"
	default:
		return "layer_" + strconv.Itoa(value)
	}
}

// RecordGeneration records the outcome of one mask generation
func (r *Registry) RecordGeneration(status string, duration time.Duration) {
	r.GenerationsTotal.WithLabelValues(status).Inc()
	r.PhaseDuration.WithLabelValues("total").Observe(duration.Seconds())
}

// RecordPhase records the duration of one generation phase
func (r *Registry) RecordPhase(phase string, duration time.Duration) {
	r.PhaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordTrace records one traced boundary segment
func (r *Registry) RecordTrace(steps int, failed bool) {
	r.TraceSteps.Observe(float64(steps))
	if failed {
		r.TraceFailuresTotal.Inc()
	}
}

// RecordLoop counts one traced boundary loop
func (r *Registry) RecordLoop() {
	r.LoopsTracedTotal.Inc()
}

// SetCellCounts replaces the per-class cell gauges with counts
func (r *Registry) SetCellCounts(counts map[int]int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CellsClassified.Reset()
	for class, n := range counts {
		r.CellsClassified.WithLabelValues(ClassLabel(class)).Set(float64(n))
	}
}

// SetMeshSize records the size of the global mesh
func (r *Registry) SetMeshSize(cells, edges, vertices int) {
	r.MeshCells.Set(float64(cells))
	r.MeshEdges.Set(float64(edges))
	r.MeshVertices.Set(float64(vertices))
}

// UpdateSystemMetrics refreshes uptime and memory gauges
func (r *Registry) UpdateSystemMetrics(startTime time.Time) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.UptimeSeconds.Set(time.Since(startTime).Seconds())
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}
