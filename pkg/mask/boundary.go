package mask

import (
	"errors"
	"fmt"

	"github.com/dd0wney/regionmask/pkg/logging"
	"github.com/dd0wney/regionmask/pkg/mesh"
	"github.com/dd0wney/regionmask/pkg/region"
)

// SegmentStats describes one traced source/target pair of a boundary loop.
type SegmentStats struct {
	Source int
	Target int
	Steps  int
	Failed bool
}

// TraceStats summarizes the tracing of one boundary loop.
type TraceStats struct {
	Boundary      int
	BoundaryCells []int // nearest cell per waypoint, duplicates kept
	Segments      []SegmentStats
	Skipped       int // pairs whose source and target coincide
	Marked        int // cells newly set to Inside
}

// Steps returns the total number of walk steps over all segments.
func (s TraceStats) Steps() int {
	total := 0
	for _, seg := range s.Segments {
		total += seg.Steps
	}
	return total
}

// Tracer marks the cells along boundary loops as Inside.
type Tracer struct {
	mesh    *mesh.Mesh
	locator mesh.Locator
	finder  PathFinder
	logger  logging.Logger
}

// NewTracer creates a tracer. A nil finder selects GreedyPathFinder and a nil
// logger discards output.
func NewTracer(m *mesh.Mesh, locator mesh.Locator, finder PathFinder, logger logging.Logger) *Tracer {
	if finder == nil {
		finder = GreedyPathFinder{}
	}
	return &Tracer{
		mesh:    m,
		locator: locator,
		finder:  finder,
		logger:  logging.OrNop(logger),
	}
}

// TraceBoundary marks the nearest cell of every waypoint in loop, then the
// cells connecting each consecutive pair, wrapping from the last waypoint
// back to the first. index identifies the loop in stats and errors.
//
// On a trace failure the cells marked so far stay marked and the returned
// stats cover the segments attempted.
func (t *Tracer) TraceBoundary(index int, loop region.Loop, cells CellMask) (TraceStats, error) {
	stats := TraceStats{Boundary: index}
	if err := checkMask("trace", t.mesh, cells); err != nil {
		return stats, err
	}
	if t.locator == nil {
		return stats, NewError("trace").Boundary(index).Cause(invalidInput(fmt.Errorf("nil locator"))).Err()
	}
	if len(loop) == 0 {
		return stats, NewError("trace").Boundary(index).Context("empty boundary loop").Cause(ErrInvalidInput).Err()
	}

	stats.BoundaryCells = make([]int, len(loop))
	for i, p := range loop {
		c := t.locator.NearestCell(p)
		if err := checkCell("locate", t.mesh, c); err != nil {
			return stats, err
		}
		stats.BoundaryCells[i] = c
	}

	for _, c := range stats.BoundaryCells {
		stats.Marked += markInside(cells, c)
	}

	n := len(stats.BoundaryCells)
	for i, src := range stats.BoundaryCells {
		dst := stats.BoundaryCells[(i+1)%n]
		if src == dst {
			stats.Skipped++
			continue
		}

		path, err := t.finder.FindPath(t.mesh, src, dst)
		for _, c := range path {
			stats.Marked += markInside(cells, c)
		}
		seg := SegmentStats{Source: src, Target: dst, Steps: max(len(path)-1, 0), Failed: err != nil}
		stats.Segments = append(stats.Segments, seg)
		if err != nil {
			var perr *Error
			if errors.As(err, &perr) {
				perr.Boundary = index
			}
			t.logger.Warn("boundary segment trace failed",
				logging.Boundary(index),
				logging.Int("source", src),
				logging.Int("target", dst),
				logging.Error(err))
			return stats, err
		}
	}

	t.logger.Debug("boundary traced",
		logging.Boundary(index),
		logging.Int("waypoints", n),
		logging.Int("segments", len(stats.Segments)),
		logging.Int("steps", stats.Steps()),
		logging.Count(stats.Marked))
	return stats, nil
}

// TraceBoundary traces loop with the greedy walk and no logging.
func TraceBoundary(m *mesh.Mesh, locator mesh.Locator, loop region.Loop, cells CellMask) error {
	_, err := NewTracer(m, locator, nil, nil).TraceBoundary(0, loop, cells)
	return err
}

func markInside(cells CellMask, c int) int {
	if cells[c] == Inside {
		return 0
	}
	cells[c] = Inside
	return 1
}
