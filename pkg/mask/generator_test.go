package mask

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/regionmask/pkg/logging"
	"github.com/dd0wney/regionmask/pkg/mesh"
	"github.com/dd0wney/regionmask/pkg/metrics"
	"github.com/dd0wney/regionmask/pkg/region"
	"github.com/dd0wney/regionmask/pkg/sphere"
)

func TestGenerate_Ring(t *testing.T) {
	m := ringMesh(t)
	reg := metrics.NewRegistry()

	for _, strategy := range []string{StrategySearch, StrategyFullSweep} {
		t.Run(strategy, func(t *testing.T) {
			cfg := Config{NumLayers: 1, Strategy: strategy, PathFinder: PathFinderGreedy}
			g, err := NewGenerator(m, mesh.NewLinearLocator(m), cfg, WithMetrics(reg))
			require.NoError(t, err)

			res, err := g.Generate(ringRegion())
			require.NoError(t, err)

			assert.Equal(t, "ring", res.Name)
			assert.Equal(t, 1, res.InCell)
			assert.Equal(t, CellMask{1, 1, 1, 1, 2, 2}, res.Cell)
			assert.Equal(t, []int{1, 1, 1, 1, 2, 1}, res.Edge)
			assert.Equal(t, []int{1, 1, 1, 1, 2, 1}, res.Vertex)
			assert.Equal(t, map[int]int{1: 4, 2: 2}, res.LayerCounts)

			_, err = uuid.Parse(res.RunID)
			assert.NoError(t, err, "RunID should be a UUID")

			require.Len(t, res.Trace, 1)
			assert.Equal(t, []int{0, 3}, res.Trace[0].BoundaryCells)
			for _, phase := range []string{PhaseTrace, PhaseFill, PhaseRelax, PhaseAggregate} {
				assert.Contains(t, res.Timings, phase)
			}
		})
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.GenerationsTotal.WithLabelValues("success")))
	assert.Equal(t, 4.0, testutil.ToFloat64(reg.CellsClassified.WithLabelValues("inside")))
	assert.Equal(t, 6.0, testutil.ToFloat64(reg.MeshCells))
	assert.Equal(t, 2.0, testutil.ToFloat64(reg.LoopsTracedTotal))
}

func TestGenerate_Grid(t *testing.T) {
	m := gridMesh(t, 18, 36)
	loc := mesh.NewKDLocator(m)
	r := circleRegion(10, 100, 25, 24)

	var masks []CellMask
	for _, strategy := range []string{StrategySearch, StrategyFullSweep} {
		for _, finder := range []string{PathFinderGreedy, PathFinderShortest} {
			t.Run(strategy+"/"+finder, func(t *testing.T) {
				cfg := Config{NumLayers: 3, Strategy: strategy, PathFinder: finder}
				g, err := NewGenerator(m, loc, cfg)
				require.NoError(t, err)

				res, err := g.Generate(r)
				require.NoError(t, err)

				for _, p := range r.Boundaries[0] {
					assert.Equal(t, Inside, res.Cell[loc.NearestCell(p)], "waypoint cell must be inside")
				}
				assert.Equal(t, Inside, res.Cell[res.InCell])

				c, ok := checkLayers(m, res.Cell)
				assert.True(t, ok, "cell %d has no more-interior neighbor", c)

				assert.Less(t, res.LayerCounts[Inside], m.NumCells()/4, "fill leaked out of the region")
				for k := 1; k <= cfg.NumLayers; k++ {
					assert.Positive(t, res.LayerCounts[LayerValue(k)], "layer %d is empty", k)
				}
				assert.Len(t, res.Edge, m.NumEdges())
				assert.Len(t, res.Vertex, m.NumVertices())

				if finder == PathFinderGreedy {
					masks = append(masks, res.Cell)
				}
			})
		}
	}

	require.Len(t, masks, 2)
	assert.Equal(t, masks[0], masks[1], "search and full-sweep must agree")
}

func TestGenerate_MultipleBoundaries(t *testing.T) {
	m := gridMesh(t, 18, 36)
	loc := mesh.NewLinearLocator(m)

	first := region.LoopFromRing(region.Circle(25, 65, 20, 16))
	second := region.LoopFromRing(region.Circle(-25, 245, 20, 16))
	r := region.New("two", 25, 65, first, second)

	g, err := NewGenerator(m, loc, Config{NumLayers: 0, Strategy: StrategySearch, PathFinder: PathFinderGreedy})
	require.NoError(t, err)

	res, err := g.Generate(r)
	require.NoError(t, err)
	require.Len(t, res.Trace, 2)

	for _, loop := range []region.Loop{first, second} {
		for _, p := range loop {
			assert.Equal(t, Inside, res.Cell[loc.NearestCell(p)])
		}
	}
	// Only the first loop holds the interior point, so the second stays hollow.
	assert.Equal(t, Unmarked, res.Cell[loc.NearestCell(sphere.FromDegrees(-25, 245))])
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("missing interior point", func(t *testing.T) {
		m := ringMesh(t)
		reg := metrics.NewRegistry()
		g, err := NewGenerator(m, mesh.NewLinearLocator(m), DefaultConfig(), WithMetrics(reg))
		require.NoError(t, err)

		r := ringRegion()
		r.InPoint = nil
		_, err = g.Generate(r)
		assert.True(t, IsInvalidInput(err), "got %v", err)
		assert.Equal(t, 1.0, testutil.ToFloat64(reg.GenerationsTotal.WithLabelValues("invalid_input")))
	})

	t.Run("empty loop", func(t *testing.T) {
		m := ringMesh(t)
		g, err := NewGenerator(m, mesh.NewLinearLocator(m), DefaultConfig())
		require.NoError(t, err)

		_, err = g.Generate(region.New("empty", 0, 0, region.Loop{}))
		assert.True(t, IsInvalidInput(err), "got %v", err)
	})

	t.Run("trace failure", func(t *testing.T) {
		m := splitMesh(t)
		reg := metrics.NewRegistry()
		g, err := NewGenerator(m, mesh.NewLinearLocator(m), DefaultConfig(), WithMetrics(reg))
		require.NoError(t, err)

		r := region.New("split", 0, 5, region.Loop{sphere.FromDegrees(0, 10), sphere.FromDegrees(0, 90)})
		_, err = g.Generate(r)
		assert.True(t, IsTraceFailure(err), "got %v", err)
		assert.Equal(t, 1.0, testutil.ToFloat64(reg.TraceFailuresTotal))
		assert.Equal(t, 1.0, testutil.ToFloat64(reg.GenerationsTotal.WithLabelValues("trace_failure")))
		assert.Equal(t, 0.0, testutil.ToFloat64(reg.LoopsTracedTotal))
	})

	t.Run("bad config", func(t *testing.T) {
		m := ringMesh(t)
		_, err := NewGenerator(m, mesh.NewLinearLocator(m), Config{NumLayers: -2, Strategy: StrategySearch, PathFinder: PathFinderGreedy})
		assert.True(t, IsConfigurationError(err), "got %v", err)
	})

	t.Run("nil mesh", func(t *testing.T) {
		_, err := NewGenerator(nil, nil, DefaultConfig())
		assert.True(t, IsInvalidInput(err), "got %v", err)
	})
}

func TestGenerate_Logging(t *testing.T) {
	m := ringMesh(t)
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, logging.DebugLevel)

	g, err := NewGenerator(m, mesh.NewLinearLocator(m), DefaultConfig(), WithLogger(logger))
	require.NoError(t, err)
	res, err := g.Generate(ringRegion())
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{"generating mask", "boundaries traced", "interior filled", "relaxation layers expanded", "mask counts", "mask generated", res.RunID} {
		assert.Contains(t, out, want)
	}
}

func TestGenerate_LogsFailedPhase(t *testing.T) {
	m := splitMesh(t)
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, logging.InfoLevel)

	g, err := NewGenerator(m, mesh.NewLinearLocator(m), DefaultConfig(), WithLogger(logger))
	require.NoError(t, err)
	_, err = g.Generate(region.New("split", 0, 5, region.Loop{sphere.FromDegrees(0, 10), sphere.FromDegrees(0, 90)}))
	require.True(t, IsTraceFailure(err), "got %v", err)

	var phaseEntry *logging.LogEntry
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry logging.LogEntry
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry.Message == "boundaries traced" {
			phaseEntry = &entry
		}
	}
	require.NotNil(t, phaseEntry, "failed phase was not logged:\n%s", buf.String())
	assert.Equal(t, "ERROR", phaseEntry.Level)
	assert.Equal(t, PhaseTrace, phaseEntry.Fields["phase"])
	assert.Contains(t, phaseEntry.Fields, "elapsed")
	assert.Contains(t, buf.String(), "mask generation failed")
}
