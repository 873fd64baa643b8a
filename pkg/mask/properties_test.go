package mask

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/regionmask/pkg/mesh"
)

func TestMaskProperties(t *testing.T) {
	m := gridMesh(t, 6, 12)
	n := m.NumCells()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("flood fill never overwrites a classified cell", prop.ForAll(
		func(values []int, start int) bool {
			cells := CellMask(slices.Clone(values))
			if _, err := FloodFill(m, start, cells); err != nil {
				return false
			}
			for c, v := range values {
				if v != Unmarked && cells[c] != v {
					return false
				}
				if v == Unmarked && cells[c] != Unmarked && cells[c] != Inside {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(n, gen.IntRange(0, 4)),
		gen.IntRange(0, n-1),
	))

	properties.Property("layer cells touch a more interior cell", prop.ForAll(
		func(values []int, start, layers int) bool {
			values = slices.Clone(values)
			values[start] = Inside
			for _, s := range strategies {
				cells := CellMask(slices.Clone(values))
				if _, err := ExpandRelaxationLayers(m, layers, cells, s, start); err != nil {
					return false
				}
				if _, ok := checkLayers(m, cells); !ok {
					return false
				}
				for c, v := range values {
					if v != Unmarked && cells[c] != v {
						return false
					}
					if cells[c] > LayerValue(layers) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(n, gen.IntRange(0, 1)),
		gen.IntRange(0, n-1),
		gen.IntRange(0, 6),
	))

	properties.Property("an unclassified start is rejected without touching the mask", prop.ForAll(
		func(values []int, start int) bool {
			values = slices.Clone(values)
			values[start] = Unmarked
			for _, s := range strategies {
				cells := CellMask(slices.Clone(values))
				if _, err := ExpandRelaxationLayers(m, 2, cells, s, start); !IsInvalidInput(err) {
					return false
				}
				if !slices.Equal(cells, values) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(n, gen.IntRange(0, 1)),
		gen.IntRange(0, n-1),
	))

	properties.Property("zero layers leave the mask unchanged", prop.ForAll(
		func(values []int, start int) bool {
			values = slices.Clone(values)
			values[start] = Inside
			for _, s := range strategies {
				cells := CellMask(slices.Clone(values))
				if _, err := ExpandRelaxationLayers(m, 0, cells, s, start); err != nil {
					return false
				}
				if !slices.Equal(cells, values) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(n, gen.IntRange(0, 1)),
		gen.IntRange(0, n-1),
	))

	properties.Property("aggregation is idempotent and prefers the smallest positive value", prop.ForAll(
		func(values []int) bool {
			cells := CellMask(values)
			e1, err1 := DeriveEdgeMask(m, cells)
			e2, err2 := DeriveEdgeMask(m, cells)
			v1, err3 := DeriveVertexMask(m, cells)
			v2, err4 := DeriveVertexMask(m, cells)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				return false
			}
			if !slices.Equal(e1, e2) || !slices.Equal(v1, v2) {
				return false
			}
			for e, got := range e1 {
				pair := m.CellsOnEdge(e)
				a, b := cells[pair[0]], cells[pair[1]]
				want := max(a, b)
				if a > 0 && b > 0 {
					want = min(a, b)
				}
				if got != want {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(n, gen.IntRange(0, 9)),
	))

	properties.TestingRun(t)
}

func TestPipelineProperties(t *testing.T) {
	m := gridMesh(t, 18, 36)
	loc := mesh.NewKDLocator(m)

	search, err := NewGenerator(m, loc, Config{NumLayers: 4, Strategy: StrategySearch, PathFinder: PathFinderGreedy})
	if err != nil {
		t.Fatal(err)
	}
	sweep, err := NewGenerator(m, loc, Config{NumLayers: 4, Strategy: StrategyFullSweep, PathFinder: PathFinderGreedy})
	if err != nil {
		t.Fatal(err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("waypoint cells end inside and strategies agree", prop.ForAll(
		func(lat, lon, radius float64, points int) bool {
			r := circleRegion(lat, lon, radius, points)

			a, err := search.Generate(r)
			if err != nil {
				return false
			}
			b, err := sweep.Generate(r)
			if err != nil {
				return false
			}
			for _, p := range r.Boundaries[0] {
				if a.Cell[loc.NearestCell(p)] != Inside {
					return false
				}
			}
			if _, ok := checkLayers(m, a.Cell); !ok {
				return false
			}
			return slices.Equal(a.Cell, b.Cell)
		},
		gen.Float64Range(-45, 45),
		gen.Float64Range(0, 360),
		gen.Float64Range(12, 30),
		gen.IntRange(6, 24),
	))

	properties.TestingRun(t)
}
