package mask

import (
	"math"
	"testing"

	"github.com/dd0wney/regionmask/pkg/mesh"
	"github.com/dd0wney/regionmask/pkg/region"
	"github.com/dd0wney/regionmask/pkg/sphere"
)

// ringLons are the cell longitudes (degrees) of the six-cell test ring at
// latitude 60. Uneven spacing keeps every greedy choice free of ties.
var ringLons = []float64{0, 50, 130, 180, 240, 300}

// ringMesh returns six cells in a ring, cell k adjacent to k-1 and k+1.
// Edges and vertices both join consecutive cells.
func ringMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	n := len(ringLons)
	conn := mesh.Connectivity{
		NEdgesOnCell: make([]int, n),
		CellsOnCell:  make([][]int, n),
		LatCell:      make([]float64, n),
		LonCell:      make([]float64, n),
	}
	for k := 0; k < n; k++ {
		conn.NEdgesOnCell[k] = 2
		conn.CellsOnCell[k] = []int{(k + n - 1) % n, (k + 1) % n}
		conn.LatCell[k] = 60 * math.Pi / 180
		conn.LonCell[k] = ringLons[k] * math.Pi / 180
		conn.CellsOnEdge = append(conn.CellsOnEdge, [2]int{k, (k + 1) % n})
		conn.CellsOnVertex = append(conn.CellsOnVertex, []int{k, (k + 1) % n})
	}
	m, err := mesh.New(conn)
	if err != nil {
		t.Fatalf("ring mesh: %v", err)
	}
	return m
}

func ringPoint(k int) sphere.LatLon {
	return sphere.FromDegrees(60, ringLons[k])
}

// ringRegion selects cells 0 and 3 as waypoints with the interior point on cell 1.
func ringRegion() region.Region {
	return region.New("ring", 60, ringLons[1], region.Loop{ringPoint(0), ringPoint(3)})
}

// splitMesh has two components, {0, 1} and {2, 3}, on the equator.
func splitMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	deg := math.Pi / 180
	m, err := mesh.New(mesh.Connectivity{
		NEdgesOnCell: []int{1, 1, 1, 1},
		CellsOnCell:  [][]int{{1}, {0}, {3}, {2}},
		LatCell:      []float64{0, 0, 0, 0},
		LonCell:      []float64{0, 10 * deg, 90 * deg, 100 * deg},
		CellsOnEdge:  [][2]int{{0, 1}, {2, 3}},
	})
	if err != nil {
		t.Fatalf("split mesh: %v", err)
	}
	return m
}

func gridMesh(t *testing.T, nLat, nLon int) *mesh.Mesh {
	t.Helper()
	m, err := mesh.NewLatLonGrid(nLat, nLon)
	if err != nil {
		t.Fatalf("grid mesh: %v", err)
	}
	return m
}

// circleRegion is a closed circular boundary of n waypoints around (lat, lon).
func circleRegion(lat, lon, radius float64, n int) region.Region {
	return region.New("circle", lat, lon, region.LoopFromRing(region.Circle(lat, lon, radius, n)))
}

// checkLayers reports the first cell with value L > Inside and no neighbor
// holding a value in [Inside, L).
func checkLayers(m *mesh.Mesh, cells CellMask) (int, bool) {
	for c, v := range cells {
		if v <= Inside {
			continue
		}
		ok := false
		for _, nb := range m.Neighbors(c) {
			if cells[nb] >= Inside && cells[nb] < v {
				ok = true
				break
			}
		}
		if !ok {
			return c, false
		}
	}
	return -1, true
}
