// Package mesh provides the read-only cell adjacency graph of an unstructured
// spherical mesh, plus nearest-cell lookup over its cell centers.
package mesh

import (
	"math"
	"slices"

	"github.com/dd0wney/regionmask/pkg/sphere"
)

// Connectivity holds the raw mesh arrays as handed over by a mesh loader.
// CellsOnCell rows may be padded beyond NEdgesOnCell; padding is ignored.
type Connectivity struct {
	NEdgesOnCell  []int
	CellsOnCell   [][]int
	LatCell       []float64 // radians
	LonCell       []float64 // radians
	CellsOnEdge   [][2]int
	CellsOnVertex [][]int
}

// Mesh is the validated, 0-based cell graph. It is never mutated after New.
type Mesh struct {
	neighbors     [][]int
	centers       []sphere.LatLon
	cellsOnEdge   [][2]int
	cellsOnVertex [][]int
}

// New validates 0-based connectivity and builds a Mesh from it.
func New(conn Connectivity) (*Mesh, error) {
	if err := conn.Validate(); err != nil {
		return nil, err
	}

	n := len(conn.NEdgesOnCell)
	m := &Mesh{
		neighbors:     make([][]int, n),
		centers:       make([]sphere.LatLon, n),
		cellsOnEdge:   slices.Clone(conn.CellsOnEdge),
		cellsOnVertex: make([][]int, len(conn.CellsOnVertex)),
	}
	for c := 0; c < n; c++ {
		m.neighbors[c] = slices.Clone(conn.CellsOnCell[c][:conn.NEdgesOnCell[c]])
		m.centers[c] = sphere.LatLon{Lat: conn.LatCell[c], Lon: conn.LonCell[c]}
	}
	for v, cells := range conn.CellsOnVertex {
		m.cellsOnVertex[v] = slices.Clone(cells)
	}
	return m, nil
}

// FromOneBased converts Fortran-style 1-based indices to 0-based and builds a Mesh.
// The input is not modified.
func FromOneBased(conn Connectivity) (*Mesh, error) {
	shifted := Connectivity{
		NEdgesOnCell:  conn.NEdgesOnCell,
		LatCell:       conn.LatCell,
		LonCell:       conn.LonCell,
		CellsOnCell:   make([][]int, len(conn.CellsOnCell)),
		CellsOnEdge:   make([][2]int, len(conn.CellsOnEdge)),
		CellsOnVertex: make([][]int, len(conn.CellsOnVertex)),
	}
	for c, row := range conn.CellsOnCell {
		shifted.CellsOnCell[c] = minusOne(row)
	}
	for e, pair := range conn.CellsOnEdge {
		shifted.CellsOnEdge[e] = [2]int{pair[0] - 1, pair[1] - 1}
	}
	for v, row := range conn.CellsOnVertex {
		shifted.CellsOnVertex[v] = minusOne(row)
	}
	return New(shifted)
}

func minusOne(row []int) []int {
	out := make([]int, len(row))
	for i, x := range row {
		out[i] = x - 1
	}
	return out
}

// Validate checks array shapes, index ranges and adjacency symmetry.
func (conn Connectivity) Validate() error {
	n := len(conn.NEdgesOnCell)
	if n == 0 {
		return invalid("NEdgesOnCell", -1, "mesh has no cells")
	}
	if len(conn.CellsOnCell) != n {
		return invalid("CellsOnCell", -1, "has %d rows, want %d", len(conn.CellsOnCell), n)
	}
	if len(conn.LatCell) != n || len(conn.LonCell) != n {
		return invalid("LatCell/LonCell", -1, "have %d/%d entries, want %d", len(conn.LatCell), len(conn.LonCell), n)
	}

	for c := 0; c < n; c++ {
		k := conn.NEdgesOnCell[c]
		if k < 0 || k > len(conn.CellsOnCell[c]) {
			return invalid("NEdgesOnCell", c, "degree %d exceeds row length %d", k, len(conn.CellsOnCell[c]))
		}
		for _, nb := range conn.CellsOnCell[c][:k] {
			if nb < 0 || nb >= n {
				return invalid("CellsOnCell", c, "neighbor %d out of range [0, %d)", nb, n)
			}
			if nb == c {
				return invalid("CellsOnCell", c, "cell lists itself as a neighbor")
			}
		}
		if !isFinite(conn.LatCell[c]) || !isFinite(conn.LonCell[c]) {
			return invalid("LatCell/LonCell", c, "non-finite coordinate")
		}
	}

	// Adjacency must be symmetric.
	for c := 0; c < n; c++ {
		for _, nb := range conn.CellsOnCell[c][:conn.NEdgesOnCell[c]] {
			if !slices.Contains(conn.CellsOnCell[nb][:conn.NEdgesOnCell[nb]], c) {
				return invalid("CellsOnCell", c, "neighbor %d does not list %d back", nb, c)
			}
		}
	}

	for e, pair := range conn.CellsOnEdge {
		for _, c := range pair {
			if c < 0 || c >= n {
				return invalid("CellsOnEdge", e, "cell %d out of range [0, %d)", c, n)
			}
		}
	}
	for v, cells := range conn.CellsOnVertex {
		if len(cells) == 0 {
			return invalid("CellsOnVertex", v, "vertex has no cells")
		}
		for _, c := range cells {
			if c < 0 || c >= n {
				return invalid("CellsOnVertex", v, "cell %d out of range [0, %d)", c, n)
			}
		}
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// NumCells returns the number of cells
func (m *Mesh) NumCells() int { return len(m.neighbors) }

// NumEdges returns the number of edges
func (m *Mesh) NumEdges() int { return len(m.cellsOnEdge) }

// NumVertices returns the number of vertices
func (m *Mesh) NumVertices() int { return len(m.cellsOnVertex) }

// Neighbors returns the adjacent cells of c in adjacency-list order.
// The returned slice must not be modified.
func (m *Mesh) Neighbors(c int) []int { return m.neighbors[c] }

// Center returns the cell-center coordinate of c
func (m *Mesh) Center(c int) sphere.LatLon { return m.centers[c] }

// CellsOnEdge returns the two cells incident to edge e
func (m *Mesh) CellsOnEdge(e int) [2]int { return m.cellsOnEdge[e] }

// CellsOnVertex returns the cells incident to vertex v.
// The returned slice must not be modified.
func (m *Mesh) CellsOnVertex(v int) []int { return m.cellsOnVertex[v] }

// Contains reports whether c is a valid cell index
func (m *Mesh) Contains(c int) bool { return c >= 0 && c < len(m.neighbors) }

// DistanceBetween returns the unit-sphere great-circle distance between two cell centers
func (m *Mesh) DistanceBetween(a, b int) float64 {
	return sphere.Distance(m.centers[a], m.centers[b])
}
