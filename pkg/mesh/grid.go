package mesh

import (
	"fmt"
	"math"
)

// NewLatLonGrid builds a global quadrilateral mesh with nLat rows and nLon
// columns of cells. Longitude wraps; the polar rows have no poleward neighbor.
//
// Neighbors are listed east, north, west, south. Edges are the east edge of
// every cell followed by the north edge of every non-polar row. Vertices sit
// at interior row corners and touch four cells.
func NewLatLonGrid(nLat, nLon int) (*Mesh, error) {
	if nLat < 2 || nLon < 3 {
		return nil, fmt.Errorf("grid must be at least 2x3 cells, got %dx%d", nLat, nLon)
	}

	n := nLat * nLon
	id := func(i, j int) int { return GridCell(nLon, i, j) }

	conn := Connectivity{
		NEdgesOnCell:  make([]int, n),
		CellsOnCell:   make([][]int, n),
		LatCell:       make([]float64, n),
		LonCell:       make([]float64, n),
		CellsOnEdge:   make([][2]int, 0, 2*n),
		CellsOnVertex: make([][]int, 0, n),
	}

	dLat := math.Pi / float64(nLat)
	dLon := 2 * math.Pi / float64(nLon)

	for i := 0; i < nLat; i++ {
		for j := 0; j < nLon; j++ {
			c := id(i, j)
			conn.LatCell[c] = -math.Pi/2 + (float64(i)+0.5)*dLat
			conn.LonCell[c] = (float64(j) + 0.5) * dLon

			nbrs := []int{id(i, j+1)}
			if i < nLat-1 {
				nbrs = append(nbrs, id(i+1, j))
			}
			nbrs = append(nbrs, id(i, j-1))
			if i > 0 {
				nbrs = append(nbrs, id(i-1, j))
			}
			conn.CellsOnCell[c] = nbrs
			conn.NEdgesOnCell[c] = len(nbrs)
		}
	}

	for c := 0; c < n; c++ {
		i, j := c/nLon, c%nLon
		conn.CellsOnEdge = append(conn.CellsOnEdge, [2]int{c, id(i, j+1)})
	}
	for i := 0; i < nLat-1; i++ {
		for j := 0; j < nLon; j++ {
			conn.CellsOnEdge = append(conn.CellsOnEdge, [2]int{id(i, j), id(i+1, j)})
			conn.CellsOnVertex = append(conn.CellsOnVertex,
				[]int{id(i, j), id(i, j+1), id(i+1, j+1), id(i+1, j)})
		}
	}

	return New(conn)
}

// GridCell returns the cell index of row i, column j in a grid made by
// NewLatLonGrid with nLon columns. Columns wrap.
func GridCell(nLon, i, j int) int {
	return i*nLon + ((j%nLon)+nLon)%nLon
}
