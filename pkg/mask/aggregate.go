package mask

import "github.com/dd0wney/regionmask/pkg/mesh"

// DeriveEdgeMask classifies every edge from the cells on either side of it.
func DeriveEdgeMask(m *mesh.Mesh, cells CellMask) ([]int, error) {
	if err := checkMask("edges", m, cells); err != nil {
		return nil, err
	}
	out := make([]int, m.NumEdges())
	for e := range out {
		pair := m.CellsOnEdge(e)
		out[e] = classify(cells, pair[:])
	}
	return out, nil
}

// DeriveVertexMask classifies every vertex from the cells that meet at it.
func DeriveVertexMask(m *mesh.Mesh, cells CellMask) ([]int, error) {
	if err := checkMask("vertices", m, cells); err != nil {
		return nil, err
	}
	out := make([]int, m.NumVertices())
	for v := range out {
		out[v] = classify(cells, m.CellsOnVertex(v))
	}
	return out, nil
}

// classify returns the minimum incident value when it is positive, otherwise
// the maximum.
func classify(cells CellMask, incident []int) int {
	lo, hi := cells[incident[0]], cells[incident[0]]
	for _, c := range incident[1:] {
		lo = min(lo, cells[c])
		hi = max(hi, cells[c])
	}
	if lo > 0 {
		return lo
	}
	return hi
}
