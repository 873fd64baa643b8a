package mesh

import (
	"math"
	"slices"

	"github.com/golang/geo/r3"

	"github.com/dd0wney/regionmask/pkg/sphere"
)

// KDLocator answers nearest-cell queries with a 3-D k-d tree over the unit
// vectors of the cell centers. Chord length is monotonic in great-circle
// distance, so pruning on the chord is exact.
type KDLocator struct {
	mesh  *Mesh
	nodes []kdNode
	root  int
}

type kdNode struct {
	cell  int
	point r3.Vector
	axis  int // 0:x, 1:y, 2:z
	left  int // -1 when absent
	right int
}

// NewKDLocator builds the tree. Construction is O(n log^2 n).
func NewKDLocator(m *Mesh) *KDLocator {
	n := m.NumCells()
	points := make([]r3.Vector, n)
	cells := make([]int, n)
	for c := 0; c < n; c++ {
		ll := m.Center(c)
		points[c] = sphere.ToCartesian(ll.Lat, ll.Lon, 1.0)
		cells[c] = c
	}

	k := &KDLocator{mesh: m, nodes: make([]kdNode, 0, n)}
	k.root = k.build(cells, points, 0)
	return k
}

func (k *KDLocator) build(cells []int, points []r3.Vector, depth int) int {
	if len(cells) == 0 {
		return -1
	}
	axis := depth % 3
	slices.SortFunc(cells, func(a, b int) int {
		if d := coord(points[a], axis) - coord(points[b], axis); d != 0 {
			if d < 0 {
				return -1
			}
			return 1
		}
		return a - b
	})

	mid := len(cells) / 2
	idx := len(k.nodes)
	k.nodes = append(k.nodes, kdNode{cell: cells[mid], point: points[cells[mid]], axis: axis})

	left := k.build(cells[:mid], points, depth+1)
	right := k.build(cells[mid+1:], points, depth+1)
	k.nodes[idx].left = left
	k.nodes[idx].right = right
	return idx
}

func coord(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// NearestCell returns the cell nearest to p. Equidistant cells resolve to
// the lowest index, matching LinearLocator.
func (k *KDLocator) NearestCell(p sphere.LatLon) int {
	q := sphere.ToCartesian(p.Lat, p.Lon, 1.0)
	best := -1
	bestD := math.Inf(1)

	var search func(i int)
	search = func(i int) {
		if i < 0 {
			return
		}
		nd := &k.nodes[i]
		d := q.Sub(nd.point).Norm2()
		if d < bestD || (d == bestD && nd.cell < best) {
			best, bestD = nd.cell, d
		}

		diff := coord(q, nd.axis) - coord(nd.point, nd.axis)
		first, second := nd.left, nd.right
		if diff > 0 {
			first, second = nd.right, nd.left
		}
		search(first)
		// Only cross the split plane if it is closer than the current best.
		if diff*diff <= bestD {
			search(second)
		}
	}
	search(k.root)
	return best
}
