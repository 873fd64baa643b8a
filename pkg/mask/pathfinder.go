package mask

import (
	"container/heap"
	"math"

	"github.com/dd0wney/regionmask/pkg/mesh"
	"github.com/dd0wney/regionmask/pkg/sphere"
)

// Path finder names accepted by Config.PathFinder.
const (
	PathFinderGreedy   = "greedy"
	PathFinderShortest = "shortest-path"
)

// PathFinder connects two cells of a mesh with a chain of adjacent cells.
// The returned path starts at src and ends at dst.
type PathFinder interface {
	Name() string
	FindPath(m *mesh.Mesh, src, dst int) ([]int, error)
}

// NewPathFinder returns the path finder registered under name.
func NewPathFinder(name string) (PathFinder, error) {
	switch name {
	case PathFinderGreedy, "":
		return GreedyPathFinder{}, nil
	case PathFinderShortest:
		return ShortestPathFinder{}, nil
	default:
		return nil, NewError("pathfinder").Context("unknown path finder %q", name).Cause(ErrConfiguration).Err()
	}
}

// GreedyPathFinder walks from src towards dst, at each step taking the
// neighbor closest to the great circle through src and dst among those that
// are no farther from dst than the current cell. Ties keep the first
// neighbor in adjacency order.
//
// The walk is bounded by the number of cells in the mesh.
type GreedyPathFinder struct{}

// Name returns "greedy".
func (GreedyPathFinder) Name() string { return PathFinderGreedy }

// FindPath implements PathFinder.
func (GreedyPathFinder) FindPath(m *mesh.Mesh, src, dst int) ([]int, error) {
	target := m.Center(dst)
	normal := sphere.ArcNormal(m.Center(src), target)

	path := []int{src}
	cur := src
	for cur != dst {
		if len(path) > m.NumCells() {
			return path, NewError("trace").Trace(src, dst).
				Context("step bound %d exceeded at cell %d", m.NumCells(), cur).
				Cause(ErrTraceFailure).Err()
		}

		curDist := sphere.Distance(m.Center(cur), target)
		next := -1
		minDev := math.Inf(1)
		for _, nb := range m.Neighbors(cur) {
			center := m.Center(nb)
			if sphere.Distance(center, target) > curDist {
				continue
			}
			if dev := sphere.PlaneDeviation(normal, center); dev < minDev {
				minDev = dev
				next = nb
			}
		}
		if next < 0 {
			return path, NewError("trace").Trace(src, dst).
				Context("no neighbor of cell %d approaches the target", cur).
				Cause(ErrTraceFailure).Err()
		}

		cur = next
		path = append(path, cur)
	}
	return path, nil
}

// ShortestPathFinder returns the path of minimum total great-circle length
// between cell centers (Dijkstra). Equal-length paths resolve towards lower
// cell indices.
type ShortestPathFinder struct{}

// Name returns "shortest-path".
func (ShortestPathFinder) Name() string { return PathFinderShortest }

// FindPath implements PathFinder.
func (ShortestPathFinder) FindPath(m *mesh.Mesh, src, dst int) ([]int, error) {
	n := m.NumCells()
	dist := make([]float64, n)
	prev := make([]int, n)
	done := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[src] = 0

	pq := &cellQueue{{cell: src}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(cellItem)
		if done[item.cell] {
			continue
		}
		done[item.cell] = true
		if item.cell == dst {
			break
		}
		for _, nb := range m.Neighbors(item.cell) {
			if done[nb] {
				continue
			}
			d := item.dist + m.DistanceBetween(item.cell, nb)
			if d < dist[nb] {
				dist[nb] = d
				prev[nb] = item.cell
				heap.Push(pq, cellItem{cell: nb, dist: d})
			}
		}
	}

	if !done[dst] {
		return []int{src}, NewError("trace").Trace(src, dst).
			Context("target unreachable from source").
			Cause(ErrTraceFailure).Err()
	}

	var path []int
	for c := dst; c != -1; c = prev[c] {
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

type cellItem struct {
	cell int
	dist float64
}

// cellQueue is a min-heap on (dist, cell).
type cellQueue []cellItem

func (q cellQueue) Len() int { return len(q) }
func (q cellQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].cell < q[j].cell
}
func (q cellQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *cellQueue) Push(x any)   { *q = append(*q, x.(cellItem)) }
func (q *cellQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}
