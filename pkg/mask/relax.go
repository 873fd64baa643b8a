package mask

import "github.com/dd0wney/regionmask/pkg/mesh"

// Relaxation layer strategy names accepted by Config.Strategy.
const (
	StrategySearch    = "search"
	StrategyFullSweep = "full-sweep"
)

// LayerStrategy assigns one relaxation layer. MarkLayer sets value on every
// Unmarked cell it finds adjacent to a cell holding a value in [Inside, value)
// and returns how many cells it assigned.
type LayerStrategy interface {
	Name() string
	MarkLayer(m *mesh.Mesh, cells CellMask, value, start int) int
}

// NewLayerStrategy returns the strategy registered under name.
func NewLayerStrategy(name string) (LayerStrategy, error) {
	switch name {
	case StrategySearch, "":
		return SearchStrategy{}, nil
	case StrategyFullSweep:
		return SweepStrategy{}, nil
	default:
		return nil, NewError("strategy").Context("unknown layer strategy %q", name).Cause(ErrConfiguration).Err()
	}
}

// SearchStrategy walks the classified region from the start cell and marks
// its Unmarked neighbors. Work is proportional to the region, not the mesh.
// Only the classified cells connected to start through [Inside, value) cells
// are expanded. A start cell outside [Inside, value) assigns nothing.
type SearchStrategy struct{}

// Name returns "search".
func (SearchStrategy) Name() string { return StrategySearch }

// MarkLayer implements LayerStrategy.
func (SearchStrategy) MarkLayer(m *mesh.Mesh, cells CellMask, value, start int) int {
	if v := cells[start]; v < Inside || v >= value {
		return 0
	}
	visited := make(map[int]struct{})
	visited[start] = struct{}{}
	stack := []int{start}

	assigned := 0
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, nb := range m.Neighbors(c) {
			v := cells[nb]
			switch {
			case v >= Inside && v < value:
				if _, seen := visited[nb]; !seen {
					visited[nb] = struct{}{}
					stack = append(stack, nb)
				}
			case v == Unmarked:
				cells[nb] = value
				assigned++
			}
		}
	}
	return assigned
}

// SweepStrategy scans every cell of the mesh once per layer.
type SweepStrategy struct{}

// Name returns "full-sweep".
func (SweepStrategy) Name() string { return StrategyFullSweep }

// MarkLayer implements LayerStrategy. start is unused.
func (SweepStrategy) MarkLayer(m *mesh.Mesh, cells CellMask, value, _ int) int {
	assigned := 0
	for c := range cells {
		if cells[c] != Unmarked {
			continue
		}
		for _, nb := range m.Neighbors(c) {
			if v := cells[nb]; v >= Inside && v < value {
				cells[c] = value
				assigned++
				break
			}
		}
	}
	return assigned
}

// ExpandRelaxationLayers adds numLayers relaxation layers around the
// classified region, writing values FirstLayer..numLayers+1. It returns the
// number of cells assigned per layer. start must be an Inside cell.
func ExpandRelaxationLayers(m *mesh.Mesh, numLayers int, cells CellMask, strategy LayerStrategy, start int) ([]int, error) {
	if err := checkMask("relax", m, cells); err != nil {
		return nil, err
	}
	if err := checkCell("relax", m, start); err != nil {
		return nil, err
	}
	if numLayers < 0 || numLayers > MaxRelaxationLayers {
		return nil, NewError("relax").
			Context("layer count %d outside [0, %d]", numLayers, MaxRelaxationLayers).
			Cause(ErrConfiguration).Err()
	}
	if cells[start] != Inside {
		return nil, NewError("relax").Cell(start).
			Context("start cell holds %d, want %d", cells[start], Inside).
			Cause(ErrInvalidInput).Err()
	}
	if strategy == nil {
		strategy = SearchStrategy{}
	}

	added := make([]int, numLayers)
	for k := 1; k <= numLayers; k++ {
		added[k-1] = strategy.MarkLayer(m, cells, LayerValue(k), start)
	}
	return added, nil
}
