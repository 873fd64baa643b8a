package mask

import (
	"slices"
	"testing"
)

var strategies = []LayerStrategy{SearchStrategy{}, SweepStrategy{}}

func TestExpandRelaxationLayers(t *testing.T) {
	m := ringMesh(t)

	tests := []struct {
		name   string
		cells  CellMask
		layers int
		start  int
		want   CellMask
		added  []int
	}{
		{"one layer", CellMask{1, 1, 1, 1, 0, 0}, 1, 1, CellMask{1, 1, 1, 1, 2, 2}, []int{2}},
		{"exhausted", CellMask{1, 1, 1, 1, 0, 0}, 2, 1, CellMask{1, 1, 1, 1, 2, 2}, []int{2, 0}},
		{"rings outward", CellMask{1, 0, 0, 0, 0, 0}, 3, 0, CellMask{1, 2, 3, 4, 3, 2}, []int{2, 2, 1}},
		{"zero layers", CellMask{1, 1, 0, 0, 0, 0}, 0, 0, CellMask{1, 1, 0, 0, 0, 0}, []int{}},
	}

	for _, tt := range tests {
		for _, s := range strategies {
			t.Run(tt.name+"/"+s.Name(), func(t *testing.T) {
				cells := slices.Clone(tt.cells)
				added, err := ExpandRelaxationLayers(m, tt.layers, cells, s, tt.start)
				if err != nil {
					t.Fatalf("ExpandRelaxationLayers failed: %v", err)
				}
				if !slices.Equal(cells, tt.want) {
					t.Errorf("mask = %v, want %v", cells, tt.want)
				}
				if !slices.Equal(added, tt.added) {
					t.Errorf("added = %v, want %v", added, tt.added)
				}
			})
		}
	}
}

func TestSearchStrategy_OnlyExpandsConnectedRegion(t *testing.T) {
	m := ringMesh(t)

	search := CellMask{1, 0, 0, 1, 0, 0}
	if _, err := ExpandRelaxationLayers(m, 1, search, SearchStrategy{}, 0); err != nil {
		t.Fatal(err)
	}
	if want := (CellMask{1, 2, 0, 1, 0, 2}); !slices.Equal(search, want) {
		t.Errorf("search mask = %v, want %v", search, want)
	}

	sweep := CellMask{1, 0, 0, 1, 0, 0}
	if _, err := ExpandRelaxationLayers(m, 1, sweep, SweepStrategy{}, 0); err != nil {
		t.Fatal(err)
	}
	if want := (CellMask{1, 2, 2, 1, 2, 2}); !slices.Equal(sweep, want) {
		t.Errorf("sweep mask = %v, want %v", sweep, want)
	}
}

func TestExpandRelaxationLayers_Errors(t *testing.T) {
	m := ringMesh(t)

	if _, err := ExpandRelaxationLayers(m, -1, NewCellMask(6), nil, 0); !IsConfigurationError(err) {
		t.Errorf("negative layers: expected configuration error, got %v", err)
	}
	if _, err := ExpandRelaxationLayers(m, MaxRelaxationLayers+1, NewCellMask(6), nil, 0); !IsConfigurationError(err) {
		t.Errorf("too many layers: expected configuration error, got %v", err)
	}
	if _, err := ExpandRelaxationLayers(m, 1, NewCellMask(6), nil, 9); !IsInvalidInput(err) {
		t.Errorf("bad start: expected invalid input, got %v", err)
	}
	if _, err := ExpandRelaxationLayers(m, 1, NewCellMask(2), nil, 0); !IsInvalidInput(err) {
		t.Errorf("short mask: expected invalid input, got %v", err)
	}
}

func TestExpandRelaxationLayers_UnclassifiedStart(t *testing.T) {
	m := ringMesh(t)

	for _, s := range strategies {
		t.Run(s.Name(), func(t *testing.T) {
			cells := CellMask{0, 0, 0, 1, 0, 0}
			if _, err := ExpandRelaxationLayers(m, 1, cells, s, 0); !IsInvalidInput(err) {
				t.Errorf("expected invalid input, got %v", err)
			}
			if want := (CellMask{0, 0, 0, 1, 0, 0}); !slices.Equal(cells, want) {
				t.Errorf("mask changed to %v", cells)
			}
		})
	}
}

func TestSearchStrategy_IgnoresUnclassifiedStart(t *testing.T) {
	m := ringMesh(t)

	cells := CellMask{0, 0, 0, 1, 0, 0}
	if n := (SearchStrategy{}).MarkLayer(m, cells, FirstLayer, 0); n != 0 {
		t.Errorf("MarkLayer assigned %d cells from an unmarked start", n)
	}
	if idx, ok := checkLayers(m, cells); !ok {
		t.Errorf("layer invariant broken at cell %d: %v", idx, cells)
	}

	cells = CellMask{1, 2, 0, 0, 0, 2}
	if n := (SearchStrategy{}).MarkLayer(m, cells, FirstLayer, 1); n != 0 {
		t.Errorf("MarkLayer assigned %d cells from a start already in the layer", n)
	}
}

func TestNewLayerStrategy(t *testing.T) {
	for name, want := range map[string]string{"": "search", "search": "search", "full-sweep": "full-sweep"} {
		s, err := NewLayerStrategy(name)
		if err != nil {
			t.Fatalf("NewLayerStrategy(%q) failed: %v", name, err)
		}
		if s.Name() != want {
			t.Errorf("NewLayerStrategy(%q).Name() = %q, want %q", name, s.Name(), want)
		}
	}
	if _, err := NewLayerStrategy("bfs"); !IsConfigurationError(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}
