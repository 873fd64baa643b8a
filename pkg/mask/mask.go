// Package mask classifies the cells of a global mesh against a region: cells
// inside the region, a configurable number of relaxation layers around it,
// and everything else. Edge and vertex classifications are derived from the
// final cell mask.
package mask

import (
	"fmt"

	"github.com/dd0wney/regionmask/pkg/mesh"
)

// Cell classification values. Relaxation layer k (1-based) is stored as
// FirstLayer+k-1.
const (
	Unmarked   = 0
	Inside     = 1
	FirstLayer = 2
)

// CellMask holds one classification value per mesh cell.
type CellMask []int

// NewCellMask returns an all-Unmarked mask for n cells.
func NewCellMask(n int) CellMask {
	return make(CellMask, n)
}

// LayerValue returns the mask value written for relaxation layer k (1-based).
func LayerValue(k int) int {
	return FirstLayer + k - 1
}

// Counts returns how many entries hold each classification value.
func Counts(values []int) map[int]int {
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	return counts
}

func checkMask(op string, m *mesh.Mesh, cells CellMask) error {
	if m == nil {
		return NewError(op).Cause(invalidInput(fmt.Errorf("nil mesh"))).Err()
	}
	if len(cells) != m.NumCells() {
		return NewError(op).
			Context("mask has %d cells, mesh has %d", len(cells), m.NumCells()).
			Cause(ErrInvalidInput).Err()
	}
	return nil
}

func checkCell(op string, m *mesh.Mesh, c int) error {
	if !m.Contains(c) {
		return NewError(op).Cell(c).
			Context("mesh has %d cells", m.NumCells()).
			Cause(ErrInvalidInput).Err()
	}
	return nil
}
