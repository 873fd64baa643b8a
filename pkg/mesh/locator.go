package mesh

import (
	"math"

	"github.com/dd0wney/regionmask/pkg/sphere"
)

// Locator finds the mesh cell whose center is nearest to a query point.
type Locator interface {
	NearestCell(p sphere.LatLon) int
}

// LinearLocator scans every cell. It is the reference implementation
// other locators are checked against.
type LinearLocator struct {
	mesh *Mesh
}

// NewLinearLocator creates a LinearLocator over m
func NewLinearLocator(m *Mesh) *LinearLocator {
	return &LinearLocator{mesh: m}
}

// NearestCell returns the cell minimizing great-circle distance to p.
// Ties go to the lowest cell index.
func (l *LinearLocator) NearestCell(p sphere.LatLon) int {
	best := 0
	bestDist := math.Inf(1)
	for c, center := range l.mesh.centers {
		if d := sphere.Distance(p, center); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
