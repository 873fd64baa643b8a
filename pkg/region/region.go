// Package region describes the area to cut out of a global mesh: one or more
// boundary loops and a point known to lie inside them.
package region

import (
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"

	"github.com/dd0wney/regionmask/pkg/sphere"
)

// Loop is an ordered list of boundary waypoints. The last point connects back
// to the first; the loop does not need to repeat its first point.
type Loop []sphere.LatLon

// Region is an already parsed region specification.
type Region struct {
	Name       string
	InPoint    *sphere.LatLon
	Boundaries []Loop
}

// LoopFromDegrees builds a Loop from a flat [lat0, lon0, lat1, lon1, ...] list in degrees.
func LoopFromDegrees(flat []float64) (Loop, error) {
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates (%d) in boundary point list", len(flat))
	}
	loop := make(Loop, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		loop = append(loop, sphere.FromDegrees(flat[i], flat[i+1]))
	}
	return loop, nil
}

// LoopFromRing converts an orb.Ring ([lon, lat] in degrees) into a Loop.
// A closing point equal to the first is dropped.
func LoopFromRing(ring orb.Ring) Loop {
	pts := []orb.Point(ring)
	if len(pts) > 1 && pts[0].Equal(pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}
	loop := make(Loop, len(pts))
	for i, p := range pts {
		loop[i] = sphere.FromDegrees(p.Lat(), p.Lon())
	}
	return loop
}

// New builds a Region with its interior point given in degrees.
func New(name string, inLat, inLon float64, boundaries ...Loop) Region {
	in := sphere.FromDegrees(inLat, inLon)
	return Region{Name: name, InPoint: &in, Boundaries: boundaries}
}

// Validate checks that the region has an interior point and non-empty loops.
func (r Region) Validate() error {
	if r.InPoint == nil {
		return fmt.Errorf("region %q: missing interior point", r.Name)
	}
	if len(r.Boundaries) == 0 {
		return fmt.Errorf("region %q: no boundary loops", r.Name)
	}
	for i, loop := range r.Boundaries {
		if len(loop) == 0 {
			return fmt.Errorf("region %q: boundary %d is empty", r.Name, i)
		}
	}
	return nil
}

// Circle approximates a small circle of the given angular radius (degrees)
// around (lat, lon) with n waypoints, returned as a closed orb.Ring.
func Circle(lat, lon, radius float64, n int) orb.Ring {
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	loop := s2.RegularLoop(center, s1.Angle(radius)*s1.Degree, n)

	ring := make(orb.Ring, 0, n+1)
	for _, v := range loop.Vertices() {
		ll := s2.LatLngFromPoint(v)
		ring = append(ring, orb.Point{ll.Lng.Degrees(), ll.Lat.Degrees()})
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return ring
}
