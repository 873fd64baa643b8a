// Package sphere holds the spherical geometry used by mask construction.
// Coordinates are in radians; radius 1.0 reduces everything to the unit sphere.
package sphere

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// LatLon is a point on the sphere in radians
type LatLon struct {
	Lat float64
	Lon float64
}

// FromDegrees builds a LatLon from degree values
func FromDegrees(lat, lon float64) LatLon {
	return LatLon{
		Lat: (s1.Angle(lat) * s1.Degree).Radians(),
		Lon: (s1.Angle(lon) * s1.Degree).Radians(),
	}
}

// Degrees returns the point as (lat, lon) in degrees
func (p LatLon) Degrees() (float64, float64) {
	return s1.Angle(p.Lat).Degrees(), s1.Angle(p.Lon).Degrees()
}

func (p LatLon) latLng() s2.LatLng {
	return s2.LatLng{Lat: s1.Angle(p.Lat), Lng: s1.Angle(p.Lon)}
}

// ToCartesian converts (lat, lon) to Cartesian coordinates on a sphere of the given radius
func ToCartesian(lat, lon, radius float64) r3.Vector {
	p := s2.PointFromLatLng(LatLon{Lat: lat, Lon: lon}.latLng())
	return p.Vector.Mul(radius)
}

// FromCartesian is the inverse of ToCartesian. The vector does not need to be
// unit length; the returned longitude lies in (-pi, pi].
func FromCartesian(v r3.Vector) LatLon {
	ll := s2.LatLngFromPoint(s2.Point{Vector: v})
	return LatLon{Lat: ll.Lat.Radians(), Lon: ll.Lng.Radians()}
}

// GreatCircleDistance returns the geodesic distance between two points on a
// sphere of the given radius. The haversine/atan2 form is stable for both
// coincident and antipodal points.
//
// The points are put in (lat, lon) order before evaluation so that swapping
// the arguments yields bit-identical results.
func GreatCircleDistance(lat1, lon1, lat2, lon2, radius float64) float64 {
	if lat2 < lat1 || (lat2 == lat1 && lon2 < lon1) {
		lat1, lon1, lat2, lon2 = lat2, lon2, lat1, lon1
	}
	a := LatLon{Lat: lat1, Lon: lon1}.latLng()
	b := LatLon{Lat: lat2, Lon: lon2}.latLng()
	return a.Distance(b).Radians() * radius
}

// Distance is GreatCircleDistance on the unit sphere
func Distance(a, b LatLon) float64 {
	return GreatCircleDistance(a.Lat, a.Lon, b.Lat, b.Lon, 1.0)
}

// ArcNormal returns the unit pole of the great circle through a and b.
// For coincident or antipodal points, where the plain cross product vanishes,
// a deterministic orthogonal vector is returned instead.
func ArcNormal(a, b LatLon) r3.Vector {
	pa := s2.PointFromLatLng(a.latLng())
	pb := s2.PointFromLatLng(b.latLng())
	return pa.PointCross(pb).Normalize()
}

// PlaneDeviation is the angular distance of p from the great-circle plane
// whose pole is normal. 0 means p lies on the plane.
func PlaneDeviation(normal r3.Vector, p LatLon) float64 {
	v := ToCartesian(p.Lat, p.Lon, 1.0)
	d := math.Max(-1, math.Min(1, normal.Dot(v)))
	return math.Abs(0.5*math.Pi - math.Acos(d))
}
