// Package modeling implements the dimension-lifting operators (linear and
// rotational sweep) and the Euler operations over the B-rep layer
// (spec.md §4.M): tsweep, rsweep, cut_face_by_edge, add_boundary, and
// try_wire_homotopy. Every operator here preserves the identity of the
// entity it lifts and allocates fresh identity only for the new
// "cap"/"side" features it introduces, mirroring `truck-modeling`'s
// builder layer (original_source) adapted to walk this kernel's
// topology/geometry packages instead of truck's.
package modeling

import (
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
)

// sideSurface builds the ruled surface connecting curve to its translate
// by d: a Plane when curve is a straight Line (spec.md §4.M "plane if the
// input curve is a line"), an ExtrudedSurface otherwise.
func sideSurface(curve geometry.Curve, d geomath.Point3) geometry.Surface {
	if line, ok := curve.(*geometry.Line[geomath.Point3]); ok {
		t0, t1 := line.Bounds()
		origin := line.Evaluate(t0)
		u := line.Evaluate(t1).Sub(origin)
		return geometry.NewPlane(origin, u, d, 0, 1, 0, 1)
	}
	return geometry.NewExtrudedSurface(curve, d, 1)
}
