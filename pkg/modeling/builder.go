package modeling

import (
	"fmt"

	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// Vertex creates a new vertex at p (truck-modeling's builder::vertex).
func Vertex(p geomath.Point3) *brep.Vertex { return brep.NewVertex(p) }

// Line creates a straight edge from v0 to v1 (builder::line).
func Line(v0, v1 *brep.Vertex) (*brep.Edge, error) {
	c := geometry.NewLine[geomath.Point3](v0.Point(), v1.Point().Sub(v0.Point()), 0, 1)
	return brep.NewEdge(v0, v1, c)
}

// Plane builds a planar face bounded by four corner vertices taken in
// order, straight edges between consecutive corners (builder::plane,
// specialized from truck-modeling's arbitrary-wire form to the rectangle
// every scenario in this kernel actually needs).
func Plane(c0, c1, c2, c3 *brep.Vertex) (*brep.Face, error) {
	e0, err := Line(c0, c1)
	if err != nil {
		return nil, err
	}
	e1, err := Line(c1, c2)
	if err != nil {
		return nil, err
	}
	e2, err := Line(c2, c3)
	if err != nil {
		return nil, err
	}
	e3, err := Line(c3, c0)
	if err != nil {
		return nil, err
	}
	w, err := brep.TryNewWire([]*brep.Edge{e0, e1, e2, e3})
	if err != nil {
		return nil, err
	}
	origin := c0.Point()
	u := c1.Point().Sub(origin)
	v := c3.Point().Sub(origin)
	surface := geometry.NewPlane(origin, u, v, 0, 1, 0, 1)
	return brep.NewFace([]*brep.Wire{w}, surface)
}

// Tsweep lifts any topological element along d, dispatching on its
// concrete type the way truck-modeling's builder::tsweep dispatches
// through the Sweep trait (spec.md §4.M).
func Tsweep(shape interface{}, d geomath.Point3) (interface{}, error) {
	switch s := shape.(type) {
	case *brep.Vertex:
		return TSweepVertex(s, d)
	case *brep.Edge:
		return TSweepEdge(s, d)
	case *brep.Wire:
		return TSweepWire(s, d)
	case *brep.Face:
		return TSweepFace(s, d)
	case *brep.Shell:
		return TSweepShell(s, d)
	default:
		return nil, unsupportedShape("tsweep", shape)
	}
}

// Rsweep lifts any topological element by revolving it theta radians
// about the axis through axisOrigin in direction axisDir, dispatching the
// same way Tsweep does (spec.md §4.M).
func Rsweep(shape interface{}, axisOrigin, axisDir geomath.Point3, theta float64) (interface{}, error) {
	switch s := shape.(type) {
	case *brep.Vertex:
		return RSweepVertex(s, axisOrigin, axisDir, theta)
	case *brep.Edge:
		return RSweepEdge(s, axisOrigin, axisDir, theta)
	case *brep.Wire:
		return RSweepWire(s, axisOrigin, axisDir, theta)
	case *brep.Face:
		return RSweepFace(s, axisOrigin, axisDir, theta)
	case *brep.Shell:
		return RSweepShell(s, axisOrigin, axisDir, theta)
	default:
		return nil, unsupportedShape("rsweep", shape)
	}
}

func unsupportedShape(op string, shape interface{}) error {
	return &kernelerr.UnsupportedGeometry{Variant: fmt.Sprintf("%T", shape), Op: op}
}
