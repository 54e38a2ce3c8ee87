package modeling

import (
	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// CutFaceByEdge splits a face's outer boundary into two faces along a new
// edge whose front and back vertices already lie on that boundary
// (spec.md §4.M euler operation `cut_face_by_edge`). The cutting edge's
// curve must be included in the face's surface (checked via
// Surface.Inclusion); the new edge is returned alongside the two
// resulting faces, which replace f in the caller's shell.
func CutFaceByEdge(f *brep.Face, front, back *brep.Vertex, cut geometry.Curve) (*brep.Edge, [2]*brep.Face, error) {
	var zero [2]*brep.Face
	ok, err := f.Surface().Inclusion(cut)
	if err != nil {
		return nil, zero, err
	}
	if !ok {
		return nil, zero, &kernelerr.TopologyViolation{Reason: "cut_face_by_edge curve does not lie on the face's surface"}
	}

	outer := f.OuterBoundary()
	frontIdx, backIdx := -1, -1
	vertices := outer.Vertices()
	for i, v := range vertices {
		if v.Same(front) {
			frontIdx = i
		}
		if v.Same(back) {
			backIdx = i
		}
	}
	if frontIdx < 0 || backIdx < 0 || frontIdx == backIdx {
		return nil, zero, &kernelerr.TopologyViolation{Reason: "cut_face_by_edge endpoints must be distinct vertices already on the face's outer boundary"}
	}

	cutEdge, err := brep.NewEdge(front, back, cut)
	if err != nil {
		return nil, zero, err
	}

	edges := outer.Edges()
	arc := func(lo, hi int) []*brep.Edge {
		var out []*brep.Edge
		for i := lo; i != hi; i = (i + 1) % len(edges) {
			out = append(out, edges[i])
		}
		return out
	}

	side1 := append(arc(frontIdx, backIdx), cutEdge.Inverse())
	side2 := append(arc(backIdx, frontIdx), cutEdge)

	w1, err := brep.TryNewWire(side1)
	if err != nil {
		return nil, zero, err
	}
	w2, err := brep.TryNewWire(side2)
	if err != nil {
		return nil, zero, err
	}
	f1, err := brep.NewFace([]*brep.Wire{w1}, f.Surface())
	if err != nil {
		return nil, zero, err
	}
	f2, err := brep.NewFace([]*brep.Wire{w2}, f.Surface())
	if err != nil {
		return nil, zero, err
	}
	return cutEdge, [2]*brep.Face{f1, f2}, nil
}

// AddBoundary inserts a new hole wire into a face, returning the wire
// itself as the "newly inserted topological element" per spec.md §4.M's
// Euler-operation convention (wrapping Face.AddBoundary, which mutates f
// in place).
func AddBoundary(f *brep.Face, hole *brep.Wire) (*brep.Wire, error) {
	if err := f.AddBoundary(hole); err != nil {
		return nil, err
	}
	return hole, nil
}

// TryWireHomotopy interpolates two wires of equal edge count by a ruled
// surface between each corresponding pair of edges, producing the shell
// that homotopes w0 into w1 (spec.md §4.M `try_wire_homotopy`). Fails
// with MismatchedStructure when the wires have different edge counts.
func TryWireHomotopy(w0, w1 *brep.Wire) (*brep.Shell, error) {
	e0, e1 := w0.Edges(), w1.Edges()
	if len(e0) != len(e1) {
		return nil, &kernelerr.MismatchedStructure{CountA: len(e0), CountB: len(e1)}
	}

	shell := brep.NewShell()
	rungs := make(map[int]*brep.Edge, len(e0)+1)
	rung := func(i int) (*brep.Edge, error) {
		if i == len(e0) && w0.Closed() {
			i = 0
		}
		if r, ok := rungs[i]; ok {
			return r, nil
		}
		var v0, v1 *brep.Vertex
		if i < len(e0) {
			v0, v1 = e0[i].Front(), e1[i].Front()
		} else {
			// An open wire's closing rung joins the two back vertices.
			v0, v1 = e0[i-1].Back(), e1[i-1].Back()
		}
		line := geometry.NewLine[geomath.Point3](v0.Point(), v1.Point().Sub(v0.Point()), 0, 1)
		r, err := brep.NewEdge(v0, v1, line)
		if err != nil {
			return nil, err
		}
		rungs[i] = r
		return r, nil
	}

	for i := range e0 {
		left, err := rung(i)
		if err != nil {
			return nil, err
		}
		right, err := rung(i + 1)
		if err != nil {
			return nil, err
		}
		loop, err := brep.TryNewWire([]*brep.Edge{e0[i], right, e1[i].Inverse(), left.Inverse()})
		if err != nil {
			return nil, err
		}
		d := edgeFrontAt(e1, i).Point().Sub(edgeFrontAt(e0, i).Point())
		ruled := geometry.NewExtrudedSurface(e0[i].Curve(), d, 1)
		f, err := brep.NewFace([]*brep.Wire{loop}, ruled)
		if err != nil {
			return nil, err
		}
		shell.AddFace(f)
	}
	return shell, nil
}

func edgeFrontAt(edges []*brep.Edge, i int) *brep.Vertex { return edges[i%len(edges)].Front() }
