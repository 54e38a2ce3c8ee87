package modeling

import (
	"testing"

	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
)

func TestCutFaceByEdgeSplitsSquareInTwo(t *testing.T) {
	f := squareFace(t)
	outer := f.OuterBoundary()
	vs := outer.Vertices()
	front, back := vs[0], vs[2] // opposite corners of the square

	cut := geometry.NewLine[geomath.Point3](front.Point(), back.Point().Sub(front.Point()), 0, 1)
	cutEdge, faces, err := CutFaceByEdge(f, front, back, cut)
	if err != nil {
		t.Fatalf("CutFaceByEdge: %v", err)
	}
	if !cutEdge.Front().Same(front) || !cutEdge.Back().Same(back) {
		t.Fatalf("cut edge must run between the requested vertices")
	}
	for i, face := range faces {
		if !face.OuterBoundary().Closed() {
			t.Fatalf("result face %d boundary must be closed", i)
		}
	}
}

func TestCutFaceByEdgeRejectsUnknownVertex(t *testing.T) {
	f := squareFace(t)
	stray := brep.NewVertex(geomath.Point3{X: 5, Y: 5, Z: 5})
	outer := f.OuterBoundary()
	known := outer.Vertices()[0]
	cut := geometry.NewLine[geomath.Point3](known.Point(), stray.Point().Sub(known.Point()), 0, 1)
	if _, _, err := CutFaceByEdge(f, known, stray, cut); err == nil {
		t.Fatalf("expected an error cutting to a vertex not on the face boundary")
	}
}

func TestAddBoundaryInsertsHole(t *testing.T) {
	f := squareFace(t)
	h00 := brep.NewVertex(geomath.Point3{X: 0.25, Y: 0.25, Z: 0})
	h10 := brep.NewVertex(geomath.Point3{X: 0.75, Y: 0.25, Z: 0})
	h11 := brep.NewVertex(geomath.Point3{X: 0.75, Y: 0.75, Z: 0})
	h01 := brep.NewVertex(geomath.Point3{X: 0.25, Y: 0.75, Z: 0})
	line := func(a, b *brep.Vertex) *brep.Edge {
		e, err := brep.NewEdge(a, b, geometry.NewLine[geomath.Point3](a.Point(), b.Point().Sub(a.Point()), 0, 1))
		if err != nil {
			t.Fatalf("NewEdge: %v", err)
		}
		return e
	}
	e0, e1, e2, e3 := line(h00, h10), line(h10, h11), line(h11, h01), line(h01, h00)
	hole, err := brep.TryNewWire([]*brep.Edge{e0, e1, e2, e3})
	if err != nil {
		t.Fatalf("TryNewWire: %v", err)
	}
	if _, err := AddBoundary(f, hole); err != nil {
		t.Fatalf("AddBoundary: %v", err)
	}
	if len(f.HoleBoundaries()) != 1 {
		t.Fatalf("expected 1 hole boundary after AddBoundary, got %d", len(f.HoleBoundaries()))
	}
}

func TestTryWireHomotopyRejectsMismatchedEdgeCounts(t *testing.T) {
	v0 := brep.NewVertex(geomath.Point3{X: 0, Y: 0, Z: 0})
	v1 := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 0})
	e, err := brep.NewEdge(v0, v1, geometry.NewLine[geomath.Point3](v0.Point(), v1.Point().Sub(v0.Point()), 0, 1))
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	w0, err := brep.TryNewWire([]*brep.Edge{e})
	if err != nil {
		t.Fatalf("TryNewWire: %v", err)
	}

	w1 := squareFace(t).OuterBoundary()
	if _, err := TryWireHomotopy(w0, w1); err == nil {
		t.Fatalf("expected MismatchedStructure error for differing edge counts")
	}
}

func TestTryWireHomotopyBuildsOneFacePerEdge(t *testing.T) {
	a0 := brep.NewVertex(geomath.Point3{X: 0, Y: 0, Z: 0})
	a1 := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 0})
	b0 := brep.NewVertex(geomath.Point3{X: 0, Y: 0, Z: 1})
	b1 := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 1})

	ea, err := brep.NewEdge(a0, a1, geometry.NewLine[geomath.Point3](a0.Point(), a1.Point().Sub(a0.Point()), 0, 1))
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	eb, err := brep.NewEdge(b0, b1, geometry.NewLine[geomath.Point3](b0.Point(), b1.Point().Sub(b0.Point()), 0, 1))
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	wa, err := brep.TryNewWire([]*brep.Edge{ea})
	if err != nil {
		t.Fatalf("TryNewWire: %v", err)
	}
	wb, err := brep.TryNewWire([]*brep.Edge{eb})
	if err != nil {
		t.Fatalf("TryNewWire: %v", err)
	}

	shell, err := TryWireHomotopy(wa, wb)
	if err != nil {
		t.Fatalf("TryWireHomotopy: %v", err)
	}
	if len(shell.Faces()) != 1 {
		t.Fatalf("expected 1 ruled face for a single-edge wire pair, got %d", len(shell.Faces()))
	}
}
