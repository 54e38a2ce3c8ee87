package modeling

import (
	"testing"

	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
)

func squareFace(t *testing.T) *brep.Face {
	t.Helper()
	v00 := brep.NewVertex(geomath.Point3{X: 0, Y: 0, Z: 0})
	v10 := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 0})
	v11 := brep.NewVertex(geomath.Point3{X: 1, Y: 1, Z: 0})
	v01 := brep.NewVertex(geomath.Point3{X: 0, Y: 1, Z: 0})

	line := func(a, b *brep.Vertex) *brep.Edge {
		e, err := brep.NewEdge(a, b, geometry.NewLine[geomath.Point3](a.Point(), b.Point().Sub(a.Point()), 0, 1))
		if err != nil {
			t.Fatalf("NewEdge: %v", err)
		}
		return e
	}
	e0, e1, e2, e3 := line(v00, v10), line(v10, v11), line(v11, v01), line(v01, v00)
	w, err := brep.TryNewWire([]*brep.Edge{e0, e1, e2, e3})
	if err != nil {
		t.Fatalf("TryNewWire: %v", err)
	}
	plane := geometry.NewPlane(v00.Point(), geomath.Point3{X: 1}, geomath.Point3{Y: 1}, 0, 1, 0, 1)
	f, err := brep.NewFace([]*brep.Wire{w}, plane)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	return f
}

func TestTSweepVertexProducesEdgeAlongDirection(t *testing.T) {
	v := brep.NewVertex(geomath.Point3{X: 0, Y: 0, Z: 0})
	d := geomath.Point3{Z: 2}
	e, err := TSweepVertex(v, d)
	if err != nil {
		t.Fatalf("TSweepVertex: %v", err)
	}
	if !e.Front().Same(v) {
		t.Fatalf("TSweepVertex must preserve the base vertex's identity as the edge's front")
	}
	if got := e.Back().Point(); got != (geomath.Point3{Z: 2}) {
		t.Fatalf("edge back vertex = %v, want {0 0 2}", got)
	}
}

func TestTSweepEdgeWireIsClosed(t *testing.T) {
	v0 := brep.NewVertex(geomath.Point3{X: 0, Y: 0, Z: 0})
	v1 := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 0})
	line := geometry.NewLine[geomath.Point3](v0.Point(), v1.Point().Sub(v0.Point()), 0, 1)
	e, err := brep.NewEdge(v0, v1, line)
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	f, err := TSweepEdge(e, geomath.Point3{Z: 1})
	if err != nil {
		t.Fatalf("TSweepEdge: %v", err)
	}
	outer := f.OuterBoundary()
	if !outer.Closed() {
		t.Fatalf("swept face boundary must be closed")
	}
	if outer.Len() != 4 {
		t.Fatalf("swept quad face should have 4 boundary edges, got %d", outer.Len())
	}
}

func TestTSweepFacePreservesBaseFaceIdentity(t *testing.T) {
	f := squareFace(t)
	solid, err := TSweepFace(f, geomath.Point3{Z: 1})
	if err != nil {
		t.Fatalf("TSweepFace: %v", err)
	}
	shells := solid.Boundary()
	if len(shells) != 1 {
		t.Fatalf("expected a single boundary shell, got %d", len(shells))
	}
	found := false
	for _, face := range shells[0].Faces() {
		if face.Same(f) {
			found = true
		}
	}
	if !found {
		t.Fatalf("swept solid must reuse the base face's identity as its bottom cap")
	}
	if shells[0].Condition().String() != "regular" {
		t.Fatalf("swept cube shell condition = %v, want regular", shells[0].Condition())
	}
}

func TestTSweepWireSharesVerticalEdgesAcrossConsecutiveEdges(t *testing.T) {
	v0 := brep.NewVertex(geomath.Point3{X: 0, Y: 0, Z: 0})
	v1 := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 0})
	v2 := brep.NewVertex(geomath.Point3{X: 1, Y: 1, Z: 0})
	line := func(a, b *brep.Vertex) *brep.Edge {
		e, err := brep.NewEdge(a, b, geometry.NewLine[geomath.Point3](a.Point(), b.Point().Sub(a.Point()), 0, 1))
		if err != nil {
			t.Fatalf("NewEdge: %v", err)
		}
		return e
	}
	e0, e1 := line(v0, v1), line(v1, v2)
	w, err := brep.TryNewWire([]*brep.Edge{e0, e1})
	if err != nil {
		t.Fatalf("TryNewWire: %v", err)
	}
	shell, err := TSweepWire(w, geomath.Point3{Z: 1})
	if err != nil {
		t.Fatalf("TSweepWire: %v", err)
	}
	if len(shell.Faces()) != 2 {
		t.Fatalf("expected 2 side faces, got %d", len(shell.Faces()))
	}
}
