package modeling

import (
	"math"
	"testing"

	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
)

var (
	axisOrigin = geomath.Point3{X: 0, Y: 0, Z: 0}
	axisDir    = geomath.Point3{X: 0, Y: 0, Z: 1}
)

func TestClampAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{math.Pi, math.Pi},
		{3 * math.Pi, 2 * math.Pi},
		{-3 * math.Pi, -2 * math.Pi},
	}
	for _, c := range cases {
		if got := clampAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("clampAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRSweepVertexPartialTurnIsSingleEdgeWire(t *testing.T) {
	v := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 0})
	w, err := RSweepVertex(v, axisOrigin, axisDir, math.Pi/2)
	if err != nil {
		t.Fatalf("RSweepVertex: %v", err)
	}
	if w.Len() != 1 {
		t.Fatalf("partial-turn wire should have 1 edge, got %d", w.Len())
	}
	if !w.FrontVertex().Same(v) {
		t.Fatalf("RSweepVertex must preserve the base vertex's identity")
	}
}

func TestRSweepVertexFullTurnIsClosedTwoEdgeWire(t *testing.T) {
	v := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 0})
	w, err := RSweepVertex(v, axisOrigin, axisDir, 2*math.Pi)
	if err != nil {
		t.Fatalf("RSweepVertex: %v", err)
	}
	if w.Len() != 2 {
		t.Fatalf("full-turn wire should have 2 edges (split at the seam), got %d", w.Len())
	}
	if !w.Closed() {
		t.Fatalf("full-turn wire must be closed")
	}
	if !w.FrontVertex().Same(v) || !w.BackVertex().Same(v) {
		t.Fatalf("full-turn wire must weld the base vertex as both its front and back")
	}
}

func TestRSweepVertexOnAxisIsDegenerate(t *testing.T) {
	v := brep.NewVertex(geomath.Point3{X: 0, Y: 0, Z: 0})
	w, err := RSweepVertex(v, axisOrigin, axisDir, math.Pi)
	if err != nil {
		t.Fatalf("RSweepVertex: %v", err)
	}
	if got := w.BackVertex().Point(); got != (geomath.Point3{X: 0, Y: 0, Z: 0}) {
		t.Fatalf("a point on the rotation axis must not move, got %v", got)
	}
}

func TestRSweepEdgePartialTurnFaceIsClosed(t *testing.T) {
	v0 := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 0})
	v1 := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 1})
	line := geometry.NewLine[geomath.Point3](v0.Point(), v1.Point().Sub(v0.Point()), 0, 1)
	e, err := brep.NewEdge(v0, v1, line)
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	f, err := RSweepEdge(e, axisOrigin, axisDir, math.Pi/2)
	if err != nil {
		t.Fatalf("RSweepEdge: %v", err)
	}
	outer := f.OuterBoundary()
	if !outer.Closed() {
		t.Fatalf("revolved face boundary must be closed")
	}
	if outer.Len() != 4 {
		t.Fatalf("partial-turn revolved quad should have 4 boundary edges, got %d", outer.Len())
	}
}

func TestRSweepEdgeFullTurnReusesBaseEdge(t *testing.T) {
	v0 := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 0})
	v1 := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 1})
	line := geometry.NewLine[geomath.Point3](v0.Point(), v1.Point().Sub(v0.Point()), 0, 1)
	e, err := brep.NewEdge(v0, v1, line)
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	f, err := RSweepEdge(e, axisOrigin, axisDir, 2*math.Pi)
	if err != nil {
		t.Fatalf("RSweepEdge: %v", err)
	}
	outer := f.OuterBoundary()
	if !outer.Closed() {
		t.Fatalf("full-turn revolved face boundary must be closed")
	}
	found := false
	for _, be := range outer.Edges() {
		if be.Same(e) {
			found = true
		}
	}
	if !found {
		t.Fatalf("full-turn revolution should reuse the base edge's identity as one of its meridians")
	}
}

func TestRSweepFaceFullTurnProducesSolid(t *testing.T) {
	// a face entirely off the axis, so its revolution sweeps a genuine
	// volume instead of degenerating through the axis.
	v00 := brep.NewVertex(geomath.Point3{X: 2, Y: 0, Z: 0})
	v10 := brep.NewVertex(geomath.Point3{X: 3, Y: 0, Z: 0})
	v11 := brep.NewVertex(geomath.Point3{X: 3, Y: 0, Z: 1})
	v01 := brep.NewVertex(geomath.Point3{X: 2, Y: 0, Z: 1})
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
	plane := geometry.NewPlane(v00.Point(), geomath.Point3{X: 1}, geomath.Point3{Z: 1}, 0, 1, 0, 1)
	ring, err := brep.NewFace([]*brep.Wire{w}, plane)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}

	solid, err := RSweepFace(ring, axisOrigin, axisDir, 2*math.Pi)
	if err != nil {
		t.Fatalf("RSweepFace: %v", err)
	}
	if len(solid.Boundary()) != 1 {
		t.Fatalf("expected single boundary shell")
	}
}
