package topology

import (
	"testing"

	"github.com/chazu/lignin/pkg/geomath"
)

func TestNewEdgeRejectsSameVertex(t *testing.T) {
	v := NewVertex(geomath.Point3{X: 0})
	if _, err := NewEdge(v, v, "curve"); err == nil {
		t.Fatal("expected error constructing edge with identical front/back vertex")
	}
}

func TestEdgeOrientationRoundTrip(t *testing.T) {
	a := NewVertex(geomath.Point3{X: 0})
	b := NewVertex(geomath.Point3{X: 1})
	e, err := NewEdge(a, b, "curve")
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	if !a.Same(e.Front()) || !b.Same(e.Back()) {
		t.Fatal("fresh edge does not report constructor front/back")
	}

	inv := e.Inverse()
	if !inv.Same(e) {
		t.Error("Inverse() must share identity with the original edge")
	}
	if !inv.Front().Same(b) || !inv.Back().Same(a) {
		t.Error("Inverse() did not swap front/back")
	}
	if !e.Front().Same(a) {
		t.Error("Inverse() mutated the original handle's orientation")
	}
	if !e.AbsoluteFront().Same(inv.AbsoluteFront()) {
		t.Error("AbsoluteFront() must agree across orientations sharing identity")
	}

	e.Invert()
	if !e.Front().Same(b) {
		t.Error("Invert() did not flip orientation in place")
	}
}

func TestEdgeSharedCurve(t *testing.T) {
	a := NewVertex(geomath.Point3{X: 0})
	b := NewVertex(geomath.Point3{X: 1})
	e, _ := NewEdge(a, b, "curve-v1")
	inv := e.Inverse()
	inv.SetCurve("curve-v2")
	if e.Curve() != "curve-v2" {
		t.Error("SetCurve on an Inverse() handle did not propagate to the original")
	}
}

func TestEdgeTopologicalClone(t *testing.T) {
	a := NewVertex(geomath.Point3{X: 0})
	b := NewVertex(geomath.Point3{X: 1})
	e, _ := NewEdge(a, b, "curve")
	clone := e.TopologicalClone()
	if e.Same(clone) {
		t.Error("clone shares identity with original edge")
	}
	if clone.Front().Same(a) || clone.Back().Same(b) {
		t.Error("clone shares vertex identity with original edge")
	}
	if clone.Curve() != e.Curve() {
		t.Error("clone did not copy curve value")
	}
}
