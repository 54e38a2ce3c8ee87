package fillet

import (
	"math"
	"testing"

	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/kernelerr"
	"github.com/chazu/lignin/pkg/topology"
)

// dihedralShell builds two unit-square planar faces meeting at a right
// angle along a shared edge: A is the z=0 square over x,y in [0,1], B is
// the x=0 square over y,z in [0,1], and they share the edge from (0,0,0)
// to (0,1,0).
func dihedralShell(t *testing.T) (*brep.Shell, *brep.Edge) {
	t.Helper()
	v00 := brep.NewVertex(geomath.Point3{X: 0, Y: 0, Z: 0})
	v10 := brep.NewVertex(geomath.Point3{X: 1, Y: 0, Z: 0})
	v11 := brep.NewVertex(geomath.Point3{X: 1, Y: 1, Z: 0})
	v01 := brep.NewVertex(geomath.Point3{X: 0, Y: 1, Z: 0})
	v01z := brep.NewVertex(geomath.Point3{X: 0, Y: 1, Z: 1})
	v00z := brep.NewVertex(geomath.Point3{X: 0, Y: 0, Z: 1})

	line := func(a, b *brep.Vertex) *brep.Edge {
		e, err := brep.NewEdge(a, b, geometry.NewLine[geomath.Point3](a.Point(), b.Point().Sub(a.Point()), 0, 1))
		if err != nil {
			t.Fatalf("NewEdge: %v", err)
		}
		return e
	}

	shared := line(v00, v01) // front=v00, back=v01

	// Face A (z=0 plane), outward normal -Z: v00 -> v10 -> v11 -> v01 -> v00.
	eA0 := line(v00, v10)
	eA1 := line(v10, v11)
	eA2 := line(v11, v01)
	eA3 := shared.Inverse() // v01 -> v00
	wA, err := brep.TryNewWire([]*brep.Edge{eA0, eA1, eA2, eA3})
	if err != nil {
		t.Fatalf("TryNewWire A: %v", err)
	}
	planeA := geometry.NewPlane(v00.Point(), geomath.Point3{X: 1}, geomath.Point3{Y: 1}, 0, 1, 0, 1)
	faceA, err := brep.NewFace([]*brep.Wire{wA}, planeA)
	if err != nil {
		t.Fatalf("NewFace A: %v", err)
	}
	faceA.Invert() // plane normal is +Z; the solid x>0, z>0 lies above it

	// Face B (x=0 plane), outward normal -X: v00 -> v01 -> v01z -> v00z -> v00.
	eB1 := shared // v00 -> v01
	eB2 := line(v01, v01z)
	eB3 := line(v01z, v00z)
	eB4 := line(v00z, v00)
	wB, err := brep.TryNewWire([]*brep.Edge{eB1, eB2, eB3, eB4})
	if err != nil {
		t.Fatalf("TryNewWire B: %v", err)
	}
	planeB := geometry.NewPlane(v00.Point(), geomath.Point3{Y: 1}, geomath.Point3{Z: 1}, 0, 1, 0, 1)
	faceB, err := brep.NewFace([]*brep.Wire{wB}, planeB)
	if err != nil {
		t.Fatalf("NewFace B: %v", err)
	}
	faceB.Invert() // plane normal is +X; both faces now point out of x>0, z>0

	shell := brep.NewShell()
	shell.AddFace(faceA)
	shell.AddFace(faceB)
	return shell, shared
}

func TestFilletRoundProfileInsertsBlendFace(t *testing.T) {
	shell, edge := dihedralShell(t)
	radius := 0.2

	result, err := Fillet(shell, edge, FilletOptions{Radius: Constant(radius), Profile: Round, Division: 4})
	if err != nil {
		t.Fatalf("Fillet: %v", err)
	}
	if result.Len() != 3 {
		t.Fatalf("expected 3 faces after fillet (2 trimmed + 1 blend), got %d", result.Len())
	}
	if result.Condition() == topology.Disconnected {
		t.Fatalf("result shell must remain manifold")
	}

	// The blend face is the only one whose surface isn't one of the
	// original planes; its midpoint is the arc midpoint of a ball of
	// `radius` centered at (radius, y, radius), which sits radius*(sqrt2-1)
	// away from the shared edge's line (the x=z=0 axis), since the
	// dihedral is a right angle and both adjacent planes are exact.
	var blend *geometry.NurbsSurface
	for _, f := range result.Faces() {
		if ns, ok := f.Surface().(*geometry.NurbsSurface); ok {
			blend = ns
		}
	}
	if blend == nil {
		t.Fatalf("expected one face carrying the new NURBS blend surface")
	}
	u0, u1, v0, v1 := blend.Bounds()
	mid := blend.Evaluate((u0+u1)/2, (v0+v1)/2)
	dist := math.Hypot(mid.X, mid.Z)
	want := radius * (math.Sqrt2 - 1)
	if math.Abs(dist-want) > 0.05 {
		t.Fatalf("blend midpoint distance from shared edge axis = %v, want ~%v", dist, want)
	}
}

func TestFilletPreservesShellOnDegenerateEdge(t *testing.T) {
	shell, edge := dihedralShell(t)
	// A radius larger than half the edge's own length trips DegenerateEdge.
	_, err := Fillet(shell, edge, FilletOptions{Radius: Constant(10), Profile: Round})
	if err == nil {
		t.Fatalf("expected an error for an oversized radius on a unit edge")
	}
	var degenerate *kernelerr.DegenerateEdge
	if !errorsAs(err, &degenerate) {
		t.Fatalf("expected DegenerateEdge, got %T: %v", err, err)
	}
}

func TestFilletRejectsNonManifoldEdge(t *testing.T) {
	shell, _ := dihedralShell(t)
	stray := brep.NewVertex(geomath.Point3{X: 9, Y: 9, Z: 9})
	lone, err := brep.NewEdge(brep.NewVertex(geomath.Point3{}), stray, geometry.NewLine[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, 0, 1))
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	_, err = Fillet(shell, lone, FilletOptions{Radius: Constant(0.1)})
	if err == nil {
		t.Fatalf("expected NonManifoldEdge for an edge with no face occurrences")
	}
	var nonManifold *kernelerr.NonManifoldEdge
	if !errorsAs(err, &nonManifold) {
		t.Fatalf("expected NonManifoldEdge, got %T: %v", err, err)
	}
}

func TestFilletChamferProfileUsesFlatPanel(t *testing.T) {
	shell, edge := dihedralShell(t)
	result, err := Fillet(shell, edge, FilletOptions{Radius: Constant(0.2), Profile: Chamfer, Division: 3})
	if err != nil {
		t.Fatalf("Fillet: %v", err)
	}
	if result.Len() != 3 {
		t.Fatalf("expected 3 faces after chamfer, got %d", result.Len())
	}
}

func TestFilletRidgeProfileAddsApexRail(t *testing.T) {
	shell, edge := dihedralShell(t)
	result, err := Fillet(shell, edge, FilletOptions{Radius: Constant(0.2), Profile: Ridge, Division: 3})
	if err != nil {
		t.Fatalf("Fillet: %v", err)
	}
	// Ridge produces two panels sharing the apex rail, plus the two
	// trimmed original faces.
	if result.Len() != 4 {
		t.Fatalf("expected 4 faces after ridge fillet (2 trimmed + 2 ridge panels), got %d", result.Len())
	}
}

func TestFilletVariableRadiusVariesAlongChain(t *testing.T) {
	shell, edge := dihedralShell(t)
	profile := Variable(func(tp float64) float64 { return 0.05 + 0.1*tp })
	_, err := Fillet(shell, edge, FilletOptions{Radius: profile, Profile: Round, Division: 6})
	if err != nil {
		t.Fatalf("Fillet with variable radius: %v", err)
	}
}

func errorsAs[E error](err error, target *E) bool {
	for err != nil {
		if e, ok := err.(E); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func TestClampedUniformKnotsProducesClampedEnds(t *testing.T) {
	kv, err := clampedUniformKnots(1, 5, 0, 1)
	if err != nil {
		t.Fatalf("clampedUniformKnots: %v", err)
	}
	knots := kv.Slice()
	if knots[0] != 0 || knots[1] != 0 {
		t.Fatalf("expected clamped start, got %v", knots[:2])
	}
	n := len(knots)
	if knots[n-1] != 1 || knots[n-2] != 1 {
		t.Fatalf("expected clamped end, got %v", knots[n-2:])
	}
}

func TestConstantRadiusIsConstantAcrossParameter(t *testing.T) {
	c := Constant(0.4)
	for _, tp := range []float64{0, 0.3, 1} {
		if got := c.At(tp); math.Abs(got-0.4) > 1e-12 {
			t.Fatalf("Constant.At(%v) = %v, want 0.4", tp, got)
		}
	}
}
