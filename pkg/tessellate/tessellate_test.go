package tessellate

import (
	"math"
	"testing"

	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/polymesh"
)

// unitCubeShell builds the six-face closed unit cube (the same shape
// spec.md §8 scenario 1 sweeps into existence), directly as planar faces so
// this package's tests do not depend on pkg/modeling.
func unitCubeShell(t *testing.T) *brep.Shell {
	t.Helper()
	pt := func(x, y, z float64) geomath.Point3 { return geomath.Point3{X: x, Y: y, Z: z} }
	v := make(map[[3]int]*brep.Vertex)
	for _, x := range []int{0, 1} {
		for _, y := range []int{0, 1} {
			for _, z := range []int{0, 1} {
				v[[3]int{x, y, z}] = brep.NewVertex(pt(float64(x), float64(y), float64(z)))
			}
		}
	}
	edges := map[[2][3]int]*brep.Edge{}
	line := func(a, b [3]int) *brep.Edge {
		if e, ok := edges[[2][3]int{a, b}]; ok {
			return e
		}
		if e, ok := edges[[2][3]int{b, a}]; ok {
			return e.Inverse()
		}
		va, vb := v[a], v[b]
		e, err := brep.NewEdge(va, vb, geometry.NewLine[geomath.Point3](va.Point(), vb.Point().Sub(va.Point()), 0, 1))
		if err != nil {
			t.Fatalf("NewEdge: %v", err)
		}
		edges[[2][3]int{a, b}] = e
		return e
	}
	face := func(corners [4][3]int, origin, u, uAxisLen, vAxis geomath.Point3) *brep.Face {
		var es []*brep.Edge
		for i := 0; i < 4; i++ {
			es = append(es, line(corners[i], corners[(i+1)%4]))
		}
		w, err := brep.TryNewWire(es)
		if err != nil {
			t.Fatalf("TryNewWire: %v", err)
		}
		plane := geometry.NewPlane(origin, u, vAxis, 0, uAxisLen, 0, 1)
		f, err := brep.NewFace([]*brep.Wire{w}, plane)
		if err != nil {
			t.Fatalf("NewFace: %v", err)
		}
		return f
	}

	shell := brep.NewShell()
	shell.AddFace(face([4][3]int{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}, pt(0, 0, 0), pt(0, 1, 0), 1, pt(1, 0, 0)))
	shell.AddFace(face([4][3]int{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}, pt(0, 0, 1), pt(1, 0, 0), 1, pt(0, 1, 0)))
	shell.AddFace(face([4][3]int{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}, pt(0, 0, 0), pt(1, 0, 0), 1, pt(0, 0, 1)))
	shell.AddFace(face([4][3]int{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}, pt(0, 1, 0), pt(0, 0, 1), 1, pt(1, 0, 0)))
	shell.AddFace(face([4][3]int{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}, pt(0, 0, 0), pt(0, 0, 1), 1, pt(0, 1, 0)))
	shell.AddFace(face([4][3]int{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}, pt(1, 0, 0), pt(0, 1, 0), 1, pt(0, 0, 1)))
	return shell
}

func TestTessellateUnitCubeProducesTwelveTriangles(t *testing.T) {
	shell := unitCubeShell(t)
	mesh, err := Tessellate(shell, Options{Tolerance: 0.01})
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	tris := mesh.Triangles()
	if len(tris) != 12 {
		t.Fatalf("expected 12 triangles (2 per untrimmed rectangular face x 6), got %d", len(tris))
	}
	if math.Abs(math.Abs(mesh.Volume())-1) > 0.05 {
		t.Fatalf("expected |volume| ~1, got %v", mesh.Volume())
	}
}

func TestTessellateWeldsSharedEdges(t *testing.T) {
	shell := unitCubeShell(t)
	mesh, err := Tessellate(shell, Options{Tolerance: 0.01})
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if cond := mesh.Condition(); cond != polymesh.Closed {
		t.Fatalf("expected a closed mesh from a closed shell, got %v", cond)
	}
}

func TestTessellateProgressCallbackReachesFaceCount(t *testing.T) {
	shell := unitCubeShell(t)
	var calls int
	var lastCompleted, lastTotal int
	_, err := Tessellate(shell, Options{Tolerance: 0.05, Progress: func(completed, total int) {
		calls++
		lastCompleted, lastTotal = completed, total
	}})
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if calls != 6 {
		t.Fatalf("expected one progress call per face (6), got %d", calls)
	}
	if lastCompleted != lastTotal {
		t.Fatalf("expected the final callback to report completed == total, got %d/%d", lastCompleted, lastTotal)
	}
}

func TestSampleEdgeRespectsChordHeightTolerance(t *testing.T) {
	center := geomath.Point3{}
	radius := 1.0
	curve := geometry.NewLine[geomath.Point3](geomath.Point3{X: radius}, geomath.Point3{X: -2 * radius}, 0, 1)
	v0 := brep.NewVertex(curve.Evaluate(0))
	v1 := brep.NewVertex(curve.Evaluate(1))
	e, err := brep.NewEdge(v0, v1, curve)
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	_ = center
	samples := sampleEdge(e, 0.001)
	if len(samples) < 2 {
		t.Fatalf("expected at least 2 samples, got %d", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		mid := samples[i-1].p.Lerp(samples[i].p, 0.5)
		if chordHeight(samples[i-1].p, samples[i].p, mid) > 0.001+1e-9 {
			t.Fatalf("chord height exceeds tolerance between samples %d and %d", i-1, i)
		}
	}
}

func TestSplitmix64IsDeterministic(t *testing.T) {
	a := splitmix64(42)
	b := splitmix64(42)
	if a != b {
		t.Fatalf("splitmix64 must be a pure function of its input: got %v and %v", a, b)
	}
	if splitmix64(42) == splitmix64(43) {
		t.Fatalf("expected distinct tokens to produce distinct jitter")
	}
}
