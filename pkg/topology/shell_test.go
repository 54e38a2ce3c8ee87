package topology

import (
	"sync/atomic"
	"testing"

	"github.com/chazu/lignin/pkg/geomath"
)

type shellP = geomath.Point3
type shellC = string
type shellS = string

func triangleEdges(t *testing.T, a, b, c *Vertex[shellP]) (e1, e2, e3 *Edge[shellP, shellC]) {
	t.Helper()
	var err error
	e1, err = NewEdge(a, b, "line")
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	e2, err = NewEdge(b, c, "line")
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	e3, err = NewEdge(c, a, "line")
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	return
}

// pillowFaces builds two triangular faces over the same three vertices,
// sharing all three edges (one face traversing them forward, the other
// traversing the inverses in reverse order) — a degenerate zero-volume
// "pillow" solid whose combinatorics are nonetheless closed and oriented.
func pillowFaces(t *testing.T, a, b, c *Vertex[shellP]) (f1, f2 *Face[shellP, shellC, shellS]) {
	t.Helper()
	e1, e2, e3 := triangleEdges(t, a, b, c)

	w1, err := TryNewWire([]*Edge[shellP, shellC]{e1, e2, e3})
	if err != nil {
		t.Fatalf("TryNewWire w1: %v", err)
	}
	f1, err = NewFace([]*Wire[shellP, shellC]{w1}, "plane")
	if err != nil {
		t.Fatalf("NewFace f1: %v", err)
	}

	w2, err := TryNewWire([]*Edge[shellP, shellC]{e3.Inverse(), e2.Inverse(), e1.Inverse()})
	if err != nil {
		t.Fatalf("TryNewWire w2: %v", err)
	}
	f2, err = NewFace([]*Wire[shellP, shellC]{w2}, "plane")
	if err != nil {
		t.Fatalf("NewFace f2: %v", err)
	}
	return f1, f2
}

func TestShellConditionSingleFaceIsTriviallyOriented(t *testing.T) {
	a := NewVertex[shellP](geomath.Point3{X: 0})
	b := NewVertex[shellP](geomath.Point3{X: 1})
	c := NewVertex[shellP](geomath.Point3{X: 0, Y: 1})
	e1, e2, e3 := triangleEdges(t, a, b, c)
	w, _ := TryNewWire([]*Edge[shellP, shellC]{e1, e2, e3})
	f, _ := NewFace([]*Wire[shellP, shellC]{w}, "plane")
	sh := ShellOf([]*Face[shellP, shellC, shellS]{f})
	if got := sh.Condition(); got != Oriented {
		t.Errorf("Condition() = %v, want %v", got, Oriented)
	}
}

func TestShellConditionOpenInconsistent(t *testing.T) {
	a := NewVertex[shellP](geomath.Point3{X: 0})
	b := NewVertex[shellP](geomath.Point3{X: 1})
	c := NewVertex[shellP](geomath.Point3{X: 0, Y: 1})
	d := NewVertex[shellP](geomath.Point3{X: 1, Y: 1})

	e1, err := NewEdge(a, b, "line")
	if err != nil {
		t.Fatalf("NewEdge e1: %v", err)
	}
	e2, err := NewEdge(b, c, "line")
	if err != nil {
		t.Fatalf("NewEdge e2: %v", err)
	}
	e3, err := NewEdge(c, a, "line")
	if err != nil {
		t.Fatalf("NewEdge e3: %v", err)
	}
	w1, _ := TryNewWire([]*Edge[shellP, shellC]{e1, e2, e3})
	f1, _ := NewFace([]*Wire[shellP, shellC]{w1}, "plane")

	e4, err := NewEdge(b, d, "line")
	if err != nil {
		t.Fatalf("NewEdge e4: %v", err)
	}
	e5, err := NewEdge(d, a, "line")
	if err != nil {
		t.Fatalf("NewEdge e5: %v", err)
	}
	// f2 reuses e1 in the SAME orientation as f1, which a consistently
	// oriented shell never does for a shared edge.
	w2, _ := TryNewWire([]*Edge[shellP, shellC]{e1, e4, e5})
	f2, _ := NewFace([]*Wire[shellP, shellC]{w2}, "plane")

	sh := ShellOf([]*Face[shellP, shellC, shellS]{f1, f2})
	if got := sh.Condition(); got != Open {
		t.Errorf("Condition() = %v, want %v", got, Open)
	}
}

func TestShellConditionClosedButNotOriented(t *testing.T) {
	a := NewVertex[shellP](geomath.Point3{X: 0})
	b := NewVertex[shellP](geomath.Point3{X: 1})
	c := NewVertex[shellP](geomath.Point3{X: 0, Y: 1})
	e1, e2, e3 := triangleEdges(t, a, b, c)
	w, _ := TryNewWire([]*Edge[shellP, shellC]{e1, e2, e3})
	f1, _ := NewFace([]*Wire[shellP, shellC]{w}, "plane")
	// f2 duplicates f1's boundary exactly (same orientation on every
	// shared edge), which is closed but not consistently oriented.
	w2, _ := TryNewWire([]*Edge[shellP, shellC]{e1, e2, e3})
	f2, _ := NewFace([]*Wire[shellP, shellC]{w2}, "plane")

	sh := ShellOf([]*Face[shellP, shellC, shellS]{f1, f2})
	if got := sh.Condition(); got != ClosedButNotOriented {
		t.Errorf("Condition() = %v, want %v", got, ClosedButNotOriented)
	}
}

func TestShellConditionRegularPillow(t *testing.T) {
	a := NewVertex[shellP](geomath.Point3{X: 0})
	b := NewVertex[shellP](geomath.Point3{X: 1})
	c := NewVertex[shellP](geomath.Point3{X: 0, Y: 1})
	f1, f2 := pillowFaces(t, a, b, c)
	sh := ShellOf([]*Face[shellP, shellC, shellS]{f1, f2})

	if got := sh.Condition(); got != Regular {
		t.Errorf("Condition() = %v, want %v", got, Regular)
	}
	if len(sh.SingularVertices()) != 0 {
		t.Errorf("SingularVertices() = %d, want 0", len(sh.SingularVertices()))
	}
}

func TestShellSingularVertexAcrossTwoPillowsSharingAVertex(t *testing.T) {
	x := NewVertex[shellP](geomath.Point3{X: 0})
	b := NewVertex[shellP](geomath.Point3{X: 1})
	c := NewVertex[shellP](geomath.Point3{X: 0, Y: 1})
	d := NewVertex[shellP](geomath.Point3{X: -1})
	e := NewVertex[shellP](geomath.Point3{X: 0, Y: -1})

	f1, f2 := pillowFaces(t, x, b, c)
	f3, f4 := pillowFaces(t, x, d, e)

	sh := ShellOf([]*Face[shellP, shellC, shellS]{f1, f2, f3, f4})
	singular := sh.SingularVertices()
	if len(singular) != 1 {
		t.Fatalf("SingularVertices() len = %d, want 1", len(singular))
	}
	if !singular[0].Same(x) {
		t.Error("the singular vertex should be the one shared between both pillows")
	}
	// closed and oriented, but singular — so not Regular.
	if got := sh.Condition(); got != Oriented {
		t.Errorf("Condition() = %v, want %v", got, Oriented)
	}
}

func TestShellFaceIterPar(t *testing.T) {
	a := NewVertex[shellP](geomath.Point3{X: 0})
	b := NewVertex[shellP](geomath.Point3{X: 1})
	c := NewVertex[shellP](geomath.Point3{X: 0, Y: 1})
	f1, f2 := pillowFaces(t, a, b, c)
	sh := ShellOf([]*Face[shellP, shellC, shellS]{f1, f2})

	var count atomic.Int32
	sh.FaceIterPar(func(f *Face[shellP, shellC, shellS]) {
		count.Add(1)
	})
	if count.Load() != 2 {
		t.Errorf("FaceIterPar visited %d faces, want 2", count.Load())
	}
}

func TestShellExtractBoundaries(t *testing.T) {
	a := NewVertex[shellP](geomath.Point3{X: 0})
	b := NewVertex[shellP](geomath.Point3{X: 1})
	c := NewVertex[shellP](geomath.Point3{X: 0, Y: 1})
	e1, e2, e3 := triangleEdges(t, a, b, c)
	w, _ := TryNewWire([]*Edge[shellP, shellC]{e1, e2, e3})
	f, _ := NewFace([]*Wire[shellP, shellC]{w}, "plane")
	sh := ShellOf([]*Face[shellP, shellC, shellS]{f})

	boundaries := sh.ExtractBoundaries()
	if len(boundaries) != 1 {
		t.Fatalf("ExtractBoundaries() len = %d, want 1", len(boundaries))
	}
	if !boundaries[0].Closed() {
		t.Error("single triangular face's boundary should extract as one closed wire")
	}
}
