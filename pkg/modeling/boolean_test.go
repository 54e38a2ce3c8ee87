package modeling

import (
	"testing"

	"github.com/chazu/lignin/pkg/geometry"
)

func TestPunchedCubeRejectsOversizedHole(t *testing.T) {
	_, err := PunchedCube(1, 0.5)
	if err == nil {
		t.Fatal("expected an error when holeRadius >= size/2")
	}
}

func TestPunchedCubeProducesClosedSolid(t *testing.T) {
	solid, err := PunchedCube(1, 0.2)
	if err != nil {
		t.Fatalf("PunchedCube: %v", err)
	}
	if len(solid.Boundary()) != 1 {
		t.Fatalf("expected a single-shell solid, got %d shells", len(solid.Boundary()))
	}

	faces := solid.Faces()
	if len(faces) != 7 {
		t.Fatalf("expected 7 faces (4 sides + 2 pierced caps + 1 cylindrical hole face), got %d", len(faces))
	}

	var pierced int
	var hasCylindricalFace bool
	for _, f := range faces {
		if len(f.HoleBoundaries()) > 0 {
			pierced++
		}
		if _, ok := f.Surface().(*geometry.RevolutedSurface); ok {
			hasCylindricalFace = true
		}
	}
	if pierced != 2 {
		t.Fatalf("expected exactly 2 pierced faces, got %d", pierced)
	}
	if !hasCylindricalFace {
		t.Fatal("expected one face over a RevolutedSurface for the cylindrical hole wall")
	}
}

func TestPunchedCubeRingEdgesAreIntersectionCurves(t *testing.T) {
	solid, err := PunchedCube(1, 0.2)
	if err != nil {
		t.Fatalf("PunchedCube: %v", err)
	}

	var ringEdgeCount int
	for _, f := range solid.Faces() {
		for _, hole := range f.HoleBoundaries() {
			for _, e := range hole.Edges() {
				if _, ok := e.Curve().(*geometry.IntersectionCurve); ok {
					ringEdgeCount++
				}
			}
		}
	}
	// Each pierced face's hole wire has 2 edges; 2 pierced faces => 4.
	if ringEdgeCount != 4 {
		t.Fatalf("expected 4 IntersectionCurve ring edges across both pierced faces, got %d", ringEdgeCount)
	}
}
