package geometry

import (
	"testing"

	"github.com/chazu/lignin/pkg/geomath"
)

func TestNewBSplineCurveRejectsMismatchedControlPointCount(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 0, 1, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	if _, err := NewBSplineCurve[geomath.Point3](2, knots, []geomath.Point3{{}, {X: 1}}); err == nil {
		t.Fatal("expected an error for a control point count that disagrees with the knot vector")
	}
}

func TestNewBSplineCurveRejectsDegreeZero(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	if _, err := NewBSplineCurve[geomath.Point3](0, knots, []geomath.Point3{{}, {X: 1}}); err == nil {
		t.Fatal("expected an error for degree 0")
	}
}

// TestBSplineCurveLinearDegreeOneIsExact checks de Boor evaluation against
// straight-line interpolation for a degree-1 curve, where both must agree
// exactly (a degree-1 B-spline is piecewise linear by construction).
func TestBSplineCurveLinearDegreeOneIsExact(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 1, 2, 2})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	ctrl := []geomath.Point3{{X: 0}, {X: 1, Y: 2}, {X: 2}}
	c, err := NewBSplineCurve[geomath.Point3](1, knots, ctrl)
	if err != nil {
		t.Fatalf("NewBSplineCurve: %v", err)
	}
	want := ctrl[0].Lerp(ctrl[1], 0.5)
	got := c.Evaluate(0.5)
	if want.Dist(got) > 1e-9 {
		t.Errorf("Evaluate(0.5) = %v, want %v", got, want)
	}
}

func TestBSplineCurveEvaluateAtKnotEndpointsHitsControlPoints(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 0, 1, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	ctrl := []geomath.Point3{{X: 0}, {X: 1, Y: 1}, {X: 2}}
	c, err := NewBSplineCurve[geomath.Point3](2, knots, ctrl)
	if err != nil {
		t.Fatalf("NewBSplineCurve: %v", err)
	}
	if got := c.Evaluate(0); got.Dist(ctrl[0]) > 1e-9 {
		t.Errorf("Evaluate(0) = %v, want %v", got, ctrl[0])
	}
	if got := c.Evaluate(1); got.Dist(ctrl[2]) > 1e-9 {
		t.Errorf("Evaluate(1) = %v, want %v", got, ctrl[2])
	}
}

// TestBSplineCurveDerivativeMatchesCentralDifference checks the analytic
// de Boor derivative against a central-difference estimate, for a curve
// with non-trivial curvature.
func TestBSplineCurveDerivativeMatchesCentralDifference(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 0, 1, 2, 2, 2})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	ctrl := []geomath.Point3{{X: 0}, {X: 1, Y: 1}, {X: 2, Y: -1}, {X: 3}}
	c, err := NewBSplineCurve[geomath.Point3](2, knots, ctrl)
	if err != nil {
		t.Fatalf("NewBSplineCurve: %v", err)
	}
	const h = 1e-5
	for _, s := range []float64{0.3, 1.0, 1.7} {
		d1, err := c.Derivative(s, 1)
		if err != nil {
			t.Fatalf("Derivative: %v", err)
		}
		central := c.Evaluate(s + h).Sub(c.Evaluate(s - h)).Scale(1 / (2 * h))
		if d1.Dist(central) > 1e-4 {
			t.Errorf("Derivative(%v, 1) = %v, want ~%v", s, d1, central)
		}
	}
}

func TestBSplineCurveDerivativeOrderTwoOfDegreeOneIsRejected(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	ctrl := []geomath.Point3{{X: 0}, {X: 1}}
	c, err := NewBSplineCurve[geomath.Point3](1, knots, ctrl)
	if err != nil {
		t.Fatalf("NewBSplineCurve: %v", err)
	}
	if _, err := c.Derivative(0.5, 2); err == nil {
		t.Fatal("expected an error differentiating a degree-1 curve twice")
	}
}

func TestBSplineCurveSearchNearestRecoversControlPoint(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 0, 1, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	ctrl := []geomath.Point3{{X: 0}, {X: 1, Y: 1}, {X: 2}}
	c, err := NewBSplineCurve[geomath.Point3](2, knots, ctrl)
	if err != nil {
		t.Fatalf("NewBSplineCurve: %v", err)
	}
	target := c.Evaluate(0.7)
	s, warn := c.SearchNearest(target, nil)
	if warn != nil {
		t.Fatalf("SearchNearest warned: %v", warn)
	}
	if got := c.Evaluate(s); got.Dist(target) > 1e-6 {
		t.Errorf("SearchNearest found t=%v, Evaluate(t)=%v, want %v", s, got, target)
	}
}
