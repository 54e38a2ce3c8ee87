package geometry

import (
	"math"
	"testing"

	"github.com/chazu/lignin/pkg/geomath"
)

func TestLineEvaluateAndDerivative(t *testing.T) {
	l := NewLine[geomath.Point3](geomath.Point3{X: 1, Y: 2, Z: 3}, geomath.Point3{X: 1, Y: 0, Z: 0}, 0, 5)
	if got := l.Evaluate(2); got.Dist(geomath.Point3{X: 3, Y: 2, Z: 3}) > 1e-9 {
		t.Errorf("Evaluate(2) = %v, want {3 2 3}", got)
	}
	d1, err := l.Derivative(0, 1)
	if err != nil {
		t.Fatalf("Derivative(order=1): %v", err)
	}
	if d1.Dist(geomath.Point3{X: 1}) > 1e-9 {
		t.Errorf("Derivative(order=1) = %v, want {1 0 0}", d1)
	}
	d2, err := l.Derivative(0, 2)
	if err != nil {
		t.Fatalf("Derivative(order=2): %v", err)
	}
	if d2.Dist(geomath.Point3{}) > 1e-9 {
		t.Errorf("Derivative(order=2) = %v, want zero (a line has no curvature)", d2)
	}
}

func TestLineSearchNearestProjectsOntoLine(t *testing.T) {
	l := NewLine[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, 0, 10)
	s, warn := l.SearchNearest(geomath.Point3{X: 4, Y: 3}, nil)
	if warn != nil {
		t.Fatalf("SearchNearest warned: %v", warn)
	}
	if math.Abs(s-4) > 1e-6 {
		t.Errorf("SearchNearest = %v, want 4", s)
	}
}

func TestUnitCircleEvaluateAtQuadrants(t *testing.T) {
	c := NewUnitCircle[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, 0, 2*math.Pi)
	cases := []struct {
		t    float64
		want geomath.Point3
	}{
		{0, geomath.Point3{X: 1}},
		{math.Pi / 2, geomath.Point3{Y: 1}},
		{math.Pi, geomath.Point3{X: -1}},
		{3 * math.Pi / 2, geomath.Point3{Y: -1}},
	}
	for _, c2 := range cases {
		if got := c.Evaluate(c2.t); got.Dist(c2.want) > 1e-9 {
			t.Errorf("Evaluate(%v) = %v, want %v", c2.t, got, c2.want)
		}
	}
}

// TestUnitCircleDerivativeIsTangentAndCentripetal checks that the unit
// circle's first derivative is tangent (orthogonal to the radius) and its
// second derivative points back at the center with unit magnitude, the
// defining property of uniform circular motion.
func TestUnitCircleDerivativeIsTangentAndCentripetal(t *testing.T) {
	c := NewUnitCircle[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, 0, 2*math.Pi)
	at := math.Pi / 3
	p := c.Evaluate(at)
	d1, err := c.Derivative(at, 1)
	if err != nil {
		t.Fatalf("Derivative(order=1): %v", err)
	}
	if math.Abs(p.Dot(d1)) > 1e-9 {
		t.Errorf("radius . tangent = %v, want 0", p.Dot(d1))
	}
	d2, err := c.Derivative(at, 2)
	if err != nil {
		t.Fatalf("Derivative(order=2): %v", err)
	}
	if d2.Add(p).Norm() > 1e-9 {
		t.Errorf("Derivative(order=2) = %v, want %v (centripetal)", d2, p.Scale(-1))
	}
}

func TestUnitCircleDerivativeOrderThreeIsRejected(t *testing.T) {
	c := NewUnitCircle[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, 0, 2*math.Pi)
	if _, err := c.Derivative(0, 3); err == nil {
		t.Fatal("expected an error for a third derivative")
	}
}

func TestUnitParabolaEvaluate(t *testing.T) {
	p := NewUnitParabola[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, -2, 2)
	if got := p.Evaluate(2); got.Dist(geomath.Point3{X: 2, Y: 4}) > 1e-9 {
		t.Errorf("Evaluate(2) = %v, want {2 4 0}", got)
	}
}

func TestUnitHyperbolaSatisfiesHyperbolicIdentity(t *testing.T) {
	h := NewUnitHyperbola[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, -1, 1)
	for _, s := range []float64{-0.8, 0, 0.5} {
		p := h.Evaluate(s)
		if diff := p.X*p.X - p.Y*p.Y - 1; math.Abs(diff) > 1e-9 {
			t.Errorf("Evaluate(%v) = %v, want cosh^2 - sinh^2 = 1 (got %v)", s, p, diff)
		}
	}
}

func TestEllipticCurveBoundsMatchesConstructorRange(t *testing.T) {
	c := NewUnitCircle[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, math.Pi/4, math.Pi)
	t0, t1 := c.Bounds()
	if t0 != math.Pi/4 || t1 != math.Pi {
		t.Errorf("Bounds() = (%v, %v), want (%v, %v)", t0, t1, math.Pi/4, math.Pi)
	}
}
