package geometry

import (
	"math"
	"testing"

	"github.com/chazu/lignin/pkg/geomath"
)

// quarterArcRails builds two rail lines and constant outward normals
// positioned so arcFrame's ball center sits at the midpoint of the two
// offset centers and the rail-to-rail sweep is a quarter turn, mirroring
// the dihedral two-plane setup a fillet actually blends between.
func quarterArcRails() (rail0, rail1 Curve, normal0, normal1 func(float64) (geomath.Point3, error)) {
	rail0 = NewLine[geomath.Point3](geomath.Point3{Y: 1}, geomath.Point3{X: 1}, 0, 1)
	rail1 = NewLine[geomath.Point3](geomath.Point3{Z: 1}, geomath.Point3{X: 1}, 0, 1)
	normal0 = func(float64) (geomath.Point3, error) { return geomath.Point3{Y: 1}, nil }
	normal1 = func(float64) (geomath.Point3, error) { return geomath.Point3{Z: 1}, nil }
	return
}

func TestRbfSurfaceEvaluateAtVEndpointsMatchesRails(t *testing.T) {
	rail0, rail1, n0, n1 := quarterArcRails()
	s := NewRbfSurface(rail0, rail1, n0, n1, func(float64) float64 { return 1 }, 0, 1)
	for _, u := range []float64{0, 0.5, 1} {
		if got, want := s.Evaluate(u, 0), rail0.Evaluate(u); got.Dist(want) > 1e-9 {
			t.Errorf("Evaluate(%v, 0) = %v, want rail0(%v) = %v", u, got, u, want)
		}
		if got, want := s.Evaluate(u, 1), rail1.Evaluate(u); got.Dist(want) > 1e-9 {
			t.Errorf("Evaluate(%v, 1) = %v, want rail1(%v) = %v", u, got, u, want)
		}
	}
}

func TestRbfSurfaceBoundsIsUDomainByUnitV(t *testing.T) {
	rail0, rail1, n0, n1 := quarterArcRails()
	s := NewRbfSurface(rail0, rail1, n0, n1, func(float64) float64 { return 1 }, 0, 1)
	u0, u1, v0, v1 := s.Bounds()
	if u0 != 0 || u1 != 1 || v0 != 0 || v1 != 1 {
		t.Errorf("Bounds() = (%v,%v,%v,%v), want (0,1,0,1)", u0, u1, v0, v1)
	}
}

// TestRbfSurfaceHoldsConstantRadiusAcrossV recomputes the ball center the
// same way arcFrame does (average of each rail point offset outward by its
// face normal times the radius) and checks every sampled v stays on the
// sphere of that radius, the defining property of a rolling-ball blend.
func TestRbfSurfaceHoldsConstantRadiusAcrossV(t *testing.T) {
	rail0, rail1, n0, n1 := quarterArcRails()
	s := NewRbfSurface(rail0, rail1, n0, n1, func(float64) float64 { return 1 }, 0, 1)

	const u = 0.5
	p0, p1 := rail0.Evaluate(u), rail1.Evaluate(u)
	normal0, _ := n0(u)
	normal1, _ := n1(u)
	c0 := p0.Add(normal0.Scale(1))
	c1 := p1.Add(normal1.Scale(1))
	center := c0.Lerp(c1, 0.5)
	want := p0.Dist(center)

	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if got := s.Evaluate(u, v).Dist(center); math.Abs(got-want) > 1e-9 {
			t.Errorf("Evaluate(%v, %v) distance from ball center = %v, want %v", u, v, got, want)
		}
	}
}

func TestRbfSurfaceInvertRoundTrip(t *testing.T) {
	rail0, rail1, n0, n1 := quarterArcRails()
	s := NewRbfSurface(rail0, rail1, n0, n1, func(float64) float64 { return 1 }, 0, 1)
	for _, uv := range [][2]float64{{0.2, 0.5}, {0.7, 0.3}} {
		p := s.Evaluate(uv[0], uv[1])
		got, err := s.Invert(p, nil)
		if err != nil {
			t.Fatalf("Invert: %v", err)
		}
		if back := s.Evaluate(got.X, got.Y); back.Dist(p) > 1e-4 {
			t.Errorf("Invert round trip mismatch for uv=%v: Evaluate(Invert(p)) = %v, want %v", uv, back, p)
		}
	}
}

func TestRbfSurfaceDvMatchesCentralDifference(t *testing.T) {
	rail0, rail1, n0, n1 := quarterArcRails()
	s := NewRbfSurface(rail0, rail1, n0, n1, func(float64) float64 { return 1 }, 0, 1)
	const h = 1e-5
	u, v := 0.4, 0.5
	dv, err := s.Dv(u, v)
	if err != nil {
		t.Fatalf("Dv: %v", err)
	}
	central := s.Evaluate(u, v+h).Sub(s.Evaluate(u, v-h)).Scale(1 / (2 * h))
	if dv.Dist(central) > 1e-3 {
		t.Errorf("Dv(%v,%v) = %v, want ~%v (central difference)", u, v, dv, central)
	}
}
