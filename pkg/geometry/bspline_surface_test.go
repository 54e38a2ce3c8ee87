package geometry

import (
	"testing"

	"github.com/chazu/lignin/pkg/geomath"
)

func flatGrid(nu, nv int) [][]geomath.Point3 {
	grid := make([][]geomath.Point3, nu)
	for i := range grid {
		grid[i] = make([]geomath.Point3, nv)
		for j := range grid[i] {
			grid[i][j] = geomath.Point3{X: float64(i), Y: float64(j)}
		}
	}
	return grid
}

func TestNewBSplineSurfaceRejectsRaggedGrid(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	ragged := [][]geomath.Point3{{{}, {}}, {{}}}
	if _, err := NewBSplineSurface[geomath.Point3](1, 1, knots, knots, ragged); err == nil {
		t.Fatal("expected an error for a ragged control grid")
	}
}

func TestNewBSplineSurfaceRejectsDegreeZero(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	if _, err := NewBSplineSurface[geomath.Point3](0, 1, knots, knots, flatGrid(2, 2)); err == nil {
		t.Fatal("expected an error for degree 0 in u")
	}
}

func TestBSplineSurfaceBilinearEvaluateAtCorners(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	grid := flatGrid(2, 2)
	s, err := NewBSplineSurface[geomath.Point3](1, 1, knots, knots, grid)
	if err != nil {
		t.Fatalf("NewBSplineSurface: %v", err)
	}
	cases := []struct {
		u, v float64
		want geomath.Point3
	}{
		{0, 0, grid[0][0]},
		{1, 0, grid[1][0]},
		{0, 1, grid[0][1]},
		{1, 1, grid[1][1]},
	}
	for _, c := range cases {
		if got := s.Evaluate(c.u, c.v); got.Dist(c.want) > 1e-9 {
			t.Errorf("Evaluate(%v, %v) = %v, want %v", c.u, c.v, got, c.want)
		}
	}
}

func TestBSplineSurfaceDuDvMatchCentralDifference(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 0, 1, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	grid := [][]geomath.Point3{
		{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2, Z: 1}},
		{{X: 1, Y: 0, Z: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}},
		{{X: 2, Y: 0}, {X: 2, Y: 1, Z: 1}, {X: 2, Y: 2}},
	}
	s, err := NewBSplineSurface[geomath.Point3](2, 2, knots, knots, grid)
	if err != nil {
		t.Fatalf("NewBSplineSurface: %v", err)
	}
	const h = 1e-5
	u, v := 0.4, 0.6
	du, err := s.Du(u, v)
	if err != nil {
		t.Fatalf("Du: %v", err)
	}
	centralU := s.Evaluate(u+h, v).Sub(s.Evaluate(u-h, v)).Scale(1 / (2 * h))
	if du.Dist(centralU) > 1e-3 {
		t.Errorf("Du(%v,%v) = %v, want ~%v", u, v, du, centralU)
	}
	dv, err := s.Dv(u, v)
	if err != nil {
		t.Fatalf("Dv: %v", err)
	}
	centralV := s.Evaluate(u, v+h).Sub(s.Evaluate(u, v-h)).Scale(1 / (2 * h))
	if dv.Dist(centralV) > 1e-3 {
		t.Errorf("Dv(%v,%v) = %v, want ~%v", u, v, dv, centralV)
	}
}

func TestBSplineSurfaceInvertRoundTrip(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 0, 1, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	grid := [][]geomath.Point3{
		{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
		{{X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 2}, {X: 1, Y: 2, Z: 1}},
		{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}},
	}
	s, err := NewBSplineSurface[geomath.Point3](2, 2, knots, knots, grid)
	if err != nil {
		t.Fatalf("NewBSplineSurface: %v", err)
	}
	for _, uv := range [][2]float64{{0.2, 0.3}, {0.7, 0.1}, {0.5, 0.9}} {
		p := s.Evaluate(uv[0], uv[1])
		got, err := s.Invert(p, nil)
		if err != nil {
			t.Fatalf("Invert: %v", err)
		}
		if back := s.Evaluate(got.X, got.Y); back.Dist(p) > 1e-6 {
			t.Errorf("Invert round trip mismatch for uv=%v: Evaluate(Invert(p)) = %v, want %v", uv, back, p)
		}
	}
}

func TestBSplineSurfaceInclusionAcceptsIsoparametricCurve(t *testing.T) {
	knots, err := NewKnotVector([]float64{0, 0, 0, 1, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	grid := [][]geomath.Point3{
		{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
		{{X: 1, Y: 0}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 2}},
		{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}},
	}
	s, err := NewBSplineSurface[geomath.Point3](2, 2, knots, knots, grid)
	if err != nil {
		t.Fatalf("NewBSplineSurface: %v", err)
	}
	isoAtU0 := NewLine[geomath.Point2](geomath.Point2{}, geomath.Point2{Y: 1}, 0, 1)
	pc := NewPCurve(s, isoAtU0)
	ok, err := s.Inclusion(pc)
	if err != nil {
		t.Fatalf("Inclusion: %v", err)
	}
	if !ok {
		t.Error("expected an isoparametric curve to be included in its own surface")
	}
}
