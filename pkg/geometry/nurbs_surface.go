package geometry

import (
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// NurbsSurface is a BSplineSurface<4-D> with rational projection (spec.md
// §3): a tensor-product NURBS surface whose homogeneous control grid is
// projected back to 3-D model space on evaluation.
type NurbsSurface struct {
	homogeneous *BSplineSurface[geomath.Point4]
}

// NewNurbsSurface constructs a NurbsSurface from degree/knots in both
// directions and a weighted control grid with explicit per-point weights.
func NewNurbsSurface(degreeU, degreeV int, knotsU, knotsV KnotVector, ctrlPts [][]geomath.Point3, weights [][]float64) (*NurbsSurface, error) {
	if len(ctrlPts) != len(weights) {
		return nil, &kernelerr.InvalidControlPointGrid{Reason: "control grid row count must match weight grid"}
	}
	homog := make([][]geomath.Point4, len(ctrlPts))
	for i, row := range ctrlPts {
		if len(row) != len(weights[i]) {
			return nil, &kernelerr.InvalidControlPointGrid{Reason: "control grid column count must match weight grid"}
		}
		homog[i] = make([]geomath.Point4, len(row))
		for j, p := range row {
			w := weights[i][j]
			homog[i][j] = geomath.Point4{X: p.X * w, Y: p.Y * w, Z: p.Z * w, W: w}
		}
	}
	inner, err := NewBSplineSurface[geomath.Point4](degreeU, degreeV, knotsU, knotsV, homog)
	if err != nil {
		return nil, err
	}
	return &NurbsSurface{homogeneous: inner}, nil
}

// Bounds returns the clamped (u,v) domain.
func (s *NurbsSurface) Bounds() (u0, u1, v0, v1 float64) { return s.homogeneous.Bounds() }

// DegreeU returns the underlying homogeneous surface's u-direction degree.
func (s *NurbsSurface) DegreeU() int { return s.homogeneous.DegreeU() }

// DegreeV returns the underlying homogeneous surface's v-direction degree.
func (s *NurbsSurface) DegreeV() int { return s.homogeneous.DegreeV() }

// KnotsU returns the underlying homogeneous surface's u-direction knot vector.
func (s *NurbsSurface) KnotsU() KnotVector { return s.homogeneous.KnotsU() }

// KnotsV returns the underlying homogeneous surface's v-direction knot vector.
func (s *NurbsSurface) KnotsV() KnotVector { return s.homogeneous.KnotsV() }

// ControlPoints returns the control grid projected back to 3-D model space.
func (s *NurbsSurface) ControlPoints() [][]geomath.Point3 {
	homog := s.homogeneous.ControlPoints()
	grid := make([][]geomath.Point3, len(homog))
	for i, row := range homog {
		grid[i] = make([]geomath.Point3, len(row))
		for j, h := range row {
			grid[i][j] = h.Project()
		}
	}
	return grid
}

// Weights returns the control grid's weights.
func (s *NurbsSurface) Weights() [][]float64 {
	homog := s.homogeneous.ControlPoints()
	grid := make([][]float64, len(homog))
	for i, row := range homog {
		grid[i] = make([]float64, len(row))
		for j, h := range row {
			grid[i][j] = h.W
		}
	}
	return grid
}

// Evaluate projects the homogeneous evaluation back to 3-D.
func (s *NurbsSurface) Evaluate(u, v float64) geomath.Point3 {
	return s.homogeneous.Evaluate(u, v).Project()
}

// Du returns the rational u-partial derivative via the same quotient-rule
// relation NurbsCurve.Derivative uses for its first-order case, applied
// along the u direction while v is held fixed.
func (s *NurbsSurface) Du(u, v float64) (geomath.Point3, error) {
	a0 := s.homogeneous.Evaluate(u, v)
	a1 := s.homogeneous.duAt(u, v)
	return rationalPartial(a0, a1), nil
}

// Dv returns the rational v-partial derivative, analogous to Du.
func (s *NurbsSurface) Dv(u, v float64) (geomath.Point3, error) {
	a0 := s.homogeneous.Evaluate(u, v)
	a1 := s.homogeneous.dvAt(u, v)
	return rationalPartial(a0, a1), nil
}

// rationalPartial computes the projected partial derivative of a
// homogeneous surface given the value a0 and the partial a1 of the
// homogeneous (unprojected) surface at a point: d(C/w)/dx = (C' - w'*P)/w.
func rationalPartial(a0, a1 geomath.Point4) geomath.Point3 {
	w0 := a0.W
	p0 := a0.Project()
	return geomath.Point3{
		X: geomath.SafeDiv(a1.X-a1.W*p0.X, w0),
		Y: geomath.SafeDiv(a1.Y-a1.W*p0.Y, w0),
		Z: geomath.SafeDiv(a1.Z-a1.W*p0.Z, w0),
	}
}

// Normal returns the outward normal, reporting atPole on degenerate partials.
func (s *NurbsSurface) Normal(u, v float64) (geomath.Point3, bool, error) {
	du, err := s.Du(u, v)
	if err != nil {
		return geomath.Point3{}, false, err
	}
	dv, err := s.Dv(u, v)
	if err != nil {
		return geomath.Point3{}, false, err
	}
	const h = 1e-4
	u0, u1, v0, v1 := s.Bounds()
	n, atPole := normalFromPartials(du, dv, func() (geomath.Point3, geomath.Point3) {
		uu := geomath.Clamp(u+h, u0, u1)
		vv := geomath.Clamp(v+h, v0, v1)
		du2, _ := s.Du(uu, vv)
		dv2, _ := s.Dv(uu, vv)
		return du2, dv2
	})
	return n, atPole, nil
}

// Inclusion reports whether c's image lies on the surface within Epsilon.
func (s *NurbsSurface) Inclusion(c Curve) (bool, error) {
	t0, t1 := c.Bounds()
	const samples = 16
	var hint *geomath.Point2
	for i := 0; i <= samples; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(samples)
		p := c.Evaluate(t)
		uv, err := s.Invert(p, hint)
		if err != nil {
			return false, err
		}
		hint = &uv
		if s.Evaluate(uv.X, uv.Y).Dist(p) > geomath.Epsilon {
			return false, nil
		}
	}
	return true, nil
}

// Invert returns the UV parameter nearest p via Gauss-Newton iteration over
// the rational surface's partials.
func (s *NurbsSurface) Invert(p geomath.Point3, hint *geomath.Point2) (geomath.Point2, error) {
	u0, u1, v0, v1 := s.Bounds()
	du := func(u, v float64) geomath.Point3 { d, _ := s.Du(u, v); return d }
	dv := func(u, v float64) geomath.Point3 { d, _ := s.Dv(u, v); return d }
	uv, warn := invertUV(u0, u1, v0, v1, s.Evaluate, du, dv, p, hint)
	if warn != nil {
		return uv, warn
	}
	return uv, nil
}

// SearchNearest is the surface analogue of Invert.
func (s *NurbsSurface) SearchNearest(p geomath.Point3, hint *geomath.Point2) (geomath.Point2, *kernelerr.ConvergenceWarning) {
	u0, u1, v0, v1 := s.Bounds()
	du := func(u, v float64) geomath.Point3 { d, _ := s.Du(u, v); return d }
	dv := func(u, v float64) geomath.Point3 { d, _ := s.Dv(u, v); return d }
	return invertUV(u0, u1, v0, v1, s.Evaluate, du, dv, p, hint)
}

var _ Surface = (*NurbsSurface)(nil)
