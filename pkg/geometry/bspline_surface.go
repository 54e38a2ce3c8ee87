package geometry

import (
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// BSplineSurface is a tensor-product B-spline surface over a control grid
// of type P (spec.md §3: `BSplineSurface<P>`). ctrlPts[i][j] is the control
// point at u-index i, v-index j.
type BSplineSurface[P geomath.Metric[P]] struct {
	degreeU, degreeV int
	knotsU, knotsV   KnotVector
	ctrlPts          [][]P
}

// NewBSplineSurface validates the knot vectors against the control grid
// shape and constructs a BSplineSurface.
func NewBSplineSurface[P geomath.Metric[P]](degreeU, degreeV int, knotsU, knotsV KnotVector, ctrlPts [][]P) (*BSplineSurface[P], error) {
	if degreeU < 1 || degreeV < 1 {
		return nil, &kernelerr.InvalidControlPointGrid{Reason: "degree must be >= 1 in both directions"}
	}
	nu := len(ctrlPts)
	if nu == 0 {
		return nil, &kernelerr.InvalidControlPointGrid{Reason: "control grid must have at least one row"}
	}
	nv := len(ctrlPts[0])
	for _, row := range ctrlPts {
		if len(row) != nv {
			return nil, &kernelerr.InvalidControlPointGrid{Reason: "control grid rows must have equal length"}
		}
	}
	if err := knotsU.ValidateControlPointCount(degreeU, nu); err != nil {
		return nil, err
	}
	if err := knotsV.ValidateControlPointCount(degreeV, nv); err != nil {
		return nil, err
	}
	grid := make([][]P, nu)
	for i, row := range ctrlPts {
		grid[i] = append([]P(nil), row...)
	}
	return &BSplineSurface[P]{degreeU: degreeU, degreeV: degreeV, knotsU: knotsU, knotsV: knotsV, ctrlPts: grid}, nil
}

// DegreeU returns the surface's u-direction polynomial degree.
func (s *BSplineSurface[P]) DegreeU() int { return s.degreeU }

// DegreeV returns the surface's v-direction polynomial degree.
func (s *BSplineSurface[P]) DegreeV() int { return s.degreeV }

// KnotsU returns the surface's u-direction knot vector.
func (s *BSplineSurface[P]) KnotsU() KnotVector { return s.knotsU }

// KnotsV returns the surface's v-direction knot vector.
func (s *BSplineSurface[P]) KnotsV() KnotVector { return s.knotsV }

// ControlPoints returns a copy of the surface's control grid.
func (s *BSplineSurface[P]) ControlPoints() [][]P {
	grid := make([][]P, len(s.ctrlPts))
	for i, row := range s.ctrlPts {
		grid[i] = append([]P(nil), row...)
	}
	return grid
}

// Bounds returns the surface's clamped (u,v) domain.
func (s *BSplineSurface[P]) Bounds() (u0, u1, v0, v1 float64) {
	u0, u1 = s.knotsU.Domain(s.degreeU)
	v0, v1 = s.knotsV.Domain(s.degreeV)
	return
}

// columnAt returns the control column of the isoparametric curve at fixed
// v: each u-row's control points collapsed through the v-direction basis
// by de Boor evaluation.
func (s *BSplineSurface[P]) columnAt(v float64) []P {
	nu := len(s.ctrlPts)
	col := make([]P, nu)
	for i := 0; i < nu; i++ {
		row, err := NewBSplineCurve[P](s.degreeV, s.knotsV, s.ctrlPts[i])
		if err != nil {
			panic("geometry: inconsistent surface row, a programming invariant: " + err.Error())
		}
		col[i] = row.Evaluate(v)
	}
	return col
}

// Evaluate computes S(u,v) by first collapsing each u-row through the
// v-direction de Boor evaluation, then de Boor evaluating the resulting
// column of points through the u-direction.
func (s *BSplineSurface[P]) Evaluate(u, v float64) P {
	col := s.columnAt(v)
	uCurve, err := NewBSplineCurve[P](s.degreeU, s.knotsU, col)
	if err != nil {
		panic("geometry: inconsistent surface column, a programming invariant: " + err.Error())
	}
	return uCurve.Evaluate(u)
}

// duAt returns the u-partial derivative at fixed v, by collapsing
// through v first and differentiating the u-direction curve.
func (s *BSplineSurface[P]) duAt(u, v float64) P {
	col := s.columnAt(v)
	uCurve, err := NewBSplineCurve[P](s.degreeU, s.knotsU, col)
	if err != nil {
		panic("geometry: inconsistent surface column: " + err.Error())
	}
	d, err := uCurve.Derivative(u, 1)
	if err != nil {
		var zero P
		return zero
	}
	return d
}

// dvAt returns the v-partial derivative at fixed u, by collapsing
// through u first (each v-row at parameter u) and differentiating the
// v-direction curve.
func (s *BSplineSurface[P]) dvAt(u, v float64) P {
	nv := len(s.ctrlPts[0])
	row := make([]P, nv)
	for j := 0; j < nv; j++ {
		col := make([]P, len(s.ctrlPts))
		for i := range s.ctrlPts {
			col[i] = s.ctrlPts[i][j]
		}
		uCurve, err := NewBSplineCurve[P](s.degreeU, s.knotsU, col)
		if err != nil {
			panic("geometry: inconsistent surface column: " + err.Error())
		}
		row[j] = uCurve.Evaluate(u)
	}
	vCurve, err := NewBSplineCurve[P](s.degreeV, s.knotsV, row)
	if err != nil {
		panic("geometry: inconsistent surface row: " + err.Error())
	}
	d, err := vCurve.Derivative(v, 1)
	if err != nil {
		var zero P
		return zero
	}
	return d
}

var _ Surface = (*BSplineSurface[geomath.Point3])(nil)

// evaluate3/du3/dv3 exist because the Surface interface fixes geomath.Point3
// concretely while this type stays generic (NurbsSurface instantiates it at
// Point4 for the homogeneous case); the assertion only runs through these
// three when P is actually Point3.
func (s *BSplineSurface[P]) evaluate3(u, v float64) geomath.Point3 {
	return any(s.Evaluate(u, v)).(geomath.Point3)
}

func (s *BSplineSurface[P]) du3(u, v float64) geomath.Point3 {
	return any(s.duAt(u, v)).(geomath.Point3)
}

func (s *BSplineSurface[P]) dv3(u, v float64) geomath.Point3 {
	return any(s.dvAt(u, v)).(geomath.Point3)
}

// Du returns the u-partial derivative at (u,v).
func (s *BSplineSurface[P]) Du(u, v float64) (geomath.Point3, error) { return s.du3(u, v), nil }

// Dv returns the v-partial derivative at (u,v).
func (s *BSplineSurface[P]) Dv(u, v float64) (geomath.Point3, error) { return s.dv3(u, v), nil }

// Normal returns the outward normal at (u,v), reporting atPole when the
// partials are degenerate (spec.md §4.G pole handling).
func (s *BSplineSurface[P]) Normal(u, v float64) (geomath.Point3, bool, error) {
	du, dv := s.du3(u, v), s.dv3(u, v)
	const h = 1e-4
	u0, u1, v0, v1 := s.Bounds()
	n, atPole := normalFromPartials(du, dv, func() (geomath.Point3, geomath.Point3) {
		uu := geomath.Clamp(u+h, u0, u1)
		vv := geomath.Clamp(v+h, v0, v1)
		return s.du3(uu, vv), s.dv3(uu, vv)
	})
	return n, atPole, nil
}

// Inclusion reports whether c's image lies on the surface within Epsilon,
// by inverting a sample of points along c and checking round-trip distance.
func (s *BSplineSurface[P]) Inclusion(c Curve) (bool, error) {
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
		if s.evaluate3(uv.X, uv.Y).Dist(p) > geomath.Epsilon {
			return false, nil
		}
	}
	return true, nil
}

// Invert returns the UV parameter nearest p via Gauss-Newton iteration.
func (s *BSplineSurface[P]) Invert(p geomath.Point3, hint *geomath.Point2) (geomath.Point2, error) {
	u0, u1, v0, v1 := s.Bounds()
	uv, warn := invertUV(u0, u1, v0, v1, s.evaluate3, s.du3, s.dv3, p, hint)
	if warn != nil {
		return uv, warn
	}
	return uv, nil
}

// SearchNearest is the surface analogue of Invert; both report convergence
// failure the same way (best effort, not a hard error).
func (s *BSplineSurface[P]) SearchNearest(p geomath.Point3, hint *geomath.Point2) (geomath.Point2, *kernelerr.ConvergenceWarning) {
	u0, u1, v0, v1 := s.Bounds()
	return invertUV(u0, u1, v0, v1, s.evaluate3, s.du3, s.dv3, p, hint)
}
