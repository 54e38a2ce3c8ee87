package geometry

import (
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// NurbsCurve is a BSplineCurve<4-D> with rational projection (spec.md §3):
// a non-uniform rational B-spline whose homogeneous control points are
// projected back to 3-D model space on evaluation.
type NurbsCurve struct {
	homogeneous *BSplineCurve[geomath.Point4]
}

// NewNurbsCurve constructs a NurbsCurve from a degree, knot vector, and
// weighted 3-D control points with explicit weights.
func NewNurbsCurve(degree int, knots KnotVector, ctrlPts []geomath.Point3, weights []float64) (*NurbsCurve, error) {
	if len(ctrlPts) != len(weights) {
		return nil, &kernelerr.InvalidControlPointGrid{Reason: "control point count must match weight count"}
	}
	homog := make([]geomath.Point4, len(ctrlPts))
	for i, p := range ctrlPts {
		homog[i] = geomath.Point4{X: p.X * weights[i], Y: p.Y * weights[i], Z: p.Z * weights[i], W: weights[i]}
	}
	inner, err := NewBSplineCurve[geomath.Point4](degree, knots, homog)
	if err != nil {
		return nil, err
	}
	return &NurbsCurve{homogeneous: inner}, nil
}

// Bounds returns the curve's clamped parameter domain.
func (c *NurbsCurve) Bounds() (float64, float64) { return c.homogeneous.Bounds() }

// Degree returns the underlying homogeneous curve's degree.
func (c *NurbsCurve) Degree() int { return c.homogeneous.Degree() }

// Knots returns the underlying homogeneous curve's knot vector.
func (c *NurbsCurve) Knots() KnotVector { return c.homogeneous.Knots() }

// ControlPoints returns the control points projected back to 3-D model
// space (the inverse of the weighting NewNurbsCurve applies).
func (c *NurbsCurve) ControlPoints() []geomath.Point3 {
	homog := c.homogeneous.ControlPoints()
	pts := make([]geomath.Point3, len(homog))
	for i, h := range homog {
		pts[i] = h.Project()
	}
	return pts
}

// Weights returns the control point weights.
func (c *NurbsCurve) Weights() []float64 {
	homog := c.homogeneous.ControlPoints()
	w := make([]float64, len(homog))
	for i, h := range homog {
		w[i] = h.W
	}
	return w
}

// Evaluate projects the homogeneous de Boor evaluation back to 3-D.
func (c *NurbsCurve) Evaluate(t float64) geomath.Point3 {
	return c.homogeneous.Evaluate(t).Project()
}

// Derivative returns the order-th derivative in 3-D model space via the
// quotient rule applied to the projected rational curve: for order 1 this
// differentiates (numerator/weight) using the homogeneous curve's own
// derivative, which is exact for NURBS (Piegl & Tiller's rational
// derivative formula, order-1 case; higher orders recurse through the same
// relation).
func (c *NurbsCurve) Derivative(t float64, order int) (geomath.Point3, error) {
	if order == 0 {
		return c.Evaluate(t), nil
	}
	if order > 2 {
		return geomath.Point3{}, &kernelerr.ParameterOutOfRange{Param: "order", Value: float64(order), Min: 0, Max: 2}
	}
	a0, err := c.homogeneous.Derivative(t, 0)
	if err != nil {
		return geomath.Point3{}, err
	}
	a1, err := c.homogeneous.Derivative(t, 1)
	if err != nil {
		return geomath.Point3{}, err
	}
	w0, w1 := a0.W, a1.W
	c1 := geomath.Point3{X: a1.X, Y: a1.Y, Z: a1.Z}

	// First rational derivative: (C1 - w1*P0) / w0, with P0 the projected point.
	p0 := geomath.Point3{X: geomath.SafeDiv(a0.X, w0), Y: geomath.SafeDiv(a0.Y, w0), Z: geomath.SafeDiv(a0.Z, w0)}
	d1 := geomath.Point3{
		X: geomath.SafeDiv(c1.X-w1*p0.X, w0),
		Y: geomath.SafeDiv(c1.Y-w1*p0.Y, w0),
		Z: geomath.SafeDiv(c1.Z-w1*p0.Z, w0),
	}
	if order == 1 {
		return d1, nil
	}

	a2, err := c.homogeneous.Derivative(t, 2)
	if err != nil {
		return geomath.Point3{}, err
	}
	w2 := a2.W
	c2 := geomath.Point3{X: a2.X, Y: a2.Y, Z: a2.Z}
	// Second rational derivative: (C2 - 2*w1*d1 - w2*P0) / w0.
	d2 := geomath.Point3{
		X: geomath.SafeDiv(c2.X-2*w1*d1.X-w2*p0.X, w0),
		Y: geomath.SafeDiv(c2.Y-2*w1*d1.Y-w2*p0.Y, w0),
		Z: geomath.SafeDiv(c2.Z-2*w1*d1.Z-w2*p0.Z, w0),
	}
	return d2, nil
}

// SearchNearest finds the parameter nearest to target in projected 3-D
// space.
func (c *NurbsCurve) SearchNearest(target geomath.Point3, hint *float64) (float64, *kernelerr.ConvergenceWarning) {
	t0, t1 := c.Bounds()
	d1 := func(t float64) geomath.Point3 {
		v, _ := c.Derivative(t, 1)
		return v
	}
	d2 := func(t float64) geomath.Point3 {
		v, _ := c.Derivative(t, 2)
		return v
	}
	return searchNearest[geomath.Point3](t0, t1, c.Evaluate, d1, d2, func(p geomath.Point3) []float64 { return p.Coords() }, target, hint)
}

var _ Curve = (*NurbsCurve)(nil)
