package geometry

import (
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

var _ Curve = (*BSplineCurve[geomath.Point3])(nil)
var _ Curve2D = (*BSplineCurve[geomath.Point2])(nil)

// BSplineCurve is a B-spline curve over control points of type P (spec.md
// §3: `BSplineCurve<P>`, P ∈ {2-D, 3-D, 4-D}). Evaluation uses de Boor's
// algorithm; derivatives are produced by differencing control points into a
// reduced-degree spline, recursing for higher orders.
type BSplineCurve[P geomath.Metric[P]] struct {
	degree  int
	knots   KnotVector
	ctrlPts []P
}

// NewBSplineCurve validates the knot vector/control-point relationship and
// constructs a BSplineCurve, per spec.md §3's constructor-validates
// invariant.
func NewBSplineCurve[P geomath.Metric[P]](degree int, knots KnotVector, ctrlPts []P) (*BSplineCurve[P], error) {
	if degree < 1 {
		return nil, &kernelerr.InvalidControlPointGrid{Reason: "degree must be >= 1"}
	}
	if err := knots.ValidateControlPointCount(degree, len(ctrlPts)); err != nil {
		return nil, err
	}
	cp := make([]P, len(ctrlPts))
	copy(cp, ctrlPts)
	return &BSplineCurve[P]{degree: degree, knots: knots, ctrlPts: cp}, nil
}

// Degree returns the curve's polynomial degree.
func (c *BSplineCurve[P]) Degree() int { return c.degree }

// Knots returns the curve's knot vector.
func (c *BSplineCurve[P]) Knots() KnotVector { return c.knots }

// ControlPoints returns a copy of the curve's control points.
func (c *BSplineCurve[P]) ControlPoints() []P {
	cp := make([]P, len(c.ctrlPts))
	copy(cp, c.ctrlPts)
	return cp
}

// Bounds returns the curve's clamped parameter domain.
func (c *BSplineCurve[P]) Bounds() (float64, float64) { return c.knots.Domain(c.degree) }

// Evaluate computes c(t) via de Boor's algorithm. Cost is O(degree^2).
func (c *BSplineCurve[P]) Evaluate(t float64) P {
	t = geomath.Clamp(t, c.knots.knots[c.degree], c.knots.knots[len(c.knots.knots)-c.degree-1])
	span := c.knots.FindSpan(c.degree, t, len(c.ctrlPts))

	// Working array lives on a small fixed-size scratch slice sized to
	// degree+1 (spec.md §5 allocation discipline).
	d := make([]P, c.degree+1)
	copy(d, c.ctrlPts[span-c.degree:span+1])

	for r := 1; r <= c.degree; r++ {
		for j := c.degree; j >= r; j-- {
			i := span - c.degree + j
			denom := c.knots.knots[i+c.degree-r+1] - c.knots.knots[i]
			alpha := geomath.SafeDiv(t-c.knots.knots[i], denom)
			d[j] = d[j-1].Scale(1 - alpha).Add(d[j].Scale(alpha))
		}
	}
	return d[c.degree]
}

// derivativeCurve returns the degree-(p-1) B-spline whose evaluation is this
// curve's first derivative: the classic control-point differencing
// construction (knots with both ends' outer knot dropped, Qi scaled by
// degree/(knot span)).
func (c *BSplineCurve[P]) derivativeCurve() (*BSplineCurve[P], error) {
	if c.degree < 1 {
		return nil, &kernelerr.SingularEvaluation{Where: "derivative of a degree-0 curve"}
	}
	n := len(c.ctrlPts)
	qs := make([]P, n-1)
	for i := 0; i < n-1; i++ {
		denom := c.knots.knots[i+c.degree+1] - c.knots.knots[i+1]
		scale := geomath.SafeDiv(float64(c.degree), denom)
		diff := c.ctrlPts[i+1].Sub(c.ctrlPts[i])
		qs[i] = diff.Scale(scale)
	}
	newKnots, err := NewKnotVector(c.knots.knots[1 : len(c.knots.knots)-1])
	if err != nil {
		return nil, err
	}
	// Built directly: NewBSplineCurve rejects degree 0, which is the
	// derivative of every degree-1 curve.
	return &BSplineCurve[P]{degree: c.degree - 1, knots: newKnots, ctrlPts: qs}, nil
}

// Derivative returns the order-th derivative of the curve at t, recursing
// through derivativeCurve order times. order=0 returns Evaluate(t).
func (c *BSplineCurve[P]) Derivative(t float64, order int) (P, error) {
	if order < 0 {
		var zero P
		return zero, &kernelerr.ParameterOutOfRange{Param: "order", Value: float64(order), Min: 0, Max: float64(c.degree)}
	}
	cur := c
	for i := 0; i < order; i++ {
		next, err := cur.derivativeCurve()
		if err != nil {
			var zero P
			return zero, err
		}
		cur = next
	}
	return cur.Evaluate(t), nil
}

// SearchNearest finds the parameter nearest to target via safeguarded
// Newton iteration, seeded from hint or (if nil) a coarse rtree-backed grid
// pre-sample (spec.md §4.G).
func (c *BSplineCurve[P]) SearchNearest(target P, hint *float64) (float64, *kernelerr.ConvergenceWarning) {
	t0, t1 := c.Bounds()
	d1 := func(t float64) P {
		v, _ := c.Derivative(t, 1)
		return v
	}
	d2 := func(t float64) P {
		v, _ := c.Derivative(t, 2)
		return v
	}
	return searchNearest[P](t0, t1, c.Evaluate, d1, d2, func(p P) []float64 { return p.Coords() }, target, hint)
}
