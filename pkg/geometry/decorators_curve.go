package geometry

import (
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// TrimmedCurve delegates all operations to an inner curve after clamping
// the parameter to [t0, t1] (spec.md §4.G).
type TrimmedCurve struct {
	inner  Curve
	t0, t1 float64
}

// NewTrimmedCurve constructs a TrimmedCurve, validating that [t0,t1] lies
// within inner's domain.
func NewTrimmedCurve(inner Curve, t0, t1 float64) (*TrimmedCurve, error) {
	lo, hi := inner.Bounds()
	if t0 < lo-geomath.Epsilon || t1 > hi+geomath.Epsilon || t0 > t1 {
		return nil, &kernelerr.ParameterOutOfRange{Param: "trim range", Value: t0, Min: lo, Max: hi}
	}
	return &TrimmedCurve{inner: inner, t0: t0, t1: t1}, nil
}

// Bounds returns the trimmed domain.
func (c *TrimmedCurve) Bounds() (float64, float64) { return c.t0, c.t1 }

// Inner returns the untrimmed curve this decorator restricts.
func (c *TrimmedCurve) Inner() Curve { return c.inner }

func (c *TrimmedCurve) clamp(t float64) float64 { return geomath.Clamp(t, c.t0, c.t1) }

// Evaluate delegates to the inner curve after clamping.
func (c *TrimmedCurve) Evaluate(t float64) geomath.Point3 { return c.inner.Evaluate(c.clamp(t)) }

// Derivative delegates to the inner curve after clamping.
func (c *TrimmedCurve) Derivative(t float64, order int) (geomath.Point3, error) {
	return c.inner.Derivative(c.clamp(t), order)
}

// SearchNearest delegates to the inner curve, then clamps the result to the
// trimmed domain.
func (c *TrimmedCurve) SearchNearest(p geomath.Point3, hint *float64) (float64, *kernelerr.ConvergenceWarning) {
	t, warn := c.inner.SearchNearest(p, hint)
	return c.clamp(t), warn
}

// Processor applies an affine/homogeneous transform to every result of an
// inner curve (spec.md §4.G).
type Processor struct {
	inner Curve
	m     geomath.Matrix4
}

// NewProcessor constructs a curve Processor decorator.
func NewProcessor(inner Curve, m geomath.Matrix4) *Processor {
	return &Processor{inner: inner, m: m}
}

// Bounds returns the inner curve's domain (transforms do not reparameterize).
func (c *Processor) Bounds() (float64, float64) { return c.inner.Bounds() }

// Evaluate applies the transform to the inner curve's value.
func (c *Processor) Evaluate(t float64) geomath.Point3 { return c.m.ApplyPoint(c.inner.Evaluate(t)) }

// Derivative applies the transform's linear part to the inner derivative
// (translation does not affect derivatives).
func (c *Processor) Derivative(t float64, order int) (geomath.Point3, error) {
	v, err := c.inner.Derivative(t, order)
	if err != nil {
		return geomath.Point3{}, err
	}
	if order == 0 {
		return c.m.ApplyPoint(v), nil
	}
	return c.m.ApplyVector(v), nil
}

// SearchNearest searches in the inner curve's own (untransformed) space by
// mapping the target through the transform's inverse is not generally
// available without inverting m; instead this evaluates in transformed
// space directly via a local Newton pass over the transformed curve.
func (c *Processor) SearchNearest(p geomath.Point3, hint *float64) (float64, *kernelerr.ConvergenceWarning) {
	t0, t1 := c.Bounds()
	d1 := func(t float64) geomath.Point3 { v, _ := c.Derivative(t, 1); return v }
	d2 := func(t float64) geomath.Point3 { v, _ := c.Derivative(t, 2); return v }
	return searchNearest[geomath.Point3](t0, t1, c.Evaluate, d1, d2, func(q geomath.Point3) []float64 { return q.Coords() }, p, hint)
}

// PCurve defines a curve as surface(param_curve(t)): f(t) = S(alpha(t))
// (spec.md §4.G), with derivatives via the chain rule.
type PCurve struct {
	surface Surface
	param   Curve2D
}

// NewPCurve constructs a PCurve from a surface and a 2-D parameter curve.
func NewPCurve(surface Surface, param Curve2D) *PCurve {
	return &PCurve{surface: surface, param: param}
}

// Bounds returns the parameter curve's domain.
func (c *PCurve) Bounds() (float64, float64) { return c.param.Bounds() }

// Evaluate returns surface(param(t)).
func (c *PCurve) Evaluate(t float64) geomath.Point3 {
	uv := c.param.Evaluate(t)
	return c.surface.Evaluate(uv.X, uv.Y)
}

// Derivative applies the chain rule: f'(t) = Su*u'(t) + Sv*v'(t) for order
// 1; order 0 returns the value. Higher orders are not supported (the
// Hessian term would require the surface's second partials, which the
// Surface capability set does not expose) and return UnsupportedGeometry.
func (c *PCurve) Derivative(t float64, order int) (geomath.Point3, error) {
	if order == 0 {
		return c.Evaluate(t), nil
	}
	if order != 1 {
		return geomath.Point3{}, &kernelerr.UnsupportedGeometry{Variant: "PCurve", Op: "Derivative(order>1)"}
	}
	uv := c.param.Evaluate(t)
	uvPrime, err := c.param.Derivative(t, 1)
	if err != nil {
		return geomath.Point3{}, err
	}
	su, err := c.surface.Du(uv.X, uv.Y)
	if err != nil {
		return geomath.Point3{}, err
	}
	sv, err := c.surface.Dv(uv.X, uv.Y)
	if err != nil {
		return geomath.Point3{}, err
	}
	return su.Scale(uvPrime.X).Add(sv.Scale(uvPrime.Y)), nil
}

// SearchNearest runs a direct 3-D Newton search on the composed curve,
// using its first derivative and a zero second derivative; it does not
// invert the surface to UV.
func (c *PCurve) SearchNearest(p geomath.Point3, hint *float64) (float64, *kernelerr.ConvergenceWarning) {
	t0, t1 := c.Bounds()
	d1 := func(t float64) geomath.Point3 { v, _ := c.Derivative(t, 1); return v }
	var zero geomath.Point3
	d2 := func(float64) geomath.Point3 { return zero }
	return searchNearest[geomath.Point3](t0, t1, c.Evaluate, d1, d2, func(q geomath.Point3) []float64 { return q.Coords() }, p, hint)
}

// IntersectionCurve represents a curve defined implicitly as the
// intersection of two surfaces, sampled from a leader polyline in model
// space (spec.md §3, §4.G). It snaps to S0 ∩ S1 by a two-surface Newton
// step seeded from the nearest leader sample.
type IntersectionCurve struct {
	s0, s1  Surface
	leader  []geomath.Point3 // polyline in model space, parameterized [0,1] by arc length fraction
	t0, t1  float64
}

// NewIntersectionCurve constructs an IntersectionCurve from a leader
// polyline. The polyline must contain at least 2 points.
func NewIntersectionCurve(s0, s1 Surface, leader []geomath.Point3) (*IntersectionCurve, error) {
	if len(leader) < 2 {
		return nil, &kernelerr.InvalidControlPointGrid{Reason: "intersection curve leader needs at least 2 points"}
	}
	cp := make([]geomath.Point3, len(leader))
	copy(cp, leader)
	return &IntersectionCurve{s0: s0, s1: s1, leader: cp, t0: 0, t1: 1}, nil
}

// Bounds returns [0,1], the normalized arc-length parameterization of the
// leader polyline.
func (c *IntersectionCurve) Bounds() (float64, float64) { return c.t0, c.t1 }

// leaderAt samples the leader polyline at normalized parameter t in [0,1].
func (c *IntersectionCurve) leaderAt(t float64) geomath.Point3 {
	t = geomath.Clamp(t, 0, 1)
	n := len(c.leader) - 1
	if n == 0 {
		return c.leader[0]
	}
	scaled := t * float64(n)
	i := int(scaled)
	if i >= n {
		return c.leader[n]
	}
	frac := scaled - float64(i)
	return c.leader[i].Lerp(c.leader[i+1], frac)
}

// Evaluate snaps the leader sample at t onto S0 ∩ S1 via a two-surface
// Newton correction: project onto S0, then S1, iterating until the point
// lies on both within Epsilon or the iteration budget is spent.
func (c *IntersectionCurve) Evaluate(t float64) geomath.Point3 {
	p := c.leaderAt(t)
	var uvHint0, uvHint1 *geomath.Point2
	for i := 0; i < maxNewtonIterations; i++ {
		uv0, err := c.s0.Invert(p, uvHint0)
		if err != nil {
			break
		}
		p0 := c.s0.Evaluate(uv0.X, uv0.Y)
		uvHint0 = &uv0

		uv1, err := c.s1.Invert(p0, uvHint1)
		if err != nil {
			break
		}
		p1 := c.s1.Evaluate(uv1.X, uv1.Y)
		uvHint1 = &uv1

		if p0.Dist(p1) < geomath.Epsilon {
			return p0.Lerp(p1, 0.5)
		}
		p = p0.Lerp(p1, 0.5)
	}
	return p
}

// Derivative estimates derivatives by central differencing over the
// snapped evaluation, since no closed form exists for a general
// intersection curve.
func (c *IntersectionCurve) Derivative(t float64, order int) (geomath.Point3, error) {
	const h = 1e-5
	switch order {
	case 0:
		return c.Evaluate(t), nil
	case 1:
		return c.Evaluate(t + h).Sub(c.Evaluate(t - h)).Scale(1 / (2 * h)), nil
	case 2:
		p1, p0, pm1 := c.Evaluate(t+h), c.Evaluate(t), c.Evaluate(t-h)
		return p1.Add(pm1).Sub(p0.Scale(2)).Scale(1 / (h * h)), nil
	default:
		return geomath.Point3{}, &kernelerr.UnsupportedGeometry{Variant: "IntersectionCurve", Op: "Derivative(order>2)"}
	}
}

// SearchNearest searches over the normalized [0,1] leader parameterization.
func (c *IntersectionCurve) SearchNearest(p geomath.Point3, hint *float64) (float64, *kernelerr.ConvergenceWarning) {
	d1 := func(t float64) geomath.Point3 { v, _ := c.Derivative(t, 1); return v }
	d2 := func(t float64) geomath.Point3 { v, _ := c.Derivative(t, 2); return v }
	return searchNearest[geomath.Point3](0, 1, c.Evaluate, d1, d2, func(q geomath.Point3) []float64 { return q.Coords() }, p, hint)
}

var (
	_ Curve = (*TrimmedCurve)(nil)
	_ Curve = (*Processor)(nil)
	_ Curve = (*PCurve)(nil)
	_ Curve = (*IntersectionCurve)(nil)
)
