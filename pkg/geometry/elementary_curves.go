package geometry

import (
	"math"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// Line is the curve t -> origin + dir*t, generic over 2-D or 3-D points
// (spec.md §3: "Line, UnitCircle, UnitParabola, UnitHyperbola in 2-D/3-D").
type Line[P geomath.Metric[P]] struct {
	origin P
	dir    P
	t0, t1 float64
}

// NewLine constructs a Line with the given parameter domain.
func NewLine[P geomath.Metric[P]](origin, dir P, t0, t1 float64) *Line[P] {
	return &Line[P]{origin: origin, dir: dir, t0: t0, t1: t1}
}

// Bounds returns the line's parameter domain.
func (l *Line[P]) Bounds() (float64, float64) { return l.t0, l.t1 }

// Origin returns the line's origin point.
func (l *Line[P]) Origin() P { return l.origin }

// Dir returns the line's direction vector.
func (l *Line[P]) Dir() P { return l.dir }

// Evaluate returns origin + dir*t.
func (l *Line[P]) Evaluate(t float64) P { return l.origin.Add(l.dir.Scale(t)) }

// Derivative returns dir for order 1 and the zero value for any higher
// order (a line has no curvature).
func (l *Line[P]) Derivative(t float64, order int) (P, error) {
	if order < 0 {
		var zero P
		return zero, &kernelerr.ParameterOutOfRange{Param: "order", Value: float64(order)}
	}
	if order == 0 {
		return l.Evaluate(t), nil
	}
	if order == 1 {
		return l.dir, nil
	}
	var zero P
	return zero, nil
}

// SearchNearest projects target onto the line and clips to the domain.
func (l *Line[P]) SearchNearest(target P, hint *float64) (float64, *kernelerr.ConvergenceWarning) {
	d1 := func(float64) P { return l.dir }
	var zero P
	d2 := func(float64) P { return zero }
	return searchNearest[P](l.t0, l.t1, l.Evaluate, d1, d2, func(p P) []float64 { return p.Coords() }, target, hint)
}

// ellipticCurve is the shared representation for UnitCircle, UnitParabola,
// and UnitHyperbola: center + basis0*f(t) + basis1*g(t), where (f,g) is the
// (cos,sin), (t,t^2), or (cosh,sinh) pair.
type ellipticCurve[P geomath.Metric[P]] struct {
	center         P
	basis0, basis1 P
	f, g           func(t float64) (v, d1, d2 float64)
	t0, t1         float64
}

func (c *ellipticCurve[P]) Bounds() (float64, float64) { return c.t0, c.t1 }

// Center returns the curve's center point.
func (c *ellipticCurve[P]) Center() P { return c.center }

// Basis0 returns the first basis vector (multiplies cos/t/cosh).
func (c *ellipticCurve[P]) Basis0() P { return c.basis0 }

// Basis1 returns the second basis vector (multiplies sin/t^2/sinh).
func (c *ellipticCurve[P]) Basis1() P { return c.basis1 }

func (c *ellipticCurve[P]) valueAt(fv, gv float64) P {
	return c.center.Add(c.basis0.Scale(fv)).Add(c.basis1.Scale(gv))
}

func (c *ellipticCurve[P]) Evaluate(t float64) P {
	fv, _, _ := c.f(t)
	gv, _, _ := c.g(t)
	return c.valueAt(fv, gv)
}

func (c *ellipticCurve[P]) Derivative(t float64, order int) (P, error) {
	if order < 0 {
		var zero P
		return zero, &kernelerr.ParameterOutOfRange{Param: "order", Value: float64(order)}
	}
	_, fd1, fd2 := c.f(t)
	_, gd1, gd2 := c.g(t)
	switch order {
	case 0:
		return c.Evaluate(t), nil
	case 1:
		return c.basis0.Scale(fd1).Add(c.basis1.Scale(gd1)), nil
	case 2:
		return c.basis0.Scale(fd2).Add(c.basis1.Scale(gd2)), nil
	default:
		var zero P
		return zero, &kernelerr.ParameterOutOfRange{Param: "order", Value: float64(order), Max: 2}
	}
}

func (c *ellipticCurve[P]) SearchNearest(target P, hint *float64) (float64, *kernelerr.ConvergenceWarning) {
	d1 := func(t float64) P { v, _ := c.Derivative(t, 1); return v }
	d2 := func(t float64) P { v, _ := c.Derivative(t, 2); return v }
	return searchNearest[P](c.t0, c.t1, c.Evaluate, d1, d2, func(p P) []float64 { return p.Coords() }, target, hint)
}

// UnitCircle is the curve t -> center + u*cos(t) + v*sin(t).
type UnitCircle[P geomath.Metric[P]] struct{ *ellipticCurve[P] }

// NewUnitCircle constructs a (possibly non-full) circular arc over [t0,t1].
func NewUnitCircle[P geomath.Metric[P]](center, u, v P, t0, t1 float64) *UnitCircle[P] {
	return &UnitCircle[P]{&ellipticCurve[P]{
		center: center, basis0: u, basis1: v, t0: t0, t1: t1,
		f: func(t float64) (float64, float64, float64) { return math.Cos(t), -math.Sin(t), -math.Cos(t) },
		g: func(t float64) (float64, float64, float64) { return math.Sin(t), math.Cos(t), -math.Sin(t) },
	}}
}

// UnitParabola is the curve t -> center + u*t + v*t^2.
type UnitParabola[P geomath.Metric[P]] struct{ *ellipticCurve[P] }

// NewUnitParabola constructs a parabolic arc over [t0,t1].
func NewUnitParabola[P geomath.Metric[P]](center, u, v P, t0, t1 float64) *UnitParabola[P] {
	return &UnitParabola[P]{&ellipticCurve[P]{
		center: center, basis0: u, basis1: v, t0: t0, t1: t1,
		f: func(t float64) (float64, float64, float64) { return t, 1, 0 },
		g: func(t float64) (float64, float64, float64) { return t * t, 2 * t, 2 },
	}}
}

// UnitHyperbola is the curve t -> center + u*cosh(t) + v*sinh(t).
type UnitHyperbola[P geomath.Metric[P]] struct{ *ellipticCurve[P] }

// NewUnitHyperbola constructs a hyperbolic arc over [t0,t1].
func NewUnitHyperbola[P geomath.Metric[P]](center, u, v P, t0, t1 float64) *UnitHyperbola[P] {
	return &UnitHyperbola[P]{&ellipticCurve[P]{
		center: center, basis0: u, basis1: v, t0: t0, t1: t1,
		f: func(t float64) (float64, float64, float64) { return math.Cosh(t), math.Sinh(t), math.Cosh(t) },
		g: func(t float64) (float64, float64, float64) { return math.Sinh(t), math.Cosh(t), math.Sinh(t) },
	}}
}

var (
	_ Curve = (*Line[geomath.Point3])(nil)
	_ Curve = (*UnitCircle[geomath.Point3])(nil)
	_ Curve = (*UnitParabola[geomath.Point3])(nil)
	_ Curve = (*UnitHyperbola[geomath.Point3])(nil)
)
