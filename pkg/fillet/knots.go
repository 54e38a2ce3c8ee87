package fillet

import "github.com/chazu/lignin/pkg/geometry"

// clampedUniformKnots builds a degree-d clamped knot vector over [t0,t1]
// for n control points (n >= d+1), with interior knots spaced evenly —
// the same construction NurbsCurve.trimTo uses in pkg/geometry to refit a
// trimmed curve.
func clampedUniformKnots(degree, n int, t0, t1 float64) (geometry.KnotVector, error) {
	knots := make([]float64, n+degree+1)
	for i := 0; i <= degree; i++ {
		knots[i] = t0
		knots[len(knots)-1-i] = t1
	}
	interior := len(knots) - 2*(degree+1)
	for i := 0; i < interior; i++ {
		knots[degree+1+i] = t0 + (t1-t0)*float64(i+1)/float64(interior+1)
	}
	return geometry.NewKnotVector(knots)
}
