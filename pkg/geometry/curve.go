package geometry

import (
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// Curve is the capability set every 3-D model-space curve variant exposes
// (spec.md §4.G): value, derivative of any order up to the curve's declared
// smoothness, parameter bounds, and a nearest-parameter search.
type Curve interface {
	Evaluate(t float64) geomath.Point3
	Derivative(t float64, order int) (geomath.Point3, error)
	Bounds() (t0, t1 float64)
	SearchNearest(p geomath.Point3, hint *float64) (t float64, warn *kernelerr.ConvergenceWarning)
}

// Curve2D is the 2-D parameter-space analogue of Curve, used for PCurve's
// underlying param_curve and for trimmed-surface boundary loops.
type Curve2D interface {
	Evaluate(t float64) geomath.Point2
	Derivative(t float64, order int) (geomath.Point2, error)
	Bounds() (t0, t1 float64)
	SearchNearest(p geomath.Point2, hint *float64) (t float64, warn *kernelerr.ConvergenceWarning)
}
