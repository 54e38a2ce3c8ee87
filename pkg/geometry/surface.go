package geometry

import (
	"math"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// Surface is the capability set every surface variant exposes (spec.md
// §4.G): value, ∂u, ∂v, an outward normal (undefined at singular points —
// Normal reports that explicitly via atPole rather than returning NaN),
// inclusion of a curve, and UV inversion.
type Surface interface {
	Evaluate(u, v float64) geomath.Point3
	Du(u, v float64) (geomath.Point3, error)
	Dv(u, v float64) (geomath.Point3, error)
	// Normal returns the outward normal, normalized. atPole is true when
	// the analytic cross product was too small to normalize and the
	// returned vector is a limit taken along a nearby sample instead.
	Normal(u, v float64) (n geomath.Point3, atPole bool, err error)
	Bounds() (u0, u1, v0, v1 float64)
	// Inclusion reports whether the image of c lies on the surface within
	// Epsilon.
	Inclusion(c Curve) (bool, error)
	// Invert returns the UV parameter whose image is nearest p, seeded from
	// hint when non-nil.
	Invert(p geomath.Point3, hint *geomath.Point2) (geomath.Point2, error)
	SearchNearest(p geomath.Point3, hint *geomath.Point2) (geomath.Point2, *kernelerr.ConvergenceWarning)
}

// normalFromPartials computes du x dv normalized, reporting atPole=true
// (spec.md §4.G "the normal is defined as the limit along the axis") when
// the cross product is too small to normalize directly; in that case it
// resamples at a small offset to approximate the limiting direction.
func normalFromPartials(du, dv geomath.Point3, resample func() (geomath.Point3, geomath.Point3)) (geomath.Point3, bool) {
	n, ok := du.Cross(dv).Normalize()
	if ok {
		return n, false
	}
	if resample == nil {
		return geomath.Point3{}, true
	}
	du2, dv2 := resample()
	n2, ok2 := du2.Cross(dv2).Normalize()
	if !ok2 {
		return geomath.Point3{}, true
	}
	return n2, true
}

// invertUV is the shared Gauss-Newton UV inversion used by every Surface
// implementation (spec.md §4.G): it minimizes |S(u,v) - target|^2 by solving
// the 2x2 normal equations built from the surface's partial derivatives at
// each step, clamping to the surface's domain at every iteration.
func invertUV(
	u0, u1, v0, v1 float64,
	evaluate func(u, v float64) geomath.Point3,
	du, dv func(u, v float64) geomath.Point3,
	target geomath.Point3,
	hint *geomath.Point2,
) (geomath.Point2, *kernelerr.ConvergenceWarning) {
	var uv geomath.Point2
	if hint != nil {
		uv = geomath.Point2{X: geomath.Clamp(hint.X, u0, u1), Y: geomath.Clamp(hint.Y, v0, v1)}
	} else {
		uv = geomath.Point2{X: (u0 + u1) / 2, Y: (v0 + v1) / 2}
	}

	const kappa = 1e-6
	for i := 0; i < maxNewtonIterations; i++ {
		p := evaluate(uv.X, uv.Y)
		diff := p.Sub(target)
		su := du(uv.X, uv.Y)
		sv := dv(uv.X, uv.Y)

		// Gauss-Newton normal equations for f(u,v) = |S(u,v)-target|^2:
		// J^T J [du,dv]^T = -J^T diff, with J = [Su Sv].
		a := su.Dot(su)
		b := su.Dot(sv)
		d := sv.Dot(sv)
		rhsU := -su.Dot(diff)
		rhsV := -sv.Dot(diff)

		det := a*d - b*b
		if math.Abs(det) < kappa {
			det = kappa
			if a*d-b*b < 0 {
				det = -kappa
			}
		}
		deltaU := (rhsU*d - rhsV*b) / det
		deltaV := (a*rhsV - b*rhsU) / det

		if math.Abs(deltaU) < geomath.Epsilon && math.Abs(deltaV) < geomath.Epsilon {
			return uv, nil
		}
		uv = geomath.Point2{X: geomath.Clamp(uv.X+deltaU, u0, u1), Y: geomath.Clamp(uv.Y+deltaV, v0, v1)}
	}
	return uv, &kernelerr.ConvergenceWarning{Op: "invert_uv", Iter: maxNewtonIterations}
}
