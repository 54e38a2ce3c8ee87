package geometry

import (
	"math"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// RbfSurface ("rolling-ball fillet surface") is the blend surface the
// fillet engine (component F) builds between the two rail curves left
// behind when an edge is replaced by a rolling ball of (possibly variable)
// radius: u sweeps along the edge, v sweeps across the fillet's circular
// cross-section from rail0 to rail1 (spec.md §4.F).
//
// At each u the ball center and arc angle are derived from the two rail
// points and the adjacent faces' outward normals at that u, so a
// non-constant radius function still produces a continuous blend.
type RbfSurface struct {
	rail0, rail1     Curve
	normal0, normal1 func(u float64) (geomath.Point3, error)
	radius           func(u float64) float64
	u0, u1           float64
}

// NewRbfSurface constructs an RbfSurface. rail0 and rail1 must share the
// parameter domain [u0,u1]; normal0/normal1 give each adjacent face's
// outward normal along its rail at parameter u; radius gives the ball
// radius at u (constant or Variable per spec.md §4.F's FilletOptions).
func NewRbfSurface(rail0, rail1 Curve, normal0, normal1 func(u float64) (geomath.Point3, error), radius func(u float64) float64, u0, u1 float64) *RbfSurface {
	return &RbfSurface{rail0: rail0, rail1: rail1, normal0: normal0, normal1: normal1, radius: radius, u0: u0, u1: u1}
}

// Bounds returns ([u0,u1], [0,1]): u along the edge, v across the arc.
func (s *RbfSurface) Bounds() (float64, float64, float64, float64) { return s.u0, s.u1, 0, 1 }

// arcFrame computes, at parameter u, the ball center, rotation axis, start
// vector (center -> rail0 point), and total sweep angle of the fillet arc.
func (s *RbfSurface) arcFrame(u float64) (center, axis, start geomath.Point3, angle float64, err error) {
	p0 := s.rail0.Evaluate(u)
	p1 := s.rail1.Evaluate(u)
	n0, e := s.normal0(u)
	if e != nil {
		return geomath.Point3{}, geomath.Point3{}, geomath.Point3{}, 0, e
	}
	n1, e := s.normal1(u)
	if e != nil {
		return geomath.Point3{}, geomath.Point3{}, geomath.Point3{}, 0, e
	}
	r := s.radius(u)

	c0 := p0.Add(n0.Scale(r))
	c1 := p1.Add(n1.Scale(r))
	center = c0.Lerp(c1, 0.5)

	start = p0.Sub(center)
	end := p1.Sub(center)

	axisRaw := start.Cross(end)
	var ok bool
	axis, ok = axisRaw.Normalize()
	if !ok {
		// rail0(u) and rail1(u) are coincident with the center (degenerate
		// arc, radius ~ 0): fall back to the average outward normal as the
		// rotation axis so Evaluate still returns a well-defined point.
		axis, ok = n0.Add(n1).Normalize()
		if !ok {
			axis = geomath.Point3{X: 0, Y: 0, Z: 1}
		}
		angle = 0
		return center, axis, start, angle, nil
	}

	cosA := geomath.Clamp(geomath.SafeDiv(start.Dot(end), start.Norm()*end.Norm()), -1, 1)
	angle = math.Acos(cosA)
	return center, axis, start, angle, nil
}

// Evaluate rotates the start vector of the u-arc by angle*v about the arc's
// axis and offsets from the ball center.
func (s *RbfSurface) Evaluate(u, v float64) geomath.Point3 {
	center, axis, start, angle, err := s.arcFrame(u)
	if err != nil {
		return s.rail0.Evaluate(u)
	}
	rot := geomath.RotationAxis4(axis, angle*v)
	return center.Add(rot.ApplyVector(start))
}

// Du estimates the u-partial by central differencing over the arc frame,
// since the frame (center, axis, angle) varies with u in a way that has no
// simple closed form for a non-constant radius function.
func (s *RbfSurface) Du(u, v float64) (geomath.Point3, error) {
	const h = 1e-5
	u0, u1, _, _ := s.Bounds()
	uLo, uHi := math.Max(u0, u-h), math.Min(u1, u+h)
	if uHi <= uLo {
		return geomath.Point3{}, &kernelerr.SingularEvaluation{Where: "rbf surface with degenerate u domain"}
	}
	return s.Evaluate(uHi, v).Sub(s.Evaluate(uLo, v)).Scale(1 / (uHi - uLo)), nil
}

// Dv returns the exact tangential velocity of the arc's rotation: axis x
// (point - center), scaled by the total sweep angle (d/dv of angle*v is
// angle).
func (s *RbfSurface) Dv(u, v float64) (geomath.Point3, error) {
	_, axis, start, angle, err := s.arcFrame(u)
	if err != nil {
		return geomath.Point3{}, err
	}
	rot := geomath.RotationAxis4(axis, angle*v)
	radial := rot.ApplyVector(start)
	return axis.Cross(radial).Scale(angle), nil
}

// Normal returns the outward normal of the fillet surface: from the ball
// center, the normal at any point on its surface is radially outward.
func (s *RbfSurface) Normal(u, v float64) (geomath.Point3, bool, error) {
	_, axis, start, angle, err := s.arcFrame(u)
	if err != nil {
		return geomath.Point3{}, false, err
	}
	rot := geomath.RotationAxis4(axis, angle*v)
	radial := rot.ApplyVector(start)
	n, ok := radial.Normalize()
	if !ok {
		return geomath.Point3{}, true, nil
	}
	return n, false, nil
}

// Inclusion reports whether c's image lies on the fillet surface within
// EpsilonTopo (a looser tolerance than Epsilon, since the rolling-ball
// construction is itself an approximation along u per spec.md §4.F).
func (s *RbfSurface) Inclusion(c Curve) (bool, error) {
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
		if s.Evaluate(uv.X, uv.Y).Dist(p) > geomath.EpsilonTopo {
			return false, nil
		}
	}
	return true, nil
}

// Invert finds u by searching rail0 for the nearest rail parameter (a
// reasonable seed since u is shared between both rails), then finds v by
// projecting the target onto that u's arc angle.
func (s *RbfSurface) Invert(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, error) {
	var uHint *float64
	if hint != nil {
		uHint = &hint.X
	}
	u, warn := s.rail0.SearchNearest(target, uHint)

	center, axis, start, angle, err := s.arcFrame(u)
	if err != nil {
		return geomath.Point2{X: u, Y: 0}, err
	}
	if geomath.NearZero(angle) {
		if warn != nil {
			return geomath.Point2{X: u, Y: 0}, warn
		}
		return geomath.Point2{X: u, Y: 0}, nil
	}
	radial := target.Sub(center)
	cosV := geomath.Clamp(geomath.SafeDiv(start.Dot(radial), start.Norm()*radial.Norm()), -1, 1)
	vAngle := math.Acos(cosV)
	sinSign := axis.Dot(start.Cross(radial))
	if sinSign < 0 {
		vAngle = -vAngle
	}
	v := geomath.Clamp(vAngle/angle, 0, 1)
	if warn != nil {
		return geomath.Point2{X: u, Y: v}, warn
	}
	return geomath.Point2{X: u, Y: v}, nil
}

// SearchNearest delegates to Invert.
func (s *RbfSurface) SearchNearest(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, *kernelerr.ConvergenceWarning) {
	uv, err := s.Invert(target, hint)
	if err != nil {
		if warn, ok := err.(*kernelerr.ConvergenceWarning); ok {
			return uv, warn
		}
		return uv, &kernelerr.ConvergenceWarning{Op: "rbf_search_nearest", Iter: maxNewtonIterations}
	}
	return uv, nil
}

var _ Surface = (*RbfSurface)(nil)
