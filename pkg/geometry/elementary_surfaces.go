package geometry

import (
	"math"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// Plane is the flat surface origin + U*u + V*v over a rectangular UV domain
// (spec.md §3: "Plane, Sphere, RevolutedSurface, ExtrudedSurface").
type Plane struct {
	origin, u, v   geomath.Point3
	u0, u1, v0, v1 float64
}

// NewPlane constructs a Plane from an origin and two (not necessarily
// orthonormal) in-plane basis vectors, over the given UV domain.
func NewPlane(origin, u, v geomath.Point3, u0, u1, v0, v1 float64) *Plane {
	return &Plane{origin: origin, u: u, v: v, u0: u0, u1: u1, v0: v0, v1: v1}
}

// Bounds returns the plane's rectangular UV domain.
func (p *Plane) Bounds() (float64, float64, float64, float64) { return p.u0, p.u1, p.v0, p.v1 }

// Origin returns the plane's origin point.
func (p *Plane) Origin() geomath.Point3 { return p.origin }

// U returns the plane's first in-plane basis vector.
func (p *Plane) U() geomath.Point3 { return p.u }

// V returns the plane's second in-plane basis vector.
func (p *Plane) V() geomath.Point3 { return p.v }

// Evaluate returns origin + U*u + V*v.
func (p *Plane) Evaluate(u, v float64) geomath.Point3 {
	return p.origin.Add(p.u.Scale(u)).Add(p.v.Scale(v))
}

// Du returns the constant U basis vector.
func (p *Plane) Du(u, v float64) (geomath.Point3, error) { return p.u, nil }

// Dv returns the constant V basis vector.
func (p *Plane) Dv(u, v float64) (geomath.Point3, error) { return p.v, nil }

// Normal returns U x V normalized; a plane has no poles.
func (p *Plane) Normal(u, v float64) (geomath.Point3, bool, error) {
	n, ok := p.u.Cross(p.v).Normalize()
	if !ok {
		return geomath.Point3{}, false, &kernelerr.SingularEvaluation{Where: "plane with degenerate basis"}
	}
	return n, false, nil
}

// Inclusion reports whether c's image lies in the plane within Epsilon.
func (p *Plane) Inclusion(c Curve) (bool, error) {
	n, _, err := p.Normal(0, 0)
	if err != nil {
		return false, err
	}
	t0, t1 := c.Bounds()
	const samples = 16
	for i := 0; i <= samples; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(samples)
		d := c.Evaluate(t).Sub(p.origin)
		if math.Abs(d.Dot(n)) > geomath.Epsilon {
			return false, nil
		}
	}
	return true, nil
}

// Invert solves the plane's linear system in closed form (no iteration
// needed for a flat surface): project p-origin onto the U,V basis.
func (p *Plane) Invert(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, error) {
	d := target.Sub(p.origin)
	a := p.u.Dot(p.u)
	b := p.u.Dot(p.v)
	e := p.v.Dot(p.v)
	rhsU := d.Dot(p.u)
	rhsV := d.Dot(p.v)
	det := a*e - b*b
	if geomath.NearZero(det) {
		return geomath.Point2{}, &kernelerr.SingularEvaluation{Where: "plane inversion with collinear basis"}
	}
	u := (rhsU*e - rhsV*b) / det
	v := (a*rhsV - b*rhsU) / det
	return geomath.Point2{X: geomath.Clamp(u, p.u0, p.u1), Y: geomath.Clamp(v, p.v0, p.v1)}, nil
}

// SearchNearest for a plane is just Invert; the closed-form projection
// needs no iteration, and a ConvergenceWarning is returned only when
// Invert fails on a collinear basis.
func (p *Plane) SearchNearest(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, *kernelerr.ConvergenceWarning) {
	uv, err := p.Invert(target, hint)
	if err != nil {
		return uv, &kernelerr.ConvergenceWarning{Op: "plane_search_nearest", Iter: 0}
	}
	return uv, nil
}

// Sphere is the surface of revolution center + radius*(cos(v)cos(u),
// cos(v)sin(u), sin(v)), parameterized by longitude u in [0,2pi) and
// latitude v in [-pi/2, pi/2].
type Sphere struct {
	center         geomath.Point3
	radius         float64
	u0, u1, v0, v1 float64
}

// NewSphere constructs a full or partial Sphere patch.
func NewSphere(center geomath.Point3, radius float64, u0, u1, v0, v1 float64) *Sphere {
	return &Sphere{center: center, radius: radius, u0: u0, u1: u1, v0: v0, v1: v1}
}

// Bounds returns the sphere's (longitude, latitude) domain.
func (s *Sphere) Bounds() (float64, float64, float64, float64) { return s.u0, s.u1, s.v0, s.v1 }

// Center returns the sphere's center point.
func (s *Sphere) Center() geomath.Point3 { return s.center }

// Radius returns the sphere's radius.
func (s *Sphere) Radius() float64 { return s.radius }

// Evaluate returns the point at (longitude u, latitude v).
func (s *Sphere) Evaluate(u, v float64) geomath.Point3 {
	cu, su := math.Cos(u), math.Sin(u)
	cv, sv := math.Cos(v), math.Sin(v)
	return geomath.Point3{
		X: s.center.X + s.radius*cv*cu,
		Y: s.center.Y + s.radius*cv*su,
		Z: s.center.Z + s.radius*sv,
	}
}

// Du returns the longitude partial derivative.
func (s *Sphere) Du(u, v float64) (geomath.Point3, error) {
	cu, su := math.Cos(u), math.Sin(u)
	cv := math.Cos(v)
	return geomath.Point3{X: -s.radius * cv * su, Y: s.radius * cv * cu, Z: 0}, nil
}

// Dv returns the latitude partial derivative.
func (s *Sphere) Dv(u, v float64) (geomath.Point3, error) {
	cu, su := math.Cos(u), math.Sin(u)
	cv, sv := math.Cos(v), math.Sin(v)
	return geomath.Point3{X: -s.radius * sv * cu, Y: -s.radius * sv * su, Z: s.radius * cv}, nil
}

// Normal returns the outward radial direction; atPole at v = +-pi/2 where
// the longitude partial vanishes.
func (s *Sphere) Normal(u, v float64) (geomath.Point3, bool, error) {
	du, _ := s.Du(u, v)
	dv, _ := s.Dv(u, v)
	n, atPole := normalFromPartials(du, dv, func() (geomath.Point3, geomath.Point3) {
		vv := v - math.Copysign(1e-4, v)
		d1, _ := s.Du(u, vv)
		d2, _ := s.Dv(u, vv)
		return d1, d2
	})
	if atPole {
		// Fall back to the exact radial direction, which is always defined
		// even when the basis of partials degenerates at a pole.
		radial := s.Evaluate(u, v).Sub(s.center)
		if rn, ok := radial.Normalize(); ok {
			return rn, true, nil
		}
	}
	return n, atPole, nil
}

// Inclusion reports whether c's image lies on the sphere within Epsilon.
func (s *Sphere) Inclusion(c Curve) (bool, error) {
	t0, t1 := c.Bounds()
	const samples = 16
	for i := 0; i <= samples; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(samples)
		d := c.Evaluate(t).Dist(s.center)
		if math.Abs(d-s.radius) > geomath.Epsilon {
			return false, nil
		}
	}
	return true, nil
}

// Invert returns the (longitude, latitude) of the point on the sphere
// nearest target, by direct spherical-coordinate conversion (closed form).
func (s *Sphere) Invert(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, error) {
	d := target.Sub(s.center)
	if geomath.NearZero(d.Norm()) {
		return geomath.Point2{}, &kernelerr.SingularEvaluation{Where: "sphere inversion at center"}
	}
	u := math.Atan2(d.Y, d.X)
	if u < 0 {
		u += 2 * math.Pi
	}
	v := math.Asin(geomath.Clamp(d.Z/d.Norm(), -1, 1))
	return geomath.Point2{X: geomath.Clamp(u, s.u0, s.u1), Y: geomath.Clamp(v, s.v0, s.v1)}, nil
}

// SearchNearest for a sphere is Invert; the closed form always converges.
func (s *Sphere) SearchNearest(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, *kernelerr.ConvergenceWarning) {
	uv, err := s.Invert(target, hint)
	if err != nil {
		return uv, &kernelerr.ConvergenceWarning{Op: "sphere_search_nearest", Iter: 0}
	}
	return uv, nil
}

// RevolutedSurface is the surface swept by a profile curve (in the half-
// plane containing axisOrigin/axisDir) revolved about an axis through angle
// u in [0, theta] (spec.md §3, and the rsweep modeling operator of §4.M
// which builds one of these as its result surface).
type RevolutedSurface struct {
	profile       Curve
	axisOrigin    geomath.Point3
	axisDir       geomath.Point3 // must be unit length
	theta         float64
}

// NewRevolutedSurface constructs a RevolutedSurface. axisDir must already be
// normalized; theta is the total sweep angle in radians.
func NewRevolutedSurface(profile Curve, axisOrigin, axisDir geomath.Point3, theta float64) *RevolutedSurface {
	return &RevolutedSurface{profile: profile, axisOrigin: axisOrigin, axisDir: axisDir, theta: theta}
}

// Bounds returns (0, theta) for the revolution angle and the profile's own
// domain for v.
func (r *RevolutedSurface) Bounds() (float64, float64, float64, float64) {
	v0, v1 := r.profile.Bounds()
	return 0, r.theta, v0, v1
}

// Profile returns the curve being revolved.
func (r *RevolutedSurface) Profile() Curve { return r.profile }

// AxisOrigin returns a point on the revolution axis.
func (r *RevolutedSurface) AxisOrigin() geomath.Point3 { return r.axisOrigin }

// AxisDir returns the (unit) revolution axis direction.
func (r *RevolutedSurface) AxisDir() geomath.Point3 { return r.axisDir }

// Theta returns the total sweep angle in radians.
func (r *RevolutedSurface) Theta() float64 { return r.theta }

func (r *RevolutedSurface) rotation(u float64) geomath.Matrix4 {
	toOrigin := geomath.Translation4(geomath.Point3{X: -r.axisOrigin.X, Y: -r.axisOrigin.Y, Z: -r.axisOrigin.Z})
	rot := geomath.RotationAxis4(r.axisDir, u)
	fromOrigin := geomath.Translation4(r.axisOrigin)
	return fromOrigin.Mul(rot).Mul(toOrigin)
}

// Evaluate returns the profile point at v rotated by u about the axis.
func (r *RevolutedSurface) Evaluate(u, v float64) geomath.Point3 {
	return r.rotation(u).ApplyPoint(r.profile.Evaluate(v))
}

// Du returns the tangential velocity of rotation: axis x (p - axisOrigin).
func (r *RevolutedSurface) Du(u, v float64) (geomath.Point3, error) {
	p := r.Evaluate(u, v)
	radial := p.Sub(r.axisOrigin)
	return r.axisDir.Cross(radial), nil
}

// Dv returns the rotated profile tangent.
func (r *RevolutedSurface) Dv(u, v float64) (geomath.Point3, error) {
	pd, err := r.profile.Derivative(v, 1)
	if err != nil {
		return geomath.Point3{}, err
	}
	return r.rotation(u).ApplyVector(pd), nil
}

// Normal returns the outward normal, atPole when the profile crosses the
// axis (radial distance collapses to zero).
func (r *RevolutedSurface) Normal(u, v float64) (geomath.Point3, bool, error) {
	du, err := r.Du(u, v)
	if err != nil {
		return geomath.Point3{}, false, err
	}
	dv, err := r.Dv(u, v)
	if err != nil {
		return geomath.Point3{}, false, err
	}
	_, _, v0, v1 := r.Bounds()
	n, atPole := normalFromPartials(du, dv, func() (geomath.Point3, geomath.Point3) {
		vv := geomath.Clamp(v+1e-4, v0, v1)
		d1, _ := r.Du(u, vv)
		d2, _ := r.Dv(u, vv)
		return d1, d2
	})
	return n, atPole, nil
}

// Inclusion reports whether c's image lies on the revolved surface within
// Epsilon, by checking each sample's distance from the axis matches some
// point on the profile at the same axial coordinate.
func (r *RevolutedSurface) Inclusion(c Curve) (bool, error) {
	t0, t1 := c.Bounds()
	const samples = 16
	var hint *geomath.Point2
	for i := 0; i <= samples; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(samples)
		p := c.Evaluate(t)
		uv, err := r.Invert(p, hint)
		if err != nil {
			return false, err
		}
		hint = &uv
		if r.Evaluate(uv.X, uv.Y).Dist(p) > geomath.Epsilon {
			return false, nil
		}
	}
	return true, nil
}

// Invert finds u by measuring the rotation angle of p about the axis
// relative to the profile's own plane, then searches v along the profile
// for the point nearest the un-rotated target.
func (r *RevolutedSurface) Invert(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, error) {
	d := target.Sub(r.axisOrigin)
	axial := r.axisDir.Scale(d.Dot(r.axisDir))
	radial := d.Sub(axial)
	if geomath.NearZero(radial.Norm()) {
		v, warn := r.profile.SearchNearest(target, nil)
		if warn != nil {
			return geomath.Point2{X: 0, Y: v}, warn
		}
		return geomath.Point2{X: 0, Y: v}, nil
	}

	profileRadial0 := r.profile.Evaluate((func() float64 { v0, _ := r.profile.Bounds(); return v0 })()).Sub(r.axisOrigin)
	refAxial := r.axisDir.Scale(profileRadial0.Dot(r.axisDir))
	refRadial := profileRadial0.Sub(refAxial)
	if refRadial.Norm() < geomath.Epsilon {
		refRadial = radial
	}
	cosU := geomath.Clamp(geomath.SafeDiv(radial.Dot(refRadial), radial.Norm()*refRadial.Norm()), -1, 1)
	sinSign := r.axisDir.Dot(refRadial.Cross(radial))
	u := math.Acos(cosU)
	if sinSign < 0 {
		u = -u
	}

	unrotated := r.rotation(-u).ApplyPoint(target)
	var vHint *float64
	if hint != nil {
		vHint = &hint.Y
	}
	v, warn := r.profile.SearchNearest(unrotated, vHint)
	if warn != nil {
		return geomath.Point2{X: u, Y: v}, warn
	}
	return geomath.Point2{X: u, Y: v}, nil
}

// SearchNearest delegates to Invert.
func (r *RevolutedSurface) SearchNearest(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, *kernelerr.ConvergenceWarning) {
	uv, err := r.Invert(target, hint)
	if err != nil {
		if warn, ok := err.(*kernelerr.ConvergenceWarning); ok {
			return uv, warn
		}
		return uv, &kernelerr.ConvergenceWarning{Op: "revolved_search_nearest", Iter: maxNewtonIterations}
	}
	return uv, nil
}

// ExtrudedSurface is the surface swept by a profile curve translated along
// direction through [0, length] (spec.md §3, and the result surface of the
// tsweep modeling operator of §4.M).
type ExtrudedSurface struct {
	profile   Curve
	direction geomath.Point3
	length    float64
}

// NewExtrudedSurface constructs an ExtrudedSurface.
func NewExtrudedSurface(profile Curve, direction geomath.Point3, length float64) *ExtrudedSurface {
	return &ExtrudedSurface{profile: profile, direction: direction, length: length}
}

// Bounds returns the profile's domain for u and [0, length] for v.
func (e *ExtrudedSurface) Bounds() (float64, float64, float64, float64) {
	u0, u1 := e.profile.Bounds()
	return u0, u1, 0, e.length
}

// Profile returns the curve being extruded.
func (e *ExtrudedSurface) Profile() Curve { return e.profile }

// Direction returns the extrusion direction vector.
func (e *ExtrudedSurface) Direction() geomath.Point3 { return e.direction }

// Length returns the extrusion length.
func (e *ExtrudedSurface) Length() float64 { return e.length }

// Evaluate returns profile(u) + direction*v.
func (e *ExtrudedSurface) Evaluate(u, v float64) geomath.Point3 {
	return e.profile.Evaluate(u).Add(e.direction.Scale(v))
}

// Du returns the profile tangent at u (translation does not affect it).
func (e *ExtrudedSurface) Du(u, v float64) (geomath.Point3, error) { return e.profile.Derivative(u, 1) }

// Dv returns the constant extrusion direction.
func (e *ExtrudedSurface) Dv(u, v float64) (geomath.Point3, error) { return e.direction, nil }

// Normal returns the outward normal, atPole wherever the profile tangent is
// parallel to the extrusion direction.
func (e *ExtrudedSurface) Normal(u, v float64) (geomath.Point3, bool, error) {
	du, err := e.Du(u, v)
	if err != nil {
		return geomath.Point3{}, false, err
	}
	u0, u1, _, _ := e.Bounds()
	n, atPole := normalFromPartials(du, e.direction, func() (geomath.Point3, geomath.Point3) {
		uu := geomath.Clamp(u+1e-4, u0, u1)
		d1, _ := e.Du(uu, v)
		return d1, e.direction
	})
	return n, atPole, nil
}

// Inclusion reports whether c's image lies on the extruded surface within
// Epsilon.
func (e *ExtrudedSurface) Inclusion(c Curve) (bool, error) {
	t0, t1 := c.Bounds()
	const samples = 16
	var hint *geomath.Point2
	for i := 0; i <= samples; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(samples)
		p := c.Evaluate(t)
		uv, err := e.Invert(p, hint)
		if err != nil {
			return false, err
		}
		hint = &uv
		if e.Evaluate(uv.X, uv.Y).Dist(p) > geomath.Epsilon {
			return false, nil
		}
	}
	return true, nil
}

// Invert solves v from the projection onto direction in closed form, then
// searches the profile for u against the de-extruded point.
func (e *ExtrudedSurface) Invert(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, error) {
	dirNormSq := e.direction.Dot(e.direction)
	if geomath.NearZero(dirNormSq) {
		return geomath.Point2{}, &kernelerr.SingularEvaluation{Where: "extruded surface with zero-length direction"}
	}
	var uHint *float64
	if hint != nil {
		uHint = &hint.X
	}
	u0, u1, v0, v1 := e.Bounds()

	// Project target onto the extrusion axis defined by profile(u0) to get
	// an initial v estimate, then refine by re-solving v using that u.
	u := u0
	if uHint != nil {
		u = geomath.Clamp(*uHint, u0, u1)
	}
	var v float64
	var warn *kernelerr.ConvergenceWarning
	for i := 0; i < 4; i++ {
		base := e.profile.Evaluate(u)
		v = geomath.Clamp(target.Sub(base).Dot(e.direction)/dirNormSq, v0, v1)
		flattened := target.Sub(e.direction.Scale(v))
		u, warn = e.profile.SearchNearest(flattened, &u)
	}
	if warn != nil {
		return geomath.Point2{X: u, Y: v}, warn
	}
	return geomath.Point2{X: u, Y: v}, nil
}

// SearchNearest delegates to Invert.
func (e *ExtrudedSurface) SearchNearest(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, *kernelerr.ConvergenceWarning) {
	uv, err := e.Invert(target, hint)
	if err != nil {
		if warn, ok := err.(*kernelerr.ConvergenceWarning); ok {
			return uv, warn
		}
		return uv, &kernelerr.ConvergenceWarning{Op: "extruded_search_nearest", Iter: maxNewtonIterations}
	}
	return uv, nil
}

var (
	_ Surface = (*Plane)(nil)
	_ Surface = (*Sphere)(nil)
	_ Surface = (*RevolutedSurface)(nil)
	_ Surface = (*ExtrudedSurface)(nil)
)
