package geometry

import (
	"math"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// FilletableCurve is the capability an edge's curve must implement to
// participate in fillet surgery (spec.md §4.F step 2): a canonical NURBS
// representation exact enough to sample contact points from. Variants
// without a closed-form rational representation (PCurve, IntersectionCurve,
// UnitParabola, UnitHyperbola) do not implement it, and pkg/fillet reports
// UnsupportedGeometry when a type assertion to this interface fails.
type FilletableCurve interface {
	ToNurbsCurve() (*NurbsCurve, error)
}

// FilletableSurface is the analogous capability for the two faces adjacent
// to a filleted edge (spec.md §4.F step 2).
type FilletableSurface interface {
	ToNurbsSurface() (*NurbsSurface, error)
}

// ToNurbsCurve represents the line as a degree-1 NURBS curve with unit
// weights. Line is generic over 2-D/3-D points (spec.md §3); only the 3-D
// instantiation is fillet-capable, checked the same way BSplineSurface[P]'s
// own evaluate3 bridges its generic control points back to geomath.Point3.
func (l *Line[P]) ToNurbsCurve() (*NurbsCurve, error) {
	origin, ok := any(l.origin).(geomath.Point3)
	if !ok {
		return nil, &kernelerr.UnsupportedGeometry{Variant: "Line[2-D]", Op: "ToNurbsCurve"}
	}
	dir := any(l.dir).(geomath.Point3)
	knots, err := NewKnotVector([]float64{l.t0, l.t0, l.t1, l.t1})
	if err != nil {
		return nil, err
	}
	ctrl := []geomath.Point3{origin.Add(dir.Scale(l.t0)), origin.Add(dir.Scale(l.t1))}
	return NewNurbsCurve(1, knots, ctrl, []float64{1, 1})
}

// circularArcSpan builds the exact rational quadratic Bezier representation
// of a circular arc no wider than pi/2 (the textbook construction, e.g.
// Piegl & Tiller §7.5): weight w = cos(halfAngle) on the middle control
// point, which sits on the tangent-line intersection at the bisector angle.
// u, v must be an orthogonal basis of equal magnitude (the circle's radius).
func circularArcSpan(center, u, v geomath.Point3, t0, t1 float64) ([]geomath.Point3, []float64) {
	half := (t1 - t0) / 2
	mid := t0 + half
	w := math.Cos(half)
	p0 := center.Add(u.Scale(math.Cos(t0))).Add(v.Scale(math.Sin(t0)))
	p2 := center.Add(u.Scale(math.Cos(t1))).Add(v.Scale(math.Sin(t1)))
	p1 := center.Add(u.Scale(math.Cos(mid) / w)).Add(v.Scale(math.Sin(mid) / w))
	return []geomath.Point3{p0, p1, p2}, []float64{1, w, 1}
}

// ToNurbsCurve represents the arc as a chain of rational quadratic Bezier
// spans, each no wider than pi/2 (the standard exact NURBS circle
// construction), reparametrized back over [t0,t1].
func (c *UnitCircle[P]) ToNurbsCurve() (*NurbsCurve, error) {
	center, ok := any(c.center).(geomath.Point3)
	if !ok {
		return nil, &kernelerr.UnsupportedGeometry{Variant: "UnitCircle[2-D]", Op: "ToNurbsCurve"}
	}
	basis0 := any(c.basis0).(geomath.Point3)
	basis1 := any(c.basis1).(geomath.Point3)

	t0, t1 := c.t0, c.t1
	total := t1 - t0
	if total < geomath.Epsilon {
		return nil, &kernelerr.UnsupportedGeometry{Variant: "UnitCircle", Op: "ToNurbsCurve: zero-length arc"}
	}
	spans := int(math.Ceil(total / (math.Pi / 2)))
	if spans < 1 {
		spans = 1
	}
	step := total / float64(spans)

	var ctrl []geomath.Point3
	var weights []float64
	knots := []float64{t0, t0, t0}
	for i := 0; i < spans; i++ {
		s0, s1 := t0+float64(i)*step, t0+float64(i+1)*step
		pts, ws := circularArcSpan(center, basis0, basis1, s0, s1)
		if i == 0 {
			ctrl = append(ctrl, pts[0], pts[1], pts[2])
			weights = append(weights, ws[0], ws[1], ws[2])
		} else {
			ctrl = append(ctrl, pts[1], pts[2])
			weights = append(weights, ws[1], ws[2])
			knots = append(knots, s0, s0)
		}
	}
	knots = append(knots, t1, t1, t1)
	kv, err := NewKnotVector(knots)
	if err != nil {
		return nil, err
	}
	return NewNurbsCurve(2, kv, ctrl, weights)
}

// ToNurbsCurve reprojects the control points at unit weight; a non-rational
// B-spline is the w=1 special case of NURBS.
func (c *BSplineCurve[P]) ToNurbsCurve() (*NurbsCurve, error) {
	ctrl := make([]geomath.Point3, len(c.ctrlPts))
	for i, p := range c.ctrlPts {
		pt, ok := any(p).(geomath.Point3)
		if !ok {
			return nil, &kernelerr.UnsupportedGeometry{Variant: "BSplineCurve[2-D]", Op: "ToNurbsCurve"}
		}
		ctrl[i] = pt
	}
	weights := make([]float64, len(ctrl))
	for i := range weights {
		weights[i] = 1
	}
	return NewNurbsCurve(c.degree, c.knots, ctrl, weights)
}

// ToNurbsCurve returns c itself; a NurbsCurve is already canonical.
func (c *NurbsCurve) ToNurbsCurve() (*NurbsCurve, error) { return c, nil }

// ToNurbsCurve resamples the inner curve's canonical NURBS form over
// [t0,t1] and refits a clamped curve of the same degree: exact at the
// endpoints, an accurate approximation over a strictly interior trim, since
// re-clamping a knot vector at arbitrary interior parameters needs full
// knot-insertion machinery this package does not otherwise require.
func (c *TrimmedCurve) ToNurbsCurve() (*NurbsCurve, error) {
	fc, ok := c.inner.(FilletableCurve)
	if !ok {
		return nil, &kernelerr.UnsupportedGeometry{Variant: "TrimmedCurve.inner", Op: "ToNurbsCurve"}
	}
	inner, err := fc.ToNurbsCurve()
	if err != nil {
		return nil, err
	}
	return inner.trimTo(c.t0, c.t1)
}

// ToNurbsCurve applies the processor's transform to the inner curve's
// control points; an affine map commutes with the rational combination that
// projects homogeneous control points, so this is exact.
func (c *Processor) ToNurbsCurve() (*NurbsCurve, error) {
	fc, ok := c.inner.(FilletableCurve)
	if !ok {
		return nil, &kernelerr.UnsupportedGeometry{Variant: "Processor.inner", Op: "ToNurbsCurve"}
	}
	inner, err := fc.ToNurbsCurve()
	if err != nil {
		return nil, err
	}
	return inner.transformedBy(c.m)
}

// trimTo resamples the projected curve at its own control-point density
// restricted to [t0,t1] and refits a clamped NURBS curve of the same degree
// over a fresh knot vector.
func (n *NurbsCurve) trimTo(t0, t1 float64) (*NurbsCurve, error) {
	degree := n.homogeneous.degree
	samples := len(n.homogeneous.ctrlPts)
	if samples < degree+1 {
		samples = degree + 1
	}
	ctrl := make([]geomath.Point3, samples)
	weights := make([]float64, samples)
	for i := 0; i < samples; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(samples-1)
		h := n.homogeneous.Evaluate(t)
		ctrl[i] = geomath.Point3{X: geomath.SafeDiv(h.X, h.W), Y: geomath.SafeDiv(h.Y, h.W), Z: geomath.SafeDiv(h.Z, h.W)}
		weights[i] = 1
	}
	knots := make([]float64, samples+degree+1)
	for i := 0; i <= degree; i++ {
		knots[i] = t0
		knots[len(knots)-1-i] = t1
	}
	interior := len(knots) - 2*(degree+1)
	for i := 0; i < interior; i++ {
		knots[degree+1+i] = t0 + (t1-t0)*float64(i+1)/float64(interior+1)
	}
	kv, err := NewKnotVector(knots)
	if err != nil {
		return nil, err
	}
	return NewNurbsCurve(degree, kv, ctrl, weights)
}

// transformedBy applies m to every projected control point, leaving weights
// untouched (valid for the affine transforms Processor/Processor3 carry).
func (n *NurbsCurve) transformedBy(m geomath.Matrix4) (*NurbsCurve, error) {
	degree := n.homogeneous.degree
	ctrl := make([]geomath.Point3, len(n.homogeneous.ctrlPts))
	weights := make([]float64, len(n.homogeneous.ctrlPts))
	for i, h := range n.homogeneous.ctrlPts {
		p := geomath.Point3{X: geomath.SafeDiv(h.X, h.W), Y: geomath.SafeDiv(h.Y, h.W), Z: geomath.SafeDiv(h.Z, h.W)}
		ctrl[i] = m.ApplyPoint(p)
		weights[i] = h.W
	}
	return NewNurbsCurve(degree, n.homogeneous.knots, ctrl, weights)
}

// ToNurbsSurface builds the exact bilinear (degree 1x1) NURBS representation
// of the plane over its own UV domain.
func (p *Plane) ToNurbsSurface() (*NurbsSurface, error) {
	ku, err := NewKnotVector([]float64{p.u0, p.u0, p.u1, p.u1})
	if err != nil {
		return nil, err
	}
	kv, err := NewKnotVector([]float64{p.v0, p.v0, p.v1, p.v1})
	if err != nil {
		return nil, err
	}
	ctrl := [][]geomath.Point3{
		{p.Evaluate(p.u0, p.v0), p.Evaluate(p.u0, p.v1)},
		{p.Evaluate(p.u1, p.v0), p.Evaluate(p.u1, p.v1)},
	}
	weights := [][]float64{{1, 1}, {1, 1}}
	return NewNurbsSurface(1, 1, ku, kv, ctrl, weights)
}

// ToNurbsSurface builds a ruled NURBS surface from the profile curve's own
// NURBS conversion, swept linearly (degree 1) along direction over [0,length].
func (e *ExtrudedSurface) ToNurbsSurface() (*NurbsSurface, error) {
	fc, ok := e.profile.(FilletableCurve)
	if !ok {
		return nil, &kernelerr.UnsupportedGeometry{Variant: "ExtrudedSurface.profile", Op: "ToNurbsSurface"}
	}
	profile, err := fc.ToNurbsCurve()
	if err != nil {
		return nil, err
	}
	kv, err := NewKnotVector([]float64{0, 0, e.length, e.length})
	if err != nil {
		return nil, err
	}
	n := len(profile.homogeneous.ctrlPts)
	ctrl := make([][]geomath.Point3, n)
	weights := make([][]float64, n)
	for i, h := range profile.homogeneous.ctrlPts {
		p0 := geomath.Point3{X: geomath.SafeDiv(h.X, h.W), Y: geomath.SafeDiv(h.Y, h.W), Z: geomath.SafeDiv(h.Z, h.W)}
		ctrl[i] = []geomath.Point3{p0, p0.Add(e.direction.Scale(e.length))}
		weights[i] = []float64{h.W, h.W}
	}
	return NewNurbsSurface(profile.homogeneous.degree, 1, profile.homogeneous.knots, kv, ctrl, weights)
}

// ToNurbsSurface revolves the profile curve's own NURBS control points about
// the axis: each control point traces the same rational-arc control
// structure ToNurbsCurve uses for UnitCircle, giving an exact NURBS surface
// of revolution (Piegl & Tiller §8.5).
func (r *RevolutedSurface) ToNurbsSurface() (*NurbsSurface, error) {
	fc, ok := r.profile.(FilletableCurve)
	if !ok {
		return nil, &kernelerr.UnsupportedGeometry{Variant: "RevolutedSurface.profile", Op: "ToNurbsSurface"}
	}
	profile, err := fc.ToNurbsCurve()
	if err != nil {
		return nil, err
	}

	total := r.theta
	if math.Abs(total) < geomath.Epsilon {
		return nil, &kernelerr.UnsupportedGeometry{Variant: "RevolutedSurface", Op: "ToNurbsSurface: zero sweep angle"}
	}
	spans := int(math.Ceil(math.Abs(total) / (math.Pi / 2)))
	if spans < 1 {
		spans = 1
	}
	step := total / float64(spans)

	uKnots := []float64{0, 0, 0}
	for i := 1; i < spans; i++ {
		uKnots = append(uKnots, float64(i)*step, float64(i)*step)
	}
	uKnots = append(uKnots, total, total, total)
	ku, err := NewKnotVector(uKnots)
	if err != nil {
		return nil, err
	}

	nv := len(profile.homogeneous.ctrlPts)
	nu := 2*spans + 1
	ctrl := make([][]geomath.Point3, nu)
	weights := make([][]float64, nu)
	for i := range ctrl {
		ctrl[i] = make([]geomath.Point3, nv)
		weights[i] = make([]float64, nv)
	}

	for j, h := range profile.homogeneous.ctrlPts {
		profilePt := geomath.Point3{X: geomath.SafeDiv(h.X, h.W), Y: geomath.SafeDiv(h.Y, h.W), Z: geomath.SafeDiv(h.Z, h.W)}
		toPoint := profilePt.Sub(r.axisOrigin)
		axial := r.axisDir.Scale(toPoint.Dot(r.axisDir))
		axisPoint := r.axisOrigin.Add(axial)
		radial := toPoint.Sub(axial)

		radius := radial.Norm()
		if radius < geomath.Epsilon {
			for i := 0; i < nu; i++ {
				ctrl[i][j] = profilePt
				weights[i][j] = h.W
			}
			continue
		}
		u, _ := radial.Normalize()
		v := r.axisDir.Cross(u)

		for i := 0; i < spans; i++ {
			s0, s1 := float64(i)*step, float64(i+1)*step
			pts, ws := circularArcSpan(axisPoint, u.Scale(radius), v.Scale(radius), s0, s1)
			if i == 0 {
				ctrl[0][j], ctrl[1][j], ctrl[2][j] = pts[0], pts[1], pts[2]
				weights[0][j], weights[1][j], weights[2][j] = ws[0]*h.W, ws[1]*h.W, ws[2]*h.W
			} else {
				ctrl[2*i+1][j], ctrl[2*i+2][j] = pts[1], pts[2]
				weights[2*i+1][j], weights[2*i+2][j] = ws[1]*h.W, ws[2]*h.W
			}
		}
	}
	return NewNurbsSurface(2, profile.homogeneous.degree, ku, profile.homogeneous.knots, ctrl, weights)
}

// ToNurbsSurface reprojects the control grid at unit weight.
func (s *BSplineSurface[P]) ToNurbsSurface() (*NurbsSurface, error) {
	ctrl := make([][]geomath.Point3, len(s.ctrlPts))
	weights := make([][]float64, len(s.ctrlPts))
	for i, row := range s.ctrlPts {
		ctrl[i] = make([]geomath.Point3, len(row))
		weights[i] = make([]float64, len(row))
		for j, p := range row {
			pt, ok := any(p).(geomath.Point3)
			if !ok {
				return nil, &kernelerr.UnsupportedGeometry{Variant: "BSplineSurface[2-D]", Op: "ToNurbsSurface"}
			}
			ctrl[i][j] = pt
			weights[i][j] = 1
		}
	}
	return NewNurbsSurface(s.degreeU, s.degreeV, s.knotsU, s.knotsV, ctrl, weights)
}

// ToNurbsSurface returns s itself; a NurbsSurface is already canonical.
func (s *NurbsSurface) ToNurbsSurface() (*NurbsSurface, error) { return s, nil }

// ToNurbsSurface applies the processor's affine transform to the inner
// surface's control grid.
func (p *Processor3) ToNurbsSurface() (*NurbsSurface, error) {
	fs, ok := p.inner.(FilletableSurface)
	if !ok {
		return nil, &kernelerr.UnsupportedGeometry{Variant: "Processor3.inner", Op: "ToNurbsSurface"}
	}
	inner, err := fs.ToNurbsSurface()
	if err != nil {
		return nil, err
	}
	rows := inner.homogeneous.ctrlPts
	ctrl := make([][]geomath.Point3, len(rows))
	weights := make([][]float64, len(rows))
	for i, row := range rows {
		ctrl[i] = make([]geomath.Point3, len(row))
		weights[i] = make([]float64, len(row))
		for j, h := range row {
			p0 := geomath.Point3{X: geomath.SafeDiv(h.X, h.W), Y: geomath.SafeDiv(h.Y, h.W), Z: geomath.SafeDiv(h.Z, h.W)}
			ctrl[i][j] = p.m.ApplyPoint(p0)
			weights[i][j] = h.W
		}
	}
	return NewNurbsSurface(inner.homogeneous.degreeU, inner.homogeneous.degreeV, inner.homogeneous.knotsU, inner.homogeneous.knotsV, ctrl, weights)
}

// ToNurbsSurface delegates to the inner surface; the trim rectangle and any
// hole loops constrain a face's parametric domain, not the carrier surface
// a fillet rolls across.
func (t *TrimmedSurface) ToNurbsSurface() (*NurbsSurface, error) {
	fs, ok := t.inner.(FilletableSurface)
	if !ok {
		return nil, &kernelerr.UnsupportedGeometry{Variant: "TrimmedSurface.inner", Op: "ToNurbsSurface"}
	}
	return fs.ToNurbsSurface()
}

var (
	_ FilletableCurve   = (*Line[geomath.Point3])(nil)
	_ FilletableCurve   = (*UnitCircle[geomath.Point3])(nil)
	_ FilletableCurve   = (*BSplineCurve[geomath.Point3])(nil)
	_ FilletableCurve   = (*NurbsCurve)(nil)
	_ FilletableCurve   = (*TrimmedCurve)(nil)
	_ FilletableCurve   = (*Processor)(nil)
	_ FilletableSurface = (*Plane)(nil)
	_ FilletableSurface = (*ExtrudedSurface)(nil)
	_ FilletableSurface = (*RevolutedSurface)(nil)
	_ FilletableSurface = (*BSplineSurface[geomath.Point3])(nil)
	_ FilletableSurface = (*NurbsSurface)(nil)
	_ FilletableSurface = (*Processor3)(nil)
	_ FilletableSurface = (*TrimmedSurface)(nil)
)
