package geometry

import (
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// TrimmedSurface restricts an inner surface to a sub-rectangle of its UV
// domain, plus an optional set of closed 2-D boundary loops carving holes
// or an outer silhouette out of that rectangle (spec.md §4.G, and the face
// boundary loops of component T).
type TrimmedSurface struct {
	inner          Surface
	u0, u1, v0, v1 float64
	outerLoop      Curve2D   // parameter-space loop; nil means the full rectangle is the outer bound
	innerLoops     []Curve2D // parameter-space loops carving holes
}

// NewTrimmedSurface constructs a TrimmedSurface, validating the requested
// UV rectangle lies within inner's domain.
func NewTrimmedSurface(inner Surface, u0, u1, v0, v1 float64, outerLoop Curve2D, innerLoops []Curve2D) (*TrimmedSurface, error) {
	iu0, iu1, iv0, iv1 := inner.Bounds()
	if u0 < iu0-geomath.Epsilon || u1 > iu1+geomath.Epsilon || v0 < iv0-geomath.Epsilon || v1 > iv1+geomath.Epsilon {
		return nil, &kernelerr.ParameterOutOfRange{Param: "trim rectangle", Value: u0, Min: iu0, Max: iu1}
	}
	loops := append([]Curve2D(nil), innerLoops...)
	return &TrimmedSurface{inner: inner, u0: u0, u1: u1, v0: v0, v1: v1, outerLoop: outerLoop, innerLoops: loops}, nil
}

// Bounds returns the trimmed rectangle (the bounding box of the trim; point
// membership within holes/outer silhouette is a topology-layer concern, not
// Surface's).
func (t *TrimmedSurface) Bounds() (float64, float64, float64, float64) {
	return t.u0, t.u1, t.v0, t.v1
}

// Inner returns the untrimmed surface this decorator restricts.
func (t *TrimmedSurface) Inner() Surface { return t.inner }

// Loops returns the outer silhouette loop (nil if the full rectangle is the
// outer bound) and the hole loops.
func (t *TrimmedSurface) Loops() (outer Curve2D, holes []Curve2D) { return t.outerLoop, t.innerLoops }

func (t *TrimmedSurface) clampUV(u, v float64) (float64, float64) {
	return geomath.Clamp(u, t.u0, t.u1), geomath.Clamp(v, t.v0, t.v1)
}

// Evaluate delegates to the inner surface after clamping to the trim
// rectangle.
func (t *TrimmedSurface) Evaluate(u, v float64) geomath.Point3 {
	u, v = t.clampUV(u, v)
	return t.inner.Evaluate(u, v)
}

// Du delegates to the inner surface after clamping.
func (t *TrimmedSurface) Du(u, v float64) (geomath.Point3, error) {
	u, v = t.clampUV(u, v)
	return t.inner.Du(u, v)
}

// Dv delegates to the inner surface after clamping.
func (t *TrimmedSurface) Dv(u, v float64) (geomath.Point3, error) {
	u, v = t.clampUV(u, v)
	return t.inner.Dv(u, v)
}

// Normal delegates to the inner surface after clamping.
func (t *TrimmedSurface) Normal(u, v float64) (geomath.Point3, bool, error) {
	u, v = t.clampUV(u, v)
	return t.inner.Normal(u, v)
}

// Inclusion delegates to the inner surface (the trim loops constrain where
// a face's boundary may run, not which points the underlying surface
// passes through).
func (t *TrimmedSurface) Inclusion(c Curve) (bool, error) { return t.inner.Inclusion(c) }

// Invert delegates to the inner surface, then clamps to the trim rectangle.
func (t *TrimmedSurface) Invert(p geomath.Point3, hint *geomath.Point2) (geomath.Point2, error) {
	uv, err := t.inner.Invert(p, hint)
	if err != nil {
		return uv, err
	}
	u, v := t.clampUV(uv.X, uv.Y)
	return geomath.Point2{X: u, Y: v}, nil
}

// SearchNearest delegates to the inner surface, then clamps to the trim
// rectangle.
func (t *TrimmedSurface) SearchNearest(p geomath.Point3, hint *geomath.Point2) (geomath.Point2, *kernelerr.ConvergenceWarning) {
	uv, warn := t.inner.SearchNearest(p, hint)
	u, v := t.clampUV(uv.X, uv.Y)
	return geomath.Point2{X: u, Y: v}, warn
}

// ContainsUV reports whether (u,v) lies within the trim rectangle and
// within the outer loop (if present) and outside every inner loop (hole).
// This is the point-in-polygon test the tessellator (component X) uses to
// decide which UV samples belong to the trimmed face.
func (t *TrimmedSurface) ContainsUV(u, v float64) bool {
	if u < t.u0-geomath.Epsilon || u > t.u1+geomath.Epsilon || v < t.v0-geomath.Epsilon || v > t.v1+geomath.Epsilon {
		return false
	}
	if t.outerLoop != nil && !windingContains(t.outerLoop, u, v) {
		return false
	}
	for _, hole := range t.innerLoops {
		if windingContains(hole, u, v) {
			return false
		}
	}
	return true
}

// windingContains is a standard even-odd ray-casting point-in-polygon test
// over a sampled approximation of a closed Curve2D loop.
func windingContains(loop Curve2D, u, v float64) bool {
	const samples = 64
	t0, t1 := loop.Bounds()
	inside := false
	prev := loop.Evaluate(t0)
	for i := 1; i <= samples; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(samples)
		cur := loop.Evaluate(t)
		if (prev.Y > v) != (cur.Y > v) {
			slope := (cur.X - prev.X) / (cur.Y - prev.Y)
			xCross := prev.X + slope*(v-prev.Y)
			if u < xCross {
				inside = !inside
			}
		}
		prev = cur
	}
	return inside
}

// Processor3 applies an affine/homogeneous transform to every result of an
// inner surface (spec.md §4.G, analogous to the curve Processor).
type Processor3 struct {
	inner Surface
	m     geomath.Matrix4
}

// NewSurfaceProcessor constructs a surface Processor decorator.
func NewSurfaceProcessor(inner Surface, m geomath.Matrix4) *Processor3 {
	return &Processor3{inner: inner, m: m}
}

// Bounds returns the inner surface's domain (transforms do not reparameterize).
func (p *Processor3) Bounds() (float64, float64, float64, float64) { return p.inner.Bounds() }

// Evaluate applies the transform to the inner surface's value.
func (p *Processor3) Evaluate(u, v float64) geomath.Point3 {
	return p.m.ApplyPoint(p.inner.Evaluate(u, v))
}

// Du applies the transform's linear part to the inner u-partial.
func (p *Processor3) Du(u, v float64) (geomath.Point3, error) {
	d, err := p.inner.Du(u, v)
	if err != nil {
		return geomath.Point3{}, err
	}
	return p.m.ApplyVector(d), nil
}

// Dv applies the transform's linear part to the inner v-partial.
func (p *Processor3) Dv(u, v float64) (geomath.Point3, error) {
	d, err := p.inner.Dv(u, v)
	if err != nil {
		return geomath.Point3{}, err
	}
	return p.m.ApplyVector(d), nil
}

// Normal applies the transform's linear part to the inner normal and
// re-normalizes (a non-uniform scale does not preserve normal direction
// under a plain linear map, but the kernel's Processor only ever composes
// rotation/translation/uniform-scale matrices per spec.md §4.M).
func (p *Processor3) Normal(u, v float64) (geomath.Point3, bool, error) {
	n, atPole, err := p.inner.Normal(u, v)
	if err != nil {
		return geomath.Point3{}, false, err
	}
	tn, ok := p.m.ApplyVector(n).Normalize()
	if !ok {
		return geomath.Point3{}, true, nil
	}
	return tn, atPole, nil
}

// Inclusion delegates to the inner surface's own curve inclusion test,
// since transforming both the surface and the curve identically preserves
// inclusion.
func (p *Processor3) Inclusion(c Curve) (bool, error) { return p.inner.Inclusion(c) }

// Invert is not generally solvable from the inner surface's inversion
// without inverting m; a local Gauss-Newton pass over the transformed
// surface is used instead, mirroring the curve Processor's approach.
func (p *Processor3) Invert(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, error) {
	u0, u1, v0, v1 := p.Bounds()
	du := func(u, v float64) geomath.Point3 { d, _ := p.Du(u, v); return d }
	dv := func(u, v float64) geomath.Point3 { d, _ := p.Dv(u, v); return d }
	uv, warn := invertUV(u0, u1, v0, v1, p.Evaluate, du, dv, target, hint)
	if warn != nil {
		return uv, warn
	}
	return uv, nil
}

// SearchNearest mirrors Invert.
func (p *Processor3) SearchNearest(target geomath.Point3, hint *geomath.Point2) (geomath.Point2, *kernelerr.ConvergenceWarning) {
	u0, u1, v0, v1 := p.Bounds()
	du := func(u, v float64) geomath.Point3 { d, _ := p.Du(u, v); return d }
	dv := func(u, v float64) geomath.Point3 { d, _ := p.Dv(u, v); return d }
	return invertUV(u0, u1, v0, v1, p.Evaluate, du, dv, target, hint)
}

var (
	_ Surface = (*TrimmedSurface)(nil)
	_ Surface = (*Processor3)(nil)
)
