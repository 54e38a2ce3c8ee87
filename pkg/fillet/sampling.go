package fillet

import (
	"math"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// frame is one sampled cross-section along a filleted edge (spec.md §4.F
// step 3): the edge point, the rolling-ball center, and the two contact
// points where the ball touches each adjacent surface.
type frame struct {
	edgePoint geomath.Point3
	center    geomath.Point3
	contactA  geomath.Point3
	contactB  geomath.Point3
	normalA   geomath.Point3
	normalB   geomath.Point3
	radius    float64
}

// sampleFrames implements spec.md §4.F step 3 (and the variable-radius
// note: "Sampling (3) uses r(t_i) at each sample"): it walks N+1
// parameters along the edge, and at each one builds the local frame from
// the two adjacent surfaces' normals and places the rolling-ball center
// along their bisector at the distance that makes the ball tangent to
// both — the standard construction under the local approximation that
// each surface is planar at the contact point (exact for Plane, a close
// approximation elsewhere at the kernel's sampling density).
func sampleFrames(spec *edgeFilletSpec, opts FilletOptions) ([]frame, error) {
	n := opts.division()
	frames := make([]frame, n+1)

	for i := 0; i <= n; i++ {
		tLocal := spec.t0 + (spec.t1-spec.t0)*float64(i)/float64(n)
		tChain := spec.chainT0 + (spec.chainT1-spec.chainT0)*float64(i)/float64(n)
		r := opts.radiusAt(tChain)

		p := spec.curve.Evaluate(tLocal)

		uvA, err := spec.surfs[0].Invert(p, nil)
		if err != nil {
			return nil, err
		}
		uvB, err := spec.surfs[1].Invert(p, nil)
		if err != nil {
			return nil, err
		}
		na, err := outwardNormal(spec.occs[0].face, spec.surfs[0], uvA)
		if err != nil {
			return nil, err
		}
		nb, err := outwardNormal(spec.occs[1].face, spec.surfs[1], uvB)
		if err != nil {
			return nil, err
		}

		bisector := na.Add(nb)
		u, ok := bisector.Normalize()
		if !ok {
			// The two faces are locally co-planar/opposed along their
			// normals (bisector undefined); fall back to na itself so the
			// ball still offsets away from face A rather than aborting.
			u = na
		}
		cosPhi := geomath.Clamp(na.Dot(nb), -1, 1)
		halfCos := math.Sqrt(geomath.Clamp((1+cosPhi)/2, 1e-6, 1))
		center := p.Sub(u.Scale(r / halfCos))

		approxA := center.Add(na.Scale(r))
		approxB := center.Add(nb.Scale(r))

		refinedUVA, err := spec.surfs[0].Invert(approxA, &uvA)
		if err != nil {
			return nil, err
		}
		refinedUVB, err := spec.surfs[1].Invert(approxB, &uvB)
		if err != nil {
			return nil, err
		}
		// The end samples' contacts lie on the faces' boundaries by
		// construction (pinEnds replaces them), so only interior samples
		// are checked.
		if i > 0 && i < n {
			if err := checkWithinDomain(spec.surfs[0], refinedUVA, r); err != nil {
				return nil, err
			}
			if err := checkWithinDomain(spec.surfs[1], refinedUVB, r); err != nil {
				return nil, err
			}
		}

		frames[i] = frame{
			edgePoint: p,
			center:    center,
			contactA:  spec.surfs[0].Evaluate(refinedUVA.X, refinedUVA.Y),
			contactB:  spec.surfs[1].Evaluate(refinedUVB.X, refinedUVB.Y),
			normalA:   na,
			normalB:   nb,
			radius:    r,
		}
	}
	return frames, nil
}

// checkWithinDomain reports RadiusTooLarge when the contact point's
// parameter lands on (or was clamped to) the surface's domain boundary —
// the ball has rolled off the edge of the adjacent face (spec.md §4.F
// "RadiusTooLarge (when the ball would leave the adjacent face)").
func checkWithinDomain(s interface {
	Bounds() (u0, u1, v0, v1 float64)
}, uv geomath.Point2, radius float64) error {
	u0, u1, v0, v1 := s.Bounds()
	margin := 1e-4 * math.Max(u1-u0, v1-v0)
	if uv.X <= u0+margin || uv.X >= u1-margin || uv.Y <= v0+margin || uv.Y >= v1-margin {
		// MaxRadius is reported as the requested radius; the true maximum
		// radius is not computed.
		return &kernelerr.RadiusTooLarge{Radius: radius, MaxRadius: radius}
	}
	return nil
}
