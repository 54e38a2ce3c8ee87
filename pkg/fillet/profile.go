package fillet

import (
	"math"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
)

// buildContactCurve fits a degree-1 clamped B-spline through pts, one
// control point per sample, reparametrized over [t0,t1]. A degree-1
// B-spline's control polygon equals the curve itself, so this
// interpolates the sampled contact points exactly; the geometry package
// has no higher-order interpolation solver, so a finer Division is the
// way to tighten this curve's approximation of the true contact locus.
func buildContactCurve(pts []geomath.Point3, t0, t1 float64) (*geometry.BSplineCurve[geomath.Point3], error) {
	knots, err := clampedUniformKnots(1, len(pts), t0, t1)
	if err != nil {
		return nil, err
	}
	return geometry.NewBSplineCurve[geomath.Point3](1, knots, pts)
}

// ruledPanels builds one flat (degree 1 x degree 1) B-spline surface
// between each pair of adjacent rails, each rail a same-length sequence
// of points sampled at the edge's Division density. Chamfer uses two
// rails (one panel), Ridge three (two panels meeting at the apex line),
// Custom len(profile) rails (len(profile)-1 panels).
func ruledPanels(rails [][]geomath.Point3) ([]geometry.Surface, error) {
	n := len(rails[0]) - 1
	knotsV, err := clampedUniformKnots(1, n+1, 0, 1)
	if err != nil {
		return nil, err
	}
	knotsU, err := clampedUniformKnots(1, 2, 0, 1)
	if err != nil {
		return nil, err
	}

	panels := make([]geometry.Surface, 0, len(rails)-1)
	for r := 0; r+1 < len(rails); r++ {
		ctrl := [][]geomath.Point3{append([]geomath.Point3(nil), rails[r]...), append([]geomath.Point3(nil), rails[r+1]...)}
		s, err := geometry.NewBSplineSurface[geomath.Point3](1, 1, knotsU, knotsV, ctrl)
		if err != nil {
			return nil, err
		}
		panels = append(panels, s)
	}
	return panels, nil
}

// roundPanel builds the exact rational-quadratic-in-U, linear-in-V NURBS
// surface for the round profile: each rail-aligned row is the circular
// arc of the rolling ball at that sample (same weighted-control-point
// construction pkg/geometry's circularArcSpan uses for an exact NURBS
// circle, applied here cross-section by cross-section), ruled linearly
// along the edge between samples.
func roundPanel(frames []frame) (geometry.Surface, error) {
	n := len(frames) - 1
	ctrl := [][]geomath.Point3{make([]geomath.Point3, n+1), make([]geomath.Point3, n+1), make([]geomath.Point3, n+1)}
	weights := [][]float64{make([]float64, n+1), make([]float64, n+1), make([]float64, n+1)}

	for j, fr := range frames {
		a := fr.contactA.Sub(fr.center)
		b := fr.contactB.Sub(fr.center)
		an, okA := a.Normalize()
		bn, okB := b.Normalize()
		if !okA || !okB {
			an, bn = fr.normalA, fr.normalB
		}
		cosTheta := geomath.Clamp(an.Dot(bn), -1, 1)
		half := math.Acos(cosTheta) / 2
		w := math.Cos(half)

		vDir := bn.Sub(an.Scale(an.Dot(bn)))
		vn, ok := vDir.Normalize()
		if !ok {
			vn = an
		}
		radius := fr.radius
		mid := fr.center.Add(an.Scale(radius * math.Cos(half) / w)).Add(vn.Scale(radius * math.Sin(half) / w))

		ctrl[0][j], ctrl[1][j], ctrl[2][j] = fr.contactA, mid, fr.contactB
		weights[0][j], weights[1][j], weights[2][j] = 1, w, 1
	}

	knotsU, err := geometry.NewKnotVector([]float64{0, 0, 0, 1, 1, 1})
	if err != nil {
		return nil, err
	}
	knotsV, err := clampedUniformKnots(1, n+1, 0, 1)
	if err != nil {
		return nil, err
	}
	return geometry.NewNurbsSurface(2, 1, knotsU, knotsV, ctrl, weights)
}

// ridgeRail returns the rail of apex points for the Ridge profile: each
// sample's midpoint between the two contact points, pushed away from the
// ball center by half the sample's radius. Where the two contact points
// coincide, the apex is the contact point itself.
func ridgeRail(frames []frame) []geomath.Point3 {
	rail := make([]geomath.Point3, len(frames))
	for j, fr := range frames {
		if fr.contactA.Dist(fr.contactB) < geomath.Epsilon {
			rail[j] = fr.contactA
			continue
		}
		mid := fr.contactA.Add(fr.contactB).Scale(0.5)
		away := mid.Sub(fr.center)
		dir, ok := away.Normalize()
		if !ok {
			dir = fr.normalA.Add(fr.normalB)
			dir, _ = dir.Normalize()
		}
		rail[j] = mid.Add(dir.Scale(fr.radius * 0.5))
	}
	return rail
}

// customRail evaluates one custom profile sample point across every
// frame, mapping (X,Y) in the profile's local cross-section coordinates
// onto center + X*r*normalA + Y*r*normalB (spec.md §4.F "sweep of the
// user-supplied 2-D profile through the local frame").
func customRail(frames []frame, pt ProfilePoint) []geomath.Point3 {
	rail := make([]geomath.Point3, len(frames))
	for j, fr := range frames {
		if fr.contactA.Dist(fr.contactB) < geomath.Epsilon {
			rail[j] = fr.contactA
			continue
		}
		rail[j] = fr.center.Add(fr.normalA.Scale(pt.X * fr.radius)).Add(fr.normalB.Scale(pt.Y * fr.radius))
	}
	return rail
}

func contactRails(frames []frame) (a, b []geomath.Point3) {
	a = make([]geomath.Point3, len(frames))
	b = make([]geomath.Point3, len(frames))
	for j, fr := range frames {
		a[j], b[j] = fr.contactA, fr.contactB
	}
	return a, b
}

// buildFaceSurfaces dispatches to the profile-specific construction
// (spec.md §4.F "Replace step (3)-(4) with a flat ruled surface
// (chamfer), a V-profile ruled surface (ridge), or a sweep of the
// user-supplied 2-D profile (custom)").
func buildFaceSurfaces(frames []frame, opts FilletOptions) ([]geometry.Surface, error) {
	if opts.Profile != Chamfer && opts.Profile != Ridge && opts.Profile != Custom {
		s, err := roundPanel(frames)
		if err != nil {
			return nil, err
		}
		return []geometry.Surface{s}, nil
	}
	return ruledPanels(computeRails(frames, opts))
}

// computeRails returns the ordered sequence of boundary rails a
// profile's panels run between: two for Chamfer, three for Ridge (with
// the apex line in the middle), and one per user-supplied point for
// Custom.
func computeRails(frames []frame, opts FilletOptions) [][]geomath.Point3 {
	contactA, contactB := contactRails(frames)
	switch opts.Profile {
	case Ridge:
		return [][]geomath.Point3{contactA, ridgeRail(frames), contactB}
	case Custom:
		rails := make([][]geomath.Point3, 0, len(opts.CustomProfile))
		for _, pt := range opts.CustomProfile {
			rails = append(rails, customRail(frames, pt))
		}
		return rails
	default:
		return [][]geomath.Point3{contactA, contactB}
	}
}
