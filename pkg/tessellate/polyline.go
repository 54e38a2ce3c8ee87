package tessellate

import (
	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/identity"
)

// polylineSample is one point along a sampled edge, already registered in
// the shared position pool.
type polylineSample struct {
	t   float64
	p   geomath.Point3
	pos int
}

// edgePolylineMap is the process-local (edge identity -> polyline) table
// spec.md §4.X's "Edge welding" section requires: generated once per edge
// on first visit, read (forward or reversed) on every subsequent visit so
// that faces sharing an edge share its 3-D vertices exactly.
type edgePolylineMap struct {
	byID map[identity.Token][]polylineSample
}

// buildEdgePolylines runs the sequential pass over every boundary edge of
// every face, sampling each edge exactly once keyed by identity. Running
// this pass before the parallel per-face stage is what spec.md's
// concurrency section calls the "two-phase pattern... trivially
// deterministic" alternative to a mutex-guarded one-pass strategy.
func buildEdgePolylines(shell *brep.Shell, tol float64, pool *positionPool) *edgePolylineMap {
	m := &edgePolylineMap{byID: map[identity.Token][]polylineSample{}}
	for _, f := range shell.Faces() {
		for _, w := range f.Boundaries() {
			for _, e := range w.Edges() {
				if _, ok := m.byID[e.ID()]; ok {
					continue
				}
				samples := sampleEdge(e, tol)
				for i := range samples {
					samples[i].pos = pool.addPosition(samples[i].p)
				}
				m.byID[e.ID()] = samples
			}
		}
	}
	return m
}

// forEdge returns e's polyline in e's current traversal direction: forward
// if e.Orientation() matches the direction the polyline was sampled in,
// reversed otherwise.
func (m *edgePolylineMap) forEdge(e *brep.Edge) []polylineSample {
	base := m.byID[e.ID()]
	if e.Orientation() {
		return base
	}
	reversed := make([]polylineSample, len(base))
	for i, s := range base {
		reversed[len(base)-1-i] = s
	}
	return reversed
}

// splitmix64 deterministically mixes a monotonic identity token into a
// well-distributed pseudo-random value in [0,1), used as the sampling
// perturbation seed spec.md §4.X's "Determinism" paragraph calls for: a
// hash of edge identity, not wall-clock or process state, so regenerated
// meshes are bit-identical.
func splitmix64(x uint64) float64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z = z ^ (z >> 31)
	return float64(z>>11) / float64(1<<53)
}

// maxSampleDepth bounds the adaptive-subdivision recursion so a
// pathological curve (near-zero curvature radius) cannot blow the stack.
const maxSampleDepth = 20

// sampleEdge adaptively samples e's curve into a polyline whose chord-height
// error is at most tol (spec.md §4.X step 1), recursively bisecting any
// span whose midpoint departs from the chord by more than tol. A tiny,
// deterministic per-edge jitter is added to interior split points so that
// two edges with coincident geometry but distinct identity (e.g. two
// congruent fillet rails) do not sample at bit-identical parameters, which
// would otherwise let a symmetric surface's Newton inversion latch onto the
// same degenerate seed on both sides.
func sampleEdge(e *brep.Edge, tol float64) []polylineSample {
	curve := e.Curve()
	t0, t1 := curve.Bounds()
	jitter := (splitmix64(uint64(e.ID())) - 0.5) * (t1 - t0) * 1e-6

	var pts []polylineSample
	pts = append(pts, polylineSample{t: t0, p: curve.Evaluate(t0)})

	var recurse func(a, b float64, pa, pb geomath.Point3, depth int)
	recurse = func(a, b float64, pa, pb geomath.Point3, depth int) {
		mid := a + (b-a)/2
		if depth < maxSampleDepth {
			mid += jitter * (1 - 2*mid/(t1-t0+1e-300))
		}
		if mid <= a || mid >= b {
			mid = a + (b-a)/2
		}
		pm := curve.Evaluate(mid)
		if depth >= maxSampleDepth || chordHeight(pa, pb, pm) <= tol {
			pts = append(pts, polylineSample{t: b, p: pb})
			return
		}
		recurse(a, mid, pa, pm, depth+1)
		recurse(mid, b, pm, pb, depth+1)
	}
	recurse(t0, t1, pts[0].p, curve.Evaluate(t1), 0)
	return pts
}

// chordHeight returns the distance from pm to the line segment pa-pb, the
// deviation the adaptive sampler bounds by tol.
func chordHeight(pa, pb, pm geomath.Point3) float64 {
	chord := pb.Sub(pa)
	length := chord.Norm()
	if length < geomath.Epsilon {
		return pm.Dist(pa)
	}
	dir, _ := chord.Normalize()
	proj := pm.Sub(pa).Dot(dir)
	closest := pa.Add(dir.Scale(proj))
	return pm.Dist(closest)
}
