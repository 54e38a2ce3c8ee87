package tessellate

import (
	"math"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/polymesh"
)

// ring is a simple (non-self-intersecting) closed polygon boundary in UV,
// with each vertex carrying its already-registered position/UV/normal
// pool indices.
type ring struct {
	uv  []geomath.Point2
	vtx []polymesh.Vertex
}

// orient forces loop to counter-clockwise (positive signed area) or
// clockwise, per the sign of want.
func orient(loop boundaryLoop, ccw bool) boundaryLoop {
	area := signedAreaUV(loop)
	if (area >= 0) == ccw {
		return loop
	}
	return reverseLoop(loop)
}

// buildRing assembles a boundaryLoop into a ring, registering a normal for
// every boundary sample (boundary loops carry position/UV already; the
// normal buffer is populated lazily here since only the outer-face
// triangulation step needs one per vertex).
func buildRing(surface geometry.Surface, loop boundaryLoop, pool *positionPool, uvOf map[int]geomath.Point2) ring {
	r := ring{uv: append([]geomath.Point2(nil), loop.uv...)}
	r.vtx = make([]polymesh.Vertex, len(loop.uv))
	for i, uv := range loop.uv {
		n, _, _ := surface.Normal(uv.X, uv.Y)
		norIdx := pool.addNormal(n)
		uvIdx := pool.addUV(uv)
		uvOf[uvIdx] = uv
		r.vtx[i] = polymesh.Vertex{Pos: loop.pos[i], UV: uvIdx, Nor: norIdx}
	}
	return r
}

// bridgeHoles splices each hole ring into the outer ring at the pair of
// vertices (one on the outer boundary, one on the hole) with minimum UV
// distance, the classic slit construction that turns a polygon-with-holes
// into one simple polygon an ear-clipper can consume directly. This
// assumes holes are well separated from the outer boundary and from each
// other, true of every face this kernel currently produces (fillet trim
// and Euler-operation holes never abut the outer wire).
func bridgeHoles(outer ring, holes []ring) ring {
	merged := outer
	for _, hole := range holes {
		bi, hi := nearestPair(merged.uv, hole.uv)
		merged = spliceRing(merged, hole, bi, hi)
	}
	return merged
}

func nearestPair(a, b []geomath.Point2) (ai, bi int) {
	best := math.Inf(1)
	for i, pa := range a {
		for j, pb := range b {
			d := pa.Dist(pb)
			if d < best {
				best, ai, bi = d, i, j
			}
		}
	}
	return ai, bi
}

// spliceRing inserts hole into outer between index bi and bi+1, entering
// and leaving through hi, duplicating the two bridge vertices as the slit
// construction requires.
func spliceRing(outer, hole ring, bi, hi int) ring {
	var uv []geomath.Point2
	var vtx []polymesh.Vertex
	n := len(outer.uv)
	for i := 0; i <= bi; i++ {
		uv = append(uv, outer.uv[i])
		vtx = append(vtx, outer.vtx[i])
	}
	m := len(hole.uv)
	for k := 0; k <= m; k++ {
		idx := (hi + k) % m
		uv = append(uv, hole.uv[idx])
		vtx = append(vtx, hole.vtx[idx])
	}
	uv = append(uv, outer.uv[bi])
	vtx = append(vtx, outer.vtx[bi])
	for i := bi + 1; i < n; i++ {
		uv = append(uv, outer.uv[i])
		vtx = append(vtx, outer.vtx[i])
	}
	return ring{uv: uv, vtx: vtx}
}

// earClip triangulates a simple polygon ring by repeated ear removal.
func earClip(r ring) []polymesh.TriFace {
	n := len(r.uv)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var tris []polymesh.TriFace
	guard := 0
	for len(idx) > 3 && guard < 4*n+16 {
		guard++
		ear := findEar(r, idx)
		prev, cur, next := idx[(ear-1+len(idx))%len(idx)], idx[ear], idx[(ear+1)%len(idx)]
		tris = append(tris, polymesh.TriFace{r.vtx[prev], r.vtx[cur], r.vtx[next]})
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	if len(idx) == 3 {
		tris = append(tris, polymesh.TriFace{r.vtx[idx[0]], r.vtx[idx[1]], r.vtx[idx[2]]})
	}
	return tris
}

// findEar returns the position in idx of a valid ear tip, or 0 as a
// last-resort fallback if numerical degeneracy leaves none (a bounded
// guard in earClip prevents this from ever looping forever).
func findEar(r ring, idx []int) int {
	n := len(idx)
	for i := 0; i < n; i++ {
		prev, cur, next := idx[(i-1+n)%n], idx[i], idx[(i+1)%n]
		a, b, c := r.uv[prev], r.uv[cur], r.uv[next]
		if cross2(b.Sub(a), c.Sub(a)) <= 1e-12 {
			continue // reflex or degenerate
		}
		isEar := true
		for j := 0; j < n; j++ {
			p := idx[j]
			if p == prev || p == cur || p == next {
				continue
			}
			if pointInTriangle(r.uv[p], a, b, c) {
				isEar = false
				break
			}
		}
		if isEar {
			return i
		}
	}
	return 0
}

func cross2(a, b geomath.Point2) float64 { return a.X*b.Y - a.Y*b.X }

func pointInTriangle(p, a, b, c geomath.Point2) bool {
	d1 := cross2(p.Sub(a), b.Sub(a))
	d2 := cross2(p.Sub(b), c.Sub(b))
	d3 := cross2(p.Sub(c), a.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// maxRefineDepth bounds the chord-height refinement pass below.
const maxRefineDepth = 6

// refineTriangles recursively splits any triangle whose surface deviates
// from its flat interpolation by more than tol at the UV centroid,
// inserting a fresh interior vertex (spec.md §4.X's tolerance contract:
// "for every point on every face, the nearest mesh vertex is within τ" —
// ear clipping alone only guarantees this at the boundary).
func refineTriangles(surface geometry.Surface, tris []polymesh.TriFace, tol float64, pool *positionPool, uvOf map[int]geomath.Point2, depth int) []polymesh.TriFace {
	var out []polymesh.TriFace
	for _, t := range tris {
		out = append(out, refineOne(surface, t, tol, pool, uvOf, depth)...)
	}
	return out
}

func refineOne(surface geometry.Surface, t polymesh.TriFace, tol float64, pool *positionPool, uvOf map[int]geomath.Point2, depth int) []polymesh.TriFace {
	if depth >= maxRefineDepth {
		return []polymesh.TriFace{t}
	}
	uvA, uvB, uvC := uvOf[t[0].UV], uvOf[t[1].UV], uvOf[t[2].UV]
	centroidUV := geomath.Point2{X: (uvA.X + uvB.X + uvC.X) / 3, Y: (uvA.Y + uvB.Y + uvC.Y) / 3}
	trueP := surface.Evaluate(centroidUV.X, centroidUV.Y)
	flatEstimate := affineAt(surface, uvA, uvB, uvC, centroidUV)
	if trueP.Dist(flatEstimate) <= tol {
		return []polymesh.TriFace{t}
	}

	n, _, _ := surface.Normal(centroidUV.X, centroidUV.Y)
	pos := pool.addPosition(trueP)
	nor := pool.addNormal(n)
	uvIdx := pool.addUV(centroidUV)
	uvOf[uvIdx] = centroidUV
	mid := polymesh.Vertex{Pos: pos, UV: uvIdx, Nor: nor}

	var out []polymesh.TriFace
	out = append(out, refineOne(surface, polymesh.TriFace{t[0], t[1], mid}, tol, pool, uvOf, depth+1)...)
	out = append(out, refineOne(surface, polymesh.TriFace{t[1], t[2], mid}, tol, pool, uvOf, depth+1)...)
	out = append(out, refineOne(surface, polymesh.TriFace{t[2], t[0], mid}, tol, pool, uvOf, depth+1)...)
	return out
}

// affineAt barycentrically interpolates the surface's 3-D corner points at
// uv's position within the triangle (uvA,uvB,uvC) — the flat estimate
// refineOne compares against the true surface point.
func affineAt(surface geometry.Surface, uvA, uvB, uvC, uv geomath.Point2) geomath.Point3 {
	pA, pB, pC := surface.Evaluate(uvA.X, uvA.Y), surface.Evaluate(uvB.X, uvB.Y), surface.Evaluate(uvC.X, uvC.Y)
	areaABC := cross2(uvB.Sub(uvA), uvC.Sub(uvA))
	if math.Abs(areaABC) < 1e-15 {
		return pA
	}
	wA := cross2(uvB.Sub(uv), uvC.Sub(uv)) / areaABC
	wB := cross2(uvC.Sub(uv), uvA.Sub(uv)) / areaABC
	wC := 1 - wA - wB
	return pA.Scale(wA).Add(pB.Scale(wB)).Add(pC.Scale(wC))
}
