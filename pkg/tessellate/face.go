package tessellate

import (
	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/polymesh"
)

// tessellateFace implements spec.md §4.X's per-face algorithm: boundary
// sampling (already done in m), UV mapping, triangulation (structured grid
// for untrimmed rectangles, ear-clipped constrained triangulation with
// tolerance-driven refinement otherwise).
func tessellateFace(f *brep.Face, m *edgePolylineMap, tol float64, pool *positionPool) ([]polymesh.TriFace, error) {
	surface := f.Surface()

	outerLoop, err := buildBoundaryLoop(f, f.OuterBoundary(), m)
	if err != nil {
		return nil, err
	}

	holeWires := f.HoleBoundaries()
	holeLoops := make([]boundaryLoop, len(holeWires))
	for i, w := range holeWires {
		holeLoops[i], err = buildBoundaryLoop(f, w, m)
		if err != nil {
			return nil, err
		}
	}

	var tris []polymesh.TriFace
	if isUntrimmedRectangular(surface, outerLoop, len(holeLoops)) {
		tris = gridTriangulate(surface, outerLoop, tol, pool)
	} else {
		uvOf := map[int]geomath.Point2{}
		outerRing := buildRing(surface, orient(outerLoop, true), pool, uvOf)
		holeRings := make([]ring, len(holeLoops))
		for i, hl := range holeLoops {
			holeRings[i] = buildRing(surface, orient(hl, false), pool, uvOf)
		}

		merged := outerRing
		if len(holeRings) > 0 {
			merged = bridgeHoles(outerRing, holeRings)
		}
		tris = refineTriangles(surface, earClip(merged), tol, pool, uvOf, 0)
	}

	if !f.Orientation() {
		tris = invertFaceWinding(tris, pool)
	}
	return tris, nil
}

// invertFaceWinding reverses each triangle's winding and negates its
// vertices' stored normals, keeping both consistent for a face whose
// Orientation() flag reports its outward normal as the negative of its
// surface's own ∂u x ∂v direction (spec.md §4.T: a face's Invert flips
// which side is outward without touching the underlying surface or wire).
func invertFaceWinding(tris []polymesh.TriFace, pool *positionPool) []polymesh.TriFace {
	flipped := map[int]int{} // original normal index -> negated normal index
	flip := func(v polymesh.Vertex) polymesh.Vertex {
		if !v.HasNormal() {
			return v
		}
		idx, ok := flipped[v.Nor]
		if !ok {
			idx = pool.addNormal(pool.normalAt(v.Nor).Scale(-1))
			flipped[v.Nor] = idx
		}
		v.Nor = idx
		return v
	}
	out := make([]polymesh.TriFace, len(tris))
	for i, t := range tris {
		out[i] = polymesh.TriFace{flip(t[0]), flip(t[2]), flip(t[1])}
	}
	return out
}
