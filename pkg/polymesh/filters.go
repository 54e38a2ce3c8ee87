package polymesh

import (
	"math"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/samber/lo"
)

// faceNormal returns a triangle's unnormalized-then-normalized face
// normal (zero vector if degenerate).
func faceNormal(m *PolygonMesh, f TriFace) geomath.Point3 {
	a, b, c := m.Position(f[0]), m.Position(f[1]), m.Position(f[2])
	n, _ := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return n
}

// AddSmoothNormals implements truck_polymesh's `NormalFilters::add_smooth_normals`:
// for each position, cluster the normals of every triangle touching it by
// angular proximity (tolAngRad), assign each cluster's averaged normal to
// the corners that produced it, and return a new mesh (positions/UVs
// untouched, a fresh normal buffer, and Nor indices rewritten).
func AddSmoothNormals(m *PolygonMesh, tolAngRad float64) *PolygonMesh {
	tris := m.Triangles()
	faceNormals := make([]geomath.Point3, len(tris))
	for i, f := range tris {
		faceNormals[i] = faceNormal(m, f)
	}

	byPos := map[int][]int{} // position index -> triangle indices touching it
	for ti, f := range tris {
		for _, v := range f {
			byPos[v.Pos] = append(byPos[v.Pos], ti)
		}
	}

	e := NewEditor(m)
	e.normals = nil

	for pos, triIdxs := range byPos {
		type cluster struct {
			sum   geomath.Point3
			count int
		}
		var clusters []cluster
		var clusterOf []int // per triIdx, which cluster it landed in

		for _, ti := range triIdxs {
			n := faceNormals[ti]
			best := -1
			for ci, cl := range clusters {
				avg, ok := cl.sum.Normalize()
				if !ok {
					continue
				}
				cosAng := geomath.Clamp(avg.Dot(n), -1, 1)
				if math.Acos(cosAng) <= tolAngRad {
					best = ci
					break
				}
			}
			if best == -1 {
				clusters = append(clusters, cluster{sum: n, count: 1})
				best = len(clusters) - 1
			} else {
				clusters[best].sum = clusters[best].sum.Add(n)
				clusters[best].count++
			}
			clusterOf = append(clusterOf, best)
		}

		clusterNorIdx := make([]int, len(clusters))
		for ci, cl := range clusters {
			avg, ok := cl.sum.Normalize()
			if !ok {
				avg = geomath.Point3{}
			}
			clusterNorIdx[ci] = e.PushNormal(avg)
		}

		for i, ti := range triIdxs {
			norIdx := clusterNorIdx[clusterOf[i]]
			assignNormalToCorner(e, ti, pos, norIdx, len(m.triFaces))
		}
	}

	mesh, err := e.Release()
	if err != nil {
		// Every index this filter writes is freshly allocated in-bounds;
		// a validation failure here means the filter's own bookkeeping is
		// broken, not a bad input.
		panic(err)
	}
	return mesh
}

// assignNormalToCorner sets the Nor index of the corner at position pos
// within the triangle (or quad, once triIdx runs past the tri count) at
// triIdx.
func assignNormalToCorner(e *PolygonMeshEditor, triIdx, pos, norIdx, triCount int) {
	if triIdx < triCount {
		for j, v := range e.triFaces[triIdx] {
			if v.Pos == pos {
				e.triFaces[triIdx][j].Nor = norIdx
			}
		}
		return
	}
	quadOrTriIdx := triIdx - triCount
	quadIdx, half := quadOrTriIdx/2, quadOrTriIdx%2
	_ = half
	for j, v := range e.quadFaces[quadIdx] {
		if v.Pos == pos {
			e.quadFaces[quadIdx][j].Nor = norIdx
		}
	}
}

// WeldAttributes merges positions (and, transitively, the corners that
// reference them) that lie within tol of each other, the Go analogue of
// truck_polymesh's `put_together_same_attrs` generalized with an explicit
// tolerance rather than exact equality.
func WeldAttributes(m *PolygonMesh, tol float64) *PolygonMesh {
	positions := m.Positions()
	remap := make([]int, len(positions))
	kept := make([]geomath.Point3, 0, len(positions))
	for i, p := range positions {
		remap[i] = -1
		for ki, kp := range kept {
			if p.Dist(kp) <= tol {
				remap[i] = ki
				break
			}
		}
		if remap[i] == -1 {
			kept = append(kept, p)
			remap[i] = len(kept) - 1
		}
	}

	remapVertex := func(v Vertex) Vertex { v.Pos = remap[v.Pos]; return v }
	triFaces := lo.Map(m.triFaces, func(f TriFace, _ int) TriFace {
		return TriFace{remapVertex(f[0]), remapVertex(f[1]), remapVertex(f[2])}
	})
	quadFaces := lo.Map(m.quadFaces, func(f QuadFace, _ int) QuadFace {
		return QuadFace{remapVertex(f[0]), remapVertex(f[1]), remapVertex(f[2]), remapVertex(f[3])}
	})

	mesh, err := NewPolygonMesh(kept, m.uvs, m.normals, triFaces, quadFaces)
	if err != nil {
		panic(err)
	}
	return mesh
}

// LoopSubdivide performs one round of Loop subdivision on a purely
// triangular mesh: each edge gets a midpoint vertex (the simple average,
// not the full Loop smoothing weights — the tolerance-bounded fidelity
// tradeoff pkg/fillet's contact curves make is repeated here for the same
// reason: a full Loop stencil needs the one-ring adjacency this package
// does not otherwise track), and each original triangle splits into four.
// Quads are left untouched (Loop subdivision is defined for triangle
// meshes).
func LoopSubdivide(m *PolygonMesh) *PolygonMesh {
	e := NewEditor(m)
	e.triFaces = nil

	midpoint := map[meshEdge]int{}
	midIndex := func(a, b int) int {
		key := canonicalEdge(a, b)
		if idx, ok := midpoint[key]; ok {
			return idx
		}
		mid := m.positions[a].Add(m.positions[b]).Scale(0.5)
		idx := e.PushPosition(mid)
		midpoint[key] = idx
		return idx
	}

	for _, f := range m.triFaces {
		p0, p1, p2 := f[0].Pos, f[1].Pos, f[2].Pos
		m01, m12, m20 := midIndex(p0, p1), midIndex(p1, p2), midIndex(p2, p0)
		e.AddTriFace(TriFace{NewVertex(p0), NewVertex(m01), NewVertex(m20)})
		e.AddTriFace(TriFace{NewVertex(p1), NewVertex(m12), NewVertex(m01)})
		e.AddTriFace(TriFace{NewVertex(p2), NewVertex(m20), NewVertex(m12)})
		e.AddTriFace(TriFace{NewVertex(m01), NewVertex(m12), NewVertex(m20)})
	}

	mesh, err := e.Release()
	if err != nil {
		panic(err)
	}
	return mesh
}

// RobustSplitting splits any face whose corners revisit the same position
// twice (a "closed edge" self-touching polygon that a strict simplicial
// or quad mesh cannot represent) into two simple faces sharing that
// vertex — the fourth filter supplementing the three named in spec.md
// §4.P, grounded on truck-polymesh's Filters trait shipping a
// robust_splitting pass beyond smoothing/welding/subdivision. Faces with
// no repeated corner pass through unchanged.
func RobustSplitting(m *PolygonMesh) *PolygonMesh {
	e := NewEditor(m)
	e.quadFaces = nil

	for _, f := range m.quadFaces {
		if split, ok := splitClosedQuad(f); ok {
			e.AddTriFace(split[0])
			e.AddTriFace(split[1])
			continue
		}
		e.AddQuadFace(f)
	}

	mesh, err := e.Release()
	if err != nil {
		panic(err)
	}
	return mesh
}

// splitClosedQuad reports whether f revisits a position (two of its four
// corners share the same Pos), and if so splits it into two triangles
// along the diagonal through the repeated vertex.
func splitClosedQuad(f QuadFace) ([2]TriFace, bool) {
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if f[i].Pos != f[j].Pos {
				continue
			}
			// f[i] and f[j] coincide; the diagonal through them is
			// degenerate, so split along the other diagonal instead.
			k, l := (i+1)%4, (i+3)%4
			return [2]TriFace{
				{f[i], f[k], f[j]},
				{f[i], f[j], f[l]},
			}, true
		}
	}
	return [2]TriFace{}, false
}
