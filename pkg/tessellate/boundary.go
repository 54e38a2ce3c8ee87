package tessellate

import (
	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
)

// boundaryLoop is one closed polygon boundary (the outer wire, or a hole)
// already sampled to 3-D points, mapped to UV, and registered in the shared
// position pool. cornerAt[i] is true when points[i] is the first sample of
// a wire edge (used by the untrimmed-rectangle detector).
type boundaryLoop struct {
	points   []geomath.Point3
	uv       []geomath.Point2
	pos      []int
	cornerAt []bool
}

// buildBoundaryLoop walks w's edges, reusing each edge's polyline from m
// (forward or reversed per the edge's current orientation), and inverts
// every sample into the face's UV domain (Newton seeded from the previous
// sample's UV, per spec.md §4.X step 2). The wire's closing duplicate
// sample is dropped.
func buildBoundaryLoop(f *brep.Face, w *brep.Wire, m *edgePolylineMap) (boundaryLoop, error) {
	var loop boundaryLoop
	surface := f.Surface()
	var hint *geomath.Point2

	for _, e := range w.Edges() {
		samples := m.forEdge(e)
		start := 0
		if len(loop.points) > 0 {
			start = 1 // first sample duplicates the previous edge's last sample
			// ...so that already-appended sample is this edge's first sample.
			loop.cornerAt[len(loop.cornerAt)-1] = true
		}
		for i := start; i < len(samples); i++ {
			s := samples[i]
			uv, err := surface.Invert(s.p, hint)
			if err != nil {
				return boundaryLoop{}, err
			}
			hint = &uv
			loop.points = append(loop.points, s.p)
			loop.uv = append(loop.uv, uv)
			loop.pos = append(loop.pos, s.pos)
			loop.cornerAt = append(loop.cornerAt, i == 0)
		}
	}
	// The wire is closed: its last sample coincides with its first. Drop it
	// so the ring has no duplicate closing vertex.
	if n := len(loop.points); n > 1 {
		loop.points = loop.points[:n-1]
		loop.uv = loop.uv[:n-1]
		loop.pos = loop.pos[:n-1]
		loop.cornerAt = loop.cornerAt[:n-1]
	}
	return loop, nil
}

// signedAreaUV returns the shoelace signed area of loop in UV space;
// positive for counter-clockwise.
func signedAreaUV(loop boundaryLoop) float64 {
	var area float64
	n := len(loop.uv)
	for i := 0; i < n; i++ {
		a, b := loop.uv[i], loop.uv[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// reverseLoop returns a new loop with the point order reversed; the input
// loop is left unchanged.
func reverseLoop(loop boundaryLoop) boundaryLoop {
	n := len(loop.points)
	out := boundaryLoop{
		points:   make([]geomath.Point3, n),
		uv:       make([]geomath.Point2, n),
		pos:      make([]int, n),
		cornerAt: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		out.points[i] = loop.points[n-1-i]
		out.uv[i] = loop.uv[n-1-i]
		out.pos[i] = loop.pos[n-1-i]
		out.cornerAt[i] = loop.cornerAt[n-1-i]
	}
	return out
}

// cornerUVs returns the UV coordinate of each edge's starting sample, used
// by isUntrimmedRectangular.
func cornerUVs(loop boundaryLoop) []geomath.Point2 {
	var corners []geomath.Point2
	for i, c := range loop.cornerAt {
		if c {
			corners = append(corners, loop.uv[i])
		}
	}
	return corners
}
