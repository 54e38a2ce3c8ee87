package tessellate

import (
	"sync"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/polymesh"
)

// positionPool is the shared position buffer every face writes into. Edge
// boundary samples are registered once during the sequential edge-polyline
// pass; each face's interior points are appended during the parallel
// per-face stage, guarded by mu (spec.md §4.X "Shared resources": the
// position buffer is the one piece of state genuinely mutated from worker
// goroutines).
type positionPool struct {
	mu        sync.Mutex
	positions []geomath.Point3
	normals   []geomath.Point3
	uvs       []geomath.Point2
}

func newPositionPool() *positionPool {
	return &positionPool{}
}

func (p *positionPool) addPosition(pt geomath.Point3) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.positions = append(p.positions, pt)
	return len(p.positions) - 1
}

func (p *positionPool) addNormal(n geomath.Point3) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.normals = append(p.normals, n)
	return len(p.normals) - 1
}

func (p *positionPool) addUV(uv geomath.Point2) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uvs = append(p.uvs, uv)
	return len(p.uvs) - 1
}

// pointAt resolves a vertex's position under mu, since grid refinement
// reads corners concurrently with other faces' writes.
func (p *positionPool) pointAt(v polymesh.Vertex) geomath.Point3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positions[v.Pos]
}

// normalAt resolves a normal-buffer index to its vector.
func (p *positionPool) normalAt(idx int) geomath.Point3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.normals[idx]
}

func (p *positionPool) snapshot() ([]geomath.Point3, []geomath.Point3, []geomath.Point2) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]geomath.Point3(nil), p.positions...),
		append([]geomath.Point3(nil), p.normals...),
		append([]geomath.Point2(nil), p.uvs...)
}
