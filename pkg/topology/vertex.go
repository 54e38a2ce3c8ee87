// Package topology implements the B-rep layer (component T): identity-
// bearing vertices, edges, wires, faces, shells, and solids, plus their
// compressed (flat, index-based) equivalents used for serialization and
// tessellation (spec.md §3-4.T).
package topology

import (
	"sync"

	"github.com/chazu/lignin/pkg/identity"
)

// Vertex is the minimal topological unit: an identity token paired with a
// point of type P, shared by every handle that refers to the same vertex
// (spec.md §3 "Shared edges between faces in a shell reference the same
// identity"). The constructor always allocates a fresh identity; two
// vertices holding the same coordinates are still distinct unless one was
// obtained from the other (by cloning the handle, not the point).
type Vertex[P any] struct {
	id    identity.Token
	mu    sync.RWMutex
	point P
}

// NewVertex allocates a new Vertex with a fresh identity.
func NewVertex[P any](point P) *Vertex[P] {
	return &Vertex[P]{id: identity.New(), point: point}
}

// NewVertices allocates len(points) distinct vertices.
func NewVertices[P any](points []P) []*Vertex[P] {
	vs := make([]*Vertex[P], len(points))
	for i, p := range points {
		vs[i] = NewVertex(p)
	}
	return vs
}

// ID returns the vertex's identity token.
func (v *Vertex[P]) ID() identity.Token { return v.id }

// Point returns a copy of the vertex's current geometric point.
func (v *Vertex[P]) Point() P {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.point
}

// SetPoint replaces the vertex's point; every handle sharing this vertex's
// identity observes the update.
func (v *Vertex[P]) SetPoint(p P) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.point = p
}

// Same reports whether v and other refer to the same identity (not merely
// equal coordinates).
func (v *Vertex[P]) Same(other *Vertex[P]) bool { return v.id == other.id }

// TopologicalClone returns a new Vertex with a fresh identity holding a
// copy of this vertex's current point.
func (v *Vertex[P]) TopologicalClone() *Vertex[P] { return NewVertex(v.Point()) }

// Mapped returns a new Vertex with a fresh identity whose point is f
// applied to this vertex's current point (spec.md §4.M transform/mapped
// operators use this to carry vertices through tsweep/rsweep/Processor).
func Mapped[P any](v *Vertex[P], f func(P) P) *Vertex[P] { return NewVertex(f(v.Point())) }
