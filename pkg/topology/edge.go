package topology

import (
	"sync"

	"github.com/chazu/lignin/pkg/identity"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// sharedCurve is the Arc<Mutex<C>> equivalent: a curve shared by every
// orientation of the same edge identity.
type sharedCurve[C any] struct {
	mu    sync.RWMutex
	curve C
}

// Edge is a handle to an oriented pair of vertices and the curve between
// them (spec.md §3 `Edge<P,C>`). Two Edge handles share identity (and thus
// ID()) iff one was produced from the other via Inverse, TopologicalClone,
// or plain copy — NewEdge always allocates a fresh identity, matching
// Vertex's allocation discipline.
type Edge[P, C any] struct {
	id          identity.Token
	front, back *Vertex[P]
	orientation bool
	curve       *sharedCurve[C]
}

// NewEdge constructs an edge from front to back, returning TopologyViolation
// if front and back are the same vertex identity (spec.md §3's endpoint
// distinctness invariant).
func NewEdge[P, C any](front, back *Vertex[P], curve C) (*Edge[P, C], error) {
	if front.Same(back) {
		return nil, &kernelerr.TopologyViolation{Reason: "edge front and back vertex must differ"}
	}
	return newEdgeUnchecked(front, back, curve), nil
}

func newEdgeUnchecked[P, C any](front, back *Vertex[P], curve C) *Edge[P, C] {
	return &Edge[P, C]{
		id:          identity.New(),
		front:       front,
		back:        back,
		orientation: true,
		curve:       &sharedCurve[C]{curve: curve},
	}
}

// ID returns the edge's identity, shared across every orientation of it.
func (e *Edge[P, C]) ID() identity.Token { return e.id }

// Same reports whether e and other share identity, regardless of
// orientation.
func (e *Edge[P, C]) Same(other *Edge[P, C]) bool { return e.id == other.id }

// Orientation reports whether this handle traverses the curve in its
// absolute (construction-time) direction.
func (e *Edge[P, C]) Orientation() bool { return e.orientation }

// AbsoluteFront returns the vertex this edge was originally constructed
// with as its front, regardless of this handle's current orientation.
func (e *Edge[P, C]) AbsoluteFront() *Vertex[P] {
	return e.front
}

// Front returns this handle's current front vertex (back if inverted).
func (e *Edge[P, C]) Front() *Vertex[P] {
	if e.orientation {
		return e.front
	}
	return e.back
}

// Back returns this handle's current back vertex (front if inverted).
func (e *Edge[P, C]) Back() *Vertex[P] {
	if e.orientation {
		return e.back
	}
	return e.front
}

// Curve returns a copy of the shared curve.
func (e *Edge[P, C]) Curve() C {
	e.curve.mu.RLock()
	defer e.curve.mu.RUnlock()
	return e.curve.curve
}

// SetCurve replaces the shared curve; every handle sharing this edge's
// identity observes the update.
func (e *Edge[P, C]) SetCurve(c C) {
	e.curve.mu.Lock()
	defer e.curve.mu.Unlock()
	e.curve.curve = c
}

// Invert flips this handle's orientation in place.
func (e *Edge[P, C]) Invert() *Edge[P, C] {
	e.orientation = !e.orientation
	return e
}

// Inverse returns a new handle to the same edge identity with the opposite
// orientation, leaving e unchanged.
func (e *Edge[P, C]) Inverse() *Edge[P, C] {
	clone := *e
	clone.orientation = !e.orientation
	return &clone
}

// TopologicalClone returns a new edge with a fresh identity, duplicating
// this edge's current front/back/curve/orientation.
func (e *Edge[P, C]) TopologicalClone() *Edge[P, C] {
	fresh := newEdgeUnchecked(e.front.TopologicalClone(), e.back.TopologicalClone(), e.Curve())
	fresh.orientation = e.orientation
	return fresh
}
