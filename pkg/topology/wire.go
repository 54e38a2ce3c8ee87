package topology

import (
	"github.com/chazu/lignin/pkg/identity"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// Wire is an ordered sequence of oriented edge handles whose consecutive
// vertex endpoints match (spec.md §3 `Wire<P,C>`); closedness is a derived
// predicate, not stored state.
type Wire[P, C any] struct {
	edges []*Edge[P, C]
}

// NewWire builds an empty wire.
func NewWire[P, C any]() *Wire[P, C] { return &Wire[P, C]{} }

// TryNewWire builds a wire from an ordered edge slice, validating that
// edges[i].Back() matches edges[i+1].Front() by identity for every
// consecutive pair (spec.md §3's wire connectivity invariant).
func TryNewWire[P, C any](edges []*Edge[P, C]) (*Wire[P, C], error) {
	w := &Wire[P, C]{edges: append([]*Edge[P, C](nil), edges...)}
	if err := w.validateConnectivity(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Wire[P, C]) validateConnectivity() error {
	for i := 0; i+1 < len(w.edges); i++ {
		if !w.edges[i].Back().Same(w.edges[i+1].Front()) {
			return &kernelerr.TopologyViolation{Reason: "wire edges must share consecutive vertex identity"}
		}
	}
	return nil
}

// Len returns the number of edges in the wire.
func (w *Wire[P, C]) Len() int { return len(w.edges) }

// Edges returns a copy of the wire's edge handles in order.
func (w *Wire[P, C]) Edges() []*Edge[P, C] { return append([]*Edge[P, C](nil), w.edges...) }

// EdgeAt returns the edge at index i.
func (w *Wire[P, C]) EdgeAt(i int) *Edge[P, C] { return w.edges[i] }

// FrontVertex returns the wire's first vertex, or nil if empty.
func (w *Wire[P, C]) FrontVertex() *Vertex[P] {
	if len(w.edges) == 0 {
		return nil
	}
	return w.edges[0].Front()
}

// BackVertex returns the wire's last vertex, or nil if empty.
func (w *Wire[P, C]) BackVertex() *Vertex[P] {
	if len(w.edges) == 0 {
		return nil
	}
	return w.edges[len(w.edges)-1].Back()
}

// Closed reports whether the wire's front and back vertex share identity
// (a closed loop), per spec.md §3's "closedness is a derived predicate".
func (w *Wire[P, C]) Closed() bool {
	if len(w.edges) == 0 {
		return false
	}
	return w.FrontVertex().Same(w.BackVertex())
}

// Vertices returns the wire's vertices in traversal order: the front vertex
// of each edge, plus the final back vertex when the wire is open.
func (w *Wire[P, C]) Vertices() []*Vertex[P] {
	if len(w.edges) == 0 {
		return nil
	}
	vs := make([]*Vertex[P], 0, len(w.edges)+1)
	for _, e := range w.edges {
		vs = append(vs, e.Front())
	}
	if !w.Closed() {
		vs = append(vs, w.BackVertex())
	}
	return vs
}

// PushBack appends edge to the wire, validating connectivity against the
// current back vertex.
func (w *Wire[P, C]) PushBack(edge *Edge[P, C]) error {
	if len(w.edges) > 0 && !w.BackVertex().Same(edge.Front()) {
		return &kernelerr.TopologyViolation{Reason: "pushed edge must start at the wire's back vertex"}
	}
	w.edges = append(w.edges, edge)
	return nil
}

// Invert returns a new wire traversing the same edges in reverse order,
// each with its orientation flipped (spec.md §4.T `invert`).
func (w *Wire[P, C]) Invert() *Wire[P, C] {
	inv := make([]*Edge[P, C], len(w.edges))
	for i, e := range w.edges {
		inv[len(w.edges)-1-i] = e.Inverse()
	}
	return &Wire[P, C]{edges: inv}
}

// TopologicalClone returns a wire over freshly identified edges and
// vertices, preserving order, orientation, and curve values.
func (w *Wire[P, C]) TopologicalClone() *Wire[P, C] {
	if len(w.edges) == 0 {
		return NewWire[P, C]()
	}
	clonedVerts := make(map[identity.Token]*Vertex[P])
	getVertex := func(v *Vertex[P]) *Vertex[P] {
		if cv, ok := clonedVerts[v.ID()]; ok {
			return cv
		}
		cv := v.TopologicalClone()
		clonedVerts[v.ID()] = cv
		return cv
	}
	out := make([]*Edge[P, C], len(w.edges))
	for i, e := range w.edges {
		front, back := getVertex(e.Front()), getVertex(e.Back())
		fresh, _ := NewEdge(front, back, e.Curve())
		out[i] = fresh
	}
	return &Wire[P, C]{edges: out}
}
