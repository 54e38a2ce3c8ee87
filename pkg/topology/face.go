package topology

import (
	"sync"

	"github.com/chazu/lignin/pkg/identity"
	"github.com/chazu/lignin/pkg/kernelerr"
)

type sharedSurface[S any] struct {
	mu      sync.RWMutex
	surface S
}

// Face is a trimmed patch of surface type S bounded by one outer wire plus
// zero or more hole wires of curve type C over points of type P (spec.md §3
// `Face<P,C,S>`). Every boundary wire must be non-empty and closed.
type Face[P, C, S any] struct {
	id          identity.Token
	boundaries  []*Wire[P, C]
	orientation bool
	surface     *sharedSurface[S]
}

// NewFace validates that every boundary wire is non-empty and closed, then
// constructs a Face (spec.md §3's face-boundary invariant).
func NewFace[P, C, S any](boundaries []*Wire[P, C], surface S) (*Face[P, C, S], error) {
	for _, w := range boundaries {
		if w.Len() == 0 {
			return nil, &kernelerr.TopologyViolation{Reason: "face boundary wire must not be empty"}
		}
		if !w.Closed() {
			return nil, &kernelerr.TopologyViolation{Reason: "face boundary wire must be closed"}
		}
	}
	return &Face[P, C, S]{
		id:          identity.New(),
		boundaries:  append([]*Wire[P, C](nil), boundaries...),
		orientation: true,
		surface:     &sharedSurface[S]{surface: surface},
	}, nil
}

// ID returns the face's identity.
func (f *Face[P, C, S]) ID() identity.Token { return f.id }

// Same reports whether f and other share identity.
func (f *Face[P, C, S]) Same(other *Face[P, C, S]) bool { return f.id == other.id }

// Orientation reports whether the face's normal is the surface's own
// ∂u x ∂v direction (true) or flipped (false).
func (f *Face[P, C, S]) Orientation() bool { return f.orientation }

// Invert flips the face's orientation in place.
func (f *Face[P, C, S]) Invert() *Face[P, C, S] {
	f.orientation = !f.orientation
	return f
}

// Inverse returns a new handle to the same face identity with the
// opposite orientation, leaving f unchanged (spec.md §4.M's sweep
// operators use this to reuse a base face as an oppositely oriented cap
// without disturbing the caller's own handle).
func (f *Face[P, C, S]) Inverse() *Face[P, C, S] {
	clone := *f
	clone.orientation = !f.orientation
	return &clone
}

// Boundaries returns the face's boundary wires; by convention index 0 is
// the outer loop and the rest are holes.
func (f *Face[P, C, S]) Boundaries() []*Wire[P, C] { return append([]*Wire[P, C](nil), f.boundaries...) }

// OuterBoundary returns the outer loop, or nil if the face has no
// boundaries at all (which NewFace never produces, but AddBoundary/
// RemoveBoundary euler operators may transiently).
func (f *Face[P, C, S]) OuterBoundary() *Wire[P, C] {
	if len(f.boundaries) == 0 {
		return nil
	}
	return f.boundaries[0]
}

// HoleBoundaries returns every boundary wire after the outer loop.
func (f *Face[P, C, S]) HoleBoundaries() []*Wire[P, C] {
	if len(f.boundaries) <= 1 {
		return nil
	}
	return append([]*Wire[P, C](nil), f.boundaries[1:]...)
}

// BoundaryEdges returns every edge across every boundary wire, flattened
// (spec.md's `boundary_iter`, used by Shell.ShellCondition).
func (f *Face[P, C, S]) BoundaryEdges() []*Edge[P, C] {
	var out []*Edge[P, C]
	for _, w := range f.boundaries {
		out = append(out, w.Edges()...)
	}
	return out
}

// Surface returns a copy of the shared surface.
func (f *Face[P, C, S]) Surface() S {
	f.surface.mu.RLock()
	defer f.surface.mu.RUnlock()
	return f.surface.surface
}

// SetSurface replaces the shared surface; every handle sharing this face's
// identity observes the update.
func (f *Face[P, C, S]) SetSurface(s S) {
	f.surface.mu.Lock()
	defer f.surface.mu.Unlock()
	f.surface.surface = s
}

// AddBoundary appends a hole wire to the face (spec.md §4.T euler
// operation `add_boundary`); the wire must be closed and non-empty.
func (f *Face[P, C, S]) AddBoundary(w *Wire[P, C]) error {
	if w.Len() == 0 {
		return &kernelerr.TopologyViolation{Reason: "added boundary wire must not be empty"}
	}
	if !w.Closed() {
		return &kernelerr.TopologyViolation{Reason: "added boundary wire must be closed"}
	}
	f.boundaries = append(f.boundaries, w)
	return nil
}

// RemoveBoundary removes the hole wire at index i (1-based position among
// holes; i==0 removes the outer boundary and is rejected since a face
// without an outer loop is not well-formed).
func (f *Face[P, C, S]) RemoveBoundary(i int) error {
	if i <= 0 || i >= len(f.boundaries) {
		return &kernelerr.TopologyViolation{Reason: "cannot remove the outer boundary or an out-of-range hole"}
	}
	f.boundaries = append(f.boundaries[:i], f.boundaries[i+1:]...)
	return nil
}

// TopologicalClone returns a face with a fresh identity over freshly
// identified boundary wires and a copy of the current surface.
func (f *Face[P, C, S]) TopologicalClone() *Face[P, C, S] {
	clonedBoundaries := make([]*Wire[P, C], len(f.boundaries))
	for i, w := range f.boundaries {
		clonedBoundaries[i] = w.TopologicalClone()
	}
	fresh, _ := NewFace(clonedBoundaries, f.Surface())
	fresh.orientation = f.orientation
	return fresh
}
