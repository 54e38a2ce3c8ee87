package topology

import "github.com/chazu/lignin/pkg/kernelerr"

// Solid is a boundary representation solid: one outer shell plus zero or
// more cavity shells, each of which must be Regular before it can bound a
// solid (spec.md §3 `Solid<P,C,S>`, §4.T "a solid's boundary shells must
// each be closed, oriented, and free of singular vertices").
type Solid[P, C, S any] struct {
	boundary []*Shell[P, C, S]
}

// NewSolid validates that every boundary shell is Regular before
// constructing the solid; by convention index 0 is the outer shell and the
// rest are cavities, but Condition() does not depend on that ordering.
func NewSolid[P, C, S any](boundary []*Shell[P, C, S]) (*Solid[P, C, S], error) {
	if len(boundary) == 0 {
		return nil, &kernelerr.TopologyViolation{Reason: "solid must have at least one boundary shell"}
	}
	for _, sh := range boundary {
		if sh.Condition() != Regular {
			return nil, &kernelerr.TopologyViolation{Reason: "solid boundary shell must be regular (closed, oriented, non-singular)"}
		}
	}
	return &Solid[P, C, S]{boundary: append([]*Shell[P, C, S](nil), boundary...)}, nil
}

// Boundary returns the solid's boundary shells; index 0 is the outer shell
// by convention, the rest are cavities.
func (s *Solid[P, C, S]) Boundary() []*Shell[P, C, S] {
	return append([]*Shell[P, C, S](nil), s.boundary...)
}

// OuterShell returns the outer boundary shell.
func (s *Solid[P, C, S]) OuterShell() *Shell[P, C, S] { return s.boundary[0] }

// CavityShells returns every boundary shell after the outer one.
func (s *Solid[P, C, S]) CavityShells() []*Shell[P, C, S] {
	if len(s.boundary) <= 1 {
		return nil
	}
	return append([]*Shell[P, C, S](nil), s.boundary[1:]...)
}

// Faces returns every face across every boundary shell.
func (s *Solid[P, C, S]) Faces() []*Face[P, C, S] {
	var out []*Face[P, C, S]
	for _, sh := range s.boundary {
		out = append(out, sh.Faces()...)
	}
	return out
}

// AddCavity appends a regular shell to the solid as a new cavity boundary,
// returning TopologyViolation if the shell is not Regular.
func (s *Solid[P, C, S]) AddCavity(cavity *Shell[P, C, S]) error {
	if cavity.Condition() != Regular {
		return &kernelerr.TopologyViolation{Reason: "cavity shell must be regular before joining a solid"}
	}
	s.boundary = append(s.boundary, cavity)
	return nil
}

// TopologicalClone returns a solid over freshly identified shells (built
// from freshly cloned faces), preserving boundary order.
func (s *Solid[P, C, S]) TopologicalClone() *Solid[P, C, S] {
	cloned := make([]*Shell[P, C, S], len(s.boundary))
	for i, sh := range s.boundary {
		faces := sh.Faces()
		clonedFaces := make([]*Face[P, C, S], len(faces))
		for j, f := range faces {
			clonedFaces[j] = f.TopologicalClone()
		}
		cloned[i] = ShellOf(clonedFaces)
	}
	return &Solid[P, C, S]{boundary: cloned}
}
