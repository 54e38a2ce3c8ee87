package topology

import "github.com/chazu/lignin/pkg/kernelerr"

// CompressedEdge is an edge expressed as indices into a CompressedShell's
// vertex array plus an orientation flag, rather than as Vertex pointers
// (spec.md §4.T "compressed representation used for serialization and
// tessellation").
type CompressedEdge[C any] struct {
	Front, Back int
	Orientation bool
	Curve       C
}

// CompressedWire is an ordered sequence of indices into a CompressedShell's
// edge array.
type CompressedWire struct {
	EdgeIndices []int
}

// CompressedFace is a face expressed as indices into a CompressedShell's
// wire array plus a surface value and orientation flag.
type CompressedFace[S any] struct {
	BoundaryWires []CompressedWire
	Orientation   bool
	Surface       S
}

// CompressedShell is the flat, index-based equivalent of a Shell: every
// vertex, edge, and face appears exactly once, and shared identity is
// represented purely by shared indices rather than pointer identity. This
// is the form used for deterministic JSON export (spec.md §6) and as the
// tessellator's working representation (component X), since walking flat
// arrays needs no identity bookkeeping.
type CompressedShell[P, C, S any] struct {
	Vertices []P
	Edges    []CompressedEdge[C]
	Faces    []CompressedFace[S]
}

// Compress flattens a Shell into a CompressedShell, assigning each distinct
// vertex/edge identity a stable array index in first-encounter order.
func Compress[P, C, S any](shell *Shell[P, C, S]) *CompressedShell[P, C, S] {
	out := &CompressedShell[P, C, S]{}
	vertexIndex := make(map[uintptrKey]int)
	edgeIndex := make(map[uintptrKey]int)

	indexOfVertex := func(v *Vertex[P]) int {
		key := uintptrKey(v.ID())
		if i, ok := vertexIndex[key]; ok {
			return i
		}
		i := len(out.Vertices)
		out.Vertices = append(out.Vertices, v.Point())
		vertexIndex[key] = i
		return i
	}

	indexOfEdge := func(e *Edge[P, C]) int {
		key := uintptrKey(e.ID())
		if i, ok := edgeIndex[key]; ok {
			return i
		}
		i := len(out.Edges)
		out.Edges = append(out.Edges, CompressedEdge[C]{
			Front:       indexOfVertex(e.AbsoluteFront()),
			Back:        indexOfVertex(otherEnd(e)),
			Orientation: e.Orientation(),
			Curve:       e.Curve(),
		})
		edgeIndex[key] = i
		return i
	}

	for _, f := range shell.Faces() {
		var wires []CompressedWire
		for _, w := range f.Boundaries() {
			var indices []int
			for _, e := range w.Edges() {
				indices = append(indices, indexOfEdge(e))
			}
			wires = append(wires, CompressedWire{EdgeIndices: indices})
		}
		out.Faces = append(out.Faces, CompressedFace[S]{
			BoundaryWires: wires,
			Orientation:   f.Orientation(),
			Surface:       f.Surface(),
		})
	}
	return out
}

// otherEnd returns the vertex opposite AbsoluteFront on e's canonical
// (construction-time) orientation.
func otherEnd[P, C any](e *Edge[P, C]) *Vertex[P] {
	if e.Orientation() {
		return e.Back()
	}
	return e.Front()
}

// uintptrKey adapts an identity.Token for use as a compression-local map
// key without importing the identity package's type name into every
// signature in this file.
type uintptrKey = uint64

// Decompress rebuilds a Shell from a CompressedShell, allocating fresh
// vertex and edge identities per distinct index (so two compressed edges
// referencing the same vertex index become two Edge handles sharing one
// Vertex identity, restoring the shared-edge structure that Compress
// erased into shared indices).
func Decompress[P, C, S any](cs *CompressedShell[P, C, S]) (*Shell[P, C, S], error) {
	vertices := make([]*Vertex[P], len(cs.Vertices))
	for i, p := range cs.Vertices {
		vertices[i] = NewVertex(p)
	}

	edges := make([]*Edge[P, C], len(cs.Edges))
	for i, ce := range cs.Edges {
		if ce.Front < 0 || ce.Front >= len(vertices) || ce.Back < 0 || ce.Back >= len(vertices) {
			return nil, &kernelerr.MismatchedStructure{CountA: len(vertices), CountB: ce.Front}
		}
		e, err := NewEdge(vertices[ce.Front], vertices[ce.Back], ce.Curve)
		if err != nil {
			return nil, err
		}
		if !ce.Orientation {
			e.Invert()
		}
		edges[i] = e
	}

	shell := NewShell[P, C, S]()
	for _, cf := range cs.Faces {
		var boundaries []*Wire[P, C]
		for _, cw := range cf.BoundaryWires {
			wireEdges := make([]*Edge[P, C], len(cw.EdgeIndices))
			for j, ei := range cw.EdgeIndices {
				if ei < 0 || ei >= len(edges) {
					return nil, &kernelerr.MismatchedStructure{CountA: len(edges), CountB: ei}
				}
				wireEdges[j] = edges[ei]
			}
			w, err := TryNewWire(wireEdges)
			if err != nil {
				return nil, err
			}
			boundaries = append(boundaries, w)
		}
		f, err := NewFace(boundaries, cf.Surface)
		if err != nil {
			return nil, err
		}
		if !cf.Orientation {
			f.Invert()
		}
		shell.AddFace(f)
	}
	return shell, nil
}

// CompressedSolid is the flat equivalent of a Solid: one CompressedShell
// per boundary component, index 0 being the outer shell by convention.
type CompressedSolid[P, C, S any] struct {
	Boundary []*CompressedShell[P, C, S]
}

// CompressSolid flattens every boundary shell of a Solid independently.
func CompressSolid[P, C, S any](solid *Solid[P, C, S]) *CompressedSolid[P, C, S] {
	out := &CompressedSolid[P, C, S]{}
	for _, sh := range solid.Boundary() {
		out.Boundary = append(out.Boundary, Compress(sh))
	}
	return out
}

// DecompressSolid rebuilds a Solid from a CompressedSolid, revalidating
// that every reconstructed boundary shell is Regular.
func DecompressSolid[P, C, S any](cs *CompressedSolid[P, C, S]) (*Solid[P, C, S], error) {
	shells := make([]*Shell[P, C, S], len(cs.Boundary))
	for i, csh := range cs.Boundary {
		sh, err := Decompress(csh)
		if err != nil {
			return nil, err
		}
		shells[i] = sh
	}
	return NewSolid(shells)
}
