package serialize

import (
	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/identity"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// VertexRecord is one entry of a ShellRecord's vertex array: a point plus
// the stable external form of its in-process identity (spec.md §6, and
// pkg/identity's Token.External), so two exported documents that both
// reference the same logical vertex can be cross-referenced by ID even
// though the in-process Token itself never survives a process restart.
type VertexRecord struct {
	ID    string         `json:"id"`
	Point geomath.Point3 `json:"point"`
}

// EdgeRecord is one entry of a ShellRecord's edge array: endpoints by index
// into the Vertices array, the orientation flag, and the edge's curve.
type EdgeRecord struct {
	ID          string       `json:"id"`
	Front       int          `json:"front"`
	Back        int          `json:"back"`
	Orientation bool         `json:"orientation"`
	Curve       *CurveRecord `json:"curve"`
}

// WireRecord is a boundary loop: an ordered list of indices into a
// ShellRecord's edge array.
type WireRecord struct {
	EdgeIndices []int `json:"edge_indices"`
}

// FaceRecord is one entry of a ShellRecord's face array.
type FaceRecord struct {
	ID            string         `json:"id"`
	BoundaryWires []WireRecord   `json:"boundary_wires"`
	Orientation   bool           `json:"orientation"`
	Surface       *SurfaceRecord `json:"surface"`
}

// ShellRecord is the JSON form of a CompressedShell (spec.md §6): every
// vertex, edge, and face appears once, identified by array index, the same
// flattening CompressedShell itself performs.
type ShellRecord struct {
	Vertices []VertexRecord `json:"vertices"`
	Edges    []EdgeRecord   `json:"edges"`
	Faces    []FaceRecord   `json:"faces"`
}

// SolidRecord is the JSON form of a Solid: one ShellRecord per boundary
// component, index 0 being the outer shell by convention (matching
// CompressedSolid).
type SolidRecord struct {
	Boundary []ShellRecord `json:"boundary"`
}

// EncodeShell flattens shell into a ShellRecord, assigning each distinct
// vertex/edge identity a stable array index in first-encounter order —
// the same walk topology.Compress performs, extended to carry each
// vertex/edge/face's external identity string alongside its index.
func EncodeShell(shell *brep.Shell) (*ShellRecord, error) {
	out := &ShellRecord{}
	vertexIndex := make(map[identity.Token]int)
	edgeIndex := make(map[identity.Token]int)

	indexOfVertex := func(v *brep.Vertex) int {
		if i, ok := vertexIndex[v.ID()]; ok {
			return i
		}
		i := len(out.Vertices)
		out.Vertices = append(out.Vertices, VertexRecord{ID: v.ID().External(), Point: v.Point()})
		vertexIndex[v.ID()] = i
		return i
	}

	otherEnd := func(e *brep.Edge) *brep.Vertex {
		if e.Orientation() {
			return e.Back()
		}
		return e.Front()
	}

	indexOfEdge := func(e *brep.Edge) (int, error) {
		if i, ok := edgeIndex[e.ID()]; ok {
			return i, nil
		}
		curve, err := EncodeCurve(e.Curve())
		if err != nil {
			return 0, err
		}
		i := len(out.Edges)
		out.Edges = append(out.Edges, EdgeRecord{
			ID:          e.ID().External(),
			Front:       indexOfVertex(e.AbsoluteFront()),
			Back:        indexOfVertex(otherEnd(e)),
			Orientation: e.Orientation(),
			Curve:       curve,
		})
		edgeIndex[e.ID()] = i
		return i, nil
	}

	for _, f := range shell.Faces() {
		var wires []WireRecord
		for _, w := range f.Boundaries() {
			var indices []int
			for _, e := range w.Edges() {
				i, err := indexOfEdge(e)
				if err != nil {
					return nil, err
				}
				indices = append(indices, i)
			}
			wires = append(wires, WireRecord{EdgeIndices: indices})
		}
		surface, err := EncodeSurface(f.Surface())
		if err != nil {
			return nil, err
		}
		out.Faces = append(out.Faces, FaceRecord{
			ID:            f.ID().External(),
			BoundaryWires: wires,
			Orientation:   f.Orientation(),
			Surface:       surface,
		})
	}
	return out, nil
}

// DecodeShell rebuilds a Shell from a ShellRecord, allocating fresh
// identity per distinct vertex/edge index (the exported "id" strings are
// informational cross-references, not reusable process-local tokens) and
// revalidating every edge/wire/face through its own constructor.
func DecodeShell(r *ShellRecord) (*brep.Shell, error) {
	vertices := make([]*brep.Vertex, len(r.Vertices))
	for i, vr := range r.Vertices {
		vertices[i] = brep.NewVertex(vr.Point)
	}

	edges := make([]*brep.Edge, len(r.Edges))
	for i, er := range r.Edges {
		if er.Front < 0 || er.Front >= len(vertices) || er.Back < 0 || er.Back >= len(vertices) {
			return nil, &kernelerr.MismatchedStructure{CountA: len(vertices), CountB: er.Front}
		}
		curve, err := DecodeCurve(er.Curve)
		if err != nil {
			return nil, err
		}
		e, err := brep.NewEdge(vertices[er.Front], vertices[er.Back], curve)
		if err != nil {
			return nil, err
		}
		if !er.Orientation {
			e.Invert()
		}
		edges[i] = e
	}

	shell := brep.NewShell()
	for _, fr := range r.Faces {
		var boundaries []*brep.Wire
		for _, wr := range fr.BoundaryWires {
			wireEdges := make([]*brep.Edge, len(wr.EdgeIndices))
			for j, ei := range wr.EdgeIndices {
				if ei < 0 || ei >= len(edges) {
					return nil, &kernelerr.MismatchedStructure{CountA: len(edges), CountB: ei}
				}
				wireEdges[j] = edges[ei]
			}
			w, err := brep.TryNewWire(wireEdges)
			if err != nil {
				return nil, err
			}
			boundaries = append(boundaries, w)
		}
		surface, err := DecodeSurface(fr.Surface)
		if err != nil {
			return nil, err
		}
		f, err := brep.NewFace(boundaries, surface)
		if err != nil {
			return nil, err
		}
		if !fr.Orientation {
			f.Invert()
		}
		shell.AddFace(f)
	}
	return shell, nil
}

// EncodeSolid flattens every boundary shell of solid independently.
func EncodeSolid(solid *brep.Solid) (*SolidRecord, error) {
	out := &SolidRecord{}
	for _, sh := range solid.Boundary() {
		r, err := EncodeShell(sh)
		if err != nil {
			return nil, err
		}
		out.Boundary = append(out.Boundary, *r)
	}
	return out, nil
}

// DecodeSolid rebuilds a Solid from a SolidRecord, revalidating that every
// reconstructed boundary shell is Regular (brep.NewSolid's own check).
func DecodeSolid(r *SolidRecord) (*brep.Solid, error) {
	if len(r.Boundary) == 0 {
		return nil, &kernelerr.IoFormat{Reason: "solid record has no boundary shells"}
	}
	shells := make([]*brep.Shell, len(r.Boundary))
	for i := range r.Boundary {
		sh, err := DecodeShell(&r.Boundary[i])
		if err != nil {
			return nil, err
		}
		shells[i] = sh
	}
	return brep.NewSolid(shells)
}
