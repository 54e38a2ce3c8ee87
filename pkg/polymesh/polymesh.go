// Package polymesh implements the indexed triangle/quad mesh (spec.md
// §4.P): positions, UVs, and normals in three independently-indexed
// buffers, a validating editor, and the analyzer/filter passes built on
// top of it.
package polymesh

import (
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// noAttr marks an absent UV or normal index in a Vertex (spec.md §4.P:
// faces reference indices in each buffer independently, so a corner may
// carry a position with no UV or normal).
const noAttr = -1

// Vertex is one polygon corner: an index into the positions buffer and
// optional indices into the UV and normal buffers.
type Vertex struct {
	Pos int
	UV  int
	Nor int
}

// NewVertex builds a corner with a position only.
func NewVertex(pos int) Vertex { return Vertex{Pos: pos, UV: noAttr, Nor: noAttr} }

// HasUV reports whether this corner carries a UV index.
func (v Vertex) HasUV() bool { return v.UV != noAttr }

// HasNormal reports whether this corner carries a normal index.
func (v Vertex) HasNormal() bool { return v.Nor != noAttr }

// TriFace is a triangle: exactly three corners.
type TriFace [3]Vertex

// QuadFace is a quadrilateral: exactly four corners, in boundary order.
type QuadFace [4]Vertex

// PolygonMesh is an immutable indexed mesh (spec.md §4.P). Construct one
// with NewPolygonMesh, or mutate a copy via NewEditor/PolygonMeshEditor.
type PolygonMesh struct {
	positions []geomath.Point3
	uvs       []geomath.Point2
	normals   []geomath.Point3
	triFaces  []TriFace
	quadFaces []QuadFace
}

// NewPolygonMesh validates and constructs a mesh from its buffers (the
// truck_polymesh equivalent of `PolygonMesh::new`/`try_new`): every
// corner's Pos/UV/Nor index must be in range for its buffer.
func NewPolygonMesh(positions []geomath.Point3, uvs []geomath.Point2, normals []geomath.Point3, triFaces []TriFace, quadFaces []QuadFace) (*PolygonMesh, error) {
	m := &PolygonMesh{
		positions: append([]geomath.Point3(nil), positions...),
		uvs:       append([]geomath.Point2(nil), uvs...),
		normals:   append([]geomath.Point3(nil), normals...),
		triFaces:  append([]TriFace(nil), triFaces...),
		quadFaces: append([]QuadFace(nil), quadFaces...),
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *PolygonMesh) validate() error {
	check := func(v Vertex) error {
		if v.Pos < 0 || v.Pos >= len(m.positions) {
			return &kernelerr.ParameterOutOfRange{Param: "vertex.Pos", Value: float64(v.Pos)}
		}
		if v.HasUV() && (v.UV < 0 || v.UV >= len(m.uvs)) {
			return &kernelerr.ParameterOutOfRange{Param: "vertex.UV", Value: float64(v.UV)}
		}
		if v.HasNormal() && (v.Nor < 0 || v.Nor >= len(m.normals)) {
			return &kernelerr.ParameterOutOfRange{Param: "vertex.Nor", Value: float64(v.Nor)}
		}
		return nil
	}
	for _, f := range m.triFaces {
		for _, v := range f {
			if err := check(v); err != nil {
				return err
			}
		}
	}
	for _, f := range m.quadFaces {
		for _, v := range f {
			if err := check(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Positions returns a copy of the position buffer.
func (m *PolygonMesh) Positions() []geomath.Point3 { return append([]geomath.Point3(nil), m.positions...) }

// UVs returns a copy of the UV buffer.
func (m *PolygonMesh) UVs() []geomath.Point2 { return append([]geomath.Point2(nil), m.uvs...) }

// Normals returns a copy of the normal buffer.
func (m *PolygonMesh) Normals() []geomath.Point3 { return append([]geomath.Point3(nil), m.normals...) }

// TriFaces returns a copy of the triangle face list.
func (m *PolygonMesh) TriFaces() []TriFace { return append([]TriFace(nil), m.triFaces...) }

// QuadFaces returns a copy of the quad face list.
func (m *PolygonMesh) QuadFaces() []QuadFace { return append([]QuadFace(nil), m.quadFaces...) }

// FaceCount returns the total number of polygons (triangles plus quads).
func (m *PolygonMesh) FaceCount() int { return len(m.triFaces) + len(m.quadFaces) }

// Position resolves a corner's 3-D position.
func (m *PolygonMesh) Position(v Vertex) geomath.Point3 { return m.positions[v.Pos] }

// Triangles returns every triangle in the mesh, splitting each quad along
// its 0-2 diagonal — the representation the analyzers (volume, Euler
// number) and filters that assume a simplicial mesh operate on.
func (m *PolygonMesh) Triangles() []TriFace {
	tris := append([]TriFace(nil), m.triFaces...)
	for _, q := range m.quadFaces {
		tris = append(tris, TriFace{q[0], q[1], q[2]}, TriFace{q[0], q[2], q[3]})
	}
	return tris
}

// Merge concatenates other's buffers and faces onto a copy of m, offsetting
// other's indices (truck_polymesh's `PolygonMesh::merge`).
func (m *PolygonMesh) Merge(other *PolygonMesh) *PolygonMesh {
	nPos, nUV, nNor := len(m.positions), len(m.uvs), len(m.normals)
	shift := func(v Vertex) Vertex {
		out := Vertex{Pos: v.Pos + nPos, UV: noAttr, Nor: noAttr}
		if v.HasUV() {
			out.UV = v.UV + nUV
		}
		if v.HasNormal() {
			out.Nor = v.Nor + nNor
		}
		return out
	}

	result := &PolygonMesh{
		positions: append(append([]geomath.Point3(nil), m.positions...), other.positions...),
		uvs:       append(append([]geomath.Point2(nil), m.uvs...), other.uvs...),
		normals:   append(append([]geomath.Point3(nil), m.normals...), other.normals...),
		triFaces:  append([]TriFace(nil), m.triFaces...),
		quadFaces: append([]QuadFace(nil), m.quadFaces...),
	}
	for _, f := range other.triFaces {
		result.triFaces = append(result.triFaces, TriFace{shift(f[0]), shift(f[1]), shift(f[2])})
	}
	for _, f := range other.quadFaces {
		result.quadFaces = append(result.quadFaces, QuadFace{shift(f[0]), shift(f[1]), shift(f[2]), shift(f[3])})
	}
	return result
}
