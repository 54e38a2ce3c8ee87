package polymesh

import "github.com/chazu/lignin/pkg/geomath"

// PolygonMeshEditor guards a working copy of a mesh's buffers while a
// caller performs a batch of mutations, and revalidates once on Release
// (spec.md §4.P: "guards invariants and re-validates on release") — the
// Go analogue of truck_polymesh's Drop-triggered debug_editor.
type PolygonMeshEditor struct {
	positions []geomath.Point3
	uvs       []geomath.Point2
	normals   []geomath.Point3
	triFaces  []TriFace
	quadFaces []QuadFace
	released  bool
}

// NewEditor opens an editor over a copy of mesh's buffers; mesh itself is
// untouched until Release succeeds.
func NewEditor(mesh *PolygonMesh) *PolygonMeshEditor {
	return &PolygonMeshEditor{
		positions: mesh.Positions(),
		uvs:       mesh.UVs(),
		normals:   mesh.Normals(),
		triFaces:  mesh.TriFaces(),
		quadFaces: mesh.QuadFaces(),
	}
}

// PushPosition appends a position and returns its index.
func (e *PolygonMeshEditor) PushPosition(p geomath.Point3) int {
	e.positions = append(e.positions, p)
	return len(e.positions) - 1
}

// PushUV appends a UV coordinate and returns its index.
func (e *PolygonMeshEditor) PushUV(uv geomath.Point2) int {
	e.uvs = append(e.uvs, uv)
	return len(e.uvs) - 1
}

// PushNormal appends a normal and returns its index.
func (e *PolygonMeshEditor) PushNormal(n geomath.Point3) int {
	e.normals = append(e.normals, n)
	return len(e.normals) - 1
}

// AddTriFace appends a triangle.
func (e *PolygonMeshEditor) AddTriFace(f TriFace) { e.triFaces = append(e.triFaces, f) }

// AddQuadFace appends a quad.
func (e *PolygonMeshEditor) AddQuadFace(f QuadFace) { e.quadFaces = append(e.quadFaces, f) }

// SetNormalForPosition overwrites the normal index carried by every corner
// at position index pos across every face, assigning one normal to every
// corner sharing that position.
func (e *PolygonMeshEditor) SetNormalForPosition(pos, norIdx int) {
	for i, f := range e.triFaces {
		for j, v := range f {
			if v.Pos == pos {
				e.triFaces[i][j].Nor = norIdx
			}
		}
	}
	for i, f := range e.quadFaces {
		for j, v := range f {
			if v.Pos == pos {
				e.quadFaces[i][j].Nor = norIdx
			}
		}
	}
}

// Release validates the edited buffers and returns a new immutable mesh,
// or the first invariant violation found. The editor must not be reused
// afterward; a second Release call is a programming error.
func (e *PolygonMeshEditor) Release() (*PolygonMesh, error) {
	if e.released {
		panic("polymesh: editor released twice")
	}
	e.released = true
	return NewPolygonMesh(e.positions, e.uvs, e.normals, e.triFaces, e.quadFaces)
}
