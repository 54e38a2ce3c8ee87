package serialize

import (
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/polymesh"
)

// VertexCornerRecord is the JSON form of a polymesh.Vertex: a position
// index plus optional UV/normal indices (-1 meaning absent, matching
// polymesh's own noAttr sentinel).
type VertexCornerRecord struct {
	Pos int `json:"pos"`
	UV  int `json:"uv"`
	Nor int `json:"nor"`
}

// TriFaceRecord is the JSON form of a polymesh.TriFace.
type TriFaceRecord [3]VertexCornerRecord

// QuadFaceRecord is the JSON form of a polymesh.QuadFace.
type QuadFaceRecord [4]VertexCornerRecord

// MeshRecord is the JSON form of a PolygonMesh (spec.md §6): its three
// independently-indexed attribute buffers plus the triangle/quad face
// lists, in the buffer declaration order PolygonMesh itself uses.
type MeshRecord struct {
	Positions []geomath.Point3 `json:"positions"`
	UVs       []geomath.Point2 `json:"uvs"`
	Normals   []geomath.Point3 `json:"normals"`
	TriFaces  []TriFaceRecord  `json:"tri_faces"`
	QuadFaces []QuadFaceRecord `json:"quad_faces"`
}

func vertexRecordOf(v polymesh.Vertex) VertexCornerRecord {
	return VertexCornerRecord{Pos: v.Pos, UV: v.UV, Nor: v.Nor}
}

func vertexOf(r VertexCornerRecord) polymesh.Vertex {
	return polymesh.Vertex{Pos: r.Pos, UV: r.UV, Nor: r.Nor}
}

// EncodeMesh converts a PolygonMesh to its JSON record. A PolygonMesh is
// already validated on construction, so this is a straightforward copy.
func EncodeMesh(m *polymesh.PolygonMesh) *MeshRecord {
	out := &MeshRecord{
		Positions: m.Positions(),
		UVs:       m.UVs(),
		Normals:   m.Normals(),
	}
	for _, f := range m.TriFaces() {
		out.TriFaces = append(out.TriFaces, TriFaceRecord{
			vertexRecordOf(f[0]), vertexRecordOf(f[1]), vertexRecordOf(f[2]),
		})
	}
	for _, f := range m.QuadFaces() {
		out.QuadFaces = append(out.QuadFaces, QuadFaceRecord{
			vertexRecordOf(f[0]), vertexRecordOf(f[1]), vertexRecordOf(f[2]), vertexRecordOf(f[3]),
		})
	}
	return out
}

// DecodeMesh rebuilds a PolygonMesh from its JSON record via
// NewPolygonMesh, which revalidates every corner's buffer indices and
// rejects an out-of-range index with a typed error.
func DecodeMesh(r *MeshRecord) (*polymesh.PolygonMesh, error) {
	triFaces := make([]polymesh.TriFace, len(r.TriFaces))
	for i, f := range r.TriFaces {
		triFaces[i] = polymesh.TriFace{vertexOf(f[0]), vertexOf(f[1]), vertexOf(f[2])}
	}
	quadFaces := make([]polymesh.QuadFace, len(r.QuadFaces))
	for i, f := range r.QuadFaces {
		quadFaces[i] = polymesh.QuadFace{vertexOf(f[0]), vertexOf(f[1]), vertexOf(f[2]), vertexOf(f[3])}
	}
	return polymesh.NewPolygonMesh(r.Positions, r.UVs, r.Normals, triFaces, quadFaces)
}
