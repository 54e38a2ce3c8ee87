package serialize

import (
	"encoding/json"
	"testing"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
	"github.com/chazu/lignin/pkg/polymesh"
)

func buildTestMesh(t *testing.T) *polymesh.PolygonMesh {
	t.Helper()
	positions := []geomath.Point3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}}
	uvs := []geomath.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	normals := []geomath.Point3{{X: 0, Y: 0, Z: 1}}
	triFaces := []polymesh.TriFace{{
		polymesh.Vertex{Pos: 0, UV: 0, Nor: 0},
		polymesh.Vertex{Pos: 1, UV: 1, Nor: 0},
		polymesh.Vertex{Pos: 2, UV: 2, Nor: 0},
	}}
	quadFaces := []polymesh.QuadFace{{
		polymesh.NewVertex(0),
		polymesh.NewVertex(1),
		polymesh.NewVertex(3),
		polymesh.NewVertex(2),
	}}
	m, err := polymesh.NewPolygonMesh(positions, uvs, normals, triFaces, quadFaces)
	if err != nil {
		t.Fatalf("NewPolygonMesh: %v", err)
	}
	return m
}

func TestEncodeDecodeMeshRoundTrip(t *testing.T) {
	m := buildTestMesh(t)

	rec := EncodeMesh(m)
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decodedRec MeshRecord
	if err := json.Unmarshal(data, &decodedRec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	decoded, err := DecodeMesh(&decodedRec)
	if err != nil {
		t.Fatalf("DecodeMesh: %v", err)
	}
	if len(decoded.Positions()) != len(m.Positions()) {
		t.Errorf("len(Positions) = %d, want %d", len(decoded.Positions()), len(m.Positions()))
	}
	if len(decoded.TriFaces()) != 1 {
		t.Errorf("len(TriFaces) = %d, want 1", len(decoded.TriFaces()))
	}
	if len(decoded.QuadFaces()) != 1 {
		t.Errorf("len(QuadFaces) = %d, want 1", len(decoded.QuadFaces()))
	}
	if decoded.QuadFaces()[0][0].Pos != 0 || decoded.QuadFaces()[0][0].HasUV() {
		t.Errorf("decoded quad corner 0 = %+v, want Pos 0 with no UV", decoded.QuadFaces()[0][0])
	}
}

func TestDecodeMeshRejectsOutOfRangePositionIndex(t *testing.T) {
	rec := &MeshRecord{
		Positions: []geomath.Point3{{X: 0, Y: 0, Z: 0}},
		TriFaces: []TriFaceRecord{{
			{Pos: 0, UV: -1, Nor: -1},
			{Pos: 5, UV: -1, Nor: -1},
			{Pos: 0, UV: -1, Nor: -1},
		}},
	}
	_, err := DecodeMesh(rec)
	if err == nil {
		t.Fatal("expected error for out-of-range position index")
	}
	if _, ok := err.(*kernelerr.ParameterOutOfRange); !ok {
		t.Errorf("error type = %T, want *kernelerr.ParameterOutOfRange", err)
	}
}

func TestDecodeMeshRejectsOutOfRangeUVIndex(t *testing.T) {
	rec := &MeshRecord{
		Positions: []geomath.Point3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		UVs:       []geomath.Point2{{X: 0, Y: 0}},
		TriFaces: []TriFaceRecord{{
			{Pos: 0, UV: 0, Nor: -1},
			{Pos: 1, UV: 9, Nor: -1},
			{Pos: 2, UV: 0, Nor: -1},
		}},
	}
	_, err := DecodeMesh(rec)
	if err == nil {
		t.Fatal("expected error for out-of-range UV index")
	}
	if _, ok := err.(*kernelerr.ParameterOutOfRange); !ok {
		t.Errorf("error type = %T, want *kernelerr.ParameterOutOfRange", err)
	}
}
