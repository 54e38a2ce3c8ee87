package fillet

import (
	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/identity"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// occurrence locates one use of an edge identity within a face's boundary:
// which face, which boundary wire (0 = outer, >0 = hole), and at which
// position in that wire's edge slice, along with the edge handle exactly
// as it sits there (carrying the orientation the wire traversal expects).
type occurrence struct {
	face      *brep.Face
	wireIndex int
	edgeIndex int
	edge      *brep.Edge
}

// findOccurrences returns every boundary use of the edge identity id
// across shell, in face-iteration order.
func findOccurrences(shell *brep.Shell, id identity.Token) []occurrence {
	var out []occurrence
	for _, f := range shell.Faces() {
		for wi, w := range f.Boundaries() {
			for ei, e := range w.Edges() {
				if e.ID() == id {
					out = append(out, occurrence{face: f, wireIndex: wi, edgeIndex: ei, edge: e})
				}
			}
		}
	}
	return out
}

// adjacentFaces resolves the exactly-two face occurrences spec.md §4.F
// step 1 requires a filletable edge to have, failing with NonManifoldEdge
// otherwise (0, 1, or 3+ uses all violate the "shared by exactly two
// faces" invariant).
func adjacentFaces(shell *brep.Shell, id identity.Token) ([occCount]occurrence, error) {
	var result [occCount]occurrence
	occs := findOccurrences(shell, id)
	if len(occs) != occCount {
		return result, &kernelerr.NonManifoldEdge{Count: len(occs)}
	}
	result[0], result[1] = occs[0], occs[1]
	return result, nil
}

const occCount = 2
