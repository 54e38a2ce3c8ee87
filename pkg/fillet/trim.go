package fillet

import (
	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/identity"
)

// replacement is one boundary-edge swap a trimmed face needs: the
// identity of the edge occurrence being cut out and the new edge that
// replaces it (spec.md §4.F step 5's "replace the removed segment").
type replacement struct {
	oldEdgeID identity.Token
	newEdge   *brep.Edge
}

// trimFaces implements the [trim_faces] transition: for every edge in
// the chain, swap its boundary occurrence in each adjacent face for a
// fresh edge carrying that face's contact curve, then rebuild every
// touched face once with its full set of swaps applied (a chain
// typically shares the same two adjacent faces across every edge, so
// batching avoids rebuilding a face once per edge only to discard the
// intermediate result).
func (c *chain) trimFaces() error {
	facesByID := map[identity.Token]*brep.Face{}
	swapsByFace := map[identity.Token][]replacement{}

	for i := range c.specs {
		spec := &c.specs[i]
		built := &c.built[i]
		edges := [occCount]*brep.Edge{built.contactA(), built.contactB()}

		for k, occ := range spec.occs {
			facesByID[occ.face.ID()] = occ.face
			newEdge := edges[k]
			if occ.edge.Orientation() != spec.edge.Orientation() {
				newEdge = newEdge.Inverse()
			}
			swapsByFace[occ.face.ID()] = append(swapsByFace[occ.face.ID()], replacement{oldEdgeID: spec.edge.ID(), newEdge: newEdge})
		}
	}

	c.trimmedFaces = map[identity.Token]*brep.Face{}
	for faceID, face := range facesByID {
		swaps := make(map[identity.Token]*brep.Edge, len(swapsByFace[faceID]))
		for _, s := range swapsByFace[faceID] {
			swaps[s.oldEdgeID] = s.newEdge
		}

		boundaries := face.Boundaries()
		newBoundaries := make([]*brep.Wire, len(boundaries))
		for wi, w := range boundaries {
			edges := w.Edges()
			newEdges := make([]*brep.Edge, len(edges))
			for ei, e := range edges {
				if repl, ok := swaps[e.ID()]; ok {
					newEdges[ei] = repl
				} else {
					newEdges[ei] = e
				}
			}
			nw, err := brep.TryNewWire(newEdges)
			if err != nil {
				return err
			}
			newBoundaries[wi] = nw
		}

		nf, err := brep.NewFace(newBoundaries, face.Surface())
		if err != nil {
			return err
		}
		if !face.Orientation() {
			nf.Invert()
		}
		c.trimmedFaces[faceID] = nf
	}
	return nil
}
