package fillet

import "github.com/chazu/lignin/pkg/brep"

// weldIdentities implements the [weld_identities] transition (spec.md
// §4.F step 6): it assembles each edge's fillet face(s) from the exact
// same rail edge handles trimFaces spliced into the adjacent faces, so
// the contact curve at every rail is the same identity on both sides of
// the seam by construction, then assembles the repaired shell from the
// original untouched faces, the trimmed faces, and the new fillet faces.
func (c *chain) weldIdentities() error {
	next := brep.NewShell()
	for _, f := range c.original.Faces() {
		if trimmed, ok := c.trimmedFaces[f.ID()]; ok {
			next.AddFace(trimmed)
		} else {
			next.AddFace(f)
		}
	}

	for i := range c.built {
		built := &c.built[i]
		for p, surface := range built.faces {
			left, right := built.railEdges[p], built.railEdges[p+1]
			w, err := brep.TryNewWire([]*brep.Edge{left, right.Inverse()})
			if err != nil {
				return err
			}
			f, err := brep.NewFace([]*brep.Wire{w}, surface)
			if err != nil {
				return err
			}
			next.AddFace(f)
		}
	}

	c.next = next
	return nil
}
