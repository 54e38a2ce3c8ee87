package fillet

import (
	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
)

// builtFillet is the [build_surfaces] transition's output for one edge of
// the chain (spec.md §4.F steps 3-4): the two contact curves (reused as
// the new trimmed-face boundary edges so their identity is shared with
// the fillet face, per step 6), and the fillet face surface(s) that span
// between them.
type builtFillet struct {
	v0, v1    *brep.Vertex
	railEdges []*brep.Edge // boundary rails, contact-surface-A side to contact-surface-B side, front=v0/back=v1
	faces     []geometry.Surface
	frames    []frame
}

func (b *builtFillet) contactA() *brep.Edge { return b.railEdges[0] }
func (b *builtFillet) contactB() *brep.Edge { return b.railEdges[len(b.railEdges)-1] }

// pinEnds forces the first and last sampled cross-section to collapse
// onto the edge's own endpoints. A real rolling ball's contact points
// never sit exactly on the edge it blends, so this is a deliberate
// simplification: it lets the fillet face and the two trimmed adjacent
// faces all reuse the edge's existing vertex identities at both ends
// instead of allocating fresh ones, which in turn lets a multi-edge
// chain's fillet faces meet exactly (pinch to a point) at each shared
// internal vertex rather than needing a separate corner-patch face.
func pinEnds(frames []frame, front, back geomath.Point3) {
	last := len(frames) - 1
	frames[0].contactA, frames[0].contactB = front, front
	frames[last].contactA, frames[last].contactB = back, back
}

// buildOneEdge runs spec.md §4.F steps 3-4 for a single edge of the
// chain: sample the rolling-ball frames, fit the two contact curves, and
// build the fillet face surface(s) between them.
func buildOneEdge(spec *edgeFilletSpec, opts FilletOptions) (*builtFillet, error) {
	frames, err := sampleFrames(spec, opts)
	if err != nil {
		return nil, err
	}
	pinEnds(frames, spec.edge.Front().Point(), spec.edge.Back().Point())

	v0, v1 := spec.edge.Front(), spec.edge.Back()
	rails := computeRails(frames, opts)
	railEdges := make([]*brep.Edge, len(rails))
	for i, pts := range rails {
		curve, err := buildContactCurve(pts, spec.t0, spec.t1)
		if err != nil {
			return nil, err
		}
		edge, err := brep.NewEdge(v0, v1, curve)
		if err != nil {
			return nil, err
		}
		railEdges[i] = edge
	}

	faces, err := buildFaceSurfaces(frames, opts)
	if err != nil {
		return nil, err
	}

	return &builtFillet{
		v0: v0, v1: v1,
		railEdges: railEdges,
		faces:     faces, frames: frames,
	}, nil
}

// buildSurfaces implements the [build_surfaces] transition across every
// edge in the chain.
func (c *chain) buildSurfaces() error {
	c.built = make([]builtFillet, len(c.specs))
	for i := range c.specs {
		built, err := buildOneEdge(&c.specs[i], c.opts)
		if err != nil {
			return err
		}
		c.built[i] = *built
	}
	return nil
}
