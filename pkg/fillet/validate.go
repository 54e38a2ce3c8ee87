package fillet

import (
	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// edgeFilletSpec is the validated, per-edge working state produced by the
// [validate] transition (spec.md §4.F step 1-2): the edge's two face
// occurrences, its curve and the two adjacent surfaces in canonical NURBS
// form, and the chain-global parameter range this edge occupies.
type edgeFilletSpec struct {
	edge  *brep.Edge
	occs  [occCount]occurrence
	curve *geometry.NurbsCurve
	surfs [occCount]*geometry.NurbsSurface
	t0, t1 float64 // edge's own curve parameter bounds
	chainT0, chainT1 float64 // this edge's slice of the chain's [0,1]
}

const lengthSampleCount = 8

func curveLength(c geometry.Curve) float64 {
	t0, t1 := c.Bounds()
	prev := c.Evaluate(t0)
	var total float64
	for i := 1; i <= lengthSampleCount; i++ {
		t := t0 + (t1-t0)*float64(i)/lengthSampleCount
		p := c.Evaluate(t)
		total += prev.Dist(p)
		prev = p
	}
	return total
}

// validate implements the [validate] transition: checks every edge in the
// chain is shared by exactly two faces, long enough for the requested
// radius, and that its curve and both adjacent surfaces support the
// FilletableCurve/FilletableSurface capability (spec.md §4.F steps 1-2).
func (c *chain) validate() error {
	if len(c.edges) == 0 {
		return &kernelerr.TopologyViolation{Reason: "fillet chain must have at least one edge"}
	}
	c.specs = make([]edgeFilletSpec, len(c.edges))

	for i, e := range c.edges {
		occs, err := adjacentFaces(c.original, e.ID())
		if err != nil {
			return err
		}

		curveIface := e.Curve()
		fc, ok := curveIface.(geometry.FilletableCurve)
		if !ok {
			return &kernelerr.UnsupportedGeometry{Variant: "edge curve", Op: "fillet"}
		}
		nc, err := fc.ToNurbsCurve()
		if err != nil {
			return err
		}

		var surfs [occCount]*geometry.NurbsSurface
		for k, occ := range occs {
			fs, ok := occ.face.Surface().(geometry.FilletableSurface)
			if !ok {
				return &kernelerr.UnsupportedGeometry{Variant: "adjacent face surface", Op: "fillet"}
			}
			ns, err := fs.ToNurbsSurface()
			if err != nil {
				return err
			}
			surfs[k] = ns
		}

		t0, t1 := curveIface.Bounds()
		length := curveLength(curveIface)
		chainT0, chainT1 := float64(i)/float64(len(c.edges)), float64(i+1)/float64(len(c.edges))
		radius := c.opts.radiusAt((chainT0 + chainT1) / 2)
		if err := validateLength(length, radius); err != nil {
			return err
		}

		c.specs[i] = edgeFilletSpec{
			edge: e, occs: occs, curve: nc, surfs: surfs,
			t0: t0, t1: t1, chainT0: chainT0, chainT1: chainT1,
		}
	}

	if len(c.edges) > 1 {
		first, last := c.edges[0], c.edges[len(c.edges)-1]
		c.closed = first.Front().Same(last.Back())
	}
	return nil
}

// outwardNormal returns the face's surface normal at uv, flipped when the
// face's own orientation differs from the surface's natural ∂u x ∂v
// direction (face.go's Orientation/Invert convention).
func outwardNormal(f *brep.Face, s *geometry.NurbsSurface, uv geomath.Point2) (geomath.Point3, error) {
	n, atPole, err := s.Normal(uv.X, uv.Y)
	if err != nil {
		return geomath.Point3{}, err
	}
	if atPole {
		return geomath.Point3{}, &kernelerr.ConvergenceFailure{Op: "fillet normal at pole", Iter: 0}
	}
	if !f.Orientation() {
		n = n.Scale(-1)
	}
	return n, nil
}
