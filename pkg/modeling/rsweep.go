package modeling

import (
	"math"

	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/identity"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// clampAngle enforces spec.md §9's decision on rsweep with |theta| > 2*pi:
// clamp into [-2*pi, 2*pi] and treat |theta| == 2*pi as the closed case.
func clampAngle(theta float64) float64 {
	switch {
	case theta > 2*math.Pi:
		return 2 * math.Pi
	case theta < -2*math.Pi:
		return -2 * math.Pi
	default:
		return theta
	}
}

// isFullTurn reports whether theta is a full (closed) revolution.
func isFullTurn(theta float64) bool { return math.Abs(math.Abs(theta)-2*math.Pi) < geomath.Epsilon }

func axisDirOrFallback(dir geomath.Point3) geomath.Point3 {
	if u, ok := dir.Normalize(); ok {
		return u
	}
	return geomath.Point3{X: 0, Y: 0, Z: 1}
}

func rotatePoint(p, axisOrigin, axisDir geomath.Point3, angle float64) geomath.Point3 {
	m := geomath.RotationAxis4(axisDirOrFallback(axisDir), angle)
	return m.ApplyPoint(p.Sub(axisOrigin)).Add(axisOrigin)
}

// arcAroundAxis builds the circular (or partial) arc traced by revolving
// point p by angle theta about the axis through origin in direction dir,
// parametrized over [0, |theta|] regardless of theta's sign.
func arcAroundAxis(p, origin, dir geomath.Point3, theta float64) (geometry.Curve, error) {
	unitDir, ok := dir.Normalize()
	if !ok {
		return nil, &kernelerr.SingularEvaluation{Where: "rsweep axis direction is zero"}
	}
	toPoint := p.Sub(origin)
	axial := unitDir.Scale(toPoint.Dot(unitDir))
	center := origin.Add(axial)
	radial := toPoint.Sub(axial)

	radius := radial.Norm()
	if radius < geomath.Epsilon {
		// p lies on the axis: revolving it does not move it at all.
		return geometry.NewLine[geomath.Point3](p, geomath.Point3{}, 0, math.Abs(theta)), nil
	}
	u, _ := radial.Normalize()
	v := unitDir.Cross(u)
	if theta < 0 {
		v = v.Scale(-1)
	}
	return geometry.NewUnitCircle[geomath.Point3](center, u, v, 0, math.Abs(theta)), nil
}

// revolved tracks, per base-vertex identity, the arc chain (and any seam
// vertex) its revolution about one axis/angle produces, so that
// RSweepWire/RSweepEdge share these fresh features across the edges that
// meet at a common base vertex — mirroring `swept`'s role for tsweep.
type revolved struct {
	chains map[identity.Token][]*brep.Edge
}

func newRevolved() *revolved { return &revolved{chains: map[identity.Token][]*brep.Edge{}} }

// arcChain returns the edge or edges tracing v's revolution: one edge
// front=v,back=top for a partial turn, or two edges front=v,...,back=v
// through a fresh seam vertex for a full turn (an edge's front and back
// vertex must differ, so a literal self-loop edge is not representable;
// splitting the full circle at its midpoint keeps every edge well-formed
// while still welding start and end to the same vertex identity, per
// spec.md §4.M's "welded by identity" requirement).
func (r *revolved) arcChain(v *brep.Vertex, axisOrigin, axisDir geomath.Point3, theta float64) ([]*brep.Edge, error) {
	if chain, ok := r.chains[v.ID()]; ok {
		return chain, nil
	}
	curve, err := arcAroundAxis(v.Point(), axisOrigin, axisDir, theta)
	if err != nil {
		return nil, err
	}

	var chain []*brep.Edge
	if isFullTurn(theta) {
		mag := math.Abs(theta)
		seamT := mag / 2
		seamPoint := curve.Evaluate(seamT)
		seam := brep.NewVertex(seamPoint)
		half0, err := geometry.NewTrimmedCurve(curve, 0, seamT)
		if err != nil {
			return nil, err
		}
		half1, err := geometry.NewTrimmedCurve(curve, seamT, mag)
		if err != nil {
			return nil, err
		}
		e0, err := brep.NewEdge(v, seam, half0)
		if err != nil {
			return nil, err
		}
		e1, err := brep.NewEdge(seam, v, half1)
		if err != nil {
			return nil, err
		}
		chain = []*brep.Edge{e0, e1}
	} else {
		top := brep.NewVertex(rotatePoint(v.Point(), axisOrigin, axisDir, theta))
		e, err := brep.NewEdge(v, top, curve)
		if err != nil {
			return nil, err
		}
		chain = []*brep.Edge{e}
	}
	r.chains[v.ID()] = chain
	return chain, nil
}

func reversedInverses(chain []*brep.Edge) []*brep.Edge {
	out := make([]*brep.Edge, len(chain))
	for i, e := range chain {
		out[len(chain)-1-i] = e.Inverse()
	}
	return out
}

// RSweepVertex lifts a vertex to the wire tracing its rotation about the
// axis (spec.md §4.M); a partial turn produces a single-edge wire, a full
// turn a two-edge closed wire split at its midpoint (see revolved.arcChain).
func RSweepVertex(v *brep.Vertex, axisOrigin, axisDir geomath.Point3, theta float64) (*brep.Wire, error) {
	theta = clampAngle(theta)
	chain, err := newRevolved().arcChain(v, axisOrigin, axisDir, theta)
	if err != nil {
		return nil, err
	}
	return brep.TryNewWire(chain)
}

// RSweepEdge lifts an edge to a face over a RevolutedSurface (spec.md
// §4.M). A full turn welds the swept face's start and end meridian to the
// base edge itself instead of allocating a fresh copy.
func RSweepEdge(e *brep.Edge, axisOrigin, axisDir geomath.Point3, theta float64) (*brep.Face, error) {
	return rsweepEdge(newRevolved(), e, axisOrigin, axisDir, theta)
}

func rsweepEdge(r *revolved, e *brep.Edge, axisOrigin, axisDir geomath.Point3, theta float64) (*brep.Face, error) {
	theta = clampAngle(theta)
	surface := geometry.NewRevolutedSurface(e.Curve(), axisOrigin, axisDir, theta)

	frontChain, err := r.arcChain(e.Front(), axisOrigin, axisDir, theta)
	if err != nil {
		return nil, err
	}
	backChain, err := r.arcChain(e.Back(), axisOrigin, axisDir, theta)
	if err != nil {
		return nil, err
	}

	if isFullTurn(theta) {
		loopEdges := append([]*brep.Edge{e}, backChain...)
		loopEdges = append(loopEdges, e.Inverse())
		loopEdges = append(loopEdges, reversedInverses(frontChain)...)
		loop, err := brep.TryNewWire(loopEdges)
		if err != nil {
			return nil, err
		}
		return brep.NewFace([]*brep.Wire{loop}, surface)
	}

	endCurve := geometry.NewProcessor(e.Curve(), rotationTransform(axisOrigin, axisDir, theta))
	endEdge, err := brep.NewEdge(frontChain[0].Back(), backChain[0].Back(), endCurve)
	if err != nil {
		return nil, err
	}

	loopEdges := append([]*brep.Edge{e}, backChain...)
	loopEdges = append(loopEdges, endEdge.Inverse())
	loopEdges = append(loopEdges, reversedInverses(frontChain)...)
	loop, err := brep.TryNewWire(loopEdges)
	if err != nil {
		return nil, err
	}
	return brep.NewFace([]*brep.Wire{loop}, surface)
}

// RSweepWire lifts a wire to a shell, one face per edge, sharing the arc
// chains at every vertex shared between consecutive edges.
func RSweepWire(w *brep.Wire, axisOrigin, axisDir geomath.Point3, theta float64) (*brep.Shell, error) {
	r := newRevolved()
	shell := brep.NewShell()
	for _, e := range w.Edges() {
		f, err := rsweepEdge(r, e, axisOrigin, axisDir, theta)
		if err != nil {
			return nil, err
		}
		shell.AddFace(f)
	}
	return shell, nil
}

// rsweepCap builds the boundary wires of f's revolved top cap, sharing
// arc chains through r so seams line up with the side faces already
// produced by rsweepEdge for the same base edges.
func rsweepCap(r *revolved, f *brep.Face, axisOrigin, axisDir geomath.Point3, theta float64) ([]*brep.Wire, error) {
	var capBoundaries []*brep.Wire
	for _, w := range f.Boundaries() {
		var capEdges []*brep.Edge
		for _, e := range w.Edges() {
			endCurve := geometry.NewProcessor(e.Curve(), rotationTransform(axisOrigin, axisDir, theta))
			frontChain, err := r.arcChain(e.Front(), axisOrigin, axisDir, theta)
			if err != nil {
				return nil, err
			}
			backChain, err := r.arcChain(e.Back(), axisOrigin, axisDir, theta)
			if err != nil {
				return nil, err
			}
			var front, back *brep.Vertex
			if isFullTurn(theta) {
				front, back = e.Front(), e.Back()
			} else {
				front, back = frontChain[0].Back(), backChain[0].Back()
			}
			capEdge, err := brep.NewEdge(front, back, endCurve)
			if err != nil {
				return nil, err
			}
			capEdges = append(capEdges, capEdge)
		}
		capWire, err := brep.TryNewWire(capEdges)
		if err != nil {
			return nil, err
		}
		capBoundaries = append(capBoundaries, capWire)
	}
	return capBoundaries, nil
}

func rotationTransform(axisOrigin, axisDir geomath.Point3, theta float64) geomath.Matrix4 {
	toOrigin := geomath.Translation4(geomath.Point3{X: -axisOrigin.X, Y: -axisOrigin.Y, Z: -axisOrigin.Z})
	fromOrigin := geomath.Translation4(axisOrigin)
	rotation := geomath.RotationAxis4(axisDirOrFallback(axisDir), theta)
	return fromOrigin.Mul(rotation).Mul(toOrigin)
}

// RSweepFace lifts a face to a solid: the base face (inverted, as the
// starting cap), a rotated top cap, and one side face per boundary edge
// across every boundary wire (spec.md §4.M). A full turn welds the base
// face back onto itself instead of allocating a rotated top copy, since
// the meridian surface returns exactly onto its start after 2π.
func RSweepFace(f *brep.Face, axisOrigin, axisDir geomath.Point3, theta float64) (*brep.Solid, error) {
	theta = clampAngle(theta)
	r := newRevolved()
	shell := brep.NewShell()
	shell.AddFace(f.Inverse())

	for _, w := range f.Boundaries() {
		for _, e := range w.Edges() {
			sideFace, err := rsweepEdge(r, e, axisOrigin, axisDir, theta)
			if err != nil {
				return nil, err
			}
			shell.AddFace(sideFace)
		}
	}

	if isFullTurn(theta) {
		shell.AddFace(f)
		return brep.NewSolid([]*brep.Shell{shell})
	}

	topBoundaries, err := rsweepCap(r, f, axisOrigin, axisDir, theta)
	if err != nil {
		return nil, err
	}
	topSurface := geometry.NewSurfaceProcessor(f.Surface(), rotationTransform(axisOrigin, axisDir, theta))
	topFace, err := brep.NewFace(topBoundaries, topSurface)
	if err != nil {
		return nil, err
	}
	shell.AddFace(topFace)
	return brep.NewSolid([]*brep.Shell{shell})
}

// RSweepShell lifts every face of an open shell to a solid, mirroring
// TSweepShell's structure for the rotational case (spec.md §4.M "shell →
// solid when input is open").
func RSweepShell(sh *brep.Shell, axisOrigin, axisDir geomath.Point3, theta float64) (*brep.Solid, error) {
	theta = clampAngle(theta)
	r := newRevolved()
	solidShell := brep.NewShell()

	for _, f := range sh.Faces() {
		solidShell.AddFace(f.Inverse())
	}

	for _, boundary := range sh.ExtractBoundaries() {
		for _, e := range boundary.Edges() {
			sideFace, err := rsweepEdge(r, e, axisOrigin, axisDir, theta)
			if err != nil {
				return nil, err
			}
			solidShell.AddFace(sideFace)
		}
	}

	if isFullTurn(theta) {
		for _, f := range sh.Faces() {
			solidShell.AddFace(f)
		}
		return brep.NewSolid([]*brep.Shell{solidShell})
	}

	for _, f := range sh.Faces() {
		topBoundaries, err := rsweepCap(r, f, axisOrigin, axisDir, theta)
		if err != nil {
			return nil, err
		}
		topSurface := geometry.NewSurfaceProcessor(f.Surface(), rotationTransform(axisOrigin, axisDir, theta))
		topFace, err := brep.NewFace(topBoundaries, topSurface)
		if err != nil {
			return nil, err
		}
		solidShell.AddFace(topFace)
	}
	return brep.NewSolid([]*brep.Shell{solidShell})
}
