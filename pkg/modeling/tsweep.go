package modeling

import (
	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/identity"
)

// swept pairs a base feature with the fresh feature its sweep produced,
// letting TSweepWire/TSweepFace share the "vertical" edges and top
// vertices that adjacent base features have in common.
type swept struct {
	topVertices map[identity.Token]*brep.Vertex
	sideEdges   map[identity.Token]*brep.Edge
}

func newSwept() *swept {
	return &swept{topVertices: map[identity.Token]*brep.Vertex{}, sideEdges: map[identity.Token]*brep.Edge{}}
}

func (s *swept) topVertex(v *brep.Vertex, d geomath.Point3) *brep.Vertex {
	if tv, ok := s.topVertices[v.ID()]; ok {
		return tv
	}
	tv := brep.NewVertex(v.Point().Add(d))
	s.topVertices[v.ID()] = tv
	return tv
}

func (s *swept) sideEdge(v *brep.Vertex, d geomath.Point3) (*brep.Edge, error) {
	if se, ok := s.sideEdges[v.ID()]; ok {
		return se, nil
	}
	tv := s.topVertex(v, d)
	line := geometry.NewLine[geomath.Point3](v.Point(), d, 0, 1)
	se, err := brep.NewEdge(v, tv, line)
	if err != nil {
		return nil, err
	}
	s.sideEdges[v.ID()] = se
	return se, nil
}

// TSweepVertex lifts a vertex to an edge along d (spec.md §4.M).
func TSweepVertex(v *brep.Vertex, d geomath.Point3) (*brep.Edge, error) {
	return newSwept().sideEdge(v, d)
}

// TSweepEdge lifts an edge to a face along d: a ruled surface (plane if
// the edge's curve is a Line) bounded by the base edge, its translated
// top edge, and the two connecting side edges.
func TSweepEdge(e *brep.Edge, d geomath.Point3) (*brep.Face, error) {
	return tsweepEdge(newSwept(), e, d)
}

func tsweepEdge(s *swept, e *brep.Edge, d geomath.Point3) (*brep.Face, error) {
	frontSide, err := s.sideEdge(e.Front(), d)
	if err != nil {
		return nil, err
	}
	backSide, err := s.sideEdge(e.Back(), d)
	if err != nil {
		return nil, err
	}
	topFront, topBack := s.topVertex(e.Front(), d), s.topVertex(e.Back(), d)
	topCurve := geometry.NewProcessor(e.Curve(), geomath.Translation4(d))
	topEdge, err := brep.NewEdge(topFront, topBack, topCurve)
	if err != nil {
		return nil, err
	}

	loop, err := brep.TryNewWire([]*brep.Edge{e, backSide, topEdge.Inverse(), frontSide.Inverse()})
	if err != nil {
		return nil, err
	}
	return brep.NewFace([]*brep.Wire{loop}, sideSurface(e.Curve(), d))
}

// TSweepWire lifts a wire to a shell: one side face per edge, sharing the
// vertical edges (and their top vertices) at every shared vertex between
// consecutive edges (spec.md §4.M).
func TSweepWire(w *brep.Wire, d geomath.Point3) (*brep.Shell, error) {
	s := newSwept()
	shell := brep.NewShell()
	for _, e := range w.Edges() {
		f, err := tsweepEdge(s, e, d)
		if err != nil {
			return nil, err
		}
		shell.AddFace(f)
	}
	return shell, nil
}

// TSweepFace lifts a face to a solid: the base face (inverted, as the
// bottom cap), a translated top cap, and one side face per boundary edge
// across every boundary wire.
func TSweepFace(f *brep.Face, d geomath.Point3) (*brep.Solid, error) {
	s := newSwept()
	shell := brep.NewShell()
	shell.AddFace(f.Inverse())

	var topBoundaries []*brep.Wire
	for _, w := range f.Boundaries() {
		var topEdges []*brep.Edge
		for _, e := range w.Edges() {
			sideFace, err := tsweepEdge(s, e, d)
			if err != nil {
				return nil, err
			}
			shell.AddFace(sideFace)
			topFront, topBack := s.topVertex(e.Front(), d), s.topVertex(e.Back(), d)
			topCurve := geometry.NewProcessor(e.Curve(), geomath.Translation4(d))
			topEdge, err := brep.NewEdge(topFront, topBack, topCurve)
			if err != nil {
				return nil, err
			}
			topEdges = append(topEdges, topEdge)
		}
		topWire, err := brep.TryNewWire(topEdges)
		if err != nil {
			return nil, err
		}
		topBoundaries = append(topBoundaries, topWire)
	}

	topSurface := geometry.NewSurfaceProcessor(f.Surface(), geomath.Translation4(d))
	topFace, err := brep.NewFace(topBoundaries, topSurface)
	if err != nil {
		return nil, err
	}
	shell.AddFace(topFace)

	return brep.NewSolid([]*brep.Shell{shell})
}

// TSweepShell lifts every face of an open shell to a solid: the shell's own
// faces, inverted, form the bottom cap, the shell's boundary edges are swept
// into the side wall, and a translated copy closes the sweep as the opposing
// cap (spec.md §4.M "shell → solid when input is open").
func TSweepShell(sh *brep.Shell, d geomath.Point3) (*brep.Solid, error) {
	s := newSwept()
	solidShell := brep.NewShell()

	for _, f := range sh.Faces() {
		solidShell.AddFace(f.Inverse())
	}

	for _, boundary := range sh.ExtractBoundaries() {
		for _, e := range boundary.Edges() {
			sideFace, err := tsweepEdge(s, e, d)
			if err != nil {
				return nil, err
			}
			solidShell.AddFace(sideFace)
		}
	}

	for _, f := range sh.Faces() {
		var topBoundaries []*brep.Wire
		for _, w := range f.Boundaries() {
			var topEdges []*brep.Edge
			for _, e := range w.Edges() {
				topFront, topBack := s.topVertex(e.Front(), d), s.topVertex(e.Back(), d)
				topCurve := geometry.NewProcessor(e.Curve(), geomath.Translation4(d))
				topEdge, err := brep.NewEdge(topFront, topBack, topCurve)
				if err != nil {
					return nil, err
				}
				topEdges = append(topEdges, topEdge)
			}
			topWire, err := brep.TryNewWire(topEdges)
			if err != nil {
				return nil, err
			}
			topBoundaries = append(topBoundaries, topWire)
		}
		topSurface := geometry.NewSurfaceProcessor(f.Surface(), geomath.Translation4(d))
		topFace, err := brep.NewFace(topBoundaries, topSurface)
		if err != nil {
			return nil, err
		}
		solidShell.AddFace(topFace)
	}

	return brep.NewSolid([]*brep.Shell{solidShell})
}
