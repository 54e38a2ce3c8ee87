package modeling

import (
	"math"

	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// rimSamples controls the leader-polyline resolution IntersectionCurve
// Newton-snaps from when building a cylinder/plane ring (spec.md §8
// scenario 3); since the ring is a closed-form circle already, this only
// needs to be dense enough that the Newton correction stays in its basin.
const rimSamples = 64

// PunchedCube builds the closed-form analogue of "unit cube `and`
// complement of cylinder" (spec.md §8 scenario 3): a cube of edge length
// size, centered on the origin, with a cylindrical hole of the given
// radius drilled along the Z axis all the way through.
//
// Unlike pkg/kernel's sdfx/manifold backends, this is not a mesh boolean:
// the cube's top and bottom faces are pierced with an inner boundary wire
// built directly from geometry.IntersectionCurve over the face's own plane
// and the cylinder's lateral surface, and a new face over that lateral
// surface closes the hole into the cube's shell. The ring edges are
// IntersectionCurve-typed, matching the scenario's literal expectation;
// a marching-cubes or MeshGL mesh boolean could not produce that (see
// DESIGN.md).
func PunchedCube(size, holeRadius float64) (*brep.Solid, error) {
	half := size / 2
	if holeRadius <= 0 || holeRadius >= half {
		return nil, &kernelerr.ParameterOutOfRange{Param: "holeRadius", Value: holeRadius, Min: 0, Max: half}
	}

	v0 := Vertex(geomath.Point3{X: -half, Y: -half, Z: -half})
	bottomEdge, err := TSweepVertex(v0, geomath.Point3{X: size, Y: 0, Z: 0})
	if err != nil {
		return nil, err
	}
	baseFace, err := TSweepEdge(bottomEdge, geomath.Point3{X: 0, Y: size, Z: 0})
	if err != nil {
		return nil, err
	}
	cube, err := TSweepFace(baseFace, geomath.Point3{X: 0, Y: 0, Z: size})
	if err != nil {
		return nil, err
	}

	axisOrigin := geomath.Point3{X: 0, Y: 0, Z: 0}
	axisDir := geomath.Point3{X: 0, Y: 0, Z: 1}

	topFace, bottomFace, err := findAxisFaces(cube, axisDir)
	if err != nil {
		return nil, err
	}

	tube, err := cylindricalHole(topFace, bottomFace, axisOrigin, holeRadius, -half, half)
	if err != nil {
		return nil, err
	}

	faces := append(cube.OuterShell().Faces(), tube)
	return brep.NewSolid([]*brep.Shell{brep.ShellOf(faces)})
}

// faceOutwardNormal evaluates a face's surface normal at its UV midpoint
// and flips it if the face's own orientation flag disagrees with the
// surface's raw ∂u x ∂v sense (topology.Face's Orientation doc comment).
func faceOutwardNormal(f *brep.Face) (geomath.Point3, error) {
	u0, u1, v0, v1 := f.Surface().Bounds()
	n, _, err := f.Surface().Normal((u0+u1)/2, (v0+v1)/2)
	if err != nil {
		return geomath.Point3{}, err
	}
	if !f.Orientation() {
		n = n.Scale(-1)
	}
	return n, nil
}

// findAxisFaces picks the two faces of solid whose outward normal is most
// closely aligned (top) and most closely anti-aligned (bottom) with
// axisDir, for identifying which pair of a cube's six faces a hole should
// pierce.
func findAxisFaces(solid *brep.Solid, axisDir geomath.Point3) (top, bottom *brep.Face, err error) {
	var topDot, bottomDot float64
	for _, f := range solid.Faces() {
		n, nerr := faceOutwardNormal(f)
		if nerr != nil {
			return nil, nil, nerr
		}
		d := n.Dot(axisDir)
		if top == nil || d > topDot {
			top, topDot = f, d
		}
		if bottom == nil || d < bottomDot {
			bottom, bottomDot = f, d
		}
	}
	if top == nil || bottom == nil {
		return nil, nil, &kernelerr.TopologyViolation{Reason: "solid has no faces to pierce"}
	}
	return top, bottom, nil
}

// ringLeader samples a circle of radius r centered at (0,0,z) in the XZ=0
// plane's perpendicular (i.e. the XY-plane at height z) between angles
// a0 and a1, for use as an IntersectionCurve leader polyline.
func ringLeader(z, r, a0, a1 float64) []geomath.Point3 {
	pts := make([]geomath.Point3, rimSamples+1)
	for i := 0; i <= rimSamples; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(rimSamples)
		pts[i] = geomath.Point3{X: r * math.Cos(a), Y: r * math.Sin(a), Z: z}
	}
	return pts
}

// cylindricalHole pierces topFace and bottomFace with a circular inner
// boundary of radius r centered on the Z axis, and returns the new
// cylindrical face that bridges the two rings and closes the hole into
// the solid's shell. zBottom/zTop are the two faces' Z coordinates.
//
// The ring at each face is split into two edges at angle 0 and pi (mirroring
// rsweep.go's revolved.arcChain, which splits a full revolution the same
// way since an edge's front and back vertex must differ) so that neither
// is a literal self-loop; the cylindrical face's own boundary loop follows
// the same seam-and-two-rims shape as rsweepEdge's full-turn case, with a
// vertical seam edge in place of rsweepEdge's swept base edge.
func cylindricalHole(topFace, bottomFace *brep.Face, axisOrigin geomath.Point3, r, zBottom, zTop float64) (*brep.Face, error) {
	bottomSeamA := brep.NewVertex(geomath.Point3{X: r, Y: 0, Z: zBottom})
	bottomSeamB := brep.NewVertex(geomath.Point3{X: -r, Y: 0, Z: zBottom})
	topSeamA := brep.NewVertex(geomath.Point3{X: r, Y: 0, Z: zTop})
	topSeamB := brep.NewVertex(geomath.Point3{X: -r, Y: 0, Z: zTop})

	seamCurve := geometry.NewLine[geomath.Point3](bottomSeamA.Point(), topSeamA.Point().Sub(bottomSeamA.Point()), 0, 1)
	cylSurface := geometry.NewRevolutedSurface(seamCurve, axisOrigin, geomath.Point3{X: 0, Y: 0, Z: 1}, 2*math.Pi)

	ring := func(face *brep.Face, z float64, front, back *brep.Vertex, a0, a1 float64) (*brep.Edge, error) {
		curve, err := geometry.NewIntersectionCurve(face.Surface(), cylSurface, ringLeader(z, r, a0, a1))
		if err != nil {
			return nil, err
		}
		return brep.NewEdge(front, back, curve)
	}

	bottomEdgeA, err := ring(bottomFace, zBottom, bottomSeamA, bottomSeamB, 0, math.Pi)
	if err != nil {
		return nil, err
	}
	bottomEdgeB, err := ring(bottomFace, zBottom, bottomSeamB, bottomSeamA, math.Pi, 2*math.Pi)
	if err != nil {
		return nil, err
	}
	topEdgeA, err := ring(topFace, zTop, topSeamA, topSeamB, 0, math.Pi)
	if err != nil {
		return nil, err
	}
	topEdgeB, err := ring(topFace, zTop, topSeamB, topSeamA, math.Pi, 2*math.Pi)
	if err != nil {
		return nil, err
	}

	seamEdge, err := brep.NewEdge(bottomSeamA, topSeamA, seamCurve)
	if err != nil {
		return nil, err
	}

	bottomHole, err := brep.TryNewWire([]*brep.Edge{bottomEdgeA, bottomEdgeB})
	if err != nil {
		return nil, err
	}
	if err := bottomFace.AddBoundary(bottomHole); err != nil {
		return nil, err
	}

	topHole, err := brep.TryNewWire([]*brep.Edge{topEdgeB.Inverse(), topEdgeA.Inverse()})
	if err != nil {
		return nil, err
	}
	if err := topFace.AddBoundary(topHole); err != nil {
		return nil, err
	}

	loopEdges := []*brep.Edge{
		seamEdge, topEdgeA, topEdgeB, seamEdge.Inverse(),
		bottomEdgeB.Inverse(), bottomEdgeA.Inverse(),
	}
	loop, err := brep.TryNewWire(loopEdges)
	if err != nil {
		return nil, err
	}
	return brep.NewFace([]*brep.Wire{loop}, cylSurface)
}
