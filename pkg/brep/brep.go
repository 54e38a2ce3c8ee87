// Package brep fixes the generic topology/geometry type parameters to the
// one concrete instantiation the rest of the kernel operates on: points in
// 3-space, curves and surfaces behind the pkg/geometry interfaces. Every
// downstream package (modeling, fillet, polymesh, tessellate, serialize)
// imports these aliases instead of re-spelling the three type parameters
// at every call site.
package brep

import (
	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/topology"
)

type (
	Vertex          = topology.Vertex[geomath.Point3]
	Edge            = topology.Edge[geomath.Point3, geometry.Curve]
	Wire            = topology.Wire[geomath.Point3, geometry.Curve]
	Face            = topology.Face[geomath.Point3, geometry.Curve, geometry.Surface]
	Shell           = topology.Shell[geomath.Point3, geometry.Curve, geometry.Surface]
	Solid           = topology.Solid[geomath.Point3, geometry.Curve, geometry.Surface]
	CompressedShell = topology.CompressedShell[geomath.Point3, geometry.Curve, geometry.Surface]
	CompressedSolid = topology.CompressedSolid[geomath.Point3, geometry.Curve, geometry.Surface]
)

// NewVertex allocates a fresh vertex at p.
func NewVertex(p geomath.Point3) *Vertex { return topology.NewVertex(p) }

// NewEdge builds an edge between front and back carrying curve c.
func NewEdge(front, back *Vertex, c geometry.Curve) (*Edge, error) {
	return topology.NewEdge(front, back, c)
}

// NewWire builds an empty wire.
func NewWire() *Wire { return topology.NewWire[geomath.Point3, geometry.Curve]() }

// TryNewWire validates and builds a wire from a connected edge sequence.
func TryNewWire(edges []*Edge) (*Wire, error) { return topology.TryNewWire(edges) }

// NewFace builds a trimmed face over surface s bounded by boundaries.
func NewFace(boundaries []*Wire, s geometry.Surface) (*Face, error) {
	return topology.NewFace(boundaries, s)
}

// NewShell builds an empty shell.
func NewShell() *Shell { return topology.NewShell[geomath.Point3, geometry.Curve, geometry.Surface]() }

// ShellOf builds a shell from an existing face slice.
func ShellOf(faces []*Face) *Shell { return topology.ShellOf(faces) }

// NewSolid validates and builds a solid from boundary shells.
func NewSolid(boundary []*Shell) (*Solid, error) { return topology.NewSolid(boundary) }
