// Package kernel defines the abstract geometry kernel interface behind
// this module's arbitrary-primitive mesh preview: implementations (sdfx,
// manifold) provide primitive solids and mesh-level boolean operations
// and tessellate the result straight to a polymesh.PolygonMesh, for
// shapes that have no closed-form B-rep construction at all. It is a
// distinct, narrower capability from pkg/modeling's boolean support —
// pkg/kernel/sdfx's tests include a box-minus-cylinder difference.
// A full B-rep boolean is an explicit non-goal (SPEC_FULL.md); this
// interface is the bounded, mesh-only stand-in.
package kernel

import "github.com/chazu/lignin/pkg/polymesh"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
// Implementations (sdfx, manifold) provide solid modeling behind this interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// ToMesh tessellates a solid into a polymesh.PolygonMesh, by whatever
	// meshing technique the backend uses internally (marching cubes for
	// sdfx, MeshGL extraction for manifold).
	ToMesh(s Solid) (*polymesh.PolygonMesh, error)
}
