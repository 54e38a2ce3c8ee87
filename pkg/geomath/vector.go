// Package geomath provides the point, vector, and transform types shared by
// every layer of the kernel: 2-D parameter space, 3-D model space, and 4-D
// homogeneous NURBS control points, plus the affine transform used by the
// Processor decorators. Everything here is over 64-bit floats, per spec.
package geomath

import "math"

// Point2 is a point in 2-D parameter space.
type Point2 struct {
	X, Y float64
}

// Point3 is a point in 3-D model space.
type Point3 struct {
	X, Y, Z float64
}

// Point4 is a homogeneous NURBS control point (x, y, z, w).
type Point4 struct {
	X, Y, Z, W float64
}

// Add returns p+q.
func (p Point2) Add(q Point2) Point2 { return Point2{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point2) Sub(q Point2) Point2 { return Point2{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point2) Scale(s float64) Point2 { return Point2{p.X * s, p.Y * s} }

// Norm returns the Euclidean length of p treated as a vector from the origin.
func (p Point2) Norm() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the Euclidean distance between p and q.
func (p Point2) Dist(q Point2) float64 { return p.Sub(q).Norm() }

// Dot returns the dot product of p and q.
func (p Point2) Dot(q Point2) float64 { return p.X*q.X + p.Y*q.Y }

// Add returns p+q.
func (p Point3) Add(q Point3) Point3 { return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

// Sub returns p-q.
func (p Point3) Sub(q Point3) Point3 { return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Scale returns p scaled by s.
func (p Point3) Scale(s float64) Point3 { return Point3{p.X * s, p.Y * s, p.Z * s} }

// Dot returns the dot product of p and q.
func (p Point3) Dot(q Point3) float64 { return p.X*q.X + p.Y*q.Y + p.Z*q.Z }

// Cross returns the cross product p x q.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// Norm returns the Euclidean length of p treated as a vector from the origin.
func (p Point3) Norm() float64 { return math.Sqrt(p.Dot(p)) }

// Dist returns the Euclidean distance between p and q.
func (p Point3) Dist(q Point3) float64 { return p.Sub(q).Norm() }

// Normalize returns p scaled to unit length. If p is within Epsilon of the
// zero vector it returns the zero vector unchanged and ok=false; callers
// (e.g. surface normal evaluation at a pole) must handle this explicitly
// rather than receiving NaN.
func (p Point3) Normalize() (unit Point3, ok bool) {
	n := p.Norm()
	if n < Epsilon {
		return Point3{}, false
	}
	return p.Scale(1 / n), true
}

// Lerp linearly interpolates between p and q at parameter t in [0,1].
func (p Point3) Lerp(q Point3, t float64) Point3 {
	return p.Add(q.Sub(p).Scale(t))
}

// Homogeneous promotes a 3-D point to a weight-1 homogeneous point.
func (p Point3) Homogeneous() Point4 { return Point4{p.X, p.Y, p.Z, 1} }

// Add returns p+q (component-wise, including weight).
func (p Point4) Add(q Point4) Point4 {
	return Point4{p.X + q.X, p.Y + q.Y, p.Z + q.Z, p.W + q.W}
}

// Scale returns p scaled by s (including weight).
func (p Point4) Scale(s float64) Point4 {
	return Point4{p.X * s, p.Y * s, p.Z * s, p.W * s}
}

// Project performs the rational (perspective) division that turns a
// homogeneous NURBS control point back into a 3-D model-space point. When
// the weight is within Epsilon of zero, SafeDiv substitutes 0 rather than
// producing NaN/Inf (spec.md §4.G numeric edge cases).
func (p Point4) Project() Point3 {
	return Point3{
		X: SafeDiv(p.X, p.W),
		Y: SafeDiv(p.Y, p.W),
		Z: SafeDiv(p.Z, p.W),
	}
}
