package geomath

import "math"

// Matrix4 is a 4x4 affine/homogeneous transform, row-major, applied to
// Point3 or Point4 values. Used by the Processor decorator (spec.md §4.G)
// to carry translations, rotations, and scales through curves and
// surfaces without duplicating their underlying math.
type Matrix4 [4][4]float64

// Identity4 returns the identity transform.
func Identity4() Matrix4 {
	var m Matrix4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// Translation4 returns a translation transform.
func Translation4(d Point3) Matrix4 {
	m := Identity4()
	m[0][3], m[1][3], m[2][3] = d.X, d.Y, d.Z
	return m
}

// Scaling4 returns a uniform scaling transform about the origin.
func Scaling4(s float64) Matrix4 {
	m := Identity4()
	m[0][0], m[1][1], m[2][2] = s, s, s
	return m
}

// RotationAxis4 returns the rotation by angle radians about the unit axis.
// Uses the Rodrigues formula. Panics only on a zero axis, which is a
// programming error at the call site (spec.md §7 propagation policy).
func RotationAxis4(axis Point3, angle float64) Matrix4 {
	u, ok := axis.Normalize()
	if !ok {
		panic("geomath: RotationAxis4 called with zero axis")
	}
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	m := Identity4()
	m[0][0] = t*u.X*u.X + c
	m[0][1] = t*u.X*u.Y - s*u.Z
	m[0][2] = t*u.X*u.Z + s*u.Y
	m[1][0] = t*u.X*u.Y + s*u.Z
	m[1][1] = t*u.Y*u.Y + c
	m[1][2] = t*u.Y*u.Z - s*u.X
	m[2][0] = t*u.X*u.Z - s*u.Y
	m[2][1] = t*u.Y*u.Z + s*u.X
	m[2][2] = t*u.Z*u.Z + c
	return m
}

// Mul returns m*n (m applied after n).
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * n[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// ApplyPoint transforms a 3-D point (w=1 implicitly).
func (m Matrix4) ApplyPoint(p Point3) Point3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	return Point3{x, y, z}
}

// ApplyVector transforms a 3-D direction vector (translation ignored).
func (m Matrix4) ApplyVector(v Point3) Point3 {
	x := m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z
	y := m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z
	z := m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z
	return Point3{x, y, z}
}

// ApplyHomogeneous transforms a 4-D homogeneous point.
func (m Matrix4) ApplyHomogeneous(p Point4) Point4 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]*p.W
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]*p.W
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]*p.W
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]*p.W
	return Point4{x, y, z, w}
}
