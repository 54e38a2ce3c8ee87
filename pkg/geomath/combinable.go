package geomath

// Combinable is satisfied by every point type that B-spline evaluation and
// differencing need: an affine combination (Add/Scale) and a difference
// (Sub). Point2, Point3, and Point4 all satisfy it, which lets
// geometry.BSplineCurve be written once and instantiated over whichever
// control-point dimension a variant needs (spec.md §3: "P ∈ {2-D, 3-D, 4-D}").
type Combinable[T any] interface {
	Add(T) T
	Sub(T) T
	Scale(float64) T
}

// Sub returns p-q.
func (p Point4) Sub(q Point4) Point4 {
	return Point4{p.X - q.X, p.Y - q.Y, p.Z - q.Z, p.W - q.W}
}

// Dot returns the dot product of p and q over all four components.
func (p Point4) Dot(q Point4) float64 { return p.X*q.X + p.Y*q.Y + p.Z*q.Z + p.W*q.W }

// Metric is Combinable plus a dot product and a plain-coordinate view,
// enough to run Newton's method and rtree-backed grid pre-sampling for
// nearest-parameter search (geometry.searchNearest) over any point
// dimension.
type Metric[T any] interface {
	Combinable[T]
	Dot(T) float64
	Coords() []float64
}

// Coords returns [x, y].
func (p Point2) Coords() []float64 { return []float64{p.X, p.Y} }

// Coords returns [x, y, z].
func (p Point3) Coords() []float64 { return []float64{p.X, p.Y, p.Z} }

// Coords returns [x, y, z, w].
func (p Point4) Coords() []float64 { return []float64{p.X, p.Y, p.Z, p.W} }
