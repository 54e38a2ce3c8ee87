package geometry

import (
	"math"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/kernelerr"
	"github.com/dhconnelly/rtreego"
)

// maxNewtonIterations bounds Newton's method for search-nearest-parameter
// (spec.md §4.G: "failure after N (default 50) iterations yields the best
// candidate found ... not an error").
const maxNewtonIterations = 50

// gridPreSampleCount is the number of coarse samples used to seed a Newton
// search when the caller supplies no hint.
const gridPreSampleCount = 32

// sampleSpatial adapts a single (parameter, coordinates) pre-sample for
// indexing in an rtreego.Rtree, used to seed Newton's method with a good
// starting parameter when the caller provides no hint.
type sampleSpatial struct {
	t      float64
	coords []float64
}

func (s *sampleSpatial) Bounds() rtreego.Rect {
	lengths := make([]float64, len(s.coords))
	for i := range lengths {
		lengths[i] = 1e-9
	}
	rect, _ := rtreego.NewRect(rtreego.Point(s.coords), lengths)
	return rect
}

// nearestGridParameter builds an rtree over a uniform grid of samples along
// [t0, t1] and returns the parameter of the sample nearest to target. This
// is the "coarser pre-sampling on a grid" the spec requires to seed the hint
// when none is supplied.
func nearestGridParameter(t0, t1 float64, evalCoords func(t float64) []float64, targetCoords []float64) float64 {
	tree := rtreego.NewTree(len(targetCoords), 2, 8)
	best := t0
	if gridPreSampleCount < 2 {
		return best
	}
	for i := 0; i < gridPreSampleCount; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(gridPreSampleCount-1)
		tree.Insert(&sampleSpatial{t: t, coords: evalCoords(t)})
	}
	nearest := tree.NearestNeighbor(rtreego.Point(targetCoords))
	if ss, ok := nearest.(*sampleSpatial); ok {
		best = ss.t
	}
	return best
}

// searchNearest runs a safeguarded Newton iteration minimizing
// |curve(t) - target|^2 over t in [t0, t1], generic over any point type
// with an affine combination and a dot product (spec.md §4.G).
//
// evaluate and derivative1/derivative2 are the curve's value and first/
// second derivative. coords converts a point to plain coordinates for the
// rtree-backed grid pre-sample used when hint is nil. kappa regularizes the
// Hessian when it is indefinite (non-positive), and the step is clipped to
// [t0, t1] at every iteration.
func searchNearest[P geomath.Metric[P]](
	t0, t1 float64,
	evaluate func(float64) P,
	derivative1, derivative2 func(float64) P,
	coords func(P) []float64,
	target P,
	hint *float64,
) (float64, *kernelerr.ConvergenceWarning) {
	var t float64
	if hint != nil {
		t = geomath.Clamp(*hint, t0, t1)
	} else {
		t = nearestGridParameter(t0, t1, func(s float64) []float64 { return coords(evaluate(s)) }, coords(target))
	}

	const kappa = 1e-6
	for i := 0; i < maxNewtonIterations; i++ {
		p := evaluate(t)
		d1 := derivative1(t)
		diff := p.Sub(target)

		// f(t) = |c(t)-target|^2, f'(t) = 2*diff.d1, f''(t) = 2*(d1.d1 + diff.d2)
		fPrime := 2 * diff.Dot(d1)
		if math.Abs(fPrime) < geomath.Epsilon {
			return t, nil
		}

		d2 := derivative2(t)
		fDoublePrime := 2 * (d1.Dot(d1) + diff.Dot(d2))
		if fDoublePrime <= 0 {
			fDoublePrime += kappa
		}

		step := fPrime / fDoublePrime
		next := geomath.Clamp(t-step, t0, t1)
		if math.Abs(next-t) < geomath.Epsilon {
			return next, nil
		}
		t = next
	}
	return t, &kernelerr.ConvergenceWarning{Op: "search_nearest_parameter", Iter: maxNewtonIterations}
}
