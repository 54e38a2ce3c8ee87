// Package fillet implements the rolling-ball/chamfer/ridge/custom blend
// engine (spec.md §4.F): it replaces a shared edge (or chain of shared
// edges) of a shell with a new blend face, trimming the two adjacent
// faces to meet it. It is the hardest subsystem in the kernel — every
// step after validation works against a NURBS approximation sampled
// along the edge, not a closed-form solve.
package fillet

import "github.com/chazu/lignin/pkg/kernelerr"

// RadiusProfile supplies the ball radius at parameter t in [0,1] along an
// edge chain (spec.md §4.F "radius: Constant(r) or Variable(t -> r(t))").
type RadiusProfile interface {
	At(t float64) float64
}

// Constant is a fixed radius along the whole chain.
type Constant float64

// At returns the constant radius regardless of t.
func (c Constant) At(float64) float64 { return float64(c) }

// Variable evaluates a user-supplied function of the chain parameter,
// e.g. compiled from source via pkg/exprfn for the `Variable(t -> r(t))`
// form.
type Variable func(t float64) float64

// At evaluates the function at t.
func (v Variable) At(t float64) float64 { return v(t) }

// ProfileKind selects the fillet cross-section shape (spec.md §4.F).
type ProfileKind int

const (
	// Round is the rolling-ball circular-arc profile.
	Round ProfileKind = iota
	// Chamfer is a flat ruled surface between the two contact curves.
	Chamfer
	// Ridge is a V-profile: two flat panels meeting at an apex line.
	Ridge
	// Custom sweeps a user-supplied 2-D profile through the local frame.
	Custom
)

func (k ProfileKind) String() string {
	switch k {
	case Round:
		return "round"
	case Chamfer:
		return "chamfer"
	case Ridge:
		return "ridge"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// ProfilePoint is one sample of a Custom profile curve in the local
// cross-section frame: X scales the first adjacent-surface normal, Y the
// second (spec.md §4.F "sweep of the user-supplied 2-D profile through
// the local frame").
type ProfilePoint struct {
	X, Y float64
}

// FilletOptions configures a fillet or chamfer operation (spec.md §4.F).
type FilletOptions struct {
	Radius  RadiusProfile
	Profile ProfileKind
	// CustomProfile supplies the cross-section samples when Profile ==
	// Custom, ordered from the first adjacent face's contact point to the
	// second's.
	CustomProfile []ProfilePoint
	// Division is the sampling density N along the edge chain (default 5
	// when zero).
	Division int
}

func (o FilletOptions) division() int {
	if o.Division > 0 {
		return o.Division
	}
	return 5
}

func (o FilletOptions) radiusAt(t float64) float64 {
	if o.Radius == nil {
		return 0
	}
	return o.Radius.At(t)
}

// degenerateLengthFactor is the proportionality constant spec.md §4.F
// step 1 leaves unspecified ("a threshold proportional to the radius");
// an edge shorter than this many radii cannot hold a full round profile
// without the two end contact arcs overlapping.
const degenerateLengthFactor = 2.0

func validateLength(length, radius float64) error {
	threshold := degenerateLengthFactor * radius
	if length < threshold {
		return &kernelerr.DegenerateEdge{Length: length, Threshold: threshold}
	}
	return nil
}
