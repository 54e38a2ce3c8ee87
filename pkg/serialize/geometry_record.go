// Package serialize implements the deterministic JSON external interface
// described in spec.md §6: a fixed-schema JSON form for Solid,
// CompressedShell, and PolygonMesh. Every value decoded from JSON is passed
// back through the owning package's validating constructor (Compress's own
// index-range checks, NewSolid's Regular check, NewPolygonMesh's buffer
// bounds check), so malformed input surfaces as the same typed kernelerr
// values a caller building the same structure in Go would see.
//
// STEP and mesh-file interchange (OBJ/STL/VTU) are adapter-level concerns
// outside the kernel's core and are not implemented here.
package serialize

import (
	"fmt"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// CurveRecord is the tagged-union JSON form of a geometry.Curve. Exactly one
// of the variant fields is populated, selected by Kind; encoding/json
// marshals struct fields in declaration order, which is the fixed key
// schema spec.md §6 asks for.
type CurveRecord struct {
	Kind          string              `json:"kind"`
	Line          *LineRecord         `json:"line,omitempty"`
	UnitCircle    *EllipticRecord     `json:"unit_circle,omitempty"`
	UnitParabola  *EllipticRecord     `json:"unit_parabola,omitempty"`
	UnitHyperbola *EllipticRecord     `json:"unit_hyperbola,omitempty"`
	BSplineCurve  *BSplineCurveRecord `json:"b_spline_curve,omitempty"`
	NurbsCurve    *NurbsCurveRecord   `json:"nurbs_curve,omitempty"`
	TrimmedCurve  *TrimmedCurveRecord `json:"trimmed_curve,omitempty"`
}

// LineRecord is the JSON form of a geometry.Line[geomath.Point3].
type LineRecord struct {
	Origin geomath.Point3 `json:"origin"`
	Dir    geomath.Point3 `json:"dir"`
	T0     float64        `json:"t0"`
	T1     float64        `json:"t1"`
}

// EllipticRecord is the shared JSON form of UnitCircle, UnitParabola, and
// UnitHyperbola, which share the center+basis0+basis1 representation.
type EllipticRecord struct {
	Center geomath.Point3 `json:"center"`
	Basis0 geomath.Point3 `json:"basis0"`
	Basis1 geomath.Point3 `json:"basis1"`
	T0     float64        `json:"t0"`
	T1     float64        `json:"t1"`
}

// BSplineCurveRecord is the JSON form of a non-rational BSplineCurve.
type BSplineCurveRecord struct {
	Degree        int              `json:"degree"`
	Knots         []float64        `json:"knots"`
	ControlPoints []geomath.Point3 `json:"control_points"`
}

// NurbsCurveRecord is the JSON form of a rational NurbsCurve.
type NurbsCurveRecord struct {
	Degree        int              `json:"degree"`
	Knots         []float64        `json:"knots"`
	ControlPoints []geomath.Point3 `json:"control_points"`
	Weights       []float64        `json:"weights"`
}

// TrimmedCurveRecord is the JSON form of a TrimmedCurve: its inner curve
// record plus the restricted domain.
type TrimmedCurveRecord struct {
	Inner *CurveRecord `json:"inner"`
	T0    float64      `json:"t0"`
	T1    float64      `json:"t1"`
}

// EncodeCurve converts a geometry.Curve to its JSON record. Processor,
// PCurve, and IntersectionCurve are derived/ephemeral constructions (the
// first is a transform applied at evaluation time, the other two reference
// a surface or a leader polyline by Go value rather than a serializable
// closed form) and return IoFormat rather than a lossy approximation.
func EncodeCurve(c geometry.Curve) (*CurveRecord, error) {
	switch v := c.(type) {
	case *geometry.Line[geomath.Point3]:
		t0, t1 := v.Bounds()
		return &CurveRecord{Kind: "line", Line: &LineRecord{Origin: v.Origin(), Dir: v.Dir(), T0: t0, T1: t1}}, nil
	case *geometry.UnitCircle[geomath.Point3]:
		t0, t1 := v.Bounds()
		return &CurveRecord{Kind: "unit_circle", UnitCircle: &EllipticRecord{Center: v.Center(), Basis0: v.Basis0(), Basis1: v.Basis1(), T0: t0, T1: t1}}, nil
	case *geometry.UnitParabola[geomath.Point3]:
		t0, t1 := v.Bounds()
		return &CurveRecord{Kind: "unit_parabola", UnitParabola: &EllipticRecord{Center: v.Center(), Basis0: v.Basis0(), Basis1: v.Basis1(), T0: t0, T1: t1}}, nil
	case *geometry.UnitHyperbola[geomath.Point3]:
		t0, t1 := v.Bounds()
		return &CurveRecord{Kind: "unit_hyperbola", UnitHyperbola: &EllipticRecord{Center: v.Center(), Basis0: v.Basis0(), Basis1: v.Basis1(), T0: t0, T1: t1}}, nil
	case *geometry.BSplineCurve[geomath.Point3]:
		return &CurveRecord{Kind: "b_spline_curve", BSplineCurve: &BSplineCurveRecord{
			Degree: v.Degree(), Knots: v.Knots().Slice(), ControlPoints: v.ControlPoints(),
		}}, nil
	case *geometry.NurbsCurve:
		return &CurveRecord{Kind: "nurbs_curve", NurbsCurve: &NurbsCurveRecord{
			Degree: v.Degree(), Knots: v.Knots().Slice(), ControlPoints: v.ControlPoints(), Weights: v.Weights(),
		}}, nil
	case *geometry.TrimmedCurve:
		inner, err := EncodeCurve(v.Inner())
		if err != nil {
			return nil, err
		}
		t0, t1 := v.Bounds()
		return &CurveRecord{Kind: "trimmed_curve", TrimmedCurve: &TrimmedCurveRecord{Inner: inner, T0: t0, T1: t1}}, nil
	default:
		return nil, &kernelerr.IoFormat{Reason: fmt.Sprintf("curve variant %T has no serialization form", c)}
	}
}

// DecodeCurve rebuilds a geometry.Curve from its JSON record, revalidating
// through each variant's own constructor.
func DecodeCurve(r *CurveRecord) (geometry.Curve, error) {
	if r == nil {
		return nil, &kernelerr.IoFormat{Reason: "nil curve record"}
	}
	switch r.Kind {
	case "line":
		if r.Line == nil {
			return nil, &kernelerr.IoFormat{Reason: "curve kind line missing its payload"}
		}
		l := r.Line
		return geometry.NewLine[geomath.Point3](l.Origin, l.Dir, l.T0, l.T1), nil
	case "unit_circle":
		if r.UnitCircle == nil {
			return nil, &kernelerr.IoFormat{Reason: "curve kind unit_circle missing its payload"}
		}
		e := r.UnitCircle
		return geometry.NewUnitCircle[geomath.Point3](e.Center, e.Basis0, e.Basis1, e.T0, e.T1), nil
	case "unit_parabola":
		if r.UnitParabola == nil {
			return nil, &kernelerr.IoFormat{Reason: "curve kind unit_parabola missing its payload"}
		}
		e := r.UnitParabola
		return geometry.NewUnitParabola[geomath.Point3](e.Center, e.Basis0, e.Basis1, e.T0, e.T1), nil
	case "unit_hyperbola":
		if r.UnitHyperbola == nil {
			return nil, &kernelerr.IoFormat{Reason: "curve kind unit_hyperbola missing its payload"}
		}
		e := r.UnitHyperbola
		return geometry.NewUnitHyperbola[geomath.Point3](e.Center, e.Basis0, e.Basis1, e.T0, e.T1), nil
	case "b_spline_curve":
		if r.BSplineCurve == nil {
			return nil, &kernelerr.IoFormat{Reason: "curve kind b_spline_curve missing its payload"}
		}
		b := r.BSplineCurve
		kv, err := geometry.NewKnotVector(b.Knots)
		if err != nil {
			return nil, err
		}
		return geometry.NewBSplineCurve[geomath.Point3](b.Degree, kv, b.ControlPoints)
	case "nurbs_curve":
		if r.NurbsCurve == nil {
			return nil, &kernelerr.IoFormat{Reason: "curve kind nurbs_curve missing its payload"}
		}
		n := r.NurbsCurve
		kv, err := geometry.NewKnotVector(n.Knots)
		if err != nil {
			return nil, err
		}
		return geometry.NewNurbsCurve(n.Degree, kv, n.ControlPoints, n.Weights)
	case "trimmed_curve":
		if r.TrimmedCurve == nil {
			return nil, &kernelerr.IoFormat{Reason: "curve kind trimmed_curve missing its payload"}
		}
		t := r.TrimmedCurve
		inner, err := DecodeCurve(t.Inner)
		if err != nil {
			return nil, err
		}
		return geometry.NewTrimmedCurve(inner, t.T0, t.T1)
	default:
		return nil, &kernelerr.IoFormat{Reason: fmt.Sprintf("unknown curve kind %q", r.Kind)}
	}
}

// SurfaceRecord is the tagged-union JSON form of a geometry.Surface.
type SurfaceRecord struct {
	Kind             string                  `json:"kind"`
	Plane            *PlaneRecord            `json:"plane,omitempty"`
	Sphere           *SphereRecord           `json:"sphere,omitempty"`
	RevolutedSurface *RevolutedSurfaceRecord `json:"revoluted_surface,omitempty"`
	ExtrudedSurface  *ExtrudedSurfaceRecord  `json:"extruded_surface,omitempty"`
	BSplineSurface   *BSplineSurfaceRecord   `json:"b_spline_surface,omitempty"`
	NurbsSurface     *NurbsSurfaceRecord     `json:"nurbs_surface,omitempty"`
	TrimmedSurface   *TrimmedSurfaceRecord   `json:"trimmed_surface,omitempty"`
}

// PlaneRecord is the JSON form of a Plane.
type PlaneRecord struct {
	Origin geomath.Point3 `json:"origin"`
	U      geomath.Point3 `json:"u"`
	V      geomath.Point3 `json:"v"`
	U0     float64        `json:"u0"`
	U1     float64        `json:"u1"`
	V0     float64        `json:"v0"`
	V1     float64        `json:"v1"`
}

// SphereRecord is the JSON form of a Sphere.
type SphereRecord struct {
	Center geomath.Point3 `json:"center"`
	Radius float64        `json:"radius"`
	U0     float64        `json:"u0"`
	U1     float64        `json:"u1"`
	V0     float64        `json:"v0"`
	V1     float64        `json:"v1"`
}

// RevolutedSurfaceRecord is the JSON form of a RevolutedSurface.
type RevolutedSurfaceRecord struct {
	Profile    *CurveRecord   `json:"profile"`
	AxisOrigin geomath.Point3 `json:"axis_origin"`
	AxisDir    geomath.Point3 `json:"axis_dir"`
	Theta      float64        `json:"theta"`
}

// ExtrudedSurfaceRecord is the JSON form of an ExtrudedSurface.
type ExtrudedSurfaceRecord struct {
	Profile   *CurveRecord   `json:"profile"`
	Direction geomath.Point3 `json:"direction"`
	Length    float64        `json:"length"`
}

// BSplineSurfaceRecord is the JSON form of a non-rational BSplineSurface.
type BSplineSurfaceRecord struct {
	DegreeU       int                `json:"degree_u"`
	DegreeV       int                `json:"degree_v"`
	KnotsU        []float64          `json:"knots_u"`
	KnotsV        []float64          `json:"knots_v"`
	ControlPoints [][]geomath.Point3 `json:"control_points"`
}

// NurbsSurfaceRecord is the JSON form of a rational NurbsSurface.
type NurbsSurfaceRecord struct {
	DegreeU       int                `json:"degree_u"`
	DegreeV       int                `json:"degree_v"`
	KnotsU        []float64          `json:"knots_u"`
	KnotsV        []float64          `json:"knots_v"`
	ControlPoints [][]geomath.Point3 `json:"control_points"`
	Weights       [][]float64        `json:"weights"`
}

// TrimmedSurfaceRecord is the JSON form of a TrimmedSurface restricted to a
// sub-rectangle of its inner surface's domain. A TrimmedSurface carrying an
// outer silhouette loop or hole loops has no JSON form (see EncodeSurface).
type TrimmedSurfaceRecord struct {
	Inner *SurfaceRecord `json:"inner"`
	U0    float64        `json:"u0"`
	U1    float64        `json:"u1"`
	V0    float64        `json:"v0"`
	V1    float64        `json:"v1"`
}

// EncodeSurface converts a geometry.Surface to its JSON record. Processor3
// and RbfSurface have no closed serializable form (a Processor3 is a
// transform applied at evaluation time; an RbfSurface is defined by two
// rail curves plus normal-field closures, which cannot round-trip through
// JSON) and return IoFormat. A TrimmedSurface carrying boundary loops also
// returns IoFormat: loop serialization is not part of this schema.
func EncodeSurface(s geometry.Surface) (*SurfaceRecord, error) {
	switch v := s.(type) {
	case *geometry.Plane:
		u0, u1, v0, v1 := v.Bounds()
		return &SurfaceRecord{Kind: "plane", Plane: &PlaneRecord{Origin: v.Origin(), U: v.U(), V: v.V(), U0: u0, U1: u1, V0: v0, V1: v1}}, nil
	case *geometry.Sphere:
		u0, u1, v0, v1 := v.Bounds()
		return &SurfaceRecord{Kind: "sphere", Sphere: &SphereRecord{Center: v.Center(), Radius: v.Radius(), U0: u0, U1: u1, V0: v0, V1: v1}}, nil
	case *geometry.RevolutedSurface:
		profile, err := EncodeCurve(v.Profile())
		if err != nil {
			return nil, err
		}
		return &SurfaceRecord{Kind: "revoluted_surface", RevolutedSurface: &RevolutedSurfaceRecord{
			Profile: profile, AxisOrigin: v.AxisOrigin(), AxisDir: v.AxisDir(), Theta: v.Theta(),
		}}, nil
	case *geometry.ExtrudedSurface:
		profile, err := EncodeCurve(v.Profile())
		if err != nil {
			return nil, err
		}
		return &SurfaceRecord{Kind: "extruded_surface", ExtrudedSurface: &ExtrudedSurfaceRecord{
			Profile: profile, Direction: v.Direction(), Length: v.Length(),
		}}, nil
	case *geometry.BSplineSurface[geomath.Point3]:
		return &SurfaceRecord{Kind: "b_spline_surface", BSplineSurface: &BSplineSurfaceRecord{
			DegreeU: v.DegreeU(), DegreeV: v.DegreeV(),
			KnotsU: v.KnotsU().Slice(), KnotsV: v.KnotsV().Slice(),
			ControlPoints: v.ControlPoints(),
		}}, nil
	case *geometry.NurbsSurface:
		return &SurfaceRecord{Kind: "nurbs_surface", NurbsSurface: &NurbsSurfaceRecord{
			DegreeU: v.DegreeU(), DegreeV: v.DegreeV(),
			KnotsU: v.KnotsU().Slice(), KnotsV: v.KnotsV().Slice(),
			ControlPoints: v.ControlPoints(), Weights: v.Weights(),
		}}, nil
	case *geometry.TrimmedSurface:
		outer, holes := v.Loops()
		if outer != nil || len(holes) > 0 {
			return nil, &kernelerr.IoFormat{Reason: "trimmed surface boundary loops have no serialization form"}
		}
		inner, err := EncodeSurface(v.Inner())
		if err != nil {
			return nil, err
		}
		u0, u1, v0, v1 := v.Bounds()
		return &SurfaceRecord{Kind: "trimmed_surface", TrimmedSurface: &TrimmedSurfaceRecord{Inner: inner, U0: u0, U1: u1, V0: v0, V1: v1}}, nil
	default:
		return nil, &kernelerr.IoFormat{Reason: fmt.Sprintf("surface variant %T has no serialization form", s)}
	}
}

// DecodeSurface rebuilds a geometry.Surface from its JSON record.
func DecodeSurface(r *SurfaceRecord) (geometry.Surface, error) {
	if r == nil {
		return nil, &kernelerr.IoFormat{Reason: "nil surface record"}
	}
	switch r.Kind {
	case "plane":
		if r.Plane == nil {
			return nil, &kernelerr.IoFormat{Reason: "surface kind plane missing its payload"}
		}
		p := r.Plane
		return geometry.NewPlane(p.Origin, p.U, p.V, p.U0, p.U1, p.V0, p.V1), nil
	case "sphere":
		if r.Sphere == nil {
			return nil, &kernelerr.IoFormat{Reason: "surface kind sphere missing its payload"}
		}
		s := r.Sphere
		return geometry.NewSphere(s.Center, s.Radius, s.U0, s.U1, s.V0, s.V1), nil
	case "revoluted_surface":
		if r.RevolutedSurface == nil {
			return nil, &kernelerr.IoFormat{Reason: "surface kind revoluted_surface missing its payload"}
		}
		rs := r.RevolutedSurface
		profile, err := DecodeCurve(rs.Profile)
		if err != nil {
			return nil, err
		}
		return geometry.NewRevolutedSurface(profile, rs.AxisOrigin, rs.AxisDir, rs.Theta), nil
	case "extruded_surface":
		if r.ExtrudedSurface == nil {
			return nil, &kernelerr.IoFormat{Reason: "surface kind extruded_surface missing its payload"}
		}
		es := r.ExtrudedSurface
		profile, err := DecodeCurve(es.Profile)
		if err != nil {
			return nil, err
		}
		return geometry.NewExtrudedSurface(profile, es.Direction, es.Length), nil
	case "b_spline_surface":
		if r.BSplineSurface == nil {
			return nil, &kernelerr.IoFormat{Reason: "surface kind b_spline_surface missing its payload"}
		}
		b := r.BSplineSurface
		ku, err := geometry.NewKnotVector(b.KnotsU)
		if err != nil {
			return nil, err
		}
		kv, err := geometry.NewKnotVector(b.KnotsV)
		if err != nil {
			return nil, err
		}
		return geometry.NewBSplineSurface[geomath.Point3](b.DegreeU, b.DegreeV, ku, kv, b.ControlPoints)
	case "nurbs_surface":
		if r.NurbsSurface == nil {
			return nil, &kernelerr.IoFormat{Reason: "surface kind nurbs_surface missing its payload"}
		}
		n := r.NurbsSurface
		ku, err := geometry.NewKnotVector(n.KnotsU)
		if err != nil {
			return nil, err
		}
		kv, err := geometry.NewKnotVector(n.KnotsV)
		if err != nil {
			return nil, err
		}
		return geometry.NewNurbsSurface(n.DegreeU, n.DegreeV, ku, kv, n.ControlPoints, n.Weights)
	case "trimmed_surface":
		if r.TrimmedSurface == nil {
			return nil, &kernelerr.IoFormat{Reason: "surface kind trimmed_surface missing its payload"}
		}
		t := r.TrimmedSurface
		inner, err := DecodeSurface(t.Inner)
		if err != nil {
			return nil, err
		}
		return geometry.NewTrimmedSurface(inner, t.U0, t.U1, t.V0, t.V1, nil, nil)
	default:
		return nil, &kernelerr.IoFormat{Reason: fmt.Sprintf("unknown surface kind %q", r.Kind)}
	}
}
