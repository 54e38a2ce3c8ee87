package serialize

import (
	"encoding/json"
	"testing"

	"github.com/chazu/lignin/pkg/geomath"
	"github.com/chazu/lignin/pkg/geometry"
	"github.com/chazu/lignin/pkg/kernelerr"
)

func TestEncodeDecodeCurveRoundTrip(t *testing.T) {
	kv, err := geometry.NewKnotVector([]float64{0, 0, 0, 1, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	ctrlPts := []geomath.Point3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 2, Y: 0, Z: 0}}
	bspline, err := geometry.NewBSplineCurve[geomath.Point3](2, kv, ctrlPts)
	if err != nil {
		t.Fatalf("NewBSplineCurve: %v", err)
	}
	nurbs, err := geometry.NewNurbsCurve(2, kv, ctrlPts, []float64{1, 1, 1})
	if err != nil {
		t.Fatalf("NewNurbsCurve: %v", err)
	}
	line := geometry.NewLine[geomath.Point3](geomath.Point3{X: 0, Y: 0, Z: 0}, geomath.Point3{X: 1, Y: 0, Z: 0}, 0, 1)
	trimmed, err := geometry.NewTrimmedCurve(line, 0.2, 0.8)
	if err != nil {
		t.Fatalf("NewTrimmedCurve: %v", err)
	}

	cases := []struct {
		name  string
		curve geometry.Curve
	}{
		{"line", line},
		{"unit_circle", geometry.NewUnitCircle[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, 0, 2)},
		{"unit_parabola", geometry.NewUnitParabola[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, -1, 1)},
		{"unit_hyperbola", geometry.NewUnitHyperbola[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, -1, 1)},
		{"b_spline_curve", bspline},
		{"nurbs_curve", nurbs},
		{"trimmed_curve", trimmed},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, err := EncodeCurve(c.curve)
			if err != nil {
				t.Fatalf("EncodeCurve: %v", err)
			}
			if rec.Kind != c.name {
				t.Fatalf("Kind = %q, want %q", rec.Kind, c.name)
			}
			data, err := json.Marshal(rec)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var decoded CurveRecord
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			out, err := DecodeCurve(&decoded)
			if err != nil {
				t.Fatalf("DecodeCurve: %v", err)
			}
			t0, t1 := out.Bounds()
			wt0, wt1 := c.curve.Bounds()
			if t0 != wt0 || t1 != wt1 {
				t.Errorf("Bounds = (%g,%g), want (%g,%g)", t0, t1, wt0, wt1)
			}
		})
	}
}

func TestEncodeCurveUnsupportedVariant(t *testing.T) {
	line := geometry.NewLine[geomath.Point3](geomath.Point3{}, geomath.Point3{X: 1}, 0, 1)
	proc := geometry.NewProcessor(line, geomath.Identity4())
	if _, err := EncodeCurve(proc); err == nil {
		t.Fatal("expected error for Processor curve")
	} else if _, ok := err.(*kernelerr.IoFormat); !ok {
		t.Errorf("error type = %T, want *kernelerr.IoFormat", err)
	}
}

func TestDecodeCurveUnknownKind(t *testing.T) {
	_, err := DecodeCurve(&CurveRecord{Kind: "bogus"})
	if err == nil {
		t.Fatal("expected error for unknown curve kind")
	}
	if _, ok := err.(*kernelerr.IoFormat); !ok {
		t.Errorf("error type = %T, want *kernelerr.IoFormat", err)
	}
}

func TestEncodeDecodeSurfaceRoundTrip(t *testing.T) {
	plane := geometry.NewPlane(geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, 0, 1, 0, 1)
	sphere := geometry.NewSphere(geomath.Point3{}, 2, 0, 6.28, 0, 3.14)
	line := geometry.NewLine[geomath.Point3](geomath.Point3{X: 1}, geomath.Point3{Y: 1}, 0, 1)
	revolved := geometry.NewRevolutedSurface(line, geomath.Point3{}, geomath.Point3{Z: 1}, 6.28)
	extruded := geometry.NewExtrudedSurface(line, geomath.Point3{Z: 1}, 3)

	ku, err := geometry.NewKnotVector([]float64{0, 0, 0, 1, 1, 1})
	if err != nil {
		t.Fatalf("NewKnotVector: %v", err)
	}
	grid := [][]geomath.Point3{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 2, Y: 0, Z: 0}},
		{{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 2, Y: 1, Z: 0}},
		{{X: 0, Y: 2, Z: 0}, {X: 1, Y: 2, Z: 1}, {X: 2, Y: 2, Z: 0}},
	}
	bsurf, err := geometry.NewBSplineSurface[geomath.Point3](2, 2, ku, ku, grid)
	if err != nil {
		t.Fatalf("NewBSplineSurface: %v", err)
	}
	weights := [][]float64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}
	nsurf, err := geometry.NewNurbsSurface(2, 2, ku, ku, grid, weights)
	if err != nil {
		t.Fatalf("NewNurbsSurface: %v", err)
	}
	trimmed, err := geometry.NewTrimmedSurface(plane, 0.1, 0.9, 0.1, 0.9, nil, nil)
	if err != nil {
		t.Fatalf("NewTrimmedSurface: %v", err)
	}

	cases := []struct {
		name    string
		surface geometry.Surface
	}{
		{"plane", plane},
		{"sphere", sphere},
		{"revoluted_surface", revolved},
		{"extruded_surface", extruded},
		{"b_spline_surface", bsurf},
		{"nurbs_surface", nsurf},
		{"trimmed_surface", trimmed},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, err := EncodeSurface(c.surface)
			if err != nil {
				t.Fatalf("EncodeSurface: %v", err)
			}
			if rec.Kind != c.name {
				t.Fatalf("Kind = %q, want %q", rec.Kind, c.name)
			}
			data, err := json.Marshal(rec)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var decoded SurfaceRecord
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			out, err := DecodeSurface(&decoded)
			if err != nil {
				t.Fatalf("DecodeSurface: %v", err)
			}
			u0, u1, v0, v1 := out.Bounds()
			wu0, wu1, wv0, wv1 := c.surface.Bounds()
			if u0 != wu0 || u1 != wu1 || v0 != wv0 || v1 != wv1 {
				t.Errorf("Bounds = (%g,%g,%g,%g), want (%g,%g,%g,%g)", u0, u1, v0, v1, wu0, wu1, wv0, wv1)
			}
		})
	}
}

func TestEncodeSurfaceUnsupportedVariant(t *testing.T) {
	plane := geometry.NewPlane(geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, 0, 1, 0, 1)
	proc := geometry.NewSurfaceProcessor(plane, geomath.Identity4())
	if _, err := EncodeSurface(proc); err == nil {
		t.Fatal("expected error for Processor3 surface")
	} else if _, ok := err.(*kernelerr.IoFormat); !ok {
		t.Errorf("error type = %T, want *kernelerr.IoFormat", err)
	}
}

func TestEncodeSurfaceTrimmedWithLoopsUnsupported(t *testing.T) {
	plane := geometry.NewPlane(geomath.Point3{}, geomath.Point3{X: 1}, geomath.Point3{Y: 1}, 0, 1, 0, 1)
	line := geometry.NewLine[geomath.Point2](geomath.Point2{}, geomath.Point2{X: 1}, 0, 1)
	trimmed, err := geometry.NewTrimmedSurface(plane, 0, 1, 0, 1, line, nil)
	if err != nil {
		t.Fatalf("NewTrimmedSurface: %v", err)
	}
	if _, err := EncodeSurface(trimmed); err == nil {
		t.Fatal("expected error for trimmed surface carrying an outer loop")
	} else if _, ok := err.(*kernelerr.IoFormat); !ok {
		t.Errorf("error type = %T, want *kernelerr.IoFormat", err)
	}
}

func TestDecodeSurfaceUnknownKind(t *testing.T) {
	_, err := DecodeSurface(&SurfaceRecord{Kind: "bogus"})
	if err == nil {
		t.Fatal("expected error for unknown surface kind")
	}
	if _, ok := err.(*kernelerr.IoFormat); !ok {
		t.Errorf("error type = %T, want *kernelerr.IoFormat", err)
	}
}
