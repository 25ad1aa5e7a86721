package helper

import (
	"math"
	"testing"

	"wave-city/internal/params"

	"github.com/go-gl/mathgl/mgl32"
)

func points(v []float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, len(v)/3)
	for i := 0; i+2 < len(v); i += 3 {
		out = append(out, mgl32.Vec3{v[i], v[i+1], v[i+2]})
	}
	return out
}

func TestSegmentsSquareFacesTarget(t *testing.T) {
	p := params.Default()
	pts := points(Segments(nil, p))
	if len(pts) != 10 {
		t.Fatalf("got %d points, want 10", len(pts))
	}

	pos := p.LightPosition()
	dir := pos.Normalize()
	for i, c := range pts[:8] {
		off := c.Sub(pos)
		if d := off.Dot(dir); math.Abs(float64(d)) > 1e-4 {
			t.Errorf("corner %d is %f off the plane", i, d)
		}
		if l := off.Len(); math.Abs(float64(l)-math.Sqrt2*PlaneSize) > 1e-4 {
			t.Errorf("corner %d at distance %f from light", i, l)
		}
	}

	if pts[8] != pos || pts[9] != (mgl32.Vec3{}) {
		t.Errorf("target line %v -> %v", pts[8], pts[9])
	}
}

func TestSegmentsRotationTurnsSquare(t *testing.T) {
	p := params.Default()
	base := points(Segments(nil, p))
	rotated, err := p.With("directionalLightRotZ", 1)
	if err != nil {
		t.Fatal(err)
	}
	turned := points(Segments(nil, rotated))
	if base[0].ApproxEqualThreshold(turned[0], 1e-4) {
		t.Error("rotation did not move the square")
	}
	if turned[8] != base[8] {
		t.Error("rotation must not move the target line")
	}
}

func TestSegmentsLightOverhead(t *testing.T) {
	p := params.Default()
	p.DirectionalLightX, p.DirectionalLightZ = 0, 0
	for _, v := range Segments(nil, p) {
		if math.IsNaN(float64(v)) {
			t.Fatal("NaN in helper geometry for a light straight above the target")
		}
	}
}

func TestSegmentsLightAtOrigin(t *testing.T) {
	p := params.Default()
	p.DirectionalLightX, p.DirectionalLightY, p.DirectionalLightZ = 0, 0, 0
	for _, v := range Segments(nil, p) {
		if math.IsNaN(float64(v)) {
			t.Fatal("NaN in helper geometry for a light at the origin")
		}
	}
}
