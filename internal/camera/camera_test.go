package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSetViewportRecomputesBounds(t *testing.T) {
	c := NewCamera(900, 600)
	c.SetViewport(1600, 800)
	if c.AspectRatio != 2 || c.Left != -2 || c.Right != 2 || c.Top != 1 || c.Bottom != -1 {
		t.Errorf("unexpected frustum %+v", c)
	}

	c.SetViewport(0, 800)
	if c.AspectRatio != 2 {
		t.Error("zero width should be ignored")
	}
}

func TestBoundsDivideByZoom(t *testing.T) {
	c := NewCamera(100, 100)
	c.Zoom = 0.5
	l, r, b, top := c.Bounds()
	if l != -2 || r != 2 || b != -2 || top != 2 {
		t.Errorf("bounds = %f %f %f %f, want -2 2 -2 2", l, r, b, top)
	}
}

func TestProjectionMapsTargetToCentre(t *testing.T) {
	c := NewCamera(900, 600)
	clip := c.GetProjectionMatrix().Mul4(c.GetViewMatrix()).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(clip.X())) > 1e-4 || math.Abs(float64(clip.Y())) > 1e-4 {
		t.Errorf("target projected to %v, want screen centre", clip)
	}
	if clip.Z() < -1 || clip.Z() > 1 {
		t.Errorf("target depth %f outside clip range", clip.Z())
	}
}

func TestOrbitUpdateWithoutInputKeepsPose(t *testing.T) {
	c := NewCamera(900, 600)
	o := NewOrbitControls(c, mgl32.Vec3{1, 0, 1}, 900, 600)
	o.EnableDamping = true
	before := c.Position.Sub(o.Target).Len()
	o.Update()
	after := c.Position.Sub(o.Target).Len()
	if math.Abs(float64(before-after)) > 1e-3 {
		t.Errorf("radius changed from %f to %f", before, after)
	}
	if c.Target != o.Target {
		t.Error("camera target not synced to controls")
	}
}

func TestOrbitRotatePreservesRadius(t *testing.T) {
	c := NewCamera(900, 600)
	o := NewOrbitControls(c, mgl32.Vec3{}, 900, 600)
	radius := c.Position.Len()
	start := c.Position

	o.BeginDrag(DragRotate, 100, 100)
	o.Drag(250, 130)
	o.EndDrag()
	o.Update()

	if math.Abs(float64(c.Position.Len()-radius)) > 1e-3 {
		t.Errorf("radius %f, want %f", c.Position.Len(), radius)
	}
	if c.Position.ApproxEqualThreshold(start, 1e-3) {
		t.Error("rotate drag did not move the camera")
	}
}

func TestOrbitDampingSettles(t *testing.T) {
	c := NewCamera(900, 600)
	o := NewOrbitControls(c, mgl32.Vec3{}, 900, 600)
	o.EnableDamping = true
	o.BeginDrag(DragRotate, 0, 0)
	o.Drag(300, 0)
	o.EndDrag()

	o.Update()
	first := c.Position
	for i := 0; i < 400; i++ {
		o.Update()
	}
	settled := c.Position
	o.Update()
	if !c.Position.ApproxEqualThreshold(settled, 1e-4) {
		t.Error("camera still moving after damping should have settled")
	}
	if first.ApproxEqualThreshold(settled, 1e-3) {
		t.Error("damping applied the whole rotation in one frame")
	}
}

func TestOrbitPolarClamp(t *testing.T) {
	c := NewCamera(900, 600)
	o := NewOrbitControls(c, mgl32.Vec3{}, 900, 600)
	o.BeginDrag(DragRotate, 0, 0)
	o.Drag(0, 5000)
	o.Update()
	if math.IsNaN(float64(c.Position.X())) || math.IsNaN(float64(c.Position.Y())) {
		t.Fatal("camera position degenerated")
	}
	offset := c.Position.Sub(o.Target)
	phi := math.Acos(float64(offset.Y()) / float64(offset.Len()))
	if phi < 0 || phi > math.Pi {
		t.Errorf("polar angle %f out of range", phi)
	}
}

func TestOrbitPanMovesTarget(t *testing.T) {
	c := NewCamera(900, 600)
	o := NewOrbitControls(c, mgl32.Vec3{1, 0, 1}, 900, 600)
	o.BeginDrag(DragPan, 0, 0)
	o.Drag(90, 0)
	o.EndDrag()
	o.Update()
	if o.Target.ApproxEqualThreshold(mgl32.Vec3{1, 0, 1}, 1e-4) {
		t.Error("pan did not move target")
	}
	right, _, _ := c.Basis()
	moved := o.Target.Sub(mgl32.Vec3{1, 0, 1})
	if moved.Dot(right) >= 0 {
		t.Errorf("dragging right should move target left, moved %v", moved)
	}
}

func TestScrollZoomClamps(t *testing.T) {
	c := NewCamera(900, 600)
	o := NewOrbitControls(c, mgl32.Vec3{}, 900, 600)
	z := c.Zoom
	o.Scroll(1)
	if c.Zoom <= z {
		t.Errorf("scroll up should zoom in: %f -> %f", z, c.Zoom)
	}
	for i := 0; i < 1000; i++ {
		o.Scroll(-1)
	}
	if c.Zoom != o.MinZoom {
		t.Errorf("zoom = %f, want clamped to %f", c.Zoom, o.MinZoom)
	}
}

func TestLightSpaceContainsOrigin(t *testing.T) {
	m := DefaultShadowCamera().LightSpace(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{})
	p := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	for i := 0; i < 3; i++ {
		if p[i] < -1 || p[i] > 1 {
			t.Errorf("origin maps outside light clip space: %v", p)
		}
	}
}

func TestLightSpaceStraightDown(t *testing.T) {
	m := DefaultShadowCamera().LightSpace(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{})
	for _, v := range m {
		if math.IsNaN(float64(v)) {
			t.Fatal("light straight above target produced NaN matrix")
		}
	}
}
