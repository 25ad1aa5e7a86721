package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DragMode is what a pointer drag does to the camera.
type DragMode int

const (
	DragNone DragMode = iota
	DragRotate
	DragPan
)

const polarEpsilon = 1e-6

// OrbitControls orbits a Camera around a target point. Pointer input only
// accumulates deltas; Update applies them once per frame.
type OrbitControls struct {
	camera *Camera
	Target mgl32.Vec3

	EnableDamping bool
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	PanSpeed      float32
	MinZoom       float32
	MaxZoom       float32
	MinPolarAngle float64
	MaxPolarAngle float64

	viewportW float32
	viewportH float32

	dTheta    float64
	dPhi      float64
	panOffset mgl32.Vec3

	mode         DragMode
	lastX, lastY float64
}

// NewOrbitControls attaches controls to c, orbiting target.
func NewOrbitControls(c *Camera, target mgl32.Vec3, width, height int) *OrbitControls {
	o := &OrbitControls{
		camera:        c,
		Target:        target,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MinZoom:       0.01,
		MaxZoom:       10,
		MinPolarAngle: 0,
		MaxPolarAngle: math.Pi,
	}
	o.SetViewport(width, height)
	c.Target = target
	return o
}

func (o *OrbitControls) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	o.viewportW = float32(width)
	o.viewportH = float32(height)
}

// Dragging reports the active drag mode.
func (o *OrbitControls) Dragging() DragMode {
	return o.mode
}

// BeginDrag starts a rotate or pan gesture at cursor position (x, y).
func (o *OrbitControls) BeginDrag(mode DragMode, x, y float64) {
	o.mode = mode
	o.lastX, o.lastY = x, y
}

// Drag feeds a new cursor position into the active gesture.
func (o *OrbitControls) Drag(x, y float64) {
	dx, dy := x-o.lastX, y-o.lastY
	o.lastX, o.lastY = x, y
	switch o.mode {
	case DragRotate:
		o.rotate(dx, dy)
	case DragPan:
		o.pan(dx, dy)
	}
}

// EndDrag finishes the active gesture.
func (o *OrbitControls) EndDrag() {
	o.mode = DragNone
}

// Scroll zooms in for positive offsets and out for negative ones.
func (o *OrbitControls) Scroll(yoff float64) {
	if yoff == 0 {
		return
	}
	scale := float32(math.Pow(0.95, float64(o.ZoomSpeed)))
	zoom := o.camera.Zoom
	if yoff > 0 {
		zoom /= scale
	} else {
		zoom *= scale
	}
	o.camera.Zoom = clampf(zoom, o.MinZoom, o.MaxZoom)
}

func (o *OrbitControls) rotate(dx, dy float64) {
	h := float64(o.viewportH)
	if h == 0 {
		return
	}
	o.dTheta -= 2 * math.Pi * dx / h * float64(o.RotateSpeed)
	o.dPhi -= 2 * math.Pi * dy / h * float64(o.RotateSpeed)
}

func (o *OrbitControls) pan(dx, dy float64) {
	if o.viewportW == 0 || o.viewportH == 0 {
		return
	}
	l, r, b, t := o.camera.Bounds()
	right, up, _ := o.camera.Basis()
	panX := float32(dx) * (r - l) / o.viewportW * o.PanSpeed
	panY := float32(dy) * (t - b) / o.viewportH * o.PanSpeed
	o.panOffset = o.panOffset.Add(right.Mul(-panX)).Add(up.Mul(panY))
}

// Update applies accumulated input to the camera. Call once per frame.
func (o *OrbitControls) Update() {
	c := o.camera
	offset := c.Position.Sub(o.Target)
	radius := float64(offset.Len())
	if radius == 0 {
		radius = polarEpsilon
	}
	theta := math.Atan2(float64(offset.X()), float64(offset.Z()))
	phi := math.Acos(clamp(float64(offset.Y())/radius, -1, 1))

	factor := 1.0
	if o.EnableDamping {
		factor = float64(o.DampingFactor)
	}
	theta += o.dTheta * factor
	phi += o.dPhi * factor
	phi = clamp(phi, math.Max(o.MinPolarAngle, polarEpsilon), math.Min(o.MaxPolarAngle, math.Pi-polarEpsilon))

	o.Target = o.Target.Add(o.panOffset.Mul(float32(factor)))

	sinPhi := math.Sin(phi)
	offset = mgl32.Vec3{
		float32(radius * sinPhi * math.Sin(theta)),
		float32(radius * math.Cos(phi)),
		float32(radius * sinPhi * math.Cos(theta)),
	}
	c.Position = o.Target.Add(offset)
	c.Target = o.Target

	if o.EnableDamping {
		keep := 1 - factor
		o.dTheta *= keep
		o.dPhi *= keep
		o.panOffset = o.panOffset.Mul(float32(keep))
	} else {
		o.dTheta, o.dPhi = 0, 0
		o.panOffset = mgl32.Vec3{}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
