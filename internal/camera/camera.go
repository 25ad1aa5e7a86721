package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is an orthographic camera. The frustum is expressed in view units
// and divided by Zoom when the projection is built.
type Camera struct {
	AspectRatio float32
	Left        float32
	Right       float32
	Top         float32
	Bottom      float32
	NearPlane   float32
	FarPlane    float32
	Zoom        float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
}

// NewCamera returns the isometric-style camera the scene starts with.
func NewCamera(width, height int) *Camera {
	c := &Camera{
		NearPlane: 0.1,
		FarPlane:  100,
		Zoom:      0.15,
		Position:  mgl32.Vec3{40, 40, 40},
		Up:        mgl32.Vec3{0, 1, 0},
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport recomputes the frustum bounds for a new window size.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
	c.Left = -1 * c.AspectRatio
	c.Right = 1 * c.AspectRatio
	c.Top = 1
	c.Bottom = -1
}

// Bounds returns the zoomed frustum edges.
func (c *Camera) Bounds() (left, right, bottom, top float32) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	dx := (c.Right - c.Left) / (2 * zoom)
	dy := (c.Top - c.Bottom) / (2 * zoom)
	cx := (c.Right + c.Left) / 2
	cy := (c.Top + c.Bottom) / 2
	return cx - dx, cx + dx, cy - dy, cy + dy
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	l, r, b, t := c.Bounds()
	return mgl32.Ortho(l, r, b, t, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Basis returns the camera's right, up and forward axes in world space.
func (c *Camera) Basis() (right, up, forward mgl32.Vec3) {
	forward = c.Target.Sub(c.Position)
	if forward.Len() == 0 {
		forward = mgl32.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()
	right = forward.Cross(c.Up)
	if right.Len() < 1e-6 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}
