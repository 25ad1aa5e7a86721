package camera

import "github.com/go-gl/mathgl/mgl32"

// ShadowCamera is the orthographic frustum a directional light renders its
// depth map through.
type ShadowCamera struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
}

// DefaultShadowCamera covers the centre of the grid.
func DefaultShadowCamera() ShadowCamera {
	return ShadowCamera{Left: -7, Right: 7, Bottom: -7, Top: 7, Near: 0.5, Far: 15}
}

// LightSpace returns projection * view for a light at pos aimed at target.
func (s ShadowCamera) LightSpace(pos, target mgl32.Vec3) mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	dir := target.Sub(pos)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, -1, 0}
		pos = target.Sub(dir)
	}
	if dir.Normalize().Cross(up).Len() < 1e-4 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(pos, target, up)
	proj := mgl32.Ortho(s.Left, s.Right, s.Bottom, s.Top, s.Near, s.Far)
	return proj.Mul4(view)
}
