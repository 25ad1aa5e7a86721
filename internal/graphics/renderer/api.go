package renderer

import (
	"wave-city/internal/camera"
	"wave-city/internal/params"
	"wave-city/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera *camera.Camera
	Scene  *scene.Scene
	Params params.Params
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4

	// Default framebuffer size, restored after off-screen passes.
	FramebufferW int32
	FramebufferH int32
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
