package renderer

import (
	"wave-city/internal/camera"
	"wave-city/internal/params"
	"wave-city/internal/profiling"
	"wave-city/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ClearColor is the background behind the grid.
var ClearColor = [3]float32{0.05, 0.05, 0.07}

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *camera.Camera

	fbWidth  int32
	fbHeight int32
}

// NewRenderer creates a new renderer with the given renderables
func NewRenderer(cam *camera.Camera, width, height int, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)

	r := &Renderer{
		renderables: rs,
		camera:      cam,
		fbWidth:     int32(width),
		fbHeight:    int32(height),
	}

	for i, rb := range rs {
		if err := rb.Init(); err != nil {
			// release what was already initialised
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
		rb.SetViewport(width, height)
	}

	return r, nil
}

// Render clears the default framebuffer and draws every renderable in order.
func (r *Renderer) Render(s *scene.Scene, p params.Params, dt float64) {
	defer profiling.Track("renderer.Render")()

	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	ctx := RenderContext{
		Camera:       r.camera,
		Scene:        s,
		Params:       p,
		DT:           dt,
		View:         r.camera.GetViewMatrix(),
		Proj:         r.camera.GetProjectionMatrix(),
		FramebufferW: r.fbWidth,
		FramebufferH: r.fbHeight,
	}

	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *camera.Camera {
	return r.camera
}

// UpdateViewport propagates a window resize to the camera and every renderable.
// Window and framebuffer sizes may differ on high-DPI displays.
func (r *Renderer) UpdateViewport(width, height int) {
	r.camera.SetViewport(width, height)
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}

// SetFramebufferSize records the drawable size used to restore the viewport
// after off-screen passes.
func (r *Renderer) SetFramebufferSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.fbWidth, r.fbHeight = int32(width), int32(height)
}
