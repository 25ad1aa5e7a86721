package ui

import (
	"wave-city/internal/graphics"
	renderer "wave-city/internal/graphics/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// FontPixels is the rasterisation size of the UI font atlas.
const FontPixels = 32

// UI implements UI rendering for rectangles and text in window pixels
type UI struct {
	shader *graphics.Shader
	font   *graphics.FontRenderer
	vao    uint32
	vbo    uint32

	width  float32
	height float32
}

// NewUI creates a new UI renderable
func NewUI() *UI {
	return &UI{width: 1, height: 1}
}

// Init compiles the rectangle shader and bakes the font atlas
func (u *UI) Init() error {
	var err error
	u.shader, err = graphics.NewShader("ui")
	if err != nil {
		return err
	}

	atlas, err := graphics.DefaultFontAtlas(FontPixels)
	if err != nil {
		return err
	}
	u.font, err = graphics.NewFontRenderer(atlas)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &u.vao)
	gl.GenBuffers(1, &u.vbo)
	gl.BindVertexArray(u.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, u.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*2*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return nil
}

// Render is a no-op; overlays draw through the panel and profiling overlay
// after the scene.
func (u *UI) Render(ctx renderer.RenderContext) {}

// SetViewport sets the window size in screen coordinates (the space cursor
// positions are reported in).
func (u *UI) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	u.width, u.height = float32(width), float32(height)
	if u.font != nil {
		u.font.SetViewport(u.width, u.height)
	}
}

// Size returns the current viewport in window pixels.
func (u *UI) Size() (float32, float32) {
	return u.width, u.height
}

// Dispose cleans up OpenGL resources
func (u *UI) Dispose() {
	if u.vao != 0 {
		gl.DeleteVertexArrays(1, &u.vao)
	}
	if u.vbo != 0 {
		gl.DeleteBuffers(1, &u.vbo)
	}
	if u.font != nil {
		u.font.Dispose()
	}
	if u.shader != nil {
		u.shader.Delete()
	}
}

// DrawText draws text with its baseline at (x, y).
func (u *UI) DrawText(text string, x, y, scale float32, color mgl32.Vec3) {
	u.font.Render(text, x, y, scale, color)
}

// DrawLines draws several text lines lineStep pixels apart.
func (u *UI) DrawLines(lines []string, x, y, lineStep, scale float32, color mgl32.Vec3) {
	u.font.RenderLines(lines, x, y, lineStep, scale, color)
}

// MeasureText returns the size text would occupy at scale.
func (u *UI) MeasureText(text string, scale float32) (float32, float32) {
	return u.font.Measure(text, scale)
}

// DrawFilledRect draws a screen-space rectangle (pixels, top-left origin) with RGBA color.
func (u *UI) DrawFilledRect(x, y, w, h float32, color mgl32.Vec3, alpha float32) {
	verts := RectNDC(x, y, w, h, u.width, u.height)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	u.shader.Use()
	u.shader.SetVector4("uColor", color.Vec4(alpha))

	gl.BindVertexArray(u.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, u.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(&verts[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

// RectNDC converts a pixel rectangle into two NDC triangles.
func RectNDC(x, y, w, h, viewW, viewH float32) [12]float32 {
	x0 := (x/viewW)*2 - 1
	y0 := 1 - (y/viewH)*2
	x1 := ((x+w)/viewW)*2 - 1
	y1 := 1 - ((y+h)/viewH)*2
	return [12]float32{
		x0, y0,
		x1, y0,
		x1, y1,
		x0, y0,
		x1, y1,
		x0, y1,
	}
}
