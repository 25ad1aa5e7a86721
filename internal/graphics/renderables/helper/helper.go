package helper

import (
	"wave-city/internal/graphics"
	renderer "wave-city/internal/graphics/renderer"
	"wave-city/internal/params"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// PlaneSize is the half-extent of the square drawn at the light.
const PlaneSize = 1

// LightHelper outlines the directional light: a square facing its target
// and a line from the light to the target.
type LightHelper struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
	verts  []float32
}

func NewLightHelper() *LightHelper {
	return &LightHelper{}
}

func (h *LightHelper) Init() error {
	var err error
	h.shader, err = graphics.NewShader("lines")
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &h.vao)
	gl.BindVertexArray(h.vao)
	gl.GenBuffers(1, &h.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 10*3*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return nil
}

func (h *LightHelper) SetViewport(width, height int) {}

func (h *LightHelper) Render(ctx renderer.RenderContext) {
	if !ctx.Params.DirectionalLightHelper {
		return
	}
	h.verts = Segments(h.verts[:0], ctx.Params)

	mvp := ctx.Proj.Mul4(ctx.View)
	h.shader.Use()
	h.shader.SetMatrix4("mvp", mvp)
	h.shader.SetVector3("color", ctx.Params.DirectionalLightColor.Vec3())

	gl.BindVertexArray(h.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(h.verts)*4, gl.Ptr(h.verts))
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, int32(len(h.verts)/3))
	gl.BindVertexArray(0)
}

// Segments appends the helper's line list (pairs of xyz points) to dst. The
// square lies in the plane facing the origin, turned by the light's rotation.
func Segments(dst []float32, p params.Params) []float32 {
	pos := p.LightPosition()
	rot := p.LightRotation()

	orient := mgl32.Ident4()
	if pos.Len() > 0 {
		// LookAtV builds a view matrix; its inverse places local -Z toward the target
		orient = mgl32.LookAtV(mgl32.Vec3{}, pos.Mul(-1), upFor(pos)).Inv()
	}
	model := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(orient).
		Mul4(mgl32.AnglesToQuat(rot.X(), rot.Y(), rot.Z(), mgl32.XYZ).Mat4())

	s := float32(PlaneSize)
	corners := [4]mgl32.Vec3{{-s, s, 0}, {s, s, 0}, {s, -s, 0}, {-s, -s, 0}}
	for i := range corners {
		a := mgl32.TransformCoordinate(corners[i], model)
		b := mgl32.TransformCoordinate(corners[(i+1)%4], model)
		dst = append(dst, a.X(), a.Y(), a.Z(), b.X(), b.Y(), b.Z())
	}
	// target line
	dst = append(dst, pos.X(), pos.Y(), pos.Z(), 0, 0, 0)
	return dst
}

func upFor(dir mgl32.Vec3) mgl32.Vec3 {
	up := mgl32.Vec3{0, 1, 0}
	if dir.Normalize().Cross(up).Len() < 1e-4 {
		return mgl32.Vec3{0, 0, 1}
	}
	return up
}

func (h *LightHelper) Dispose() {
	if h.vao != 0 {
		gl.DeleteVertexArrays(1, &h.vao)
	}
	if h.vbo != 0 {
		gl.DeleteBuffers(1, &h.vbo)
	}
	if h.shader != nil {
		h.shader.Delete()
	}
}
