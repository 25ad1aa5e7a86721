package buildings

import (
	"wave-city/internal/asset"
	"wave-city/internal/camera"
	"wave-city/internal/graphics"
	renderer "wave-city/internal/graphics/renderer"
	"wave-city/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShadowMapSize = 1024
	shadowUnit    = 1
)

// DefaultBaseColor is the surface albedo used for every building.
var DefaultBaseColor = mgl32.Vec3{0.8, 0.8, 0.8}

// Buildings draws every scene object as an instance of one mesh, first into
// the light's depth map and then lit into the default framebuffer.
type Buildings struct {
	shader      *graphics.Shader
	depthShader *graphics.Shader
	shadowMap   *graphics.ShadowMap
	mesh        *graphics.InstancedMesh
	shadowCam   camera.ShadowCamera

	BaseColor      mgl32.Vec3
	ShadowsEnabled bool

	pending   *asset.MeshData
	instances []mgl32.Mat4
}

// NewBuildings creates the renderable. The mesh arrives later through SetMesh.
func NewBuildings() *Buildings {
	return &Buildings{
		shadowCam:      camera.DefaultShadowCamera(),
		BaseColor:      DefaultBaseColor,
		ShadowsEnabled: true,
	}
}

// Init compiles shaders and allocates the shadow map
func (b *Buildings) Init() error {
	var err error
	if b.shader, err = graphics.NewShader("buildings"); err != nil {
		return err
	}
	if b.depthShader, err = graphics.NewShader("depth"); err != nil {
		return err
	}
	if b.shadowMap, err = graphics.NewShadowMap(ShadowMapSize); err != nil {
		return err
	}
	return nil
}

// SetMesh replaces the building model. Upload happens on the next Render so
// callers need not hold the GL context.
func (b *Buildings) SetMesh(data *asset.MeshData) {
	b.pending = data
}

// HasMesh reports whether a model is uploaded or waiting to be.
func (b *Buildings) HasMesh() bool {
	return b.mesh != nil || b.pending != nil
}

func (b *Buildings) SetViewport(width, height int) {}

// Render uploads this frame's instance matrices and runs both passes.
func (b *Buildings) Render(ctx renderer.RenderContext) {
	if b.pending != nil {
		if b.mesh != nil {
			b.mesh.Dispose()
		}
		b.mesh = graphics.NewInstancedMesh(b.pending)
		b.pending = nil
	}
	if b.mesh == nil || ctx.Scene == nil {
		return
	}

	func() {
		defer profiling.Track("renderer.buildings.instances")()
		b.instances = ctx.Scene.ModelMatrices(b.instances[:0])
		b.mesh.SetInstances(b.instances)
	}()
	if b.mesh.Instances() == 0 {
		return
	}

	lightPos := ctx.Params.LightPosition()
	lightSpace := b.shadowCam.LightSpace(lightPos, mgl32.Vec3{})

	if b.ShadowsEnabled {
		func() {
			defer profiling.Track("renderer.buildings.shadowPass")()
			b.renderDepth(lightSpace, ctx.FramebufferW, ctx.FramebufferH)
		}()
	}

	defer profiling.Track("renderer.buildings.mainPass")()
	b.renderLit(ctx, lightPos, lightSpace)
}

func (b *Buildings) renderDepth(lightSpace mgl32.Mat4, fbW, fbH int32) {
	b.shadowMap.Begin()
	// models may be open or flipped; draw both faces into the depth map
	gl.Disable(gl.CULL_FACE)
	b.depthShader.Use()
	b.depthShader.SetMatrix4("lightSpace", lightSpace)
	b.mesh.Draw()
	gl.Enable(gl.CULL_FACE)
	b.shadowMap.End(fbW, fbH)
}

func (b *Buildings) renderLit(ctx renderer.RenderContext, lightPos mgl32.Vec3, lightSpace mgl32.Mat4) {
	p := ctx.Params
	lightDir := lightPos
	if lightDir.Len() > 0 {
		lightDir = lightDir.Normalize()
	} else {
		lightDir = mgl32.Vec3{0, 1, 0}
	}

	b.shader.Use()
	b.shader.SetMatrix4("view", ctx.View)
	b.shader.SetMatrix4("projection", ctx.Proj)
	b.shader.SetMatrix4("lightSpace", lightSpace)
	b.shader.SetVector3("baseColor", b.BaseColor)
	b.shader.SetVector3("ambientColor", p.AmbientLightColor.Vec3())
	b.shader.SetFloat("ambientIntensity", float32(p.AmbientLightIntensity))
	b.shader.SetVector3("lightColor", p.DirectionalLightColor.Vec3())
	b.shader.SetFloat("lightIntensity", float32(p.DirectionalLightIntensity))
	b.shader.SetVector3("lightDir", lightDir)
	b.shader.SetBool("shadowsEnabled", b.ShadowsEnabled)
	b.shader.SetInt("shadowMap", shadowUnit)
	b.shadowMap.Bind(shadowUnit)

	// imported models may carry single-sided sheets; the shader flips back-face normals
	gl.Disable(gl.CULL_FACE)
	b.mesh.Draw()
	gl.Enable(gl.CULL_FACE)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Dispose cleans up OpenGL resources
func (b *Buildings) Dispose() {
	if b.mesh != nil {
		b.mesh.Dispose()
		b.mesh = nil
	}
	if b.shadowMap != nil {
		b.shadowMap.Dispose()
	}
	if b.depthShader != nil {
		b.depthShader.Delete()
	}
	if b.shader != nil {
		b.shader.Delete()
	}
}
