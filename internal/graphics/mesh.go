package graphics

import (
	"wave-city/internal/asset"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Attribute locations shared by every instanced shader.
const (
	attrPosition = 0
	attrNormal   = 1
	attrModel    = 2 // occupies 2..5
)

const mat4Size = 16 * 4

// InstancedMesh is one uploaded mesh drawn many times with per-instance
// model matrices.
type InstancedMesh struct {
	vao         uint32
	vbo         uint32
	ebo         uint32
	instanceVBO uint32
	indexCount  int32
	instanceCap int
	instances   int32
}

// NewInstancedMesh uploads data to the GPU.
func NewInstancedMesh(data *asset.MeshData) *InstancedMesh {
	m := &InstancedMesh{indexCount: int32(len(data.Indices))}
	verts := data.Interleaved()

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	}
	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(attrPosition)
	gl.VertexAttribPointer(attrPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(attrNormal)
	gl.VertexAttribPointer(attrNormal, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(data.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)
	}

	gl.GenBuffers(1, &m.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.instanceVBO)
	for i := uint32(0); i < 4; i++ {
		loc := attrModel + i
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, 4, gl.FLOAT, false, mat4Size, gl.PtrOffset(int(i)*4*4))
		gl.VertexAttribDivisor(loc, 1)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

// SetInstances uploads one model matrix per instance, growing the buffer when needed.
func (m *InstancedMesh) SetInstances(models []mgl32.Mat4) {
	m.instances = int32(len(models))
	if len(models) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.instanceVBO)
	size := len(models) * mat4Size
	if len(models) > m.instanceCap {
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(&models[0][0]), gl.DYNAMIC_DRAW)
		m.instanceCap = len(models)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(&models[0][0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Instances returns the number of instances last uploaded.
func (m *InstancedMesh) Instances() int {
	return int(m.instances)
}

// Draw issues one instanced draw call with the currently bound program.
func (m *InstancedMesh) Draw() {
	if m.instances == 0 || m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsInstanced(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil, m.instances)
	gl.BindVertexArray(0)
}

// Dispose frees GPU buffers
func (m *InstancedMesh) Dispose() {
	if m.instanceVBO != 0 {
		gl.DeleteBuffers(1, &m.instanceVBO)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	*m = InstancedMesh{}
}
