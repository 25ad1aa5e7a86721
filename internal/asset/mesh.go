package asset

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MeshData is an indexed triangle list with per-vertex normals, ready to be
// uploaded as one interleaved buffer.
type MeshData struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *MeshData) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Interleaved returns position+normal pairs as a flat float slice.
func (m *MeshData) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*6)
	for i, p := range m.Positions {
		n := mgl32.Vec3{0, 1, 0}
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		out = append(out, p.X(), p.Y(), p.Z(), n.X(), n.Y(), n.Z())
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *MeshData) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi
}

// ComputeNormals replaces Normals with area-weighted vertex normals.
func (m *MeshData) ComputeNormals() {
	normals := make([]mgl32.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(a) >= len(m.Positions) || int(b) >= len(m.Positions) || int(c) >= len(m.Positions) {
			continue
		}
		pa, pb, pc := m.Positions[a], m.Positions[b], m.Positions[c]
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		} else {
			normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	m.Normals = normals
}

// append adds other's geometry transformed by model.
func (m *MeshData) append(other *MeshData, model mgl32.Mat4) {
	base := uint32(len(m.Positions))
	normalMat := model.Mat3().Inv().Transpose()
	for i, p := range other.Positions {
		m.Positions = append(m.Positions, model.Mul4x1(p.Vec4(1)).Vec3())
		n := mgl32.Vec3{0, 1, 0}
		if i < len(other.Normals) {
			n = normalMat.Mul3x1(other.Normals[i])
			if n.Len() > 0 {
				n = n.Normalize()
			}
		}
		m.Normals = append(m.Normals, n)
	}
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Box returns a closed box of the given size standing on y=0, centred in x and z.
func Box(w, h, d float32) *MeshData {
	x, z := w/2, d/2
	type face struct {
		n       mgl32.Vec3
		corners [4]mgl32.Vec3
	}
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-x, 0, z}, {x, 0, z}, {x, h, z}, {-x, h, z}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{x, 0, -z}, {-x, 0, -z}, {-x, h, -z}, {x, h, -z}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{x, 0, z}, {x, 0, -z}, {x, h, -z}, {x, h, z}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-x, 0, -z}, {-x, 0, z}, {-x, h, z}, {-x, h, -z}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-x, h, z}, {x, h, z}, {x, h, -z}, {-x, h, -z}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-x, 0, -z}, {x, 0, -z}, {x, 0, z}, {-x, 0, z}}},
	}

	m := &MeshData{}
	for _, f := range faces {
		base := uint32(len(m.Positions))
		for _, c := range f.corners {
			m.Positions = append(m.Positions, c)
			m.Normals = append(m.Normals, f.n)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
