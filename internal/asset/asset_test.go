package asset

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBoxGeometry(t *testing.T) {
	m := Box(1, 2, 1)
	if m.VertexCount() != 24 || m.TriangleCount() != 12 {
		t.Fatalf("box has %d vertices / %d triangles, want 24 / 12", m.VertexCount(), m.TriangleCount())
	}
	lo, hi := m.Bounds()
	if lo != (mgl32.Vec3{-0.5, 0, -0.5}) || hi != (mgl32.Vec3{0.5, 2, 0.5}) {
		t.Errorf("bounds %v..%v", lo, hi)
	}

	// every triangle winds counter-clockwise when seen from outside
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Positions[m.Indices[i]], m.Positions[m.Indices[i+1]], m.Positions[m.Indices[i+2]]
		face := b.Sub(a).Cross(c.Sub(a)).Normalize()
		if !face.ApproxEqualThreshold(m.Normals[m.Indices[i]], 1e-5) {
			t.Errorf("triangle %d winds %v, normal is %v", i/3, face, m.Normals[m.Indices[i]])
		}
	}
}

func TestInterleavedLayout(t *testing.T) {
	m := Box(1, 1, 1)
	data := m.Interleaved()
	if len(data) != m.VertexCount()*6 {
		t.Fatalf("interleaved length %d, want %d", len(data), m.VertexCount()*6)
	}
	if data[3] != m.Normals[0].X() || data[4] != m.Normals[0].Y() || data[5] != m.Normals[0].Z() {
		t.Error("first normal not interleaved after first position")
	}
}

func TestComputeNormals(t *testing.T) {
	m := &MeshData{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	m.ComputeNormals()
	for i, n := range m.Normals {
		if !n.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-6) {
			t.Errorf("normal %d = %v, want +z", i, n)
		}
	}
}

func TestLoadEmptyPathGivesBuiltinBox(t *testing.T) {
	m, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	_, hi := m.Bounds()
	if hi.Y() != BoxHeight {
		t.Errorf("builtin box height %f, want %f", hi.Y(), float32(BoxHeight))
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "building.obj")); err == nil {
		t.Error("expected unsupported format error")
	}
	if _, err := Load(filepath.Join(dir, "missing.glb")); err == nil {
		t.Error("expected error for missing model")
	}
}

func TestLoadAsyncReportsFailure(t *testing.T) {
	ch := LoadAsync(filepath.Join(t.TempDir(), "missing.glb"))
	select {
	case res := <-ch:
		if res.Err == nil || res.Mesh != nil {
			t.Errorf("want failed result, got %+v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("LoadAsync never delivered")
	}
	if _, ok := <-ch; ok {
		t.Error("channel not closed after result")
	}
}

func writeTriangleGLTF(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	for _, v := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
	}
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [
    {"translation": [1, 2, 3], "children": [1]},
    {"mesh": 0}
  ],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
  "buffers": [{"byteLength": %d, "uri": %q}],
  "bufferViews": [{"buffer": 0, "byteLength": %d}],
  "accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3",
                 "min": [0, 0, 0], "max": [1, 1, 0]}]
}`, buf.Len(), uri, buf.Len())

	path := filepath.Join(t.TempDir(), "triangle.gltf")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGLTFAppliesNodeHierarchy(t *testing.T) {
	m, err := Load(writeTriangleGLTF(t))
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 3 || m.TriangleCount() != 1 {
		t.Fatalf("got %d vertices / %d triangles, want 3 / 1", m.VertexCount(), m.TriangleCount())
	}
	want := []mgl32.Vec3{{1, 2, 3}, {2, 2, 3}, {1, 3, 3}}
	for i, p := range m.Positions {
		if !p.ApproxEqualThreshold(want[i], 1e-6) {
			t.Errorf("vertex %d at %v, want %v", i, p, want[i])
		}
	}
	if !m.Normals[0].ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-6) {
		t.Errorf("computed normal %v, want +z", m.Normals[0])
	}
}
