package asset

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads a .gltf or .glb file and flattens the default scene's node
// hierarchy into a single mesh.
func LoadGLTF(path string) (*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open model: %w", err)
	}
	return flattenDocument(doc)
}

func flattenDocument(doc *gltf.Document) (*MeshData, error) {
	if len(doc.Scenes) == 0 {
		return nil, errors.New("model has no scenes")
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("model default scene %d out of range", sceneIdx)
	}

	out := &MeshData{}
	for _, n := range doc.Scenes[sceneIdx].Nodes {
		if err := walkNode(doc, n, mgl32.Ident4(), out, 0); err != nil {
			return nil, err
		}
	}
	if len(out.Indices) == 0 {
		return nil, errors.New("model contains no triangles")
	}
	return out, nil
}

// maxNodeDepth guards against cyclic node graphs in malformed files.
const maxNodeDepth = 64

func walkNode(doc *gltf.Document, idx int, parent mgl32.Mat4, out *MeshData, depth int) error {
	if depth > maxNodeDepth {
		return errors.New("model node hierarchy too deep")
	}
	if idx < 0 || idx >= len(doc.Nodes) {
		return fmt.Errorf("node %d out of range", idx)
	}
	node := doc.Nodes[idx]
	world := parent.Mul4(nodeTransform(node))

	if node.Mesh != nil {
		if *node.Mesh < 0 || *node.Mesh >= len(doc.Meshes) {
			return fmt.Errorf("node %d: mesh %d out of range", idx, *node.Mesh)
		}
		for i, prim := range doc.Meshes[*node.Mesh].Primitives {
			part, err := readPrimitive(doc, prim)
			if err != nil {
				return fmt.Errorf("mesh %d primitive %d: %w", *node.Mesh, i, err)
			}
			if part != nil {
				out.append(part, world)
			}
		}
	}
	for _, child := range node.Children {
		if err := walkNode(doc, child, world, out, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*MeshData, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	part := &MeshData{Positions: make([]mgl32.Vec3, len(positions))}
	for i, p := range positions {
		part.Positions[i] = mgl32.Vec3(p)
	}

	if prim.Indices != nil {
		part.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		part.Indices = make([]uint32, len(positions))
		for i := range part.Indices {
			part.Indices[i] = uint32(i)
		}
	}

	if nrmIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[nrmIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		part.Normals = make([]mgl32.Vec3, len(normals))
		for i, n := range normals {
			part.Normals[i] = mgl32.Vec3(n)
		}
	}
	if len(part.Normals) != len(part.Positions) {
		part.ComputeNormals()
	}
	return part, nil
}

// nodeTransform returns the node's local matrix, preferring an explicit
// matrix over TRS when one is set.
func nodeTransform(n *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	explicit := false
	for i, v := range n.Matrix {
		m[i] = float32(v)
		if v != 0 {
			explicit = true
		}
	}
	if explicit && m != mgl32.Ident4() {
		return m
	}

	t := mgl32.Translate3D(float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2]))

	r := mgl32.Ident4()
	q := n.Rotation
	if q != [4]float64{} {
		r = mgl32.Quat{W: float32(q[3]), V: mgl32.Vec3{float32(q[0]), float32(q[1]), float32(q[2])}}.Normalize().Mat4()
	}

	sx, sy, sz := n.Scale[0], n.Scale[1], n.Scale[2]
	if sx == 0 && sy == 0 && sz == 0 {
		sx, sy, sz = 1, 1, 1
	}
	s := mgl32.Scale3D(float32(sx), float32(sy), float32(sz))

	return t.Mul4(r).Mul4(s)
}
