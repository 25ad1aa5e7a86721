package asset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Builtin building footprint used when no model file is configured.
const (
	BoxWidth  = 0.8
	BoxHeight = 1.6
	BoxDepth  = 0.8
)

// Result is the outcome of an asynchronous model load.
type Result struct {
	Path string
	Mesh *MeshData
	Err  error
}

// Load returns the mesh at path, or the builtin box when path is empty.
func Load(path string) (*MeshData, error) {
	if path == "" {
		return Box(BoxWidth, BoxHeight, BoxDepth), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
	}
}

// LoadAsync loads path on a background goroutine. The returned channel
// receives exactly one Result and is then closed.
func LoadAsync(path string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		mesh, err := Load(path)
		ch <- Result{Path: path, Mesh: mesh, Err: err}
	}()
	return ch
}
