package game

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"wave-city/internal/asset"
	"wave-city/internal/heightfield"
	"wave-city/internal/params"
	"wave-city/internal/scene"
)

type meshRecorder struct {
	got []*asset.MeshData
}

func (m *meshRecorder) SetMesh(data *asset.MeshData) {
	m.got = append(m.got, data)
}

func newTestSession(sink MeshSink) *Session {
	p := params.Default()
	p.ObjectsX, p.ObjectsZ = 4, 3
	return NewSession(scene.New(rand.New(rand.NewPCG(1, 2))), heightfield.NewPerlin(7), p, sink)
}

func TestSessionEmptyUntilModelLoads(t *testing.T) {
	s := newTestSession(nil)
	s.Update(1)
	if s.Scene.Len() != 0 || s.HasModel() {
		t.Fatal("scene populated before the model arrived")
	}

	// grid edits before the model loads do not populate
	next := s.Params
	next.ObjectsX = 10
	s.SetParams(next)
	if s.Scene.Len() != 0 {
		t.Error("SetParams populated without a model")
	}
}

func TestSessionModelLoadedPopulates(t *testing.T) {
	rec := &meshRecorder{}
	s := newTestSession(rec)
	box := asset.Box(1, 1, 1)
	s.ModelLoaded(asset.Result{Path: "box", Mesh: box})

	if !s.HasModel() || s.Scene.Len() != 12 {
		t.Fatalf("model=%v objects=%d, want true/12", s.HasModel(), s.Scene.Len())
	}
	if len(rec.got) != 1 || rec.got[0] != box {
		t.Error("mesh not handed to the sink")
	}
}

func TestSessionFailedLoadLeavesSceneEmpty(t *testing.T) {
	rec := &meshRecorder{}
	s := newTestSession(rec)
	s.ModelLoaded(asset.Result{Path: "missing.glb", Err: errors.New("no such file")})
	s.ModelLoaded(asset.Result{Path: "empty.glb"})
	if s.HasModel() || s.Scene.Len() != 0 || len(rec.got) != 0 {
		t.Error("failed load changed the scene")
	}
}

func TestSessionRepopulatesOnlyOnExtentChange(t *testing.T) {
	s := newTestSession(nil)
	s.ModelLoaded(asset.Result{Mesh: asset.Box(1, 1, 1)})
	gen := s.Scene.Generation()

	next := s.Params
	next.Elevation = 3
	s.SetParams(next)
	if s.Scene.Generation() != gen {
		t.Error("non-grid edit repopulated the scene")
	}

	next.ObjectsZ = 5
	s.SetParams(next)
	if s.Scene.Generation() == gen || s.Scene.Len() != 20 {
		t.Errorf("grid edit gave %d objects, want 20", s.Scene.Len())
	}
}

func TestSessionUpdateUsesParams(t *testing.T) {
	s := newTestSession(nil)
	s.Params.PerlinNoise = false
	s.ModelLoaded(asset.Result{Mesh: asset.Box(1, 1, 1)})
	s.Update(2)
	w := s.Params.Wave()
	for _, o := range s.Scene.Objects() {
		if want := heightfield.Wave(o.X, o.Z, 2, w); o.Y != want {
			t.Fatalf("object at (%v,%v) y=%v, want %v", o.X, o.Z, o.Y, want)
		}
	}
}

func TestSessionPollModel(t *testing.T) {
	s := newTestSession(nil)
	if s.PollModel() {
		t.Fatal("poll with nothing pending reported a result")
	}
	s.LoadModel("")
	deadline := time.Now().Add(5 * time.Second)
	for !s.PollModel() {
		if time.Now().After(deadline) {
			t.Fatal("builtin model never arrived")
		}
		time.Sleep(time.Millisecond)
	}
	if !s.HasModel() || s.Scene.Len() != 12 {
		t.Error("builtin model did not populate the grid")
	}
	if s.PollModel() {
		t.Error("second poll reported another result")
	}
}
