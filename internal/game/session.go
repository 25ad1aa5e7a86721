package game

import (
	"errors"

	"wave-city/internal/asset"
	"wave-city/internal/heightfield"
	"wave-city/internal/params"
	"wave-city/internal/profiling"
	"wave-city/internal/scene"

	"github.com/rs/zerolog/log"
)

// MeshSink receives the building model once it has loaded.
type MeshSink interface {
	SetMesh(data *asset.MeshData)
}

// Session is the animated grid: the scene, its noise source, the current
// parameters and the model it is populated with. It holds no GL state.
type Session struct {
	Scene  *scene.Scene
	Noise  heightfield.Noise
	Params params.Params

	sink        MeshSink
	modelLoaded bool
	pending     <-chan asset.Result
}

// NewSession creates an empty scene. Objects appear once a model is delivered.
func NewSession(s *scene.Scene, n heightfield.Noise, p params.Params, sink MeshSink) *Session {
	return &Session{Scene: s, Noise: n, Params: p, sink: sink}
}

// LoadModel starts loading path in the background; PollModel picks up the result.
func (s *Session) LoadModel(path string) {
	s.pending = asset.LoadAsync(path)
}

// PollModel consumes a finished load without blocking. It reports whether a
// result arrived this call.
func (s *Session) PollModel() bool {
	if s.pending == nil {
		return false
	}
	select {
	case res, ok := <-s.pending:
		s.pending = nil
		if !ok {
			return false
		}
		s.ModelLoaded(res)
		return true
	default:
		return false
	}
}

// ModelLoaded installs a loaded model and populates the grid. A failed load
// is logged and leaves the scene empty.
func (s *Session) ModelLoaded(res asset.Result) {
	if res.Err == nil && res.Mesh == nil {
		res.Err = errors.New("loader returned no mesh")
	}
	if res.Err != nil {
		log.Error().Err(res.Err).Str("path", res.Path).Msg("building model failed to load")
		return
	}
	if s.sink != nil {
		s.sink.SetMesh(res.Mesh)
	}
	s.modelLoaded = true
	s.Scene.Populate(s.Params.ObjectsX, s.Params.ObjectsZ)
	log.Info().
		Str("path", res.Path).
		Int("vertices", res.Mesh.VertexCount()).
		Int("triangles", res.Mesh.TriangleCount()).
		Int("objects", s.Scene.Len()).
		Msg("building model loaded")
}

// HasModel reports whether a model has been installed.
func (s *Session) HasModel() bool {
	return s.modelLoaded
}

// SetParams replaces the parameters, repopulating when the grid extent changed.
func (s *Session) SetParams(next params.Params) {
	old := s.Params
	s.Params = next
	if params.NeedsRepopulate(old, next) && s.modelLoaded {
		s.Scene.Populate(next.ObjectsX, next.ObjectsZ)
		log.Debug().Int("x", next.ObjectsX).Int("z", next.ObjectsZ).Msg("grid repopulated")
	}
}

// Update displaces every object for time t in seconds.
func (s *Session) Update(t float64) {
	defer profiling.Track("scene.Update")()
	s.Scene.Update(t, s.Params.Wave(), s.Noise)
}
