package scene

import (
	"math"
	"math/rand/v2"

	"wave-city/internal/heightfield"

	"github.com/go-gl/mathgl/mgl32"
)

// Object is one placed building. X and Z are fixed at placement; Y is
// rewritten every frame by Update.
type Object struct {
	ID   int
	X    float64
	Y    float64
	Z    float64
	RotY float64
	RotZ float64
}

// ModelMatrix returns translate * rotY * rotZ, matching the placement order.
func (o Object) ModelMatrix() mgl32.Mat4 {
	m := mgl32.Translate3D(float32(o.X), float32(o.Y), float32(o.Z))
	if o.RotY != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(float32(o.RotY)))
	}
	if o.RotZ != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(float32(o.RotZ)))
	}
	return m
}

// Scene holds the populated grid. It is touched only from the render loop.
type Scene struct {
	objects    []Object
	rng        *rand.Rand
	generation uint64
	nextID     int
}

// New creates an empty scene. rng drives the per-object random rotations;
// nil uses a randomly seeded source.
func New(rng *rand.Rand) *Scene {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Scene{rng: rng}
}

// Populate removes every object and places exactly nx*nz new ones centered
// on the origin, one unit apart.
func (s *Scene) Populate(nx, nz int) {
	s.objects = s.objects[:0]
	s.generation++
	if nx <= 0 || nz <= 0 {
		return
	}
	if cap(s.objects) < nx*nz {
		s.objects = make([]Object, 0, nx*nz)
	}

	halfX := float64(nx) / 2
	halfZ := float64(nz) / 2
	for i := -halfZ; i < halfZ; i++ {
		for j := -halfX; j < halfX; j++ {
			flipZ := s.rng.Float64()
			flipY := math.Round(s.rng.Float64()*2/0.5) * 0.5
			o := Object{
				ID:   s.nextID,
				X:    j,
				Z:    i,
				RotY: math.Pi * flipY,
			}
			if flipZ >= 0.5 {
				o.RotZ = math.Pi
			}
			s.nextID++
			s.objects = append(s.objects, o)
		}
	}
}

// Clear removes every object.
func (s *Scene) Clear() {
	s.objects = s.objects[:0]
	s.generation++
}

// Update writes the height for time t into every object's Y. Each object's
// current Y is fed back as the previous-frame height.
func (s *Scene) Update(t float64, p heightfield.Params, n heightfield.Noise) {
	for i := range s.objects {
		o := &s.objects[i]
		o.Y = heightfield.Height(o.X, o.Z, t, o.Y, p, n)
	}
}

// Objects returns the placed objects. The slice is owned by the scene.
func (s *Scene) Objects() []Object {
	return s.objects
}

// Len returns the number of placed objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Generation changes every time the object set is replaced.
func (s *Scene) Generation() uint64 {
	return s.generation
}

// ModelMatrices appends one model matrix per object to dst[:0].
func (s *Scene) ModelMatrices(dst []mgl32.Mat4) []mgl32.Mat4 {
	dst = dst[:0]
	for _, o := range s.objects {
		dst = append(dst, o.ModelMatrix())
	}
	return dst
}
