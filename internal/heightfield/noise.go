package heightfield

import (
	"fmt"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Noise is a seeded coherent-noise source. Output is roughly in [-1, 1].
type Noise interface {
	Sample3D(x, y, z float64) float64
}

// Noise source names accepted by NewNoise.
const (
	KindPerlin  = "perlin"
	KindSimplex = "simplex"
)

// Single-octave Perlin: alpha and beta only matter past the first octave.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 1
)

type perlinNoise struct {
	p *perlin.Perlin
}

// NewPerlin returns classic gradient noise seeded with seed.
func NewPerlin(seed int64) Noise {
	return &perlinNoise{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

func (n *perlinNoise) Sample3D(x, y, z float64) float64 {
	return n.p.Noise3D(x, y, z)
}

type simplexNoise struct {
	s opensimplex.Noise
}

// NewSimplex returns OpenSimplex noise seeded with seed.
func NewSimplex(seed int64) Noise {
	return &simplexNoise{s: opensimplex.New(seed)}
}

func (n *simplexNoise) Sample3D(x, y, z float64) float64 {
	return n.s.Eval3(x, y, z)
}

// NewNoise builds the noise source registered under kind.
func NewNoise(kind string, seed int64) (Noise, error) {
	switch kind {
	case KindPerlin, "":
		return NewPerlin(seed), nil
	case KindSimplex:
		return NewSimplex(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q (want %q or %q)", kind, KindPerlin, KindSimplex)
	}
}

// RandomSeed returns a nondeterministic seed for process start.
func RandomSeed() int64 {
	return rand.Int64()
}
