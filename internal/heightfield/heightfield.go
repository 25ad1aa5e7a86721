package heightfield

import "math"

// Noise scales applied to the coherent-noise term.
const (
	NoiseSpatialScale  = 50.0
	NoiseTemporalScale = 0.1
	NoiseDepth         = 10.0
)

// NoiseYSource selects the second coordinate fed to the noise function.
type NoiseYSource string

const (
	// NoiseYPrevious samples noise at the object's height from the previous frame.
	NoiseYPrevious NoiseYSource = "previous"
	// NoiseYBase samples noise at y=0 so the result depends on position and time only.
	NoiseYBase NoiseYSource = "base"
)

// Valid reports whether s names a known source.
func (s NoiseYSource) Valid() bool {
	return s == NoiseYPrevious || s == NoiseYBase
}

// Params is the read-only view of the tunables the evaluator needs.
type Params struct {
	Amplitude float64
	Frequency float64
	Speed     float64
	Noise     bool
	NoiseY    NoiseYSource
}

// Wave returns the noise-free displacement at grid position (x, z) and time t.
func Wave(x, z, t float64, p Params) float64 {
	return math.Sin(t*p.Speed+x*p.Frequency) * math.Cos(t*p.Speed+z*p.Frequency) * p.Amplitude
}

// Height computes the vertical displacement for an object at (x, z) at time t.
// prevY is the object's height from the previous frame; it only matters when
// noise is blended in and p.NoiseY is NoiseYPrevious.
func Height(x, z, t, prevY float64, p Params, n Noise) float64 {
	h := Wave(x, z, t, p)
	if !p.Noise || n == nil {
		return h
	}

	y := prevY
	if p.NoiseY == NoiseYBase {
		y = 0
	}
	h -= math.Abs(n.Sample3D(x/NoiseSpatialScale, y/NoiseSpatialScale, t*NoiseTemporalScale) * NoiseDepth)
	return h
}
