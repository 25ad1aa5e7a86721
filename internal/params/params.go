package params

import (
	"fmt"
	"math"

	"wave-city/internal/heightfield"

	"github.com/go-gl/mathgl/mgl32"
)

// Params holds every live-tunable value of the scene. It is passed by value;
// edits go through With and produce a new Params.
type Params struct {
	ObjectsX int `yaml:"objectsX"`
	ObjectsZ int `yaml:"objectsZ"`

	Elevation     float64                  `yaml:"elevation"`
	WaveFrequency float64                  `yaml:"waveFrequency"`
	WaveSpeed     float64                  `yaml:"waveSpeed"`
	PerlinNoise   bool                     `yaml:"perlinNoise"`
	NoiseYSource  heightfield.NoiseYSource `yaml:"noiseYSource"`

	AmbientLightColor     Color   `yaml:"ambientLightColor"`
	AmbientLightIntensity float64 `yaml:"ambientLightIntensity"`

	DirectionalLightColor     Color   `yaml:"directionalLightColor"`
	DirectionalLightIntensity float64 `yaml:"directionalLightIntensity"`
	DirectionalLightX         float64 `yaml:"directionalLightX"`
	DirectionalLightY         float64 `yaml:"directionalLightY"`
	DirectionalLightZ         float64 `yaml:"directionalLightZ"`
	DirectionalLightRotX      float64 `yaml:"directionalLightRotX"`
	DirectionalLightRotY      float64 `yaml:"directionalLightRotY"`
	DirectionalLightRotZ      float64 `yaml:"directionalLightRotZ"`
	DirectionalLightHelper    bool    `yaml:"directionalLightHelper"`
}

// Default returns the startup parameter set.
func Default() Params {
	return Params{
		ObjectsX: 50,
		ObjectsZ: 50,

		Elevation:     10,
		WaveFrequency: 3,
		WaveSpeed:     0.3,
		PerlinNoise:   true,
		NoiseYSource:  heightfield.NoiseYPrevious,

		AmbientLightColor:     0xffffff,
		AmbientLightIntensity: 2,

		DirectionalLightColor:     0xffffff,
		DirectionalLightIntensity: 4,
		DirectionalLightX:         5,
		DirectionalLightY:         5,
		DirectionalLightZ:         5,
	}
}

// Wave projects the parameters the height evaluator reads.
func (p Params) Wave() heightfield.Params {
	return heightfield.Params{
		Amplitude: p.Elevation,
		Frequency: p.WaveFrequency,
		Speed:     p.WaveSpeed,
		Noise:     p.PerlinNoise,
		NoiseY:    p.NoiseYSource,
	}
}

// LightPosition returns the directional light position.
func (p Params) LightPosition() mgl32.Vec3 {
	return mgl32.Vec3{float32(p.DirectionalLightX), float32(p.DirectionalLightY), float32(p.DirectionalLightZ)}
}

// LightRotation returns the directional light euler rotation in radians.
func (p Params) LightRotation() mgl32.Vec3 {
	return mgl32.Vec3{float32(p.DirectionalLightRotX), float32(p.DirectionalLightRotY), float32(p.DirectionalLightRotZ)}
}

// ObjectCount is the number of objects a populated grid holds.
func (p Params) ObjectCount() int {
	return p.ObjectsX * p.ObjectsZ
}

// NeedsRepopulate reports whether moving from old to next changes the grid extent.
func NeedsRepopulate(old, next Params) bool {
	return old.ObjectsX != next.ObjectsX || old.ObjectsZ != next.ObjectsZ
}

// Get returns the named field as a float64 (bools are 0/1, colors their packed value).
func (p Params) Get(name string) (float64, error) {
	f, ok := lookup(name)
	if !ok {
		return 0, fmt.Errorf("unknown parameter %q", name)
	}
	return f.get(p), nil
}

// With returns a copy of p with the named field set to v, clamped to the
// field's range and snapped to its step.
func (p Params) With(name string, v float64) (Params, error) {
	f, ok := lookup(name)
	if !ok {
		return p, fmt.Errorf("unknown parameter %q", name)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return p, fmt.Errorf("parameter %q: non-finite value %v", name, v)
	}
	f.set(&p, f.Field.Constrain(v))
	return p, nil
}

// Clamped returns p with every field forced into its range.
func (p Params) Clamped() Params {
	for _, f := range fields {
		f.set(&p, f.Field.Constrain(f.get(p)))
	}
	if !p.NoiseYSource.Valid() {
		p.NoiseYSource = heightfield.NoiseYPrevious
	}
	return p
}

// Validate reports the first field outside its range.
func (p Params) Validate() error {
	for _, f := range fields {
		v := f.get(p)
		if v < f.Min || v > f.Max {
			return fmt.Errorf("parameter %q = %v out of range [%v, %v]", f.Name, v, f.Min, f.Max)
		}
	}
	if !p.NoiseYSource.Valid() {
		return fmt.Errorf("parameter %q: unknown source %q", "noiseYSource", p.NoiseYSource)
	}
	return nil
}
