package params

import "math"

// Kind tells the panel which control edits a field.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindColor
)

// Folder groups for the panel; the empty folder is the panel root.
const (
	FolderRoot    = ""
	FolderObjects = "Objects"
	FolderLights  = "Lights"
)

// Field describes one tunable value.
type Field struct {
	Name   string
	Folder string
	Kind   Kind
	Min    float64
	Max    float64
	Step   float64
}

// Constrain clamps v to the field's range and snaps it to the step grid.
func (f Field) Constrain(v float64) float64 {
	switch f.Kind {
	case KindBool:
		if v != 0 {
			return 1
		}
		return 0
	case KindColor:
		return float64(uint32(clamp(math.Round(v), 0, 0xffffff)))
	}

	v = clamp(v, f.Min, f.Max)
	if f.Step > 0 {
		v = math.Round(v/f.Step) * f.Step
		// drop float residue such as 0.30000000000000004
		v = math.Round(v*1e6) / 1e6
		v = clamp(v, f.Min, f.Max)
	}
	if f.Kind == KindInt {
		v = math.Round(v)
	}
	return v
}

// Normalize maps v into [0,1] over the field's range.
func (f Field) Normalize(v float64) float64 {
	if f.Max <= f.Min {
		return 0
	}
	return clamp((v-f.Min)/(f.Max-f.Min), 0, 1)
}

// Denormalize maps n in [0,1] back onto the field's range, constrained.
func (f Field) Denormalize(n float64) float64 {
	return f.Constrain(f.Min + clamp(n, 0, 1)*(f.Max-f.Min))
}

// Steps is the number of discrete positions a slider for f has, or 0 when
// the range is too fine to draw ticks for.
func (f Field) Steps() int {
	if f.Step <= 0 || f.Max <= f.Min {
		return 0
	}
	n := int(math.Floor((f.Max-f.Min)/f.Step+1e-9)) + 1
	if n > 1000 {
		return 0
	}
	return n
}

type accessor struct {
	Field
	get func(Params) float64
	set func(*Params, float64)
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var fields = []accessor{
	{Field{"perlinNoise", FolderRoot, KindBool, 0, 1, 1},
		func(p Params) float64 { return boolf(p.PerlinNoise) },
		func(p *Params, v float64) { p.PerlinNoise = v != 0 }},

	{Field{"objectsZ", FolderObjects, KindInt, 1, 100, 1},
		func(p Params) float64 { return float64(p.ObjectsZ) },
		func(p *Params, v float64) { p.ObjectsZ = int(v) }},
	{Field{"objectsX", FolderObjects, KindInt, 1, 100, 1},
		func(p Params) float64 { return float64(p.ObjectsX) },
		func(p *Params, v float64) { p.ObjectsX = int(v) }},
	{Field{"elevation", FolderObjects, KindFloat, 0, 20, 0.1},
		func(p Params) float64 { return p.Elevation },
		func(p *Params, v float64) { p.Elevation = v }},
	{Field{"waveFrequency", FolderObjects, KindFloat, 0, 10, 0.1},
		func(p Params) float64 { return p.WaveFrequency },
		func(p *Params, v float64) { p.WaveFrequency = v }},
	{Field{"waveSpeed", FolderObjects, KindFloat, 0, 1, 0.1},
		func(p Params) float64 { return p.WaveSpeed },
		func(p *Params, v float64) { p.WaveSpeed = v }},

	{Field{"ambientLightColor", FolderLights, KindColor, 0, 0xffffff, 1},
		func(p Params) float64 { return float64(p.AmbientLightColor) },
		func(p *Params, v float64) { p.AmbientLightColor = Color(v) }},
	{Field{"ambientLightIntensity", FolderLights, KindFloat, 0, 10, 0.1},
		func(p Params) float64 { return p.AmbientLightIntensity },
		func(p *Params, v float64) { p.AmbientLightIntensity = v }},
	{Field{"directionalLightColor", FolderLights, KindColor, 0, 0xffffff, 1},
		func(p Params) float64 { return float64(p.DirectionalLightColor) },
		func(p *Params, v float64) { p.DirectionalLightColor = Color(v) }},
	{Field{"directionalLightIntensity", FolderLights, KindFloat, 0, 10, 0.1},
		func(p Params) float64 { return p.DirectionalLightIntensity },
		func(p *Params, v float64) { p.DirectionalLightIntensity = v }},
	{Field{"directionalLightX", FolderLights, KindFloat, -100, 100, 1},
		func(p Params) float64 { return p.DirectionalLightX },
		func(p *Params, v float64) { p.DirectionalLightX = v }},
	{Field{"directionalLightY", FolderLights, KindFloat, -100, 100, 1},
		func(p Params) float64 { return p.DirectionalLightY },
		func(p *Params, v float64) { p.DirectionalLightY = v }},
	{Field{"directionalLightZ", FolderLights, KindFloat, -100, 100, 1},
		func(p Params) float64 { return p.DirectionalLightZ },
		func(p *Params, v float64) { p.DirectionalLightZ = v }},
	{Field{"directionalLightRotX", FolderLights, KindFloat, -math.Pi, math.Pi, 0.1},
		func(p Params) float64 { return p.DirectionalLightRotX },
		func(p *Params, v float64) { p.DirectionalLightRotX = v }},
	{Field{"directionalLightRotY", FolderLights, KindFloat, -math.Pi, math.Pi, 0.1},
		func(p Params) float64 { return p.DirectionalLightRotY },
		func(p *Params, v float64) { p.DirectionalLightRotY = v }},
	{Field{"directionalLightRotZ", FolderLights, KindFloat, -math.Pi, math.Pi, 0.1},
		func(p Params) float64 { return p.DirectionalLightRotZ },
		func(p *Params, v float64) { p.DirectionalLightRotZ = v }},
	{Field{"directionalLightHelper", FolderLights, KindBool, 0, 1, 1},
		func(p Params) float64 { return boolf(p.DirectionalLightHelper) },
		func(p *Params, v float64) { p.DirectionalLightHelper = v != 0 }},
}

// Fields returns the panel order of all tunable fields.
func Fields() []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f.Field
	}
	return out
}

// Lookup finds a field by name.
func Lookup(name string) (Field, bool) {
	f, ok := lookup(name)
	return f.Field, ok
}

func lookup(name string) (accessor, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return accessor{}, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
