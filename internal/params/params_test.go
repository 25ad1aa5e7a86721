package params

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"wave-city/internal/heightfield"
)

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}
	if p.ObjectCount() != 2500 {
		t.Errorf("default object count = %d, want 2500", p.ObjectCount())
	}
	w := p.Wave()
	if w.Amplitude != 10 || w.Frequency != 3 || w.Speed != 0.3 || !w.Noise || w.NoiseY != heightfield.NoiseYPrevious {
		t.Errorf("unexpected wave view %+v", w)
	}
}

func TestWithLeavesOriginalUntouched(t *testing.T) {
	old := Default()
	next, err := old.With("elevation", 4.2)
	if err != nil {
		t.Fatal(err)
	}
	if old.Elevation != 10 {
		t.Errorf("original mutated: elevation = %f", old.Elevation)
	}
	if next.Elevation != 4.2 {
		t.Errorf("next elevation = %f, want 4.2", next.Elevation)
	}
}

func TestWithClampsAndSnaps(t *testing.T) {
	tests := []struct {
		name  string
		field string
		in    float64
		want  float64
	}{
		{"above max", "elevation", 25, 20},
		{"below min", "waveSpeed", -1, 0},
		{"snap to tenth", "waveFrequency", 3.04, 3},
		{"tenth residue", "waveSpeed", 0.30000000000000004, 0.3},
		{"int rounds", "objectsX", 12.6, 13},
		{"int min", "objectsZ", 0, 1},
		{"rotation keeps zero", "directionalLightRotX", 0, 0},
		{"rotation edge", "directionalLightRotY", math.Pi, 3.1},
		{"bool on", "perlinNoise", 0.5, 1},
		{"color clamp", "ambientLightColor", 0x1ffffff, 0xffffff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Default().With(tt.field, tt.in)
			if err != nil {
				t.Fatal(err)
			}
			got, _ := p.Get(tt.field)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithRejectsUnknownAndNonFinite(t *testing.T) {
	if _, err := Default().With("nope", 1); err == nil {
		t.Error("expected error for unknown field")
	}
	if _, err := Default().With("elevation", math.NaN()); err == nil {
		t.Error("expected error for NaN")
	}
	if _, err := Default().Get("nope"); err == nil {
		t.Error("expected error from Get for unknown field")
	}
}

func TestNeedsRepopulate(t *testing.T) {
	base := Default()
	wider, _ := base.With("objectsX", 20)
	brighter, _ := base.With("ambientLightIntensity", 5)
	if !NeedsRepopulate(base, wider) {
		t.Error("extent change should need repopulate")
	}
	if NeedsRepopulate(base, brighter) {
		t.Error("light change should not need repopulate")
	}
}

func TestFieldsCoverEveryPanelControl(t *testing.T) {
	folders := map[string]int{}
	for _, f := range Fields() {
		folders[f.Folder]++
		if _, ok := Lookup(f.Name); !ok {
			t.Errorf("Lookup(%q) failed", f.Name)
		}
	}
	if folders[FolderRoot] != 1 || folders[FolderObjects] != 5 || folders[FolderLights] != 11 {
		t.Errorf("unexpected folder layout %v", folders)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	f, _ := Lookup("elevation")
	if n := f.Normalize(10); n != 0.5 {
		t.Errorf("Normalize(10) = %f, want 0.5", n)
	}
	if v := f.Denormalize(0.25); v != 5 {
		t.Errorf("Denormalize(0.25) = %f, want 5", v)
	}
	if f.Steps() != 201 {
		t.Errorf("Steps() = %d, want 201", f.Steps())
	}
}

func TestColorChannels(t *testing.T) {
	c := Color(0x336699)
	if c.Channel(0) != 0x33 || c.Channel(1) != 0x66 || c.Channel(2) != 0x99 {
		t.Errorf("channels wrong for %s", c)
	}
	if got := c.WithChannel(1, 0xff); got != 0x33ff99 {
		t.Errorf("WithChannel = %s, want #33ff99", got)
	}
	r, g, b := Color(0xff0000).RGB()
	if r != 1 || g != 0 || b != 0 {
		t.Errorf("RGB = %f %f %f", r, g, b)
	}
	if _, err := ParseColor("#12345"); err == nil {
		t.Error("expected error for short color")
	}
}

func TestDecodePresetMergesOverDefaults(t *testing.T) {
	src := `
objectsX: 10
elevation: 99
ambientLightColor: "#ff8800"
directionalLightColor: 0x00ff00
noiseYSource: base
`
	p, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if p.ObjectsX != 10 || p.ObjectsZ != 50 {
		t.Errorf("extent = %dx%d, want 10x50", p.ObjectsX, p.ObjectsZ)
	}
	if p.Elevation != 20 {
		t.Errorf("elevation not clamped: %f", p.Elevation)
	}
	if p.AmbientLightColor != 0xff8800 || p.DirectionalLightColor != 0x00ff00 {
		t.Errorf("colors = %s %s", p.AmbientLightColor, p.DirectionalLightColor)
	}
	if p.NoiseYSource != heightfield.NoiseYBase {
		t.Errorf("noiseYSource = %q", p.NoiseYSource)
	}
}

func TestDecodePresetRejectsUnknownKeys(t *testing.T) {
	if _, err := Decode(strings.NewReader("waveFrequancy: 3\n")); err == nil {
		t.Fatal("expected unknown key error")
	}
	if _, err := Decode(strings.NewReader("noiseYSource: sideways\n")); err == nil {
		t.Fatal("expected unknown source error")
	}
}

func TestDecodeEmptyPreset(t *testing.T) {
	p, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if p != Default() {
		t.Errorf("empty preset should yield defaults, got %+v", p)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	p, _ := Default().With("waveSpeed", 0.7)
	p, _ = p.With("directionalLightColor", 0x123456)
	if err := Save(path, p); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Errorf("loaded %+v, want %+v", got, p)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "#123456") {
		t.Errorf("color not written as hex string:\n%s", buf.String())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing preset")
	}
}
