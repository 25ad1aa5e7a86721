package config

import (
	"errors"
	"io"
	"testing"
)

func TestParseFlagsDefaults(t *testing.T) {
	o, err := ParseFlags("wave-city", nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if o != Defaults() {
		t.Errorf("no flags gave %+v, want %+v", o, Defaults())
	}
}

func TestParseFlags(t *testing.T) {
	o, err := ParseFlags("wave-city", []string{
		"-model", "building.glb",
		"-params", "preset.yaml",
		"-save-params", "out.yaml",
		"-noise", "simplex",
		"-seed", "42",
		"-fps", "0",
		"-width", "800",
		"-height", "600",
		"-debug",
	}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	want := Options{
		ModelPath:      "building.glb",
		ParamsPath:     "preset.yaml",
		SaveParamsPath: "out.yaml",
		Noise:          "simplex",
		Seed:           42,
		FPSLimit:       0,
		Width:          800,
		Height:         600,
		Debug:          true,
	}
	if o != want {
		t.Errorf("got %+v, want %+v", o, want)
	}
	if o.ResolveSeed() != 42 {
		t.Error("explicit seed not kept")
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := [][]string{
		{"-noise", "worley"},
		{"-fps", "-1"},
		{"-width", "0"},
		{"-bogus"},
		{"stray"},
	}
	for _, args := range tests {
		if _, err := ParseFlags("wave-city", args, io.Discard); err == nil {
			t.Errorf("ParseFlags(%v) succeeded, want error", args)
		}
	}
}

func TestParseFlagsHelp(t *testing.T) {
	_, err := ParseFlags("wave-city", []string{"-h"}, io.Discard)
	if !errors.Is(err, ErrHelp) {
		t.Errorf("-h returned %v, want ErrHelp", err)
	}
}
