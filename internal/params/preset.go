package params

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode reads a YAML preset over the defaults. Keys not present keep their
// default value; unknown keys are an error. The result is clamped.
func Decode(r io.Reader) (Params, error) {
	p := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("decode preset: %w", err)
	}
	if p.NoiseYSource != "" && !p.NoiseYSource.Valid() {
		return Default(), fmt.Errorf("decode preset: unknown noiseYSource %q", p.NoiseYSource)
	}
	return p.Clamped(), nil
}

// Load reads the preset file at path.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("could not read preset file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Encode writes p as YAML.
func Encode(w io.Writer, p Params) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	return enc.Close()
}

// Save writes p to path, replacing any existing file.
func Save(path string, p Params) error {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("could not write preset file: %w", err)
	}
	return nil
}
