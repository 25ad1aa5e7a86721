package ui

import "testing"

func TestRectNDC(t *testing.T) {
	v := RectNDC(0, 0, 800, 600, 800, 600)
	want := [12]float32{-1, 1, 1, 1, 1, -1, -1, 1, 1, -1, -1, -1}
	if v != want {
		t.Errorf("full-screen rect = %v, want %v", v, want)
	}

	v = RectNDC(400, 300, 200, 150, 800, 600)
	if v[0] != 0 || v[1] != 0 || v[4] != 0.5 || v[5] != -0.5 {
		t.Errorf("quarter rect corners %v", v)
	}
}
