package sparse

import (
	"math"
	"testing"
)

func colorsEqual(a, b RGBA, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol &&
		math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol &&
		math.Abs(a.A-b.A) <= tol
}

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want RGBA
	}{
		{"short rgb", "#f00", RGBA{1, 0, 0, 1}},
		{"short rgba", "#0f08", RGBA{0, 1, 0, 8.0 * 17 / 255}},
		{"long rgb", "#336699", RGBA{0.2, 0.4, 0.6, 1}},
		{"long rgba", "#33669980", RGBA{0.2, 0.4, 0.6, 128.0 / 255}},
		{"no hash", "ff0000", RGBA{1, 0, 0, 1}},
		{"invalid length", "#12345", RGBA{0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hex(tt.hex); !colorsEqual(got, tt.want, 1e-9) {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestPremultiplyRoundTrip(t *testing.T) {
	c := RGBA{0.8, 0.6, 0.4, 0.5}
	got := c.Premultiply()
	want := RGBA{0.4, 0.3, 0.2, 0.5}
	if !colorsEqual(got, want, 1e-9) {
		t.Errorf("Premultiply() = %+v, want %+v", got, want)
	}
	if back := got.Unpremultiply(); !colorsEqual(back, c, 1e-9) {
		t.Errorf("Unpremultiply() = %+v, want %+v", back, c)
	}
}

func TestUnpremultiplyZeroAlpha(t *testing.T) {
	if got := (RGBA{0.5, 0.5, 0.5, 0}).Unpremultiply(); got != (RGBA{}) {
		t.Errorf("Unpremultiply with zero alpha = %+v, want zero color", got)
	}
}

func TestPremulVec(t *testing.T) {
	got := RGBA{1, 0.5, 0, 0.5}.premulVec()
	want := [4]float32{0.5, 0.25, 0, 0.5}
	if got != want {
		t.Errorf("premulVec() = %v, want %v", got, want)
	}
}

func TestLerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	if !colorsEqual(got, RGBA{0.5, 0.5, 0.5, 1}, 1e-9) {
		t.Errorf("Lerp = %+v", got)
	}
}

func TestFromColorRoundTrip(t *testing.T) {
	c := RGBA{0.2, 0.4, 0.6, 0.8}
	got := FromColor(c.Color())
	if !colorsEqual(got, c, 1.0/127) {
		t.Errorf("FromColor(Color()) = %+v, want ~%+v", got, c)
	}
}
