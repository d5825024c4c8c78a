package sparse

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestPixmapSetGetPixel(t *testing.T) {
	pm := NewPixmap(8, 8)
	c := RGBA{0.8, 0.4, 0.2, 0.5}
	pm.SetPixel(3, 4, c)
	got := pm.GetPixel(3, 4)
	if !colorsEqual(got, c, 1.0/127) {
		t.Errorf("GetPixel = %+v, want ~%+v", got, c)
	}
}

func TestPixmapOutOfBounds(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.SetPixel(-1, 0, Red)
	pm.SetPixel(4, 0, Red)
	pm.SetPixel(0, 4, Red)
	if got := pm.GetPixel(-1, 0); got != Transparent {
		t.Errorf("out-of-bounds GetPixel = %+v, want Transparent", got)
	}
	for _, b := range pm.Data() {
		if b != 0 {
			t.Fatal("out-of-bounds SetPixel wrote into the buffer")
		}
	}
}

func TestPixmapClear(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Clear(RGBA{1, 0, 0, 0.5})
	// Premultiplied and truncated: (127, 0, 0, 127).
	d := pm.Data()
	for i := 0; i < len(d); i += 4 {
		if d[i] != 127 || d[i+1] != 0 || d[i+2] != 0 || d[i+3] != 127 {
			t.Fatalf("pixel %d = %v, want (127, 0, 0, 127)", i/4, d[i:i+4])
		}
	}
}

func TestPixmapUnpremultiply(t *testing.T) {
	pm := NewPixmap(2, 1)
	// Half-transparent red, premultiplied: (127, 0, 0, 127).
	pm.Clear(RGBA{1, 0, 0, 0.5})
	// Fully transparent with stale color bytes.
	d := pm.Data()
	d[4], d[5], d[6], d[7] = 9, 9, 9, 0

	pm.Unpremultiply()

	if got := [4]uint8{d[0], d[1], d[2], d[3]}; got != ([4]uint8{255, 0, 0, 127}) {
		t.Errorf("translucent pixel = %v, want (255, 0, 0, 127)", got)
	}
	if got := [4]uint8{d[4], d[5], d[6], d[7]}; got != ([4]uint8{0, 0, 0, 0}) {
		t.Errorf("transparent pixel = %v, want zero", got)
	}
}

func TestPixmapToImage(t *testing.T) {
	pm := NewPixmap(4, 2)
	pm.SetPixel(1, 1, Red)
	img := pm.ToImage()
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
	r, g, b, a := img.At(1, 1).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("At(1,1) = (%d, %d, %d, %d), want opaque red", r, g, b, a)
	}
}

func TestPixmapSavePNG(t *testing.T) {
	pm := NewPixmap(8, 8)
	pm.Clear(Blue)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := pm.SavePNG(path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}
}

func TestPixmapImageInterface(t *testing.T) {
	pm := NewPixmap(3, 3)
	pm.SetPixel(2, 2, Green)
	r, g, b, a := pm.At(2, 2).RGBA()
	if r != 0 || g != 0xffff || b != 0 || a != 0xffff {
		t.Errorf("At(2,2) = (%d, %d, %d, %d), want opaque green", r, g, b, a)
	}
}
