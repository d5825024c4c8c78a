package sparse

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap represents a rectangular pixel buffer.
//
// Pixel data is premultiplied RGBA, 4 bytes per pixel, which is the
// format the rendering pipeline writes directly. Use [Pixmap.ToImage]
// or the image.Image methods for straight-alpha views.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (premultiplied RGBA).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// GetPixel returns the straight-alpha color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	pre := RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
	return pre.Unpremultiply()
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	pre := c.Premultiply()
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(pre.R * 255))
	p.data[i+1] = uint8(clamp255(pre.G * 255))
	p.data[i+2] = uint8(clamp255(pre.B * 255))
	p.data[i+3] = uint8(clamp255(pre.A * 255))
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	pre := c.Premultiply()
	r := uint8(clamp255(pre.R * 255))
	g := uint8(clamp255(pre.G * 255))
	b := uint8(clamp255(pre.B * 255))
	a := uint8(clamp255(pre.A * 255))

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Unpremultiply converts the buffer in place from premultiplied to
// straight alpha, the final step before handing Data to a consumer
// that expects straight RGBA (most image formats). Fully transparent
// pixels become zero. After the call the buffer no longer holds the
// premultiplied form the pixel accessors and ToImage assume, so treat
// it as an export step.
func (p *Pixmap) Unpremultiply() {
	for i := 0; i < len(p.data); i += 4 {
		a := uint32(p.data[i+3])
		if a == 0 {
			p.data[i+0] = 0
			p.data[i+1] = 0
			p.data[i+2] = 0
			continue
		}
		for c := 0; c < 3; c++ {
			v := (uint32(p.data[i+c])*255 + a/2) / a
			if v > 255 {
				v = 255
			}
			p.data[i+c] = uint8(v)
		}
	}
}

// ToImage converts the pixmap to an image.RGBA. The standard library's
// image.RGBA is also premultiplied, so this is a straight copy.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	img := p.ToImage()
	return png.Encode(f, img)
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
