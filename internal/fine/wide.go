package fine

import (
	"github.com/gogpu/sparse/internal/wide"
)

// wideKernel implements the fine-raster stages on the lane types of
// internal/wide: two pixels (8 float32 lanes) per operation for clear
// and fill, one column (4 pixels) per operation for strips. The loops
// are shaped for compiler auto-vectorization; results are bit-identical
// to the scalar kernel.
type wideKernel struct {
	scratch [scratchLen]float32
}

// colorPair broadcasts a premultiplied color across two pixel lanes.
func colorPair(color [4]float32) wide.F32x8 {
	return wide.F32x8{
		color[0], color[1], color[2], color[3],
		color[0], color[1], color[2], color[3],
	}
}

func (k *wideKernel) Clear(color [4]float32) {
	pair := colorPair(color)
	for i := 0; i < scratchLen; i += 8 {
		copy(k.scratch[i:i+8], pair[:])
	}
}

func (k *wideKernel) Fill(x, width int, color [4]float32) {
	lo := x * StripHeight * 4
	hi := lo + width*StripHeight*4
	pair := colorPair(color)
	if color[3] == 1 {
		for i := lo; i < hi; i += 8 {
			copy(k.scratch[i:i+8], pair[:])
		}
		return
	}
	m := wide.Splat8(1 - color[3])
	for i := lo; i < hi; i += 8 {
		var v wide.F32x8
		copy(v[:], k.scratch[i:i+8])
		v = v.MulAdd(m, pair)
		copy(k.scratch[i:i+8], v[:])
	}
}

func (k *wideKernel) Strip(x, width int, alphas []uint32, color [4]float32) {
	if len(alphas) < width {
		panic("fine: alpha slice shorter than strip width")
	}
	var cs wide.F32x4
	for c := range cs {
		cs[c] = color[c] * (1.0 / 255.0)
	}
	for i := 0; i < width; i++ {
		a := alphas[i]
		base := (x + i) * StripHeight * 4
		for j := 0; j < StripHeight; j++ {
			maskAlpha := float32((a >> (j * 8)) & 0xff)
			zi := base + j*4
			var v wide.F32x4
			copy(v[:], k.scratch[zi:zi+4])
			v = v.MulAdd(wide.Splat4(1-maskAlpha*cs[3]), cs.Scale(maskAlpha))
			copy(k.scratch[zi:zi+4], v[:])
		}
	}
}

func (k *wideKernel) Pack(dst []uint8, imgW, imgH, tileX, tileY int) {
	base, w, h := packIndex(imgW, imgH, tileX, tileY)
	for j := 0; j < h; j++ {
		line := base + j*imgW*4
		for i := 0; i < w; i++ {
			si := (i*StripHeight + j) * 4
			var v wide.F32x4
			copy(v[:], k.scratch[si:si+4])
			v = v.Clamp(0, 1).Scale(255)
			di := line + i*4
			for c := 0; c < 4; c++ {
				dst[di+c] = uint8(v[c] + 0.5)
			}
		}
	}
}
