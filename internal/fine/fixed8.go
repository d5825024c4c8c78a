package fine

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/sparse/internal/wide"
)

// fixed8Kernel runs the fine-raster stages in 8-bit fixed-point: the
// accumulator holds premultiplied RGBA8 bytes and blending happens on
// uint16 lanes (one tile column, four pixels, per operation). Command
// colors are quantized to 8 bits on entry, so output may differ from
// the float kernels by one part in 255 per blend; in exchange, pack is
// a straight interleaved copy.
type fixed8Kernel struct {
	scratch [scratchLen]uint8
}

// columnBlock broadcasts an 8-bit color across one tile column.
func columnBlock(c8 [4]uint8) [16]uint8 {
	var b [16]uint8
	for j := 0; j < StripHeight; j++ {
		copy(b[j*4:], c8[:])
	}
	return b
}

// quantize converts a premultiplied float color to RGBA8.
func quantize(color [4]float32) [4]uint8 {
	var c8 [4]uint8
	for c := range c8 {
		c8[c] = uint8(math32.Min(math32.Max(color[c], 0), 1)*255 + 0.5)
	}
	return c8
}

func (k *fixed8Kernel) Clear(color [4]float32) {
	block := columnBlock(quantize(color))
	for i := 0; i < scratchLen; i += 16 {
		copy(k.scratch[i:i+16], block[:])
	}
}

func (k *fixed8Kernel) Fill(x, width int, color [4]float32) {
	c8 := quantize(color)
	block := columnBlock(c8)
	lo := x * StripHeight * 4
	hi := lo + width*StripHeight*4
	if c8[3] == 255 {
		for i := lo; i < hi; i += 16 {
			copy(k.scratch[i:i+16], block[:])
		}
		return
	}
	src := wide.LoadBytes(block[:])
	inv := wide.SplatU16(uint16(255 - c8[3]))
	for i := lo; i < hi; i += 16 {
		d := wide.LoadBytes(k.scratch[i : i+16])
		d = src.Add(d.MulDiv255(inv)).Clamp(255)
		d.StoreBytes(k.scratch[i : i+16])
	}
}

func (k *fixed8Kernel) Strip(x, width int, alphas []uint32, color [4]float32) {
	if len(alphas) < width {
		panic("fine: alpha slice shorter than strip width")
	}
	c8 := quantize(color)
	block := columnBlock(c8)
	src := wide.LoadBytes(block[:])
	srcA := wide.SplatU16(uint16(c8[3]))
	for i := 0; i < width; i++ {
		a := alphas[i]
		// Replicate each sub-row's coverage byte across its four
		// channel lanes.
		var am wide.U16x16
		for j := 0; j < StripHeight; j++ {
			cov := uint16((a >> (j * 8)) & 0xff)
			am[j*4+0] = cov
			am[j*4+1] = cov
			am[j*4+2] = cov
			am[j*4+3] = cov
		}
		lo := (x + i) * StripHeight * 4
		d := wide.LoadBytes(k.scratch[lo : lo+16])
		inv := am.MulDiv255(srcA).Inv()
		d = src.MulDiv255(am).Add(d.MulDiv255(inv)).Clamp(255)
		d.StoreBytes(k.scratch[lo : lo+16])
	}
}

func (k *fixed8Kernel) Pack(dst []uint8, imgW, imgH, tileX, tileY int) {
	base, w, h := packIndex(imgW, imgH, tileX, tileY)
	for j := 0; j < h; j++ {
		line := base + j*imgW*4
		for i := 0; i < w; i++ {
			si := (i*StripHeight + j) * 4
			copy(dst[line+i*4:line+i*4+4], k.scratch[si:si+4])
		}
	}
}
