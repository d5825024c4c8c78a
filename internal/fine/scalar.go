package fine

// scalarKernel is the reference implementation of the fine-raster
// stages: plain float32 loops, one pixel at a time. Every other kernel
// is validated against it.
//
// The scratch layout is column-major within the tile: column i, sub-row
// j, channel c lives at (i*StripHeight+j)*4 + c. Strips deliver one
// alpha word per column, so keeping a column's four pixels adjacent
// makes the strip inner loop a contiguous walk.
type scalarKernel struct {
	scratch [scratchLen]float32
}

func (k *scalarKernel) Clear(color [4]float32) {
	for i := 0; i < scratchLen; i += 4 {
		k.scratch[i+0] = color[0]
		k.scratch[i+1] = color[1]
		k.scratch[i+2] = color[2]
		k.scratch[i+3] = color[3]
	}
}

func (k *scalarKernel) Fill(x, width int, color [4]float32) {
	lo := x * StripHeight * 4
	hi := lo + width*StripHeight*4
	if color[3] == 1 {
		for i := lo; i < hi; i += 4 {
			k.scratch[i+0] = color[0]
			k.scratch[i+1] = color[1]
			k.scratch[i+2] = color[2]
			k.scratch[i+3] = color[3]
		}
		return
	}
	oneMinusAlpha := 1 - color[3]
	for i := lo; i < hi; i += 4 {
		for c := 0; c < 4; c++ {
			k.scratch[i+c] = k.scratch[i+c]*oneMinusAlpha + color[c]
		}
	}
}

func (k *scalarKernel) Strip(x, width int, alphas []uint32, color [4]float32) {
	if len(alphas) < width {
		panic("fine: alpha slice shorter than strip width")
	}
	var cs [4]float32
	for c := range cs {
		cs[c] = color[c] * (1.0 / 255.0)
	}
	for i := 0; i < width; i++ {
		a := alphas[i]
		base := (x + i) * StripHeight * 4
		for j := 0; j < StripHeight; j++ {
			maskAlpha := float32((a >> (j * 8)) & 0xff)
			oneMinusAlpha := 1 - maskAlpha*cs[3]
			zi := base + j*4
			for c := 0; c < 4; c++ {
				k.scratch[zi+c] = k.scratch[zi+c]*oneMinusAlpha + maskAlpha*cs[c]
			}
		}
	}
}

func (k *scalarKernel) Pack(dst []uint8, imgW, imgH, tileX, tileY int) {
	base, w, h := packIndex(imgW, imgH, tileX, tileY)
	for j := 0; j < h; j++ {
		line := base + j*imgW*4
		for i := 0; i < w; i++ {
			si := (i*StripHeight + j) * 4
			di := line + i*4
			for c := 0; c < 4; c++ {
				dst[di+c] = packChannel(k.scratch[si+c])
			}
		}
	}
}

// packChannel clamps an accumulator channel to [0, 1] and rounds to
// 8 bits with no systematic bias.
func packChannel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
