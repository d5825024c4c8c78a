package fine

import (
	"github.com/gogpu/sparse/internal/tiling"
)

// WideTileWidth is the width in pixels of one wide tile, the unit of
// work for the fine rasterizer. The value is a throughput tuning
// parameter, not a correctness one: wide enough to amortize per-tile
// overhead, narrow enough that the scratch accumulator stays cache
// resident.
const WideTileWidth = 256

// StripHeight is the pixel height of a wide tile row, identical to the
// tile grid height.
const StripHeight = tiling.TileHeight

// scratchLen is the element count of a float32 scratch accumulator:
// one premultiplied RGBA value per wide-tile pixel.
const scratchLen = WideTileWidth * StripHeight * 4

// Kernel is one full implementation of the fine-raster stages. All
// implementations are interchangeable: for the same command sequence
// they produce identical pixels up to the implementation's stated
// precision (exact for Scalar and Wide, one part in 255 for Fixed8).
//
// A kernel owns its scratch accumulator, so distinct kernels may run
// concurrently on distinct wide tiles.
type Kernel interface {
	// Clear overwrites the whole accumulator with a premultiplied color.
	// No accumulator state survives from the previous tile.
	Clear(color [4]float32)
	// Fill blends a premultiplied color over columns [x, x+width) with
	// source-over semantics; a fully opaque color is a plain overwrite.
	Fill(x, width int, color [4]float32)
	// Strip is Fill with per-pixel coverage: alphas holds one packed
	// 32-bit word per column, one coverage byte per sub-row, which
	// scales both the source color and the blend factor.
	Strip(x, width int, alphas []uint32, color [4]float32)
	// Pack converts the accumulator to RGBA8 and interleaves it into
	// the row-major dst image at wide-tile position (tileX, tileY).
	// Tiles extending past the image edge are cropped; a tile fully
	// outside the image is a programming error and panics.
	Pack(dst []uint8, imgW, imgH, tileX, tileY int)
}

// Mode selects a fine-raster kernel.
type Mode int

const (
	// ModeAuto picks the wide kernel when the one-time CPU capability
	// check passed, the scalar kernel otherwise. This is the default.
	ModeAuto Mode = iota
	// ModeScalar forces the scalar float32 reference kernel.
	ModeScalar
	// ModeWide forces the wide-type float32 kernel.
	ModeWide
	// ModeFixed8 forces the reduced-precision 8-bit integer kernel.
	ModeFixed8
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "Auto"
	case ModeScalar:
		return "Scalar"
	case ModeWide:
		return "Wide"
	case ModeFixed8:
		return "Fixed8"
	default:
		return "Unknown"
	}
}

// Select returns a fresh kernel for the given mode. Each call returns a
// kernel with its own scratch accumulator.
//
// ModeAuto consults the capability check performed once at process
// start; it never selects a vectorized kernel when that check failed.
// The forced modes are honored unconditionally: every kernel here is
// portable Go, so forcing one is a performance choice, never a safety
// hazard.
func Select(mode Mode) Kernel {
	switch mode {
	case ModeScalar:
		return &scalarKernel{}
	case ModeWide:
		return &wideKernel{}
	case ModeFixed8:
		return &fixed8Kernel{}
	default:
		if vectorOK {
			return &wideKernel{}
		}
		return &scalarKernel{}
	}
}

func packIndex(imgW, imgH, tileX, tileY int) (base, w, h int) {
	x0 := tileX * WideTileWidth
	y0 := tileY * StripHeight
	if x0 < 0 || y0 < 0 || x0 >= imgW || y0 >= imgH {
		panic("fine: wide tile outside output buffer")
	}
	w = min(WideTileWidth, imgW-x0)
	h = min(StripHeight, imgH-y0)
	return (y0*imgW + x0) * 4, w, h
}
