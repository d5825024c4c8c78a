// Package strips builds sparse coverage strips from sorted tile fragments.
//
// A strip marks the start of a contiguous run of per-pixel alpha coverage
// for one draw call in one tile row. The alpha values themselves live in a
// flat buffer of 32-bit words, four 8-bit sub-row coverage values per
// word, one word per pixel column. Everything to the right of a strip's
// alpha run, until the next strip in the row, is plain winding: the
// wide-tile stage turns a nonzero carried winding into a solid fill.
package strips

import (
	"math/bits"

	"github.com/chewxy/math32"

	"github.com/gogpu/sparse/internal/tiling"
)

// Strip is the sparse coverage record emitted at the start of each
// contiguous coverage run.
type Strip struct {
	// PathID is the draw call this strip belongs to.
	PathID uint32
	// XY packs the strip's position: bits 18..31 are the tile row, bits
	// 0..17 the starting device-pixel column.
	XY uint32
	// Col is the strip's starting offset into the alpha buffer.
	Col uint32
	// Winding is the signed crossing count carried in from tiles to the
	// left in the same row. It is the background state to the LEFT of
	// the strip; the wide-tile stage consumes the NEXT strip's winding
	// to decide whether the gap after this strip is filled.
	Winding int32
}

// X returns the strip's starting device-pixel column.
func (s Strip) X() uint32 {
	return s.XY & (1<<18 - 1)
}

// RowY returns the strip's tile row index.
func (s Strip) RowY() uint32 {
	return s.XY >> 18
}

// Render consumes the sorted fragment stream (tiler sentinels plus the
// two global terminators included) and produces the strip list and the
// packed alpha buffer. strips and alphas are appended to, supporting
// buffer reuse across frames; both are owned by the caller afterwards
// and read-only for the rest of the frame.
//
// Render indexes tiles[0] unconditionally: calling it with an empty
// slice is a programming error, and the sentinel scheme guarantees at
// least three fragments in normal operation.
//
//nolint:gocognit,funlen // mirrors the single-pass structure of the algorithm
func Render(tiles []tiling.Tile, strips []Strip, alphas []uint32) ([]Strip, []uint32) {
	stripStart := true
	cols := uint32(len(alphas))
	prev := &tiles[0]
	fp := prev.Footprint()
	segStart := 0
	delta := int32(0)
	for i := 1; i < len(tiles); i++ {
		tile := &tiles[i]
		if prev.Loc() == tile.Loc() {
			fp |= tile.Footprint()
			prev = tile
			continue
		}
		startDelta := delta
		sameStrip := prev.Loc().SameStrip(tile.Loc())
		if sameStrip {
			// The strip continues into the next tile (possibly one
			// column over); widen the alpha run so the gap column is
			// carried as coverage rather than as a separate fill.
			fp |= 8
		}
		x0, x1 := footprintRange(fp)
		for _, t := range tiles[segStart:i] {
			delta += t.Delta()
		}
		for x := x0; x < x1; x++ {
			alphas = append(alphas, coverage(tiles[segStart:i], x, startDelta))
		}
		if stripStart {
			strips = append(strips, Strip{
				PathID:  prev.PathID,
				XY:      uint32(prev.Y)*(1<<18) + uint32(prev.X)*tiling.TileWidth + x0,
				Col:     cols,
				Winding: startDelta,
			})
		}
		cols += x1 - x0
		fp = 0
		if sameStrip {
			fp = 1
		}
		stripStart = !sameStrip
		segStart = i
		if !prev.Loc().SameRow(tile.Loc()) {
			delta = 0
		}
		fp |= tile.Footprint()
		prev = tile
	}
	return strips, alphas
}

// coverage computes the packed alpha word for one pixel column of a tile
// location, from every fragment at that location, starting from the
// carried-in winding count. One byte per sub-row, low byte is the top
// sub-row. The nonzero fill rule is applied per sub-row.
func coverage(tiles []tiling.Tile, x uint32, startDelta int32) uint32 {
	areas := [tiling.TileHeight]float32{}
	for y := range areas {
		areas[y] = float32(startDelta)
	}
	for _, t := range tiles {
		p0 := tiling.UnpackPoint(t.P0)
		p1 := tiling.UnpackPoint(t.P1)
		slope := (p1[0] - p0[0]) / (p1[1] - p0[1])
		startx := p0[0] - float32(x)
		for y := 0; y < tiling.TileHeight; y++ {
			starty := p0[1] - float32(y)
			y0 := clampf(starty, 0, 1)
			y1 := clampf(p1[1]-float32(y), 0, 1)
			dy := y0 - y1
			if dy != 0 {
				// Trapezoid area of the segment's crossing of this unit
				// cell, signed by the crossing direction.
				xx0 := startx + (y0-starty)*slope
				xx1 := startx + (y1-starty)*slope
				xmin0 := math32.Min(xx0, xx1)
				xmax := math32.Max(xx0, xx1)
				xmin := math32.Min(xmin0, 1) - 1e-6
				b := math32.Min(xmax, 1)
				c := math32.Max(b, 0)
				d := math32.Max(xmin, 0)
				a := (b + 0.5*(d*d-c*c) - xmin) / (xmax - xmin)
				areas[y] += a * dy
			}
			// A packed x of exactly zero marks a fragment that enters
			// through the left tile edge; it contributes full-width
			// coverage below its entry point, signed by direction.
			if p0[0] == 0 {
				areas[y] += clampf(float32(y)-p0[1]+1, 0, 1)
			} else if p1[0] == 0 {
				areas[y] -= clampf(float32(y)-p1[1]+1, 0, 1)
			}
		}
	}
	var alpha uint32
	for y, area := range areas {
		a := uint32(math32.Round(math32.Min(math32.Abs(area), 1) * 255))
		alpha |= a << (y * 8)
	}
	return alpha
}

// footprintRange converts a footprint mask to the half-open sub-column
// range [x0, x1) that needs alpha output.
func footprintRange(fp uint32) (x0, x1 uint32) {
	if fp == 0 {
		return 0, 0
	}
	return uint32(bits.TrailingZeros32(fp)), uint32(32 - bits.LeadingZeros32(fp))
}

func clampf(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
