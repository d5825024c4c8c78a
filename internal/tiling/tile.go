package tiling

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"
)

// Tile dimensions in device pixels. The whole pipeline is built around a
// fixed 4x4 grid; changing these requires revisiting the packed-point
// range and the alpha-word layout in the strip builder.
const (
	TileWidth  = 4
	TileHeight = 4
)

// Sentinel coordinates used to terminate the fragment stream. They sort
// after every real fragment and never share a location, so the strip
// builder's flush logic runs without end-of-slice checks.
const (
	sentinelX      = 0x3fff
	sentinelY      = 0x3fff
	tilerPathID    = 0xfffffffd
	closerPathID   = 0xfffffffe
	terminalPathID = 0xffffffff
)

// Tile is one line-segment fragment clipped to a single 4x4 tile.
// P0 and P1 are packed tile-relative endpoints (see PackPoint); their
// order preserves the original segment's vertical direction, which the
// strip builder relies on for the winding sign.
type Tile struct {
	PathID uint32
	X, Y   uint16
	P0, P1 uint32
}

// Loc identifies the tile grid cell a fragment belongs to.
type Loc struct {
	PathID uint32
	X, Y   uint16
}

// Loc returns the fragment's grid location.
func (t Tile) Loc() Loc {
	return Loc{PathID: t.PathID, X: t.X, Y: t.Y}
}

// SameRow reports whether both locations are in the same tile row of the
// same draw call.
func (l Loc) SameRow(o Loc) bool {
	return l.PathID == o.PathID && l.Y == o.Y
}

// SameStrip reports whether o continues the strip that l belongs to.
// Locations up to one tile column apart are merged into one strip: the
// intervening column is cheaper to carry as per-pixel alpha than as a
// separate one-tile fill command between two strips.
func (l Loc) SameStrip(o Loc) bool {
	return l.SameRow(o) && (o.X-l.X)/2 == 0
}

// Footprint returns a bitmask of the tile's sub-columns (bit i = column i)
// covered by the fragment's x extent.
func (t Tile) Footprint() uint32 {
	x0 := float32(t.P0&0xffff) * PackEpsilon
	x1 := float32(t.P1&0xffff) * PackEpsilon
	xmin := uint32(math32.Floor(math32.Min(x0, x1)))
	xmax := uint32(math32.Ceil(math32.Max(x0, x1)))
	if xmax < xmin+1 {
		xmax = xmin + 1
	}
	return (1 << xmax) - (1 << xmin)
}

// Delta returns the fragment's contribution to the winding count of tiles
// to its right: -1 if the segment crosses the tile's top edge downward,
// +1 upward, 0 if it does not touch the top edge.
func (t Tile) Delta() int32 {
	var d int32
	if t.P1>>16 == 0 {
		d++
	}
	if t.P0>>16 == 0 {
		d--
	}
	return d
}

func (t Tile) String() string {
	p0 := UnpackPoint(t.P0)
	p1 := UnpackPoint(t.P1)
	return fmt.Sprintf("Tile{path %d, xy (%d, %d), p0 (%.4f, %.4f), p1 (%.4f, %.4f)}",
		t.PathID, t.X, t.Y, p0[0], p0[1], p1[0], p1[1])
}

// SortTiles orders fragments by (path, row, column), the order the strip
// builder consumes them in. Fragment endpoints do not participate in the
// ordering.
func SortTiles(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		a, b := &tiles[i], &tiles[j]
		if a.PathID != b.PathID {
			return a.PathID < b.PathID
		}
		return uint32(a.Y)<<16|uint32(a.X) < uint32(b.Y)<<16|uint32(b.X)
	})
}

// AppendTerminators appends the two global sentinel fragments. Callers
// must do this after sorting and before strip building; together with the
// tiler's own trailing sentinels they guarantee the last real strip is
// flushed and the builder sees a non-empty slice.
func AppendTerminators(tiles []Tile) []Tile {
	tiles = append(tiles,
		Tile{PathID: closerPathID, X: sentinelX, Y: sentinelY},
		Tile{PathID: terminalPathID, X: sentinelX, Y: sentinelY},
	)
	return tiles
}
