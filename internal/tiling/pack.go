package tiling

import "golang.org/x/image/math/f32"

// Packed tile-relative points.
//
// A tile fragment stores its two endpoints as 32-bit words. Each word packs
// two 16-bit fixed-point coordinates in 1/8192-pixel units:
//
//	bits  0..15  x, 0..TileWidth  (0..32768 in fixed point)
//	bits 16..31  y, 0..TileHeight (0..32768 in fixed point)
//
// The 1/8192 step is load-bearing: the tiler nudges coordinates by exactly
// one fixed-point unit to keep degenerate fragments from contributing
// spurious coverage, and the strip builder detects "entered through the
// left tile edge" by a packed x of exactly zero.

// PackScale is the number of fixed-point units per device pixel.
const PackScale = 8192

// PackEpsilon is one fixed-point unit expressed in device pixels.
const PackEpsilon = 1.0 / PackScale

// PackPoint packs a tile-relative point into a 32-bit word.
// Both coordinates must lie in [0, TileWidth] and [0, TileHeight];
// values outside that range are a programming error upstream.
func PackPoint(v f32.Vec2) uint32 {
	x := uint32(v[0]*PackScale + 0.5)
	y := uint32(v[1]*PackScale + 0.5)
	return y<<16 | x
}

// UnpackPoint unpacks a 32-bit word into a tile-relative point.
func UnpackPoint(packed uint32) f32.Vec2 {
	x := float32(packed&0xffff) * PackEpsilon
	y := float32(packed>>16) * PackEpsilon
	return f32.Vec2{x, y}
}
