// Package fine composites wide-tile draw commands into pixels.
//
// The fine rasterizer owns a scratch accumulator holding one wide tile
// (WideTileWidth x 4 pixels) of premultiplied RGBA values. For each wide
// tile the driver clears the accumulator to the tile background, applies
// the tile's fill and strip commands in draw order with source-over
// blending, and packs the result into the caller's RGBA8 output buffer.
//
// Every stage (clear, fill, strip, pack) exists in several kernel
// implementations: a scalar float32 reference, a wide-type kernel built
// on the auto-vectorizing lane types of internal/wide, and a
// reduced-precision integer kernel that trades one part in 255 of
// accuracy for 8-bit arithmetic. The default kernel is chosen exactly
// once at process start based on CPU capability; see Select.
package fine
