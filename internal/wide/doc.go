// Package wide provides SIMD-friendly wide types for the fine rasterizer.
//
// The vectorized fine-raster kernels are built on fixed-size array types
// (F32x4, F32x8, U16x16) with simple element-wise loops. The Go compiler
// auto-vectorizes these on architectures with the matching instruction
// sets (SSE/AVX2, NEON); on everything else they compile to plain scalar
// loops with the same results, so the types are safe to use anywhere;
// the capability check in internal/fine only decides whether they are
// worth selecting.
//
// F32x4 holds one premultiplied RGBA pixel (or four coverage lanes) at
// full float32 precision. F32x8 processes two pixels per operation.
// U16x16 holds four RGBA8 pixels widened to uint16, for the
// reduced-precision integer kernel.
//
// No unsafe, no assembly: correctness is identical across platforms and
// the scalar fallback is the same code path.
package wide
