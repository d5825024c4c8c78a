package sparse

import "github.com/gogpu/sparse/internal/fine"

// KernelMode controls which fine-rasterization kernel composites strips
// into pixels.
//
// The default is KernelAuto, which picks the vectorized kernel when the
// CPU reports the SIMD width it is tuned for and falls back to the
// scalar reference kernel otherwise. Force modes bypass detection and
// always use a specific kernel; every kernel is portable Go, so forcing
// is always safe.
//
// The mode is per-Context, not global. Different contexts can use
// different kernels.
//
// Use cases for force modes:
//   - Debugging: force KernelScalar to rule out vectorization issues
//   - Benchmarking: compare kernels on the same workload
//   - Memory-constrained targets: KernelFixed8 quarters scratch size
type KernelMode int

const (
	// KernelAuto selects the kernel from runtime CPU detection (default).
	KernelAuto KernelMode = iota

	// KernelScalar forces the scalar float32 reference kernel.
	// Every other kernel is validated against its output.
	KernelScalar

	// KernelWide forces the vectorization-friendly float32 kernel.
	// Its loops are shaped so the compiler emits SIMD on capable
	// targets; output is bit-identical to KernelScalar.
	KernelWide

	// KernelFixed8 forces the 8-bit fixed-point kernel. Blending
	// happens on premultiplied RGBA8 values, so results may differ
	// from the float kernels by one part in 255 per blend.
	KernelFixed8
)

// String returns the kernel mode name.
func (m KernelMode) String() string {
	switch m {
	case KernelAuto:
		return "Auto"
	case KernelScalar:
		return "Scalar"
	case KernelWide:
		return "Wide"
	case KernelFixed8:
		return "Fixed8"
	default:
		return "Unknown"
	}
}

// fineMode converts the public mode to the internal kernel selector.
func (m KernelMode) fineMode() fine.Mode {
	switch m {
	case KernelScalar:
		return fine.ModeScalar
	case KernelWide:
		return fine.ModeWide
	case KernelFixed8:
		return fine.ModeFixed8
	default:
		return fine.ModeAuto
	}
}
