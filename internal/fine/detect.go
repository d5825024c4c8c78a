package fine

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// vectorOK records whether the running CPU has the SIMD width the wide
// kernel is tuned for. It is computed exactly once, at package
// initialization, and treated as immutable for the life of the process:
// ModeAuto reads it on every Select but never re-probes the hardware.
var vectorOK = detectVector()

// detectVector probes the instruction sets the wide kernel's loops are
// expected to vectorize to. On unrecognized architectures the answer is
// false and ModeAuto stays on the scalar reference kernel.
func detectVector() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasAVX2
	case "arm64":
		// ASIMD is mandatory on AArch64, but the feature flag is still
		// the authoritative source.
		return cpu.ARM64.HasASIMD
	default:
		return false
	}
}
