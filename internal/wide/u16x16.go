package wide

// U16x16 represents 16 uint16 values for SIMD-style operations.
// The reduced-precision fine-raster kernel uses it to hold four RGBA8
// pixels (one tile column) widened to uint16 so that products of two
// 8-bit values never overflow.
type U16x16 [16]uint16

// SplatU16 creates a U16x16 with all elements set to n.
func SplatU16(n uint16) U16x16 {
	var result U16x16
	for i := range result {
		result[i] = n
	}
	return result
}

// LoadBytes widens 16 bytes into a U16x16.
func LoadBytes(src []uint8) U16x16 {
	var result U16x16
	for i := range result {
		result[i] = uint16(src[i])
	}
	return result
}

// StoreBytes narrows the vector back to 16 bytes. Values above 255 are
// a programming error in the kernel math; they truncate.
func (v U16x16) StoreBytes(dst []uint8) {
	for i := range v {
		dst[i] = uint8(v[i])
	}
}

// Add performs element-wise addition.
func (v U16x16) Add(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Inv computes 255 - v for each element (inverse alpha).
func (v U16x16) Inv() U16x16 {
	var result U16x16
	for i := range v {
		result[i] = 255 - v[i]
	}
	return result
}

// MulDiv255 performs (v * other) / 255 for each element, the core
// operation of 8-bit source-over blending. Division by 255 uses the
// (x + 1 + (x >> 8)) >> 8 approximation: exact whenever either input
// is 0 or 255, within one unit of x/255 everywhere else.
func (v U16x16) MulDiv255(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		x := uint32(v[i]) * uint32(other[i])
		result[i] = uint16((x + 1 + (x >> 8)) >> 8)
	}
	return result
}

// Clamp clamps each element to [0, maxVal].
func (v U16x16) Clamp(maxVal uint16) U16x16 {
	var result U16x16
	for i := range v {
		if v[i] > maxVal {
			result[i] = maxVal
		} else {
			result[i] = v[i]
		}
	}
	return result
}
