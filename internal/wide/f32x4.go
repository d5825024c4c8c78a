package wide

// F32x4 represents 4 float32 values for SIMD-style operations.
// In the fine rasterizer it usually holds one premultiplied RGBA pixel.
type F32x4 [4]float32

// Splat4 creates an F32x4 with all elements set to n.
func Splat4(n float32) F32x4 {
	return F32x4{n, n, n, n}
}

// Add performs element-wise addition.
func (v F32x4) Add(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Mul performs element-wise multiplication.
func (v F32x4) Mul(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Scale multiplies every element by s.
func (v F32x4) Scale(s float32) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] * s
	}
	return result
}

// MulAdd computes v*m + a element-wise, the source-over blend shape
// dst*(1-alpha) + src.
func (v F32x4) MulAdd(m, a F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i]*m[i] + a[i]
	}
	return result
}

// Clamp clamps each element to [minVal, maxVal].
func (v F32x4) Clamp(minVal, maxVal float32) F32x4 {
	var result F32x4
	for i := range v {
		switch {
		case v[i] < minVal:
			result[i] = minVal
		case v[i] > maxVal:
			result[i] = maxVal
		default:
			result[i] = v[i]
		}
	}
	return result
}
