package flatten

import "math"

// Curve lowering uses Wang's formula: the number of uniform parameter
// steps needed so each chord deviates from the curve by at most tol is
// derived from the maximum second difference of the control polygon.
// Subdivision counts are clamped to keep degenerate inputs (NaN control
// points, tol near zero) from exploding the segment count.

const maxSubdivisions = 1024

// flattenQuad emits the polyline approximation of a quadratic Bezier,
// excluding p0, by calling emit for each vertex in order (the final call
// is exactly p2).
func flattenQuad(p0, p1, p2 point, tol float64, emit func(x, y float64)) {
	// Second difference is constant for a quadratic.
	dd := p0.sub(p1.mul(2)).add(p2)
	n := subdivisions(dd.length(), tol)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		q := p0.lerp(p1, t).lerp(p1.lerp(p2, t), t)
		emit(q.x, q.y)
	}
	emit(p2.x, p2.y)
}

// flattenCubic emits the polyline approximation of a cubic Bezier,
// excluding p0, by calling emit for each vertex in order (the final call
// is exactly p3).
func flattenCubic(p0, p1, p2, p3 point, tol float64, emit func(x, y float64)) {
	// The cubic's second derivative is bounded by 6x the larger second
	// difference of the control polygon.
	dd1 := p0.sub(p1.mul(2)).add(p2)
	dd2 := p1.sub(p2.mul(2)).add(p3)
	dd := math.Max(dd1.length(), dd2.length())
	n := subdivisions(3*dd, tol)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		ab := p0.lerp(p1, t)
		bc := p1.lerp(p2, t)
		cd := p2.lerp(p3, t)
		q := ab.lerp(bc, t).lerp(bc.lerp(cd, t), t)
		emit(q.x, q.y)
	}
	emit(p3.x, p3.y)
}

// subdivisions returns the uniform step count for a curve whose maximum
// second-derivative magnitude bound is dd.
func subdivisions(dd, tol float64) int {
	if !(dd > 0) || !(tol > 0) {
		return 1
	}
	n := int(math.Ceil(math.Sqrt(dd / (4 * tol))))
	if n < 1 {
		return 1
	}
	if n > maxSubdivisions {
		return maxSubdivisions
	}
	return n
}
