package flatten

import "math"

// CapStyle selects the geometry drawn at the open ends of a stroked
// subpath.
type CapStyle uint8

const (
	CapButt CapStyle = iota
	CapSquare
	CapRound
)

// JoinStyle selects the geometry drawn where two stroked segments meet.
type JoinStyle uint8

const (
	JoinMiter JoinStyle = iota
	JoinBevel
	JoinRound
)

// StrokeStyle describes how a path outline is expanded to a fillable
// region.
type StrokeStyle struct {
	Width      float64
	Cap        CapStyle
	Join       JoinStyle
	MiterLimit float64
}

// Stroker expands a stroked path into outline geometry on a Soup. The
// caller starts the draw call with Soup.Begin, feeds path verbs through
// the Stroker, and ends with Finish. Expansion happens in path space;
// the Soup applies the device scale when segments are pushed.
//
// Each side of the stroke is emitted as its own closed contour. Where
// the two offsets overlap on the concave side of a joint the contours
// self-intersect, which the nonzero fill rule resolves without extra
// clipping work here.
type Stroker struct {
	soup   *Soup
	style  StrokeStyle
	tol    float64
	pts    []point
	closed bool
}

// NewStroker returns a Stroker feeding the given soup's current draw
// call. A non-positive miter limit falls back to 4, matching the usual
// vector-graphics default.
func NewStroker(s *Soup, style StrokeStyle) *Stroker {
	if style.MiterLimit <= 0 {
		style.MiterLimit = 4
	}
	return &Stroker{soup: s, style: style, tol: s.tol}
}

// MoveTo flushes any pending subpath and starts a new one at (x, y).
func (st *Stroker) MoveTo(x, y float64) {
	st.flush()
	st.pts = append(st.pts[:0], point{x, y})
	st.closed = false
}

// LineTo appends a straight segment to the pending subpath.
func (st *Stroker) LineTo(x, y float64) {
	if len(st.pts) == 0 {
		st.MoveTo(x, y)
		return
	}
	st.pts = append(st.pts, point{x, y})
}

// QuadTo appends a flattened quadratic Bezier to the pending subpath.
func (st *Stroker) QuadTo(cx, cy, x, y float64) {
	if len(st.pts) == 0 {
		st.MoveTo(x, y)
		return
	}
	p0 := st.pts[len(st.pts)-1]
	flattenQuad(p0, point{cx, cy}, point{x, y}, st.tol, st.LineTo)
}

// CubicTo appends a flattened cubic Bezier to the pending subpath.
func (st *Stroker) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if len(st.pts) == 0 {
		st.MoveTo(x, y)
		return
	}
	p0 := st.pts[len(st.pts)-1]
	flattenCubic(p0, point{c1x, c1y}, point{c2x, c2y}, point{x, y}, st.tol, st.LineTo)
}

// Close marks the pending subpath closed and flushes it.
func (st *Stroker) Close() {
	if len(st.pts) == 0 {
		return
	}
	st.closed = true
	st.flush()
}

// Finish flushes the pending subpath, if any.
func (st *Stroker) Finish() {
	st.flush()
}

// flush expands and emits the pending subpath, then clears it.
func (st *Stroker) flush() {
	pts := dedupPoints(st.pts)
	st.pts = st.pts[:0]
	closed := st.closed
	st.closed = false

	h := st.style.Width / 2
	if h <= 0 {
		return
	}
	if len(pts) == 0 {
		return
	}
	if closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) == 1 {
		// A degenerate dot renders as a disc only under round caps.
		if st.style.Cap == CapRound && !closed {
			st.emitContour(append(arcPoints(pts[0], 0, 2*math.Pi, h, st.tol), point{pts[0].x + h, pts[0].y}))
		}
		return
	}

	if closed && len(pts) >= 3 {
		st.emitContour(st.offsetLoop(pts, h))
		st.emitContour(st.offsetLoop(reversePoints(pts), h))
		return
	}

	// Open subpath: one contour covering both sides plus the two caps.
	var contour []point
	contour = st.offsetRun(contour, pts, h)
	contour = st.cap(contour, pts, h)
	rev := reversePoints(pts)
	contour = st.offsetRun(contour, rev, h)
	contour = st.cap(contour, rev, h)
	st.emitContour(contour)
}

// emitContour pushes a closed polygon onto the soup.
func (st *Stroker) emitContour(c []point) {
	if len(c) < 2 {
		return
	}
	for i := 1; i < len(c); i++ {
		if c[i] != c[i-1] {
			st.soup.pushLine(c[i-1], c[i])
		}
	}
	if c[len(c)-1] != c[0] {
		st.soup.pushLine(c[len(c)-1], c[0])
	}
}

// offsetRun appends one side of an open polyline, offset outward by h,
// with join geometry at interior vertices.
func (st *Stroker) offsetRun(dst []point, pts []point, h float64) []point {
	for k := 0; k+1 < len(pts); k++ {
		n := pts[k+1].sub(pts[k]).normalize().perp().mul(h)
		if k > 0 {
			prevN := pts[k].sub(pts[k-1]).normalize().perp().mul(h)
			dst = st.join(dst, pts[k], prevN, n, h)
		}
		dst = append(dst, pts[k].add(n), pts[k+1].add(n))
	}
	return dst
}

// offsetLoop builds one side of a closed polyline as a standalone
// contour, with join geometry at every vertex including the wrap.
func (st *Stroker) offsetLoop(pts []point, h float64) []point {
	var dst []point
	m := len(pts)
	for k := 0; k < m; k++ {
		a, b := pts[k], pts[(k+1)%m]
		n := b.sub(a).normalize().perp().mul(h)
		if k > 0 {
			prev := pts[k-1]
			prevN := a.sub(prev).normalize().perp().mul(h)
			dst = st.join(dst, a, prevN, n, h)
		}
		dst = append(dst, a.add(n), b.add(n))
	}
	// Close the loop through the first vertex's join.
	lastN := pts[0].sub(pts[m-1]).normalize().perp().mul(h)
	firstN := pts[1].sub(pts[0]).normalize().perp().mul(h)
	dst = st.join(dst, pts[0], lastN, firstN, h)
	return dst
}

// join inserts the interior join geometry between the offset endpoint
// v+n0 of one segment and the offset start v+n1 of the next. The
// adjacent offset points themselves are appended by the segment walk.
func (st *Stroker) join(dst []point, v, n0, n1 point, h float64) []point {
	cross := n0.cross(n1)
	dot := n0.dot(n1)
	if math.Abs(cross) < 1e-12*h*h && dot > 0 {
		return dst
	}
	switch st.style.Join {
	case JoinRound:
		a0 := math.Atan2(n0.y, n0.x)
		a1 := math.Atan2(n1.y, n1.x)
		delta := normalizeAngle(a1 - a0)
		return append(dst, arcPoints(v, a0, delta, h, st.tol)...)
	case JoinMiter:
		u0 := n0.mul(1 / h)
		u1 := n1.mul(1 / h)
		bis := u0.add(u1).normalize()
		cosHalf := bis.dot(u0)
		if cosHalf > 1e-6 && 1/cosHalf <= st.style.MiterLimit {
			return append(dst, v.add(bis.mul(h/cosHalf)))
		}
		return dst
	default:
		// Bevel needs no interior point: the segment walk's two offset
		// points already span the cut edge.
		return dst
	}
}

// cap appends end-cap geometry at the last vertex of pts, bridging from
// the forward offset side to the reverse one.
func (st *Stroker) cap(dst []point, pts []point, h float64) []point {
	v := pts[len(pts)-1]
	d := v.sub(pts[len(pts)-2]).normalize()
	n := d.perp().mul(h)
	switch st.style.Cap {
	case CapSquare:
		ext := d.mul(h)
		return append(dst, v.add(n).add(ext), v.sub(n).add(ext))
	case CapRound:
		a0 := math.Atan2(n.y, n.x)
		return append(dst, arcPoints(v, a0, -math.Pi, h, st.tol)...)
	default:
		// Butt: the contour edge from v+n to v-n is the cap.
		return dst
	}
}

// arcPoints returns the interior vertices of a circular arc around v
// from startAngle sweeping by delta radians at radius h, subdivided so
// each chord stays within tol of the arc. Endpoints are excluded.
func arcPoints(v point, startAngle, delta, h, tol float64) []point {
	if h <= tol {
		return nil
	}
	step := 2 * math.Acos(1-tol/h)
	m := int(math.Ceil(math.Abs(delta) / step))
	if m > maxSubdivisions {
		m = maxSubdivisions
	}
	var out []point
	for i := 1; i < m; i++ {
		a := startAngle + delta*float64(i)/float64(m)
		out = append(out, point{v.x + h*math.Cos(a), v.y + h*math.Sin(a)})
	}
	return out
}

// normalizeAngle maps an angle to (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// dedupPoints drops consecutive duplicate vertices, which would
// otherwise produce zero-length segments with undefined normals.
func dedupPoints(pts []point) []point {
	if len(pts) == 0 {
		return nil
	}
	out := []point{pts[0]}
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

func reversePoints(pts []point) []point {
	out := make([]point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
