// Package flatten turns vector path outlines into the line soup the
// tiler consumes.
//
// A Soup accumulates flattened line segments and one premultiplied color
// per draw call, batching any number of fills and strokes before tiling.
// Curves are lowered to line polylines by adaptive subdivision at a
// fixed device-space tolerance; strokes are expanded to fillable
// outlines first. The Soup never clears itself between draw calls; the
// render driver owns its lifetime.
package flatten

import (
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/sparse/internal/tiling"
)

// Tolerance is the flattening tolerance in device pixels. Curves deviate
// from their polyline approximation by at most this much after scaling.
const Tolerance = 0.25

type point struct {
	x, y float64
}

// Soup is the line-soup accumulator for a batch of draw calls.
type Soup struct {
	Lines  []tiling.Line
	Colors [][4]float32

	// Tolerance overrides the device-space flattening tolerance when
	// positive; zero means the package default.
	Tolerance float64

	pathID uint32
	scale  float64
	tol    float64
	start  point
	cur    point
	open   bool
}

// Reset discards all accumulated geometry and colors, retaining buffer
// capacity for the next frame.
func (s *Soup) Reset() {
	s.Lines = s.Lines[:0]
	s.Colors = s.Colors[:0]
	s.open = false
}

// Begin starts a new fill draw call with the given premultiplied color
// and path-to-device scale, and returns its path index into the color
// table. Geometry added until the next Begin belongs to this draw call.
func (s *Soup) Begin(color [4]float32, scale float64) uint32 {
	s.pathID = uint32(len(s.Colors))
	s.Colors = append(s.Colors, color)
	s.scale = scale
	tol := s.Tolerance
	if tol <= 0 {
		tol = Tolerance
	}
	s.tol = tol / scale
	s.start = point{}
	s.cur = point{}
	s.open = false
	return s.pathID
}

// MoveTo starts a new subpath at (x, y) in path space.
func (s *Soup) MoveTo(x, y float64) {
	s.start = point{x, y}
	s.cur = s.start
	s.open = true
}

// LineTo appends a straight segment from the current point to (x, y).
func (s *Soup) LineTo(x, y float64) {
	p := point{x, y}
	s.pushLine(s.cur, p)
	s.cur = p
}

// QuadTo lowers a quadratic Bezier segment to lines at the soup's
// tolerance and appends them.
func (s *Soup) QuadTo(cx, cy, x, y float64) {
	flattenQuad(s.cur, point{cx, cy}, point{x, y}, s.tol, s.LineTo)
}

// CubicTo lowers a cubic Bezier segment to lines at the soup's tolerance
// and appends them.
func (s *Soup) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	flattenCubic(s.cur, point{c1x, c1y}, point{c2x, c2y}, point{x, y}, s.tol, s.LineTo)
}

// Close closes the current subpath. The closing segment is emitted only
// when the subpath's start and current points still differ after
// scaling, so exactly-closed contours produce no zero-length segment.
func (s *Soup) Close() {
	if !s.open {
		return
	}
	if s.devicePoint(s.cur) != s.devicePoint(s.start) {
		s.pushLine(s.cur, s.start)
	}
	s.cur = s.start
}

// pushLine appends one device-space segment for the current draw call.
func (s *Soup) pushLine(p0, p1 point) {
	s.Lines = append(s.Lines, tiling.NewLine(s.pathID, s.devicePoint(p0), s.devicePoint(p1)))
}

func (s *Soup) devicePoint(p point) f32.Vec2 {
	return f32.Vec2{float32(p.x * s.scale), float32(p.y * s.scale)}
}

func (p point) add(q point) point   { return point{p.x + q.x, p.y + q.y} }
func (p point) sub(q point) point   { return point{p.x - q.x, p.y - q.y} }
func (p point) mul(t float64) point { return point{p.x * t, p.y * t} }

func (p point) lerp(q point, t float64) point {
	return point{p.x + (q.x-p.x)*t, p.y + (q.y-p.y)*t}
}

func (p point) length() float64       { return math.Hypot(p.x, p.y) }
func (p point) cross(q point) float64 { return p.x*q.y - p.y*q.x }
func (p point) dot(q point) float64   { return p.x*q.x + p.y*q.y }

func (p point) normalize() point {
	l := p.length()
	if l < 1e-12 {
		return point{}
	}
	return point{p.x / l, p.y / l}
}

// perp returns p rotated 90 degrees clockwise in the y-down device
// coordinate system.
func (p point) perp() point { return point{-p.y, p.x} }
