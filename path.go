package sparse

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current subpath
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: Pt(x, y)})
	p.current = Pt(x, y)
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
	p.current = Pt(x, y)
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Rectangle adds a rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Circle adds a circle to the path, approximated by four cubic arcs.
func (p *Path) Circle(cx, cy, r float64) {
	// Cubic control distance for a quarter circle.
	const k = 0.5519150244935105707435627
	d := r * k
	p.MoveTo(cx+r, cy)
	p.CubicTo(cx+r, cy+d, cx+d, cy+r, cx, cy+r)
	p.CubicTo(cx-d, cy+r, cx-r, cy+d, cx-r, cy)
	p.CubicTo(cx-r, cy-d, cx-d, cy-r, cx, cy-r)
	p.CubicTo(cx+d, cy-r, cx+r, cy-d, cx+r, cy)
	p.Close()
}

// Ellipse adds an axis-aligned ellipse to the path.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	const k = 0.5519150244935105707435627
	dx, dy := rx*k, ry*k
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+dy, cx+dx, cy+ry, cx, cy+ry)
	p.CubicTo(cx-dx, cy+ry, cx-rx, cy+dy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-dy, cx-dx, cy-ry, cx, cy-ry)
	p.CubicTo(cx+dx, cy-ry, cx+rx, cy-dy, cx+rx, cy)
	p.Close()
}

// Arc adds a circular arc around (cx, cy) from startAngle spanning
// sweep radians, connecting from the current point if one exists.
func (p *Path) Arc(cx, cy, r, startAngle, sweep float64) {
	// One cubic per quarter turn keeps the approximation tight.
	segments := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if segments < 1 {
		segments = 1
	}
	da := sweep / float64(segments)
	k := 4.0 / 3.0 * math.Tan(da/4)

	a := startAngle
	x0, y0 := cx+r*math.Cos(a), cy+r*math.Sin(a)
	if len(p.elements) == 0 {
		p.MoveTo(x0, y0)
	} else {
		p.LineTo(x0, y0)
	}
	for i := 0; i < segments; i++ {
		a1 := a + da
		x1, y1 := cx+r*math.Cos(a1), cy+r*math.Sin(a1)
		p.CubicTo(
			x0-r*k*math.Sin(a), y0+r*k*math.Cos(a),
			x1+r*k*math.Sin(a1), y1-r*k*math.Cos(a1),
			x1, y1,
		)
		a, x0, y0 = a1, x1, y1
	}
}
