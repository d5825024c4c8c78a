package flatten

import (
	"math"
	"testing"

	"golang.org/x/image/math/f32"
)

func TestSoupLineTo(t *testing.T) {
	var s Soup
	id := s.Begin([4]float32{1, 0, 0, 1}, 1)
	if id != 0 {
		t.Fatalf("first draw call id = %d, want 0", id)
	}
	s.MoveTo(1, 2)
	s.LineTo(5, 6)

	if len(s.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(s.Lines))
	}
	l := s.Lines[0]
	if l.PathID != 0 || l.P0 != (f32.Vec2{1, 2}) || l.P1 != (f32.Vec2{5, 6}) {
		t.Errorf("line = %+v", l)
	}
}

func TestSoupScale(t *testing.T) {
	var s Soup
	s.Begin([4]float32{1, 0, 0, 1}, 2.5)
	s.MoveTo(2, 4)
	s.LineTo(4, 8)
	l := s.Lines[0]
	if l.P0 != (f32.Vec2{5, 10}) || l.P1 != (f32.Vec2{10, 20}) {
		t.Errorf("scaled line = %+v", l)
	}
}

func TestSoupCloseEmitsOnlyWhenOpen(t *testing.T) {
	var s Soup
	s.Begin([4]float32{1, 0, 0, 1}, 1)
	s.MoveTo(0, 0)
	s.LineTo(10, 0)
	s.LineTo(10, 10)
	s.Close()
	if len(s.Lines) != 3 {
		t.Errorf("open triangle closed with %d lines, want 3", len(s.Lines))
	}

	// Already back at the start: no closing segment.
	s.Begin([4]float32{0, 1, 0, 1}, 1)
	s.MoveTo(0, 0)
	s.LineTo(10, 0)
	s.LineTo(0, 0)
	n := len(s.Lines)
	s.Close()
	if len(s.Lines) != n {
		t.Error("exactly-closed contour emitted an extra segment")
	}
}

func TestSoupDrawCallIDs(t *testing.T) {
	var s Soup
	for want := uint32(0); want < 3; want++ {
		if id := s.Begin([4]float32{0, 0, 0, 1}, 1); id != want {
			t.Errorf("draw call id = %d, want %d", id, want)
		}
		s.MoveTo(0, 0)
		s.LineTo(1, 1)
	}
	if len(s.Colors) != 3 {
		t.Errorf("got %d colors, want 3", len(s.Colors))
	}
	if s.Lines[2].PathID != 2 {
		t.Errorf("third line PathID = %d, want 2", s.Lines[2].PathID)
	}
}

func TestSoupReset(t *testing.T) {
	var s Soup
	s.Begin([4]float32{1, 1, 1, 1}, 1)
	s.MoveTo(0, 0)
	s.LineTo(1, 1)
	s.Reset()
	if len(s.Lines) != 0 || len(s.Colors) != 0 {
		t.Error("Reset left geometry behind")
	}
}

func quadAt(p0, p1, p2 point, t float64) point {
	return p0.lerp(p1, t).lerp(p1.lerp(p2, t), t)
}

func TestQuadFlatteningWithinTolerance(t *testing.T) {
	var s Soup
	s.Begin([4]float32{1, 0, 0, 1}, 1)
	p0 := point{0, 0}
	p1 := point{50, 100}
	p2 := point{100, 0}
	s.MoveTo(p0.x, p0.y)
	s.QuadTo(p1.x, p1.y, p2.x, p2.y)

	if len(s.Lines) < 2 {
		t.Fatalf("flat quad count = %d, want subdivision", len(s.Lines))
	}
	last := s.Lines[len(s.Lines)-1]
	if last.P1 != (f32.Vec2{100, 0}) {
		t.Errorf("final vertex = %v, want curve endpoint", last.P1)
	}

	// Every dense curve sample must lie within tolerance of the polyline.
	var verts []point
	verts = append(verts, p0)
	for _, l := range s.Lines {
		verts = append(verts, point{float64(l.P1[0]), float64(l.P1[1])})
	}
	for i := 0; i <= 1000; i++ {
		q := quadAt(p0, p1, p2, float64(i)/1000)
		best := math.Inf(1)
		for j := 1; j < len(verts); j++ {
			if d := distToSegment(q, verts[j-1], verts[j]); d < best {
				best = d
			}
		}
		if best > Tolerance+1e-3 {
			t.Fatalf("curve sample %v deviates %g from polyline", q, best)
		}
	}
}

func distToSegment(p, a, b point) float64 {
	ab := b.sub(a)
	tt := p.sub(a).dot(ab) / math.Max(ab.dot(ab), 1e-12)
	tt = math.Max(0, math.Min(1, tt))
	return p.sub(a.add(ab.mul(tt))).length()
}

func TestCubicFlatteningEndpoints(t *testing.T) {
	var s Soup
	s.Begin([4]float32{1, 0, 0, 1}, 1)
	s.MoveTo(0, 0)
	s.CubicTo(30, 90, 70, 90, 100, 0)
	if len(s.Lines) < 2 {
		t.Fatalf("flat cubic count = %d, want subdivision", len(s.Lines))
	}
	if got := s.Lines[0].P0; got != (f32.Vec2{0, 0}) {
		t.Errorf("first vertex = %v, want curve start", got)
	}
	if got := s.Lines[len(s.Lines)-1].P1; got != (f32.Vec2{100, 0}) {
		t.Errorf("final vertex = %v, want curve endpoint", got)
	}
	// Polyline is connected.
	for i := 1; i < len(s.Lines); i++ {
		if s.Lines[i].P0 != s.Lines[i-1].P1 {
			t.Fatalf("polyline gap between segments %d and %d", i-1, i)
		}
	}
}

func TestLineIsNotSubdivided(t *testing.T) {
	// A degenerate quad with its control point on the chord needs no
	// subdivision.
	var s Soup
	s.Begin([4]float32{1, 0, 0, 1}, 1)
	s.MoveTo(0, 0)
	s.QuadTo(50, 50, 100, 100)
	if len(s.Lines) != 1 {
		t.Errorf("collinear quad flattened to %d lines, want 1", len(s.Lines))
	}
}

// signedArea sums the cross products of a line batch, which equals
// twice the enclosed area for closed geometry.
func signedArea(s *Soup) float64 {
	var sum float64
	for _, l := range s.Lines {
		sum += float64(l.P0[0])*float64(l.P1[1]) - float64(l.P1[0])*float64(l.P0[1])
	}
	return sum / 2
}

func TestStrokerButtCapArea(t *testing.T) {
	// A straight stroked segment with butt caps is a rectangle:
	// length x width.
	var s Soup
	s.Begin([4]float32{1, 0, 0, 1}, 1)
	st := NewStroker(&s, StrokeStyle{Width: 10, Cap: CapButt, Join: JoinBevel})
	st.MoveTo(10, 20)
	st.LineTo(110, 20)
	st.Finish()

	got := math.Abs(signedArea(&s))
	want := 100.0 * 10
	if math.Abs(got-want) > 1 {
		t.Errorf("stroke outline area = %g, want %g", got, want)
	}
}

func TestStrokerRoundCapArea(t *testing.T) {
	// Round caps add a disc of the stroke radius.
	var s Soup
	s.Begin([4]float32{1, 0, 0, 1}, 1)
	st := NewStroker(&s, StrokeStyle{Width: 10, Cap: CapRound, Join: JoinRound})
	st.MoveTo(10, 20)
	st.LineTo(110, 20)
	st.Finish()

	// The chord approximation of the caps undershoots the disc area, so
	// the bound is loose on the low side.
	got := math.Abs(signedArea(&s))
	want := 100.0*10 + math.Pi*25
	if got > want+1 || got < want-8 {
		t.Errorf("stroke outline area = %g, want %g", got, want)
	}
}

func TestStrokerClosedPathTwoContours(t *testing.T) {
	// Stroking a closed square yields an annulus: outer area minus inner.
	var s Soup
	s.Begin([4]float32{1, 0, 0, 1}, 1)
	st := NewStroker(&s, StrokeStyle{Width: 4, Join: JoinMiter, MiterLimit: 10})
	st.MoveTo(20, 20)
	st.LineTo(80, 20)
	st.LineTo(80, 80)
	st.LineTo(20, 80)
	st.Close()

	// Both offset loops wind the same way relative to their role, so the
	// net signed area is outer minus inner.
	got := math.Abs(signedArea(&s))
	outer := 64.0 * 64
	inner := 56.0 * 56
	if math.Abs(got-(outer-inner)) > 2 {
		t.Errorf("annulus area = %g, want %g", got, outer-inner)
	}
}

func TestStrokerDotRoundCap(t *testing.T) {
	var s Soup
	s.Begin([4]float32{1, 0, 0, 1}, 1)
	st := NewStroker(&s, StrokeStyle{Width: 8, Cap: CapRound})
	st.MoveTo(50, 50)
	st.Finish()

	got := math.Abs(signedArea(&s))
	want := math.Pi * 16
	if got > want+1 || got < want-6 {
		t.Errorf("dot area = %g, want %g (disc of radius 4)", got, want)
	}
}

func TestStrokerZeroWidthEmitsNothing(t *testing.T) {
	var s Soup
	s.Begin([4]float32{1, 0, 0, 1}, 1)
	st := NewStroker(&s, StrokeStyle{Width: 0})
	st.MoveTo(0, 0)
	st.LineTo(10, 10)
	st.Finish()
	if len(s.Lines) != 0 {
		t.Errorf("zero-width stroke emitted %d lines", len(s.Lines))
	}
}

func TestToleranceOverride(t *testing.T) {
	flatten := func(tol float64) int {
		var s Soup
		s.Tolerance = tol
		s.Begin([4]float32{1, 0, 0, 1}, 1)
		s.MoveTo(0, 0)
		s.QuadTo(50, 100, 100, 0)
		return len(s.Lines)
	}
	def := flatten(0)
	coarse := flatten(4)
	fine := flatten(0.01)
	if coarse >= def {
		t.Errorf("coarse tolerance produced %d lines, default %d", coarse, def)
	}
	if fine <= def {
		t.Errorf("fine tolerance produced %d lines, default %d", fine, def)
	}
}
