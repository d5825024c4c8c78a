package tiling

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// oneMinusULP is the largest float32 strictly below 1.0. The crossing
// fraction b is clamped to it so floor(a*i+b) can never reach the next
// tile column a step early.
const oneMinusULP = 0.99999994

// robustEpsilon is the slope nudge applied when accumulated round-off in
// the crossing function would produce a column count inconsistent with
// the span of the segment.
const robustEpsilon = 2e-7

// span returns the number of tile rows or columns touched by the
// interval [a, b], at least 1.
func span(a, b float32) uint32 {
	return uint32(math32.Max(math32.Ceil(math32.Max(a, b))-math32.Floor(math32.Min(a, b)), 1))
}

// MakeTiles partitions every line segment into per-tile fragments and
// appends them to buf, which is cleared first; the tiler owns the
// fragment buffer. Fragments are produced in walk order, not sorted.
// Two trailing sentinel fragments terminate the stream.
//
// Segments are walked top to bottom by incrementally evaluating the
// crossing function z(i) = a*i + b, whose floor decides at each step
// whether the walk advances one tile column or one tile row. Coordinates
// must be finite; NaN input is undefined behavior and must be rejected
// upstream.
//
//nolint:gocognit,gocyclo,cyclop,funlen // single tight loop, splitting hurts clarity
func MakeTiles(lines []Line, buf []Tile) []Tile {
	buf = buf[:0]
	const tileRecip = 1.0 / TileWidth
	for _, line := range lines {
		p0, p1 := line.P0, line.P1
		isDown := p1[1] >= p0[1]
		orig0, orig1 := p0, p1
		if !isDown {
			orig0, orig1 = p1, p0
		}
		s0 := f32.Vec2{orig0[0] * tileRecip, orig0[1] * tileRecip}
		s1 := f32.Vec2{orig1[0] * tileRecip, orig1[1] * tileRecip}
		countX := span(s0[0], s1[0]) - 1
		count := countX + span(s0[1], s1[1])

		dx := math32.Abs(s1[0] - s0[0])
		dy := s1[1] - s0[1]
		if dx+dy == 0 {
			// Zero-length after ordering: contributes nothing.
			continue
		}
		if dy == 0 && math32.Floor(s0[1]) == s0[1] {
			// Horizontal on a tile row boundary: no coverage, no winding.
			continue
		}
		idxdy := 1 / (dx + dy)
		a := dx * idxdy
		isPositiveSlope := s1[0] >= s0[0]
		sign := float32(1)
		if !isPositiveSlope {
			sign = -1
		}
		xt0 := math32.Floor(s0[0] * sign)
		c := s0[0]*sign - xt0
		y0 := math32.Floor(s0[1])
		ytop := y0 + 1
		if s0[1] == s1[1] {
			ytop = math32.Ceil(s0[1])
		}
		b := math32.Min((dy*c+dx*(ytop-s0[1]))*idxdy, oneMinusULP)

		// Round-off in z(i) can over- or under-count columns by one,
		// which would push a fragment outside [0, TileWidth]. Detect the
		// inconsistency at the last step and tilt the slope one epsilon
		// the other way.
		robustErr := math32.Floor(a*(float32(count)-1)+b) - float32(countX)
		if robustErr != 0 {
			a -= math32.Copysign(robustEpsilon, robustErr)
		}
		x0 := xt0 * sign
		if !isPositiveSlope {
			x0 -= 1
		}

		lastZ := math32.Floor(a*(-1) + b)
		for i := uint32(0); i < count; i++ {
			zf := a*float32(i) + b
			z := math32.Floor(zf)
			y := int32(y0 + float32(i) - z)
			x := int32(x0 + sign*z)

			tileX0 := float32(x) * TileWidth
			tileY0 := float32(y) * TileHeight
			tileX1 := tileX0 + TileWidth
			tileY1 := tileY0 + TileHeight

			xy0, xy1 := orig0, orig1
			if i > 0 {
				if z == lastZ {
					// Entered through the top edge.
					xt := xy0[0] + (xy1[0]-xy0[0])*(tileY0-xy0[1])/(xy1[1]-xy0[1])
					xt = clampf(xt, tileX0+1e-3, tileX1)
					xy0 = f32.Vec2{xt, tileY0}
				} else {
					// Entered through the left edge for positive slopes,
					// the right edge for negative ones.
					xClip := tileX0
					if !isPositiveSlope {
						xClip = tileX1
					}
					yt := xy0[1] + (xy1[1]-xy0[1])*(xClip-xy0[0])/(xy1[0]-xy0[0])
					yt = clampf(yt, tileY0+1e-3, tileY1)
					xy0 = f32.Vec2{xClip, yt}
				}
			}
			if i < count-1 {
				zNext := math32.Floor(a*(float32(i)+1) + b)
				if z == zNext {
					// Exits through the bottom edge.
					xt := xy0[0] + (xy1[0]-xy0[0])*(tileY1-xy0[1])/(xy1[1]-xy0[1])
					xt = clampf(xt, tileX0+1e-3, tileX1)
					xy1 = f32.Vec2{xt, tileY1}
				} else {
					xClip := tileX1
					if !isPositiveSlope {
						xClip = tileX0
					}
					yt := xy0[1] + (xy1[1]-xy0[1])*(xClip-xy0[0])/(xy1[0]-xy0[0])
					yt = clampf(yt, tileY0+1e-3, tileY1)
					xy1 = f32.Vec2{xClip, yt}
				}
			}

			fp0 := f32.Vec2{xy0[0] - tileX0, xy0[1] - tileY0}
			fp1 := f32.Vec2{xy1[0] - tileX0, xy1[1] - tileY0}
			fp0, fp1 = correctEdges(fp0, fp1)
			if !isDown {
				fp0, fp1 = fp1, fp0
			}

			buf = append(buf, Tile{
				PathID: line.PathID,
				X:      uint16(x),
				Y:      uint16(y),
				P0:     PackPoint(fp0),
				P1:     PackPoint(fp1),
			})
			lastZ = z
		}
	}
	// This particular pair of sentinels also generates a trailing
	// sentinel strip downstream.
	buf = append(buf,
		Tile{PathID: tilerPathID, X: sentinelX - 2, Y: sentinelY},
		Tile{PathID: tilerPathID, X: sentinelX, Y: sentinelY},
	)
	return buf
}

// correctEdges applies the numerical robustness corrections to a
// fragment's tile-relative endpoints. A fragment pinned to the left tile
// edge with vertical extent from the tile top is promoted to cover the
// whole tile; one pinned to the left edge without reaching the top is
// pushed one fixed-point unit off the edge so it contributes no
// coverage. An exact zero x is meaningful downstream (left-edge entry
// for the winding bookkeeping), so all other integer x values are pulled
// one unit inward.
func correctEdges(p0, p1 f32.Vec2) (f32.Vec2, f32.Vec2) {
	const epsilon = PackEpsilon
	if p0[0] < epsilon {
		switch {
		case p1[0] < epsilon:
			p0[0] = epsilon
			if p0[1] < epsilon {
				// Both endpoints on the left edge, starting at the top:
				// the fragment acts as a full-height left-edge crossing.
				p1[0] = epsilon
				p1[1] = TileHeight
			} else {
				// Both endpoints on the left edge, below the top: the
				// fragment must not contribute at all.
				p1[0] = 2 * epsilon
				p1[1] = p0[1]
			}
		case p0[1] < epsilon:
			p0[0] = epsilon
		}
	} else if p1[0] < epsilon && p1[1] < epsilon {
		p1[0] = epsilon
	}
	if p0[0] == math32.Floor(p0[0]) && p0[0] != 0 {
		p0[0] -= epsilon
	}
	if p1[0] == math32.Floor(p1[0]) && p1[0] != 0 {
		p1[0] -= epsilon
	}
	return p0, p1
}

func clampf(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
