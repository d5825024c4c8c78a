package tiling

import "golang.org/x/image/math/f32"

// Line is one flattened line segment in device-pixel coordinates,
// tagged with the draw call it belongs to. PathID indexes the color
// table built alongside the line soup.
type Line struct {
	PathID uint32
	P0, P1 f32.Vec2
}

// NewLine creates a line segment for the given draw call.
func NewLine(pathID uint32, p0, p1 f32.Vec2) Line {
	return Line{PathID: pathID, P0: p0, P1: p1}
}
