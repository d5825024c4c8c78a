package sparse

import "github.com/gogpu/sparse/internal/fine"

// WideTileWidth is the width in pixels of one wide tile, re-exported
// from the fine rasterizer that defines it.
const WideTileWidth = fine.WideTileWidth

// Cmd is one drawing command recorded into a wide tile. Commands are
// replayed in order by a fine-raster kernel.
type Cmd interface {
	isCmd()
}

// CmdFill blends a solid color over a span of wide-tile columns.
type CmdFill struct {
	// X is the starting column within the wide tile.
	X uint32
	// Width is the span width in columns.
	Width uint32
	// Color is the premultiplied fill color.
	Color [4]float32
}

func (CmdFill) isCmd() {}

// CmdStrip blends a color through per-pixel coverage over a span of
// wide-tile columns.
type CmdStrip struct {
	// X is the starting column within the wide tile.
	X uint32
	// Width is the span width in columns.
	Width uint32
	// AlphaIdx is the span's starting index in the frame's alpha buffer,
	// one packed coverage word per column.
	AlphaIdx uint32
	// Color is the premultiplied source color.
	Color [4]float32
}

func (CmdStrip) isCmd() {}

// WideTile is the command buffer for one 256x4 pixel region. Commands
// accumulate during strip processing and are replayed by a kernel during
// fine rasterization.
type WideTile struct {
	// Background is the premultiplied color the tile is cleared to
	// before any command runs.
	Background [4]float32
	// Cmds are the recorded commands, in draw order.
	Cmds []Cmd
}

// Fill records a solid fill. A fully opaque fill covering the whole
// tile makes everything beneath it invisible, so it discards the
// recorded commands and becomes the new background instead.
func (t *WideTile) Fill(x, width uint32, color [4]float32) {
	if x == 0 && width == WideTileWidth && color[3] == 1 {
		t.Background = color
		t.Cmds = t.Cmds[:0]
		return
	}
	t.Cmds = append(t.Cmds, CmdFill{X: x, Width: width, Color: color})
}

// PushStrip records a coverage strip command.
func (t *WideTile) PushStrip(x, width, alphaIdx uint32, color [4]float32) {
	t.Cmds = append(t.Cmds, CmdStrip{X: x, Width: width, AlphaIdx: alphaIdx, Color: color})
}

// reset returns the tile to an empty state with the given background.
func (t *WideTile) reset(background [4]float32) {
	t.Background = background
	t.Cmds = t.Cmds[:0]
}
