package sparse

import (
	"errors"
	"fmt"

	"github.com/gogpu/sparse/internal/fine"
	"github.com/gogpu/sparse/internal/flatten"
	"github.com/gogpu/sparse/internal/parallel"
	"github.com/gogpu/sparse/internal/strips"
	"github.com/gogpu/sparse/internal/tiling"
)

// ErrNotSupported reports a path element the renderer does not
// understand.
var ErrNotSupported = errors.New("sparse: unsupported path element")

// Context is a drawing context for sparse-strip rendering at a fixed
// size in device pixels.
//
// Draw calls (Fill, Stroke) accumulate flattened geometry; the whole
// batch is rasterized by RenderToPixmap. A Context is not safe for
// concurrent use, but distinct Contexts are independent.
type Context struct {
	width  int
	height int
	scale  float64

	background [4]float32
	soup       flatten.Soup

	// Per-frame buffers, reused across renders.
	tiles  []tiling.Tile
	strips []strips.Strip
	alphas []uint32
	wides  []WideTile

	mode    KernelMode
	pool    *parallel.Pool
	kernels []fine.Kernel
}

// NewContext creates a rendering context for a width x height pixel
// output.
func NewContext(width, height int, options ...ContextOption) *Context {
	opts := defaultOptions()
	for _, opt := range options {
		opt(&opts)
	}

	c := &Context{
		width:  width,
		height: height,
		scale:  1,
		mode:   opts.kernelMode,
	}
	c.soup.Tolerance = opts.tolerance

	workers := opts.workers
	if workers != 1 {
		c.pool = parallel.NewPool(workers)
		workers = c.pool.Workers()
	}
	c.kernels = make([]fine.Kernel, max(workers, 1))

	Logger().Info("sparse: context created",
		"width", width, "height", height,
		"kernel", c.mode.String(), "workers", len(c.kernels))
	return c
}

// Close releases the context's render workers. The context must not be
// used afterwards. Close is a no-op for single-threaded contexts.
func (c *Context) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Width returns the context width in pixels.
func (c *Context) Width() int { return c.width }

// Height returns the context height in pixels.
func (c *Context) Height() int { return c.height }

// SetScale sets the path-to-device scale factor applied to subsequent
// draw calls. Geometry already submitted is unaffected.
func (c *Context) SetScale(scale float64) {
	if scale > 0 {
		c.scale = scale
	}
}

// Reset discards all accumulated draw calls and restores a transparent
// background.
func (c *Context) Reset() {
	c.soup.Reset()
	c.background = [4]float32{}
}

// ClearBackground discards all accumulated draw calls and sets the
// background color the next render starts from.
func (c *Context) ClearBackground(col RGBA) {
	c.soup.Reset()
	c.background = col.premulVec()
}

// Fill draws a path filled with a solid color using the nonzero winding
// rule. Subpaths are closed implicitly.
func (c *Context) Fill(path *Path, col RGBA) error {
	c.soup.Begin(col.premulVec(), c.scale)
	open := false
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			if open {
				c.soup.Close()
			}
			c.soup.MoveTo(e.Point.X, e.Point.Y)
			open = true
		case LineTo:
			c.soup.LineTo(e.Point.X, e.Point.Y)
		case QuadTo:
			c.soup.QuadTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			c.soup.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			c.soup.Close()
		default:
			return fmt.Errorf("fill: %w", ErrNotSupported)
		}
	}
	if open {
		c.soup.Close()
	}
	return nil
}

// Stroke draws a path outlined with a solid color and the given stroke
// style. Subpaths stay open unless explicitly closed.
func (c *Context) Stroke(path *Path, col RGBA, stroke Stroke) error {
	c.soup.Begin(col.premulVec(), c.scale)
	st := flatten.NewStroker(&c.soup, strokeStyle(stroke))
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			st.MoveTo(e.Point.X, e.Point.Y)
		case LineTo:
			st.LineTo(e.Point.X, e.Point.Y)
		case QuadTo:
			st.QuadTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			st.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			st.Close()
		default:
			return fmt.Errorf("stroke: %w", ErrNotSupported)
		}
	}
	st.Finish()
	return nil
}

// strokeStyle maps the public stroke configuration to the flattener's.
func strokeStyle(s Stroke) flatten.StrokeStyle {
	out := flatten.StrokeStyle{Width: s.Width, MiterLimit: s.MiterLimit}
	switch s.Cap {
	case LineCapRound:
		out.Cap = flatten.CapRound
	case LineCapSquare:
		out.Cap = flatten.CapSquare
	default:
		out.Cap = flatten.CapButt
	}
	switch s.Join {
	case LineJoinRound:
		out.Join = flatten.JoinRound
	case LineJoinBevel:
		out.Join = flatten.JoinBevel
	default:
		out.Join = flatten.JoinMiter
	}
	return out
}

// RenderToPixmap rasterizes all accumulated draw calls into pm, which
// must match the context dimensions. The accumulated geometry is kept,
// so the same batch can be rendered again.
func (c *Context) RenderToPixmap(pm *Pixmap) error {
	if pm.Width() != c.width || pm.Height() != c.height {
		return fmt.Errorf("sparse: pixmap size %dx%d does not match context %dx%d",
			pm.Width(), pm.Height(), c.width, c.height)
	}

	c.tiles = tiling.MakeTiles(c.soup.Lines, c.tiles[:0])
	tiling.SortTiles(c.tiles)
	c.tiles = tiling.AppendTerminators(c.tiles)
	c.strips, c.alphas = strips.Render(c.tiles, c.strips[:0], c.alphas[:0])

	c.buildWideTiles()

	Logger().Debug("sparse: frame rasterized",
		"lines", len(c.soup.Lines),
		"tiles", len(c.tiles),
		"strips", len(c.strips),
		"alphaWords", len(c.alphas))

	c.fineRender(pm)
	return nil
}

// wideGrid returns the wide-tile grid dimensions for the context size.
func (c *Context) wideGrid() (cols, rows int) {
	cols = (c.width + WideTileWidth - 1) / WideTileWidth
	rows = (c.height + fine.StripHeight - 1) / fine.StripHeight
	return cols, rows
}

// buildWideTiles converts the frame's strip list into per-tile command
// buffers. Strips are already in draw-call order, so commands replay
// back-to-front within each tile.
func (c *Context) buildWideTiles() {
	cols, rows := c.wideGrid()
	n := cols * rows
	if cap(c.wides) < n {
		c.wides = make([]WideTile, n)
	}
	c.wides = c.wides[:n]
	for i := range c.wides {
		c.wides[i].reset(c.background)
	}

	for i := 0; i+1 < len(c.strips); i++ {
		s := &c.strips[i]
		next := &c.strips[i+1]
		y := int(s.RowY())
		if y >= rows {
			// Off-viewport row; strips of later draw calls may still be
			// visible, so keep scanning.
			continue
		}
		color := c.soup.Colors[s.PathID]

		// Coverage run.
		x0 := s.X()
		x1 := x0 + (next.Col - s.Col)
		for x := x0; x < x1; {
			tx := int(x) / WideTileWidth
			if tx >= cols {
				break
			}
			t := &c.wides[y*cols+tx]
			lo := x % WideTileWidth
			w := min(WideTileWidth-lo, x1-x)
			t.PushStrip(lo, w, s.Col+(x-x0), color)
			x += w
		}

		// A nonzero winding carried into the next strip of the same row
		// means the span between the two strips is interior: fill it.
		if next.Winding != 0 && next.PathID == s.PathID && next.RowY() == s.RowY() {
			for x, fx1 := x1, next.X(); x < fx1; {
				tx := int(x) / WideTileWidth
				if tx >= cols {
					break
				}
				t := &c.wides[y*cols+tx]
				lo := x % WideTileWidth
				w := min(WideTileWidth-lo, fx1-x)
				t.Fill(lo, w, color)
				x += w
			}
		}
	}
}

// fineRender replays every wide tile's command buffer through a kernel
// and packs the result into the pixmap. With a worker pool, tiles are
// distributed across workers; each worker reuses its own kernel, and
// tiles map to disjoint pixel regions, so no synchronization on the
// output is needed.
func (c *Context) fineRender(pm *Pixmap) {
	cols, _ := c.wideGrid()
	data := pm.Data()

	renderTile := func(worker, idx int) {
		k := c.kernels[worker]
		if k == nil {
			k = fine.Select(c.mode.fineMode())
			c.kernels[worker] = k
		}
		t := &c.wides[idx]
		k.Clear(t.Background)
		for _, cmd := range t.Cmds {
			switch cmd := cmd.(type) {
			case CmdFill:
				k.Fill(int(cmd.X), int(cmd.Width), cmd.Color)
			case CmdStrip:
				k.Strip(int(cmd.X), int(cmd.Width), c.alphas[cmd.AlphaIdx:], cmd.Color)
			}
		}
		k.Pack(data, c.width, c.height, idx%cols, idx/cols)
	}

	if c.pool != nil {
		c.pool.Run(len(c.wides), renderTile)
		return
	}
	for i := range c.wides {
		renderTile(0, i)
	}
}
