// Package sparse is a CPU renderer for 2D vector graphics built on
// sparse strips.
//
// Paths are flattened to line segments, binned into 4x4 pixel tiles,
// and reduced to horizontal strips of anti-aliased coverage. Only tiles
// a path actually crosses are ever touched, so cost scales with the
// length of rendered outlines rather than their bounding boxes. A final
// fine-rasterization stage composites strips into wide tiles using
// scalar or vectorized kernels selected at runtime.
//
// The entry point is [NewContext]:
//
//	ctx := sparse.NewContext(768, 512)
//	path := sparse.NewPath()
//	path.MoveTo(50, 50)
//	path.LineTo(700, 80)
//	path.LineTo(200, 400)
//	path.Close()
//	ctx.Fill(path, sparse.RGBA2(0.2, 0.5, 0.9, 1))
//
//	pm := sparse.NewPixmap(768, 512)
//	ctx.RenderToPixmap(pm)
//	_ = pm.SavePNG("out.png")
//
// Rendering is deterministic: the same draw calls always produce the
// same bytes, regardless of kernel mode or worker count.
package sparse
