// Package tiling partitions flattened line segments into per-tile
// fragments on a fixed 4x4 device-pixel grid.
//
// The tiler walks each segment through every tile it crosses and emits
// one fragment per tile, holding the clipped entry and exit points as a
// pair of packed 16-bit fixed-point coordinates relative to the tile
// origin.
// Fragment order out of the tiler is unspecified; SortTiles puts the
// stream into the (path, row, column) order the strip builder requires,
// and AppendTerminators adds the global sentinels that let the builder
// run without end-of-slice checks.
//
// The stage never fails: all inputs are geometry already validated
// upstream, and every numerical hazard is handled by the fixed-point
// robustness corrections rather than reported.
package tiling
