// Package render rasterizes a mosaic grid onto a drawable surface.
//
// The same code path serves the on-screen preview and the 300 DPI print
// export. All offsets and sizes are fractions of the tile size, except the
// one-unit square inset and the one-unit outline, so a grid rendered at two
// resolutions produces geometrically similar output.
//
// # Surfaces
//
// [Render] draws through the [Surface] interface. [Canvas] is the concrete
// implementation backed by github.com/gogpu/gg with the Go Regular font;
// tests substitute a recording surface.
//
// # Tile Shapes
//
//   - square: the cell rectangle inset by one unit on every side.
//   - circle: radius 0.85*min(w,h)/2, odd rows shifted right by one radius.
//   - triangle: base w, height (sqrt(3)/2)*w; apex up when (row+col) is
//     even, apex down otherwise.
//   - hexagon: flat-top, radius 0.9*min(w,h)/2, horizontal pitch 0.75 of
//     the hex width, vertical pitch sqrt(3)/2 of the hex height, odd rows
//     shifted right by half a hex width.
//
// # Modes
//
//   - colored: fill with the palette color, then a 1-unit black outline.
//   - numbered: black outline and the 1-based palette number, no fill.
//   - split: fill, outline and a black number.
//
// The optional legend lists every palette index present in the grid, in
// ascending order, in a panel at the top right corner.
package render
