// Package mosaic turns a decoded photograph into a paint-by-numbers grid.
//
// The grid builder derives the grid size from physical canvas settings,
// samples the image once per cell and assigns each cell the index of its
// closest palette color:
//
//	gridWidth  = floor(canvasWidth  * 25.4 / tileSize)
//	gridHeight = floor(canvasHeight * 25.4 / tileSize)
//
// Canvas dimensions are in inches and tile size in millimetres. Given the
// same pixels, settings and palette, [Build] always returns the same
// [Result].
//
// # Sampling
//
// By default the source is resized to grid resolution with nearest-neighbor
// point sampling. [SamplingArea] averages the pixels under each tile with a
// box filter instead.
//
// # Unused Settings
//
// AntiAliasing and Dithering are carried for wire compatibility and have no
// effect on the grid.
package mosaic
