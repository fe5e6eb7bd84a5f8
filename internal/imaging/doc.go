// Package imaging loads, prepares and encodes the raster images that surround
// the mosaic engine.
//
// The engine itself never decodes or encodes files. This package sits on the
// host side of that boundary: it decodes photographs into image.Image
// values, crops and letterboxes them onto the printable canvas, samples
// individual pixels, and encodes rendered sheets back to PNG, JPEG or BMP.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and never modify their input images.
//
// # Canvas Preparation
//
// [FitToCanvas] reproduces the upload step of the paint-by-numbers workflow:
// the photo is scaled to fit, preserving its aspect ratio, and centered on a
// white canvas of canvasInches*dpi pixels. Grid building then samples that
// canvas, so the white margins become tiles too.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - File I/O errors during image loading
//   - Encoding errors during image output
package imaging
