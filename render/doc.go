// Package render draws fingerpaint markers and strokes with gg.
//
// Two surfaces are provided:
//
//   - Canvas draws immediately into a gg.Context and can be saved as PNG.
//   - Recorder captures the drawing as a gg recording that can be played
//     back to any registered recording backend; the raster backend is
//     always available.
//
// Both implement fingerpaint.Surface.
package render
