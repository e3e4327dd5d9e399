// Package imaging provides the pixel-level primitives of the analysis
// pipeline: the immutable PixelBuffer snapshot, the palette analyzer, and
// the Sobel edge detector.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left:
// X increases rightward, Y increases downward.
//
// # Purity and Thread Safety
//
// Every analyzer in this package is a pure function of its input buffer.
// A PixelBuffer is write-once: its pixel data is copied out of the source
// image at construction and never mutated, so one buffer may feed any
// number of concurrent ExtractPalette/DetectEdges calls. The BufferCache
// is safe for concurrent use.
//
// # Color Representation
//
// Colors are 24-bit RGB values that serialize as "#rrggbb" hex strings;
// the JSON round trip is lossless. Alpha is consumed at sampling time
// (translucent samples are skipped) and never stored in a Color.
package imaging
