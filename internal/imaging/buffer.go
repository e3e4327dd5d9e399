package imaging

import (
	"fmt"
	"image"
)

// PixelBuffer is an immutable RGBA snapshot of a decoded image.
//
// The buffer owns its pixel data: it is copied out of the source image once
// at construction and never written again, so a single buffer can be shared
// by any number of concurrent analysis calls. All coordinates are 0-based
// with the origin at the top-left.
type PixelBuffer struct {
	width  int
	height int
	pix    []uint8 // RGBA, row-major, 4 bytes per pixel
}

// FromImage builds a PixelBuffer from a decoded image.
//
// Returns an error if img is nil or has a zero dimension. Native 16-bit
// samples are reduced to 8 bits.
func FromImage(img image.Image) (*PixelBuffer, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image has zero dimension (%dx%d)", width, height)
	}

	pix := make([]uint8, width*height*4)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			pix[i] = uint8(r >> 8)
			pix[i+1] = uint8(g >> 8)
			pix[i+2] = uint8(b >> 8)
			pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}

	return &PixelBuffer{width: width, height: height, pix: pix}, nil
}

// Width returns the buffer width in pixels.
func (b *PixelBuffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *PixelBuffer) Height() int { return b.height }

// At returns the 8-bit RGBA components at (x, y).
// Coordinates must be within bounds; callers iterate over Width/Height.
func (b *PixelBuffer) At(x, y int) (r, g, bl, a uint8) {
	i := (y*b.width + x) * 4
	return b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3]
}

// ColorAt returns the opaque color value at (x, y), discarding alpha.
func (b *PixelBuffer) ColorAt(x, y int) Color {
	r, g, bl, _ := b.At(x, y)
	return Color{R: r, G: g, B: bl}
}

// Contains reports whether (x, y) is inside the buffer.
func (b *PixelBuffer) Contains(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Image returns the buffer as an image.Image.
//
// The returned image shares the buffer's pixel data and must be treated as
// read-only, matching the buffer's own immutability contract.
func (b *PixelBuffer) Image() image.Image {
	return &image.RGBA{
		Pix:    b.pix,
		Stride: b.width * 4,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// SubBuffer returns a new PixelBuffer holding a copy of the given region,
// clipped to the buffer bounds. Returns nil if the clipped region is empty.
func (b *PixelBuffer) SubBuffer(x, y, w, h int) *PixelBuffer {
	rect := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, b.width, b.height))
	if rect.Empty() {
		return nil
	}
	sub, err := FromImage(cropImage(b.Image(), rect))
	if err != nil {
		return nil
	}
	return sub
}
