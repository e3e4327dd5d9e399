// Package render produces debug visualizations of pipeline output:
// rendered edge maps and element-bounds overlays, returned as base64 PNG
// the same way the crop tool returns image data.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/anthonynsimon/bild/transform"

	"github.com/uiscan/uiscan/internal/detection"
	"github.com/uiscan/uiscan/internal/imaging"
)

// Result contains a rendered image encoded as base64 PNG.
type Result struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// outline colors per element type family; anything unlisted gets gray.
var typeColors = map[detection.ElementType]color.RGBA{
	detection.TypeButton:    {R: 239, G: 68, B: 68, A: 255},
	detection.TypeText:      {R: 34, G: 197, B: 94, A: 255},
	detection.TypeInput:     {R: 59, G: 130, B: 246, A: 255},
	detection.TypeCard:      {R: 168, G: 85, B: 247, A: 255},
	detection.TypeImage:     {R: 245, G: 158, B: 11, A: 255},
	detection.TypeContainer: {R: 14, G: 165, B: 233, A: 255},
}

var fallbackOutline = color.RGBA{R: 107, G: 114, B: 128, A: 255}

// EdgeMap renders an edge map as a grayscale PNG.
func EdgeMap(m *imaging.EdgeMap) (*Result, error) {
	return encode(m.Render())
}

// Overlay draws element bounding boxes over the source buffer and returns
// the annotated image, downscaled to maxWidth when the buffer is wider.
func Overlay(buf *imaging.PixelBuffer, elements []detection.DetectedElement, maxWidth int) (*Result, error) {
	bounds := image.Rect(0, 0, buf.Width(), buf.Height())
	annotated := image.NewRGBA(bounds)
	draw.Draw(annotated, bounds, buf.Image(), image.Point{}, draw.Src)

	for _, elem := range elements {
		outline, ok := typeColors[elem.Type]
		if !ok {
			outline = fallbackOutline
		}
		drawRect(annotated, elem.Bounds, outline)
	}

	var out image.Image = annotated
	if maxWidth > 0 && buf.Width() > maxWidth {
		scale := float64(maxWidth) / float64(buf.Width())
		out = transform.Resize(annotated, maxWidth, int(float64(buf.Height())*scale), transform.Linear)
	}

	return encode(out)
}

// drawRect traces a one-pixel rectangle outline, clipped to the image.
func drawRect(img *image.RGBA, r detection.Rectangle, c color.RGBA) {
	x2 := r.X + r.Width
	y2 := r.Y + r.Height
	bounds := img.Bounds()

	for x := r.X; x <= x2; x++ {
		if x < bounds.Min.X || x >= bounds.Max.X {
			continue
		}
		if r.Y >= bounds.Min.Y && r.Y < bounds.Max.Y {
			img.SetRGBA(x, r.Y, c)
		}
		if y2 >= bounds.Min.Y && y2 < bounds.Max.Y {
			img.SetRGBA(x, y2, c)
		}
	}
	for y := r.Y; y <= y2; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		if r.X >= bounds.Min.X && r.X < bounds.Max.X {
			img.SetRGBA(r.X, y, c)
		}
		if x2 >= bounds.Min.X && x2 < bounds.Max.X {
			img.SetRGBA(x2, y, c)
		}
	}
}

func encode(img image.Image) (*Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &Result{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
