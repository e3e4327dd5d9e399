package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// CropResult contains a cropped region encoded as base64 PNG.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// cropImage extracts rect from img. rect must be non-empty and in bounds.
func cropImage(img image.Image, rect image.Rectangle) image.Image {
	return imaging.Crop(img, rect)
}

// Crop extracts a rectangular region from a buffer and returns it as a
// base64-encoded PNG, optionally rescaled.
func Crop(buf *PixelBuffer, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	if x1 < 0 || y1 < 0 || x2 > buf.Width() || y2 > buf.Height() {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside buffer bounds %dx%d",
			x1, y1, x2, y2, buf.Width(), buf.Height())
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(buf.Image(), image.Rect(x1, y1, x2, y2))

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(pngBuf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
