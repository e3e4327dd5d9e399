package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/uiscan/uiscan/internal/config"
	"github.com/uiscan/uiscan/internal/detection"
	"github.com/uiscan/uiscan/internal/imaging"
)

func whiteBuffer(t *testing.T, w, h int) *imaging.PixelBuffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	buf, err := imaging.FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	return buf
}

func decodePNG(t *testing.T, r *Result) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64 payload: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a PNG: %v", err)
	}
	return img
}

func TestOverlay(t *testing.T) {
	buf := whiteBuffer(t, 200, 150)
	elements := []detection.DetectedElement{
		{Type: detection.TypeButton, Bounds: detection.Rectangle{X: 40, Y: 40, Width: 80, Height: 30}},
	}

	result, err := Overlay(buf, elements, 1024)
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	if result.Width != 200 || result.Height != 150 {
		t.Errorf("size: got %dx%d, want 200x150", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("mime type: got %s", result.MimeType)
	}

	img := decodePNG(t, result)
	r, g, b, _ := img.At(40, 40).RGBA()
	want := typeColors[detection.TypeButton]
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("outline corner: got (%d,%d,%d), want button color", r>>8, g>>8, b>>8)
	}
	// Interior stays untouched
	r, g, b, _ = img.At(80, 55).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 255 || uint8(b>>8) != 255 {
		t.Errorf("interior: got (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
}

func TestOverlay_Downscale(t *testing.T) {
	buf := whiteBuffer(t, 400, 200)

	result, err := Overlay(buf, nil, 100)
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	if result.Width != 100 || result.Height != 50 {
		t.Errorf("downscaled size: got %dx%d, want 100x50", result.Width, result.Height)
	}

	img := decodePNG(t, result)
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("decoded bounds: got %v", img.Bounds())
	}
}

func TestOverlay_UnknownTypeFallback(t *testing.T) {
	buf := whiteBuffer(t, 100, 100)
	elements := []detection.DetectedElement{
		{Type: detection.TypeBadge, Bounds: detection.Rectangle{X: 10, Y: 10, Width: 50, Height: 30}},
	}

	result, err := Overlay(buf, elements, 0)
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}

	img := decodePNG(t, result)
	r, g, b, _ := img.At(10, 10).RGBA()
	if uint8(r>>8) != fallbackOutline.R || uint8(g>>8) != fallbackOutline.G || uint8(b>>8) != fallbackOutline.B {
		t.Errorf("fallback outline: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestEdgeMap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if x < 30 {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	buf, err := imaging.FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	m := imaging.DetectEdges(buf, config.Default().Edges)
	result, err := EdgeMap(m)
	if err != nil {
		t.Fatalf("EdgeMap failed: %v", err)
	}
	if result.Width != 60 || result.Height != 60 {
		t.Errorf("size: got %dx%d, want 60x60", result.Width, result.Height)
	}

	decoded := decodePNG(t, result)
	if _, ok := decoded.(*image.Gray); !ok {
		t.Logf("decoded as %T", decoded)
	}
}
