package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/uiscan/uiscan/internal/config"
)

func TestExtractPalette_UniformWhite(t *testing.T) {
	buf, _ := FromImage(solidImage(100, 100, color.RGBA{255, 255, 255, 255}))

	p := ExtractPalette(buf, config.Default().Palette)

	if p.Dominant.Hex() != "#ffffff" {
		t.Errorf("dominant: got %s, want #ffffff", p.Dominant.Hex())
	}
	if p.Background.Hex() != "#ffffff" {
		t.Errorf("background: got %s, want #ffffff", p.Background.Hex())
	}
	if p.Text != (Color{0, 0, 0}) {
		t.Errorf("text on white background: got %+v, want black", p.Text)
	}
	if p.Accent != fallbackAccent {
		t.Errorf("accent with no contrasting entry: got %+v, want fallback", p.Accent)
	}
	if len(p.Palette) != 1 {
		t.Errorf("palette length: got %d, want 1", len(p.Palette))
	}
}

func TestExtractPalette_AccentAndTies(t *testing.T) {
	// Left column half black, rest white. The stride-100 walk over a
	// 100px-wide buffer samples exactly column zero, so black and white
	// tie at 50 samples each and the packed-RGB tie break puts black first.
	img := solidImage(100, 100, color.RGBA{255, 255, 255, 255})
	for y := 0; y < 50; y++ {
		img.SetRGBA(0, y, color.RGBA{0, 0, 0, 255})
	}
	buf, _ := FromImage(img)

	p := ExtractPalette(buf, config.Default().Palette)

	if p.Dominant != (Color{0, 0, 0}) {
		t.Errorf("dominant: got %+v, want black on tie break", p.Dominant)
	}
	if p.Background.Hex() != "#ffffff" {
		t.Errorf("background: got %s, want corner majority white", p.Background.Hex())
	}
	if p.Accent != (Color{0, 0, 0}) {
		t.Errorf("accent: got %+v, want black (contrasts with white)", p.Accent)
	}
}

func TestExtractPalette_DarkBackgroundText(t *testing.T) {
	buf, _ := FromImage(solidImage(100, 100, color.RGBA{20, 20, 30, 255}))

	p := ExtractPalette(buf, config.Default().Palette)

	if p.Text != (Color{255, 255, 255}) {
		t.Errorf("text on dark background: got %+v, want white", p.Text)
	}
}

func TestExtractPalette_CapsAtMaxColors(t *testing.T) {
	cycle := []color.RGBA{
		{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255},
		{255, 255, 0, 255}, {0, 255, 255, 255}, {255, 0, 255, 255},
		{128, 128, 128, 255}, {255, 255, 255, 255},
	}
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.SetRGBA(x, y, cycle[y%len(cycle)])
		}
	}
	buf, _ := FromImage(img)

	p := ExtractPalette(buf, config.Default().Palette)

	if len(p.Palette) != 5 {
		t.Fatalf("palette length: got %d, want 5", len(p.Palette))
	}
	seen := make(map[Color]bool)
	for _, c := range p.Palette {
		if seen[c] {
			t.Errorf("duplicate palette entry %+v", c)
		}
		seen[c] = true
	}
}

func TestExtractPalette_TransparentFallback(t *testing.T) {
	// All pixels fully transparent: no sample survives the alpha cutoff.
	buf, _ := FromImage(image.NewRGBA(image.Rect(0, 0, 100, 100)))

	p := ExtractPalette(buf, config.Default().Palette)

	if p.Dominant != fallbackDominant {
		t.Errorf("dominant: got %+v, want white fallback", p.Dominant)
	}
	if len(p.Palette) != 0 {
		t.Errorf("palette length: got %d, want 0", len(p.Palette))
	}
}

func TestDominantColor(t *testing.T) {
	buf, _ := FromImage(solidImage(50, 50, color.RGBA{0, 0, 255, 255}))

	cfg := config.Default().Palette
	if got := DominantColor(buf, cfg); got != (Color{0, 0, 255}) {
		t.Errorf("dominant: got %+v, want blue", got)
	}
	if got := DominantColor(nil, cfg); got != fallbackDominant {
		t.Errorf("nil buffer: got %+v, want white fallback", got)
	}
}

func TestExtractPalette_Deterministic(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{200, 100, 50, 255})
	for y := 0; y < 100; y += 3 {
		img.SetRGBA(0, y, color.RGBA{10, 20, 30, 255})
	}
	buf, _ := FromImage(img)

	cfg := config.Default().Palette
	first := ExtractPalette(buf, cfg)
	second := ExtractPalette(buf, cfg)

	if first.Dominant != second.Dominant || len(first.Palette) != len(second.Palette) {
		t.Error("repeated extraction differs")
	}
	for i := range first.Palette {
		if first.Palette[i] != second.Palette[i] {
			t.Errorf("palette entry %d differs between runs", i)
		}
	}
}
