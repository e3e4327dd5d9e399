package imaging

import (
	"sort"

	"github.com/uiscan/uiscan/internal/config"
)

// ColorPalette is the color summary of a buffer.
type ColorPalette struct {
	// Dominant is the most frequent opaque color.
	Dominant Color `json:"dominant"`

	// Background is the majority corner color, falling back to Dominant.
	Background Color `json:"background"`

	// Text is black or white, whichever contrasts with Background.
	Text Color `json:"text"`

	// Accent is the first palette entry contrasting with Background, or a
	// fixed blue when none qualifies.
	Accent Color `json:"accent"`

	// Palette holds up to five distinct colors in descending frequency order.
	Palette []Color `json:"palette"`
}

// Fallback colors for degenerate inputs (fully transparent buffers, no
// contrasting palette entry).
var (
	fallbackDominant = Color{R: 255, G: 255, B: 255}
	fallbackAccent   = Color{R: 0x3b, G: 0x82, B: 0xf6}
)

// ExtractPalette derives a ColorPalette from a buffer.
//
// Pixels are sampled at a fixed stride over the flattened pixel index;
// samples below the opacity cutoff are skipped. The function is pure:
// identical buffers always produce identical palettes.
func ExtractPalette(buf *PixelBuffer, cfg config.Palette) ColorPalette {
	ranked := rankedColors(buf, cfg)

	dominant := fallbackDominant
	if len(ranked) > 0 {
		dominant = ranked[0]
	}

	palette := ranked
	if len(palette) > cfg.MaxColors {
		palette = palette[:cfg.MaxColors]
	}

	background := cornerMajority(buf, dominant)

	text := Color{} // black
	if background.Luminance() <= 0.5 {
		text = Color{R: 255, G: 255, B: 255}
	}

	accent := fallbackAccent
	for _, c := range palette {
		if ContrastRatio(c, background) > cfg.AccentContrast {
			accent = c
			break
		}
	}

	return ColorPalette{
		Dominant:   dominant,
		Background: background,
		Text:       text,
		Accent:     accent,
		Palette:    palette,
	}
}

// DominantColor returns the most frequent opaque color of a buffer, using
// the same sampling as ExtractPalette. Falls back to white when the buffer
// has no opaque samples (or is nil, as for an empty sub-region).
func DominantColor(buf *PixelBuffer, cfg config.Palette) Color {
	if buf == nil {
		return fallbackDominant
	}
	ranked := rankedColors(buf, cfg)
	if len(ranked) == 0 {
		return fallbackDominant
	}
	return ranked[0]
}

// rankedColors samples the buffer and returns distinct colors in descending
// frequency order, capped at ten entries. Frequency ties break on packed
// RGB value so the order is deterministic.
func rankedColors(buf *PixelBuffer, cfg config.Palette) []Color {
	stride := cfg.SampleStride
	if stride <= 0 {
		stride = 1
	}

	counts := make(map[Color]int)
	total := buf.Width() * buf.Height()
	for i := 0; i < total; i += stride {
		x := i % buf.Width()
		y := i / buf.Width()
		r, g, b, a := buf.At(x, y)
		if a < cfg.MinAlpha {
			continue
		}
		counts[Color{R: r, G: g, B: b}]++
	}

	ranked := make([]Color, 0, len(counts))
	for c := range counts {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		ci, cj := ranked[i], ranked[j]
		if counts[ci] != counts[cj] {
			return counts[ci] > counts[cj]
		}
		return packRGB(ci) < packRGB(cj)
	})

	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	return ranked
}

// cornerMajority picks the color shared by at least two of the four image
// corners. With no repeated corner color the fallback wins. Ties resolve in
// corner order: top-left, top-right, bottom-left, bottom-right.
func cornerMajority(buf *PixelBuffer, fallback Color) Color {
	w, h := buf.Width(), buf.Height()
	corners := []Color{
		buf.ColorAt(0, 0),
		buf.ColorAt(w-1, 0),
		buf.ColorAt(0, h-1),
		buf.ColorAt(w-1, h-1),
	}

	best := fallback
	bestCount := 1
	for _, c := range corners {
		count := 0
		for _, o := range corners {
			if o == c {
				count++
			}
		}
		// strict > keeps the earliest corner on ties
		if count > bestCount {
			best = c
			bestCount = count
		}
	}
	return best
}

func packRGB(c Color) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
