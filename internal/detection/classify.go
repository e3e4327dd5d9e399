package detection

import (
	"github.com/uiscan/uiscan/internal/config"
	"github.com/uiscan/uiscan/internal/imaging"
)

// classifyRule is one row of the classification decision table.
// A zero bound means "unconstrained" and is encoded with the sentinel
// ranges below.
type classifyRule struct {
	elemType   ElementType
	confidence float64
	match      func(ar float64, area, w, h int) bool
}

// classifyRules is evaluated top to bottom; the first match wins. The
// specific rules (button before the container fallback) encode the
// priority of narrow shapes over generic boxes.
var classifyRules = []classifyRule{
	{TypeButton, 0.8, func(ar float64, _, w, h int) bool {
		return ar >= 1.5 && ar <= 6 && h >= 20 && h <= 80 && w >= 60 && w <= 300
	}},
	{TypeText, 0.7, func(ar float64, _, _, h int) bool {
		return ar > 4 && h <= 40
	}},
	{TypeInput, 0.6, func(ar float64, _, w, h int) bool {
		return ar >= 2 && ar <= 8 && h >= 25 && h <= 60 && w >= 100
	}},
	{TypeCard, 0.7, func(ar float64, area, _, _ int) bool {
		return area > 5000 && ar >= 0.5 && ar <= 3
	}},
	{TypeImage, 0.6, func(ar float64, area, _, _ int) bool {
		return area > 2000 && ar >= 0.7 && ar <= 1.5
	}},
	{TypeContainer, 0.4, func(_ float64, area, _, _ int) bool {
		return area > 1000
	}},
}

// Classify maps a candidate rectangle to a detected element.
//
// The verdict is a deterministic function of the rectangle's aspect ratio
// and area; rectangles matching no rule are discarded (ok is false). The
// rectangle's dominant color, extracted from its sub-buffer the same way
// the palette analyzer extracts the image dominant, becomes the element's
// background color.
func Classify(buf *imaging.PixelBuffer, rect Rectangle, cfg *config.Heuristics) (DetectedElement, bool) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return DetectedElement{}, false
	}

	ar := rect.AspectRatio()
	area := rect.Area()

	for _, rule := range classifyRules {
		if !rule.match(ar, area, rect.Width, rect.Height) {
			continue
		}

		background := imaging.DominantColor(
			buf.SubBuffer(rect.X, rect.Y, rect.Width, rect.Height),
			cfg.Palette,
		)

		return DetectedElement{
			Type:       rule.elemType,
			Bounds:     rect,
			Colors:     &ElementColors{Background: &background},
			Confidence: rule.confidence,
		}, true
	}

	return DetectedElement{}, false
}

// ClassifyAll runs Classify over a rectangle list, preserving order and
// dropping discards.
func ClassifyAll(buf *imaging.PixelBuffer, rects []Rectangle, cfg *config.Heuristics) []DetectedElement {
	elements := make([]DetectedElement, 0, len(rects))
	for _, rect := range rects {
		if elem, ok := Classify(buf, rect, cfg); ok {
			elements = append(elements, elem)
		}
	}
	return elements
}
