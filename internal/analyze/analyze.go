// Package analyze wires the pipeline stages together: palette extraction,
// region detection, classification and layout inference over one immutable
// pixel buffer, producing the AnalysisResult consumed by downstream
// generators.
//
// The composite entry points validate their input and fail fast with
// ErrDecode or ErrInvalidBuffer; past that boundary no stage can fail.
// Heuristic misses degrade to empty or default values: an empty element
// list with an absolute layout is a valid, minimal result, not an error.
package analyze

import (
	"errors"
	"fmt"
	"image"

	"github.com/uiscan/uiscan/internal/config"
	"github.com/uiscan/uiscan/internal/detection"
	"github.com/uiscan/uiscan/internal/imaging"
	"github.com/uiscan/uiscan/internal/layout"
)

// Error kinds surfaced at the pipeline boundary. Wrapped errors carry
// detail; match with errors.Is.
var (
	// ErrDecode indicates the source image was absent or undecodable.
	ErrDecode = errors.New("image could not be decoded")

	// ErrInvalidBuffer indicates a buffer with a zero dimension.
	ErrInvalidBuffer = errors.New("invalid pixel buffer")
)

// Dimensions reports the analyzed buffer size.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AnalysisResult is the pipeline's single output contract. Its JSON shape,
// including enum spellings, must be reproduced exactly by any substitute
// analyzer so downstream code generation can treat them interchangeably.
type AnalysisResult struct {
	Colors     imaging.ColorPalette        `json:"colors"`
	Elements   []detection.DetectedElement `json:"elements"`
	Layout     layout.Analysis             `json:"layout"`
	Dimensions Dimensions                  `json:"dimensions"`
}

// Image snapshots a decoded image and analyzes it.
//
// A nil image fails with ErrDecode; a zero-dimension image with
// ErrInvalidBuffer. A nil cfg uses the defaults.
func Image(img image.Image, cfg *config.Heuristics) (*AnalysisResult, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image supplied", ErrDecode)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: zero dimension (%dx%d)", ErrInvalidBuffer, bounds.Dx(), bounds.Dy())
	}

	buf, err := imaging.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Buffer(buf, cfg)
}

// Buffer runs the full pipeline over an existing snapshot.
//
// The call is pure: it only reads the buffer, allocates all scratch state
// locally, and yields identical results for identical inputs, so separate
// goroutines may analyze independent (or shared) buffers concurrently.
func Buffer(buf *imaging.PixelBuffer, cfg *config.Heuristics) (*AnalysisResult, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: no buffer supplied", ErrDecode)
	}
	if buf.Width() <= 0 || buf.Height() <= 0 {
		return nil, fmt.Errorf("%w: zero dimension (%dx%d)", ErrInvalidBuffer, buf.Width(), buf.Height())
	}
	if cfg == nil {
		cfg = config.Default()
	}

	palette := imaging.ExtractPalette(buf, cfg.Palette)
	regions := detection.FindRegions(buf, cfg.Regions)
	elements := detection.ClassifyAll(buf, regions, cfg)
	inferred := layout.Analyze(elements, buf.Width(), buf.Height(), cfg.Layout)

	return &AnalysisResult{
		Colors:     palette,
		Elements:   elements,
		Layout:     inferred,
		Dimensions: Dimensions{Width: buf.Width(), Height: buf.Height()},
	}, nil
}
