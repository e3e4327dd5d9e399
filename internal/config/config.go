// Package config holds the tunable heuristics for the analysis pipeline.
//
// Every threshold the analyzers use lives in one Heuristics value so the
// magic numbers are named, testable, and overridable from an optional
// uiscan.yaml file. Default() reproduces the stock behavior; all analyzer
// functions take the relevant sub-struct explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Palette controls palette extraction.
type Palette struct {
	// SampleStride is the pixel-index stride used when sampling the buffer.
	SampleStride int `yaml:"sample_stride"`

	// MinAlpha is the minimum alpha for a sample to count as opaque.
	MinAlpha uint8 `yaml:"min_alpha"`

	// MaxColors caps the ordered palette length.
	MaxColors int `yaml:"max_colors"`

	// AccentContrast is the minimum contrast ratio against the background
	// for a palette entry to qualify as the accent color.
	AccentContrast float64 `yaml:"accent_contrast"`
}

// Edges controls Sobel edge detection.
type Edges struct {
	// Threshold is the gradient magnitude (0-255 scale) above which a
	// pixel is marked as an edge.
	Threshold float64 `yaml:"threshold"`
}

// Regions controls candidate region detection.
type Regions struct {
	// SeedStride is the spacing of the seed grid and the window size.
	SeedStride int `yaml:"seed_stride"`

	// InnerStep is the sub-sampling step used for window statistics.
	InnerStep int `yaml:"inner_step"`

	// MaxVariance is the maximum mean per-channel color variance for a
	// window to count as color-consistent.
	MaxVariance float64 `yaml:"max_variance"`

	// BorderMargin is how far outside the window the border ring is
	// sampled. Half the seed stride by default, so an interior window of
	// a region the size of a small control still sees past its edges.
	BorderMargin int `yaml:"border_margin"`

	// BorderStep is the sampling stride along the border ring.
	BorderStep int `yaml:"border_step"`

	// BorderContrast is the contrast ratio a border sample must exceed
	// against the window mean to count as contrasting.
	BorderContrast float64 `yaml:"border_contrast"`

	// BorderMatchRatio is the fraction of border samples that must
	// contrast for the window to pass.
	BorderMatchRatio float64 `yaml:"border_match_ratio"`

	// GrowTolerance is the maximum Euclidean RGB distance from the window
	// mean during expansion.
	GrowTolerance float64 `yaml:"grow_tolerance"`

	// GrowStep is the pixel step of the expansion walk.
	GrowStep int `yaml:"grow_step"`

	// MinWidth and MinHeight discard undersized rectangles.
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`

	// VisitedStride is the lattice spacing of visited marks inside
	// detected bounds. Marks land on globally aligned coordinates so
	// later seeds falling inside a detected region are suppressed.
	VisitedStride int `yaml:"visited_stride"`
}

// Layout controls layout inference.
type Layout struct {
	// AxisTolerance groups elements into shared rows/columns.
	AxisTolerance int `yaml:"axis_tolerance"`

	// PairTolerance is the coordinate difference under which two elements
	// count as mutually aligned for the flex score.
	PairTolerance int `yaml:"pair_tolerance"`

	// ScoreCutoff is the minimum pairwise-alignment score for a flex verdict.
	ScoreCutoff float64 `yaml:"score_cutoff"`

	// GridGapStddev is the maximum gap standard deviation, per axis, for
	// the grid verdict.
	GridGapStddev float64 `yaml:"grid_gap_stddev"`

	// AlignGapStddev is the maximum gap standard deviation for the
	// distributed (space-between / space-around) alignment branch.
	AlignGapStddev float64 `yaml:"align_gap_stddev"`

	// SpaceBetweenGap: uniform gaps above this mean space-between.
	SpaceBetweenGap float64 `yaml:"space_between_gap"`

	// SpaceAroundGap: uniform gaps above this (but at most SpaceBetweenGap)
	// mean space-around; smaller uniform gaps fall back to edge-position rules.
	SpaceAroundGap float64 `yaml:"space_around_gap"`

	// DefaultGap is reported when no positive gaps exist.
	DefaultGap int `yaml:"default_gap"`

	// PaddingMin and PaddingMax clamp the container padding estimate.
	PaddingMin int `yaml:"padding_min"`
	PaddingMax int `yaml:"padding_max"`

	// EdgeBand is the fraction of the axis extent that counts as "at the
	// start/end edge" for alignment resolution.
	EdgeBand float64 `yaml:"edge_band"`

	// CenterBandLow and CenterBandHigh bound the band both extremes must
	// fall inside for the "center" verdict.
	CenterBandLow  float64 `yaml:"center_band_low"`
	CenterBandHigh float64 `yaml:"center_band_high"`

	// CenterBias: overall content counts as centered when the average
	// element center is within this fraction of the canvas half-extent.
	CenterBias float64 `yaml:"center_bias"`
}

// Heuristics bundles all pipeline thresholds.
type Heuristics struct {
	Palette Palette `yaml:"palette"`
	Edges   Edges   `yaml:"edges"`
	Regions Regions `yaml:"regions"`
	Layout  Layout  `yaml:"layout"`
}

// Default returns the stock heuristics.
func Default() *Heuristics {
	return &Heuristics{
		Palette: Palette{
			SampleStride:   100,
			MinAlpha:       128,
			MaxColors:      5,
			AccentContrast: 3.0,
		},
		Edges: Edges{
			Threshold: 50,
		},
		Regions: Regions{
			SeedStride:       20,
			InnerStep:        2,
			MaxVariance:      2000,
			BorderMargin:     10,
			BorderStep:       5,
			BorderContrast:   1.5,
			BorderMatchRatio: 0.3,
			GrowTolerance:    50,
			GrowStep:         2,
			MinWidth:         30,
			MinHeight:        20,
			VisitedStride:    5,
		},
		Layout: Layout{
			AxisTolerance:   20,
			PairTolerance:   10,
			ScoreCutoff:     0.6,
			GridGapStddev:   20,
			AlignGapStddev:  10,
			SpaceBetweenGap: 50,
			SpaceAroundGap:  20,
			DefaultGap:      16,
			PaddingMin:      8,
			PaddingMax:      32,
			EdgeBand:        0.1,
			CenterBandLow:   0.3,
			CenterBandHigh:  0.7,
			CenterBias:      0.2,
		},
	}
}

// LoadOptional reads uiscan.yaml from dir if present, overlaying the
// defaults. A missing file is not an error.
func LoadOptional(dir string) (*Heuristics, error) {
	cfg := Default()

	path := filepath.Join(dir, "uiscan.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read uiscan.yaml: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse uiscan.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid uiscan.yaml: %w", err)
	}
	return cfg, nil
}

func (h *Heuristics) validate() error {
	if h.Palette.SampleStride <= 0 {
		return fmt.Errorf("palette.sample_stride must be positive, got %d", h.Palette.SampleStride)
	}
	if h.Regions.SeedStride <= 0 {
		return fmt.Errorf("regions.seed_stride must be positive, got %d", h.Regions.SeedStride)
	}
	if h.Regions.GrowStep <= 0 {
		return fmt.Errorf("regions.grow_step must be positive, got %d", h.Regions.GrowStep)
	}
	if h.Layout.ScoreCutoff < 0 || h.Layout.ScoreCutoff > 1 {
		return fmt.Errorf("layout.score_cutoff must be in [0,1], got %g", h.Layout.ScoreCutoff)
	}
	return nil
}
