package detection

import (
	"github.com/uiscan/uiscan/internal/config"
	"github.com/uiscan/uiscan/internal/imaging"
)

// Rectangle is an axis-aligned candidate region in buffer coordinates.
type Rectangle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns Width * Height.
func (r Rectangle) Area() int {
	return r.Width * r.Height
}

// AspectRatio returns Width / Height.
func (r Rectangle) AspectRatio() float64 {
	return float64(r.Width) / float64(r.Height)
}

// windowStats holds the color statistics of a seed window.
type windowStats struct {
	mean     imaging.Color
	variance float64 // mean of the per-channel variances
	samples  int
}

// FindRegions scans a buffer for rectangular candidate regions.
//
// Seeds are visited on a coarse grid in row-major order. A seed window
// qualifies when its color variance is low (consistent fill) and enough of
// the ring sampled around it contrasts with the window mean (a visible
// boundary). Qualifying windows are expanded pixel-by-pixel along each
// axis through the seed while the color stays within tolerance of the
// window mean. The expanded rectangle must pass the same border-contrast
// test on its own perimeter: a background window next to an element can
// clear the seed-ring gate (the element fills enough of the ring), but its
// expansion runs across the background and the expanded perimeter gives it
// away.
//
// Expansion is deliberately axis-limited, not a flood fill: the region
// grows along the two axes through the seed only, which approximates the
// extent of rectangular UI elements cheaply and biases the bounds the
// classifier thresholds expect. Detected bounds are marked visited on a
// coarse aligned lattice; that suppresses most re-detections from nearby
// seeds but overlapping duplicates from adjacent seeds remain possible and
// are acceptable.
//
// The returned rectangles follow scan order. The visited state is local to
// the call, so concurrent invocations are safe.
func FindRegions(buf *imaging.PixelBuffer, cfg config.Regions) []Rectangle {
	width, height := buf.Width(), buf.Height()
	visited := make([]bool, width*height)

	regions := make([]Rectangle, 0)

	for sy := 0; sy < height; sy += cfg.SeedStride {
		for sx := 0; sx < width; sx += cfg.SeedStride {
			if visited[sy*width+sx] {
				continue
			}

			stats, ok := windowStatistics(buf, sx, sy, cfg)
			if !ok || stats.variance >= cfg.MaxVariance {
				continue
			}
			window := Rectangle{X: sx, Y: sy, Width: cfg.SeedStride, Height: cfg.SeedStride}
			if !borderContrasts(buf, window, stats.mean, cfg) {
				continue
			}

			rect := expand(buf, sx, sy, stats.mean, cfg)
			if rect.Width < cfg.MinWidth || rect.Height < cfg.MinHeight {
				continue
			}
			if !borderContrasts(buf, rect, stats.mean, cfg) {
				continue
			}

			markVisited(visited, width, rect, cfg.VisitedStride)
			regions = append(regions, rect)
		}
	}

	return regions
}

// windowStatistics computes the mean color and mean per-channel variance
// of the seed window, sub-sampled and restricted to opaque pixels.
// ok is false when the window contains no opaque samples.
func windowStatistics(buf *imaging.PixelBuffer, sx, sy int, cfg config.Regions) (windowStats, bool) {
	x1 := min(sx+cfg.SeedStride, buf.Width())
	y1 := min(sy+cfg.SeedStride, buf.Height())

	var sumR, sumG, sumB float64
	var sumR2, sumG2, sumB2 float64
	n := 0

	for y := sy; y < y1; y += cfg.InnerStep {
		for x := sx; x < x1; x += cfg.InnerStep {
			r, g, b, a := buf.At(x, y)
			if a < 128 {
				continue
			}
			fr, fg, fb := float64(r), float64(g), float64(b)
			sumR += fr
			sumG += fg
			sumB += fb
			sumR2 += fr * fr
			sumG2 += fg * fg
			sumB2 += fb * fb
			n++
		}
	}

	if n == 0 {
		return windowStats{}, false
	}

	fn := float64(n)
	meanR, meanG, meanB := sumR/fn, sumG/fn, sumB/fn
	varR := sumR2/fn - meanR*meanR
	varG := sumG2/fn - meanG*meanG
	varB := sumB2/fn - meanB*meanB

	return windowStats{
		mean:     imaging.RGB(uint8(meanR+0.5), uint8(meanG+0.5), uint8(meanB+0.5)),
		variance: (varR + varG + varB) / 3.0,
		samples:  n,
	}, true
}

// borderContrasts samples a ring around the rectangle, offset outward by
// the configured margin, and reports whether enough samples contrast with
// the reference mean. Samples falling outside the buffer are skipped.
func borderContrasts(buf *imaging.PixelBuffer, rect Rectangle, mean imaging.Color, cfg config.Regions) bool {
	x0 := rect.X - cfg.BorderMargin
	y0 := rect.Y - cfg.BorderMargin
	x1 := rect.X + rect.Width + cfg.BorderMargin
	y1 := rect.Y + rect.Height + cfg.BorderMargin

	total := 0
	contrasting := 0

	sample := func(x, y int) {
		if !buf.Contains(x, y) {
			return
		}
		total++
		if imaging.ContrastRatio(buf.ColorAt(x, y), mean) > cfg.BorderContrast {
			contrasting++
		}
	}

	for x := x0; x <= x1; x += cfg.BorderStep {
		sample(x, y0)
		sample(x, y1)
	}
	for y := y0 + cfg.BorderStep; y < y1; y += cfg.BorderStep {
		sample(x0, y)
		sample(x1, y)
	}

	if total == 0 {
		return false
	}
	return float64(contrasting)/float64(total) >= cfg.BorderMatchRatio
}

// expand grows a rectangle from the seed along each axis independently,
// walking outward while the pixel color stays within tolerance of the
// window mean. Each walk stops at the first pixel exceeding tolerance or
// at the buffer edge.
func expand(buf *imaging.PixelBuffer, sx, sy int, mean imaging.Color, cfg config.Regions) Rectangle {
	within := func(x, y int) bool {
		return buf.Contains(x, y) && buf.ColorAt(x, y).DistanceRGB(mean) < cfg.GrowTolerance
	}

	minX, maxX := sx, sx
	for x := sx + cfg.GrowStep; within(x, sy); x += cfg.GrowStep {
		maxX = x
	}
	for x := sx - cfg.GrowStep; within(x, sy); x -= cfg.GrowStep {
		minX = x
	}

	minY, maxY := sy, sy
	for y := sy + cfg.GrowStep; within(sx, y); y += cfg.GrowStep {
		maxY = y
	}
	for y := sy - cfg.GrowStep; within(sx, y); y -= cfg.GrowStep {
		minY = y
	}

	return Rectangle{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// markVisited stamps the rectangle's interior on a globally aligned
// lattice. Seed coordinates are multiples of the seed stride, which the
// lattice stride divides, so any later seed inside the bounds is caught.
func markVisited(visited []bool, width int, rect Rectangle, stride int) {
	startX := (rect.X + stride - 1) / stride * stride
	startY := (rect.Y + stride - 1) / stride * stride
	for y := startY; y <= rect.Y+rect.Height; y += stride {
		for x := startX; x <= rect.X+rect.Width; x += stride {
			visited[y*width+x] = true
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
