package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/uiscan/uiscan/internal/config"
)

// EdgeMap is a binary per-pixel edge mask, same size as its source buffer.
//
// Border pixels (row/column 0 and max) are never edges; the Sobel kernels
// need a full 3x3 neighborhood.
type EdgeMap struct {
	width  int
	height int
	edges  []bool
}

// Width returns the map width in pixels.
func (m *EdgeMap) Width() int { return m.width }

// Height returns the map height in pixels.
func (m *EdgeMap) Height() int { return m.height }

// At reports whether the pixel at (x, y) is an edge.
func (m *EdgeMap) At(x, y int) bool {
	return m.edges[y*m.width+x]
}

// Count returns the number of edge pixels.
func (m *EdgeMap) Count() int {
	n := 0
	for _, e := range m.edges {
		if e {
			n++
		}
	}
	return n
}

// Density returns the fraction of pixels marked as edges.
func (m *EdgeMap) Density() float64 {
	return float64(m.Count()) / float64(m.width*m.height)
}

// Render returns the edge map as a grayscale image: white for edges,
// black elsewhere.
func (m *EdgeMap) Render() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.At(x, y) {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// Sobel kernels for horizontal and vertical gradients.
var (
	sobelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// DetectEdges computes a Sobel edge map of the buffer.
//
// Each pixel's intensity is the mean of R, G and B, smoothed with a 3x3
// box average (clamped at the borders). The Sobel gradient magnitude is
// thresholded on the 0-255 scale. The function is pure and the result is
// independent of any other pipeline stage.
func DetectEdges(buf *PixelBuffer, cfg config.Edges) *EdgeMap {
	width, height := buf.Width(), buf.Height()

	gray := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := buf.At(x, y)
			gray[y*width+x] = (float64(r) + float64(g) + float64(b)) / 3.0
		}
	}

	smoothed := boxBlur3(gray, width, height)

	m := &EdgeMap{
		width:  width,
		height: height,
		edges:  make([]bool, width*height),
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := smoothed[(y+ky)*width+(x+kx)]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			if math.Sqrt(gx*gx+gy*gy) > cfg.Threshold {
				m.edges[y*width+x] = true
			}
		}
	}

	return m
}

// boxBlur3 applies a 3x3 box average with clamped (replicated) borders.
func boxBlur3(src []float64, width, height int) []float64 {
	out := make([]float64, len(src))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += src[py*width+px]
				}
			}
			out[y*width+x] = sum / 9.0
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
