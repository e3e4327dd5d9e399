package imaging

import (
	"image/color"
	"testing"

	"github.com/uiscan/uiscan/internal/config"
)

func TestDetectEdges_Uniform(t *testing.T) {
	buf, _ := FromImage(solidImage(60, 60, color.RGBA{128, 128, 128, 255}))

	m := DetectEdges(buf, config.Default().Edges)

	if m.Width() != 60 || m.Height() != 60 {
		t.Errorf("dimensions: got %dx%d, want 60x60", m.Width(), m.Height())
	}
	if n := m.Count(); n != 0 {
		t.Errorf("uniform buffer: got %d edge pixels, want 0", n)
	}
	if d := m.Density(); d != 0 {
		t.Errorf("uniform density: got %v, want 0", d)
	}
}

func TestDetectEdges_VerticalBoundary(t *testing.T) {
	// Black left half, white right half: a strong vertical edge at x=50.
	img := solidImage(100, 100, color.RGBA{255, 255, 255, 255})
	for y := 0; y < 100; y++ {
		for x := 0; x < 50; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	buf, _ := FromImage(img)

	m := DetectEdges(buf, config.Default().Edges)

	if m.Count() == 0 {
		t.Fatal("boundary image produced no edges")
	}
	if !m.At(49, 50) && !m.At(50, 50) {
		t.Error("no edge detected at the black/white boundary")
	}
	if m.At(10, 50) || m.At(90, 50) {
		t.Error("edge detected far from the boundary")
	}
}

func TestDetectEdges_BordersNeverSet(t *testing.T) {
	// High-contrast checkerboard, so interior edges abound.
	img := solidImage(40, 40, color.RGBA{255, 255, 255, 255})
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if (x/4+y/4)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}
	buf, _ := FromImage(img)

	m := DetectEdges(buf, config.Default().Edges)

	for x := 0; x < 40; x++ {
		if m.At(x, 0) || m.At(x, 39) {
			t.Fatalf("border row pixel (%d) marked as edge", x)
		}
	}
	for y := 0; y < 40; y++ {
		if m.At(0, y) || m.At(39, y) {
			t.Fatalf("border column pixel (%d) marked as edge", y)
		}
	}
}

func TestDetectEdges_ThresholdRespected(t *testing.T) {
	img := solidImage(50, 50, color.RGBA{100, 100, 100, 255})
	for y := 0; y < 50; y++ {
		for x := 25; x < 50; x++ {
			img.SetRGBA(x, y, color.RGBA{110, 110, 110, 255})
		}
	}
	buf, _ := FromImage(img)

	cfg := config.Default().Edges
	if m := DetectEdges(buf, cfg); m.Count() != 0 {
		t.Errorf("faint boundary below threshold: got %d edges, want 0", m.Count())
	}

	cfg.Threshold = 5
	if m := DetectEdges(buf, cfg); m.Count() == 0 {
		t.Error("lowered threshold should expose the faint boundary")
	}
}

func TestEdgeMap_Render(t *testing.T) {
	img := solidImage(30, 30, color.RGBA{255, 255, 255, 255})
	for y := 0; y < 30; y++ {
		for x := 0; x < 15; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	buf, _ := FromImage(img)

	m := DetectEdges(buf, config.Default().Edges)
	rendered := m.Render()

	if rendered.Bounds().Dx() != 30 || rendered.Bounds().Dy() != 30 {
		t.Errorf("rendered bounds: got %v", rendered.Bounds())
	}
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			want := uint8(0)
			if m.At(x, y) {
				want = 255
			}
			if got := rendered.GrayAt(x, y).Y; got != want {
				t.Fatalf("rendered pixel (%d,%d): got %d, want %d", x, y, got, want)
			}
		}
	}
}
