package detection

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/uiscan/uiscan/internal/config"
	"github.com/uiscan/uiscan/internal/imaging"
)

// paintRect is a colored rectangle to paint onto a test buffer.
type paintRect struct {
	x, y, w, h int
	c          color.RGBA
}

// testBuffer builds a buffer filled with a background color, optionally
// painting rectangles of other colors on top.
func testBuffer(t *testing.T, w, h int, bg color.RGBA, rects ...paintRect) *imaging.PixelBuffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	for _, r := range rects {
		for y := r.y; y < r.y+r.h; y++ {
			for x := r.x; x < r.x+r.w; x++ {
				img.SetRGBA(x, y, r.c)
			}
		}
	}
	buf, err := imaging.FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	return buf
}

var (
	white = color.RGBA{255, 255, 255, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func TestFindRegions_UniformBuffer(t *testing.T) {
	buf := testBuffer(t, 200, 200, white)

	regions := FindRegions(buf, config.Default().Regions)

	if len(regions) != 0 {
		t.Errorf("uniform buffer: got %d regions, want 0", len(regions))
	}
}

func TestFindRegions_SingleBlock(t *testing.T) {
	// One 80x40 blue block centered on a white canvas.
	buf := testBuffer(t, 400, 300, white, paintRect{160, 130, 80, 40, blue})

	regions := FindRegions(buf, config.Default().Regions)

	if len(regions) != 1 {
		t.Fatalf("got %d regions, want exactly 1: %+v", len(regions), regions)
	}

	r := regions[0]
	if r.X != 160 || r.Y != 130 {
		t.Errorf("origin: got (%d,%d), want (160,130)", r.X, r.Y)
	}
	// Axis expansion walks in fixed steps from the interior seed, so the
	// recovered extent lands a couple of pixels inside the painted block.
	if r.Width < 70 || r.Width > 80 {
		t.Errorf("width: got %d, want within [70,80]", r.Width)
	}
	if r.Height < 34 || r.Height > 40 {
		t.Errorf("height: got %d, want within [34,40]", r.Height)
	}
}

func TestFindRegions_BackgroundSeedBesideBlockRejected(t *testing.T) {
	// A uniform white window two seed steps left of the block sees enough
	// of the block in its seed ring to clear the first contrast gate, but
	// its expansion runs across the whole background. The expanded
	// rectangle must fail the perimeter check and never be reported.
	buf := testBuffer(t, 400, 300, white, paintRect{160, 130, 80, 40, blue})

	regions := FindRegions(buf, config.Default().Regions)

	for _, r := range regions {
		if r.X < 150 || r.Y < 120 || r.X+r.Width > 250 || r.Y+r.Height > 180 {
			t.Errorf("background-spanning region %+v reported", r)
		}
	}
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1: %+v", len(regions), regions)
	}
}

func TestFindRegions_TooSmallBlockIgnored(t *testing.T) {
	// A 24x12 block is below the minimum region size.
	buf := testBuffer(t, 400, 300, white, paintRect{160, 140, 24, 12, blue})

	regions := FindRegions(buf, config.Default().Regions)

	if len(regions) != 0 {
		t.Errorf("undersized block: got %d regions, want 0: %+v", len(regions), regions)
	}
}

func TestFindRegions_BoundsInsideBuffer(t *testing.T) {
	buf := testBuffer(t, 300, 200, white,
		paintRect{40, 40, 100, 50, blue},
		paintRect{180, 120, 90, 60, color.RGBA{200, 30, 30, 255}},
	)

	regions := FindRegions(buf, config.Default().Regions)

	for _, r := range regions {
		if r.X < 0 || r.Y < 0 || r.X+r.Width > 300 || r.Y+r.Height > 200 {
			t.Errorf("region %+v escapes the 300x200 buffer", r)
		}
		if r.Width <= 0 || r.Height <= 0 {
			t.Errorf("region %+v has degenerate size", r)
		}
	}
}

func TestFindRegions_Deterministic(t *testing.T) {
	buf := testBuffer(t, 400, 300, white,
		paintRect{60, 60, 90, 45, blue},
		paintRect{220, 160, 100, 50, color.RGBA{30, 160, 60, 255}},
	)

	cfg := config.Default().Regions
	first := FindRegions(buf, cfg)
	second := FindRegions(buf, cfg)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scans differ: %+v vs %+v", first, second)
	}
}

func TestRectangle_Derived(t *testing.T) {
	r := Rectangle{X: 10, Y: 20, Width: 80, Height: 40}

	if r.Area() != 3200 {
		t.Errorf("Area: got %d, want 3200", r.Area())
	}
	if r.AspectRatio() != 2.0 {
		t.Errorf("AspectRatio: got %v, want 2.0", r.AspectRatio())
	}
}
