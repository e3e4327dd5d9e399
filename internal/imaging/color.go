package imaging

import (
	"encoding/json"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color value.
//
// Colors serialize to and from the external "#rrggbb" hex form; the round
// trip through JSON is lossless. Alpha never appears here: transparency is
// handled at sampling time, before a Color is produced.
type Color struct {
	R uint8 // Red component (0-255)
	G uint8 // Green component (0-255)
	B uint8 // Blue component (0-255)
}

// RGB constructs a Color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseColor parses a "#rrggbb" hex string. Only the full six-digit form
// is accepted; short "#rgb" spellings are rejected so the round trip with
// Hex stays exact.
func ParseColor(hex string) (Color, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// colorful returns the color in go-colorful's normalized representation.
func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// Luminance returns the perceived brightness in [0,1] using ITU-R BT.601
// weights (0.299*R + 0.587*G + 0.114*B) over normalized channels.
func (c Color) Luminance() float64 {
	f := c.colorful()
	return 0.299*f.R + 0.587*f.G + 0.114*f.B
}

// DistanceRGB returns the Euclidean distance to o in RGB space, scaled to
// 8-bit channel units (identical colors are 0, black vs white is ~441).
func (c Color) DistanceRGB(o Color) float64 {
	return c.colorful().DistanceRgb(o.colorful()) * 255.0
}

// MarshalJSON encodes the color as a "#rrggbb" string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON decodes a "#rrggbb" string.
func (c *Color) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err != nil {
		return err
	}
	parsed, err := ParseColor(hex)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ContrastRatio returns the contrast ratio between two colors:
// (max(L1,L2)+0.05) / (min(L1,L2)+0.05). The result is symmetric and at
// least 1.0.
func ContrastRatio(a, b Color) float64 {
	la, lb := a.Luminance(), b.Luminance()
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}
