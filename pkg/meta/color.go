package meta

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// String returns the canonical "R,G,B,A" form. Each component is written with
// the shortest representation that parses back to the same float32.
func (c Color) String() string {
	parts := [4]string{
		strconv.FormatFloat(float64(c.R), 'g', -1, 32),
		strconv.FormatFloat(float64(c.G), 'g', -1, 32),
		strconv.FormatFloat(float64(c.B), 'g', -1, 32),
		strconv.FormatFloat(float64(c.A), 'g', -1, 32),
	}
	return strings.Join(parts[:], ",")
}

// ParseColor parses a color in "R,G,B,A" float form or in hex form
// ("rrggbb" or "rrggbbaa", optionally prefixed with '#').
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		return parseFloatColor(s)
	}
	return parseHexColor(s)
}

func parseFloatColor(s string) (Color, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return Color{}, fmt.Errorf("color %q: expected 4 components, got %d", s, len(fields))
	}
	var v [4]float32
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: component %d: %w", s, i, err)
		}
		v[i] = float32(x)
	}
	return Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func parseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: expected 6 or 8 hex digits", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xff
	}
	return Color{
		R: float32((n>>24)&0xff) / 255,
		G: float32((n>>16)&0xff) / 255,
		B: float32((n>>8)&0xff) / 255,
		A: float32(n&0xff) / 255,
	}, nil
}
