// Package charts renders engine outputs as PNG figures. Styling is an
// explicit value passed into the renderer, never process-global state, so
// concurrent report generations cannot interfere.
package charts

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Size is a figure size in inches.
type Size struct {
	Width  float64
	Height float64
}

// Style groups the palette and figure sizes used by every chart.
type Style struct {
	Palette  []string
	Standard Size
	Wide     Size
}

// DefaultStyle mirrors the reference report styling.
func DefaultStyle() Style {
	return Style{
		Palette:  []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FECA57"},
		Standard: Size{Width: 10, Height: 6},
		Wide:     Size{Width: 12, Height: 6},
	}
}

// Color returns the i-th palette color, cycling past the end.
func (s Style) Color(i int) color.Color {
	if len(s.Palette) == 0 {
		return color.Black
	}
	c, err := parseHexColor(s.Palette[i%len(s.Palette)])
	if err != nil {
		return color.Black
	}
	return c
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("charts: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("charts: invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
