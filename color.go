package raycursor

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned when a color name or hex string can't be parsed.
var ErrUnknownColor = errors.New("unknown color")

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// NewColorFromRGBA converts a standard library color (like the ones in golang.org/x/image/colornames) into a Color.
func NewColorFromRGBA(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}
	// color.Color components are alpha-premultiplied
	return Color{
		float32(r) / float32(a),
		float32(g) / float32(a),
		float32(b) / float32(a),
		float32(a) / 0xffff,
	}
}

// Lerp returns the color linearly interpolated from this Color to the other one by the percentage given (0 returns
// this Color, 1 returns other). The percentage isn't clamped.
func (c Color) Lerp(other Color, percentage float64) Color {
	p := float32(percentage)
	return Color{
		c.R + (other.R-c.R)*p,
		c.G + (other.G-c.G)*p,
		c.B + (other.B-c.B)*p,
		c.A + (other.A-c.A)*p,
	}
}

// MultiplyRGB returns a copy of the Color with its R, G and B components scaled by the value given; alpha is left alone.
func (c Color) MultiplyRGB(value float32) Color {
	c.R *= value
	c.G *= value
	c.B *= value
	return c
}

// WithAlpha returns a copy of the Color with its alpha set to the value given.
func (c Color) WithAlpha(alpha float32) Color {
	c.A = alpha
	return c
}

// ToRGBA64 converts the Color to a color.RGBA64, clamping each component to the 0 - 1 range.
func (c Color) ToRGBA64() color.RGBA64 {
	a := clamp(c.A, 0, 1)
	return color.RGBA64{
		uint16(clamp(c.R, 0, 1) * a * math.MaxUint16),
		uint16(clamp(c.G, 0, 1) * a * math.MaxUint16),
		uint16(clamp(c.B, 0, 1) * a * math.MaxUint16),
		uint16(a * math.MaxUint16),
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.ToRGBA64().RGBA()
}

// ConvertTosRGB returns a copy of the linear Color converted to the sRGB color space.
func (c Color) ConvertTosRGB() Color {
	c.R = linearTosRGB(c.R)
	c.G = linearTosRGB(c.G)
	c.B = linearTosRGB(c.B)
	return c
}

func linearTosRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return float32(1.055*math.Pow(float64(v), 1/2.4) - 0.055)
}

// ParseColor parses a color either by its CSS / SVG name (like "skyblue", see golang.org/x/image/colornames) or as a
// hex string ("#rgb", "#rrggbb" or "#rrggbbaa").
func ParseColor(text string) (Color, error) {

	text = strings.ToLower(strings.TrimSpace(text))

	if c, ok := colornames.Map[text]; ok {
		return NewColorFromRGBA(c), nil
	}

	hex, isHex := strings.CutPrefix(text, "#")
	if !isHex {
		return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, text)
	}

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, text)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %w", ErrUnknownColor, text, err)
	}

	return NewColor(
		float32((v>>24)&0xff)/255,
		float32((v>>16)&0xff)/255,
		float32((v>>8)&0xff)/255,
		float32(v&0xff)/255,
	), nil

}
