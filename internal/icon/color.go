package icon

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	LightText = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	DarkText  = color.NRGBA{0x00, 0x00, 0x00, 0xff}
)

// ParseHex parses #rgb, #rrggbb or #rrggbbaa
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex formats a color as #rrggbb (alpha dropped)
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luminance returns 0.299R + 0.587G + 0.114B normalised to 0..1
func Luminance(c color.Color) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return (0.299*float64(n.R) + 0.587*float64(n.G) + 0.114*float64(n.B)) / 255
}

// IsLight reports whether c is at or above the visual midpoint
func IsLight(c color.Color) bool {
	return Luminance(c) >= 0.5
}

// LabelColor picks a legible text color for a background
func LabelColor(bg color.Color) color.NRGBA {
	if IsLight(bg) {
		return DarkText
	}
	return LightText
}

// OutlineColor contrasts with the label color
func OutlineColor(bg color.Color) color.NRGBA {
	if IsLight(bg) {
		return LightText
	}
	return DarkText
}

// Brighten multiplies the RGB channels by factor, clamping at 255
func Brighten(c color.NRGBA, factor float64) color.NRGBA {
	scale := func(v uint8) uint8 {
		f := float64(v) * factor
		if f > 255 {
			return 255
		}
		if f < 0 {
			return 0
		}
		return uint8(f)
	}
	return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// Mix linearly interpolates between a and b
func Mix(a, b color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
