// Package hexcolor provides the color-math primitives behind swatch
// rendering: hex parsing, WCAG relative luminance, and a fast perceived
// brightness heuristic for picking legible text colors.
//
// Every function is pure and total: malformed input degrades to a defined
// fallback value instead of returning an error. Call IsValidHex first when
// the caller needs to distinguish a real black from the fallback.
package hexcolor

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RGB holds one 8-bit channel value per color component.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex formats the triple as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Black and White are the two text colors ContrastColor chooses between.
const (
	Black = "#000000"
	White = "#ffffff"
)

// hexPattern matches an optional # followed by exactly 6 or exactly 3 hex
// digits, anchored start to end. Case-insensitive by character class.
var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)

// IsValidHex reports whether s is a 3- or 6-digit hex color, with or
// without a leading #.
func IsValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Normalize guarantees a leading # on a hex value. It does not validate;
// callers check IsValidHex first.
func Normalize(hex string) string {
	if strings.HasPrefix(hex, "#") {
		return hex
	}
	return "#" + hex
}

// HexToRGB parses a hex color into its channel values. The leading # is
// optional and parsing is case-insensitive. 3-digit shorthand is expanded
// digit-by-digit ("#abc" reads as "#aabbcc") so the parser accepts exactly
// what IsValidHex accepts.
//
// Malformed input (wrong length, non-hex characters) returns RGB{0, 0, 0}.
// That is a deliberate degrade-to-black policy, not an error signal.
func HexToRGB(hex string) RGB {
	h := strings.TrimPrefix(hex, "#")

	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Luminance computes the WCAG relative luminance of a hex color: each
// channel is normalized to [0,1], linearized with the sRGB gamma transfer
// function, and the linear channels are combined with the ITU-R BT.709
// weights. The result is in [0,1] — 0.0 for black, 1.0 for white.
//
// This is a reusable primitive; ContrastColor intentionally uses the
// cheaper perceived-brightness heuristic instead (the two coexist as
// independent, documented algorithms). Malformed input inherits HexToRGB's
// degrade-to-black and yields 0.
func Luminance(hex string) float64 {
	c := HexToRGB(hex)
	r := linearize(float64(c.R) / 255.0)
	g := linearize(float64(c.G) / 255.0)
	b := linearize(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// linearize converts an sRGB channel value in [0,1] to linear light.
func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastColor picks pure black or pure white text for a given background
// color. It scores the background with the classic perceived-brightness
// approximation (299R + 587G + 114B) / 1000 and thresholds at 128:
// brighter backgrounds get Black, darker ones get White.
//
// The returned value is always exactly Black or White. Malformed input
// degrades to black per HexToRGB, which scores 0 and therefore gets White.
func ContrastColor(hex string) string {
	c := HexToRGB(hex)
	brightness := (float64(c.R)*299 + float64(c.G)*587 + float64(c.B)*114) / 1000
	if brightness > 128 {
		return Black
	}
	return White
}
