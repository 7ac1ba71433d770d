// Package access provides WCAG contrast and font-size validation for the
// game's themes, plus a high-contrast mode manager with persisted
// configuration. The math layer is pure; the validator and manager carry
// session state.
package access

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColor is the safe fallback for unparseable color strings.
// Parsing never fails; it degrades to this instead.
var DefaultColor = colorful.Color{R: 0, G: 0, B: 0}

// ParseColor accepts the color notations themes use: "#abc", "#aabbcc",
// "rgb(r, g, b)", and bare hex without the hash. Anything unparseable
// yields DefaultColor; a frame is never failed over a bad color string.
func ParseColor(s string) colorful.Color {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultColor
	}

	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGBFunc(s)
	}

	hex := s
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) == 4 {
		// Expand #abc to #aabbcc.
		hex = fmt.Sprintf("#%c%c%c%c%c%c", hex[1], hex[1], hex[2], hex[2], hex[3], hex[3])
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return DefaultColor
	}
	return c
}

// ParseColorInt converts a packed 0xRRGGBB value.
func ParseColorInt(v int) colorful.Color {
	if v < 0 || v > 0xffffff {
		return DefaultColor
	}
	return colorful.Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// parseRGBFunc handles "rgb(r, g, b)" with 0-255 channels.
func parseRGBFunc(s string) colorful.Color {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return DefaultColor
	}

	var ch [3]float64
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return DefaultColor
		}
		ch[i] = float64(n) / 255
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}
}
