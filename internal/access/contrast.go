package access

import "github.com/lucasb-eyer/go-colorful"

// Level selects which WCAG conformance tier a check is held to.
type Level string

const (
	LevelAA  Level = "AA"
	LevelAAA Level = "AAA"
)

// Font sizes (in px) at which WCAG considers text "large", which relaxes
// the required contrast ratio. Bold text qualifies earlier.
const (
	LargeTextSize     = 18.0
	LargeTextSizeBold = 14.0

	// MinFontSize is the smallest legible size the HUD will accept.
	MinFontSize = 14.0
)

// RelativeLuminance computes the WCAG relative luminance of a color using
// linearized sRGB channels.
func RelativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio between two colors, in the
// range [1, 21]. Order of arguments does not matter.
func ContrastRatio(a, b colorful.Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// IsLargeText reports whether the given font qualifies as WCAG large text.
func IsLargeText(fontSize float64, bold bool) bool {
	if bold {
		return fontSize >= LargeTextSizeBold
	}
	return fontSize >= LargeTextSize
}

// RequiredRatio returns the contrast ratio the given conformance level
// demands for text of the given size and weight.
func RequiredRatio(level Level, fontSize float64, bold bool) float64 {
	large := IsLargeText(fontSize, bold)
	if level == LevelAAA {
		if large {
			return 4.5
		}
		return 7.0
	}
	if large {
		return 3.0
	}
	return 4.5
}

// ContrastResult is the outcome of a single contrast check.
type ContrastResult struct {
	Ratio    float64
	Required float64
	Level    Level
	Valid    bool
}

// CheckContrast evaluates a foreground/background pair against a WCAG
// level. Pure; the Validator wraps this with logging and the kill switch.
func CheckContrast(fg, bg colorful.Color, level Level, fontSize float64, bold bool) ContrastResult {
	ratio := ContrastRatio(fg, bg)
	required := RequiredRatio(level, fontSize, bold)
	return ContrastResult{
		Ratio:    ratio,
		Required: required,
		Level:    level,
		Valid:    ratio >= required,
	}
}

// FontSizeResult is the outcome of a single font-size check.
type FontSizeResult struct {
	Size     float64
	Required float64
	Valid    bool
}

// CheckFontSize validates a font size against the HUD minimum.
func CheckFontSize(size float64) FontSizeResult {
	return FontSizeResult{
		Size:     size,
		Required: MinFontSize,
		Valid:    size >= MinFontSize,
	}
}
