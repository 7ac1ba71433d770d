package access

import "fmt"

// ViolationType categorizes a logged accessibility violation.
type ViolationType string

const (
	ViolationContrast ViolationType = "contrast"
	ViolationFontSize ViolationType = "font_size"
)

// Violation is one failed check, kept in the validator's append-only log.
type Violation struct {
	Type      ViolationType
	ElementID string
	Actual    float64
	Required  float64
	Message   string
}

// Validator runs accessibility checks for HUD and theme elements and
// records failures. The global kill switch turns every check into a
// pass so audits can be toggled off without touching call sites.
type Validator struct {
	enabled    bool
	violations []Violation
}

// NewValidator returns an enabled validator with an empty log.
func NewValidator() *Validator {
	return &Validator{enabled: true}
}

// SetEnabled toggles validation globally. While disabled, every check
// reports valid and nothing is logged.
func (v *Validator) SetEnabled(enabled bool) { v.enabled = enabled }

// Enabled reports whether checks are currently active.
func (v *Validator) Enabled() bool { return v.enabled }

// ValidateContrast checks a foreground/background color pair for the
// element. Color strings go through ParseColor, so malformed input
// degrades to the fallback color rather than erroring.
func (v *Validator) ValidateContrast(elementID, fg, bg string, level Level, fontSize float64, bold bool) ContrastResult {
	if !v.enabled {
		return ContrastResult{Level: level, Valid: true}
	}

	res := CheckContrast(ParseColor(fg), ParseColor(bg), level, fontSize, bold)
	if !res.Valid {
		v.violations = append(v.violations, Violation{
			Type:      ViolationContrast,
			ElementID: elementID,
			Actual:    res.Ratio,
			Required:  res.Required,
			Message:   fmt.Sprintf("%s: contrast %.2f below %s requirement %.2f", elementID, res.Ratio, level, res.Required),
		})
	}
	return res
}

// ValidateFontSize checks an element's font size against the HUD minimum.
func (v *Validator) ValidateFontSize(elementID string, size float64) FontSizeResult {
	if !v.enabled {
		return FontSizeResult{Size: size, Required: MinFontSize, Valid: true}
	}

	res := CheckFontSize(size)
	if !res.Valid {
		v.violations = append(v.violations, Violation{
			Type:      ViolationFontSize,
			ElementID: elementID,
			Actual:    size,
			Required:  res.Required,
			Message:   fmt.Sprintf("%s: font size %.1fpx below minimum %.1fpx", elementID, size, res.Required),
		})
	}
	return res
}

// Violations returns a copy of the log in recording order.
func (v *Validator) Violations() []Violation {
	out := make([]Violation, len(v.violations))
	copy(out, v.violations)
	return out
}

// ClearViolations empties the log without touching the enabled flag.
func (v *Validator) ClearViolations() {
	v.violations = v.violations[:0]
}
