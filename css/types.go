package css

import (
	"strconv"
	"strings"
	"unicode"
)

// Value represents a parsed CSS dimension, number or keyword.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "600px", "print")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "rem", "pt", etc.
	Keyword string  // Keyword if applicable
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Pixels converts an absolute or font relative length into CSS pixels.
// Font relative units are resolved against basePx. Returns false for
// lengths that cannot be compared at rest (viewport units, keywords).
func (v Value) Pixels(basePx float64) (float64, bool) {
	if !v.IsNumeric() {
		return 0, false
	}
	switch v.Unit {
	case "px":
		return v.Value, true
	case "em", "rem":
		return v.Value * basePx, true
	case "pt":
		return v.Value * 4 / 3, true
	case "pc":
		return v.Value * 16, true
	case "in":
		return v.Value * 96, true
	case "cm":
		return v.Value * 96 / 2.54, true
	case "mm":
		return v.Value * 96 / 25.4, true
	case "":
		// only unitless zero is a valid length
		if v.Value == 0 {
			return 0, true
		}
	}
	return 0, false
}

// MediaQuery represents a parsed @media query condition. Only the first
// query of a comma separated list is retained, which is enough to order
// breakpoints.
type MediaQuery struct {
	Raw      string         // Original media query string
	Type     string         // Media type (e.g., "screen", "print") if present
	Negated  bool           // true if "not" modifier was used on main type
	Features []MediaFeature // Parenthesized conditions
}

// MediaFeature represents a single media feature condition in a media query.
type MediaFeature struct {
	Name string // Feature name (e.g., "min-width", "width", "orientation")
	Op   string // ":" for plain features, ">=", ">", "<=", "<", "=" for ranges
	Val  Value  // Feature value, empty for boolean features
}

// MinWidth returns the lower width bound of the query if it has one.
func (mq MediaQuery) MinWidth() (Value, bool) {
	if mq.Negated {
		return Value{}, false
	}
	for _, f := range mq.Features {
		switch {
		case f.Name == "min-width" && f.Op == ":":
			return f.Val, true
		case f.Name == "width" && (f.Op == ">=" || f.Op == ">"):
			return f.Val, true
		}
	}
	return Value{}, false
}

// MaxWidth returns the upper width bound of the query if it has one.
func (mq MediaQuery) MaxWidth() (Value, bool) {
	if mq.Negated {
		return Value{}, false
	}
	for _, f := range mq.Features {
		switch {
		case f.Name == "max-width" && f.Op == ":":
			return f.Val, true
		case f.Name == "width" && (f.Op == "<=" || f.Op == "<"):
			return f.Val, true
		}
	}
	return Value{}, false
}

// splitDimension splits dimension token text into its number and unit parts.
func splitDimension(s string) (string, string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	// exponent, but only when followed by digits - "1em" is not an exponent
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	return s[:i], s[i:]
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	num, unit := splitDimension(s)
	if num == "" {
		return 0, ""
	}
	v, _ := strconv.ParseFloat(num, 64)
	return v, strings.ToLower(unit)
}
