package css

import (
	"fmt"
	"strings"
)

// HyphenateProperty converts a camelCase property name into its CSS form:
// "backgroundColor" becomes "background-color", "WebkitBoxFlex" becomes
// "-webkit-box-flex" and "msFlex" becomes "-ms-flex". Names that already
// are in CSS form are returned lowercased. Custom properties are returned
// unchanged.
func HyphenateProperty(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}

	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	res := sb.String()
	if strings.HasPrefix(res, "ms-") {
		res = "-" + res
	}
	return res
}

// NormalizeProperty hyphenates and validates a property name.
func NormalizeProperty(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty property name", ErrMalformed)
	}

	if strings.HasPrefix(name, "--") {
		if len(name) == 2 || strings.ContainsAny(name, " \t\n\r\f:;{}()[]\"'!") {
			return "", fmt.Errorf("%w: invalid custom property %q", ErrMalformed, name)
		}
		return name, nil
	}

	res := HyphenateProperty(name)
	body := strings.TrimPrefix(res, "-")
	if body == "" || body[0] < 'a' || body[0] > 'z' {
		return "", fmt.Errorf("%w: invalid property name %q", ErrMalformed, name)
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
			return "", fmt.Errorf("%w: invalid property name %q", ErrMalformed, name)
		}
	}
	if strings.Contains(body, "--") || strings.HasSuffix(body, "-") {
		return "", fmt.Errorf("%w: invalid property name %q", ErrMalformed, name)
	}
	return res, nil
}
