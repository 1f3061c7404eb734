package styles

import (
	"strings"

	"atomcss/css"
)

var mirroredProperties = map[string]string{}

func init() {
	pairs := [][2]string{
		{"left", "right"},
		{"margin-left", "margin-right"},
		{"padding-left", "padding-right"},
		{"border-left", "border-right"},
		{"border-left-width", "border-right-width"},
		{"border-left-style", "border-right-style"},
		{"border-left-color", "border-right-color"},
		{"border-top-left-radius", "border-top-right-radius"},
		{"border-bottom-left-radius", "border-bottom-right-radius"},
		{"scroll-margin-left", "scroll-margin-right"},
		{"scroll-padding-left", "scroll-padding-right"},
	}
	for _, p := range pairs {
		mirroredProperties[p[0]] = p[1]
		mirroredProperties[p[1]] = p[0]
	}
}

var (
	sideKeywords = map[string]string{"left": "right", "right": "left"}

	// properties whose left and right keywords change meaning with direction
	keywordProperties = map[string]map[string]string{
		"float":                 sideKeywords,
		"clear":                 sideKeywords,
		"text-align":            sideKeywords,
		"text-align-last":       sideKeywords,
		"background-position-x": sideKeywords,
		"direction":             {"ltr": "rtl", "rtl": "ltr"},
		"cursor": {
			"e-resize":    "w-resize",
			"w-resize":    "e-resize",
			"ne-resize":   "nw-resize",
			"nw-resize":   "ne-resize",
			"se-resize":   "sw-resize",
			"sw-resize":   "se-resize",
			"nesw-resize": "nwse-resize",
			"nwse-resize": "nesw-resize",
		},
	}

	// four value shorthands: top right bottom left
	boxShorthands = map[string]bool{
		"margin":         true,
		"padding":        true,
		"border-width":   true,
		"border-style":   true,
		"border-color":   true,
		"inset":          true,
		"scroll-margin":  true,
		"scroll-padding": true,
	}
)

// Mirror returns the right-to-left variant of d. The second result is false
// when the declaration is not direction sensitive or carries /* @noflip */.
func Mirror(d Declaration) (Declaration, bool) {
	if d.NoFlip {
		return d, false
	}

	res := d
	res.Values = make([]string, len(d.Values))
	copy(res.Values, d.Values)

	changed := false
	if p, ok := mirroredProperties[d.Property]; ok {
		res.Property, changed = p, true
	}

	for i, v := range res.Values {
		if mv := mirrorValue(d.Property, v); mv != v {
			res.Values[i], changed = mv, true
		}
	}
	if !changed {
		return d, false
	}
	return res, true
}

func mirrorValue(property, value string) string {
	if kw, ok := keywordProperties[property]; ok {
		fields := css.Fields(value)
		for i, f := range fields {
			if m, ok := kw[f]; ok {
				fields[i] = m
			}
		}
		return strings.Join(fields, " ")
	}

	if boxShorthands[property] {
		fields := css.Fields(value)
		if len(fields) == 4 && fields[1] != fields[3] {
			fields[1], fields[3] = fields[3], fields[1]
			return strings.Join(fields, " ")
		}
		return value
	}

	if property == "border-radius" {
		// radii are listed clockwise from top-left, "/" separates vertical radii
		parts := strings.Split(value, "/")
		changed := false
		for i, part := range parts {
			part = strings.TrimSpace(part)
			if m := mirrorRadii(part); m != part {
				parts[i], changed = m, true
			} else {
				parts[i] = part
			}
		}
		if !changed {
			return value
		}
		return strings.Join(parts, " / ")
	}
	return value
}

func mirrorRadii(value string) string {
	fields := css.Fields(value)
	switch len(fields) {
	case 2:
		// top-left/bottom-right and top-right/bottom-left
		return strings.Join([]string{fields[1], fields[0]}, " ")
	case 3:
		// bottom-left takes top-right
		return strings.Join([]string{fields[1], fields[0], fields[1], fields[2]}, " ")
	case 4:
		return strings.Join([]string{fields[1], fields[0], fields[3], fields[2]}, " ")
	}
	return value
}
