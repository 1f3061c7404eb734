package styles

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Keyframes maps frame selectors ("from", "to", "50%") to declarations.
type Keyframes map[string]Style

type frame struct {
	selector string
	offset   float64
	body     string
	rtl      string
}

// frameSelector canonicalizes "from, 50%" and returns offset of its first
// position.
func frameSelector(raw string) (string, float64, error) {
	var (
		parts  []string
		offset = -1.0
	)
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		var v float64
		switch {
		case p == "from":
			v = 0
		case p == "to":
			v = 100
		case strings.HasSuffix(p, "%"):
			f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
			if err != nil || f < 0 || f > 100 {
				return "", 0, fmt.Errorf("%w: invalid keyframe selector %q", ErrMalformedDeclaration, raw)
			}
			v = f
			p = strconv.FormatFloat(f, 'f', -1, 64) + "%"
		default:
			return "", 0, fmt.Errorf("%w: invalid keyframe selector %q", ErrMalformedDeclaration, raw)
		}
		if offset < 0 {
			offset = v
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ","), offset, nil
}

// compileKeyframes renders keyframes body and its right-to-left variant.
// Frames are ordered by offset, declarations of a frame by property.
func compileKeyframes(kf map[string]any) (string, string, error) {
	if len(kf) == 0 {
		return "", "", fmt.Errorf("%w: empty keyframes", ErrMalformedDeclaration)
	}

	frames := make([]frame, 0, len(kf))
	for key, v := range kf {
		sel, offset, err := frameSelector(key)
		if err != nil {
			return "", "", err
		}
		decls, ok := asStyle(v)
		if !ok {
			return "", "", fmt.Errorf("%w: keyframe %q is not a declarations block", ErrMalformedDeclaration, key)
		}

		f := frame{selector: sel, offset: offset}
		var body, rtl strings.Builder
		for _, prop := range sortedKeys(decls) {
			val := decls[prop]
			if val == nil {
				continue
			}
			if _, nested := asStyle(val); nested {
				return "", "", fmt.Errorf("%w: nested block %q in keyframe %q", ErrMalformedDeclaration, prop, key)
			}
			d, err := NewDeclaration(prop, val, Context{})
			if err != nil {
				return "", "", err
			}
			body.WriteString(d.body())
			if m, ok := Mirror(d); ok {
				rtl.WriteString(m.body())
			} else {
				rtl.WriteString(d.body())
			}
		}
		f.body, f.rtl = body.String(), rtl.String()
		frames = append(frames, f)
	}

	slices.SortFunc(frames, func(a, b frame) int {
		switch {
		case a.offset < b.offset:
			return -1
		case a.offset > b.offset:
			return 1
		}
		return strings.Compare(a.selector, b.selector)
	})

	var ltr, rtl strings.Builder
	for _, f := range frames {
		ltr.WriteString(f.selector + "{" + f.body + "}")
		rtl.WriteString(f.selector + "{" + f.rtl + "}")
	}
	return ltr.String(), rtl.String(), nil
}

// InsertKeyframes makes sure keyframes are defined and returns animation
// names for both directions. Names are equal when the animation does not
// depend on direction.
func (r *Renderer) InsertKeyframes(kf map[string]any) (string, string, error) {
	body, rtlBody, err := compileKeyframes(kf)
	if err != nil {
		return "", "", err
	}

	h := r.hasher.keyframesHash(body, rtlBody)
	rec, err := r.insert(h, BucketKeyframes, func() (Classes, []Entry) {
		names := Classes{LTR: r.hasher.keyframesName(body)}
		entries := []Entry{{Rule: "@keyframes " + names.LTR + "{" + body + "}"}}
		if rtlBody != body {
			names.RTL = r.hasher.keyframesName(rtlBody)
			entries = append(entries, Entry{Rule: "@keyframes " + names.RTL + "{" + rtlBody + "}"})
		}
		return names, entries
	})
	if err != nil {
		return "", "", err
	}
	return rec.Classes.LTR, rec.Classes.For(true), nil
}

// animationNames converts animation-name value which may contain keyframes
// definitions into lists of names for both directions. The boolean result
// is false when the value has no keyframes definitions.
func (r *Renderer) animationNames(value any) ([]string, []string, bool, error) {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	default:
		items = []any{v}
	}

	var (
		ltr, rtl []string
		found    bool
	)
	for _, item := range items {
		if kf, ok := asKeyframes(item); ok {
			ltrName, rtlName, err := r.InsertKeyframes(kf)
			if err != nil {
				return nil, nil, true, err
			}
			ltr, rtl, found = append(ltr, ltrName), append(rtl, rtlName), true
			continue
		}
		s, err := serializeValue(item)
		if err != nil {
			return nil, nil, found, fmt.Errorf("%w: animation-name: %w", ErrMalformedDeclaration, err)
		}
		ltr, rtl = append(ltr, s), append(rtl, s)
	}
	return ltr, rtl, found, nil
}

func asKeyframes(v any) (map[string]any, bool) {
	if kf, ok := v.(Keyframes); ok {
		res := make(map[string]any, len(kf))
		for k, s := range kf {
			res[k] = s
		}
		return res, true
	}
	return asStyle(v)
}
