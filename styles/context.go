package styles

import (
	"fmt"
	"strings"

	"atomcss/css"
)

// Context is the nesting path a declaration was found at. Selectors are kept
// in the canonical "&" form, outermost first. At-rule conditions of nested
// blocks are already combined.
type Context struct {
	Selectors []string
	Media     string
	Supports  string
	Layer     string
	Container string
}

// IsZero reports whether declarations of this context apply to the class
// itself with no conditions.
func (c Context) IsZero() bool {
	return len(c.Selectors) == 0 && c.Media == "" && c.Supports == "" && c.Layer == "" && c.Container == ""
}

// withSelector returns a copy of c nested into raw selector.
func (c Context) withSelector(raw string) (Context, error) {
	sel, err := normalizeSelector(raw)
	if err != nil {
		return c, err
	}
	res := c
	res.Selectors = append(c.Selectors[:len(c.Selectors):len(c.Selectors)], sel)
	return res, nil
}

// withAtRule returns a copy of c nested into at-rule block "keyword prelude".
func (c Context) withAtRule(keyword, prelude string) (Context, error) {
	keyword = strings.ToLower(keyword)
	switch keyword {
	case "@media", "@supports", "@layer", "@container":
	default:
		return c, fmt.Errorf("%w: %s", ErrUnsupportedAtRule, keyword)
	}

	keepCase := keyword == "@layer" || keyword == "@container"
	cond, err := css.NormalizeCondition(prelude, keepCase)
	if err != nil {
		return c, fmt.Errorf("%s: %w", keyword, err)
	}

	res := c
	switch keyword {
	case "@media":
		res.Media = join(c.Media, " and ", cond)
	case "@supports":
		res.Supports = join(c.Supports, " and ", cond)
	case "@layer":
		res.Layer = join(c.Layer, ".", cond)
	case "@container":
		res.Container = join(c.Container, " and ", cond)
	}
	return res, nil
}

func join(outer, sep, inner string) string {
	if outer == "" {
		return inner
	}
	return outer + sep + inner
}

// key is the canonical representation of the context used for hashing.
func (c Context) key() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(c.Selectors, "\x1e"))
	for _, s := range [...]string{c.Media, c.Supports, c.Layer, c.Container} {
		sb.WriteByte('\x1f')
		sb.WriteString(s)
	}
	return sb.String()
}

// selector produces the complete rule selector for the class name. Every
// level of nesting is expanded against every comma separated alternative
// of its parent.
func (c Context) selector(className string) string {
	parents := []string{"." + className}
	for _, sel := range c.Selectors {
		var next []string
		for _, alt := range css.SplitTopLevel(sel, ',') {
			for _, p := range parents {
				next = append(next, strings.ReplaceAll(alt, "&", p))
			}
		}
		parents = next
	}
	return strings.Join(parents, ",")
}

// wrap places rule into the at-rule blocks of the context.
func (c Context) wrap(rule string) string {
	if c.Container != "" {
		rule = "@container " + c.Container + "{" + rule + "}"
	}
	if c.Layer != "" {
		rule = "@layer " + c.Layer + "{" + rule + "}"
	}
	if c.Supports != "" {
		rule = "@supports " + c.Supports + "{" + rule + "}"
	}
	if c.Media != "" {
		rule = "@media " + c.Media + "{" + rule + "}"
	}
	return rule
}

// normalizeSelector converts a nested selector key into the "&" form:
// ":hover" becomes "&:hover", "> div" becomes "& > div" and ".child"
// becomes "& .child". Selectors already referencing the parent are only
// whitespace-collapsed.
func normalizeSelector(raw string) (string, error) {
	if strings.ContainsAny(raw, ";{}") {
		return "", fmt.Errorf("%w: invalid selector %q", ErrMalformedDeclaration, raw)
	}

	alts := css.SplitTopLevel(raw, ',')
	for i, alt := range alts {
		alt = strings.Join(strings.Fields(alt), " ")
		switch {
		case alt == "":
			return "", fmt.Errorf("%w: empty selector in %q", ErrMalformedDeclaration, raw)
		case strings.Contains(alt, "&"):
		case alt[0] == ':' || alt[0] == '[':
			alt = "&" + alt
		default:
			alt = "& " + alt
		}
		alts[i] = alt
	}
	return strings.Join(alts, ","), nil
}
