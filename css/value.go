package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/text/unicode/norm"
)

// ErrMalformed is returned for property names and values that cannot be
// turned into a single declaration.
var ErrMalformed = errors.New("malformed css")

// Normalized is the canonical form of a declaration value.
type Normalized struct {
	Text   string
	NoFlip bool // value carried a /* @noflip */ comment
}

// properties whose identifiers are author defined names and must keep case
var caseSensitive = map[string]bool{
	"font-family":           true,
	"font":                  true,
	"font-feature-settings": true,
	"animation":             true,
	"animation-name":        true,
	"grid":                  true,
	"grid-area":             true,
	"grid-template":         true,
	"grid-template-areas":   true,
	"grid-template-rows":    true,
	"grid-template-columns": true,
	"grid-row":              true,
	"grid-row-start":        true,
	"grid-row-end":          true,
	"grid-column":           true,
	"grid-column-start":     true,
	"grid-column-end":       true,
	"content":               true,
	"counter-reset":         true,
	"counter-increment":     true,
	"counter-set":           true,
	"quotes":                true,
	"container":             true,
	"container-name":        true,
	"anchor-name":           true,
	"position-anchor":       true,
	"view-transition-name":  true,
}

// CaseSensitive reports whether identifiers in values of property must keep
// their case.
func CaseSensitive(property string) bool {
	return caseSensitive[property] || strings.HasPrefix(property, "--")
}

type token struct {
	tt   css.TokenType
	text string
}

// lex splits value into tokens, rejecting anything that would end the
// declaration or escape the block it is placed into.
func lex(value string) ([]token, error) {
	l := css.NewLexer(parse.NewInputString(value))
	var (
		tokens []token
		parens []byte
	)
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			if len(parens) > 0 {
				return nil, fmt.Errorf("%w: unbalanced '%c' in %q", ErrMalformed, parens[len(parens)-1], value)
			}
			return tokens, nil
		case css.BadStringToken:
			return nil, fmt.Errorf("%w: unterminated string in %q", ErrMalformed, value)
		case css.BadURLToken:
			return nil, fmt.Errorf("%w: bad url in %q", ErrMalformed, value)
		case css.SemicolonToken, css.LeftBraceToken, css.RightBraceToken, css.CDOToken, css.CDCToken:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrMalformed, string(data), value)
		case css.FunctionToken, css.LeftParenthesisToken:
			parens = append(parens, '(')
		case css.LeftBracketToken:
			parens = append(parens, '[')
		case css.RightParenthesisToken, css.RightBracketToken:
			open := byte('(')
			if tt == css.RightBracketToken {
				open = '['
			}
			if len(parens) == 0 || parens[len(parens)-1] != open {
				return nil, fmt.Errorf("%w: unbalanced %q in %q", ErrMalformed, string(data), value)
			}
			parens = parens[:len(parens)-1]
		}
		tokens = append(tokens, token{tt: tt, text: string(data)})
	}
}

// NormalizeValue produces the canonical text of a declaration value of the
// given (already normalized) property: whitespace is collapsed, comments are
// dropped and case-insensitive tokens are lowercased. Two values that differ
// only in these respects normalize to the same text.
func NormalizeValue(property, value string) (Normalized, error) {
	tokens, err := lex(value)
	if err != nil {
		return Normalized{}, err
	}

	keepCase := CaseSensitive(property)
	var (
		res     Normalized
		sb      strings.Builder
		space   bool
		prev    css.TokenType = css.ErrorToken
		written bool
	)
	for _, t := range tokens {
		switch t.tt {
		case css.WhitespaceToken:
			space = true
			continue
		case css.CommentToken:
			if strings.Contains(t.text, "@noflip") {
				res.NoFlip = true
			}
			// comments separate tokens the same way whitespace does
			space = true
			continue
		}

		if written && space && needsSpace(prev, t.tt) {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteString(normalizeToken(t, keepCase))
		prev, written = t.tt, true
	}

	res.Text = sb.String()
	if res.Text == "" {
		return Normalized{}, fmt.Errorf("%w: empty value", ErrMalformed)
	}
	return res, nil
}

func needsSpace(prev, next css.TokenType) bool {
	switch prev {
	case css.LeftParenthesisToken, css.FunctionToken, css.CommaToken, css.LeftBracketToken:
		return false
	}
	switch next {
	case css.RightParenthesisToken, css.CommaToken, css.RightBracketToken:
		return false
	}
	return true
}

func normalizeToken(t token, keepCase bool) string {
	switch t.tt {
	case css.IdentToken, css.HashToken:
		if keepCase || strings.HasPrefix(t.text, "--") {
			return t.text
		}
		return strings.ToLower(t.text)
	case css.FunctionToken, css.AtKeywordToken:
		return strings.ToLower(t.text)
	case css.DimensionToken:
		num, unit := splitDimension(t.text)
		return num + strings.ToLower(unit)
	case css.StringToken:
		return norm.NFC.String(t.text)
	case css.URLToken:
		if len(t.text) > 4 {
			return strings.ToLower(t.text[:4]) + t.text[4:]
		}
		return t.text
	}
	return t.text
}

// Fields returns the top level space separated parts of a normalized value.
// Parenthesized groups and strings are kept whole.
func Fields(value string) []string {
	var (
		fields []string
		depth  int
		quote  byte
		start  = -1
	)
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ' ' && depth == 0:
			if start >= 0 {
				fields = append(fields, value[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, value[start:])
	}
	return fields
}

// SplitTopLevel splits s on sep when sep is not inside parentheses,
// brackets or strings. Parts are trimmed.
func SplitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
