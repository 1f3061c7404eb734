package css

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// NormalizeCondition produces the canonical text of an at-rule prelude such
// as a media query, a supports condition or a container query. Whitespace is
// collapsed, a single space follows every colon and identifiers are
// lowercased unless keepCase is set (container and layer names).
func NormalizeCondition(raw string, keepCase bool) (string, error) {
	tokens, err := lex(raw)
	if err != nil {
		return "", err
	}

	var (
		sb      strings.Builder
		space   bool
		prev    token
		written bool
	)
	for _, t := range tokens {
		switch t.tt {
		case css.WhitespaceToken, css.CommentToken:
			space = true
			continue
		}

		if written {
			switch {
			case t.tt == css.ColonToken:
			case prev.tt == css.ColonToken:
				sb.WriteByte(' ')
			case prev.tt == css.DelimToken && (prev.text == "<" || prev.text == ">") && t.tt == css.DelimToken && t.text == "=":
			case space && needsSpace(prev.tt, t.tt):
				sb.WriteByte(' ')
			}
		}
		space = false

		text := normalizeToken(t, keepCase)
		if t.tt == css.NumberToken || t.tt == css.DimensionToken {
			text = canonicalNumber(text)
		}
		sb.WriteString(text)
		prev, written = t, true
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: empty condition", ErrMalformed)
	}
	return sb.String(), nil
}

// canonicalNumber drops redundant zeros so "600.0px" and "600px" match.
func canonicalNumber(s string) string {
	num, unit := splitDimension(s)
	if num == "" {
		return s
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

// ParseMediaQuery parses a media query condition. Both the classic
// "(min-width: 600px)" and the range "(width >= 600px)" syntax are
// understood. Only the first query of a comma separated list is kept.
func ParseMediaQuery(raw string) (MediaQuery, error) {
	mq := MediaQuery{Raw: strings.TrimSpace(raw)}

	tokens, err := lex(raw)
	if err != nil {
		return mq, err
	}

	var (
		group []token
		depth int
	)
	for _, t := range tokens {
		switch t.tt {
		case css.WhitespaceToken, css.CommentToken:
			continue
		}

		if depth == 0 {
			switch t.tt {
			case css.CommaToken:
				return mq, nil
			case css.LeftParenthesisToken:
				depth, group = 1, group[:0]
			case css.IdentToken:
				switch word := strings.ToLower(t.text); word {
				case "not":
					if mq.Type == "" && len(mq.Features) == 0 {
						mq.Negated = true
					}
				case "only", "and", "or":
				default:
					if mq.Type == "" && len(mq.Features) == 0 {
						mq.Type = word
					}
				}
			}
			continue
		}

		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				mq.Features = append(mq.Features, parseFeature(group)...)
				continue
			}
		}
		group = append(group, t)
	}
	return mq, nil
}

var reversedOps = map[string]string{"<": ">", "<=": ">=", ">": "<", ">=": "<=", "=": "="}

// parseFeature turns the tokens of one parenthesized group into features.
// Nested groups such as "(not (color))" are not features and are skipped.
func parseFeature(group []token) []MediaFeature {
	if len(group) == 0 || group[0].tt == css.LeftParenthesisToken {
		return nil
	}

	// plain "(name: value)" or boolean "(name)"
	if group[0].tt == css.IdentToken && (len(group) == 1 || group[1].tt == css.ColonToken) {
		f := MediaFeature{Name: strings.ToLower(group[0].text)}
		if len(group) > 1 {
			f.Op = ":"
			f.Val = tokensValue(group[2:])
		}
		return []MediaFeature{f}
	}

	// range syntax: split into operands around comparison operators
	var (
		operands [][]token
		ops      []string
		cur      []token
	)
	for i := 0; i < len(group); i++ {
		t := group[i]
		if t.tt == css.DelimToken && (t.text == "<" || t.text == ">" || t.text == "=") {
			op := t.text
			if op != "=" && i+1 < len(group) && group[i+1].tt == css.DelimToken && group[i+1].text == "=" {
				op += "="
				i++
			}
			operands = append(operands, cur)
			ops = append(ops, op)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	operands = append(operands, cur)
	if len(ops) == 0 || len(operands) != len(ops)+1 {
		return nil
	}

	nameAt := -1
	for i, o := range operands {
		if len(o) == 1 && o[0].tt == css.IdentToken {
			nameAt = i
			break
		}
	}
	if nameAt < 0 {
		return nil
	}
	name := strings.ToLower(operands[nameAt][0].text)

	var features []MediaFeature
	if nameAt > 0 {
		// "value op name": the operator is read from the name's side
		features = append(features, MediaFeature{
			Name: name,
			Op:   reversedOps[ops[nameAt-1]],
			Val:  tokensValue(operands[nameAt-1]),
		})
	}
	if nameAt < len(ops) {
		features = append(features, MediaFeature{
			Name: name,
			Op:   ops[nameAt],
			Val:  tokensValue(operands[nameAt+1]),
		})
	}
	return features
}

// tokensValue converts feature value tokens into a Value.
func tokensValue(tokens []token) Value {
	if len(tokens) == 0 {
		return Value{}
	}

	var sb strings.Builder
	for i, t := range tokens {
		if i > 0 && t.tt != css.DelimToken && tokens[i-1].tt != css.DelimToken {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.text)
	}
	val := Value{Raw: sb.String()}

	if len(tokens) != 1 {
		val.Keyword = strings.ToLower(val.Raw)
		return val
	}
	t := tokens[0]
	switch t.tt {
	case css.DimensionToken:
		val.Value, val.Unit = parseDimension(t.text)
	case css.PercentageToken:
		val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(t.text, "%"), 64)
		val.Unit = "%"
	case css.NumberToken:
		val.Value, _ = strconv.ParseFloat(t.text, 64)
	case css.IdentToken:
		val.Keyword = strings.ToLower(t.text)
	case css.StringToken:
		val.Keyword = unquote(t.text)
	default:
		val.Keyword = val.Raw
	}
	return val
}
