package styles

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"atomcss/css"
)

// Declaration is a single normalized property with its value in a context.
// A fallback array produces more than one value; all of them end up in the
// same rule in order.
type Declaration struct {
	Property string
	Values   []string
	Context  Context
	NoFlip   bool
}

// NewDeclaration normalizes property and value. Value may be a string, any
// integer or floating point number, or a slice of those for fallbacks.
func NewDeclaration(property string, value any, ctx Context) (Declaration, error) {
	prop, err := css.NormalizeProperty(property)
	if err != nil {
		return Declaration{}, fmt.Errorf("%w: %w", ErrMalformedDeclaration, err)
	}

	d := Declaration{Property: prop, Context: ctx}
	switch v := value.(type) {
	case []any:
		for _, e := range v {
			if err := d.addValue(e); err != nil {
				return Declaration{}, err
			}
		}
	case []string:
		for _, e := range v {
			if err := d.addValue(e); err != nil {
				return Declaration{}, err
			}
		}
	default:
		if err := d.addValue(v); err != nil {
			return Declaration{}, err
		}
	}
	if len(d.Values) == 0 {
		return Declaration{}, fmt.Errorf("%w: %s: empty fallback list", ErrMalformedDeclaration, prop)
	}
	return d, nil
}

func (d *Declaration) addValue(value any) error {
	raw, err := serializeValue(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedDeclaration, d.Property, err)
	}
	n, err := css.NormalizeValue(d.Property, raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedDeclaration, d.Property, err)
	}
	d.Values = append(d.Values, n.Text)
	d.NoFlip = d.NoFlip || n.NoFlip
	return nil
}

// serializeValue converts scalar style value into its CSS text.
func serializeValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", v), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32:
		return formatFloat(float64(v))
	case float64:
		return formatFloat(v)
	case nil:
		return "", fmt.Errorf("null inside fallback list")
	}
	return "", fmt.Errorf("unsupported value type %T", value)
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("value %v is not a finite number", f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// key is the canonical representation of the declaration used for hashing.
// A /* @noflip */ declaration renders the same text as its flippable twin,
// so the flag is part of the key.
func (d Declaration) key() string {
	k := d.Property + "\x00" + strings.Join(d.Values, "\x01") + "\x00" + d.Context.key()
	if d.NoFlip {
		k += "\x00noflip"
	}
	return k
}

// body renders declarations block content: "color:red;".
func (d Declaration) body() string {
	var sb strings.Builder
	for _, v := range d.Values {
		sb.WriteString(d.Property)
		sb.WriteByte(':')
		sb.WriteString(v)
		sb.WriteByte(';')
	}
	return sb.String()
}

// Rule renders the complete rule text for the class name.
func (d Declaration) Rule(className string) string {
	return d.Context.wrap(d.Context.selector(className) + "{" + d.body() + "}")
}
