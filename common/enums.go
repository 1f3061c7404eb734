// Package common holds enumerations shared by configuration, the style
// engine and the command line so neither has to import the other.
package common

import (
	"errors"
	"fmt"
)

// Text direction styles are resolved for.
type Direction int

const (
	DirectionLtr Direction = iota
	DirectionRtl
)

// Ordering of the media bucket.
type MediaOrder int

const (
	// min-width queries ascending, then max-width queries descending
	MediaOrderMinWidth MediaOrder = iota
	// plain text order of conditions
	MediaOrderText
)

// Specification of requested extraction output.
type OutputFormat int

const (
	OutputFormatCss OutputFormat = iota
	OutputFormatXhtml
	OutputFormatIon
)

// Ext returns file extension for the output format.
func (o OutputFormat) Ext() string {
	switch o {
	case OutputFormatCss:
		return ".css"
	case OutputFormatXhtml:
		return ".xhtml"
	case OutputFormatIon:
		return ".ion"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

var (
	ErrInvalidDirection    = errors.New("not a valid Direction")
	ErrInvalidMediaOrder   = errors.New("not a valid MediaOrder")
	ErrInvalidOutputFormat = errors.New("not a valid OutputFormat")
)

var (
	directionNames    = []string{"ltr", "rtl"}
	mediaOrderNames   = []string{"min-width", "text"}
	outputFormatNames = []string{"css", "xhtml", "ion"}
)

func enumString(names []string, v int, typ string) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", typ, v)
}

func enumParse(names []string, name string, errInvalid error) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s is %w", name, errInvalid)
}

// DirectionNames returns a list of possible string values of Direction.
func DirectionNames() []string {
	return append([]string(nil), directionNames...)
}

// String implements the Stringer interface.
func (x Direction) String() string {
	return enumString(directionNames, int(x), "Direction")
}

// IsValid provides a quick way to determine if the typed value is
// part of the allowed enumerated values
func (x Direction) IsValid() bool {
	return x >= 0 && int(x) < len(directionNames)
}

// ParseDirection attempts to convert a string to a Direction.
func ParseDirection(name string) (Direction, error) {
	v, err := enumParse(directionNames, name, ErrInvalidDirection)
	return Direction(v), err
}

// MustParseDirection converts a string to a Direction, and panics if is not valid.
func MustParseDirection(name string) Direction {
	val, err := ParseDirection(name)
	if err != nil {
		panic(err)
	}
	return val
}

// MarshalText implements the text marshaller method.
func (x Direction) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements the text unmarshaller method.
func (x *Direction) UnmarshalText(text []byte) error {
	tmp, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*x = tmp
	return nil
}

// MediaOrderNames returns a list of possible string values of MediaOrder.
func MediaOrderNames() []string {
	return append([]string(nil), mediaOrderNames...)
}

// String implements the Stringer interface.
func (x MediaOrder) String() string {
	return enumString(mediaOrderNames, int(x), "MediaOrder")
}

// IsValid provides a quick way to determine if the typed value is
// part of the allowed enumerated values
func (x MediaOrder) IsValid() bool {
	return x >= 0 && int(x) < len(mediaOrderNames)
}

// ParseMediaOrder attempts to convert a string to a MediaOrder.
func ParseMediaOrder(name string) (MediaOrder, error) {
	v, err := enumParse(mediaOrderNames, name, ErrInvalidMediaOrder)
	return MediaOrder(v), err
}

// MarshalText implements the text marshaller method.
func (x MediaOrder) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements the text unmarshaller method.
func (x *MediaOrder) UnmarshalText(text []byte) error {
	tmp, err := ParseMediaOrder(string(text))
	if err != nil {
		return err
	}
	*x = tmp
	return nil
}

// OutputFormatNames returns a list of possible string values of OutputFormat.
func OutputFormatNames() []string {
	return append([]string(nil), outputFormatNames...)
}

// String implements the Stringer interface.
func (x OutputFormat) String() string {
	return enumString(outputFormatNames, int(x), "OutputFormat")
}

// IsValid provides a quick way to determine if the typed value is
// part of the allowed enumerated values
func (x OutputFormat) IsValid() bool {
	return x >= 0 && int(x) < len(outputFormatNames)
}

// ParseOutputFormat attempts to convert a string to a OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	v, err := enumParse(outputFormatNames, name, ErrInvalidOutputFormat)
	return OutputFormat(v), err
}

// MustParseOutputFormat converts a string to a OutputFormat, and panics if is not valid.
func MustParseOutputFormat(name string) OutputFormat {
	val, err := ParseOutputFormat(name)
	if err != nil {
		panic(err)
	}
	return val
}

// MarshalText implements the text marshaller method.
func (x OutputFormat) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements the text unmarshaller method.
func (x *OutputFormat) UnmarshalText(text []byte) error {
	tmp, err := ParseOutputFormat(string(text))
	if err != nil {
		return err
	}
	*x = tmp
	return nil
}
