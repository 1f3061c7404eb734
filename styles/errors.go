package styles

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedDeclaration marks a property or value that cannot be
	// turned into a rule.
	ErrMalformedDeclaration = errors.New("malformed declaration")
	// ErrUnsupportedAtRule marks a nested at-rule block of unknown kind.
	ErrUnsupportedAtRule = errors.New("unsupported at-rule")
	// ErrInsertRejected is returned when a host stylesheet refused a rule.
	ErrInsertRejected = errors.New("stylesheet rejected rule")
)

// DeclarationError describes a single declaration which could not be
// resolved. Other declarations of the same style are not affected.
type DeclarationError struct {
	Slot     string
	Path     []string // nested selector and at-rule keys leading to the declaration
	Property string
	Err      error
}

func (e *DeclarationError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Slot)
	for _, p := range e.Path {
		sb.WriteString(" > ")
		sb.WriteString(p)
	}
	if e.Property != "" {
		sb.WriteString(" > ")
		sb.WriteString(e.Property)
	}
	return fmt.Sprintf("%s: %v", sb.String(), e.Err)
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}
