package styles

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Stylesheet is the host side of a bucket: an ordered list of rules that is
// applied to the document. Implementations may refuse rules.
type Stylesheet interface {
	Name() string
	Attributes() map[string]string
	// InsertRule inserts rule at index and returns the index it ended up at.
	InsertRule(rule string, index int) (int, error)
	DeleteRule(index int) error
	CSSRules() []string
}

// StylesheetFactory creates the stylesheet of a bucket the first time a rule
// is inserted into it.
type StylesheetFactory func(bucket Bucket, name string, attrs map[string]string) (Stylesheet, error)

// MemoryStylesheets is the default factory producing in-memory stylesheets.
func MemoryStylesheets(_ Bucket, name string, attrs map[string]string) (Stylesheet, error) {
	return NewMemoryStylesheet(name, attrs), nil
}

// MemoryStylesheet keeps rules in memory, used for server side extraction
// and in tests.
type MemoryStylesheet struct {
	mu    sync.RWMutex
	name  string
	attrs map[string]string
	rules []string
}

// NewMemoryStylesheet returns an empty stylesheet.
func NewMemoryStylesheet(name string, attrs map[string]string) *MemoryStylesheet {
	return &MemoryStylesheet{name: name, attrs: maps.Clone(attrs)}
}

// Name implements Stylesheet.
func (s *MemoryStylesheet) Name() string {
	return s.name
}

// Attributes implements Stylesheet.
func (s *MemoryStylesheet) Attributes() map[string]string {
	return maps.Clone(s.attrs)
}

// InsertRule implements Stylesheet.
func (s *MemoryStylesheet) InsertRule(rule string, index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index > len(s.rules) {
		return 0, fmt.Errorf("index %d is out of range [0, %d]", index, len(s.rules))
	}
	s.rules = slices.Insert(s.rules, index, rule)
	return index, nil
}

// DeleteRule implements Stylesheet.
func (s *MemoryStylesheet) DeleteRule(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.rules) {
		return fmt.Errorf("index %d is out of range [0, %d)", index, len(s.rules))
	}
	s.rules = slices.Delete(s.rules, index, index+1)
	return nil
}

// CSSRules implements Stylesheet.
func (s *MemoryStylesheet) CSSRules() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.rules)
}
