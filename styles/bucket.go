package styles

import (
	"errors"
	"fmt"
	"strings"
)

// Bucket is one of the ordered groups of rules. Every rule of a bucket is
// placed after every rule of the buckets preceding it, so later buckets win
// specificity ties.
type Bucket int

const (
	BucketDefault Bucket = iota
	BucketLink
	BucketVisited
	BucketFocusWithin
	BucketFocus
	BucketFocusVisible
	BucketHover
	BucketActive
	BucketKeyframes
	BucketAtRule
	BucketMedia
)

// ErrInvalidBucket is returned when bucket name could not be parsed.
var ErrInvalidBucket = errors.New("not a valid Bucket")

var bucketNames = [...]string{
	BucketDefault:      "default",
	BucketLink:         "link",
	BucketVisited:      "visited",
	BucketFocusWithin:  "focus-within",
	BucketFocus:        "focus",
	BucketFocusVisible: "focus-visible",
	BucketHover:        "hover",
	BucketActive:       "active",
	BucketKeyframes:    "keyframes",
	BucketAtRule:       "at-rule",
	BucketMedia:        "media",
}

var bucketShort = [...]string{
	BucketDefault:      "d",
	BucketLink:         "l",
	BucketVisited:      "v",
	BucketFocusWithin:  "w",
	BucketFocus:        "f",
	BucketFocusVisible: "i",
	BucketHover:        "h",
	BucketActive:       "a",
	BucketKeyframes:    "k",
	BucketAtRule:       "t",
	BucketMedia:        "m",
}

// Buckets returns all buckets in cascade order.
func Buckets() []Bucket {
	res := make([]Bucket, len(bucketNames))
	for i := range res {
		res[i] = Bucket(i)
	}
	return res
}

// IsValid provides a quick way to determine if the typed value is
// part of the allowed enumerated values
func (b Bucket) IsValid() bool {
	return b >= BucketDefault && b <= BucketMedia
}

// String implements the Stringer interface.
func (b Bucket) String() string {
	if b.IsValid() {
		return bucketNames[b]
	}
	return fmt.Sprintf("Bucket(%d)", b)
}

// Short returns one letter bucket name used in markup attributes.
func (b Bucket) Short() string {
	if b.IsValid() {
		return bucketShort[b]
	}
	return ""
}

// ParseBucket attempts to convert either long or short name to a Bucket.
func ParseBucket(name string) (Bucket, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range bucketNames {
		if bucketNames[i] == name || bucketShort[i] == name {
			return Bucket(i), nil
		}
	}
	return Bucket(0), fmt.Errorf("%s is %w", name, ErrInvalidBucket)
}

// MarshalText implements the text marshaller method.
func (b Bucket) MarshalText() ([]byte, error) {
	if !b.IsValid() {
		return nil, fmt.Errorf("%d is %w", int(b), ErrInvalidBucket)
	}
	return []byte(b.Short()), nil
}

// UnmarshalText implements the text unmarshaller method.
func (b *Bucket) UnmarshalText(text []byte) error {
	tmp, err := ParseBucket(string(text))
	if err != nil {
		return err
	}
	*b = tmp
	return nil
}

var pseudoBuckets = map[string]Bucket{
	":link":          BucketLink,
	":visited":       BucketVisited,
	":focus-within":  BucketFocusWithin,
	":focus":         BucketFocus,
	":focus-visible": BucketFocusVisible,
	":hover":         BucketHover,
	":active":        BucketActive,
}

// Classification is the result of bucket classification of a context.
type Classification struct {
	Bucket Bucket
	Media  string // combined media condition, media bucket only
}

// Classify picks the bucket for rules declared in ctx. At-rule contexts take
// precedence over selectors. A selector context that is not exactly one of
// the known interaction pseudo-classes lands in the default bucket.
func Classify(ctx Context) Classification {
	switch {
	case ctx.Media != "":
		return Classification{Bucket: BucketMedia, Media: ctx.Media}
	case ctx.Supports != "" || ctx.Layer != "" || ctx.Container != "":
		return Classification{Bucket: BucketAtRule}
	case len(ctx.Selectors) == 0:
		return Classification{Bucket: BucketDefault}
	}

	sel := strings.TrimPrefix(ctx.Selectors[0], "&")
	if !strings.HasPrefix(sel, ":") || strings.HasPrefix(sel, "::") {
		return Classification{Bucket: BucketDefault}
	}
	if b, ok := pseudoBuckets[strings.ToLower(sel)]; ok {
		return Classification{Bucket: b}
	}
	return Classification{Bucket: BucketDefault}
}
