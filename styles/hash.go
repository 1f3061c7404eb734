package styles

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// PropertyHash identifies a declaration. Equal declarations always produce
// equal hashes, independent of the component they were declared in.
type PropertyHash string

// DefaultClassPrefix is used when no prefix was configured.
const DefaultClassPrefix = "f"

// Hasher computes property hashes and derives class and keyframes names
// from them.
type Hasher struct {
	prefix string
}

// NewHasher returns hasher producing names starting with prefix.
func NewHasher(prefix string) Hasher {
	if prefix == "" {
		prefix = DefaultClassPrefix
	}
	return Hasher{prefix: prefix}
}

// Prefix returns the class name prefix.
func (h Hasher) Prefix() string {
	return h.prefix
}

// Hash returns the property hash of d.
func (h Hasher) Hash(d Declaration) PropertyHash {
	return PropertyHash(hashString(d.key()))
}

// ClassNames returns class names for the hash. RTL name is produced only
// for direction sensitive declarations.
func (h Hasher) ClassNames(ph PropertyHash, mirrored bool) Classes {
	c := Classes{LTR: h.prefix + string(ph)}
	if mirrored {
		c.RTL = h.prefix + hashString(string(ph)+"\x00rtl")
	}
	return c
}

// keyframesHash identifies compiled keyframes by both direction bodies.
func (h Hasher) keyframesHash(body, rtlBody string) PropertyHash {
	return PropertyHash(hashString("@keyframes" + body + "\x00" + rtlBody))
}

// keyframesName names the animation defined by body.
func (h Hasher) keyframesName(body string) string {
	return h.prefix + hashString(body)
}

func hashString(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 36)
}
