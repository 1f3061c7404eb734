package styles

import (
	"cmp"
	"strings"
	"sync"

	"github.com/maruel/natural"

	"atomcss/css"
)

// MediaComparator orders media conditions of the media bucket. It must be a
// total order; conditions comparing equal keep their insertion order.
type MediaComparator func(a, b string) int

// DefaultBaseFontSize is the number of pixels in one em used when ordering
// media queries.
const DefaultBaseFontSize = 16

type mediaKey struct {
	rank  int // 0 - no width bounds, 1 - min width, 2 - max width only
	width float64
}

// NewMediaComparator returns comparator implementing mobile first ordering:
// conditions without width bounds go first, then conditions with minimum
// width in ascending order, then conditions with only maximum width in
// descending order. Font relative lengths are resolved against basePx.
// Remaining ties are broken by natural then byte order of the text.
func NewMediaComparator(basePx float64) MediaComparator {
	if basePx <= 0 {
		basePx = DefaultBaseFontSize
	}

	var keys sync.Map // condition -> mediaKey
	keyOf := func(cond string) mediaKey {
		if k, ok := keys.Load(cond); ok {
			return k.(mediaKey)
		}
		k := parseMediaKey(cond, basePx)
		keys.Store(cond, k)
		return k
	}

	return func(a, b string) int {
		if a == b {
			return 0
		}
		ka, kb := keyOf(a), keyOf(b)
		if c := cmp.Compare(ka.rank, kb.rank); c != 0 {
			return c
		}
		switch ka.rank {
		case 1:
			if c := cmp.Compare(ka.width, kb.width); c != 0 {
				return c
			}
		case 2:
			if c := cmp.Compare(kb.width, ka.width); c != 0 {
				return c
			}
		}
		return textCompare(a, b)
	}
}

func parseMediaKey(cond string, basePx float64) mediaKey {
	mq, err := css.ParseMediaQuery(cond)
	if err != nil {
		return mediaKey{}
	}
	if v, ok := mq.MinWidth(); ok {
		if px, ok := v.Pixels(basePx); ok {
			return mediaKey{rank: 1, width: px}
		}
	}
	if v, ok := mq.MaxWidth(); ok {
		if px, ok := v.Pixels(basePx); ok {
			return mediaKey{rank: 2, width: px}
		}
	}
	return mediaKey{}
}

// TextMediaComparator orders media conditions by their text only.
func TextMediaComparator(a, b string) int {
	return strings.Compare(a, b)
}

func textCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return strings.Compare(a, b)
}
