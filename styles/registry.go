package styles

import (
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// MetaMedia is the metadata key holding the media condition of an entry.
const MetaMedia = "m"

// BucketAttribute marks stylesheet elements with the short bucket name.
const BucketAttribute = "data-make-styles-bucket"

// Entry is a rule waiting to be inserted into a bucket.
type Entry struct {
	Rule     string
	Metadata map[string]string
}

func (e Entry) media() string {
	return e.Metadata[MetaMedia]
}

// Registry owns per bucket stylesheets and keeps rules of every bucket in
// their required order.
type Registry struct {
	log     *zap.Logger
	factory StylesheetFactory
	compare MediaComparator
	attrs   map[string]string
	idBase  string

	mu     sync.Mutex
	sheets [BucketMedia + 1]Stylesheet
	counts [BucketMedia + 1]int
	media  []string          // conditions of media bucket rules, same order as rules
	known  map[string]Bucket // rule text -> bucket it lives in
}

// NewRegistry creates empty registry. Stylesheets are created by factory on
// first use with attrs added to their own attributes.
func NewRegistry(log *zap.Logger, idBase string, factory StylesheetFactory, compare MediaComparator, attrs map[string]string) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	if factory == nil {
		factory = MemoryStylesheets
	}
	if compare == nil {
		compare = NewMediaComparator(DefaultBaseFontSize)
	}
	return &Registry{
		log:     log.Named("registry"),
		factory: factory,
		compare: compare,
		attrs:   maps.Clone(attrs),
		idBase:  idBase,
		known:   make(map[string]Bucket),
	}
}

// sheetName produces stylesheet name (and element id) for bucket.
func (r *Registry) sheetName(b Bucket) string {
	return slug.Make(r.idBase + " " + b.String())
}

// stylesheet returns the bucket stylesheet creating it when necessary.
// Must be called under lock.
func (r *Registry) stylesheet(b Bucket) (Stylesheet, error) {
	if s := r.sheets[b]; s != nil {
		return s, nil
	}

	name := r.sheetName(b)
	attrs := maps.Clone(r.attrs)
	if attrs == nil {
		attrs = make(map[string]string)
	}
	attrs[BucketAttribute] = b.Short()
	attrs["id"] = name

	s, err := r.factory(b, name, attrs)
	if err != nil {
		return nil, fmt.Errorf("unable to create stylesheet for bucket %s: %w", b, err)
	}
	r.sheets[b] = s
	r.log.Debug("Stylesheet created", zap.Stringer("bucket", b), zap.String("name", name))
	return s, nil
}

// Insert places entries into bucket b in order. Rules already present are
// skipped. The batch is atomic: if the host refuses any rule, rules inserted
// by this call are removed again and the error wraps ErrInsertRejected.
// Returned position is the index of the first inserted rule or -1 when all
// rules were already present.
func (r *Registry) Insert(b Bucket, entries ...Entry) (int, error) {
	if !b.IsValid() {
		return -1, fmt.Errorf("unable to insert rules: %w", ErrInvalidBucket)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		pending []Entry
		seen    = make(map[string]bool, len(entries))
	)
	for _, e := range entries {
		if _, ok := r.known[e.Rule]; ok || seen[e.Rule] {
			continue
		}
		seen[e.Rule] = true
		pending = append(pending, e)
	}
	if len(pending) == 0 {
		return -1, nil
	}

	sheet, err := r.stylesheet(b)
	if err != nil {
		return -1, fmt.Errorf("%w: %w", ErrInsertRejected, err)
	}

	var (
		inserted []int
		first    = -1
	)
	for _, e := range pending {
		idx, err := r.insert(sheet, b, e)
		if err != nil {
			r.rollback(sheet, b, inserted)
			return -1, fmt.Errorf("%w: bucket %s: %w", ErrInsertRejected, b, err)
		}
		if first < 0 {
			first = idx
		}
		inserted = append(inserted, idx)
	}
	for _, e := range pending {
		r.known[e.Rule] = b
	}
	return first, nil
}

// insert places single rule. Must be called under lock.
func (r *Registry) insert(sheet Stylesheet, b Bucket, e Entry) (int, error) {
	if b != BucketMedia {
		idx, err := sheet.InsertRule(e.Rule, r.counts[b])
		if err != nil {
			return 0, err
		}
		r.counts[b]++
		return idx, nil
	}

	cond := e.media()
	// upper bound keeps equal conditions in insertion order
	pos := sort.Search(len(r.media), func(i int) bool {
		return r.compare(r.media[i], cond) > 0
	})
	idx, err := sheet.InsertRule(e.Rule, pos)
	if err != nil {
		return 0, err
	}
	r.media = append(r.media, "")
	copy(r.media[idx+1:], r.media[idx:])
	r.media[idx] = cond
	r.counts[b]++
	return idx, nil
}

// rollback removes rules inserted by a failed batch, latest first so the
// remaining indexes stay valid. Must be called under lock.
func (r *Registry) rollback(sheet Stylesheet, b Bucket, inserted []int) {
	for i := len(inserted) - 1; i >= 0; i-- {
		idx := inserted[i]
		if err := sheet.DeleteRule(idx); err != nil {
			r.log.Warn("Unable to roll back rule", zap.Stringer("bucket", b), zap.Int("index", idx), zap.Error(err))
			continue
		}
		if b == BucketMedia {
			r.media = append(r.media[:idx], r.media[idx+1:]...)
		}
		r.counts[b]--
	}
}

// Adopt attaches existing host stylesheet to bucket b, for example one
// rendered on the server. Its rules are treated as already inserted.
func (r *Registry) Adopt(b Bucket, sheet Stylesheet) error {
	if !b.IsValid() {
		return fmt.Errorf("unable to adopt stylesheet: %w", ErrInvalidBucket)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sheets[b] != nil {
		return fmt.Errorf("bucket %s already has stylesheet %q", b, r.sheets[b].Name())
	}

	rules := sheet.CSSRules()
	var media []string
	if b == BucketMedia {
		media = make([]string, len(rules))
		for i, rule := range rules {
			cond, ok := mediaOf(rule)
			if !ok {
				return fmt.Errorf("rule %q of media stylesheet is not a media rule", rule)
			}
			media[i] = cond
		}
		r.media = media
	}

	r.sheets[b] = sheet
	r.counts[b] = len(rules)
	for _, rule := range rules {
		r.known[rule] = b
	}
	r.log.Debug("Stylesheet adopted", zap.Stringer("bucket", b), zap.String("name", sheet.Name()), zap.Int("rules", len(rules)))
	return nil
}

// mediaOf extracts the condition of "@media cond{...}" rule.
func mediaOf(rule string) (string, bool) {
	rest, ok := strings.CutPrefix(rule, "@media ")
	if !ok {
		return "", false
	}
	cond, _, ok := strings.Cut(rest, "{")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(cond), true
}

// Has reports whether the rule text is present in any bucket.
func (r *Registry) Has(rule string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.known[rule]
	return ok
}

// Stylesheet returns the stylesheet of bucket b if it was created.
func (r *Registry) Stylesheet(b Bucket) (Stylesheet, bool) {
	if !b.IsValid() {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.sheets[b]
	return s, s != nil
}

// Len returns number of rules in bucket b.
func (r *Registry) Len(b Bucket) int {
	if !b.IsValid() {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.counts[b]
}

// SerializedRule is a rule together with its placement.
type SerializedRule struct {
	Bucket Bucket
	Rule   string
	Media  string
}

// Serialize returns all rules in cascade order.
func (r *Registry) Serialize() []SerializedRule {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []SerializedRule
	for _, b := range Buckets() {
		s := r.sheets[b]
		if s == nil {
			continue
		}
		for i, rule := range s.CSSRules() {
			sr := SerializedRule{Bucket: b, Rule: rule}
			if b == BucketMedia && i < len(r.media) {
				sr.Media = r.media[i]
			}
			res = append(res, sr)
		}
	}
	return res
}
