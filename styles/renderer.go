package styles

import (
	"maps"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Renderer is the style engine of one hosting environment: it owns the
// insertion cache and the stylesheet registry. It is safe for concurrent use.
type Renderer struct {
	id       string
	log      *zap.Logger
	hasher   Hasher
	cache    *Cache
	registry *Registry
	observer Observer
}

type options struct {
	prefix   string
	compare  MediaComparator
	factory  StylesheetFactory
	attrs    map[string]string
	observer Observer
}

// Option configures Renderer.
type Option func(*options)

// WithClassPrefix sets the prefix of generated class and keyframes names.
func WithClassPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithMediaComparator replaces the default mobile first media ordering.
func WithMediaComparator(compare MediaComparator) Option {
	return func(o *options) {
		o.compare = compare
	}
}

// WithStylesheetFactory sets the host stylesheet factory.
func WithStylesheetFactory(factory StylesheetFactory) Option {
	return func(o *options) {
		o.factory = factory
	}
}

// WithAttributes adds attributes (nonce for example) to every stylesheet.
func WithAttributes(attrs map[string]string) Option {
	return func(o *options) {
		o.attrs = maps.Clone(attrs)
	}
}

// WithObserver installs renderer event observer.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// NewRenderer creates renderer with empty cache and no stylesheets.
func NewRenderer(log *zap.Logger, opts ...Option) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}

	o := options{prefix: DefaultClassPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}

	r := &Renderer{
		id:       uuid.NewString(),
		hasher:   NewHasher(o.prefix),
		cache:    NewCache(),
		observer: o.observer,
	}
	r.log = log.Named("renderer").With(zap.String("id", r.id))
	r.registry = NewRegistry(r.log, r.hasher.Prefix(), o.factory, o.compare, o.attrs)
	return r
}

// ID returns unique renderer identifier.
func (r *Renderer) ID() string {
	return r.id
}

// Prefix returns the class name prefix.
func (r *Renderer) Prefix() string {
	return r.hasher.Prefix()
}

// Hasher returns the hasher renderer names classes with.
func (r *Renderer) Hasher() Hasher {
	return r.hasher
}

// Cache returns the insertion cache.
func (r *Renderer) Cache() *Cache {
	return r.cache
}

// Registry returns the stylesheet registry.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// reserve looks hash up until it is either committed or reserved by the
// caller. Waiting is bounded: the reservation holder inserts synchronously.
func (r *Renderer) reserve(h PropertyHash) (Record, *Reservation) {
	for {
		l := r.cache.LookupOrReserve(h)
		r.observer.CacheLookup(l.Result)
		switch l.Result {
		case LookupHit:
			return l.Record, nil
		case LookupMiss:
			return Record{}, l.Reservation
		}
		<-l.Wait
	}
}

// insert makes sure rules of hash h are in the registry. Rules are produced
// only when the caller holds the reservation.
func (r *Renderer) insert(h PropertyHash, b Bucket, build func() (Classes, []Entry)) (Record, error) {
	rec, res := r.reserve(h)
	if res == nil {
		return rec, nil
	}

	classes, entries := build()
	if _, err := r.registry.Insert(b, entries...); err != nil {
		res.Release()
		return Record{}, err
	}

	rec = Record{Hash: h, Classes: classes, Bucket: b}
	res.Commit(rec)
	r.observer.RulesInserted(b, len(entries))
	r.log.Debug("Rules inserted", zap.String("hash", string(h)), zap.Stringer("bucket", b), zap.Int("count", len(entries)))
	return rec, nil
}

// InsertDeclaration inserts rules of a single declaration, rtl being its
// right-to-left variant if it has one.
func (r *Renderer) InsertDeclaration(d Declaration, rtl *Declaration) (Record, error) {
	h := r.hasher.Hash(d)
	cls := Classify(d.Context)

	return r.insert(h, cls.Bucket, func() (Classes, []Entry) {
		var meta map[string]string
		if cls.Bucket == BucketMedia {
			meta = map[string]string{MetaMedia: cls.Media}
		}

		classes := r.hasher.ClassNames(h, rtl != nil)
		entries := []Entry{{Rule: d.Rule(classes.LTR), Metadata: meta}}
		if rtl != nil {
			entries = append(entries, Entry{Rule: rtl.Rule(classes.RTL), Metadata: meta})
		}
		return classes, entries
	})
}
