package styles

import (
	"slices"
	"strings"
	"sync"
)

// Classes holds class names of a declaration. RTL is empty for declarations
// which look the same in both directions.
type Classes struct {
	LTR string
	RTL string
}

// For returns the class name to use for the direction.
func (c Classes) For(rtl bool) string {
	if rtl && c.RTL != "" {
		return c.RTL
	}
	return c.LTR
}

// Record is a committed cache entry.
type Record struct {
	Hash    PropertyHash
	Classes Classes
	Bucket  Bucket
}

// LookupResult tells what LookupOrReserve found.
type LookupResult int

const (
	// LookupHit - the hash is committed, Lookup.Record is valid.
	LookupHit LookupResult = iota
	// LookupMiss - caller now holds Lookup.Reservation and must either
	// commit or release it.
	LookupMiss
	// LookupPending - another caller holds the reservation, wait on
	// Lookup.Wait and look up again.
	LookupPending
)

func (r LookupResult) String() string {
	switch r {
	case LookupHit:
		return "hit"
	case LookupMiss:
		return "miss"
	case LookupPending:
		return "pending"
	}
	return "unknown"
}

// Lookup is the outcome of Cache.LookupOrReserve.
type Lookup struct {
	Result      LookupResult
	Record      Record
	Reservation *Reservation
	Wait        <-chan struct{}
}

type cacheEntry struct {
	record    Record
	committed bool
	done      chan struct{}
}

// Cache maps property hashes to committed records. Entries are never
// evicted: a rule once inserted stays in its stylesheet.
type Cache struct {
	mu      sync.Mutex
	entries map[PropertyHash]*cacheEntry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[PropertyHash]*cacheEntry)}
}

// LookupOrReserve returns committed record for the hash, reserves absent hash
// for the caller, or reports that someone else is inserting it.
func (c *Cache) LookupOrReserve(h PropertyHash) Lookup {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[h]; ok {
		if e.committed {
			return Lookup{Result: LookupHit, Record: e.record}
		}
		return Lookup{Result: LookupPending, Wait: e.done}
	}

	e := &cacheEntry{done: make(chan struct{})}
	c.entries[h] = e
	return Lookup{Result: LookupMiss, Reservation: &Reservation{cache: c, hash: h, entry: e}}
}

// Get returns committed record for the hash.
func (c *Cache) Get(h PropertyHash) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[h]; ok && e.committed {
		return e.record, true
	}
	return Record{}, false
}

// Prime stores committed record unless the hash is already known.
// It reports whether the record was stored.
func (c *Cache) Prime(rec Record) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[rec.Hash]; ok {
		return false
	}
	e := &cacheEntry{record: rec, committed: true, done: make(chan struct{})}
	close(e.done)
	c.entries[rec.Hash] = e
	return true
}

// Records returns all committed records sorted by hash.
func (c *Cache) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := make([]Record, 0, len(c.entries))
	for _, e := range c.entries {
		if e.committed {
			res = append(res, e.record)
		}
	}
	slices.SortFunc(res, func(a, b Record) int {
		return strings.Compare(string(a.Hash), string(b.Hash))
	})
	return res
}

// Len returns number of committed records.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		if e.committed {
			n++
		}
	}
	return n
}

// Reservation is the exclusive right to insert rules for a hash.
type Reservation struct {
	cache *Cache
	hash  PropertyHash
	entry *cacheEntry
	once  sync.Once
}

// Hash returns the reserved hash.
func (r *Reservation) Hash() PropertyHash {
	return r.hash
}

// Commit publishes the record and wakes up waiters. Calling Commit or
// Release after the first call has no effect.
func (r *Reservation) Commit(rec Record) {
	r.once.Do(func() {
		rec.Hash = r.hash

		r.cache.mu.Lock()
		r.entry.record = rec
		r.entry.committed = true
		r.cache.mu.Unlock()

		close(r.entry.done)
	})
}

// Release drops the reservation leaving the hash absent. Waiters are woken
// up and may reserve it themselves.
func (r *Reservation) Release() {
	r.once.Do(func() {
		r.cache.mu.Lock()
		if r.cache.entries[r.hash] == r.entry {
			delete(r.cache.entries, r.hash)
		}
		r.cache.mu.Unlock()

		close(r.entry.done)
	})
}
