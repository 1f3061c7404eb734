package styles

import (
	"fmt"

	"github.com/amazon-ion/ion-go/ion"
	"go.uber.org/zap"
)

// SnapshotVersion is the current snapshot layout version.
const SnapshotVersion = 1

// Snapshot is the complete renderer state: inserted rules and cache records.
// Restoring it into a fresh renderer reproduces the same stylesheets and
// class names without resolving styles again.
type Snapshot struct {
	Version int              `ion:"version"`
	Prefix  string           `ion:"prefix"`
	Rules   []SnapshotRule   `ion:"rules"`
	Records []SnapshotRecord `ion:"records"`
}

// SnapshotRule is a serialized rule with short bucket name.
type SnapshotRule struct {
	Bucket string `ion:"b"`
	Rule   string `ion:"r"`
	Media  string `ion:"m"`
}

// SnapshotRecord is a serialized cache record.
type SnapshotRecord struct {
	Hash   string `ion:"h"`
	LTR    string `ion:"ltr"`
	RTL    string `ion:"rtl"`
	Bucket string `ion:"b"`
}

// Snapshot captures current renderer state.
func (r *Renderer) Snapshot() Snapshot {
	s := Snapshot{Version: SnapshotVersion, Prefix: r.Prefix()}
	for _, sr := range r.registry.Serialize() {
		s.Rules = append(s.Rules, SnapshotRule{Bucket: sr.Bucket.Short(), Rule: sr.Rule, Media: sr.Media})
	}
	for _, rec := range r.cache.Records() {
		s.Records = append(s.Records, SnapshotRecord{
			Hash:   string(rec.Hash),
			LTR:    rec.Classes.LTR,
			RTL:    rec.Classes.RTL,
			Bucket: rec.Bucket.Short(),
		})
	}
	return s
}

// Restore inserts rules and primes cache records of the snapshot. Rules and
// records the renderer already has are left alone.
func (r *Renderer) Restore(s Snapshot) error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.Prefix != r.Prefix() {
		return fmt.Errorf("snapshot class prefix %q does not match renderer prefix %q", s.Prefix, r.Prefix())
	}

	for i, sr := range s.Rules {
		b, err := ParseBucket(sr.Bucket)
		if err != nil {
			return fmt.Errorf("snapshot rule %d: %w", i, err)
		}
		var meta map[string]string
		if b == BucketMedia {
			meta = map[string]string{MetaMedia: sr.Media}
		}
		if _, err := r.registry.Insert(b, Entry{Rule: sr.Rule, Metadata: meta}); err != nil {
			return fmt.Errorf("snapshot rule %d: %w", i, err)
		}
	}

	primed := 0
	for i, sr := range s.Records {
		b, err := ParseBucket(sr.Bucket)
		if err != nil {
			return fmt.Errorf("snapshot record %d: %w", i, err)
		}
		if r.cache.Prime(Record{Hash: PropertyHash(sr.Hash), Classes: Classes{LTR: sr.LTR, RTL: sr.RTL}, Bucket: b}) {
			primed++
		}
	}
	r.log.Debug("Snapshot restored", zap.Int("rules", len(s.Rules)), zap.Int("records", primed))
	return nil
}

// Encode encodes snapshot as binary Ion.
func (s Snapshot) Encode() ([]byte, error) {
	data, err := ion.MarshalBinary(s)
	if err != nil {
		return nil, fmt.Errorf("unable to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot decodes binary or text Ion snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := ion.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("unable to decode snapshot: %w", err)
	}
	return s, nil
}
