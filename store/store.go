// Package store keeps renderer snapshots in a SQLite database so extraction
// results accumulate across runs.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"atomcss/styles"
)

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS rules (
	seq    INTEGER PRIMARY KEY,
	bucket TEXT NOT NULL,
	rule   TEXT NOT NULL UNIQUE,
	media  TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS records (
	hash   TEXT PRIMARY KEY,
	ltr    TEXT NOT NULL,
	rtl    TEXT NOT NULL DEFAULT '',
	bucket TEXT NOT NULL
);
`

// Store is a snapshot database. It is safe for concurrent use.
type Store struct {
	log  *zap.Logger
	path string

	mu   sync.Mutex
	conn *sqlite.Conn
}

// Open opens (creating when necessary) database at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("unable to open store '%s': %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare store schema: %w", err)
	}

	s := &Store{log: log.Named("store"), path: path, conn: conn}
	s.log.Debug("Store opened", zap.String("path", path))
	return s, nil
}

// Close closes database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

var errClosed = errors.New("store is closed")

// Save replaces stored snapshot with snap atomically.
func (s *Store) Save(snap styles.Snapshot) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return errClosed
	}
	defer sqlitex.Save(s.conn)(&err)

	for _, q := range []string{`DELETE FROM meta;`, `DELETE FROM rules;`, `DELETE FROM records;`} {
		if err = sqlitex.Execute(s.conn, q, nil); err != nil {
			return fmt.Errorf("unable to clear store: %w", err)
		}
	}

	meta := [][2]string{
		{"version", strconv.Itoa(snap.Version)},
		{"prefix", snap.Prefix},
	}
	for _, kv := range meta {
		if err = sqlitex.Execute(s.conn, `INSERT INTO meta (key, value) VALUES (?, ?);`,
			&sqlitex.ExecOptions{Args: []any{kv[0], kv[1]}}); err != nil {
			return fmt.Errorf("unable to save snapshot header: %w", err)
		}
	}

	for i, r := range snap.Rules {
		if err = sqlitex.Execute(s.conn, `INSERT INTO rules (seq, bucket, rule, media) VALUES (?, ?, ?, ?);`,
			&sqlitex.ExecOptions{Args: []any{i, r.Bucket, r.Rule, r.Media}}); err != nil {
			return fmt.Errorf("unable to save rule %d: %w", i, err)
		}
	}

	for _, r := range snap.Records {
		if err = sqlitex.Execute(s.conn, `INSERT INTO records (hash, ltr, rtl, bucket) VALUES (?, ?, ?, ?);`,
			&sqlitex.ExecOptions{Args: []any{r.Hash, r.LTR, r.RTL, r.Bucket}}); err != nil {
			return fmt.Errorf("unable to save record %s: %w", r.Hash, err)
		}
	}

	s.log.Debug("Snapshot saved", zap.Int("rules", len(snap.Rules)), zap.Int("records", len(snap.Records)))
	return nil
}

// Load reads stored snapshot. The boolean result is false when nothing was
// saved yet.
func (s *Store) Load() (styles.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return styles.Snapshot{}, false, errClosed
	}

	var (
		snap  styles.Snapshot
		found bool
	)
	err := sqlitex.Execute(s.conn, `SELECT key, value FROM meta;`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			switch stmt.ColumnText(0) {
			case "version":
				v, err := strconv.Atoi(stmt.ColumnText(1))
				if err != nil {
					return fmt.Errorf("bad snapshot version: %w", err)
				}
				snap.Version = v
			case "prefix":
				snap.Prefix = stmt.ColumnText(1)
			}
			return nil
		},
	})
	if err != nil {
		return styles.Snapshot{}, false, fmt.Errorf("unable to load snapshot header: %w", err)
	}
	if !found {
		return styles.Snapshot{}, false, nil
	}

	err = sqlitex.Execute(s.conn, `SELECT bucket, rule, media FROM rules ORDER BY seq;`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			snap.Rules = append(snap.Rules, styles.SnapshotRule{
				Bucket: stmt.ColumnText(0),
				Rule:   stmt.ColumnText(1),
				Media:  stmt.ColumnText(2),
			})
			return nil
		},
	})
	if err != nil {
		return styles.Snapshot{}, false, fmt.Errorf("unable to load rules: %w", err)
	}

	err = sqlitex.Execute(s.conn, `SELECT hash, ltr, rtl, bucket FROM records ORDER BY hash;`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			snap.Records = append(snap.Records, styles.SnapshotRecord{
				Hash:   stmt.ColumnText(0),
				LTR:    stmt.ColumnText(1),
				RTL:    stmt.ColumnText(2),
				Bucket: stmt.ColumnText(3),
			})
			return nil
		},
	})
	if err != nil {
		return styles.Snapshot{}, false, fmt.Errorf("unable to load records: %w", err)
	}

	s.log.Debug("Snapshot loaded", zap.Int("rules", len(snap.Rules)), zap.Int("records", len(snap.Records)))
	return snap, true, nil
}
