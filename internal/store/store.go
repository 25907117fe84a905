// Package store implements the SQLite persistence layer: entity CRUD for the
// three note kinds, zettel links and literature references with
// dangling-on-delete semantics, Luhmann-style id allocation, index cards,
// settings, the append-only history ledger, and a full-text projection per
// note kind (FTS5 when built with the sqlite_fts5 tag, LIKE fallback
// otherwise).
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store owns the single database handle and exposes one sub-store per
// concern. It is opened once at startup and injected into every consumer.
type Store struct {
	conn *sql.DB

	Fleeting   *FleetingStore
	Literature *LiteratureStore
	Zettels    *ZettelStore
	Links      *LinkStore
	References *ReferenceStore
	Indexes    *IndexStore
	History    *HistoryStore
	Settings   *SettingsStore
}

// Open opens (or creates) the SQLite database at path and applies the schema.
// Foreign keys are switched on; the links and references tables rely on
// ON DELETE SET NULL to leave dangling edges behind deleted targets.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply fts schema: %w", err)
	}
	if err := seedSettings(conn, filepath.Dir(path)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: seed settings: %w", err)
	}

	s := &Store{conn: conn}
	s.Fleeting = &FleetingStore{notes: noteStore{conn: conn, kind: fleetingKind}}
	s.Literature = &LiteratureStore{notes: noteStore{conn: conn, kind: literatureKind}}
	s.Zettels = &ZettelStore{notes: noteStore{conn: conn, kind: zettelKind}}
	s.Links = &LinkStore{conn: conn}
	s.References = &ReferenceStore{conn: conn}
	s.Indexes = &IndexStore{conn: conn}
	s.History = &HistoryStore{conn: conn}
	s.Settings = &SettingsStore{conn: conn}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
