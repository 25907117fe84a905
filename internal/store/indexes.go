package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
	"github.com/JangVincent/zettelkasten-cli/internal/models"
)

// IndexStore manages named index cards: curated collections of zettel ids
// with optional labels. Entries cascade away with their index or zettel;
// unlike links there is no dangling state here.
type IndexStore struct {
	conn *sql.DB
}

// Create makes an empty index card. An existing name is an error.
func (s *IndexStore) Create(name string) (*models.IndexCard, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var one int
	err = tx.QueryRow(`SELECT 1 FROM indexes WHERE name = ?`, name).Scan(&one)
	if err == nil {
		return nil, fmt.Errorf("store: create index %q: %w", name, apperr.ErrDuplicateName)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: check index name: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO indexes (name) VALUES (?)`, name); err != nil {
		return nil, fmt.Errorf("store: insert index: %w", err)
	}
	if err := recordHistory(tx, models.ActionCreate, models.TargetIndex, name,
		nil, models.IndexSnapshot{Name: name}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return &models.IndexCard{Name: name, Entries: []models.IndexEntry{}}, nil
}

// FindByName returns the card with its entries, or nil when unknown.
func (s *IndexStore) FindByName(name string) (*models.IndexCard, error) {
	var one int
	err := s.conn.QueryRow(`SELECT 1 FROM indexes WHERE name = ?`, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: find index: %w", err)
	}
	entries, err := s.entries(name)
	if err != nil {
		return nil, err
	}
	return &models.IndexCard{Name: name, Entries: entries}, nil
}

// FindAll returns every card ordered by name, entries in insertion order.
func (s *IndexStore) FindAll() ([]models.IndexCard, error) {
	rows, err := s.conn.Query(`SELECT name FROM indexes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list indexes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.IndexCard, 0, len(names))
	for _, n := range names {
		entries, err := s.entries(n)
		if err != nil {
			return nil, err
		}
		out = append(out, models.IndexCard{Name: n, Entries: entries})
	}
	return out, nil
}

// Delete removes the card and, via cascade, all its entries.
func (s *IndexStore) Delete(name string) error {
	existing, err := s.FindByName(name)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("store: delete index %q: %w", name, apperr.ErrNotFound)
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM indexes WHERE name = ?`, name); err != nil {
		return fmt.Errorf("store: delete index: %w", err)
	}
	if err := recordHistory(tx, models.ActionDelete, models.TargetIndex, name,
		models.IndexSnapshot{Name: name, Entries: existing.Entries}, nil); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// AddEntry puts a zettel on a card with an optional label. The composite
// key (index, zettel) must be free.
func (s *IndexStore) AddEntry(indexName, zettelID, label string) (*models.IndexEntry, error) {
	var dbLabel any
	if label != "" {
		dbLabel = label
	}
	if _, err := s.conn.Exec(`
		INSERT INTO index_entries (index_name, zettel_id, label)
		VALUES (?, ?, ?)
	`, indexName, zettelID, dbLabel); err != nil {
		return nil, fmt.Errorf("store: add index entry: %w", err)
	}
	return &models.IndexEntry{ZettelID: zettelID, Label: label}, nil
}

// RemoveEntry takes a zettel off a card. Removing an absent entry is an
// error.
func (s *IndexStore) RemoveEntry(indexName, zettelID string) error {
	res, err := s.conn.Exec(`
		DELETE FROM index_entries WHERE index_name = ? AND zettel_id = ?
	`, indexName, zettelID)
	if err != nil {
		return fmt.Errorf("store: remove index entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: remove index entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("store: remove entry %s/%s: %w", indexName, zettelID, apperr.ErrNotFound)
	}
	return nil
}

// FindIndexesForZettel is the reverse lookup: which cards mention a zettel.
func (s *IndexStore) FindIndexesForZettel(zettelID string) ([]string, error) {
	rows, err := s.conn.Query(`SELECT index_name FROM index_entries WHERE zettel_id = ?`, zettelID)
	if err != nil {
		return nil, fmt.Errorf("store: indexes for zettel: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Exists reports whether a card name is taken.
func (s *IndexStore) Exists(name string) (bool, error) {
	var one int
	err := s.conn.QueryRow(`SELECT 1 FROM indexes WHERE name = ?`, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: index exists: %w", err)
	}
	return true, nil
}

func (s *IndexStore) entries(name string) ([]models.IndexEntry, error) {
	rows, err := s.conn.Query(`
		SELECT zettel_id, label FROM index_entries WHERE index_name = ? ORDER BY rowid
	`, name)
	if err != nil {
		return nil, fmt.Errorf("store: index entries: %w", err)
	}
	defer rows.Close()

	out := []models.IndexEntry{}
	for rows.Next() {
		var e models.IndexEntry
		var label sql.NullString
		if err := rows.Scan(&e.ZettelID, &label); err != nil {
			return nil, err
		}
		e.Label = label.String
		out = append(out, e)
	}
	return out, rows.Err()
}
