package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
	"github.com/JangVincent/zettelkasten-cli/internal/models"
)

// ReferenceStore manages zettel-to-literature edges with the same
// dangling-on-delete semantics as LinkStore, on the literature side.
type ReferenceStore struct {
	conn *sql.DB
}

// Create inserts a reference and logs a LINK history entry. No dedup; check
// Exists first.
func (s *ReferenceStore) Create(zettelID, literatureID string) (*models.Reference, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`
		INSERT INTO zettel_references (zettel_id, literature_id)
		VALUES (?, ?)
	`, zettelID, literatureID); err != nil {
		return nil, fmt.Errorf("store: insert reference: %w", err)
	}

	ref := &models.Reference{ZettelID: zettelID, LiteratureID: &literatureID}
	snap := models.ReferenceSnapshot{ZettelID: zettelID, LiteratureID: &literatureID}
	if err := recordHistory(tx, models.ActionLink, models.TargetReference,
		fmt.Sprintf("%s -ref-> %s", zettelID, literatureID), nil, snap); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return ref, nil
}

// Delete removes the exact reference and logs an UNLINK entry. A missing
// reference is an error.
func (s *ReferenceStore) Delete(zettelID, literatureID string) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var one int
	err = tx.QueryRow(`
		SELECT 1 FROM zettel_references WHERE zettel_id = ? AND literature_id = ?
	`, zettelID, literatureID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("store: delete reference %s -> %s: %w", zettelID, literatureID, apperr.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("store: find reference: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM zettel_references WHERE zettel_id = ? AND literature_id = ?`, zettelID, literatureID); err != nil {
		return fmt.Errorf("store: delete reference: %w", err)
	}
	snap := models.ReferenceSnapshot{ZettelID: zettelID, LiteratureID: &literatureID}
	if err := recordHistory(tx, models.ActionUnlink, models.TargetReference,
		fmt.Sprintf("%s -ref-> %s", zettelID, literatureID), snap, nil); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// FindByZettel returns all references owned by a zettel.
func (s *ReferenceStore) FindByZettel(zettelID string) ([]models.Reference, error) {
	return s.query(`SELECT zettel_id, literature_id FROM zettel_references WHERE zettel_id = ?`, zettelID)
}

// FindByLiterature returns all references pointing at a literature note.
func (s *ReferenceStore) FindByLiterature(literatureID string) ([]models.Reference, error) {
	return s.query(`SELECT zettel_id, literature_id FROM zettel_references WHERE literature_id = ?`, literatureID)
}

// FindDangling returns references whose literature note has been deleted.
func (s *ReferenceStore) FindDangling() ([]models.Reference, error) {
	return s.query(`SELECT zettel_id, literature_id FROM zettel_references WHERE literature_id IS NULL`)
}

// FindAll returns every reference.
func (s *ReferenceStore) FindAll() ([]models.Reference, error) {
	return s.query(`SELECT zettel_id, literature_id FROM zettel_references`)
}

// Exists reports whether the exact reference is present.
func (s *ReferenceStore) Exists(zettelID, literatureID string) (bool, error) {
	var one int
	err := s.conn.QueryRow(`SELECT 1 FROM zettel_references WHERE zettel_id = ? AND literature_id = ?`, zettelID, literatureID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: reference exists: %w", err)
	}
	return true, nil
}

func (s *ReferenceStore) query(sqlStr string, args ...any) ([]models.Reference, error) {
	rows, err := s.conn.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query references: %w", err)
	}
	defer rows.Close()

	var out []models.Reference
	for rows.Next() {
		var r models.Reference
		if err := rows.Scan(&r.ZettelID, &r.LiteratureID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
