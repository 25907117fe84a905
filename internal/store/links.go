package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
	"github.com/JangVincent/zettelkasten-cli/internal/models"
)

// LinkStore manages typed zettel-to-zettel edges. The target column is
// nullable: deleting a target zettel leaves the edge behind with a NULL
// target (a dangling link) instead of removing it.
type LinkStore struct {
	conn *sql.DB
}

// Create inserts an edge and logs a LINK history entry. The store does not
// deduplicate; callers are expected to check Exists first.
func (s *LinkStore) Create(sourceID, targetID, reason string) (*models.Link, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`
		INSERT INTO links (source_id, target_id, reason)
		VALUES (?, ?, ?)
	`, sourceID, targetID, reason); err != nil {
		return nil, fmt.Errorf("store: insert link: %w", err)
	}

	link := &models.Link{SourceID: sourceID, TargetID: &targetID, Reason: reason}
	snap := models.LinkSnapshot{SourceID: sourceID, TargetID: &targetID, Reason: reason}
	if err := recordHistory(tx, models.ActionLink, models.TargetLink,
		fmt.Sprintf("%s -> %s", sourceID, targetID), nil, snap); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return link, nil
}

// Delete removes the exact edge and logs an UNLINK entry carrying its
// reason. A missing edge is an error, not a no-op.
func (s *LinkStore) Delete(sourceID, targetID string) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var reason string
	err = tx.QueryRow(`
		SELECT reason FROM links WHERE source_id = ? AND target_id = ?
	`, sourceID, targetID).Scan(&reason)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("store: delete link %s -> %s: %w", sourceID, targetID, apperr.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("store: find link: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM links WHERE source_id = ? AND target_id = ?`, sourceID, targetID); err != nil {
		return fmt.Errorf("store: delete link: %w", err)
	}
	snap := models.LinkSnapshot{SourceID: sourceID, TargetID: &targetID, Reason: reason}
	if err := recordHistory(tx, models.ActionUnlink, models.TargetLink,
		fmt.Sprintf("%s -> %s", sourceID, targetID), snap, nil); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// FindOutgoing returns all edges leaving sourceID, dangling ones included.
func (s *LinkStore) FindOutgoing(sourceID string) ([]models.Link, error) {
	return s.query(`SELECT source_id, target_id, reason FROM links WHERE source_id = ?`, sourceID)
}

// FindIncoming returns all edges pointing at targetID.
func (s *LinkStore) FindIncoming(targetID string) ([]models.Link, error) {
	return s.query(`SELECT source_id, target_id, reason FROM links WHERE target_id = ?`, targetID)
}

// FindDangling returns edges whose target has been deleted.
func (s *LinkStore) FindDangling() ([]models.Link, error) {
	return s.query(`SELECT source_id, target_id, reason FROM links WHERE target_id IS NULL`)
}

// FindAll returns every edge, for graph and export consumers.
func (s *LinkStore) FindAll() ([]models.Link, error) {
	return s.query(`SELECT source_id, target_id, reason FROM links`)
}

// Exists reports whether the exact edge is present.
func (s *LinkStore) Exists(sourceID, targetID string) (bool, error) {
	var one int
	err := s.conn.QueryRow(`SELECT 1 FROM links WHERE source_id = ? AND target_id = ?`, sourceID, targetID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: link exists: %w", err)
	}
	return true, nil
}

func (s *LinkStore) query(sqlStr string, args ...any) ([]models.Link, error) {
	rows, err := s.conn.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query links: %w", err)
	}
	defer rows.Close()

	var out []models.Link
	for rows.Next() {
		var l models.Link
		if err := rows.Scan(&l.SourceID, &l.TargetID, &l.Reason); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
