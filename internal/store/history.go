package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JangVincent/zettelkasten-cli/internal/models"
)

const defaultHistoryLimit = 50

// HistoryStore is the append-only change ledger. Every mutation in the other
// stores writes here as the last step of its transaction; there are no
// update or delete operations.
type HistoryStore struct {
	conn *sql.DB
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// recordHistory appends one ledger row. It accepts either the shared
// connection or an open transaction, so mutations can log atomically with
// their other effects. Nil old/new values are stored as NULL; everything
// else is serialized to JSON.
func recordHistory(e execer, action, targetType, targetID string, oldValue, newValue any) error {
	oldJSON, err := marshalSnapshot(oldValue)
	if err != nil {
		return err
	}
	newJSON, err := marshalSnapshot(newValue)
	if err != nil {
		return err
	}
	_, err = e.Exec(`
		INSERT INTO history (action, target_type, target_id, old_value, new_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, action, targetType, targetID, oldJSON, newJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store: record history: %w", err)
	}
	return nil
}

func marshalSnapshot(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("store: marshal snapshot: %w", err)
	}
	s := string(data)
	return &s, nil
}

// Record appends one entry and returns it with its assigned id.
func (s *HistoryStore) Record(action, targetType, targetID string, oldValue, newValue any) (*models.HistoryEntry, error) {
	oldJSON, err := marshalSnapshot(oldValue)
	if err != nil {
		return nil, err
	}
	newJSON, err := marshalSnapshot(newValue)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	res, err := s.conn.Exec(`
		INSERT INTO history (action, target_type, target_id, old_value, new_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, action, targetType, targetID, oldJSON, newJSON, now)
	if err != nil {
		return nil, fmt.Errorf("store: record history: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: history id: %w", err)
	}
	return &models.HistoryEntry{
		ID:         id,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		OldValue:   oldJSON,
		NewValue:   newJSON,
		CreatedAt:  now,
	}, nil
}

// FindAll returns the most recent entries, newest first. A non-positive
// limit uses the default of 50.
func (s *HistoryStore) FindAll(limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := s.conn.Query(`
		SELECT id, action, target_type, target_id, old_value, new_value, created_at
		FROM history
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list history: %w", err)
	}
	defer rows.Close()

	var out []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.TargetType, &e.TargetID, &e.OldValue, &e.NewValue, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
