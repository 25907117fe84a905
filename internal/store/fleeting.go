package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/JangVincent/zettelkasten-cli/internal/models"
	"github.com/JangVincent/zettelkasten-cli/internal/zid"
)

// FleetingStore provides CRUD for fleeting notes and the monotonic
// fl:-namespace id sequence.
type FleetingStore struct {
	notes noteStore
}

// Create inserts a fleeting note. An empty id is filled with NextID().
func (s *FleetingStore) Create(id, title, content string) (*models.FleetingNote, error) {
	if id == "" {
		next, err := s.NextID()
		if err != nil {
			return nil, err
		}
		id = next
	}
	r, err := s.notes.create(noteRecord{ID: id, Title: title, Content: content})
	if err != nil {
		return nil, err
	}
	return fleetingFromRecord(r), nil
}

// FindByID returns the note, or nil when the id is unknown.
func (s *FleetingStore) FindByID(id string) (*models.FleetingNote, error) {
	r, ok, err := s.notes.findByID(id)
	if err != nil || !ok {
		return nil, err
	}
	return fleetingFromRecord(r), nil
}

// FindAll lists notes newest first. A non-positive limit returns everything.
func (s *FleetingStore) FindAll(limit, offset int) ([]models.FleetingNote, error) {
	rs, err := s.notes.findAll(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]models.FleetingNote, len(rs))
	for i, r := range rs {
		out[i] = *fleetingFromRecord(r)
	}
	return out, nil
}

// Count returns the total number of fleeting notes.
func (s *FleetingStore) Count() (int, error) {
	return s.notes.count()
}

// Update merges the supplied fields over the existing note. A non-nil
// update id renames the note.
func (s *FleetingStore) Update(id string, in NoteUpdate) (*models.FleetingNote, error) {
	r, err := s.notes.update(id, in)
	if err != nil {
		return nil, err
	}
	return fleetingFromRecord(r), nil
}

// Delete removes the note. Deleting an unknown id is an error.
func (s *FleetingStore) Delete(id string) error {
	return s.notes.delete(id)
}

// Search runs a full-text query over title and content.
func (s *FleetingStore) Search(query string, limit int) ([]models.FleetingNote, error) {
	rs, err := s.notes.search(query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.FleetingNote, len(rs))
	for i, r := range rs {
		out[i] = *fleetingFromRecord(r)
	}
	return out, nil
}

// Exists reports whether the id is taken.
func (s *FleetingStore) Exists(id string) (bool, error) {
	return s.notes.exists(id)
}

// NextID returns the next id in the fl: sequence: one past the highest
// numeric suffix in use, or "fl:1" when none exists or none parses.
func (s *FleetingStore) NextID() (string, error) {
	var id string
	err := s.notes.conn.QueryRow(`
		SELECT id FROM fleeting_notes
		WHERE id LIKE 'fl:%'
		ORDER BY CAST(SUBSTR(id, 4) AS INTEGER) DESC
		LIMIT 1
	`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return zid.FleetingPrefix + "1", nil
	}
	if err != nil {
		return "", fmt.Errorf("store: next fleeting id: %w", err)
	}
	suffix := strings.TrimPrefix(id, zid.FleetingPrefix)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return zid.FleetingPrefix + "1", nil
	}
	return zid.FleetingPrefix + strconv.Itoa(n+1), nil
}

func fleetingFromRecord(r noteRecord) *models.FleetingNote {
	return &models.FleetingNote{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
