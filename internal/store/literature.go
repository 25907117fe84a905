package store

import (
	"github.com/JangVincent/zettelkasten-cli/internal/models"
)

// LiteratureStore provides CRUD for literature notes. Caller-supplied ids
// are normalized into the lit: namespace on create and rename.
type LiteratureStore struct {
	notes noteStore
}

// Create inserts a literature note, prepending "lit:" when missing.
func (s *LiteratureStore) Create(id, title, content, source string) (*models.LiteratureNote, error) {
	r, err := s.notes.create(noteRecord{ID: id, Title: title, Content: content, Source: source})
	if err != nil {
		return nil, err
	}
	return literatureFromRecord(r), nil
}

// FindByID returns the note, or nil when the id is unknown.
func (s *LiteratureStore) FindByID(id string) (*models.LiteratureNote, error) {
	r, ok, err := s.notes.findByID(id)
	if err != nil || !ok {
		return nil, err
	}
	return literatureFromRecord(r), nil
}

// FindAll lists notes newest first. A non-positive limit returns everything.
func (s *LiteratureStore) FindAll(limit, offset int) ([]models.LiteratureNote, error) {
	rs, err := s.notes.findAll(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]models.LiteratureNote, len(rs))
	for i, r := range rs {
		out[i] = *literatureFromRecord(r)
	}
	return out, nil
}

// Count returns the total number of literature notes.
func (s *LiteratureStore) Count() (int, error) {
	return s.notes.count()
}

// Update merges the supplied fields over the existing note. A rename id is
// normalized into the lit: namespace first.
func (s *LiteratureStore) Update(id string, in NoteUpdate) (*models.LiteratureNote, error) {
	r, err := s.notes.update(id, in)
	if err != nil {
		return nil, err
	}
	return literatureFromRecord(r), nil
}

// Delete removes the note. References pointing at it become dangling.
func (s *LiteratureStore) Delete(id string) error {
	return s.notes.delete(id)
}

// Search runs a full-text query over title, content, and source.
func (s *LiteratureStore) Search(query string, limit int) ([]models.LiteratureNote, error) {
	rs, err := s.notes.search(query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.LiteratureNote, len(rs))
	for i, r := range rs {
		out[i] = *literatureFromRecord(r)
	}
	return out, nil
}

// Exists reports whether the id is taken.
func (s *LiteratureStore) Exists(id string) (bool, error) {
	return s.notes.exists(id)
}

func literatureFromRecord(r noteRecord) *models.LiteratureNote {
	return &models.LiteratureNote{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Source:    r.Source,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
