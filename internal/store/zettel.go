package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
	"github.com/JangVincent/zettelkasten-cli/internal/models"
	"github.com/JangVincent/zettelkasten-cli/internal/zid"
)

var zettelKind = noteKind{
	table:      "zettels",
	ftsTable:   "fts_zettel",
	targetType: models.TargetZettel,
	// Raw string ordering: "10" sorts before "2". Known, kept for
	// compatibility with existing databases.
	listOrder:  "id",
	validateID: zid.IsValidZettelID,
}

// ZettelStore provides CRUD for zettels and Luhmann-style id derivation.
type ZettelStore struct {
	notes noteStore
}

// Create inserts a zettel. The id must satisfy the Luhmann format rule
// (digit first, then digits and lowercase letters only).
func (s *ZettelStore) Create(id, title, content string) (*models.Zettel, error) {
	r, err := s.notes.create(noteRecord{ID: id, Title: title, Content: content})
	if err != nil {
		return nil, err
	}
	return zettelFromRecord(r), nil
}

// FindByID returns the zettel, or nil when the id is unknown.
func (s *ZettelStore) FindByID(id string) (*models.Zettel, error) {
	r, ok, err := s.notes.findByID(id)
	if err != nil || !ok {
		return nil, err
	}
	return zettelFromRecord(r), nil
}

// FindAll lists zettels by id ascending. A non-positive limit returns
// everything.
func (s *ZettelStore) FindAll(limit, offset int) ([]models.Zettel, error) {
	rs, err := s.notes.findAll(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]models.Zettel, len(rs))
	for i, r := range rs {
		out[i] = *zettelFromRecord(r)
	}
	return out, nil
}

// Count returns the total number of zettels.
func (s *ZettelStore) Count() (int, error) {
	return s.notes.count()
}

// Update merges the supplied fields over the existing zettel. Renaming does
// not rewrite links, references, or index entries that pointed at the old
// id; they end up exactly as if the old id had been deleted.
func (s *ZettelStore) Update(id string, in NoteUpdate) (*models.Zettel, error) {
	r, err := s.notes.update(id, in)
	if err != nil {
		return nil, err
	}
	return zettelFromRecord(r), nil
}

// Delete removes the zettel. Links targeting it become dangling; links and
// index entries sourced from it are removed.
func (s *ZettelStore) Delete(id string) error {
	return s.notes.delete(id)
}

// Search runs a full-text query over title and content.
func (s *ZettelStore) Search(query string, limit int) ([]models.Zettel, error) {
	rs, err := s.notes.search(query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.Zettel, len(rs))
	for i, r := range rs {
		out[i] = *zettelFromRecord(r)
	}
	return out, nil
}

// Exists reports whether the id is taken.
func (s *ZettelStore) Exists(id string) (bool, error) {
	return s.notes.exists(id)
}

// SuggestNextID computes the next free-ish id in the Luhmann scheme.
//
// With no parent it returns the successor of the largest all-digit root id
// ("1" on an empty store). With a parent it alternates character classes:
// a digit-ending parent gets single-letter children ("1" -> "1a", "1b", ...,
// saturating at "z"), a letter-ending parent gets numeric children
// ("1a" -> "1a1", "1a2", ...). The greatest existing child is picked by raw
// string ordering, matching how the scheme has always behaved.
func (s *ZettelStore) SuggestNextID(parentID string) (string, error) {
	if parentID == "" {
		var id string
		err := s.notes.conn.QueryRow(`
			SELECT id FROM zettels
			WHERE id GLOB '[0-9]*'
			AND id NOT GLOB '*[a-zA-Z]*'
			ORDER BY CAST(id AS INTEGER) DESC
			LIMIT 1
		`).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return "1", nil
		}
		if err != nil {
			return "", fmt.Errorf("store: suggest root id: %w", err)
		}
		n, _ := leadingInt(id)
		return strconv.Itoa(n + 1), nil
	}

	if !zid.IsValidZettelID(parentID) {
		return "", fmt.Errorf("store: parent %q: %w", parentID, apperr.ErrInvalidID)
	}

	lastChar := parentID[len(parentID)-1]
	digitParent := lastChar >= '0' && lastChar <= '9'

	// Digit-ending parents extend with a letter, letter-ending parents with
	// digits. This alternation is the defining rule of the scheme.
	pattern := parentID + "[0-9]*"
	if digitParent {
		pattern = parentID + "[a-z]"
	}

	var lastChild string
	err := s.notes.conn.QueryRow(`
		SELECT id FROM zettels
		WHERE id GLOB ?
		ORDER BY id DESC
		LIMIT 1
	`, pattern).Scan(&lastChild)
	if errors.Is(err, sql.ErrNoRows) {
		if digitParent {
			return parentID + "a", nil
		}
		return parentID + "1", nil
	}
	if err != nil {
		return "", fmt.Errorf("store: suggest child id: %w", err)
	}

	suffix := lastChild[len(parentID):]
	if digitParent {
		next := suffix[0] + 1
		if next > 'z' {
			// Saturates: the scheme does not roll over to double letters.
			return parentID + "z", nil
		}
		return parentID + string(next), nil
	}
	n, ok := leadingInt(suffix)
	if !ok {
		return parentID + "1", nil
	}
	return parentID + strconv.Itoa(n+1), nil
}

// leadingInt parses the leading run of digits in s.
func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func zettelFromRecord(r noteRecord) *models.Zettel {
	return &models.Zettel{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
