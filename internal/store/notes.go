package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
	"github.com/JangVincent/zettelkasten-cli/internal/models"
)

// noteKind is the per-kind policy the generic CRUD core is parameterized
// over: table names, history target type, id rules, and list ordering.
type noteKind struct {
	table      string
	ftsTable   string
	targetType string
	hasSource  bool
	listOrder  string
	// normalizeID rewrites a caller-supplied id into the kind's namespace
	// (nil for kinds whose ids are stored verbatim).
	normalizeID func(string) string
	// validateID rejects malformed ids before insertion (nil skips the check).
	validateID func(string) bool
}

var (
	fleetingKind = noteKind{
		table:      "fleeting_notes",
		ftsTable:   "fts_fleeting",
		targetType: models.TargetFleeting,
		listOrder:  "created_at DESC",
	}
	literatureKind = noteKind{
		table:      "literature_notes",
		ftsTable:   "fts_literature",
		targetType: models.TargetLiterature,
		hasSource:  true,
		listOrder:  "created_at DESC",
		normalizeID: func(id string) string {
			if len(id) >= 4 && id[:4] == "lit:" {
				return id
			}
			return "lit:" + id
		},
	}
)

// noteRecord is the storage-level shape shared by all three note kinds.
// Source is only meaningful for kinds with hasSource set.
type noteRecord struct {
	ID        string
	Title     string
	Content   string
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r noteRecord) snapshot(k noteKind) models.NoteSnapshot {
	snap := models.NoteSnapshot{ID: r.ID, Title: r.Title, Content: r.Content}
	if k.hasSource {
		snap.Source = r.Source
	}
	return snap
}

// NoteUpdate carries a partial update. Nil fields keep the existing value;
// a non-nil ID renames the record.
type NoteUpdate struct {
	ID      *string
	Title   *string
	Content *string
	Source  *string
}

// noteStore implements CRUD for one note kind. All mutations touch the
// entity table, the full-text projection, and the history ledger inside a
// single transaction.
type noteStore struct {
	conn *sql.DB
	kind noteKind
}

func (ns *noteStore) cols() string {
	if ns.kind.hasSource {
		return "id, title, content, source, created_at, updated_at"
	}
	return "id, title, content, created_at, updated_at"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (ns *noteStore) scan(row rowScanner) (noteRecord, error) {
	var r noteRecord
	if ns.kind.hasSource {
		return r, row.Scan(&r.ID, &r.Title, &r.Content, &r.Source, &r.CreatedAt, &r.UpdatedAt)
	}
	return r, row.Scan(&r.ID, &r.Title, &r.Content, &r.CreatedAt, &r.UpdatedAt)
}

func (ns *noteStore) insertSQL() string {
	if ns.kind.hasSource {
		return fmt.Sprintf(`INSERT INTO %s (id, title, content, source, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`, ns.kind.table)
	}
	return fmt.Sprintf(`INSERT INTO %s (id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`, ns.kind.table)
}

func (ns *noteStore) insertArgs(r noteRecord) []any {
	if ns.kind.hasSource {
		return []any{r.ID, r.Title, r.Content, r.Source, r.CreatedAt, r.UpdatedAt}
	}
	return []any{r.ID, r.Title, r.Content, r.CreatedAt, r.UpdatedAt}
}

func (ns *noteStore) create(r noteRecord) (noteRecord, error) {
	if norm := ns.kind.normalizeID; norm != nil {
		r.ID = norm(r.ID)
	}
	if valid := ns.kind.validateID; valid != nil && !valid(r.ID) {
		return noteRecord{}, fmt.Errorf("store: create %s %q: %w", ns.kind.targetType, r.ID, apperr.ErrInvalidID)
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	tx, err := ns.conn.Begin()
	if err != nil {
		return noteRecord{}, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	var one int
	err = tx.QueryRow(fmt.Sprintf(`SELECT 1 FROM %s WHERE id = ?`, ns.kind.table), r.ID).Scan(&one)
	if err == nil {
		return noteRecord{}, fmt.Errorf("store: create %s %q: %w", ns.kind.targetType, r.ID, apperr.ErrDuplicateID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return noteRecord{}, fmt.Errorf("store: check duplicate: %w", err)
	}

	if _, err := tx.Exec(ns.insertSQL(), ns.insertArgs(r)...); err != nil {
		return noteRecord{}, fmt.Errorf("store: insert %s: %w", ns.kind.targetType, err)
	}
	if err := ftsInsert(tx, ns.kind, r); err != nil {
		return noteRecord{}, err
	}
	if err := recordHistory(tx, models.ActionCreate, ns.kind.targetType, r.ID, nil, r.snapshot(ns.kind)); err != nil {
		return noteRecord{}, err
	}
	if err := tx.Commit(); err != nil {
		return noteRecord{}, fmt.Errorf("store: commit: %w", err)
	}
	return r, nil
}

// findByID returns the record and true, or a zero record and false when the
// id is unknown. A missing record is not an error.
func (ns *noteStore) findByID(id string) (noteRecord, bool, error) {
	row := ns.conn.QueryRow(fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, ns.cols(), ns.kind.table), id)
	r, err := ns.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return noteRecord{}, false, nil
	}
	if err != nil {
		return noteRecord{}, false, fmt.Errorf("store: find %s: %w", ns.kind.targetType, err)
	}
	return r, true, nil
}

func (ns *noteStore) findAll(limit, offset int) ([]noteRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, ns.cols(), ns.kind.table, ns.kind.listOrder)
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
		if offset > 0 {
			query += ` OFFSET ?`
			args = append(args, offset)
		}
	}
	rows, err := ns.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", ns.kind.targetType, err)
	}
	defer rows.Close()

	var out []noteRecord
	for rows.Next() {
		r, err := ns.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (ns *noteStore) count() (int, error) {
	var n int
	if err := ns.conn.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, ns.kind.table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count %s: %w", ns.kind.targetType, err)
	}
	return n, nil
}

func (ns *noteStore) update(id string, in NoteUpdate) (noteRecord, error) {
	tx, err := ns.conn.Begin()
	if err != nil {
		return noteRecord{}, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	row := tx.QueryRow(fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, ns.cols(), ns.kind.table), id)
	existing, err := ns.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return noteRecord{}, fmt.Errorf("store: update %s %q: %w", ns.kind.targetType, id, apperr.ErrNotFound)
	}
	if err != nil {
		return noteRecord{}, fmt.Errorf("store: update %s: %w", ns.kind.targetType, err)
	}

	updated := existing
	updated.UpdatedAt = time.Now().UTC()
	if in.Title != nil {
		updated.Title = *in.Title
	}
	if in.Content != nil {
		updated.Content = *in.Content
	}
	if in.Source != nil && ns.kind.hasSource {
		updated.Source = *in.Source
	}
	if in.ID != nil {
		updated.ID = *in.ID
		if norm := ns.kind.normalizeID; norm != nil {
			updated.ID = norm(updated.ID)
		}
		if valid := ns.kind.validateID; valid != nil && !valid(updated.ID) {
			return noteRecord{}, fmt.Errorf("store: rename %s to %q: %w", ns.kind.targetType, updated.ID, apperr.ErrInvalidID)
		}
	}

	if updated.ID != id {
		// Rename: insert under the new id, drop the old row, and re-point the
		// full-text projection. Foreign rows keyed on the old id are handled
		// by the engine exactly as a delete would be (cascade on the source
		// side, set-null on the target side).
		var one int
		err = tx.QueryRow(fmt.Sprintf(`SELECT 1 FROM %s WHERE id = ?`, ns.kind.table), updated.ID).Scan(&one)
		if err == nil {
			return noteRecord{}, fmt.Errorf("store: rename %s to %q: %w", ns.kind.targetType, updated.ID, apperr.ErrDuplicateID)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return noteRecord{}, fmt.Errorf("store: check duplicate: %w", err)
		}
		if _, err := tx.Exec(ns.insertSQL(), ns.insertArgs(updated)...); err != nil {
			return noteRecord{}, fmt.Errorf("store: insert renamed %s: %w", ns.kind.targetType, err)
		}
		if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, ns.kind.table), id); err != nil {
			return noteRecord{}, fmt.Errorf("store: delete old %s: %w", ns.kind.targetType, err)
		}
	} else {
		setClause := `title = ?, content = ?, updated_at = ?`
		args := []any{updated.Title, updated.Content, updated.UpdatedAt}
		if ns.kind.hasSource {
			setClause = `title = ?, content = ?, source = ?, updated_at = ?`
			args = []any{updated.Title, updated.Content, updated.Source, updated.UpdatedAt}
		}
		args = append(args, id)
		if _, err := tx.Exec(fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, ns.kind.table, setClause), args...); err != nil {
			return noteRecord{}, fmt.Errorf("store: update %s: %w", ns.kind.targetType, err)
		}
	}

	ftsDelete(tx, ns.kind, id)
	if err := ftsInsert(tx, ns.kind, updated); err != nil {
		return noteRecord{}, err
	}
	if err := recordHistory(tx, models.ActionUpdate, ns.kind.targetType, updated.ID, existing.snapshot(ns.kind), updated.snapshot(ns.kind)); err != nil {
		return noteRecord{}, err
	}
	if err := tx.Commit(); err != nil {
		return noteRecord{}, fmt.Errorf("store: commit: %w", err)
	}
	return updated, nil
}

func (ns *noteStore) delete(id string) error {
	tx, err := ns.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	row := tx.QueryRow(fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, ns.cols(), ns.kind.table), id)
	existing, err := ns.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("store: delete %s %q: %w", ns.kind.targetType, id, apperr.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", ns.kind.targetType, err)
	}

	if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, ns.kind.table), id); err != nil {
		return fmt.Errorf("store: delete %s: %w", ns.kind.targetType, err)
	}
	ftsDelete(tx, ns.kind, id)
	if err := recordHistory(tx, models.ActionDelete, ns.kind.targetType, id, existing.snapshot(ns.kind), nil); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

func (ns *noteStore) exists(id string) (bool, error) {
	var one int
	err := ns.conn.QueryRow(fmt.Sprintf(`SELECT 1 FROM %s WHERE id = ?`, ns.kind.table), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: exists %s: %w", ns.kind.targetType, err)
	}
	return true, nil
}
