//go:build sqlite_fts5

package store

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS fts_fleeting USING fts5(id, title, content);
		CREATE VIRTUAL TABLE IF NOT EXISTS fts_literature USING fts5(id, title, content, source);
		CREATE VIRTUAL TABLE IF NOT EXISTS fts_zettel USING fts5(id, title, content);
	`)
	return err
}

func ftsInsert(tx *sql.Tx, k noteKind, r noteRecord) error {
	var err error
	if k.hasSource {
		_, err = tx.Exec(fmt.Sprintf(`INSERT INTO %s (id, title, content, source) VALUES (?, ?, ?, ?)`, k.ftsTable),
			r.ID, r.Title, r.Content, r.Source)
	} else {
		_, err = tx.Exec(fmt.Sprintf(`INSERT INTO %s (id, title, content) VALUES (?, ?, ?)`, k.ftsTable),
			r.ID, r.Title, r.Content)
	}
	if err != nil {
		return fmt.Errorf("store: insert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, k noteKind, id string) {
	_, _ = tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, k.ftsTable), id)
}

// search runs an FTS5 MATCH query ranked by relevance. Malformed query
// syntax degrades to an empty result instead of an error: callers hand us
// free text and the search contract never fails on it.
func (ns *noteStore) search(query string, limit int) ([]noteRecord, error) {
	qualified := "n." + strings.ReplaceAll(ns.cols(), ", ", ", n.")
	sqlStr := fmt.Sprintf(`
		SELECT %s FROM %s n
		JOIN %s f ON n.id = f.id
		WHERE %s MATCH ?
		ORDER BY rank`,
		qualified, ns.kind.table, ns.kind.ftsTable, ns.kind.ftsTable)
	args := []any{query}
	if limit > 0 {
		sqlStr += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := ns.conn.Query(sqlStr, args...)
	if err != nil {
		return nil, nil
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
	if rows.Err() != nil {
		return nil, nil
	}
	return out, nil
}
