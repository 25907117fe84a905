//go:build !sqlite_fts5

package store

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not compiled in; search falls back to LIKE over the entity table.
	return nil
}

func ftsInsert(_ *sql.Tx, _ noteKind, _ noteRecord) error { return nil }

func ftsDelete(_ *sql.Tx, _ noteKind, _ string) {}

// search performs a LIKE-based scan (fallback when FTS5 is not compiled in).
// There is no relevance ranking; results come back in list order.
func (ns *noteStore) search(query string, limit int) ([]noteRecord, error) {
	like := "%" + query + "%"
	where := `title LIKE ? OR content LIKE ?`
	args := []any{like, like}
	if ns.kind.hasSource {
		where += ` OR source LIKE ?`
		args = append(args, like)
	}
	sqlStr := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s`,
		ns.cols(), ns.kind.table, where, ns.kind.listOrder)
	if limit > 0 {
		sqlStr += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := ns.conn.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("store: search %s: %w", ns.kind.targetType, err)
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
