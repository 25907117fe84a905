package store

import "database/sql"

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS fleeting_notes (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS literature_notes (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL,
	source     TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS zettels (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS links (
	source_id TEXT NOT NULL,
	target_id TEXT,
	reason    TEXT NOT NULL,
	PRIMARY KEY (source_id, target_id),
	FOREIGN KEY (source_id) REFERENCES zettels(id) ON DELETE CASCADE ON UPDATE CASCADE,
	FOREIGN KEY (target_id) REFERENCES zettels(id) ON DELETE SET NULL ON UPDATE CASCADE
);

CREATE TABLE IF NOT EXISTS zettel_references (
	zettel_id     TEXT NOT NULL,
	literature_id TEXT,
	PRIMARY KEY (zettel_id, literature_id),
	FOREIGN KEY (zettel_id) REFERENCES zettels(id) ON DELETE CASCADE ON UPDATE CASCADE,
	FOREIGN KEY (literature_id) REFERENCES literature_notes(id) ON DELETE SET NULL ON UPDATE CASCADE
);

CREATE TABLE IF NOT EXISTS indexes (
	name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS index_entries (
	index_name TEXT NOT NULL,
	zettel_id  TEXT NOT NULL,
	label      TEXT,
	PRIMARY KEY (index_name, zettel_id),
	FOREIGN KEY (index_name) REFERENCES indexes(name) ON DELETE CASCADE ON UPDATE CASCADE,
	FOREIGN KEY (zettel_id) REFERENCES zettels(id) ON DELETE CASCADE ON UPDATE CASCADE
);

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS history (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	action      TEXT NOT NULL,
	target_type TEXT NOT NULL,
	target_id   TEXT NOT NULL,
	old_value   TEXT,
	new_value   TEXT,
	created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_created ON history(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_links_target ON links(target_id);
CREATE INDEX IF NOT EXISTS idx_refs_literature ON zettel_references(literature_id);
`

func seedSettings(conn *sql.DB, basePath string) error {
	for _, kv := range [][2]string{{"language", "en-US"}, {"path", basePath}} {
		if _, err := conn.Exec(`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}
