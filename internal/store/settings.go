package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Settings is the flat key-value configuration persisted next to the notes.
type Settings struct {
	Language string `json:"language"`
	Path     string `json:"path"`
}

// SettingsStore reads and writes the settings table.
type SettingsStore struct {
	conn *sql.DB
}

// Defaults returned when a key has never been written.
const (
	defaultLanguage = "en-US"
	defaultPath     = "~/.zettel"
)

// Get returns the stored value for key, or its default when unset.
func (s *SettingsStore) Get(key string) (string, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		switch key {
		case "language":
			return defaultLanguage, nil
		case "path":
			return defaultPath, nil
		}
		return "", fmt.Errorf("store: unknown setting %q", key)
	}
	if err != nil {
		return "", fmt.Errorf("store: get setting: %w", err)
	}
	return value, nil
}

// Set upserts one key.
func (s *SettingsStore) Set(key, value string) error {
	if _, err := s.conn.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
		return fmt.Errorf("store: set setting: %w", err)
	}
	return nil
}

// GetAll returns the full settings snapshot.
func (s *SettingsStore) GetAll() (Settings, error) {
	language, err := s.Get("language")
	if err != nil {
		return Settings{}, err
	}
	path, err := s.Get("path")
	if err != nil {
		return Settings{}, err
	}
	return Settings{Language: language, Path: path}, nil
}
