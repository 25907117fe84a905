package store

import (
	"path/filepath"
	"testing"
)

func TestSettingsSeededOnOpen(t *testing.T) {
	st := testStore(t)

	lang, err := st.Settings.Get("language")
	if err != nil {
		t.Fatal(err)
	}
	if lang != "en-US" {
		t.Errorf("language = %q, want en-US", lang)
	}

	// path is seeded to the directory holding the database file.
	path, err := st.Settings.Get("path")
	if err != nil {
		t.Fatal(err)
	}
	if path == "" || !filepath.IsAbs(path) {
		t.Errorf("seeded path = %q, want an absolute directory", path)
	}
}

func TestSettingsSetAndGetAll(t *testing.T) {
	st := testStore(t)

	if err := st.Settings.Set("language", "de-DE"); err != nil {
		t.Fatal(err)
	}
	if err := st.Settings.Set("language", "ko-KR"); err != nil {
		t.Fatal(err)
	}

	all, err := st.Settings.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if all.Language != "ko-KR" {
		t.Errorf("language after upsert = %q, want ko-KR", all.Language)
	}
	if all.Path == "" {
		t.Error("path missing from GetAll")
	}
}

func TestSettingsUnknownKey(t *testing.T) {
	st := testStore(t)

	if _, err := st.Settings.Get("theme"); err == nil {
		t.Error("unknown key should error")
	}
}
