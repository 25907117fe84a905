package store

import (
	"errors"
	"testing"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
)

func TestZettelCreateValidatesID(t *testing.T) {
	st := testStore(t)

	if _, err := st.Zettels.Create("1a2", "ok", "body"); err != nil {
		t.Fatalf("valid id rejected: %v", err)
	}
	for _, id := range []string{"a1", "1A", "fl:1", ""} {
		_, err := st.Zettels.Create(id, "bad", "body")
		if !errors.Is(err, apperr.ErrInvalidID) {
			t.Errorf("Create(%q) err = %v, want ErrInvalidID", id, err)
		}
	}
}

func TestSuggestNextIDRoots(t *testing.T) {
	st := testStore(t)

	// Empty box: the first root is "1".
	id, err := st.Zettels.SuggestNextID("")
	if err != nil {
		t.Fatal(err)
	}
	if id != "1" {
		t.Errorf("first root = %q, want 1", id)
	}

	mustCreateZettel(t, st, "1")
	mustCreateZettel(t, st, "2")

	id, err = st.Zettels.SuggestNextID("")
	if err != nil {
		t.Fatal(err)
	}
	if id != "3" {
		t.Errorf("next root = %q, want 3", id)
	}
}

func TestSuggestNextIDChildren(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")

	// First child of a digit id gets a letter.
	id, err := st.Zettels.SuggestNextID("1")
	if err != nil {
		t.Fatal(err)
	}
	if id != "1a" {
		t.Errorf("first child of 1 = %q, want 1a", id)
	}

	mustCreateZettel(t, st, "1a")
	mustCreateZettel(t, st, "1b")

	id, err = st.Zettels.SuggestNextID("1")
	if err != nil {
		t.Fatal(err)
	}
	if id != "1c" {
		t.Errorf("child after 1a,1b = %q, want 1c", id)
	}

	// First child of a letter id gets a number.
	id, err = st.Zettels.SuggestNextID("1a")
	if err != nil {
		t.Fatal(err)
	}
	if id != "1a1" {
		t.Errorf("first child of 1a = %q, want 1a1", id)
	}

	mustCreateZettel(t, st, "1a1")
	mustCreateZettel(t, st, "1a2")

	id, err = st.Zettels.SuggestNextID("1a")
	if err != nil {
		t.Fatal(err)
	}
	if id != "1a3" {
		t.Errorf("child after 1a1,1a2 = %q, want 1a3", id)
	}
}

func TestSuggestNextIDInvalidParent(t *testing.T) {
	st := testStore(t)

	_, err := st.Zettels.SuggestNextID("not-an-id")
	if !errors.Is(err, apperr.ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", err)
	}
}

func TestSuggestNextIDLetterSaturation(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")
	mustCreateZettel(t, st, "1z")

	// A full letter run stays at z rather than widening.
	id, err := st.Zettels.SuggestNextID("1")
	if err != nil {
		t.Fatal(err)
	}
	if id != "1z" {
		t.Errorf("saturated child = %q, want 1z", id)
	}
}

func TestZettelRenameIntegrity(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")

	newID := "1a"
	updated, err := st.Zettels.Update("1", NoteUpdate{ID: &newID})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if updated.ID != "1a" {
		t.Errorf("renamed id = %q, want 1a", updated.ID)
	}

	old, err := st.Zettels.FindByID("1")
	if err != nil {
		t.Fatal(err)
	}
	if old != nil {
		t.Error("old id still resolves after rename")
	}
	exists, err := st.Zettels.Exists("1")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("Exists(old id) = true after rename")
	}
}

func TestZettelRenameToTakenID(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")
	mustCreateZettel(t, st, "2")

	taken := "2"
	_, err := st.Zettels.Update("1", NoteUpdate{ID: &taken})
	if !errors.Is(err, apperr.ErrDuplicateID) {
		t.Errorf("rename onto taken id err = %v, want ErrDuplicateID", err)
	}
}

func TestZettelFindAllStringOrder(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "2")
	mustCreateZettel(t, st, "10")
	mustCreateZettel(t, st, "1")

	all, err := st.Zettels.FindAll(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(all))
	for i, z := range all {
		got[i] = z.ID
	}
	// Plain string collation: "10" sorts before "2".
	want := []string{"1", "10", "2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func mustCreateZettel(t *testing.T, st *Store, id string) {
	t.Helper()
	if _, err := st.Zettels.Create(id, "zettel "+id, "content of "+id); err != nil {
		t.Fatalf("create %s: %v", id, err)
	}
}
