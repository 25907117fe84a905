package store

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
	"github.com/JangVincent/zettelkasten-cli/internal/models"
)

func TestFleetingCreateAndFind(t *testing.T) {
	st := testStore(t)

	created, err := st.Fleeting.Create("", "inbox idea", "call about the draft")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "fl:1" {
		t.Errorf("first auto id = %q, want fl:1", created.ID)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps not set on create")
	}

	got, err := st.Fleeting.FindByID("fl:1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("FindByID returned nil for existing note")
	}
	if got.Title != "inbox idea" || got.Content != "call about the draft" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestFleetingFindMissing(t *testing.T) {
	st := testStore(t)

	got, err := st.Fleeting.FindByID("fl:99")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("FindByID for absent id = %+v, want nil", got)
	}
}

func TestFleetingNextIDSequence(t *testing.T) {
	st := testStore(t)

	for i, want := range []string{"fl:1", "fl:2", "fl:3"} {
		n, err := st.Fleeting.Create("", "note", "body")
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if n.ID != want {
			t.Errorf("create %d id = %q, want %q", i, n.ID, want)
		}
	}

	// The sequence follows the highest numeric suffix, not the row count.
	if err := st.Fleeting.Delete("fl:2"); err != nil {
		t.Fatal(err)
	}
	n, err := st.Fleeting.Create("", "note", "body")
	if err != nil {
		t.Fatal(err)
	}
	if n.ID != "fl:4" {
		t.Errorf("id after deleting fl:2 = %q, want fl:4", n.ID)
	}
}

func TestFleetingDuplicateID(t *testing.T) {
	st := testStore(t)

	if _, err := st.Fleeting.Create("fl:7", "a", "b"); err != nil {
		t.Fatal(err)
	}
	_, err := st.Fleeting.Create("fl:7", "c", "d")
	if !errors.Is(err, apperr.ErrDuplicateID) {
		t.Errorf("duplicate create err = %v, want ErrDuplicateID", err)
	}
}

func TestFleetingUpdate(t *testing.T) {
	st := testStore(t)

	if _, err := st.Fleeting.Create("fl:1", "old title", "old body"); err != nil {
		t.Fatal(err)
	}

	title := "new title"
	updated, err := st.Fleeting.Update("fl:1", NoteUpdate{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "new title" || updated.Content != "old body" {
		t.Errorf("partial update mismatch: %+v", updated)
	}

	_, err = st.Fleeting.Update("fl:404", NoteUpdate{Title: &title})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("update absent err = %v, want ErrNotFound", err)
	}
}

func TestFleetingDeleteTwice(t *testing.T) {
	st := testStore(t)

	if _, err := st.Fleeting.Create("fl:1", "a", "b"); err != nil {
		t.Fatal(err)
	}
	if err := st.Fleeting.Delete("fl:1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	err := st.Fleeting.Delete("fl:1")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestFleetingHistory(t *testing.T) {
	st := testStore(t)

	if _, err := st.Fleeting.Create("fl:1", "title", "body"); err != nil {
		t.Fatal(err)
	}

	entry := lastHistory(t, st, models.ActionCreate, models.TargetFleeting)
	if entry == nil {
		t.Fatal("no CREATE history entry recorded")
	}
	if entry.TargetID != "fl:1" {
		t.Errorf("targetId = %q, want fl:1", entry.TargetID)
	}
	if entry.OldValue != nil {
		t.Error("CREATE should have no old value")
	}
	if entry.NewValue == nil {
		t.Fatal("CREATE should carry a new-value snapshot")
	}
	var snap models.NoteSnapshot
	if err := json.Unmarshal([]byte(*entry.NewValue), &snap); err != nil {
		t.Fatalf("snapshot not valid JSON: %v", err)
	}
	if snap.ID != "fl:1" || snap.Title != "title" || snap.Content != "body" {
		t.Errorf("snapshot mismatch: %+v", snap)
	}

	if err := st.Fleeting.Delete("fl:1"); err != nil {
		t.Fatal(err)
	}
	entry = lastHistory(t, st, models.ActionDelete, models.TargetFleeting)
	if entry == nil {
		t.Fatal("no DELETE history entry recorded")
	}
	if entry.NewValue != nil {
		t.Error("DELETE should have no new value")
	}
	if entry.OldValue == nil {
		t.Error("DELETE should carry an old-value snapshot")
	}
}

func TestFleetingFindAllPagination(t *testing.T) {
	st := testStore(t)

	for i := 0; i < 5; i++ {
		if _, err := st.Fleeting.Create("", "n", "b"); err != nil {
			t.Fatal(err)
		}
	}

	page, err := st.Fleeting.FindAll(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 {
		t.Errorf("page len = %d, want 2", len(page))
	}

	total, err := st.Fleeting.Count()
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 {
		t.Errorf("count = %d, want 5", total)
	}
}
