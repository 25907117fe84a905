package store

import (
	"testing"

	"github.com/JangVincent/zettelkasten-cli/internal/models"
)

func TestHistoryMostRecentFirst(t *testing.T) {
	st := testStore(t)

	mustCreateZettel(t, st, "1")
	mustCreateZettel(t, st, "2")
	if err := st.Zettels.Delete("2"); err != nil {
		t.Fatal(err)
	}

	entries, err := st.History.FindAll(50)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Action != models.ActionDelete {
		t.Errorf("first entry action = %s, want DELETE", entries[0].Action)
	}
	// Same-timestamp entries fall back to insertion order, newest first.
	for i := 1; i < len(entries); i++ {
		if entries[i].ID > entries[i-1].ID {
			t.Errorf("entries not in descending insertion order: %d after %d",
				entries[i].ID, entries[i-1].ID)
		}
	}
}

func TestHistoryLimitDefault(t *testing.T) {
	st := testStore(t)

	for i := 0; i < 60; i++ {
		if _, err := st.Fleeting.Create("", "n", "b"); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := st.History.FindAll(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 50 {
		t.Errorf("default limit returned %d entries, want 50", len(entries))
	}

	entries, err = st.History.FindAll(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 10 {
		t.Errorf("explicit limit returned %d entries, want 10", len(entries))
	}
}

func TestHistoryUpdateCarriesBothSides(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")

	title := "revised"
	if _, err := st.Zettels.Update("1", NoteUpdate{Title: &title}); err != nil {
		t.Fatal(err)
	}

	entry := lastHistory(t, st, models.ActionUpdate, models.TargetZettel)
	if entry == nil {
		t.Fatal("no UPDATE entry")
	}
	if entry.OldValue == nil || entry.NewValue == nil {
		t.Error("UPDATE must carry both old and new snapshots")
	}
}

func TestHistorySurvivesEntityDelete(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")
	if err := st.Zettels.Delete("1"); err != nil {
		t.Fatal(err)
	}

	// The ledger is append-only: deleting the entity never erases its rows.
	entries, err := st.History.FindAll(50)
	if err != nil {
		t.Fatal(err)
	}
	var forZettel int
	for _, e := range entries {
		if e.TargetType == models.TargetZettel && e.TargetID == "1" {
			forZettel++
		}
	}
	if forZettel != 2 {
		t.Errorf("ledger rows for deleted zettel = %d, want 2", forZettel)
	}
}
