package store

import (
	"errors"
	"testing"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
	"github.com/JangVincent/zettelkasten-cli/internal/models"
)

func TestReferenceCreateAndQuery(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")
	if _, err := st.Literature.Create("lit:book", "Book", "n", "s"); err != nil {
		t.Fatal(err)
	}

	ref, err := st.References.Create("1", "lit:book")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ref.ZettelID != "1" || ref.LiteratureID == nil || *ref.LiteratureID != "lit:book" {
		t.Errorf("reference mismatch: %+v", ref)
	}

	byZettel, err := st.References.FindByZettel("1")
	if err != nil {
		t.Fatal(err)
	}
	if len(byZettel) != 1 {
		t.Errorf("FindByZettel = %+v", byZettel)
	}

	entry := lastHistory(t, st, models.ActionLink, models.TargetReference)
	if entry == nil {
		t.Fatal("no LINK history entry for reference")
	}
	if entry.TargetID != "1 -ref-> lit:book" {
		t.Errorf("reference history targetId = %q", entry.TargetID)
	}
}

func TestReferenceDanglingOnLiteratureDelete(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")
	if _, err := st.Literature.Create("lit:book", "Book", "n", "s"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.References.Create("1", "lit:book"); err != nil {
		t.Fatal(err)
	}

	if err := st.Literature.Delete("lit:book"); err != nil {
		t.Fatal(err)
	}

	refs, err := st.References.FindByZettel("1")
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 1 || refs[0].LiteratureID != nil {
		t.Errorf("refs after literature delete = %+v, want one dangling", refs)
	}

	dangling, err := st.References.FindDangling()
	if err != nil {
		t.Fatal(err)
	}
	if len(dangling) != 1 {
		t.Errorf("dangling = %+v", dangling)
	}
}

func TestReferenceCascadeOnZettelDelete(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")
	if _, err := st.Literature.Create("lit:book", "Book", "n", "s"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.References.Create("1", "lit:book"); err != nil {
		t.Fatal(err)
	}

	if err := st.Zettels.Delete("1"); err != nil {
		t.Fatal(err)
	}

	all, err := st.References.FindAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("references after zettel delete = %+v, want none", all)
	}
}

func TestReferenceDeleteAbsent(t *testing.T) {
	st := testStore(t)

	err := st.References.Delete("1", "lit:book")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
