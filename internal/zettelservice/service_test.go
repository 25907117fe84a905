package zettelservice

import (
	"context"
	"errors"
	"testing"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
	"github.com/JangVincent/zettelkasten-cli/internal/store"
	"github.com/JangVincent/zettelkasten-cli/internal/testutil"
)

func testService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := testutil.TestStore(t)
	return New(st), st
}

func TestPromote(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	if _, err := st.Fleeting.Create("fl:1", "an insight", "worth keeping"); err != nil {
		t.Fatal(err)
	}

	z, err := svc.Promote(ctx, "fl:1", "1")
	if err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if z.ID != "1" || z.Title != "an insight" || z.Content != "worth keeping" {
		t.Errorf("promoted zettel = %+v", z)
	}

	// The fleeting original is gone.
	fl, err := st.Fleeting.FindByID("fl:1")
	if err != nil {
		t.Fatal(err)
	}
	if fl != nil {
		t.Error("fleeting note survived promotion")
	}
}

func TestPromoteWithSuggestedID(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	if _, err := st.Zettels.Create("1", "existing", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Fleeting.Create("fl:1", "t", "c"); err != nil {
		t.Fatal(err)
	}

	z, err := svc.Promote(ctx, "fl:1", "")
	if err != nil {
		t.Fatal(err)
	}
	if z.ID != "2" {
		t.Errorf("suggested id = %q, want 2", z.ID)
	}
}

func TestPromoteMissingFleeting(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Promote(context.Background(), "fl:404", "1")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPromoteTakenZettelID(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	if _, err := st.Zettels.Create("1", "taken", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Fleeting.Create("fl:1", "t", "c"); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Promote(ctx, "fl:1", "1")
	if !errors.Is(err, apperr.ErrDuplicateID) {
		t.Errorf("err = %v, want ErrDuplicateID", err)
	}

	// The fleeting note is untouched when the zettel cannot be created.
	fl, err := st.Fleeting.FindByID("fl:1")
	if err != nil {
		t.Fatal(err)
	}
	if fl == nil {
		t.Error("fleeting note lost on failed promotion")
	}
}

func TestDangling(t *testing.T) {
	svc, st := testService(t)

	if _, err := st.Zettels.Create("1", "a", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Zettels.Create("2", "b", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Links.Create("1", "2", "r"); err != nil {
		t.Fatal(err)
	}

	report, err := svc.Dangling(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Links) != 0 || len(report.References) != 0 {
		t.Errorf("clean store reported dangling edges: %+v", report)
	}
	if report.Links == nil || report.References == nil {
		t.Error("report slices must be non-nil for JSON encoding")
	}

	if err := st.Zettels.Delete("2"); err != nil {
		t.Fatal(err)
	}
	report, err = svc.Dangling(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Links) != 1 {
		t.Errorf("dangling links = %+v", report.Links)
	}
}

func TestGraph(t *testing.T) {
	svc, st := testService(t)

	if _, err := st.Zettels.Create("1", "a", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Zettels.Create("2", "b", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Links.Create("1", "2", "r"); err != nil {
		t.Fatal(err)
	}

	g, err := svc.Graph(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Zettels) != 2 || len(g.Links) != 1 || len(g.References) != 0 {
		t.Errorf("graph = %d zettels, %d links, %d refs", len(g.Zettels), len(g.Links), len(g.References))
	}
}

func TestSearchAllKinds(t *testing.T) {
	svc, st := testService(t)

	if _, err := st.Fleeting.Create("", "gravity notes", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Zettels.Create("1", "gravity well", "x"); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Search(context.Background(), "gravity", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Fleeting) != 1 || len(res.Zettels) != 1 {
		t.Errorf("results = %+v", res)
	}
	if res.Literature == nil {
		t.Error("empty kind must be a non-nil slice")
	}
}
