package store

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
	"github.com/JangVincent/zettelkasten-cli/internal/models"
)

func TestLinkCreateAndQuery(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")
	mustCreateZettel(t, st, "2")

	link, err := st.Links.Create("1", "2", "elaborates")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if link.SourceID != "1" || link.TargetID == nil || *link.TargetID != "2" {
		t.Errorf("link mismatch: %+v", link)
	}

	out, err := st.Links.FindOutgoing("1")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Reason != "elaborates" {
		t.Errorf("outgoing = %+v", out)
	}

	in, err := st.Links.FindIncoming("2")
	if err != nil {
		t.Fatal(err)
	}
	if len(in) != 1 || in[0].SourceID != "1" {
		t.Errorf("incoming = %+v", in)
	}

	ok, err := st.Links.Exists("1", "2")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("Exists = false for stored link")
	}
}

func TestLinkHistoryFormat(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")
	mustCreateZettel(t, st, "2")

	if _, err := st.Links.Create("1", "2", "contrasts"); err != nil {
		t.Fatal(err)
	}

	entry := lastHistory(t, st, models.ActionLink, models.TargetLink)
	if entry == nil {
		t.Fatal("no LINK history entry")
	}
	if entry.TargetID != "1 -> 2" {
		t.Errorf("link history targetId = %q, want \"1 -> 2\"", entry.TargetID)
	}
	if entry.NewValue == nil {
		t.Fatal("LINK should carry a snapshot")
	}
	var snap models.LinkSnapshot
	if err := json.Unmarshal([]byte(*entry.NewValue), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Reason != "contrasts" {
		t.Errorf("snapshot reason = %q", snap.Reason)
	}
}

func TestLinkDanglingOnTargetDelete(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")
	mustCreateZettel(t, st, "2")

	if _, err := st.Links.Create("1", "2", "supports"); err != nil {
		t.Fatal(err)
	}
	if err := st.Zettels.Delete("2"); err != nil {
		t.Fatal(err)
	}

	// The edge survives with a null target and its reason intact.
	out, err := st.Links.FindOutgoing("1")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("outgoing after target delete = %d links, want 1", len(out))
	}
	if out[0].TargetID != nil {
		t.Errorf("targetId = %v, want nil", *out[0].TargetID)
	}
	if out[0].Reason != "supports" {
		t.Errorf("reason = %q, want supports", out[0].Reason)
	}

	dangling, err := st.Links.FindDangling()
	if err != nil {
		t.Fatal(err)
	}
	if len(dangling) != 1 || dangling[0].SourceID != "1" {
		t.Errorf("dangling = %+v", dangling)
	}
}

func TestLinkCascadeOnSourceDelete(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")
	mustCreateZettel(t, st, "2")

	if _, err := st.Links.Create("1", "2", "r"); err != nil {
		t.Fatal(err)
	}
	if err := st.Zettels.Delete("1"); err != nil {
		t.Fatal(err)
	}

	all, err := st.Links.FindAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("links after source delete = %+v, want none", all)
	}
}

func TestLinkDelete(t *testing.T) {
	st := testStore(t)
	mustCreateZettel(t, st, "1")
	mustCreateZettel(t, st, "2")

	if _, err := st.Links.Create("1", "2", "r"); err != nil {
		t.Fatal(err)
	}
	if err := st.Links.Delete("1", "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	entry := lastHistory(t, st, models.ActionUnlink, models.TargetLink)
	if entry == nil {
		t.Fatal("no UNLINK history entry")
	}
	if entry.OldValue == nil {
		t.Error("UNLINK should carry the removed link as old value")
	}

	err := st.Links.Delete("1", "2")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("delete absent link err = %v, want ErrNotFound", err)
	}
}
