// Package zettelservice coordinates multi-store operations on top of the
// persistence layer: promoting fleeting notes, the dangling-edge report,
// and the combined graph view.
package zettelservice

import (
	"context"
	"fmt"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
	"github.com/JangVincent/zettelkasten-cli/internal/models"
	"github.com/JangVincent/zettelkasten-cli/internal/store"
)

// Service wraps the store with cross-store operations.
type Service struct {
	store *store.Store
}

// New creates a new Service.
func New(st *store.Store) *Service {
	return &Service{store: st}
}

// Promote converts a fleeting note into a permanent zettel and deletes the
// fleeting original. An empty zettelID accepts the suggested next root id.
func (s *Service) Promote(_ context.Context, fleetingID, zettelID string) (*models.Zettel, error) {
	fleeting, err := s.store.Fleeting.FindByID(fleetingID)
	if err != nil {
		return nil, err
	}
	if fleeting == nil {
		return nil, fmt.Errorf("promote %q: %w", fleetingID, apperr.ErrNotFound)
	}

	if zettelID == "" {
		zettelID, err = s.store.Zettels.SuggestNextID("")
		if err != nil {
			return nil, err
		}
	}

	zettel, err := s.store.Zettels.Create(zettelID, fleeting.Title, fleeting.Content)
	if err != nil {
		return nil, err
	}
	if err := s.store.Fleeting.Delete(fleetingID); err != nil {
		return nil, err
	}
	return zettel, nil
}

// DanglingReport is the repair signal surfaced to users: every link and
// reference whose target has been deleted.
type DanglingReport struct {
	Links      []models.Link      `json:"links"`
	References []models.Reference `json:"references"`
}

// Dangling collects all dangling links and references.
func (s *Service) Dangling(_ context.Context) (*DanglingReport, error) {
	links, err := s.store.Links.FindDangling()
	if err != nil {
		return nil, err
	}
	refs, err := s.store.References.FindDangling()
	if err != nil {
		return nil, err
	}
	if links == nil {
		links = []models.Link{}
	}
	if refs == nil {
		refs = []models.Reference{}
	}
	return &DanglingReport{Links: links, References: refs}, nil
}

// Graph is the unpaginated knowledge graph for export and visualization.
type Graph struct {
	Zettels    []models.Zettel    `json:"zettels"`
	Links      []models.Link      `json:"links"`
	References []models.Reference `json:"references"`
}

// Graph returns every zettel with every link and reference.
func (s *Service) Graph(_ context.Context) (*Graph, error) {
	zettels, err := s.store.Zettels.FindAll(0, 0)
	if err != nil {
		return nil, err
	}
	links, err := s.store.Links.FindAll()
	if err != nil {
		return nil, err
	}
	refs, err := s.store.References.FindAll()
	if err != nil {
		return nil, err
	}
	if zettels == nil {
		zettels = []models.Zettel{}
	}
	if links == nil {
		links = []models.Link{}
	}
	if refs == nil {
		refs = []models.Reference{}
	}
	return &Graph{Zettels: zettels, Links: links, References: refs}, nil
}

// SearchResults groups full-text hits per note kind.
type SearchResults struct {
	Fleeting   []models.FleetingNote   `json:"fleeting"`
	Literature []models.LiteratureNote `json:"literature"`
	Zettels    []models.Zettel         `json:"zettels"`
}

// Search runs the query against all three note kinds. Malformed query
// syntax yields empty results, never an error.
func (s *Service) Search(_ context.Context, query string, limit int) (*SearchResults, error) {
	fleeting, err := s.store.Fleeting.Search(query, limit)
	if err != nil {
		return nil, err
	}
	literature, err := s.store.Literature.Search(query, limit)
	if err != nil {
		return nil, err
	}
	zettels, err := s.store.Zettels.Search(query, limit)
	if err != nil {
		return nil, err
	}
	if fleeting == nil {
		fleeting = []models.FleetingNote{}
	}
	if literature == nil {
		literature = []models.LiteratureNote{}
	}
	if zettels == nil {
		zettels = []models.Zettel{}
	}
	return &SearchResults{Fleeting: fleeting, Literature: literature, Zettels: zettels}, nil
}
