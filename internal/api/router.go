package api

import (
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/JangVincent/zettelkasten-cli/internal/store"
	"github.com/JangVincent/zettelkasten-cli/internal/zettelservice"
)

func decodeParam(raw string) (string, error) {
	return url.PathUnescape(raw)
}

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(st *store.Store, svc *zettelservice.Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(st, svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Zettels.
	r.Get("/zettels", h.ListZettels)
	r.Post("/zettels", h.CreateZettel)
	r.Get("/zettels/suggest-id", h.SuggestZettelID)
	r.Get("/zettels/{id}", h.GetZettel)
	r.Put("/zettels/{id}", h.UpdateZettel)
	r.Delete("/zettels/{id}", h.DeleteZettel)
	r.Get("/zettels/{id}/links", h.GetZettelLinks)
	r.Get("/zettels/{id}/references", h.GetZettelReferences)
	r.Get("/zettels/{id}/indexes", h.GetZettelIndexes)

	// Fleeting notes.
	r.Get("/fleeting", h.ListFleeting)
	r.Post("/fleeting", h.CreateFleeting)
	r.Get("/fleeting/next-id", h.NextFleetingID)
	r.Get("/fleeting/{id}", h.GetFleeting)
	r.Put("/fleeting/{id}", h.UpdateFleeting)
	r.Delete("/fleeting/{id}", h.DeleteFleeting)
	r.Post("/fleeting/{id}/promote", h.PromoteFleeting)

	// Literature notes.
	r.Get("/literature", h.ListLiterature)
	r.Post("/literature", h.CreateLiterature)
	r.Get("/literature/{id}", h.GetLiterature)
	r.Put("/literature/{id}", h.UpdateLiterature)
	r.Delete("/literature/{id}", h.DeleteLiterature)

	// Links and references.
	r.Get("/links", h.ListLinks)
	r.Post("/links", h.CreateLink)
	r.Get("/links/dangling", h.ListDanglingLinks)
	r.Delete("/links/{source}/{target}", h.DeleteLink)
	r.Get("/references", h.ListReferences)
	r.Post("/references", h.CreateReference)
	r.Get("/references/dangling", h.ListDanglingReferences)
	r.Delete("/references/{zettel}/{literature}", h.DeleteReference)
	r.Get("/dangling", h.Dangling)
	r.Get("/graph", h.Graph)

	// Index cards.
	r.Get("/indexes", h.ListIndexes)
	r.Post("/indexes", h.CreateIndex)
	r.Get("/indexes/{name}", h.GetIndex)
	r.Delete("/indexes/{name}", h.DeleteIndex)
	r.Post("/indexes/{name}/entries", h.AddIndexEntry)
	r.Delete("/indexes/{name}/entries/{zettelId}", h.RemoveIndexEntry)

	// Search, history, settings.
	r.Get("/search", h.Search)
	r.Get("/history", h.History)
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)

	return r
}
