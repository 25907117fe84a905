package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// --- Links ---

// ListLinks handles GET /links: every edge, for graph and export consumers.
func (h *Handler) ListLinks(w http.ResponseWriter, _ *http.Request) {
	links, err := h.store.Links.FindAll()
	if err != nil {
		storeError(w, err, "list links failed")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(links))
}

// CreateLink handles POST /links. The edge must not already exist.
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	exists, err := h.store.Links.Exists(req.SourceID, req.TargetID)
	if err != nil {
		storeError(w, err, "link exists failed")
		return
	}
	if exists {
		writeJSON(w, http.StatusConflict, errorBody("link already exists"))
		return
	}
	link, err := h.store.Links.Create(req.SourceID, req.TargetID, req.Reason)
	if err != nil {
		storeError(w, err, "create link failed")
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// ListDanglingLinks handles GET /links/dangling.
func (h *Handler) ListDanglingLinks(w http.ResponseWriter, _ *http.Request) {
	links, err := h.store.Links.FindDangling()
	if err != nil {
		storeError(w, err, "dangling links failed")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(links))
}

// DeleteLink handles DELETE /links/{source}/{target}.
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	source := chi.URLParam(r, "source")
	target := chi.URLParam(r, "target")
	if err := h.store.Links.Delete(source, target); err != nil {
		storeError(w, err, "delete link failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- References ---

// ListReferences handles GET /references.
func (h *Handler) ListReferences(w http.ResponseWriter, _ *http.Request) {
	refs, err := h.store.References.FindAll()
	if err != nil {
		storeError(w, err, "list references failed")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(refs))
}

// CreateReference handles POST /references.
func (h *Handler) CreateReference(w http.ResponseWriter, r *http.Request) {
	var req CreateReferenceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	exists, err := h.store.References.Exists(req.ZettelID, req.LiteratureID)
	if err != nil {
		storeError(w, err, "reference exists failed")
		return
	}
	if exists {
		writeJSON(w, http.StatusConflict, errorBody("reference already exists"))
		return
	}
	ref, err := h.store.References.Create(req.ZettelID, req.LiteratureID)
	if err != nil {
		storeError(w, err, "create reference failed")
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

// ListDanglingReferences handles GET /references/dangling.
func (h *Handler) ListDanglingReferences(w http.ResponseWriter, _ *http.Request) {
	refs, err := h.store.References.FindDangling()
	if err != nil {
		storeError(w, err, "dangling references failed")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(refs))
}

// DeleteReference handles DELETE /references/{zettel}/{literature}.
func (h *Handler) DeleteReference(w http.ResponseWriter, r *http.Request) {
	zettelID := chi.URLParam(r, "zettel")
	literatureID, err := decodeParam(chi.URLParam(r, "literature"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("bad literature id"))
		return
	}
	if err := h.store.References.Delete(zettelID, literatureID); err != nil {
		storeError(w, err, "delete reference failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Cross-cutting ---

// Dangling handles GET /dangling: the combined repair report.
func (h *Handler) Dangling(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Dangling(r.Context())
	if err != nil {
		storeError(w, err, "dangling report failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Graph handles GET /graph: the full unpaginated knowledge graph.
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	graph, err := h.svc.Graph(r.Context())
	if err != nil {
		storeError(w, err, "graph failed")
		return
	}
	writeJSON(w, http.StatusOK, graph)
}

// Search handles GET /search?q= across all three note kinds.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		storeError(w, err, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// History handles GET /history?limit=.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.store.History.FindAll(limit)
	if err != nil {
		storeError(w, err, "history failed")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

// GetSettings handles GET /settings.
func (h *Handler) GetSettings(w http.ResponseWriter, _ *http.Request) {
	settings, err := h.store.Settings.GetAll()
	if err != nil {
		storeError(w, err, "get settings failed")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Language != nil {
		if err := h.store.Settings.Set("language", *req.Language); err != nil {
			storeError(w, err, "set language failed")
			return
		}
	}
	if req.Path != nil {
		if err := h.store.Settings.Set("path", *req.Path); err != nil {
			storeError(w, err, "set path failed")
			return
		}
	}
	settings, err := h.store.Settings.GetAll()
	if err != nil {
		storeError(w, err, "get settings failed")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
