package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JangVincent/zettelkasten-cli/internal/apperr"
	"github.com/JangVincent/zettelkasten-cli/internal/store"
	"github.com/JangVincent/zettelkasten-cli/internal/zettelservice"
)

// Handler holds API route handlers.
type Handler struct {
	store *store.Store
	svc   *zettelservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(st *store.Store, svc *zettelservice.Service) *Handler {
	return &Handler{store: st, svc: svc}
}

// noteID extracts and decodes the {id} route parameter. Literature ids
// contain a colon, so clients may percent-encode them.
func noteID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func parsePagination(r *http.Request) (page, limit, offset int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// storeError maps store errors onto HTTP statuses: identity and existence
// failures surface as client errors, everything else is a 500.
func storeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrDuplicateID), errors.Is(err, apperr.ErrDuplicateName):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error(msg, slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// --- Zettels ---

// ListZettels handles GET /zettels with page/limit pagination.
func (h *Handler) ListZettels(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	total, err := h.store.Zettels.Count()
	if err != nil {
		storeError(w, err, "count zettels failed")
		return
	}
	zettels, err := h.store.Zettels.FindAll(limit, offset)
	if err != nil {
		storeError(w, err, "list zettels failed")
		return
	}
	writeJSON(w, http.StatusOK, pagedBody(nonNil(zettels), total, page, limit))
}

// CreateZettel handles POST /zettels.
func (h *Handler) CreateZettel(w http.ResponseWriter, r *http.Request) {
	var req CreateZettelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	zettel, err := h.store.Zettels.Create(req.ID, req.Title, req.Content)
	if err != nil {
		storeError(w, err, "create zettel failed")
		return
	}
	writeJSON(w, http.StatusCreated, zettel)
}

// SuggestZettelID handles GET /zettels/suggest-id?parent=.
func (h *Handler) SuggestZettelID(w http.ResponseWriter, r *http.Request) {
	parent := r.URL.Query().Get("parent")
	id, err := h.store.Zettels.SuggestNextID(parent)
	if err != nil {
		storeError(w, err, "suggest id failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// GetZettel handles GET /zettels/{id}.
func (h *Handler) GetZettel(w http.ResponseWriter, r *http.Request) {
	zettel, err := h.store.Zettels.FindByID(noteID(r))
	if err != nil {
		storeError(w, err, "get zettel failed")
		return
	}
	if zettel == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, zettel)
}

// UpdateZettel handles PUT /zettels/{id}, including id renames.
func (h *Handler) UpdateZettel(w http.ResponseWriter, r *http.Request) {
	var req UpdateNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	zettel, err := h.store.Zettels.Update(noteID(r), store.NoteUpdate{
		ID: req.ID, Title: req.Title, Content: req.Content,
	})
	if err != nil {
		storeError(w, err, "update zettel failed")
		return
	}
	writeJSON(w, http.StatusOK, zettel)
}

// DeleteZettel handles DELETE /zettels/{id}.
func (h *Handler) DeleteZettel(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Zettels.Delete(noteID(r)); err != nil {
		storeError(w, err, "delete zettel failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetZettelLinks handles GET /zettels/{id}/links.
func (h *Handler) GetZettelLinks(w http.ResponseWriter, r *http.Request) {
	id := noteID(r)
	outgoing, err := h.store.Links.FindOutgoing(id)
	if err != nil {
		storeError(w, err, "outgoing links failed")
		return
	}
	incoming, err := h.store.Links.FindIncoming(id)
	if err != nil {
		storeError(w, err, "incoming links failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"outgoing": nonNil(outgoing),
		"incoming": nonNil(incoming),
	})
}

// GetZettelReferences handles GET /zettels/{id}/references.
func (h *Handler) GetZettelReferences(w http.ResponseWriter, r *http.Request) {
	refs, err := h.store.References.FindByZettel(noteID(r))
	if err != nil {
		storeError(w, err, "zettel references failed")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(refs))
}

// GetZettelIndexes handles GET /zettels/{id}/indexes: the reverse lookup of
// which index cards mention this zettel.
func (h *Handler) GetZettelIndexes(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.Indexes.FindIndexesForZettel(noteID(r))
	if err != nil {
		storeError(w, err, "zettel indexes failed")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(names))
}

// --- Fleeting notes ---

// ListFleeting handles GET /fleeting.
func (h *Handler) ListFleeting(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	total, err := h.store.Fleeting.Count()
	if err != nil {
		storeError(w, err, "count fleeting failed")
		return
	}
	notes, err := h.store.Fleeting.FindAll(limit, offset)
	if err != nil {
		storeError(w, err, "list fleeting failed")
		return
	}
	writeJSON(w, http.StatusOK, pagedBody(nonNil(notes), total, page, limit))
}

// CreateFleeting handles POST /fleeting.
func (h *Handler) CreateFleeting(w http.ResponseWriter, r *http.Request) {
	var req CreateFleetingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	note, err := h.store.Fleeting.Create(req.ID, req.Title, req.Content)
	if err != nil {
		storeError(w, err, "create fleeting failed")
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// NextFleetingID handles GET /fleeting/next-id.
func (h *Handler) NextFleetingID(w http.ResponseWriter, _ *http.Request) {
	id, err := h.store.Fleeting.NextID()
	if err != nil {
		storeError(w, err, "next fleeting id failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// GetFleeting handles GET /fleeting/{id}.
func (h *Handler) GetFleeting(w http.ResponseWriter, r *http.Request) {
	note, err := h.store.Fleeting.FindByID(noteID(r))
	if err != nil {
		storeError(w, err, "get fleeting failed")
		return
	}
	if note == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// UpdateFleeting handles PUT /fleeting/{id}.
func (h *Handler) UpdateFleeting(w http.ResponseWriter, r *http.Request) {
	var req UpdateNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	note, err := h.store.Fleeting.Update(noteID(r), store.NoteUpdate{
		ID: req.ID, Title: req.Title, Content: req.Content,
	})
	if err != nil {
		storeError(w, err, "update fleeting failed")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteFleeting handles DELETE /fleeting/{id}.
func (h *Handler) DeleteFleeting(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Fleeting.Delete(noteID(r)); err != nil {
		storeError(w, err, "delete fleeting failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PromoteFleeting handles POST /fleeting/{id}/promote.
func (h *Handler) PromoteFleeting(w http.ResponseWriter, r *http.Request) {
	var req PromoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	zettel, err := h.svc.Promote(r.Context(), noteID(r), req.ZettelID)
	if err != nil {
		storeError(w, err, "promote fleeting failed")
		return
	}
	writeJSON(w, http.StatusCreated, zettel)
}

// --- Literature notes ---

// ListLiterature handles GET /literature.
func (h *Handler) ListLiterature(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	total, err := h.store.Literature.Count()
	if err != nil {
		storeError(w, err, "count literature failed")
		return
	}
	notes, err := h.store.Literature.FindAll(limit, offset)
	if err != nil {
		storeError(w, err, "list literature failed")
		return
	}
	writeJSON(w, http.StatusOK, pagedBody(nonNil(notes), total, page, limit))
}

// CreateLiterature handles POST /literature.
func (h *Handler) CreateLiterature(w http.ResponseWriter, r *http.Request) {
	var req CreateLiteratureRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	note, err := h.store.Literature.Create(req.ID, req.Title, req.Content, req.Source)
	if err != nil {
		storeError(w, err, "create literature failed")
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// GetLiterature handles GET /literature/{id}.
func (h *Handler) GetLiterature(w http.ResponseWriter, r *http.Request) {
	note, err := h.store.Literature.FindByID(noteID(r))
	if err != nil {
		storeError(w, err, "get literature failed")
		return
	}
	if note == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// UpdateLiterature handles PUT /literature/{id}.
func (h *Handler) UpdateLiterature(w http.ResponseWriter, r *http.Request) {
	var req UpdateNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	note, err := h.store.Literature.Update(noteID(r), store.NoteUpdate{
		ID: req.ID, Title: req.Title, Content: req.Content, Source: req.Source,
	})
	if err != nil {
		storeError(w, err, "update literature failed")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteLiterature handles DELETE /literature/{id}.
func (h *Handler) DeleteLiterature(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Literature.Delete(noteID(r)); err != nil {
		storeError(w, err, "delete literature failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
