package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListIndexes handles GET /indexes.
func (h *Handler) ListIndexes(w http.ResponseWriter, _ *http.Request) {
	cards, err := h.store.Indexes.FindAll()
	if err != nil {
		storeError(w, err, "list indexes failed")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(cards))
}

// CreateIndex handles POST /indexes.
func (h *Handler) CreateIndex(w http.ResponseWriter, r *http.Request) {
	var req CreateIndexRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	card, err := h.store.Indexes.Create(req.Name)
	if err != nil {
		storeError(w, err, "create index failed")
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

// GetIndex handles GET /indexes/{name}.
func (h *Handler) GetIndex(w http.ResponseWriter, r *http.Request) {
	card, err := h.store.Indexes.FindByName(chi.URLParam(r, "name"))
	if err != nil {
		storeError(w, err, "get index failed")
		return
	}
	if card == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// DeleteIndex handles DELETE /indexes/{name}. Entries cascade away.
func (h *Handler) DeleteIndex(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Indexes.Delete(chi.URLParam(r, "name")); err != nil {
		storeError(w, err, "delete index failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddIndexEntry handles POST /indexes/{name}/entries.
func (h *Handler) AddIndexEntry(w http.ResponseWriter, r *http.Request) {
	var req AddIndexEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	entry, err := h.store.Indexes.AddEntry(chi.URLParam(r, "name"), req.ZettelID, req.Label)
	if err != nil {
		storeError(w, err, "add index entry failed")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// RemoveIndexEntry handles DELETE /indexes/{name}/entries/{zettelId}.
func (h *Handler) RemoveIndexEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Indexes.RemoveEntry(chi.URLParam(r, "name"), chi.URLParam(r, "zettelId")); err != nil {
		storeError(w, err, "remove index entry failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
