package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-govjobs/internal/models"
	apierrors "github.com/pribylovaa/go-govjobs/internal/transport/http/errors"
	"github.com/pribylovaa/go-govjobs/internal/transport/http/middleware"
)

type createBatchRequest struct {
	Items []models.CreateInput `json:"items"`
}

type updateBatchRequest struct {
	Items []models.BatchUpdateItem `json:"items"`
}

type viewsResponse struct {
	Modified int64 `json:"modified"`
}

func (h *Handlers) GetByID(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (h *Handlers) Lookup(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.svc.FindByIDs(r.Context(), req.IDs)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[models.Announcement]{Data: items})
}

// Create - postedBy по умолчанию берётся из sub admin-токена.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateInput
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if in.PostedBy == "" {
		in.PostedBy = middleware.SubjectFrom(r.Context())
	}

	a, err := h.svc.Create(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.UpdateInput
	if err := decodeStrict(r, &patch); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	a, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SoftDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) BatchInsert(w http.ResponseWriter, r *http.Request) {
	var req createBatchRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.BatchInsert(r.Context(), req.Items)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) BatchUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateBatchRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.BatchUpdate(r.Context(), req.Items)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	var req createBatchRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.BulkUpsert(r.Context(), req.Items)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) IncrementViews(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewsResponse{Modified: h.svc.BatchIncrementViews(r.Context(), req.IDs)})
}
