package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"parcelhub/internal/domain"
	"parcelhub/internal/logx"
)

// RiderHandler serves HTTP endpoints for rider resources.
type RiderHandler struct {
	usecase riderUsecase
	logger  logx.Logger
}

// NewRiderHandler creates a new RiderHandler.
func NewRiderHandler(logger logx.Logger, uc riderUsecase) *RiderHandler {
	return &RiderHandler{usecase: uc, logger: logger}
}

// Register handles POST /riders.
func (h *RiderHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRiderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	id, err := h.usecase.Register(r.Context(), &domain.Rider{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		SenderCenter: req.District,
	})
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, map[string]string{"insertedId": id})
}

// List handles GET /riders.
func (h *RiderHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.ListAll(r.Context())
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// ListPending handles GET /riders/pending.
func (h *RiderHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.ListPending(r.Context())
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// ListActive handles GET /riders/active.
func (h *RiderHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.ListActive(r.Context())
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// ListAvailable handles GET /riders/available?district=.
func (h *RiderHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.ListByDistrict(r.Context(), r.URL.Query().Get("district"))
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// SetStatus handles PATCH /riders/{id}/status.
func (h *RiderHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req setRiderStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	err := h.usecase.SetStatus(r.Context(), chi.URLParam(r, "id"), domain.RiderStatus(req.Status), req.Email)
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": req.Status})
}

// Delete handles DELETE /riders/{id}.
func (h *RiderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.usecase.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]bool{"deleted": true})
}
