package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"parcelhub/internal/auth"
	"parcelhub/internal/domain"
	"parcelhub/internal/logx"
)

// ParcelHandler serves HTTP endpoints for parcel resources.
type ParcelHandler struct {
	usecase    parcelUsecase
	assignment assignmentUsecase
	logger     logx.Logger
}

// NewParcelHandler creates a new ParcelHandler.
func NewParcelHandler(logger logx.Logger, uc parcelUsecase, assign assignmentUsecase) *ParcelHandler {
	return &ParcelHandler{usecase: uc, assignment: assign, logger: logger}
}

// Create handles POST /parcels.
func (h *ParcelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createParcelRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	id, err := h.usecase.Create(r.Context(), &domain.Parcel{
		Title:        req.Title,
		CreatedBy:    req.CreatedBy,
		SenderCenter: req.SenderCenter,
	})
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/parcels/"+id)
	writeJSON(h.logger, w, r, http.StatusCreated, map[string]string{"insertedId": id})
}

// List handles GET /parcels with optional created_by, payment_status and
// delivery_status query filters.
func (h *ParcelHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.ParcelFilter{
		CreatedBy:      q.Get("created_by"),
		PaymentStatus:  domain.PaymentStatus(q.Get("payment_status")),
		DeliveryStatus: domain.DeliveryStatus(q.Get("delivery_status")),
	}

	list, err := h.usecase.List(r.Context(), f)
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// GetByID handles GET /parcels/{id}.
func (h *ParcelHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.usecase.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, p)
}

// SetStatus handles PATCH /parcels/{id}/status.
func (h *ParcelHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req setParcelStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	err := h.usecase.SetStatus(r.Context(), chi.URLParam(r, "id"), domain.DeliveryStatus(req.Status))
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": req.Status})
}

// Assign handles PATCH /parcels/{id}/assign.
func (h *ParcelHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRiderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	err := h.assignment.Assign(r.Context(), chi.URLParam(r, "id"), domain.RiderAssignment{
		RiderID:    req.RiderID,
		RiderName:  req.RiderName,
		RiderEmail: req.RiderEmail,
	})
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": string(domain.DeliveryRiderAssigned)})
}

// Delete handles DELETE /parcels/{id}.
func (h *ParcelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.usecase.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]bool{"deleted": true})
}

// RiderWorklist handles GET /rider/parcels. The worklist belongs to the
// verified principal; there is no way to ask for someone else's.
func (h *ParcelHandler) RiderWorklist(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "authentication required", "unauthorized")
		return
	}

	list, err := h.usecase.ListForRider(r.Context(), p.Email)
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// AddTracking handles POST /tracking.
func (h *ParcelHandler) AddTracking(w http.ResponseWriter, r *http.Request) {
	var req addTrackingRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	id, err := h.usecase.AddTracking(r.Context(), &domain.TrackingUpdate{
		TrackingID: req.TrackingID,
		Status:     req.Status,
		Location:   req.Location,
		Note:       req.Note,
	})
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, map[string]string{"insertedId": id})
}

// Tracking handles GET /tracking/{trackingId}.
func (h *ParcelHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.Tracking(r.Context(), chi.URLParam(r, "trackingId"))
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}
