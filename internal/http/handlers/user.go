package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"parcelhub/internal/domain"
	"parcelhub/internal/logx"
)

// UserHandler serves HTTP endpoints for the user directory.
type UserHandler struct {
	usecase userUsecase
	logger  logx.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(logger logx.Logger, uc userUsecase) *UserHandler {
	return &UserHandler{usecase: uc, logger: logger}
}

// Ensure handles POST /users. Repeat registrations are not an error.
func (h *UserHandler) Ensure(w http.ResponseWriter, r *http.Request) {
	var req ensureUserRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	created, err := h.usecase.Ensure(r.Context(), &domain.User{Email: req.Email, Name: req.Name})
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(h.logger, w, r, status, map[string]bool{"created": created})
}

// Role handles GET /users/role/{email}.
func (h *UserHandler) Role(w http.ResponseWriter, r *http.Request) {
	role, err := h.usecase.Role(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"role": string(role)})
}

// Search handles GET /users/search?email=.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.Search(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// SetAdmin handles PUT /users/admin/{email}.
func (h *UserHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	var req setAdminRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if err := h.usecase.SetAdmin(r.Context(), chi.URLParam(r, "email"), req.Admin); err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]bool{"admin": req.Admin})
}
