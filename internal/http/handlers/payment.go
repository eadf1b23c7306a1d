package handlers

import (
	"net/http"

	"parcelhub/internal/auth"
	"parcelhub/internal/domain"
	"parcelhub/internal/logx"
)

// PaymentHandler serves HTTP endpoints for payment resources.
type PaymentHandler struct {
	usecase paymentUsecase
	logger  logx.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(logger logx.Logger, uc paymentUsecase) *PaymentHandler {
	return &PaymentHandler{usecase: uc, logger: logger}
}

// Record handles POST /payments. A partial outcome still carries the
// inserted payment id in the 502 body.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.Record(r.Context(), &domain.Payment{
		ParcelID:      req.ParcelID,
		Email:         req.Email,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		Method:        req.Method,
	})
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, res)
}

// List handles GET /payments?email=. The service refuses emails that do
// not match the verified principal.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "authentication required", "unauthorized")
		return
	}

	list, err := h.usecase.List(r.Context(), r.URL.Query().Get("email"), p)
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// CreateIntent handles POST /payments/create-intent.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	secret, err := h.usecase.CreateIntent(r.Context(), req.AmountInCents)
	if err != nil {
		serviceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"clientSecret": secret})
}
