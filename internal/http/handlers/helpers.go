package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"parcelhub/internal/apperr"
	"parcelhub/internal/logx"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode error",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

type errResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type partialResponse struct {
	Error    string               `json:"error"`
	Kind     string               `json:"kind"`
	Outcomes []apperr.StepOutcome `json:"outcomes"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg, kind string) {
	logger.Warn("http error",
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("msg", msg),
	)
	writeJSON(logger, w, r, status, errResponse{Error: msg, Kind: kind})
}

// serviceError maps a service-layer error onto the HTTP surface. A partial
// two-entity write gets its own shape so the caller can see which step
// landed.
func serviceError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if pe := apperr.AsPartial(err); pe != nil {
		logger.Error("partial write",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
		writeJSON(logger, w, r, http.StatusBadGateway, partialResponse{
			Error:    pe.Error(),
			Kind:     apperr.Kind(err),
			Outcomes: pe.Outcomes(),
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	}

	msg := "internal error"
	if status < http.StatusInternalServerError {
		msg = err.Error()
	}
	writeError(logger, w, r, status, msg, apperr.Kind(err))
}

const bodyLimit = 1 << 20

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json", "invalid_argument")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data", "invalid_argument")
		return false
	}
	return true
}
