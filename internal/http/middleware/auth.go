package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"parcelhub/internal/apperr"
	"parcelhub/internal/auth"
	"parcelhub/internal/logx"
)

type authGate interface {
	Authenticate(ctx context.Context, authHeader string) (auth.Principal, error)
	RequireAdmin(ctx context.Context, p auth.Principal) error
}

// Authenticate verifies the bearer token and stores the principal on the
// request context. Guard failures stop the request before any handler
// touches an entity.
func Authenticate(logger logx.Logger, gate authGate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := gate.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				guardError(logger, w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAdmin refuses requests whose stored role is not admin. It must
// run inside Authenticate.
func RequireAdmin(logger logx.Logger, gate authGate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				guardError(logger, w, r, apperr.ErrUnauthorized)
				return
			}
			if err := gate.RequireAdmin(r.Context(), p); err != nil {
				guardError(logger, w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func guardError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, apperr.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "authentication required"
	case errors.Is(err, apperr.ErrForbidden):
		status, msg = http.StatusForbidden, "forbidden"
	case errors.Is(err, apperr.ErrNotFound):
		// Unknown principal: authenticated but not registered.
		status, msg = http.StatusForbidden, "forbidden"
	}

	logger.Warn("request blocked",
		logx.String("path", r.URL.Path),
		logx.Int("status", status),
		logx.Err(err),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
		"kind":  apperr.Kind(err),
	})
}
