package auth

import (
	"context"
	"fmt"

	"parcelhub/internal/apperr"
	"parcelhub/internal/domain"
)

// userFinder is the slice of the user store the gate needs for role lookups.
type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Gate composes token verification and role resolution into the two guards
// used to wrap privileged operations.
type Gate struct {
	verifier TokenVerifier
	users    userFinder
}

// NewGate creates a Gate over a verifier and the user store.
func NewGate(verifier TokenVerifier, users userFinder) *Gate {
	return &Gate{verifier: verifier, users: users}
}

// Authenticate verifies the Authorization header value and returns the
// principal. Missing credential → ErrUnauthorized; rejected credential →
// ErrForbidden.
func (g *Gate) Authenticate(ctx context.Context, authHeader string) (Principal, error) {
	token, err := BearerToken(authHeader)
	if err != nil {
		return Principal{}, err
	}
	return g.verifier.Verify(ctx, token)
}

// Role resolves the stored role for an email. A stored user without a role
// field gets DefaultRole; an absent user is reported as NotFound.
func (g *Gate) Role(ctx context.Context, email string) (domain.Role, error) {
	u, err := g.users.FindByEmail(ctx, email)
	if err != nil {
		return "", apperr.Upstream(err)
	}
	if u == nil {
		return "", fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
	}
	if u.Role == "" {
		return domain.DefaultRole, nil
	}
	return u.Role, nil
}

// RequireAdmin fails with ErrForbidden unless the principal's stored role
// is admin. An unknown principal is equally forbidden.
func (g *Gate) RequireAdmin(ctx context.Context, p Principal) error {
	u, err := g.users.FindByEmail(ctx, p.Email)
	if err != nil {
		return apperr.Upstream(err)
	}
	if u == nil || u.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: admin role required", apperr.ErrForbidden)
	}
	return nil
}
