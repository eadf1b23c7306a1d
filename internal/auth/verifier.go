package auth

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"parcelhub/internal/apperr"
)

// Principal is the verified identity extracted from a caller's credential.
type Principal struct {
	Email string
}

// TokenVerifier validates an opaque bearer credential against the external
// identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// BearerToken extracts the credential from an Authorization header value.
// A missing or malformed header fails closed with ErrUnauthorized.
func BearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", fmt.Errorf("%w: missing bearer credential", apperr.ErrUnauthorized)
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer credential", apperr.ErrUnauthorized)
	}
	return token, nil
}

// FirebaseVerifier verifies ID tokens issued by Firebase Auth.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier builds a verifier from a service-account credentials file.
func NewFirebaseVerifier(ctx context.Context, credFile string) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credFile))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify checks the ID token and yields the principal email. A rejected
// token maps to ErrForbidden: the credential was present but not trusted.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (Principal, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: token verification failed", apperr.ErrForbidden)
	}
	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return Principal{}, fmt.Errorf("%w: token carries no email claim", apperr.ErrForbidden)
	}
	return Principal{Email: email}, nil
}
