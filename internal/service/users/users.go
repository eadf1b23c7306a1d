package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/apperr"
	"parcelhub/internal/domain"
	"parcelhub/internal/logx"
)

const searchLimit = 10

// Service maintains the user directory that backs authorization.
type Service struct {
	repo             userRepository
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

func NewService(repo userRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             repo,
		operationTimeout: timeout,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Ensure registers the user on first sight and refreshes nothing on repeat
// visits. It reports whether a new record was created.
func (s *Service) Ensure(ctx context.Context, u *domain.User) (bool, error) {
	if u == nil || strings.TrimSpace(u.Email) == "" {
		return false, fmt.Errorf("%w: email is required", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	existing, err := s.repo.FindByEmail(ctx, u.Email)
	if err != nil {
		return false, apperr.Upstream(err)
	}
	if existing != nil {
		return false, nil
	}

	if u.Role == "" {
		u.Role = domain.DefaultRole
	}
	now := s.now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.LastLogin = now

	if _, err := s.repo.Insert(ctx, u); err != nil {
		return false, apperr.Upstream(err)
	}
	s.logger.Info("user registered", logx.String("email", u.Email))
	return true, nil
}

// Role returns the stored role for email, defaulting when the record has
// none.
func (s *Service) Role(ctx context.Context, email string) (domain.Role, error) {
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("%w: email is required", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.repo.FindByEmail(ctx, email)
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

// Search returns up to ten users whose email matches the pattern,
// case-insensitively.
func (s *Service) Search(ctx context.Context, pattern string) ([]domain.User, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: search pattern is required", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.repo.SearchByEmail(ctx, pattern, searchLimit)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return out, nil
}

// SetAdmin grants or revokes the admin role for email. Revocation falls
// back to the default role rather than clearing the field.
func (s *Service) SetAdmin(ctx context.Context, email string, admin bool) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", apperr.ErrInvalid)
	}
	role := domain.DefaultRole
	if admin {
		role = domain.RoleAdmin
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	matched, err := s.repo.SetRole(ctx, email, role)
	if err != nil {
		return apperr.Upstream(err)
	}
	if !matched {
		return fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
	}
	s.logger.Info("user role changed",
		logx.String("email", email),
		logx.String("role", string(role)),
	)
	return nil
}
