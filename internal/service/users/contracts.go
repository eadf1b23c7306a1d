package users

import (
	"context"

	"parcelhub/internal/domain"
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, u *domain.User) (string, error)
	SearchByEmail(ctx context.Context, pattern string, limit int64) ([]domain.User, error)
	SetRole(ctx context.Context, email string, role domain.Role) (bool, error)
}
