package riders

import (
	"context"
	"time"

	"parcelhub/internal/domain"
)

// riderRepository defines storage operations required by the directory.
type riderRepository interface {
	Insert(ctx context.Context, r *domain.Rider) (string, error)
	Get(ctx context.Context, id string) (*domain.Rider, error)
	ListByStatus(ctx context.Context, status domain.RiderStatus) ([]domain.Rider, error)
	ListByDistrict(ctx context.Context, district string) ([]domain.Rider, error)
	ListAll(ctx context.Context) ([]domain.Rider, error)
	SetStatus(ctx context.Context, id string, status domain.RiderStatus, approvedAt time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// userRoles is the slice of the user store the directory needs for the
// approval side effect.
type userRoles interface {
	SetRole(ctx context.Context, email string, role domain.Role) (bool, error)
}

type counter interface {
	Inc()
}
