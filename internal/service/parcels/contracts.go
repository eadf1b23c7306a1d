package parcels

import (
	"context"
	"time"

	"parcelhub/internal/domain"
)

// parcelRepository defines storage operations required by the lifecycle manager.
type parcelRepository interface {
	Insert(ctx context.Context, p *domain.Parcel) (string, error)
	List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error)
	ListForRider(ctx context.Context, email string) ([]domain.Parcel, error)
	Get(ctx context.Context, id string) (*domain.Parcel, error)
	SetDeliveryStatus(ctx context.Context, id string, status domain.DeliveryStatus, pickedAt, deliveredAt *time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// trackingRepository defines storage operations for the tracking history.
type trackingRepository interface {
	Insert(ctx context.Context, t *domain.TrackingUpdate) (string, error)
	ListByTrackingID(ctx context.Context, trackingID string) ([]domain.TrackingUpdate, error)
}
