package handlers

import (
	"context"

	"parcelhub/internal/auth"
	"parcelhub/internal/domain"
	"parcelhub/internal/service/assignment"
	"parcelhub/internal/service/parcels"
	"parcelhub/internal/service/payments"
	"parcelhub/internal/service/riders"
	"parcelhub/internal/service/users"
)

type parcelUsecase interface {
	Create(ctx context.Context, p *domain.Parcel) (string, error)
	List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error)
	ListForRider(ctx context.Context, email string) ([]domain.Parcel, error)
	GetByID(ctx context.Context, id string) (*domain.Parcel, error)
	SetStatus(ctx context.Context, id string, status domain.DeliveryStatus) error
	Delete(ctx context.Context, id string) error
	AddTracking(ctx context.Context, t *domain.TrackingUpdate) (string, error)
	Tracking(ctx context.Context, trackingID string) ([]domain.TrackingUpdate, error)
}

// NewParcelUsecase wires a parcel Service into a parcelUsecase.
func NewParcelUsecase(svc *parcels.Service) parcelUsecase {
	return svc
}

type riderUsecase interface {
	Register(ctx context.Context, r *domain.Rider) (string, error)
	ListPending(ctx context.Context) ([]domain.Rider, error)
	ListActive(ctx context.Context) ([]domain.Rider, error)
	ListByDistrict(ctx context.Context, district string) ([]domain.Rider, error)
	ListAll(ctx context.Context) ([]domain.Rider, error)
	SetStatus(ctx context.Context, id string, status domain.RiderStatus, email string) error
	Delete(ctx context.Context, id string) error
}

// NewRiderUsecase wires a rider Service into a riderUsecase.
func NewRiderUsecase(svc *riders.Service) riderUsecase {
	return svc
}

type assignmentUsecase interface {
	Assign(ctx context.Context, parcelID string, a domain.RiderAssignment) error
}

// NewAssignmentUsecase wires an assignment Service into an assignmentUsecase.
func NewAssignmentUsecase(svc *assignment.Service) assignmentUsecase {
	return svc
}

type paymentUsecase interface {
	Record(ctx context.Context, p *domain.Payment) (*domain.PaymentRecorded, error)
	List(ctx context.Context, email string, principal auth.Principal) ([]domain.Payment, error)
	CreateIntent(ctx context.Context, amountInCents int64) (string, error)
}

// NewPaymentUsecase wires a payments Service into a paymentUsecase.
func NewPaymentUsecase(svc *payments.Service) paymentUsecase {
	return svc
}

type userUsecase interface {
	Ensure(ctx context.Context, u *domain.User) (bool, error)
	Role(ctx context.Context, email string) (domain.Role, error)
	Search(ctx context.Context, pattern string) ([]domain.User, error)
	SetAdmin(ctx context.Context, email string, admin bool) error
}

// NewUserUsecase wires a users Service into a userUsecase.
func NewUserUsecase(svc *users.Service) userUsecase {
	return svc
}
