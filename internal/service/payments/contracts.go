package payments

import (
	"context"

	"parcelhub/internal/domain"
)

type paymentRepository interface {
	Insert(ctx context.Context, p *domain.Payment) (string, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Payment, error)
}

// parcelPayments is the slice of the parcel store the recorder flips.
type parcelPayments interface {
	SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (bool, error)
}

// IntentCreator opens a payment session with the external gateway.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountInCents int64) (string, error)
}

type counter interface {
	Inc()
}
