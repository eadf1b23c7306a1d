package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/apperr"
	"parcelhub/internal/auth"
	"parcelhub/internal/domain"
	"parcelhub/internal/logx"
)

// Service records settled payments, serves payment history and opens
// payment intents with the gateway.
type Service struct {
	repo             paymentRepository
	parcels          parcelPayments
	gateway          IntentCreator
	recorded         counter
	partialFailures  counter
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a payments Service. gateway may be nil
// when no gateway key is configured; CreateIntent then fails upstream.
func NewService(
	repo paymentRepository,
	parcels parcelPayments,
	gateway IntentCreator,
	recorded, partials counter,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             repo,
		parcels:          parcels,
		gateway:          gateway,
		recorded:         recorded,
		partialFailures:  partials,
		operationTimeout: timeout,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateRecord(p *domain.Payment) error {
	if p == nil {
		return fmt.Errorf("%w: payment is required", apperr.ErrInvalid)
	}
	if strings.TrimSpace(p.ParcelID) == "" {
		return fmt.Errorf("%w: parcel id is required", apperr.ErrInvalid)
	}
	if strings.TrimSpace(p.Email) == "" {
		return fmt.Errorf("%w: payer email is required", apperr.ErrInvalid)
	}
	if strings.TrimSpace(p.TransactionID) == "" {
		return fmt.Errorf("%w: transaction id is required", apperr.ErrInvalid)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", apperr.ErrInvalid)
	}
	return nil
}

// Record inserts the settled payment and then flips the parcel to paid.
// The insert is the step that must not be lost: a parcel flip failure
// after a successful insert surfaces as a PartialError so the caller can
// see the money was recorded.
func (s *Service) Record(ctx context.Context, p *domain.Payment) (*domain.PaymentRecorded, error) {
	if err := validateRecord(p); err != nil {
		return nil, err
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = s.now().UTC()
	}
	if p.Status == "" {
		p.Status = "paid"
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, apperr.Upstream(err)
	}

	matched, err := s.parcels.SetPaymentStatus(ctx, p.ParcelID, domain.PaymentPaid)
	if err == nil && !matched {
		err = fmt.Errorf("%w: parcel %s", apperr.ErrNotFound, p.ParcelID)
	}
	if err != nil {
		if s.partialFailures != nil {
			s.partialFailures.Inc()
		}
		pe := apperr.NewPartialError("record payment",
			apperr.StepOutcome{Step: "payment", Done: true},
			apperr.StepOutcome{Step: "parcel", Done: false, Err: err.Error()},
			err,
		)
		s.logger.Error("payment recorded but parcel flip failed",
			logx.String("payment_id", id),
			logx.String("parcel_id", p.ParcelID),
			logx.Err(err),
		)
		return &domain.PaymentRecorded{PaymentID: id, ParcelUpdated: false}, pe
	}

	if s.recorded != nil {
		s.recorded.Inc()
	}
	s.logger.Info("payment recorded",
		logx.String("event", "payment_recorded"),
		logx.String("payment_id", id),
		logx.String("parcel_id", p.ParcelID),
		logx.Int64("amount", p.Amount),
	)
	return &domain.PaymentRecorded{PaymentID: id, ParcelUpdated: true}, nil
}

// List returns the payment history for email, newest first. The caller may
// only read their own history, whatever their role.
func (s *Service) List(ctx context.Context, email string, principal auth.Principal) ([]domain.Payment, error) {
	if email != "" && !strings.EqualFold(email, principal.Email) {
		return nil, fmt.Errorf("%w: payment history is private", apperr.ErrForbidden)
	}
	if email == "" {
		email = principal.Email
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return out, nil
}

// CreateIntent opens a gateway session for the given amount in cents and
// returns the client secret the frontend confirms against.
func (s *Service) CreateIntent(ctx context.Context, amountInCents int64) (string, error) {
	if amountInCents <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", apperr.ErrInvalid)
	}
	if s.gateway == nil {
		return "", fmt.Errorf("%w: payment gateway is not configured", apperr.ErrUpstream)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	secret, err := s.gateway.CreateIntent(ctx, amountInCents)
	if err != nil {
		return "", apperr.Upstream(err)
	}
	return secret, nil
}
