package parcels

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/apperr"
	"parcelhub/internal/domain"
	"parcelhub/internal/logx"
)

// Service owns the parcel delivery-status state machine and payment flag.
type Service struct {
	repo             parcelRepository
	tracking         trackingRepository
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a parcel Service.
func NewService(r parcelRepository, tr trackingRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		tracking:         tr,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Create persists a new parcel with delivery_status "created" and
// paymentStatus "unpaid", returning the generated id. Beyond the creator
// email, input is accepted as-is.
func (s *Service) Create(ctx context.Context, p *domain.Parcel) (string, error) {
	if p == nil || strings.TrimSpace(p.CreatedBy) == "" {
		return "", fmt.Errorf("%w: creator email is required", apperr.ErrInvalid)
	}
	p.DeliveryStatus = domain.DeliveryCreated
	p.PaymentStatus = domain.PaymentUnpaid
	p.CreatedAt = s.now()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return "", apperr.Upstream(err)
	}
	s.logger.Info("parcel created",
		logx.String("parcel_id", id),
		logx.String("created_by", p.CreatedBy),
	)
	return id, nil
}

// List returns parcels matching the filter, newest first. The empty filter
// returns the full set; callers must bound this in production.
func (s *Service) List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error) {
	if f.PaymentStatus != "" && !f.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%w: payment status %q", apperr.ErrInvalid, f.PaymentStatus)
	}
	if f.DeliveryStatus != "" && !f.DeliveryStatus.Valid() {
		return nil, fmt.Errorf("%w: delivery status %q", apperr.ErrInvalid, f.DeliveryStatus)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return out, nil
}

// ListForRider returns the rider's active worklist: parcels assigned to the
// email in rider_assigned or in_transit.
func (s *Service) ListForRider(ctx context.Context, email string) ([]domain.Parcel, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: rider email is required", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.repo.ListForRider(ctx, email)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return out, nil
}

// GetByID retrieves a parcel by its id.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Parcel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: parcel %s", apperr.ErrNotFound, id)
	}
	return p, nil
}

// SetStatus updates a parcel's delivery status. The new status must be one
// of the four known values; transition order is not enforced. Moving to
// in_transit stamps picked_at, moving to delivered stamps delivered_at.
func (s *Service) SetStatus(ctx context.Context, id string, status domain.DeliveryStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: delivery status %q", apperr.ErrInvalid, status)
	}

	var pickedAt, deliveredAt *time.Time
	switch status {
	case domain.DeliveryInTransit:
		ts := s.now()
		pickedAt = &ts
	case domain.DeliveryDelivered:
		ts := s.now()
		deliveredAt = &ts
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.SetDeliveryStatus(ctx, id, status, pickedAt, deliveredAt)
	if err != nil {
		return apperr.Upstream(err)
	}
	if !ok {
		return fmt.Errorf("%w: parcel %s", apperr.ErrNotFound, id)
	}
	s.logger.Info("parcel status updated",
		logx.String("parcel_id", id),
		logx.String("delivery_status", string(status)),
	)
	return nil
}

// Delete removes a parcel unconditionally; payments and rider state are not
// cascaded.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Upstream(err)
	}
	if !ok {
		return fmt.Errorf("%w: parcel %s", apperr.ErrNotFound, id)
	}
	return nil
}

// AddTracking appends an update to a parcel's tracking history.
func (s *Service) AddTracking(ctx context.Context, t *domain.TrackingUpdate) (string, error) {
	if t == nil || strings.TrimSpace(t.TrackingID) == "" || strings.TrimSpace(t.Status) == "" {
		return "", fmt.Errorf("%w: trackingId and status are required", apperr.ErrInvalid)
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = s.now()
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	id, err := s.tracking.Insert(ctx, t)
	if err != nil {
		return "", apperr.Upstream(err)
	}
	return id, nil
}

// Tracking returns a parcel's tracking history, newest first.
func (s *Service) Tracking(ctx context.Context, trackingID string) ([]domain.TrackingUpdate, error) {
	if strings.TrimSpace(trackingID) == "" {
		return nil, fmt.Errorf("%w: trackingId is required", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.tracking.ListByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return out, nil
}
