package riders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/apperr"
	"parcelhub/internal/domain"
	"parcelhub/internal/logx"
)

// Service owns rider records: registration, approval transitions and
// availability queries.
type Service struct {
	repo             riderRepository
	users            userRoles
	partialFailures  counter
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a rider Service.
func NewService(r riderRepository, users userRoles, partials counter, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		users:            users,
		partialFailures:  partials,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateRegister(r *domain.Rider) error {
	if r == nil {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrInvalid)
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("%w: email is required", apperr.ErrInvalid)
	}
	if strings.TrimSpace(r.SenderCenter) == "" {
		return fmt.Errorf("%w: service district is required", apperr.ErrInvalid)
	}
	return nil
}

// Register persists a self-registered rider in pending status, available
// for work once approved.
func (s *Service) Register(ctx context.Context, r *domain.Rider) (string, error) {
	if err := validateRegister(r); err != nil {
		return "", err
	}
	r.Status = domain.RiderPending
	r.WorkStatus = domain.WorkAvailable
	r.CreatedAt = s.now()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	id, err := s.repo.Insert(ctx, r)
	if err != nil {
		return "", apperr.Upstream(err)
	}
	s.logger.Info("rider registered",
		logx.String("rider_id", id),
		logx.String("district", r.SenderCenter),
	)
	return id, nil
}

// ListPending returns riders awaiting approval.
func (s *Service) ListPending(ctx context.Context) ([]domain.Rider, error) {
	return s.listByStatus(ctx, domain.RiderPending)
}

// ListActive returns approved riders.
func (s *Service) ListActive(ctx context.Context) ([]domain.Rider, error) {
	return s.listByStatus(ctx, domain.RiderActive)
}

func (s *Service) listByStatus(ctx context.Context, status domain.RiderStatus) ([]domain.Rider, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return out, nil
}

// ListByDistrict returns riders whose service district exactly matches.
// There is no fallback for an empty district.
func (s *Service) ListByDistrict(ctx context.Context, district string) ([]domain.Rider, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.repo.ListByDistrict(ctx, district)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return out, nil
}

// ListAll returns every rider.
func (s *Service) ListAll(ctx context.Context) ([]domain.Rider, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return out, nil
}

// SetStatus transitions a rider's approval status. Approving a rider
// (status "active") also grants the rider role to the user sharing the
// rider's email; the two writes commit independently, so a failed role
// grant after a committed status change surfaces as a PartialError.
func (s *Service) SetStatus(ctx context.Context, id string, status domain.RiderStatus, email string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: rider status %q", apperr.ErrInvalid, status)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if email == "" {
		rider, err := s.repo.Get(ctx, id)
		if err != nil {
			return apperr.Upstream(err)
		}
		if rider == nil {
			return fmt.Errorf("%w: rider %s", apperr.ErrNotFound, id)
		}
		email = rider.Email
	}

	ok, err := s.repo.SetStatus(ctx, id, status, s.now())
	if err != nil {
		return apperr.Upstream(err)
	}
	if !ok {
		return fmt.Errorf("%w: rider %s", apperr.ErrNotFound, id)
	}

	if status != domain.RiderActive {
		return nil
	}

	matched, err := s.users.SetRole(ctx, email, domain.RoleRider)
	if err == nil && !matched {
		err = fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
	}
	if err != nil {
		if s.partialFailures != nil {
			s.partialFailures.Inc()
		}
		pe := apperr.NewPartialError("rider approval",
			apperr.StepOutcome{Step: "rider_status", Done: true},
			apperr.StepOutcome{Step: "user_role", Done: false, Err: err.Error()},
			err,
		)
		s.logger.Error("rider approved but role grant failed",
			logx.String("rider_id", id),
			logx.String("email", email),
			logx.Err(err),
		)
		return pe
	}

	s.logger.Info("rider status updated",
		logx.String("rider_id", id),
		logx.String("status", string(status)),
	)
	return nil
}

// Delete removes a rider record.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Upstream(err)
	}
	if !ok {
		return fmt.Errorf("%w: rider %s", apperr.ErrNotFound, id)
	}
	return nil
}
