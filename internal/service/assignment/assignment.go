package assignment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/apperr"
	"parcelhub/internal/domain"
	"parcelhub/internal/logx"
)

// Service coordinates the two-entity rider assignment: the parcel and the
// rider live in different collections and the store offers no atomicity
// across them, so the two writes run as an explicit two-step sequence.
type Service struct {
	parcels          parcelAssigner
	riders           riderWorkStatus
	assignments      counter
	partialFailures  counter
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures an assignment Service.
func NewService(
	parcels parcelAssigner,
	riders riderWorkStatus,
	assignments, partials counter,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		parcels:          parcels,
		riders:           riders,
		assignments:      assignments,
		partialFailures:  partials,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateAssign(parcelID string, a domain.RiderAssignment) error {
	if strings.TrimSpace(parcelID) == "" {
		return fmt.Errorf("%w: parcel id is required", apperr.ErrInvalid)
	}
	// The rider identity trio is all-or-nothing on the parcel document.
	if strings.TrimSpace(a.RiderID) == "" ||
		strings.TrimSpace(a.RiderName) == "" ||
		strings.TrimSpace(a.RiderEmail) == "" {
		return fmt.Errorf("%w: rider id, name and email are all required", apperr.ErrInvalid)
	}
	return nil
}

// Assign moves the parcel to rider_assigned with the rider identity trio,
// then flips the rider to in_delivery. The rider's availability and the
// parcel's prior state are deliberately not checked: assignment is an
// admin-guarded override. A failure after the parcel write surfaces as a
// PartialError carrying both step outcomes.
func (s *Service) Assign(ctx context.Context, parcelID string, a domain.RiderAssignment) error {
	if err := validateAssign(parcelID, a); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.parcels.AssignRider(ctx, parcelID, a)
	if err != nil {
		return apperr.Upstream(err)
	}
	if !ok {
		return fmt.Errorf("%w: parcel %s", apperr.ErrNotFound, parcelID)
	}

	matched, err := s.riders.SetWorkStatus(ctx, a.RiderID, domain.WorkInDelivery)
	if err == nil && !matched {
		err = fmt.Errorf("%w: rider %s", apperr.ErrNotFound, a.RiderID)
	}
	if err != nil {
		if s.partialFailures != nil {
			s.partialFailures.Inc()
		}
		pe := apperr.NewPartialError("assign",
			apperr.StepOutcome{Step: "parcel", Done: true},
			apperr.StepOutcome{Step: "rider", Done: false, Err: err.Error()},
			err,
		)
		s.logger.Error("parcel assigned but rider update failed",
			logx.String("parcel_id", parcelID),
			logx.String("rider_id", a.RiderID),
			logx.Err(err),
		)
		return pe
	}

	if s.assignments != nil {
		s.assignments.Inc()
	}
	s.logger.Info("rider assigned",
		logx.String("event", "rider_assigned"),
		logx.String("parcel_id", parcelID),
		logx.String("rider_id", a.RiderID),
	)
	return nil
}
