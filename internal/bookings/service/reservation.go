package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "courtbook/internal/bookings/errors"
	"courtbook/internal/bookings/ledger"
	"courtbook/pkg/config"
	apperrors "courtbook/pkg/errors"
	"courtbook/pkg/model"
)

// Values of the "reason" detail on conflict errors.
const (
	ReasonResourceConflict     = "resource_conflict"
	ReasonCompanionUnavailable = "companion_unavailable"
)

func (s *bookingService) Reserve(ctx context.Context, req *model.ReservationRequest) (*model.Booking, error) {
	started := time.Now()
	booking, err := s.reserve(ctx, req)
	outcome := outcomeOf(err)
	s.metrics.observe(s.strategy, outcome, time.Since(started))
	if err != nil {
		if outcome == outcomeConflict {
			s.cfg.Log.Info("Reservation rejected",
				"court_id", req.CourtID,
				"coach_id", req.CoachID,
				"start_time", req.StartTime,
				"reason", apperrors.Reason(err),
			)
		}
		return nil, err
	}

	s.cfg.Log.Info("Booking confirmed",
		"id", booking.ID,
		"court_id", booking.CourtID,
		"coach_id", booking.CoachID,
		"start_time", booking.StartTime,
		"total", booking.PricingBreakdown.Total,
		"strategy", s.strategy.String(),
	)

	s.events.bookingConfirmed(ctx, booking)
	return booking, nil
}

func (s *bookingService) reserve(ctx context.Context, req *model.ReservationRequest) (*model.Booking, error) {
	s.normalize(req)
	if err := s.validate(req); err != nil {
		return nil, err
	}

	breakdown, err := s.price(ctx, req)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		UserName:         req.UserName,
		CourtID:          req.CourtID,
		CoachID:          req.CoachID,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Equipment:        req.Equipment,
		PricingBreakdown: breakdown,
		Status:           config.Confirmed,
	}
	if booking.UserName == "" {
		booking.UserName = defaultUserName
	}

	switch s.strategy {
	case StrategyTransaction:
		err = s.reserveInTransaction(ctx, booking)
	case StrategyLease:
		err = s.reserveWithLease(ctx, booking)
	default:
		err = apperrors.Internal("Reservation strategy not configured", fmt.Errorf("strategy %d", s.strategy))
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// reserveInTransaction claims the court and coach, re-checks for overlaps and
// inserts the booking in one transaction. Any failure that is not a conflict
// is reported as internal; there is no fallback to the lease strategy.
func (s *bookingService) reserveInTransaction(ctx context.Context, booking *model.Booking) error {
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		// The callback reruns on transient errors; drop any id a prior attempt set.
		booking.ID = ""
		if err := s.repo.ClaimHolders(txCtx, booking.CourtID, booking.CoachID); err != nil {
			return err
		}

		existing, err := s.repo.FindConflict(txCtx, booking.CourtID, booking.CoachID, booking.StartTime, booking.EndTime)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		if existing != nil {
			return resourceConflict(existing)
		}

		if err := s.repo.Create(txCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err == nil {
		return nil
	}

	if apperrors.IsAppError(err) {
		if !apperrors.HasCode(err, apperrors.CodeConflict) {
			s.cfg.Log.Error("Reservation transaction failed", "court_id", booking.CourtID, "error", err)
		}
		return err
	}
	s.cfg.Log.Error("Reservation transaction failed", "court_id", booking.CourtID, "error", err)
	return apperrors.Internal("Reservation transaction failed", err)
}

// reserveWithLease holds the ledger lease for (court, start) while it
// re-checks and inserts. Requests that overlap but start at a different
// instant use another key and are guarded only by the re-check. The same
// holds for one coach booked on two courts at the same start.
func (s *bookingService) reserveWithLease(ctx context.Context, booking *model.Booking) error {
	key := ledger.Key(booking.CourtID, booking.StartTime)

	lease, err := s.leases.Acquire(ctx, key)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrLeaseHeld) {
			return slotBusy()
		}
		s.cfg.Log.Error("Failed to acquire reservation lease", "key", key, "error", err)
		return apperrors.Internal("Failed to acquire reservation lease", err)
	}
	defer s.release(ctx, lease)

	existing, err := s.repo.FindConflict(ctx, booking.CourtID, booking.CoachID, booking.StartTime, booking.EndTime)
	if err != nil {
		s.cfg.Log.Error("Failed to check existing bookings", "key", key, "error", err)
		return apperrors.Internal("Failed to check existing bookings", err)
	}
	if existing != nil {
		return resourceConflict(existing)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "key", key, "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}
	return nil
}

// release runs even when the request context is gone so the lease is not
// orphaned by a client disconnect.
func (s *bookingService) release(ctx context.Context, lease *ledger.Handle) {
	if err := s.leases.Release(context.WithoutCancel(ctx), lease); err != nil {
		s.cfg.Log.Warn("Failed to release reservation lease", "key", lease.Key, "error", err)
	}
}

func resourceConflict(existing *model.Booking) *apperrors.AppError {
	return apperrors.ConflictWithReason(fmt.Sprintf(
		"Time slot overlaps an existing booking (%s - %s)",
		existing.StartTime.Format(time.RFC3339),
		existing.EndTime.Format(time.RFC3339),
	), ReasonResourceConflict)
}

func slotBusy() *apperrors.AppError {
	return apperrors.ConflictWithReason("This time slot is currently being booked by another request", ReasonResourceConflict)
}

func companionUnavailable(coach *model.Coach) *apperrors.AppError {
	return apperrors.ConflictWithReason(
		fmt.Sprintf("Coach %s is unavailable for the requested time", coach.Name),
		ReasonCompanionUnavailable,
	)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeConfirmed
	case apperrors.HasCode(err, apperrors.CodeConflict):
		return outcomeConflict
	case apperrors.HasCode(err, apperrors.CodeNotFound):
		return outcomeNotFound
	case apperrors.HasCode(err, apperrors.CodeValidation), apperrors.HasCode(err, apperrors.CodeInvalidInput):
		return outcomeInvalid
	default:
		return outcomeError
	}
}
