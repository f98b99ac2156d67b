package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "courtbook/internal/bookings/errors"
	"courtbook/internal/bookings/validator"
	"courtbook/internal/pricing"
	apperrors "courtbook/pkg/errors"
	"courtbook/pkg/model"
	"courtbook/pkg/sanitizer"
)

const defaultUserName = "Guest"

func (s *bookingService) Quote(ctx context.Context, req *model.ReservationRequest) (*model.PriceBreakdown, error) {
	s.normalize(req)
	if err := s.validate(req); err != nil {
		return nil, err
	}

	breakdown, err := s.price(ctx, req)
	if err != nil {
		return nil, err
	}
	return &breakdown, nil
}

// price loads the court, the coach and the rules for req, rejects a coach in
// a blackout period and computes the breakdown.
func (s *bookingService) price(ctx context.Context, req *model.ReservationRequest) (model.PriceBreakdown, error) {
	court, err := s.catalog.FindCourt(ctx, req.CourtID)
	if err != nil {
		return model.PriceBreakdown{}, s.lookupError(err, "Court", req.CourtID)
	}

	var coach *model.Coach
	if req.CoachID != "" {
		coach, err = s.catalog.FindCoach(ctx, req.CoachID)
		if err != nil {
			return model.PriceBreakdown{}, s.lookupError(err, "Coach", req.CoachID)
		}
		if coachUnavailable(coach, req.StartTime, req.EndTime) {
			return model.PriceBreakdown{}, companionUnavailable(coach)
		}
	}

	rules, err := s.catalog.ListPricingRules(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load pricing rules", "error", err)
		return model.PriceBreakdown{}, apperrors.Internal("Failed to load pricing rules", err)
	}

	breakdown := pricing.Calculate(pricing.Input{
		Court:     court,
		Coach:     coach,
		Equipment: req.Equipment,
		At:        req.StartTime,
		Rules:     rules,
		Location:  s.cfg.Location(),
	})
	return breakdown, nil
}

// coachUnavailable reports whether any blackout period of coach overlaps
// [start, end).
func coachUnavailable(coach *model.Coach, start, end time.Time) bool {
	for _, period := range coach.UnavailablePeriods {
		if model.Overlaps(period.Start, period.End, start, end) {
			return true
		}
	}
	return false
}

func (s *bookingService) lookupError(err error, resource, id string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrCourtNotFound), errors.Is(err, bookingserrors.ErrCoachNotFound):
		return apperrors.NotFoundWithID(resource, id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid " + resource + " ID format")
	default:
		s.cfg.Log.Error("Catalog lookup failed", "resource", resource, "id", id, "error", err)
		return apperrors.Internal("Failed to load "+resource, err)
	}
}

func (s *bookingService) normalize(req *model.ReservationRequest) {
	req.UserName = sanitizer.NormalizeName(req.UserName)
	// Stored times have millisecond precision; lease keys must agree with them.
	req.StartTime = req.StartTime.UTC().Truncate(time.Millisecond)
	req.EndTime = req.EndTime.UTC().Truncate(time.Millisecond)
}

func (s *bookingService) validate(req *model.ReservationRequest) error {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return apperrors.Validation("Reservation validation failed", map[string]any{"fields": fieldErrs})
		}
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
