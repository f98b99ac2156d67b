package service

import (
	"context"
	"time"

	apperrors "courtbook/pkg/errors"
)

func (s *bookingService) IsFree(ctx context.Context, courtID, coachID string, start, end time.Time) (bool, error) {
	if courtID == "" {
		return false, apperrors.InvalidInput("court_id is required")
	}
	if !start.Before(end) {
		return false, apperrors.InvalidInput("end_time must be after start_time")
	}

	existing, err := s.repo.FindConflict(ctx, courtID, coachID, start.UTC(), end.UTC())
	if err != nil {
		s.cfg.Log.Error("Failed to check availability",
			"court_id", courtID,
			"coach_id", coachID,
			"error", err,
		)
		return false, apperrors.Internal("Failed to check availability", err)
	}

	return existing == nil, nil
}
