package model

import "time"

// ReservationRequest is the inbound payload for both reserving a slot and
// quoting its price.
type ReservationRequest struct {
	UserName  string    `json:"user_name,omitempty" validate:"omitempty,max=100"`
	CourtID   string    `json:"court_id" validate:"required,mongodb"`
	CoachID   string    `json:"coach_id,omitempty" validate:"omitempty,mongodb"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Equipment Equipment `json:"equipment"`
}
