package model

import (
	"time"
)

type Equipment struct {
	Rackets int `json:"rackets" bson:"rackets" validate:"min=0"`
	Shoes   int `json:"shoes" bson:"shoes" validate:"min=0"`
}

// PriceBreakdown is computed once when the booking is created and never
// recomputed afterwards.
type PriceBreakdown struct {
	BasePrice float64 `json:"base_price" bson:"base_price"`
	Total     float64 `json:"total" bson:"total"`
}

type Booking struct {
	ID               string         `json:"id,omitempty" bson:"_id,omitempty"`
	UserName         string         `json:"user_name" bson:"user_name"`
	CourtID          string         `json:"court_id" bson:"court_id"`
	CoachID          string         `json:"coach_id,omitempty" bson:"coach_id,omitempty"`
	StartTime        time.Time      `json:"start_time" bson:"start_time"`
	EndTime          time.Time      `json:"end_time" bson:"end_time"`
	Equipment        Equipment      `json:"equipment" bson:"equipment"`
	PricingBreakdown PriceBreakdown `json:"pricing_breakdown" bson:"pricing_breakdown"`
	Status           string         `json:"status" bson:"status"`
	CreatedAt        time.Time      `json:"created_at" bson:"created_at"`
}

// Overlaps reports whether the booking's interval intersects [start, end)
// using half-open semantics.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}
