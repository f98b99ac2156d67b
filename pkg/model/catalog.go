package model

import "time"

const (
	CourtTypeIndoor  = "indoor"
	CourtTypeOutdoor = "outdoor"
)

type Court struct {
	ID        string  `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string  `json:"name" bson:"name"`
	Type      string  `json:"type" bson:"type"`
	BasePrice float64 `json:"base_price" bson:"base_price"`
}

type Period struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

type Coach struct {
	ID                 string   `json:"id,omitempty" bson:"_id,omitempty"`
	Name               string   `json:"name" bson:"name"`
	HourlyRate         float64  `json:"hourly_rate" bson:"hourly_rate"`
	UnavailablePeriods []Period `json:"unavailable_periods" bson:"unavailable_periods"`
}

const (
	RuleWeekend         = "weekend"
	RulePeak            = "peak"
	RuleIndoorPremium   = "indoorPremium"
	RuleCategoryPremium = "categoryPremium"
)

type PricingRule struct {
	ID         string  `json:"id,omitempty" bson:"_id,omitempty"`
	Name       string  `json:"name" bson:"name"`
	Type       string  `json:"type" bson:"type"`
	StartHour  int     `json:"start_hour,omitempty" bson:"start_hour,omitempty"`
	EndHour    int     `json:"end_hour,omitempty" bson:"end_hour,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty" bson:"multiplier,omitempty"`
	Surcharge  float64 `json:"surcharge,omitempty" bson:"surcharge,omitempty"`
	Category   string  `json:"category,omitempty" bson:"category,omitempty"`
	Enabled    bool    `json:"enabled" bson:"enabled"`
}
