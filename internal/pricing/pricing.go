// Package pricing computes the price breakdown attached to a booking.
//
// Rules are evaluated strictly in the order they are supplied. Additive and
// multiplicative effects do not commute, so reordering rules changes the
// total; callers must pass rules in their stored order.
package pricing

import (
	"math"
	"time"

	"courtbook/pkg/model"
)

// Per-unit prices for rented equipment.
const (
	RacketUnitPrice = 5.0
	ShoeUnitPrice   = 3.0
)

type Op int

const (
	OpAdd Op = iota
	OpMultiply
)

func (o Op) String() string {
	if o == OpMultiply {
		return "multiply"
	}
	return "add"
}

// Effect is one rule's contribution to the running total.
type Effect struct {
	Rule   string
	Op     Op
	Amount float64
}

func (e Effect) apply(total float64) float64 {
	if e.Op == OpMultiply {
		return total * e.Amount
	}
	return total + e.Amount
}

type Input struct {
	Court     *model.Court
	Coach     *model.Coach
	Equipment model.Equipment
	At        time.Time
	Rules     []model.PricingRule
	// Location decides the local weekday and hour rules are matched against.
	// Nil means UTC.
	Location *time.Location
}

// Calculate returns the breakdown for in. It has no side effects and the same
// input always yields the same output.
func Calculate(in Input) model.PriceBreakdown {
	total := Subtotal(in)
	for _, effect := range Effects(in) {
		total = effect.apply(total)
	}

	return model.PriceBreakdown{
		BasePrice: in.Court.BasePrice,
		Total:     Round2(total),
	}
}

// Subtotal is the price before any rule is applied.
func Subtotal(in Input) float64 {
	total := in.Court.BasePrice
	if in.Coach != nil {
		total += in.Coach.HourlyRate
	}
	total += float64(in.Equipment.Rackets) * RacketUnitPrice
	total += float64(in.Equipment.Shoes) * ShoeUnitPrice
	return total
}

// Effects lists, in evaluation order, the effects of every enabled rule that
// matches in.
func Effects(in Input) []Effect {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	local := in.At.In(loc)

	var effects []Effect
	for _, rule := range in.Rules {
		if !rule.Enabled {
			continue
		}
		if effect, ok := effectFor(rule, in.Court, local); ok {
			effects = append(effects, effect)
		}
	}
	return effects
}

func effectFor(rule model.PricingRule, court *model.Court, local time.Time) (Effect, bool) {
	switch rule.Type {
	case model.RuleWeekend:
		day := local.Weekday()
		if day == time.Saturday || day == time.Sunday {
			return Effect{Rule: rule.Name, Op: OpAdd, Amount: rule.Surcharge}, true
		}
	case model.RulePeak:
		hour := local.Hour()
		if hour >= rule.StartHour && hour < rule.EndHour {
			multiplier := rule.Multiplier
			if multiplier == 0 {
				multiplier = 1
			}
			return Effect{Rule: rule.Name, Op: OpMultiply, Amount: multiplier}, true
		}
	case model.RuleIndoorPremium:
		if court.Type == model.CourtTypeIndoor {
			return Effect{Rule: rule.Name, Op: OpAdd, Amount: rule.Surcharge}, true
		}
	case model.RuleCategoryPremium:
		if rule.Category != "" && court.Type == rule.Category {
			return Effect{Rule: rule.Name, Op: OpAdd, Amount: rule.Surcharge}, true
		}
	}
	return Effect{}, false
}

// Round2 rounds to cents, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
