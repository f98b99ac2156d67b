// Package seed loads the demo catalog: four courts, three coaches and the
// default pricing rules.
package seed

import (
	"context"
	"fmt"

	"courtbook/internal/bookings/repository"
	"courtbook/pkg/logger"
	"courtbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var Courts = []model.Court{
	{Name: "Court 1", Type: model.CourtTypeIndoor, BasePrice: 12},
	{Name: "Court 2", Type: model.CourtTypeIndoor, BasePrice: 12},
	{Name: "Court 3", Type: model.CourtTypeOutdoor, BasePrice: 8},
	{Name: "Court 4", Type: model.CourtTypeOutdoor, BasePrice: 8},
}

var Coaches = []model.Coach{
	{Name: "Alice", HourlyRate: 20},
	{Name: "Bob", HourlyRate: 18},
	{Name: "Charlie", HourlyRate: 22},
}

// PricingRules are inserted in this order, which is the order they apply in.
var PricingRules = []model.PricingRule{
	{Name: "Peak Hours", Type: model.RulePeak, StartHour: 18, EndHour: 21, Multiplier: 1.5, Enabled: true},
	{Name: "Weekend Surcharge", Type: model.RuleWeekend, Surcharge: 3, Enabled: true},
	{Name: "Indoor Premium", Type: model.RuleIndoorPremium, Surcharge: 2, Enabled: true},
}

// Result holds the generated ids, in catalog order.
type Result struct {
	CourtIDs []string
	CoachIDs []string
	RuleIDs  []string
}

// Run replaces the catalog collections with the demo catalog. Bookings and
// leases are left alone.
func Run(ctx context.Context, db *mongo.Database, log *logger.Logger) (*Result, error) {
	result := &Result{}
	var err error

	if result.CourtIDs, err = replace(ctx, db.Collection(repository.CourtsCollectionName), toDocs(Courts)); err != nil {
		return nil, err
	}
	if result.CoachIDs, err = replace(ctx, db.Collection(repository.CoachesCollectionName), toDocs(Coaches)); err != nil {
		return nil, err
	}
	if result.RuleIDs, err = replace(ctx, db.Collection(repository.PricingRulesCollectionName), toDocs(PricingRules)); err != nil {
		return nil, err
	}

	log.Info("Seed complete",
		"courts", len(result.CourtIDs),
		"coaches", len(result.CoachIDs),
		"pricing_rules", len(result.RuleIDs),
	)
	return result, nil
}

func toDocs[T any](items []T) []any {
	docs := make([]any, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	return docs
}

// replace clears coll and inserts docs with ascending ObjectIDs, so sorting by
// _id gives back insertion order.
func replace(ctx context.Context, coll *mongo.Collection, docs []any) ([]string, error) {
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("failed to clear %s: %w", coll.Name(), err)
	}

	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to seed %s: %w", coll.Name(), err)
	}

	ids := make([]string, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok {
			ids = append(ids, oid.Hex())
		}
	}
	return ids, nil
}
