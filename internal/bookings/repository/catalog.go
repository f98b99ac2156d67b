package repository

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "courtbook/internal/bookings/errors"
	"courtbook/pkg/config"
	"courtbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CourtsCollectionName       = "Courts"
	CoachesCollectionName      = "Coaches"
	PricingRulesCollectionName = "Pricing_rules"
)

// CatalogRepository is the read-only view of courts, coaches and pricing
// rules that reservations depend on.
type CatalogRepository interface {
	FindCourt(ctx context.Context, id string) (*model.Court, error)
	FindCoach(ctx context.Context, id string) (*model.Coach, error)
	// ListPricingRules returns every rule, enabled or not, in stored order.
	ListPricingRules(ctx context.Context) ([]model.PricingRule, error)
}

type mongoCatalogRepository struct {
	cfg     *config.Config
	courts  *mongo.Collection
	coaches *mongo.Collection
	rules   *mongo.Collection
}

func NewMongoCatalogRepository(cfg *config.Config) CatalogRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCatalogRepository{
		cfg:     cfg,
		courts:  db.Collection(CourtsCollectionName),
		coaches: db.Collection(CoachesCollectionName),
		rules:   db.Collection(PricingRulesCollectionName),
	}
}

func (r *mongoCatalogRepository) FindCourt(ctx context.Context, id string) (*model.Court, error) {
	var court model.Court
	if err := r.findByID(ctx, r.courts, id, &court); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrCourtNotFound, id)
		}
		return nil, err
	}
	return &court, nil
}

func (r *mongoCatalogRepository) FindCoach(ctx context.Context, id string) (*model.Coach, error) {
	var coach model.Coach
	if err := r.findByID(ctx, r.coaches, id, &coach); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrCoachNotFound, id)
		}
		return nil, err
	}
	return &coach, nil
}

func (r *mongoCatalogRepository) findByID(ctx context.Context, collection *mongo.Collection, id string, out any) error {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(out)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to find %s: %w", collection.Name(), err)
	}
	return err
}

func (r *mongoCatalogRepository) ListPricingRules(ctx context.Context) ([]model.PricingRule, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.rules.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find pricing rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []model.PricingRule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode pricing rules: %w", err)
	}
	return rules, nil
}
