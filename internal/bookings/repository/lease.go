package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "courtbook/internal/bookings/errors"
	"courtbook/pkg/config"
	"courtbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	LeaseCollectionName = "Booking_leases"
)

// LeaseRepository stores lease rows. Uniqueness of the key is enforced by the
// store through _id, never by a read-before-write.
type LeaseRepository interface {
	// Create returns ErrLeaseHeld when a lease with the same key exists.
	Create(ctx context.Context, lease *model.Lease) error
	// Delete removes the lease only if owner matches, otherwise ErrLeaseNotOwned.
	Delete(ctx context.Context, key, owner string) error
	// DeleteExpired removes the lease if its expiry is at or before now and
	// reports whether a row was removed.
	DeleteExpired(ctx context.Context, key string, now time.Time) (bool, error)
}

type mongoLeaseRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoLeaseRepository(cfg *config.Config) LeaseRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLeaseRepository{
		cfg:        cfg,
		collection: db.Collection(LeaseCollectionName),
	}
}

func (r *mongoLeaseRepository) Create(ctx context.Context, lease *model.Lease) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, lease); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", bookingserrors.ErrLeaseHeld, lease.Key)
		}
		return fmt.Errorf("failed to create lease: %w", err)
	}
	return nil
}

func (r *mongoLeaseRepository) Delete(ctx context.Context, key, owner string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": key, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to delete lease: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", bookingserrors.ErrLeaseNotOwned, key)
	}
	return nil
}

func (r *mongoLeaseRepository) DeleteExpired(ctx context.Context, key string, now time.Time) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":        key,
		"expires_at": bson.M{"$lte": now},
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete expired lease: %w", err)
	}
	return result.DeletedCount > 0, nil
}
