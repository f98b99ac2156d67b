package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	bookingserrors "courtbook/internal/bookings/errors"
	"courtbook/pkg/client"
	"courtbook/pkg/config"
	"courtbook/pkg/logger"
	"courtbook/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestConflictFilter(t *testing.T) {
	start := time.Date(2030, 6, 3, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("court only", func(t *testing.T) {
		filter := conflictFilter("court-1", "", start, end)

		holders := filter["$or"].([]bson.M)
		require.Len(t, holders, 1)
		assert.Equal(t, "court-1", holders[0]["court_id"])
		assert.Equal(t, bson.M{"$ne": config.Cancelled}, filter["status"])
		assert.Equal(t, bson.M{"$lt": end}, filter["start_time"])
		assert.Equal(t, bson.M{"$gt": start}, filter["end_time"])
	})

	t.Run("court and coach", func(t *testing.T) {
		filter := conflictFilter("court-1", "coach-1", start, end)

		holders := filter["$or"].([]bson.M)
		require.Len(t, holders, 2)
		assert.Equal(t, "coach-1", holders[1]["coach_id"])
	})
}

func TestWithTimeout_KeepsShorterDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ctx, cancelChild := withTimeout(parent, time.Hour)
	defer cancelChild()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
}

// newMongoConfig connects to TEST_MONGO_URI and points the config at a
// throwaway database dropped when the test ends.
func newMongoConfig(t *testing.T) *config.Config {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	cfg := &config.Config{
		MongoURI:          uri,
		MongoDatabaseName: "courtbook_test_" + uuid.NewString()[:8],
		MongoConnTimeout:  10 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		Log:               logger.Discard(),
		Client:            client.NewClient(),
	}
	cfg.SetMongo()

	t.Cleanup(func() {
		_ = cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Drop(context.Background())
		cfg.GracefulShutdown()
	})
	return cfg
}

func TestMongoLeaseRepository(t *testing.T) {
	cfg := newMongoConfig(t)
	repo := NewMongoLeaseRepository(cfg)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	lease := &model.Lease{Key: "court-1_2030-06-03T10:00:00Z", Owner: "owner-a", CreatedAt: now}
	require.NoError(t, repo.Create(ctx, lease))

	err := repo.Create(ctx, &model.Lease{Key: lease.Key, Owner: "owner-b", CreatedAt: now})
	assert.True(t, errors.Is(err, bookingserrors.ErrLeaseHeld), "got %v", err)

	err = repo.Delete(ctx, lease.Key, "owner-b")
	assert.True(t, errors.Is(err, bookingserrors.ErrLeaseNotOwned), "got %v", err)

	removed, err := repo.DeleteExpired(ctx, lease.Key, now)
	require.NoError(t, err)
	assert.False(t, removed, "lease without expiry must not be reclaimed")

	require.NoError(t, repo.Delete(ctx, lease.Key, "owner-a"))
	require.NoError(t, repo.Create(ctx, &model.Lease{Key: lease.Key, Owner: "owner-b", CreatedAt: now}))
}

func TestMongoBookingRepository_FindConflict(t *testing.T) {
	cfg := newMongoConfig(t)
	repo := NewMongoBookingRepository(cfg)
	ctx := context.Background()

	start := time.Date(2030, 6, 3, 10, 0, 0, 0, time.UTC)
	existing := &model.Booking{
		UserName:  "Guest",
		CourtID:   "court-1",
		CoachID:   "coach-1",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    config.Confirmed,
	}
	require.NoError(t, repo.Create(ctx, existing))
	require.NotEmpty(t, existing.ID)

	found, err := repo.FindConflict(ctx, "court-1", "", start.Add(30*time.Minute), start.Add(90*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, existing.ID, found.ID)

	found, err = repo.FindConflict(ctx, "court-2", "coach-1", start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.NotNil(t, found, "coach overlap counts as a conflict")

	found, err = repo.FindConflict(ctx, "court-1", "", start.Add(time.Hour), start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, found, "touching intervals do not overlap")

	byID, err := repo.FindByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.CourtID, byID.CourtID)

	_, err = repo.FindByID(ctx, "not-an-id")
	assert.True(t, errors.Is(err, bookingserrors.ErrInvalidID))
}
