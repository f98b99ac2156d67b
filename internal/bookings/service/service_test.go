package service

import (
	"context"
	"errors"
	"testing"
	"time"

	mongotx "courtbook/pkg/db/mongo"
	apperrors "courtbook/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByID(t *testing.T) {
	f := newFixture(StrategyLease)
	ctx := context.Background()
	created, err := f.service.Reserve(ctx, request(courtIndoorID, mondayAt(10), time.Hour))
	require.NoError(t, err)

	found, err := f.service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.CourtID, found.CourtID)

	_, err = f.service.GetByID(ctx, "")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))

	_, err = f.service.GetByID(ctx, "bad")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))

	_, err = f.service.GetByID(ctx, missingID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestGetAll_NewestFirst(t *testing.T) {
	f := newFixture(StrategyLease)
	ctx := context.Background()
	for hour := 8; hour < 11; hour++ {
		_, err := f.service.Reserve(ctx, request(courtIndoorID, mondayAt(hour), time.Hour))
		require.NoError(t, err)
	}

	bookings, total, err := f.service.GetAll(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, bookings, 2)
	assert.Equal(t, mondayAt(10), bookings[0].StartTime)
	assert.Equal(t, mondayAt(9), bookings[1].StartTime)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("transaction")
	require.NoError(t, err)
	assert.Equal(t, StrategyTransaction, s)

	s, err = ParseStrategy(" Lease ")
	require.NoError(t, err)
	assert.Equal(t, StrategyLease, s)

	_, err = ParseStrategy("optimistic")
	assert.Error(t, err)
}

func TestResolveStrategy(t *testing.T) {
	probeFor := func(topology mongotx.Topology, err error) (TopologyProbe, *int) {
		calls := 0
		return func(context.Context) (mongotx.Topology, error) {
			calls++
			return topology, err
		}, &calls
	}
	ctx := context.Background()

	t.Run("explicit strategy skips probe", func(t *testing.T) {
		probe, calls := probeFor(mongotx.Topology{SetName: "rs0"}, nil)
		s, err := ResolveStrategy(ctx, "lease", probe)
		require.NoError(t, err)
		assert.Equal(t, StrategyLease, s)
		assert.Equal(t, 0, *calls)
	})

	t.Run("auto on replica set", func(t *testing.T) {
		probe, calls := probeFor(mongotx.Topology{SetName: "rs0"}, nil)
		s, err := ResolveStrategy(ctx, "auto", probe)
		require.NoError(t, err)
		assert.Equal(t, StrategyTransaction, s)
		assert.Equal(t, 1, *calls)
	})

	t.Run("auto on mongos", func(t *testing.T) {
		probe, _ := probeFor(mongotx.Topology{Msg: "isdbgrid"}, nil)
		s, err := ResolveStrategy(ctx, "auto", probe)
		require.NoError(t, err)
		assert.Equal(t, StrategyTransaction, s)
	})

	t.Run("auto on standalone", func(t *testing.T) {
		probe, _ := probeFor(mongotx.Topology{}, nil)
		s, err := ResolveStrategy(ctx, "auto", probe)
		require.NoError(t, err)
		assert.Equal(t, StrategyLease, s)
	})

	t.Run("probe failure is reported", func(t *testing.T) {
		probe, _ := probeFor(mongotx.Topology{}, errors.New("no reachable servers"))
		_, err := ResolveStrategy(ctx, "auto", probe)
		assert.Error(t, err)
	})
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, outcomeConfirmed, outcomeOf(nil))
	assert.Equal(t, outcomeConflict, outcomeOf(slotBusy()))
	assert.Equal(t, outcomeNotFound, outcomeOf(apperrors.NotFoundWithID("Court", "x")))
	assert.Equal(t, outcomeInvalid, outcomeOf(apperrors.Validation("bad", nil)))
	assert.Equal(t, outcomeError, outcomeOf(errors.New("boom")))
}
