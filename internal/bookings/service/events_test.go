package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courtbook/pkg/config"
	httputil "courtbook/pkg/http"
	"courtbook/pkg/middleware"
	"courtbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve_SlowPublisherDoesNotDelayResponse(t *testing.T) {
	f := newFixture(StrategyLease)
	f.publisher.release = make(chan struct{})

	reserve := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req model.ReservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = httputil.WriteError(w, err)
			return
		}
		booking, err := f.service.Reserve(r.Context(), &req)
		if err != nil {
			_ = httputil.WriteError(w, err)
			return
		}
		_ = httputil.WriteCreated(w, booking)
	})
	handler := middleware.RequestTimeout(100 * time.Millisecond)(reserve)

	body, err := json.Marshal(request(courtIndoorID, mondayAt(10), time.Hour))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(string(body))))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, f.bookings.len())
	assert.Empty(t, f.publisher.published(), "publish must still be pending")

	close(f.publisher.release)
	f.drain(t)
	assert.Len(t, f.publisher.published(), 1)
}

func TestReserve_PublishIsBoundedByTimeout(t *testing.T) {
	f := newFixture(StrategyLease, func(cfg *config.Config) {
		cfg.EventPublishTimeout = 50 * time.Millisecond
	})
	f.publisher.release = make(chan struct{})
	defer close(f.publisher.release)

	_, err := f.service.Reserve(context.Background(), request(courtIndoorID, mondayAt(10), time.Hour))
	require.NoError(t, err)
	f.drain(t)

	require.Len(t, f.publisher.ctxErrs, 1)
	assert.ErrorIs(t, f.publisher.ctxErrs[0], context.DeadlineExceeded)
}

func TestReserve_PublishOutlivesRequestContext(t *testing.T) {
	f := newFixture(StrategyLease)
	f.publisher.release = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	_, err := f.service.Reserve(ctx, request(courtIndoorID, mondayAt(10), time.Hour))
	require.NoError(t, err)
	cancel()

	close(f.publisher.release)
	f.drain(t)

	require.Len(t, f.publisher.ctxErrs, 1)
	assert.NoError(t, f.publisher.ctxErrs[0])
}

func TestDrain_StopsAtContextDeadline(t *testing.T) {
	f := newFixture(StrategyLease)
	f.publisher.release = make(chan struct{})
	defer close(f.publisher.release)

	_, err := f.service.Reserve(context.Background(), request(courtIndoorID, mondayAt(10), time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.service.Drain(ctx), context.DeadlineExceeded)
}
