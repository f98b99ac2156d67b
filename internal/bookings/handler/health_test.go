package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"courtbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context, *readpref.ReadPref) error {
	return p.err
}

func TestHealth(t *testing.T) {
	router := httprouter.New()
	NewHealthHandler(stubPinger{err: errors.New("down")}, "lease", logger.Discard()).RegisterRoutes(router)

	rec := serve(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReady(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		router := httprouter.New()
		NewHealthHandler(stubPinger{}, "transaction", logger.Discard()).RegisterRoutes(router)

		rec := serve(router, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ready","database":"ok","strategy":"transaction"}`, rec.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		router := httprouter.New()
		NewHealthHandler(stubPinger{err: errors.New("no reachable servers")}, "lease", logger.Discard()).RegisterRoutes(router)

		rec := serve(router, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
