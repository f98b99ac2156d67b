package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courtbook/pkg/config"
	"courtbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

type routes func(*httprouter.Router)

func (f routes) RegisterRoutes(router *httprouter.Router) { f(router) }

func testConfig() *config.Config {
	return &config.Config{
		Port:              "8080",
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		MaxRequestSize:    1024,
		ReadTimeout:       time.Second,
		WriteTimeout:      time.Second,
		IdleTimeout:       time.Second,
		ShutdownTimeout:   time.Second,
		Log:               logger.Discard(),
	}
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	ops := routes(func(r *httprouter.Router) {
		r.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusOK)
		})
	})
	api := routes(func(r *httprouter.Router) {
		r.POST("/api/v1/bookings", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusCreated)
		})
	})

	a := NewApplication()
	a.SetApp(testConfig(), ops, api)
	t.Cleanup(a.rateLimiter.Stop)
	return a
}

func TestApplication_Routes(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		ctype  string
		want   int
	}{
		{"health", http.MethodGet, "/health", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"create booking", http.MethodPost, "/api/v1/bookings", "{}", "application/json", http.StatusCreated},
		{"api requires json", http.MethodPost, "/api/v1/bookings", "{}", "text/plain", http.StatusUnsupportedMediaType},
		{"unknown route", http.MethodGet, "/nope", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.ctype != "" {
				req.Header.Set("Content-Type", tt.ctype)
			}
			rec := httptest.NewRecorder()
			a.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}
