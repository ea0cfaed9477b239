package healthcheck_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoptal/authkit/core/healthcheck"
)

func TestHandler(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.DiscardHandler)

	t.Run("liveness without checks", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		healthcheck.Handler(log).ServeHTTP(rec, httptest.NewRequest("GET", "/health/live", nil))

		require.Equal(t, 200, rec.Code)
		assert.Equal(t, "ALIVE", rec.Body.String())
	})

	t.Run("readiness with passing checks", func(t *testing.T) {
		t.Parallel()

		ok := func(context.Context) error { return nil }
		rec := httptest.NewRecorder()
		healthcheck.Handler(log, ok, ok).ServeHTTP(rec, httptest.NewRequest("GET", "/health/ready", nil))

		require.Equal(t, 200, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("readiness with failing check", func(t *testing.T) {
		t.Parallel()

		ok := func(context.Context) error { return nil }
		fail := func(context.Context) error { return errors.New("connection refused") }
		rec := httptest.NewRecorder()
		healthcheck.Handler(log, ok, fail).ServeHTTP(rec, httptest.NewRequest("GET", "/health/ready", nil))

		require.Equal(t, 503, rec.Code)
		assert.Equal(t, "UNAVAILABLE", rec.Body.String())
	})
}
