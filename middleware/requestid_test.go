package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoptal/authkit/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid and exposes it", func(t *testing.T) {
		t.Parallel()

		var seen string
		handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.GetRequestID(r.Context())
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		require.NotEmpty(t, seen)
		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("ignores incoming header by default", func(t *testing.T) {
		t.Parallel()

		handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Request-ID", "client-supplied")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.NotEqual(t, "client-supplied", w.Header().Get("X-Request-ID"))
	})

	t.Run("reuses incoming header when configured", func(t *testing.T) {
		t.Parallel()

		handler := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			UseExisting: true,
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Request-ID", "upstream-id")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
	})

	t.Run("custom header and generator", func(t *testing.T) {
		t.Parallel()

		handler := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			HeaderName: "X-Trace-ID",
			Generator:  func() string { return "fixed" },
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, "fixed", w.Header().Get("X-Trace-ID"))
	})

	t.Run("absent without middleware", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		assert.Empty(t, middleware.GetRequestID(r.Context()))
	})
}
