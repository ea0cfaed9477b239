package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zoptal/authkit/middleware"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("logs method path and status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		handler := middleware.Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

		r := httptest.NewRequest("POST", "/auth/login", nil)
		r.RemoteAddr = "203.0.113.9:54321"
		handler.ServeHTTP(httptest.NewRecorder(), r)

		out := buf.String()
		assert.Contains(t, out, "method=POST")
		assert.Contains(t, out, "path=/auth/login")
		assert.Contains(t, out, "status_code=201")
		assert.Contains(t, out, "client_ip=203.0.113.9")
		assert.Contains(t, out, "level=INFO")
	})

	t.Run("server errors log at error level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		handler := middleware.Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		assert.Contains(t, buf.String(), "level=ERROR")
	})

	t.Run("slow requests log at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		handler := middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger:               log,
			SlowRequestThreshold: time.Nanosecond,
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Millisecond)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		assert.Contains(t, buf.String(), "level=WARN")
	})

	t.Run("skip suppresses logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		handler := middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger: log,
			Skip:   func(r *http.Request) bool { return r.URL.Path == "/healthz" },
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))

		assert.Empty(t, buf.String())
	})

	t.Run("includes request id when present", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		chain := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: func() string { return "req-123" },
		})(middleware.Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
		chain.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		assert.Contains(t, buf.String(), "request_id=req-123")
	})
}
