// Package healthcheck provides HTTP handlers for liveness and readiness
// probes.
package healthcheck

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/zoptal/authkit/core/logger"
)

// Handler creates a health check handler serving as either a liveness or
// a readiness probe depending on the provided dependency checks.
//
// With no checks it acts as a liveness probe and answers "ALIVE". With
// checks it runs each in sequence and answers "READY", or 503 when any
// check fails.
//
// Example:
//
//	mux.Handle("GET /health/live", healthcheck.Handler(log))
//	mux.Handle("GET /health/ready", healthcheck.Handler(log,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	))
func Handler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			writeStatus(w, http.StatusOK, "ALIVE")
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				writeStatus(w, http.StatusServiceUnavailable, "UNAVAILABLE")
				return
			}
		}
		writeStatus(w, http.StatusOK, "READY")
	}
}

func writeStatus(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}
