package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/zoptal/authkit/core/logger"
	"github.com/zoptal/authkit/pkg/clientip"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Logger receives the request records (default: slog.Default).
	Logger *slog.Logger
	// Skip defines a function to skip logging for specific requests,
	// e.g. health checks.
	Skip func(r *http.Request) bool
	// SlowRequestThreshold promotes requests slower than this to warn
	// level. Zero disables the promotion.
	SlowRequestThreshold time.Duration
}

// Logging creates request logging middleware with default configuration.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig creates request logging middleware. Each request is
// logged once on completion with method, path, status, duration, client
// IP, and the request ID when the RequestID middleware ran earlier in the
// chain. Server errors log at error level.
func LoggingWithConfig(cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)

			level := slog.LevelInfo
			switch {
			case rec.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case cfg.SlowRequestThreshold > 0 && elapsed > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
			}

			cfg.Logger.LogAttrs(r.Context(), level, "http request",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(rec.status),
				logger.Duration(elapsed),
				logger.ClientIP(clientip.GetIP(r)),
				logger.RequestID(GetRequestID(r.Context())),
			)
		})
	}
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
