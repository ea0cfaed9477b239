package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/zoptal/authkit/core/auth"
	"github.com/zoptal/authkit/core/session"
	"github.com/zoptal/authkit/core/token"
)

// identityContextKey is used as a key for storing the caller identity in
// request context.
type identityContextKey struct{}

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	SessionID uuid.UUID
}

// TokenVerifier validates access tokens. *token.Issuer satisfies it.
type TokenVerifier interface {
	VerifyAccessToken(tokenString string) (token.AccessClaims, bool)
}

// SessionValidator checks that the session behind a token still exists and
// is live. *session.Manager satisfies it.
type SessionValidator interface {
	Validate(ctx context.Context, sessionID uuid.UUID, requiredRoles ...string) session.ValidationResult
}

// AuthConfig configures the authentication middleware.
type AuthConfig struct {
	// Verifier validates the access token signature and claims. Required.
	Verifier TokenVerifier
	// Validator additionally checks the backing session on each request.
	// Optional: without it, a signed unexpired token is trusted as is.
	Validator SessionValidator
	// Skip defines a function to skip authentication for specific requests,
	// e.g. health checks or public endpoints.
	Skip func(r *http.Request) bool
	// TokenExtractor defines how to extract the token from the request
	// (default: Authorization bearer header, then the access_token cookie).
	TokenExtractor func(r *http.Request) string
	// ErrorHandler renders authentication failures (default: JSON envelope
	// with status 401).
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// defaultAccessCookie is the fallback token source for browser clients
// that cannot set an Authorization header.
const defaultAccessCookie = "access_token"

// Auth creates authentication middleware that trusts any valid unexpired
// access token.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return AuthWithConfig(AuthConfig{Verifier: verifier})
}

// AuthWithConfig creates authentication middleware with custom
// configuration. On success the caller Identity is stored in the request
// context for GetIdentity. Panics if no Verifier is configured.
func AuthWithConfig(cfg AuthConfig) func(http.Handler) http.Handler {
	if cfg.Verifier == nil {
		panic("auth middleware: Verifier is required")
	}
	if cfg.TokenExtractor == nil {
		cfg.TokenExtractor = ExtractToken
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = writeError
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := cfg.TokenExtractor(r)
			if tokenString == "" {
				cfg.ErrorHandler(w, r, auth.NewError(auth.CodeUnauthorized, "authentication required"))
				return
			}

			claims, ok := cfg.Verifier.VerifyAccessToken(tokenString)
			if !ok {
				cfg.ErrorHandler(w, r, auth.NewError(auth.CodeUnauthorized, "invalid or expired token"))
				return
			}

			identity := Identity{
				UserID:    claims.UserID,
				Email:     claims.Email,
				Role:      claims.Role,
				SessionID: claims.SessionID,
			}

			if cfg.Validator != nil {
				result := cfg.Validator.Validate(r.Context(), claims.SessionID)
				if !result.Valid {
					cfg.ErrorHandler(w, r, auth.NewError(auth.CodeUnauthorized, "session is no longer active"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated caller from the request context.
// The second return value is false for requests that did not pass the
// authentication middleware.
func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}

// ExtractToken pulls the access token from the Authorization bearer header,
// falling back to the access_token cookie for browser clients.
func ExtractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}

	if cookie, err := r.Cookie(defaultAccessCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
