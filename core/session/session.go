package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-tracked record binding a user to a live token pair
// and device context. It is owned exclusively by the Manager; callers
// receive copies.
type Session struct {
	ID     uuid.UUID
	UserID uuid.UUID

	// Email and Role are carried for validation gates; the user repository
	// remains the source of truth.
	Email string
	Role  string

	AccessToken  string
	RefreshToken string
	// TokenVersion increments on every rotation. A refresh token carrying
	// an older version is evidence of reuse.
	TokenVersion int

	IP        string
	UserAgent string

	RememberMe bool

	CreatedAt time.Time
	// ExpiresAt is the absolute session deadline. It never decreases across
	// refreshes of the same session.
	ExpiresAt time.Time
	// AccessExpiresAt is the current access token's deadline.
	AccessExpiresAt time.Time
	LastAccessedAt  time.Time
}

// TokenPair is the client-facing view of a session's credentials.
// It is a value object: refreshing produces a new pair and invalidates
// the previous one.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Pair returns the session's current token pair. ExpiresAt is the access
// token deadline, independent of the session's absolute TTL.
func (s Session) Pair() TokenPair {
	return TokenPair{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.AccessExpiresAt,
	}
}

// IsExpired reports whether the absolute TTL has elapsed at time now.
func (s Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// IsIdle reports whether the session has been inactive longer than the
// given timeout. A zero timeout disables the idle check.
func (s Session) IsIdle(now time.Time, timeout time.Duration) bool {
	if timeout <= 0 {
		return false
	}
	return now.Sub(s.LastAccessedAt) > timeout
}

// User is the minimal identity a session is created from.
type User struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// DeviceContext captures where a session was established from.
type DeviceContext struct {
	IP        string
	UserAgent string
}
