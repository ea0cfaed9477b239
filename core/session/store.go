package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the persistence interface for sessions.
// Implementations must handle concurrent access safely and keep the
// per-user index consistent with the session arena.
type Store interface {
	// GetByID returns the session or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)

	// Save inserts or updates a session and indexes it under its user.
	Save(ctx context.Context, sess Session) error

	// Delete removes a session. Deleting an absent session returns ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByUser returns all sessions indexed under the user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error)

	// DeleteByUser removes all of a user's sessions except the given IDs,
	// returning the number deleted.
	DeleteByUser(ctx context.Context, userID uuid.UUID, except ...uuid.UUID) (int, error)

	// DeleteExpired removes sessions whose absolute TTL elapsed before now,
	// returning the number deleted.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenMinter mints the signed tokens a session carries.
// core/token.Issuer satisfies it.
type TokenMinter interface {
	IssueAccessToken(userID uuid.UUID, email, role string, sessionID uuid.UUID) (string, error)
	IssueRefreshToken(userID, sessionID uuid.UUID, tokenVersion int) (string, error)
	AccessTTL() time.Duration
}
