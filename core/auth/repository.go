package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned by repositories when no user matches.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by repositories on duplicate email creation.
	ErrEmailTaken = errors.New("email is already registered")
)

// Repository is the user persistence collaborator. The account lifecycle
// is owned elsewhere; this core reads users and writes login bookkeeping.
// Implementations must be safe for concurrent use.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
