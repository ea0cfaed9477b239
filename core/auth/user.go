package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/zoptal/authkit/core/session"
)

// Status reflects the user account lifecycle.
type Status string

const (
	// StatusActive accounts may authenticate.
	StatusActive Status = "active"
	// StatusSuspended accounts are blocked by an operator.
	StatusSuspended Status = "suspended"
	// StatusPending accounts have not verified their email yet.
	StatusPending Status = "pending"
)

// Roles known to the platform, ordered by increasing privilege.
const (
	RoleMember string = "member"
	RoleAdmin  string = "admin"
)

// User is the account read model this core operates on. Its lifecycle is
// owned by the user repository; this package reads it and writes back
// login bookkeeping (last login, failed attempts, lockout).
type User struct {
	ID            uuid.UUID
	Email         string
	Role          string
	Status        Status
	PasswordHash  string
	EmailVerified bool

	FailedAttempts int
	LockedUntil    *time.Time
	LastLoginAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLocked reports whether a failed-attempt lockout is in effect.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// RecordFailure increments the failed-attempt counter and engages the
// lockout once the threshold is reached.
func (u *User) RecordFailure(now time.Time, threshold int, lockout time.Duration) {
	u.FailedAttempts++
	if u.FailedAttempts >= threshold {
		until := now.Add(lockout)
		u.LockedUntil = &until
	}
	u.UpdatedAt = now
}

// RecordSuccess clears failure bookkeeping and stamps the login time.
func (u *User) RecordSuccess(now time.Time) {
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// sessionUser converts to the minimal identity the session layer needs.
func (u *User) sessionUser() session.User {
	return session.User{ID: u.ID, Email: u.Email, Role: u.Role}
}

// PublicUser is the client-safe projection of a User.
type PublicUser struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	Status        Status     `json:"status"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

// Public returns the client-safe projection.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Email:         u.Email,
		Role:          u.Role,
		Status:        u.Status,
		EmailVerified: u.EmailVerified,
		LastLoginAt:   u.LastLoginAt,
	}
}

// PermissionsForRole derives the permission set attached to request
// identity by the auth gate.
func PermissionsForRole(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{"profile:read", "profile:write", "projects:read", "projects:write", "users:read", "users:write"}
	case RoleMember:
		return []string{"profile:read", "profile:write", "projects:read", "projects:write"}
	default:
		return nil
	}
}
