package session

import "errors"

var (
	// ErrNotFound is returned when a session cannot be found in the store.
	// Expired, evicted, and destroyed sessions are all reported as absent.
	ErrNotFound = errors.New("session not found")
	// ErrExpired is returned when a session's absolute TTL has elapsed.
	ErrExpired = errors.New("session has expired")
	// ErrInactive is returned when a session was idle longer than the
	// configured inactivity timeout.
	ErrInactive = errors.New("session timed out due to inactivity")
	// ErrTokenReuseDetected is returned when a refresh token with a stale
	// token version is presented. The session is destroyed, not refreshed.
	ErrTokenReuseDetected = errors.New("refresh token reuse detected")
	// ErrInsufficientRole is returned when the session's role is not in the
	// required set.
	ErrInsufficientRole = errors.New("session role does not satisfy requirement")
	// ErrMintTokens is returned when the token minter fails.
	ErrMintTokens = errors.New("failed to mint session tokens")
	// ErrSaveSession is returned when persisting a session fails.
	ErrSaveSession = errors.New("failed to save session")
)
