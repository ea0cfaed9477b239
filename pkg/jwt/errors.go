package jwt

import "errors"

var (
	// ErrMissingSigningKey is returned when creating a service without a signing key.
	ErrMissingSigningKey = errors.New("signing key is required")
	// ErrSigningKeyTooShort is returned when the signing key is shorter than 32 bytes.
	ErrSigningKeyTooShort = errors.New("signing key must be at least 32 bytes for HMAC-SHA256")
	// ErrInvalidToken is returned when a token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token's exp claim is in the past.
	ErrExpiredToken = errors.New("token has expired")
	// ErrNotYetValid is returned when a token's nbf claim is in the future.
	ErrNotYetValid = errors.New("token is not valid yet")
	// ErrInvalidSignature is returned when signature verification fails.
	ErrInvalidSignature = errors.New("token signature verification failed")
	// ErrUnexpectedSigningMethod is returned when a token uses a signing method
	// other than HMAC-SHA256.
	ErrUnexpectedSigningMethod = errors.New("unexpected token signing method")
	// ErrInvalidClaims is returned when the claims value does not implement
	// the required claims interface.
	ErrInvalidClaims = errors.New("claims must embed jwt.StandardClaims")
	// ErrGenerationFailed is returned when token generation fails.
	ErrGenerationFailed = errors.New("failed to generate token")
)
