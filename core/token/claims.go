package token

import (
	"github.com/google/uuid"

	"github.com/zoptal/authkit/pkg/jwt"
)

// Token type discriminators embedded in the signed payload.
// A refresh token shares claim fields with an access token, so the type
// is re-checked on verify to prevent cross-use.
const (
	typeAccess  = "access"
	typeRefresh = "refresh"
	typePurpose = "purpose"
)

// Purpose scopes a purpose token to a single flow. The purpose is part of
// the signed payload and re-checked on verify, so a password-reset token
// can never be replayed as an email-verification token.
type Purpose string

const (
	// PurposeEmailVerification scopes a token to the email verification flow.
	PurposeEmailVerification Purpose = "email_verification"
	// PurposePasswordReset scopes a token to the password reset flow.
	PurposePasswordReset Purpose = "password_reset"
)

// AccessClaims is the signed payload of an access token. SessionID is
// embedded so the session store can be consulted for revocation checks.
type AccessClaims struct {
	jwt.StandardClaims
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	SessionID uuid.UUID `json:"session_id"`
	TokenType string    `json:"token_type"`
}

// RefreshClaims is the signed payload of a refresh token. TokenVersion
// increments on every rotation; presenting a stale version is treated as
// token reuse by the session layer.
type RefreshClaims struct {
	jwt.StandardClaims
	UserID       uuid.UUID `json:"user_id"`
	SessionID    uuid.UUID `json:"session_id"`
	TokenVersion int       `json:"token_version"`
	TokenType    string    `json:"token_type"`
}

// PurposeClaims is the signed payload of a purpose-scoped token.
type PurposeClaims struct {
	jwt.StandardClaims
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Purpose   Purpose   `json:"purpose"`
	TokenType string    `json:"token_type"`
}
