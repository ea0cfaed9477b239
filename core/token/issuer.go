package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zoptal/authkit/pkg/jwt"
)

// Issuer creates and verifies signed tokens.
type Issuer struct {
	service  *jwt.Service
	issuer   string
	audience string

	accessTTL       time.Duration
	refreshTTL      time.Duration
	verificationTTL time.Duration
	resetTTL        time.Duration

	now func() time.Time
}

// New creates an Issuer from configuration.
func New(cfg Config, opts ...Option) (*Issuer, error) {
	service, err := jwt.NewFromString(cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("create token issuer: %w", err)
	}

	i := &Issuer{
		service:         service,
		issuer:          cfg.Issuer,
		audience:        cfg.Audience,
		accessTTL:       ParseDuration(cfg.AccessTTL),
		refreshTTL:      ParseDuration(cfg.RefreshTTL),
		verificationTTL: ParseDuration(cfg.VerificationTTL),
		resetTTL:        ParseDuration(cfg.ResetTTL),
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i, nil
}

// AccessTTL returns the configured access token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

// IssueAccessToken creates a short-lived access token bound to the session.
func (i *Issuer) IssueAccessToken(userID uuid.UUID, email, role string, sessionID uuid.UUID) (string, error) {
	now := i.now()
	return i.service.Generate(AccessClaims{
		StandardClaims: i.standardClaims(userID, now, i.accessTTL),
		UserID:         userID,
		Email:          email,
		Role:           role,
		SessionID:      sessionID,
		TokenType:      typeAccess,
	})
}

// IssueRefreshToken creates a long-lived refresh token carrying the
// session's current token version.
func (i *Issuer) IssueRefreshToken(userID, sessionID uuid.UUID, tokenVersion int) (string, error) {
	now := i.now()
	return i.service.Generate(RefreshClaims{
		StandardClaims: i.standardClaims(userID, now, i.refreshTTL),
		UserID:         userID,
		SessionID:      sessionID,
		TokenVersion:   tokenVersion,
		TokenType:      typeRefresh,
	})
}

// IssuePurposeToken creates a purpose-scoped token. A zero ttl selects the
// configured default for the purpose (24h verification, 1h reset).
func (i *Issuer) IssuePurposeToken(userID uuid.UUID, email string, purpose Purpose, ttl time.Duration) (string, error) {
	if purpose != PurposeEmailVerification && purpose != PurposePasswordReset {
		return "", errors.New("unknown token purpose: " + string(purpose))
	}

	if ttl <= 0 {
		switch purpose {
		case PurposeEmailVerification:
			ttl = i.verificationTTL
		case PurposePasswordReset:
			ttl = i.resetTTL
		}
	}

	now := i.now()
	return i.service.Generate(PurposeClaims{
		StandardClaims: i.standardClaims(userID, now, ttl),
		UserID:         userID,
		Email:          email,
		Purpose:        purpose,
		TokenType:      typePurpose,
	})
}

// VerifyAccessToken validates an access token. It returns ok=false on any
// failure: bad signature, expiry, or a token of a different type.
func (i *Issuer) VerifyAccessToken(tokenString string) (AccessClaims, bool) {
	var claims AccessClaims
	if err := i.service.Parse(tokenString, &claims); err != nil {
		return AccessClaims{}, false
	}
	if claims.TokenType != typeAccess || claims.Issuer != i.issuer || claims.Audience != i.audience {
		return AccessClaims{}, false
	}
	return claims, true
}

// VerifyRefreshToken validates a refresh token. It returns ok=false on any
// failure; token version checking is the session layer's responsibility.
func (i *Issuer) VerifyRefreshToken(tokenString string) (RefreshClaims, bool) {
	var claims RefreshClaims
	if err := i.service.Parse(tokenString, &claims); err != nil {
		return RefreshClaims{}, false
	}
	if claims.TokenType != typeRefresh || claims.Issuer != i.issuer || claims.Audience != i.audience {
		return RefreshClaims{}, false
	}
	return claims, true
}

// VerifyPurposeToken validates a purpose token and re-checks the embedded
// purpose against the expected one.
func (i *Issuer) VerifyPurposeToken(tokenString string, expected Purpose) (PurposeClaims, bool) {
	var claims PurposeClaims
	if err := i.service.Parse(tokenString, &claims); err != nil {
		return PurposeClaims{}, false
	}
	if claims.TokenType != typePurpose || claims.Purpose != expected || claims.Issuer != i.issuer || claims.Audience != i.audience {
		return PurposeClaims{}, false
	}
	return claims, true
}

func (i *Issuer) standardClaims(userID uuid.UUID, now time.Time, ttl time.Duration) jwt.StandardClaims {
	return jwt.StandardClaims{
		ID:        uuid.New().String(),
		Subject:   userID.String(),
		Issuer:    i.issuer,
		Audience:  i.audience,
		ExpiresAt: now.Add(ttl).Unix(),
		IssuedAt:  now.Unix(),
	}
}
