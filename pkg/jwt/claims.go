package jwt

import (
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// StandardClaims contains the RFC 7519 registered claims.
// Embed it in a custom struct to add application-specific claims:
//
//	type AccessClaims struct {
//		jwt.StandardClaims
//		Role string `json:"role"`
//	}
type StandardClaims struct {
	// ID is the JWT ID (jti), useful for token revocation lists.
	ID string `json:"jti,omitempty"`
	// Subject identifies the principal the token refers to (sub).
	Subject string `json:"sub,omitempty"`
	// Issuer identifies who issued the token (iss).
	Issuer string `json:"iss,omitempty"`
	// Audience identifies the intended recipient (aud).
	Audience string `json:"aud,omitempty"`
	// ExpiresAt is the Unix timestamp after which the token is invalid (exp).
	ExpiresAt int64 `json:"exp,omitempty"`
	// NotBefore is the Unix timestamp before which the token is invalid (nbf).
	NotBefore int64 `json:"nbf,omitempty"`
	// IssuedAt is the Unix timestamp at which the token was created (iat).
	IssuedAt int64 `json:"iat,omitempty"`
}

// The methods below satisfy the underlying library's claims interface so that
// any struct embedding StandardClaims can be generated and parsed directly.

func (c StandardClaims) GetExpirationTime() (*jwtv5.NumericDate, error) {
	return numericDate(c.ExpiresAt), nil
}

func (c StandardClaims) GetIssuedAt() (*jwtv5.NumericDate, error) {
	return numericDate(c.IssuedAt), nil
}

func (c StandardClaims) GetNotBefore() (*jwtv5.NumericDate, error) {
	return numericDate(c.NotBefore), nil
}

func (c StandardClaims) GetIssuer() (string, error) {
	return c.Issuer, nil
}

func (c StandardClaims) GetSubject() (string, error) {
	return c.Subject, nil
}

func (c StandardClaims) GetAudience() (jwtv5.ClaimStrings, error) {
	if c.Audience == "" {
		return nil, nil
	}
	return jwtv5.ClaimStrings{c.Audience}, nil
}

func numericDate(ts int64) *jwtv5.NumericDate {
	if ts == 0 {
		return nil
	}
	return jwtv5.NewNumericDate(time.Unix(ts, 0))
}
