package jwt

import (
	"errors"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// minKeyLength is the minimum signing key length for HMAC-SHA256 (256 bits).
const minKeyLength = 32

// Service generates and parses HMAC-SHA256 signed JWTs.
type Service struct {
	signingKey []byte
}

// New creates a JWT service with the given signing key.
// The key must be at least 32 bytes (256 bits).
func New(signingKey []byte) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	if len(signingKey) < minKeyLength {
		return nil, ErrSigningKeyTooShort
	}
	return &Service{signingKey: signingKey}, nil
}

// NewFromString creates a JWT service from a string signing key.
func NewFromString(signingKey string) (*Service, error) {
	return New([]byte(signingKey))
}

// Generate creates a signed token from the given claims.
// Claims must embed StandardClaims (or otherwise satisfy the claims interface).
func (s *Service) Generate(claims any) (string, error) {
	c, ok := claims.(jwtv5.Claims)
	if !ok {
		return "", ErrInvalidClaims
	}

	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, c).SignedString(s.signingKey)
	if err != nil {
		return "", errors.Join(ErrGenerationFailed, err)
	}
	return token, nil
}

// Parse validates the token signature and temporal claims (exp, nbf) and
// unmarshals the payload into claims, which must be a pointer to a struct
// embedding StandardClaims.
func (s *Service) Parse(tokenString string, claims any) error {
	c, ok := claims.(jwtv5.Claims)
	if !ok {
		return ErrInvalidClaims
	}

	token, err := jwtv5.ParseWithClaims(tokenString, c, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod
		}
		return s.signingKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnexpectedSigningMethod):
			return ErrUnexpectedSigningMethod
		case errors.Is(err, jwtv5.ErrTokenExpired):
			return ErrExpiredToken
		case errors.Is(err, jwtv5.ErrTokenNotValidYet):
			return ErrNotYetValid
		case errors.Is(err, jwtv5.ErrTokenSignatureInvalid):
			return ErrInvalidSignature
		default:
			return ErrInvalidToken
		}
	}

	if !token.Valid {
		return ErrInvalidToken
	}

	return nil
}
