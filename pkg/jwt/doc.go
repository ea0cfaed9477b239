// Package jwt provides RFC 7519 compliant JSON Web Token generation and
// parsing using HMAC-SHA256, backed by github.com/golang-jwt/jwt/v5.
//
// The package supports standard claims validation (exp, nbf) and custom
// claims via struct embedding. All signature checks are constant-time.
//
// # Usage
//
// Create a service with a signing key of at least 32 bytes:
//
//	service, err := jwt.NewFromString("your-256-bit-secret-key-material")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Generate a token with custom claims:
//
//	type AccessClaims struct {
//		jwt.StandardClaims
//		Role string `json:"role"`
//	}
//
//	claims := AccessClaims{
//		StandardClaims: jwt.StandardClaims{
//			Subject:   "user123",
//			ExpiresAt: time.Now().Add(15 * time.Minute).Unix(),
//			IssuedAt:  time.Now().Unix(),
//		},
//		Role: "admin",
//	}
//	token, err := service.Generate(claims)
//
// Parse and validate:
//
//	var parsed AccessClaims
//	if err := service.Parse(token, &parsed); err != nil {
//		switch {
//		case errors.Is(err, jwt.ErrExpiredToken):
//			// prompt re-authentication or refresh
//		case errors.Is(err, jwt.ErrInvalidSignature):
//			// token was tampered with
//		}
//		return
//	}
//
// Keep signing keys out of source control and rotate them regularly.
// Always set ExpiresAt on security tokens; short TTLs (15-60 minutes)
// combined with a refresh mechanism limit the blast radius of a leak.
package jwt
