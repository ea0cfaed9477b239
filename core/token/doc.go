// Package token issues and verifies the signed tokens that drive the
// session lifecycle: short-lived access tokens, long-lived refresh tokens,
// and purpose-scoped tokens for email verification and password reset.
//
// Verification is deliberately fail-closed and uniform: every failure mode
// (bad signature, expiry, wrong purpose, wrong token type) yields the same
// "not ok" outcome. Callers treat it as unauthenticated and fall back to
// re-authentication; they never branch on the failure reason.
//
// # Usage
//
//	issuer, err := token.New(token.Config{
//		Secret:   os.Getenv("JWT_SECRET"),
//		Issuer:   "zoptal.com",
//		Audience: "zoptal.com",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	access, err := issuer.IssueAccessToken(userID, "a@b.com", "member", sessionID)
//	if err != nil {
//		return err
//	}
//
//	claims, ok := issuer.VerifyAccessToken(access)
//	if !ok {
//		// unauthenticated
//	}
package token
