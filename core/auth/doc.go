// Package auth orchestrates account authentication: login with per-key
// throttling and account lockout, registration with password policy
// enforcement, email verification, refresh token rotation, logout, and
// the password reset flow.
//
// The package owns no storage. Account records live behind the Repository
// interface, sessions behind a session.Manager, and signed tokens behind a
// token.Issuer. The Service composes them and translates every expected
// failure into an *Error with a stable machine-readable Code:
//
//	result, err := svc.Login(ctx, auth.LoginParams{Email: email, Password: pw})
//	if err != nil {
//		if e, ok := auth.AsError(err); ok && e.Code == auth.CodeAccountLocked {
//			// surface the lockout to the client
//		}
//	}
//
// Transport layers render errors through NewEnvelope, which masks anything
// that is not an *Error as a generic internal failure so repository or
// token faults never leak detail to clients.
//
// # Credential checking
//
// Login verifies the presented password against a dummy bcrypt hash when
// the account does not exist, and checks lockout only after verification,
// so the timing of a rejection does not reveal whether the email is
// registered. RequestPasswordReset succeeds identically for unknown
// emails for the same reason.
package auth
