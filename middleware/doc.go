// Package middleware provides standard net/http middleware for request
// authentication and the ambient request concerns around it.
//
// Auth validates the access token carried in the Authorization bearer
// header (or the access_token cookie for browser clients) and attaches the
// caller Identity to the request context:
//
//	authn := middleware.AuthWithConfig(middleware.AuthConfig{
//		Verifier:  issuer,
//		Validator: sessions, // optional per-request session check
//		Skip: func(r *http.Request) bool {
//			return r.URL.Path == "/healthz"
//		},
//	})
//
//	mux.Handle("/api/", authn(apiHandler))
//
// RequireRole and RequirePermission layer authorization on top of Auth:
// a missing identity yields 401, an authenticated caller without the
// required role or permission yields 403.
//
//	admin := middleware.RequireRole(auth.RoleAdmin)
//	mux.Handle("/api/admin/", authn(admin(adminHandler)))
//
// Handlers read the caller identity from the context:
//
//	identity, ok := middleware.GetIdentity(r.Context())
//
// RequestID and Logging cover request correlation and structured access
// logging; failures are rendered as the same JSON envelope the rest of
// the service speaks.
package middleware
