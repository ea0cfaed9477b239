package middleware

import (
	"net/http"
	"slices"

	"github.com/zoptal/authkit/core/auth"
)

// RequireRole creates middleware that allows only callers whose role is in
// the given set. Requests without an identity get 401; authenticated
// callers with the wrong role get 403. Must run after Auth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				writeError(w, r, auth.NewError(auth.CodeUnauthorized, "authentication required"))
				return
			}
			if !slices.Contains(roles, identity.Role) {
				writeError(w, r, auth.NewError(auth.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission creates middleware that allows only callers whose role
// grants the given permission. Must run after Auth.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				writeError(w, r, auth.NewError(auth.CodeUnauthorized, "authentication required"))
				return
			}
			if !slices.Contains(auth.PermissionsForRole(identity.Role), permission) {
				writeError(w, r, auth.NewError(auth.CodeForbidden, "insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
