// Package sessiontransport moves session token pairs across the HTTP
// boundary for browser clients, where tokens live in HttpOnly cookies
// instead of an Authorization header.
//
// Both cookies are HttpOnly with SameSite=Strict and, outside local
// development, Secure. The access cookie expires with the access token;
// the refresh cookie lives for the session TTL (7 days) or the extended
// remember-me TTL (30 days).
//
//	cookieMgr, _ := cookie.New([]string{secret})
//	transport := sessiontransport.New(cookieMgr, sessiontransport.Config{Secure: true})
//
//	// After login or refresh:
//	_ = transport.SetPair(w, sess.Pair(), params.RememberMe)
//
//	// On refresh:
//	refreshToken, err := transport.RefreshToken(r)
//
//	// On logout or reuse detection:
//	transport.Clear(w)
//
// API clients that hold tokens themselves (the client package) bypass
// this transport entirely.
package sessiontransport
