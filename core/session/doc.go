// Package session tracks authenticated sessions: creation, lookup,
// refresh with token rotation, destruction, quota eviction, and
// inactivity timeout.
//
// A Session binds a user to a live token pair and device context. At most
// Config.MaxConcurrentSessions sessions are live per user; creating one
// beyond the quota evicts the least-recently-accessed session (ties broken
// by creation time). Expiry is lazy: an expired session is deleted on
// first access and reported as absent.
//
// Refresh rotates the token pair and increments the session's token
// version. Presenting a refresh token with a stale version is treated as
// token reuse - the session is destroyed rather than refreshed, which
// invalidates a potentially stolen token family.
//
// The Store interface isolates persistence. MemoryStore is the in-process
// default; a shared store (see integration/database/redis) can be swapped
// in without changing any contract.
//
// # Usage
//
//	store := session.NewMemoryStore()
//	store.Start()
//	defer store.Stop()
//
//	manager := session.NewManager(store, issuer, session.Config{})
//
//	sess, err := manager.Create(ctx, session.User{
//		ID:    userID,
//		Email: "a@b.com",
//		Role:  "member",
//	}, session.DeviceContext{IP: "203.0.113.7"}, false)
package session
