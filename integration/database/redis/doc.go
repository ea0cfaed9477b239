// Package redis provides Redis client initialization with retry logic and a
// Redis-backed session store.
//
// Connect validates the connection URL, establishes a client, and verifies
// connectivity with a ping before returning, retrying on transient failures:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Healthcheck returns a probe function suitable for readiness endpoints:
//
//	check := redis.Healthcheck(client)
//	if err := check(ctx); err != nil {
//		// report unhealthy
//	}
//
// # Session store
//
// SessionStore implements session.Store on top of Redis. Sessions are JSON
// values keyed "session:<id>" with a TTL matching the session's absolute
// deadline, so Redis reclaims expired sessions on its own. A per-user set
// "user_sessions:<uid>" supports ListByUser and DeleteByUser; stale entries
// the TTL leaves behind are pruned lazily.
//
//	store := redis.NewSessionStore(client)
//	manager := session.NewManager(store, issuer, sessionCfg)
//
// # Errors
//
// Connection errors wrap stable sentinels checkable with errors.Is:
// ErrEmptyConnectionURL, ErrFailedToParseRedisConnString, ErrRedisNotReady,
// and ErrHealthcheckFailed. Store operations translate redis.Nil into
// session.ErrNotFound.
package redis
