// Package pg provides PostgreSQL connection pool management and the
// PostgreSQL-backed user repository.
//
// Connect parses the connection string, applies pool settings, and verifies
// connectivity with a ping before returning, retrying on transient failures:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
// Healthcheck returns a probe function suitable for readiness endpoints.
//
// # User repository
//
// UserRepository implements auth.Repository on top of pgxpool. It expects
// the users table from schema.sql and maps driver errors to the auth
// sentinels: no rows becomes auth.ErrUserNotFound, a unique violation on
// email becomes auth.ErrEmailTaken.
//
//	users := pg.NewUserRepository(pool)
//	svc := auth.NewService(users, issuer, sessions, policy, authCfg, log)
//
// # Transactions
//
// WithTx stores a pgx.Tx in the context; repository operations performed
// with that context join the transaction instead of running on the pool:
//
//	tx, err := pool.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback(ctx)
//
//	ctx = pg.WithTx(ctx, tx)
//	if err := users.Create(ctx, user); err != nil {
//		return err
//	}
//	return tx.Commit(ctx)
//
// # Errors
//
// Connection errors wrap stable sentinels checkable with errors.Is:
// ErrEmptyConnectionString, ErrFailedToParseConnString, ErrPostgresNotReady,
// and ErrHealthcheckFailed.
package pg
