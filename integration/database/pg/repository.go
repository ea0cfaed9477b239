package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zoptal/authkit/core/auth"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// querier is the subset of pgx operations the repository needs, satisfied
// by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository is a PostgreSQL-backed implementation of auth.Repository.
// Operations join a transaction carried in the context via WithTx; without
// one they run directly on the pool.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a user repository backed by the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) db(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

const userColumns = `id, email, role, status, password_hash, email_verified,
	failed_attempts, locked_until, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Role, &u.Status, &u.PasswordHash, &u.EmailVerified,
		&u.FailedAttempts, &u.LockedUntil, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// GetByEmail returns the user with the given email or auth.ErrUserNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetByID returns the user with the given ID or auth.ErrUserNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// Create inserts a new user. A duplicate email returns auth.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		user.ID, user.Email, user.Role, user.Status, user.PasswordHash, user.EmailVerified,
		user.FailedAttempts, user.LockedUntil, user.LastLoginAt, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update persists changes to an existing user. An absent user returns
// auth.ErrUserNotFound.
func (r *UserRepository) Update(ctx context.Context, user *auth.User) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE users SET
			email = $2, role = $3, status = $4, password_hash = $5, email_verified = $6,
			failed_attempts = $7, locked_until = $8, last_login_at = $9, updated_at = $10
		 WHERE id = $1`,
		user.ID, user.Email, user.Role, user.Status, user.PasswordHash, user.EmailVerified,
		user.FailedAttempts, user.LockedUntil, user.LastLoginAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

var _ auth.Repository = (*UserRepository)(nil)
