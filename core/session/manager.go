package session

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// userLockShards is the size of the per-user lock table. Mutations are
// serialized per user (create/refresh/destroy touch the same quota index),
// so concurrent logins for one user cannot race past the session cap.
const userLockShards = 64

// Manager owns the session lifecycle. Construct one per process and inject
// it where needed; it is safe for concurrent use.
type Manager struct {
	store  Store
	tokens TokenMinter
	cfg    Config
	now    func() time.Time

	userLocks [userLockShards]chan struct{}
}

// NewManager creates a session manager backed by the given store and
// token minter.
func NewManager(store Store, tokens TokenMinter, cfg Config, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		tokens: tokens,
		cfg:    cfg.defaults(),
		now:    time.Now,
	}
	for i := range m.userLocks {
		m.userLocks[i] = make(chan struct{}, 1)
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// lockUser serializes mutating operations for a user. Returns an unlock
// function, or an error if the context is canceled first.
func (m *Manager) lockUser(ctx context.Context, userID uuid.UUID) (func(), error) {
	lock := m.userLocks[userID[0]%userLockShards]
	select {
	case lock <- struct{}{}:
		return func() { <-lock }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Create establishes a new session for the user, enforcing the
// concurrent-session quota first: when the user is at capacity, the
// least-recently-accessed session is evicted (ties broken by creation
// time), then a token pair is minted and the session stored and indexed.
func (m *Manager) Create(ctx context.Context, user User, device DeviceContext, rememberMe bool) (Session, error) {
	unlock, err := m.lockUser(ctx, user.ID)
	if err != nil {
		return Session{}, err
	}
	defer unlock()

	if err := m.evictOverQuota(ctx, user.ID); err != nil {
		return Session{}, err
	}

	now := m.now()
	ttl := m.cfg.RefreshTTL
	if rememberMe {
		ttl = m.cfg.RememberMeTTL
	}

	sess := Session{
		ID:             uuid.New(),
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
		TokenVersion:   1,
		IP:             device.IP,
		UserAgent:      device.UserAgent,
		RememberMe:     rememberMe,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
		LastAccessedAt: now,
	}

	if err := m.mint(&sess); err != nil {
		return Session{}, err
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return Session{}, errors.Join(ErrSaveSession, err)
	}

	return sess, nil
}

// GetByID retrieves a session, lazily expiring it: a session past its
// absolute TTL is deleted and reported as ErrNotFound rather than
// returned stale.
func (m *Manager) GetByID(ctx context.Context, id uuid.UUID) (Session, error) {
	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}

	if sess.IsExpired(m.now()) {
		_ = m.store.Delete(ctx, id)
		return Session{}, ErrNotFound
	}

	return sess, nil
}

// Refresh rotates the session's token pair. The presented token version
// must match the stored one; a stale version means an already-rotated
// refresh token was replayed, so the session is destroyed and
// ErrTokenReuseDetected returned. Returns ErrNotFound for unknown or
// expired sessions; no new session is created as a side effect.
func (m *Manager) Refresh(ctx context.Context, user User, sessionID uuid.UUID, presentedVersion int) (Session, error) {
	unlock, err := m.lockUser(ctx, user.ID)
	if err != nil {
		return Session{}, err
	}
	defer unlock()

	sess, err := m.GetByID(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}

	if presentedVersion != sess.TokenVersion {
		_ = m.store.Delete(ctx, sessionID)
		return Session{}, ErrTokenReuseDetected
	}

	now := m.now()
	ttl := m.cfg.RefreshTTL
	if sess.RememberMe {
		ttl = m.cfg.RememberMeTTL
	}

	sess.TokenVersion++
	sess.Email = user.Email
	sess.Role = user.Role
	sess.LastAccessedAt = now

	// ExpiresAt is monotonically non-decreasing across refreshes.
	if deadline := now.Add(ttl); deadline.After(sess.ExpiresAt) {
		sess.ExpiresAt = deadline
	}

	if err := m.mint(&sess); err != nil {
		return Session{}, err
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return Session{}, errors.Join(ErrSaveSession, err)
	}

	return sess, nil
}

// Destroy removes a session, reporting whether one existed.
func (m *Manager) Destroy(ctx context.Context, id uuid.UUID) bool {
	return m.store.Delete(ctx, id) == nil
}

// DestroyAllForUser removes all of a user's sessions except the given
// ones, returning the number destroyed. Used by "log out everywhere".
func (m *Manager) DestroyAllForUser(ctx context.Context, userID uuid.UUID, except ...uuid.UUID) (int, error) {
	unlock, err := m.lockUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	defer unlock()

	return m.store.DeleteByUser(ctx, userID, except...)
}

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	Valid   bool
	Session Session
	// Err explains an invalid result: ErrNotFound, ErrExpired, ErrInactive,
	// or ErrInsufficientRole.
	Err error
}

// Validate combines the absence, expiry, inactivity, and role checks into
// one call. A session idle longer than the inactivity timeout is destroyed
// even though its tokens may still verify. On success the session's
// LastAccessedAt is advanced.
func (m *Manager) Validate(ctx context.Context, id uuid.UUID, requiredRoles ...string) ValidationResult {
	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return ValidationResult{Err: ErrNotFound}
	}

	// Touching LastAccessedAt is a read-modify-write; it must hold the
	// user lock like every other mutation, or a concurrent Refresh could
	// be overwritten with the pre-rotation token version. The session is
	// re-read under the lock.
	unlock, err := m.lockUser(ctx, sess.UserID)
	if err != nil {
		return ValidationResult{Err: err}
	}
	defer unlock()

	sess, err = m.store.GetByID(ctx, id)
	if err != nil {
		return ValidationResult{Err: ErrNotFound}
	}

	now := m.now()

	if sess.IsExpired(now) {
		_ = m.store.Delete(ctx, id)
		return ValidationResult{Err: ErrExpired}
	}

	if sess.IsIdle(now, m.cfg.InactiveTimeout) {
		_ = m.store.Delete(ctx, id)
		return ValidationResult{Err: ErrInactive}
	}

	if len(requiredRoles) > 0 && !slices.Contains(requiredRoles, sess.Role) {
		return ValidationResult{Err: ErrInsufficientRole}
	}

	sess.LastAccessedAt = now
	if err := m.store.Save(ctx, sess); err != nil {
		return ValidationResult{Err: errors.Join(ErrSaveSession, err)}
	}

	return ValidationResult{Valid: true, Session: sess}
}

// CleanupExpired removes all sessions past their absolute TTL.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}

// evictOverQuota deletes least-recently-accessed sessions until the user
// is below the concurrent-session cap. Expired sessions are removed first
// so they don't consume quota.
func (m *Manager) evictOverQuota(ctx context.Context, userID uuid.UUID) error {
	sessions, err := m.store.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	now := m.now()
	live := sessions[:0]
	for _, sess := range sessions {
		if sess.IsExpired(now) {
			_ = m.store.Delete(ctx, sess.ID)
			continue
		}
		live = append(live, sess)
	}

	for len(live) >= m.cfg.MaxConcurrentSessions {
		oldest := 0
		for i := 1; i < len(live); i++ {
			if evictsBefore(live[i], live[oldest]) {
				oldest = i
			}
		}
		if err := m.store.Delete(ctx, live[oldest].ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		live = slices.Delete(live, oldest, oldest+1)
	}

	return nil
}

// evictsBefore orders sessions for eviction: least-recently-accessed
// first, creation time as the tie-break under coarse clock granularity.
func evictsBefore(a, b Session) bool {
	if a.LastAccessedAt.Equal(b.LastAccessedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.LastAccessedAt.Before(b.LastAccessedAt)
}

// mint issues a fresh token pair for the session.
func (m *Manager) mint(sess *Session) error {
	access, err := m.tokens.IssueAccessToken(sess.UserID, sess.Email, sess.Role, sess.ID)
	if err != nil {
		return errors.Join(ErrMintTokens, err)
	}
	refresh, err := m.tokens.IssueRefreshToken(sess.UserID, sess.ID, sess.TokenVersion)
	if err != nil {
		return errors.Join(ErrMintTokens, err)
	}

	sess.AccessToken = access
	sess.RefreshToken = refresh
	sess.AccessExpiresAt = m.now().Add(m.tokens.AccessTTL())
	return nil
}
