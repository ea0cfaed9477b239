package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoptal/authkit/core/session"
)

func storedSession(userID uuid.UUID, expiresAt time.Time) session.Session {
	now := time.Now()
	return session.Session{
		ID:             uuid.New(),
		UserID:         userID,
		TokenVersion:   1,
		CreatedAt:      now,
		ExpiresAt:      expiresAt,
		LastAccessedAt: now,
	}
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	ctx := context.Background()

	sess := storedSession(uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.UserID, got.UserID)

	_, err = store.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryStore_UserIndex(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	first := storedSession(userID, time.Now().Add(time.Hour))
	second := storedSession(userID, time.Now().Add(time.Hour))
	other := storedSession(uuid.New(), time.Now().Add(time.Hour))

	for _, sess := range []session.Session{first, second, other} {
		require.NoError(t, store.Save(ctx, sess))
	}

	sessions, err := store.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	// Deleting keeps arena and index consistent.
	require.NoError(t, store.Delete(ctx, first.ID))
	sessions, err = store.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, second.ID, sessions[0].ID)
}

func TestMemoryStore_DeleteByUser(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	keep := storedSession(userID, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(ctx, keep))
	for range 3 {
		require.NoError(t, store.Save(ctx, storedSession(userID, time.Now().Add(time.Hour))))
	}

	count, err := store.DeleteByUser(ctx, userID, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = store.GetByID(ctx, keep.ID)
	assert.NoError(t, err)
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Save(ctx, storedSession(userID, time.Now().Add(-time.Minute))))
	require.NoError(t, store.Save(ctx, storedSession(userID, time.Now().Add(-time.Hour))))
	live := storedSession(userID, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(ctx, live))

	deleted, err := store.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	sessions, err := store.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, live.ID, sessions[0].ID)
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(session.WithCleanupInterval(10 * time.Millisecond))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, storedSession(uuid.New(), time.Now().Add(-time.Minute))))

	store.Start()
	defer store.Stop()

	assert.Eventually(t, func() bool {
		return store.Stats().ActiveSessions == 0
	}, time.Second, 10*time.Millisecond)

	store.Stop()
	assert.False(t, store.Stats().IsRunning)

	// Start/Stop cycles are idempotent.
	store.Stop()
	store.Start()
	store.Stop()
}

func TestMemoryStore_Stats(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	ctx := context.Background()

	sess := storedSession(uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Delete(ctx, sess.ID))

	stats := store.Stats()
	assert.EqualValues(t, 1, stats.SessionsCreated)
	assert.EqualValues(t, 1, stats.SessionsRemoved)
	assert.Zero(t, stats.ActiveSessions)
}
