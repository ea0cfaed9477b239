package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-process storage: an arena of
// sessions keyed by ID with a parallel per-user index. Both structures are
// updated under a single critical section, so readers never observe one
// without the other.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]Session
	byUser   map[uuid.UUID]map[uuid.UUID]struct{}

	cleanupInterval time.Duration
	logger          *slog.Logger

	cancel  context.CancelFunc
	running atomic.Bool
	wg      sync.WaitGroup

	created atomic.Int64
	removed atomic.Int64
}

// MemoryStoreStats provides observability metrics for monitoring.
type MemoryStoreStats struct {
	SessionsCreated int64
	SessionsRemoved int64
	ActiveSessions  int
	IsRunning       bool
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired sessions are swept.
// Set to 0 to disable automatic cleanup.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithMemoryStoreLogger sets the logger for background operations.
func WithMemoryStoreLogger(logger *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if logger != nil {
			ms.logger = logger
		}
	}
}

// NewMemoryStore creates an in-memory session store.
// Call Start to begin background cleanup of expired sessions.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		sessions:        make(map[uuid.UUID]Session),
		byUser:          make(map[uuid.UUID]map[uuid.UUID]struct{}),
		cleanupInterval: 5 * time.Minute,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(ms)
	}

	return ms
}

// Start launches the background cleanup goroutine. It is a no-op when
// cleanup is disabled or the store is already running.
func (ms *MemoryStore) Start() {
	if ms.cleanupInterval <= 0 || !ms.running.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	ms.cancel = cancel

	ms.wg.Add(1)
	go func() {
		defer ms.wg.Done()

		ticker := time.NewTicker(ms.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := ms.DeleteExpired(ctx, time.Now())
				if err != nil {
					ms.logger.Error("session cleanup failed", "error", err)
					continue
				}
				if deleted > 0 {
					ms.logger.Debug("expired sessions removed", "count", deleted)
				}
			}
		}
	}()
}

// Stop terminates the cleanup goroutine and waits for it to exit.
func (ms *MemoryStore) Stop() {
	if !ms.running.CompareAndSwap(true, false) {
		return
	}
	ms.cancel()
	ms.wg.Wait()
}

// Stats returns a snapshot of store metrics.
func (ms *MemoryStore) Stats() MemoryStoreStats {
	ms.mu.RLock()
	active := len(ms.sessions)
	ms.mu.RUnlock()

	return MemoryStoreStats{
		SessionsCreated: ms.created.Load(),
		SessionsRemoved: ms.removed.Load(),
		ActiveSessions:  active,
		IsRunning:       ms.running.Load(),
	}
}

// GetByID returns a copy of the session or ErrNotFound.
func (ms *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	sess, ok := ms.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// Save inserts or updates a session and its user index entry atomically.
func (ms *MemoryStore) Save(_ context.Context, sess Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.sessions[sess.ID]; !exists {
		ms.created.Add(1)
	}
	ms.sessions[sess.ID] = sess

	index, ok := ms.byUser[sess.UserID]
	if !ok {
		index = make(map[uuid.UUID]struct{})
		ms.byUser[sess.UserID] = index
	}
	index[sess.ID] = struct{}{}

	return nil
}

// Delete removes a session and its index entry.
func (ms *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	sess, ok := ms.sessions[id]
	if !ok {
		return ErrNotFound
	}
	ms.remove(sess)
	return nil
}

// ListByUser returns copies of all sessions indexed under the user.
func (ms *MemoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	index := ms.byUser[userID]
	if len(index) == 0 {
		return nil, nil
	}

	out := make([]Session, 0, len(index))
	for id := range index {
		if sess, ok := ms.sessions[id]; ok {
			out = append(out, sess)
		}
	}
	return out, nil
}

// DeleteByUser removes all of a user's sessions except the given IDs.
func (ms *MemoryStore) DeleteByUser(_ context.Context, userID uuid.UUID, except ...uuid.UUID) (int, error) {
	keep := make(map[uuid.UUID]struct{}, len(except))
	for _, id := range except {
		keep[id] = struct{}{}
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	count := 0
	for id := range ms.byUser[userID] {
		if _, skip := keep[id]; skip {
			continue
		}
		if sess, ok := ms.sessions[id]; ok {
			ms.remove(sess)
			count++
		}
	}
	return count, nil
}

// DeleteExpired removes sessions whose absolute TTL elapsed before now.
func (ms *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var deleted int64
	for _, sess := range ms.sessions {
		if now.After(sess.ExpiresAt) {
			ms.remove(sess)
			deleted++
		}
	}
	return deleted, nil
}

// remove deletes a session from both structures. Callers must hold mu.
func (ms *MemoryStore) remove(sess Session) {
	delete(ms.sessions, sess.ID)
	if index, ok := ms.byUser[sess.UserID]; ok {
		delete(index, sess.ID)
		if len(index) == 0 {
			delete(ms.byUser, sess.UserID)
		}
	}
	ms.removed.Add(1)
}
