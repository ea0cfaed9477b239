package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/zoptal/authkit/core/session"
)

const (
	sessionKeyPrefix = "session:"
	userIndexPrefix  = "user_sessions:"
)

// SessionStore is a Redis-backed implementation of session.Store.
//
// Each session is stored as a JSON value under "session:<id>" with a TTL
// matching the session's absolute deadline, so Redis reclaims expired
// sessions without a sweeper. A per-user set "user_sessions:<uid>" indexes
// session IDs; stale index entries left behind by TTL expiry are pruned
// lazily on ListByUser.
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewSessionStore creates a session store backed by the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		now:    time.Now,
	}
}

func sessionKey(id uuid.UUID) string { return sessionKeyPrefix + id.String() }
func userIndexKey(id uuid.UUID) string { return userIndexPrefix + id.String() }

// GetByID returns the session or session.ErrNotFound. Sessions expired by
// Redis TTL are reported as absent.
func (s *SessionStore) GetByID(ctx context.Context, id uuid.UUID) (session.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("get session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Save writes the session JSON with a TTL matching its absolute deadline
// and adds its ID to the user's index set. A session whose deadline has
// already passed is not persisted.
func (s *SessionStore) Save(ctx context.Context, sess session.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(sess.ID), data, ttl)
	pipe.SAdd(ctx, userIndexKey(sess.UserID), sess.ID.String())
	// The index outlives its members by a margin so lazy cleanup can run;
	// it is refreshed on every save.
	pipe.Expire(ctx, userIndexKey(sess.UserID), ttl+time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes a session and its index entry. Deleting an absent session
// returns session.ErrNotFound.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, userIndexKey(sess.UserID), id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ListByUser returns all live sessions indexed under the user, pruning
// index entries whose sessions Redis already expired.
func (s *SessionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]session.Session, error) {
	ids, err := s.client.SMembers(ctx, userIndexKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list user sessions: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = sessionKeyPrefix + id
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch user sessions: %w", err)
	}

	sessions := make([]session.Session, 0, len(values))
	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var sess session.Session
		if err := json.Unmarshal([]byte(raw), &sess); err != nil {
			stale = append(stale, ids[i])
			continue
		}
		sessions = append(sessions, sess)
	}

	if len(stale) > 0 {
		// Best effort: a failed prune only leaves entries for the next pass.
		_ = s.client.SRem(ctx, userIndexKey(userID), stale...).Err()
	}
	return sessions, nil
}

// DeleteByUser removes all of a user's sessions except the given IDs,
// returning the number deleted.
func (s *SessionStore) DeleteByUser(ctx context.Context, userID uuid.UUID, except ...uuid.UUID) (int, error) {
	ids, err := s.client.SMembers(ctx, userIndexKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("list user sessions: %w", err)
	}

	keep := make([]string, len(except))
	for i, id := range except {
		keep[i] = id.String()
	}

	var doomedKeys []string
	var doomedIDs []any
	for _, id := range ids {
		if slices.Contains(keep, id) {
			continue
		}
		doomedKeys = append(doomedKeys, sessionKeyPrefix+id)
		doomedIDs = append(doomedIDs, id)
	}
	if len(doomedKeys) == 0 {
		return 0, nil
	}

	// Count only sessions that still exist; index entries may be stale.
	deleted, err := s.client.Del(ctx, doomedKeys...).Result()
	if err != nil {
		return 0, fmt.Errorf("delete user sessions: %w", err)
	}
	if err := s.client.SRem(ctx, userIndexKey(userID), doomedIDs...).Err(); err != nil {
		return int(deleted), fmt.Errorf("prune session index: %w", err)
	}
	return int(deleted), nil
}

// DeleteExpired is a no-op for the Redis store: per-key TTLs already
// reclaim expired sessions, and ListByUser prunes stale index entries.
func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

var _ session.Store = (*SessionStore)(nil)
