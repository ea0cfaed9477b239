package auth

import (
	"sync"
	"time"
)

// attemptBucket is a token bucket tracking login attempts for one key.
type attemptBucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Throttle rate-limits login attempts per key (email plus client IP).
// It is a token bucket: capacity attempts burst, one token refilled per
// interval. Stale buckets are swept lazily to bound memory.
type Throttle struct {
	mu      sync.Mutex
	buckets map[string]*attemptBucket

	capacity       int
	refillInterval time.Duration

	lastSweep  time.Time
	sweepEvery time.Duration
	staleAfter time.Duration

	now func() time.Time
}

// NewThrottle creates a login throttle allowing capacity attempts with one
// token refilled per interval.
func NewThrottle(capacity int, refillInterval time.Duration) *Throttle {
	if capacity <= 0 {
		capacity = 10
	}
	if refillInterval <= 0 {
		refillInterval = time.Minute
	}
	return &Throttle{
		buckets:        make(map[string]*attemptBucket),
		capacity:       capacity,
		refillInterval: refillInterval,
		sweepEvery:     5 * time.Minute,
		staleAfter:     30 * time.Minute,
		now:            time.Now,
	}
}

// Allow consumes one attempt for the key, reporting whether it was within
// the limit.
func (t *Throttle) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.sweep(now)

	b, ok := t.buckets[key]
	if !ok {
		b = &attemptBucket{tokens: t.capacity, lastRefill: now}
		t.buckets[key] = b
	}

	refilled := int(now.Sub(b.lastRefill) / t.refillInterval)
	if refilled > 0 {
		b.tokens = min(b.tokens+refilled, t.capacity)
		b.lastRefill = now
	}
	b.lastAccess = now

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops buckets idle past staleAfter. Callers must hold mu.
func (t *Throttle) sweep(now time.Time) {
	if now.Sub(t.lastSweep) < t.sweepEvery {
		return
	}
	t.lastSweep = now

	for key, b := range t.buckets {
		if now.Sub(b.lastAccess) > t.staleAfter {
			delete(t.buckets, key)
		}
	}
}
