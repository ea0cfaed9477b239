package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleAllow(t *testing.T) {
	t.Parallel()

	t.Run("burst then deny", func(t *testing.T) {
		t.Parallel()

		th := NewThrottle(3, time.Minute)
		for i := 0; i < 3; i++ {
			assert.True(t, th.Allow("alice@example.com|1.2.3.4"), "attempt %d", i)
		}
		assert.False(t, th.Allow("alice@example.com|1.2.3.4"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		th := NewThrottle(1, time.Minute)
		assert.True(t, th.Allow("a"))
		assert.False(t, th.Allow("a"))
		assert.True(t, th.Allow("b"))
	})

	t.Run("refills one token per interval", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		th := NewThrottle(2, time.Minute)
		th.now = func() time.Time { return now }

		assert.True(t, th.Allow("k"))
		assert.True(t, th.Allow("k"))
		assert.False(t, th.Allow("k"))

		now = now.Add(time.Minute)
		assert.True(t, th.Allow("k"))
		assert.False(t, th.Allow("k"))
	})

	t.Run("refill caps at capacity", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		th := NewThrottle(2, time.Minute)
		th.now = func() time.Time { return now }

		assert.True(t, th.Allow("k"))

		now = now.Add(20 * time.Minute)
		for i := 0; i < 2; i++ {
			assert.True(t, th.Allow("k"), "attempt %d", i)
		}
		assert.False(t, th.Allow("k"))
	})

	t.Run("sweeps stale buckets", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		th := NewThrottle(1, time.Minute)
		th.now = func() time.Time { return now }

		th.Allow("stale")
		assert.Len(t, th.buckets, 1)

		now = now.Add(time.Hour)
		th.Allow("fresh")
		assert.Len(t, th.buckets, 1, "stale bucket should be gone")
		_, ok := th.buckets["fresh"]
		assert.True(t, ok)
	})

	t.Run("zero config falls back to defaults", func(t *testing.T) {
		t.Parallel()

		th := NewThrottle(0, 0)
		for i := 0; i < 10; i++ {
			assert.True(t, th.Allow("k"))
		}
		assert.False(t, th.Allow("k"))
	})
}
