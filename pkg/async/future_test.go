package async_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoptal/authkit/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns the computed value", func(t *testing.T) {
		t.Parallel()

		future := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})

		value, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, value)
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		future := async.Go(context.Background(), func(_ context.Context) (string, error) {
			return "", wantErr
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("cancelled context skips execution", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var ran atomic.Bool
		future := async.Go(ctx, func(_ context.Context) (int, error) {
			ran.Store(true)
			return 1, nil
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, ran.Load())
	})

	t.Run("await with timeout", func(t *testing.T) {
		t.Parallel()

		blocker := make(chan struct{})
		future := async.Go(context.Background(), func(_ context.Context) (int, error) {
			<-blocker
			return 1, nil
		})

		_, err := future.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
		assert.False(t, future.IsComplete())

		close(blocker)
		value, err := future.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, 1, value)
		assert.True(t, future.IsComplete())
	})

	t.Run("shared future runs the computation once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		future := async.Go(context.Background(), func(_ context.Context) (int, error) {
			calls.Add(1)
			time.Sleep(5 * time.Millisecond)
			return 7, nil
		})

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				value, err := future.Await()
				assert.NoError(t, err)
				assert.Equal(t, 7, value)
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("preserves order", func(t *testing.T) {
		t.Parallel()

		mk := func(n int, delay time.Duration) *async.Future[int] {
			return async.Go(context.Background(), func(_ context.Context) (int, error) {
				time.Sleep(delay)
				return n, nil
			})
		}

		results, err := async.WaitAll(mk(1, 10*time.Millisecond), mk(2, 0), mk(3, 5*time.Millisecond))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, results)
	})

	t.Run("reports the first error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		ok := async.Go(context.Background(), func(_ context.Context) (int, error) { return 1, nil })
		bad := async.Go(context.Background(), func(_ context.Context) (int, error) { return 0, wantErr })

		_, err := async.WaitAll(ok, bad)
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestWaitAny(t *testing.T) {
	t.Parallel()

	t.Run("returns the fastest future", func(t *testing.T) {
		t.Parallel()

		slow := async.Go(context.Background(), func(_ context.Context) (string, error) {
			time.Sleep(50 * time.Millisecond)
			return "slow", nil
		})
		fast := async.Go(context.Background(), func(_ context.Context) (string, error) {
			return "fast", nil
		})

		index, value, err := async.WaitAny(slow, fast)
		require.NoError(t, err)
		assert.Equal(t, 1, index)
		assert.Equal(t, "fast", value)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, _, err := async.WaitAny[int]()
		assert.ErrorIs(t, err, async.ErrNoFutures)
	})
}
