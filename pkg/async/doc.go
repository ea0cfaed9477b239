// Package async provides utilities for asynchronous programming with Go
// generics.
//
// Future[T] represents the result of an asynchronous computation. It
// provides methods to wait for completion (Await), check status without
// blocking (IsComplete), and bound the wait (AwaitWithTimeout).
//
// Basic usage:
//
//	future := async.Go(ctx, func(ctx context.Context) (User, error) {
//		return fetchUser(ctx, userID)
//	})
//
//	// Do other work...
//
//	user, err := future.Await()
//
// A Future can also be shared: any number of goroutines may Await the
// same future, and all observe the single result. This makes it the
// building block for request deduplication, where concurrent callers
// wanting the same expensive operation attach to one in-flight
// computation instead of starting their own.
//
// WaitAll and WaitAny coordinate over several futures:
//
//	users, err := async.WaitAll(f1, f2, f3)
//	index, user, err := async.WaitAny(f1, f2, f3)
//
// All operations are safe for concurrent use; completion is guarded by
// sync.Once. If the context is cancelled before the function starts, the
// future completes immediately with the context's error.
package async
