package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoptal/authkit/client"
)

// authServer fakes the refresh endpoint and a protected resource. The
// protected resource accepts only the most recently issued access token.
type authServer struct {
	mu           sync.Mutex
	refreshCalls atomic.Int32
	refreshDelay atomic.Int64 // milliseconds
	rejectAll    atomic.Bool
	validAccess  string
	validRefresh string
	issued       int

	*httptest.Server
}

func newAuthServer(t *testing.T) *authServer {
	t.Helper()

	s := &authServer{validAccess: "access-0", validRefresh: "refresh-0"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		s.refreshCalls.Add(1)
		if delay := s.refreshDelay.Load(); delay > 0 {
			time.Sleep(time.Duration(delay) * time.Millisecond)
		}

		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		s.mu.Lock()
		defer s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if s.rejectAll.Load() || body.RefreshToken != s.validRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   map[string]string{"code": "TOKEN_INVALID", "message": "refresh token is invalid or expired"},
			})
			return
		}

		s.issued++
		s.validAccess = "access-" + strconv.Itoa(s.issued)
		s.validRefresh = "refresh-" + strconv.Itoa(s.issued)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"session_id": "7b6ad191-1c2f-4b02-9f9c-5f1c6f1e0001",
				"tokens": map[string]any{
					"access_token":  s.validAccess,
					"refresh_token": s.validRefresh,
					"expires_at":    time.Now().Add(15 * time.Minute).UTC(),
				},
			},
		})
	})
	mux.HandleFunc("GET /api/v1/me", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		valid := "Bearer " + s.validAccess
		s.mu.Unlock()

		if r.Header.Get("Authorization") != valid {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   map[string]string{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	mux.HandleFunc("POST /api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		valid := "Bearer " + s.validAccess
		s.mu.Unlock()

		if r.Header.Get("Authorization") != valid {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// expireAccess invalidates the current access token server-side without
// touching the refresh token, simulating access expiry.
func (s *authServer) expireAccess() {
	s.mu.Lock()
	s.validAccess = "rotated-away"
	s.mu.Unlock()
}

func newManager(t *testing.T, s *authServer, opts ...client.Option) (*client.Manager, *client.MemoryStorage) {
	t.Helper()

	storage := client.NewMemoryStorage()
	require.NoError(t, storage.Save(client.Tokens{
		AccessToken:  "access-0",
		RefreshToken: "refresh-0",
		ExpiresAt:    time.Now().Add(time.Hour),
	}))
	return client.New(s.URL, storage, opts...), storage
}

func TestManagerDo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("attaches bearer token", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t)
		mgr, _ := newManager(t, server)

		req, _ := http.NewRequest("GET", server.URL+"/api/v1/me", nil)
		resp, err := mgr.Do(ctx, req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(0), server.refreshCalls.Load())
	})

	t.Run("401 triggers one refresh and one retry", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t)
		mgr, storage := newManager(t, server)
		server.expireAccess()

		req, _ := http.NewRequest("GET", server.URL+"/api/v1/me", nil)
		resp, err := mgr.Do(ctx, req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(1), server.refreshCalls.Load())

		// The rotated pair was persisted.
		tokens, err := storage.Load()
		require.NoError(t, err)
		assert.Equal(t, "access-1", tokens.AccessToken)
		assert.Equal(t, "refresh-1", tokens.RefreshToken)
	})

	t.Run("refresh failure surfaces the 401 and clears state", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t)
		mgr, storage := newManager(t, server)
		server.expireAccess()
		server.rejectAll.Store(true)

		req, _ := http.NewRequest("GET", server.URL+"/api/v1/me", nil)
		resp, err := mgr.Do(ctx, req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_, err = storage.Load()
		assert.ErrorIs(t, err, client.ErrNoTokens)
	})

	t.Run("retry replays the request body", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t)
		mgr, _ := newManager(t, server)
		server.expireAccess()

		req, _ := http.NewRequest("POST", server.URL+"/api/v1/projects", strings.NewReader(`{"name":"demo"}`))
		resp, err := mgr.Do(ctx, req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"name":"demo"}`, string(body))
	})

	t.Run("non-replayable body is not retried", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t)
		mgr, _ := newManager(t, server)
		server.expireAccess()

		// io.Pipe yields a request without GetBody, so the 401 cannot be
		// retried safely.
		pr, pw := io.Pipe()
		go func() {
			_, _ = io.WriteString(pw, `{"name":"demo"}`)
			pw.Close()
		}()
		req, err := http.NewRequest("POST", server.URL+"/api/v1/projects", pr)
		require.NoError(t, err)

		resp, err := mgr.Do(ctx, req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, int32(0), server.refreshCalls.Load())
	})
}

func TestManagerRefreshDedup(t *testing.T) {
	t.Parallel()

	t.Run("concurrent triggers share one network call", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t)
		server.refreshDelay.Store(50)
		mgr, _ := newManager(t, server)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tokens, err := mgr.Refresh(context.Background())
				assert.NoError(t, err)
				assert.Equal(t, "access-1", tokens.AccessToken)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), server.refreshCalls.Load())
	})

	t.Run("two concurrent 401 requests refresh once", func(t *testing.T) {
		t.Parallel()

		server := newAuthServer(t)
		server.refreshDelay.Store(50)
		mgr, _ := newManager(t, server)
		server.expireAccess()

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				req, _ := http.NewRequest("GET", server.URL+"/api/v1/me", nil)
				resp, err := mgr.Do(context.Background(), req)
				assert.NoError(t, err)
				if err == nil {
					assert.Equal(t, http.StatusOK, resp.StatusCode)
					resp.Body.Close()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), server.refreshCalls.Load())
	})
}

func TestManagerShouldRefresh(t *testing.T) {
	t.Parallel()

	server := newAuthServer(t)

	t.Run("due within threshold", func(t *testing.T) {
		t.Parallel()

		storage := client.NewMemoryStorage()
		require.NoError(t, storage.Save(client.Tokens{
			AccessToken:  "a",
			RefreshToken: "r",
			ExpiresAt:    time.Now().Add(10 * time.Minute),
		}))
		mgr := client.New(server.URL, storage)
		assert.True(t, mgr.ShouldRefresh())
	})

	t.Run("not due outside threshold", func(t *testing.T) {
		t.Parallel()

		storage := client.NewMemoryStorage()
		require.NoError(t, storage.Save(client.Tokens{
			AccessToken:  "a",
			RefreshToken: "r",
			ExpiresAt:    time.Now().Add(time.Hour),
		}))
		mgr := client.New(server.URL, storage)
		assert.False(t, mgr.ShouldRefresh())
	})

	t.Run("no refresh token", func(t *testing.T) {
		t.Parallel()

		storage := client.NewMemoryStorage()
		require.NoError(t, storage.Save(client.Tokens{
			AccessToken: "a",
			ExpiresAt:   time.Now().Add(time.Minute),
		}))
		mgr := client.New(server.URL, storage)
		assert.False(t, mgr.ShouldRefresh())
	})

	t.Run("nothing stored", func(t *testing.T) {
		t.Parallel()

		mgr := client.New(server.URL, client.NewMemoryStorage())
		assert.False(t, mgr.ShouldRefresh())
	})
}

func TestManagerCurrentTokens(t *testing.T) {
	t.Parallel()

	server := newAuthServer(t)

	t.Run("discards dead state on load", func(t *testing.T) {
		t.Parallel()

		storage := client.NewMemoryStorage()
		require.NoError(t, storage.Save(client.Tokens{
			AccessToken:      "a",
			RefreshToken:     "r",
			ExpiresAt:        time.Now().Add(-time.Hour),
			RefreshExpiresAt: time.Now().Add(-time.Minute),
		}))
		mgr := client.New(server.URL, storage)

		_, err := mgr.CurrentTokens()
		assert.ErrorIs(t, err, client.ErrNoTokens)

		// The dead state was removed from storage too.
		_, err = storage.Load()
		assert.ErrorIs(t, err, client.ErrNoTokens)
	})
}

func TestManagerAutoRefresh(t *testing.T) {
	t.Parallel()

	server := newAuthServer(t)
	storage := client.NewMemoryStorage()
	require.NoError(t, storage.Save(client.Tokens{
		AccessToken:  "access-0",
		RefreshToken: "refresh-0",
		ExpiresAt:    time.Now().Add(time.Minute), // inside the 15m threshold
	}))

	mgr := client.New(server.URL, storage, client.WithTickInterval(10*time.Millisecond))
	mgr.StartAutoRefresh()
	defer mgr.Stop()

	require.Eventually(t, func() bool {
		return server.refreshCalls.Load() >= 1
	}, time.Second, 5*time.Millisecond)

	tokens, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-1", tokens.AccessToken)
}

func TestManagerAutoRefreshRestart(t *testing.T) {
	t.Parallel()

	server := newAuthServer(t)
	storage := client.NewMemoryStorage()
	require.NoError(t, storage.Save(client.Tokens{
		AccessToken:  "access-0",
		RefreshToken: "refresh-0",
		ExpiresAt:    time.Now().Add(time.Minute),
	}))

	mgr := client.New(server.URL, storage, client.WithTickInterval(10*time.Millisecond))

	mgr.StartAutoRefresh()
	mgr.Stop()

	// A restarted ticker must keep refreshing, and a second Stop must
	// not panic on an already-closed channel.
	calls := server.refreshCalls.Load()
	mgr.StartAutoRefresh()
	require.Eventually(t, func() bool {
		return server.refreshCalls.Load() > calls
	}, time.Second, 5*time.Millisecond)
	mgr.Stop()

	// Stop is idempotent.
	mgr.Stop()
}
