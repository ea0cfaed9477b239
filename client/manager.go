package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoptal/authkit/core/logger"
	"github.com/zoptal/authkit/pkg/async"
)

// ErrRefreshFailed is returned when the server rejects the refresh token.
// Local token state has been cleared by the time it is returned; the
// caller must re-authenticate.
var ErrRefreshFailed = errors.New("client: token refresh rejected")

const (
	defaultRefreshPath      = "/api/v1/auth/refresh"
	defaultRefreshThreshold = 15 * time.Minute
	defaultTickInterval     = time.Minute
)

// Manager keeps a client's token pair alive: it persists tokens through a
// Storage, refreshes them ahead of expiry, and retries a request exactly
// once after an authoritative 401.
//
// All concurrent refresh triggers share one in-flight future, so a burst
// of 401s produces a single network call to the refresh endpoint.
type Manager struct {
	baseURL     string
	refreshPath string
	storage     Storage
	httpClient  *http.Client
	log         *slog.Logger
	threshold   time.Duration
	interval    time.Duration
	now         func() time.Time

	mu       sync.Mutex
	inflight *async.Future[Tokens]

	running atomic.Bool
	// stop is guarded by mu and recreated on every StartAutoRefresh.
	stop chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		if c != nil {
			m.httpClient = c
		}
	}
}

// WithRefreshPath overrides the refresh endpoint path.
func WithRefreshPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.refreshPath = path
		}
	}
}

// WithRefreshThreshold sets how long before access expiry a refresh is
// considered due.
func WithRefreshThreshold(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.threshold = d
		}
	}
}

// WithTickInterval sets the background refresh check interval.
func WithTickInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithLogger attaches a logger for background refresh outcomes.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithTimeFunc overrides the clock, primarily for tests.
func WithTimeFunc(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a token manager talking to the service at baseURL and
// persisting state through storage.
func New(baseURL string, storage Storage, opts ...Option) *Manager {
	m := &Manager{
		baseURL:     strings.TrimRight(baseURL, "/"),
		refreshPath: defaultRefreshPath,
		storage:     storage,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		log:         slog.Default(),
		threshold:   defaultRefreshThreshold,
		interval:    defaultTickInterval,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetTokens stores a fresh pair, typically right after login.
func (m *Manager) SetTokens(tokens Tokens) error {
	return m.storage.Save(tokens)
}

// CurrentTokens returns the stored pair. State that can no longer open a
// session (access expired, no usable refresh token) is discarded and
// reported as ErrNoTokens.
func (m *Manager) CurrentTokens() (Tokens, error) {
	tokens, err := m.storage.Load()
	if err != nil {
		return Tokens{}, err
	}
	if !tokens.Usable(m.now()) {
		_ = m.storage.Clear()
		return Tokens{}, ErrNoTokens
	}
	return tokens, nil
}

// ClearTokens drops the stored pair, typically on logout.
func (m *Manager) ClearTokens() error {
	return m.storage.Clear()
}

// ShouldRefresh reports whether a refresh is due: a refresh token is
// present and the access token expires within the threshold.
func (m *Manager) ShouldRefresh() bool {
	tokens, err := m.CurrentTokens()
	if err != nil {
		return false
	}
	if tokens.RefreshToken == "" {
		return false
	}
	return tokens.ExpiresAt.Sub(m.now()) < m.threshold
}

// Refresh exchanges the stored refresh token for a new pair. Concurrent
// callers attach to one in-flight exchange and all observe its result.
// The exchange itself is not cancelable once started; ctx only gates
// joining it.
func (m *Manager) Refresh(ctx context.Context) (Tokens, error) {
	m.mu.Lock()
	future := m.inflight
	if future == nil {
		future = async.Go(context.WithoutCancel(ctx), m.doRefresh)
		m.inflight = future
		go func() {
			_, _ = future.Await()
			m.mu.Lock()
			m.inflight = nil
			m.mu.Unlock()
		}()
	}
	m.mu.Unlock()

	return future.Await()
}

// refreshEnvelope mirrors the server's response shape for the refresh
// endpoint.
type refreshEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		SessionID string `json:"session_id"`
		Tokens    Tokens `json:"tokens"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (m *Manager) doRefresh(ctx context.Context) (Tokens, error) {
	current, err := m.storage.Load()
	if err != nil {
		return Tokens{}, err
	}
	if current.RefreshToken == "" {
		return Tokens{}, ErrNoTokens
	}

	payload, err := json.Marshal(map[string]string{"refresh_token": current.RefreshToken})
	if err != nil {
		return Tokens{}, fmt.Errorf("client: encode refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+m.refreshPath, bytes.NewReader(payload))
	if err != nil {
		return Tokens{}, fmt.Errorf("client: build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		// Network failures leave local state intact; the next trigger
		// retries the exchange.
		return Tokens{}, fmt.Errorf("client: refresh request: %w", err)
	}
	defer resp.Body.Close()

	var envelope refreshEnvelope
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&envelope); decodeErr != nil && resp.StatusCode == http.StatusOK {
		return Tokens{}, fmt.Errorf("client: decode refresh response: %w", decodeErr)
	}

	if resp.StatusCode != http.StatusOK || !envelope.Success {
		// The refresh token is dead (expired, revoked, or reused).
		// Anything stored locally is now useless.
		_ = m.storage.Clear()
		if envelope.Error != nil {
			return Tokens{}, fmt.Errorf("%w: %s", ErrRefreshFailed, envelope.Error.Message)
		}
		return Tokens{}, fmt.Errorf("%w: status %d", ErrRefreshFailed, resp.StatusCode)
	}

	tokens := envelope.Data.Tokens
	if tokens.RefreshExpiresAt.IsZero() {
		tokens.RefreshExpiresAt = current.RefreshExpiresAt
	}
	if err := m.storage.Save(tokens); err != nil {
		return Tokens{}, fmt.Errorf("client: persist refreshed tokens: %w", err)
	}
	return tokens, nil
}

// Do sends the request with the stored access token attached. On a 401 it
// refreshes once and retries once; if the refresh fails, local state is
// cleared and the original 401 response is returned.
func (m *Manager) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	tokens, err := m.CurrentTokens()
	if err == nil {
		req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	}

	resp, err := m.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	retry, ok := cloneRequest(ctx, req)
	if !ok {
		return resp, nil
	}

	refreshed, refreshErr := m.Refresh(ctx)
	if refreshErr != nil {
		return resp, nil
	}

	// The retry supersedes the 401; release its body.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()

	retry.Header.Set("Authorization", "Bearer "+refreshed.AccessToken)
	return m.httpClient.Do(retry)
}

// cloneRequest duplicates a request for the retry. Requests with a
// non-replayable body cannot be retried.
func cloneRequest(ctx context.Context, req *http.Request) (*http.Request, bool) {
	clone := req.Clone(ctx)
	if req.Body == nil || req.Body == http.NoBody {
		return clone, true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	clone.Body = body
	return clone, true
}

// StartAutoRefresh launches a background ticker that refreshes the pair
// whenever it comes within the threshold of expiry. The ticker is
// advisory; Do still performs the authoritative check on 401.
func (m *Manager) StartAutoRefresh() {
	if !m.running.CompareAndSwap(false, true) {
		return
	}

	// Each run gets its own stop channel: the previous one is closed and
	// would end the new goroutine immediately.
	m.mu.Lock()
	m.stop = make(chan struct{})
	stop := m.stop
	m.mu.Unlock()

	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !m.ShouldRefresh() {
					continue
				}
				if _, err := m.Refresh(context.Background()); err != nil {
					m.log.Warn("background token refresh failed",
						logger.Component("client"), logger.Error(err))
				}
			}
		}
	}()
}

// Stop terminates the background refresh goroutine. Safe to call without
// a prior StartAutoRefresh.
func (m *Manager) Stop() {
	if m.running.CompareAndSwap(true, false) {
		m.mu.Lock()
		close(m.stop)
		m.mu.Unlock()
	}
}
