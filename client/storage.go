package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrNoTokens is returned by Storage.Load when no tokens are stored.
var ErrNoTokens = errors.New("client: no stored tokens")

// Tokens is the locally persisted credential state. ExpiresAt is the
// access token deadline; RefreshExpiresAt, when known, bounds how long the
// refresh token itself stays usable.
type Tokens struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at,omitempty"`
}

// Usable reports whether the stored state can still open a session:
// either the access token is live or a refresh token remains.
func (t Tokens) Usable(now time.Time) bool {
	if t.AccessToken != "" && now.Before(t.ExpiresAt) {
		return true
	}
	if t.RefreshToken == "" {
		return false
	}
	return t.RefreshExpiresAt.IsZero() || now.Before(t.RefreshExpiresAt)
}

// Storage persists tokens between process runs. Implementations must be
// safe for concurrent use.
type Storage interface {
	Load() (Tokens, error)
	Save(tokens Tokens) error
	Clear() error
}

// MemoryStorage keeps tokens in process memory, for tests and short-lived
// programs.
type MemoryStorage struct {
	mu     sync.RWMutex
	tokens Tokens
	set    bool
}

// NewMemoryStorage creates an empty in-memory token store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (Tokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return Tokens{}, ErrNoTokens
	}
	return s.tokens, nil
}

func (s *MemoryStorage) Save(tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
	s.set = true
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Tokens{}
	s.set = false
	return nil
}

// FileStorage persists tokens as a JSON file with 0600 permissions, for
// CLI tools that must survive process restarts.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage creates a file-backed token store at path. Parent
// directories are created on first save.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() (Tokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Tokens{}, ErrNoTokens
		}
		return Tokens{}, fmt.Errorf("client: read token file: %w", err)
	}

	var tokens Tokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		// A corrupt file is treated as absent; the next save rewrites it.
		return Tokens{}, ErrNoTokens
	}
	return tokens, nil
}

func (s *FileStorage) Save(tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("client: encode tokens: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("client: create token directory: %w", err)
	}

	// Write-then-rename keeps a concurrent reader from observing a
	// partially written file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("client: write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("client: replace token file: %w", err)
	}
	return nil
}

func (s *FileStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("client: remove token file: %w", err)
	}
	return nil
}
