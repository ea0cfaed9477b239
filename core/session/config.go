package session

import "time"

// Config holds session lifecycle settings.
type Config struct {
	// MaxConcurrentSessions caps live sessions per user. Creating one
	// beyond the cap evicts the least-recently-accessed session.
	MaxConcurrentSessions int `env:"AUTH_MAX_CONCURRENT_SESSIONS" envDefault:"5"`

	// RefreshTTL is the absolute session lifetime without remember-me.
	RefreshTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"168h"`

	// RememberMeTTL is the absolute session lifetime with remember-me.
	RememberMeTTL time.Duration `env:"AUTH_REMEMBER_ME_TTL" envDefault:"720h"`

	// InactiveTimeout force-expires sessions idle longer than this,
	// independent of the absolute TTL. Negative disables the check.
	InactiveTimeout time.Duration `env:"AUTH_INACTIVE_TIMEOUT" envDefault:"30m"`
}

// defaults fills zero fields with production defaults.
func (c Config) defaults() Config {
	if c.MaxConcurrentSessions <= 0 {
		c.MaxConcurrentSessions = 5
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = 7 * 24 * time.Hour
	}
	if c.RememberMeTTL <= 0 {
		c.RememberMeTTL = 30 * 24 * time.Hour
	}
	if c.InactiveTimeout < 0 {
		c.InactiveTimeout = 0
	} else if c.InactiveTimeout == 0 {
		c.InactiveTimeout = 30 * time.Minute
	}
	return c
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTimeFunc overrides the manager's clock, primarily for tests.
func WithTimeFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
