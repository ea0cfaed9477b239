package auth

import "time"

// Config holds authentication orchestration settings.
type Config struct {
	// MaxFailedAttempts engages the account lockout once reached.
	MaxFailedAttempts int `env:"AUTH_MAX_FAILED_ATTEMPTS" envDefault:"5"`

	// LockoutDuration is how long a lockout lasts.
	LockoutDuration time.Duration `env:"AUTH_LOCKOUT_DURATION" envDefault:"15m"`

	// LoginBurst and LoginRefillInterval parameterize the login throttle:
	// LoginBurst attempts at once, one attempt regained per interval.
	LoginBurst          int           `env:"AUTH_LOGIN_BURST" envDefault:"10"`
	LoginRefillInterval time.Duration `env:"AUTH_LOGIN_REFILL_INTERVAL" envDefault:"1m"`

	// RequireVerifiedEmail blocks login for accounts that never verified.
	RequireVerifiedEmail bool `env:"AUTH_REQUIRE_VERIFIED_EMAIL" envDefault:"true"`
}

// defaults fills zero fields with production defaults.
func (c Config) defaults() Config {
	if c.MaxFailedAttempts <= 0 {
		c.MaxFailedAttempts = 5
	}
	if c.LockoutDuration <= 0 {
		c.LockoutDuration = 15 * time.Minute
	}
	if c.LoginBurst <= 0 {
		c.LoginBurst = 10
	}
	if c.LoginRefillInterval <= 0 {
		c.LoginRefillInterval = time.Minute
	}
	return c
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceTimeFunc overrides the service clock, primarily for tests.
func WithServiceTimeFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
