package sessiontransport

import (
	"time"

	"github.com/zoptal/authkit/core/token"
)

// Config provides environment-based configuration for the cookie
// transport. TTL fields use duration strings with s/m/h/d suffixes.
type Config struct {
	AccessCookieName  string `env:"SESSION_ACCESS_COOKIE" envDefault:"access_token"`
	RefreshCookieName string `env:"SESSION_REFRESH_COOKIE" envDefault:"refresh_token"`
	// Secure restricts cookies to HTTPS. Enabled in any deployed
	// environment; off only for local development.
	Secure        bool   `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
	RefreshTTL    string `env:"AUTH_REFRESH_TTL" envDefault:"7d"`
	RememberMeTTL string `env:"AUTH_REMEMBER_ME_EXPIRY" envDefault:"30d"`
}

func (c Config) defaults() Config {
	if c.AccessCookieName == "" {
		c.AccessCookieName = "access_token"
	}
	if c.RefreshCookieName == "" {
		c.RefreshCookieName = "refresh_token"
	}
	return c
}

func (c Config) refreshTTL() time.Duration {
	if c.RefreshTTL == "" {
		return 7 * 24 * time.Hour
	}
	return token.ParseDuration(c.RefreshTTL)
}

func (c Config) rememberMeTTL() time.Duration {
	if c.RememberMeTTL == "" {
		return 30 * 24 * time.Hour
	}
	return token.ParseDuration(c.RememberMeTTL)
}
