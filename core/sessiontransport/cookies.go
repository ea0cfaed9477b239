package sessiontransport

import (
	"net/http"
	"time"

	"github.com/zoptal/authkit/core/cookie"
	"github.com/zoptal/authkit/core/session"
)

// Cookies moves a session's token pair across the HTTP boundary for
// browser clients. Both cookies are HttpOnly with SameSite=Strict; the
// tokens are JWTs and carry their own signature, so no additional cookie
// signing is applied.
//
// The access cookie expires with the access token. The refresh cookie
// lives for the session TTL, or the extended remember-me TTL.
type Cookies struct {
	manager       *cookie.Manager
	accessName    string
	refreshName   string
	secure        bool
	refreshTTL    time.Duration
	rememberMeTTL time.Duration
}

// New creates the cookie transport.
func New(manager *cookie.Manager, cfg Config) *Cookies {
	cfg = cfg.defaults()
	return &Cookies{
		manager:       manager,
		accessName:    cfg.AccessCookieName,
		refreshName:   cfg.RefreshCookieName,
		secure:        cfg.Secure,
		refreshTTL:    cfg.refreshTTL(),
		rememberMeTTL: cfg.rememberMeTTL(),
	}
}

// SetPair writes both token cookies for a freshly issued pair.
func (c *Cookies) SetPair(w http.ResponseWriter, pair session.TokenPair, rememberMe bool) error {
	accessMaxAge := int(time.Until(pair.ExpiresAt).Seconds())
	if accessMaxAge < 0 {
		accessMaxAge = 0
	}

	if err := c.manager.Set(w, c.accessName, pair.AccessToken, c.options(accessMaxAge)...); err != nil {
		return err
	}

	refreshTTL := c.refreshTTL
	if rememberMe {
		refreshTTL = c.rememberMeTTL
	}
	return c.manager.Set(w, c.refreshName, pair.RefreshToken, c.options(int(refreshTTL.Seconds()))...)
}

// AccessToken reads the access token cookie. Returns ErrNoToken when the
// cookie is absent or empty.
func (c *Cookies) AccessToken(r *http.Request) (string, error) {
	return c.read(r, c.accessName)
}

// RefreshToken reads the refresh token cookie. Returns ErrNoToken when
// the cookie is absent or empty.
func (c *Cookies) RefreshToken(r *http.Request) (string, error) {
	return c.read(r, c.refreshName)
}

// Clear expires both token cookies, typically on logout or after reuse
// detection.
func (c *Cookies) Clear(w http.ResponseWriter) {
	c.manager.Delete(w, c.accessName)
	c.manager.Delete(w, c.refreshName)
}

func (c *Cookies) read(r *http.Request, name string) (string, error) {
	value, err := c.manager.Get(r, name)
	if err != nil || value == "" {
		return "", ErrNoToken
	}
	return value, nil
}

func (c *Cookies) options(maxAge int) []cookie.Option {
	return []cookie.Option{
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(c.secure),
		cookie.WithSameSite(http.SameSiteStrictMode),
		cookie.WithMaxAge(maxAge),
	}
}
