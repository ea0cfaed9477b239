package token

import "time"

// Config holds token issuance settings. TTL fields use duration strings
// with s/m/h/d suffixes; unparseable values fall back per ParseDuration.
type Config struct {
	// Secret signs all tokens. Required, minimum 32 bytes.
	Secret string `env:"JWT_SECRET,required"`

	// Issuer and Audience are pinned to the platform's canonical domain.
	Issuer   string `env:"JWT_ISSUER" envDefault:"zoptal.com"`
	Audience string `env:"JWT_AUDIENCE" envDefault:"zoptal.com"`

	AccessTTL       string `env:"AUTH_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL      string `env:"AUTH_REFRESH_TTL" envDefault:"7d"`
	VerificationTTL string `env:"AUTH_VERIFICATION_TTL" envDefault:"24h"`
	ResetTTL        string `env:"AUTH_RESET_TTL" envDefault:"1h"`
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithTimeFunc overrides the clock, primarily for tests.
func WithTimeFunc(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}
