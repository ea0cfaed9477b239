package token

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTTL is the fallback applied when a duration string cannot be
// parsed. Falling back to a short-lived token is the safe direction: a
// misconfigured TTL must never silently produce a long-lived credential.
const DefaultTTL = 15 * time.Minute

// ParseDuration parses duration strings with s, m, h, and d suffixes,
// such as "90s", "15m", "12h", or "7d". Unrecognized input returns
// DefaultTTL; this fallback is an explicit policy, not an error path.
func ParseDuration(s string) time.Duration {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return DefaultTTL
	}

	value, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || value <= 0 {
		return DefaultTTL
	}

	switch s[len(s)-1] {
	case 's':
		return time.Duration(value) * time.Second
	case 'm':
		return time.Duration(value) * time.Minute
	case 'h':
		return time.Duration(value) * time.Hour
	case 'd':
		return time.Duration(value) * 24 * time.Hour
	default:
		return DefaultTTL
	}
}
