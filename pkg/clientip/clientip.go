package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Proxy headers in priority order. CDN-set headers are checked before
// generic proxy headers because intermediaries cannot overwrite them.
var headerPriority = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP extracts the real client IP from the request, checking proxy
// headers in priority order before falling back to RemoteAddr. Returns an
// empty string when no valid IP can be determined.
func GetIP(r *http.Request) string {
	for _, header := range headerPriority {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		// X-Forwarded-For may hold a chain "client, proxy1, proxy2"; the
		// leftmost entry is the original client.
		if header == "X-Forwarded-For" {
			for _, part := range strings.Split(value, ",") {
				if ip := normalize(part); ip != "" {
					return ip
				}
			}
			continue
		}

		if ip := normalize(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, e.g. in tests.
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return host
}

// normalize validates and canonicalizes an IP string. The unspecified
// addresses (0.0.0.0, ::) are rejected since they never identify a client.
func normalize(value string) string {
	ip := net.ParseIP(strings.TrimSpace(value))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
