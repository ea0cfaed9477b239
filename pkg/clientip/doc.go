// Package clientip extracts real client IP addresses from HTTP requests.
//
// It handles proxy headers in priority order, which matters for rate
// limiting and security logging behind proxies, load balancers, or CDNs:
//
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry is the original client)
//  4. X-Real-IP (nginx and other proxies)
//  5. RemoteAddr (direct connection)
//
// Every candidate is validated with net.ParseIP and normalized; malformed
// headers are skipped silently, and the unspecified addresses (0.0.0.0,
// ::) are rejected since they never identify a client. When no header
// yields a valid IP, the raw RemoteAddr host is returned.
//
// Usage:
//
//	ip := clientip.GetIP(r)
//	if !throttle.Allow(email + "|" + ip) {
//		http.Error(w, "rate limited", http.StatusTooManyRequests)
//		return
//	}
package clientip
