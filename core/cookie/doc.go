// Package cookie provides HTTP cookie management with HMAC signing,
// key rotation, and secure defaults (HttpOnly, SameSite=Lax, 4KB limit).
//
// # Basic Usage
//
//	import "github.com/zoptal/authkit/core/cookie"
//
//	manager, err := cookie.New([]string{"your-32-char-secret-key-here!!!!"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Plain cookies, for values that carry their own integrity (JWTs).
//	err = manager.Set(w, "refresh_token", token, cookie.WithMaxAge(604800))
//	value, err := manager.Get(r, "refresh_token")
//	manager.Delete(w, "refresh_token")
//
//	// Signed cookies, for values the client must not be able to alter.
//	err = manager.SetSigned(w, "preferences", "theme=dark")
//	value, err = manager.GetSigned(r, "preferences")
//	if errors.Is(err, cookie.ErrInvalidSignature) {
//		// tampered or signed with an unknown key
//	}
//
// # Key Rotation
//
// Pass multiple secrets to New: the first signs every new cookie, and all
// of them are tried during verification, so sessions survive a rotation:
//
//	manager, err := cookie.New([]string{newSecret, oldSecret})
//
// # Environment Configuration
//
// NewFromConfig builds a manager from COOKIE_* environment variables, with
// comma-separated COOKIE_SECRETS for rotation.
package cookie
