package cookie_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoptal/authkit/core/cookie"
)

const testSecret = "test-secret-key-32-characters-ok"

func newManager(t *testing.T, opts ...cookie.Option) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{testSecret}, opts...)
	require.NoError(t, err)
	return m
}

// roundTrip replays the Set-Cookie headers from w onto a fresh request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("no secrets", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{"", ""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("secret too short", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New([]string{"short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestSetGet(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		m := newManager(t)
		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "user_pref", "dark"))

		value, err := m.Get(roundTrip(w), "user_pref")
		require.NoError(t, err)
		assert.Equal(t, "dark", value)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		m := newManager(t)
		_, err := m.Get(httptest.NewRequest("GET", "/", nil), "absent")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("secure defaults applied", func(t *testing.T) {
		t.Parallel()

		m := newManager(t)
		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "name", "value"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.Equal(t, "/", cookies[0].Path)
	})

	t.Run("per-cookie options override defaults", func(t *testing.T) {
		t.Parallel()

		m := newManager(t)
		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "rt", "v",
			cookie.WithMaxAge(604800),
			cookie.WithSecure(true),
			cookie.WithSameSite(http.SameSiteStrictMode),
		))

		c := w.Result().Cookies()[0]
		assert.Equal(t, 604800, c.MaxAge)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	})

	t.Run("oversized cookie rejected", func(t *testing.T) {
		t.Parallel()

		m := newManager(t)
		w := httptest.NewRecorder()
		err := m.Set(w, "big", strings.Repeat("x", cookie.MaxCookieSize))

		var tooLarge cookie.ErrCookieTooLarge
		require.ErrorAs(t, err, &tooLarge)
		assert.Equal(t, "big", tooLarge.Name)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	w := httptest.NewRecorder()
	m.Delete(w, "stale")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestSigned(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		m := newManager(t)
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "session_hint", "user-42"))

		value, err := m.GetSigned(roundTrip(w), "session_hint")
		require.NoError(t, err)
		assert.Equal(t, "user-42", value)
	})

	t.Run("tampered value rejected", func(t *testing.T) {
		t.Parallel()

		m := newManager(t)
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "session_hint", "user-42"))

		c := w.Result().Cookies()[0]
		parts := strings.SplitN(c.Value, "|", 2)
		require.Len(t, parts, 2)

		// Swap the payload for another base64 value, keeping the old
		// signature.
		tampered := base64.URLEncoding.EncodeToString([]byte("user-43")) + "|" + parts[1]
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: c.Name, Value: tampered})

		_, err := m.GetSigned(r, "session_hint")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed value rejected", func(t *testing.T) {
		t.Parallel()

		m := newManager(t)
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "session_hint", Value: "no-separator"})

		_, err := m.GetSigned(r, "session_hint")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("key rotation keeps old cookies valid", func(t *testing.T) {
		t.Parallel()

		oldManager := newManager(t)
		w := httptest.NewRecorder()
		require.NoError(t, oldManager.SetSigned(w, "session_hint", "user-42"))

		rotated, err := cookie.New([]string{"new-secret-key-32-characters-ok!", testSecret})
		require.NoError(t, err)

		value, err := rotated.GetSigned(roundTrip(w), "session_hint")
		require.NoError(t, err)
		assert.Equal(t, "user-42", value)
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()

		signer := newManager(t)
		w := httptest.NewRecorder()
		require.NoError(t, signer.SetSigned(w, "session_hint", "user-42"))

		stranger, err := cookie.New([]string{"another-secret-key-32-chars-long"})
		require.NoError(t, err)

		_, err = stranger.GetSigned(roundTrip(w), "session_hint")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("comma separated secrets", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.NewFromConfig(cookie.Config{
			Secrets: testSecret + " , new-secret-key-32-characters-ok!",
			Path:    "/",
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "n", "v"))
		value, err := m.GetSigned(roundTrip(w), "n")
		require.NoError(t, err)
		assert.Equal(t, "v", value)
	})

	t.Run("empty secrets rejected", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.NewFromConfig(cookie.Config{})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}
