package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croissant676/shopizer/pkg/cookie"
)

var testSecrets = []string{"0123456789abcdef0123456789abcdef"}

func roundTrip(t *testing.T, set func(w http.ResponseWriter) error) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	require.NoError(t, set(w))

	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New([]string{"short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestSignedCookies(t *testing.T) {
	t.Parallel()

	m, err := cookie.New(testSecrets)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		r := roundTrip(t, func(w http.ResponseWriter) error {
			return m.SetSigned(w, "lang", "fr")
		})

		got, err := m.GetSigned(r, "lang")
		require.NoError(t, err)
		assert.Equal(t, "fr", got)
	})

	t.Run("tampered value is rejected", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "lang", "fr"))

		c := w.Result().Cookies()[0]
		c.Value = strings.Replace(c.Value, c.Value[:4], "XXXX", 1)

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(c)

		_, err := m.GetSigned(r, "lang")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("old secret still verifies after rotation", func(t *testing.T) {
		t.Parallel()

		r := roundTrip(t, func(w http.ResponseWriter) error {
			return m.SetSigned(w, "lang", "fr")
		})

		rotated, err := cookie.New([]string{
			"new-secret-new-secret-new-secret!!", testSecrets[0],
		})
		require.NoError(t, err)

		got, err := rotated.GetSigned(r, "lang")
		require.NoError(t, err)
		assert.Equal(t, "fr", got)
	})
}

func TestEncryptedCookies(t *testing.T) {
	t.Parallel()

	m, err := cookie.New(testSecrets)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		r := roundTrip(t, func(w http.ResponseWriter) error {
			return m.SetEncrypted(w, "sid", "token-value")
		})

		got, err := m.GetEncrypted(r, "sid")
		require.NoError(t, err)
		assert.Equal(t, "token-value", got)
	})

	t.Run("value is not readable in transit", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		require.NoError(t, m.SetEncrypted(w, "sid", "token-value"))
		assert.NotContains(t, w.Result().Cookies()[0].Value, "token-value")
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "sid", Value: "not-a-ciphertext"})

		_, err := m.GetEncrypted(r, "sid")
		assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		_, err := m.GetEncrypted(r, "sid")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})
}
