package session

import "time"

// Config holds session configuration.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// TTL is the session lifetime. Storefront sessions are short-lived;
	// visitors get a fresh session after the browser stays away this long.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// CleanupInterval for expired sessions in the in-memory store
	// (0 disables the sweep).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// SecureCookies enables the Secure flag on session cookies.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		TTL:             30 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		SecureCookies:   false,
	}
}
