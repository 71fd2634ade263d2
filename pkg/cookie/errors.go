package cookie

import "errors"

var (
	// ErrNoSecret indicates the manager was created without secrets.
	ErrNoSecret = errors.New("cookie: at least one secret is required")

	// ErrSecretTooShort indicates a secret below the minimum length.
	ErrSecretTooShort = errors.New("cookie: secret too short")

	// ErrCookieNotFound indicates the request carries no such cookie.
	ErrCookieNotFound = errors.New("cookie: not found")

	// ErrInvalidSignature indicates a signed cookie failed verification.
	ErrInvalidSignature = errors.New("cookie: invalid signature")

	// ErrDecryptionFailed indicates an encrypted cookie could not be opened.
	ErrDecryptionFailed = errors.New("cookie: decryption failed")
)
