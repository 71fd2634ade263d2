package session

import "github.com/croissant676/shopizer/pkg/cookie"

// Option configures the session Manager.
type Option func(*Manager)

// WithStore sets the session persistence backend.
func WithStore(store Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithTransport sets a custom token transport.
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		if transport != nil {
			m.transport = transport
		}
	}
}

// WithConfig replaces the manager configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.config = cfg
	}
}

// WithCookieManager sets the cookie manager backing the default cookie
// transport.
func WithCookieManager(cm *cookie.Manager) Option {
	return func(m *Manager) {
		if cm != nil {
			m.cookieManager = cm
		}
	}
}
