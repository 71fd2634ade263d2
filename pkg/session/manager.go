package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/croissant676/shopizer/pkg/cookie"
)

// Manager handles session lifecycle: lookup, creation, persistence and
// token transport.
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
}

// New creates a session manager. A cookie manager is required unless a
// custom transport is supplied.
func New(opts ...Option) *Manager {
	m := &Manager{config: DefaultConfig()}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			// Fail fast on misconfiguration rather than serving
			// sessions over an insecure default.
			panic("session: cookie manager is required when using the default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, m.config.SecureCookies)
	}

	return m
}

// Ensure retrieves the request's session, creating one when absent or
// invalid. New sessions have their token set on the response.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	session, err := m.Get(ctx, r)
	if err == nil {
		return session, nil
	}
	_ = m.transport.ClearToken(w)

	session, err = m.createSession(ctx, nil)
	if err != nil {
		return nil, err
	}

	if err := m.transport.SetToken(w, session.Token, m.config.TTL); err != nil {
		_ = m.store.Delete(ctx, session.Token)
		return nil, err
	}

	return session, nil
}

// Get retrieves an existing session without creating one.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	return m.store.Get(ctx, token)
}

// Save persists session data mutated during a request.
func (m *Manager) Save(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}
	session.Touch()
	return m.store.Update(ctx, session)
}

// Authenticate binds the session to a customer, rotating the token to
// prevent fixation.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, customerID int64) error {
	session, err := m.Get(ctx, r)
	if err != nil {
		session, err = m.createSession(ctx, &customerID)
		if err != nil {
			return err
		}
		return m.transport.SetToken(w, session.Token, m.config.TTL)
	}

	newToken, err := generateToken()
	if err != nil {
		return err
	}

	_ = m.store.Delete(ctx, session.Token)

	session.Token = newToken
	session.CustomerID = &customerID
	session.Touch()

	if err := m.store.Create(ctx, session); err != nil {
		return err
	}
	return m.transport.SetToken(w, session.Token, m.config.TTL)
}

// Destroy deletes the session and clears the client token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	token, err := m.transport.GetToken(r)
	if err == nil && token != "" {
		_ = m.store.Delete(ctx, token)
	}
	return m.transport.ClearToken(w)
}

func (m *Manager) createSession(ctx context.Context, customerID *int64) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	session := NewSession(token, customerID, m.config.TTL)
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
