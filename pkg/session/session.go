package session

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session is one visitor's server-side session. Data is an open bag for the
// storefront pipeline's session-scoped state: store affinity, customer,
// anonymous visitor profile, breadcrumb trail, shopping-cart code.
type Session struct {
	ID             uuid.UUID      `json:"id"`
	Token          string         `json:"token"`
	CustomerID     *int64         `json:"customer_id,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
	ExpiresAt      time.Time      `json:"expires_at"`
	LastActivityAt time.Time      `json:"last_activity_at"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewSession creates a session with a fresh ID and the given lifetime.
func NewSession(token string, customerID *int64, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		CustomerID:     customerID,
		Data:           make(map[string]any),
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// IsAuthenticated reports whether the session is bound to a customer.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.CustomerID != nil
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Get retrieves a raw value from session data.
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data.
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// Set stores a value in session data.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// Delete removes a value from session data.
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// Clear removes all session data.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Data = make(map[string]any)
}

// Touch updates the last activity time.
func (s *Session) Touch() {
	if s != nil {
		s.LastActivityAt = time.Now()
	}
}

// Decode retrieves a structured value from session data. Values kept
// in-process survive as their original type; values that round-tripped
// through a serializing store (e.g. Redis) come back as generic JSON shapes,
// so the slow path re-encodes through JSON to recover T.
func Decode[T any](s *Session, key string) (T, bool) {
	var zero T

	raw, ok := s.Get(key)
	if !ok {
		return zero, false
	}

	if typed, ok := raw.(T); ok {
		return typed, true
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return zero, false
	}
	var decoded T
	if err := json.Unmarshal(buf, &decoded); err != nil {
		return zero, false
	}
	return decoded, true
}
