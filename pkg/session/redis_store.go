package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore is a Redis-backed Store for multi-instance deployments.
// Sessions are stored as JSON with a TTL matching their expiry, so Redis
// itself evicts expired sessions and DeleteExpired is a no-op.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) key(token string) string { return redisKeyPrefix + token }

func (r *RedisStore) write(ctx context.Context, session *Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	buf, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(session.Token), buf, ttl).Err()
}

// Create stores a new session.
func (r *RedisStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}
	return r.write(ctx, session)
}

// Get retrieves a session by token.
func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	buf, err := r.client.Get(ctx, r.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(buf, &session); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	if session.IsExpired() {
		_ = r.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Update replaces an existing session.
func (r *RedisStore) Update(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	exists, err := r.client.Exists(ctx, r.key(session.Token)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrSessionNotFound
	}
	return r.write(ctx, session)
}

// Delete removes a session by token.
func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}

// DeleteExpired is a no-op; Redis TTLs handle expiry.
func (r *RedisStore) DeleteExpired(ctx context.Context) error { return nil }
