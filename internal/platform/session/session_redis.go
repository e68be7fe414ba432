package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"patient_backend/internal/feature/auth/domain/entity"
	"patient_backend/internal/feature/auth/usecase"

	"github.com/redis/go-redis/v9"
)

// SessionRedis implements usecase.SessionRepository using Redis.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

// sessionKey returns the Redis key for a session token.
func (r *SessionRedis) sessionKey(token string) string {
	return fmt.Sprintf("%s:%s", r.prefix, token)
}

// Create persists a new session to Redis.
// Expiry is delegated to Redis: the key TTL is derived from ExpiresAt.
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	return r.client.Set(ctx, r.sessionKey(session.Token), data, ttl).Err()
}

// FindByToken retrieves a session by its token.
func (r *SessionRedis) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Delete removes a session from Redis. A key that is already gone counts as
// a confirmed delete; only a Redis failure is reported.
func (r *SessionRedis) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.sessionKey(token)).Err()
}
