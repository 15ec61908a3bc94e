package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/ports"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const sessionKeyPrefix = "oauth_session:"

// RedisSessionStore implements SessionStore on Redis. Sessions carry their
// own TTL, so expiry needs no sweeper.
type RedisSessionStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisSessionStore connects to Redis and returns a session store
func NewRedisSessionStore(addr string, logger zerolog.Logger) (ports.SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisSessionStore{
		client: client,
		logger: logger,
	}, nil
}

// Create persists a session keyed by its state value
func (s *RedisSessionStore) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session for shop %s already expired", session.Shop)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+session.State, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get retrieves a session by state, nil when absent or expired
func (s *RedisSessionStore) Get(ctx context.Context, state string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+state).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session by state
func (s *RedisSessionStore) Delete(ctx context.Context, state string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+state).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
