package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"student-link/internal/app"
	"student-link/internal/domain"

	"github.com/redis/go-redis/v9"
)

var _ app.SessionRepository = (*SessionStore)(nil)

// SessionStore keeps auth sessions as Redis keys that expire after ttl.
// Every instance behind a load balancer sees the same logins and logouts.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, userID int64) error {
	if err := s.client.Set(ctx, s.key(sessionID), userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("save auth session: %w: %v", domain.ErrStorage, err)
	}
	return nil
}

func (s *SessionStore) Lookup(ctx context.Context, sessionID string) (int64, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lookup auth session: %w: %v", domain.ErrStorage, err)
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode auth session: %w: %v", domain.ErrStorage, err)
	}
	return userID, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete auth session: %w: %v", domain.ErrStorage, err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return "auth:session:" + sessionID
}
