package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/wyfcoding/storefront/internal/auth/domain"
	"github.com/wyfcoding/storefront/pkg/cache"
)

const sessionKeyPrefix = "auth:session:"

type sessionRepository struct {
	client *goredis.Client
}

func NewSessionRepository(c *cache.RedisCache) domain.SessionRepository {
	return &sessionRepository{client: c.GetClient()}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	return r.client.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (r *sessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKey(token)).Err()
}
