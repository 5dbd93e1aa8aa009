package preferences

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"givehaven/internal/utils"

	"github.com/redis/go-redis/v9"
)

const VisitorCookieName = "gh_visitor"

// RedisProvider stores preferences in a redis hash per visitor. The visitor is
// identified by a random id cookie minted on the first write.
type RedisProvider struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

func NewRedisProvider(client *redis.Client, ttl time.Duration, secure bool) *RedisProvider {
	return &RedisProvider{client: client, ttl: ttl, secure: secure}
}

func (p *RedisProvider) For(w http.ResponseWriter, r *http.Request) Store {
	s := &redisStore{provider: p, w: w}
	if cookie, err := r.Cookie(VisitorCookieName); err == nil && cookie.Value != "" {
		s.visitorID = cookie.Value
	}
	return s
}

type redisStore struct {
	provider  *RedisProvider
	w         http.ResponseWriter
	visitorID string
}

func (s *redisStore) key() string {
	return fmt.Sprintf("prefs:%s", s.visitorID)
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.visitorID == "" {
		return "", false, nil
	}

	v, err := s.provider.client.HGet(ctx, s.key(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}

	return v, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if s.visitorID == "" {
		s.visitorID = utils.NanoID()
		http.SetCookie(s.w, &http.Cookie{
			Name:     VisitorCookieName,
			Value:    s.visitorID,
			HttpOnly: true,
			Secure:   s.provider.secure,
			SameSite: http.SameSiteLaxMode,
			Path:     "/",
			MaxAge:   int(s.provider.ttl.Seconds()),
		})
	}

	pipe := s.provider.client.TxPipeline()
	pipe.HSet(ctx, s.key(), key, value)
	pipe.Expire(ctx, s.key(), s.provider.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}

	return nil
}

func (s *redisStore) Clear(ctx context.Context, key string) error {
	if s.visitorID == "" {
		return nil
	}

	if err := s.provider.client.HDel(ctx, s.key(), key).Err(); err != nil {
		return fmt.Errorf("clear preference %s: %w", key, err)
	}

	return nil
}
