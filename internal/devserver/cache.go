package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"haaangry-client/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// RecommendCache memoizes /recommend responses per video id.
type RecommendCache interface {
	Get(ctx context.Context, videoID string) (*domain.RecommendResult, error)
	Set(ctx context.Context, videoID string, res *domain.RecommendResult) error
}

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) Get(ctx context.Context, videoID string) (*domain.RecommendResult, error) {
	data, err := c.Client.Get(ctx, cacheKey(videoID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var res domain.RecommendResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("unmarshal recommendations failed: %w", err)
	}
	return &res, nil
}

func (c *RedisCache) Set(ctx context.Context, videoID string, res *domain.RecommendResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal recommendations failed: %w", err)
	}
	if err := c.Client.Set(ctx, cacheKey(videoID), data, c.TTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func cacheKey(videoID string) string {
	return "recommend:" + videoID
}

var _ RecommendCache = (*RedisCache)(nil)
