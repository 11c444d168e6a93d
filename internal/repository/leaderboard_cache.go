package repository

import (
	"codewithme_backend/internal/model"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// LeaderboardCache 排行榜结果缓存，评分变化时删除
type LeaderboardCache struct {
	Redis *redis.Client
	Key   string
	TTL   time.Duration
}

func NewLeaderboardCache(rdb *redis.Client, key string, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{Redis: rdb, Key: key, TTL: ttl}
}

// Get 未命中时返回 (nil, false, nil)
func (c *LeaderboardCache) Get(ctx context.Context) ([]model.LeaderboardEntry, bool, error) {
	raw, err := c.Redis.Get(ctx, c.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, entries []model.LeaderboardEntry) error {
	if c.TTL <= 0 {
		return nil
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, c.Key, raw, c.TTL).Err()
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.Redis.Del(ctx, c.Key).Err()
}
