package cachestore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/warden-social/warden/moderation"

	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

// RedisProfileCache shares cached profiles across warden instances, with a
// small in-process TinyLFU tier in front so repeat authors in a burst never
// leave the process. Profiles are stored as JSON.
type RedisProfileCache struct {
	profiles *cache.Cache
	ttl      time.Duration
}

var _ ProfileCache = (*RedisProfileCache)(nil)

func NewRedisProfileCache(redisURL string, ttl time.Duration) (*RedisProfileCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	profiles := cache.New(&cache.Options{
		Redis:      rdb,
		LocalCache: cache.NewTinyLFU(1_000, ttl),
		Marshal:    json.Marshal,
		Unmarshal:  json.Unmarshal,
	})
	return &RedisProfileCache{
		profiles: profiles,
		ttl:      ttl,
	}, nil
}

func profileKey(userID string) string {
	return "warden/profile/" + userID
}

func (c *RedisProfileCache) Get(ctx context.Context, userID string) (*moderation.UserProfile, error) {
	var p moderation.UserProfile
	err := c.profiles.Get(ctx, profileKey(userID), &p)
	if err == cache.ErrCacheMiss {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *RedisProfileCache) Set(ctx context.Context, profile *moderation.UserProfile) error {
	return c.profiles.Set(&cache.Item{
		Ctx:   ctx,
		Key:   profileKey(profile.ID),
		Value: profile,
		TTL:   c.ttl,
	})
}

func (c *RedisProfileCache) Purge(ctx context.Context, userID string) error {
	err := c.profiles.Delete(ctx, profileKey(userID))
	if err == cache.ErrCacheMiss {
		return nil
	}
	return err
}
