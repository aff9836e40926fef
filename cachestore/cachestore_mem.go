package cachestore

import (
	"context"
	"time"

	"github.com/warden-social/warden/moderation"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemProfileCache is a single-process ProfileCache over an expiring LRU.
// Profiles are stored by value so callers can never mutate a cached entry.
type MemProfileCache struct {
	profiles *expirable.LRU[string, moderation.UserProfile]
}

var _ ProfileCache = (*MemProfileCache)(nil)

func NewMemProfileCache(capacity int, ttl time.Duration) *MemProfileCache {
	return &MemProfileCache{
		profiles: expirable.NewLRU[string, moderation.UserProfile](capacity, nil, ttl),
	}
}

func (c *MemProfileCache) Get(ctx context.Context, userID string) (*moderation.UserProfile, error) {
	p, ok := c.profiles.Get(userID)
	if !ok {
		return nil, nil
	}
	out := p
	return &out, nil
}

func (c *MemProfileCache) Set(ctx context.Context, profile *moderation.UserProfile) error {
	c.profiles.Add(profile.ID, *profile)
	return nil
}

func (c *MemProfileCache) Purge(ctx context.Context, userID string) error {
	c.profiles.Remove(userID)
	return nil
}
