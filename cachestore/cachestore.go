// Package cachestore caches resolved user profiles with a bounded capacity
// and TTL, in-process or in redis.
//
// Every moderation decision consults the author's track record, so profile
// lookups are the hottest read path in the system; caching keeps them off the
// authoritative directory. Entries age out on their own; profile updates go
// through Purge so the next lookup sees fresh data.
package cachestore

import (
	"context"
	"time"

	"github.com/warden-social/warden/moderation"
)

// Profiles move on moderation timescales (reputation, violation tallies),
// not request timescales, so a long TTL is safe as long as explicit profile
// writes purge the entry.
const (
	DefaultProfileTTL      = 30 * time.Minute
	DefaultProfileCapacity = 10_000
)

// ProfileCache holds recently resolved user profiles. Get returns (nil, nil)
// on a miss; callers fall through to the authoritative directory.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*moderation.UserProfile, error)
	Set(ctx context.Context, profile *moderation.UserProfile) error
	Purge(ctx context.Context, userID string) error
}
