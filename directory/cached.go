package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/warden-social/warden/cachestore"
	"github.com/warden-social/warden/moderation"
)

// CachedDirectory wraps a base Directory with a profile cache. Not-found
// results are not cached.
type CachedDirectory struct {
	Base  Directory
	Cache cachestore.ProfileCache
}

var _ Directory = (*CachedDirectory)(nil)

func NewCachedDirectory(base Directory, cache cachestore.ProfileCache) *CachedDirectory {
	return &CachedDirectory{
		Base:  base,
		Cache: cache,
	}
}

func (d *CachedDirectory) Lookup(ctx context.Context, userID string) (*moderation.UserProfile, error) {
	cached, err := d.Cache.Get(ctx, userID)
	if err != nil {
		// an unreadable entry must not block moderation; drop it and fall
		// through to the authoritative lookup
		_ = d.Cache.Purge(ctx, userID)
	} else if cached != nil {
		return cached, nil
	}

	p, err := d.Base.Lookup(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("profile lookup: %w", err)
	}

	if err := d.Cache.Set(ctx, p); err != nil {
		return nil, fmt.Errorf("profile cache write: %w", err)
	}
	return p, nil
}

func (d *CachedDirectory) Purge(ctx context.Context, userID string) error {
	if err := d.Cache.Purge(ctx, userID); err != nil {
		return err
	}
	return d.Base.Purge(ctx, userID)
}
