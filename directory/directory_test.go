package directory

import (
	"context"
	"testing"
	"time"

	"github.com/warden-social/warden/cachestore"
	"github.com/warden-social/warden/moderation"

	"github.com/stretchr/testify/assert"
)

func TestMockDirectory(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	dir := NewMockDirectory()
	_, err := dir.Lookup(ctx, "USER-12345")
	assert.ErrorIs(err, ErrProfileNotFound)

	dir.Insert(moderation.UserProfile{
		ID:              "USER-12345",
		Username:        "GoodUser123",
		AccountAgeDays:  732,
		ReputationScore: 950,
		Verified:        true,
	})

	p, err := dir.Lookup(ctx, "USER-12345")
	assert.NoError(err)
	assert.Equal("GoodUser123", p.Username)

	assert.NoError(dir.Purge(ctx, "USER-12345"))
	_, err = dir.Lookup(ctx, "USER-12345")
	assert.ErrorIs(err, ErrProfileNotFound)
}

func TestCachedDirectory(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	base := NewMockDirectory()
	base.Insert(moderation.UserProfile{ID: "USER-67890", Username: "PoliticalRanter42"})

	dir := NewCachedDirectory(base, cachestore.NewMemProfileCache(10, time.Hour))

	p, err := dir.Lookup(ctx, "USER-67890")
	assert.NoError(err)
	assert.Equal("PoliticalRanter42", p.Username)

	// cache hit survives removal from the base directory
	assert.NoError(base.Purge(ctx, "USER-67890"))
	p, err = dir.Lookup(ctx, "USER-67890")
	assert.NoError(err)
	assert.Equal("PoliticalRanter42", p.Username)

	// purge drops the cached copy too
	assert.NoError(dir.Purge(ctx, "USER-67890"))
	_, err = dir.Lookup(ctx, "USER-67890")
	assert.ErrorIs(err, ErrProfileNotFound)
}
