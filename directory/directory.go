// Package directory resolves author identifiers to user profiles.
//
// The authoritative user-data service is external; this package defines the
// lookup interface the moderation engine consumes, a mock implementation for
// tests and demos, and a caching wrapper.
package directory

import (
	"context"
	"errors"

	"github.com/warden-social/warden/moderation"
)

var ErrProfileNotFound = errors.New("user profile not found")

type Directory interface {
	Lookup(ctx context.Context, userID string) (*moderation.UserProfile, error)
	Purge(ctx context.Context, userID string) error
}
