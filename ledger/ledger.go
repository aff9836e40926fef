// Package ledger stores final moderation records, keyed by content ID and
// write-once: moderation decisions are final within a run, and a second write
// for the same content item indicates an orchestration bug.
package ledger

import (
	"context"
	"errors"

	"github.com/warden-social/warden/moderation"
)

var (
	ErrDuplicateRecord = errors.New("moderation record already exists for content item")
	ErrRecordNotFound  = errors.New("moderation record not found")
)

type Ledger interface {
	// Record writes the terminal record for a content item. Fails with
	// ErrDuplicateRecord if one was already written.
	Record(ctx context.Context, rec moderation.ModerationRecord) error
	Get(ctx context.Context, contentID string) (*moderation.ModerationRecord, error)
	// List returns all records in the order they were recorded.
	List(ctx context.Context) ([]moderation.ModerationRecord, error)
}
