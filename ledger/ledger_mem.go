package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/warden-social/warden/moderation"
)

// MemLedger keeps records in process memory, durable for the process
// lifetime.
type MemLedger struct {
	lk      sync.RWMutex
	records map[string]moderation.ModerationRecord
	order   []string
}

var _ Ledger = (*MemLedger)(nil)

func NewMemLedger() *MemLedger {
	return &MemLedger{
		records: make(map[string]moderation.ModerationRecord),
	}
}

func (l *MemLedger) Record(ctx context.Context, rec moderation.ModerationRecord) error {
	l.lk.Lock()
	defer l.lk.Unlock()
	if _, ok := l.records[rec.ContentID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ContentID)
	}
	l.records[rec.ContentID] = rec
	l.order = append(l.order, rec.ContentID)
	return nil
}

func (l *MemLedger) Get(ctx context.Context, contentID string) (*moderation.ModerationRecord, error) {
	l.lk.RLock()
	defer l.lk.RUnlock()
	rec, ok := l.records[contentID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, contentID)
	}
	return &rec, nil
}

func (l *MemLedger) List(ctx context.Context) ([]moderation.ModerationRecord, error) {
	l.lk.RLock()
	defer l.lk.RUnlock()
	out := make([]moderation.ModerationRecord, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.records[id])
	}
	return out, nil
}
