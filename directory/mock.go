package directory

import (
	"context"
	"sync"

	"github.com/warden-social/warden/moderation"
)

// MockDirectory is a thread-safe in-memory Directory for tests and demos.
type MockDirectory struct {
	lk       sync.RWMutex
	profiles map[string]moderation.UserProfile
}

var _ Directory = (*MockDirectory)(nil)

func NewMockDirectory() *MockDirectory {
	return &MockDirectory{
		profiles: make(map[string]moderation.UserProfile),
	}
}

func (d *MockDirectory) Insert(p moderation.UserProfile) {
	d.lk.Lock()
	defer d.lk.Unlock()
	d.profiles[p.ID] = p
}

func (d *MockDirectory) Lookup(ctx context.Context, userID string) (*moderation.UserProfile, error) {
	d.lk.RLock()
	defer d.lk.RUnlock()
	p, ok := d.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}

func (d *MockDirectory) Purge(ctx context.Context, userID string) error {
	d.lk.Lock()
	defer d.lk.Unlock()
	delete(d.profiles, userID)
	return nil
}
