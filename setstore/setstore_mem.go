package setstore

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sort"
	"sync"
)

type MemSetStore struct {
	lk   sync.RWMutex
	sets map[string]map[string]bool
}

func NewMemSetStore() *MemSetStore {
	return &MemSetStore{
		sets: make(map[string]map[string]bool),
	}
}

func (s *MemSetStore) InSet(ctx context.Context, name, val string) (bool, error) {
	s.lk.RLock()
	defer s.lk.RUnlock()
	set, ok := s.sets[name]
	if !ok {
		// an entirely missing set is treated as empty, not an error
		return false, nil
	}
	return set[val], nil
}

func (s *MemSetStore) ListSet(ctx context.Context, name string) ([]string, error) {
	s.lk.RLock()
	defer s.lk.RUnlock()
	set, ok := s.sets[name]
	if !ok {
		return []string{}, nil
	}
	out := make([]string, 0, len(set))
	for val := range set {
		out = append(out, val)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemSetStore) AddToSet(name string, vals []string) {
	s.lk.Lock()
	defer s.lk.Unlock()
	set, ok := s.sets[name]
	if !ok {
		set = make(map[string]bool, len(vals))
		s.sets[name] = set
	}
	for _, val := range vals {
		set[val] = true
	}
}

func (s *MemSetStore) LoadFromFileJSON(p string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	var sets map[string][]string
	if err := json.Unmarshal(raw, &sets); err != nil {
		return err
	}

	for name, l := range sets {
		s.AddToSet(name, l)
	}
	return nil
}
