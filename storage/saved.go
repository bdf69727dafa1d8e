package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/narek-arsh/aura-trends-dashboard/types"
)

// SavedStore holds the dashboard-owned saved markers: human curation,
// fully independent from the AI ledger. Entries are whole trends so the
// saved view renders without joining back into the trend store.
type SavedStore struct {
	mu    sync.RWMutex
	path  string
	saved []types.Trend
}

// LoadSaved reads the saved-articles file, tolerating a missing one.
func LoadSaved(path string) (*SavedStore, error) {
	s := &SavedStore{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read saved %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &s.saved); err != nil {
		return nil, fmt.Errorf("parse saved %s: %w", path, err)
	}
	return s, nil
}

// IsSaved reports whether the article key is currently saved.
func (s *SavedStore) IsSaved(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(key) >= 0
}

// Toggle flips the saved state for a trend and persists immediately.
// Returns true when the article is saved after the operation.
func (s *SavedStore) Toggle(t types.Trend) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(t.Key())
	var nowSaved bool
	if idx < 0 {
		s.saved = append(s.saved, t)
		nowSaved = true
	} else {
		s.saved = append(s.saved[:idx], s.saved[idx+1:]...)
		nowSaved = false
	}

	if err := writeJSON(s.path, s.saved); err != nil {
		return nowSaved, err
	}
	return nowSaved, nil
}

// List returns the saved trends in save order.
func (s *SavedStore) List() []types.Trend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Trend, len(s.saved))
	copy(out, s.saved)
	return out
}

// indexOf matches on the dashboard key (stable id, link or title fallback).
// Caller must hold the lock.
func (s *SavedStore) indexOf(key string) int {
	for i, t := range s.saved {
		if t.Key() == key {
			return i
		}
	}
	return -1
}
