package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/narek-arsh/aura-trends-dashboard/types"
)

// TrendStore is the append-only list of accepted, enriched articles. The
// file is rewritten in full on every save so a killed run keeps everything
// persisted up to the last completed article.
type TrendStore struct {
	mu     sync.RWMutex
	path   string
	trends []types.Trend
}

// LoadTrends reads the trend list, tolerating a missing or null file.
func LoadTrends(path string) (*TrendStore, error) {
	s := &TrendStore{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read trends %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &s.trends); err != nil {
		return nil, fmt.Errorf("parse trends %s: %w", path, err)
	}
	return s, nil
}

// Append adds a trend to the in-memory list. Call Save to persist.
func (s *TrendStore) Append(t types.Trend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trends = append(s.trends, t)
}

// Save rewrites the trend file in full.
func (s *TrendStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return writeJSON(s.path, s.trends)
}

// Len returns the number of stored trends.
func (s *TrendStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trends)
}

// List returns trends newest-first, optionally filtered by category.
// limit <= 0 means no limit.
func (s *TrendStore) List(category string, limit int) []types.Trend {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.Trend, 0, len(s.trends))
	for i := len(s.trends) - 1; i >= 0; i-- {
		t := s.trends[i]
		if category != "" && t.Category != category {
			continue
		}
		result = append(result, t)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

// Categories returns the distinct categories present, in first-seen order.
func (s *TrendStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var categories []string
	for _, t := range s.trends {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		categories = append(categories, t.Category)
	}
	return categories
}
