package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Ledger is the permanent decision cache: every article ID that has ever
// been submitted to the curator, mapped to its relevance outcome. An ID
// present here is never re-evaluated, whatever its value.
type Ledger struct {
	mu        sync.RWMutex
	path      string
	decisions map[string]bool
}

// LoadLedger reads the ledger file, normalizing the legacy on-disk shapes
// (plain list of ids, list of objects, mapping) into the canonical mapping
// form. A missing file yields an empty ledger.
func LoadLedger(path string) (*Ledger, error) {
	l := &Ledger{path: path, decisions: make(map[string]bool)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}

	decisions, err := normalizeLedger(raw)
	if err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}
	l.decisions = decisions
	return l, nil
}

// normalizeLedger accepts the three historical shapes. List entries carry
// no explicit outcome and came from the accepted-articles era, so they
// normalize to relevant unless the object says otherwise.
func normalizeLedger(raw []byte) (map[string]bool, error) {
	decisions := make(map[string]bool)

	var mapping map[string]bool
	if err := json.Unmarshal(raw, &mapping); err == nil {
		if mapping == nil {
			mapping = decisions
		}
		return mapping, nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err == nil {
		for _, id := range ids {
			if id != "" {
				decisions[id] = true
			}
		}
		return decisions, nil
	}

	var objects []struct {
		ID       string `json:"id"`
		Relevant *bool  `json:"relevant"`
	}
	if err := json.Unmarshal(raw, &objects); err == nil {
		for _, o := range objects {
			if o.ID == "" {
				continue
			}
			if o.Relevant != nil {
				decisions[o.ID] = *o.Relevant
			} else {
				decisions[o.ID] = true
			}
		}
		return decisions, nil
	}

	return nil, fmt.Errorf("unrecognized ledger shape")
}

// Has reports whether the article ID was already evaluated.
func (l *Ledger) Has(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.decisions[id]
	return ok
}

// Relevant reports the recorded outcome for an ID.
func (l *Ledger) Relevant(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.decisions[id]
}

// Record stores the curation outcome for an article ID.
func (l *Ledger) Record(id string, relevant bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decisions[id] = relevant
}

// Len returns the number of recorded decisions.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.decisions)
}

// Save rewrites the ledger file in full, always in the canonical mapping
// form regardless of what shape was loaded.
func (l *Ledger) Save() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return writeJSON(l.path, l.decisions)
}

// writeJSON persists a value as indented JSON, creating the parent
// directory on first use.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
