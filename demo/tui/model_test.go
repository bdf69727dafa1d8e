package tui

import (
	"errors"
	"testing"

	"github.com/narek-arsh/aura-trends-dashboard/types"
)

func TestSavedLoadedSeedsMarkers(t *testing.T) {
	m := NewModel("http://localhost:8080")

	updated, _ := m.Update(SavedLoadedMsg{Trends: []types.Trend{
		{Article: types.Article{ID: "t1", Title: "Trend t1"}},
		{Article: types.Article{Link: "https://example.com/t2"}},
	}})
	m = updated.(Model)

	if !m.SavedKeys["t1"] {
		t.Fatal("previously saved trend not marked after load")
	}
	if !m.SavedKeys["https://example.com/t2"] {
		t.Fatal("link-keyed saved trend not marked after load")
	}
	if len(m.SavedKeys) != 2 {
		t.Fatalf("SavedKeys has %d entries, want 2", len(m.SavedKeys))
	}
}

func TestSavedLoadedErrorKeepsMarkers(t *testing.T) {
	m := NewModel("http://localhost:8080")
	m.SavedKeys["t1"] = true

	updated, _ := m.Update(SavedLoadedMsg{Err: errors.New("connection refused")})
	m = updated.(Model)

	if !m.SavedKeys["t1"] {
		t.Fatal("a failed saved-list poll must not drop existing markers")
	}
}

func TestMergeCategoriesKeepsSelection(t *testing.T) {
	m := NewModel("http://localhost:8080")
	m = m.mergeCategories([]string{"moda", "gastronomia"})

	// Move to "gastronomia", then merge a longer server list.
	m.CategoryIdx = 2
	m = m.mergeCategories([]string{"moda", "arte_cultura", "gastronomia"})

	if got := m.Categories[m.CategoryIdx]; got != "gastronomia" {
		t.Fatalf("active tab after merge = %q, want gastronomia", got)
	}
	if m.Categories[0] != tabAll || m.Categories[len(m.Categories)-1] != tabSaved {
		t.Fatalf("fixed tabs not at the edges: %v", m.Categories)
	}
}
