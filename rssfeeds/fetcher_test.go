package rssfeeds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/gofeed"
)

func TestNormalizeItem(t *testing.T) {
	t.Run("guid preferred", func(t *testing.T) {
		item := &gofeed.Item{
			GUID:        "native-id",
			Title:       "Título",
			Link:        "https://example.com/a",
			Description: "resumen",
			Published:   "Mon, 02 Jan 2006 15:04:05 MST",
		}
		a := normalizeItem(item, "moda")
		if a.ID != "native-id" {
			t.Fatalf("ID = %q; want native GUID", a.ID)
		}
		if a.Category != "moda" || a.Summary != "resumen" {
			t.Fatalf("article = %+v", a)
		}
	})

	t.Run("hash fallback is deterministic", func(t *testing.T) {
		item := &gofeed.Item{
			Title:     "Título",
			Link:      "https://example.com/a",
			Published: "2024-05-01",
		}
		a1 := normalizeItem(item, "moda")
		a2 := normalizeItem(item, "lifestyle")
		if a1.ID == "" {
			t.Fatal("derived ID is empty")
		}
		if a1.ID != a2.ID {
			t.Fatalf("derived IDs differ across runs: %q vs %q", a1.ID, a2.ID)
		}

		// Any input change yields a different ID.
		changed := normalizeItem(&gofeed.Item{
			Title:     "Título",
			Link:      "https://example.com/a",
			Published: "2024-05-02",
		}, "moda")
		if changed.ID == a1.ID {
			t.Fatal("ID did not change with published date")
		}
	})

	t.Run("content fallback for summary", func(t *testing.T) {
		item := &gofeed.Item{Title: "t", Content: "cuerpo completo"}
		if a := normalizeItem(item, "arte_cultura"); a.Summary != "cuerpo completo" {
			t.Fatalf("Summary = %q", a.Summary)
		}
	})

	t.Run("image carried over", func(t *testing.T) {
		item := &gofeed.Item{
			Title: "t",
			Image: &gofeed.Image{URL: "https://example.com/img.jpg"},
		}
		if a := normalizeItem(item, "moda"); a.ImageURL != "https://example.com/img.jpg" {
			t.Fatalf("ImageURL = %q", a.ImageURL)
		}
	})
}

func TestLoadFeeds(t *testing.T) {
	t.Run("missing file uses presets", func(t *testing.T) {
		feeds, err := LoadFeeds(filepath.Join(t.TempDir(), "feeds.yaml"))
		if err != nil {
			t.Fatalf("LoadFeeds: %v", err)
		}
		if len(feeds) != len(DefaultFeeds) {
			t.Fatalf("got %d categories; want %d", len(feeds), len(DefaultFeeds))
		}
	})

	t.Run("yaml mapping", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feeds.yaml")
		content := "moda:\n  - https://example.com/moda.xml\nmalaga:\n  - https://example.com/a.xml\n  - https://example.com/b.xml\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		feeds, err := LoadFeeds(path)
		if err != nil {
			t.Fatalf("LoadFeeds: %v", err)
		}
		if len(feeds["malaga"]) != 2 || feeds["moda"][0] != "https://example.com/moda.xml" {
			t.Fatalf("feeds = %v", feeds)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feeds.yaml")
		if err := os.WriteFile(path, []byte("moda: [unclosed"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFeeds(path); err == nil {
			t.Fatal("expected error for malformed yaml")
		}
	})
}
