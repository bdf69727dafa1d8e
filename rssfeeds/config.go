package rssfeeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFeeds is the built-in category→URL mapping used when no feeds
// file is present.
var DefaultFeeds = map[string][]string{
	"moda": {
		"https://www.vogue.es/rss",
	},
	"gastronomia": {
		"https://elpais.com/gastronomia/rss",
	},
	"arte_cultura": {
		"https://www.malagahoy.es/ocio/rss.xml",
	},
	"lifestyle": {
		"https://www.traveler.es/rss",
	},
	"malaga": {
		"https://www.diariosur.es/rss/2.0/?section=malaga-capital",
	},
}

// LoadFeeds reads the category→URL-list YAML configuration. A missing
// file falls back to the built-in presets; a malformed one is an error.
func LoadFeeds(path string) (map[string][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFeeds, nil
		}
		return nil, fmt.Errorf("read feeds config %s: %w", path, err)
	}

	feeds := make(map[string][]string)
	if err := yaml.Unmarshal(raw, &feeds); err != nil {
		return nil, fmt.Errorf("parse feeds config %s: %w", path, err)
	}
	if len(feeds) == 0 {
		return DefaultFeeds, nil
	}
	return feeds, nil
}
