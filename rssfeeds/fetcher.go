package rssfeeds

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/narek-arsh/aura-trends-dashboard/types"
)

// FetchFeed retrieves and parses a single RSS/Atom feed, returning
// normalized articles stamped with the given category.
func FetchFeed(feedURL, category string) ([]*types.Article, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	articles := make([]*types.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		articles = append(articles, normalizeItem(item, category))
	}
	return articles, nil
}

// FetchAll pulls every configured feed, category by category in sorted
// order so runs are deterministic. Individual feed failures are logged
// and skipped; they never abort the collection pass.
func FetchAll(feedsByCategory map[string][]string) []*types.Article {
	categories := make([]string, 0, len(feedsByCategory))
	for category := range feedsByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var all []*types.Article
	for _, category := range categories {
		for _, url := range feedsByCategory[category] {
			articles, err := FetchFeed(url, category)
			if err != nil {
				log.Printf("[rssfeeds] skipping %s: %v", url, err)
				continue
			}
			all = append(all, articles...)
		}
	}
	return all
}

// normalizeItem maps one feed entry to the internal article shape. The
// entry's native GUID wins as the ID; otherwise a deterministic hash of
// (link, title, published) keeps re-ingestion idempotent.
func normalizeItem(item *gofeed.Item, category string) *types.Article {
	id := item.GUID
	if id == "" {
		id = types.DeriveID(item.Link, item.Title, item.Published)
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	a := &types.Article{
		ID:        id,
		Title:     item.Title,
		Summary:   summary,
		Link:      item.Link,
		Published: item.Published,
		Category:  category,
		FetchedAt: time.Now(),
	}

	if item.Image != nil {
		a.ImageURL = item.Image.URL
	}
	return a
}
