package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Article represents a single normalized feed entry
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Link      string    `json:"link"`
	Published string    `json:"published"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"image,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Trend is an article the curator judged relevant, with AI enrichment attached
type Trend struct {
	Article
	WhyItMatters    string    `json:"why_it_matters,omitempty"`
	ActivationIdeas []string  `json:"activation_ideas,omitempty"`
	CuratedAt       time.Time `json:"curated_at"`
}

// FetchResult is the top-level wrapper for a full feed collection pass
type FetchResult struct {
	FetchedAt    time.Time  `json:"fetched_at"`
	ArticleCount int        `json:"article_count"`
	Articles     []*Article `json:"articles"`
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

// DeriveID computes a deterministic article ID from its link, title and
// published timestamp. Same inputs always yield the same ID across runs.
func DeriveID(link, title, published string) string {
	return GenerateID(link + "|" + title + "|" + published)
}

// Key returns the identifier the dashboard stores use: the stable ID when
// present, otherwise the link, otherwise the title.
func (a *Article) Key() string {
	if a.ID != "" {
		return a.ID
	}
	if a.Link != "" {
		return a.Link
	}
	return a.Title
}
